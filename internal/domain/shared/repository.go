package shared

// PageRequest is the page/count pair accepted by listing operations.
// Page is zero-based; Page == 0 && Count == 0 requests every item.
type PageRequest struct {
	Page  int
	Count int
}

// Unpaged reports whether every item is requested
func (p PageRequest) Unpaged() bool {
	return p.Page == 0 && p.Count == 0
}

// Offset returns the row offset for a paged request
func (p PageRequest) Offset() int {
	if p.Count <= 0 {
		return 0
	}
	return p.Page * p.Count
}

// Limit returns the row limit, -1 when unpaged
func (p PageRequest) Limit() int {
	if p.Unpaged() || p.Count <= 0 {
		return -1
	}
	return p.Count
}

// Paginated represents a paginated result
type Paginated[T any] struct {
	Items      []T   `json:"items"`
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalPages int   `json:"total_pages"`
}

// NewPaginated creates a new paginated result. A zero pageSize yields a
// single page holding every item.
func NewPaginated[T any](items []T, total int64, page, pageSize int) Paginated[T] {
	if items == nil {
		items = []T{}
	}
	totalPages := 0
	if pageSize > 0 {
		totalPages = int(total) / pageSize
		if int(total)%pageSize > 0 {
			totalPages++
		}
	} else if total > 0 {
		totalPages = 1
	}
	return Paginated[T]{
		Items:      items,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}
}
