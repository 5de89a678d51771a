package dto

// PageQuery carries the page and count query parameters of list endpoints.
// Both zero lists every item.
type PageQuery struct {
	Page  int `form:"page" binding:"min=0"`
	Count int `form:"count" binding:"min=0,max=500"`
}

// IDRequest represents a request with an ID path parameter
type IDRequest struct {
	ID string `uri:"id" binding:"required,uuid"`
}

// UniqueResponse answers existence checks
type UniqueResponse struct {
	Exists bool `json:"exists"`
}

// HealthResponse is the body of the health endpoint
type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
}
