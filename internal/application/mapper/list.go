package mapper

import (
	"context"

	"github.com/shopizer/backend/internal/domain/merchant"
	"github.com/shopizer/backend/internal/domain/reference"
	"github.com/shopizer/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Source is the repository side of a listing
type Source[E any] struct {
	// All returns every matching entity
	All func(ctx context.Context) ([]E, error)
	// Count returns the number of matching entities
	Count func(ctx context.Context) (int64, error)
	// Page returns one page of matching entities plus the total
	Page func(ctx context.Context, page shared.PageRequest) ([]E, int64, error)
}

// List loads entities from src and converts them. page == 0 && count == 0
// lists everything with the total from a separate count.
func List[E any, R any](
	ctx context.Context,
	src Source[E],
	c ReadableConverter[E, R],
	store *merchant.Store,
	lang *reference.Language,
	page, count int,
) (*shared.Paginated[R], error) {
	if err := RequireScope(store, lang); err != nil {
		return nil, err
	}
	if page < 0 || count < 0 {
		return nil, shared.NewInvalidArgumentError("page and count cannot be negative")
	}

	req := shared.PageRequest{Page: page, Count: count}
	var (
		items []E
		total int64
		err   error
	)
	if req.Unpaged() {
		items, err = src.All(ctx)
		if err != nil {
			return nil, err
		}
		total, err = src.Count(ctx)
		if err != nil {
			return nil, err
		}
	} else {
		items, total, err = src.Page(ctx, req)
		if err != nil {
			return nil, err
		}
	}

	readable, err := ConvertAll(ctx, c, items, store, lang)
	if err != nil {
		return nil, err
	}
	result := shared.NewPaginated(readable, total, page, count)
	return &result, nil
}

// PriceFormatter renders an amount in the currency and locale of a store
type PriceFormatter interface {
	Format(amount decimal.Decimal, store *merchant.Store) (string, error)
}
