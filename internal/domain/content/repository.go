package content

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopizer/backend/internal/domain/shared"
)

// Repository defines persistence for content items
type Repository interface {
	// FindByID finds a content item with descriptions
	FindByID(ctx context.Context, id uuid.UUID) (*Content, error)

	// FindByCode finds a content item by code within a store
	FindByCode(ctx context.Context, storeID uuid.UUID, code string) (*Content, error)

	// FindByType returns the content items of a store with type typ
	FindByType(ctx context.Context, storeID uuid.UUID, typ Type) ([]Content, error)

	// FindPage returns one page of content items of type typ plus the total
	FindPage(ctx context.Context, storeID uuid.UUID, typ Type, page shared.PageRequest) ([]Content, int64, error)

	// Count counts the content items of a store with type typ
	Count(ctx context.Context, storeID uuid.UUID, typ Type) (int64, error)

	// ExistsByCode checks whether a code is taken in a store
	ExistsByCode(ctx context.Context, storeID uuid.UUID, code string) (bool, error)

	// Save creates or updates a content item and upserts its descriptions
	Save(ctx context.Context, c *Content) error

	// Delete removes a content item
	Delete(ctx context.Context, id uuid.UUID) error
}
