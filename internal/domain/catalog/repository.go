package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopizer/backend/internal/domain/shared"
)

// ManufacturerCriteria filters manufacturer listings
type ManufacturerCriteria struct {
	Name string
	Code string
}

// ManufacturerRepository defines persistence for manufacturers
type ManufacturerRepository interface {
	// FindByID finds a manufacturer with descriptions
	FindByID(ctx context.Context, id uuid.UUID) (*Manufacturer, error)

	// FindByCode finds a manufacturer by code within a store
	FindByCode(ctx context.Context, storeID uuid.UUID, code string) (*Manufacturer, error)

	// FindAll returns every manufacturer of a store matching criteria
	FindAll(ctx context.Context, storeID uuid.UUID, criteria ManufacturerCriteria) ([]Manufacturer, error)

	// FindPage returns one page of manufacturers plus the total match count
	FindPage(ctx context.Context, storeID uuid.UUID, criteria ManufacturerCriteria, page shared.PageRequest) ([]Manufacturer, int64, error)

	// Count counts manufacturers matching criteria
	Count(ctx context.Context, storeID uuid.UUID, criteria ManufacturerCriteria) (int64, error)

	// ExistsByCode checks whether a code is taken in a store
	ExistsByCode(ctx context.Context, storeID uuid.UUID, code string) (bool, error)

	// Save creates or updates a manufacturer and upserts its descriptions
	Save(ctx context.Context, m *Manufacturer) error

	// Delete removes a manufacturer
	Delete(ctx context.Context, id uuid.UUID) error

	// CountProducts counts products attached to a manufacturer
	CountProducts(ctx context.Context, id uuid.UUID) (int64, error)
}

// ProductCriteria filters product listings
type ProductCriteria struct {
	Name           string
	Sku            string
	ManufacturerID *uuid.UUID
	AvailableOnly  bool
}

// ProductRepository defines persistence for products
type ProductRepository interface {
	// FindByID finds a product with descriptions and manufacturer
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)

	// FindBySku finds a product by sku within a store
	FindBySku(ctx context.Context, storeID uuid.UUID, sku string) (*Product, error)

	// FindAll returns every product of a store matching criteria
	FindAll(ctx context.Context, storeID uuid.UUID, criteria ProductCriteria) ([]Product, error)

	// FindPage returns one page of products plus the total match count
	FindPage(ctx context.Context, storeID uuid.UUID, criteria ProductCriteria, page shared.PageRequest) ([]Product, int64, error)

	// Count counts products matching criteria
	Count(ctx context.Context, storeID uuid.UUID, criteria ProductCriteria) (int64, error)

	// ExistsBySku checks whether a sku is taken in a store
	ExistsBySku(ctx context.Context, storeID uuid.UUID, sku string) (bool, error)

	// Save creates or updates a product and upserts its descriptions
	Save(ctx context.Context, p *Product) error

	// Delete removes a product
	Delete(ctx context.Context, id uuid.UUID) error
}
