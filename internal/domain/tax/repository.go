package tax

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopizer/backend/internal/domain/shared"
)

// TaxClassRepository defines persistence for tax classes
type TaxClassRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*TaxClass, error)
	FindByCode(ctx context.Context, storeID uuid.UUID, code string) (*TaxClass, error)
	FindAll(ctx context.Context, storeID uuid.UUID) ([]TaxClass, error)
	FindPage(ctx context.Context, storeID uuid.UUID, page shared.PageRequest) ([]TaxClass, int64, error)
	Count(ctx context.Context, storeID uuid.UUID) (int64, error)
	ExistsByCode(ctx context.Context, storeID uuid.UUID, code string) (bool, error)
	Save(ctx context.Context, class *TaxClass) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// TaxRateRepository defines persistence for tax rates
type TaxRateRepository interface {
	// FindByID finds a tax rate with descriptions and tax class
	FindByID(ctx context.Context, id uuid.UUID) (*TaxRate, error)

	// FindByCode finds a tax rate by code within a store
	FindByCode(ctx context.Context, storeID uuid.UUID, code string) (*TaxRate, error)

	// FindAll returns every tax rate of a store ordered by priority
	FindAll(ctx context.Context, storeID uuid.UUID) ([]TaxRate, error)

	// FindPage returns one page of tax rates plus the total
	FindPage(ctx context.Context, storeID uuid.UUID, page shared.PageRequest) ([]TaxRate, int64, error)

	// Count counts the tax rates of a store
	Count(ctx context.Context, storeID uuid.UUID) (int64, error)

	// ExistsByCode checks whether a code is taken in a store
	ExistsByCode(ctx context.Context, storeID uuid.UUID, code string) (bool, error)

	// Save creates or updates a tax rate and upserts its descriptions
	Save(ctx context.Context, rate *TaxRate) error

	// Delete removes a tax rate
	Delete(ctx context.Context, id uuid.UUID) error
}
