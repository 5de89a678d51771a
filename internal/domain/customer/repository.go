package customer

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopizer/backend/internal/domain/shared"
)

// Criteria filters customer listings
type Criteria struct {
	Email string
	Name  string
}

// Repository defines persistence for customers
type Repository interface {
	// FindByID finds a customer with addresses, attributes and groups
	FindByID(ctx context.Context, id uuid.UUID) (*Customer, error)

	// FindByNick returns the single customer with nick. Zero matches is
	// ErrNotFound; more than one is ErrDataIntegrity.
	FindByNick(ctx context.Context, nick string) (*Customer, error)

	// FindByNickForStore finds a customer by nick within a store
	FindByNickForStore(ctx context.Context, storeID uuid.UUID, nick string) (*Customer, error)

	// FindAll returns every customer of a store matching criteria
	FindAll(ctx context.Context, storeID uuid.UUID, criteria Criteria) ([]Customer, error)

	// FindPage returns one page of customers plus the total
	FindPage(ctx context.Context, storeID uuid.UUID, criteria Criteria, page shared.PageRequest) ([]Customer, int64, error)

	// Count counts customers matching criteria
	Count(ctx context.Context, storeID uuid.UUID, criteria Criteria) (int64, error)

	// Save creates or updates a customer with attributes and groups
	Save(ctx context.Context, c *Customer) error

	// Delete removes a customer
	Delete(ctx context.Context, id uuid.UUID) error
}

// OptionRepository defines persistence for customer options
type OptionRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Option, error)
	FindByCode(ctx context.Context, storeID uuid.UUID, code string) (*Option, error)
	FindAll(ctx context.Context, storeID uuid.UUID) ([]Option, error)
	FindPage(ctx context.Context, storeID uuid.UUID, page shared.PageRequest) ([]Option, int64, error)
	Count(ctx context.Context, storeID uuid.UUID) (int64, error)
	ExistsByCode(ctx context.Context, storeID uuid.UUID, code string) (bool, error)
	Save(ctx context.Context, option *Option) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// OptionValueRepository defines persistence for customer option values
type OptionValueRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*OptionValue, error)
	FindByCode(ctx context.Context, storeID uuid.UUID, code string) (*OptionValue, error)
	FindAll(ctx context.Context, storeID uuid.UUID) ([]OptionValue, error)
	FindPage(ctx context.Context, storeID uuid.UUID, page shared.PageRequest) ([]OptionValue, int64, error)
	Count(ctx context.Context, storeID uuid.UUID) (int64, error)
	ExistsByCode(ctx context.Context, storeID uuid.UUID, code string) (bool, error)
	Save(ctx context.Context, value *OptionValue) error
	Delete(ctx context.Context, id uuid.UUID) error
}
