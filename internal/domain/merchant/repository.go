package merchant

import (
	"context"

	"github.com/google/uuid"
)

// StoreRepository defines persistence for merchant stores
type StoreRepository interface {
	// FindByID finds a store with its languages
	FindByID(ctx context.Context, id uuid.UUID) (*Store, error)

	// FindByCode finds a store by its unique code
	FindByCode(ctx context.Context, code string) (*Store, error)

	// FindAll returns every store
	FindAll(ctx context.Context) ([]Store, error)

	// Save creates or updates a store and its language list
	Save(ctx context.Context, store *Store) error
}

// ConfigurationRepository defines persistence for store configuration
type ConfigurationRepository interface {
	// FindByKey finds a configuration entry of a store
	FindByKey(ctx context.Context, storeID uuid.UUID, key string) (*Configuration, error)

	// FindByStore returns every configuration entry of a store
	FindByStore(ctx context.Context, storeID uuid.UUID) ([]Configuration, error)

	// Save creates or updates a configuration entry
	Save(ctx context.Context, cfg *Configuration) error

	// Delete removes a configuration entry
	Delete(ctx context.Context, storeID uuid.UUID, key string) error
}
