package identity

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopizer/backend/internal/domain/shared"
)

// UserRepository defines persistence for administration users
type UserRepository interface {
	// FindByID finds a user with groups
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)

	// FindByUsername returns the single user with username. Zero matches is
	// ErrNotFound; more than one is ErrDataIntegrity.
	FindByUsername(ctx context.Context, username string) (*User, error)

	// FindPage returns one page of users of a store plus the total
	FindPage(ctx context.Context, storeID uuid.UUID, page shared.PageRequest) ([]User, int64, error)

	// FindAll returns every user of a store
	FindAll(ctx context.Context, storeID uuid.UUID) ([]User, error)

	// Count counts the users of a store
	Count(ctx context.Context, storeID uuid.UUID) (int64, error)

	// ExistsByUsername checks whether a username is taken
	ExistsByUsername(ctx context.Context, username string) (bool, error)

	// Save creates or updates a user and replaces its group memberships
	Save(ctx context.Context, user *User) error

	// Delete removes a user
	Delete(ctx context.Context, id uuid.UUID) error
}

// GroupRepository defines persistence for groups
type GroupRepository interface {
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]Group, error)
	FindByNames(ctx context.Context, names []string) ([]Group, error)
	FindByType(ctx context.Context, typ GroupType) ([]Group, error)
	Save(ctx context.Context, group *Group) error
}

// PermissionRepository defines persistence for permissions
type PermissionRepository interface {
	// FindByGroupIDs loads the permissions granted to any of groupIDs in a
	// single query
	FindByGroupIDs(ctx context.Context, groupIDs []uuid.UUID) ([]Permission, error)

	// FindAll returns every permission
	FindAll(ctx context.Context) ([]Permission, error)

	// Save creates or updates a permission and its group grants
	Save(ctx context.Context, permission *Permission) error
}
