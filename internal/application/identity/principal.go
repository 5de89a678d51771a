package identity

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopizer/backend/internal/domain/customer"
	"github.com/shopizer/backend/internal/domain/identity"
	"github.com/shopizer/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// PrincipalLoader resolves a username to a principal
type PrincipalLoader interface {
	LoadPrincipal(ctx context.Context, username string) (*Principal, error)
}

func userNotFound(username string) error {
	return shared.NewNotFoundError("USER_NOT_FOUND", "User "+username+" not found")
}

// loadAuthorities returns AUTH plus one ROLE_ entry per distinct permission
// granted to groupIDs, using a single permission query.
func loadAuthorities(ctx context.Context, permissions identity.PermissionRepository, groupIDs []uuid.UUID) ([]string, error) {
	if len(groupIDs) == 0 {
		return identity.Authorities(nil), nil
	}
	perms, err := permissions.FindByGroupIDs(ctx, groupIDs)
	if err != nil {
		return nil, err
	}
	return identity.Authorities(perms), nil
}

// UserDetailsService loads administration users as principals
type UserDetailsService struct {
	users       identity.UserRepository
	permissions identity.PermissionRepository
	logger      *zap.Logger
}

// NewUserDetailsService creates a UserDetailsService
func NewUserDetailsService(users identity.UserRepository, permissions identity.PermissionRepository, logger *zap.Logger) *UserDetailsService {
	return &UserDetailsService{users: users, permissions: permissions, logger: logger}
}

// LoadPrincipal implements PrincipalLoader
func (s *UserDetailsService) LoadPrincipal(ctx context.Context, username string) (*Principal, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, userNotFound(username)
		}
		s.logger.Error("Failed to load user", zap.String("username", username), zap.Error(err))
		return nil, shared.NewSecurityError("Cannot load user "+username, err)
	}

	authorities, err := loadAuthorities(ctx, s.permissions, user.GroupIDs())
	if err != nil {
		s.logger.Error("Failed to load user permissions", zap.String("username", username), zap.Error(err))
		return nil, shared.NewSecurityError("Cannot load permissions of user "+username, err)
	}

	return &Principal{
		ID:             user.ID,
		StoreID:        user.StoreID,
		StoreCode:      user.StoreCode,
		Username:       user.Username,
		CredentialHash: user.PasswordHash,
		Active:         user.Active,
		Authorities:    authorities,
	}, nil
}

// CustomerDetailsService loads shop customers as principals
type CustomerDetailsService struct {
	customers   customer.Repository
	permissions identity.PermissionRepository
	logger      *zap.Logger
}

// NewCustomerDetailsService creates a CustomerDetailsService
func NewCustomerDetailsService(customers customer.Repository, permissions identity.PermissionRepository, logger *zap.Logger) *CustomerDetailsService {
	return &CustomerDetailsService{customers: customers, permissions: permissions, logger: logger}
}

// LoadPrincipal implements PrincipalLoader. StoreCode is left to the caller,
// which knows the store the customer logs into.
func (s *CustomerDetailsService) LoadPrincipal(ctx context.Context, nick string) (*Principal, error) {
	c, err := s.customers.FindByNick(ctx, nick)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, userNotFound(nick)
		}
		s.logger.Error("Failed to load customer", zap.String("nick", nick), zap.Error(err))
		return nil, shared.NewSecurityError("Cannot load customer "+nick, err)
	}

	authorities, err := loadAuthorities(ctx, s.permissions, identity.GroupIDs(c.Groups))
	if err != nil {
		s.logger.Error("Failed to load customer permissions", zap.String("nick", nick), zap.Error(err))
		return nil, shared.NewSecurityError("Cannot load permissions of customer "+nick, err)
	}

	return &Principal{
		ID:             c.ID,
		StoreID:        c.StoreID,
		Username:       c.Nick,
		CredentialHash: c.PasswordHash,
		Active:         !c.Anonymous,
		Authorities:    authorities,
	}, nil
}
