package identity

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopizer/backend/internal/domain/customer"
	"github.com/shopizer/backend/internal/domain/identity"
	"github.com/shopizer/backend/internal/domain/merchant"
	"github.com/shopizer/backend/internal/domain/reference"
	"github.com/shopizer/backend/internal/domain/shared"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockUserRepository is a mock implementation of identity.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindByUsername(ctx context.Context, username string) (*identity.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindPage(ctx context.Context, storeID uuid.UUID, page shared.PageRequest) ([]identity.User, int64, error) {
	args := m.Called(ctx, storeID, page)
	return args.Get(0).([]identity.User), args.Get(1).(int64), args.Error(2)
}

func (m *MockUserRepository) FindAll(ctx context.Context, storeID uuid.UUID) ([]identity.User, error) {
	args := m.Called(ctx, storeID)
	return args.Get(0).([]identity.User), args.Error(1)
}

func (m *MockUserRepository) Count(ctx context.Context, storeID uuid.UUID) (int64, error) {
	args := m.Called(ctx, storeID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockUserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	args := m.Called(ctx, username)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) Save(ctx context.Context, user *identity.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

// MockPermissionRepository is a mock implementation of identity.PermissionRepository
type MockPermissionRepository struct {
	mock.Mock
}

func (m *MockPermissionRepository) FindByGroupIDs(ctx context.Context, groupIDs []uuid.UUID) ([]identity.Permission, error) {
	args := m.Called(ctx, groupIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]identity.Permission), args.Error(1)
}

func (m *MockPermissionRepository) FindAll(ctx context.Context) ([]identity.Permission, error) {
	args := m.Called(ctx)
	return args.Get(0).([]identity.Permission), args.Error(1)
}

func (m *MockPermissionRepository) Save(ctx context.Context, permission *identity.Permission) error {
	return m.Called(ctx, permission).Error(0)
}

// MockGroupRepository is a mock implementation of identity.GroupRepository
type MockGroupRepository struct {
	mock.Mock
}

func (m *MockGroupRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]identity.Group, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).([]identity.Group), args.Error(1)
}

func (m *MockGroupRepository) FindByNames(ctx context.Context, names []string) ([]identity.Group, error) {
	args := m.Called(ctx, names)
	return args.Get(0).([]identity.Group), args.Error(1)
}

func (m *MockGroupRepository) FindByType(ctx context.Context, typ identity.GroupType) ([]identity.Group, error) {
	args := m.Called(ctx, typ)
	return args.Get(0).([]identity.Group), args.Error(1)
}

func (m *MockGroupRepository) Save(ctx context.Context, group *identity.Group) error {
	return m.Called(ctx, group).Error(0)
}

// MockCustomerRepository is a mock implementation of customer.Repository
type MockCustomerRepository struct {
	mock.Mock
}

func (m *MockCustomerRepository) FindByID(ctx context.Context, id uuid.UUID) (*customer.Customer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*customer.Customer), args.Error(1)
}

func (m *MockCustomerRepository) FindByNick(ctx context.Context, nick string) (*customer.Customer, error) {
	args := m.Called(ctx, nick)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*customer.Customer), args.Error(1)
}

func (m *MockCustomerRepository) FindByNickForStore(ctx context.Context, storeID uuid.UUID, nick string) (*customer.Customer, error) {
	args := m.Called(ctx, storeID, nick)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*customer.Customer), args.Error(1)
}

func (m *MockCustomerRepository) FindAll(ctx context.Context, storeID uuid.UUID, criteria customer.Criteria) ([]customer.Customer, error) {
	args := m.Called(ctx, storeID, criteria)
	return args.Get(0).([]customer.Customer), args.Error(1)
}

func (m *MockCustomerRepository) FindPage(ctx context.Context, storeID uuid.UUID, criteria customer.Criteria, page shared.PageRequest) ([]customer.Customer, int64, error) {
	args := m.Called(ctx, storeID, criteria, page)
	return args.Get(0).([]customer.Customer), args.Get(1).(int64), args.Error(2)
}

func (m *MockCustomerRepository) Count(ctx context.Context, storeID uuid.UUID, criteria customer.Criteria) (int64, error) {
	args := m.Called(ctx, storeID, criteria)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCustomerRepository) Save(ctx context.Context, c *customer.Customer) error {
	return m.Called(ctx, c).Error(0)
}

func (m *MockCustomerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

// MockLanguageResolver is a mock implementation of mapper.LanguageResolver
type MockLanguageResolver struct {
	mock.Mock
}

func (m *MockLanguageResolver) FindByCode(ctx context.Context, code string) (*reference.Language, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*reference.Language), args.Error(1)
}

type MockTokenRevoker struct {
	mock.Mock
}

func (m *MockTokenRevoker) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	return m.Called(ctx, jti, ttl).Error(0)
}

type fakeEncoder struct{}

func (fakeEncoder) Encode(raw string) (string, error) { return "enc:" + raw, nil }

func (fakeEncoder) Matches(raw, encoded string) bool {
	return strings.HasPrefix(encoded, "enc:") && encoded[len("enc:"):] == raw
}

type scope struct {
	en    *reference.Language
	store *merchant.Store
	other *merchant.Store
}

func newScope(t *testing.T) scope {
	t.Helper()
	en, err := reference.NewLanguage("en", 0)
	require.NoError(t, err)
	store, err := merchant.NewStore("DEFAULT", "Default store", "CAD", en)
	require.NoError(t, err)
	other, err := merchant.NewStore("OTHER", "Other store", "USD", en)
	require.NoError(t, err)
	return scope{en: en, store: store, other: other}
}

func mustGroup(t *testing.T, name string, typ identity.GroupType) identity.Group {
	t.Helper()
	g, err := identity.NewGroup(name, typ)
	require.NoError(t, err)
	return *g
}

func ptr[T any](v T) *T { return &v }
