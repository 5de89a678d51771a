package customer

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopizer/backend/internal/domain/customer"
	"github.com/shopizer/backend/internal/domain/identity"
	"github.com/shopizer/backend/internal/domain/merchant"
	"github.com/shopizer/backend/internal/domain/reference"
	"github.com/shopizer/backend/internal/domain/shared"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

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

type MockOptionRepository struct {
	mock.Mock
}

func (m *MockOptionRepository) FindByID(ctx context.Context, id uuid.UUID) (*customer.Option, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*customer.Option), args.Error(1)
}

func (m *MockOptionRepository) FindByCode(ctx context.Context, storeID uuid.UUID, code string) (*customer.Option, error) {
	args := m.Called(ctx, storeID, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*customer.Option), args.Error(1)
}

func (m *MockOptionRepository) FindAll(ctx context.Context, storeID uuid.UUID) ([]customer.Option, error) {
	args := m.Called(ctx, storeID)
	return args.Get(0).([]customer.Option), args.Error(1)
}

func (m *MockOptionRepository) FindPage(ctx context.Context, storeID uuid.UUID, page shared.PageRequest) ([]customer.Option, int64, error) {
	args := m.Called(ctx, storeID, page)
	return args.Get(0).([]customer.Option), args.Get(1).(int64), args.Error(2)
}

func (m *MockOptionRepository) Count(ctx context.Context, storeID uuid.UUID) (int64, error) {
	args := m.Called(ctx, storeID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockOptionRepository) ExistsByCode(ctx context.Context, storeID uuid.UUID, code string) (bool, error) {
	args := m.Called(ctx, storeID, code)
	return args.Bool(0), args.Error(1)
}

func (m *MockOptionRepository) Save(ctx context.Context, option *customer.Option) error {
	return m.Called(ctx, option).Error(0)
}

func (m *MockOptionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type MockOptionValueRepository struct {
	mock.Mock
}

func (m *MockOptionValueRepository) FindByID(ctx context.Context, id uuid.UUID) (*customer.OptionValue, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*customer.OptionValue), args.Error(1)
}

func (m *MockOptionValueRepository) FindByCode(ctx context.Context, storeID uuid.UUID, code string) (*customer.OptionValue, error) {
	args := m.Called(ctx, storeID, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*customer.OptionValue), args.Error(1)
}

func (m *MockOptionValueRepository) FindAll(ctx context.Context, storeID uuid.UUID) ([]customer.OptionValue, error) {
	args := m.Called(ctx, storeID)
	return args.Get(0).([]customer.OptionValue), args.Error(1)
}

func (m *MockOptionValueRepository) FindPage(ctx context.Context, storeID uuid.UUID, page shared.PageRequest) ([]customer.OptionValue, int64, error) {
	args := m.Called(ctx, storeID, page)
	return args.Get(0).([]customer.OptionValue), args.Get(1).(int64), args.Error(2)
}

func (m *MockOptionValueRepository) Count(ctx context.Context, storeID uuid.UUID) (int64, error) {
	args := m.Called(ctx, storeID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockOptionValueRepository) ExistsByCode(ctx context.Context, storeID uuid.UUID, code string) (bool, error) {
	args := m.Called(ctx, storeID, code)
	return args.Bool(0), args.Error(1)
}

func (m *MockOptionValueRepository) Save(ctx context.Context, value *customer.OptionValue) error {
	return m.Called(ctx, value).Error(0)
}

func (m *MockOptionValueRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type MockCountryRepository struct {
	mock.Mock
}

func (m *MockCountryRepository) FindByIsoCode(ctx context.Context, isoCode string) (*reference.Country, error) {
	args := m.Called(ctx, isoCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*reference.Country), args.Error(1)
}

func (m *MockCountryRepository) FindAll(ctx context.Context) ([]reference.Country, error) {
	args := m.Called(ctx)
	return args.Get(0).([]reference.Country), args.Error(1)
}

func (m *MockCountryRepository) Save(ctx context.Context, country *reference.Country) error {
	return m.Called(ctx, country).Error(0)
}

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

type fakeEncoder struct{}

func (fakeEncoder) Encode(raw string) (string, error) { return "enc:" + raw, nil }

func (fakeEncoder) Matches(raw, encoded string) bool { return encoded == "enc:"+raw }

type scope struct {
	en, fr *reference.Language
	store  *merchant.Store
	other  *merchant.Store
	ca     *reference.Country
}

func newScope(t *testing.T) scope {
	t.Helper()
	en, err := reference.NewLanguage("en", 0)
	require.NoError(t, err)
	fr, err := reference.NewLanguage("fr", 1)
	require.NoError(t, err)
	store, err := merchant.NewStore("DEFAULT", "Default store", "CAD", en)
	require.NoError(t, err)
	other, err := merchant.NewStore("OTHER", "Other store", "USD", en)
	require.NoError(t, err)
	ca, err := reference.NewCountry("CA")
	require.NoError(t, err)
	qc, err := reference.NewZone(ca, "QC")
	require.NoError(t, err)
	ca.Zones = []reference.Zone{*qc}
	return scope{en: en, fr: fr, store: store, other: other, ca: ca}
}

func ptr[T any](v T) *T { return &v }
