package tax

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopizer/backend/internal/domain/merchant"
	"github.com/shopizer/backend/internal/domain/reference"
	"github.com/shopizer/backend/internal/domain/shared"
	"github.com/shopizer/backend/internal/domain/tax"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockTaxClassRepository struct {
	mock.Mock
}

func (m *MockTaxClassRepository) FindByID(ctx context.Context, id uuid.UUID) (*tax.TaxClass, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*tax.TaxClass), args.Error(1)
}

func (m *MockTaxClassRepository) FindByCode(ctx context.Context, storeID uuid.UUID, code string) (*tax.TaxClass, error) {
	args := m.Called(ctx, storeID, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*tax.TaxClass), args.Error(1)
}

func (m *MockTaxClassRepository) FindAll(ctx context.Context, storeID uuid.UUID) ([]tax.TaxClass, error) {
	args := m.Called(ctx, storeID)
	return args.Get(0).([]tax.TaxClass), args.Error(1)
}

func (m *MockTaxClassRepository) FindPage(ctx context.Context, storeID uuid.UUID, page shared.PageRequest) ([]tax.TaxClass, int64, error) {
	args := m.Called(ctx, storeID, page)
	return args.Get(0).([]tax.TaxClass), args.Get(1).(int64), args.Error(2)
}

func (m *MockTaxClassRepository) Count(ctx context.Context, storeID uuid.UUID) (int64, error) {
	args := m.Called(ctx, storeID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockTaxClassRepository) ExistsByCode(ctx context.Context, storeID uuid.UUID, code string) (bool, error) {
	args := m.Called(ctx, storeID, code)
	return args.Bool(0), args.Error(1)
}

func (m *MockTaxClassRepository) Save(ctx context.Context, class *tax.TaxClass) error {
	return m.Called(ctx, class).Error(0)
}

func (m *MockTaxClassRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type MockTaxRateRepository struct {
	mock.Mock
}

func (m *MockTaxRateRepository) FindByID(ctx context.Context, id uuid.UUID) (*tax.TaxRate, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*tax.TaxRate), args.Error(1)
}

func (m *MockTaxRateRepository) FindByCode(ctx context.Context, storeID uuid.UUID, code string) (*tax.TaxRate, error) {
	args := m.Called(ctx, storeID, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*tax.TaxRate), args.Error(1)
}

func (m *MockTaxRateRepository) FindAll(ctx context.Context, storeID uuid.UUID) ([]tax.TaxRate, error) {
	args := m.Called(ctx, storeID)
	return args.Get(0).([]tax.TaxRate), args.Error(1)
}

func (m *MockTaxRateRepository) FindPage(ctx context.Context, storeID uuid.UUID, page shared.PageRequest) ([]tax.TaxRate, int64, error) {
	args := m.Called(ctx, storeID, page)
	return args.Get(0).([]tax.TaxRate), args.Get(1).(int64), args.Error(2)
}

func (m *MockTaxRateRepository) Count(ctx context.Context, storeID uuid.UUID) (int64, error) {
	args := m.Called(ctx, storeID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockTaxRateRepository) ExistsByCode(ctx context.Context, storeID uuid.UUID, code string) (bool, error) {
	args := m.Called(ctx, storeID, code)
	return args.Bool(0), args.Error(1)
}

func (m *MockTaxRateRepository) Save(ctx context.Context, rate *tax.TaxRate) error {
	return m.Called(ctx, rate).Error(0)
}

func (m *MockTaxRateRepository) Delete(ctx context.Context, id uuid.UUID) error {
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

type MockZoneRepository struct {
	mock.Mock
}

func (m *MockZoneRepository) FindByCode(ctx context.Context, code string) (*reference.Zone, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*reference.Zone), args.Error(1)
}

func (m *MockZoneRepository) FindByCountry(ctx context.Context, countryIsoCode string) ([]reference.Zone, error) {
	args := m.Called(ctx, countryIsoCode)
	return args.Get(0).([]reference.Zone), args.Error(1)
}

func (m *MockZoneRepository) Save(ctx context.Context, zone *reference.Zone) error {
	return m.Called(ctx, zone).Error(0)
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

type scope struct {
	en, fr *reference.Language
	store  *merchant.Store
	other  *merchant.Store
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
	return scope{en: en, fr: fr, store: store, other: other}
}

func ptr[T any](v T) *T { return &v }
