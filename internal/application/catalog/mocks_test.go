package catalog

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopizer/backend/internal/domain/catalog"
	"github.com/shopizer/backend/internal/domain/merchant"
	"github.com/shopizer/backend/internal/domain/reference"
	"github.com/shopizer/backend/internal/domain/shared"
	"github.com/shopizer/backend/internal/domain/tax"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockManufacturerRepository is a mock implementation of catalog.ManufacturerRepository
type MockManufacturerRepository struct {
	mock.Mock
}

func (m *MockManufacturerRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Manufacturer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Manufacturer), args.Error(1)
}

func (m *MockManufacturerRepository) FindByCode(ctx context.Context, storeID uuid.UUID, code string) (*catalog.Manufacturer, error) {
	args := m.Called(ctx, storeID, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Manufacturer), args.Error(1)
}

func (m *MockManufacturerRepository) FindAll(ctx context.Context, storeID uuid.UUID, criteria catalog.ManufacturerCriteria) ([]catalog.Manufacturer, error) {
	args := m.Called(ctx, storeID, criteria)
	return args.Get(0).([]catalog.Manufacturer), args.Error(1)
}

func (m *MockManufacturerRepository) FindPage(ctx context.Context, storeID uuid.UUID, criteria catalog.ManufacturerCriteria, page shared.PageRequest) ([]catalog.Manufacturer, int64, error) {
	args := m.Called(ctx, storeID, criteria, page)
	return args.Get(0).([]catalog.Manufacturer), args.Get(1).(int64), args.Error(2)
}

func (m *MockManufacturerRepository) Count(ctx context.Context, storeID uuid.UUID, criteria catalog.ManufacturerCriteria) (int64, error) {
	args := m.Called(ctx, storeID, criteria)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockManufacturerRepository) ExistsByCode(ctx context.Context, storeID uuid.UUID, code string) (bool, error) {
	args := m.Called(ctx, storeID, code)
	return args.Bool(0), args.Error(1)
}

func (m *MockManufacturerRepository) Save(ctx context.Context, manufacturer *catalog.Manufacturer) error {
	return m.Called(ctx, manufacturer).Error(0)
}

func (m *MockManufacturerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockManufacturerRepository) CountProducts(ctx context.Context, id uuid.UUID) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

// MockProductRepository is a mock implementation of catalog.ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindBySku(ctx context.Context, storeID uuid.UUID, sku string) (*catalog.Product, error) {
	args := m.Called(ctx, storeID, sku)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindAll(ctx context.Context, storeID uuid.UUID, criteria catalog.ProductCriteria) ([]catalog.Product, error) {
	args := m.Called(ctx, storeID, criteria)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindPage(ctx context.Context, storeID uuid.UUID, criteria catalog.ProductCriteria, page shared.PageRequest) ([]catalog.Product, int64, error) {
	args := m.Called(ctx, storeID, criteria, page)
	return args.Get(0).([]catalog.Product), args.Get(1).(int64), args.Error(2)
}

func (m *MockProductRepository) Count(ctx context.Context, storeID uuid.UUID, criteria catalog.ProductCriteria) (int64, error) {
	args := m.Called(ctx, storeID, criteria)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProductRepository) ExistsBySku(ctx context.Context, storeID uuid.UUID, sku string) (bool, error) {
	args := m.Called(ctx, storeID, sku)
	return args.Bool(0), args.Error(1)
}

func (m *MockProductRepository) Save(ctx context.Context, p *catalog.Product) error {
	return m.Called(ctx, p).Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

// MockTaxClassRepository is a mock implementation of tax.TaxClassRepository
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

// MockLanguageResolver resolves language codes
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

// MockPriceFormatter is a mock implementation of mapper.PriceFormatter
type MockPriceFormatter struct {
	mock.Mock
}

func (m *MockPriceFormatter) Format(amount decimal.Decimal, store *merchant.Store) (string, error) {
	args := m.Called(amount, store)
	return args.String(0), args.Error(1)
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

func newManufacturer(t *testing.T, storeID uuid.UUID, code string, descriptions ...shared.Description) *catalog.Manufacturer {
	t.Helper()
	m, err := catalog.NewManufacturer(storeID, code)
	require.NoError(t, err)
	for _, d := range descriptions {
		d.ID = uuid.New()
		d.ParentID = m.ID
		m.Descriptions = append(m.Descriptions, d)
	}
	return m
}

func ptr[T any](v T) *T { return &v }
