package catalog

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopizer/backend/internal/application/mapper"
	"github.com/shopizer/backend/internal/domain/catalog"
	"github.com/shopizer/backend/internal/domain/shared"
	"github.com/shopizer/backend/internal/domain/tax"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type productMocks struct {
	products      *MockProductRepository
	manufacturers *MockManufacturerRepository
	taxClasses    *MockTaxClassRepository
	languages     *MockLanguageResolver
	prices        *MockPriceFormatter
}

func newProductService() (*ProductService, productMocks) {
	m := productMocks{
		products:      new(MockProductRepository),
		manufacturers: new(MockManufacturerRepository),
		taxClasses:    new(MockTaxClassRepository),
		languages:     new(MockLanguageResolver),
		prices:        new(MockPriceFormatter),
	}
	svc := NewProductService(
		m.products,
		m.manufacturers,
		NewProductConverter(m.prices),
		NewProductMerger(m.languages, m.manufacturers, m.taxClasses),
		zap.NewNop(),
	)
	return svc, m
}

func newProduct(t *testing.T, s scope, sku string) *catalog.Product {
	t.Helper()
	p, err := catalog.NewProduct(s.store.ID, sku)
	require.NoError(t, err)
	require.NoError(t, p.SetPrice(decimal.RequireFromString("19.99")))
	require.NoError(t, p.SetQuantity(5))
	return p
}

func TestProductConverter(t *testing.T) {
	ctx := context.Background()
	s := newScope(t)
	p := newProduct(t, s, "TB-1")
	acme := newManufacturer(t, s.store.ID, "acme")
	require.NoError(t, p.AttachManufacturer(acme))
	p.Descriptions = shared.DescriptionSet{{LanguageID: s.en.ID, LanguageCode: "en", Name: "Table"}}

	prices := new(MockPriceFormatter)
	prices.On("Format", p.Price, s.store).Return("CA$19.99", nil)

	out, err := NewProductConverter(prices).Convert(ctx, p, s.store, s.en)

	require.NoError(t, err)
	assert.Equal(t, "TB-1", out.Sku)
	assert.Equal(t, "CA$19.99", out.FinalPrice)
	assert.True(t, out.CanBePurchased)
	assert.Equal(t, "Table", out.Description.Name)
	require.NotNil(t, out.Manufacturer)
	assert.Equal(t, "acme", out.Manufacturer.Code)
}

func TestProductConverter_NoManufacturer(t *testing.T) {
	s := newScope(t)
	p := newProduct(t, s, "TB-1")
	prices := new(MockPriceFormatter)
	prices.On("Format", mock.Anything, s.store).Return("CA$19.99", nil)

	out, err := NewProductConverter(prices).Convert(context.Background(), p, s.store, s.en)

	require.NoError(t, err)
	assert.Nil(t, out.Manufacturer)
	assert.Empty(t, out.Description.Name)
}

func TestProductConverter_PriceFailureIsConversionError(t *testing.T) {
	s := newScope(t)
	p := newProduct(t, s, "TB-1")
	prices := new(MockPriceFormatter)
	prices.On("Format", mock.Anything, s.store).Return("", errors.New("unknown currency XYZ"))

	_, err := NewProductConverter(prices).Convert(context.Background(), p, s.store, s.en)

	var de *shared.DomainError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, shared.KindConversion, de.Kind)
	assert.Equal(t, "Cannot format price of product TB-1: unknown currency XYZ", de.Detail())
}

func TestProductMerger(t *testing.T) {
	ctx := context.Background()
	s := newScope(t)
	acme := newManufacturer(t, s.store.ID, "acme")
	class, err := tax.NewTaxClass(s.store.ID, "DEFAULT", "Default")
	require.NoError(t, err)

	t.Run("resolves manufacturer and tax class", func(t *testing.T) {
		_, m := newProductService()
		m.manufacturers.On("FindByCode", ctx, s.store.ID, "acme").Return(acme, nil)
		m.taxClasses.On("FindByCode", ctx, s.store.ID, "DEFAULT").Return(class, nil)
		m.languages.On("FindByCode", ctx, "en").Return(s.en, nil)
		merger := NewProductMerger(m.languages, m.manufacturers, m.taxClasses)
		p := newProduct(t, s, "TB-1")
		available := false

		out, err := merger.Merge(ctx, &PersistableProduct{
			Sku:          "TB-2",
			Price:        ptr(decimal.RequireFromString("5.50")),
			Quantity:     ptr(2),
			Available:    &available,
			Manufacturer: "acme",
			TaxClass:     "DEFAULT",
			Descriptions: []mapper.PersistableDescription{{Language: "en", Name: "Chair"}},
		}, p, s.store, s.en)

		require.NoError(t, err)
		assert.Equal(t, "TB-2", out.Sku)
		assert.True(t, decimal.RequireFromString("5.5").Equal(out.Price))
		assert.False(t, out.Available)
		assert.True(t, out.Shippable)
		assert.Equal(t, acme.ID, *out.ManufacturerID)
		assert.Equal(t, "DEFAULT", out.TaxClassCode)
		assert.Equal(t, []string{"en"}, out.Descriptions.Languages())
	})

	t.Run("unknown manufacturer names the code", func(t *testing.T) {
		_, m := newProductService()
		m.manufacturers.On("FindByCode", ctx, s.store.ID, "nobody").Return(nil, shared.ErrNotFound)
		merger := NewProductMerger(m.languages, m.manufacturers, m.taxClasses)

		_, err := merger.Merge(ctx, &PersistableProduct{Sku: "TB-1", Manufacturer: "nobody"}, newProduct(t, s, "TB-1"), s.store, s.en)

		assert.Equal(t, shared.KindValidation, shared.KindOf(err))
		assert.Contains(t, err.Error(), "nobody")
	})

	t.Run("unknown tax class names the code", func(t *testing.T) {
		_, m := newProductService()
		m.taxClasses.On("FindByCode", ctx, s.store.ID, "LUXURY").Return(nil, shared.ErrNotFound)
		merger := NewProductMerger(m.languages, m.manufacturers, m.taxClasses)

		_, err := merger.Merge(ctx, &PersistableProduct{Sku: "TB-1", TaxClass: "LUXURY"}, newProduct(t, s, "TB-1"), s.store, s.en)

		assert.Equal(t, shared.KindValidation, shared.KindOf(err))
		assert.Contains(t, err.Error(), "LUXURY")
	})

	t.Run("omitted fields keep stored values", func(t *testing.T) {
		_, m := newProductService()
		merger := NewProductMerger(m.languages, m.manufacturers, m.taxClasses)
		p := newProduct(t, s, "TB-1")
		require.NoError(t, p.AttachManufacturer(acme))
		p.SetTaxClass(class.ID, class.Code)
		p.Weight = decimal.RequireFromString("2.5")
		p.Virtual = true
		p.Available = false
		p.SortOrder = 4
		launch := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
		p.DateAvailable = &launch
		p.Descriptions = shared.DescriptionSet{{LanguageID: s.en.ID, LanguageCode: "en", Name: "Table"}}

		out, err := merger.Merge(ctx, &PersistableProduct{Sku: "TB-1"}, p, s.store, s.en)

		require.NoError(t, err)
		assert.True(t, decimal.RequireFromString("19.99").Equal(out.Price))
		assert.Equal(t, 5, out.Quantity)
		assert.True(t, decimal.RequireFromString("2.5").Equal(out.Weight))
		assert.True(t, out.Virtual)
		assert.False(t, out.Available)
		assert.Equal(t, 4, out.SortOrder)
		assert.Equal(t, &launch, out.DateAvailable)
		assert.Equal(t, acme.ID, *out.ManufacturerID)
		assert.Equal(t, "DEFAULT", out.TaxClassCode)
		assert.Equal(t, "Table", out.Descriptions[0].Name)
	})

	t.Run("explicit zero quantity is applied", func(t *testing.T) {
		_, m := newProductService()
		merger := NewProductMerger(m.languages, m.manufacturers, m.taxClasses)

		out, err := merger.Merge(ctx, &PersistableProduct{Sku: "TB-1", Quantity: ptr(0)}, newProduct(t, s, "TB-1"), s.store, s.en)

		require.NoError(t, err)
		assert.Zero(t, out.Quantity)
		assert.True(t, decimal.RequireFromString("19.99").Equal(out.Price))
	})

	t.Run("negative price", func(t *testing.T) {
		_, m := newProductService()
		merger := NewProductMerger(m.languages, m.manufacturers, m.taxClasses)

		_, err := merger.Merge(ctx, &PersistableProduct{Sku: "TB-1", Price: ptr(decimal.NewFromInt(-1))}, newProduct(t, s, "TB-1"), s.store, s.en)

		assert.Equal(t, shared.KindValidation, shared.KindOf(err))
	})
}

func TestProductService_Get_OtherStoreIsNotFound(t *testing.T) {
	ctx := context.Background()
	s := newScope(t)
	svc, m := newProductService()
	p := newProduct(t, s, "TB-1")
	p.StoreID = s.other.ID
	m.products.On("FindByID", ctx, p.ID).Return(p, nil)

	_, err := svc.Get(ctx, s.store, s.en, p.ID)

	assert.True(t, errors.Is(err, shared.ErrNotFound))
	m.prices.AssertNotCalled(t, "Format", mock.Anything, mock.Anything)
}

func TestProductService_List_UnknownManufacturerMatchesNothing(t *testing.T) {
	ctx := context.Background()
	s := newScope(t)
	svc, m := newProductService()
	m.manufacturers.On("FindByCode", ctx, s.store.ID, "nobody").Return(nil, shared.ErrNotFound)

	page, err := svc.List(ctx, s.store, s.en, ProductListCriteria{Manufacturer: "nobody"}, 0, 0)

	require.NoError(t, err)
	assert.Empty(t, page.Items)
	assert.Equal(t, int64(0), page.Total)
	m.products.AssertNotCalled(t, "FindAll", mock.Anything, mock.Anything, mock.Anything)
}

func TestProductService_List_ByManufacturer(t *testing.T) {
	ctx := context.Background()
	s := newScope(t)
	svc, m := newProductService()
	acme := newManufacturer(t, s.store.ID, "acme")
	p := newProduct(t, s, "TB-1")
	m.manufacturers.On("FindByCode", ctx, s.store.ID, "acme").Return(acme, nil)
	m.products.On("FindPage", ctx, s.store.ID, mock.MatchedBy(func(c catalog.ProductCriteria) bool {
		return c.ManufacturerID != nil && *c.ManufacturerID == acme.ID
	}), shared.PageRequest{Page: 0, Count: 10}).Return([]catalog.Product{*p}, int64(1), nil)
	m.prices.On("Format", mock.Anything, s.store).Return("CA$19.99", nil)

	page, err := svc.List(ctx, s.store, s.en, ProductListCriteria{Manufacturer: "acme"}, 0, 10)

	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, 1, page.TotalPages)
}

func TestProductService_Create(t *testing.T) {
	ctx := context.Background()
	s := newScope(t)

	t.Run("duplicate sku", func(t *testing.T) {
		svc, m := newProductService()
		m.products.On("ExistsBySku", ctx, s.store.ID, "TB-1").Return(true, nil)

		_, err := svc.Create(ctx, s.store, s.en, PersistableProduct{Sku: "TB-1"})

		assert.True(t, errors.Is(err, shared.ErrAlreadyExists))
	})

	t.Run("creates", func(t *testing.T) {
		svc, m := newProductService()
		m.products.On("ExistsBySku", ctx, s.store.ID, "TB-1").Return(false, nil)
		m.products.On("Save", ctx, mock.AnythingOfType("*catalog.Product")).Return(nil)
		m.prices.On("Format", mock.Anything, s.store).Return("CA$9.00", nil)

		out, err := svc.Create(ctx, s.store, s.en, PersistableProduct{Sku: "TB-1", Price: ptr(decimal.NewFromInt(9)), Quantity: ptr(1)})

		require.NoError(t, err)
		assert.Equal(t, "CA$9.00", out.FinalPrice)
		assert.True(t, out.Available)
		m.products.AssertExpectations(t)
	})
}

func TestProductService_Delete(t *testing.T) {
	ctx := context.Background()
	s := newScope(t)
	svc, m := newProductService()
	p := newProduct(t, s, "TB-1")
	m.products.On("FindByID", ctx, p.ID).Return(p, nil)
	m.products.On("Delete", ctx, p.ID).Return(nil)

	require.NoError(t, svc.Delete(ctx, s.store, p.ID))
	m.products.AssertExpectations(t)
}
