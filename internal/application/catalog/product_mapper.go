package catalog

import (
	"context"
	"errors"
	"time"

	"github.com/shopizer/backend/internal/application/mapper"
	"github.com/shopizer/backend/internal/domain/catalog"
	"github.com/shopizer/backend/internal/domain/merchant"
	"github.com/shopizer/backend/internal/domain/reference"
	"github.com/shopizer/backend/internal/domain/shared"
	"github.com/shopizer/backend/internal/domain/tax"
)

// ProductConverter converts products with their manufacturer and a price
// formatted for the store
type ProductConverter struct {
	opts          mapper.Options
	prices        mapper.PriceFormatter
	manufacturers *ManufacturerConverter
	now           func() time.Time
}

// NewProductConverter creates a ProductConverter
func NewProductConverter(prices mapper.PriceFormatter, opts ...mapper.Option) *ProductConverter {
	return &ProductConverter{
		opts:          mapper.NewOptions(shared.LocaleExactOrFirst, opts...),
		prices:        prices,
		manufacturers: NewManufacturerConverter(opts...),
		now:           time.Now,
	}
}

// Convert implements mapper.ReadableConverter
func (c *ProductConverter) Convert(ctx context.Context, source *catalog.Product, store *merchant.Store, lang *reference.Language) (*ReadableProduct, error) {
	return c.Merge(ctx, source, &ReadableProduct{}, store, lang)
}

// Merge implements mapper.ReadableConverter
func (c *ProductConverter) Merge(ctx context.Context, source *catalog.Product, target *ReadableProduct, store *merchant.Store, lang *reference.Language) (*ReadableProduct, error) {
	if err := mapper.RequireSource(source, "Product"); err != nil {
		return nil, err
	}
	if err := mapper.RequireTarget(target, "Product"); err != nil {
		return nil, err
	}
	if err := mapper.RequireScope(store, lang); err != nil {
		return nil, err
	}

	target.ID = source.ID
	target.Sku = source.Sku
	target.Price = source.Price
	target.Quantity = source.Quantity
	target.Available = source.Available
	target.Shippable = source.Shippable
	target.Virtual = source.Virtual
	target.SortOrder = source.SortOrder
	target.Weight = source.Weight
	target.DateAvailable = source.DateAvailable
	target.CanBePurchased = source.IsPurchasable(c.now())
	target.TaxClass = source.TaxClassCode
	target.Description = mapper.ProjectDescription(source.Descriptions, lang, c.opts.LocalePolicy)

	price, err := c.prices.Format(source.Price, store)
	if err != nil {
		return nil, shared.NewConversionError("Cannot format price of product "+source.Sku, err)
	}
	target.FinalPrice = price

	if source.Manufacturer != nil {
		m, err := c.manufacturers.Convert(ctx, source.Manufacturer, store, lang)
		if err != nil {
			return nil, err
		}
		target.Manufacturer = m
	}
	return target, nil
}

// ProductMerger applies PersistableProduct payloads, resolving the
// manufacturer and tax class codes within the store
type ProductMerger struct {
	languages     mapper.LanguageResolver
	manufacturers catalog.ManufacturerRepository
	taxClasses    tax.TaxClassRepository
}

// NewProductMerger creates a ProductMerger
func NewProductMerger(languages mapper.LanguageResolver, manufacturers catalog.ManufacturerRepository, taxClasses tax.TaxClassRepository) *ProductMerger {
	return &ProductMerger{languages: languages, manufacturers: manufacturers, taxClasses: taxClasses}
}

// Merge implements mapper.PersistableMerger
func (m *ProductMerger) Merge(ctx context.Context, source *PersistableProduct, target *catalog.Product, store *merchant.Store, lang *reference.Language) (*catalog.Product, error) {
	if err := mapper.RequireSource(source, "Product"); err != nil {
		return nil, err
	}
	if err := mapper.RequireTarget(target, "Product"); err != nil {
		return nil, err
	}
	if err := mapper.RequireScope(store, lang); err != nil {
		return nil, err
	}

	target.Sku = source.Sku
	if source.Price != nil {
		if err := target.SetPrice(*source.Price); err != nil {
			return nil, err
		}
	}
	if source.Quantity != nil {
		if err := target.SetQuantity(*source.Quantity); err != nil {
			return nil, err
		}
	}
	if source.Weight != nil && source.Weight.IsNegative() {
		return nil, shared.NewValidationError("INVALID_WEIGHT", "Weight cannot be negative")
	}
	mapper.Patch(&target.Weight, source.Weight)
	mapper.Patch(&target.Available, source.Available)
	mapper.Patch(&target.Shippable, source.Shippable)
	mapper.Patch(&target.Virtual, source.Virtual)
	mapper.Patch(&target.SortOrder, source.SortOrder)
	if source.DateAvailable != nil {
		target.DateAvailable = source.DateAvailable
	}

	if source.Manufacturer != "" {
		manufacturer, err := m.manufacturers.FindByCode(ctx, store.ID, source.Manufacturer)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return nil, shared.NewValidationError("INVALID_MANUFACTURER", "Manufacturer "+source.Manufacturer+" not found")
			}
			return nil, err
		}
		if err := target.AttachManufacturer(manufacturer); err != nil {
			return nil, err
		}
	}

	if source.TaxClass != "" {
		class, err := m.taxClasses.FindByCode(ctx, store.ID, source.TaxClass)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return nil, shared.NewValidationError("INVALID_TAX_CLASS", "Tax class "+source.TaxClass+" not found")
			}
			return nil, err
		}
		target.SetTaxClass(class.ID, class.Code)
	}

	if err := mapper.MergeDescriptions(ctx, m.languages, target.ID, &target.Descriptions, source.Descriptions); err != nil {
		return nil, err
	}
	target.Touch()
	return target, nil
}
