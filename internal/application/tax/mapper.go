package tax

import (
	"context"
	"errors"
	"strings"

	"github.com/shopizer/backend/internal/application/mapper"
	"github.com/shopizer/backend/internal/domain/merchant"
	"github.com/shopizer/backend/internal/domain/reference"
	"github.com/shopizer/backend/internal/domain/shared"
	"github.com/shopizer/backend/internal/domain/tax"
)

// TaxClassConverter converts tax classes
type TaxClassConverter struct{}

// Convert implements mapper.ReadableConverter
func (c TaxClassConverter) Convert(ctx context.Context, source *tax.TaxClass, store *merchant.Store, lang *reference.Language) (*ReadableTaxClass, error) {
	return c.Merge(ctx, source, &ReadableTaxClass{}, store, lang)
}

// Merge implements mapper.ReadableConverter
func (TaxClassConverter) Merge(_ context.Context, source *tax.TaxClass, target *ReadableTaxClass, store *merchant.Store, lang *reference.Language) (*ReadableTaxClass, error) {
	if err := mapper.RequireSource(source, "Tax class"); err != nil {
		return nil, err
	}
	if err := mapper.RequireScope(store, lang); err != nil {
		return nil, err
	}
	target.ID = source.ID
	target.Code = source.Code
	target.Name = source.Title
	target.Store = store.Code
	return target, nil
}

// TaxClassMerger applies PersistableTaxClass payloads
type TaxClassMerger struct{}

// Merge implements mapper.PersistableMerger
func (TaxClassMerger) Merge(_ context.Context, source *PersistableTaxClass, target *tax.TaxClass, store *merchant.Store, lang *reference.Language) (*tax.TaxClass, error) {
	if err := mapper.RequireSource(source, "Tax class"); err != nil {
		return nil, err
	}
	if err := mapper.RequireTarget(target, "Tax class"); err != nil {
		return nil, err
	}
	if err := mapper.RequireScope(store, lang); err != nil {
		return nil, err
	}
	code := strings.TrimSpace(source.Code)
	if code == "" {
		return nil, shared.NewValidationError("INVALID_TAX_CLASS", "Tax class code cannot be empty")
	}
	target.Code = code
	mapper.Patch(&target.Title, source.Name)
	target.Touch()
	return target, nil
}

// TaxRateConverter converts tax rates. Only an exact description match is
// projected unless configured otherwise.
type TaxRateConverter struct {
	opts mapper.Options
}

// NewTaxRateConverter creates a TaxRateConverter
func NewTaxRateConverter(opts ...mapper.Option) *TaxRateConverter {
	return &TaxRateConverter{opts: mapper.NewOptions(shared.LocaleExactOnly, opts...)}
}

// Convert implements mapper.ReadableConverter
func (c *TaxRateConverter) Convert(ctx context.Context, source *tax.TaxRate, store *merchant.Store, lang *reference.Language) (*ReadableTaxRate, error) {
	return c.Merge(ctx, source, &ReadableTaxRate{}, store, lang)
}

// Merge implements mapper.ReadableConverter
func (c *TaxRateConverter) Merge(_ context.Context, source *tax.TaxRate, target *ReadableTaxRate, store *merchant.Store, lang *reference.Language) (*ReadableTaxRate, error) {
	if err := mapper.RequireSource(source, "Tax rate"); err != nil {
		return nil, err
	}
	if err := mapper.RequireTarget(target, "Tax rate"); err != nil {
		return nil, err
	}
	if err := mapper.RequireScope(store, lang); err != nil {
		return nil, err
	}
	target.ID = source.ID
	target.Code = source.Code
	target.Rate = source.Rate
	target.Priority = source.Priority
	target.Compound = source.Compound
	target.Country = source.CountryCode
	target.Zone = source.ZoneCode
	target.Store = store.Code
	if source.TaxClass != nil {
		target.TaxClass = source.TaxClass.Code
	}
	if len(source.Descriptions) > 0 {
		target.Description = mapper.ProjectDescription(source.Descriptions, lang, c.opts.LocalePolicy)
		target.Descriptions = mapper.AllDescriptions(source.Descriptions)
	}
	return target, nil
}

// TaxRateMerger applies PersistableTaxRate payloads, resolving the tax class,
// country and zone codes
type TaxRateMerger struct {
	languages  mapper.LanguageResolver
	taxClasses tax.TaxClassRepository
	countries  reference.CountryRepository
	zones      reference.ZoneRepository
}

// NewTaxRateMerger creates a TaxRateMerger
func NewTaxRateMerger(
	languages mapper.LanguageResolver,
	taxClasses tax.TaxClassRepository,
	countries reference.CountryRepository,
	zones reference.ZoneRepository,
) *TaxRateMerger {
	return &TaxRateMerger{languages: languages, taxClasses: taxClasses, countries: countries, zones: zones}
}

// Merge implements mapper.PersistableMerger
func (m *TaxRateMerger) Merge(ctx context.Context, source *PersistableTaxRate, target *tax.TaxRate, store *merchant.Store, lang *reference.Language) (*tax.TaxRate, error) {
	if err := mapper.RequireSource(source, "Tax rate"); err != nil {
		return nil, err
	}
	if err := mapper.RequireTarget(target, "Tax rate"); err != nil {
		return nil, err
	}
	if err := mapper.RequireScope(store, lang); err != nil {
		return nil, err
	}

	code := strings.TrimSpace(source.Code)
	if code == "" {
		return nil, shared.NewValidationError("INVALID_TAX_RATE", "Tax rate code cannot be empty")
	}
	target.Code = code
	if source.Rate != nil {
		if err := target.SetRate(*source.Rate); err != nil {
			return nil, err
		}
	}
	mapper.Patch(&target.Priority, source.Priority)
	mapper.Patch(&target.Compound, source.Compound)

	if source.TaxClass != "" {
		class, err := m.taxClasses.FindByCode(ctx, store.ID, source.TaxClass)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return nil, shared.NewValidationError("INVALID_TAX_CLASS", "Tax class "+source.TaxClass+" not found")
			}
			return nil, err
		}
		target.TaxClassID = &class.ID
		target.TaxClass = class
	}

	if source.Country != "" {
		country, err := m.countries.FindByIsoCode(ctx, strings.ToUpper(source.Country))
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return nil, shared.NewValidationError("INVALID_COUNTRY", "Country "+source.Country+" not found")
			}
			return nil, err
		}
		target.CountryID = &country.ID
		target.CountryCode = country.IsoCode
	}

	if source.Zone != "" {
		zone, err := m.zones.FindByCode(ctx, strings.ToUpper(source.Zone))
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return nil, shared.NewValidationError("INVALID_ZONE", "Zone "+source.Zone+" not found")
			}
			return nil, err
		}
		if target.CountryCode != "" && zone.CountryCode != target.CountryCode {
			return nil, shared.NewValidationError("INVALID_ZONE", "Zone "+source.Zone+" is not in country "+target.CountryCode)
		}
		target.ZoneID = &zone.ID
		target.ZoneCode = zone.Code
	}

	if err := mapper.MergeDescriptions(ctx, m.languages, target.ID, &target.Descriptions, source.Descriptions); err != nil {
		return nil, err
	}
	target.Touch()
	return target, nil
}
