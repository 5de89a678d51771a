package reference

import (
	"context"

	"github.com/shopizer/backend/internal/application/mapper"
	"github.com/shopizer/backend/internal/domain/merchant"
	"github.com/shopizer/backend/internal/domain/reference"
	"github.com/shopizer/backend/internal/domain/shared"
)

// LanguageConverter converts languages
type LanguageConverter struct{}

// Convert implements mapper.ReadableConverter
func (c LanguageConverter) Convert(ctx context.Context, source *reference.Language, store *merchant.Store, lang *reference.Language) (*ReadableLanguage, error) {
	return c.Merge(ctx, source, &ReadableLanguage{}, store, lang)
}

// Merge implements mapper.ReadableConverter
func (LanguageConverter) Merge(_ context.Context, source *reference.Language, target *ReadableLanguage, store *merchant.Store, lang *reference.Language) (*ReadableLanguage, error) {
	if err := mapper.RequireSource(source, "Language"); err != nil {
		return nil, err
	}
	if err := mapper.RequireScope(store, lang); err != nil {
		return nil, err
	}
	target.ID = source.ID
	target.Code = source.Code
	target.SortOrder = source.SortOrder
	return target, nil
}

// ZoneConverter converts zones, falling back to the first name by default
type ZoneConverter struct {
	opts mapper.Options
}

// NewZoneConverter creates a ZoneConverter
func NewZoneConverter(opts ...mapper.Option) *ZoneConverter {
	return &ZoneConverter{opts: mapper.NewOptions(shared.LocaleExactOrFirst, opts...)}
}

// Convert implements mapper.ReadableConverter
func (c *ZoneConverter) Convert(ctx context.Context, source *reference.Zone, store *merchant.Store, lang *reference.Language) (*ReadableZone, error) {
	return c.Merge(ctx, source, &ReadableZone{}, store, lang)
}

// Merge implements mapper.ReadableConverter
func (c *ZoneConverter) Merge(_ context.Context, source *reference.Zone, target *ReadableZone, store *merchant.Store, lang *reference.Language) (*ReadableZone, error) {
	if err := mapper.RequireSource(source, "Zone"); err != nil {
		return nil, err
	}
	if err := mapper.RequireScope(store, lang); err != nil {
		return nil, err
	}
	target.ID = source.ID
	target.Code = source.Code
	target.CountryCode = source.CountryCode
	target.Name = mapper.ProjectDescription(source.Descriptions, lang, c.opts.LocalePolicy).Name
	return target, nil
}

// CountryConverter converts countries and their zones
type CountryConverter struct {
	opts  mapper.Options
	zones *ZoneConverter
}

// NewCountryConverter creates a CountryConverter. The policy applies to the
// country and zone names alike.
func NewCountryConverter(opts ...mapper.Option) *CountryConverter {
	return &CountryConverter{
		opts:  mapper.NewOptions(shared.LocaleExactOrFirst, opts...),
		zones: NewZoneConverter(opts...),
	}
}

// Convert implements mapper.ReadableConverter
func (c *CountryConverter) Convert(ctx context.Context, source *reference.Country, store *merchant.Store, lang *reference.Language) (*ReadableCountry, error) {
	return c.Merge(ctx, source, &ReadableCountry{}, store, lang)
}

// Merge implements mapper.ReadableConverter
func (c *CountryConverter) Merge(ctx context.Context, source *reference.Country, target *ReadableCountry, store *merchant.Store, lang *reference.Language) (*ReadableCountry, error) {
	if err := mapper.RequireSource(source, "Country"); err != nil {
		return nil, err
	}
	if err := mapper.RequireScope(store, lang); err != nil {
		return nil, err
	}
	target.ID = source.ID
	target.Code = source.IsoCode
	target.Supported = source.Supported
	target.Name = mapper.ProjectDescription(source.Descriptions, lang, c.opts.LocalePolicy).Name

	zones, err := mapper.ConvertAll[reference.Zone, ReadableZone](ctx, c.zones, source.Zones, store, lang)
	if err != nil {
		return nil, err
	}
	target.Zones = zones
	return target, nil
}
