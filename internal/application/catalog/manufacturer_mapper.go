package catalog

import (
	"context"

	"github.com/shopizer/backend/internal/application/mapper"
	"github.com/shopizer/backend/internal/domain/catalog"
	"github.com/shopizer/backend/internal/domain/merchant"
	"github.com/shopizer/backend/internal/domain/reference"
	"github.com/shopizer/backend/internal/domain/shared"
)

// ManufacturerConverter converts manufacturers. The description falls back
// to the first available language unless configured otherwise.
type ManufacturerConverter struct {
	opts mapper.Options
}

// NewManufacturerConverter creates a ManufacturerConverter
func NewManufacturerConverter(opts ...mapper.Option) *ManufacturerConverter {
	return &ManufacturerConverter{opts: mapper.NewOptions(shared.LocaleExactOrFirst, opts...)}
}

// Convert implements mapper.ReadableConverter
func (c *ManufacturerConverter) Convert(ctx context.Context, source *catalog.Manufacturer, store *merchant.Store, lang *reference.Language) (*ReadableManufacturer, error) {
	return c.Merge(ctx, source, &ReadableManufacturer{}, store, lang)
}

// Merge implements mapper.ReadableConverter
func (c *ManufacturerConverter) Merge(_ context.Context, source *catalog.Manufacturer, target *ReadableManufacturer, store *merchant.Store, lang *reference.Language) (*ReadableManufacturer, error) {
	if err := mapper.RequireSource(source, "Manufacturer"); err != nil {
		return nil, err
	}
	if err := mapper.RequireTarget(target, "Manufacturer"); err != nil {
		return nil, err
	}
	if err := mapper.RequireScope(store, lang); err != nil {
		return nil, err
	}

	target.ID = source.ID
	target.Code = source.Code
	target.Order = source.SortOrder
	target.Image = source.Image
	target.Description = mapper.ProjectDescription(source.Descriptions, lang, c.opts.LocalePolicy)
	return target, nil
}

// ManufacturerMerger applies PersistableManufacturer payloads
type ManufacturerMerger struct {
	languages mapper.LanguageResolver
}

// NewManufacturerMerger creates a ManufacturerMerger
func NewManufacturerMerger(languages mapper.LanguageResolver) *ManufacturerMerger {
	return &ManufacturerMerger{languages: languages}
}

// Merge implements mapper.PersistableMerger
func (m *ManufacturerMerger) Merge(ctx context.Context, source *PersistableManufacturer, target *catalog.Manufacturer, store *merchant.Store, lang *reference.Language) (*catalog.Manufacturer, error) {
	if err := mapper.RequireSource(source, "Manufacturer"); err != nil {
		return nil, err
	}
	if err := mapper.RequireTarget(target, "Manufacturer"); err != nil {
		return nil, err
	}
	if err := mapper.RequireScope(store, lang); err != nil {
		return nil, err
	}

	if err := target.SetCode(source.Code); err != nil {
		return nil, err
	}
	mapper.Patch(&target.SortOrder, source.Order)
	mapper.Patch(&target.Image, source.Image)
	if err := mapper.MergeDescriptions(ctx, m.languages, target.ID, &target.Descriptions, source.Descriptions); err != nil {
		return nil, err
	}
	return target, nil
}
