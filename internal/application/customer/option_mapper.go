package customer

import (
	"context"
	"strings"

	"github.com/shopizer/backend/internal/application/mapper"
	"github.com/shopizer/backend/internal/domain/customer"
	"github.com/shopizer/backend/internal/domain/merchant"
	"github.com/shopizer/backend/internal/domain/reference"
	"github.com/shopizer/backend/internal/domain/shared"
)

// OptionConverter converts customer options
type OptionConverter struct {
	opts mapper.Options
}

// NewOptionConverter creates an OptionConverter. Exact language match by default.
func NewOptionConverter(opts ...mapper.Option) *OptionConverter {
	return &OptionConverter{opts: mapper.NewOptions(shared.LocaleExactOnly, opts...)}
}

// Convert implements mapper.ReadableConverter
func (c *OptionConverter) Convert(ctx context.Context, source *customer.Option, store *merchant.Store, lang *reference.Language) (*ReadableOption, error) {
	return c.Merge(ctx, source, &ReadableOption{}, store, lang)
}

// Merge implements mapper.ReadableConverter
func (c *OptionConverter) Merge(_ context.Context, source *customer.Option, target *ReadableOption, store *merchant.Store, lang *reference.Language) (*ReadableOption, error) {
	if err := mapper.RequireSource(source, "Customer option"); err != nil {
		return nil, err
	}
	if err := mapper.RequireTarget(target, "Customer option"); err != nil {
		return nil, err
	}
	if err := mapper.RequireScope(store, lang); err != nil {
		return nil, err
	}
	target.ID = source.ID
	target.Code = source.Code
	target.Type = string(source.Type)
	target.Active = source.Active
	target.Public = source.Public
	target.Order = source.SortOrder
	if len(source.Descriptions) > 0 {
		target.Description = mapper.ProjectDescription(source.Descriptions, lang, c.opts.LocalePolicy)
		target.Descriptions = mapper.AllDescriptions(source.Descriptions)
	}
	return target, nil
}

// OptionMerger applies PersistableOption payloads
type OptionMerger struct {
	languages mapper.LanguageResolver
}

// NewOptionMerger creates an OptionMerger
func NewOptionMerger(languages mapper.LanguageResolver) *OptionMerger {
	return &OptionMerger{languages: languages}
}

// Merge implements mapper.PersistableMerger
func (m *OptionMerger) Merge(ctx context.Context, source *PersistableOption, target *customer.Option, store *merchant.Store, lang *reference.Language) (*customer.Option, error) {
	if err := mapper.RequireSource(source, "Customer option"); err != nil {
		return nil, err
	}
	if err := mapper.RequireTarget(target, "Customer option"); err != nil {
		return nil, err
	}
	if err := mapper.RequireScope(store, lang); err != nil {
		return nil, err
	}
	code := strings.TrimSpace(source.Code)
	if code == "" {
		return nil, shared.NewValidationError("INVALID_OPTION", "Customer option code cannot be empty")
	}
	target.Code = code
	if source.Type != "" {
		typ := customer.OptionType(source.Type)
		if !typ.IsValid() {
			return nil, shared.NewValidationError("INVALID_OPTION", "Unknown customer option type "+source.Type)
		}
		target.Type = typ
	}
	if source.Active != nil {
		target.Active = *source.Active
	}
	mapper.Patch(&target.Public, source.Public)
	mapper.Patch(&target.SortOrder, source.Order)
	if err := mapper.MergeDescriptions(ctx, m.languages, target.ID, &target.Descriptions, source.Descriptions); err != nil {
		return nil, err
	}
	target.Touch()
	return target, nil
}

// OptionValueConverter converts customer option values
type OptionValueConverter struct {
	opts mapper.Options
}

// NewOptionValueConverter creates an OptionValueConverter. Exact language match by default.
func NewOptionValueConverter(opts ...mapper.Option) *OptionValueConverter {
	return &OptionValueConverter{opts: mapper.NewOptions(shared.LocaleExactOnly, opts...)}
}

// Convert implements mapper.ReadableConverter
func (c *OptionValueConverter) Convert(ctx context.Context, source *customer.OptionValue, store *merchant.Store, lang *reference.Language) (*ReadableOptionValue, error) {
	return c.Merge(ctx, source, &ReadableOptionValue{}, store, lang)
}

// Merge implements mapper.ReadableConverter
func (c *OptionValueConverter) Merge(_ context.Context, source *customer.OptionValue, target *ReadableOptionValue, store *merchant.Store, lang *reference.Language) (*ReadableOptionValue, error) {
	if err := mapper.RequireSource(source, "Customer option value"); err != nil {
		return nil, err
	}
	if err := mapper.RequireTarget(target, "Customer option value"); err != nil {
		return nil, err
	}
	if err := mapper.RequireScope(store, lang); err != nil {
		return nil, err
	}
	target.ID = source.ID
	target.Code = source.Code
	target.Order = source.SortOrder
	if len(source.Descriptions) > 0 {
		target.Description = mapper.ProjectDescription(source.Descriptions, lang, c.opts.LocalePolicy)
		target.Descriptions = mapper.AllDescriptions(source.Descriptions)
	}
	return target, nil
}

// OptionValueMerger applies PersistableOptionValue payloads
type OptionValueMerger struct {
	languages mapper.LanguageResolver
}

// NewOptionValueMerger creates an OptionValueMerger
func NewOptionValueMerger(languages mapper.LanguageResolver) *OptionValueMerger {
	return &OptionValueMerger{languages: languages}
}

// Merge implements mapper.PersistableMerger
func (m *OptionValueMerger) Merge(ctx context.Context, source *PersistableOptionValue, target *customer.OptionValue, store *merchant.Store, lang *reference.Language) (*customer.OptionValue, error) {
	if err := mapper.RequireSource(source, "Customer option value"); err != nil {
		return nil, err
	}
	if err := mapper.RequireTarget(target, "Customer option value"); err != nil {
		return nil, err
	}
	if err := mapper.RequireScope(store, lang); err != nil {
		return nil, err
	}
	code := strings.TrimSpace(source.Code)
	if code == "" {
		return nil, shared.NewValidationError("INVALID_OPTION_VALUE", "Customer option value code cannot be empty")
	}
	target.Code = code
	mapper.Patch(&target.SortOrder, source.Order)
	if err := mapper.MergeDescriptions(ctx, m.languages, target.ID, &target.Descriptions, source.Descriptions); err != nil {
		return nil, err
	}
	target.Touch()
	return target, nil
}
