package content

import (
	"context"
	"strings"

	"github.com/shopizer/backend/internal/application/mapper"
	"github.com/shopizer/backend/internal/domain/content"
	"github.com/shopizer/backend/internal/domain/merchant"
	"github.com/shopizer/backend/internal/domain/reference"
	"github.com/shopizer/backend/internal/domain/shared"
)

// ContentConverter converts content items
type ContentConverter struct {
	opts mapper.Options
}

// NewContentConverter creates a ContentConverter. Exact language match by default.
func NewContentConverter(opts ...mapper.Option) *ContentConverter {
	return &ContentConverter{opts: mapper.NewOptions(shared.LocaleExactOnly, opts...)}
}

// Convert implements mapper.ReadableConverter
func (c *ContentConverter) Convert(ctx context.Context, source *content.Content, store *merchant.Store, lang *reference.Language) (*ReadableContent, error) {
	return c.Merge(ctx, source, &ReadableContent{}, store, lang)
}

// Merge implements mapper.ReadableConverter
func (c *ContentConverter) Merge(_ context.Context, source *content.Content, target *ReadableContent, store *merchant.Store, lang *reference.Language) (*ReadableContent, error) {
	if err := mapper.RequireSource(source, "Content"); err != nil {
		return nil, err
	}
	if err := mapper.RequireTarget(target, "Content"); err != nil {
		return nil, err
	}
	if err := mapper.RequireScope(store, lang); err != nil {
		return nil, err
	}
	target.ID = source.ID
	target.Code = source.Code
	target.Type = string(source.Type)
	target.Visible = source.Visible
	target.LinkToMenu = source.LinkToMenu
	target.Order = source.SortOrder
	target.ProductGroup = source.ProductGroup
	if len(source.Descriptions) > 0 {
		target.Description = mapper.ProjectDescription(source.Descriptions, lang, c.opts.LocalePolicy)
		target.Descriptions = mapper.AllDescriptions(source.Descriptions)
	}
	return target, nil
}

// ContentMerger applies PersistableContent payloads
type ContentMerger struct {
	languages mapper.LanguageResolver
}

// NewContentMerger creates a ContentMerger
func NewContentMerger(languages mapper.LanguageResolver) *ContentMerger {
	return &ContentMerger{languages: languages}
}

// Merge implements mapper.PersistableMerger
func (m *ContentMerger) Merge(ctx context.Context, source *PersistableContent, target *content.Content, store *merchant.Store, lang *reference.Language) (*content.Content, error) {
	if err := mapper.RequireSource(source, "Content"); err != nil {
		return nil, err
	}
	if err := mapper.RequireTarget(target, "Content"); err != nil {
		return nil, err
	}
	if err := mapper.RequireScope(store, lang); err != nil {
		return nil, err
	}
	code := strings.TrimSpace(source.Code)
	if code == "" {
		return nil, shared.NewValidationError("INVALID_CONTENT", "Content code cannot be empty")
	}
	target.Code = code
	if source.Type != "" {
		typ, err := content.ParseType(source.Type)
		if err != nil {
			return nil, err
		}
		target.Type = typ
	}
	mapper.Patch(&target.Visible, source.Visible)
	mapper.Patch(&target.LinkToMenu, source.LinkToMenu)
	mapper.Patch(&target.SortOrder, source.Order)
	mapper.Patch(&target.ProductGroup, source.ProductGroup)
	if err := mapper.MergeDescriptions(ctx, m.languages, target.ID, &target.Descriptions, source.Descriptions); err != nil {
		return nil, err
	}
	target.Touch()
	return target, nil
}
