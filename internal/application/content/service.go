package content

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopizer/backend/internal/application/mapper"
	"github.com/shopizer/backend/internal/domain/content"
	"github.com/shopizer/backend/internal/domain/merchant"
	"github.com/shopizer/backend/internal/domain/reference"
	"github.com/shopizer/backend/internal/domain/shared"
	"go.uber.org/zap"
)

func contentNotFound(key string) error {
	return shared.NewNotFoundError("CONTENT_NOT_FOUND", "Content "+key+" not found")
}

// ContentService handles CMS content operations
type ContentService struct {
	repo      content.Repository
	converter mapper.ReadableConverter[content.Content, ReadableContent]
	merger    mapper.PersistableMerger[PersistableContent, content.Content]
	logger    *zap.Logger
}

// NewContentService creates a ContentService
func NewContentService(
	repo content.Repository,
	converter mapper.ReadableConverter[content.Content, ReadableContent],
	merger mapper.PersistableMerger[PersistableContent, content.Content],
	logger *zap.Logger,
) *ContentService {
	return &ContentService{repo: repo, converter: converter, merger: merger, logger: logger}
}

// Pages lists the content pages of store
func (s *ContentService) Pages(ctx context.Context, store *merchant.Store, lang *reference.Language, page, count int) (*shared.Paginated[ReadableContent], error) {
	return s.List(ctx, store, lang, content.TypePage, page, count)
}

// List returns the content items of store with type typ. page == 0 && count == 0 lists all.
func (s *ContentService) List(ctx context.Context, store *merchant.Store, lang *reference.Language, typ content.Type, page, count int) (*shared.Paginated[ReadableContent], error) {
	if err := mapper.RequireScope(store, lang); err != nil {
		return nil, err
	}
	src := mapper.Source[content.Content]{
		All:   func(ctx context.Context) ([]content.Content, error) { return s.repo.FindByType(ctx, store.ID, typ) },
		Count: func(ctx context.Context) (int64, error) { return s.repo.Count(ctx, store.ID, typ) },
		Page: func(ctx context.Context, p shared.PageRequest) ([]content.Content, int64, error) {
			return s.repo.FindPage(ctx, store.ID, typ, p)
		},
	}
	return mapper.List(ctx, src, s.converter, store, lang, page, count)
}

// GetByCode returns the content item of store with code
func (s *ContentService) GetByCode(ctx context.Context, store *merchant.Store, lang *reference.Language, code string) (*ReadableContent, error) {
	if err := mapper.RequireScope(store, lang); err != nil {
		return nil, err
	}
	c, err := s.repo.FindByCode(ctx, store.ID, code)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, contentNotFound(code)
		}
		return nil, err
	}
	return s.converter.Convert(ctx, c, store, lang)
}

func (s *ContentService) load(ctx context.Context, store *merchant.Store, id uuid.UUID) (*content.Content, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, contentNotFound(id.String())
		}
		return nil, err
	}
	if err := shared.EnsureSameStore(c, store.ID, contentNotFound(id.String())); err != nil {
		return nil, err
	}
	return c, nil
}

// Get returns a content item of store by id
func (s *ContentService) Get(ctx context.Context, store *merchant.Store, lang *reference.Language, id uuid.UUID) (*ReadableContent, error) {
	if err := mapper.RequireScope(store, lang); err != nil {
		return nil, err
	}
	c, err := s.load(ctx, store, id)
	if err != nil {
		return nil, err
	}
	return s.converter.Convert(ctx, c, store, lang)
}

// Exists reports whether store has a content item with code
func (s *ContentService) Exists(ctx context.Context, store *merchant.Store, code string) (bool, error) {
	if store == nil {
		return false, shared.NewInvalidArgumentError("Merchant store cannot be null")
	}
	return s.repo.ExistsByCode(ctx, store.ID, code)
}

// Create creates a content item in store. The type defaults to PAGE.
func (s *ContentService) Create(ctx context.Context, store *merchant.Store, lang *reference.Language, req PersistableContent) (*ReadableContent, error) {
	if err := mapper.RequireScope(store, lang); err != nil {
		return nil, err
	}
	exists, err := s.repo.ExistsByCode(ctx, store.ID, req.Code)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.ErrAlreadyExists.WithMessage("Content with code %s already exists", req.Code)
	}
	typ := content.TypePage
	if req.Type != "" {
		if typ, err = content.ParseType(req.Type); err != nil {
			return nil, err
		}
	}
	c, err := content.NewContent(store.ID, req.Code, typ)
	if err != nil {
		return nil, err
	}
	if _, err := s.merger.Merge(ctx, &req, c, store, lang); err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, c); err != nil {
		s.logger.Error("Failed to save content", zap.String("code", req.Code), zap.Error(err))
		return nil, err
	}
	return s.converter.Convert(ctx, c, store, lang)
}

// Update updates a content item of store
func (s *ContentService) Update(ctx context.Context, store *merchant.Store, lang *reference.Language, id uuid.UUID, req PersistableContent) (*ReadableContent, error) {
	if err := mapper.RequireScope(store, lang); err != nil {
		return nil, err
	}
	c, err := s.load(ctx, store, id)
	if err != nil {
		return nil, err
	}
	if req.Code != c.Code {
		exists, err := s.repo.ExistsByCode(ctx, store.ID, req.Code)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, shared.ErrAlreadyExists.WithMessage("Content with code %s already exists", req.Code)
		}
	}
	if _, err := s.merger.Merge(ctx, &req, c, store, lang); err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, c); err != nil {
		s.logger.Error("Failed to update content", zap.String("id", id.String()), zap.Error(err))
		return nil, err
	}
	return s.converter.Convert(ctx, c, store, lang)
}

// Delete removes a content item of store
func (s *ContentService) Delete(ctx context.Context, store *merchant.Store, id uuid.UUID) error {
	if store == nil {
		return shared.NewInvalidArgumentError("Merchant store cannot be null")
	}
	if _, err := s.load(ctx, store, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
