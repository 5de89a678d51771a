package catalog

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopizer/backend/internal/application/mapper"
	"github.com/shopizer/backend/internal/domain/catalog"
	"github.com/shopizer/backend/internal/domain/merchant"
	"github.com/shopizer/backend/internal/domain/reference"
	"github.com/shopizer/backend/internal/domain/shared"
	"github.com/shopizer/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

func manufacturerNotFound(id uuid.UUID) error {
	return shared.NewNotFoundError("MANUFACTURER_NOT_FOUND", "Manufacturer "+id.String()+" not found")
}

// ManufacturerService handles manufacturer operations
type ManufacturerService struct {
	repo      catalog.ManufacturerRepository
	converter mapper.ReadableConverter[catalog.Manufacturer, ReadableManufacturer]
	merger    mapper.PersistableMerger[PersistableManufacturer, catalog.Manufacturer]
	logger    *zap.Logger
}

// NewManufacturerService creates a new ManufacturerService
func NewManufacturerService(
	repo catalog.ManufacturerRepository,
	converter mapper.ReadableConverter[catalog.Manufacturer, ReadableManufacturer],
	merger mapper.PersistableMerger[PersistableManufacturer, catalog.Manufacturer],
	logger *zap.Logger,
) *ManufacturerService {
	return &ManufacturerService{repo: repo, converter: converter, merger: merger, logger: logger}
}

// List returns the manufacturers of store. page == 0 && count == 0 lists all.
func (s *ManufacturerService) List(ctx context.Context, store *merchant.Store, lang *reference.Language, criteria ManufacturerListCriteria, page, count int) (*shared.Paginated[ReadableManufacturer], error) {
	if err := mapper.RequireScope(store, lang); err != nil {
		return nil, err
	}
	c := catalog.ManufacturerCriteria{Name: criteria.Name, Code: criteria.Code}
	src := mapper.Source[catalog.Manufacturer]{
		All: func(ctx context.Context) ([]catalog.Manufacturer, error) {
			return s.repo.FindAll(ctx, store.ID, c)
		},
		Count: func(ctx context.Context) (int64, error) {
			return s.repo.Count(ctx, store.ID, c)
		},
		Page: func(ctx context.Context, p shared.PageRequest) ([]catalog.Manufacturer, int64, error) {
			return s.repo.FindPage(ctx, store.ID, c, p)
		},
	}
	return mapper.List(ctx, src, s.converter, store, lang, page, count)
}

// load finds a manufacturer of store. One owned by another store is reported as not found.
func (s *ManufacturerService) load(ctx context.Context, store *merchant.Store, id uuid.UUID) (*catalog.Manufacturer, error) {
	m, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, manufacturerNotFound(id)
		}
		return nil, err
	}
	if err := shared.EnsureSameStore(m, store.ID, manufacturerNotFound(id)); err != nil {
		return nil, err
	}
	return m, nil
}

// Get returns a manufacturer of store
func (s *ManufacturerService) Get(ctx context.Context, store *merchant.Store, lang *reference.Language, id uuid.UUID) (*ReadableManufacturer, error) {
	if err := mapper.RequireScope(store, lang); err != nil {
		return nil, err
	}
	m, err := s.load(ctx, store, id)
	if err != nil {
		return nil, err
	}
	return s.converter.Convert(ctx, m, store, lang)
}

// Exists reports whether store has a manufacturer with code
func (s *ManufacturerService) Exists(ctx context.Context, store *merchant.Store, code string) (bool, error) {
	if store == nil {
		return false, shared.NewInvalidArgumentError("Merchant store cannot be null")
	}
	return s.repo.ExistsByCode(ctx, store.ID, code)
}

// Create creates a manufacturer in store
func (s *ManufacturerService) Create(ctx context.Context, store *merchant.Store, lang *reference.Language, req PersistableManufacturer) (_ *ReadableManufacturer, err error) {
	if err := mapper.RequireScope(store, lang); err != nil {
		return nil, err
	}
	ctx, span := telemetry.StartServiceSpan(ctx, "manufacturer", "create",
		telemetry.AttrStoreCode.String(store.Code),
		telemetry.AttrEntityCode.String(req.Code))
	defer telemetry.EndSpan(span, &err)

	exists, err := s.repo.ExistsByCode(ctx, store.ID, req.Code)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.ErrAlreadyExists.WithMessage("Manufacturer with code %s already exists", req.Code)
	}

	m, err := catalog.NewManufacturer(store.ID, req.Code)
	if err != nil {
		return nil, err
	}
	if _, err := s.merger.Merge(ctx, &req, m, store, lang); err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, m); err != nil {
		s.logger.Error("Failed to save manufacturer", zap.String("code", req.Code), zap.Error(err))
		return nil, err
	}
	return s.converter.Convert(ctx, m, store, lang)
}

// Update updates a manufacturer of store
func (s *ManufacturerService) Update(ctx context.Context, store *merchant.Store, lang *reference.Language, id uuid.UUID, req PersistableManufacturer) (*ReadableManufacturer, error) {
	if err := mapper.RequireScope(store, lang); err != nil {
		return nil, err
	}
	m, err := s.load(ctx, store, id)
	if err != nil {
		return nil, err
	}
	if req.Code != m.Code {
		exists, err := s.repo.ExistsByCode(ctx, store.ID, req.Code)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, shared.ErrAlreadyExists.WithMessage("Manufacturer with code %s already exists", req.Code)
		}
	}

	if _, err := s.merger.Merge(ctx, &req, m, store, lang); err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, m); err != nil {
		s.logger.Error("Failed to update manufacturer", zap.String("id", id.String()), zap.Error(err))
		return nil, err
	}
	return s.converter.Convert(ctx, m, store, lang)
}

// Delete removes a manufacturer of store. Manufacturers still attached to
// products cannot be removed.
func (s *ManufacturerService) Delete(ctx context.Context, store *merchant.Store, id uuid.UUID) error {
	if store == nil {
		return shared.NewInvalidArgumentError("Merchant store cannot be null")
	}
	ctx, span := telemetry.StartServiceSpan(ctx, "manufacturer", "delete",
		telemetry.AttrStoreCode.String(store.Code),
		telemetry.AttrEntityID.String(id.String()))
	var err error
	defer telemetry.EndSpan(span, &err)

	if _, err = s.load(ctx, store, id); err != nil {
		return err
	}
	var products int64
	products, err = s.repo.CountProducts(ctx, id)
	if err != nil {
		return err
	}
	if products > 0 {
		err = shared.NewValidationError("MANUFACTURER_IN_USE", "Manufacturer is still attached to products")
		return err
	}
	err = s.repo.Delete(ctx, id)
	return err
}
