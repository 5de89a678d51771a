package tax

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopizer/backend/internal/application/mapper"
	"github.com/shopizer/backend/internal/domain/merchant"
	"github.com/shopizer/backend/internal/domain/reference"
	"github.com/shopizer/backend/internal/domain/shared"
	"github.com/shopizer/backend/internal/domain/tax"
	"go.uber.org/zap"
)

func taxClassNotFound(id uuid.UUID) error {
	return shared.NewNotFoundError("TAX_CLASS_NOT_FOUND", "Tax class "+id.String()+" not found")
}

func taxRateNotFound(id uuid.UUID) error {
	return shared.NewNotFoundError("TAX_RATE_NOT_FOUND", "Tax rate "+id.String()+" not found")
}

// TaxClassService handles tax class operations
type TaxClassService struct {
	repo      tax.TaxClassRepository
	converter mapper.ReadableConverter[tax.TaxClass, ReadableTaxClass]
	merger    mapper.PersistableMerger[PersistableTaxClass, tax.TaxClass]
	logger    *zap.Logger
}

// NewTaxClassService creates a TaxClassService
func NewTaxClassService(
	repo tax.TaxClassRepository,
	converter mapper.ReadableConverter[tax.TaxClass, ReadableTaxClass],
	merger mapper.PersistableMerger[PersistableTaxClass, tax.TaxClass],
	logger *zap.Logger,
) *TaxClassService {
	return &TaxClassService{repo: repo, converter: converter, merger: merger, logger: logger}
}

// List returns the tax classes of store. page == 0 && count == 0 lists all.
func (s *TaxClassService) List(ctx context.Context, store *merchant.Store, lang *reference.Language, page, count int) (*shared.Paginated[ReadableTaxClass], error) {
	if err := mapper.RequireScope(store, lang); err != nil {
		return nil, err
	}
	src := mapper.Source[tax.TaxClass]{
		All:   func(ctx context.Context) ([]tax.TaxClass, error) { return s.repo.FindAll(ctx, store.ID) },
		Count: func(ctx context.Context) (int64, error) { return s.repo.Count(ctx, store.ID) },
		Page: func(ctx context.Context, p shared.PageRequest) ([]tax.TaxClass, int64, error) {
			return s.repo.FindPage(ctx, store.ID, p)
		},
	}
	return mapper.List(ctx, src, s.converter, store, lang, page, count)
}

func (s *TaxClassService) load(ctx context.Context, store *merchant.Store, id uuid.UUID) (*tax.TaxClass, error) {
	class, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, taxClassNotFound(id)
		}
		return nil, err
	}
	if err := shared.EnsureSameStore(class, store.ID, taxClassNotFound(id)); err != nil {
		return nil, err
	}
	return class, nil
}

// Get returns a tax class of store
func (s *TaxClassService) Get(ctx context.Context, store *merchant.Store, lang *reference.Language, id uuid.UUID) (*ReadableTaxClass, error) {
	if err := mapper.RequireScope(store, lang); err != nil {
		return nil, err
	}
	class, err := s.load(ctx, store, id)
	if err != nil {
		return nil, err
	}
	return s.converter.Convert(ctx, class, store, lang)
}

// Exists reports whether store has a tax class with code
func (s *TaxClassService) Exists(ctx context.Context, store *merchant.Store, code string) (bool, error) {
	if store == nil {
		return false, shared.NewInvalidArgumentError("Merchant store cannot be null")
	}
	return s.repo.ExistsByCode(ctx, store.ID, code)
}

// Create creates a tax class in store
func (s *TaxClassService) Create(ctx context.Context, store *merchant.Store, lang *reference.Language, req PersistableTaxClass) (*ReadableTaxClass, error) {
	if err := mapper.RequireScope(store, lang); err != nil {
		return nil, err
	}
	exists, err := s.repo.ExistsByCode(ctx, store.ID, req.Code)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.ErrAlreadyExists.WithMessage("Tax class with code %s already exists", req.Code)
	}
	class, err := tax.NewTaxClass(store.ID, req.Code, "")
	if err != nil {
		return nil, err
	}
	if _, err := s.merger.Merge(ctx, &req, class, store, lang); err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, class); err != nil {
		s.logger.Error("Failed to save tax class", zap.String("code", req.Code), zap.Error(err))
		return nil, err
	}
	return s.converter.Convert(ctx, class, store, lang)
}

// Update updates a tax class of store
func (s *TaxClassService) Update(ctx context.Context, store *merchant.Store, lang *reference.Language, id uuid.UUID, req PersistableTaxClass) (*ReadableTaxClass, error) {
	if err := mapper.RequireScope(store, lang); err != nil {
		return nil, err
	}
	class, err := s.load(ctx, store, id)
	if err != nil {
		return nil, err
	}
	if req.Code != class.Code {
		exists, err := s.repo.ExistsByCode(ctx, store.ID, req.Code)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, shared.ErrAlreadyExists.WithMessage("Tax class with code %s already exists", req.Code)
		}
	}
	if _, err := s.merger.Merge(ctx, &req, class, store, lang); err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, class); err != nil {
		s.logger.Error("Failed to update tax class", zap.String("id", id.String()), zap.Error(err))
		return nil, err
	}
	return s.converter.Convert(ctx, class, store, lang)
}

// Delete removes a tax class of store
func (s *TaxClassService) Delete(ctx context.Context, store *merchant.Store, id uuid.UUID) error {
	if store == nil {
		return shared.NewInvalidArgumentError("Merchant store cannot be null")
	}
	if _, err := s.load(ctx, store, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

// TaxRateService handles tax rate operations
type TaxRateService struct {
	repo      tax.TaxRateRepository
	converter mapper.ReadableConverter[tax.TaxRate, ReadableTaxRate]
	merger    mapper.PersistableMerger[PersistableTaxRate, tax.TaxRate]
	logger    *zap.Logger
}

// NewTaxRateService creates a TaxRateService
func NewTaxRateService(
	repo tax.TaxRateRepository,
	converter mapper.ReadableConverter[tax.TaxRate, ReadableTaxRate],
	merger mapper.PersistableMerger[PersistableTaxRate, tax.TaxRate],
	logger *zap.Logger,
) *TaxRateService {
	return &TaxRateService{repo: repo, converter: converter, merger: merger, logger: logger}
}

// List returns the tax rates of store. page == 0 && count == 0 lists all.
func (s *TaxRateService) List(ctx context.Context, store *merchant.Store, lang *reference.Language, page, count int) (*shared.Paginated[ReadableTaxRate], error) {
	if err := mapper.RequireScope(store, lang); err != nil {
		return nil, err
	}
	src := mapper.Source[tax.TaxRate]{
		All:   func(ctx context.Context) ([]tax.TaxRate, error) { return s.repo.FindAll(ctx, store.ID) },
		Count: func(ctx context.Context) (int64, error) { return s.repo.Count(ctx, store.ID) },
		Page: func(ctx context.Context, p shared.PageRequest) ([]tax.TaxRate, int64, error) {
			return s.repo.FindPage(ctx, store.ID, p)
		},
	}
	return mapper.List(ctx, src, s.converter, store, lang, page, count)
}

func (s *TaxRateService) load(ctx context.Context, store *merchant.Store, id uuid.UUID) (*tax.TaxRate, error) {
	rate, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, taxRateNotFound(id)
		}
		return nil, err
	}
	if err := shared.EnsureSameStore(rate, store.ID, taxRateNotFound(id)); err != nil {
		return nil, err
	}
	return rate, nil
}

// Get returns a tax rate of store
func (s *TaxRateService) Get(ctx context.Context, store *merchant.Store, lang *reference.Language, id uuid.UUID) (*ReadableTaxRate, error) {
	if err := mapper.RequireScope(store, lang); err != nil {
		return nil, err
	}
	rate, err := s.load(ctx, store, id)
	if err != nil {
		return nil, err
	}
	return s.converter.Convert(ctx, rate, store, lang)
}

// Exists reports whether store has a tax rate with code
func (s *TaxRateService) Exists(ctx context.Context, store *merchant.Store, code string) (bool, error) {
	if store == nil {
		return false, shared.NewInvalidArgumentError("Merchant store cannot be null")
	}
	return s.repo.ExistsByCode(ctx, store.ID, code)
}

// Create creates a tax rate in store
func (s *TaxRateService) Create(ctx context.Context, store *merchant.Store, lang *reference.Language, req PersistableTaxRate) (*ReadableTaxRate, error) {
	if err := mapper.RequireScope(store, lang); err != nil {
		return nil, err
	}
	exists, err := s.repo.ExistsByCode(ctx, store.ID, req.Code)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.ErrAlreadyExists.WithMessage("Tax rate with code %s already exists", req.Code)
	}
	rate := tax.NewTaxRate(store.ID)
	if _, err := s.merger.Merge(ctx, &req, rate, store, lang); err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, rate); err != nil {
		s.logger.Error("Failed to save tax rate", zap.String("code", req.Code), zap.Error(err))
		return nil, err
	}
	return s.converter.Convert(ctx, rate, store, lang)
}

// Update updates a tax rate of store
func (s *TaxRateService) Update(ctx context.Context, store *merchant.Store, lang *reference.Language, id uuid.UUID, req PersistableTaxRate) (*ReadableTaxRate, error) {
	if err := mapper.RequireScope(store, lang); err != nil {
		return nil, err
	}
	rate, err := s.load(ctx, store, id)
	if err != nil {
		return nil, err
	}
	if req.Code != rate.Code {
		exists, err := s.repo.ExistsByCode(ctx, store.ID, req.Code)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, shared.ErrAlreadyExists.WithMessage("Tax rate with code %s already exists", req.Code)
		}
	}
	if _, err := s.merger.Merge(ctx, &req, rate, store, lang); err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, rate); err != nil {
		s.logger.Error("Failed to update tax rate", zap.String("id", id.String()), zap.Error(err))
		return nil, err
	}
	return s.converter.Convert(ctx, rate, store, lang)
}

// Delete removes a tax rate of store
func (s *TaxRateService) Delete(ctx context.Context, store *merchant.Store, id uuid.UUID) error {
	if store == nil {
		return shared.NewInvalidArgumentError("Merchant store cannot be null")
	}
	if _, err := s.load(ctx, store, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
