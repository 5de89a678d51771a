package customer

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopizer/backend/internal/application/mapper"
	"github.com/shopizer/backend/internal/domain/customer"
	"github.com/shopizer/backend/internal/domain/merchant"
	"github.com/shopizer/backend/internal/domain/reference"
	"github.com/shopizer/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// OptionService handles customer option operations
type OptionService struct {
	repo      customer.OptionRepository
	converter mapper.ReadableConverter[customer.Option, ReadableOption]
	merger    mapper.PersistableMerger[PersistableOption, customer.Option]
	logger    *zap.Logger
}

// NewOptionService creates an OptionService
func NewOptionService(
	repo customer.OptionRepository,
	converter mapper.ReadableConverter[customer.Option, ReadableOption],
	merger mapper.PersistableMerger[PersistableOption, customer.Option],
	logger *zap.Logger,
) *OptionService {
	return &OptionService{repo: repo, converter: converter, merger: merger, logger: logger}
}

func optionNotFound(id uuid.UUID) error {
	return shared.NewNotFoundError("CUSTOMER_OPTION_NOT_FOUND", "Customer option "+id.String()+" not found")
}

// List returns the customer options of store
func (s *OptionService) List(ctx context.Context, store *merchant.Store, lang *reference.Language, page, count int) (*shared.Paginated[ReadableOption], error) {
	if err := mapper.RequireScope(store, lang); err != nil {
		return nil, err
	}
	src := mapper.Source[customer.Option]{
		All:   func(ctx context.Context) ([]customer.Option, error) { return s.repo.FindAll(ctx, store.ID) },
		Count: func(ctx context.Context) (int64, error) { return s.repo.Count(ctx, store.ID) },
		Page: func(ctx context.Context, p shared.PageRequest) ([]customer.Option, int64, error) {
			return s.repo.FindPage(ctx, store.ID, p)
		},
	}
	return mapper.List(ctx, src, s.converter, store, lang, page, count)
}

func (s *OptionService) load(ctx context.Context, store *merchant.Store, id uuid.UUID) (*customer.Option, error) {
	o, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, optionNotFound(id)
		}
		return nil, err
	}
	if err := shared.EnsureSameStore(o, store.ID, optionNotFound(id)); err != nil {
		return nil, err
	}
	return o, nil
}

// Get returns a customer option of store
func (s *OptionService) Get(ctx context.Context, store *merchant.Store, lang *reference.Language, id uuid.UUID) (*ReadableOption, error) {
	if err := mapper.RequireScope(store, lang); err != nil {
		return nil, err
	}
	o, err := s.load(ctx, store, id)
	if err != nil {
		return nil, err
	}
	return s.converter.Convert(ctx, o, store, lang)
}

// Exists reports whether store has a customer option with code
func (s *OptionService) Exists(ctx context.Context, store *merchant.Store, code string) (bool, error) {
	if store == nil {
		return false, shared.NewInvalidArgumentError("Merchant store cannot be null")
	}
	return s.repo.ExistsByCode(ctx, store.ID, code)
}

// Create creates a customer option in store
func (s *OptionService) Create(ctx context.Context, store *merchant.Store, lang *reference.Language, req PersistableOption) (*ReadableOption, error) {
	if err := mapper.RequireScope(store, lang); err != nil {
		return nil, err
	}
	exists, err := s.repo.ExistsByCode(ctx, store.ID, req.Code)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.ErrAlreadyExists.WithMessage("Customer option with code %s already exists", req.Code)
	}
	o, err := customer.NewOption(store.ID, req.Code, customer.OptionType(req.Type))
	if err != nil {
		return nil, err
	}
	if _, err := s.merger.Merge(ctx, &req, o, store, lang); err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, o); err != nil {
		s.logger.Error("Failed to save customer option", zap.String("code", req.Code), zap.Error(err))
		return nil, err
	}
	return s.converter.Convert(ctx, o, store, lang)
}

// Update updates a customer option of store
func (s *OptionService) Update(ctx context.Context, store *merchant.Store, lang *reference.Language, id uuid.UUID, req PersistableOption) (*ReadableOption, error) {
	if err := mapper.RequireScope(store, lang); err != nil {
		return nil, err
	}
	o, err := s.load(ctx, store, id)
	if err != nil {
		return nil, err
	}
	if req.Code != o.Code {
		exists, err := s.repo.ExistsByCode(ctx, store.ID, req.Code)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, shared.ErrAlreadyExists.WithMessage("Customer option with code %s already exists", req.Code)
		}
	}
	if _, err := s.merger.Merge(ctx, &req, o, store, lang); err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, o); err != nil {
		return nil, err
	}
	return s.converter.Convert(ctx, o, store, lang)
}

// Delete removes a customer option of store
func (s *OptionService) Delete(ctx context.Context, store *merchant.Store, id uuid.UUID) error {
	if store == nil {
		return shared.NewInvalidArgumentError("Merchant store cannot be null")
	}
	if _, err := s.load(ctx, store, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

// OptionValueService handles customer option value operations
type OptionValueService struct {
	repo      customer.OptionValueRepository
	converter mapper.ReadableConverter[customer.OptionValue, ReadableOptionValue]
	merger    mapper.PersistableMerger[PersistableOptionValue, customer.OptionValue]
	logger    *zap.Logger
}

// NewOptionValueService creates an OptionValueService
func NewOptionValueService(
	repo customer.OptionValueRepository,
	converter mapper.ReadableConverter[customer.OptionValue, ReadableOptionValue],
	merger mapper.PersistableMerger[PersistableOptionValue, customer.OptionValue],
	logger *zap.Logger,
) *OptionValueService {
	return &OptionValueService{repo: repo, converter: converter, merger: merger, logger: logger}
}

func optionValueNotFound(id uuid.UUID) error {
	return shared.NewNotFoundError("CUSTOMER_OPTION_VALUE_NOT_FOUND", "Customer option value "+id.String()+" not found")
}

// List returns the customer option values of store
func (s *OptionValueService) List(ctx context.Context, store *merchant.Store, lang *reference.Language, page, count int) (*shared.Paginated[ReadableOptionValue], error) {
	if err := mapper.RequireScope(store, lang); err != nil {
		return nil, err
	}
	src := mapper.Source[customer.OptionValue]{
		All:   func(ctx context.Context) ([]customer.OptionValue, error) { return s.repo.FindAll(ctx, store.ID) },
		Count: func(ctx context.Context) (int64, error) { return s.repo.Count(ctx, store.ID) },
		Page: func(ctx context.Context, p shared.PageRequest) ([]customer.OptionValue, int64, error) {
			return s.repo.FindPage(ctx, store.ID, p)
		},
	}
	return mapper.List(ctx, src, s.converter, store, lang, page, count)
}

func (s *OptionValueService) load(ctx context.Context, store *merchant.Store, id uuid.UUID) (*customer.OptionValue, error) {
	v, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, optionValueNotFound(id)
		}
		return nil, err
	}
	if err := shared.EnsureSameStore(v, store.ID, optionValueNotFound(id)); err != nil {
		return nil, err
	}
	return v, nil
}

// Get returns a customer option value of store
func (s *OptionValueService) Get(ctx context.Context, store *merchant.Store, lang *reference.Language, id uuid.UUID) (*ReadableOptionValue, error) {
	if err := mapper.RequireScope(store, lang); err != nil {
		return nil, err
	}
	v, err := s.load(ctx, store, id)
	if err != nil {
		return nil, err
	}
	return s.converter.Convert(ctx, v, store, lang)
}

// Exists reports whether store has a customer option value with code
func (s *OptionValueService) Exists(ctx context.Context, store *merchant.Store, code string) (bool, error) {
	if store == nil {
		return false, shared.NewInvalidArgumentError("Merchant store cannot be null")
	}
	return s.repo.ExistsByCode(ctx, store.ID, code)
}

// Create creates a customer option value in store
func (s *OptionValueService) Create(ctx context.Context, store *merchant.Store, lang *reference.Language, req PersistableOptionValue) (*ReadableOptionValue, error) {
	if err := mapper.RequireScope(store, lang); err != nil {
		return nil, err
	}
	exists, err := s.repo.ExistsByCode(ctx, store.ID, req.Code)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.ErrAlreadyExists.WithMessage("Customer option value with code %s already exists", req.Code)
	}
	v, err := customer.NewOptionValue(store.ID, req.Code)
	if err != nil {
		return nil, err
	}
	if _, err := s.merger.Merge(ctx, &req, v, store, lang); err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, v); err != nil {
		s.logger.Error("Failed to save customer option value", zap.String("code", req.Code), zap.Error(err))
		return nil, err
	}
	return s.converter.Convert(ctx, v, store, lang)
}

// Update updates a customer option value of store
func (s *OptionValueService) Update(ctx context.Context, store *merchant.Store, lang *reference.Language, id uuid.UUID, req PersistableOptionValue) (*ReadableOptionValue, error) {
	if err := mapper.RequireScope(store, lang); err != nil {
		return nil, err
	}
	v, err := s.load(ctx, store, id)
	if err != nil {
		return nil, err
	}
	if req.Code != v.Code {
		exists, err := s.repo.ExistsByCode(ctx, store.ID, req.Code)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, shared.ErrAlreadyExists.WithMessage("Customer option value with code %s already exists", req.Code)
		}
	}
	if _, err := s.merger.Merge(ctx, &req, v, store, lang); err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, v); err != nil {
		return nil, err
	}
	return s.converter.Convert(ctx, v, store, lang)
}

// Delete removes a customer option value of store
func (s *OptionValueService) Delete(ctx context.Context, store *merchant.Store, id uuid.UUID) error {
	if store == nil {
		return shared.NewInvalidArgumentError("Merchant store cannot be null")
	}
	if _, err := s.load(ctx, store, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
