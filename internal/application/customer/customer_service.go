package customer

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopizer/backend/internal/application/mapper"
	"github.com/shopizer/backend/internal/domain/customer"
	"github.com/shopizer/backend/internal/domain/identity"
	"github.com/shopizer/backend/internal/domain/merchant"
	"github.com/shopizer/backend/internal/domain/reference"
	"github.com/shopizer/backend/internal/domain/shared"
	"github.com/shopizer/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

func customerNotFound(id uuid.UUID) error {
	return shared.NewNotFoundError("CUSTOMER_NOT_FOUND", "Customer "+id.String()+" not found")
}

// CustomerService handles customer operations
type CustomerService struct {
	repo      customer.Repository
	converter mapper.ReadableConverter[customer.Customer, ReadableCustomer]
	merger    mapper.PersistableMerger[PersistableCustomer, customer.Customer]
	logger    *zap.Logger
}

// NewCustomerService creates a CustomerService
func NewCustomerService(
	repo customer.Repository,
	converter mapper.ReadableConverter[customer.Customer, ReadableCustomer],
	merger mapper.PersistableMerger[PersistableCustomer, customer.Customer],
	logger *zap.Logger,
) *CustomerService {
	return &CustomerService{repo: repo, converter: converter, merger: merger, logger: logger}
}

// List returns the customers of store. page == 0 && count == 0 lists all.
func (s *CustomerService) List(ctx context.Context, store *merchant.Store, lang *reference.Language, criteria CustomerListCriteria, page, count int) (*shared.Paginated[ReadableCustomer], error) {
	if err := mapper.RequireScope(store, lang); err != nil {
		return nil, err
	}
	c := customer.Criteria{Email: criteria.Email, Name: criteria.Name}
	src := mapper.Source[customer.Customer]{
		All: func(ctx context.Context) ([]customer.Customer, error) {
			return s.repo.FindAll(ctx, store.ID, c)
		},
		Count: func(ctx context.Context) (int64, error) {
			return s.repo.Count(ctx, store.ID, c)
		},
		Page: func(ctx context.Context, p shared.PageRequest) ([]customer.Customer, int64, error) {
			return s.repo.FindPage(ctx, store.ID, c, p)
		},
	}
	return mapper.List(ctx, src, s.converter, store, lang, page, count)
}

func (s *CustomerService) load(ctx context.Context, store *merchant.Store, id uuid.UUID) (*customer.Customer, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, customerNotFound(id)
		}
		return nil, err
	}
	if err := shared.EnsureSameStore(c, store.ID, customerNotFound(id)); err != nil {
		return nil, err
	}
	return c, nil
}

// Get returns a customer of store
func (s *CustomerService) Get(ctx context.Context, store *merchant.Store, lang *reference.Language, id uuid.UUID) (*ReadableCustomer, error) {
	if err := mapper.RequireScope(store, lang); err != nil {
		return nil, err
	}
	c, err := s.load(ctx, store, id)
	if err != nil {
		return nil, err
	}
	return s.converter.Convert(ctx, c, store, lang)
}

func (s *CustomerService) ensureNickFree(ctx context.Context, storeID uuid.UUID, nick string) error {
	_, err := s.repo.FindByNickForStore(ctx, storeID, nick)
	switch {
	case err == nil:
		return shared.ErrAlreadyExists.WithMessage("Customer %s already exists", nick)
	case errors.Is(err, shared.ErrNotFound):
		return nil
	default:
		return err
	}
}

// Create registers a customer in store. Customers without explicit groups
// join the CUSTOMER group.
func (s *CustomerService) Create(ctx context.Context, store *merchant.Store, lang *reference.Language, req PersistableCustomer) (*ReadableCustomer, error) {
	if err := mapper.RequireScope(store, lang); err != nil {
		return nil, err
	}
	ctx, span := telemetry.StartServiceSpan(ctx, "customer", "create",
		telemetry.AttrStoreCode.String(store.Code))
	var err error
	defer telemetry.EndSpan(span, &err)

	if req.Password == "" {
		err = shared.NewValidationError("INVALID_PASSWORD", "Password cannot be empty")
		return nil, err
	}
	var c *customer.Customer
	c, err = customer.NewCustomer(store.ID, req.EmailAddress)
	if err != nil {
		return nil, err
	}
	nick := req.Nick
	if nick == "" {
		nick = c.Nick
	}
	if err = s.ensureNickFree(ctx, store.ID, nick); err != nil {
		return nil, err
	}
	if len(req.Groups) == 0 {
		req.Groups = []string{identity.GroupCustomer}
	}
	if _, err = s.merger.Merge(ctx, &req, c, store, lang); err != nil {
		return nil, err
	}
	if err = s.repo.Save(ctx, c); err != nil {
		s.logger.Error("Failed to save customer", zap.String("nick", c.Nick), zap.Error(err))
		return nil, err
	}
	var out *ReadableCustomer
	out, err = s.converter.Convert(ctx, c, store, lang)
	return out, err
}

// Update updates a customer of store
func (s *CustomerService) Update(ctx context.Context, store *merchant.Store, lang *reference.Language, id uuid.UUID, req PersistableCustomer) (*ReadableCustomer, error) {
	if err := mapper.RequireScope(store, lang); err != nil {
		return nil, err
	}
	c, err := s.load(ctx, store, id)
	if err != nil {
		return nil, err
	}
	if req.Nick != "" && req.Nick != c.Nick {
		if err := s.ensureNickFree(ctx, store.ID, req.Nick); err != nil {
			return nil, err
		}
	}
	if _, err := s.merger.Merge(ctx, &req, c, store, lang); err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, c); err != nil {
		s.logger.Error("Failed to update customer", zap.String("id", id.String()), zap.Error(err))
		return nil, err
	}
	return s.converter.Convert(ctx, c, store, lang)
}

// Delete removes a customer of store
func (s *CustomerService) Delete(ctx context.Context, store *merchant.Store, id uuid.UUID) error {
	if store == nil {
		return shared.NewInvalidArgumentError("Merchant store cannot be null")
	}
	if _, err := s.load(ctx, store, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
