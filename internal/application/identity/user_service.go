package identity

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopizer/backend/internal/application/mapper"
	"github.com/shopizer/backend/internal/domain/identity"
	"github.com/shopizer/backend/internal/domain/merchant"
	"github.com/shopizer/backend/internal/domain/reference"
	"github.com/shopizer/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// UserService handles administration user operations
type UserService struct {
	repo      identity.UserRepository
	converter mapper.ReadableConverter[identity.User, ReadableUser]
	merger    mapper.PersistableMerger[PersistableUser, identity.User]
	encoder   identity.PasswordEncoder
	logger    *zap.Logger
}

// NewUserService creates a new user service
func NewUserService(
	repo identity.UserRepository,
	converter mapper.ReadableConverter[identity.User, ReadableUser],
	merger mapper.PersistableMerger[PersistableUser, identity.User],
	encoder identity.PasswordEncoder,
	logger *zap.Logger,
) *UserService {
	return &UserService{
		repo:      repo,
		converter: converter,
		merger:    merger,
		encoder:   encoder,
		logger:    logger,
	}
}

// List returns the users of store. page == 0 && count == 0 lists all.
func (s *UserService) List(ctx context.Context, store *merchant.Store, lang *reference.Language, page, count int) (*shared.Paginated[ReadableUser], error) {
	if err := mapper.RequireScope(store, lang); err != nil {
		return nil, err
	}
	src := mapper.Source[identity.User]{
		All:   func(ctx context.Context) ([]identity.User, error) { return s.repo.FindAll(ctx, store.ID) },
		Count: func(ctx context.Context) (int64, error) { return s.repo.Count(ctx, store.ID) },
		Page: func(ctx context.Context, p shared.PageRequest) ([]identity.User, int64, error) {
			return s.repo.FindPage(ctx, store.ID, p)
		},
	}
	return mapper.List(ctx, src, s.converter, store, lang, page, count)
}

// Get returns a user of store by id
func (s *UserService) Get(ctx context.Context, store *merchant.Store, lang *reference.Language, id uuid.UUID) (*ReadableUser, error) {
	if err := mapper.RequireScope(store, lang); err != nil {
		return nil, err
	}
	notFound := userNotFound(id.String())
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, notFound
		}
		return nil, err
	}
	if err := shared.EnsureSameStore(user, store.ID, notFound); err != nil {
		return nil, err
	}
	return s.converter.Convert(ctx, user, store, lang)
}

// Create creates a user in store. Usernames are unique across stores.
func (s *UserService) Create(ctx context.Context, store *merchant.Store, lang *reference.Language, req PersistableUser) (*ReadableUser, error) {
	if err := mapper.RequireScope(store, lang); err != nil {
		return nil, err
	}
	exists, err := s.repo.ExistsByUsername(ctx, req.UserName)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.ErrAlreadyExists.WithMessage("User %s already exists", req.UserName)
	}
	if err := identity.ValidatePassword(req.Password); err != nil {
		return nil, err
	}
	hash, err := s.encoder.Encode(req.Password)
	if err != nil {
		return nil, shared.NewServiceError("Cannot encode password", err)
	}
	user, err := identity.NewUser(store.ID, store.Code, req.UserName, hash)
	if err != nil {
		return nil, err
	}
	req.Password = ""
	if _, err := s.merger.Merge(ctx, &req, user, store, lang); err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, user); err != nil {
		s.logger.Error("Failed to save user", zap.String("username", req.UserName), zap.Error(err))
		return nil, err
	}
	s.logger.Info("User created", zap.String("username", user.Username), zap.String("store", store.Code))
	return s.converter.Convert(ctx, user, store, lang)
}

// EnsureAdmin creates the superadmin account of store when no user with
// username exists yet.
func (s *UserService) EnsureAdmin(ctx context.Context, store *merchant.Store, username, email, password string) error {
	if store == nil {
		return shared.NewInvalidArgumentError("Merchant store cannot be null")
	}
	exists, err := s.repo.ExistsByUsername(ctx, username)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}
	lang := store.DefaultLanguage
	if lang == nil {
		return shared.NewInvalidArgumentError("Store " + store.Code + " has no default language")
	}
	_, err = s.Create(ctx, store, lang, PersistableUser{
		UserName:     username,
		EmailAddress: &email,
		Password:     password,
		Groups:       []string{identity.GroupSuperAdmin, identity.GroupAdmin},
	})
	return err
}
