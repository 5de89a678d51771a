package handler

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	catalogapp "github.com/shopizer/backend/internal/application/catalog"
	contentapp "github.com/shopizer/backend/internal/application/content"
	"github.com/shopizer/backend/internal/application/identity"
	"github.com/shopizer/backend/internal/domain/content"
	"github.com/shopizer/backend/internal/domain/merchant"
	"github.com/shopizer/backend/internal/domain/reference"
	"github.com/shopizer/backend/internal/domain/shared"
	"github.com/shopizer/backend/internal/infrastructure/auth"
	"github.com/shopizer/backend/internal/interfaces/http/middleware"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
	middleware.SetupValidator()
}

type fixture struct {
	store *merchant.Store
	lang  *reference.Language
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	en, err := reference.NewLanguage("en", 0)
	require.NoError(t, err)
	store, err := merchant.NewStore(merchant.DefaultStoreCode, "Default store", "CAD", en)
	require.NoError(t, err)
	return fixture{store: store, lang: en}
}

// engine returns a router whose requests already carry the fixture's store
// and language, as StoreContext would set them
func (f fixture) engine(claims *auth.Claims) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID(), func(c *gin.Context) {
		c.Set(middleware.StoreKey, f.store)
		c.Set(middleware.LanguageKey, f.lang)
		if claims != nil {
			c.Set(middleware.JWTClaimsKey, claims)
		}
		c.Next()
	})
	return r
}

func do(r http.Handler, method, target, body string) *httptest.ResponseRecorder {
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, rd)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

type MockManufacturerService struct {
	mock.Mock
}

func (m *MockManufacturerService) List(ctx context.Context, store *merchant.Store, lang *reference.Language, criteria catalogapp.ManufacturerListCriteria, page, count int) (*shared.Paginated[catalogapp.ReadableManufacturer], error) {
	args := m.Called(ctx, store, lang, criteria, page, count)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shared.Paginated[catalogapp.ReadableManufacturer]), args.Error(1)
}

func (m *MockManufacturerService) Get(ctx context.Context, store *merchant.Store, lang *reference.Language, id uuid.UUID) (*catalogapp.ReadableManufacturer, error) {
	args := m.Called(ctx, store, lang, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalogapp.ReadableManufacturer), args.Error(1)
}

func (m *MockManufacturerService) Exists(ctx context.Context, store *merchant.Store, code string) (bool, error) {
	args := m.Called(ctx, store, code)
	return args.Bool(0), args.Error(1)
}

func (m *MockManufacturerService) Create(ctx context.Context, store *merchant.Store, lang *reference.Language, req catalogapp.PersistableManufacturer) (*catalogapp.ReadableManufacturer, error) {
	args := m.Called(ctx, store, lang, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalogapp.ReadableManufacturer), args.Error(1)
}

func (m *MockManufacturerService) Update(ctx context.Context, store *merchant.Store, lang *reference.Language, id uuid.UUID, req catalogapp.PersistableManufacturer) (*catalogapp.ReadableManufacturer, error) {
	args := m.Called(ctx, store, lang, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalogapp.ReadableManufacturer), args.Error(1)
}

func (m *MockManufacturerService) Delete(ctx context.Context, store *merchant.Store, id uuid.UUID) error {
	return m.Called(ctx, store, id).Error(0)
}

type MockContentService struct {
	mock.Mock
}

func (m *MockContentService) Pages(ctx context.Context, store *merchant.Store, lang *reference.Language, page, count int) (*shared.Paginated[contentapp.ReadableContent], error) {
	args := m.Called(ctx, store, lang, page, count)
	return args.Get(0).(*shared.Paginated[contentapp.ReadableContent]), args.Error(1)
}

func (m *MockContentService) List(ctx context.Context, store *merchant.Store, lang *reference.Language, typ content.Type, page, count int) (*shared.Paginated[contentapp.ReadableContent], error) {
	args := m.Called(ctx, store, lang, typ, page, count)
	return args.Get(0).(*shared.Paginated[contentapp.ReadableContent]), args.Error(1)
}

func (m *MockContentService) GetByCode(ctx context.Context, store *merchant.Store, lang *reference.Language, code string) (*contentapp.ReadableContent, error) {
	args := m.Called(ctx, store, lang, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*contentapp.ReadableContent), args.Error(1)
}

func (m *MockContentService) Get(ctx context.Context, store *merchant.Store, lang *reference.Language, id uuid.UUID) (*contentapp.ReadableContent, error) {
	args := m.Called(ctx, store, lang, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*contentapp.ReadableContent), args.Error(1)
}

func (m *MockContentService) Exists(ctx context.Context, store *merchant.Store, code string) (bool, error) {
	args := m.Called(ctx, store, code)
	return args.Bool(0), args.Error(1)
}

func (m *MockContentService) Create(ctx context.Context, store *merchant.Store, lang *reference.Language, req contentapp.PersistableContent) (*contentapp.ReadableContent, error) {
	args := m.Called(ctx, store, lang, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*contentapp.ReadableContent), args.Error(1)
}

func (m *MockContentService) Update(ctx context.Context, store *merchant.Store, lang *reference.Language, id uuid.UUID, req contentapp.PersistableContent) (*contentapp.ReadableContent, error) {
	args := m.Called(ctx, store, lang, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*contentapp.ReadableContent), args.Error(1)
}

func (m *MockContentService) Delete(ctx context.Context, store *merchant.Store, id uuid.UUID) error {
	return m.Called(ctx, store, id).Error(0)
}

type MockFileService struct {
	mock.Mock
}

func (m *MockFileService) Upload(ctx context.Context, store *merchant.Store, name, contentType string, size int64, body io.Reader) (*contentapp.ReadableFile, error) {
	args := m.Called(ctx, store, name, contentType, size, body)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*contentapp.ReadableFile), args.Error(1)
}

func (m *MockFileService) Delete(ctx context.Context, store *merchant.Store, name string) error {
	return m.Called(ctx, store, name).Error(0)
}

func (m *MockFileService) List(ctx context.Context, store *merchant.Store) ([]contentapp.ReadableFile, error) {
	args := m.Called(ctx, store)
	return args.Get(0).([]contentapp.ReadableFile), args.Error(1)
}

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) AdminLogin(ctx context.Context, input identity.LoginInput) (*identity.LoginResult, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.LoginResult), args.Error(1)
}

func (m *MockAuthService) CustomerLogin(ctx context.Context, store *merchant.Store, input identity.LoginInput) (*identity.LoginResult, error) {
	args := m.Called(ctx, store, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.LoginResult), args.Error(1)
}

func (m *MockAuthService) Refresh(ctx context.Context, input identity.RefreshTokenInput) (*identity.LoginResult, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.LoginResult), args.Error(1)
}

func (m *MockAuthService) Logout(ctx context.Context, claims *auth.Claims) error {
	return m.Called(ctx, claims).Error(0)
}

func (m *MockAuthService) Profile(ctx context.Context, claims *auth.Claims) (*identity.Principal, error) {
	args := m.Called(ctx, claims)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.Principal), args.Error(1)
}
