package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	catalogapp "github.com/shopizer/backend/internal/application/catalog"
	identityapp "github.com/shopizer/backend/internal/application/identity"
	"github.com/shopizer/backend/internal/application/mapper"
	merchantapp "github.com/shopizer/backend/internal/application/merchant"
	referenceapp "github.com/shopizer/backend/internal/application/reference"
	"github.com/shopizer/backend/internal/domain/catalog"
	"github.com/shopizer/backend/internal/domain/identity"
	"github.com/shopizer/backend/internal/domain/shared"
	"github.com/shopizer/backend/internal/infrastructure/auth"
	"github.com/shopizer/backend/internal/infrastructure/cache"
	"github.com/shopizer/backend/internal/infrastructure/config"
	"github.com/shopizer/backend/internal/infrastructure/crypto"
	"github.com/shopizer/backend/internal/infrastructure/persistence"
	"github.com/shopizer/backend/internal/interfaces/http/dto"
	"github.com/shopizer/backend/internal/interfaces/http/handler"
	"github.com/shopizer/backend/internal/interfaces/http/middleware"
	"github.com/shopizer/backend/internal/interfaces/http/router"
)

const adminPassword = "password1"

// APITestServer wires the administration and storefront API over a test database
type APITestServer struct {
	DB     *TestDB
	Engine *gin.Engine
	Users  *identityapp.UserService
}

// NewAPITestServer builds the shop API the way the server binary does,
// without telemetry or caching.
func NewAPITestServer(t *testing.T) *APITestServer {
	t.Helper()

	gin.SetMode(gin.TestMode)
	middleware.SetupValidator()
	tdb := NewSharedTestDB(t)
	log := zap.NewNop()
	db := tdb.DB

	storeRepo := persistence.NewGormStoreRepository(db)
	languageRepo := persistence.NewGormLanguageRepository(db)
	manufacturerRepo := persistence.NewGormManufacturerRepository(db)
	userRepo := persistence.NewGormUserRepository(db)
	groupRepo := persistence.NewGormGroupRepository(db)
	permissionRepo := persistence.NewGormPermissionRepository(db)
	customerRepo := persistence.NewGormCustomerRepository(db)

	encryptor, err := crypto.NewEncryptor(testEncryptionKey)
	require.NoError(t, err)
	configurationRepo := persistence.NewGormConfigurationRepository(db, encryptor)

	revocationCache := cache.NewInMemoryCache()
	t.Cleanup(func() { _ = revocationCache.Close() })

	encoder := auth.NewBcryptPasswordEncoder(4)
	jwtService := auth.NewJWTService(config.JWTConfig{
		Secret:                 "integration-test-secret-0123456789abcdef",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: time.Hour,
		Issuer:                 "shop-test",
		MaxRefreshCount:        3,
	})
	revocations := auth.NewRevocationList(revocationCache)

	storeService := merchantapp.NewStoreService(storeRepo, configurationRepo, nil, 0, nil, log)
	referenceService := referenceapp.NewService(
		languageRepo,
		persistence.NewGormCountryRepository(db),
		persistence.NewGormZoneRepository(db),
		persistence.NewGormCurrencyRepository(db),
		nil, 0, nil, log,
	)
	manufacturerService := catalogapp.NewManufacturerService(
		manufacturerRepo,
		catalogapp.NewManufacturerConverter(),
		catalogapp.NewManufacturerMerger(languageRepo),
		log,
	)
	userService := identityapp.NewUserService(
		userRepo,
		identityapp.NewUserConverter(permissionRepo),
		identityapp.NewUserMerger(languageRepo, groupRepo, encoder),
		encoder,
		log,
	)
	authService := identityapp.NewAuthService(
		identityapp.NewUserDetailsService(userRepo, permissionRepo, log),
		identityapp.NewCustomerDetailsService(customerRepo, permissionRepo, log),
		userRepo,
		jwtService,
		encoder,
		revocations,
		nil,
		log,
	)
	engine := router.NewEngine(router.EngineConfig{Logger: log})
	handlers := router.Handlers{
		System:       handler.NewSystemHandler(&persistence.Database{DB: db}, "test", log),
		Reference:    handler.NewReferenceHandler(referenceService),
		Store:        handler.NewStoreHandler(storeService),
		Manufacturer: handler.NewManufacturerHandler(manufacturerService),
		Auth:         handler.NewAuthHandler(authService),
		User:         handler.NewUserHandler(userService),
	}
	router.Mount(engine, router.APIVersion, router.ShopRoutes(handlers, router.Dependencies{
		Stores:      storeService,
		Languages:   referenceService,
		JWT:         jwtService,
		Revocations: revocations,
		Logger:      log,
	})...)

	return &APITestServer{DB: tdb, Engine: engine, Users: userService}
}

func (s *APITestServer) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var raw []byte
	if body != nil {
		var err error
		raw, err = json.Marshal(body)
		require.NoError(t, err)
	}
	req := httptest.NewRequest(method, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.Engine.ServeHTTP(w, req)
	return w
}

func (s *APITestServer) login(t *testing.T, username string) identityapp.LoginResult {
	t.Helper()
	w := s.do(t, http.MethodPost, "/api/v1/private/login", "", identityapp.LoginInput{Username: username, Password: adminPassword})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var result identityapp.LoginResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	return result
}

func TestAPI_AdminManufacturerFlow(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
	s := NewAPITestServer(t)
	ctx := context.Background()
	store := s.DB.DefaultStore()
	require.NoError(t, s.Users.EnsureAdmin(ctx, store, "flow-admin", "flow-admin@shop.test", adminPassword))

	session := s.login(t, "flow-admin")
	assert.Equal(t, "AUTH", session.Authorities[0])
	assert.Contains(t, session.Authorities, "ROLE_SUPERADMIN")

	w := s.do(t, http.MethodPost, "/api/v1/private/manufacturers", session.AccessToken, catalogapp.PersistableManufacturer{
		Code: "flow-brand",
		Descriptions: []mapper.PersistableDescription{
			{Language: "en", Name: "Flow brand"},
			{Language: "fr", Name: "Marque flux"},
		},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var created catalogapp.ReadableManufacturer
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, "Flow brand", created.Description.Name)

	w = s.do(t, http.MethodPost, "/api/v1/private/manufacturers", session.AccessToken, catalogapp.PersistableManufacturer{Code: "flow-brand"})
	assert.Equal(t, http.StatusConflict, w.Code, w.Body.String())

	w = s.do(t, http.MethodGet, "/api/v1/manufacturers?lang=fr&code=flow-brand", "", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var page shared.Paginated[catalogapp.ReadableManufacturer]
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	require.Len(t, page.Items, 1)
	assert.Equal(t, int64(1), page.Total)
	assert.Equal(t, "Marque flux", page.Items[0].Description.Name)

	w = s.do(t, http.MethodGet, "/api/v1/private/manufacturers/unique?code=flow-brand", session.AccessToken, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var unique dto.UniqueResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &unique))
	assert.True(t, unique.Exists)

	w = s.do(t, http.MethodPost, "/api/v1/private/logout", session.AccessToken, nil)
	require.Less(t, w.Code, 300, w.Body.String())
	w = s.do(t, http.MethodGet, "/api/v1/private/profile", session.AccessToken, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAPI_StoreIsolation(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
	s := NewAPITestServer(t)
	ctx := context.Background()
	store := s.DB.DefaultStore()
	other := s.DB.CreateStore("ISOLATED")

	foreign, err := catalog.NewManufacturer(other.ID, "foreign-brand")
	require.NoError(t, err)
	require.NoError(t, persistence.NewGormManufacturerRepository(s.DB.DB).Save(ctx, foreign))

	email := "catalog@shop.test"
	_, err = s.Users.Create(ctx, store, store.DefaultLanguage, identityapp.PersistableUser{
		UserName:     "catalog-editor",
		EmailAddress: &email,
		Password:     adminPassword,
		Groups:       []string{identity.GroupAdminCatalog},
	})
	require.NoError(t, err)
	session := s.login(t, "catalog-editor")

	t.Run("entity of another store is not found", func(t *testing.T) {
		w := s.do(t, http.MethodGet, "/api/v1/manufacturers/"+foreign.ID.String(), "", nil)
		require.Equal(t, http.StatusNotFound, w.Code, w.Body.String())
		var body dto.ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.NotEmpty(t, body.Code)
		assert.NotEmpty(t, body.Message)
	})

	t.Run("same entity is visible in its own store", func(t *testing.T) {
		w := s.do(t, http.MethodGet, "/api/v1/manufacturers/"+foreign.ID.String()+"?store=ISOLATED", "", nil)
		assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
	})

	t.Run("token of another store is rejected", func(t *testing.T) {
		w := s.do(t, http.MethodDelete, "/api/v1/private/manufacturers/"+foreign.ID.String()+"?store=ISOLATED", session.AccessToken, nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code, w.Body.String())
	})

	t.Run("missing authority is forbidden", func(t *testing.T) {
		w := s.do(t, http.MethodGet, "/api/v1/private/users", session.AccessToken, nil)
		assert.Equal(t, http.StatusForbidden, w.Code, w.Body.String())
	})

	t.Run("unknown store", func(t *testing.T) {
		w := s.do(t, http.MethodGet, "/api/v1/manufacturers?store=NOPE", "", nil)
		assert.Equal(t, http.StatusNotFound, w.Code, w.Body.String())
	})
}
