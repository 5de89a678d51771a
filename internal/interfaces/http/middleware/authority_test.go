package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopizer/backend/internal/domain/merchant"
	"github.com/shopizer/backend/internal/domain/reference"
	"github.com/shopizer/backend/internal/infrastructure/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T, code string) *merchant.Store {
	t.Helper()
	en, err := reference.NewLanguage("en", 0)
	require.NoError(t, err)
	store, err := merchant.NewStore(code, code+" store", "CAD", en)
	require.NoError(t, err)
	return store
}

func performWithClaims(t *testing.T, claims *auth.Claims, store *merchant.Store, handlers ...gin.HandlerFunc) *httptest.ResponseRecorder {
	t.Helper()
	r := gin.New()
	r.Use(func(c *gin.Context) {
		if claims != nil {
			c.Set(JWTClaimsKey, claims)
		}
		if store != nil {
			c.Set(StoreKey, store)
		}
		c.Next()
	})
	r.Use(handlers...)
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
	return w
}

func claimsFor(t *testing.T, store string, authorities ...string) *auth.Claims {
	t.Helper()
	svc := newTestJWTService(time.Minute)
	pair := issue(t, svc, auth.RealmAdmin, store, authorities...)
	claims, err := svc.ValidateAccessToken(pair.AccessToken)
	require.NoError(t, err)
	return claims
}

func TestRequireAnyAuthority(t *testing.T) {
	tests := []struct {
		name   string
		claims *auth.Claims
		want   int
	}{
		{name: "no claims", want: http.StatusUnauthorized},
		{name: "catalogue admin", claims: claimsFor(t, "DEFAULT", AuthorityAdminCatalog), want: http.StatusOK},
		{name: "superadmin passes every check", claims: claimsFor(t, "DEFAULT", AuthoritySuperAdmin), want: http.StatusOK},
		{name: "customer rejected", claims: claimsFor(t, "DEFAULT", AuthorityCustomer), want: http.StatusForbidden},
		{name: "AUTH alone rejected", claims: claimsFor(t, "DEFAULT"), want: http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := performWithClaims(t, tt.claims, nil, RequireAnyAuthority(AuthorityAdmin, AuthorityAdminCatalog))
			assert.Equal(t, tt.want, w.Code)
		})
	}
}

func TestRequireStoreAccess(t *testing.T) {
	def := newStore(t, "DEFAULT")
	other := newStore(t, "OTHER")

	t.Run("own store", func(t *testing.T) {
		w := performWithClaims(t, claimsFor(t, "DEFAULT", AuthorityAdmin), def, RequireStoreAccess())
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("foreign store", func(t *testing.T) {
		w := performWithClaims(t, claimsFor(t, "DEFAULT", AuthorityAdmin), other, RequireStoreAccess())
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "cannot access store OTHER")
	})

	t.Run("superadmin on any store", func(t *testing.T) {
		w := performWithClaims(t, claimsFor(t, "DEFAULT", AuthoritySuperAdmin), other, RequireStoreAccess())
		assert.Equal(t, http.StatusOK, w.Code)
	})
}
