package identity

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopizer/backend/internal/domain/customer"
	"github.com/shopizer/backend/internal/domain/identity"
	"github.com/shopizer/backend/internal/domain/shared"
	"github.com/shopizer/backend/internal/infrastructure/auth"
	"github.com/shopizer/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newJWTService() *auth.JWTService {
	return auth.NewJWTService(config.JWTConfig{
		Secret:                 "test-secret-key-that-is-at-least-32-chars",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 24 * time.Hour,
		Issuer:                 "shopizer-test",
		MaxRefreshCount:        3,
	})
}

type authMocks struct {
	users       *MockUserRepository
	customers   *MockCustomerRepository
	permissions *MockPermissionRepository
	revoker     *MockTokenRevoker
}

func newAuthService() (*AuthService, authMocks) {
	m := authMocks{
		users:       new(MockUserRepository),
		customers:   new(MockCustomerRepository),
		permissions: new(MockPermissionRepository),
		revoker:     new(MockTokenRevoker),
	}
	logger := zap.NewNop()
	svc := NewAuthService(
		NewUserDetailsService(m.users, m.permissions, logger),
		NewCustomerDetailsService(m.customers, m.permissions, logger),
		m.users,
		newJWTService(),
		fakeEncoder{},
		m.revoker,
		nil,
		logger,
	)
	return svc, m
}

func TestUserDetailsService_LoadPrincipal(t *testing.T) {
	ctx := context.Background()
	s := newScope(t)

	t.Run("authorities from overlapping groups", func(t *testing.T) {
		users, perms := new(MockUserRepository), new(MockPermissionRepository)
		g1 := mustGroup(t, "G1", identity.GroupTypeAdmin)
		g2 := mustGroup(t, "G2", identity.GroupTypeAdmin)
		u, err := identity.NewUser(s.store.ID, s.store.Code, "admin", "enc:password")
		require.NoError(t, err)
		u.SetGroups([]identity.Group{g1, g2})
		users.On("FindByUsername", ctx, "admin").Return(u, nil)
		perms.On("FindByGroupIDs", ctx, []uuid.UUID{g1.ID, g2.ID}).Return([]identity.Permission{
			{Name: "A"}, {Name: "B"}, {Name: "B"}, {Name: "C"},
		}, nil).Once()

		p, err := NewUserDetailsService(users, perms, zap.NewNop()).LoadPrincipal(ctx, "admin")

		require.NoError(t, err)
		assert.Equal(t, []string{"AUTH", "ROLE_A", "ROLE_B", "ROLE_C"}, p.Authorities)
		assert.Equal(t, "DEFAULT", p.StoreCode)
		assert.Equal(t, "enc:password", p.CredentialHash)
		perms.AssertNumberOfCalls(t, "FindByGroupIDs", 1)
	})

	t.Run("unknown user", func(t *testing.T) {
		users, perms := new(MockUserRepository), new(MockPermissionRepository)
		users.On("FindByUsername", ctx, "ghost").Return(nil, shared.ErrNotFound)

		_, err := NewUserDetailsService(users, perms, zap.NewNop()).LoadPrincipal(ctx, "ghost")

		var de *shared.DomainError
		require.ErrorAs(t, err, &de)
		assert.Equal(t, "USER_NOT_FOUND", de.Code)
		assert.True(t, errors.Is(err, shared.ErrNotFound))
	})

	t.Run("no groups yields AUTH only", func(t *testing.T) {
		users, perms := new(MockUserRepository), new(MockPermissionRepository)
		u, err := identity.NewUser(s.store.ID, s.store.Code, "lonely", "enc:password")
		require.NoError(t, err)
		users.On("FindByUsername", ctx, "lonely").Return(u, nil)

		p, err := NewUserDetailsService(users, perms, zap.NewNop()).LoadPrincipal(ctx, "lonely")

		require.NoError(t, err)
		assert.Equal(t, []string{"AUTH"}, p.Authorities)
		perms.AssertNotCalled(t, "FindByGroupIDs", mock.Anything, mock.Anything)
	})

	t.Run("storage failure is a security error", func(t *testing.T) {
		users, perms := new(MockUserRepository), new(MockPermissionRepository)
		users.On("FindByUsername", ctx, "admin").Return(nil, errors.New("connection refused"))

		_, err := NewUserDetailsService(users, perms, zap.NewNop()).LoadPrincipal(ctx, "admin")

		var de *shared.DomainError
		require.ErrorAs(t, err, &de)
		assert.Equal(t, shared.KindSecurity, de.Kind)
		assert.Equal(t, "AUTHENTICATION_SERVICE_ERROR", de.Code)
		assert.Contains(t, de.Detail(), "connection refused")
	})

	t.Run("duplicate username surfaces as security error", func(t *testing.T) {
		users, perms := new(MockUserRepository), new(MockPermissionRepository)
		users.On("FindByUsername", ctx, "twin").Return(nil, shared.ErrDataIntegrity)

		_, err := NewUserDetailsService(users, perms, zap.NewNop()).LoadPrincipal(ctx, "twin")

		assert.Equal(t, shared.KindSecurity, shared.KindOf(err))
	})
}

func TestCustomerDetailsService_LoadPrincipal(t *testing.T) {
	ctx := context.Background()
	s := newScope(t)
	customers, perms := new(MockCustomerRepository), new(MockPermissionRepository)
	group := mustGroup(t, identity.GroupCustomer, identity.GroupTypeCustomer)
	c, err := customer.NewCustomer(s.store.ID, "Jane@Example.com")
	require.NoError(t, err)
	c.PasswordHash = "enc:secret"
	c.Groups = []identity.Group{group}
	customers.On("FindByNick", ctx, "jane@example.com").Return(c, nil)
	perms.On("FindByGroupIDs", ctx, []uuid.UUID{group.ID}).Return([]identity.Permission{{Name: "CUSTOMER"}}, nil)

	p, err := NewCustomerDetailsService(customers, perms, zap.NewNop()).LoadPrincipal(ctx, "jane@example.com")

	require.NoError(t, err)
	assert.Equal(t, []string{"AUTH", "ROLE_CUSTOMER"}, p.Authorities)
	assert.Equal(t, s.store.ID, p.StoreID)
	assert.True(t, p.Active)
}

func TestAuthService_AdminLogin(t *testing.T) {
	ctx := context.Background()
	s := newScope(t)
	admin := mustGroup(t, identity.GroupAdmin, identity.GroupTypeAdmin)

	newAdmin := func(t *testing.T) *identity.User {
		u, err := identity.NewUser(s.store.ID, s.store.Code, "admin", "enc:password")
		require.NoError(t, err)
		u.SetGroups([]identity.Group{admin})
		return u
	}

	t.Run("success issues tokens with authorities", func(t *testing.T) {
		svc, m := newAuthService()
		u := newAdmin(t)
		m.users.On("FindByUsername", mock.Anything, "admin").Return(u, nil)
		m.users.On("FindByID", mock.Anything, u.ID).Return(u, nil)
		m.users.On("Save", mock.Anything, u).Return(nil)
		m.permissions.On("FindByGroupIDs", mock.Anything, []uuid.UUID{admin.ID}).
			Return([]identity.Permission{{Name: "ADMIN"}}, nil)

		result, err := svc.AdminLogin(ctx, LoginInput{Username: "admin", Password: "password"})

		require.NoError(t, err)
		assert.Equal(t, "Bearer", result.TokenType)
		assert.Equal(t, []string{"AUTH", "ROLE_ADMIN"}, result.Authorities)
		assert.NotNil(t, u.LoginAccess)

		claims, err := newJWTService().ValidateAccessToken(result.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, "DEFAULT", claims.StoreCode)
		assert.Equal(t, auth.RealmAdmin, claims.Realm)
		assert.True(t, claims.HasAuthority("ROLE_ADMIN"))
	})

	t.Run("unknown user and wrong password fail alike", func(t *testing.T) {
		svc, m := newAuthService()
		u := newAdmin(t)
		m.users.On("FindByUsername", mock.Anything, "ghost").Return(nil, shared.ErrNotFound)
		m.users.On("FindByUsername", mock.Anything, "admin").Return(u, nil)
		m.permissions.On("FindByGroupIDs", mock.Anything, mock.Anything).Return([]identity.Permission{}, nil)

		_, errUnknown := svc.AdminLogin(ctx, LoginInput{Username: "ghost", Password: "password"})
		_, errWrong := svc.AdminLogin(ctx, LoginInput{Username: "admin", Password: "nope"})

		require.Error(t, errUnknown)
		require.Error(t, errWrong)
		assert.Equal(t, errUnknown.Error(), errWrong.Error())
		assert.Equal(t, shared.KindUnauthorized, shared.KindOf(errUnknown))
		assert.True(t, errors.Is(errWrong, shared.ErrUnauthorized))
		m.users.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	for _, tt := range []struct {
		name     string
		password string
		code     string
	}{
		{name: "inactive account with valid password", password: "password", code: "ACCOUNT_INACTIVE"},
		{name: "inactive account with wrong password", password: "nope", code: "INVALID_CREDENTIALS"},
	} {
		t.Run(tt.name, func(t *testing.T) {
			svc, m := newAuthService()
			u := newAdmin(t)
			u.Active = false
			m.users.On("FindByUsername", mock.Anything, "admin").Return(u, nil)
			m.permissions.On("FindByGroupIDs", mock.Anything, mock.Anything).Return([]identity.Permission{}, nil)

			_, err := svc.AdminLogin(ctx, LoginInput{Username: "admin", Password: tt.password})

			var de *shared.DomainError
			require.ErrorAs(t, err, &de)
			assert.Equal(t, tt.code, de.Code)
		})
	}

	t.Run("inactive account with wrong password looks like unknown user", func(t *testing.T) {
		svc, m := newAuthService()
		u := newAdmin(t)
		u.Active = false
		m.users.On("FindByUsername", mock.Anything, "ghost").Return(nil, shared.ErrNotFound)
		m.users.On("FindByUsername", mock.Anything, "admin").Return(u, nil)
		m.permissions.On("FindByGroupIDs", mock.Anything, mock.Anything).Return([]identity.Permission{}, nil)

		_, errUnknown := svc.AdminLogin(ctx, LoginInput{Username: "ghost", Password: "nope"})
		_, errInactive := svc.AdminLogin(ctx, LoginInput{Username: "admin", Password: "nope"})

		require.Error(t, errInactive)
		assert.Equal(t, errUnknown.Error(), errInactive.Error())
	})
}

func TestAuthService_CustomerLogin(t *testing.T) {
	ctx := context.Background()
	s := newScope(t)
	c, err := customer.NewCustomer(s.store.ID, "jane@example.com")
	require.NoError(t, err)
	c.PasswordHash = "enc:secret"

	t.Run("own store", func(t *testing.T) {
		svc, m := newAuthService()
		m.customers.On("FindByNick", mock.Anything, "jane@example.com").Return(c, nil)

		result, err := svc.CustomerLogin(ctx, s.store, LoginInput{Username: "jane@example.com", Password: "secret"})

		require.NoError(t, err)
		claims, err := newJWTService().ValidateAccessToken(result.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, auth.RealmCustomer, claims.Realm)
		assert.Equal(t, "DEFAULT", claims.StoreCode)
	})

	t.Run("foreign store", func(t *testing.T) {
		svc, m := newAuthService()
		m.customers.On("FindByNick", mock.Anything, "jane@example.com").Return(c, nil)

		_, err := svc.CustomerLogin(ctx, s.other, LoginInput{Username: "jane@example.com", Password: "secret"})

		var de *shared.DomainError
		require.ErrorAs(t, err, &de)
		assert.Equal(t, "INVALID_CREDENTIALS", de.Code)
	})
}

func TestAuthService_Refresh(t *testing.T) {
	ctx := context.Background()
	s := newScope(t)
	svc, m := newAuthService()
	u, err := identity.NewUser(s.store.ID, s.store.Code, "admin", "enc:password")
	require.NoError(t, err)
	m.users.On("FindByUsername", mock.Anything, "admin").Return(u, nil)

	pair, err := newJWTService().GenerateTokenPair(auth.GenerateTokenInput{
		StoreCode: "DEFAULT",
		UserID:    u.ID,
		Username:  "admin",
		Realm:     auth.RealmAdmin,
	})
	require.NoError(t, err)

	result, err := svc.Refresh(ctx, RefreshTokenInput{RefreshToken: pair.RefreshToken})
	require.NoError(t, err)
	assert.Equal(t, []string{"AUTH"}, result.Authorities)

	_, err = svc.Refresh(ctx, RefreshTokenInput{RefreshToken: pair.AccessToken})
	var de *shared.DomainError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, "TOKEN_INVALID", de.Code)
}

func TestAuthService_Logout(t *testing.T) {
	ctx := context.Background()
	svc, m := newAuthService()
	pair, err := newJWTService().GenerateTokenPair(auth.GenerateTokenInput{
		StoreCode: "DEFAULT",
		UserID:    uuid.New(),
		Username:  "admin",
		Realm:     auth.RealmAdmin,
	})
	require.NoError(t, err)
	claims, err := newJWTService().ValidateAccessToken(pair.AccessToken)
	require.NoError(t, err)
	m.revoker.On("Revoke", ctx, claims.ID, mock.AnythingOfType("time.Duration")).Return(nil)

	require.NoError(t, svc.Logout(ctx, claims))
	m.revoker.AssertExpectations(t)
}
