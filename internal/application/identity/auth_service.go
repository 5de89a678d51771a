package identity

import (
	"context"
	"errors"
	"time"

	"github.com/shopizer/backend/internal/domain/identity"
	"github.com/shopizer/backend/internal/domain/merchant"
	"github.com/shopizer/backend/internal/domain/shared"
	"github.com/shopizer/backend/internal/infrastructure/auth"
	"github.com/shopizer/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// TokenRevoker records logged-out access tokens
type TokenRevoker interface {
	Revoke(ctx context.Context, jti string, ttl time.Duration) error
}

func invalidCredentials() error {
	return shared.NewUnauthorizedError("INVALID_CREDENTIALS", "Invalid username or password")
}

// AuthService handles administrator and customer authentication
type AuthService struct {
	users      *UserDetailsService
	customers  *CustomerDetailsService
	userRepo   identity.UserRepository
	jwtService *auth.JWTService
	encoder    identity.PasswordEncoder
	revoker    TokenRevoker
	metrics    *telemetry.ShopMetrics
	logger     *zap.Logger
}

// NewAuthService creates a new authentication service. metrics may be nil.
func NewAuthService(
	users *UserDetailsService,
	customers *CustomerDetailsService,
	userRepo identity.UserRepository,
	jwtService *auth.JWTService,
	encoder identity.PasswordEncoder,
	revoker TokenRevoker,
	metrics *telemetry.ShopMetrics,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		users:      users,
		customers:  customers,
		userRepo:   userRepo,
		jwtService: jwtService,
		encoder:    encoder,
		revoker:    revoker,
		metrics:    metrics,
		logger:     logger,
	}
}

// authenticate loads a principal and checks its password. Unknown accounts
// and wrong passwords fail the same way.
func (s *AuthService) authenticate(ctx context.Context, loader PrincipalLoader, input LoginInput) (*Principal, error) {
	principal, err := loader.LoadPrincipal(ctx, input.Username)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			s.logger.Warn("Login attempt for unknown account", zap.String("username", input.Username))
			return nil, invalidCredentials()
		}
		return nil, err
	}
	// inactive accounts are only reported once the password matches
	if principal.CredentialHash == "" || !s.encoder.Matches(input.Password, principal.CredentialHash) {
		s.logger.Warn("Invalid password attempt", zap.String("username", input.Username))
		return nil, invalidCredentials()
	}
	if !principal.Active {
		s.logger.Warn("Login attempt for inactive account", zap.String("username", input.Username))
		return nil, shared.NewUnauthorizedError("ACCOUNT_INACTIVE", "Account is not active")
	}
	return principal, nil
}

func (s *AuthService) issue(principal *Principal, realm auth.Realm) (*LoginResult, error) {
	pair, err := s.jwtService.GenerateTokenPair(auth.GenerateTokenInput{
		StoreCode:   principal.StoreCode,
		UserID:      principal.ID,
		Username:    principal.Username,
		Authorities: principal.Authorities,
		Realm:       realm,
	})
	if err != nil {
		s.logger.Error("Failed to generate tokens", zap.Error(err))
		return nil, shared.NewSecurityError("Cannot generate tokens", err)
	}
	return &LoginResult{
		AccessToken:           pair.AccessToken,
		RefreshToken:          pair.RefreshToken,
		AccessTokenExpiresAt:  pair.AccessTokenExpiresAt,
		RefreshTokenExpiresAt: pair.RefreshTokenExpiresAt,
		TokenType:             pair.TokenType,
		ID:                    principal.ID,
		Username:              principal.Username,
		Authorities:           principal.Authorities,
	}, nil
}

// AdminLogin authenticates an administration user
func (s *AuthService) AdminLogin(ctx context.Context, input LoginInput) (result *LoginResult, err error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "auth", "AdminLogin",
		telemetry.AttrPrincipal.String(input.Username))
	defer telemetry.EndSpan(span, &err)
	defer func() { s.metrics.RecordLogin(ctx, string(auth.RealmAdmin), err == nil) }()

	s.logger.Info("Admin login attempt", zap.String("username", input.Username))

	principal, err := s.authenticate(ctx, s.users, input)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByID(ctx, principal.ID)
	if err != nil {
		return nil, shared.NewSecurityError("Cannot load user "+principal.Username, err)
	}
	user.RecordLogin(time.Now())
	if err := s.userRepo.Save(ctx, user); err != nil {
		s.logger.Error("Failed to record login time", zap.String("username", user.Username), zap.Error(err))
	}

	result, err = s.issue(principal, auth.RealmAdmin)
	if err != nil {
		return nil, err
	}
	s.logger.Info("Admin logged in",
		zap.String("username", principal.Username),
		zap.String("store", principal.StoreCode))
	return result, nil
}

// CustomerLogin authenticates a customer of store
func (s *AuthService) CustomerLogin(ctx context.Context, store *merchant.Store, input LoginInput) (result *LoginResult, err error) {
	if store == nil {
		return nil, shared.NewInvalidArgumentError("Merchant store cannot be null")
	}
	ctx, span := telemetry.StartServiceSpan(ctx, "auth", "CustomerLogin",
		telemetry.AttrStoreCode.String(store.Code),
		telemetry.AttrPrincipal.String(input.Username))
	defer telemetry.EndSpan(span, &err)
	defer func() { s.metrics.RecordLogin(ctx, string(auth.RealmCustomer), err == nil) }()

	principal, err := s.authenticate(ctx, s.customers, input)
	if err != nil {
		return nil, err
	}
	if principal.StoreID != store.ID {
		s.logger.Warn("Customer login on foreign store",
			zap.String("username", input.Username), zap.String("store", store.Code))
		return nil, invalidCredentials()
	}
	principal.StoreCode = store.Code

	return s.issue(principal, auth.RealmCustomer)
}

// Refresh exchanges a refresh token for a new pair, reloading authorities
func (s *AuthService) Refresh(ctx context.Context, input RefreshTokenInput) (*LoginResult, error) {
	claims, err := s.jwtService.ValidateRefreshToken(input.RefreshToken)
	if err != nil {
		s.logger.Warn("Token refresh failed", zap.Error(err))
		return nil, tokenError(err)
	}

	var loader PrincipalLoader = s.users
	if claims.Realm == auth.RealmCustomer {
		loader = s.customers
	}
	principal, err := loader.LoadPrincipal(ctx, claims.Username)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewUnauthorizedError("TOKEN_INVALID", "Account no longer exists")
		}
		return nil, err
	}
	if !principal.Active {
		return nil, shared.NewUnauthorizedError("ACCOUNT_INACTIVE", "Account is no longer active")
	}

	pair, err := s.jwtService.RefreshTokenPair(input.RefreshToken, principal.Authorities)
	if err != nil {
		s.logger.Warn("Token refresh failed", zap.Error(err))
		return nil, tokenError(err)
	}

	s.logger.Info("Token refreshed", zap.String("username", principal.Username))
	return &LoginResult{
		AccessToken:           pair.AccessToken,
		RefreshToken:          pair.RefreshToken,
		AccessTokenExpiresAt:  pair.AccessTokenExpiresAt,
		RefreshTokenExpiresAt: pair.RefreshTokenExpiresAt,
		TokenType:             pair.TokenType,
		ID:                    principal.ID,
		Username:              principal.Username,
		Authorities:           principal.Authorities,
	}, nil
}

func tokenError(err error) error {
	switch {
	case errors.Is(err, auth.ErrExpiredToken):
		return shared.NewUnauthorizedError("TOKEN_EXPIRED", "Refresh token has expired")
	case errors.Is(err, auth.ErrMaxRefreshExceeded):
		return shared.NewUnauthorizedError("TOKEN_MAX_REFRESH", "Maximum token refresh count exceeded. Please log in again")
	default:
		return shared.NewUnauthorizedError("TOKEN_INVALID", "Invalid refresh token")
	}
}

// Logout revokes the access token described by claims until it expires
func (s *AuthService) Logout(ctx context.Context, claims *auth.Claims) error {
	if claims == nil || claims.ID == "" {
		return nil
	}
	if err := s.revoker.Revoke(ctx, claims.ID, claims.RemainingTTL()); err != nil {
		s.logger.Error("Failed to revoke token", zap.String("username", claims.Username), zap.Error(err))
		return shared.NewServiceError("Cannot revoke token", err)
	}
	s.logger.Info("User logout", zap.String("username", claims.Username))
	return nil
}

// Profile returns the principal named by claims
func (s *AuthService) Profile(ctx context.Context, claims *auth.Claims) (*Principal, error) {
	if claims == nil {
		return nil, shared.ErrUnauthorized
	}
	var loader PrincipalLoader = s.users
	if claims.Realm == auth.RealmCustomer {
		loader = s.customers
	}
	principal, err := loader.LoadPrincipal(ctx, claims.Username)
	if err != nil {
		return nil, err
	}
	if principal.StoreCode == "" {
		principal.StoreCode = claims.StoreCode
	}
	principal.CredentialHash = ""
	return principal, nil
}
