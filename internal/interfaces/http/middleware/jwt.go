package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopizer/backend/internal/infrastructure/auth"
	"github.com/shopizer/backend/internal/infrastructure/logger"
	"github.com/shopizer/backend/internal/interfaces/http/dto"
	"go.uber.org/zap"
)

const (
	JWTClaimsKey  = "jwt_claims"
	AuthHeaderKey = "Authorization"
	BearerPrefix  = "Bearer "
)

// RevocationChecker reports logged-out tokens
type RevocationChecker interface {
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

type JWTMiddlewareConfig struct {
	JWTService *auth.JWTService
	// Revocations rejects logged-out tokens when set
	Revocations RevocationChecker
	// Realm restricts accepted tokens to one realm. Empty accepts both.
	Realm  auth.Realm
	Logger *zap.Logger
}

var errNoBearer = errors.New("missing bearer token")

// authFailures maps token errors to response codes; the first match wins
var authFailures = []struct {
	err     error
	code    string
	message string
}{
	{auth.ErrExpiredToken, "TOKEN_EXPIRED", "Token has expired"},
	{auth.ErrInvalidTokenType, "INVALID_TOKEN_TYPE", "Invalid token type"},
	{auth.ErrTokenNotYetValid, "TOKEN_NOT_VALID", "Token is not yet valid"},
	{auth.ErrTokenRevoked, "TOKEN_REVOKED", "Token has been revoked"},
	{auth.ErrInvalidRealm, "INVALID_TOKEN_REALM", "Token is not valid for this API"},
	{auth.ErrInvalidToken, "INVALID_TOKEN", "Invalid token"},
	{errNoBearer, "INVALID_TOKEN", "Invalid token"},
}

// JWTAuthMiddleware authenticates the bearer token of every request and
// stores its claims on the context. The revocation list is consulted last; a
// failing list lets the token through.
func JWTAuthMiddleware(cfg JWTMiddlewareConfig) gin.HandlerFunc {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return func(c *gin.Context) {
		claims, err := cfg.authenticate(c.Request.Context(), c.GetHeader(AuthHeaderKey), log)
		if err != nil {
			log.Warn("JWT authentication failed", zap.Error(err), zap.String("path", c.Request.URL.Path))
			rejectToken(c, err)
			return
		}

		c.Set(JWTClaimsKey, claims)
		c.Request = c.Request.WithContext(logger.WithUser(c.Request.Context(), claims.Username))
		log.Debug("Authenticated",
			zap.String("username", claims.Username),
			zap.String("store_code", claims.StoreCode),
			zap.String("realm", string(claims.Realm)),
		)
		c.Next()
	}
}

func (cfg JWTMiddlewareConfig) authenticate(ctx context.Context, header string, log *zap.Logger) (*auth.Claims, error) {
	token, err := bearerToken(header)
	if err != nil {
		return nil, err
	}
	claims, err := cfg.JWTService.ValidateAccessToken(token)
	if err != nil {
		return nil, err
	}
	if cfg.Realm != "" && claims.Realm != cfg.Realm {
		return nil, auth.ErrInvalidRealm
	}
	if cfg.Revocations == nil || claims.ID == "" {
		return claims, nil
	}
	switch revoked, err := cfg.Revocations.IsRevoked(ctx, claims.ID); {
	case err != nil:
		log.Error("Revocation check failed", zap.String("jti", claims.ID), zap.Error(err))
	case revoked:
		return nil, auth.ErrTokenRevoked
	}
	return claims, nil
}

// bearerToken extracts the token of an "Authorization: Bearer <token>" header.
// The scheme is matched case-insensitively.
func bearerToken(header string) (string, error) {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, strings.TrimSpace(BearerPrefix)) {
		return "", errNoBearer
	}
	if token = strings.TrimSpace(token); token == "" {
		return "", errNoBearer
	}
	return token, nil
}

func rejectToken(c *gin.Context, err error) {
	code, message := dto.ErrCodeUnauthorized, "Authentication required"
	for _, f := range authFailures {
		if errors.Is(err, f.err) {
			code, message = f.code, f.message
			break
		}
	}
	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(code, message, GetRequestID(c)))
}

// GetJWTClaims returns the claims of the authenticated request, or nil
func GetJWTClaims(c *gin.Context) *auth.Claims {
	v, _ := c.Get(JWTClaimsKey)
	claims, _ := v.(*auth.Claims)
	return claims
}

func GetJWTUsername(c *gin.Context) string {
	if claims := GetJWTClaims(c); claims != nil {
		return claims.Username
	}
	return ""
}

func GetJWTAuthorities(c *gin.Context) []string {
	if claims := GetJWTClaims(c); claims != nil {
		return claims.Authorities
	}
	return nil
}
