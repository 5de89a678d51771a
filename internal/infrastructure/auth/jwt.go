package auth

import (
	"errors"
	"slices"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shopizer/backend/internal/infrastructure/config"
)

// TokenType tells access tokens from refresh tokens. Each is signed with its
// own secret when a refresh secret is configured.
type TokenType string

const (
	TokenTypeAccess  TokenType = "access"
	TokenTypeRefresh TokenType = "refresh"
)

// Realm separates administrator tokens from customer tokens
type Realm string

const (
	RealmAdmin    Realm = "admin"
	RealmCustomer Realm = "customer"
)

var (
	ErrInvalidToken       = errors.New("auth: malformed or badly signed token")
	ErrExpiredToken       = errors.New("auth: token expired")
	ErrTokenNotYetValid   = errors.New("auth: token used before its nbf time")
	ErrInvalidTokenType   = errors.New("auth: wrong token type")
	ErrInvalidClaims      = errors.New("auth: unreadable claims")
	ErrMissingStoreCode   = errors.New("auth: token carries no store code")
	ErrMissingUserID      = errors.New("auth: token carries no user id")
	ErrInvalidRealm       = errors.New("auth: unknown realm")
	ErrMaxRefreshExceeded = errors.New("auth: refresh limit reached, log in again")
	ErrTokenRevoked       = errors.New("auth: token revoked")
)

// Claims identify a principal of one store. Authorities are only carried by
// access tokens and RefreshCount only by refresh tokens.
type Claims struct {
	jwt.RegisteredClaims
	StoreCode    string    `json:"store_code"`
	UserID       string    `json:"user_id"`
	Username     string    `json:"username"`
	Authorities  []string  `json:"authorities,omitempty"`
	Realm        Realm     `json:"realm"`
	TokenType    TokenType `json:"token_type"`
	RefreshCount int       `json:"refresh_count,omitempty"`
}

// TokenPair is returned by login and refresh
type TokenPair struct {
	AccessToken           string    `json:"access_token"`
	RefreshToken          string    `json:"refresh_token"`
	AccessTokenExpiresAt  time.Time `json:"access_token_expires_at"`
	RefreshTokenExpiresAt time.Time `json:"refresh_token_expires_at"`
	TokenType             string    `json:"token_type"`
}

type signingKey struct {
	secret []byte
	ttl    time.Duration
}

// JWTService signs and validates HS256 token pairs for both realms
type JWTService struct {
	keys            map[TokenType]signingKey
	issuer          string
	maxRefreshCount int
	parser          *jwt.Parser
}

// NewJWTService creates a JWT service. An empty refresh secret reuses the
// access secret; an empty issuer disables the issuer and audience checks.
func NewJWTService(cfg config.JWTConfig) *JWTService {
	refreshSecret := cfg.RefreshSecret
	if refreshSecret == "" {
		refreshSecret = cfg.Secret
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuedAt(),
		jwt.WithLeeway(5 * time.Second),
	}
	if cfg.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(cfg.Issuer), jwt.WithAudience(cfg.Issuer))
	}

	return &JWTService{
		keys: map[TokenType]signingKey{
			TokenTypeAccess:  {secret: []byte(cfg.Secret), ttl: cfg.AccessTokenExpiration},
			TokenTypeRefresh: {secret: []byte(refreshSecret), ttl: cfg.RefreshTokenExpiration},
		},
		issuer:          cfg.Issuer,
		maxRefreshCount: cfg.MaxRefreshCount,
		parser:          jwt.NewParser(opts...),
	}
}

// GenerateTokenInput is the principal a token pair is issued for
type GenerateTokenInput struct {
	StoreCode   string
	UserID      uuid.UUID
	Username    string
	Authorities []string
	Realm       Realm
}

// GenerateTokenPair signs an access token carrying the authorities and a
// refresh token without them
func (s *JWTService) GenerateTokenPair(input GenerateTokenInput) (*TokenPair, error) {
	if !input.Realm.valid() {
		return nil, ErrInvalidRealm
	}
	return s.issuePair(input, 0)
}

func (s *JWTService) issuePair(input GenerateTokenInput, refreshCount int) (*TokenPair, error) {
	now := time.Now()

	access := s.claimsFor(input, TokenTypeAccess, now)
	access.Authorities = input.Authorities
	refresh := s.claimsFor(input, TokenTypeRefresh, now)
	refresh.RefreshCount = refreshCount

	pair := &TokenPair{
		AccessTokenExpiresAt:  access.ExpiresAt.Time,
		RefreshTokenExpiresAt: refresh.ExpiresAt.Time,
		TokenType:             "Bearer",
	}
	var err error
	if pair.AccessToken, err = s.sign(access); err != nil {
		return nil, err
	}
	if pair.RefreshToken, err = s.sign(refresh); err != nil {
		return nil, err
	}
	return pair, nil
}

func (s *JWTService) claimsFor(input GenerateTokenInput, typ TokenType, now time.Time) *Claims {
	subject := input.UserID.String()
	c := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    s.issuer,
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.keys[typ].ttl)),
		},
		StoreCode: input.StoreCode,
		UserID:    subject,
		Username:  input.Username,
		Realm:     input.Realm,
		TokenType: typ,
	}
	if s.issuer != "" {
		c.Audience = jwt.ClaimStrings{s.issuer}
	}
	return c
}

func (s *JWTService) sign(c *Claims) (string, error) {
	return jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(s.keys[c.TokenType].secret)
}

// ValidateAccessToken verifies an access token of either realm
func (s *JWTService) ValidateAccessToken(token string) (*Claims, error) {
	return s.parse(token, TokenTypeAccess)
}

// ValidateRefreshToken verifies a refresh token of either realm
func (s *JWTService) ValidateRefreshToken(token string) (*Claims, error) {
	return s.parse(token, TokenTypeRefresh)
}

// claimErrors are reported as themselves; any other parse failure is ErrInvalidToken
var claimErrors = []error{ErrMissingStoreCode, ErrMissingUserID, ErrInvalidRealm}

func (s *JWTService) parse(token string, want TokenType) (*Claims, error) {
	claims := &Claims{}
	_, err := s.parser.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return s.keys[want].secret, nil
	})
	switch {
	case err == nil:
	case errors.Is(err, jwt.ErrTokenExpired):
		return nil, ErrExpiredToken
	case errors.Is(err, jwt.ErrTokenNotValidYet):
		return nil, ErrTokenNotYetValid
	default:
		for _, known := range claimErrors {
			if errors.Is(err, known) {
				return nil, known
			}
		}
		return nil, ErrInvalidToken
	}

	if claims.TokenType != want {
		return nil, ErrInvalidTokenType
	}
	return claims, nil
}

// Validate checks the shop claims. The jwt parser calls it after the
// registered claims pass.
func (c *Claims) Validate() error {
	switch {
	case c.StoreCode == "":
		return ErrMissingStoreCode
	case c.UserID == "":
		return ErrMissingUserID
	case !c.Realm.valid():
		return ErrInvalidRealm
	}
	return nil
}

func (r Realm) valid() bool {
	return r == RealmAdmin || r == RealmCustomer
}

// RefreshTokenPair issues a new pair from a valid refresh token. authorities
// are the principal's current authorities, reloaded by the caller.
func (s *JWTService) RefreshTokenPair(refreshToken string, authorities []string) (*TokenPair, error) {
	claims, err := s.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, err
	}
	if claims.RefreshCount >= s.maxRefreshCount {
		return nil, ErrMaxRefreshExceeded
	}
	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, ErrInvalidClaims
	}

	return s.issuePair(GenerateTokenInput{
		StoreCode:   claims.StoreCode,
		UserID:      userID,
		Username:    claims.Username,
		Authorities: authorities,
		Realm:       claims.Realm,
	}, claims.RefreshCount+1)
}

func (c *Claims) HasAuthority(authority string) bool {
	return slices.Contains(c.Authorities, authority)
}

// HasAnyAuthority reports whether c holds at least one of authorities
func (c *Claims) HasAnyAuthority(authorities ...string) bool {
	return slices.ContainsFunc(authorities, c.HasAuthority)
}

// RemainingTTL is the time left before expiry, zero once expired or when the
// token has no expiry
func (c *Claims) RemainingTTL() time.Duration {
	if c.ExpiresAt == nil {
		return 0
	}
	return max(time.Until(c.ExpiresAt.Time), 0)
}
