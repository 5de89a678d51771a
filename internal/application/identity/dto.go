package identity

import (
	"time"

	"github.com/google/uuid"
)

// Principal is an authenticated account with its granted authorities
type Principal struct {
	ID             uuid.UUID
	StoreID        uuid.UUID
	StoreCode      string
	Username       string
	CredentialHash string
	Active         bool
	Authorities    []string
}

// LoginInput contains the credentials of a login request
type LoginInput struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResult contains the token pair issued after a successful login
type LoginResult struct {
	AccessToken           string    `json:"access_token"`
	RefreshToken          string    `json:"refresh_token"`
	AccessTokenExpiresAt  time.Time `json:"access_token_expires_at"`
	RefreshTokenExpiresAt time.Time `json:"refresh_token_expires_at"`
	TokenType             string    `json:"token_type"`
	ID                    uuid.UUID `json:"id"`
	Username              string    `json:"username"`
	Authorities           []string  `json:"authorities"`
}

// RefreshTokenInput contains the refresh token to exchange
type RefreshTokenInput struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// ReadableGroup is a group in API responses
type ReadableGroup struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	Type string    `json:"type"`
}

// ReadableUser is an administration user in API responses
type ReadableUser struct {
	ID              uuid.UUID       `json:"id"`
	UserName        string          `json:"user_name"`
	EmailAddress    string          `json:"email_address,omitempty"`
	FirstName       string          `json:"first_name,omitempty"`
	LastName        string          `json:"last_name,omitempty"`
	DefaultLanguage string          `json:"default_language,omitempty"`
	Active          bool            `json:"active"`
	Merchant        string          `json:"merchant"`
	Groups          []ReadableGroup `json:"groups"`
	Permissions     []string        `json:"permissions"`
	LastAccess      *time.Time      `json:"last_access,omitempty"`
	LoginAccess     *time.Time      `json:"login_access,omitempty"`
}

// PersistableUser creates or updates an administration user. Email, names and
// default language keep their stored value when omitted.
type PersistableUser struct {
	UserName        string   `json:"user_name" binding:"required,min=3,max=100"`
	EmailAddress    *string  `json:"email_address" binding:"omitempty,email"`
	Password        string   `json:"password" binding:"omitempty,min=6,max=72"`
	FirstName       *string  `json:"first_name" binding:"omitempty,max=100"`
	LastName        *string  `json:"last_name" binding:"omitempty,max=100"`
	DefaultLanguage string   `json:"default_language" binding:"omitempty,langcode"`
	Active          *bool    `json:"active"`
	Groups          []string `json:"groups" binding:"required,min=1"`
}
