package identity

import (
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopizer/backend/internal/domain/shared"
)

var (
	usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9_\-.@+]+$`)
	emailRegex    = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
)

// User is an administration user of a merchant store
type User struct {
	shared.StoreEntity
	StoreCode           string
	Username            string
	Email               string
	FirstName           string
	LastName            string
	PasswordHash        string
	Active              bool
	DefaultLanguageCode string
	Groups              []Group
	LastAccess          *time.Time
	LoginAccess         *time.Time
}

// NewUser creates an active user. passwordHash must already be encoded.
func NewUser(storeID uuid.UUID, storeCode, username, passwordHash string) (*User, error) {
	if err := ValidateUsername(username); err != nil {
		return nil, err
	}
	if passwordHash == "" {
		return nil, shared.NewValidationError("INVALID_PASSWORD", "Password cannot be empty")
	}
	return &User{
		StoreEntity:  shared.NewStoreEntity(storeID),
		StoreCode:    storeCode,
		Username:     strings.TrimSpace(username),
		PasswordHash: passwordHash,
		Active:       true,
		Groups:       make([]Group, 0),
	}, nil
}

// SetEmail sets the user email
func (u *User) SetEmail(email string) error {
	email = strings.TrimSpace(email)
	if email != "" && !emailRegex.MatchString(email) {
		return shared.NewValidationError("INVALID_EMAIL", "Invalid email format")
	}
	u.Email = strings.ToLower(email)
	u.Touch()
	return nil
}

// SetGroups replaces the user's group memberships
func (u *User) SetGroups(groups []Group) {
	u.Groups = groups
	u.Touch()
}

// GroupIDs returns the ids of the user's groups
func (u *User) GroupIDs() []uuid.UUID {
	return groupIDs(u.Groups)
}

// InGroup reports whether the user is a member of the named group
func (u *User) InGroup(name string) bool {
	for _, g := range u.Groups {
		if g.Name == name {
			return true
		}
	}
	return false
}

// IsSuperAdmin reports whether the user may administer every store
func (u *User) IsSuperAdmin() bool {
	return u.InGroup(GroupSuperAdmin)
}

// RecordLogin stores the access timestamps of a successful login
func (u *User) RecordLogin(at time.Time) {
	u.LastAccess = u.LoginAccess
	u.LoginAccess = &at
}

// ValidateUsername checks username syntax
func ValidateUsername(username string) error {
	username = strings.TrimSpace(username)
	if username == "" {
		return shared.NewValidationError("INVALID_USERNAME", "Username cannot be empty")
	}
	if len(username) < 3 {
		return shared.NewValidationError("INVALID_USERNAME", "Username must be at least 3 characters")
	}
	if len(username) > 100 {
		return shared.NewValidationError("INVALID_USERNAME", "Username cannot exceed 100 characters")
	}
	if !usernameRegex.MatchString(username) {
		return shared.NewValidationError("INVALID_USERNAME", "Username can only contain letters, numbers, and the characters _ - . @ +")
	}
	return nil
}

// ValidatePassword checks password length before it is encoded
func ValidatePassword(password string) error {
	if password == "" {
		return shared.NewValidationError("INVALID_PASSWORD", "Password cannot be empty")
	}
	if len(password) < 6 {
		return shared.NewValidationError("INVALID_PASSWORD", "Password must be at least 6 characters")
	}
	if len(password) > 72 {
		return shared.NewValidationError("INVALID_PASSWORD", "Password cannot exceed 72 characters")
	}
	return nil
}

// PasswordEncoder hashes and verifies credentials
type PasswordEncoder interface {
	Encode(raw string) (string, error)
	Matches(raw, encoded string) bool
}
