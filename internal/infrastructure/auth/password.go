package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// BcryptPasswordEncoder hashes and verifies passwords with bcrypt
type BcryptPasswordEncoder struct {
	cost int
}

// NewBcryptPasswordEncoder creates an encoder; cost 0 selects bcrypt.DefaultCost
func NewBcryptPasswordEncoder(cost int) *BcryptPasswordEncoder {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	return &BcryptPasswordEncoder{cost: cost}
}

// Encode hashes raw
func (e *BcryptPasswordEncoder) Encode(raw string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(raw), e.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// Matches reports whether raw hashes to encoded
func (e *BcryptPasswordEncoder) Matches(raw, encoded string) bool {
	return bcrypt.CompareHashAndPassword([]byte(encoded), []byte(raw)) == nil
}
