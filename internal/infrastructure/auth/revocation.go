package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/shopizer/backend/internal/infrastructure/cache"
)

const revokedKeyPrefix = "token:revoked:"

// RevocationList records logged-out token IDs until the tokens expire
type RevocationList struct {
	cache cache.Cache
}

// NewRevocationList creates a revocation list stored in c
func NewRevocationList(c cache.Cache) *RevocationList {
	return &RevocationList{cache: c}
}

// Revoke marks jti as revoked for ttl, which should be the token's remaining lifetime
func (r *RevocationList) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	if err := r.cache.Set(ctx, revokedKeyPrefix+jti, []byte("1"), ttl); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	return nil
}

// IsRevoked reports whether jti has been revoked
func (r *RevocationList) IsRevoked(ctx context.Context, jti string) (bool, error) {
	_, ok, err := r.cache.Get(ctx, revokedKeyPrefix+jti)
	if err != nil {
		return false, fmt.Errorf("failed to check token revocation: %w", err)
	}
	return ok, nil
}
