package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value store with per-entry expiration
type Cache interface {
	// Get returns the value stored at key and whether it was present
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores value at key for ttl. A zero ttl never expires.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes keys
	Delete(ctx context.Context, keys ...string) error

	// Close releases resources held by the cache
	Close() error
}
