package cache

import (
	"context"
	"errors"
	"time"
)

// ErrCacheMiss is returned by Get when the key does not exist or has expired.
var ErrCacheMiss = errors.New("cache miss")

// Cache is the session store port. Carts, orders, sign-in sessions and the
// storefront promotion all live behind it, so every value is scoped by a TTL.
type Cache interface {
	// Get retrieves a value by key. Absent keys yield an error wrapping ErrCacheMiss.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a value with the given TTL. A TTL of 0 means no expiration.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes a value by key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Ping checks if the store is reachable.
	Ping(ctx context.Context) error

	// Close releases the store's resources.
	Close() error
}

// Sweeper is implemented by stores that must drop expired entries themselves.
// Redis expires keys on its own and does not implement it.
type Sweeper interface {
	// Sweep removes every expired entry and returns how many were removed.
	Sweep() int
}

// NewFromURL returns a Redis-backed cache when redisURL is set and an
// in-process one otherwise.
func NewFromURL(redisURL string) (Cache, error) {
	if redisURL == "" {
		return NewMemoryAdapter(), nil
	}
	return NewRedisAdapter(redisURL)
}
