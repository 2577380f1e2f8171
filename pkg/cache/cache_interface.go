package cache

import (
	"context"
	"time"
)

// Cache defines the contract for the cache layer.
// Allows swapping implementations (Redis, in-memory for tests).
//
// Note: article/tag/favorite state is never cached here - every read of
// the content tables goes to the store of record. The cache is used for
// transient operational state only (failed login counters, lockouts).
type Cache interface {
	// Get fetches a value and unmarshals it into dest.
	// Returns (found, error); on a miss dest is left untouched.
	Get(ctx context.Context, key string, dest interface{}) (bool, error)

	// Set stores a value with a TTL
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error

	// Delete removes keys from the cache
	Delete(ctx context.Context, keys ...string) error

	// Increment atomically increments a counter key
	Increment(ctx context.Context, key string) (int64, error)

	// Exists reports whether a key is present
	Exists(ctx context.Context, key string) (bool, error)

	// Expire sets a TTL on an existing key
	Expire(ctx context.Context, key string, ttl time.Duration) error

	// TTL returns the remaining TTL of a key
	TTL(ctx context.Context, key string) (time.Duration, error)

	// Ping checks the connection
	Ping(ctx context.Context) error
}
