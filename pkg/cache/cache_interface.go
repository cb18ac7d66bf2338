package cache

import (
	"context"
	"time"
)

// Cache is the read-through cache used by repositories.
// Callers treat every error as a cache miss; the store stays the source of truth.
type Cache interface {
	// Get unmarshals the cached JSON value into dest.
	// found is false on a miss, in which case dest is untouched.
	Get(ctx context.Context, key string, dest interface{}) (found bool, err error)

	// Set stores value as JSON with the given TTL
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error

	Delete(ctx context.Context, keys ...string) error

	Ping(ctx context.Context) error
}
