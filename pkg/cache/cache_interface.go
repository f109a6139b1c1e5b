package cache

import (
	"context"
	"time"
)

// Cache is the contract for the result cache layer.
// Implementations: Redis (internal/infrastructure/cache) and in-memory (this package).
type Cache interface {
	// Get decodes the cached value into dest.
	// found=false means a miss and dest is left untouched.
	Get(ctx context.Context, key string, dest interface{}) (bool, error)

	// Set stores value with a TTL. A zero TTL means no expiry.
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error

	Delete(ctx context.Context, keys ...string) error

	// DeletePattern removes every key matching a glob pattern (e.g. "courses:list:*").
	DeletePattern(ctx context.Context, pattern string) error

	Ping(ctx context.Context) error
}
