package cache

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
)

// GetOrCompute returns the cached value for key, or runs producer on a miss
// and stores its result for ttl.
//
// A producer error is returned as-is and nothing is stored.
// Cache read/write failures are logged and the call degrades to the producer,
// so an unreachable cache never fails a read.
func GetOrCompute[T any](ctx context.Context, c Cache, key string, ttl time.Duration, producer func(ctx context.Context) (T, error)) (T, error) {
	var cached T

	found, err := c.Get(ctx, key, &cached)
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("Cache read failed, computing value")
	} else if found {
		return cached, nil
	}

	value, err := producer(ctx)
	if err != nil {
		var zero T
		return zero, err
	}

	if err := c.Set(ctx, key, value, ttl); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("Cache write failed")
	}

	return value, nil
}
