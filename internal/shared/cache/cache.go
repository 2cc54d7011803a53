// Package cache provides a read-through cache with interchangeable
// in-process and Redis backends, selected once at startup.
package cache

import (
	"context"
	"strings"
	"time"
)

// Cache stores serialized values under string keys with a TTL.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration)
	Remove(ctx context.Context, key string)
	// GetOrCreate returns the cached value for key, or invokes factory,
	// stores its result, and returns it. Factory errors are returned as-is
	// and never cached.
	GetOrCreate(ctx context.Context, key string, ttl time.Duration, factory func(ctx context.Context) ([]byte, error)) ([]byte, error)
}

// ProfileKey is the cache key for a user's display profile.
func ProfileKey(username string) string {
	return "profile:" + strings.ToLower(strings.TrimSpace(username))
}
