package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"biocard-backend/internal/shared/telemetry"
)

// Redis backs the cache with a Redis server. Read and write failures are
// logged and degrade to misses; a flaky cache must never fail a request.
type Redis struct {
	client *redis.Client
}

// NewRedis constructs a Redis-backed cache.
func NewRedis(addr, password string) *Redis {
	return &Redis{
		client: redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: password,
		}),
	}
}

func (r *Redis) Get(ctx context.Context, key string) ([]byte, bool) {
	value, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			telemetry.Warn("cache.redis.get_failed", map[string]any{"key": key, "error": err.Error()})
		}
		return nil, false
	}
	return value, true
}

func (r *Redis) Set(ctx context.Context, key string, value []byte, ttl time.Duration) {
	if ttl <= 0 {
		return
	}
	if err := r.client.Set(ctx, key, value, ttl).Err(); err != nil {
		telemetry.Warn("cache.redis.set_failed", map[string]any{"key": key, "error": err.Error()})
	}
}

func (r *Redis) Remove(ctx context.Context, key string) {
	if err := r.client.Del(ctx, key).Err(); err != nil {
		telemetry.Warn("cache.redis.remove_failed", map[string]any{"key": key, "error": err.Error()})
	}
}

func (r *Redis) GetOrCreate(ctx context.Context, key string, ttl time.Duration, factory func(ctx context.Context) ([]byte, error)) ([]byte, error) {
	if value, ok := r.Get(ctx, key); ok {
		return value, nil
	}
	value, err := factory(ctx)
	if err != nil {
		return nil, err
	}
	r.Set(ctx, key, value, ttl)
	return value, nil
}

var _ Cache = (*Redis)(nil)
