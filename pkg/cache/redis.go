package cache

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
)

// Redis is a cache backed by Redis, shared by every process that points at
// the same server and prefix.
// It serializes values using the configured Marshaler (default: JSON) and
// leaves expiration to Redis itself.
type Redis[V any] struct {
	client    redis.UniversalClient
	opts      *redisOptions
	marshaler Marshaler[V]
}

// NewRedis creates a new Redis-backed cache.
// The client should be obtained from pkg/redis.Open.
//
// An optional Marshaler can be provided to customize serialization.
// If nil, JSON serialization is used.
//
// Example:
//
//	client, err := redis.Open(ctx, redis.Config{URL: os.Getenv("REDIS_URL")})
//	c := cache.NewRedis[profile.Profile](client, nil,
//	    cache.WithPrefix("profiles"),
//	    cache.WithRedisTTL(5 * time.Minute),
//	)
func NewRedis[V any](client redis.UniversalClient, m Marshaler[V], opts ...RedisOption) *Redis[V] {
	o := defaultRedisOptions()
	for _, opt := range opts {
		opt(o)
	}

	if m == nil {
		m = jsonMarshaler[V]{}
	}

	return &Redis[V]{
		client:    client,
		opts:      o,
		marshaler: m,
	}
}

// Get retrieves a value by key from Redis.
// Returns ErrNotFound if the key does not exist or Redis already expired it.
func (r *Redis[V]) Get(ctx context.Context, key string) (V, error) {
	var zero V

	data, err := r.client.Get(ctx, r.prefixedKey(key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return zero, ErrNotFound
		}
		return zero, err
	}

	return r.marshaler.Unmarshal(data)
}

// Set stores a value in Redis with the configured TTL.
func (r *Redis[V]) Set(ctx context.Context, key string, value V) error {
	data, err := r.marshaler.Marshal(value)
	if err != nil {
		return err
	}

	return r.client.Set(ctx, r.prefixedKey(key), data, r.opts.ttl).Err()
}

// Delete removes a key from Redis.
func (r *Redis[V]) Delete(ctx context.Context, key string) error {
	return r.client.Del(ctx, r.prefixedKey(key)).Err()
}

// Has checks whether a key exists in Redis.
func (r *Redis[V]) Has(ctx context.Context, key string) (bool, error) {
	n, err := r.client.Exists(ctx, r.prefixedKey(key)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Clear removes every key under the configured prefix using SCAN.
// SCAN does not block the server, so this is safe against a shared instance.
func (r *Redis[V]) Clear(ctx context.Context) error {
	pattern := r.opts.prefix + ":*"
	var cursor uint64

	for {
		keys, next, err := r.client.Scan(ctx, cursor, pattern, 100).Result()
		if err != nil {
			return err
		}

		if len(keys) > 0 {
			if err := r.client.Del(ctx, keys...).Err(); err != nil {
				return err
			}
		}

		cursor = next
		if cursor == 0 {
			return nil
		}
	}
}

// EvictExpired is a no-op: Redis removes expired keys on its own.
func (r *Redis[V]) EvictExpired(context.Context) error {
	return nil
}

// Close is a no-op for Redis. The client lifecycle is managed
// separately by the caller (via pkg/redis.Shutdown).
func (r *Redis[V]) Close() error {
	return nil
}

func (r *Redis[V]) prefixedKey(key string) string {
	return r.opts.prefix + ":" + key
}

var _ Cache[string, any] = (*Redis[any])(nil)
