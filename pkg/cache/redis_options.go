package cache

import "time"

// DefaultRedisPrefix namespaces keys written by Redis caches.
const DefaultRedisPrefix = "ghprofile"

// RedisOption configures the Redis cache.
type RedisOption func(*redisOptions)

type redisOptions struct {
	prefix string
	ttl    time.Duration
}

func defaultRedisOptions() *redisOptions {
	return &redisOptions{
		ttl:    DefaultTTL,
		prefix: DefaultRedisPrefix,
	}
}

// WithRedisTTL sets how long Redis keeps each entry.
// Non-positive durations are ignored.
// Default: 5 minutes.
func WithRedisTTL(d time.Duration) RedisOption {
	return func(o *redisOptions) {
		if d > 0 {
			o.ttl = d
		}
	}
}

// WithPrefix sets the key prefix for all cache operations.
// Keys are stored as "{prefix}:{key}". An empty prefix is ignored so that
// Clear can never match the whole database.
// Default: "ghprofile".
func WithPrefix(prefix string) RedisOption {
	return func(o *redisOptions) {
		if prefix != "" {
			o.prefix = prefix
		}
	}
}
