package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"golang.org/x/sync/singleflight"
)

// Clock returns the current time. Caches read it on every operation so tests
// can move time forward deterministically.
type Clock func() time.Time

// Cache is a key-value store where every entry lives for a fixed TTL
// taken from the cache configuration.
type Cache[K comparable, V any] interface {
	// Get retrieves a value by key.
	// Returns ErrNotFound if the key does not exist or has expired.
	// Expired entries are removed by the lookup that finds them.
	Get(ctx context.Context, key K) (V, error)

	// Set stores a value, replacing any existing entry for the key.
	// The entry expires one TTL after the cache clock's current time.
	Set(ctx context.Context, key K, value V) error

	// Delete removes a key from the cache. Missing keys are not an error.
	Delete(ctx context.Context, key K) error

	// Has checks whether a key exists and has not expired.
	Has(ctx context.Context, key K) (bool, error)

	// Clear removes all entries from the cache.
	Clear(ctx context.Context) error

	// EvictExpired removes every entry whose expiration time has passed.
	EvictExpired(ctx context.Context) error

	// Close releases resources (stops background schedulers, etc.).
	Close() error
}

// Marshaler serializes and deserializes cache values for storage backends
// that require byte representation (e.g., Redis).
type Marshaler[V any] interface {
	Marshal(v V) ([]byte, error)
	Unmarshal(data []byte) (V, error)
}

type jsonMarshaler[V any] struct{}

func (jsonMarshaler[V]) Marshal(v V) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, errors.Join(ErrMarshal, err)
	}
	return data, nil
}

func (jsonMarshaler[V]) Unmarshal(data []byte) (V, error) {
	var v V
	if err := json.Unmarshal(data, &v); err != nil {
		return v, errors.Join(ErrUnmarshal, err)
	}
	return v, nil
}

// GetOrSet retrieves a value from the cache, or calls fn to compute it on a miss.
// Concurrent misses for the same key share one call to fn through group,
// which is owned by the caller so unrelated caches never coalesce.
//
// The shared call runs under a context detached from cancellation, so one
// caller giving up does not fail the others; fn must bound its own work.
// Each caller waits only until its own ctx is done and then returns ctx.Err().
// A successful result is cached even when every caller has stopped waiting.
// If fn returns an error, the value is not cached and the error is returned.
func GetOrSet[V any](ctx context.Context, c Cache[string, V], group *singleflight.Group, key string, fn func(ctx context.Context) (V, error)) (V, error) {
	var zero V

	if v, err := c.Get(ctx, key); err == nil {
		return v, nil
	}

	shared := context.WithoutCancel(ctx)
	ch := group.DoChan(key, func() (any, error) {
		val, err := fn(shared)
		if err != nil {
			return nil, err
		}
		// Best-effort: a failing backend must not hide a good value.
		_ = c.Set(shared, key, val)
		return val, nil
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return zero, res.Err
		}
		return res.Val.(V), nil
	case <-ctx.Done():
		return zero, ctx.Err()
	}
}

// Healthcheck returns a closure that probes the cache backend.
// Compatible with health check interfaces that expect func(context.Context) error.
func Healthcheck[V any](c Cache[string, V]) func(context.Context) error {
	return func(ctx context.Context) error {
		if _, err := c.Has(ctx, "__healthcheck__"); err != nil {
			return errors.Join(ErrUnavailable, err)
		}
		return nil
	}
}
