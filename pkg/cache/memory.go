package cache

import (
	"context"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// entry holds a cached value with its expiration time.
type entry[V any] struct {
	expiresAt time.Time
	value     V
}

// expired reports whether the entry is no longer visible at now.
// An entry expiring exactly at now is already gone.
func (e entry[V]) expired(now time.Time) bool {
	return !now.Before(e.expiresAt)
}

// Memory is an in-memory cache with TTL-based expiration.
//
// Expiration is lazy: an expired entry stays in the map until a lookup
// finds it, EvictExpired runs, or the optional cleanup schedule fires.
// There is no size bound and no other eviction policy.
type Memory[K comparable, V any] struct {
	items     map[K]entry[V]
	opts      *memoryOptions
	scheduler *cron.Cron
	mu        sync.Mutex
	closed    bool
}

// NewMemory creates a new in-memory cache.
//
// Example:
//
//	c := cache.NewMemory[string, profile.Profile](
//	    cache.WithTTL(5 * time.Minute),
//	    cache.WithCleanupInterval(time.Minute),
//	)
//	defer c.Close()
func NewMemory[K comparable, V any](opts ...MemoryOption) *Memory[K, V] {
	o := defaultMemoryOptions()
	for _, opt := range opts {
		opt(o)
	}

	m := &Memory[K, V]{
		items: make(map[K]entry[V]),
		opts:  o,
	}

	if o.cleanup != nil {
		m.scheduler = cron.New()
		m.scheduler.Schedule(o.cleanup, cron.FuncJob(func() {
			_ = m.EvictExpired(context.Background())
		}))
		m.scheduler.Start()
	}

	return m
}

// TTL returns the lifetime given to every entry on Set.
func (m *Memory[K, V]) TTL() time.Duration {
	return m.opts.ttl
}

// Get retrieves a value by key.
// Returns ErrNotFound if the key does not exist or has expired.
// Reading never extends an entry's lifetime.
func (m *Memory[K, V]) Get(_ context.Context, key K) (V, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var zero V
	if m.closed {
		return zero, ErrClosed
	}

	e, ok := m.items[key]
	if !ok {
		return zero, ErrNotFound
	}

	if e.expired(m.opts.clock()) {
		delete(m.items, key)
		return zero, ErrNotFound
	}

	return e.value, nil
}

// Set stores a value that expires one TTL from now, overwriting any
// existing entry for the key.
func (m *Memory[K, V]) Set(_ context.Context, key K, value V) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrClosed
	}

	m.items[key] = entry[V]{
		value:     value,
		expiresAt: m.opts.clock().Add(m.opts.ttl),
	}

	return nil
}

// Delete removes a key from the cache.
func (m *Memory[K, V]) Delete(_ context.Context, key K) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrClosed
	}

	delete(m.items, key)

	return nil
}

// Has checks whether a key exists and has not expired.
func (m *Memory[K, V]) Has(_ context.Context, key K) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return false, ErrClosed
	}

	e, ok := m.items[key]
	if !ok {
		return false, nil
	}

	if e.expired(m.opts.clock()) {
		delete(m.items, key)
		return false, nil
	}

	return true, nil
}

// Clear removes all entries from the cache.
func (m *Memory[K, V]) Clear(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrClosed
	}

	clear(m.items)

	return nil
}

// EvictExpired removes all expired entries.
func (m *Memory[K, V]) EvictExpired(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrClosed
	}

	now := m.opts.clock()
	for key, e := range m.items {
		if e.expired(now) {
			delete(m.items, key)
		}
	}

	return nil
}

// Len returns the number of stored entries, including expired entries
// that have not been removed yet.
func (m *Memory[K, V]) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.items)
}

// Close stops the cleanup scheduler and marks the cache as closed.
// Close is idempotent.
func (m *Memory[K, V]) Close() error {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return nil
	}
	m.closed = true
	clear(m.items)
	m.mu.Unlock()

	// Stop outside the lock: a running cleanup job needs the mutex to finish.
	if m.scheduler != nil {
		<-m.scheduler.Stop().Done()
	}

	return nil
}

var _ Cache[string, any] = (*Memory[string, any])(nil)
