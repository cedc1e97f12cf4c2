package cache_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/sync/singleflight"

	"github.com/dmitrymomot/ghprofile/pkg/cache"
)

// fakeClock is a manually advanced time source.
type fakeClock struct {
	now time.Time
	mu  sync.Mutex
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
}

func (f *fakeClock) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *fakeClock) Advance(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = f.now.Add(d)
}

func newTestMemory[V any](t *testing.T, clock *fakeClock, ttl time.Duration) *cache.Memory[string, V] {
	t.Helper()

	c := cache.NewMemory[string, V](cache.WithTTL(ttl), cache.WithClock(clock.Now))
	t.Cleanup(func() { _ = c.Close() })
	return c
}

// --- Memory: Get ---

func TestMemory_Get(t *testing.T) {
	t.Parallel()

	t.Run("returns ErrNotFound for missing key", func(t *testing.T) {
		t.Parallel()

		c := newTestMemory[string](t, newFakeClock(), time.Minute)

		_, err := c.Get(context.Background(), "missing")
		require.ErrorIs(t, err, cache.ErrNotFound)
	})

	t.Run("returns stored value before expiry", func(t *testing.T) {
		t.Parallel()

		clock := newFakeClock()
		c := newTestMemory[int](t, clock, time.Minute)

		ctx := context.Background()
		require.NoError(t, c.Set(ctx, "key", 42))

		clock.Advance(59 * time.Second)

		val, err := c.Get(ctx, "key")
		require.NoError(t, err)
		require.Equal(t, 42, val)
	})

	t.Run("entry expiring exactly now is gone", func(t *testing.T) {
		t.Parallel()

		clock := newFakeClock()
		c := newTestMemory[string](t, clock, time.Minute)

		ctx := context.Background()
		require.NoError(t, c.Set(ctx, "key", "value"))

		clock.Advance(time.Minute)

		_, err := c.Get(ctx, "key")
		require.ErrorIs(t, err, cache.ErrNotFound)
	})

	t.Run("expired entry is removed on read", func(t *testing.T) {
		t.Parallel()

		clock := newFakeClock()
		c := newTestMemory[string](t, clock, time.Minute)

		ctx := context.Background()
		require.NoError(t, c.Set(ctx, "key", "value"))
		require.Equal(t, 1, c.Len())

		clock.Advance(2 * time.Minute)

		_, err := c.Get(ctx, "key")
		require.ErrorIs(t, err, cache.ErrNotFound)
		require.Equal(t, 0, c.Len())
	})

	t.Run("read does not extend lifetime", func(t *testing.T) {
		t.Parallel()

		clock := newFakeClock()
		c := newTestMemory[string](t, clock, time.Minute)

		ctx := context.Background()
		require.NoError(t, c.Set(ctx, "key", "value"))

		clock.Advance(30 * time.Second)
		_, err := c.Get(ctx, "key")
		require.NoError(t, err)

		clock.Advance(30 * time.Second)
		_, err = c.Get(ctx, "key")
		require.ErrorIs(t, err, cache.ErrNotFound)
	})

	t.Run("returns ErrClosed after Close", func(t *testing.T) {
		t.Parallel()

		c := cache.NewMemory[string, string]()
		require.NoError(t, c.Close())

		_, err := c.Get(context.Background(), "key")
		require.ErrorIs(t, err, cache.ErrClosed)
	})
}

// --- Memory: Set ---

func TestMemory_Set(t *testing.T) {
	t.Parallel()

	t.Run("overwrites existing key and restarts ttl", func(t *testing.T) {
		t.Parallel()

		clock := newFakeClock()
		c := newTestMemory[int](t, clock, time.Minute)

		ctx := context.Background()
		require.NoError(t, c.Set(ctx, "key", 1))

		clock.Advance(40 * time.Second)
		require.NoError(t, c.Set(ctx, "key", 2))

		clock.Advance(40 * time.Second)
		val, err := c.Get(ctx, "key")
		require.NoError(t, err)
		require.Equal(t, 2, val)
	})

	t.Run("default ttl is five minutes", func(t *testing.T) {
		t.Parallel()

		clock := newFakeClock()
		c := cache.NewMemory[string, string](cache.WithClock(clock.Now))
		defer c.Close()

		require.Equal(t, cache.DefaultTTL, c.TTL())

		ctx := context.Background()
		require.NoError(t, c.Set(ctx, "key", "value"))

		clock.Advance(5*time.Minute - time.Nanosecond)
		has, err := c.Has(ctx, "key")
		require.NoError(t, err)
		require.True(t, has)

		clock.Advance(time.Nanosecond)
		has, err = c.Has(ctx, "key")
		require.NoError(t, err)
		require.False(t, has)
	})

	t.Run("non-positive ttl option is ignored", func(t *testing.T) {
		t.Parallel()

		c := cache.NewMemory[string, string](cache.WithTTL(0), cache.WithTTL(-time.Second))
		defer c.Close()

		require.Equal(t, cache.DefaultTTL, c.TTL())
	})

	t.Run("returns ErrClosed after Close", func(t *testing.T) {
		t.Parallel()

		c := cache.NewMemory[string, string]()
		require.NoError(t, c.Close())

		err := c.Set(context.Background(), "key", "value")
		require.ErrorIs(t, err, cache.ErrClosed)
	})
}

// --- Memory: Delete ---

func TestMemory_Delete(t *testing.T) {
	t.Parallel()

	t.Run("removes existing key", func(t *testing.T) {
		t.Parallel()

		c := newTestMemory[string](t, newFakeClock(), time.Minute)

		ctx := context.Background()
		require.NoError(t, c.Set(ctx, "key", "value"))
		require.NoError(t, c.Delete(ctx, "key"))

		_, err := c.Get(ctx, "key")
		require.ErrorIs(t, err, cache.ErrNotFound)
	})

	t.Run("no error for missing key", func(t *testing.T) {
		t.Parallel()

		c := newTestMemory[string](t, newFakeClock(), time.Minute)

		require.NoError(t, c.Delete(context.Background(), "missing"))
	})

	t.Run("leaves other keys alone", func(t *testing.T) {
		t.Parallel()

		c := newTestMemory[string](t, newFakeClock(), time.Minute)

		ctx := context.Background()
		require.NoError(t, c.Set(ctx, "a", "1"))
		require.NoError(t, c.Set(ctx, "b", "2"))
		require.NoError(t, c.Delete(ctx, "a"))

		val, err := c.Get(ctx, "b")
		require.NoError(t, err)
		require.Equal(t, "2", val)
	})

	t.Run("returns ErrClosed after Close", func(t *testing.T) {
		t.Parallel()

		c := cache.NewMemory[string, string]()
		require.NoError(t, c.Close())

		err := c.Delete(context.Background(), "key")
		require.ErrorIs(t, err, cache.ErrClosed)
	})
}

// --- Memory: Has ---

func TestMemory_Has(t *testing.T) {
	t.Parallel()

	clock := newFakeClock()
	c := newTestMemory[string](t, clock, time.Minute)

	ctx := context.Background()
	require.NoError(t, c.Set(ctx, "key", "value"))

	has, err := c.Has(ctx, "key")
	require.NoError(t, err)
	require.True(t, has)

	has, err = c.Has(ctx, "missing")
	require.NoError(t, err)
	require.False(t, has)

	clock.Advance(time.Minute)

	has, err = c.Has(ctx, "key")
	require.NoError(t, err)
	require.False(t, has)
	require.Equal(t, 0, c.Len())
}

// --- Memory: Clear ---

func TestMemory_Clear(t *testing.T) {
	t.Parallel()

	t.Run("removes all entries", func(t *testing.T) {
		t.Parallel()

		c := newTestMemory[string](t, newFakeClock(), time.Minute)

		ctx := context.Background()
		require.NoError(t, c.Set(ctx, "a", "1"))
		require.NoError(t, c.Set(ctx, "b", "2"))
		require.NoError(t, c.Set(ctx, "c", "3"))

		require.NoError(t, c.Clear(ctx))

		require.Equal(t, 0, c.Len())
		_, err := c.Get(ctx, "a")
		require.ErrorIs(t, err, cache.ErrNotFound)
	})

	t.Run("returns ErrClosed after Close", func(t *testing.T) {
		t.Parallel()

		c := cache.NewMemory[string, string]()
		require.NoError(t, c.Close())

		err := c.Clear(context.Background())
		require.ErrorIs(t, err, cache.ErrClosed)
	})
}

// --- Memory: EvictExpired ---

func TestMemory_EvictExpired(t *testing.T) {
	t.Parallel()

	clock := newFakeClock()
	c := newTestMemory[string](t, clock, time.Minute)

	ctx := context.Background()
	require.NoError(t, c.Set(ctx, "old", "1"))

	clock.Advance(30 * time.Second)
	require.NoError(t, c.Set(ctx, "new", "2"))

	clock.Advance(30 * time.Second)
	require.NoError(t, c.EvictExpired(ctx))

	require.Equal(t, 1, c.Len())
	val, err := c.Get(ctx, "new")
	require.NoError(t, err)
	require.Equal(t, "2", val)
}

// --- Memory: Close ---

func TestMemory_Close(t *testing.T) {
	t.Parallel()

	t.Run("idempotent close", func(t *testing.T) {
		t.Parallel()

		c := cache.NewMemory[string, string]()
		require.NoError(t, c.Close())
		require.NoError(t, c.Close())
	})

	t.Run("stops cleanup schedule", func(t *testing.T) {
		t.Parallel()

		c := cache.NewMemory[string, string](cache.WithCleanupInterval(time.Second))
		require.NoError(t, c.Close())
	})
}

// --- Memory: Cleanup schedule ---

func TestMemory_CleanupSchedule(t *testing.T) {
	t.Parallel()

	clock := newFakeClock()
	c := cache.NewMemory[string, string](
		cache.WithTTL(time.Minute),
		cache.WithClock(clock.Now),
		cache.WithCleanupInterval(time.Second),
	)
	defer c.Close()

	ctx := context.Background()
	require.NoError(t, c.Set(ctx, "short", "value"))
	clock.Advance(2 * time.Minute)

	require.Eventually(t, func() bool {
		return c.Len() == 0
	}, 5*time.Second, 50*time.Millisecond, "expired entry should be removed by the scheduler")
}

func TestParseSchedule(t *testing.T) {
	t.Parallel()

	t.Run("accepts descriptors", func(t *testing.T) {
		t.Parallel()

		s, err := cache.ParseSchedule("@every 1m")
		require.NoError(t, err)

		start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
		require.Equal(t, start.Add(time.Minute), s.Next(start))
	})

	t.Run("accepts five-field expressions", func(t *testing.T) {
		t.Parallel()

		_, err := cache.ParseSchedule("*/5 * * * *")
		require.NoError(t, err)
	})

	t.Run("rejects garbage", func(t *testing.T) {
		t.Parallel()

		_, err := cache.ParseSchedule("every so often")
		require.ErrorIs(t, err, cache.ErrInvalidSchedule)
	})
}

// --- Memory: Concurrent Access ---

func TestMemory_ConcurrentAccess(t *testing.T) {
	t.Parallel()

	c := newTestMemory[int](t, newFakeClock(), time.Minute)

	ctx := context.Background()
	var wg sync.WaitGroup

	for i := range 50 {
		wg.Go(func() {
			_ = c.Set(ctx, "key", i)
		})
	}

	for range 50 {
		wg.Go(func() {
			_, _ = c.Get(ctx, "key")
		})
	}

	for range 10 {
		wg.Go(func() {
			_ = c.Delete(ctx, "key")
			_ = c.EvictExpired(ctx)
		})
	}

	wg.Go(func() {
		_ = c.Clear(ctx)
	})

	wg.Wait()
}

// --- GetOrSet ---

func TestGetOrSet(t *testing.T) {
	t.Parallel()

	t.Run("returns cached value on hit", func(t *testing.T) {
		t.Parallel()

		c := newTestMemory[string](t, newFakeClock(), time.Minute)
		var group singleflight.Group

		ctx := context.Background()
		require.NoError(t, c.Set(ctx, "key", "cached"))

		val, err := cache.GetOrSet(ctx, c, &group, "key", func(_ context.Context) (string, error) {
			t.Fatal("fn should not be called on cache hit")
			return "", nil
		})
		require.NoError(t, err)
		require.Equal(t, "cached", val)
	})

	t.Run("calls fn on miss and caches result", func(t *testing.T) {
		t.Parallel()

		c := newTestMemory[string](t, newFakeClock(), time.Minute)
		var group singleflight.Group

		ctx := context.Background()
		val, err := cache.GetOrSet(ctx, c, &group, "key", func(_ context.Context) (string, error) {
			return "computed", nil
		})
		require.NoError(t, err)
		require.Equal(t, "computed", val)

		cached, err := c.Get(ctx, "key")
		require.NoError(t, err)
		require.Equal(t, "computed", cached)
	})

	t.Run("does not cache errors", func(t *testing.T) {
		t.Parallel()

		c := newTestMemory[string](t, newFakeClock(), time.Minute)
		var group singleflight.Group
		errBoom := errors.New("boom")

		ctx := context.Background()
		_, err := cache.GetOrSet(ctx, c, &group, "key", func(_ context.Context) (string, error) {
			return "", errBoom
		})
		require.ErrorIs(t, err, errBoom)

		has, err := c.Has(ctx, "key")
		require.NoError(t, err)
		require.False(t, has)
	})

	t.Run("cancelled caller stops waiting and the shared result is still cached", func(t *testing.T) {
		t.Parallel()

		c := newTestMemory[string](t, newFakeClock(), time.Minute)
		var group singleflight.Group
		release := make(chan struct{})
		started := make(chan struct{})

		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan error, 1)
		go func() {
			_, err := cache.GetOrSet(ctx, c, &group, "key", func(fnCtx context.Context) (string, error) {
				close(started)
				<-release
				if fnCtx.Err() != nil {
					return "", fnCtx.Err()
				}
				return "late", nil
			})
			done <- err
		}()

		<-started
		cancel()
		require.ErrorIs(t, <-done, context.Canceled)

		close(release)
		require.Eventually(t, func() bool {
			v, err := c.Get(context.Background(), "key")
			return err == nil && v == "late"
		}, time.Second, time.Millisecond)
	})

	t.Run("one caller cancelling does not fail the others", func(t *testing.T) {
		t.Parallel()

		c := newTestMemory[string](t, newFakeClock(), time.Minute)
		var group singleflight.Group
		release := make(chan struct{})
		started := make(chan struct{})
		var once sync.Once
		fn := func(fnCtx context.Context) (string, error) {
			once.Do(func() { close(started) })
			select {
			case <-release:
				return "shared", nil
			case <-fnCtx.Done():
				return "", fnCtx.Err()
			}
		}

		firstCtx, cancelFirst := context.WithCancel(context.Background())
		first := make(chan error, 1)
		go func() {
			_, err := cache.GetOrSet(firstCtx, c, &group, "key", fn)
			first <- err
		}()
		<-started

		type result struct {
			val string
			err error
		}
		second := make(chan result, 1)
		go func() {
			v, err := cache.GetOrSet(context.Background(), c, &group, "key", fn)
			second <- result{v, err}
		}()

		cancelFirst()
		require.ErrorIs(t, <-first, context.Canceled)

		close(release)
		res := <-second
		require.NoError(t, res.err)
		require.Equal(t, "shared", res.val)
	})

	t.Run("waiting caller honours its own deadline", func(t *testing.T) {
		t.Parallel()

		c := newTestMemory[string](t, newFakeClock(), time.Minute)
		var group singleflight.Group
		release := make(chan struct{})
		started := make(chan struct{})
		t.Cleanup(func() { close(release) })

		go func() {
			_, _ = cache.GetOrSet(context.Background(), c, &group, "key", func(context.Context) (string, error) {
				close(started)
				<-release
				return "slow", nil
			})
		}()
		<-started

		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()

		begin := time.Now()
		_, err := cache.GetOrSet(ctx, c, &group, "key", func(context.Context) (string, error) {
			t.Error("fn must not run twice for one key")
			return "", nil
		})
		require.ErrorIs(t, err, context.DeadlineExceeded)
		require.Less(t, time.Since(begin), 500*time.Millisecond)
	})

	t.Run("coalesces concurrent misses", func(t *testing.T) {
		t.Parallel()

		c := newTestMemory[int](t, newFakeClock(), time.Minute)
		var group singleflight.Group

		var calls atomic.Int32
		release := make(chan struct{})

		ctx := context.Background()
		var wg sync.WaitGroup
		results := make([]int, 10)
		for i := range 10 {
			wg.Go(func() {
				v, err := cache.GetOrSet(ctx, c, &group, "key", func(_ context.Context) (int, error) {
					calls.Add(1)
					<-release
					return 7, nil
				})
				if err == nil {
					results[i] = v
				}
			})
		}

		// Let every goroutine reach the single flight before releasing it.
		time.Sleep(50 * time.Millisecond)
		close(release)
		wg.Wait()

		require.Equal(t, int32(1), calls.Load())
		for _, v := range results {
			require.Equal(t, 7, v)
		}
	})
}

// --- Healthcheck ---

func TestHealthcheck(t *testing.T) {
	t.Parallel()

	c := cache.NewMemory[string, string]()
	check := cache.Healthcheck[string](c)

	require.NoError(t, check(context.Background()))

	require.NoError(t, c.Close())
	err := check(context.Background())
	require.ErrorIs(t, err, cache.ErrUnavailable)
	require.ErrorIs(t, err, cache.ErrClosed)
}
