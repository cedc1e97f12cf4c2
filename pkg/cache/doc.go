// Package cache provides a generic TTL cache with in-memory and Redis implementations.
//
// Both implementations share the same [Cache] interface, so the profile
// store can run against process memory by default and against Redis when
// several instances should share fetched profiles.
//
// # Interface
//
// The [Cache] interface is generic over key type K and value type V:
//
//   - Get(ctx, key) (V, error): retrieve a value, [ErrNotFound] on miss or expiry
//   - Set(ctx, key, value) error: store a value for one TTL
//   - Delete(ctx, key) error: remove a key
//   - Has(ctx, key) (bool, error): check existence
//   - Clear(ctx) error: remove all entries
//   - EvictExpired(ctx) error: drop entries whose TTL has passed
//   - Close() error: release resources
//
// Every entry gets the same lifetime, taken from the cache configuration.
// Reads never extend it.
//
// # In-Memory Cache
//
// [NewMemory] keeps entries in a map guarded by a single mutex. Expiration is
// lazy: Get and Has delete an expired entry when they find it, so an expired
// value is never returned even without background cleanup.
//
//	c := cache.NewMemory[string, profile.Profile](
//	    cache.WithTTL(5 * time.Minute),
//	)
//	defer c.Close()
//
//	_ = c.Set(ctx, "octocat", p)
//	val, err := c.Get(ctx, "octocat")
//
// The clock is injectable, which makes expiry tests exact:
//
//	now := time.Unix(0, 0)
//	c := cache.NewMemory[string, int](
//	    cache.WithTTL(time.Minute),
//	    cache.WithClock(func() time.Time { return now }),
//	)
//
// # Background Cleanup
//
// To bound memory held by entries nobody reads again, schedule EvictExpired
// with [WithCleanupInterval] or a cron expression via [ParseSchedule] and
// [WithCleanupSchedule]:
//
//	s, err := cache.ParseSchedule("@every 1m")
//	c := cache.NewMemory[string, int](cache.WithCleanupSchedule(s))
//
// # Redis Cache
//
// [NewRedis] stores JSON-encoded values under "{prefix}:{key}" and lets Redis
// expire them. Pass a custom [Marshaler] as the second argument to change the
// encoding.
//
//	client, err := redis.Open(ctx, redis.Config{URL: os.Getenv("REDIS_URL")})
//	c := cache.NewRedis[profile.Profile](client, nil,
//	    cache.WithPrefix("profiles"),
//	    cache.WithRedisTTL(5 * time.Minute),
//	)
//
// # Cache Stampede Prevention
//
// [GetOrSet] combines a lookup with a single-flight load, so concurrent
// misses for one key run the loader once:
//
//	var group singleflight.Group
//	val, err := cache.GetOrSet(ctx, c, &group, "octocat", func(ctx context.Context) (profile.Profile, error) {
//	    return service.FetchProfile(ctx, "octocat")
//	})
//
// # Error Handling
//
// The package defines sentinel errors:
//
//   - [ErrNotFound]: key does not exist or has expired
//   - [ErrClosed]: operation on a closed cache
//   - [ErrMarshal]: value serialization failed
//   - [ErrUnmarshal]: value deserialization failed
//   - [ErrInvalidSchedule]: cleanup schedule could not be parsed
//   - [ErrUnavailable]: health probe failed
//
// Use [errors.Is] to check:
//
//	val, err := c.Get(ctx, "key")
//	if errors.Is(err, cache.ErrNotFound) {
//	    // handle miss
//	}
package cache
