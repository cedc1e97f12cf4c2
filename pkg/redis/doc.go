// Package redis opens the go-redis client used by the shared profile cache.
//
// [Open] validates the URL, applies pool and timeout settings from [Config]
// and retries the initial PING a few times so a cache container that starts
// slightly after the service does not fail the boot:
//
//	client, err := redis.Open(ctx, redis.Config{URL: "redis://localhost:6379/0"})
//	if err != nil {
//		return err
//	}
//	profiles := cache.NewRedis[profile.Profile](client, nil)
//
// [Healthcheck] and [Shutdown] plug the client into the server's readiness
// endpoint and shutdown hooks.
//
// Errors returned by Open wrap [ErrEmptyConnectionURL], [ErrFailedToParseURL]
// or [ErrConnectionFailed]; use [errors.Is] to tell them apart.
package redis
