// Package health serves liveness and readiness probes.
//
// Liveness always answers OK while the process runs. Readiness runs every
// registered [CheckFunc] in parallel under one timeout; the profile server
// registers the profile cache and, when configured, the Redis connection:
//
//	r.Get("/health/live", health.LivenessHandler())
//	r.Get("/health/ready", health.ReadinessHandler(health.Checks{
//	    "cache": cache.Healthcheck(profiles),
//	    "redis": redis.Healthcheck(client),
//	}, health.WithLogger(log)))
//
// Probes get plain text ("OK" or "Service Unavailable"). Clients sending
// Accept: application/json or ?format=json get the per-check report:
//
//	{"status":"unhealthy","checks":{"redis":{"status":"unhealthy","error":"..."}}}
//
// [Run] returns the same report for non-HTTP callers; [Response.Err] folds it
// into an error wrapping [ErrCheckFailed].
package health
