// Package server exposes profile lookups as a JSON API.
//
//	GET    /api/profiles/{username}          profile, ?refresh=true bypasses the cache
//	DELETE /api/profiles/{username}/cache    drop one cached profile
//	DELETE /api/cache                        drop all cached profiles
//	GET    /health/live                      liveness probe
//	GET    /health/ready                     readiness probe
//
// Failed lookups answer 404 for unknown users and 502 for upstream problems,
// with the same texts the search state holder shows:
//
//	{"error":{"title":"User not found","message":"User not found. Please enter another name"},"request_id":"..."}
package server
