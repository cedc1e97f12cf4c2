// Package cli implements the ghprofile commands.
//
//	ghprofile serve  [--config file]
//	ghprofile lookup [--config file] [--refresh] [--json] <username>
//
// serve runs the JSON API until SIGINT or SIGTERM. lookup drives the search
// state holder once and prints the profile, or the alert text on failure.
// Both build the same client from internal/config: in-memory cache by
// default, Redis when cache.backend is "redis".
package cli
