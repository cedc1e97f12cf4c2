// Package config loads the ghprofile binary configuration.
//
// Values are layered: code defaults, then an optional YAML file, then
// environment variables prefixed with GHPROFILE_. Nested sections map to
// nested prefixes, so cache.ttl in YAML is GHPROFILE_CACHE_TTL in the
// environment and redis.url is GHPROFILE_REDIS_URL.
//
//	server:
//	  addr: ":8080"
//	cache:
//	  backend: memory        # or redis
//	  ttl: 5m
//	  cleanup_schedule: "@every 1m"
//	log:
//	  level: debug
//	  sentry:
//	    dsn: ""
package config
