// Package ghprofile fetches public GitHub profiles (user metadata plus
// repositories) and caches them for a fixed time.
//
// # Quick Start
//
//	c := ghprofile.New()
//	defer c.Close()
//
//	p, err := c.FetchProfile(ctx, "octocat", false)
//	switch {
//	case errors.Is(err, profile.ErrUserNotFound):
//	    // no such user, or blank input
//	case err != nil:
//	    // profile.ErrNetworkFailure or profile.ErrInvalidResponse
//	}
//	for _, r := range p.Repositories { // sorted by name, case-insensitive
//	    fmt.Println(r.Name, r.HTMLURL)
//	}
//
// Usernames are matched case-insensitively and trimmed, so "OctoCat " and
// "octocat" share one cache entry. A fetch within the TTL (5 minutes by
// default) returns the cached profile; pass forceRefresh to bypass it.
// Failed fetches are never cached.
//
// # Layers
//
// The client is a thin composition of the packages under pkg/:
//
//   - transport sends single HTTP requests with a timeout
//   - github calls the two REST endpoints, merges and sorts the result
//   - cache stores profiles in memory or in Redis
//   - profile decides between cache and network
//   - search is a front-end state machine on top of a Client
//
// # Shared cache
//
// Several processes can share fetched profiles through Redis:
//
//	rc, err := redis.Open(ctx, redis.Config{URL: os.Getenv("REDIS_URL")})
//	c := ghprofile.New(ghprofile.WithCache(
//	    cache.NewRedis[profile.Profile](rc, nil, cache.WithRedisTTL(5*time.Minute)),
//	))
package ghprofile
