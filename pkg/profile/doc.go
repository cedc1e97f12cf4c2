// Package profile holds the GitHub profile domain model, the error taxonomy
// shared by every layer, and the cached [Store] that sits between callers
// and the network service.
//
// [Store.FetchProfile] answers from the cache while an entry is fresh
// and goes to its [Fetcher] otherwise:
//
//	store := profile.NewStore(service, cache.NewMemory[string, profile.Profile](
//	    cache.WithTTL(5 * time.Minute),
//	))
//	p, err := store.FetchProfile(ctx, " OctoCat ", false) // cached under "octocat"
//	p, err = store.FetchProfile(ctx, "octocat", true)     // always refetches
//
// Failures carry one of [ErrUserNotFound], [ErrNetworkFailure] or
// [ErrInvalidResponse]; failed fetches are never cached.
//
// Two concurrent misses for the same user both fetch and the last write
// wins. [WithCoalescing] merges them into one fetch instead.
package profile
