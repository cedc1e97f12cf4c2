package profile

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"golang.org/x/sync/singleflight"

	"github.com/dmitrymomot/ghprofile/pkg/cache"
)

// Fetcher loads a profile from the network on every call.
type Fetcher interface {
	FetchProfile(ctx context.Context, username string) (Profile, error)
}

// Store decides between cached profiles and fresh fetches.
// It is the only component that reads or writes the profile cache.
type Store struct {
	fetcher Fetcher
	cache   cache.Cache[string, Profile]
	logger  *slog.Logger
	group   *singleflight.Group // nil unless coalescing is enabled
}

// NewStore wraps fetcher with c. A nil cache gets an in-memory cache
// with the default TTL, owned by the store.
func NewStore(fetcher Fetcher, c cache.Cache[string, Profile], opts ...Option) *Store {
	o := newOptions(opts...)

	if c == nil {
		c = cache.NewMemory[string, Profile]()
	}

	s := &Store{
		fetcher: fetcher,
		cache:   c,
		logger:  o.logger,
	}
	if o.coalesce {
		s.group = &singleflight.Group{}
	}

	return s
}

// CacheKey normalizes a username into the key its profile is cached under.
// Lookups are case-insensitive and ignore surrounding whitespace.
func CacheKey(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}

// FetchProfile returns the profile for username.
//
// Unless forceRefresh is set, an unexpired cached profile is returned
// without touching the network. Otherwise the fetcher is called with the
// trimmed username and a successful result replaces the cached one.
// Errors from the fetcher are returned unchanged and never cached.
// A fetch whose context is cancelled does not write the cache. With
// coalescing, a caller that gives up gets ErrNetworkFailure while the shared
// fetch runs on for the remaining callers.
func (s *Store) FetchProfile(ctx context.Context, username string, forceRefresh bool) (Profile, error) {
	name := strings.TrimSpace(username)
	key := CacheKey(name)

	if forceRefresh {
		return s.load(ctx, name, key)
	}

	if s.group != nil {
		return s.coalesced(ctx, name, key)
	}

	p, err := s.cache.Get(ctx, key)
	switch {
	case err == nil:
		s.logger.DebugContext(ctx, "profile cache hit", slog.String("username", name))
		return p, nil
	case !errors.Is(err, cache.ErrNotFound):
		s.logger.WarnContext(ctx, "profile cache lookup failed",
			slog.String("username", name),
			slog.String("error", err.Error()),
		)
	default:
		s.logger.DebugContext(ctx, "profile cache miss", slog.String("username", name))
	}

	return s.load(ctx, name, key)
}

// coalesced shares one fetch among concurrent misses for key. The shared
// fetch outlives callers that stop waiting and is cached when it succeeds;
// the transport timeout bounds it.
func (s *Store) coalesced(ctx context.Context, name, key string) (Profile, error) {
	p, err := cache.GetOrSet(ctx, s.cache, s.group, key, func(fetchCtx context.Context) (Profile, error) {
		s.logger.DebugContext(fetchCtx, "profile cache miss", slog.String("username", name))
		return s.fetcher.FetchProfile(fetchCtx, name)
	})
	if err != nil && ctx.Err() != nil && errors.Is(err, ctx.Err()) {
		return Profile{}, errors.Join(ErrNetworkFailure, err)
	}
	return p, err
}

// load fetches from the network and stores the result.
func (s *Store) load(ctx context.Context, name, key string) (Profile, error) {
	p, err := s.fetcher.FetchProfile(ctx, name)
	if err != nil {
		return Profile{}, err
	}

	// A cancellation landing after this check still stores p, which is a
	// complete fetch result.
	if ctx.Err() != nil {
		return p, nil
	}

	if err := s.cache.Set(ctx, key, p); err != nil {
		s.logger.WarnContext(ctx, "profile cache write failed",
			slog.String("username", name),
			slog.String("error", err.Error()),
		)
	}

	return p, nil
}

// Invalidate drops the cached profile for username, if any.
func (s *Store) Invalidate(ctx context.Context, username string) error {
	return s.cache.Delete(ctx, CacheKey(username))
}

// ClearCache drops every cached profile.
func (s *Store) ClearCache(ctx context.Context) error {
	return s.cache.Clear(ctx)
}

// Close releases the underlying cache.
func (s *Store) Close() error {
	return s.cache.Close()
}
