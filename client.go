package ghprofile

import (
	"context"

	"github.com/dmitrymomot/ghprofile/pkg/cache"
	"github.com/dmitrymomot/ghprofile/pkg/github"
	"github.com/dmitrymomot/ghprofile/pkg/profile"
	"github.com/dmitrymomot/ghprofile/pkg/transport"
)

// Client fetches GitHub profiles through a TTL cache.
// It is safe for concurrent use.
type Client struct {
	store *profile.Store
	cache cache.Cache[string, profile.Profile]
}

// New wires transport, GitHub service, cache and profile store.
//
// Example:
//
//	c := ghprofile.New(
//	    ghprofile.WithTTL(10 * time.Minute),
//	    ghprofile.WithLogger(log),
//	)
//	defer c.Close()
//
//	p, err := c.FetchProfile(ctx, "octocat", false)
func New(opts ...Option) *Client {
	o := newOptions(opts...)

	sender := o.sender
	if sender == nil {
		sender = transport.New(
			transport.WithHTTPClient(o.httpClient),
			transport.WithTimeout(o.requestTimeout),
			transport.WithUserAgent(o.userAgent),
		)
	}

	svc := github.NewService(sender,
		github.WithBaseURL(o.baseURL),
		github.WithRequestTimeout(o.requestTimeout),
		github.WithLogger(o.logger),
	)

	c := o.cache
	if c == nil {
		memOpts := []cache.MemoryOption{cache.WithTTL(o.ttl), cache.WithClock(o.clock)}
		if o.cleanupInterval > 0 {
			memOpts = append(memOpts, cache.WithCleanupInterval(o.cleanupInterval))
		}
		c = cache.NewMemory[string, profile.Profile](memOpts...)
	}

	storeOpts := []profile.Option{profile.WithLogger(o.logger)}
	if o.coalesce {
		storeOpts = append(storeOpts, profile.WithCoalescing())
	}

	return &Client{
		store: profile.NewStore(svc, c, storeOpts...),
		cache: c,
	}
}

// FetchProfile returns the profile of username, from the cache unless it
// expired or forceRefresh is set. Errors match exactly one of
// profile.ErrUserNotFound, profile.ErrNetworkFailure or
// profile.ErrInvalidResponse.
func (c *Client) FetchProfile(ctx context.Context, username string, forceRefresh bool) (profile.Profile, error) {
	return c.store.FetchProfile(ctx, username, forceRefresh)
}

// Invalidate drops the cached profile of username.
func (c *Client) Invalidate(ctx context.Context, username string) error {
	return c.store.Invalidate(ctx, username)
}

// ClearCache drops every cached profile.
func (c *Client) ClearCache(ctx context.Context) error {
	return c.store.ClearCache(ctx)
}

// Healthcheck probes the cache backend.
func (c *Client) Healthcheck() func(context.Context) error {
	return cache.Healthcheck(c.cache)
}

// Close releases the cache. A cache passed with WithCache is closed too.
func (c *Client) Close() error {
	return c.store.Close()
}
