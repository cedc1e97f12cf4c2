package ghprofile

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/dmitrymomot/ghprofile/pkg/cache"
	"github.com/dmitrymomot/ghprofile/pkg/github"
	"github.com/dmitrymomot/ghprofile/pkg/logger"
	"github.com/dmitrymomot/ghprofile/pkg/profile"
	"github.com/dmitrymomot/ghprofile/pkg/transport"
)

// Option configures a Client.
type Option func(*options)

type options struct {
	logger          *slog.Logger
	httpClient      *http.Client
	sender          transport.Sender
	cache           cache.Cache[string, profile.Profile]
	clock           cache.Clock
	baseURL         string
	userAgent       string
	ttl             time.Duration
	requestTimeout  time.Duration
	cleanupInterval time.Duration
	coalesce        bool
}

func newOptions(opts ...Option) *options {
	o := &options{
		logger:         logger.NewNope(),
		clock:          time.Now,
		baseURL:        github.DefaultBaseURL,
		userAgent:      "ghprofile",
		ttl:            cache.DefaultTTL,
		requestTimeout: transport.DefaultTimeout,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithLogger sets the logger shared by the service and the profile store.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithHTTPClient sets the HTTP client used for API calls.
func WithHTTPClient(c *http.Client) Option {
	return func(o *options) {
		if c != nil {
			o.httpClient = c
		}
	}
}

// WithSender replaces the HTTP transport entirely. WithHTTPClient and
// WithUserAgent have no effect when it is set.
func WithSender(s transport.Sender) Option {
	return func(o *options) {
		if s != nil {
			o.sender = s
		}
	}
}

// WithBaseURL sets the GitHub API root. Default: https://api.github.com.
func WithBaseURL(u string) Option {
	return func(o *options) {
		if u != "" {
			o.baseURL = u
		}
	}
}

// WithUserAgent sets the User-Agent sent to GitHub.
func WithUserAgent(ua string) Option {
	return func(o *options) {
		if ua != "" {
			o.userAgent = ua
		}
	}
}

// WithRequestTimeout bounds each API call. Default: 15 seconds.
func WithRequestTimeout(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.requestTimeout = d
		}
	}
}

// WithTTL sets how long a fetched profile is served from the in-memory
// cache. Default: 5 minutes. Ignored when WithCache is used.
func WithTTL(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.ttl = d
		}
	}
}

// WithClock sets the time source of the in-memory cache.
// Ignored when WithCache is used.
func WithClock(clock cache.Clock) Option {
	return func(o *options) {
		if clock != nil {
			o.clock = clock
		}
	}
}

// WithCleanupInterval periodically evicts expired entries from the
// in-memory cache. Disabled by default. Ignored when WithCache is used.
func WithCleanupInterval(d time.Duration) Option {
	return func(o *options) {
		o.cleanupInterval = d
	}
}

// WithCache replaces the in-memory cache, e.g. with a cache.Redis shared
// between instances. The Client takes ownership and closes it.
func WithCache(c cache.Cache[string, profile.Profile]) Option {
	return func(o *options) {
		if c != nil {
			o.cache = c
		}
	}
}

// WithCoalescing makes concurrent cache misses for the same user share
// one fetch.
func WithCoalescing() Option {
	return func(o *options) {
		o.coalesce = true
	}
}
