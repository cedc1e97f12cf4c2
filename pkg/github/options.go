package github

import (
	"log/slog"
	"strings"
	"time"

	"github.com/dmitrymomot/ghprofile/pkg/logger"
)

const (
	// DefaultBaseURL is the public GitHub REST API.
	DefaultBaseURL = "https://api.github.com"

	// DefaultRequestTimeout bounds each of the two API calls.
	DefaultRequestTimeout = 15 * time.Second

	// APIVersion is sent in the X-GitHub-Api-Version header.
	APIVersion = "2022-11-28"
)

// Option configures a Service.
type Option func(*options)

type options struct {
	logger  *slog.Logger
	baseURL string
	timeout time.Duration
}

func newOptions(opts ...Option) *options {
	o := &options{
		logger:  logger.NewNope(),
		baseURL: DefaultBaseURL,
		timeout: DefaultRequestTimeout,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithBaseURL points the service at another API root, e.g. a GitHub
// Enterprise instance or a test server. Empty values are ignored.
func WithBaseURL(u string) Option {
	return func(o *options) {
		if u = strings.TrimRight(strings.TrimSpace(u), "/"); u != "" {
			o.baseURL = u
		}
	}
}

// WithRequestTimeout sets the timeout of each API call.
// Non-positive durations are ignored.
func WithRequestTimeout(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.timeout = d
		}
	}
}

// WithLogger sets the logger used for fallbacks and failed calls.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}
