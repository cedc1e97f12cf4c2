package profile

import (
	"log/slog"

	"github.com/dmitrymomot/ghprofile/pkg/logger"
)

// Option configures a Store.
type Option func(*options)

type options struct {
	logger   *slog.Logger
	coalesce bool
}

func newOptions(opts ...Option) *options {
	o := &options{logger: logger.NewNope()}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithLogger sets the logger for cache hits, misses and backend failures.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithCoalescing makes concurrent cache misses for the same username
// share a single fetch. Forced refreshes are never coalesced.
// Without it, concurrent misses each fetch and the last write wins.
func WithCoalescing() Option {
	return func(o *options) {
		o.coalesce = true
	}
}
