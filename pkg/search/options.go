package search

import (
	"log/slog"

	"github.com/dmitrymomot/ghprofile/pkg/logger"
)

// Option configures a Holder.
type Option func(*options)

type options struct {
	logger    *slog.Logger
	observers []func(State)
}

func newOptions(opts ...Option) *options {
	o := &options{logger: logger.NewNope()}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithObserver registers fn to receive every state transition.
func WithObserver(fn func(State)) Option {
	return func(o *options) {
		if fn != nil {
			o.observers = append(o.observers, fn)
		}
	}
}

// WithLogger sets the logger for failed searches.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}
