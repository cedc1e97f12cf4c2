package server

import (
	"context"
	"log/slog"
	"time"

	"github.com/dmitrymomot/ghprofile/pkg/health"
	"github.com/dmitrymomot/ghprofile/pkg/logger"
)

const (
	defaultAddr              = ":8080"
	defaultReadTimeout       = 10 * time.Second
	defaultWriteTimeout      = 45 * time.Second
	defaultShutdownTimeout   = 15 * time.Second
	defaultIdleTimeout       = 120 * time.Second
	defaultReadHeaderTimeout = 5 * time.Second
	defaultMaxHeaderBytes    = 1 << 20
)

// Option configures a Server.
type Option func(*options)

type options struct {
	logger          *slog.Logger
	checks          health.Checks
	addr            string
	shutdownHooks   []func(context.Context) error
	readTimeout     time.Duration
	writeTimeout    time.Duration
	shutdownTimeout time.Duration
}

func newOptions(opts ...Option) *options {
	o := &options{
		logger:          logger.NewNope(),
		checks:          health.Checks{},
		addr:            defaultAddr,
		readTimeout:     defaultReadTimeout,
		writeTimeout:    defaultWriteTimeout,
		shutdownTimeout: defaultShutdownTimeout,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithLogger sets the request and lifecycle logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithAddress sets the listen address. Default: ":8080".
func WithAddress(addr string) Option {
	return func(o *options) {
		if addr != "" {
			o.addr = addr
		}
	}
}

// WithReadTimeout sets the HTTP server read timeout.
func WithReadTimeout(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.readTimeout = d
		}
	}
}

// WithWriteTimeout sets the HTTP server write timeout. It should exceed
// the upstream request timeout so a slow GitHub call can still answer.
func WithWriteTimeout(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.writeTimeout = d
		}
	}
}

// WithShutdownTimeout bounds graceful shutdown including hooks.
func WithShutdownTimeout(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.shutdownTimeout = d
		}
	}
}

// WithHealthCheck registers a readiness probe under name.
func WithHealthCheck(name string, fn health.CheckFunc) Option {
	return func(o *options) {
		if name != "" && fn != nil {
			o.checks[name] = fn
		}
	}
}

// WithShutdownHook registers fn to run after the HTTP server stopped.
// Hooks run in registration order.
func WithShutdownHook(fn func(context.Context) error) Option {
	return func(o *options) {
		if fn != nil {
			o.shutdownHooks = append(o.shutdownHooks, fn)
		}
	}
}
