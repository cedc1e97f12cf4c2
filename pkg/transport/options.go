package transport

import (
	"net/http"
	"time"
)

const (
	// DefaultTimeout bounds each request when neither the request nor the
	// client sets a timeout.
	DefaultTimeout = 15 * time.Second

	// DefaultMaxBodySize caps how much of a response body is read.
	DefaultMaxBodySize int64 = 10 << 20
)

// Option configures a Client.
type Option func(*options)

type options struct {
	httpClient  *http.Client
	userAgent   string
	timeout     time.Duration
	maxBodySize int64
}

func newOptions(opts ...Option) *options {
	o := &options{
		timeout:     DefaultTimeout,
		maxBodySize: DefaultMaxBodySize,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithHTTPClient sets the underlying HTTP client.
// Its own Timeout still applies on top of the per-request timeout.
func WithHTTPClient(c *http.Client) Option {
	return func(o *options) {
		if c != nil {
			o.httpClient = c
		}
	}
}

// WithTimeout sets the default per-request timeout.
// Non-positive durations are ignored.
func WithTimeout(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.timeout = d
		}
	}
}

// WithUserAgent sets the User-Agent header for requests that do not set one.
func WithUserAgent(ua string) Option {
	return func(o *options) {
		o.userAgent = ua
	}
}

// WithMaxBodySize caps the response body size. Non-positive values are ignored.
func WithMaxBodySize(n int64) Option {
	return func(o *options) {
		if n > 0 {
			o.maxBodySize = n
		}
	}
}
