package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Output formats.
const (
	FormatJSON = "json"
	FormatText = "text"
)

// Config selects level, output format and the optional Sentry sink.
type Config struct {
	Format string       `yaml:"format" env:"FORMAT"` // json (default) or text
	Sentry SentryConfig `yaml:"sentry" envPrefix:"SENTRY_"`
	Level  slog.Level   `yaml:"level" env:"LEVEL"`
}

// New creates a logger writing to stdout.
func New(cfg Config, extractors ...ContextExtractor) *slog.Logger {
	return NewWithWriter(os.Stdout, cfg, extractors...)
}

// NewWithWriter creates a logger writing to w. When cfg.Sentry has a DSN,
// records at or above the Sentry minimum level are also sent to Sentry.
// Context extractors apply to both destinations.
func NewWithWriter(w io.Writer, cfg Config, extractors ...ContextExtractor) *slog.Logger {
	h := newHandler(w, cfg)

	if sh := newSentryHandler(cfg.Sentry, slog.New(h)); sh != nil {
		h = fanout{h, sh}
	}

	return slog.New(WithContextAttrs(h, extractors...))
}

func newHandler(w io.Writer, cfg Config) slog.Handler {
	opts := &slog.HandlerOptions{Level: cfg.Level}
	if strings.EqualFold(cfg.Format, FormatText) {
		return slog.NewTextHandler(w, opts)
	}
	return slog.NewJSONHandler(w, opts)
}
