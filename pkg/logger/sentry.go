package logger

import (
	"context"
	"log/slog"
	"time"

	"github.com/getsentry/sentry-go"
	sentryslog "github.com/getsentry/sentry-go/slog"
)

// SentryConfig holds Sentry integration configuration.
// An empty DSN disables Sentry.
type SentryConfig struct {
	DSN         string `yaml:"dsn" env:"DSN"`
	Environment string `yaml:"environment" env:"ENVIRONMENT"`
	// MinLevel is the lowest level stored as a Sentry log. Errors always
	// create issues.
	MinLevel slog.Level `yaml:"min_level" env:"MIN_LEVEL"`
}

// newSentryHandler initializes the Sentry SDK and returns its slog handler,
// or nil when Sentry is disabled or cannot start. Init failures are
// reported through fallback.
func newSentryHandler(cfg SentryConfig, fallback *slog.Logger) slog.Handler {
	if cfg.DSN == "" {
		return nil
	}

	if err := sentry.Init(sentry.ClientOptions{
		Dsn:         cfg.DSN,
		Environment: cfg.Environment,
		EnableLogs:  true,
	}); err != nil {
		fallback.Error("failed to initialize Sentry", slog.String("error", err.Error()))
		return nil
	}

	return sentryslog.Option{
		EventLevel: []slog.Level{slog.LevelError},
		LogLevel:   sentryLevels(cfg.MinLevel),
	}.NewSentryHandler(context.Background())
}

func sentryLevels(minLevel slog.Level) []slog.Level {
	all := []slog.Level{slog.LevelDebug, slog.LevelInfo, slog.LevelWarn, slog.LevelError}
	levels := make([]slog.Level, 0, len(all))
	for _, l := range all {
		if l >= minLevel {
			levels = append(levels, l)
		}
	}
	return levels
}

// Flush waits up to timeout for buffered Sentry events to be sent.
// It returns immediately when Sentry was never initialized.
func Flush(timeout time.Duration) {
	if sentry.CurrentHub().Client() == nil {
		return
	}
	sentry.Flush(timeout)
}
