// Package logger builds the structured slog loggers used across ghprofile.
//
// [New] writes JSON (or text) to stdout at the configured level; library
// packages default to [NewNope] and accept a logger through their options.
// Request-scoped values reach every record through [ContextExtractor]s:
//
//	log := logger.New(logger.Config{Level: slog.LevelDebug}, logger.RequestIDExtractor())
//	ctx := logger.WithRequestID(ctx, "3f1c...")
//	log.InfoContext(ctx, "profile served", slog.String("username", "octocat"))
//	// {"level":"INFO","msg":"profile served","username":"octocat","request_id":"3f1c..."}
//
// # Sentry
//
// With a DSN in [SentryConfig], records are fanned out to Sentry as well:
// errors create issues and records at or above MinLevel are stored as logs.
// A missing DSN or a failed SDK init leaves stdout logging untouched.
// Call [Flush] before exiting so buffered events are delivered.
package logger
