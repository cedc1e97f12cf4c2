package cli

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/dmitrymomot/ghprofile"
	"github.com/dmitrymomot/ghprofile/internal/config"
	"github.com/dmitrymomot/ghprofile/pkg/cache"
	"github.com/dmitrymomot/ghprofile/pkg/health"
	"github.com/dmitrymomot/ghprofile/pkg/profile"
	"github.com/dmitrymomot/ghprofile/pkg/redis"
)

// components is everything a command needs, built from one Config.
type components struct {
	client  *ghprofile.Client
	checks  health.Checks
	closers []func(context.Context) error // run in order on shutdown
}

func build(ctx context.Context, cfg config.Config, log *slog.Logger) (*components, error) {
	c := &components{checks: health.Checks{}}

	opts := []ghprofile.Option{
		ghprofile.WithLogger(log),
		ghprofile.WithBaseURL(cfg.GitHub.BaseURL),
		ghprofile.WithUserAgent(cfg.GitHub.UserAgent),
		ghprofile.WithRequestTimeout(cfg.GitHub.RequestTimeout),
		ghprofile.WithTTL(cfg.Cache.TTL),
	}
	if cfg.Cache.Coalesce {
		opts = append(opts, ghprofile.WithCoalescing())
	}

	switch strings.ToLower(cfg.Cache.Backend) {
	case config.BackendRedis:
		rc, err := redis.Open(ctx, cfg.Redis)
		if err != nil {
			return nil, err
		}
		c.checks["redis"] = redis.Healthcheck(rc)
		c.closers = append(c.closers, redis.Shutdown(rc))

		opts = append(opts, ghprofile.WithCache(cache.NewRedis[profile.Profile](rc, nil,
			cache.WithPrefix(cfg.Cache.Prefix),
			cache.WithRedisTTL(cfg.Cache.TTL),
		)))

	default:
		memOpts := []cache.MemoryOption{cache.WithTTL(cfg.Cache.TTL)}
		if cfg.Cache.CleanupSchedule != "" {
			schedule, err := cache.ParseSchedule(cfg.Cache.CleanupSchedule)
			if err != nil {
				return nil, err
			}
			memOpts = append(memOpts, cache.WithCleanupSchedule(schedule))
		}
		opts = append(opts, ghprofile.WithCache(cache.NewMemory[string, profile.Profile](memOpts...)))
	}

	c.client = ghprofile.New(opts...)
	c.checks["cache"] = c.client.Healthcheck()
	// The client closes its cache before the Redis connection goes away.
	c.closers = append([]func(context.Context) error{func(context.Context) error {
		return c.client.Close()
	}}, c.closers...)

	return c, nil
}

func (c *components) close(ctx context.Context) error {
	var errs []error
	for _, fn := range c.closers {
		if err := fn(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
