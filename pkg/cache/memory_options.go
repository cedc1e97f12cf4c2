package cache

import (
	"errors"
	"time"

	"github.com/robfig/cron/v3"
)

// DefaultTTL is the entry lifetime used when no TTL option is given.
const DefaultTTL = 5 * time.Minute

// MemoryOption configures the in-memory cache.
type MemoryOption func(*memoryOptions)

type memoryOptions struct {
	clock   Clock
	cleanup cron.Schedule
	ttl     time.Duration
}

func defaultMemoryOptions() *memoryOptions {
	return &memoryOptions{
		ttl:   DefaultTTL,
		clock: time.Now,
	}
}

// WithTTL sets how long entries stay visible after Set.
// Non-positive durations are ignored.
// Default: 5 minutes.
func WithTTL(d time.Duration) MemoryOption {
	return func(o *memoryOptions) {
		if d > 0 {
			o.ttl = d
		}
	}
}

// WithClock sets the time source used for expiration.
// Default: time.Now.
func WithClock(clock Clock) MemoryOption {
	return func(o *memoryOptions) {
		if clock != nil {
			o.clock = clock
		}
	}
}

// WithCleanupInterval removes expired entries in the background every d.
// Intervals are rounded down to whole seconds with a one second minimum.
// Zero or negative disables background cleanup.
// Default: disabled.
func WithCleanupInterval(d time.Duration) MemoryOption {
	return func(o *memoryOptions) {
		if d <= 0 {
			o.cleanup = nil
			return
		}
		o.cleanup = cron.Every(d)
	}
}

// WithCleanupSchedule removes expired entries in the background on a cron
// schedule, typically obtained from ParseSchedule.
func WithCleanupSchedule(s cron.Schedule) MemoryOption {
	return func(o *memoryOptions) {
		o.cleanup = s
	}
}

// ParseSchedule parses a standard five-field cron expression or a
// descriptor such as "@every 1m" or "@hourly".
func ParseSchedule(expr string) (cron.Schedule, error) {
	s, err := cron.ParseStandard(expr)
	if err != nil {
		return nil, errors.Join(ErrInvalidSchedule, err)
	}
	return s, nil
}
