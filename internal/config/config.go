package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/ghprofile/pkg/cache"
	"github.com/dmitrymomot/ghprofile/pkg/github"
	"github.com/dmitrymomot/ghprofile/pkg/logger"
	"github.com/dmitrymomot/ghprofile/pkg/redis"
)

// EnvPrefix is prepended to every environment variable name.
const EnvPrefix = "GHPROFILE_"

// Cache backends.
const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
)

// Config is the full runtime configuration of the ghprofile binary.
type Config struct {
	Server ServerConfig  `yaml:"server" envPrefix:"SERVER_"`
	GitHub GitHubConfig  `yaml:"github" envPrefix:"GITHUB_"`
	Cache  CacheConfig   `yaml:"cache" envPrefix:"CACHE_"`
	Log    logger.Config `yaml:"log" envPrefix:"LOG_"`
	Redis  redis.Config  `yaml:"redis" envPrefix:"REDIS_"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr            string        `yaml:"addr" env:"ADDR"`
	ReadTimeout     time.Duration `yaml:"read_timeout" env:"READ_TIMEOUT"`
	WriteTimeout    time.Duration `yaml:"write_timeout" env:"WRITE_TIMEOUT"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SHUTDOWN_TIMEOUT"`
}

// GitHubConfig configures the upstream API.
type GitHubConfig struct {
	BaseURL        string        `yaml:"base_url" env:"BASE_URL"`
	UserAgent      string        `yaml:"user_agent" env:"USER_AGENT"`
	RequestTimeout time.Duration `yaml:"request_timeout" env:"REQUEST_TIMEOUT"`
}

// CacheConfig configures the profile cache.
type CacheConfig struct {
	Backend         string        `yaml:"backend" env:"BACKEND"`
	CleanupSchedule string        `yaml:"cleanup_schedule" env:"CLEANUP_SCHEDULE"` // cron expression, memory backend only
	Prefix          string        `yaml:"prefix" env:"PREFIX"`                     // redis backend only
	TTL             time.Duration `yaml:"ttl" env:"TTL"`
	Coalesce        bool          `yaml:"coalesce" env:"COALESCE"`
}

// Default returns the configuration used when nothing overrides it.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Addr:            ":8080",
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    45 * time.Second,
			ShutdownTimeout: 15 * time.Second,
		},
		GitHub: GitHubConfig{
			BaseURL:        github.DefaultBaseURL,
			UserAgent:      "ghprofile",
			RequestTimeout: github.DefaultRequestTimeout,
		},
		Cache: CacheConfig{
			Backend:         BackendMemory,
			TTL:             cache.DefaultTTL,
			CleanupSchedule: "@every 1m",
			Prefix:          cache.DefaultRedisPrefix,
		},
		Log: logger.Config{
			Format: logger.FormatJSON,
		},
		Redis: redis.DefaultConfig(),
	}
}

// Option configures Load.
type Option func(*loadOptions)

type loadOptions struct {
	environ map[string]string
}

// WithEnvironment replaces the process environment as the source of
// overrides.
func WithEnvironment(environ map[string]string) Option {
	return func(o *loadOptions) {
		o.environ = environ
	}
}

// Load builds the configuration from defaults, then the YAML file at path
// (skipped when path is empty), then GHPROFILE_* environment variables.
func Load(path string, opts ...Option) (Config, error) {
	var o loadOptions
	for _, opt := range opts {
		opt(&o)
	}

	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, errors.Join(ErrReadFile, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, errors.Join(ErrParseFile, err)
		}
	}

	envOpts := env.Options{Prefix: EnvPrefix}
	if o.environ != nil {
		envOpts.Environment = o.environ
	}
	if err := env.ParseWithOptions(&cfg, envOpts); err != nil {
		return Config{}, errors.Join(ErrParseEnv, err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate reports the first inconsistency in c.
func (c Config) Validate() error {
	switch strings.ToLower(c.Cache.Backend) {
	case BackendMemory:
		if c.Cache.CleanupSchedule != "" {
			if _, err := cache.ParseSchedule(c.Cache.CleanupSchedule); err != nil {
				return errors.Join(ErrInvalidConfig, err)
			}
		}
	case BackendRedis:
		if c.Redis.URL == "" {
			return errors.Join(ErrInvalidConfig, errors.New("redis url is required for the redis cache backend"))
		}
	default:
		return errors.Join(ErrInvalidConfig, fmt.Errorf("unknown cache backend %q", c.Cache.Backend))
	}

	if c.Cache.TTL <= 0 {
		return errors.Join(ErrInvalidConfig, errors.New("cache ttl must be positive"))
	}
	if c.GitHub.RequestTimeout <= 0 {
		return errors.Join(ErrInvalidConfig, errors.New("github request timeout must be positive"))
	}
	if c.Server.Addr == "" {
		return errors.Join(ErrInvalidConfig, errors.New("server addr is required"))
	}

	return nil
}
