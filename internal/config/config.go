// Package config loads the intl service configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/dmitrymomot/intl/pkg/logger"
)

// Pattern cache backends.
const (
	CacheMemory = "memory"
	CacheRedis  = "redis"
	CacheNone   = "none"
)

var (
	ErrParsingConfig = errors.New("config: failed to parse environment")
	ErrInvalidConfig = errors.New("config: invalid configuration")
)

// Config is the service configuration.
type Config struct {
	Addr            string        `env:"INTL_ADDR" envDefault:":8080"`
	LogLevel        string        `env:"INTL_LOG_LEVEL" envDefault:"info"`
	LogFormat       string        `env:"INTL_LOG_FORMAT" envDefault:"json"`
	EngineVersion   string        `env:"INTL_ENGINE_VERSION"`
	CacheBackend    string        `env:"INTL_CACHE_BACKEND" envDefault:"memory"`
	RedisURL        string        `env:"INTL_REDIS_URL"`
	CacheSize       int           `env:"INTL_CACHE_SIZE" envDefault:"1024"`
	CacheTTL        time.Duration `env:"INTL_CACHE_TTL" envDefault:"1h"`
	ShutdownTimeout time.Duration `env:"INTL_SHUTDOWN_TIMEOUT" envDefault:"10s"`
	CORSOrigins     []string      `env:"INTL_CORS_ORIGINS" envSeparator:","`

	Sentry logger.SentryConfig
}

// Load reads the given .env files (".env" when none are given; missing
// files are ignored), parses the environment and validates the result.
// Variables already set in the environment win over .env files.
func Load(files ...string) (Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		_ = godotenv.Load(f)
	}

	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return Config{}, errors.Join(ErrParsingConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks values the environment parser cannot.
func (c Config) Validate() error {
	var errs []error

	if _, err := logger.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}
	if c.LogFormat != logger.FormatJSON && c.LogFormat != logger.FormatText {
		errs = append(errs, fmt.Errorf("unknown log format %q", c.LogFormat))
	}

	switch c.CacheBackend {
	case CacheMemory:
		if c.CacheSize <= 0 {
			errs = append(errs, fmt.Errorf("INTL_CACHE_SIZE must be positive, got %d", c.CacheSize))
		}
	case CacheRedis:
		if c.RedisURL == "" {
			errs = append(errs, errors.New("INTL_REDIS_URL is required for the redis cache backend"))
		}
	case CacheNone:
	default:
		errs = append(errs, fmt.Errorf("unknown cache backend %q", c.CacheBackend))
	}

	if c.ShutdownTimeout <= 0 {
		errs = append(errs, fmt.Errorf("INTL_SHUTDOWN_TIMEOUT must be positive, got %s", c.ShutdownTimeout))
	}

	if len(errs) > 0 {
		return errors.Join(append([]error{ErrInvalidConfig}, errs...)...)
	}
	return nil
}

// Level returns the parsed log level. Call after Validate.
func (c Config) Level() slog.Level {
	l, _ := logger.ParseLevel(c.LogLevel)
	return l
}
