package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/intl"
	"github.com/dmitrymomot/intl/internal/config"
	"github.com/dmitrymomot/intl/internal/httpapi"
	"github.com/dmitrymomot/intl/internal/server"
	"github.com/dmitrymomot/intl/pkg/cache"
	"github.com/dmitrymomot/intl/pkg/health"
	"github.com/dmitrymomot/intl/pkg/logger"
	"github.com/dmitrymomot/intl/pkg/redis"
)

const (
	redisCachePrefix  = "intl:patterns"
	sentryFlushPeriod = 2 * time.Second
)

func newServeCmd(flags *globalFlags) *cobra.Command {
	var envFiles []string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the formatting HTTP service",
		Long: `Runs the HTTP service configured from INTL_* environment variables.
Variables may also be placed in a .env file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(envFiles...)
			if err != nil {
				return err
			}
			if flags.engineVersion != "" {
				cfg.EngineVersion = flags.engineVersion
			}
			level := cfg.Level()
			if flags.verbose {
				level = slog.LevelDebug
			}

			log := logger.New(
				logger.WithFormat(cfg.LogFormat),
				logger.WithLevel(level),
				logger.WithWriter(cmd.ErrOrStderr()),
				logger.WithExtractors(httpapi.RequestIDExtractor),
				logger.WithSentry(cfg.Sentry),
			)
			defer logger.Flush(sentryFlushPeriod)

			return serve(cmd.Context(), cfg, log)
		},
	}

	cmd.Flags().StringSliceVar(&envFiles, "env-file", nil, "Load variables from these .env files (default .env)")

	return cmd
}

// backend is the pattern cache selected by configuration together with
// its readiness checks and shutdown hooks.
type backend struct {
	patterns cache.Cache[intl.Normalized]
	checks   health.Checks
	hooks    []func(context.Context) error
}

func newBackend(ctx context.Context, cfg config.Config, log *slog.Logger) (*backend, error) {
	b := &backend{checks: health.Checks{}}

	switch cfg.CacheBackend {
	case config.CacheMemory:
		m := cache.NewMemory[intl.Normalized](
			cache.WithMaxEntries(cfg.CacheSize),
			cache.WithDefaultTTL(cfg.CacheTTL),
		)
		b.patterns = m
		b.hooks = append(b.hooks, func(context.Context) error { return m.Close() })
	case config.CacheRedis:
		client, err := redis.Open(ctx, cfg.RedisURL, redis.WithLogger(log))
		if err != nil {
			return nil, fmt.Errorf("connect to redis: %w", err)
		}
		b.patterns = cache.NewRedis(client, cache.JSON[intl.Normalized](),
			cache.WithPrefix(redisCachePrefix),
			cache.WithRedisDefaultTTL(cfg.CacheTTL),
		)
		b.checks["redis"] = redis.Healthcheck(client)
		b.hooks = append(b.hooks, redis.Shutdown(client))
	case config.CacheNone:
	default:
		return nil, fmt.Errorf("unknown cache backend %q", cfg.CacheBackend)
	}

	return b, nil
}

func serve(ctx context.Context, cfg config.Config, log *slog.Logger) error {
	b, err := newBackend(ctx, cfg, log)
	if err != nil {
		return err
	}

	opts := []intl.Option{intl.WithLogger(log)}
	if b.patterns != nil {
		opts = append(opts, intl.WithPatternCache(b.patterns))
	}
	if cfg.EngineVersion != "" {
		opts = append(opts, intl.WithEngineVersion(cfg.EngineVersion))
	}
	f, err := intl.New(opts...)
	if err != nil {
		return err
	}
	log.Info("formatter ready",
		slog.String("engine_version", f.EngineVersion()),
		slog.String("cache_backend", cfg.CacheBackend),
	)

	handler := httpapi.NewRouter(f,
		httpapi.WithLogger(log),
		httpapi.WithChecks(b.checks),
		httpapi.WithCORS(cfg.CORSOrigins...),
	)

	return server.Run(ctx, server.Config{
		Address:         cfg.Addr,
		Handler:         handler,
		Logger:          log,
		ShutdownTimeout: cfg.ShutdownTimeout,
		OnShutdown:      b.hooks,
	})
}
