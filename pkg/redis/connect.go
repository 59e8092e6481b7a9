package redis

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/intl/pkg/logger"
)

// Option configures a Redis connection.
type Option func(*options)

type options struct {
	logger        *slog.Logger
	poolSize      int
	minIdleConns  int
	retryAttempts int
	retryInterval time.Duration
	readTimeout   time.Duration
	writeTimeout  time.Duration
	dialTimeout   time.Duration
}

func defaultOptions() *options {
	return &options{
		logger:        logger.NewNope(),
		poolSize:      10,
		minIdleConns:  2,
		retryAttempts: 3,
		retryInterval: 2 * time.Second,
		readTimeout:   time.Second,
		writeTimeout:  time.Second,
		dialTimeout:   3 * time.Second,
	}
}

// WithPoolSize sets the maximum number of pooled connections.
// Default: 10
func WithPoolSize(n int) Option {
	return func(o *options) {
		o.poolSize = n
	}
}

// WithMinIdleConns sets the number of idle connections kept open.
// Default: 2
func WithMinIdleConns(n int) Option {
	return func(o *options) {
		o.minIdleConns = n
	}
}

// WithRetry configures startup retries. The wait grows linearly with each
// attempt.
// Default: 3 attempts, 2 second step.
func WithRetry(attempts int, interval time.Duration) Option {
	return func(o *options) {
		o.retryAttempts = attempts
		o.retryInterval = interval
	}
}

// WithTimeouts sets read and write timeouts.
// Default: 1 second each; cache lookups must not stall formatting.
func WithTimeouts(read, write time.Duration) Option {
	return func(o *options) {
		o.readTimeout = read
		o.writeTimeout = write
	}
}

// WithDialTimeout sets the timeout for new connections.
// Default: 3 seconds
func WithDialTimeout(d time.Duration) Option {
	return func(o *options) {
		o.dialTimeout = d
	}
}

// WithLogger logs failed connection attempts.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// Open connects to Redis and verifies the connection with PING.
// Both redis:// and rediss:// (TLS) URLs are accepted.
//
//	client, err := redis.Open(ctx, "redis://localhost:6379/0",
//		redis.WithRetry(5, time.Second),
//	)
func Open(ctx context.Context, url string, opts ...Option) (redis.UniversalClient, error) {
	if url == "" {
		return nil, ErrEmptyConnectionURL
	}
	if !strings.HasPrefix(url, "redis://") && !strings.HasPrefix(url, "rediss://") {
		return nil, ErrFailedToParseURL
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	ro, err := redis.ParseURL(url)
	if err != nil {
		return nil, errors.Join(ErrFailedToParseURL, err)
	}
	ro.PoolSize = o.poolSize
	ro.MinIdleConns = o.minIdleConns
	ro.ReadTimeout = o.readTimeout
	ro.WriteTimeout = o.writeTimeout
	ro.DialTimeout = o.dialTimeout

	return connect(ctx, ro, o)
}

func connect(ctx context.Context, ro *redis.Options, o *options) (redis.UniversalClient, error) {
	attempts := max(o.retryAttempts, 1)

	var lastErr error
	for i := range attempts {
		client := redis.NewClient(ro)

		lastErr = client.Ping(ctx).Err()
		if lastErr == nil {
			return client, nil
		}
		_ = client.Close()

		o.logger.WarnContext(ctx, "redis connection attempt failed",
			slog.Int("attempt", i+1),
			slog.Int("max_attempts", attempts),
			slog.String("addr", ro.Addr),
			slog.Any("error", lastErr),
		)

		if i == attempts-1 {
			break
		}
		if err := wait(ctx, time.Duration(i+1)*o.retryInterval); err != nil {
			return nil, errors.Join(ErrConnectionFailed, err)
		}
	}

	return nil, errors.Join(ErrConnectionFailed, lastErr)
}

func wait(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
