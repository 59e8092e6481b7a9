package intl

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/hashicorp/go-version"

	"github.com/dmitrymomot/intl/pkg/cache"
	"github.com/dmitrymomot/intl/pkg/logger"
)

var minEngineVersion = version.Must(version.NewVersion(MinEngineVersion))

// Formatter formats patterns with named placeholders by normalizing them to
// positional placeholders and delegating to an Engine.
// It is immutable after creation and safe for concurrent use.
type Formatter struct {
	engine        Engine
	logger        *slog.Logger
	patterns      cache.Cache[Normalized]
	engineVersion string
}

// New creates a Formatter. The engine version is checked once here; an engine
// older than MinEngineVersion makes New fail with ErrEngineVersionTooLow.
func New(opts ...Option) (*Formatter, error) {
	f := &Formatter{
		engine: DefaultEngine(),
		logger: logger.NewNope(),
	}

	for _, opt := range opts {
		if err := opt(f); err != nil {
			return nil, fmt.Errorf("failed to apply option: %w", err)
		}
	}

	v := f.engineVersion
	if v == "" {
		v = f.engine.Version()
	}
	if err := checkEngineVersion(v); err != nil {
		return nil, err
	}
	f.engineVersion = v

	if f.patterns != nil {
		f.patterns = reportingCache{Cache: f.patterns, logger: f.logger}
	}

	return f, nil
}

func checkEngineVersion(v string) error {
	current, err := version.NewVersion(v)
	if err != nil {
		return errors.Join(
			fmt.Errorf("%w: cannot parse %q", ErrEngineVersionTooLow, v),
			err,
		)
	}
	if current.LessThan(minEngineVersion) {
		return fmt.Errorf("%w: %s or higher required, got %s", ErrEngineVersionTooLow, MinEngineVersion, v)
	}
	return nil
}

// EngineVersion returns the engine version the Formatter was accepted with.
func (f *Formatter) EngineVersion() string {
	return f.engineVersion
}

// Format renders pattern for locale using values keyed by placeholder name.
// List values are joined into a quoted list before formatting.
//
// Example:
//
//	out, err := f.Format("en-US",
//		"Hello {name}, you have {count,plural,=0{no messages}other{# messages}}",
//		intl.M{"name": "Ana", "count": 3},
//	)
//	// out == "Hello Ana, you have 3 messages"
func (f *Formatter) Format(locale, pattern string, values map[string]any) (string, error) {
	n := f.normalize(pattern)
	args := IndexValues(n.Tokens, values)

	msg, err := f.compile(locale, n.Pattern)
	if err != nil {
		f.logger.Debug("formatter instantiation failed",
			slog.String("locale", locale),
			slog.String("pattern", n.Pattern),
			slog.Any("error", err),
		)
		return "", err
	}

	out, err := f.format(msg, args)
	if err != nil {
		f.logger.Debug("message formatting failed",
			slog.String("locale", locale),
			slog.String("pattern", n.Pattern),
			slog.Any("error", err),
		)
		return "", err
	}

	return out, nil
}

// normalize consults the pattern cache when one is configured.
func (f *Formatter) normalize(pattern string) Normalized {
	if f.patterns == nil {
		return Normalize(pattern)
	}

	// GetOrSet fails only when the callback does; backend failures are
	// treated as misses and logged by reportingCache.
	n, _ := cache.GetOrSet(context.Background(), f.patterns, pattern, func(context.Context) (Normalized, time.Duration, error) {
		return Normalize(pattern), 0, nil
	})
	return n
}

// reportingCache logs backend failures that GetOrSet would otherwise treat
// as a plain miss or drop.
type reportingCache struct {
	cache.Cache[Normalized]
	logger *slog.Logger
}

func (c reportingCache) Get(ctx context.Context, key string) (Normalized, error) {
	n, err := c.Cache.Get(ctx, key)
	if err != nil && !errors.Is(err, cache.ErrNotFound) {
		c.logger.WarnContext(ctx, "pattern cache read failed", slog.Any("error", err))
	}
	return n, err
}

func (c reportingCache) Set(ctx context.Context, key string, n Normalized, ttl time.Duration) error {
	err := c.Cache.Set(ctx, key, n, ttl)
	if err != nil {
		c.logger.WarnContext(ctx, "pattern cache write failed", slog.Any("error", err))
	}
	return err
}

func (f *Formatter) compile(locale, pattern string) (msg Message, err error) {
	defer func() {
		if r := recover(); r != nil {
			msg, err = nil, newPanicError(ErrCannotInstantiateFormatter, r)
		}
	}()

	msg, err = f.engine.Compile(locale, pattern)
	if err != nil {
		return nil, newEngineError(ErrCannotInstantiateFormatter, err)
	}
	if msg == nil {
		return nil, &Error{Kind: ErrCannotInstantiateFormatter, Message: "engine returned no message"}
	}
	return msg, nil
}

func (f *Formatter) format(msg Message, args map[int]any) (out string, err error) {
	defer func() {
		if r := recover(); r != nil {
			out, err = "", newPanicError(ErrCannotFormat, r)
		}
	}()

	out, err = msg.Format(args)
	if err != nil {
		return "", newEngineError(ErrCannotFormat, err)
	}
	return out, nil
}
