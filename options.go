package intl

import (
	"log/slog"

	"github.com/dmitrymomot/intl/pkg/cache"
)

// Option configures the Formatter during construction.
type Option func(*Formatter) error

// WithEngine replaces the built-in formatting engine.
func WithEngine(e Engine) Option {
	return func(f *Formatter) error {
		if e == nil {
			return ErrNilEngine
		}
		f.engine = e
		return nil
	}
}

// WithEngineVersion overrides the version reported by the engine.
// Intended for tests that need to exercise the version check.
func WithEngineVersion(v string) Option {
	return func(f *Formatter) error {
		f.engineVersion = v
		return nil
	}
}

// WithLogger sets the logger. If nil, logging stays disabled.
func WithLogger(l *slog.Logger) Option {
	return func(f *Formatter) error {
		if l != nil {
			f.logger = l
		}
		return nil
	}
}

// WithPatternCache caches normalization results keyed by the exact pattern.
func WithPatternCache(c cache.Cache[Normalized]) Option {
	return func(f *Formatter) error {
		f.patterns = c
		return nil
	}
}
