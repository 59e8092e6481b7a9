package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Output formats accepted by WithFormat.
const (
	FormatJSON = "json"
	FormatText = "text"
)

// Option configures New.
type Option func(*options)

type options struct {
	writer     io.Writer
	sentry     *SentryConfig
	format     string
	extractors []ContextExtractor
	level      slog.Level
}

// WithFormat selects FormatJSON (default) or FormatText.
func WithFormat(format string) Option {
	return func(o *options) {
		o.format = format
	}
}

// WithLevel sets the minimum level. Default: info.
func WithLevel(level slog.Level) Option {
	return func(o *options) {
		o.level = level
	}
}

// WithWriter sets the output. Default: os.Stdout.
func WithWriter(w io.Writer) Option {
	return func(o *options) {
		if w != nil {
			o.writer = w
		}
	}
}

// WithExtractors adds context extractors applied to every record.
func WithExtractors(extractors ...ContextExtractor) Option {
	return func(o *options) {
		o.extractors = append(o.extractors, extractors...)
	}
}

// WithSentry also sends warnings and errors to Sentry. An empty DSN
// leaves Sentry disabled.
func WithSentry(cfg SentryConfig) Option {
	return func(o *options) {
		o.sentry = &cfg
	}
}

// New creates a structured logger.
//
//	log := logger.New(
//		logger.WithLevel(slog.LevelDebug),
//		logger.WithFormat(logger.FormatText),
//		logger.WithExtractors(httpapi.RequestIDExtractor),
//	)
func New(opts ...Option) *slog.Logger {
	o := &options{
		writer: os.Stdout,
		format: FormatJSON,
		level:  slog.LevelInfo,
	}
	for _, opt := range opts {
		opt(o)
	}

	handlerOpts := &slog.HandlerOptions{Level: o.level}

	var h slog.Handler
	if o.format == FormatText {
		h = slog.NewTextHandler(o.writer, handlerOpts)
	} else {
		h = slog.NewJSONHandler(o.writer, handlerOpts)
	}

	if o.sentry != nil && o.sentry.DSN != "" {
		if sh, err := newSentryHandler(*o.sentry); err != nil {
			slog.New(h).Error("failed to initialize Sentry", slog.String("error", err.Error()))
		} else {
			h = newMultiHandler(h, sh)
		}
	}

	return slog.New(NewLogHandlerDecorator(h, o.extractors...))
}

// ParseLevel maps "debug", "info", "warn"/"warning" and "error" to a level,
// ignoring case.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("%w: %q", ErrUnknownLevel, s)
	}
}
