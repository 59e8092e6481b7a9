// Package logger builds log/slog loggers for the intl service and CLI.
//
// [New] writes JSON (or text) records to stdout, injects values taken from
// the context through [ContextExtractor] functions, and optionally mirrors
// warnings and errors to Sentry:
//
//	log := logger.New(
//		logger.WithLevel(level),
//		logger.WithExtractors(requestIDExtractor),
//		logger.WithSentry(logger.SentryConfig{DSN: dsn, Environment: "production"}),
//	)
//
// With an empty DSN, or when the Sentry client fails to start, records go to
// the primary handler only.
//
// Library code defaults to [NewNope], which discards everything.
package logger
