// Package httpapi exposes the formatter over HTTP.
//
//	POST /v1/format     {"locale": "en", "pattern": "Hi {name}", "values": {"name": "Ana"}}
//	POST /v1/normalize  {"pattern": "Hi {name}"}
//	GET  /health/live
//	GET  /health/ready
package httpapi

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrymomot/intl"
	"github.com/dmitrymomot/intl/pkg/health"
	"github.com/dmitrymomot/intl/pkg/logger"
)

// DefaultMaxBodyBytes limits request bodies.
const DefaultMaxBodyBytes = 1 << 20

// Option configures the router.
type Option func(*options)

type options struct {
	logger       *slog.Logger
	checks       health.Checks
	corsOrigins  []string
	maxBodyBytes int64
	checkTimeout time.Duration
}

// WithLogger sets the request and error logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithChecks adds readiness checks next to the formatter canary.
func WithChecks(checks health.Checks) Option {
	return func(o *options) {
		for name, check := range checks {
			o.checks[name] = check
		}
	}
}

// WithCORS enables CORS for the given origins; "*" allows any origin.
func WithCORS(origins ...string) Option {
	return func(o *options) {
		o.corsOrigins = append(o.corsOrigins, origins...)
	}
}

// WithMaxBodyBytes overrides DefaultMaxBodyBytes.
func WithMaxBodyBytes(n int64) Option {
	return func(o *options) {
		if n > 0 {
			o.maxBodyBytes = n
		}
	}
}

// WithCheckTimeout bounds the readiness checks.
func WithCheckTimeout(d time.Duration) Option {
	return func(o *options) {
		o.checkTimeout = d
	}
}

// NewRouter returns the HTTP handler serving f.
func NewRouter(f *intl.Formatter, opts ...Option) http.Handler {
	o := &options{
		logger:       logger.NewNope(),
		checks:       health.Checks{},
		maxBodyBytes: DefaultMaxBodyBytes,
		checkTimeout: 2 * time.Second,
	}
	for _, opt := range opts {
		opt(o)
	}
	o.checks["formatter"] = FormatterCheck(f)

	h := &handlers{formatter: f, logger: o.logger, maxBodyBytes: o.maxBodyBytes}

	r := chi.NewRouter()
	r.Use(RequestID)
	r.Use(requestLogger(o.logger))
	r.Use(middleware.Recoverer)
	if len(o.corsOrigins) > 0 {
		r.Use(cors(o.corsOrigins))
	}

	r.Route("/v1", func(r chi.Router) {
		r.Post("/format", h.format)
		r.Post("/normalize", h.normalize)
	})

	r.Get("/health/live", health.LivenessHandler())
	r.Get("/health/ready", health.ReadinessHandler(o.checks,
		health.WithLogger(o.logger),
		health.WithTimeout(o.checkTimeout),
	))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not_found", "no such endpoint", 0)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", r.Method+" is not allowed here", 0)
	})

	return r
}

func requestLogger(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			next.ServeHTTP(ww, r)

			log.InfoContext(r.Context(), "request",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", ww.Status()),
				slog.Int("bytes", ww.BytesWritten()),
				slog.Duration("duration", time.Since(start)),
			)
		})
	}
}
