package main

import (
	"log/slog"
	"net/http"
	"runtime/debug"
	"time"

	metrics "github.com/slok/go-http-metrics/metrics/prometheus"
	"github.com/slok/go-http-metrics/middleware"
	middlewarestd "github.com/slok/go-http-metrics/middleware/std"
)

// The recorder registers its collectors with the default prometheus registry,
// which allows it only once per process.
var metricsMiddleware = middleware.New(middleware.Config{
	Recorder: metrics.NewRecorder(metrics.Config{}),
})

// statusRecorder keeps the response status for the request log line.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

type logger struct {
	http.Handler
}

func (l *logger) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
	l.Handler.ServeHTTP(rec, r)
	if r.URL.Path == "/ready" || r.URL.Path == "/metrics" {
		return
	}
	slog.InfoContext(r.Context(), "request", "method", r.Method, "url", r.URL.Path, "status", rec.status, "duration", time.Since(start))
}

type recoverer struct {
	http.Handler
}

func (r *recoverer) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	defer func() {
		if err := recover(); err != nil {
			slog.ErrorContext(req.Context(), "panic recovered", "error", err, "stack", string(debug.Stack()))
			http.Error(w, "internal server error", http.StatusInternalServerError)
		}
	}()
	r.Handler.ServeHTTP(w, req)
}

func WithMiddleware(h http.Handler) http.Handler {
	h = middlewarestd.Handler("", metricsMiddleware, h)
	return &logger{
		&recoverer{
			h,
		},
	}
}
