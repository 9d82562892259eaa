package server

import (
	"crypto/rand"
	"log/slog"
	"net/http"
	"time"

	"github.com/liftwise/coach/internal/errors"
	"github.com/liftwise/coach/internal/flightrecorder"
	"github.com/liftwise/coach/internal/logging"
)

// slowRequestThreshold is how long a request may take before it warrants
// a runtime trace capture.
const slowRequestThreshold = 5 * time.Second

// RequestLogging returns middleware that tags the request context with a
// trace ID and logs each request on completion.
func RequestLogging(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := logging.WithAttrs(r.Context(),
				slog.String("trace_id", rand.Text()),
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
			)
			r = r.WithContext(ctx)

			start := time.Now()
			sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(sw, r)

			level := slog.LevelInfo
			if sw.status >= http.StatusInternalServerError {
				level = slog.LevelError
			}
			log.LogAttrs(ctx, level, "request completed",
				slog.Int("status", sw.status),
				slog.Duration("duration", time.Since(start)))
		})
	}
}

// Recover returns middleware that converts panics into 500 responses with
// the panic site logged.
func Recover(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if excp := recover(); excp != nil {
					err := errors.DecoratePanic(excp)
					log.LogAttrs(r.Context(), slog.LevelError, "handler panicked", errors.SlogError(err))
					writeJSON(w, http.StatusInternalServerError,
						map[string]string{"error": "internal server error"})
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// SlowRequestTraces returns middleware that captures a runtime trace
// when a request exceeds the slow threshold.
func SlowRequestTraces(recorder *flightrecorder.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			next.ServeHTTP(w, r)
			if elapsed := time.Since(start); elapsed > slowRequestThreshold {
				recorder.CaptureSlowRequestTrace(r.Context(), elapsed)
			}
		})
	}
}

// statusWriter wraps ResponseWriter to capture the status code.
type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}
