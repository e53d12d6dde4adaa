package handlers

import (
	"log/slog"
	"net/http"
	"time"
)

// LoggingMiddleware logs every request with its duration.
func LoggingMiddleware(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			next.ServeHTTP(w, r)
			log.Info("http.request", "method", r.Method, "path", r.URL.Path, "dur", time.Since(start))
		})
	}
}
