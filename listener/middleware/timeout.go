package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"time"
)

// DefaultTimeout is used when Timeout gets a non-positive duration.
const DefaultTimeout = 30 * time.Second

// Timeout puts a deadline on the request context. Handlers that pass the
// context down see it expire; the middleware does not write a response itself.
func Timeout(duration time.Duration) func(http.Handler) http.Handler {
	if duration <= 0 {
		slog.Warn("middleware: timeout must be positive, using default",
			"provided", duration, "default", DefaultTimeout)

		duration = DefaultTimeout
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), duration)
			defer cancel()

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
