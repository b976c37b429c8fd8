package middleware

import (
	"errors"
	"log/slog"
	"net/http"
)

// DefaultMaxRequestSize is used when MaxRequestSize gets a non-positive limit.
const DefaultMaxRequestSize int64 = 1 << 20

// MaxRequestSize limits request bodies with http.MaxBytesReader. Reads past
// the limit fail with an error for which IsBodyTooLarge reports true; handlers
// answer those with 413.
func MaxRequestSize(limit int64) func(http.Handler) http.Handler {
	if limit <= 0 {
		slog.Warn("middleware: request size limit must be positive, using default",
			"provided", limit, "default", DefaultMaxRequestSize)

		limit = DefaultMaxRequestSize
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.ContentLength > limit {
				WriteError(w, http.StatusRequestEntityTooLarge, ErrorBody{
					Error:     "request body too large",
					RequestID: GetRequestID(r.Context()),
				})

				return
			}

			r.Body = http.MaxBytesReader(w, r.Body, limit)
			next.ServeHTTP(w, r)
		})
	}
}

// IsBodyTooLarge reports whether err came from reading past a MaxRequestSize limit.
func IsBodyTooLarge(err error) bool {
	var maxBytesErr *http.MaxBytesError

	return errors.As(err, &maxBytesErr)
}
