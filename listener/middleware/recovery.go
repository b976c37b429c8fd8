package middleware

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"
)

// ErrorBody is the JSON body written for failures the middleware handles itself.
type ErrorBody struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}

// WriteError writes body as JSON with the given status.
func WriteError(w http.ResponseWriter, status int, body ErrorBody) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)

	err := json.NewEncoder(w).Encode(body)
	if err != nil {
		slog.Error("failed to encode error response", "error", err)
	}
}

// recoveryWriter remembers whether anything reached the client.
type recoveryWriter struct {
	http.ResponseWriter

	written bool
}

func (w *recoveryWriter) WriteHeader(code int) {
	if code >= http.StatusOK {
		w.written = true
	}

	w.ResponseWriter.WriteHeader(code)
}

func (w *recoveryWriter) Write(b []byte) (int, error) {
	w.written = true

	return w.ResponseWriter.Write(b) //nolint:wrapcheck
}

// Unwrap lets http.ResponseController reach the underlying writer.
func (w *recoveryWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}

// Recovery turns a panic in a downstream handler into a 500 response with a
// JSON ErrorBody and logs the panic with its stack. When the response has
// already started, only the log entry is written. http.ErrAbortHandler is
// re-raised.
func Recovery() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			recWriter := &recoveryWriter{ResponseWriter: w, written: false}

			defer func() { //nolint:contextcheck
				rec := recover()
				if rec == nil {
					return
				}

				if err, ok := rec.(error); ok && err == http.ErrAbortHandler { //nolint:errorlint,err113
					panic(rec)
				}

				reqID := GetRequestID(r.Context())
				attrs := []any{
					slog.String("panic", fmt.Sprint(rec)),
					slog.String("stack", string(debug.Stack())),
					slog.String("method", r.Method),
					slog.String("path", r.URL.Path),
				}

				if reqID != "" {
					attrs = append(attrs, slog.String("request_id", reqID))
				}

				if recWriter.written {
					slog.Error("panic recovered after response was already written", attrs...) //nolint:gosec

					return
				}

				slog.Error("panic recovered", attrs...) //nolint:gosec // G706: message is a hardcoded constant.

				WriteError(recWriter, http.StatusInternalServerError, ErrorBody{
					Error:     "internal server error",
					RequestID: reqID,
				})
			}()

			next.ServeHTTP(recWriter, r)
		})
	}
}
