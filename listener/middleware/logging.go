package middleware

import (
	"bufio"
	"log/slog"
	"net"
	"net/http"
	"time"
)

// statusWriter captures the status code and body size. Only the first
// WriteHeader reaches the underlying writer.
type statusWriter struct {
	http.ResponseWriter

	status   int
	bytes    int
	written  bool
	hijacked bool
}

func (w *statusWriter) WriteHeader(code int) {
	if w.written {
		return
	}

	w.status = code
	w.written = true

	w.ResponseWriter.WriteHeader(code)
}

func (w *statusWriter) Write(b []byte) (int, error) {
	if !w.written {
		w.status = http.StatusOK
		w.written = true
	}

	n, err := w.ResponseWriter.Write(b)
	w.bytes += n

	return n, err //nolint:wrapcheck
}

// Flush sends buffered data to the client; an unwritten response commits as 200.
func (w *statusWriter) Flush() {
	err := http.NewResponseController(w.ResponseWriter).Flush()
	if err == nil && !w.written {
		w.status = http.StatusOK
		w.written = true
	}
}

// Hijack hands the connection over to the caller. Hijacked requests are not logged.
func (w *statusWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	conn, buf, err := http.NewResponseController(w.ResponseWriter).Hijack()
	if err == nil {
		w.hijacked = true
	}

	return conn, buf, err //nolint:wrapcheck
}

// Unwrap lets http.ResponseController reach the underlying writer.
func (w *statusWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}

// Logging logs one entry per request with method, path, status, response
// size, duration and request ID. 5xx responses log at error, 4xx at warn and
// the rest at info. A nil logger means slog.Default().
func Logging(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			log := logger
			if log == nil {
				log = slog.Default()
			}

			start := time.Now()
			sw := &statusWriter{ResponseWriter: w, status: 0, bytes: 0, written: false, hijacked: false}

			next.ServeHTTP(sw, r)

			if sw.hijacked {
				return
			}

			if sw.status == 0 {
				sw.status = http.StatusOK
			}

			attrs := []slog.Attr{
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", sw.status),
				slog.Int("bytes", sw.bytes),
				slog.Duration("duration", time.Since(start)),
			}

			if reqID := GetRequestID(r.Context()); reqID != "" {
				attrs = append(attrs, slog.String("request_id", reqID))
			}

			level := slog.LevelInfo

			switch {
			case sw.status >= http.StatusInternalServerError:
				level = slog.LevelError
			case sw.status >= http.StatusBadRequest:
				level = slog.LevelWarn
			}

			log.LogAttrs(r.Context(), level, "http request", attrs...)
		})
	}
}
