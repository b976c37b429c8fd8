package middleware

import (
	"compress/gzip"
	"io"
	"net/http"
	"strconv"
	"strings"
	"sync"
)

// DefaultCompressMinBytes is the smallest body Compress gzips by default.
const DefaultCompressMinBytes = 256

var gzipPool = sync.Pool{ //nolint:gochecknoglobals // reuses gzip state between responses
	New: func() any { return gzip.NewWriter(io.Discard) },
}

// gzipWriter holds the body back until it reaches minBytes or the handler
// returns, then decides once whether to compress.
type gzipWriter struct {
	http.ResponseWriter

	gz       *gzip.Writer
	minBytes int
	pending  []byte
	status   int
	decided  bool
	plain    bool
	err      error
}

func (w *gzipWriter) WriteHeader(code int) {
	if w.status == 0 {
		w.status = code
	}
}

func (w *gzipWriter) Write(b []byte) (int, error) {
	if w.err != nil {
		return 0, w.err
	}

	if w.decided {
		if w.plain {
			return w.ResponseWriter.Write(b) //nolint:wrapcheck
		}

		return w.gz.Write(b) //nolint:wrapcheck
	}

	w.pending = append(w.pending, b...)
	if len(w.pending) >= w.minBytes {
		w.decide()
	}

	if w.err != nil {
		return 0, w.err
	}

	return len(b), nil
}

// Flush commits the pending body and pushes compressed output to the client.
func (w *gzipWriter) Flush() {
	w.decide()

	if !w.plain {
		_ = w.gz.Flush()
	}

	_ = http.NewResponseController(w.ResponseWriter).Flush()
}

// Unwrap lets http.ResponseController reach the underlying writer.
func (w *gzipWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}

func (w *gzipWriter) skip() bool {
	header := w.ResponseWriter.Header()

	switch {
	case len(w.pending) < w.minBytes:
		return true
	case header.Get("Content-Encoding") != "":
		return true
	case w.status < http.StatusOK, w.status == http.StatusNoContent,
		w.status == http.StatusPartialContent, w.status == http.StatusNotModified:
		return true
	}

	contentType := header.Get("Content-Type")
	if contentType == "" {
		contentType = http.DetectContentType(w.pending)
	}

	return !compressible(contentType)
}

func (w *gzipWriter) decide() {
	if w.decided {
		return
	}

	w.decided = true

	if w.status == 0 {
		w.status = http.StatusOK
	}

	w.plain = w.skip()

	if !w.plain {
		header := w.ResponseWriter.Header()
		if header.Get("Content-Type") == "" {
			header.Set("Content-Type", http.DetectContentType(w.pending))
		}

		header.Set("Content-Encoding", "gzip")
		header.Del("Content-Length")
	}

	w.ResponseWriter.WriteHeader(w.status)

	if len(w.pending) == 0 {
		return
	}

	if w.plain {
		_, w.err = w.ResponseWriter.Write(w.pending)
	} else {
		_, w.err = w.gz.Write(w.pending)
	}

	w.pending = nil
}

func (w *gzipWriter) finish() {
	w.decide()

	if !w.plain {
		_ = w.gz.Close()
	}
}

// compressible reports whether a body of this media type shrinks under gzip.
func compressible(contentType string) bool {
	mediaType, _, _ := strings.Cut(contentType, ";")
	mediaType = strings.ToLower(strings.TrimSpace(mediaType))

	switch {
	case strings.HasPrefix(mediaType, "text/"):
		return true
	case mediaType == "application/json", strings.HasSuffix(mediaType, "+json"):
		return true
	case mediaType == "application/xml", strings.HasSuffix(mediaType, "+xml"):
		return true
	case mediaType == "application/toml", mediaType == "application/yaml", mediaType == "application/x-yaml":
		return true
	case mediaType == "application/javascript":
		return true
	default:
		return false
	}
}

// acceptsGzip reports whether an Accept-Encoding header allows gzip, honouring
// an explicit q=0.
func acceptsGzip(header string) bool {
	for part := range strings.SplitSeq(header, ",") {
		coding, params, _ := strings.Cut(strings.TrimSpace(part), ";")
		if !strings.EqualFold(strings.TrimSpace(coding), "gzip") {
			continue
		}

		for param := range strings.SplitSeq(params, ";") {
			key, value, _ := strings.Cut(strings.TrimSpace(param), "=")
			if !strings.EqualFold(strings.TrimSpace(key), "q") {
				continue
			}

			q, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
			if err == nil && q == 0 {
				return false
			}
		}

		return true
	}

	return false
}

// Compress gzips text, JSON, XML, YAML and TOML bodies of at least minBytes
// for clients that accept gzip. A minBytes of zero or less means
// DefaultCompressMinBytes.
func Compress(minBytes int) func(http.Handler) http.Handler {
	if minBytes <= 0 {
		minBytes = DefaultCompressMinBytes
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Add("Vary", "Accept-Encoding")

			if !acceptsGzip(r.Header.Get("Accept-Encoding")) {
				next.ServeHTTP(w, r)

				return
			}

			gz, _ := gzipPool.Get().(*gzip.Writer)
			gz.Reset(w)

			gw := &gzipWriter{ResponseWriter: w, gz: gz, minBytes: minBytes} //nolint:exhaustruct

			defer func() {
				gz.Reset(io.Discard)
				gzipPool.Put(gz)
			}()

			next.ServeHTTP(gw, r)

			gw.finish()
		})
	}
}
