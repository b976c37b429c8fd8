package middleware

import (
	"context"
	"log/slog"
	"sync"
	"testing"
)

type logRecord struct {
	Level   slog.Level
	Message string
	Attrs   map[string]any
}

type captureHandler struct {
	mu      sync.Mutex
	records []logRecord
}

func (h *captureHandler) Enabled(_ context.Context, _ slog.Level) bool { return true }

//nolint:varnamelen // r is conventional for slog.Record.
func (h *captureHandler) Handle(_ context.Context, r slog.Record) error {
	rec := logRecord{Level: r.Level, Message: r.Message, Attrs: map[string]any{}}

	r.Attrs(func(a slog.Attr) bool {
		rec.Attrs[a.Key] = a.Value.Any()

		return true
	})

	h.mu.Lock()
	defer h.mu.Unlock()

	h.records = append(h.records, rec)

	return nil
}

func (h *captureHandler) WithAttrs(_ []slog.Attr) slog.Handler { return h }
func (h *captureHandler) WithGroup(_ string) slog.Handler      { return h }

func (h *captureHandler) all() []logRecord {
	h.mu.Lock()
	defer h.mu.Unlock()

	return append([]logRecord(nil), h.records...)
}

// captureDefault swaps the global slog logger for the duration of the test.
func captureDefault(t *testing.T) *captureHandler {
	t.Helper()

	previous := slog.Default()
	handler := &captureHandler{}

	slog.SetDefault(slog.New(handler))
	t.Cleanup(func() { slog.SetDefault(previous) })

	return handler
}
