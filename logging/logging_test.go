package logging_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/0xalexb/hjarta-field/logging"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeEntry(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()

	var entry map[string]any

	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry), "output should be valid JSON")

	return entry
}

func TestNewLogger_JSONByDefault(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	logger := logging.NewLogger(logging.LoggerConfig{}, &buf)
	logger.Info("extracted", slog.String("field", "name"))

	entry := decodeEntry(t, &buf)
	assert.Equal(t, "extracted", entry["msg"])
	assert.Equal(t, "name", entry["field"])
	assert.Equal(t, "INFO", entry["level"])
}

func TestNewLogger_TextFormat(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	logger := logging.NewLogger(logging.LoggerConfig{Level: "debug", Format: "TEXT"}, &buf)
	logger.Debug("attempting", slog.String("parser", "toml"))

	line := buf.String()
	assert.Contains(t, line, "level=DEBUG")
	assert.Contains(t, line, "msg=attempting")
	assert.Contains(t, line, "parser=toml")
	assert.False(t, strings.HasPrefix(line, "{"))
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"DEBUG":   slog.LevelDebug,
		" info ":  slog.LevelInfo,
		"warn":    slog.LevelWarn,
		"Warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"verbose": slog.LevelInfo,
	}

	for input, expected := range tests {
		t.Run(input, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, expected, logging.ParseLevel(input))
		})
	}
}

func TestNewLogger_LevelFilter(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	logger := logging.NewLogger(logging.LoggerConfig{Level: "error"}, &buf)
	logger.Log(context.Background(), slog.LevelInfo, "dropped")
	assert.Empty(t, buf.String())

	logger.Log(context.Background(), slog.LevelError, "kept")
	assert.Equal(t, "ERROR", decodeEntry(t, &buf)["level"])
}

func TestTraceFunc(t *testing.T) {
	t.Parallel()

	t.Run("debug enabled", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer

		trace := logging.TraceFunc(logging.NewLogger(logging.LoggerConfig{Level: "debug"}, &buf),
			slog.String("file", "config.json"))
		trace("attempting to parse content with json parser...")

		entry := decodeEntry(t, &buf)
		assert.Equal(t, "DEBUG", entry["level"])
		assert.Equal(t, "attempting to parse content with json parser...", entry["msg"])
		assert.Equal(t, "config.json", entry["file"])
	})

	t.Run("debug disabled", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer

		trace := logging.TraceFunc(logging.NewLogger(logging.LoggerConfig{Level: "info"}, &buf))
		trace("ignored")

		assert.Empty(t, buf.String())
	})
}
