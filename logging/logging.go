package logging

import (
	"context"
	"io"
	"log/slog"
	"strings"
)

// Output formats understood by NewLogger.
const (
	FormatJSON = "json"
	FormatText = "text"
)

// LoggerConfig holds configuration for the logger.
type LoggerConfig struct {
	// Level is one of debug, info, warn (warning) or error. Anything else means info.
	Level string `mapstructure:"level"`
	// Format is json or text. Anything else means json.
	Format string `mapstructure:"format"`
}

// NewLogger creates a slog.Logger writing to w.
// Servers log JSON; the CLI uses the text format for trace output on a terminal.
func NewLogger(config LoggerConfig, w io.Writer) *slog.Logger {
	options := &slog.HandlerOptions{
		AddSource:   false,
		Level:       ParseLevel(config.Level),
		ReplaceAttr: nil,
	}

	if strings.EqualFold(config.Format, FormatText) {
		return slog.New(slog.NewTextHandler(w, options))
	}

	return slog.New(slog.NewJSONHandler(w, options))
}

// ParseLevel maps a level name to a slog.Level, case-insensitively.
func ParseLevel(level string) slog.Level {
	switch strings.ToUpper(strings.TrimSpace(level)) {
	case "DEBUG":
		return slog.LevelDebug
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// TraceFunc adapts logger into a single line trace sink logging at debug level.
// Lines are dropped without formatting cost when debug is disabled.
func TraceFunc(logger *slog.Logger, attrs ...slog.Attr) func(line string) {
	return func(line string) {
		ctx := context.Background()
		if !logger.Enabled(ctx, slog.LevelDebug) {
			return
		}

		logger.LogAttrs(ctx, slog.LevelDebug, line, attrs...)
	}
}
