// Package infrastructure wires up the cross-cutting runtime pieces of the
// reporter: structured logging and per-run identity.
package infrastructure

import (
	"log/slog"
	"os"
	"strings"

	"github.com/google/uuid"

	"expensecli/internal/config"
)

// NewLogger creates a slog logger from the logging configuration and tags
// it with a unique run ID so every line of one pipeline run correlates.
func NewLogger(cfg config.LoggingConfig) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: parseLogLevel(cfg.Level),
	}

	var handler slog.Handler
	switch strings.ToLower(cfg.Format) {
	case "text":
		handler = slog.NewTextHandler(os.Stdout, opts)
	default:
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	return slog.New(handler).With(slog.String("run_id", uuid.NewString()))
}

// parseLogLevel converts a level string to slog.Level, defaulting to info.
func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
