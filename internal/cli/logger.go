package cli

import (
	"io"
	"log/slog"
)

// newLogger builds a logger for the CLI without touching the global
// default, so tests can run commands with isolated output.
func newLogger(levelStr string, outW io.Writer) *slog.Logger {
	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	handler := slog.NewTextHandler(outW, &slog.HandlerOptions{Level: level})
	return slog.New(handler)
}
