package helpers

import (
	"io"
	"log/slog"
	"os"
)

// NewNoopLogger returns a logger discarding every record.
func NewNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// NewLogger returns the JSON logger used by every runtime mode.
// verbosity lowers the minimum level from Warn in steps of one slog level.
func NewLogger(w io.Writer, verbosity int, callerTrace bool) *slog.Logger {
	if w == nil {
		w = os.Stdout
	}
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
		AddSource: callerTrace,
		Level:     slog.LevelWarn - slog.Level(verbosity*4),
	}))
}
