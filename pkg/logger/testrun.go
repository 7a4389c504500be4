package logger

import (
	"io"
	"log/slog"
)

// NewTestHandler discards everything; tests that assert on output use
// NewCloudRunHandlerWriter with a buffer instead.
func NewTestHandler(level slog.Level) slog.Handler {
	return slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: level})
}
