package observability

import (
	"log/slog"
	"os"
)

// NewLogger builds the process-wide structured logger.
func NewLogger() *slog.Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	return slog.New(handler)
}
