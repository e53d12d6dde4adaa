package app

import (
	"log/slog"
	"os"
)

// NewLogger returns a slog.Logger tuned for the environment:
// JSON at INFO in prod, text at DEBUG everywhere else.
func NewLogger(env string) *slog.Logger {
	var handler slog.Handler
	if env == "prod" {
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	} else {
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})
	}
	return slog.New(handler)
}
