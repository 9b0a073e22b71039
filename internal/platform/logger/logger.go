package logger

import (
	"log/slog"
	"os"
)

// New returns a JSON slog logger writing to stdout. Level defaults to info;
// set WARDEN_LOG_LEVEL=debug to see per-request noise.
func New() *slog.Logger {
	level := slog.LevelInfo
	if os.Getenv("WARDEN_LOG_LEVEL") == "debug" {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
}
