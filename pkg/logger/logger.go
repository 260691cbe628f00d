package logger

import (
	"log/slog"
	"os"
)

var Log *slog.Logger

// Init configures the process-wide JSON logger. Debug level outside
// production, info otherwise.
func Init(environment string) {
	level := slog.LevelDebug
	if environment == "production" {
		level = slog.LevelInfo
	}
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	})
	Log = slog.New(handler)
	slog.SetDefault(Log)
}
