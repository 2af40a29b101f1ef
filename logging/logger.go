// Package logging builds the process-wide slog logger. Development gets a
// colorized console handler, everything else structured JSON.
package logging

import (
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"
)

func New(environment, level string) *slog.Logger {
	lvl := parseLevel(level)

	if environment == "development" {
		h := tint.NewHandler(os.Stdout, &tint.Options{
			Level:      lvl,
			TimeFormat: time.Kitchen,
		})
		return slog.New(h).With("service", "ml-api")
	}

	h := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl})
	return slog.New(h).With("service", "ml-api", "env", environment)
}

func parseLevel(s string) slog.Level {
	switch s {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
