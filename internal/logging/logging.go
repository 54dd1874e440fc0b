// Package logging configures the shared slog logger used by both CLI
// front ends.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Config controls the CLI's logger. The teacher's hosting-server Config
// also carried Structured/StructuredFormat/IncludePID/ExtraFields for its
// operational JSON logs; a one-shot CLI process has no log aggregator to
// format for and no peer process to disambiguate a PID against, so those
// fields were dropped rather than carried unused.
type Config struct {
	Level string
}

// Configure installs a text slog.Logger at the requested level as the
// process default and returns it. Both zigdig and zigdig-tiny call this
// once at startup, with Level set from the DEBUG environment variable.
func Configure(cfg Config) *slog.Logger {
	level := parseLevel(cfg.Level)
	handler := slog.NewTextHandler(io.Writer(os.Stderr), &slog.HandlerOptions{Level: level})
	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}

func parseLevel(s string) slog.Level {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DEBUG":
		return slog.LevelDebug
	case "INFO":
		return slog.LevelInfo
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
