// Package logging configures the process-wide slog logger used by boo.
//
// Logs are JSON lines on stderr carrying the module name and version. The
// level comes from an explicit value, else the LOG_LEVEL environment
// variable, else the package default. Debug logs include source locations.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// EnvLogLevel is the environment variable consulted for the log level.
const EnvLogLevel = "LOG_LEVEL"

// DefaultLevel is used when no level is configured.
const DefaultLevel = slog.LevelWarn

// ParseLevel converts a level name into a slog.Level. Unknown or empty
// names yield DefaultLevel.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return DefaultLevel
	}
}

// NewStructuredLogger returns a JSON logger writing to w.
func NewStructuredLogger(w io.Writer, module, version, level string) *slog.Logger {
	lvl := ParseLevel(level)
	h := slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level:     lvl,
		AddSource: lvl <= slog.LevelDebug,
	})
	return slog.New(h).With("module", module, "version", version)
}

// SetDefaultStructuredLoggerWithLevel installs a stderr JSON logger as the
// slog default. An empty level falls back to LOG_LEVEL.
func SetDefaultStructuredLoggerWithLevel(module, version, level string) {
	if level == "" {
		level = os.Getenv(EnvLogLevel)
	}
	slog.SetDefault(NewStructuredLogger(os.Stderr, module, version, level))
}
