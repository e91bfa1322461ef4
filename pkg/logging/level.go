package logging

import (
	"fmt"
	"log/slog"
	"strings"
)

// LevelCritical extends slog's built-in levels with a severity above error,
// matching the DEBUG < INFO < WARNING < ERROR < CRITICAL ordering used by the
// LOG_LEVEL and LOGLEVEL_* environment variables.
const LevelCritical = slog.LevelError + 4

// ParseLevel converts a severity name to a slog.Level. Matching is
// case-insensitive and ignores surrounding whitespace.
func ParseLevel(name string) (slog.Level, error) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "DEBUG":
		return slog.LevelDebug, nil
	case "INFO":
		return slog.LevelInfo, nil
	case "WARNING":
		return slog.LevelWarn, nil
	case "ERROR":
		return slog.LevelError, nil
	case "CRITICAL":
		return LevelCritical, nil
	default:
		return 0, fmt.Errorf("unknown log level %q (valid: DEBUG, INFO, WARNING, ERROR, CRITICAL)", name)
	}
}

func levelName(l slog.Level) string {
	switch {
	case l >= LevelCritical:
		return "CRITICAL"
	case l >= slog.LevelError:
		return "ERROR"
	case l >= slog.LevelWarn:
		return "WARNING"
	case l >= slog.LevelInfo:
		return "INFO"
	default:
		return "DEBUG"
	}
}

// levelCode is the one-letter form used by the default output template.
func levelCode(l slog.Level) string {
	return levelName(l)[:1]
}
