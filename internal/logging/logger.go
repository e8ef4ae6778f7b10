// Package logging builds the structured debug logger.
// Logs always go to the error stream so they never mix with task output.
package logging

import (
	"io"
	"log/slog"
	"strings"
)

// New returns a logger writing text records to w at the given level
// ("debug", "info", "warn", "error", case-insensitive). An empty or
// unrecognized level returns a logger that discards everything.
func New(w io.Writer, level string) *slog.Logger {
	lvl, ok := parseLevel(level)
	if !ok || w == nil {
		return Nop()
	}

	opts := &slog.HandlerOptions{
		Level: lvl,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			// Timestamps make test output unstable and add nothing for a
			// process that lives for a few milliseconds.
			if len(groups) == 0 && a.Key == slog.TimeKey {
				return slog.Attr{}
			}
			return a
		},
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// Nop returns a logger that discards all output.
func Nop() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError + 1}))
}

func parseLevel(level string) (slog.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug, true
	case "info":
		return slog.LevelInfo, true
	case "warn":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	default:
		return 0, false
	}
}
