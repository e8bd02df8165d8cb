package main

import (
	"io"
	"log/slog"
	"strings"
)

// newLogger builds the diagnostic logger written to stderr.
// --verbose forces debug and --quiet forces error, over log.level.
func newLogger(w io.Writer, level, format string, verbose, quiet bool) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLevel(level)}
	switch {
	case verbose:
		opts.Level = slog.LevelDebug
	case quiet:
		opts.Level = slog.LevelError
	}

	if strings.EqualFold(format, "json") {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}
