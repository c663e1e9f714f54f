// Package logging builds the slog loggers used by memolist commands.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// Output formats accepted by New.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// ParseLevel maps debug, info, warn and error to slog levels.
func ParseLevel(s string) (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return slog.LevelWarn, fmt.Errorf("invalid log level %q: %w", s, err)
	}

	return lvl, nil
}

// CheckFormat reports whether format is one New accepts.
func CheckFormat(format string) error {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", FormatText, FormatJSON:
		return nil
	default:
		return fmt.Errorf("invalid log format %q (want %s or %s)", format, FormatText, FormatJSON)
	}
}

// New returns a logger writing format to w at level.
func New(w io.Writer, format string, level slog.Level) (*slog.Logger, error) {
	if err := CheckFormat(format); err != nil {
		return nil, err
	}

	opts := &slog.HandlerOptions{Level: level}

	if strings.EqualFold(strings.TrimSpace(format), FormatJSON) {
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	}

	return slog.New(slog.NewTextHandler(w, opts)), nil
}

// Discard returns a logger that drops everything.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
