// Package logging builds the slog handlers used by the wiki2pdf CLI.
package logging

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/lmittmann/tint"
)

// Format selects the log output encoding.
type Format string

const (
	FormatPretty Format = "pretty" // colorized, human-readable (tint)
	FormatJSON   Format = "json"   // JSON lines
	FormatText   Format = "text"   // key=value pairs
)

var (
	ErrInvalidFormat = errors.New("invalid log format")
	ErrInvalidLevel  = errors.New("invalid log level")
)

// ParseFormat converts a string to a Format. Empty selects pretty.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "pretty":
		return FormatPretty, nil
	case "json":
		return FormatJSON, nil
	case "text":
		return FormatText, nil
	default:
		return "", fmt.Errorf("%w: %q (must be pretty, json, or text)", ErrInvalidFormat, s)
	}
}

// ParseLevel converts a string to a slog.Level. Empty selects info.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("%w: %q (must be debug, info, warn, or error)", ErrInvalidLevel, s)
	}
}

// New returns a logger writing to w in the given format. Color is only
// used by the pretty format.
func New(w io.Writer, format Format, level slog.Level, color bool) *slog.Logger {
	var handler slog.Handler

	switch format {
	case FormatJSON:
		handler = slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
	case FormatText:
		handler = slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	default:
		handler = tint.NewHandler(w, &tint.Options{
			Level:      level,
			TimeFormat: time.TimeOnly,
			NoColor:    !color,
		})
	}

	return slog.New(handler)
}

// Discard returns a logger that drops every record.
func Discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
