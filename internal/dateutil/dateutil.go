// Package dateutil expands date placeholders in footer text.
//
// A placeholder is {date} or {date:FORMAT}. FORMAT is a preset name
// (iso, european, us, long) or a layout built from the tokens
// YYYY, YY, MMMM, MMM, MM, M, DD, D; text inside [brackets] is kept as is.
package dateutil

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidDateFormat indicates an invalid date format or placeholder.
var ErrInvalidDateFormat = errors.New("invalid date format")

// MaxDateFormatLength limits format string length.
const MaxDateFormatLength = 50

// DefaultDateFormat is used by a bare {date}.
const DefaultDateFormat = "YYYY-MM-DD"

// dateTokens maps tokens to Go layout components, longest first so
// matching is greedy.
var dateTokens = []struct {
	token string
	goFmt string
}{
	{"YYYY", "2006"},
	{"MMMM", "January"},
	{"MMM", "Jan"},
	{"YY", "06"},
	{"MM", "01"},
	{"DD", "02"},
	{"M", "1"},
	{"D", "2"},
}

// Presets are named shortcuts for common formats.
var Presets = map[string]string{
	"iso":      "YYYY-MM-DD",
	"european": "DD/MM/YYYY",
	"us":       "MM/DD/YYYY",
	"long":     "MMMM D, YYYY",
}

const (
	placeholderOpen  = "{date"
	placeholderClose = "}"
)

// Layout converts a token format (or preset name) to a Go time layout.
func Layout(format string) (string, error) {
	if preset, ok := Presets[strings.ToLower(format)]; ok {
		format = preset
	}
	if format == "" {
		return "", fmt.Errorf("%w: format cannot be empty", ErrInvalidDateFormat)
	}
	if len(format) > MaxDateFormatLength {
		return "", fmt.Errorf("%w: format exceeds %d characters", ErrInvalidDateFormat, MaxDateFormatLength)
	}

	var b strings.Builder
	for rest := format; rest != ""; {
		if rest[0] == '[' {
			end := strings.IndexByte(rest, ']')
			if end < 0 {
				return "", fmt.Errorf("%w: unclosed bracket in %q", ErrInvalidDateFormat, format)
			}
			b.WriteString(rest[1:end])
			rest = rest[end+1:]
			continue
		}
		n := 1
		lit := rest[:1]
		for _, t := range dateTokens {
			if strings.HasPrefix(rest, t.token) {
				n, lit = len(t.token), t.goFmt
				break
			}
		}
		b.WriteString(lit)
		rest = rest[n:]
	}
	return b.String(), nil
}

// Expand replaces every {date} and {date:FORMAT} placeholder in text with
// t formatted accordingly. Text without placeholders is returned unchanged.
func Expand(text string, t time.Time) (string, error) {
	if !strings.Contains(text, placeholderOpen) {
		return text, nil
	}

	var b strings.Builder
	rest := text
	for {
		start := strings.Index(rest, placeholderOpen)
		if start < 0 {
			b.WriteString(rest)
			return b.String(), nil
		}
		b.WriteString(rest[:start])
		rest = rest[start+len(placeholderOpen):]

		end := strings.Index(rest, placeholderClose)
		if end < 0 {
			return "", fmt.Errorf("%w: unclosed placeholder in %q", ErrInvalidDateFormat, text)
		}
		spec := rest[:end]
		rest = rest[end+len(placeholderClose):]

		format := DefaultDateFormat
		switch {
		case spec == "":
		case strings.HasPrefix(spec, ":"):
			format = spec[1:]
		default:
			// "{dates}" and friends are plain text.
			b.WriteString(placeholderOpen + spec + placeholderClose)
			continue
		}

		layout, err := Layout(format)
		if err != nil {
			return "", err
		}
		b.WriteString(t.Format(layout))
	}
}
