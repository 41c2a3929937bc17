package wiki2pdf

import (
	"log/slog"
	"time"
)

// Option configures a Converter.
type Option func(*Converter)

// converterConfig holds internal configuration for Converter.
type converterConfig struct {
	timeout        time.Duration
	assetPath      string
	highlightStyle string
	rawHTML        bool
}

// defaultTimeout is used when no timeout is specified.
const defaultTimeout = 30 * time.Second

// WithTimeout sets the browser page load timeout.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("wiki2pdf: WithTimeout duration must be positive")
	}
	return func(c *Converter) {
		c.cfg.timeout = d
	}
}

// WithAssetPath sets a directory holding css/ and templates/ overrides.
func WithAssetPath(path string) Option {
	return func(c *Converter) {
		c.cfg.assetPath = path
	}
}

// WithLogger sets the logger for crawl and render diagnostics.
// A nil logger keeps the default, which discards everything.
func WithLogger(l *slog.Logger) Option {
	return func(c *Converter) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithHighlightStyle selects the chroma style for code blocks.
func WithHighlightStyle(name string) Option {
	return func(c *Converter) {
		c.cfg.highlightStyle = name
	}
}

// WithRawHTML lets raw HTML in wiki pages through to the document.
func WithRawHTML(enabled bool) Option {
	return func(c *Converter) {
		c.cfg.rawHTML = enabled
	}
}

// withPDFConverter replaces the browser backend, for tests.
func withPDFConverter(p pdfConverter) Option {
	return func(c *Converter) {
		c.pdfConverter = p
	}
}
