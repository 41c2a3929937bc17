package wiki2pdf

import (
	"fmt"
	"strings"

	"github.com/alnah/go-wiki2pdf/internal/render"
	"github.com/alnah/go-wiki2pdf/internal/wiki"
)

// Page size constants.
const (
	PageSizeLetter = "letter"
	PageSizeA4     = "a4"
	PageSizeLegal  = "legal"
)

// Orientation constants.
const (
	OrientationPortrait  = "portrait"
	OrientationLandscape = "landscape"
)

// Margin bounds in inches.
const (
	MinMargin     = 0.25
	MaxMargin     = 3.0
	DefaultMargin = 0.5
)

// Layout defaults.
const (
	DefaultTitle             = "wiki2pdf"
	DefaultPageBreakMaxLevel = render.DefaultPageBreakMaxLevel
	DefaultPageTOCMaxLevel   = render.DefaultPageTOCMaxLevel

	// MaxLayoutLevel bounds the level settings; deeper pages are rendered
	// with clamped headings anyway.
	MaxLayoutLevel = 6
)

// CustomCSSFile is the stylesheet a wiki may carry at its root. It is
// applied after the asset stylesheets.
const CustomCSSFile = "custom.css"

// Diagnostic is a non-fatal problem met during conversion: a broken link,
// an image that could not be embedded, a malformed outline.
type Diagnostic = wiki.Diagnostic

// PageSettings configures PDF page dimensions.
type PageSettings struct {
	Size        string  // "letter", "a4", "legal"
	Orientation string  // "portrait", "landscape"
	Margin      float64 // inches, applied to all sides
}

// DefaultPageSettings returns page settings with default values.
func DefaultPageSettings() *PageSettings {
	return &PageSettings{
		Size:        PageSizeLetter,
		Orientation: OrientationPortrait,
		Margin:      DefaultMargin,
	}
}

// Validate checks that page settings are valid.
// Returns nil if p is nil (nil means use defaults).
// Does not mutate - uses case-insensitive comparison.
func (p *PageSettings) Validate() error {
	if p == nil {
		return nil
	}

	if !isValidPageSize(p.Size) {
		return fmt.Errorf("%w: %q", ErrInvalidPageSize, p.Size)
	}

	if !isValidOrientation(p.Orientation) {
		return fmt.Errorf("%w: %q", ErrInvalidOrientation, p.Orientation)
	}

	if p.Margin < MinMargin || p.Margin > MaxMargin {
		return fmt.Errorf("%w: %.2f (must be between %.2f and %.2f)", ErrInvalidMargin, p.Margin, MinMargin, MaxMargin)
	}

	return nil
}

// isValidPageSize checks if size is a known page size (case-insensitive).
func isValidPageSize(size string) bool {
	switch strings.ToLower(size) {
	case PageSizeLetter, PageSizeA4, PageSizeLegal:
		return true
	}
	return false
}

// isValidOrientation checks if orientation is valid (case-insensitive).
func isValidOrientation(orientation string) bool {
	switch strings.ToLower(orientation) {
	case OrientationPortrait, OrientationLandscape:
		return true
	}
	return false
}

// Layout controls how the page tree maps onto the document.
type Layout struct {
	PageBreakMaxLevel int // pages at this tree level or above start a new PDF page
	PageTOCMaxLevel   int // pages at this tree level or above get their TOC
}

// DefaultLayout returns the layout used when Input.Layout is nil.
func DefaultLayout() *Layout {
	return &Layout{
		PageBreakMaxLevel: DefaultPageBreakMaxLevel,
		PageTOCMaxLevel:   DefaultPageTOCMaxLevel,
	}
}

// Validate checks that both levels are within 0..MaxLayoutLevel.
// Returns nil if l is nil (nil means use defaults).
func (l *Layout) Validate() error {
	if l == nil {
		return nil
	}
	if l.PageBreakMaxLevel < 0 || l.PageBreakMaxLevel > MaxLayoutLevel {
		return fmt.Errorf("%w: page break level %d (must be between 0 and %d)", ErrInvalidLevel, l.PageBreakMaxLevel, MaxLayoutLevel)
	}
	if l.PageTOCMaxLevel < 0 || l.PageTOCMaxLevel > MaxLayoutLevel {
		return fmt.Errorf("%w: page TOC level %d (must be between 0 and %d)", ErrInvalidLevel, l.PageTOCMaxLevel, MaxLayoutLevel)
	}
	return nil
}

// Footer configures the PDF footer drawn by the browser on every page.
type Footer struct {
	Position       string // "left", "center", "right" (default: "right")
	ShowPageNumber bool
	Text           string
}

// Validate checks that footer settings are valid.
// Returns nil if f is nil (nil means no footer).
func (f *Footer) Validate() error {
	if f == nil {
		return nil
	}
	switch strings.ToLower(f.Position) {
	case "", "left", "center", "right":
		return nil
	default:
		return fmt.Errorf("%w: %q (must be left, center, or right)", ErrInvalidFooterPosition, f.Position)
	}
}

// Input contains conversion parameters.
type Input struct {
	WikiRoot string        // wiki directory (required)
	RootPage string        // markdown file the crawl starts from (required)
	Title    string        // document title (default: DefaultTitle)
	Layout   *Layout       // tree level limits (optional, nil = defaults)
	Page     *PageSettings // page settings (optional, nil = defaults)
	Footer   *Footer       // footer config (optional, nil = no footer)
	HTMLOnly bool          // skip PDF generation
}

// ConvertResult contains the output of a successful conversion.
type ConvertResult struct {
	HTML        []byte
	PDF         []byte // nil when Input.HTMLOnly is set
	Pages       int    // wiki pages in the document
	Diagnostics []Diagnostic
}
