package wiki2pdf

import (
	"errors"

	"github.com/alnah/go-wiki2pdf/internal/wiki"
)

// Sentinel errors for library operations.
var (
	ErrNoWikiRoot     = errors.New("wiki root directory is required")
	ErrNoRootPage     = errors.New("root page is required")
	ErrPDFGeneration  = errors.New("PDF generation failed")
	ErrBrowserConnect = errors.New("failed to connect to browser")
	ErrPageCreate     = errors.New("failed to create browser page")
	ErrPageLoad       = errors.New("failed to load page")

	// Crawl errors, raised by the page tree builder.
	ErrInvalidWikiRoot = wiki.ErrInvalidRoot
	ErrRootUnreadable  = wiki.ErrRootUnreadable

	// Page settings validation errors.
	ErrInvalidPageSize    = errors.New("invalid page size")
	ErrInvalidOrientation = errors.New("invalid orientation")
	ErrInvalidMargin      = errors.New("invalid margin")

	// Footer validation errors.
	ErrInvalidFooterPosition = errors.New("invalid footer position")

	// Layout validation errors.
	ErrInvalidLevel = errors.New("invalid layout level")

	// Asset loading errors.
	ErrInvalidAssetPath = errors.New("invalid asset path")
)
