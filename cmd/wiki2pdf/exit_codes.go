package main

import (
	"errors"
	"os"

	flag "github.com/spf13/pflag"

	wiki2pdf "github.com/alnah/go-wiki2pdf"
	"github.com/alnah/go-wiki2pdf/internal/config"
	"github.com/alnah/go-wiki2pdf/internal/logging"
)

// Exit codes for wiki2pdf CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Successful conversion
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, or validation
	ExitIO      = 3 // File not found, permission denied
	ExitBrowser = 4 // Browser/Chrome errors
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Browser errors (exit 4)
	if errors.Is(err, wiki2pdf.ErrBrowserConnect) ||
		errors.Is(err, wiki2pdf.ErrPageCreate) ||
		errors.Is(err, wiki2pdf.ErrPageLoad) ||
		errors.Is(err, wiki2pdf.ErrPDFGeneration) {
		return ExitBrowser
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, wiki2pdf.ErrInvalidWikiRoot) ||
		errors.Is(err, wiki2pdf.ErrRootUnreadable) ||
		errors.Is(err, ErrNoWikiDir) ||
		errors.Is(err, ErrWriteOutput) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, flag.ErrHelp) ||
		errors.Is(err, ErrNoInput) ||
		errors.Is(err, ErrInvalidWorkerCount) ||
		errors.Is(err, ErrInvalidTimeout) ||
		errors.Is(err, ErrOutputConflict) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, logging.ErrInvalidLevel) ||
		errors.Is(err, logging.ErrInvalidFormat) ||
		errors.Is(err, wiki2pdf.ErrNoWikiRoot) ||
		errors.Is(err, wiki2pdf.ErrNoRootPage) ||
		errors.Is(err, wiki2pdf.ErrInvalidPageSize) ||
		errors.Is(err, wiki2pdf.ErrInvalidOrientation) ||
		errors.Is(err, wiki2pdf.ErrInvalidMargin) ||
		errors.Is(err, wiki2pdf.ErrInvalidFooterPosition) ||
		errors.Is(err, wiki2pdf.ErrInvalidLevel) ||
		errors.Is(err, wiki2pdf.ErrInvalidAssetPath) {
		return ExitUsage
	}

	return ExitGeneral
}
