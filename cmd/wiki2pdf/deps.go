package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/go-rod/rod/lib/launcher"
	"go.uber.org/automaxprocs/maxprocs"

	wiki2pdf "github.com/alnah/go-wiki2pdf"
)

// Dependencies holds injectable dependencies for testability.
type Dependencies struct {
	Stdout    io.Writer
	Stderr    io.Writer
	LookupEnv func(string) (string, bool)
	Environ   func() []string

	// NewPool builds the converter pool for a run.
	NewPool func(size int, opts ...wiki2pdf.Option) Pool

	// SetMaxProcs adjusts GOMAXPROCS; nil leaves the runtime alone.
	SetMaxProcs func(logger *slog.Logger)

	// Now supplies the date for footer placeholders.
	Now func() time.Time

	// LookBrowser locates a Chrome binary for the doctor command.
	LookBrowser func() (string, bool)
}

// DefaultDeps returns production dependencies.
func DefaultDeps() *Dependencies {
	return &Dependencies{
		Stdout:      os.Stdout,
		Stderr:      os.Stderr,
		LookupEnv:   os.LookupEnv,
		Environ:     os.Environ,
		NewPool:     newConverterPool,
		SetMaxProcs: setMaxProcs,
		Now:         time.Now,
		LookBrowser: launcher.LookPath,
	}
}

// setMaxProcs matches GOMAXPROCS to the container CPU quota.
// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
// in which case Go runtime defaults apply and the program continues safely.
func setMaxProcs(logger *slog.Logger) {
	_, _ = maxprocs.Set(maxprocs.Logger(func(format string, args ...any) {
		logger.Debug(fmt.Sprintf(format, args...))
	}))
}

// now returns the current time, falling back to time.Now.
func (d *Dependencies) now() time.Time {
	if d.Now == nil {
		return time.Now()
	}
	return d.Now()
}

// getenv returns the value of an environment variable, or "".
func (d *Dependencies) getenv(key string) string {
	v, _ := d.LookupEnv(key)
	return v
}

// lookBrowser reports where Chrome is installed.
func (d *Dependencies) lookBrowser() (string, bool) {
	if d.LookBrowser == nil {
		return launcher.LookPath()
	}
	return d.LookBrowser()
}
