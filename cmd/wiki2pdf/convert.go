package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	flag "github.com/spf13/pflag"

	wiki2pdf "github.com/alnah/go-wiki2pdf"
	"github.com/alnah/go-wiki2pdf/internal/config"
	"github.com/alnah/go-wiki2pdf/internal/dateutil"
	"github.com/alnah/go-wiki2pdf/internal/fileutil"
	"github.com/alnah/go-wiki2pdf/internal/hints"
	"github.com/alnah/go-wiki2pdf/internal/logging"
)

// Sentinel errors for CLI operations.
var (
	ErrNoInput            = errors.New("wiki directory and at least one page path are required")
	ErrNoWikiDir          = errors.New("wiki directory not found")
	ErrWriteOutput        = errors.New("failed to write output file")
	ErrInvalidWorkerCount = errors.New("invalid worker count")
	ErrInvalidTimeout     = errors.New("invalid timeout")
	ErrOutputConflict     = errors.New("conflicting output paths")
	ErrConversionFailed   = errors.New("conversion failed")
)

// File permission constants.
const (
	dirPermissions  = 0o750 // rwxr-x---: owner full, group read+execute
	filePermissions = 0o644 // rw-r--r--: owner read+write, others read
)

// pageJob is one root page to convert and where its outputs go.
type pageJob struct {
	PagePath string // as given on the command line
	RootPage string // path handed to the converter
	PDFPath  string
	HTMLPath string // empty when no HTML is written
}

// conversionParams groups settings shared by every page of a run.
type conversionParams struct {
	wikiRoot string
	title    string
	layout   *wiki2pdf.Layout
	page     *wiki2pdf.PageSettings
	footer   *wiki2pdf.Footer
	htmlOnly bool
}

// run parses args, executes the command and returns the exit code.
func run(ctx context.Context, args []string, deps *Dependencies) int {
	if len(args) > 0 {
		switch args[0] {
		case "version":
			fmt.Fprintf(deps.Stdout, "wiki2pdf %s\n", Version)
			return ExitSuccess
		case "help":
			printUsage(deps.Stdout)
			return ExitSuccess
		case "doctor":
			return runDoctorCmd(args[1:], deps)
		}
	}

	flags, positional, err := parseConvertFlags(args, deps.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return ExitSuccess
		}
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return ExitUsage
	}

	if err := runConvert(ctx, positional, flags, deps); err != nil {
		hint := ""
		if !errors.Is(err, ErrConversionFailed) {
			// Failed pages already printed their own hints.
			hint = hintFor(err, deps)
		}
		fmt.Fprintf(deps.Stderr, "error: %v%s\n", err, hint)
		return exitCodeFor(err)
	}
	return ExitSuccess
}

// runConvert orchestrates the conversion process.
func runConvert(ctx context.Context, positionalArgs []string, flags *convertFlags, deps *Dependencies) error {
	if len(positionalArgs) < 2 {
		return fmt.Errorf("%w (usage: wiki2pdf [flags] <wiki-dir> <page-path>...)", ErrNoInput)
	}

	timeout, err := parseTimeout(flags.timeout)
	if err != nil {
		return err
	}

	// Resolve configuration: flags > env > file > defaults
	env := loadEnvConfig(deps)
	cfg, err := loadConfig(flags.common.config, env.ConfigPath)
	if err != nil {
		return err
	}
	applyEnvConfig(env, cfg)
	mergeFlags(flags, cfg)
	if timeout > 0 {
		cfg.Timeout = timeout
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := validateWorkers(cfg.Workers); err != nil {
		return err
	}

	logger, err := buildLogger(cfg.Log, deps)
	if err != nil {
		return err
	}
	for _, w := range env.Warnings {
		logger.Warn(w)
	}
	if deps.SetMaxProcs != nil {
		deps.SetMaxProcs(logger)
	}

	params, err := buildParams(positionalArgs[0], cfg, flags.outputMode.htmlOnly, deps.now())
	if err != nil {
		return err
	}

	jobs, err := planJobs(params.wikiRoot, positionalArgs[1:], flags.output, cfg.Output, params.htmlOnly)
	if err != nil {
		return err
	}

	poolSize := min(wiki2pdf.ResolvePoolSize(cfg.Workers), len(jobs))
	logger.Debug("starting conversion", "pages", len(jobs), "workers", poolSize)

	pool := deps.NewPool(poolSize, converterOptions(cfg, logger)...)
	defer func() {
		if err := pool.Close(); err != nil {
			logger.Warn("closing converters", "error", err)
		}
	}()

	results := convertBatch(ctx, pool, jobs, params, logger)

	errs := printResults(results, flags.common.quiet, flags.common.verbose, deps)
	if len(errs) > 0 {
		return fmt.Errorf("%w: %d of %d page(s): %w", ErrConversionFailed, len(errs), len(results), errors.Join(errs...))
	}
	return nil
}

// hintFor returns an actionable hint for well-known failures.
func hintFor(err error, deps *Dependencies) string {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return hints.ForTimeout()
	case errors.Is(err, wiki2pdf.ErrBrowserConnect):
		return hints.ForBrowserConnect(deps.getenv)
	case errors.Is(err, config.ErrConfigNotFound):
		return hints.ForConfigNotFound(err.Error())
	case errors.Is(err, wiki2pdf.ErrRootUnreadable):
		return hints.ForRootPage()
	case errors.Is(err, ErrWriteOutput):
		return hints.ForOutputDirectory()
	}
	return ""
}

// loadConfig loads the config named by the flag, else by the environment,
// else returns defaults.
func loadConfig(flagConfig, envConfig string) (*config.Config, error) {
	name := flagConfig
	if name == "" {
		name = envConfig
	}
	if name == "" {
		return config.DefaultConfig(), nil
	}
	cfg, err := config.LoadConfig(name)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

// mergeFlags merges CLI flags into config. CLI values override config values.
func mergeFlags(flags *convertFlags, cfg *config.Config) {
	if flags.title != "" {
		cfg.Title = flags.title
	}
	if flags.assetsDir != "" {
		cfg.Assets.Dir = flags.assetsDir
	}
	if flags.workers > 0 {
		cfg.Workers = flags.workers
	}

	// Layout flags
	if flags.layout.pageBreakMaxLevel != levelUnset {
		cfg.Layout.PageBreakMaxLevel = flags.layout.pageBreakMaxLevel
	}
	if flags.layout.pageTOCMaxLevel != levelUnset {
		cfg.Layout.PageTOCMaxLevel = flags.layout.pageTOCMaxLevel
	}

	// Page flags
	if flags.page.size != "" {
		cfg.Page.Size = flags.page.size
	}
	if flags.page.orientation != "" {
		cfg.Page.Orientation = flags.page.orientation
	}
	if flags.page.margin > 0 {
		cfg.Page.Margin = flags.page.margin
	}

	// Footer flags
	if flags.footer.position != "" {
		cfg.Footer.Position = flags.footer.position
	}
	if flags.footer.text != "" {
		cfg.Footer.Text = flags.footer.text
	}
	if flags.footer.pageNumber {
		cfg.Footer.PageNumber = true
	}

	// Render flags
	if flags.render.highlightStyle != "" {
		cfg.Render.HighlightStyle = flags.render.highlightStyle
	}
	if flags.render.rawHTML {
		cfg.Render.RawHTML = true
	}

	// Output flags
	if flags.outputMode.html {
		cfg.Output.HTML = true
	}

	// Log flags: an explicit level beats -v/-q
	switch {
	case flags.common.logLevel != "":
		cfg.Log.Level = flags.common.logLevel
	case flags.common.verbose:
		cfg.Log.Level = "debug"
	case flags.common.quiet:
		cfg.Log.Level = "error"
	}
	if flags.common.logFormat != "" {
		cfg.Log.Format = flags.common.logFormat
	}
}

// parseTimeout parses the --timeout flag; empty means unset.
func parseTimeout(s string) (time.Duration, error) {
	if s == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidTimeout, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%w: %s (must be positive)", ErrInvalidTimeout, s)
	}
	return d, nil
}

// validateWorkers checks that the worker count is within valid bounds.
func validateWorkers(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: %d (must be >= 0, 0 means auto)", ErrInvalidWorkerCount, n)
	}
	if n > wiki2pdf.MaxPoolSize {
		return fmt.Errorf("%w: %d (maximum is %d)", ErrInvalidWorkerCount, n, wiki2pdf.MaxPoolSize)
	}
	return nil
}

// buildLogger creates the run logger from the merged log settings.
// NO_COLOR disables colors of the pretty format.
func buildLogger(cfg config.LogConfig, deps *Dependencies) (*slog.Logger, error) {
	level, err := logging.ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}
	format, err := logging.ParseFormat(cfg.Format)
	if err != nil {
		return nil, err
	}
	_, noColor := deps.LookupEnv("NO_COLOR")
	return logging.New(deps.Stderr, format, level, !noColor), nil
}

// converterOptions turns the config into wiki2pdf options.
func converterOptions(cfg *config.Config, logger *slog.Logger) []wiki2pdf.Option {
	opts := []wiki2pdf.Option{
		wiki2pdf.WithLogger(logger),
		wiki2pdf.WithAssetPath(cfg.Assets.Dir),
		wiki2pdf.WithHighlightStyle(cfg.Render.HighlightStyle),
		wiki2pdf.WithRawHTML(cfg.Render.RawHTML),
	}
	if cfg.Timeout > 0 {
		opts = append(opts, wiki2pdf.WithTimeout(cfg.Timeout))
	}
	return opts
}

// buildParams validates the wiki directory and the document settings once
// for the whole run.
func buildParams(wikiDir string, cfg *config.Config, htmlOnly bool, now time.Time) (*conversionParams, error) {
	if !fileutil.DirExists(wikiDir) {
		return nil, fmt.Errorf("%w: %s", ErrNoWikiDir, wikiDir)
	}
	root, err := filepath.Abs(wikiDir)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoWikiDir, err)
	}

	footer, err := buildFooter(cfg.Footer, now)
	if err != nil {
		return nil, err
	}

	params := &conversionParams{
		wikiRoot: root,
		title:    cfg.Title,
		layout: &wiki2pdf.Layout{
			PageBreakMaxLevel: cfg.Layout.PageBreakMaxLevel,
			PageTOCMaxLevel:   cfg.Layout.PageTOCMaxLevel,
		},
		page:     buildPageSettings(cfg.Page),
		footer:   footer,
		htmlOnly: htmlOnly,
	}

	if err := params.layout.Validate(); err != nil {
		return nil, err
	}
	if err := params.page.Validate(); err != nil {
		return nil, err
	}
	if err := params.footer.Validate(); err != nil {
		return nil, err
	}
	return params, nil
}

// buildPageSettings fills unset page fields with defaults.
// Returns nil when nothing is configured.
func buildPageSettings(p config.PageConfig) *wiki2pdf.PageSettings {
	if p.Size == "" && p.Orientation == "" && p.Margin == 0 {
		return nil
	}
	settings := wiki2pdf.DefaultPageSettings()
	if p.Size != "" {
		settings.Size = strings.ToLower(p.Size)
	}
	if p.Orientation != "" {
		settings.Orientation = strings.ToLower(p.Orientation)
	}
	if p.Margin != 0 {
		settings.Margin = p.Margin
	}
	return settings
}

// buildFooter returns nil when the footer has nothing to show.
// Date placeholders in the text are expanded against now.
func buildFooter(f config.FooterConfig, now time.Time) (*wiki2pdf.Footer, error) {
	if !f.PageNumber && f.Text == "" {
		return nil, nil
	}
	text, err := dateutil.Expand(f.Text, now)
	if err != nil {
		return nil, fmt.Errorf("%w: footer.text: %v", config.ErrInvalidValue, err)
	}
	return &wiki2pdf.Footer{
		Position:       strings.ToLower(f.Position),
		ShowPageNumber: f.PageNumber,
		Text:           text,
	}, nil
}

// planJobs resolves root pages and output paths.
// A page path naming an existing file is used as is; otherwise it is
// taken relative to the wiki root. An output ending in .pdf names the
// file of a single page; any other output is a directory.
func planJobs(wikiRoot string, pages []string, output string, out config.OutputConfig, htmlOnly bool) ([]pageJob, error) {
	outputFile := strings.EqualFold(filepath.Ext(output), ".pdf")
	if outputFile && len(pages) > 1 {
		return nil, fmt.Errorf("%w: %s names a file but %d pages were given", ErrOutputConflict, output, len(pages))
	}

	dir := out.Dir
	if output != "" && !outputFile {
		dir = output
	}

	jobs := make([]pageJob, 0, len(pages))
	seen := make(map[string]string, len(pages))
	for _, page := range pages {
		job := pageJob{PagePath: page, RootPage: page}

		source := filepath.Join(wikiRoot, page)
		if fileutil.FileExists(page) {
			abs, err := filepath.Abs(page)
			if err != nil {
				return nil, err
			}
			job.RootPage = abs
			source = abs
		}

		if outputFile {
			job.PDFPath = output
		} else {
			pdfPath, err := fileutil.OutputPath(source, dir, "pdf")
			if err != nil {
				return nil, err
			}
			job.PDFPath = pdfPath
		}

		if prev, ok := seen[job.PDFPath]; ok {
			return nil, fmt.Errorf("%w: %s and %s both write %s", ErrOutputConflict, prev, page, job.PDFPath)
		}
		seen[job.PDFPath] = page

		if out.HTML || htmlOnly {
			job.HTMLPath = htmlOutputPath(job.PDFPath)
		}
		jobs = append(jobs, job)
	}
	return jobs, nil
}

// htmlOutputPath swaps the PDF extension for .html.
func htmlOutputPath(pdfPath string) string {
	return strings.TrimSuffix(pdfPath, filepath.Ext(pdfPath)) + ".html"
}

// writeOutput writes data to path, creating parent directories.
func writeOutput(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), dirPermissions); err != nil {
		return fmt.Errorf("%w: creating directory: %v", ErrWriteOutput, err)
	}
	// #nosec G306 -- documents are meant to be readable
	if err := os.WriteFile(path, data, filePermissions); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteOutput, err)
	}
	return nil
}
