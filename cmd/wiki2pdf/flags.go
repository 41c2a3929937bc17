package main

import (
	"io"

	flag "github.com/spf13/pflag"
)

// levelUnset detects if a level flag was explicitly set.
// Since 0 is a valid level (no page breaks, no TOCs), we use an out-of-range sentinel.
const levelUnset = -1

// commonFlags holds logging and config flags.
type commonFlags struct {
	config    string
	quiet     bool
	verbose   bool
	logLevel  string
	logFormat string
}

// layoutFlags holds page tree layout flags.
type layoutFlags struct {
	pageBreakMaxLevel int
	pageTOCMaxLevel   int
}

// pageFlags holds page layout flags.
type pageFlags struct {
	size        string
	orientation string
	margin      float64
}

// footerFlags holds footer-related flags.
type footerFlags struct {
	position   string
	text       string
	pageNumber bool
}

// renderFlags holds markdown rendering flags.
type renderFlags struct {
	highlightStyle string
	rawHTML        bool
}

// outputFlags holds output mode flags.
type outputFlags struct {
	html     bool // Output HTML alongside PDF
	htmlOnly bool // Output HTML only, skip PDF
}

// convertFlags holds all flags for a conversion run.
type convertFlags struct {
	common     commonFlags
	output     string
	workers    int
	timeout    string
	title      string
	assetsDir  string
	layout     layoutFlags
	page       pageFlags
	footer     footerFlags
	render     renderFlags
	outputMode outputFlags
}

// addCommonFlags adds logging and config flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show debug logs and the page tree")
	fs.StringVar(&f.logLevel, "log-level", "", "log level: debug, info, warn, error")
	fs.StringVar(&f.logFormat, "log-format", "", "log format: pretty, json, text")
}

// addLayoutFlags adds page tree layout flags to a FlagSet.
func addLayoutFlags(fs *flag.FlagSet, f *layoutFlags) {
	fs.IntVar(&f.pageBreakMaxLevel, "page-break-max-level", levelUnset, "start a new PDF page for pages up to this tree level (default 1)")
	fs.IntVar(&f.pageTOCMaxLevel, "page-toc-max-level", levelUnset, "render [[_TOC_]] for pages up to this tree level (default 2)")
}

// addPageFlags adds page layout flags to a FlagSet.
func addPageFlags(fs *flag.FlagSet, f *pageFlags) {
	fs.StringVarP(&f.size, "page-size", "p", "", "page size: letter, a4, legal")
	fs.StringVar(&f.orientation, "orientation", "", "page orientation: portrait, landscape")
	fs.Float64Var(&f.margin, "margin", 0, "page margin in inches (0.25-3.0)")
}

// addFooterFlags adds footer flags to a FlagSet.
func addFooterFlags(fs *flag.FlagSet, f *footerFlags) {
	fs.StringVar(&f.position, "footer-position", "", "footer position: left, center, right")
	fs.StringVar(&f.text, "footer-text", "", "custom footer text; {date} and {date:FORMAT} expand")
	fs.BoolVar(&f.pageNumber, "footer-page-number", false, "show page numbers in footer")
}

// addRenderFlags adds markdown rendering flags to a FlagSet.
func addRenderFlags(fs *flag.FlagSet, f *renderFlags) {
	fs.StringVar(&f.highlightStyle, "highlight-style", "", "chroma style for code blocks (default github)")
	fs.BoolVar(&f.rawHTML, "raw-html", false, "keep raw HTML found in wiki pages")
}

// addOutputFlags adds output mode flags to a FlagSet.
func addOutputFlags(fs *flag.FlagSet, f *outputFlags) {
	fs.BoolVar(&f.html, "html", false, "output HTML alongside PDF")
	fs.BoolVar(&f.htmlOnly, "html-only", false, "output HTML only, skip PDF")
}

// parseConvertFlags parses conversion flags and returns positional args.
func parseConvertFlags(args []string, usage io.Writer) (*convertFlags, []string, error) {
	fs := flag.NewFlagSet("wiki2pdf", flag.ContinueOnError)
	fs.SetOutput(usage)
	f := &convertFlags{}

	// I/O flags
	fs.StringVarP(&f.output, "output", "o", "", "output PDF file (single page) or directory")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers (0 = auto)")
	fs.StringVarP(&f.timeout, "timeout", "t", "", "PDF generation timeout (e.g., 30s, 2m)")
	fs.StringVar(&f.title, "title", "", "document title (default wiki2pdf)")
	fs.StringVar(&f.assetsDir, "assets-dir", "", "directory holding css/ and templates/")

	// Flag groups
	addCommonFlags(fs, &f.common)
	addLayoutFlags(fs, &f.layout)
	addPageFlags(fs, &f.page)
	addFooterFlags(fs, &f.footer)
	addRenderFlags(fs, &f.render)
	addOutputFlags(fs, &f.outputMode)

	fs.Usage = func() { printUsage(usage) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	return f, fs.Args(), nil
}
