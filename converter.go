package wiki2pdf

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alnah/go-wiki2pdf/internal/assets"
	"github.com/alnah/go-wiki2pdf/internal/render"
	"github.com/alnah/go-wiki2pdf/internal/wiki"
)

// Compile-time interface implementation checks.
var (
	_ pdfConverter = (*rodConverter)(nil)
	_ pdfRenderer  = (*rodRenderer)(nil)
)

// Converter crawls a wiki from a root page, renders it as one HTML document
// and prints that document to PDF.
// Create with NewConverter(), use Convert() for conversion, and Close() when done.
type Converter struct {
	cfg          converterConfig
	logger       *slog.Logger
	stylesheets  []string
	templates    *assets.TemplateSet
	pdfConverter pdfConverter
}

// NewConverter creates a Converter with default configuration.
// Stylesheets and templates are loaded once here.
// Returns error if asset loading fails.
func NewConverter(opts ...Option) (*Converter, error) {
	c := &Converter{
		cfg:    converterConfig{timeout: defaultTimeout},
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	for _, opt := range opts {
		opt(c)
	}

	resolver, err := assets.NewAssetResolver(c.cfg.assetPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidAssetPath, err)
	}

	sheets, err := resolver.LoadStylesheets()
	if err != nil {
		return nil, fmt.Errorf("loading stylesheets: %w", err)
	}
	for _, s := range sheets {
		c.stylesheets = append(c.stylesheets, s.Content)
	}

	c.templates, err = resolver.LoadTemplateSet()
	if err != nil {
		return nil, fmt.Errorf("loading templates: %w", err)
	}

	// Create PDF converter if not injected (e.g., by tests)
	if c.pdfConverter == nil {
		c.pdfConverter = newRodConverter(c.cfg.timeout, c.logger)
	}

	return c, nil
}

// Convert crawls input.RootPage, renders the page tree and, unless
// input.HTMLOnly is set, prints it to PDF. Broken links and images do not
// fail the conversion; they are returned as diagnostics.
// Recovers from internal panics to prevent crashes from propagating to callers.
func (c *Converter) Convert(ctx context.Context, input Input) (result *ConvertResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal error: %v", r)
		}
	}()

	if err := validateInput(input); err != nil {
		return nil, err
	}

	resolver, err := wiki.NewResolver(input.WikiRoot)
	if err != nil {
		return nil, err
	}

	rootPage := input.RootPage
	if !filepath.IsAbs(rootPage) {
		rootPage = filepath.Join(resolver.Root(), rootPage)
	}

	graph, err := wiki.NewBuilder(resolver, wiki.WithLogger(c.logger)).Build(ctx, rootPage)
	if err != nil {
		return nil, err
	}

	renderer, err := render.New(resolver, c.renderOptions(input, resolver.Root()), render.WithLogger(c.logger))
	if err != nil {
		return nil, err
	}

	doc, err := renderer.Render(ctx, graph)
	if err != nil {
		return nil, fmt.Errorf("rendering HTML: %w", err)
	}

	res := &ConvertResult{
		HTML:        []byte(doc.HTML),
		Pages:       doc.Pages,
		Diagnostics: append(append([]Diagnostic(nil), graph.Diagnostics...), doc.Diagnostics...),
	}

	// Skip PDF generation if HTMLOnly mode
	if input.HTMLOnly {
		return res, nil
	}

	pdfBytes, err := c.pdfConverter.ToPDF(ctx, doc.HTML, &pdfOptions{
		Footer: input.Footer,
		Page:   input.Page,
	})
	if err != nil {
		return nil, fmt.Errorf("converting to PDF: %w", err)
	}

	res.PDF = pdfBytes
	return res, nil
}

// renderOptions merges the converter's assets with the per-input settings.
func (c *Converter) renderOptions(input Input, wikiRoot string) render.Options {
	layout := input.Layout
	if layout == nil {
		layout = DefaultLayout()
	}
	title := input.Title
	if title == "" {
		title = DefaultTitle
	}

	styles := append([]string(nil), c.stylesheets...)
	if css, ok := c.readCustomCSS(wikiRoot); ok {
		styles = append(styles, css)
	}

	return render.Options{
		Title:             title,
		PageBreakMaxLevel: layout.PageBreakMaxLevel,
		PageTOCMaxLevel:   layout.PageTOCMaxLevel,
		Stylesheets:       styles,
		Header:            c.templates.Header,
		Footer:            c.templates.Footer,
		HighlightStyle:    c.cfg.highlightStyle,
		RawHTML:           c.cfg.rawHTML,
	}
}

// readCustomCSS returns the wiki's own custom.css, if any.
func (c *Converter) readCustomCSS(wikiRoot string) (string, bool) {
	path := filepath.Join(wikiRoot, CustomCSSFile)
	content, err := os.ReadFile(path) // #nosec G304 -- fixed name inside the wiki root
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			c.logger.Warn("custom stylesheet ignored", "path", path, "error", err)
		}
		return "", false
	}
	c.logger.Debug("custom stylesheet applied", "path", path)
	return string(content), true
}

// Close releases resources (headless Chrome browser).
func (c *Converter) Close() error {
	if c.pdfConverter != nil {
		return c.pdfConverter.Close()
	}
	return nil
}

// validateInput checks that required fields are present and valid.
//
// This is a TRUST BOUNDARY for direct library users who build Input manually.
// CLI users have their settings validated earlier by Config.Validate() at load time.
func validateInput(input Input) error {
	if input.WikiRoot == "" {
		return ErrNoWikiRoot
	}
	if input.RootPage == "" {
		return ErrNoRootPage
	}
	if err := input.Layout.Validate(); err != nil {
		return err
	}
	if err := input.Page.Validate(); err != nil {
		return err
	}
	return input.Footer.Validate()
}
