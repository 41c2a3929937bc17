package wiki2pdf

import (
	"context"
	"fmt"
	"html"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"github.com/alnah/go-wiki2pdf/internal/fileutil"
	"github.com/alnah/go-wiki2pdf/internal/process"
)

// pdfConverter abstracts HTML to PDF conversion to allow different backends.
type pdfConverter interface {
	ToPDF(ctx context.Context, htmlContent string, opts *pdfOptions) ([]byte, error)
	Close() error
}

// pdfRenderer abstracts PDF rendering from an HTML file to enable testing without a browser.
type pdfRenderer interface {
	RenderFromFile(ctx context.Context, filePath string, opts *pdfOptions) ([]byte, error)
}

// pdfOptions holds options for PDF generation.
type pdfOptions struct {
	Footer *Footer
	Page   *PageSettings
}

// Paper dimensions in inches, portrait.
var paperSizes = map[string][2]float64{
	PageSizeLetter: {8.5, 11},
	PageSizeA4:     {8.27, 11.69},
	PageSizeLegal:  {8.5, 14},
}

// footerMargin is the extra bottom margin reserved for the footer, in inches.
const footerMargin = 0.25

// footerFontFamily matches the body font of the embedded stylesheet.
const footerFontFamily = `"Helvetica Neue", Helvetica, Arial, sans-serif`

// rodRenderer implements pdfRenderer using go-rod.
// Rod automatically downloads Chromium on first run if not found.
type rodRenderer struct {
	mu       sync.Mutex
	browser  *rod.Browser
	launcher *launcher.Launcher
	timeout  time.Duration
	logger   *slog.Logger
}

// newRodRenderer creates a rodRenderer with the given timeout.
func newRodRenderer(timeout time.Duration, logger *slog.Logger) *rodRenderer {
	return &rodRenderer{timeout: timeout, logger: logger}
}

// ensureBrowser lazily launches and connects to the browser.
func (r *rodRenderer) ensureBrowser() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.browser != nil {
		return nil
	}

	l := launcher.New()

	// Use pre-installed browser if specified (Docker/containerized environments)
	if bin := os.Getenv("ROD_BROWSER_BIN"); bin != "" {
		l = l.Bin(bin)
	}

	// NoSandbox required for CI and containerized environments
	if os.Getenv("CI") == "true" || os.Getenv("ROD_NO_SANDBOX") == "1" || os.Getenv("ROD_BROWSER_BIN") != "" {
		l = l.NoSandbox(true)
	}
	u, err := l.Launch()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		l.Kill()
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}

	r.browser = browser
	r.launcher = l
	r.logger.Debug("browser started", "pid", l.PID())
	return nil
}

// Close shuts the browser down and kills whatever is left of its process
// group.
func (r *rodRenderer) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.browser == nil {
		return nil
	}

	err := r.browser.Close()
	if r.launcher != nil {
		process.KillProcessGroup(r.launcher.PID())
		r.launcher.Kill()
		r.launcher.Cleanup()
	}
	r.browser = nil
	r.launcher = nil
	return err
}

// RenderFromFile opens a local HTML file in headless Chrome and renders it to PDF.
// Returns explicit errors instead of panicking when browser operations fail.
func (r *rodRenderer) RenderFromFile(ctx context.Context, filePath string, opts *pdfOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := r.ensureBrowser(); err != nil {
		return nil, err
	}

	page, err := r.browser.Page(proto.TargetCreateTarget{URL: "file://" + filePath})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageCreate, err)
	}
	defer func() { _ = page.Close() }()

	// Wait for page to load with timeout from context or default
	timeout := r.timeout
	if deadline, ok := ctx.Deadline(); ok {
		timeout = time.Until(deadline)
		if timeout <= 0 {
			return nil, context.DeadlineExceeded
		}
	}

	if err := page.Timeout(timeout).WaitLoad(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageLoad, err)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	reader, err := page.Context(ctx).PDF(buildPDFOptions(opts))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPDFGeneration, err)
	}

	pdfBuf, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("%w: reading PDF stream: %v", ErrPDFGeneration, err)
	}

	return pdfBuf, nil
}

// buildPDFOptions constructs proto.PagePrintToPDF from page and footer settings.
func buildPDFOptions(opts *pdfOptions) *proto.PagePrintToPDF {
	page := DefaultPageSettings()
	var footer *Footer
	if opts != nil {
		if opts.Page != nil {
			page = opts.Page
		}
		footer = opts.Footer
	}

	width, height := paperDimensions(page)
	marginBottom := page.Margin
	hasFooter := footer != nil && (footer.ShowPageNumber || footer.Text != "")
	if hasFooter {
		marginBottom += footerMargin
	}

	pdfOpts := &proto.PagePrintToPDF{
		PaperWidth:      floatPtr(width),
		PaperHeight:     floatPtr(height),
		MarginTop:       floatPtr(page.Margin),
		MarginBottom:    floatPtr(marginBottom),
		MarginLeft:      floatPtr(page.Margin),
		MarginRight:     floatPtr(page.Margin),
		PrintBackground: true,
	}

	if hasFooter {
		pdfOpts.DisplayHeaderFooter = true
		pdfOpts.HeaderTemplate = "<span></span>" // Empty header
		pdfOpts.FooterTemplate = buildFooterTemplate(footer)
	}

	return pdfOpts
}

// paperDimensions returns width and height in inches, swapped for landscape.
func paperDimensions(p *PageSettings) (width, height float64) {
	dims, ok := paperSizes[strings.ToLower(p.Size)]
	if !ok {
		dims = paperSizes[PageSizeLetter]
	}
	if strings.EqualFold(p.Orientation, OrientationLandscape) {
		return dims[1], dims[0]
	}
	return dims[0], dims[1]
}

// buildFooterTemplate generates an HTML template for Chrome's native footer.
// Page numbers use Chrome's pageNumber/totalPages classes.
func buildFooterTemplate(data *Footer) string {
	if data == nil {
		return "<span></span>"
	}

	var parts []string
	if data.Text != "" {
		parts = append(parts, html.EscapeString(data.Text))
	}
	if data.ShowPageNumber {
		parts = append(parts, `<span class="pageNumber"></span>/<span class="totalPages"></span>`)
	}
	if len(parts) == 0 {
		return "<span></span>"
	}

	textAlign := "right"
	switch strings.ToLower(data.Position) {
	case "left":
		textAlign = "left"
	case "center":
		textAlign = "center"
	}

	return fmt.Sprintf(`<div style="font-size: 10px; font-family: %s; color: #aaa; width: 100%%; text-align: %s; padding: 0 0.5in;">%s</div>`,
		footerFontFamily, textAlign, strings.Join(parts, " - "))
}

// floatPtr returns a pointer to a float64 value.
func floatPtr(v float64) *float64 {
	return &v
}

// rodConverter converts HTML to PDF using headless Chrome via go-rod.
type rodConverter struct {
	renderer pdfRenderer
	closer   io.Closer
}

// newRodConverter creates a rodConverter with production renderer.
func newRodConverter(timeout time.Duration, logger *slog.Logger) *rodConverter {
	r := newRodRenderer(timeout, logger)
	return &rodConverter{renderer: r, closer: r}
}

// ToPDF writes the document to a temporary file, so relative resources
// resolve, and prints it.
func (c *rodConverter) ToPDF(ctx context.Context, htmlContent string, opts *pdfOptions) ([]byte, error) {
	tmpPath, cleanup, err := fileutil.WriteTempFile(htmlContent, "html")
	if err != nil {
		return nil, err
	}
	defer cleanup()

	return c.renderer.RenderFromFile(ctx, tmpPath, opts)
}

// Close releases browser resources.
func (c *rodConverter) Close() error {
	if c.closer != nil {
		return c.closer.Close()
	}
	return nil
}
