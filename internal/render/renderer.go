package render

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"io"
	"log/slog"
	"os"
	"strings"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	meta "github.com/yuin/goldmark-meta"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"

	"github.com/alnah/go-wiki2pdf/internal/wiki"
)

// Default layout limits.
const (
	DefaultPageBreakMaxLevel = 1
	DefaultPageTOCMaxLevel   = 2
	DefaultHighlightStyle    = "github"
)

// Sentinel errors for rendering.
var (
	ErrTemplate   = errors.New("invalid document template")
	ErrPageRender = errors.New("page rendering failed")
)

// Options control the assembled document.
type Options struct {
	Title             string
	PageBreakMaxLevel int      // pages at this level or above start on a new PDF page
	PageTOCMaxLevel   int      // pages at this level or above get their TOC rendered
	Stylesheets       []string // CSS contents, in order
	Header            string   // html/template source
	Footer            string   // html/template source
	HighlightStyle    string   // chroma style name
	RawHTML           bool     // pass raw HTML in pages through
}

// Document is the result of rendering a whole wiki graph.
type Document struct {
	HTML        string
	Pages       int
	Diagnostics []wiki.Diagnostic
}

// Renderer turns a wiki graph into one HTML document.
type Renderer struct {
	opts     Options
	resolver *wiki.Resolver
	encoder  ImageEncoder
	logger   *slog.Logger
	readFile func(string) ([]byte, error)

	md        goldmark.Markdown
	header    *template.Template
	footer    *template.Template
	chromaCSS string
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithLogger sets the logger used for rendering diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(r *Renderer) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithImageEncoder replaces the data URI encoder.
func WithImageEncoder(e ImageEncoder) Option {
	return func(r *Renderer) {
		if e != nil {
			r.encoder = e
		}
	}
}

// WithReadFile replaces the function used to read page sources.
func WithReadFile(fn func(string) ([]byte, error)) Option {
	return func(r *Renderer) {
		if fn != nil {
			r.readFile = fn
		}
	}
}

// New creates a Renderer. The templates are parsed once here.
func New(resolver *wiki.Resolver, opts Options, options ...Option) (*Renderer, error) {
	if opts.HighlightStyle == "" {
		opts.HighlightStyle = DefaultHighlightStyle
	}

	r := &Renderer{
		opts:     opts,
		resolver: resolver,
		encoder:  DataURIEncoder{},
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		readFile: os.ReadFile,
	}
	for _, o := range options {
		o(r)
	}

	var err error
	if r.header, err = parseTemplate("header", opts.Header); err != nil {
		return nil, err
	}
	if r.footer, err = parseTemplate("footer", opts.Footer); err != nil {
		return nil, err
	}
	if r.chromaCSS, err = chromaStylesheet(opts.HighlightStyle); err != nil {
		return nil, err
	}

	rendererOpts := []renderer.Option{html.WithXHTML()}
	if opts.RawHTML {
		rendererOpts = append(rendererOpts, html.WithUnsafe())
	}
	r.md = goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			meta.Meta,
			highlighting.NewHighlighting(
				highlighting.WithStyle(opts.HighlightStyle),
				highlighting.WithGuessLanguage(true),
				highlighting.WithFormatOptions(chromahtml.WithClasses(true)),
			),
		),
		goldmark.WithParserOptions(
			parser.WithASTTransformers(util.Prioritized(&pageTransformer{}, 100)),
		),
		goldmark.WithRendererOptions(rendererOpts...),
	)
	r.md.Renderer().AddOptions(renderer.WithNodeRenderers(
		util.Prioritized(&nodeRenderer{}, 100),
	))

	return r, nil
}

func parseTemplate(name, src string) (*template.Template, error) {
	if strings.TrimSpace(src) == "" {
		return nil, fmt.Errorf("%w: %s is empty", ErrTemplate, name)
	}
	tmpl, err := template.New(name).Parse(src)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrTemplate, name, err)
	}
	return tmpl, nil
}

// chromaStylesheet generates the CSS for class-based code highlighting.
func chromaStylesheet(name string) (string, error) {
	var buf bytes.Buffer
	formatter := chromahtml.New(chromahtml.WithClasses(true))
	if err := formatter.WriteCSS(&buf, styles.Get(name)); err != nil {
		return "", fmt.Errorf("generating highlight stylesheet: %w", err)
	}
	return buf.String(), nil
}

// headerData is the value the header and footer templates are executed with.
type headerData struct {
	Title  string
	Styles []template.CSS
}

// Render writes every page of g in preorder between the header and footer.
func (r *Renderer) Render(ctx context.Context, g *wiki.Graph) (*Document, error) {
	var buf bytes.Buffer
	data := r.templateData()
	if err := r.header.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("%w: header: %v", ErrTemplate, err)
	}

	doc := &Document{}
	for _, node := range g.Preorder() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		page, diags, err := r.RenderPage(g, node)
		doc.Diagnostics = append(doc.Diagnostics, diags...)
		if err != nil {
			return nil, err
		}
		buf.WriteString(page)
		doc.Pages++
	}

	if err := r.footer.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("%w: footer: %v", ErrTemplate, err)
	}

	doc.HTML = buf.String()
	r.logger.Info("document rendered", "pages", doc.Pages, "bytes", buf.Len(), "diagnostics", len(doc.Diagnostics))
	return doc, nil
}

func (r *Renderer) templateData() headerData {
	data := headerData{Title: r.opts.Title}
	for _, css := range r.opts.Stylesheets {
		data.Styles = append(data.Styles, sanitizeCSS(css))
	}
	data.Styles = append(data.Styles, sanitizeCSS(r.chromaCSS))
	return data
}

// sanitizeCSS keeps stylesheet content from closing its <style> element.
func sanitizeCSS(css string) template.CSS {
	return template.CSS(strings.ReplaceAll(css, "</", `<\/`)) // #nosec G203 -- closing tags escaped above
}

// RenderPage renders one page with its own page state. An unreadable page
// renders as nothing and is reported as a diagnostic.
func (r *Renderer) RenderPage(g *wiki.Graph, node *wiki.PageNode) (string, []wiki.Diagnostic, error) {
	st := &pageState{
		graph:       g,
		node:        node,
		resolver:    r.resolver,
		encoder:     r.encoder,
		levelOffset: node.Level,
		pageBreak:   node.Level <= r.opts.PageBreakMaxLevel,
	}

	raw, err := r.readFile(node.Path)
	if err != nil {
		st.report(wiki.Diagnostic{Kind: wiki.DiagUnreadablePage, Page: node.Path, Message: err.Error()})
		r.logDiagnostics(st.diagnostics)
		return "", st.diagnostics, nil
	}

	if node.HasTOC && node.Level <= r.opts.PageTOCMaxLevel {
		tocHTML, anomalies := RenderTOC(node.TOC)
		st.tocHTML = tocHTML
		for _, a := range anomalies {
			st.report(wiki.Diagnostic{Kind: wiki.DiagTOCAnomaly, Page: node.Path, Message: a})
		}
	}

	source := []byte(wiki.NormalizeLinks(string(raw)))
	pc := parser.NewContext()
	pc.Set(pageStateKey, st)
	root := r.md.Parser().Parse(text.NewReader(source), parser.WithContext(pc))

	var buf bytes.Buffer
	if err := r.md.Renderer().Render(&buf, source, root); err != nil {
		return "", st.diagnostics, fmt.Errorf("%w: %s: %v", ErrPageRender, node.Path, err)
	}
	r.logDiagnostics(st.diagnostics)
	return buf.String(), st.diagnostics, nil
}

func (r *Renderer) logDiagnostics(diags []wiki.Diagnostic) {
	for _, d := range diags {
		r.logger.Warn(d.Message, "kind", string(d.Kind), "page", d.Page, "target", d.Target)
	}
}
