package render

import (
	"path/filepath"
	"strings"

	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"

	"github.com/alnah/go-wiki2pdf/internal/wiki"
)

// maxHeadingLevel is the deepest HTML heading.
const maxHeadingLevel = 6

// pageBreakStyle forces a new PDF page before a page's first heading.
const pageBreakStyle = "page-break-before: always !important;"

// pageStateKey stores the *pageState of the page being parsed.
var pageStateKey = parser.NewContextKey()

// pageState is the rendering context of exactly one page. It is created
// before the page is parsed and discarded once its HTML is written.
type pageState struct {
	graph    *wiki.Graph
	node     *wiki.PageNode
	resolver *wiki.Resolver
	encoder  ImageEncoder

	levelOffset int
	pageBreak   bool
	tocHTML     string
	idAttached  bool

	diagnostics []wiki.Diagnostic
}

// pageTransformer applies the page state to the parsed AST.
type pageTransformer struct{}

// Transform implements parser.ASTTransformer.
func (t *pageTransformer) Transform(doc *ast.Document, reader text.Reader, pc parser.Context) {
	st, ok := pc.Get(pageStateKey).(*pageState)
	if !ok {
		return
	}
	source := reader.Source()

	// Collect first, rewrite after: replacing nodes while walking would
	// skip siblings.
	var (
		headings []*ast.Heading
		links    []*ast.Link
		images   []*ast.Image
	)
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch node := n.(type) {
		case *ast.Heading:
			headings = append(headings, node)
		case *ast.Link:
			links = append(links, node)
		case *ast.Image:
			images = append(images, node)
		}
		return ast.WalkContinue, nil
	})

	for _, h := range headings {
		st.heading(h, source)
	}
	for _, l := range links {
		st.link(l)
	}
	for _, img := range images {
		st.image(img, source)
	}
}

// heading offsets the level, prepends the anchor and, on the first heading
// only, attaches the page id, page break and table of contents.
func (st *pageState) heading(h *ast.Heading, source []byte) {
	anchor := &HeadingAnchor{Name: wiki.Slug(wiki.HeadingText(h, source))}

	h.Level = min(h.Level+st.levelOffset, maxHeadingLevel)
	if first := h.FirstChild(); first != nil {
		h.InsertBefore(h, first, anchor)
	} else {
		h.AppendChild(h, anchor)
	}

	if st.idAttached {
		return
	}
	st.idAttached = true

	h.SetAttributeString("id", []byte(st.node.ID))
	if st.pageBreak {
		h.SetAttributeString("style", []byte(pageBreakStyle))
	}
	if st.tocHTML != "" {
		if parent := h.Parent(); parent != nil {
			parent.InsertAfter(parent, h, &PageTOC{HTML: st.tocHTML})
		}
	}
}

// link points known pages at their anchor and disables unknown local ones.
func (st *pageState) link(l *ast.Link) {
	dest := string(l.Destination)
	if strings.HasPrefix(dest, "#") || wiki.IsExternal(dest) {
		return
	}

	if id, ok := st.graph.Lookup(dest); ok {
		l.Destination = []byte("#" + st.graph.Node(id).ID)
		return
	}

	parent := l.Parent()
	if parent == nil {
		return
	}
	disabled := &DisabledLink{Destination: dest}
	for c := l.FirstChild(); c != nil; {
		next := c.NextSibling()
		disabled.AppendChild(disabled, c)
		c = next
	}
	parent.ReplaceChild(parent, l, disabled)
}

// image inlines local images as data URIs. External images are kept.
func (st *pageState) image(img *ast.Image, source []byte) {
	dest := string(img.Destination)
	if dest == "" || wiki.IsExternal(dest) {
		return
	}
	parent := img.Parent()
	if parent == nil {
		return
	}

	src, err := st.embed(dest)
	if err != nil {
		src = ImagePlaceholder
		st.report(wiki.Diagnostic{
			Kind:    wiki.DiagUnresolvedImage,
			Page:    st.node.Path,
			Target:  dest,
			Message: "image not embedded: " + err.Error(),
		})
	}

	parent.ReplaceChild(parent, img, &InlineImage{
		Src:   src,
		Alt:   wiki.HeadingText(img, source),
		Title: string(img.Title),
	})
}

func (st *pageState) embed(dest string) (string, error) {
	path, err := st.resolver.ResolveImage(dest, filepath.Dir(st.node.Path))
	if err != nil {
		return "", err
	}
	return st.encoder.DataURI(path)
}

func (st *pageState) report(d wiki.Diagnostic) {
	st.diagnostics = append(st.diagnostics, d)
}
