package render

import (
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/util"
)

// Node kinds added to the goldmark AST by the page transformer.
var (
	KindHeadingAnchor = ast.NewNodeKind("HeadingAnchor")
	KindPageTOC       = ast.NewNodeKind("PageTOC")
	KindDisabledLink  = ast.NewNodeKind("DisabledLink")
	KindInlineImage   = ast.NewNodeKind("InlineImage")
)

// HeadingAnchor is the named anchor placed at the start of every heading.
type HeadingAnchor struct {
	ast.BaseInline
	Name string
}

// Kind implements ast.Node.
func (n *HeadingAnchor) Kind() ast.NodeKind { return KindHeadingAnchor }

// Dump implements ast.Node.
func (n *HeadingAnchor) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, map[string]string{"Name": n.Name}, nil)
}

// PageTOC holds the pre-rendered table of contents of a page.
type PageTOC struct {
	ast.BaseBlock
	HTML string
}

// Kind implements ast.Node.
func (n *PageTOC) Kind() ast.NodeKind { return KindPageTOC }

// Dump implements ast.Node.
func (n *PageTOC) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, nil, nil)
}

// DisabledLink replaces a link to a page that could not be found. Its
// children are the original link text.
type DisabledLink struct {
	ast.BaseInline
	Destination string
}

// Kind implements ast.Node.
func (n *DisabledLink) Kind() ast.NodeKind { return KindDisabledLink }

// Dump implements ast.Node.
func (n *DisabledLink) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, map[string]string{"Destination": n.Destination}, nil)
}

// InlineImage is an image whose source was resolved by the renderer,
// usually to a data URI.
type InlineImage struct {
	ast.BaseInline
	Src   string
	Alt   string
	Title string
}

// Kind implements ast.Node.
func (n *InlineImage) Kind() ast.NodeKind { return KindInlineImage }

// Dump implements ast.Node.
func (n *InlineImage) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, map[string]string{"Alt": n.Alt}, nil)
}

// nodeRenderer writes the HTML of the nodes above.
type nodeRenderer struct{}

// RegisterFuncs implements renderer.NodeRenderer.
func (r *nodeRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(KindHeadingAnchor, r.renderHeadingAnchor)
	reg.Register(KindPageTOC, r.renderPageTOC)
	reg.Register(KindDisabledLink, r.renderDisabledLink)
	reg.Register(KindInlineImage, r.renderInlineImage)
}

func (r *nodeRenderer) renderHeadingAnchor(w util.BufWriter, _ []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	n := node.(*HeadingAnchor)
	name := util.EscapeHTML([]byte(n.Name))
	_, _ = w.WriteString(`<a name="`)
	_, _ = w.Write(name)
	_, _ = w.WriteString(`" class="anchor" href="#`)
	_, _ = w.Write(name)
	_, _ = w.WriteString(`"><span class="header-link"></span></a>`)
	return ast.WalkContinue, nil
}

func (r *nodeRenderer) renderPageTOC(w util.BufWriter, _ []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if entering {
		_, _ = w.WriteString(node.(*PageTOC).HTML)
		_ = w.WriteByte('\n')
	}
	return ast.WalkContinue, nil
}

func (r *nodeRenderer) renderDisabledLink(w util.BufWriter, _ []byte, _ ast.Node, entering bool) (ast.WalkStatus, error) {
	if entering {
		_, _ = w.WriteString(`<span class="disabled-link">`)
	} else {
		_, _ = w.WriteString(`</span>`)
	}
	return ast.WalkContinue, nil
}

func (r *nodeRenderer) renderInlineImage(w util.BufWriter, _ []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	n := node.(*InlineImage)
	_, _ = w.WriteString(`<img alt="`)
	_, _ = w.Write(util.EscapeHTML([]byte(n.Alt)))
	_, _ = w.WriteString(`" src="`)
	_, _ = w.Write(util.EscapeHTML([]byte(n.Src)))
	_ = w.WriteByte('"')
	if n.Title != "" {
		_, _ = w.WriteString(` title="`)
		_, _ = w.Write(util.EscapeHTML([]byte(n.Title)))
		_ = w.WriteByte('"')
	}
	_, _ = w.WriteString(` />`)
	return ast.WalkSkipChildren, nil
}
