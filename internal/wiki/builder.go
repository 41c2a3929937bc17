package wiki

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/yuin/goldmark"
	meta "github.com/yuin/goldmark-meta"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

// Sentinel errors for graph building.
var (
	ErrNoRootPage     = errors.New("no root page configured")
	ErrRootUnreadable = errors.New("root page cannot be read")
)

// Builder crawls a wiki from its root page and builds the page tree.
// A Builder holds no per-crawl state and may be reused.
type Builder struct {
	resolver *Resolver
	md       goldmark.Markdown
	logger   *slog.Logger
	readFile func(string) ([]byte, error)
}

// BuilderOption configures a Builder.
type BuilderOption func(*Builder)

// WithLogger sets the logger receiving crawl diagnostics.
func WithLogger(l *slog.Logger) BuilderOption {
	return func(b *Builder) {
		if l != nil {
			b.logger = l
		}
	}
}

// WithReadFile replaces os.ReadFile, for tests.
func WithReadFile(fn func(string) ([]byte, error)) BuilderOption {
	return func(b *Builder) {
		b.readFile = fn
	}
}

// NewBuilder creates a Builder resolving links with resolver.
func NewBuilder(resolver *Resolver, opts ...BuilderOption) *Builder {
	b := &Builder{
		resolver: resolver,
		md: goldmark.New(
			goldmark.WithExtensions(
				extension.GFM,
				meta.Meta,
			),
		),
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		readFile: os.ReadFile,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// crawl holds the state of one Build call.
type crawl struct {
	ctx   context.Context
	graph *Graph
}

// Build crawls every page reachable from rootPath and returns the tree.
// Only a missing or unreadable root page is fatal; broken links become
// diagnostics on the returned Graph.
func (b *Builder) Build(ctx context.Context, rootPath string) (*Graph, error) {
	if rootPath == "" {
		return nil, ErrNoRootPage
	}

	absRoot, err := filepath.Abs(rootPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRootUnreadable, err)
	}
	if _, err := b.readFile(absRoot); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRootUnreadable, err)
	}

	g := NewGraph(absRoot, absRoot)
	name := trimMarkdownExt(filepath.Base(absRoot))
	g.Alias(name, 0)
	g.Alias(PageTarget(name), 0)
	g.Alias(filepath.Base(absRoot), 0)

	c := &crawl{ctx: ctx, graph: g}
	if err := b.visit(c, 0); err != nil {
		return nil, err
	}

	if b.logger.Enabled(ctx, slog.LevelDebug) {
		for _, n := range g.Preorder() {
			b.logger.Debug("page", "node", n.String())
		}
	}
	b.logger.Info("wiki crawled", "pages", g.Len(), "diagnostics", len(g.Diagnostics))

	return g, nil
}

// visit parses one page, records its outline and follows its links.
// Newly found pages are visited immediately (depth-first).
func (b *Builder) visit(c *crawl, id NodeID) error {
	if err := c.ctx.Err(); err != nil {
		return err
	}

	node := c.graph.Node(id)
	raw, err := b.readFile(node.Path)
	if err != nil {
		b.diagnose(c.graph, Diagnostic{
			Kind:    DiagUnreadablePage,
			Page:    node.Path,
			Target:  node.Href,
			Message: err.Error(),
		})
		return nil
	}

	node.HasTOC = HasTOCPlaceholder(string(raw))
	source := []byte(NormalizeLinks(string(raw)))

	pc := parser.NewContext()
	doc := b.md.Parser().Parse(text.NewReader(source), parser.WithContext(pc))

	headingLevel := 0
	walkErr := ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch t := n.(type) {
		case *ast.Heading:
			txt := HeadingText(t, source)
			node.TOC = append(node.TOC, TOCEntry{Level: t.Level, Text: txt, Anchor: Slug(txt)})
			// First heading, replaced by the first H1 if it comes later.
			if headingLevel != 1 && (headingLevel == 0 || t.Level == 1) {
				node.Heading = txt
				headingLevel = t.Level
			}
		case *ast.Link:
			if err := b.follow(c, id, string(t.Destination)); err != nil {
				return ast.WalkStop, err
			}
		}
		return ast.WalkContinue, nil
	})
	if walkErr != nil {
		return walkErr
	}

	if node.Heading == "" {
		if title, ok := meta.Get(pc)["title"].(string); ok {
			node.Heading = title
		}
	}
	return nil
}

// follow handles one link found on page from.
func (b *Builder) follow(c *crawl, from NodeID, dest string) error {
	if strings.HasPrefix(dest, "#") || IsExternal(dest) {
		return nil
	}
	g := c.graph

	if id, ok := g.Lookup(dest); ok {
		g.Node(from).addLink(id)
		b.relax(g, from, id)
		return nil
	}

	page := g.Node(from)
	path, err := b.resolver.ResolvePage(dest)
	if err != nil {
		kind := DiagUnresolvedLink
		if errors.Is(err, ErrAmbiguous) {
			kind = DiagAmbiguousLink
		}
		b.diagnose(g, Diagnostic{Kind: kind, Page: page.Path, Target: dest, Message: err.Error()})
		return nil
	}

	if id, ok := g.LookupPath(path); ok {
		g.Alias(dest, id)
		page.addLink(id)
		b.relax(g, from, id)
		return nil
	}

	id, err := g.Add(dest, path, from)
	if err != nil {
		return err
	}
	page.addLink(id)
	b.logger.Debug("page discovered", "href", dest, "path", path, "level", g.Node(id).Level)

	return b.visit(c, id)
}

// edge is a link from one page to another.
type edge struct {
	from, to NodeID
}

// relax moves to under from when that shortens its distance to the root.
// A move lowers the level of the whole subtree, so the links leaving the
// subtree are relaxed again until nothing changes. Every move strictly
// lowers a non-negative level, which bounds the work.
func (b *Builder) relax(g *Graph, from, to NodeID) {
	queue := []edge{{from: from, to: to}}
	for len(queue) > 0 {
		e := queue[0]
		queue = queue[1:]

		src, dst := g.Node(e.from), g.Node(e.to)
		if src.Level+1 >= dst.Level {
			continue
		}

		oldLevel := dst.Level
		if err := g.Reparent(e.to, e.from); err != nil {
			b.logger.Debug("re-parenting skipped", "href", dst.Href, "error", err)
			continue
		}
		b.logger.Debug("page re-parented",
			"href", dst.Href, "parent", src.Href, "from_level", oldLevel, "to_level", dst.Level)

		for _, id := range g.Subtree(e.to) {
			for _, l := range g.Node(id).links {
				queue = append(queue, edge{from: id, to: l})
			}
		}
	}
}

// diagnose logs and records a non-fatal problem.
func (b *Builder) diagnose(g *Graph, d Diagnostic) {
	b.logger.Warn(string(d.Kind), "page", d.Page, "target", d.Target, "error", d.Message)
	g.addDiagnostic(d)
}
