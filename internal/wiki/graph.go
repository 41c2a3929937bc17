package wiki

import (
	"errors"
	"fmt"
)

// Sentinel errors for graph mutation.
var (
	ErrDuplicateHref = errors.New("href already registered")
	ErrUnknownNode   = errors.New("unknown node")
	ErrCycle         = errors.New("re-parenting would create a cycle")
)

// DiagnosticKind classifies a non-fatal problem found while building or
// rendering a document.
type DiagnosticKind string

// Diagnostic kinds.
const (
	DiagUnresolvedLink  DiagnosticKind = "unresolved-link"
	DiagAmbiguousLink   DiagnosticKind = "ambiguous-link"
	DiagUnresolvedImage DiagnosticKind = "unresolved-image"
	DiagTOCAnomaly      DiagnosticKind = "toc-anomaly"
	DiagUnreadablePage  DiagnosticKind = "unreadable-page"
)

// Diagnostic records one absorbed failure.
type Diagnostic struct {
	Kind    DiagnosticKind
	Page    string // path of the page the problem was found in
	Target  string // link, image or heading concerned
	Message string
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s: %s: %q: %s", d.Kind, d.Page, d.Target, d.Message)
}

// Graph owns every PageNode of one conversion and indexes them by href.
// Nodes are never removed; only their placement in the tree changes.
type Graph struct {
	nodes   []*PageNode
	byHref  map[string]NodeID
	aliases map[string]NodeID
	byPath  map[string]NodeID

	Diagnostics []Diagnostic
}

// NewGraph creates a graph holding only the root page.
func NewGraph(rootHref, rootPath string) *Graph {
	g := &Graph{
		byHref:  make(map[string]NodeID),
		aliases: make(map[string]NodeID),
		byPath:  make(map[string]NodeID),
	}
	root := &PageNode{
		Href:   rootHref,
		Path:   rootPath,
		ID:     PageID(rootPath),
		Parent: NoParent,
	}
	g.nodes = append(g.nodes, root)
	g.byHref[rootHref] = 0
	g.byPath[rootPath] = 0
	return g
}

// Root returns the root page.
func (g *Graph) Root() *PageNode {
	return g.nodes[0]
}

// Node returns the page with the given id, or nil.
func (g *Graph) Node(id NodeID) *PageNode {
	if id < 0 || int(id) >= len(g.nodes) {
		return nil
	}
	return g.nodes[id]
}

// Len returns the number of distinct pages.
func (g *Graph) Len() int {
	return len(g.nodes)
}

// Lookup finds the page registered under href, directly or as an alias.
func (g *Graph) Lookup(href string) (NodeID, bool) {
	if id, ok := g.byHref[href]; ok {
		return id, true
	}
	id, ok := g.aliases[href]
	return id, ok
}

// LookupPath finds the page whose source is path.
func (g *Graph) LookupPath(path string) (NodeID, bool) {
	id, ok := g.byPath[path]
	return id, ok
}

// Add creates a page under parent and registers it by href and path.
// The new page's level is parent's level + 1.
func (g *Graph) Add(href, path string, parent NodeID) (NodeID, error) {
	if _, ok := g.Lookup(href); ok {
		return 0, fmt.Errorf("%w: %q", ErrDuplicateHref, href)
	}
	p := g.Node(parent)
	if p == nil {
		return 0, fmt.Errorf("%w: parent %d", ErrUnknownNode, parent)
	}

	id := NodeID(len(g.nodes))
	g.nodes = append(g.nodes, &PageNode{
		Href:   href,
		Path:   path,
		ID:     PageID(path),
		Level:  p.Level + 1,
		Parent: parent,
	})
	p.Children = append(p.Children, id)
	g.byHref[href] = id
	g.byPath[path] = id
	return id, nil
}

// Alias registers another href for an existing page. Aliases make links
// spelled differently ("Call-Log", "call-log") land on the same page.
func (g *Graph) Alias(href string, id NodeID) {
	if _, ok := g.Lookup(href); ok {
		return
	}
	if g.Node(id) == nil {
		return
	}
	g.aliases[href] = id
}

// Reparent detaches id from its parent and appends it to newParent's
// children, then recomputes the level of the whole moved subtree.
func (g *Graph) Reparent(id, newParent NodeID) error {
	n, p := g.Node(id), g.Node(newParent)
	if n == nil || p == nil {
		return fmt.Errorf("%w: %d -> %d", ErrUnknownNode, id, newParent)
	}
	if n.IsRoot() {
		return fmt.Errorf("%w: cannot move the root", ErrCycle)
	}
	if g.isAncestor(id, newParent) {
		return fmt.Errorf("%w: %q under %q", ErrCycle, n.Href, p.Href)
	}

	g.nodes[n.Parent].removeChild(id)
	n.Parent = newParent
	p.Children = append(p.Children, id)
	g.propagateLevels(id)
	return nil
}

// isAncestor reports whether anc is desc or one of its ancestors.
func (g *Graph) isAncestor(anc, desc NodeID) bool {
	for cur := desc; cur != NoParent; cur = g.nodes[cur].Parent {
		if cur == anc {
			return true
		}
	}
	return false
}

// propagateLevels sets id's level from its parent and recurses into the subtree.
func (g *Graph) propagateLevels(id NodeID) {
	n := g.nodes[id]
	if n.Parent != NoParent {
		n.Level = g.nodes[n.Parent].Level + 1
	}
	for _, c := range n.Children {
		g.propagateLevels(c)
	}
}

// Subtree returns id and all its descendants in preorder.
func (g *Graph) Subtree(id NodeID) []NodeID {
	var out []NodeID
	g.walk(id, func(n NodeID) { out = append(out, n) })
	return out
}

// Preorder returns every page in document order: each page immediately
// followed by its subtree, children in stored order.
func (g *Graph) Preorder() []*PageNode {
	out := make([]*PageNode, 0, len(g.nodes))
	g.walk(0, func(id NodeID) { out = append(out, g.nodes[id]) })
	return out
}

func (g *Graph) walk(id NodeID, visit func(NodeID)) {
	visit(id)
	for _, c := range g.nodes[id].Children {
		g.walk(c, visit)
	}
}

// addDiagnostic appends a non-fatal problem.
func (g *Graph) addDiagnostic(d Diagnostic) {
	g.Diagnostics = append(g.Diagnostics, d)
}
