package wiki

import (
	"errors"
	"slices"
	"testing"
)

// hrefs lists the hrefs of nodes in order.
func hrefs(nodes []*PageNode) []string {
	out := make([]string, len(nodes))
	for i, n := range nodes {
		out[i] = n.Href
	}
	return out
}

func mustAdd(t *testing.T, g *Graph, href string, parent NodeID) NodeID {
	t.Helper()
	id, err := g.Add(href, "/wiki/"+href+".md", parent)
	if err != nil {
		t.Fatalf("Add(%q) error = %v", href, err)
	}
	return id
}

func TestGraph_Add(t *testing.T) {
	t.Parallel()

	g := NewGraph("Home", "/wiki/Home.md")
	a := mustAdd(t, g, "A", 0)
	b := mustAdd(t, g, "B", a)

	if g.Len() != 3 {
		t.Errorf("Len() = %d, want 3", g.Len())
	}
	if got := g.Node(b).Level; got != 2 {
		t.Errorf("B level = %d, want 2", got)
	}
	if got := g.Node(b).ID; got != "b" {
		t.Errorf("B id = %q, want %q", got, "b")
	}
	if !g.Root().IsRoot() || g.Node(a).IsRoot() {
		t.Error("IsRoot() wrong")
	}

	if _, err := g.Add("A", "/wiki/Other.md", 0); !errors.Is(err, ErrDuplicateHref) {
		t.Errorf("Add(duplicate) error = %v, want ErrDuplicateHref", err)
	}
	if _, err := g.Add("C", "/wiki/C.md", 42); !errors.Is(err, ErrUnknownNode) {
		t.Errorf("Add(unknown parent) error = %v, want ErrUnknownNode", err)
	}
	if g.Node(-1) != nil || g.Node(99) != nil {
		t.Error("Node() out of range should be nil")
	}
}

func TestGraph_Alias(t *testing.T) {
	t.Parallel()

	g := NewGraph("Home", "/wiki/Home.md")
	a := mustAdd(t, g, "Call-Log", 0)

	g.Alias("call-log", a)
	g.Alias("Call-Log", 0) // already registered, ignored
	g.Alias("ghost", 7)    // unknown node, ignored

	if id, ok := g.Lookup("call-log"); !ok || id != a {
		t.Errorf("Lookup(alias) = %d, %v, want %d, true", id, ok, a)
	}
	if id, _ := g.Lookup("Call-Log"); id != a {
		t.Errorf("Lookup(Call-Log) = %d, want %d", id, a)
	}
	if _, ok := g.Lookup("ghost"); ok {
		t.Error("Lookup(ghost) found a node")
	}
	if g.Len() != 2 {
		t.Errorf("Len() = %d, aliases must not create nodes", g.Len())
	}
	if id, ok := g.LookupPath("/wiki/Call-Log.md"); !ok || id != a {
		t.Errorf("LookupPath() = %d, %v", id, ok)
	}
}

func TestGraph_Reparent(t *testing.T) {
	t.Parallel()

	g := NewGraph("R", "/wiki/R.md")
	a := mustAdd(t, g, "A", 0)
	b := mustAdd(t, g, "B", a)
	c := mustAdd(t, g, "C", b)
	d := mustAdd(t, g, "D", 0)

	if err := g.Reparent(b, 0); err != nil {
		t.Fatalf("Reparent() error = %v", err)
	}

	if got := g.Node(b).Level; got != 1 {
		t.Errorf("B level = %d, want 1", got)
	}
	if got := g.Node(c).Level; got != 2 {
		t.Errorf("C level = %d, want 2 (propagated)", got)
	}
	if g.Node(b).Parent != 0 {
		t.Errorf("B parent = %d, want root", g.Node(b).Parent)
	}
	if slices.Contains(g.Node(a).Children, b) {
		t.Error("A still lists B as a child")
	}
	if want := []NodeID{a, d, b}; !slices.Equal(g.Root().Children, want) {
		t.Errorf("root children = %v, want %v", g.Root().Children, want)
	}
	if want := []string{"R", "A", "D", "B", "C"}; !slices.Equal(hrefs(g.Preorder()), want) {
		t.Errorf("Preorder() = %v, want %v", hrefs(g.Preorder()), want)
	}
}

func TestGraph_ReparentRejectsCycles(t *testing.T) {
	t.Parallel()

	g := NewGraph("R", "/wiki/R.md")
	a := mustAdd(t, g, "A", 0)
	b := mustAdd(t, g, "B", a)

	tests := []struct {
		name      string
		id, onto  NodeID
		wantError error
	}{
		{name: "root", id: 0, onto: a, wantError: ErrCycle},
		{name: "under own descendant", id: a, onto: b, wantError: ErrCycle},
		{name: "under itself", id: a, onto: a, wantError: ErrCycle},
		{name: "unknown node", id: 9, onto: 0, wantError: ErrUnknownNode},
	}

	for _, tt := range tests {
		if err := g.Reparent(tt.id, tt.onto); !errors.Is(err, tt.wantError) {
			t.Errorf("%s: Reparent() error = %v, want %v", tt.name, err, tt.wantError)
		}
	}
	if g.Node(b).Parent != a || g.Node(b).Level != 2 {
		t.Error("rejected moves changed the tree")
	}
}

func TestGraph_Subtree(t *testing.T) {
	t.Parallel()

	g := NewGraph("R", "/wiki/R.md")
	a := mustAdd(t, g, "A", 0)
	b := mustAdd(t, g, "B", a)
	c := mustAdd(t, g, "C", a)
	mustAdd(t, g, "D", 0)

	if got, want := g.Subtree(a), []NodeID{a, b, c}; !slices.Equal(got, want) {
		t.Errorf("Subtree(A) = %v, want %v", got, want)
	}
}

func TestPageNode_String(t *testing.T) {
	t.Parallel()

	n := &PageNode{Level: 1, Href: "Call-Log", Path: "/wiki/Call-Log.md", ID: "call-log"}
	want := "[level: 1, href: Call-Log, path: /wiki/Call-Log.md, id: call-log]"
	if got := n.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
