package wiki

import "fmt"

// NodeID indexes a PageNode inside its Graph.
type NodeID int

// NoParent is the Parent of the root node.
const NoParent NodeID = -1

// TOCEntry is one heading of a page outline.
type TOCEntry struct {
	Level  int    // nominal heading level in the page source (1-6)
	Text   string // plain heading text
	Anchor string // in-document anchor name, without "#"
}

// PageNode is one distinct wiki page reachable from the root.
type PageNode struct {
	Href    string // link token the page was first discovered under
	Path    string // markdown source file
	ID      string // document anchor id, derived from the file name
	Level   int    // depth in the tree, root = 0
	Heading string // first top-level heading, empty if none
	TOC     []TOCEntry
	HasTOC  bool // source contained a TOC placeholder

	Parent   NodeID
	Children []NodeID

	// links holds the resolved out-links in first-seen order, used to
	// relax distances again when the node moves closer to the root.
	links []NodeID
}

// IsRoot reports whether the node has no parent.
func (n *PageNode) IsRoot() bool {
	return n.Parent == NoParent
}

func (n *PageNode) String() string {
	return fmt.Sprintf("[level: %d, href: %s, path: %s, id: %s]", n.Level, n.Href, n.Path, n.ID)
}

// addLink records an out-link once.
func (n *PageNode) addLink(id NodeID) {
	for _, l := range n.links {
		if l == id {
			return
		}
	}
	n.links = append(n.links, id)
}

// removeChild drops id from the child list, keeping the order of the rest.
func (n *PageNode) removeChild(id NodeID) {
	for i, c := range n.Children {
		if c == id {
			n.Children = append(n.Children[:i], n.Children[i+1:]...)
			return
		}
	}
}
