// Package wiki discovers the page graph of a Gollum-style wiki.
//
// Pages are markdown files that reference each other with double-bracket
// links ([[Page]] or [[Title|Page]]). Starting at a root page, the Builder
// crawls every reachable page depth-first and arranges them into a tree
// where each page sits at its minimum link distance from the root:
//
//	root (level 0)
//	├── A (level 1)
//	│   └── C (level 2)
//	└── B (level 1)
//
// When a page already attached deep in the tree is found again through a
// shorter path, it is moved (with its subtree) under the closer parent.
//
// Nodes live in an arena owned by Graph and refer to each other by NodeID,
// so re-parenting only swaps indexes.
package wiki
