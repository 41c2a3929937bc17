// Package render turns a crawled wiki graph into one HTML document.
//
// Pages are rendered in document order (preorder over the page tree). Each
// page is parsed with goldmark and rewritten by an AST transformer that reads
// its per-page state from the parser context:
//   - headings are shifted down by the page's tree level
//   - the first heading carries the page anchor, an optional page break and
//     the page's table of contents
//   - links to known pages point at in-document anchors, links to unknown
//     pages become inert spans
//   - local images are inlined as data URIs
//
// The state is created for one page and dropped when that page is done, so
// pages never observe each other's state.
package render
