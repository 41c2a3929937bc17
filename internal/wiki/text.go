package wiki

import (
	"net/url"
	"strings"

	"github.com/yuin/goldmark/ast"
)

// Slug derives a heading anchor from its text: lower-cased, runs of
// non-word characters collapsed to "-".
func Slug(text string) string {
	return nonWord.ReplaceAllString(strings.ToLower(strings.TrimSpace(text)), "-")
}

// HeadingText returns the plain text of an inline container such as a
// heading, ignoring markup.
func HeadingText(n ast.Node, source []byte) string {
	var b strings.Builder
	writeText(&b, n, source)
	return strings.TrimSpace(b.String())
}

func writeText(b *strings.Builder, n ast.Node, source []byte) {
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch t := c.(type) {
		case *ast.Text:
			b.Write(t.Segment.Value(source))
			if t.SoftLineBreak() || t.HardLineBreak() {
				b.WriteByte(' ')
			}
		case *ast.String:
			b.Write(t.Value)
		default:
			writeText(b, c, source)
		}
	}
}

// externalSchemes are URL schemes that never name a wiki page, even
// without a "//" authority.
var externalSchemes = map[string]bool{
	"http": true, "https": true, "mailto": true, "ftp": true,
	"file": true, "data": true, "tel": true,
}

// IsExternal reports whether dest is an absolute URL rather than a wiki
// reference: a scheme followed by "//", or a well-known scheme such as
// mailto. Page names containing a colon ("Note:-Setup", "FAQ:Billing")
// and drive letters are wiki references.
func IsExternal(dest string) bool {
	u, err := url.Parse(dest)
	if err != nil || u.Scheme == "" {
		return false
	}
	if externalSchemes[strings.ToLower(u.Scheme)] {
		return true
	}
	return strings.HasPrefix(dest[len(u.Scheme)+1:], "//")
}
