package render

import (
	"fmt"
	"html"
	"strings"

	"github.com/alnah/go-wiki2pdf/internal/wiki"
)

// TOCTitle is the caption rendered above every page table of contents.
const TOCTitle = "Table of Contents"

// RenderTOC renders a page outline as nested lists. Going one level deeper
// opens a list inside the previous item, going shallower closes lists down
// to the matching level, equal levels are siblings. Jumps of more than one
// level are nested a single step and reported as anomalies. The output is
// always fully closed.
func RenderTOC(entries []wiki.TOCEntry) (string, []string) {
	if len(entries) == 0 {
		return "", nil
	}

	var (
		buf       strings.Builder
		anomalies []string
		levels    = []int{entries[0].Level} // heading level of each open list
	)

	buf.WriteString(`<div class="toc">`)
	buf.WriteString(`<div class="toc-title">` + TOCTitle + `</div>`)
	buf.WriteString(`<ul>`)

	for i, e := range entries {
		if i > 0 {
			top := levels[len(levels)-1]
			switch {
			case e.Level > top:
				if e.Level-top > 1 {
					anomalies = append(anomalies, fmt.Sprintf(
						"heading %q jumps from level %d to %d", e.Text, top, e.Level))
				}
				buf.WriteString(`<ul>`)
				levels = append(levels, e.Level)
			default:
				buf.WriteString(`</li>`)
				for len(levels) > 1 && levels[len(levels)-2] >= e.Level {
					buf.WriteString(`</ul></li>`)
					levels = levels[:len(levels)-1]
				}
				levels[len(levels)-1] = e.Level
			}
		}
		writeTOCItem(&buf, e)
	}

	buf.WriteString(`</li>`)
	for len(levels) > 1 {
		buf.WriteString(`</ul></li>`)
		levels = levels[:len(levels)-1]
	}
	buf.WriteString(`</ul></div>`)

	return buf.String(), anomalies
}

func writeTOCItem(buf *strings.Builder, e wiki.TOCEntry) {
	buf.WriteString(`<li><a href="#`)
	buf.WriteString(html.EscapeString(e.Anchor))
	buf.WriteString(`">`)
	buf.WriteString(html.EscapeString(e.Text))
	buf.WriteString(`</a>`)
}
