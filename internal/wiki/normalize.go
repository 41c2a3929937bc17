package wiki

import (
	"path"
	"regexp"
	"strings"
)

// WordJoiner replaces spaces in page names, matching Gollum file names.
const WordJoiner = "-"

var (
	// tocPlaceholder matches Gollum's [[_TOC_]] marker, with optional arguments.
	tocPlaceholder = regexp.MustCompile(`\[\[_TOC_[^\]]*\]\]`)

	// wikiLink matches [[content]] where content holds no closing bracket.
	wikiLink = regexp.MustCompile(`\[\[([^\]]+)\]\]`)
)

// HasTOCPlaceholder reports whether the page asks for a generated table of contents.
func HasTOCPlaceholder(markdown string) bool {
	return tocPlaceholder.MatchString(markdown)
}

// NormalizeLinks rewrites wiki links into standard markdown links and removes
// TOC placeholders.
//
//	[[Call Log|Call-Log]] -> [Call Log](Call-Log)
//	[[Calls]]             -> [Calls](Calls)
//	[[Log|Call Log]]      -> [Log](Call-Log)
//	[[img/a.png|alt=A]]   -> ![A](img/a.png)
func NormalizeLinks(markdown string) string {
	if !strings.Contains(markdown, "[[") {
		return markdown
	}

	markdown = tocPlaceholder.ReplaceAllString(markdown, "")
	return wikiLink.ReplaceAllStringFunc(markdown, func(match string) string {
		content := wikiLink.FindStringSubmatch(match)[1]
		if src, alt, ok := wikiImage(content); ok {
			return "![" + alt + "](" + src + ")"
		}
		title, page := splitWikiLink(content)
		return "[" + title + "](" + linkDestination(PageTarget(page)) + ")"
	})
}

// imageExtensions are the file types Gollum embeds instead of linking.
var imageExtensions = map[string]bool{
	".png": true, ".jpg": true, ".jpeg": true, ".gif": true,
	".svg": true, ".webp": true, ".bmp": true,
}

// wikiImage recognizes Gollum's image tag: a path to an image file followed
// by optional "|"-separated options, of which only alt= is kept.
func wikiImage(content string) (src, alt string, ok bool) {
	parts := strings.Split(content, "|")
	file := strings.TrimSpace(parts[0])
	if !imageExtensions[strings.ToLower(path.Ext(file))] {
		return "", "", false
	}
	alt = path.Base(file)
	for _, opt := range parts[1:] {
		if v, found := strings.CutPrefix(strings.TrimSpace(opt), "alt="); found {
			alt = v
		}
	}
	if strings.ContainsAny(file, " ()") {
		file = "<" + file + ">"
	}
	return file, alt, true
}

// splitWikiLink separates "title|page". Without a separator the content is
// both title and page.
func splitWikiLink(content string) (title, page string) {
	title, page, found := strings.Cut(content, "|")
	if !found || strings.TrimSpace(title) == "" || strings.TrimSpace(page) == "" {
		return content, content
	}
	return strings.TrimSpace(title), page
}

// linkDestination makes target safe as a markdown link destination: targets
// with parentheses or angle brackets use the <...> form, brackets escaped.
func linkDestination(target string) string {
	if !strings.ContainsAny(target, "()<>") {
		return target
	}
	escaped := strings.NewReplacer("<", `\<`, ">", `\>`).Replace(target)
	return "<" + escaped + ">"
}

// PageTarget converts a page name into its link target form.
func PageTarget(name string) string {
	return strings.ReplaceAll(strings.TrimSpace(name), " ", WordJoiner)
}
