package wiki

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// Sentinel errors for page resolution.
var (
	ErrNotFound     = errors.New("no matching file")
	ErrAmbiguous    = errors.New("several matching files")
	ErrInvalidRoot  = errors.New("invalid wiki root")
	ErrEmptyPageRef = errors.New("empty page reference")
)

// markdownExtensions are the page file extensions, in preference order.
var markdownExtensions = []string{".md", ".markdown"}

// nonWord matches runs of characters that cannot appear in a page id.
var nonWord = regexp.MustCompile(`[^\w]+`)

// PageID derives the in-document anchor of a page from its file name.
// "Call-Log.md" and "Call Log.md" both become "call-log".
func PageID(filename string) string {
	base := trimMarkdownExt(filepath.Base(filename))
	return nonWord.ReplaceAllString(strings.ToLower(base), "-")
}

// Resolver finds wiki files by page or image name below a root directory.
// The directory is indexed once, on creation.
type Resolver struct {
	root  string
	files []string // absolute paths of every regular file under root
}

// NewResolver indexes every regular file under root. Hidden directories
// (".git", ".github") are skipped.
func NewResolver(root string) (*Resolver, error) {
	if root == "" {
		return nil, fmt.Errorf("%w: empty path", ErrInvalidRoot)
	}

	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRoot, err)
	}

	info, err := os.Stat(absRoot)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRoot, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: not a directory: %s", ErrInvalidRoot, absRoot)
	}

	r := &Resolver{root: absRoot}
	err = filepath.WalkDir(absRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != absRoot && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if d.Type().IsRegular() {
			r.files = append(r.files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: indexing: %v", ErrInvalidRoot, err)
	}

	return r, nil
}

// Root returns the absolute wiki root directory.
func (r *Resolver) Root() string {
	return r.root
}

// Pages returns the markdown files found under the root, in walk order.
func (r *Resolver) Pages() []string {
	var pages []string
	for _, path := range r.files {
		if hasMarkdownExt(filepath.Base(path)) {
			pages = append(pages, path)
		}
	}
	return pages
}

// ResolvePage returns the markdown file for a page name such as "Call-Log",
// "Call Log" or "call-log.md". A "#section" suffix is ignored.
// Returns ErrNotFound when no file matches and ErrAmbiguous when several do.
func (r *Resolver) ResolvePage(name string) (string, error) {
	name = stripFragment(name)
	if name == "" {
		return "", ErrEmptyPageRef
	}

	want := canonicalName(trimMarkdownExt(filepath.Base(name)))
	return r.match(name, func(path string) bool {
		base := filepath.Base(path)
		if !hasMarkdownExt(base) {
			return false
		}
		return canonicalName(trimMarkdownExt(base)) == want
	})
}

// ResolveImage returns the file referenced by an embedded image. A path
// relative to the wiki root or to fromDir wins; otherwise the base name is
// matched like a page name, extension included.
func (r *Resolver) ResolveImage(name, fromDir string) (string, error) {
	name = stripFragment(name)
	if name == "" {
		return "", ErrEmptyPageRef
	}

	for _, dir := range []string{fromDir, r.root} {
		if dir == "" {
			continue
		}
		candidate := filepath.Join(dir, filepath.FromSlash(name))
		if r.contains(candidate) && isRegularFile(candidate) {
			return candidate, nil
		}
	}

	want := canonicalName(filepath.Base(name))
	return r.match(name, func(path string) bool {
		return canonicalName(filepath.Base(path)) == want
	})
}

// match applies pred to the index and enforces the single-match rule.
func (r *Resolver) match(name string, pred func(string) bool) (string, error) {
	var found []string
	for _, path := range r.files {
		if pred(path) {
			found = append(found, path)
		}
	}

	switch len(found) {
	case 0:
		return "", fmt.Errorf("%w: %q", ErrNotFound, name)
	case 1:
		return found[0], nil
	default:
		return "", fmt.Errorf("%w: %q matches %s", ErrAmbiguous, name, strings.Join(found, ", "))
	}
}

// contains reports whether path stays inside the wiki root.
func (r *Resolver) contains(path string) bool {
	rel, err := filepath.Rel(r.root, filepath.Clean(path))
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// canonicalName folds case and treats spaces and hyphens as the same joiner.
func canonicalName(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	return strings.ReplaceAll(name, " ", WordJoiner)
}

func stripFragment(name string) string {
	if i := strings.IndexByte(name, '#'); i >= 0 {
		name = name[:i]
	}
	return strings.TrimSpace(name)
}

func hasMarkdownExt(name string) bool {
	lower := strings.ToLower(name)
	for _, ext := range markdownExtensions {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}

func trimMarkdownExt(name string) string {
	lower := strings.ToLower(name)
	for _, ext := range markdownExtensions {
		if strings.HasSuffix(lower, ext) {
			return name[:len(name)-len(ext)]
		}
	}
	return name
}

func isRegularFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
