package assets

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
)

//go:embed css/*
var styles embed.FS

//go:embed templates/*
var templates embed.FS

// EmbeddedLoader loads assets from embedded filesystem.
// Implements AssetLoader interface.
type EmbeddedLoader struct{}

// NewEmbeddedLoader creates an EmbeddedLoader.
func NewEmbeddedLoader() *EmbeddedLoader {
	return &EmbeddedLoader{}
}

// LoadStylesheets returns the embedded stylesheets in name order.
func (e *EmbeddedLoader) LoadStylesheets() ([]Stylesheet, error) {
	entries, err := fs.ReadDir(styles, StylesheetDir)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAssetRead, err)
	}

	var sheets []Stylesheet
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(path.Ext(entry.Name()), ".css") {
			continue
		}
		content, err := styles.ReadFile(path.Join(StylesheetDir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrAssetRead, err)
		}
		sheets = append(sheets, Stylesheet{Name: entry.Name(), Content: string(content)})
	}
	if len(sheets) == 0 {
		return nil, ErrStyleNotFound
	}
	sort.Slice(sheets, func(i, j int) bool { return sheets[i].Name < sheets[j].Name })
	return sheets, nil
}

// LoadTemplate loads an HTML template from embedded assets by name.
// The name should not include the .html extension.
func (e *EmbeddedLoader) LoadTemplate(name string) (string, error) {
	content, err := templates.ReadFile(path.Join(TemplateDir, name+".html"))
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrTemplateNotFound, name)
	}
	return string(content), nil
}

// Compile-time interface check.
var _ AssetLoader = (*EmbeddedLoader)(nil)
