package assets

import (
	"errors"
)

// AssetResolver combines custom and embedded loaders with fallback logic.
// When a custom loader is configured, it tries custom first, then falls back
// to embedded if the asset is not found in the custom location.
type AssetResolver struct {
	custom   AssetLoader // nil if no custom path configured
	embedded AssetLoader
}

// NewAssetResolver creates an AssetResolver.
// If customBasePath is empty, only embedded assets are used.
// Returns error if customBasePath is set but invalid.
func NewAssetResolver(customBasePath string) (*AssetResolver, error) {
	resolver := &AssetResolver{
		embedded: NewEmbeddedLoader(),
	}

	if customBasePath != "" {
		fsLoader, err := NewFilesystemLoader(customBasePath)
		if err != nil {
			return nil, err
		}
		resolver.custom = fsLoader
	}

	return resolver, nil
}

// LoadStylesheets returns the custom stylesheets, or the embedded ones when
// the custom directory has none. The two sets are never mixed.
func (r *AssetResolver) LoadStylesheets() ([]Stylesheet, error) {
	if r.custom == nil {
		return r.embedded.LoadStylesheets()
	}

	sheets, err := r.custom.LoadStylesheets()
	if err == nil {
		return sheets, nil
	}
	if !isNotFoundError(err) {
		return nil, err
	}
	return r.embedded.LoadStylesheets()
}

// LoadTemplate loads a template, trying custom loader first if available.
func (r *AssetResolver) LoadTemplate(name string) (string, error) {
	if r.custom == nil {
		return r.embedded.LoadTemplate(name)
	}

	content, err := r.custom.LoadTemplate(name)
	if err == nil {
		return content, nil
	}

	// Only fall back for "not found" errors, not I/O or traversal errors
	if !isNotFoundError(err) {
		return "", err
	}
	return r.embedded.LoadTemplate(name)
}

// LoadTemplateSet loads the header and footer, each with fallback.
func (r *AssetResolver) LoadTemplateSet() (*TemplateSet, error) {
	return loadTemplateSet(r)
}

// isNotFoundError checks if the error indicates the asset was not found.
func isNotFoundError(err error) bool {
	return errors.Is(err, ErrStyleNotFound) ||
		errors.Is(err, ErrTemplateNotFound)
}

// HasCustomLoader returns true if a custom asset loader is configured.
func (r *AssetResolver) HasCustomLoader() bool {
	return r.custom != nil
}

// Compile-time interface check.
var _ AssetLoader = (*AssetResolver)(nil)
