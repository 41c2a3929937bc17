package assets

import "fmt"

// defaultLoader is the package-level embedded loader.
var defaultLoader = NewEmbeddedLoader()

// LoadStylesheets returns the built-in stylesheets.
func LoadStylesheets() ([]Stylesheet, error) {
	return defaultLoader.LoadStylesheets()
}

// LoadTemplateSet returns the built-in header and footer.
func LoadTemplateSet() (*TemplateSet, error) {
	return loadTemplateSet(defaultLoader)
}

// loadTemplateSet reads the header and footer through loader.
func loadTemplateSet(loader AssetLoader) (*TemplateSet, error) {
	header, err := loader.LoadTemplate(HeaderTemplate)
	if err != nil {
		return nil, fmt.Errorf("loading header: %w", err)
	}
	footer, err := loader.LoadTemplate(FooterTemplate)
	if err != nil {
		return nil, fmt.Errorf("loading footer: %w", err)
	}
	return &TemplateSet{Header: header, Footer: footer}, nil
}
