package assets

// AssetLoader defines the contract for loading stylesheets and templates.
type AssetLoader interface {
	// LoadStylesheets returns every stylesheet in name order.
	// Returns ErrStyleNotFound if there is none.
	LoadStylesheets() ([]Stylesheet, error)

	// LoadTemplate loads an HTML template by name (without .html extension).
	// Returns ErrTemplateNotFound if the template doesn't exist.
	LoadTemplate(name string) (string, error)
}
