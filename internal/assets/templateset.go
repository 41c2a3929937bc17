package assets

// Stylesheet is one CSS file.
type Stylesheet struct {
	Name    string // File name, e.g. "wiki.css"
	Content string
}

// TemplateSet holds the templates wrapped around the rendered pages.
type TemplateSet struct {
	Header string // Opens the document; executed with the title and styles
	Footer string // Closes the document
}

// Template names.
const (
	HeaderTemplate = "header"
	FooterTemplate = "footer"
)

// StylesheetDir is the stylesheet directory below an assets directory.
const StylesheetDir = "css"

// TemplateDir is the template directory below an assets directory.
const TemplateDir = "templates"
