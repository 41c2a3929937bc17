// Package assets provides the stylesheets and the header/footer templates
// wrapped around the rendered wiki.
//
// # Loader Architecture
//
// The package implements a layered loading system:
//
//	AssetLoader (interface)
//	    │
//	    ├── EmbeddedLoader    - loads from go:embed filesystem (default wiki look)
//	    ├── FilesystemLoader  - loads from an assets directory on disk
//	    └── AssetResolver     - combines both with custom-first fallback
//
// AssetResolver is the loader used by the converter. Stylesheets are taken
// as a whole from the custom directory when it has any, otherwise from the
// embedded defaults. Templates fall back one file at a time.
//
// # Directory Structure
//
//	{basePath}/
//	├── css/
//	│   └── *.css                # every stylesheet, applied in name order
//	└── templates/
//	    ├── header.html          # html/template, opens <html> and <body>
//	    └── footer.html          # closes the document
//
// # Security
//
// FilesystemLoader resolves symlinks and verifies paths stay within basePath.
package assets
