// Package assets provides card themes, the base card stylesheet and the card
// HTML template.
//
// # Loader Architecture
//
//	AssetLoader (interface)
//	    │
//	    ├── EmbeddedLoader    - built-in themes, style and template (go:embed)
//	    ├── FilesystemLoader  - custom directory on disk
//	    └── AssetResolver     - custom first, embedded fallback
//
// AssetResolver is the loader used by the converter. A custom directory may
// override a single theme while the rest still come from the binary.
//
// # Directory Structure
//
//	{basePath}/
//	├── themes/
//	│   └── {name}.yaml     # card theme (e.g., paper.yaml)
//	├── styles/
//	│   └── {name}.css      # base card stylesheet (card.css)
//	└── templates/
//	    └── {name}.html     # card document template (card.html)
//
// # Security
//
// Asset names are validated to prevent path traversal. FilesystemLoader
// resolves symlinks and verifies paths stay within basePath. Theme values are
// rejected when they contain characters that could escape a CSS declaration.
package assets
