package assets

// AssetLoader defines the contract for loading card themes, styles and templates.
type AssetLoader interface {
	// LoadTheme loads a theme by name (without .yaml extension).
	// Returns ErrThemeNotFound if the theme doesn't exist.
	// Returns ErrInvalidTheme if the file does not parse or validate.
	LoadTheme(name string) (*Theme, error)

	// LoadStyle loads a CSS style by name (without .css extension).
	// Returns ErrStyleNotFound if the style doesn't exist.
	LoadStyle(name string) (string, error)

	// LoadTemplate loads an HTML template by name (without .html extension).
	// Returns ErrTemplateNotFound if the template doesn't exist.
	LoadTemplate(name string) (string, error)

	// ListThemes returns the available theme names, sorted.
	ListThemes() ([]string, error)
}
