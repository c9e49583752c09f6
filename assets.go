package mdcard

import (
	"errors"
	"fmt"

	"github.com/jaydendev/mdcard/internal/assets"
)

// AssetLoader defines the contract for loading card themes, the base card
// stylesheet and the card template.
//
// The library provides NewAssetLoader() for filesystem-based loading with
// fallback to embedded defaults. Implement this interface for custom backends.
type AssetLoader interface {
	// LoadTheme loads a theme by name (without .yaml extension).
	// Returns ErrThemeNotFound if the theme doesn't exist.
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

// Compile-time check that the internal resolver satisfies the public contract.
var _ AssetLoader = (*assets.AssetResolver)(nil)

// NewAssetLoader creates an AssetLoader for the given base path.
// If basePath is empty, returns a loader using only embedded assets.
// If basePath is set, custom assets take precedence with fallback to embedded.
//
// The basePath directory may contain:
//   - themes/{name}.yaml for card themes
//   - styles/card.css to replace the base card stylesheet
//   - templates/card.html to replace the card document template
//
// Returns ErrInvalidAssetPath if basePath is set but not a valid, readable directory.
func NewAssetLoader(basePath string) (AssetLoader, error) {
	resolver, err := assets.NewAssetResolver(basePath)
	if err != nil {
		return nil, convertAssetError(err)
	}
	return resolver, nil
}

// ListThemes returns the built-in theme names.
func ListThemes() ([]string, error) {
	return assets.NewEmbeddedLoader().ListThemes()
}

// convertAssetError maps base path failures to ErrInvalidAssetPath.
// Not-found and invalid-theme errors are shared values and pass through.
func convertAssetError(err error) error {
	if errors.Is(err, assets.ErrInvalidBasePath) || errors.Is(err, assets.ErrPathTraversal) {
		return fmt.Errorf("%w: %v", ErrInvalidAssetPath, err)
	}
	return err
}
