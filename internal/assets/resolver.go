package assets

import (
	"errors"
	"sort"
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

// LoadTheme loads a theme, trying the custom loader first if available.
func (r *AssetResolver) LoadTheme(name string) (*Theme, error) {
	return loadWithFallback(r, func(loader AssetLoader) (*Theme, error) {
		return loader.LoadTheme(name)
	})
}

// LoadStyle loads a CSS style, trying the custom loader first if available.
func (r *AssetResolver) LoadStyle(name string) (string, error) {
	return loadWithFallback(r, func(loader AssetLoader) (string, error) {
		return loader.LoadStyle(name)
	})
}

// LoadTemplate loads an HTML template, trying the custom loader first if available.
func (r *AssetResolver) LoadTemplate(name string) (string, error) {
	return loadWithFallback(r, func(loader AssetLoader) (string, error) {
		return loader.LoadTemplate(name)
	})
}

// ListThemes returns the union of custom and embedded theme names, sorted.
func (r *AssetResolver) ListThemes() ([]string, error) {
	names, err := r.embedded.ListThemes()
	if err != nil {
		return nil, err
	}
	if r.custom == nil {
		return names, nil
	}

	custom, err := r.custom.ListThemes()
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(names)+len(custom))
	merged := make([]string, 0, len(names)+len(custom))
	for _, name := range append(names, custom...) {
		if !seen[name] {
			seen[name] = true
			merged = append(merged, name)
		}
	}
	sort.Strings(merged)
	return merged, nil
}

// loadWithFallback implements the custom-first, fallback-to-embedded logic.
func loadWithFallback[T any](r *AssetResolver, loadFn func(AssetLoader) (T, error)) (T, error) {
	// If no custom loader, use embedded directly
	if r.custom == nil {
		return loadFn(r.embedded)
	}

	// Try custom loader first
	content, err := loadFn(r.custom)
	if err == nil {
		return content, nil
	}

	// Only fall back for "not found" errors, not validation or I/O errors
	if !isNotFoundError(err) {
		var zero T
		return zero, err
	}

	return loadFn(r.embedded)
}

// isNotFoundError checks if the error indicates the asset was not found.
func isNotFoundError(err error) bool {
	return errors.Is(err, ErrThemeNotFound) ||
		errors.Is(err, ErrStyleNotFound) ||
		errors.Is(err, ErrTemplateNotFound)
}

// HasCustomLoader returns true if a custom asset loader is configured.
func (r *AssetResolver) HasCustomLoader() bool {
	return r.custom != nil
}

// Compile-time interface check.
var _ AssetLoader = (*AssetResolver)(nil)
