package mdcard

import (
	"fmt"
	"time"
)

// Option configures a Converter.
type Option func(*Converter)

// converterConfig holds internal configuration for Converter.
type converterConfig struct {
	timeout    time.Duration
	theme      string
	assetPath  string
	pixelRatio float64
	cardWidth  int
}

// defaultConverterConfig returns the configuration before options apply.
func defaultConverterConfig() converterConfig {
	return converterConfig{
		timeout:    defaultTimeout,
		theme:      DefaultTheme,
		pixelRatio: DefaultPixelRatio,
		cardWidth:  DefaultCardWidth,
	}
}

// validate checks option values that cannot be rejected at option creation.
func (c converterConfig) validate() error {
	if c.pixelRatio < MinPixelRatio || c.pixelRatio > MaxPixelRatio {
		return fmt.Errorf("%w: %g (must be between %g and %g)", ErrInvalidPixelRatio, c.pixelRatio, MinPixelRatio, MaxPixelRatio)
	}
	if c.cardWidth < MinCardWidth || c.cardWidth > MaxCardWidth {
		return fmt.Errorf("%w: %d (must be between %d and %d)", ErrInvalidCardWidth, c.cardWidth, MinCardWidth, MaxCardWidth)
	}
	return nil
}

// WithTimeout sets the PNG export timeout.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("mdcard: WithTimeout duration must be positive")
	}
	return func(c *Converter) {
		c.cfg.timeout = d
	}
}

// WithTheme selects the card theme by name. Empty keeps DefaultTheme.
func WithTheme(name string) Option {
	return func(c *Converter) {
		if name != "" {
			c.cfg.theme = name
		}
	}
}

// WithAssetPath loads themes, style and template from a directory first,
// falling back to the built-in assets. Ignored when WithAssetLoader is set.
func WithAssetPath(path string) Option {
	return func(c *Converter) {
		c.cfg.assetPath = path
	}
}

// WithAssetLoader sets a custom asset loader. Takes precedence over WithAssetPath.
func WithAssetLoader(loader AssetLoader) Option {
	return func(c *Converter) {
		c.loader = loader
	}
}

// WithPixelRatio sets the device scale factor of the exported PNG.
// NewConverter returns ErrInvalidPixelRatio outside [MinPixelRatio, MaxPixelRatio].
func WithPixelRatio(ratio float64) Option {
	return func(c *Converter) {
		c.cfg.pixelRatio = ratio
	}
}

// WithCardWidth sets the card width in CSS pixels.
// NewConverter returns ErrInvalidCardWidth outside [MinCardWidth, MaxCardWidth].
func WithCardWidth(width int) Option {
	return func(c *Converter) {
		c.cfg.cardWidth = width
	}
}
