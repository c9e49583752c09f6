package mdcard

import (
	"fmt"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/jaydendev/mdcard/internal/assets"
)

// Watermark constants.
const (
	// DefaultWatermarkText is shown when a watermark is requested with blank text.
	DefaultWatermarkText = "由 Jayden.Dev 制作"

	// MaxWatermarkLength is the maximum watermark length in characters.
	MaxWatermarkLength = 50
)

// Export bounds.
const (
	DefaultPixelRatio = 2.0
	MinPixelRatio     = 1.0
	MaxPixelRatio     = 4.0

	DefaultCardWidth = 720 // CSS pixels
	MinCardWidth     = 320
	MaxCardWidth     = 1600
)

// DefaultTheme is the name of the built-in theme used when none is selected.
const DefaultTheme = assets.DefaultThemeName

// defaultTitle is the card document title when Input.Title is empty.
const defaultTitle = "mdcard"

// defaultTimeout is used when no timeout is specified.
const defaultTimeout = 30 * time.Second

// Theme describes the look of an exported card. Load one through an
// AssetLoader; construct it directly only for custom loaders.
type Theme = assets.Theme

// Input contains conversion parameters.
type Input struct {
	Markdown  string     // Markdown content (required)
	Title     string     // Card document title (optional)
	Watermark *Watermark // Footer line (optional, nil = none)
	SkipImage bool       // Stop after the HTML stage
}

// ConvertResult holds every artifact of one conversion.
type ConvertResult struct {
	Text string // Platform text
	HTML []byte // Standalone card document
	PNG  []byte // Card image; nil when Input.SkipImage is set
}

// Watermark configures the footer line printed under the card body.
type Watermark struct {
	Text string // Blank = DefaultWatermarkText
}

// Validate checks the watermark length and rejects control characters.
// Returns nil if w is nil (nil means no watermark).
func (w *Watermark) Validate() error {
	if w == nil {
		return nil
	}
	if n := utf8.RuneCountInString(w.Text); n > MaxWatermarkLength {
		return fmt.Errorf("%w: %d characters (max %d)", ErrInvalidWatermark, n, MaxWatermarkLength)
	}
	if strings.IndexFunc(w.Text, unicode.IsControl) >= 0 {
		return fmt.Errorf("%w: contains control characters", ErrInvalidWatermark)
	}
	return nil
}

// DisplayText returns the text printed on the card: the trimmed Text, or
// DefaultWatermarkText when it is blank. Returns "" for a nil watermark.
func (w *Watermark) DisplayText() string {
	if w == nil {
		return ""
	}
	if text := strings.TrimSpace(w.Text); text != "" {
		return text
	}
	return DefaultWatermarkText
}
