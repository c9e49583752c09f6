package assets

import (
	"fmt"
	"strings"

	"github.com/jaydendev/mdcard/internal/yamlutil"
)

// Built-in asset names.
const (
	DefaultThemeName    = "paper"
	DefaultStyleName    = "card"
	DefaultTemplateName = "card"
)

// forbiddenCSSChars could close a declaration or the enclosing <style> block.
const forbiddenCSSChars = "{};<>\\"

// Theme describes the look of an exported card.
// Every field except Name, Dark and Opacity is a raw CSS value.
type Theme struct {
	ID         string  `yaml:"-"`
	Name       string  `yaml:"name"`
	Dark       bool    `yaml:"dark"`
	Background string  `yaml:"background"`
	Radius     string  `yaml:"radius"`
	Shadow     string  `yaml:"shadow"`
	Border     string  `yaml:"border"`
	Blur       string  `yaml:"blur"`
	Opacity    float64 `yaml:"opacity"`
	TextColor  string  `yaml:"textColor"`
	FontFamily string  `yaml:"fontFamily"`
	LineHeight string  `yaml:"lineHeight"`
	Accent     string  `yaml:"accent"`
	Muted      string  `yaml:"muted"`
	CodeBg     string  `yaml:"codeBg"`
	CodeColor  string  `yaml:"codeColor"`
	CodeStyle  string  `yaml:"codeStyle"`
}

// ParseTheme decodes a theme file strictly and validates it.
// id is the file's base name; an omitted opacity means fully opaque.
func ParseTheme(id string, data []byte) (*Theme, error) {
	theme := &Theme{Opacity: 1}
	if err := yamlutil.UnmarshalStrict(data, theme); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidTheme, id, err)
	}
	theme.ID = id
	if err := theme.Validate(); err != nil {
		return nil, err
	}
	return theme, nil
}

// Validate checks required fields, the opacity range and CSS-safe values.
func (t *Theme) Validate() error {
	if strings.TrimSpace(t.Name) == "" {
		return fmt.Errorf("%w: %s: name is required", ErrInvalidTheme, t.ID)
	}
	if strings.TrimSpace(t.Background) == "" {
		return fmt.Errorf("%w: %s: background is required", ErrInvalidTheme, t.ID)
	}
	if strings.TrimSpace(t.TextColor) == "" {
		return fmt.Errorf("%w: %s: textColor is required", ErrInvalidTheme, t.ID)
	}
	if t.Opacity < 0 || t.Opacity > 1 {
		return fmt.Errorf("%w: %s: opacity must be between 0 and 1, got %g", ErrInvalidTheme, t.ID, t.Opacity)
	}
	for _, v := range t.cssValues() {
		if strings.ContainsAny(v.value, forbiddenCSSChars) {
			return fmt.Errorf("%w: %s: %s contains a forbidden character", ErrInvalidTheme, t.ID, v.field)
		}
	}
	return nil
}

type cssValue struct {
	field string
	value string
}

// cssValues lists the values emitted as CSS, keyed by YAML field name.
func (t *Theme) cssValues() []cssValue {
	return []cssValue{
		{"background", t.Background},
		{"radius", t.Radius},
		{"shadow", t.Shadow},
		{"border", t.Border},
		{"blur", t.Blur},
		{"textColor", t.TextColor},
		{"fontFamily", t.FontFamily},
		{"lineHeight", t.LineHeight},
		{"accent", t.Accent},
		{"muted", t.Muted},
		{"codeBg", t.CodeBg},
		{"codeColor", t.CodeColor},
	}
}
