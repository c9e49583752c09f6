package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"strings"
)

// ErrCardRender indicates the card template could not be rendered.
var ErrCardRender = errors.New("card template rendering failed")

// CardData holds everything the card template needs.
type CardData struct {
	Title        string // document <title>
	Body         string // sanitized HTML fragment from the preview renderer
	BaseCSS      string // layout and typography of the card
	ThemeCSS     string // theme variables and surface
	HighlightCSS string // chroma classes
	Watermark    string // footer line; blank hides it
	Width        int    // card width in CSS pixels
}

// CardRenderer defines the contract for assembling a themed card document.
type CardRenderer interface {
	RenderCard(ctx context.Context, data *CardData) (string, error)
}

// CardAssembly renders the card template into a standalone HTML document.
type CardAssembly struct {
	tmpl *template.Template
}

// cardView is what the template sees: values are already typed as safe.
type cardView struct {
	Title     string
	Body      template.HTML
	CSS       template.CSS
	Watermark string
	Width     int
}

// NewCardAssembly creates a CardAssembly from template content.
// Returns error if the template cannot be parsed.
func NewCardAssembly(tmplContent string) (*CardAssembly, error) {
	tmpl, err := template.New("card").Parse(tmplContent)
	if err != nil {
		return nil, fmt.Errorf("parsing card template: %w", err)
	}
	return &CardAssembly{tmpl: tmpl}, nil
}

// RenderCard executes the card template. Body is trusted: callers must pass
// sanitizer output. CSS blocks are joined base, theme, highlight.
func (c *CardAssembly) RenderCard(ctx context.Context, data *CardData) (string, error) {
	if data == nil {
		return "", fmt.Errorf("%w: nil card data", ErrCardRender)
	}
	if ctx.Err() != nil {
		return "", ctx.Err()
	}

	css := joinCSS(data.BaseCSS, data.ThemeCSS, data.HighlightCSS)

	view := cardView{
		Title: data.Title,
		// #nosec G203 -- body comes from the bluemonday sanitizer
		Body: template.HTML(data.Body),
		// #nosec G203 -- sanitizeCSS escapes closing sequences
		CSS:       template.CSS(sanitizeCSS(css)),
		Watermark: strings.TrimSpace(data.Watermark),
		Width:     data.Width,
	}

	var buf bytes.Buffer
	if err := c.tmpl.Execute(&buf, view); err != nil {
		return "", fmt.Errorf("%w: %v", ErrCardRender, err)
	}
	return buf.String(), nil
}

// joinCSS concatenates non-empty CSS blocks with newlines.
func joinCSS(blocks ...string) string {
	parts := make([]string, 0, len(blocks))
	for _, b := range blocks {
		if strings.TrimSpace(b) != "" {
			parts = append(parts, b)
		}
	}
	return strings.Join(parts, "\n")
}

// sanitizeCSS escapes sequences that could break out of a <style> block.
func sanitizeCSS(css string) string {
	return strings.ReplaceAll(css, "</", `<\/`)
}
