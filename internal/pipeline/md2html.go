package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"regexp"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
)

// ErrHTMLConversion indicates HTML conversion failed.
var ErrHTMLConversion = errors.New("HTML conversion failed")

// DefaultCodeStyle is the chroma style used when a theme names none.
const DefaultCodeStyle = "github"

// chromaClassPattern restricts class attributes to chroma-style tokens.
var chromaClassPattern = regexp.MustCompile(`^[A-Za-z0-9 _-]+$`)

// HTMLRenderer abstracts Markdown to sanitized HTML fragment rendering.
type HTMLRenderer interface {
	RenderHTML(ctx context.Context, content string) (string, error)
}

// Sanitizer wraps a bluemonday policy for rendered Markdown.
type Sanitizer struct {
	policy *bluemonday.Policy
}

// NewSanitizer builds the UGC policy plus the class attributes chroma emits.
func NewSanitizer() *Sanitizer {
	p := bluemonday.UGCPolicy()
	p.AllowAttrs("class").Matching(chromaClassPattern).OnElements("span", "pre", "code", "div")
	return &Sanitizer{policy: p}
}

// Sanitize strips scripts, event handlers and disallowed tags from HTML.
func (s *Sanitizer) Sanitize(htmlContent string) string {
	return s.policy.Sanitize(htmlContent)
}

// GoldmarkRenderer converts Markdown to a sanitized HTML fragment.
type GoldmarkRenderer struct {
	md        goldmark.Markdown
	sanitizer *Sanitizer
}

// NewGoldmarkRenderer creates a GoldmarkRenderer with GFM, typographer and
// syntax highlighting. codeStyle selects the chroma style ("" = default).
func NewGoldmarkRenderer(codeStyle string) *GoldmarkRenderer {
	if codeStyle == "" {
		codeStyle = DefaultCodeStyle
	}
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,         // Tables, strikethrough, linkify, task lists
			extension.Typographer, // Smart quotes and dashes
			highlighting.NewHighlighting(
				highlighting.WithStyle(codeStyle),
				highlighting.WithFormatOptions(
					chromahtml.WithClasses(true), // sanitizer drops inline styles
				),
			),
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			html.WithHardWraps(),
			html.WithXHTML(),
			// Raw HTML is passed through and cleaned by the sanitizer.
			html.WithUnsafe(),
		),
	)
	return &GoldmarkRenderer{md: md, sanitizer: NewSanitizer()}
}

// RenderHTML converts Markdown content to a sanitized HTML fragment.
// Supports context cancellation via goroutine + select pattern since
// Goldmark doesn't natively support context.
func (r *GoldmarkRenderer) RenderHTML(ctx context.Context, content string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	type result struct {
		html string
		err  error
	}

	done := make(chan result, 1)

	go func() {
		var buf bytes.Buffer
		if err := r.md.Convert([]byte(content), &buf); err != nil {
			done <- result{err: fmt.Errorf("%w: %v", ErrHTMLConversion, err)}
			return
		}
		done <- result{html: r.sanitizer.Sanitize(buf.String())}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res := <-done:
		return res.html, res.err
	}
}

// HighlightCSS returns the chroma stylesheet for the named style.
// Unknown names fall back to chroma's default style.
func HighlightCSS(codeStyle string) (string, error) {
	if codeStyle == "" {
		codeStyle = DefaultCodeStyle
	}
	var buf bytes.Buffer
	formatter := chromahtml.New(chromahtml.WithClasses(true))
	if err := formatter.WriteCSS(&buf, styles.Get(codeStyle)); err != nil {
		return "", fmt.Errorf("writing highlight CSS: %w", err)
	}
	return buf.String(), nil
}
