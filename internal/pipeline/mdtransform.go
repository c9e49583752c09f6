package pipeline

import (
	"context"
	"regexp"
	"strings"
)

// Precompiled regex patterns for performance.
var (
	// Line ending normalization
	crlfOrCR = regexp.MustCompile(`\r\n?`)

	// Three or more newlines collapse to one blank line
	multipleBlankLines = regexp.MustCompile(`\n{3,}`)
)

// spaceClass is the whitespace set recognized by the block patterns.
// Wider than RE2's \s: it also covers \v, no-break and ideographic spaces,
// line/paragraph separators and the BOM, which pasted CJK text often carries.
const spaceClass = `[\t\n\v\f\r \x{00A0}\x{1680}\x{2000}-\x{200A}\x{2028}\x{2029}\x{202F}\x{205F}\x{3000}\x{FEFF}]`

// MarkdownPreprocessor defines the contract for markdown preprocessing.
type MarkdownPreprocessor interface {
	PreprocessMarkdown(ctx context.Context, content string) string
}

// CommonMarkPreprocessor prepares Markdown for the preview renderer.
type CommonMarkPreprocessor struct{}

// PreprocessMarkdown normalizes line endings so goldmark and the
// platform-text scan see the same line structure.
func (p *CommonMarkPreprocessor) PreprocessMarkdown(ctx context.Context, content string) string {
	if ctx.Err() != nil {
		return content
	}
	return normalizeLineEndings(content)
}

// normalizeLineEndings converts \r\n and \r to \n.
func normalizeLineEndings(content string) string {
	return crlfOrCR.ReplaceAllString(content, "\n")
}

// splitLines normalizes line endings, splits on \n and right-trims every line.
// Leading whitespace is kept for list and quote matching.
func splitLines(content string) []string {
	lines := strings.Split(normalizeLineEndings(content), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRightFunc(line, isSpace)
	}
	return lines
}

// compressBlankLines limits consecutive blank lines to one.
func compressBlankLines(content string) string {
	return multipleBlankLines.ReplaceAllString(content, "\n\n")
}

// isSpace reports whether r belongs to spaceClass.
func isSpace(r rune) bool {
	switch r {
	case '\t', '\n', '\v', '\f', '\r', ' ',
		'\u00A0', '\u1680', '\u2028', '\u2029', '\u202F', '\u205F', '\u3000', '\uFEFF':
		return true
	}
	return r >= '\u2000' && r <= '\u200A'
}

// trimSpace trims spaceClass runes from both ends of s.
func trimSpace(s string) string {
	return strings.TrimFunc(s, isSpace)
}
