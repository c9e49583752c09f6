package mdcard

import (
	"strconv"
	"strings"
)

// buildThemeCSS turns a theme into custom properties on .card.
// Theme values are validated before they reach here; empty values are skipped
// so card.css falls back to the property's initial value.
func buildThemeCSS(t *Theme) string {
	if t == nil {
		return ""
	}

	var b strings.Builder
	b.WriteString("/* Theme: ")
	b.WriteString(escapeCSSComment(t.Name))
	b.WriteString(" */\n.card {\n")

	if t.Dark {
		writeDeclaration(&b, "color-scheme", "dark")
	}
	writeDeclaration(&b, "--card-background", t.Background)
	writeDeclaration(&b, "--card-radius", t.Radius)
	writeDeclaration(&b, "--card-shadow", t.Shadow)
	writeDeclaration(&b, "--card-border", t.Border)
	writeDeclaration(&b, "--card-blur", t.Blur)
	writeDeclaration(&b, "--card-opacity", strconv.FormatFloat(t.Opacity, 'f', -1, 64))
	writeDeclaration(&b, "--card-text", t.TextColor)
	writeDeclaration(&b, "--card-font", t.FontFamily)
	writeDeclaration(&b, "--card-line-height", t.LineHeight)
	writeDeclaration(&b, "--accent", t.Accent)
	writeDeclaration(&b, "--muted", t.Muted)
	writeDeclaration(&b, "--code-bg", t.CodeBg)
	writeDeclaration(&b, "--code-color", t.CodeColor)

	b.WriteString("}\n")
	return b.String()
}

// writeDeclaration appends "  name: value;" unless value is blank.
func writeDeclaration(b *strings.Builder, name, value string) {
	value = strings.TrimSpace(value)
	if value == "" {
		return
	}
	b.WriteString("  ")
	b.WriteString(name)
	b.WriteString(": ")
	b.WriteString(value)
	b.WriteString(";\n")
}

// escapeCSSComment keeps a display name from closing the comment it sits in.
func escapeCSSComment(s string) string {
	s = strings.ReplaceAll(s, "*/", "* /")
	s = strings.ReplaceAll(s, "\n", " ")
	return s
}
