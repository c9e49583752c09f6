package pipeline

import (
	"regexp"
	"strings"
)

// Full-width decorations used by the platform-text dialect.
const (
	fullwidthLeft  = "（"
	fullwidthRight = "）"
	imageLabel     = "[图片]"
)

// inlineRule is one global rewrite pass of the inline sanitizer.
type inlineRule struct {
	name    string
	re      *regexp.Regexp
	replace func(groups []string) string
}

// keepFirst returns the first capture group, dropping the delimiters around it.
func keepFirst(groups []string) string {
	return groups[1]
}

// inlineRules run in order. Images and links must go before emphasis
// because their brackets and URLs may contain * and _.
var inlineRules = []inlineRule{
	{
		name: "image",
		re:   regexp.MustCompile(`!\[([^\]]*)\]\(([^)]+)\)`),
		replace: func(g []string) string {
			alt := ""
			if g[1] != "" {
				alt = " " + g[1]
			}
			return imageLabel + alt + fullwidthLeft + g[2] + fullwidthRight
		},
	},
	{
		name: "link",
		re:   regexp.MustCompile(`\[([^\]]+)\]\(([^)]+)\)`),
		replace: func(g []string) string {
			return g[1] + fullwidthLeft + g[2] + fullwidthRight
		},
	},
	{name: "strikethrough", re: regexp.MustCompile(`~~([^~]+)~~`), replace: keepFirst},
	{name: "bold", re: regexp.MustCompile(`\*\*([^*]+)\*\*`), replace: keepFirst},
	{name: "bold-underscore", re: regexp.MustCompile(`__([^_]+)__`), replace: keepFirst},
	{name: "italic", re: regexp.MustCompile(`\*([^*]+)\*`), replace: keepFirst},
	{name: "italic-underscore", re: regexp.MustCompile(`_([^_]+)_`), replace: keepFirst},
	{name: "code", re: regexp.MustCompile("`([^`]+)`"), replace: keepFirst},
	{name: "tag", re: regexp.MustCompile(`<[^>]+>`), replace: func([]string) string { return "" }},
}

// SanitizeInline flattens inline Markdown spans (images, links, emphasis,
// inline code, raw tags) to plain text. Malformed markup is left as is.
func SanitizeInline(text string) string {
	for _, rule := range inlineRules {
		text = replaceAllSubmatchFunc(rule.re, text, rule.replace)
	}
	return text
}

// replaceAllSubmatchFunc replaces every non-overlapping match of re in s,
// passing the match and its capture groups to fn.
func replaceAllSubmatchFunc(re *regexp.Regexp, s string, fn func([]string) string) string {
	matches := re.FindAllStringSubmatchIndex(s, -1)
	if matches == nil {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))
	last := 0
	groups := make([]string, re.NumSubexp()+1)
	for _, m := range matches {
		for i := range groups {
			start, end := m[2*i], m[2*i+1]
			if start < 0 {
				groups[i] = ""
				continue
			}
			groups[i] = s[start:end]
		}
		b.WriteString(s[last:m[0]])
		b.WriteString(fn(groups))
		last = m[1]
	}
	b.WriteString(s[last:])
	return b.String()
}
