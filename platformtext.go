package mdcard

import "github.com/jaydendev/mdcard/internal/pipeline"

// Markers used in platform text output.
const (
	CodeStartMarker = pipeline.CodeStartMarker
	CodeEndMarker   = pipeline.CodeEndMarker
	QuotePrefix     = pipeline.QuotePrefix
	BulletPrefix    = pipeline.BulletPrefix
)

// PlatformText converts Markdown to the plain-text dialect pasted into chat
// apps that do not render Markdown. It is total: every input, including the
// empty string, yields a result. Safe for concurrent use.
func PlatformText(markdown string) string {
	return pipeline.ToPlatformText(markdown)
}
