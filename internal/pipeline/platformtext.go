package pipeline

import (
	"regexp"
	"strings"
)

// Structural markers of the platform-text dialect.
const (
	CodeStartMarker = "—— code ——"
	CodeEndMarker   = "—— end ——"
	QuotePrefix     = "｜"
	BulletPrefix    = "• "
	headingOpen     = "【"
	headingClose    = "】"
	fenceMarker     = "```"
)

// Block patterns, evaluated only outside code fences.
var (
	headingPattern   = regexp.MustCompile(`^(#{1,6})` + spaceClass + `+(.*)$`)
	unorderedPattern = regexp.MustCompile(`^` + spaceClass + `*[-*+]` + spaceClass + `+(.+)$`)
	orderedPattern   = regexp.MustCompile(`^` + spaceClass + `*(\d+)\.` + spaceClass + `+(.+)$`)
	quotePattern     = regexp.MustCompile(`^` + spaceClass + `*>` + spaceClass + `?(.*)$`)
)

// lineKind classifies one normalized source line.
type lineKind int

const (
	kindParagraph lineKind = iota
	kindFenceOpen
	kindFenceClose
	kindFenceBody
	kindBlank
	kindHeading
	kindUnorderedItem
	kindOrderedItem
	kindQuote
)

var lineKindNames = [...]string{
	kindParagraph:     "paragraph",
	kindFenceOpen:     "fence-open",
	kindFenceClose:    "fence-close",
	kindFenceBody:     "fence-body",
	kindBlank:         "blank",
	kindHeading:       "heading",
	kindUnorderedItem: "unordered-item",
	kindOrderedItem:   "ordered-item",
	kindQuote:         "quote",
}

func (k lineKind) String() string {
	if int(k) < len(lineKindNames) {
		return lineKindNames[k]
	}
	return "unknown"
}

// classifiedLine is a line together with the payload its kind matched.
// text is the raw payload; inline sanitization happens on emit.
type classifiedLine struct {
	kind    lineKind
	level   int    // heading level 1-6
	numeral string // ordered item number, verbatim
	text    string
}

// classifyLine applies the block rules in priority order; the first match wins.
func classifyLine(line string, inCodeFence bool) classifiedLine {
	if strings.HasPrefix(trimSpace(line), fenceMarker) {
		if inCodeFence {
			return classifiedLine{kind: kindFenceClose}
		}
		return classifiedLine{kind: kindFenceOpen}
	}

	if inCodeFence {
		return classifiedLine{kind: kindFenceBody, text: line}
	}

	if trimSpace(line) == "" {
		return classifiedLine{kind: kindBlank}
	}

	if m := headingPattern.FindStringSubmatch(line); m != nil {
		return classifiedLine{kind: kindHeading, level: len(m[1]), text: trimSpace(m[2])}
	}

	if m := unorderedPattern.FindStringSubmatch(line); m != nil {
		return classifiedLine{kind: kindUnorderedItem, text: trimSpace(m[1])}
	}

	if m := orderedPattern.FindStringSubmatch(line); m != nil {
		return classifiedLine{kind: kindOrderedItem, numeral: m[1], text: trimSpace(m[2])}
	}

	if m := quotePattern.FindStringSubmatch(line); m != nil {
		return classifiedLine{kind: kindQuote, text: trimSpace(m[1])}
	}

	return classifiedLine{kind: kindParagraph, text: line}
}

// platformTextWriter accumulates output lines for one conversion.
type platformTextWriter struct {
	lines []string
}

func (w *platformTextWriter) push(lines ...string) {
	w.lines = append(w.lines, lines...)
}

// ensureBlankLineBefore appends an empty line unless the buffer is empty
// or already ends with one.
func (w *platformTextWriter) ensureBlankLineBefore() {
	if len(w.lines) == 0 {
		return
	}
	if w.lines[len(w.lines)-1] != "" {
		w.lines = append(w.lines, "")
	}
}

// emit appends the output lines for a classified line.
func (w *platformTextWriter) emit(cl classifiedLine) {
	switch cl.kind {
	case kindFenceOpen:
		w.push(CodeStartMarker)
	case kindFenceClose:
		w.push(CodeEndMarker)
	case kindFenceBody:
		w.push(cl.text)
	case kindBlank:
		w.push("")
	case kindHeading:
		title := SanitizeInline(cl.text)
		switch {
		case cl.level == 1:
			w.push(headingOpen+title+headingClose, "")
		case cl.level <= 3:
			w.ensureBlankLineBefore()
			w.push(headingOpen + title + headingClose)
		default:
			w.push(title)
		}
	case kindUnorderedItem:
		w.push(BulletPrefix + SanitizeInline(cl.text))
	case kindOrderedItem:
		w.push(cl.numeral + ") " + SanitizeInline(cl.text))
	case kindQuote:
		w.push(QuotePrefix + SanitizeInline(cl.text))
	default:
		w.push(SanitizeInline(cl.text))
	}
}

// String joins the buffer, caps blank runs at one line and trims the result.
func (w *platformTextWriter) String() string {
	return trimSpace(compressBlankLines(strings.Join(w.lines, "\n")))
}

// ToPlatformText converts Markdown into the platform-text dialect: structure
// is kept with plain-text markers, inline markup is flattened.
//
// The conversion is a single forward scan with no lookahead. An unterminated
// code fence stays open until the end of the input and no closing marker is
// added. The function is total and keeps all state local, so it is safe for
// concurrent use.
func ToPlatformText(markdown string) string {
	lines := splitLines(markdown)
	w := &platformTextWriter{lines: make([]string, 0, len(lines)+len(lines)/4)}

	inCodeFence := false
	for _, line := range lines {
		cl := classifyLine(line, inCodeFence)
		switch cl.kind {
		case kindFenceOpen:
			inCodeFence = true
		case kindFenceClose:
			inCodeFence = false
		}
		w.emit(cl)
	}

	return w.String()
}
