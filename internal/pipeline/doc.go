// Package pipeline implements the Markdown conversion stages behind mdcard.
//
// Two independent paths consume the same Markdown source:
//   - Platform text: a single-pass, line-oriented transducer (ToPlatformText)
//     that keeps document structure with plain-text markers and flattens
//     inline markup (SanitizeInline). No I/O, no shared state.
//   - Preview: Markdown to HTML via goldmark with syntax highlighting,
//     sanitized by bluemonday, then assembled into a themed card document
//     (CardAssembly).
//
// Rasterizing the card to PNG is handled by the root mdcard package using
// headless Chrome (go-rod).
package pipeline
