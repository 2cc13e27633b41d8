// Package pipeline implements the Markdown-to-HTML conversion pipeline.
//
// The native engine is a fixed sequence of pure text transformations:
//   - fenced code extraction behind ___CODE_BLOCK_n___ placeholder tokens
//   - inline rules (code spans, headers, emphasis, strikethrough, links, images)
//   - block rules (blockquotes, horizontal rules, tables, lists)
//   - paragraph wrapping of bare text
//   - placeholder restoration
//
// Each stage takes and returns a string; the placeholder table is an explicit
// value scoped to one Transform call, so a Transformer is safe for concurrent
// use. Excerpt and ReadingTime work on the raw Markdown body, independently
// of the HTML output.
//
// The package also holds the goldmark engine, chroma syntax highlighting, and
// the HTML post-processing used by the site generator: base path rewriting,
// stylesheet injection and table of contents generation.
package pipeline
