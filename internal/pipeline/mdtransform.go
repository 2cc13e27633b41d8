package pipeline

import (
	"context"
	"regexp"
	"strings"
)

// byteOrderMark is stripped from the start of Markdown input.
const byteOrderMark = "\uFEFF"

// Line ending normalization
var crlfOrCR = regexp.MustCompile(`\r\n?`)

// MarkdownPreprocessor defines the contract for markdown preprocessing.
type MarkdownPreprocessor interface {
	PreprocessMarkdown(ctx context.Context, content string) string
}

// Compile-time interface check.
var _ MarkdownPreprocessor = (*LineEndingPreprocessor)(nil)

// LineEndingPreprocessor prepares source text for either engine: it drops a
// leading byte order mark and converts \r\n and \r to \n.
type LineEndingPreprocessor struct{}

// PreprocessMarkdown applies the normalizations. A done context returns the
// content unchanged.
func (p *LineEndingPreprocessor) PreprocessMarkdown(ctx context.Context, content string) string {
	if ctx.Err() != nil {
		return content
	}
	return NormalizeSource(content)
}

// NormalizeSource drops a leading byte order mark and normalizes line endings.
func NormalizeSource(content string) string {
	return normalizeLineEndings(strings.TrimPrefix(content, byteOrderMark))
}

// normalizeLineEndings converts \r\n and \r to \n.
func normalizeLineEndings(content string) string {
	if !strings.Contains(content, "\r") {
		return content
	}
	return crlfOrCR.ReplaceAllString(content, "\n")
}
