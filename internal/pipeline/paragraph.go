package pipeline

import (
	"regexp"
	"strings"
)

var (
	// One or more blank lines
	blankLinesPattern = regexp.MustCompile(`\n(?:[ \t]*\n)+`)

	// A line opening or closing a block-level element
	blockTagPattern = regexp.MustCompile(`^[ \t]*</?(?:h[1-6]|ul|ol|li|blockquote|hr|table|thead|tbody|tr|th|td|pre|div|p|section|figure)\b`)
)

// WrapParagraphs wraps bare text in <p> elements. The text is split on blank
// lines, and each block is further split where block-level lines meet bare
// text lines. Block-level chunks and chunks holding a placeholder token are
// left untouched. Newlines inside a paragraph are kept. Chunks are joined
// with a blank line.
func WrapParagraphs(text string) string {
	text = strings.Trim(text, "\n")
	if strings.TrimSpace(text) == "" {
		return ""
	}

	var chunks []string
	for _, block := range blankLinesPattern.Split(text, -1) {
		for _, chunk := range segmentBlock(block) {
			if strings.TrimSpace(chunk) == "" {
				continue
			}
			chunks = append(chunks, wrapChunk(chunk))
		}
	}
	return strings.Join(chunks, "\n\n")
}

// segmentBlock groups consecutive lines by whether they are block-level.
func segmentBlock(block string) []string {
	lines := strings.Split(block, "\n")

	var (
		chunks  []string
		start   int
		inBlock = isBlockLine(lines[0])
	)
	for i := 1; i < len(lines); i++ {
		if isBlockLine(lines[i]) != inBlock {
			chunks = append(chunks, strings.Join(lines[start:i], "\n"))
			start = i
			inBlock = !inBlock
		}
	}
	return append(chunks, strings.Join(lines[start:], "\n"))
}

func isBlockLine(line string) bool {
	return blockTagPattern.MatchString(line) || placeholderLine.MatchString(strings.TrimSpace(line))
}

func wrapChunk(chunk string) string {
	if isBlockLine(chunk) || placeholderPattern.MatchString(chunk) {
		return chunk
	}
	return "<p>" + chunk + "</p>"
}
