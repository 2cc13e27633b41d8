package pipeline

import (
	"math"
	"regexp"
	"strings"
)

// Excerpt and reading time defaults.
const (
	DefaultExcerptLength  = 160
	DefaultWordsPerMinute = 200
)

// excerptEllipsis is appended to truncated excerpts.
const excerptEllipsis = "..."

// Precompiled patterns for stripping Markdown from excerpts.
var (
	excerptHeaderMarker = regexp.MustCompile(`#+ `)
	excerptBoldStar     = regexp.MustCompile(`\*\*`)
	excerptBoldUnder    = regexp.MustCompile(`__`)
	excerptStar         = regexp.MustCompile(`\*`)
	excerptFence        = regexp.MustCompile("(?s)```.*?```")
	excerptInlineCode   = regexp.MustCompile("`([^`]*)`")
	excerptImage        = regexp.MustCompile(`!\[[^\]]*\]\([^)]*\)`)
	excerptLink         = regexp.MustCompile(`\[([^\]]*)\]\([^)]*\)`)
	excerptQuoteMarker  = regexp.MustCompile(`> `)
	excerptNewlines     = regexp.MustCompile(`[\r\n]+`)
)

// Excerpt strips Markdown syntax from a raw body and returns plain text of
// at most maxLen runes followed by "..." when cut. The cut is a hard rune
// boundary, not a word boundary. maxLen <= 0 uses DefaultExcerptLength.
func Excerpt(body string, maxLen int) string {
	if maxLen <= 0 {
		maxLen = DefaultExcerptLength
	}

	s := excerptHeaderMarker.ReplaceAllString(body, "")
	s = excerptBoldStar.ReplaceAllString(s, "")
	s = excerptBoldUnder.ReplaceAllString(s, "")
	s = excerptStar.ReplaceAllString(s, "")
	s = excerptFence.ReplaceAllString(s, "")
	s = excerptInlineCode.ReplaceAllString(s, "$1")
	s = excerptImage.ReplaceAllString(s, "")
	s = excerptLink.ReplaceAllString(s, "$1")
	s = excerptQuoteMarker.ReplaceAllString(s, "")
	s = excerptNewlines.ReplaceAllString(s, " ")
	s = strings.TrimSpace(s)

	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return strings.TrimSpace(string(runes[:maxLen])) + excerptEllipsis
}

// ReadingTime estimates minutes to read a raw body: whitespace-separated
// words divided by wpm, rounded up, never less than one.
// wpm <= 0 uses DefaultWordsPerMinute.
func ReadingTime(body string, wpm int) int {
	if wpm <= 0 {
		wpm = DefaultWordsPerMinute
	}
	words := len(strings.Fields(body))
	minutes := int(math.Ceil(float64(words) / float64(wpm)))
	return max(minutes, 1)
}
