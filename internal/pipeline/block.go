package pipeline

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	// > quoted line, space after the marker optional
	blockquotePattern = regexp.MustCompile(`(?m)^> ?(.*)$`)

	// A line that is exactly ---
	rulePattern = regexp.MustCompile(`(?m)^---[ \t]*$`)

	// - item, * item, + item, 1. item
	listItemPattern = regexp.MustCompile(`^(?:([-*+])|(\d+)\.)[ \t]+(.*)$`)
)

// TransformBlocks applies the line-anchored rules to text that has already
// been through TransformInline: blockquotes, horizontal rules, tables and
// lists. Placeholder lines never match any of them.
func TransformBlocks(text string) string {
	text = transformBlockquotes(text)
	text = rulePattern.ReplaceAllString(text, "<hr>")

	lines := strings.Split(text, "\n")
	lines = transformTables(lines)
	lines = transformLists(lines)
	return strings.Join(lines, "\n")
}

// transformBlockquotes wraps each quoted line, then merges quote lines that
// follow each other directly into one element joined by line breaks.
func transformBlockquotes(text string) string {
	text = blockquotePattern.ReplaceAllString(text, "<blockquote>$1</blockquote>")
	return strings.ReplaceAll(text, "</blockquote>\n<blockquote>", "<br>")
}

type listKind int

const (
	noList listKind = iota
	unorderedList
	orderedList
)

func (k listKind) closeTag() string {
	if k == orderedList {
		return "</ol>"
	}
	return "</ul>"
}

// transformLists turns list item lines into <li> elements and groups runs of
// items of the same kind into one <ul> or <ol>. Blank lines between items
// of the same list are dropped; a change of marker kind starts a new list.
func transformLists(lines []string) []string {
	out := make([]string, 0, len(lines)+4)
	current := noList
	blanks := 0

	flushBlanks := func() {
		for ; blanks > 0; blanks-- {
			out = append(out, "")
		}
	}

	for _, line := range lines {
		m := listItemPattern.FindStringSubmatch(line)
		if m == nil {
			if current != noList && strings.TrimSpace(line) == "" {
				blanks++
				continue
			}
			if current != noList {
				out = append(out, current.closeTag())
				current = noList
			}
			flushBlanks()
			out = append(out, line)
			continue
		}

		kind := unorderedList
		if m[2] != "" {
			kind = orderedList
		}

		if kind != current {
			if current != noList {
				out = append(out, current.closeTag())
			}
			flushBlanks()
			out = append(out, openList(kind, m[2]))
			current = kind
		}
		blanks = 0
		out = append(out, "<li>"+strings.TrimRight(m[3], " \t")+"</li>")
	}

	if current != noList {
		out = append(out, current.closeTag())
	}
	flushBlanks()
	return out
}

func openList(kind listKind, number string) string {
	if kind == unorderedList {
		return "<ul>"
	}
	if n, err := strconv.Atoi(number); err == nil && n != 1 {
		return `<ol start="` + strconv.Itoa(n) + `">`
	}
	return "<ol>"
}
