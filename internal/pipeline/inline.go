package pipeline

import (
	"regexp"
	"strconv"
	"strings"
)

// Code spans are parked behind Private Use Area markers while the other
// inline rules run, so nothing inside a span is read as Markdown.
const (
	codeSpanStart = "\uE002" // U+E002: Private Use Area
	codeSpanEnd   = "\uE003" // U+E003: Private Use Area

	// Link and image destinations get the same treatment so emphasis
	// characters inside a URL are never rewritten.
	linkDestStart = "\uE004" // U+E004: Private Use Area
	linkDestEnd   = "\uE005" // U+E005: Private Use Area
)

var (
	// Inline code span on a single line
	codeSpanPattern = regexp.MustCompile("`([^`\n]+)`")

	// Parked code span marker
	codeSpanMarker = regexp.MustCompile(codeSpanStart + `(\d+)` + codeSpanEnd)

	// ](url) tail shared by links and images
	linkDestPattern = regexp.MustCompile(`\]\(([^()\s]+)\)`)

	// Parked destination marker
	linkDestMarker = regexp.MustCompile(linkDestStart + `(\d+)` + linkDestEnd)

	// ATX headers, levels 1 to 3
	headerPattern = regexp.MustCompile(`(?m)^(#{1,3})[ \t]+(.+?)[ \t]*$`)

	// ***x***
	strongEmPattern = regexp.MustCompile(`\*\*\*([^\s*]|[^\s*].*?[^\s*])\*\*\*`)

	// **x**
	boldStarPattern = regexp.MustCompile(`\*\*([^\s*]|[^\s*].*?[^\s*])\*\*`)

	// __x__ bounded by non-word characters
	boldUnderscorePattern = regexp.MustCompile(`(?m)(^|\W)__([^\s_]|[^\s_].*?[^\s_])__(\W|$)`)

	// *x*
	italicStarPattern = regexp.MustCompile(`\*([^\s*]|[^\s*].*?[^\s*])\*`)

	// _x_ bounded by non-word characters
	italicUnderscorePattern = regexp.MustCompile(`(?m)(^|\W)_([^\s_]|[^\s_].*?[^\s_])_(\W|$)`)

	// ~~x~~
	strikePattern = regexp.MustCompile(`~~([^\s~]|[^\s~].*?[^\s~])~~`)

	// [text](url)
	linkPattern = regexp.MustCompile(`\[([^\[\]]+)\]\(([^()\s]+)\)`)

	// ![alt](url)
	imagePattern = regexp.MustCompile(`!\[([^\[\]]*)\]\(([^()\s]+)\)`)
)

// TransformInline applies the inline rules to every part of text that is not
// a placeholder token. Rules run in a fixed order: code spans, headers,
// strong emphasis, bold, italic, strikethrough, links, images.
func TransformInline(text string) string {
	tokens := placeholderPattern.FindAllStringIndex(text, -1)
	if len(tokens) == 0 {
		return transformInlineSegment(text)
	}

	var out strings.Builder
	out.Grow(len(text))
	last := 0
	for _, tok := range tokens {
		out.WriteString(transformInlineSegment(text[last:tok[0]]))
		out.WriteString(text[tok[0]:tok[1]])
		last = tok[1]
	}
	out.WriteString(transformInlineSegment(text[last:]))
	return out.String()
}

func transformInlineSegment(s string) string {
	if s == "" {
		return s
	}

	s, spans := parkCodeSpans(s)
	s, dests := parkLinkDestinations(s)

	s = headerPattern.ReplaceAllStringFunc(s, func(m string) string {
		sub := headerPattern.FindStringSubmatch(m)
		level := strconv.Itoa(len(sub[1]))
		return "<h" + level + ">" + sub[2] + "</h" + level + ">"
	})

	s = strongEmPattern.ReplaceAllString(s, "<strong><em>$1</em></strong>")
	s = boldStarPattern.ReplaceAllString(s, "<strong>$1</strong>")
	s = replaceBounded(boldUnderscorePattern, s, "${1}<strong>${2}</strong>${3}")
	s = italicStarPattern.ReplaceAllString(s, "<em>$1</em>")
	s = replaceBounded(italicUnderscorePattern, s, "${1}<em>${2}</em>${3}")
	s = strikePattern.ReplaceAllString(s, "<del>$1</del>")

	s = replaceLinks(s, dests)
	s = imagePattern.ReplaceAllStringFunc(s, func(m string) string {
		sub := imagePattern.FindStringSubmatch(m)
		src := restoreLinkDestinations(sub[2], dests)
		return `<img src="` + escapeAttr(src) + `" alt="` + escapeAttr(sub[1]) + `" loading="lazy">`
	})

	// Destinations not claimed by a link or image go back as written.
	s = restoreLinkDestinations(s, dests)
	return restoreCodeSpans(s, spans)
}

// parkCodeSpans renders each code span and leaves a numbered marker behind.
func parkCodeSpans(s string) (string, []string) {
	var spans []string
	s = codeSpanPattern.ReplaceAllStringFunc(s, func(m string) string {
		spans = append(spans, "<code>"+EscapeHTML(m[1:len(m)-1])+"</code>")
		return codeSpanStart + strconv.Itoa(len(spans)-1) + codeSpanEnd
	})
	return s, spans
}

func restoreCodeSpans(s string, spans []string) string {
	return restoreParked(s, codeSpanMarker, spans)
}

// parkLinkDestinations hides the URL of every ](url) tail behind a numbered
// marker, keeping the brackets and parentheses for the link rules.
func parkLinkDestinations(s string) (string, []string) {
	var dests []string
	s = linkDestPattern.ReplaceAllStringFunc(s, func(m string) string {
		dests = append(dests, m[2:len(m)-1])
		return "](" + linkDestStart + strconv.Itoa(len(dests)-1) + linkDestEnd + ")"
	})
	return s, dests
}

func restoreLinkDestinations(s string, dests []string) string {
	return restoreParked(s, linkDestMarker, dests)
}

// restoreParked swaps each marker matched by re for the value it indexes.
// The marker's first submatch holds the index.
func restoreParked(s string, re *regexp.Regexp, values []string) string {
	if len(values) == 0 {
		return s
	}
	return re.ReplaceAllStringFunc(s, func(m string) string {
		sub := re.FindStringSubmatch(m)
		n, err := strconv.Atoi(sub[1])
		if err != nil || n >= len(values) {
			return m
		}
		return values[n]
	})
}

// replaceBounded reapplies a pattern whose boundary characters are part of
// the match until nothing changes, so neighbours sharing a boundary are
// both converted.
func replaceBounded(re *regexp.Regexp, s, repl string) string {
	for {
		next := re.ReplaceAllString(s, repl)
		if next == s {
			return s
		}
		s = next
	}
}

// replaceLinks converts [text](url), skipping matches that belong to an image.
// Destinations arrive parked and are restored here.
func replaceLinks(s string, dests []string) string {
	matches := linkPattern.FindAllStringSubmatchIndex(s, -1)
	if len(matches) == 0 {
		return s
	}

	var out strings.Builder
	out.Grow(len(s))
	last := 0
	for _, m := range matches {
		if m[0] > 0 && s[m[0]-1] == '!' {
			continue
		}
		out.WriteString(s[last:m[0]])
		href := restoreLinkDestinations(s[m[4]:m[5]], dests)
		out.WriteString(`<a href="` + escapeAttr(href) + `">` + s[m[2]:m[3]] + "</a>")
		last = m[1]
	}
	out.WriteString(s[last:])
	return out.String()
}
