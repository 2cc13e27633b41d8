package pipeline

import (
	"context"
	"fmt"
	"html"
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

// StylesheetInjector defines the contract for stylesheet links in HTML pages.
type StylesheetInjector interface {
	InjectStylesheet(ctx context.Context, htmlContent, href string) string
}

// Compile-time interface checks.
var (
	_ StylesheetInjector = (*StylesheetInjection)(nil)
	_ TOCBuilder         = (*TOCGenerator)(nil)
)

// StylesheetInjection adds a <link rel="stylesheet"> to HTML content.
type StylesheetInjection struct{}

// InjectStylesheet inserts a stylesheet link into HTML content.
// Tries </head> first, then <body>, then prepends to the HTML.
// A page that already links href is returned unchanged.
func (s *StylesheetInjection) InjectStylesheet(ctx context.Context, htmlContent, href string) string {
	if href == "" {
		return htmlContent
	}

	// Check for cancellation
	if ctx.Err() != nil {
		return htmlContent
	}

	escaped := html.EscapeString(href)
	if strings.Contains(htmlContent, `href="`+escaped+`"`) {
		return htmlContent
	}

	link := `<link rel="stylesheet" href="` + escaped + `">`
	lowerHTML := strings.ToLower(htmlContent)

	// Try inserting before </head>
	if idx := strings.Index(lowerHTML, "</head>"); idx != -1 {
		return htmlContent[:idx] + link + "\n" + htmlContent[idx:]
	}

	// Try inserting after <body>
	if idx := strings.Index(lowerHTML, "<body"); idx != -1 {
		closeIdx := strings.Index(htmlContent[idx:], ">")
		if closeIdx != -1 {
			insertPos := idx + closeIdx + 1
			return htmlContent[:insertPos] + link + htmlContent[insertPos:]
		}
	}

	// Fallback: prepend
	return link + htmlContent
}

// TOCData holds table of contents settings.
type TOCData struct {
	Title      string
	MinDepth   int // Minimum heading level (default: 2, skips H1)
	MaxDepth   int // Maximum heading level (default: 3)
	MinEntries int // Fewer headings than this produce no TOC
}

// TOCBuilder defines the contract for table of contents generation.
type TOCBuilder interface {
	BuildTOC(ctx context.Context, htmlContent string, data *TOCData) (body, toc string, err error)
}

// headingInfo represents an extracted heading from HTML.
type headingInfo struct {
	Level int    // 1-6
	ID    string // anchor ID
	Text  string // heading text content
}

var (
	// h1-h6 with an id attribute.
	// Captures: 1=level, 2=id, 3=inner HTML (may contain inline tags)
	headingPattern = regexp.MustCompile(`(?is)<h([1-6])[^>]*\bid="([^"]*)"[^>]*>(.*?)</h[1-6]>`)

	// Any h1-h6 element. Captures: 1=level, 2=attributes, 3=inner HTML
	anyHeadingPattern = regexp.MustCompile(`(?is)<h([1-6])(\s[^>]*)?>(.*?)</h[1-6]>`)

	// HTML tags, stripped from heading text
	htmlTagPattern = regexp.MustCompile(`<[^>]*>`)
)

// stripHTMLTags removes HTML tags from a string, decodes HTML entities,
// and trims whitespace. Decoding entities avoids double-encoding when the
// text is escaped again for the TOC.
func stripHTMLTags(s string) string {
	s = htmlTagPattern.ReplaceAllString(s, "")
	s = html.UnescapeString(s)
	return strings.TrimSpace(s)
}

// anchorID derives a heading anchor: lowercase letters and digits, with
// runs of anything else collapsed to a single dash.
func anchorID(text string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(text) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if dash && b.Len() > 0 {
				b.WriteByte('-')
			}
			b.WriteRune(r)
			dash = false
			continue
		}
		dash = true
	}
	if b.Len() == 0 {
		return "section"
	}
	return b.String()
}

// addHeadingIDs gives every heading without an id a unique one derived from
// its text. Existing ids are kept and reserved.
func addHeadingIDs(htmlContent string) string {
	used := make(map[string]int)
	for _, m := range headingPattern.FindAllStringSubmatch(htmlContent, -1) {
		used[m[2]]++
	}

	return anyHeadingPattern.ReplaceAllStringFunc(htmlContent, func(h string) string {
		m := anyHeadingPattern.FindStringSubmatch(h)
		if strings.Contains(strings.ToLower(m[2]), "id=") {
			return h
		}

		id := anchorID(stripHTMLTags(m[3]))
		if n := used[id]; n > 0 {
			used[id]++
			id += "-" + strconv.Itoa(n)
		}
		used[id]++

		return "<h" + m[1] + m[2] + ` id="` + id + `">` + m[3] + "</h" + m[1] + ">"
	})
}

// extractHeadings parses HTML and returns headings between minDepth and maxDepth.
// Headings without IDs are skipped.
func extractHeadings(htmlContent string, minDepth, maxDepth int) []headingInfo {
	matches := headingPattern.FindAllStringSubmatch(htmlContent, -1)
	if len(matches) == 0 {
		return nil
	}

	var headings []headingInfo
	for _, m := range matches {
		level, _ := strconv.Atoi(m[1])
		if level < minDepth || level > maxDepth {
			continue
		}
		headings = append(headings, headingInfo{
			Level: level,
			ID:    m[2],
			Text:  stripHTMLTags(m[3]),
		})
	}
	return headings
}

// numberingState tracks hierarchical numbering for TOC entries.
// Supports normalization (first heading becomes level 1) and gap skipping.
type numberingState struct {
	counters     [6]int // counters[0] = level 1 count, etc.
	minLevelSeen int    // for normalization (0 = not set)
	lastLevel    int    // for tracking parent relationships
}

// next returns the next number string and effective depth for the given heading level.
func (n *numberingState) next(level int) (numStr string, effectiveDepth int) {
	if n.minLevelSeen == 0 {
		n.minLevelSeen = level
	}

	effectiveDepth = max(level-n.minLevelSeen+1, 1)

	// H2 -> H4 becomes depth 1 -> depth 2 (not depth 3)
	if n.lastLevel > 0 && effectiveDepth > n.lastLevel+1 {
		effectiveDepth = n.lastLevel + 1
	}

	for i := effectiveDepth; i < 6; i++ {
		n.counters[i] = 0
	}

	n.counters[effectiveDepth-1]++
	n.lastLevel = effectiveDepth

	parts := make([]string, 0, effectiveDepth)
	for i := 0; i < effectiveDepth; i++ {
		parts = append(parts, strconv.Itoa(n.counters[i]))
	}
	return strings.Join(parts, ".") + ".", effectiveDepth
}

// generateNumberedTOC creates HTML for a numbered table of contents.
// Uses <div> elements instead of <ul>/<li> to avoid CSS list-style conflicts.
func generateNumberedTOC(headings []headingInfo, title string) string {
	if len(headings) == 0 {
		return ""
	}

	var buf strings.Builder
	buf.WriteString(`<nav class="toc">`)

	if title != "" {
		buf.WriteString(`<h2 class="toc-title">`)
		buf.WriteString(html.EscapeString(title))
		buf.WriteString(`</h2>`)
	}

	buf.WriteString(`<div class="toc-list">`)

	numbering := &numberingState{}

	for _, h := range headings {
		num, effectiveDepth := numbering.next(h.Level)
		indent := float64(effectiveDepth-1) * 1.5

		buf.WriteString(`<div class="toc-item"`)
		if indent > 0 {
			fmt.Fprintf(&buf, ` style="padding-left:%.1fem"`, indent)
		}
		buf.WriteString(`><a href="#`)
		buf.WriteString(html.EscapeString(h.ID))
		buf.WriteString(`">`)
		buf.WriteString(num)
		buf.WriteString(` `)
		buf.WriteString(html.EscapeString(h.Text))
		buf.WriteString(`</a></div>`)
	}

	buf.WriteString(`</div></nav>`)
	return buf.String()
}

// TOCGenerator implements TOCBuilder.
type TOCGenerator struct{}

// BuildTOC adds anchor ids to the headings of an HTML fragment and builds a
// numbered table of contents from those between MinDepth and MaxDepth.
// It returns the fragment with ids and the TOC markup, which is empty when
// data is nil or fewer than MinEntries headings qualify.
func (t *TOCGenerator) BuildTOC(ctx context.Context, htmlContent string, data *TOCData) (string, string, error) {
	if data == nil {
		return htmlContent, "", nil
	}

	// Check for cancellation
	if ctx.Err() != nil {
		return "", "", ctx.Err()
	}

	body := addHeadingIDs(htmlContent)

	headings := extractHeadings(body, data.MinDepth, data.MaxDepth)
	if len(headings) == 0 || len(headings) < data.MinEntries {
		return body, "", nil
	}

	return body, generateNumberedTOC(headings, data.Title), nil
}
