package pipeline

import "strings"

// htmlEscaper covers the five characters that are significant in HTML text
// and attribute values.
var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#39;",
)

// attrEscaper escapes values placed inside double-quoted attributes.
// Ampersands are left alone so query strings and existing entities survive.
var attrEscaper = strings.NewReplacer(
	`"`, "&quot;",
	"<", "&lt;",
	">", "&gt;",
)

// EscapeHTML replaces &, <, >, " and ' with their HTML entities.
func EscapeHTML(s string) string {
	return htmlEscaper.Replace(s)
}

func escapeAttr(s string) string {
	return attrEscaper.Replace(s)
}
