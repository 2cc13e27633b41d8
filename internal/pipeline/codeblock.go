package pipeline

import (
	"regexp"
	"strconv"
	"strings"
)

// Placeholder tokens stand in for extracted fenced code while the inline and
// block stages run. A token always occupies a whole line of the working text.
const (
	placeholderPrefix = "___CODE_BLOCK_"
	placeholderSuffix = "___"

	// tokenGuard replaces the first underscore of an author-written token
	// look-alike. Restore turns it back into an underscore entity.
	tokenGuard = "\uE001" // U+E001: Private Use Area
)

// DefaultCodeLanguage tags fences opened without a language.
const DefaultCodeLanguage = "text"

var (
	// Fence: a line of ``` with an optional language tag such as c++ or
	// objective-c, up to the next ``` line
	fencePattern = regexp.MustCompile("(?ms)^```([^\\s`]*)[ \\t]*\\n(.*?)^```[ \\t]*$")

	// Any placeholder token
	placeholderPattern = regexp.MustCompile(`___CODE_BLOCK_(\d+)___`)

	// A line that holds nothing but a placeholder token
	placeholderLine = regexp.MustCompile(`^___CODE_BLOCK_\d+___$`)
)

// CodeRenderer turns the raw content of a fenced block into an HTML fragment.
// lang is never empty; code is unescaped.
type CodeRenderer func(lang, code string) string

// PlainCodeRenderer escapes code and wraps it in a language-tagged pre/code pair.
func PlainCodeRenderer(lang, code string) string {
	return `<pre><code class="language-` + escapeAttr(lang) + `">` + EscapeHTML(code) + "</code></pre>"
}

// PlaceholderTable holds rendered code fragments. Index n belongs to the
// token ___CODE_BLOCK_n___.
type PlaceholderTable []string

// ExtractCodeBlocks replaces every terminated fence with a placeholder token
// and returns the rewritten text along with the rendered fragments.
// An unterminated fence is left in place.
func ExtractCodeBlocks(text string, render CodeRenderer) (string, PlaceholderTable) {
	if render == nil {
		render = PlainCodeRenderer
	}

	matches := fencePattern.FindAllStringSubmatchIndex(text, -1)
	if len(matches) == 0 {
		return neutralizeTokens(text), nil
	}

	var (
		out   strings.Builder
		table = make(PlaceholderTable, 0, len(matches))
		last  int
	)
	out.Grow(len(text))

	for _, m := range matches {
		out.WriteString(neutralizeTokens(text[last:m[0]]))

		lang := text[m[2]:m[3]]
		if lang == "" {
			lang = DefaultCodeLanguage
		}
		code := trimCode(text[m[4]:m[5]])

		out.WriteString(placeholderToken(len(table)))
		table = append(table, render(lang, code))
		last = m[1]
	}
	out.WriteString(neutralizeTokens(text[last:]))

	return out.String(), table
}

// Restore swaps each token for its fragment in a single pass, once per
// index. Fragments are never rescanned, so code that mentions a token is
// shown as written. Neutralized look-alikes come back as &#95;.
func (t PlaceholderTable) Restore(text string) string {
	if len(t) > 0 {
		used := make([]bool, len(t))
		text = placeholderPattern.ReplaceAllStringFunc(text, func(m string) string {
			n, err := strconv.Atoi(m[len(placeholderPrefix) : len(m)-len(placeholderSuffix)])
			if err != nil || n >= len(t) || used[n] {
				return m
			}
			used[n] = true
			return t[n]
		})
	}
	if !strings.Contains(text, tokenGuard) {
		return text
	}
	return strings.ReplaceAll(text, tokenGuard, "&#95;")
}

func placeholderToken(n int) string {
	return placeholderPrefix + strconv.Itoa(n) + placeholderSuffix
}

// neutralizeTokens breaks up token look-alikes written by the author so the
// restorer only ever meets tokens issued by ExtractCodeBlocks.
func neutralizeTokens(s string) string {
	if !strings.Contains(s, placeholderPrefix) {
		return s
	}
	return strings.ReplaceAll(s, placeholderPrefix, tokenGuard+placeholderPrefix[1:])
}

// trimCode drops leading blank lines and trailing whitespace, keeping the
// indentation of the first code line.
func trimCode(code string) string {
	code = strings.TrimRight(code, " \t\n")
	for {
		nl := strings.IndexByte(code, '\n')
		if nl == -1 || strings.TrimSpace(code[:nl]) != "" {
			return code
		}
		code = code[nl+1:]
	}
}
