package pipeline

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// ErrUnknownStyle indicates the highlight style is not registered with chroma.
var ErrUnknownStyle = errors.New("unknown highlight style")

// HighlightStyles returns the names of the available highlight styles.
func HighlightStyles() []string {
	return styles.Names()
}

func lookupStyle(name string) (*chroma.Style, error) {
	style, ok := styles.Registry[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownStyle, name)
	}
	return style, nil
}

// NewChromaRenderer returns a CodeRenderer that tokenizes fenced code with
// chroma and emits class-based markup for the named style. Languages chroma
// does not know, and tokenizer failures, fall back to PlainCodeRenderer.
func NewChromaRenderer(styleName string) (CodeRenderer, error) {
	style, err := lookupStyle(styleName)
	if err != nil {
		return nil, err
	}
	formatter := chromahtml.New(chromahtml.WithClasses(true))

	return func(lang, code string) string {
		lexer := lexers.Get(lang)
		if lexer == nil {
			return PlainCodeRenderer(lang, code)
		}
		iterator, err := chroma.Coalesce(lexer).Tokenise(nil, code)
		if err != nil {
			return PlainCodeRenderer(lang, code)
		}

		var b strings.Builder
		b.WriteString(`<div class="highlight" data-lang="` + escapeAttr(lang) + `">`)
		if err := formatter.Format(&b, style, iterator); err != nil {
			return PlainCodeRenderer(lang, code)
		}
		b.WriteString("</div>")
		return b.String()
	}, nil
}

// SyntaxCSS returns the stylesheet matching the classes emitted by
// NewChromaRenderer and the goldmark engine for the named style.
func SyntaxCSS(styleName string) (string, error) {
	style, err := lookupStyle(styleName)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	if err := chromahtml.New(chromahtml.WithClasses(true)).WriteCSS(&b, style); err != nil {
		return "", fmt.Errorf("writing %s stylesheet: %w", styleName, err)
	}
	return b.String(), nil
}
