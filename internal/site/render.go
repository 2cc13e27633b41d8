package site

import (
	"fmt"
	"html/template"
	"strings"

	"github.com/alnah/go-md2site/internal/assets"
	"github.com/alnah/go-md2site/internal/content"
	"github.com/alnah/go-md2site/internal/pipeline"
)

// syntaxStylesheet is linked from every page when highlighting is on.
const syntaxStylesheet = "/styles/syntax.css"

// tocSettings selects h2 and h3 headings; one heading is not worth a TOC.
var tocSettings = pipeline.TOCData{
	Title:      tocTitle,
	MinDepth:   2,
	MaxDepth:   3,
	MinEntries: 2,
}

// templateFuncs are available to every template.
var templateFuncs = template.FuncMap{
	"plural":     plural,
	"capitalize": content.Capitalize,
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}

// renderer holds one parsed template per page, each sharing the layout and
// partials.
type renderer struct {
	pages map[string]*template.Template
}

func newRenderer(ts *assets.TemplateSet) (*renderer, error) {
	layout, err := template.New(assets.TemplateBase).Funcs(templateFuncs).Parse(ts.Templates[assets.TemplateBase])
	if err != nil {
		return nil, fmt.Errorf("%w: %s/%s: %v", ErrTemplate, ts.Name, assets.TemplateBase, err)
	}
	if _, err := layout.Parse(ts.Templates[assets.TemplatePartials]); err != nil {
		return nil, fmt.Errorf("%w: %s/%s: %v", ErrTemplate, ts.Name, assets.TemplatePartials, err)
	}

	r := &renderer{pages: make(map[string]*template.Template)}
	for _, name := range ts.Pages() {
		page, err := layout.Clone()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrTemplate, err)
		}
		if _, err := page.Parse(ts.Templates[name]); err != nil {
			return nil, fmt.Errorf("%w: %s/%s: %v", ErrTemplate, ts.Name, name, err)
		}
		r.pages[name] = page
	}
	return r, nil
}

func (r *renderer) render(name string, data *PageData) (string, error) {
	page, ok := r.pages[name]
	if !ok {
		return "", fmt.Errorf("%w: no page template %q", ErrTemplate, name)
	}

	var buf strings.Builder
	if err := page.ExecuteTemplate(&buf, assets.TemplateBase, data); err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrTemplate, name, err)
	}
	return buf.String(), nil
}

// writePage renders a page, links the syntax stylesheet, applies the base
// path and writes the result to rel.
func (b *build) writePage(rel, name string, data *PageData) error {
	out, err := b.renderer.render(name, data)
	if err != nil {
		return err
	}

	if b.syntaxCSS != "" {
		out = b.styles.InjectStylesheet(b.ctx, out, syntaxStylesheet)
	}

	out, err = pipeline.RewriteBasePath(out, b.cfg.Site.BasePath)
	if err != nil {
		return fmt.Errorf("%s: rewriting base path: %w", rel, err)
	}

	return b.write(rel, []byte(out))
}
