package assets

// DefaultTemplateSetName is the name of the built-in template set.
const DefaultTemplateSetName = "default"

// DefaultStyleName is the name of the built-in theme stylesheet.
const DefaultStyleName = "default"

// Template names every set provides.
const (
	TemplateBase     = "base"
	TemplatePartials = "partials"
	TemplateHome     = "home"
	TemplateBlog     = "blog"
	TemplatePost     = "post"
	TemplateTag      = "tag"
	TemplateAbout    = "about"
	TemplateNotFound = "404"
)

// RequiredTemplates lists the templates a complete set contains.
var RequiredTemplates = []string{
	TemplateBase,
	TemplatePartials,
	TemplateHome,
	TemplateBlog,
	TemplatePost,
	TemplateTag,
	TemplateAbout,
	TemplateNotFound,
}

// TemplateSet holds the page templates for site generation.
// Templates maps a name from RequiredTemplates to its source.
type TemplateSet struct {
	Name      string
	Templates map[string]string
}

// Pages returns the page template names, excluding the layout and partials.
func (ts *TemplateSet) Pages() []string {
	pages := make([]string, 0, len(RequiredTemplates))
	for _, name := range RequiredTemplates {
		if name == TemplateBase || name == TemplatePartials {
			continue
		}
		pages = append(pages, name)
	}
	return pages
}
