package site

import (
	"context"
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/alnah/go-md2site/internal/content"
	"github.com/alnah/go-md2site/internal/dateutil"
	"github.com/alnah/go-md2site/internal/fileutil"
)

// Page paths, root-relative.
const (
	homePath     = "/"
	blogPath     = "/blog.html"
	aboutPath    = "/about.html"
	notFoundPath = "/404.html"
	ogImagePath  = "/assets/og-image.jpg"
)

// Navigation keys for Meta.Active.
const (
	navHome  = "home"
	navBlog  = "blog"
	navAbout = "about"
)

// cardTagLimit caps the tags shown on a post card.
const cardTagLimit = 3

// tocTitle heads the per-post table of contents.
const tocTitle = "On this page"

// SiteInfo is the site-wide data available to every template.
type SiteInfo struct {
	Title       string
	Description string
	Author      string
	Language    string
	URL         string
	BasePath    string
}

// Meta fills the document head.
type Meta struct {
	Title       string
	Description string
	Author      string
	Keywords    string
	Canonical   string
	OGType      string
	OGImage     string
	Active      string
}

// TagLink is a tag as shown on pages.
type TagLink struct {
	Name  string // As written, or lowercased for site-wide listings
	Label string // Capitalized for display
	Slug  string
	URL   string
	Count int
}

// PostCard is the summary of a post used in listings.
type PostCard struct {
	Slug        string
	URL         string
	Title       string
	Description string
	Author      string
	Cover       string
	Date        string
	ISODate     string
	ReadingTime int
	Tags        []TagLink
	CardTags    []TagLink
}

// PostView is the full post page.
type PostView struct {
	PostCard
	Body     template.HTML
	TOC      template.HTML
	ShareURL string
	Prev     *PostCard
	Next     *PostCard
	Related  []PostCard
}

// PageData is passed to every page template.
type PageData struct {
	Site  SiteInfo
	Meta  Meta
	Year  int
	Posts []PostCard
	Tags  []TagLink
	Post  *PostView
	Tag   *TagLink
	Body  template.HTML
}

func (b *build) page(meta Meta) *PageData {
	site := b.cfg.Site
	if meta.Author == "" {
		meta.Author = site.Author
	}
	if meta.OGType == "" {
		meta.OGType = "website"
	}
	if meta.OGImage == "" {
		meta.OGImage = b.absURL(ogImagePath)
	}
	return &PageData{
		Site: SiteInfo{
			Title:       site.Title,
			Description: site.Description,
			Author:      site.Author,
			Language:    site.Language,
			URL:         site.URL,
			BasePath:    site.BasePath,
		},
		Meta: meta,
		Year: b.now.Year(),
	}
}

func (b *build) title(prefix string) string {
	return prefix + " - " + b.cfg.Site.Title
}

// absURL joins the site URL and a root-relative path or returns ref when it
// is already absolute.
func (b *build) absURL(ref string) string {
	if fileutil.IsURL(ref) {
		return ref
	}
	return strings.TrimRight(b.cfg.Site.URL, "/") + "/" + strings.TrimLeft(ref, "/")
}

func postPath(slug string) string { return "/posts/" + slug + ".html" }

func tagPath(slug string) string { return "/tags/" + slug + ".html" }

func (b *build) tagLinks(tags []content.TagCount) []TagLink {
	out := make([]TagLink, 0, len(tags))
	for _, t := range tags {
		out = append(out, TagLink{
			Name:  t.Name,
			Label: content.Capitalize(t.Name),
			Slug:  t.Slug,
			URL:   tagPath(t.Slug),
			Count: t.Count,
		})
	}
	return out
}

func (b *build) card(p *content.Post) PostCard {
	tags := make([]TagLink, 0, len(p.Tags))
	for _, t := range p.Tags {
		slug := content.TagSlug(t)
		tags = append(tags, TagLink{
			Name:  t,
			Label: content.Capitalize(strings.ToLower(t)),
			Slug:  slug,
			URL:   tagPath(slug),
		})
	}

	date, err := dateutil.FormatDate(p.Date, b.cfg.Site.DateFormat)
	if err != nil {
		date = p.Date.Format(time.DateOnly)
	}

	return PostCard{
		Slug:        p.Slug,
		URL:         postPath(p.Slug),
		Title:       p.Title,
		Description: p.Description,
		Author:      p.Author,
		Cover:       p.Cover,
		Date:        date,
		ISODate:     p.Date.Format(time.DateOnly),
		ReadingTime: p.ReadingTime,
		Tags:        tags,
		CardTags:    tags[:min(len(tags), cardTagLimit)],
	}
}

func (b *build) cards(posts []*content.Post) []PostCard {
	out := make([]PostCard, 0, len(posts))
	for _, p := range posts {
		out = append(out, b.card(p))
	}
	return out
}

func (b *build) writeHome() error {
	site := b.cfg.Site
	data := b.page(Meta{
		Title:       site.Title + " - " + site.Description,
		Description: site.Description,
		Canonical:   b.absURL(homePath),
		Active:      navHome,
	})
	data.Posts = b.cards(b.idx.Latest(b.cfg.Home.LatestPosts))
	data.Tags = b.tagLinks(b.idx.TopTags(b.cfg.Home.CloudTags))

	return b.writePage("index.html", "home", data)
}

func (b *build) writeBlog() error {
	data := b.page(Meta{
		Title:       b.title("Blog"),
		Description: "All articles from " + b.cfg.Site.Title + ".",
		Canonical:   b.absURL(blogPath),
		Active:      navBlog,
	})
	data.Posts = b.cards(b.idx.Posts())
	data.Tags = b.tagLinks(b.idx.TopTags(b.cfg.Home.FilterTags))

	return b.writePage("blog.html", "blog", data)
}

func (b *build) writeAbout(body string) error {
	site := b.cfg.Site
	description := "About " + site.Title
	if site.Author != "" {
		description = "About " + site.Author + " and " + site.Title
	}
	data := b.page(Meta{
		Title:       b.title("About"),
		Description: description,
		Canonical:   b.absURL(aboutPath),
		Active:      navAbout,
	})
	data.Body = template.HTML(body) // #nosec G203 -- rendered from the site's own Markdown

	return b.writePage("about.html", "about", data)
}

func (b *build) writeNotFound() error {
	data := b.page(Meta{
		Title:       b.title("404 - Page Not Found"),
		Description: "The page you are looking for does not exist.",
		Canonical:   b.absURL(notFoundPath),
	})
	return b.writePage("404.html", "404", data)
}

func (b *build) writePost(ctx context.Context, i int) error {
	p := b.idx.Posts()[i]

	body, toc, err := b.toc.BuildTOC(ctx, p.HTML, &tocSettings)
	if err != nil {
		return fmt.Errorf("%s: %w", p.SourcePath, err)
	}

	view := &PostView{
		PostCard: b.card(p),
		Body:     template.HTML(body), // #nosec G203 -- produced by the Markdown engine
		TOC:      template.HTML(toc),  // #nosec G203 -- built from escaped heading text
		ShareURL: b.absURL(postPath(p.Slug)),
		Related:  b.cards(b.idx.Related(p, b.cfg.Home.RelatedPosts)),
	}
	prev, next := b.idx.Neighbors(i)
	if prev != nil {
		c := b.card(prev)
		view.Prev = &c
	}
	if next != nil {
		c := b.card(next)
		view.Next = &c
	}

	ogImage := ""
	if p.Cover != "" {
		ogImage = b.absURL(p.Cover)
	}
	data := b.page(Meta{
		Title:       b.title(p.Title),
		Description: p.Description,
		Author:      p.Author,
		Keywords:    strings.Join(p.Tags, ", "),
		Canonical:   view.ShareURL,
		OGType:      "article",
		OGImage:     ogImage,
		Active:      navBlog,
	})
	data.Post = view

	return b.writePage("posts/"+p.Slug+".html", "post", data)
}

func (b *build) writeTag(tag content.TagCount) error {
	link := b.tagLinks([]content.TagCount{tag})[0]

	data := b.page(Meta{
		Title:       b.title(link.Label),
		Description: fmt.Sprintf("Articles tagged with %q", tag.Name),
		Keywords:    tag.Name,
		Canonical:   b.absURL(link.URL),
		Active:      navBlog,
	})
	data.Tag = &link
	data.Posts = b.cards(b.idx.ByTag(tag.Slug))

	return b.writePage("tags/"+tag.Slug+".html", "tag", data)
}
