package content

import (
	"path/filepath"
	"strings"
	"time"
)

// Post is a published article: document metadata plus the derived HTML,
// excerpt and reading time.
type Post struct {
	Slug        string
	SourcePath  string
	Title       string
	Description string
	Date        time.Time
	RawDate     string // Frontmatter date as written
	Tags        []string
	Cover       string
	Author      string
	Draft       bool

	Body        string // Raw Markdown, frontmatter removed
	HTML        string
	Excerpt     string
	ReadingTime int
}

// NewPost builds a Post from a parsed document. The slug is the source file
// name without extension; an empty author falls back to defaultAuthor.
func NewPost(sourcePath string, doc *Document, defaultAuthor string) *Post {
	author := strings.TrimSpace(doc.Author)
	if author == "" {
		author = defaultAuthor
	}
	return &Post{
		Slug:        SlugFromPath(sourcePath),
		SourcePath:  sourcePath,
		Title:       doc.Title,
		Description: strings.TrimSpace(doc.Description),
		Date:        doc.Published,
		RawDate:     strings.TrimSpace(doc.Date),
		Tags:        doc.Tags,
		Cover:       strings.TrimSpace(doc.Cover),
		Author:      author,
		Draft:       doc.Draft,
		Body:        doc.Body,
	}
}

// HasTag reports whether the post carries tag, ignoring case and
// punctuation differences that slugify to the same value.
func (p *Post) HasTag(tag string) bool {
	want := Slugify(tag)
	for _, t := range p.Tags {
		if Slugify(t) == want {
			return true
		}
	}
	return false
}

// SlugFromPath returns the file name of path without its extension.
func SlugFromPath(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
