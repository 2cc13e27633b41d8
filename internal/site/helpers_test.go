package site

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"golang.org/x/net/html"

	"github.com/alnah/go-md2site/internal/config"
	"github.com/alnah/go-md2site/internal/content"
)

var fixedNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func testConfig(t *testing.T) *config.Config {
	t.Helper()

	root := t.TempDir()
	cfg := config.DefaultConfig()
	cfg.Site.Title = "Test Blog"
	cfg.Site.Description = "Notes & experiments"
	cfg.Site.Author = "Ada"
	cfg.Site.URL = "https://example.com"
	cfg.Content.PostsDir = filepath.Join(root, "posts")
	cfg.Content.StaticDir = filepath.Join(root, "static")
	cfg.Content.AssetsDir = filepath.Join(root, "assets")
	cfg.Build.OutputDir = filepath.Join(root, "dist")
	cfg.Build.Workers = 2
	return cfg
}

func testPost(slug string, day int, tags ...string) *content.Post {
	return &content.Post{
		Slug:        slug,
		SourcePath:  filepath.Join("posts", slug+".md"),
		Title:       "Post " + slug,
		Description: "About " + slug,
		Date:        time.Date(2024, 1, day, 0, 0, 0, 0, time.UTC),
		Tags:        tags,
		Author:      "Ada",
		HTML:        "<h2>Intro</h2>\n<p>Hello from " + slug + ".</p>\n<h2>Details</h2>\n<p>More.</p>",
		Excerpt:     "Hello from " + slug + ".",
		ReadingTime: 1,
	}
}

func testPosts() []*content.Post {
	return []*content.Post{
		testPost("first", 1, "Go"),
		testPost("second", 2, "Go", "Web"),
		testPost("third", 3, "web"),
	}
}

func newTestGenerator(t *testing.T, cfg *config.Config, opts ...Option) *Generator {
	t.Helper()

	opts = append([]Option{WithClock(func() time.Time { return fixedNow })}, opts...)
	g, err := New(cfg, opts...)
	if err != nil {
		t.Fatalf("New() unexpected error: %v", err)
	}
	return g
}

func readOutput(t *testing.T, cfg *config.Config, rel string) string {
	t.Helper()

	data, err := os.ReadFile(filepath.Join(cfg.Build.OutputDir, filepath.FromSlash(rel)))
	if err != nil {
		t.Fatalf("reading %s: %v", rel, err)
	}
	return string(data)
}

func writeFile(t *testing.T, path, data string) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}
}

func parseDoc(t *testing.T, src string) *html.Node {
	t.Helper()

	doc, err := html.Parse(strings.NewReader(src))
	if err != nil {
		t.Fatalf("html.Parse() error: %v", err)
	}
	return doc
}

// findAll returns the elements matching match in document order.
func findAll(n *html.Node, match func(*html.Node) bool) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && match(n) {
			out = append(out, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return out
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func hasClass(class string) func(*html.Node) bool {
	return func(n *html.Node) bool {
		for _, c := range strings.Fields(attr(n, "class")) {
			if c == class {
				return true
			}
		}
		return false
	}
}

func tagNamed(name string) func(*html.Node) bool {
	return func(n *html.Node) bool { return n.Data == name }
}

func text(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.TrimSpace(b.String())
}

// metaContent returns the content of the meta tag with the given name or property.
func metaContent(doc *html.Node, key string) string {
	for _, m := range findAll(doc, tagNamed("meta")) {
		if attr(m, "name") == key || attr(m, "property") == key {
			return attr(m, "content")
		}
	}
	return ""
}
