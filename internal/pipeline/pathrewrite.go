package pipeline

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// urlAttributes lists the attributes holding a URL that may be root-relative.
var urlAttributes = map[string]bool{
	"href":   true,
	"src":    true,
	"poster": true,
	"action": true,
}

// RewriteBasePath prefixes every root-relative URL attribute with basePath,
// so a site built for "/" can be served from a sub-path such as
// "/blog". If basePath is empty, returns the HTML unchanged.
//
// Rewrites href, src, poster and action values that start with a single "/".
// Does NOT rewrite:
//   - protocol-relative URLs ("//cdn.example.com/x.js")
//   - absolute URLs, anchors and relative paths
//   - values already under basePath
//   - srcset and CSS url() references
func RewriteBasePath(htmlContent, basePath string) (string, error) {
	basePath = strings.TrimRight(basePath, "/")
	if basePath == "" {
		return htmlContent, nil
	}

	doc, isFragment, err := parseHTML(htmlContent)
	if err != nil {
		return "", err
	}

	rewriteNode(doc, basePath)

	return renderHTML(doc, isFragment)
}

// parseHTML parses HTML content, handling both full documents and fragments.
// Returns the parsed node, whether it was a fragment, and any error.
func parseHTML(content string) (*html.Node, bool, error) {
	trimmed := strings.ToLower(strings.TrimSpace(content))

	// Full document: starts with <!DOCTYPE or <html
	if strings.HasPrefix(trimmed, "<!doctype") || strings.HasPrefix(trimmed, "<html") {
		doc, err := html.Parse(strings.NewReader(content))
		return doc, false, err
	}

	// Fragment: parse with body context to avoid wrapping
	context := &html.Node{
		Type:     html.ElementNode,
		DataAtom: atom.Body,
		Data:     "body",
	}
	nodes, err := html.ParseFragment(strings.NewReader(content), context)
	if err != nil {
		return nil, true, err
	}

	// Wrap nodes in a container for uniform traversal
	container := &html.Node{Type: html.DocumentNode}
	for _, n := range nodes {
		container.AppendChild(n)
	}

	return container, true, nil
}

// renderHTML renders the document back to string.
// For fragments, only renders the children (avoids adding <html><body> wrapper).
func renderHTML(doc *html.Node, isFragment bool) (string, error) {
	var buf strings.Builder

	if isFragment {
		for c := doc.FirstChild; c != nil; c = c.NextSibling {
			if err := html.Render(&buf, c); err != nil {
				return "", err
			}
		}
		return buf.String(), nil
	}

	if err := html.Render(&buf, doc); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// rewriteNode traverses the DOM and prefixes root-relative URLs.
func rewriteNode(n *html.Node, basePath string) {
	if n.Type == html.ElementNode {
		for i, attr := range n.Attr {
			if !urlAttributes[attr.Key] || !isRootRelative(attr.Val) {
				continue
			}
			if attr.Val == basePath || strings.HasPrefix(attr.Val, basePath+"/") {
				continue
			}
			n.Attr[i].Val = basePath + attr.Val
		}
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		rewriteNode(c, basePath)
	}
}

// isRootRelative returns true for "/path" but not for "//host/path".
func isRootRelative(path string) bool {
	return strings.HasPrefix(path, "/") && !strings.HasPrefix(path, "//")
}
