package md2site

import (
	"github.com/alnah/go-md2site/internal/content"
)

// Engine names.
const (
	EngineNative   = "native"
	EngineGoldmark = "goldmark"
)

// Input is one Markdown body to convert. Frontmatter must already be
// removed (see ParseDocument).
type Input struct {
	Markdown string
}

// ConvertResult is the output of one conversion.
type ConvertResult struct {
	HTML        string // HTML fragment, no document wrapper
	Excerpt     string // Plain text, cut to the excerpt length
	ReadingTime int    // Minutes, at least 1
}

// Document is a post source split into validated frontmatter and body.
type Document = content.Document

// Frontmatter is the YAML metadata block of a post.
type Frontmatter = content.Frontmatter

// ParseDocument parses YAML frontmatter delimited by "---" lines and returns
// it with the trimmed body. Title and date are required.
func ParseDocument(source []byte) (*Document, error) {
	return content.ParseDocument(source)
}

// IsEngine reports whether name is a known engine.
func IsEngine(name string) bool {
	return name == EngineNative || name == EngineGoldmark
}
