package md2site

import (
	"errors"

	"github.com/alnah/go-md2site/internal/content"
	"github.com/alnah/go-md2site/internal/pipeline"
)

// Sentinel errors for library operations.
var (
	ErrEmptyMarkdown  = errors.New("markdown content cannot be empty")
	ErrHTMLConversion = pipeline.ErrHTMLConversion
	ErrUnknownEngine  = errors.New("unknown markdown engine")
	ErrUnknownStyle   = pipeline.ErrUnknownStyle
	ErrInvalidOption  = errors.New("invalid option")
	ErrNoHighlighting = errors.New("syntax highlighting is disabled")

	// Frontmatter errors.
	ErrInvalidFrontmatter = content.ErrInvalidFrontmatter
	ErrMissingTitle       = content.ErrMissingTitle
	ErrMissingDate        = content.ErrMissingDate
)
