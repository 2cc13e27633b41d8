// Package content loads Markdown posts with YAML frontmatter and indexes
// them by date and tag.
package content

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/adrg/frontmatter"

	"github.com/alnah/go-md2site/internal/dateutil"
	"github.com/alnah/go-md2site/internal/pipeline"
	"github.com/alnah/go-md2site/internal/yamlutil"
)

// Sentinel errors for document parsing.
var (
	ErrInvalidFrontmatter = errors.New("invalid frontmatter")
	ErrMissingTitle       = errors.New("frontmatter title is required")
	ErrMissingDate        = errors.New("frontmatter date is required")
)

// frontmatterDelimiter opens and closes the YAML block.
const frontmatterDelimiter = "---"

// yamlFormat decodes "---" delimited frontmatter with goccy/go-yaml.
var yamlFormat = frontmatter.NewFormat(frontmatterDelimiter, frontmatterDelimiter, decodeFrontmatter)

// Frontmatter is the metadata block at the top of a post.
type Frontmatter struct {
	Title       string  `yaml:"title"`
	Date        string  `yaml:"date"`
	Description string  `yaml:"description"`
	Tags        TagList `yaml:"tags"`
	Cover       string  `yaml:"cover"`
	Author      string  `yaml:"author"`
	Draft       bool    `yaml:"draft"`
}

// TagList accepts a YAML sequence or a single comma-separated string.
type TagList []string

// UnmarshalYAML implements the goccy/go-yaml InterfaceUnmarshaler.
func (t *TagList) UnmarshalYAML(unmarshal func(any) error) error {
	var list []string
	if err := unmarshal(&list); err == nil {
		*t = cleanTags(list)
		return nil
	}

	var single string
	if err := unmarshal(&single); err != nil {
		return err
	}
	*t = cleanTags(strings.Split(single, ","))
	return nil
}

// cleanTags trims tags and drops empty ones.
func cleanTags(tags []string) TagList {
	out := make(TagList, 0, len(tags))
	for _, tag := range tags {
		if tag = strings.TrimSpace(tag); tag != "" {
			out = append(out, tag)
		}
	}
	return out
}

// Document is a parsed post source: validated metadata plus the raw body.
type Document struct {
	Frontmatter
	Published time.Time
	Body      string
}

// ParseDocument splits source into frontmatter and body and validates the
// metadata. Title and date are required.
func ParseDocument(source []byte) (*Document, error) {
	fm, body, found, err := Split(source)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, fmt.Errorf("%w: missing %s block", ErrInvalidFrontmatter, frontmatterDelimiter)
	}

	fm.Title = strings.TrimSpace(fm.Title)
	if fm.Title == "" {
		return nil, ErrMissingTitle
	}
	if strings.TrimSpace(fm.Date) == "" {
		return nil, ErrMissingDate
	}
	published, err := dateutil.ParsePostDate(fm.Date)
	if err != nil {
		return nil, err
	}

	return &Document{Frontmatter: fm, Published: published, Body: body}, nil
}

// Split separates an optional frontmatter block from the body without
// validating it. found reports whether a block was present; when it is not,
// body is the whole (normalized, trimmed) source.
func Split(source []byte) (fm Frontmatter, body string, found bool, err error) {
	src := pipeline.NormalizeSource(string(source))

	rest, err := frontmatter.MustParse(strings.NewReader(src), &fm, yamlFormat)
	if errors.Is(err, frontmatter.ErrNotFound) {
		return Frontmatter{}, strings.TrimSpace(src), false, nil
	}
	if err != nil {
		return Frontmatter{}, "", false, fmt.Errorf("%w: %v", ErrInvalidFrontmatter, err)
	}
	return fm, strings.TrimSpace(string(rest)), true, nil
}

// decodeFrontmatter tolerates an empty block so validation can report the
// missing fields by name.
func decodeFrontmatter(data []byte, v any) error {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	return yamlutil.Decode(data, v)
}
