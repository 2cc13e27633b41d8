package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alnah/go-md2site/internal/content"
	"github.com/alnah/go-md2site/internal/dateutil"
	"github.com/alnah/go-md2site/internal/fileutil"
	"github.com/alnah/go-md2site/internal/yamlutil"
)

// Sentinel errors for the new command.
var (
	ErrPostExists = errors.New("post already exists")
	ErrEmptySlug  = errors.New("title has no characters usable in a file name")
)

// newPostFrontmatter is the scaffolded metadata block.
type newPostFrontmatter struct {
	Title       string   `yaml:"title"`
	Date        string   `yaml:"date"`
	Description string   `yaml:"description"`
	Tags        []string `yaml:"tags,omitempty"`
	Draft       bool     `yaml:"draft,omitempty"`
}

// runNew scaffolds a post file named after the slugified title.
func runNew(args []string, env *Environment) error {
	flags, positional, err := parseNewFlags(args)
	if err != nil {
		return err
	}
	title := strings.TrimSpace(strings.Join(positional, " "))
	if title == "" {
		return fmt.Errorf("%w: new requires a title", ErrUsage)
	}

	slug := content.Slugify(title)
	if slug == "" {
		return fmt.Errorf("%w: %q", ErrEmptySlug, title)
	}

	logger := newLogger(env.Stderr, flags.common.quiet, flags.common.verbose)
	cfg, err := loadConfig(flags.common.config, env, logger)
	if err != nil {
		return err
	}

	date, err := resolvePostDate(flags.date, env.Now())
	if err != nil {
		return err
	}

	source, err := scaffoldPost(title, flags.tags, flags.draft, date)
	if err != nil {
		return err
	}

	path := filepath.Join(cfg.Content.PostsDir, slug+".md")
	if err := createExclusive(path, source); err != nil {
		return err
	}

	if !flags.common.quiet {
		fmt.Fprintf(env.Stdout, "Created %s\n", path)
	}
	return nil
}

// resolvePostDate expands "auto" and "auto:FORMAT" against now. The result
// must be a date that build accepts.
func resolvePostDate(value string, now time.Time) (string, error) {
	date, err := dateutil.ResolveDate(value, now)
	if err != nil {
		return "", fmt.Errorf("%w: --date: %w", ErrUsage, err)
	}
	if _, err := dateutil.ParsePostDate(date); err != nil {
		return "", fmt.Errorf("%w: --date %q: %v", ErrUsage, value, err)
	}
	return date, nil
}

// scaffoldPost renders the frontmatter block and a placeholder body.
func scaffoldPost(title string, tags []string, draft bool, date string) ([]byte, error) {
	cleaned := make([]string, 0, len(tags))
	for _, t := range tags {
		if t = strings.TrimSpace(t); t != "" {
			cleaned = append(cleaned, t)
		}
	}

	fm, err := yamlutil.Encode(newPostFrontmatter{
		Title: title,
		Date:  date,
		Tags:  cleaned,
		Draft: draft,
	})
	if err != nil {
		return nil, fmt.Errorf("encoding frontmatter: %w", err)
	}

	var b strings.Builder
	b.WriteString("---\n")
	b.Write(fm)
	b.WriteString("---\n\n")
	b.WriteString("Write your post here.\n")
	return []byte(b.String()), nil
}

// createExclusive writes data to a new file, failing if path exists.
func createExclusive(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), fileutil.DirPermissions); err != nil {
		return fmt.Errorf("creating directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, fileutil.FilePermissions) // #nosec G304 -- path built from a slug
	if errors.Is(err, fs.ErrExist) {
		return fmt.Errorf("%w: %s", ErrPostExists, path)
	}
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}

	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return f.Close()
}
