package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	md2site "github.com/alnah/go-md2site"
	"github.com/alnah/go-md2site/internal/content"
	"github.com/alnah/go-md2site/internal/fileutil"
	"github.com/alnah/go-md2site/internal/hints"
)

// ErrReadMarkdown indicates the render input could not be read.
var ErrReadMarkdown = errors.New("failed to read markdown file")

// renderOutput is the --json payload of the render command.
type renderOutput struct {
	Title       string   `json:"title,omitempty"`
	Date        string   `json:"date,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	HTML        string   `json:"html"`
	Excerpt     string   `json:"excerpt"`
	ReadingTime int      `json:"readingTime"`
}

// runRender converts one Markdown file and prints the HTML fragment.
func runRender(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseRenderFlags(args)
	if err != nil {
		return err
	}
	if len(positional) != 1 {
		return fmt.Errorf("%w: render takes exactly one file", ErrUsage)
	}
	path := positional[0]

	logger := newLogger(env.Stderr, flags.common.quiet, flags.common.verbose)

	cfg, err := loadConfig(flags.common.config, env, logger)
	if err != nil {
		return err
	}
	mergeMarkdownFlags(flags.markdown, cfg)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	conv, err := newConverter(cfg)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(path) // #nosec G304 -- user-provided input path
	if err != nil {
		return fmt.Errorf("%w: %w", ErrReadMarkdown, err)
	}

	fm, body, found, err := content.Split(data)
	if err != nil {
		return fmt.Errorf("%s: %w%s", path, err, hints.ForFrontmatter())
	}
	if found {
		logger.Debug("stripped frontmatter", "path", path, "title", fm.Title)
	}

	result, err := conv.Convert(ctx, md2site.Input{Markdown: body})
	if err != nil {
		return fmt.Errorf("converting %s: %w", path, err)
	}

	var out []byte
	if flags.json {
		out, err = json.MarshalIndent(renderOutput{
			Title:       fm.Title,
			Date:        fm.Date,
			Tags:        fm.Tags,
			HTML:        result.HTML,
			Excerpt:     result.Excerpt,
			ReadingTime: result.ReadingTime,
		}, "", "  ")
		if err != nil {
			return fmt.Errorf("encoding JSON: %w", err)
		}
	} else {
		out = []byte(result.HTML)
	}
	out = append(out, '\n')

	if flags.output == "" {
		_, err = env.Stdout.Write(out)
		return err
	}

	if err := fileutil.WriteFile(flags.output, out); err != nil {
		return fmt.Errorf("writing %s: %w%s", flags.output, err, hints.ForOutputDirectory())
	}
	if !flags.common.quiet {
		fmt.Fprintf(env.Stdout, "Created %s\n", flags.output)
	}
	return nil
}
