package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	md2site "github.com/alnah/go-md2site"
	"github.com/alnah/go-md2site/internal/config"
	"github.com/alnah/go-md2site/internal/content"
	"github.com/alnah/go-md2site/internal/hints"
	"github.com/alnah/go-md2site/internal/site"
)

// Sentinel errors for the build command.
var (
	ErrPostsFailed = errors.New("invalid posts")
	ErrReadAbout   = errors.New("failed to read about file")
)

// runBuild generates the site described by the config.
func runBuild(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseBuildFlags(args)
	if err != nil {
		return err
	}
	if len(positional) > 0 {
		return fmt.Errorf("%w: build takes no arguments, got %q", ErrUsage, positional[0])
	}

	logger := newLogger(env.Stderr, flags.common.quiet, flags.common.verbose)

	cfg, err := loadConfig(flags.common.config, env, logger)
	if err != nil {
		return err
	}

	// Merge CLI flags into config (CLI wins)
	mergeFlags(flags, cfg)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	conv, err := newConverter(cfg)
	if err != nil {
		return err
	}

	start := env.Now()

	files, err := discoverPosts(cfg.Content.PostsDir, flags.common.quiet, env)
	if err != nil {
		return err
	}

	workers := resolveWorkers(cfg.Build.Workers)
	logger.Debug("loading posts", "files", len(files), "workers", workers, "engine", conv.Engine())

	results := loadBatch(ctx, conv, files, workers, loadParams{
		author: cfg.Site.Author,
		drafts: cfg.Build.Drafts,
	})
	if err := ctx.Err(); err != nil {
		return err
	}

	failed := printLoadResults(results, flags.common.quiet, flags.common.verbose, env)
	if failed > 0 {
		if flags.strict {
			return fmt.Errorf("%w: %d post(s) failed", ErrPostsFailed, failed)
		}
		logger.Warn("skipped invalid posts", "count", failed)
	}

	about, err := renderAbout(ctx, conv, cfg.Content.AboutFile)
	if err != nil {
		return err
	}

	opts := []site.Option{
		site.WithLogger(logger),
		site.WithClock(env.Now),
	}
	if conv.Highlighting() {
		css, err := conv.HighlightCSS()
		if err != nil {
			return fmt.Errorf("generating syntax stylesheet: %w", err)
		}
		opts = append(opts, site.WithSyntaxCSS(css))
	}

	gen, err := site.New(cfg, opts...)
	if err != nil {
		return fmt.Errorf("loading theme: %w", err)
	}

	report, err := gen.Build(ctx, site.Input{Posts: collectPosts(results), About: about})
	if err != nil {
		return buildError(err)
	}

	printReport(report, cfg, env.Now().Sub(start), flags.common.quiet, flags.common.verbose, env)
	return nil
}

// mergeFlags merges CLI flags into config. CLI values override config values.
func mergeFlags(flags *buildFlags, cfg *config.Config) {
	if flags.output != "" {
		cfg.Build.OutputDir = flags.output
	}
	if flags.workers != 0 {
		cfg.Build.Workers = flags.workers
	}
	if flags.basePath != "" {
		cfg.Site.BasePath = flags.basePath
	}
	if flags.drafts {
		cfg.Build.Drafts = true
	}
	mergeMarkdownFlags(flags.markdown, cfg)
}

// discoverPosts lists post sources. A missing posts directory yields an
// empty site with a warning.
func discoverPosts(dir string, quiet bool, env *Environment) ([]string, error) {
	files, err := content.Discover(dir)
	if errors.Is(err, fs.ErrNotExist) {
		if !quiet {
			fmt.Fprintf(env.Stderr, "warning: posts directory %s not found, building an empty site%s\n", dir, hints.ForContentDir(dir))
		}
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("discovering posts: %w", err)
	}
	return files, nil
}

// renderAbout converts the optional about file. Frontmatter is ignored.
func renderAbout(ctx context.Context, conv PostConverter, path string) (string, error) {
	if path == "" {
		return "", nil
	}

	data, err := os.ReadFile(path) // #nosec G304 -- path comes from the config
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrReadAbout, err)
	}

	_, body, _, err := content.Split(data)
	if err != nil {
		return "", fmt.Errorf("%s: %w", path, err)
	}

	result, err := conv.Convert(ctx, md2site.Input{Markdown: body})
	if errors.Is(err, md2site.ErrEmptyMarkdown) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("converting %s: %w", path, err)
	}
	return result.HTML, nil
}

// collectPosts returns the successfully loaded posts.
func collectPosts(results []LoadResult) []*content.Post {
	posts := make([]*content.Post, 0, len(results))
	for _, r := range results {
		if r.Post != nil {
			posts = append(posts, r.Post)
		}
	}
	return posts
}

// buildError appends the hint matching a generator failure.
func buildError(err error) error {
	switch {
	case errors.Is(err, site.ErrUnsafeOutputDir):
		return fmt.Errorf("building site: %w%s", err, hints.ForUnsafeOutputDir())
	case errors.Is(err, site.ErrWrite):
		return fmt.Errorf("building site: %w%s", err, hints.ForOutputDirectory())
	default:
		return fmt.Errorf("building site: %w", err)
	}
}

// LoadSummary holds the count of loaded, failed and draft posts.
type LoadSummary struct {
	Succeeded int
	Failed    int
	Drafts    int
}

// countResults tallies load results.
func countResults(results []LoadResult) LoadSummary {
	var summary LoadSummary
	for _, r := range results {
		switch {
		case r.Err != nil:
			summary.Failed++
		case r.Draft:
			summary.Drafts++
		default:
			summary.Succeeded++
		}
	}
	return summary
}

// printLoadResults outputs per-post results and returns the failure count.
func printLoadResults(results []LoadResult, quiet, verbose bool, env *Environment) int {
	summary := countResults(results)

	for _, r := range results {
		if r.Err != nil {
			hint := ""
			if errors.Is(r.Err, content.ErrInvalidFrontmatter) {
				hint = hints.ForFrontmatter()
			}
			fmt.Fprintf(env.Stderr, "FAILED %s: %v%s\n", r.InputPath, r.Err, hint)
			continue
		}

		if quiet || !verbose {
			continue
		}

		if r.Draft {
			fmt.Fprintf(env.Stdout, "%s (draft, skipped)\n", r.InputPath)
		} else {
			fmt.Fprintf(env.Stdout, "%s -> posts/%s.html (%v)\n", r.InputPath, r.Post.Slug, r.Duration.Round(time.Millisecond))
		}
	}

	if !quiet && len(results) > 1 && (verbose || summary.Failed > 0) {
		line := fmt.Sprintf("%d succeeded, %d failed", summary.Succeeded, summary.Failed)
		if summary.Drafts > 0 {
			line += fmt.Sprintf(", %d draft(s) skipped", summary.Drafts)
		}
		fmt.Fprintf(env.Stdout, "\n%s\n", line)
	}

	return summary.Failed
}

// printReport outputs the generated files and a one-line summary.
func printReport(report *site.Report, cfg *config.Config, elapsed time.Duration, quiet, verbose bool, env *Environment) {
	if quiet {
		return
	}

	out := cfg.Build.OutputDir
	if verbose {
		for _, f := range report.Files {
			fmt.Fprintf(env.Stdout, "Created %s\n", filepath.Join(out, filepath.FromSlash(f)))
		}
	}

	fmt.Fprintf(env.Stdout, "Built %d %s and %d %s into %s (%d files, %v)\n",
		report.Posts, plural(report.Posts, "post", "posts"),
		report.Tags, plural(report.Tags, "tag", "tags"),
		out, len(report.Files), elapsed.Round(time.Millisecond))
}

// plural picks the singular or plural form for n.
func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
