// Package site renders indexed posts into a static website: HTML pages from
// the template set, RSS and sitemap feeds, a client-side search index, and
// the theme's static files.
package site

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/alnah/go-md2site/internal/assets"
	"github.com/alnah/go-md2site/internal/config"
	"github.com/alnah/go-md2site/internal/content"
	"github.com/alnah/go-md2site/internal/fileutil"
	"github.com/alnah/go-md2site/internal/pipeline"
)

// Sentinel errors for site generation.
var (
	ErrNilConfig       = errors.New("config is nil")
	ErrUnsafeOutputDir = errors.New("refusing to clean output directory")
	ErrTemplate        = errors.New("template error")
	ErrWrite           = errors.New("failed to write output")
)

// AssetSource provides the theme: templates, stylesheet and scripts.
type AssetSource interface {
	LoadStyle(name string) (string, error)
	LoadScript(name string) (string, error)
	LoadTemplateSet(name string) (*assets.TemplateSet, error)
}

var _ AssetSource = (*assets.AssetResolver)(nil)

// Input is the content of one build.
type Input struct {
	Posts []*content.Post
	About string // Rendered HTML for the about page; a fallback is used when empty
}

// Report summarizes a build.
type Report struct {
	Posts  int
	Tags   int
	Assets int
	Files  []string // Written paths relative to the output directory, sorted
}

// Option configures a Generator.
type Option func(*Generator)

// WithAssets overrides the theme source. Defaults to the embedded theme
// layered under content.templatesDir.
func WithAssets(src AssetSource) Option {
	return func(g *Generator) {
		g.assets = src
	}
}

// WithLogger sets the logger for per-file debug output.
func WithLogger(logger *slog.Logger) Option {
	return func(g *Generator) {
		if logger != nil {
			g.logger = logger
		}
	}
}

// WithClock sets the time source used for copyright years and feed dates.
func WithClock(now func() time.Time) Option {
	return func(g *Generator) {
		if now != nil {
			g.now = now
		}
	}
}

// WithSyntaxCSS writes css to styles/syntax.css and links it from every page.
func WithSyntaxCSS(css string) Option {
	return func(g *Generator) {
		g.syntaxCSS = css
	}
}

// Generator builds a site into the configured output directory.
type Generator struct {
	cfg       *config.Config
	assets    AssetSource
	logger    *slog.Logger
	now       func() time.Time
	syntaxCSS string
	toc       pipeline.TOCBuilder
	styles    pipeline.StylesheetInjector
}

// New creates a Generator for cfg.
func New(cfg *config.Config, opts ...Option) (*Generator, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}

	g := &Generator{
		cfg:    cfg,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:    time.Now,
		toc:    &pipeline.TOCGenerator{},
		styles: &pipeline.StylesheetInjection{},
	}
	for _, opt := range opts {
		opt(g)
	}

	if g.assets == nil {
		resolver, err := assets.NewAssetResolver(cfg.Content.TemplatesDir)
		if err != nil {
			return nil, err
		}
		g.logger.Debug("resolved theme", "templates", cfg.Content.TemplatesDir, "custom", resolver.HasCustomLoader())
		g.assets = resolver
	}

	return g, nil
}

// Check loads and parses the template set and verifies the output
// directory. Nothing is written.
func (g *Generator) Check() error {
	ts, err := g.assets.LoadTemplateSet(assets.DefaultTemplateSetName)
	if err != nil {
		return err
	}
	if _, err := newRenderer(ts); err != nil {
		return err
	}
	return g.checkOutputDir()
}

// build carries the state of one Build call.
type build struct {
	*Generator
	ctx      context.Context
	idx      *content.Index
	renderer *renderer
	now      time.Time

	mu    sync.Mutex
	files []string
}

// Build writes the whole site for in. The output directory is cleaned first
// when build.clean is set.
func (g *Generator) Build(ctx context.Context, in Input) (*Report, error) {
	idx, err := content.NewIndex(in.Posts)
	if err != nil {
		return nil, err
	}

	ts, err := g.assets.LoadTemplateSet(assets.DefaultTemplateSetName)
	if err != nil {
		return nil, err
	}
	r, err := newRenderer(ts)
	if err != nil {
		return nil, err
	}

	if err := g.prepareOutput(); err != nil {
		return nil, err
	}

	b := &build{Generator: g, ctx: ctx, idx: idx, renderer: r, now: g.now()}

	steps := []func() error{
		b.writeHome,
		b.writeBlog,
		func() error { return b.writeAbout(in.About) },
		b.writeNotFound,
		b.writePostsAndTags,
		b.writeRSS,
		b.writeSitemap,
		b.writeSearchIndex,
	}
	for _, step := range steps {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := step(); err != nil {
			return nil, err
		}
	}

	copied, err := b.writeStatic()
	if err != nil {
		return nil, err
	}

	sort.Strings(b.files)
	return &Report{
		Posts:  idx.Len(),
		Tags:   len(idx.Tags()),
		Assets: copied,
		Files:  b.files,
	}, nil
}

// writePostsAndTags renders post and tag pages concurrently.
func (b *build) writePostsAndTags() error {
	g, ctx := errgroup.WithContext(b.ctx)
	g.SetLimit(b.workers())

	for i := range b.idx.Posts() {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return b.writePost(ctx, i)
		})
	}
	for _, tag := range b.idx.Tags() {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return b.writeTag(tag)
		})
	}

	return g.Wait()
}

func (b *build) workers() int {
	if n := b.cfg.Build.Workers; n > 0 {
		return n
	}
	return min(runtime.NumCPU(), config.MaxWorkers)
}

// write stores data at rel under the output directory.
func (b *build) write(rel string, data []byte) error {
	path := filepath.Join(b.cfg.Build.OutputDir, filepath.FromSlash(rel))
	if err := fileutil.WriteFile(path, data); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrWrite, rel, err)
	}

	b.mu.Lock()
	b.files = append(b.files, rel)
	b.mu.Unlock()

	b.logger.Debug("wrote file", "path", rel, "bytes", len(data))
	return nil
}

// prepareOutput cleans (when configured) and creates the output directory.
func (g *Generator) prepareOutput() error {
	out := g.cfg.Build.OutputDir
	if g.cfg.Build.Clean && fileutil.DirExists(out) {
		if err := g.checkOutputDir(); err != nil {
			return err
		}
		if err := os.RemoveAll(out); err != nil {
			return fmt.Errorf("%w: cleaning %s: %v", ErrWrite, out, err)
		}
		g.logger.Debug("cleaned output directory", "path", out)
	}
	if err := os.MkdirAll(out, fileutil.DirPermissions); err != nil {
		return fmt.Errorf("%w: %v", ErrWrite, err)
	}
	return nil
}

// checkOutputDir refuses output directories that contain the working
// directory or any content source.
func (g *Generator) checkOutputDir() error {
	out := g.cfg.Build.OutputDir

	if cwd, err := os.Getwd(); err == nil && fileutil.IsWithin(cwd, out) {
		return fmt.Errorf("%w: %s contains the working directory", ErrUnsafeOutputDir, out)
	}

	sources := []string{
		g.cfg.Content.PostsDir,
		g.cfg.Content.StaticDir,
		g.cfg.Content.AssetsDir,
		g.cfg.Content.TemplatesDir,
		g.cfg.Content.AboutFile,
	}
	for _, src := range sources {
		if src != "" && fileutil.IsWithin(src, out) {
			return fmt.Errorf("%w: %s contains %s", ErrUnsafeOutputDir, out, src)
		}
	}
	return nil
}
