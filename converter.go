package md2site

import (
	"context"
	"fmt"
	"strings"

	"github.com/alnah/go-md2site/internal/pipeline"
)

// Converter turns Markdown bodies into HTML fragments. It is safe for
// concurrent use.
type Converter struct {
	cfg          converterConfig
	preprocessor pipeline.MarkdownPreprocessor
	html         pipeline.HTMLConverter
}

// NewConverter creates a Converter. Without options it uses the native
// engine, no highlighting, 160-rune excerpts and 200 words per minute.
func NewConverter(opts ...Option) (*Converter, error) {
	cfg := converterConfig{
		engine:         EngineNative,
		excerptLength:  DefaultExcerptLength,
		wordsPerMinute: DefaultWordsPerMinute,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	html, err := newHTMLConverter(cfg.engine, cfg.style)
	if err != nil {
		return nil, err
	}

	return &Converter{
		cfg:          cfg,
		preprocessor: &pipeline.LineEndingPreprocessor{},
		html:         html,
	}, nil
}

func (c converterConfig) validate() error {
	if !IsEngine(c.engine) {
		return fmt.Errorf("%w: %q (use %s or %s)", ErrUnknownEngine, c.engine, EngineNative, EngineGoldmark)
	}
	if c.excerptLength < 1 || c.excerptLength > MaxExcerptLength {
		return fmt.Errorf("%w: excerpt length must be between 1 and %d, got %d", ErrInvalidOption, MaxExcerptLength, c.excerptLength)
	}
	if c.wordsPerMinute < 1 || c.wordsPerMinute > MaxWordsPerMinute {
		return fmt.Errorf("%w: words per minute must be between 1 and %d, got %d", ErrInvalidOption, MaxWordsPerMinute, c.wordsPerMinute)
	}
	return nil
}

// newHTMLConverter builds the engine. The style is validated up front so a
// typo fails at startup rather than per file.
func newHTMLConverter(engine, style string) (pipeline.HTMLConverter, error) {
	if engine == EngineGoldmark {
		gm, err := pipeline.NewGoldmarkConverter(style)
		if err != nil {
			return nil, err
		}
		return gm, nil
	}

	var opts []pipeline.TransformerOption
	if style != "" {
		render, err := pipeline.NewChromaRenderer(style)
		if err != nil {
			return nil, err
		}
		opts = append(opts, pipeline.WithCodeRenderer(render))
	}
	return pipeline.NewTransformer(opts...), nil
}

// Convert renders input to HTML and derives its excerpt and reading time.
// Recovers from internal panics to prevent crashes from propagating to callers.
func (c *Converter) Convert(ctx context.Context, input Input) (result *ConvertResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal error: %v", r)
		}
	}()

	if strings.TrimSpace(input.Markdown) == "" {
		return nil, ErrEmptyMarkdown
	}

	md := c.preprocessor.PreprocessMarkdown(ctx, input.Markdown)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	html, err := c.html.ToHTML(ctx, md)
	if err != nil {
		return nil, fmt.Errorf("converting to HTML: %w", err)
	}

	return &ConvertResult{
		HTML:        html,
		Excerpt:     pipeline.Excerpt(md, c.cfg.excerptLength),
		ReadingTime: pipeline.ReadingTime(md, c.cfg.wordsPerMinute),
	}, nil
}

// Engine returns the configured engine name.
func (c *Converter) Engine() string {
	return c.cfg.engine
}

// Highlighting reports whether fenced code is syntax highlighted.
func (c *Converter) Highlighting() bool {
	return c.cfg.style != ""
}

// HighlightCSS returns the chroma stylesheet for the configured style.
// Returns ErrNoHighlighting when highlighting is off.
func (c *Converter) HighlightCSS() (string, error) {
	if c.cfg.style == "" {
		return "", ErrNoHighlighting
	}
	return pipeline.SyntaxCSS(c.cfg.style)
}

// HighlightStyles lists the style names accepted by WithHighlighting.
func HighlightStyles() []string {
	return pipeline.HighlightStyles()
}
