package md2site

// Option configures a Converter.
type Option func(*converterConfig)

type converterConfig struct {
	engine         string
	style          string
	excerptLength  int
	wordsPerMinute int
}

// Defaults for excerpts and reading time.
const (
	DefaultExcerptLength  = 160
	DefaultWordsPerMinute = 200
)

// Option bounds.
const (
	MaxExcerptLength  = 10000
	MaxWordsPerMinute = 2000
)

// WithEngine selects the Markdown engine: EngineNative (default) or
// EngineGoldmark.
func WithEngine(name string) Option {
	return func(c *converterConfig) {
		c.engine = name
	}
}

// WithHighlighting enables chroma syntax highlighting with the named style.
// An empty style disables highlighting.
func WithHighlighting(style string) Option {
	return func(c *converterConfig) {
		c.style = style
	}
}

// WithExcerptLength sets the maximum excerpt length in runes.
func WithExcerptLength(n int) Option {
	return func(c *converterConfig) {
		c.excerptLength = n
	}
}

// WithWordsPerMinute sets the reading speed used for ReadingTime.
func WithWordsPerMinute(n int) Option {
	return func(c *converterConfig) {
		c.wordsPerMinute = n
	}
}
