package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/alnah/go-md2site/internal/dateutil"
	"github.com/alnah/go-md2site/internal/fileutil"
	"github.com/alnah/go-md2site/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// Field length limits.
const (
	MaxTitleLength       = 200  // Site title
	MaxDescriptionLength = 500  // Site description, meta tags
	MaxNameLength        = 100  // Author name
	MaxURLLength         = 2048 // Browser limit
	MaxPathLength        = 4096 // PATH_MAX on Linux
	MaxLanguageLength    = 35   // BCP 47 tags
	MaxStyleLength       = 50   // Chroma style names
)

// Upper bounds for numeric settings.
const (
	MaxWorkers = 32
	MaxCount   = 1000
)

// Markdown engines.
const (
	EngineNative   = "native"
	EngineGoldmark = "goldmark"
)

// appName is the directory under the user config dir searched for configs.
const appName = "go-md2site"

// Config holds all configuration for site generation.
type Config struct {
	Site     SiteConfig     `yaml:"site" toml:"site"`
	Content  ContentConfig  `yaml:"content" toml:"content"`
	Build    BuildConfig    `yaml:"build" toml:"build"`
	Markdown MarkdownConfig `yaml:"markdown" toml:"markdown"`
	Feed     FeedConfig     `yaml:"feed" toml:"feed"`
	Home     HomeConfig     `yaml:"home" toml:"home"`
}

// SiteConfig describes the published site.
type SiteConfig struct {
	Title       string `yaml:"title" toml:"title"`
	Description string `yaml:"description" toml:"description"`
	URL         string `yaml:"url" toml:"url"`           // Absolute URL used in feeds and sitemap
	Author      string `yaml:"author" toml:"author"`     // Default post author
	BasePath    string `yaml:"basePath" toml:"basePath"` // "" or "/repo-name" for subdirectory hosting
	Language    string `yaml:"language" toml:"language"` // html lang and RSS language
	DateFormat  string `yaml:"dateFormat" toml:"dateFormat"`
}

// ContentConfig locates the site sources.
type ContentConfig struct {
	PostsDir     string `yaml:"postsDir" toml:"postsDir"`
	StaticDir    string `yaml:"staticDir" toml:"staticDir"`       // Holds styles/ and scripts/
	AssetsDir    string `yaml:"assetsDir" toml:"assetsDir"`       // Copied recursively to <output>/assets
	AboutFile    string `yaml:"aboutFile" toml:"aboutFile"`       // Optional Markdown body for about.html
	TemplatesDir string `yaml:"templatesDir" toml:"templatesDir"` // Empty = embedded templates
}

// BuildConfig controls output generation.
type BuildConfig struct {
	OutputDir string `yaml:"outputDir" toml:"outputDir"`
	Workers   int    `yaml:"workers" toml:"workers"` // 0 = auto
	Drafts    bool   `yaml:"drafts" toml:"drafts"`   // Publish posts marked draft
	Clean     bool   `yaml:"clean" toml:"clean"`     // Remove output dir before writing
}

// MarkdownConfig selects and tunes the Markdown engine.
type MarkdownConfig struct {
	Engine         string `yaml:"engine" toml:"engine"`       // "native" or "goldmark"
	Highlight      string `yaml:"highlight" toml:"highlight"` // Chroma style, empty = plain code blocks
	ExcerptLength  int    `yaml:"excerptLength" toml:"excerptLength"`
	WordsPerMinute int    `yaml:"wordsPerMinute" toml:"wordsPerMinute"`
}

// FeedConfig controls rss.xml.
type FeedConfig struct {
	Items int `yaml:"items" toml:"items"`
}

// HomeConfig sizes the listings on generated pages.
type HomeConfig struct {
	LatestPosts  int `yaml:"latestPosts" toml:"latestPosts"`
	CloudTags    int `yaml:"cloudTags" toml:"cloudTags"`
	FilterTags   int `yaml:"filterTags" toml:"filterTags"`
	RelatedPosts int `yaml:"relatedPosts" toml:"relatedPosts"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		Site: SiteConfig{
			Title:       "Minimal Blog",
			Description: "A minimal blog built with md2site.",
			URL:         "http://localhost:8080",
			Language:    "en-us",
			DateFormat:  dateutil.DisplayDateFormat,
		},
		Content: ContentConfig{
			PostsDir:  "posts",
			StaticDir: "static",
			AssetsDir: "assets",
		},
		Build: BuildConfig{
			OutputDir: "dist",
			Clean:     true,
		},
		Markdown: MarkdownConfig{
			Engine:         EngineNative,
			ExcerptLength:  160,
			WordsPerMinute: 200,
		},
		Feed: FeedConfig{Items: 20},
		Home: HomeConfig{
			LatestPosts:  6,
			CloudTags:    10,
			FilterTags:   8,
			RelatedPosts: 3,
		},
	}
}

// Validate checks field lengths and value ranges.
// Called automatically by LoadConfig, but available for consumers
// who construct Config manually.
func (c *Config) Validate() error {
	lengths := []struct {
		field string
		value string
		max   int
	}{
		{"site.title", c.Site.Title, MaxTitleLength},
		{"site.description", c.Site.Description, MaxDescriptionLength},
		{"site.url", c.Site.URL, MaxURLLength},
		{"site.author", c.Site.Author, MaxNameLength},
		{"site.basePath", c.Site.BasePath, MaxURLLength},
		{"site.language", c.Site.Language, MaxLanguageLength},
		{"site.dateFormat", c.Site.DateFormat, dateutil.MaxDateFormatLength},
		{"content.postsDir", c.Content.PostsDir, MaxPathLength},
		{"content.staticDir", c.Content.StaticDir, MaxPathLength},
		{"content.assetsDir", c.Content.AssetsDir, MaxPathLength},
		{"content.aboutFile", c.Content.AboutFile, MaxPathLength},
		{"content.templatesDir", c.Content.TemplatesDir, MaxPathLength},
		{"build.outputDir", c.Build.OutputDir, MaxPathLength},
		{"markdown.highlight", c.Markdown.Highlight, MaxStyleLength},
	}
	for _, l := range lengths {
		if err := validateFieldLength(l.field, l.value, l.max); err != nil {
			return err
		}
	}

	if c.Site.Title == "" {
		return fmt.Errorf("%w: site.title is required", ErrInvalidValue)
	}
	if !fileutil.IsURL(c.Site.URL) {
		return fmt.Errorf("%w: site.url %q must start with http:// or https://", ErrInvalidValue, c.Site.URL)
	}
	if err := validateBasePath(c.Site.BasePath); err != nil {
		return err
	}
	if c.Site.DateFormat != "" {
		if _, err := dateutil.FormatDate(time.Time{}, c.Site.DateFormat); err != nil {
			return fmt.Errorf("site.dateFormat: %w", err)
		}
	}

	if c.Content.PostsDir == "" {
		return fmt.Errorf("%w: content.postsDir is required", ErrInvalidValue)
	}
	if c.Build.OutputDir == "" {
		return fmt.Errorf("%w: build.outputDir is required", ErrInvalidValue)
	}
	if c.Build.Workers < 0 || c.Build.Workers > MaxWorkers {
		return fmt.Errorf("%w: build.workers must be between 0 and %d, got %d", ErrInvalidValue, MaxWorkers, c.Build.Workers)
	}

	switch c.Markdown.Engine {
	case "", EngineNative, EngineGoldmark:
	default:
		return fmt.Errorf("%w: markdown.engine %q (must be %s or %s)", ErrInvalidValue, c.Markdown.Engine, EngineNative, EngineGoldmark)
	}

	counts := []struct {
		field string
		value int
	}{
		{"markdown.excerptLength", c.Markdown.ExcerptLength},
		{"markdown.wordsPerMinute", c.Markdown.WordsPerMinute},
		{"feed.items", c.Feed.Items},
		{"home.latestPosts", c.Home.LatestPosts},
		{"home.cloudTags", c.Home.CloudTags},
		{"home.filterTags", c.Home.FilterTags},
		{"home.relatedPosts", c.Home.RelatedPosts},
	}
	for _, n := range counts {
		if n.value < 1 || n.value > MaxCount {
			return fmt.Errorf("%w: %s must be between 1 and %d, got %d", ErrInvalidValue, n.field, MaxCount, n.value)
		}
	}

	return nil
}

// validateBasePath accepts "" or "/seg[/seg...]" without a trailing slash.
func validateBasePath(p string) error {
	if p == "" {
		return nil
	}
	if !strings.HasPrefix(p, "/") || strings.HasSuffix(p, "/") || strings.Contains(p, "//") {
		return fmt.Errorf("%w: site.basePath %q must look like /name with no trailing slash", ErrInvalidValue, p)
	}
	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Values missing from the file keep their DefaultConfig value.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if fileutil.IsFilePath(nameOrPath) {
		configPath = nameOrPath
		if !fileutil.FileExists(configPath) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	cfg := DefaultConfig()
	if err := decodeFile(configPath, cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// decodeFile decodes YAML or TOML depending on the file extension.
// Unknown keys are rejected in both formats.
func decodeFile(path string, cfg *Config) error {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		data, err := os.ReadFile(path) // #nosec G304 -- config path is user-provided
		if err != nil {
			return fmt.Errorf("reading config file: %w", err)
		}
		md, err := toml.Decode(string(data), cfg)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrConfigParse, err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			keys := make([]string, len(undecoded))
			for i, k := range undecoded {
				keys[i] = k.String()
			}
			return fmt.Errorf("%w: unknown keys %s", ErrConfigParse, strings.Join(keys, ", "))
		}
		return nil
	}

	if err := yamlutil.DecodeFile(path, cfg, yamlutil.Strict()); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return fmt.Errorf("%w: %v", ErrConfigParse, err)
	}
	return nil
}

// configExtensions are tried in order for bare config names.
var configExtensions = []string{".yaml", ".yml", ".toml"}

// CandidatePaths lists where a bare config name is searched, in order:
// current directory, then <user config dir>/go-md2site/.
func CandidatePaths(name string) []string {
	paths := make([]string, 0, len(configExtensions)*2) // 2 locations
	for _, ext := range configExtensions {
		paths = append(paths, name+ext)
	}
	if userConfigDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range configExtensions {
			paths = append(paths, filepath.Join(userConfigDir, appName, name+ext))
		}
	}
	return paths
}

// resolveConfigPath returns the first existing candidate for name.
func resolveConfigPath(name string) (string, error) {
	triedPaths := CandidatePaths(name)
	for _, path := range triedPaths {
		if fileutil.FileExists(path) {
			return path, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(triedPaths, ", "))
}
