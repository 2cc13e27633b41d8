package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"

	md2site "github.com/alnah/go-md2site"
	"github.com/alnah/go-md2site/internal/config"
	"github.com/alnah/go-md2site/internal/fileutil"
	"github.com/alnah/go-md2site/internal/hints"
)

// defaultConfigName is searched when neither --config nor MD2SITE_CONFIG is set.
const defaultConfigName = "md2site"

// newLogger returns a text logger on w. Quiet keeps errors only; verbose
// adds debug records.
func newLogger(w io.Writer, quiet, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	switch {
	case quiet:
		level = slog.LevelError
	case verbose:
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if len(groups) == 0 && a.Key == slog.TimeKey {
				return slog.Attr{}
			}
			return a
		},
	}))
}

// loadConfig resolves the configuration and applies MD2SITE_* overrides.
// An explicit config must exist; the default name falls back to built-in
// defaults when no file is found.
func loadConfig(flagConfig string, env *Environment, logger *slog.Logger) (*config.Config, error) {
	warnUnknownEnvVars(env.Stderr, env.Environ())
	envCfg := loadEnvConfig(env.Getenv)

	name, explicit := resolveConfigName(flagConfig, envCfg.ConfigPath)

	cfg, err := config.LoadConfig(name)
	switch {
	case err == nil:
		logger.Debug("loaded config", "name", name)
	case !explicit && errors.Is(err, config.ErrConfigNotFound):
		logger.Debug("no config file found, using defaults")
		cfg = config.DefaultConfig()
	case errors.Is(err, config.ErrConfigNotFound):
		var searched []string
		if !fileutil.IsFilePath(name) {
			searched = config.CandidatePaths(name)
		}
		return nil, fmt.Errorf("loading config: %w%s", err, hints.ForConfigNotFound(searched))
	default:
		return nil, fmt.Errorf("loading config: %w", err)
	}

	applyEnvConfig(envCfg, cfg)
	return cfg, nil
}

// resolveConfigName picks the config name from the flag, then the
// environment, then the default. explicit is false for the default.
func resolveConfigName(flagConfig, envConfig string) (name string, explicit bool) {
	name = flagConfig
	if name == "" {
		name = envConfig
	}
	explicit = name != ""
	if !explicit {
		name = defaultConfigName
	}
	// "site.yaml" names a file in the working directory, not a config name.
	if !fileutil.IsFilePath(name) && filepath.Ext(name) != "" {
		name = "." + string(filepath.Separator) + name
	}
	return name, explicit
}

// configSource returns the file a config name resolves to, or "" when no
// candidate exists.
func configSource(name string) string {
	if fileutil.IsFilePath(name) {
		if fileutil.FileExists(name) {
			return name
		}
		return ""
	}
	for _, p := range config.CandidatePaths(name) {
		if fileutil.FileExists(p) {
			return p
		}
	}
	return ""
}

// mergeMarkdownFlags merges engine flags into config. CLI values override config values.
func mergeMarkdownFlags(flags markdownFlags, cfg *config.Config) {
	if flags.engine != "" {
		cfg.Markdown.Engine = flags.engine
	}
	if flags.highlight != "" {
		cfg.Markdown.Highlight = flags.highlight
	}
}

// newConverter builds the Markdown converter described by cfg.
func newConverter(cfg *config.Config) (*md2site.Converter, error) {
	engine := cfg.Markdown.Engine
	if engine == "" {
		engine = md2site.EngineNative
	}

	conv, err := md2site.NewConverter(
		md2site.WithEngine(engine),
		md2site.WithHighlighting(cfg.Markdown.Highlight),
		md2site.WithExcerptLength(cfg.Markdown.ExcerptLength),
		md2site.WithWordsPerMinute(cfg.Markdown.WordsPerMinute),
	)
	if err != nil {
		if errors.Is(err, md2site.ErrUnknownStyle) {
			return nil, fmt.Errorf("creating converter: %w%s", err, hints.ForStyleNotFound(md2site.HighlightStyles()))
		}
		return nil, fmt.Errorf("creating converter: %w", err)
	}
	return conv, nil
}
