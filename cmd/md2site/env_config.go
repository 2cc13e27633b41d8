package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/alnah/go-md2site/internal/config"
)

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring config files.
type envConfig struct {
	ConfigPath string // MD2SITE_CONFIG: config file path
	OutputDir  string // MD2SITE_OUTPUT_DIR: output directory
	BasePath   string // MD2SITE_BASE_PATH: subdirectory prefix
	SiteURL    string // MD2SITE_SITE_URL: absolute site URL
	Engine     string // MD2SITE_ENGINE: markdown engine
	Highlight  string // MD2SITE_HIGHLIGHT: chroma style
	Workers    int    // MD2SITE_WORKERS: parallel workers
}

// knownEnvVars lists valid MD2SITE_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"MD2SITE_CONFIG":     true,
	"MD2SITE_OUTPUT_DIR": true,
	"MD2SITE_BASE_PATH":  true,
	"MD2SITE_SITE_URL":   true,
	"MD2SITE_ENGINE":     true,
	"MD2SITE_HIGHLIGHT":  true,
	"MD2SITE_WORKERS":    true,
}

// loadEnvConfig reads configuration from environment variables.
func loadEnvConfig(getenv func(string) string) *envConfig {
	cfg := &envConfig{
		ConfigPath: getenv("MD2SITE_CONFIG"),
		OutputDir:  getenv("MD2SITE_OUTPUT_DIR"),
		BasePath:   getenv("MD2SITE_BASE_PATH"),
		SiteURL:    getenv("MD2SITE_SITE_URL"),
		Engine:     getenv("MD2SITE_ENGINE"),
		Highlight:  getenv("MD2SITE_HIGHLIGHT"),
	}

	// Parse int for workers
	if workers := getenv("MD2SITE_WORKERS"); workers != "" {
		if w, err := strconv.Atoi(workers); err == nil && w > 0 {
			cfg.Workers = w
		}
	}

	return cfg
}

// warnUnknownEnvVars prints warnings for unrecognized MD2SITE_* variables.
// Helps catch typos like MD2SITE_OUTPUTDIR instead of MD2SITE_OUTPUT_DIR.
func warnUnknownEnvVars(w io.Writer, environ []string) {
	for _, env := range environ {
		if strings.HasPrefix(env, "MD2SITE_") {
			name := strings.SplitN(env, "=", 2)[0]
			if !knownEnvVars[name] {
				fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
			}
		}
	}
}

// applyEnvConfig applies environment variable values to config.
// Precedence: CLI flags > env vars > config file > defaults
// (CLI flags are applied later via mergeFlags).
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.OutputDir != "" {
		cfg.Build.OutputDir = env.OutputDir
	}
	if env.BasePath != "" {
		cfg.Site.BasePath = env.BasePath
	}
	if env.SiteURL != "" {
		cfg.Site.URL = env.SiteURL
	}
	if env.Engine != "" {
		cfg.Markdown.Engine = env.Engine
	}
	if env.Highlight != "" {
		cfg.Markdown.Highlight = env.Highlight
	}
	if env.Workers > 0 {
		cfg.Build.Workers = env.Workers
	}
}
