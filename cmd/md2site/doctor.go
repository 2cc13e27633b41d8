package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/alnah/go-md2site/internal/config"
	"github.com/alnah/go-md2site/internal/content"
	"github.com/alnah/go-md2site/internal/fileutil"
	"github.com/alnah/go-md2site/internal/site"
)

// ErrNotReady is returned by doctor when a check fails.
var ErrNotReady = errors.New("site is not ready to build")

// Doctor statuses.
const (
	statusReady    = "ready"
	statusWarnings = "warnings"
	statusErrors   = "errors"
)

// doctorResult holds all diagnostic information.
type doctorResult struct {
	Status   string      `json:"status"` // "ready", "warnings", "errors"
	Config   configInfo  `json:"config"`
	Content  contentInfo `json:"content"`
	Theme    themeInfo   `json:"theme"`
	Output   outputInfo  `json:"output"`
	Env      envInfo     `json:"environment"`
	Warnings []string    `json:"warnings,omitempty"`
	Errors   []string    `json:"errors,omitempty"`
}

// configInfo holds config resolution results.
type configInfo struct {
	Source string `json:"source"` // file path, or "defaults"
	Valid  bool   `json:"valid"`
}

// contentInfo holds post discovery results.
type contentInfo struct {
	PostsDir string `json:"posts_dir"`
	Posts    int    `json:"posts"`
	Drafts   int    `json:"drafts"`
	Invalid  int    `json:"invalid"`
}

// themeInfo holds template and engine checks.
type themeInfo struct {
	TemplatesDir string `json:"templates_dir,omitempty"`
	Engine       string `json:"engine"`
	Highlight    string `json:"highlight,omitempty"`
	Ready        bool   `json:"ready"`
}

// outputInfo holds output directory checks.
type outputInfo struct {
	Dir      string `json:"dir"`
	Writable bool   `json:"writable"`
}

// envInfo holds environment detection results.
type envInfo struct {
	OS   string `json:"os"`
	Arch string `json:"arch"`
	CI   bool   `json:"ci"`
}

// ciVars are set by common CI providers.
var ciVars = []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "JENKINS_URL", "CIRCLECI"}

// runDoctor checks that the configured site can be built without writing it.
func runDoctor(args []string, env *Environment) error {
	flags, positional, err := parseDoctorFlags(args)
	if err != nil {
		return err
	}
	if len(positional) > 0 {
		return fmt.Errorf("%w: doctor takes no arguments, got %q", ErrUsage, positional[0])
	}

	logger := newLogger(env.Stderr, flags.common.quiet, flags.common.verbose)
	result := diagnose(flags.common.config, env, logger)

	if flags.json {
		enc := json.NewEncoder(env.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(result); err != nil {
			return fmt.Errorf("encoding JSON: %w", err)
		}
	} else if !flags.common.quiet || result.Status == statusErrors {
		printDoctorResult(env.Stdout, result)
	}

	if result.Status == statusErrors {
		return ErrNotReady
	}
	return nil
}

// diagnose performs all checks.
func diagnose(flagConfig string, env *Environment, logger *slog.Logger) *doctorResult {
	result := &doctorResult{
		Env: envInfo{
			OS:   runtime.GOOS,
			Arch: runtime.GOARCH,
			CI:   detectCI(env.Getenv),
		},
	}

	name, _ := resolveConfigName(flagConfig, loadEnvConfig(env.Getenv).ConfigPath)
	result.Config.Source = configSource(name)
	if result.Config.Source == "" {
		result.Config.Source = "defaults"
	}

	cfg, err := loadConfig(flagConfig, env, logger)
	if err != nil {
		result.Errors = append(result.Errors, firstLine(err))
		return result.finish()
	}
	if err := cfg.Validate(); err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("invalid configuration: %v", err))
		return result.finish()
	}
	result.Config.Valid = true

	checkContent(result, cfg)
	checkTheme(result, cfg)
	checkOutput(result, cfg)

	if result.Env.CI && strings.Contains(cfg.Site.URL, "localhost") {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("CI detected but site.url is %s. Set MD2SITE_SITE_URL to the public URL", cfg.Site.URL))
	}

	return result.finish()
}

// finish derives the final status.
func (r *doctorResult) finish() *doctorResult {
	switch {
	case len(r.Errors) > 0:
		r.Status = statusErrors
	case len(r.Warnings) > 0:
		r.Status = statusWarnings
	default:
		r.Status = statusReady
	}
	return r
}

// checkContent parses every post the way build does.
func checkContent(result *doctorResult, cfg *config.Config) {
	result.Content.PostsDir = cfg.Content.PostsDir

	files, err := content.Discover(cfg.Content.PostsDir)
	if errors.Is(err, fs.ErrNotExist) {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("posts directory %s not found, the site will be empty", cfg.Content.PostsDir))
	} else if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("discovering posts: %v", err))
		return
	}

	posts := make([]*content.Post, 0, len(files))
	for _, path := range files {
		doc, err := content.LoadDocument(path)
		if err != nil {
			result.Content.Invalid++
			result.Warnings = append(result.Warnings, fmt.Sprintf("%s: %v", path, err))
			continue
		}
		if doc.Draft && !cfg.Build.Drafts {
			result.Content.Drafts++
			continue
		}
		posts = append(posts, content.NewPost(path, doc, cfg.Site.Author))
	}
	result.Content.Posts = len(posts)

	if _, err := content.NewIndex(posts); err != nil {
		result.Errors = append(result.Errors, err.Error())
	}

	if cfg.Content.AboutFile != "" && !fileutil.FileExists(cfg.Content.AboutFile) {
		result.Errors = append(result.Errors, fmt.Sprintf("about file %s not found", cfg.Content.AboutFile))
	}
}

// checkTheme verifies the engine options and parses the template set.
func checkTheme(result *doctorResult, cfg *config.Config) {
	result.Theme.TemplatesDir = cfg.Content.TemplatesDir
	result.Theme.Engine = cfg.Markdown.Engine
	if result.Theme.Engine == "" {
		result.Theme.Engine = config.EngineNative
	}
	result.Theme.Highlight = cfg.Markdown.Highlight

	if _, err := newConverter(cfg); err != nil {
		result.Errors = append(result.Errors, firstLine(err))
	}

	gen, err := site.New(cfg)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("loading theme: %v", err))
		return
	}
	err = gen.Check()
	switch {
	case err == nil:
		result.Theme.Ready = true
	case errors.Is(err, site.ErrUnsafeOutputDir):
		result.Theme.Ready = true
		result.Errors = append(result.Errors, err.Error())
	default:
		result.Errors = append(result.Errors, fmt.Sprintf("loading theme: %v", err))
	}
}

// checkOutput verifies the output directory, or its nearest existing
// parent, accepts new files.
func checkOutput(result *doctorResult, cfg *config.Config) {
	result.Output.Dir = cfg.Build.OutputDir

	dir, err := filepath.Abs(cfg.Build.OutputDir)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("output directory %s: %v", cfg.Build.OutputDir, err))
		return
	}
	for !fileutil.DirExists(dir) {
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	f, err := os.CreateTemp(dir, ".md2site-doctor-*")
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("output directory %s is not writable", cfg.Build.OutputDir))
		return
	}
	name := f.Name()
	_ = f.Close()
	_ = os.Remove(name)
	result.Output.Writable = true
}

// detectCI reports whether a known CI variable is set.
func detectCI(getenv func(string) string) bool {
	for _, v := range ciVars {
		if getenv(v) != "" {
			return true
		}
	}
	return false
}

// firstLine drops the hint lines appended to CLI errors.
func firstLine(err error) string {
	msg, _, _ := strings.Cut(err.Error(), "\n")
	return msg
}

// printDoctorResult outputs human-readable diagnostic results.
func printDoctorResult(w io.Writer, r *doctorResult) {
	fmt.Fprintln(w, "md2site doctor")
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Config")
	if r.Config.Source == "defaults" {
		fmt.Fprintln(w, "  [OK] Source: built-in defaults")
	} else {
		fmt.Fprintf(w, "  [OK] Source: %s\n", r.Config.Source)
	}
	if r.Config.Valid {
		fmt.Fprintln(w, "  [OK] Valid")
	} else {
		fmt.Fprintln(w, "  [ERROR] Not loaded")
	}
	fmt.Fprintln(w)

	if r.Config.Valid {
		fmt.Fprintln(w, "Content")
		fmt.Fprintf(w, "  [OK] Posts directory: %s\n", r.Content.PostsDir)
		fmt.Fprintf(w, "  [OK] Posts: %d\n", r.Content.Posts)
		if r.Content.Drafts > 0 {
			fmt.Fprintf(w, "  [OK] Drafts skipped: %d\n", r.Content.Drafts)
		}
		if r.Content.Invalid > 0 {
			fmt.Fprintf(w, "  [WARN] Invalid posts: %d\n", r.Content.Invalid)
		}
		fmt.Fprintln(w)

		fmt.Fprintln(w, "Theme")
		if r.Theme.TemplatesDir != "" {
			fmt.Fprintf(w, "  [OK] Templates: %s (embedded fallback)\n", r.Theme.TemplatesDir)
		} else {
			fmt.Fprintln(w, "  [OK] Templates: embedded")
		}
		fmt.Fprintf(w, "  [OK] Engine: %s\n", r.Theme.Engine)
		if r.Theme.Highlight != "" {
			fmt.Fprintf(w, "  [OK] Highlight: %s\n", r.Theme.Highlight)
		}
		if !r.Theme.Ready {
			fmt.Fprintln(w, "  [ERROR] Templates do not parse")
		}
		fmt.Fprintln(w)

		fmt.Fprintln(w, "Output")
		if r.Output.Writable {
			fmt.Fprintf(w, "  [OK] %s: writable\n", r.Output.Dir)
		} else {
			fmt.Fprintf(w, "  [ERROR] %s: not writable\n", r.Output.Dir)
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintln(w, "Environment")
	fmt.Fprintf(w, "  [OK] Platform: %s/%s\n", r.Env.OS, r.Env.Arch)
	if r.Env.CI {
		fmt.Fprintln(w, "  [OK] CI: detected")
	}
	fmt.Fprintln(w)

	if len(r.Warnings) > 0 {
		fmt.Fprintln(w, "Warnings:")
		for _, warn := range r.Warnings {
			fmt.Fprintf(w, "  [WARN] %s\n", warn)
		}
		fmt.Fprintln(w)
	}

	if len(r.Errors) > 0 {
		fmt.Fprintln(w, "Errors:")
		for _, err := range r.Errors {
			fmt.Fprintf(w, "  [ERROR] %s\n", err)
		}
		fmt.Fprintln(w)
	}

	switch r.Status {
	case statusReady:
		fmt.Fprintln(w, "Status: Ready to build")
	case statusWarnings:
		fmt.Fprintln(w, "Status: Ready with warnings")
	case statusErrors:
		fmt.Fprintln(w, "Status: Not ready (see errors above)")
	}
}
