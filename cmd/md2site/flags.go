package main

import (
	"fmt"
	"io"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// markdownFlags selects the Markdown engine.
type markdownFlags struct {
	engine    string
	highlight string
}

// buildFlags holds all flags for the build command.
type buildFlags struct {
	common   commonFlags
	markdown markdownFlags
	output   string
	workers  int
	basePath string
	drafts   bool
	strict   bool
}

// renderFlags holds all flags for the render command.
type renderFlags struct {
	common   commonFlags
	markdown markdownFlags
	output   string
	json     bool
}

// newFlags holds all flags for the new command.
type newFlags struct {
	common commonFlags
	tags   []string
	draft  bool
	date   string
}

// doctorFlags holds all flags for the doctor command.
type doctorFlags struct {
	common commonFlags
	json   bool
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show every written file and debug logs")
}

// addMarkdownFlags adds engine flags to a FlagSet.
func addMarkdownFlags(fs *flag.FlagSet, f *markdownFlags) {
	fs.StringVar(&f.engine, "engine", "", "markdown engine: native, goldmark")
	fs.StringVar(&f.highlight, "highlight", "", "chroma style for code blocks")
}

// newFlagSet creates a FlagSet that reports errors instead of exiting.
// Usage output is left to runMain so parse errors print once.
func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.Usage = func() {}
	return fs
}

// buildFlagSet registers the build command flags on a new FlagSet.
// Shared by parseBuildFlags and shell completion.
func buildFlagSet(f *buildFlags) *flag.FlagSet {
	fs := newFlagSet("build")

	fs.StringVarP(&f.output, "output", "o", "", "output directory")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers (0 = auto)")
	fs.StringVar(&f.basePath, "base-path", "", "URL prefix for subdirectory hosting (e.g. /blog)")
	fs.BoolVar(&f.drafts, "drafts", false, "publish posts marked draft")
	fs.BoolVar(&f.strict, "strict", false, "fail on invalid posts instead of skipping them")

	addCommonFlags(fs, &f.common)
	addMarkdownFlags(fs, &f.markdown)
	return fs
}

// renderFlagSet registers the render command flags on a new FlagSet.
func renderFlagSet(f *renderFlags) *flag.FlagSet {
	fs := newFlagSet("render")

	fs.StringVarP(&f.output, "output", "o", "", "write the result to a file instead of stdout")
	fs.BoolVar(&f.json, "json", false, "print JSON with html, excerpt and reading time")

	addCommonFlags(fs, &f.common)
	addMarkdownFlags(fs, &f.markdown)
	return fs
}

// newPostFlagSet registers the new command flags on a new FlagSet.
func newPostFlagSet(f *newFlags) *flag.FlagSet {
	fs := newFlagSet("new")

	fs.StringSliceVar(&f.tags, "tags", nil, "comma-separated tags")
	fs.BoolVar(&f.draft, "draft", false, "mark the post as a draft")
	fs.StringVar(&f.date, "date", "auto", "post date: auto, auto:FORMAT or YYYY-MM-DD")

	addCommonFlags(fs, &f.common)
	return fs
}

// doctorFlagSet registers the doctor command flags on a new FlagSet.
func doctorFlagSet(f *doctorFlags) *flag.FlagSet {
	fs := newFlagSet("doctor")

	fs.BoolVar(&f.json, "json", false, "print the report as JSON")

	addCommonFlags(fs, &f.common)
	return fs
}

// parseBuildFlags parses flags for the build command.
func parseBuildFlags(args []string) (*buildFlags, []string, error) {
	f := &buildFlags{}
	fs := buildFlagSet(f)
	if err := fs.Parse(args); err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrUsage, err)
	}
	return f, fs.Args(), nil
}

// parseRenderFlags parses flags for the render command.
func parseRenderFlags(args []string) (*renderFlags, []string, error) {
	f := &renderFlags{}
	fs := renderFlagSet(f)
	if err := fs.Parse(args); err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrUsage, err)
	}
	return f, fs.Args(), nil
}

// parseNewFlags parses flags for the new command.
func parseNewFlags(args []string) (*newFlags, []string, error) {
	f := &newFlags{}
	fs := newPostFlagSet(f)
	if err := fs.Parse(args); err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrUsage, err)
	}
	return f, fs.Args(), nil
}

// parseDoctorFlags parses flags for the doctor command.
func parseDoctorFlags(args []string) (*doctorFlags, []string, error) {
	f := &doctorFlags{}
	fs := doctorFlagSet(f)
	if err := fs.Parse(args); err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrUsage, err)
	}
	return f, fs.Args(), nil
}
