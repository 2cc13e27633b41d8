package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2site <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  build      Generate the site from Markdown posts")
	fmt.Fprintln(w, "  render     Convert one Markdown file to an HTML fragment")
	fmt.Fprintln(w, "  new        Create a post with frontmatter")
	fmt.Fprintln(w, "  doctor     Check that the site can be built")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w, "  completion Generate shell completion script")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'md2site help <command>' for details on a specific command.")
}

// printBuildUsage prints usage for the build command.
func printBuildUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2site build [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Generate the site: pages, feeds, search index and assets.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path (default: md2site)")
	fmt.Fprintln(w, "  -o, --output <dir>        Output directory")
	fmt.Fprintln(w, "  -w, --workers <n>         Parallel workers (0 = auto)")
	fmt.Fprintln(w, "      --base-path <path>    URL prefix for subdirectory hosting (e.g. /blog)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Content:")
	fmt.Fprintln(w, "      --drafts              Publish posts marked draft")
	fmt.Fprintln(w, "      --strict              Fail on invalid posts instead of skipping them")
	fmt.Fprintln(w)
	printMarkdownFlags(w)
	fmt.Fprintln(w)
	printOutputControl(w)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  MD2SITE_CONFIG, MD2SITE_OUTPUT_DIR, MD2SITE_BASE_PATH, MD2SITE_SITE_URL,")
	fmt.Fprintln(w, "  MD2SITE_ENGINE, MD2SITE_HIGHLIGHT, MD2SITE_WORKERS (flags take precedence)")
}

// printRenderUsage prints usage for the render command.
func printRenderUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2site render <file.md> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Convert one Markdown file to an HTML fragment. Frontmatter is stripped.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "  -o, --output <path>       Write to a file instead of stdout")
	fmt.Fprintln(w, "      --json                Print html, excerpt and readingTime as JSON")
	fmt.Fprintln(w)
	printMarkdownFlags(w)
	fmt.Fprintln(w)
	printOutputControl(w)
}

// printNewUsage prints usage for the new command.
func printNewUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2site new <title> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Create <postsDir>/<slug>.md with title and today's date. Existing files are kept.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "      --tags <a,b>          Comma-separated tags")
	fmt.Fprintln(w, "      --draft               Mark the post as a draft")
	fmt.Fprintln(w, "      --date <value>        auto (today), auto:FORMAT, or YYYY-MM-DD (default: auto)")
	fmt.Fprintln(w)
	printOutputControl(w)
}

func printMarkdownFlags(w io.Writer) {
	fmt.Fprintln(w, "Markdown:")
	fmt.Fprintln(w, "      --engine <name>       Engine: native, goldmark")
	fmt.Fprintln(w, "      --highlight <style>   Chroma style for code blocks (e.g. github, dracula)")
}

func printOutputControl(w io.Writer) {
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show every file and debug logs")
}

// printCommandUsage prints usage for cmd, or the main usage for unknown commands.
func printCommandUsage(w io.Writer, cmd string) {
	switch cmd {
	case "build":
		printBuildUsage(w)
	case "render":
		printRenderUsage(w)
	case "new":
		printNewUsage(w)
	case "version":
		fmt.Fprintln(w, "Usage: md2site version")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Show version information.")
	case "help":
		fmt.Fprintln(w, "Usage: md2site help [command]")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Show help for a command.")
	case "doctor":
		printDoctorUsage(w)
	case "completion":
		printCompletionUsage(w)
	default:
		printUsage(w)
	}
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) error {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return nil
	}

	switch args[0] {
	case "build", "render", "new", "doctor", "version", "help", "completion":
		printCommandUsage(env.Stdout, args[0])
		return nil
	default:
		return fmt.Errorf("%w: unknown command: %s", ErrUsage, args[0])
	}
}
