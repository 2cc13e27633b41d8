// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"os"
	"strings"
)

// userConfigMarker identifies the per-user config directory in searched paths.
var userConfigMarker = "go-md2site" + string(os.PathSeparator)

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config flag and creating a config in the user config directory.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"

	for _, p := range searchedPaths {
		if strings.Contains(p, userConfigMarker) {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForOutputDirectory returns hints for output directory creation errors.
func ForOutputDirectory() string {
	return format("check parent directory exists and is writable")
}

// ForUnsafeOutputDir returns hints when the output directory would wipe sources.
func ForUnsafeOutputDir() string {
	return format("set build.outputDir to a dedicated directory such as ./dist")
}

// ForContentDir returns hints for a missing posts directory.
func ForContentDir(dir string) string {
	return formatHints([]string{
		"create " + dir + " and add .md files",
		"or set content.postsDir in the config",
	})
}

// ForStyleNotFound returns hints for style not found errors.
func ForStyleNotFound(available []string) string {
	if len(available) == 0 {
		return ""
	}
	return format("available: " + strings.Join(available, ", "))
}

// ForFrontmatter returns hints for malformed post frontmatter.
func ForFrontmatter() string {
	return format("frontmatter must open and close with --- and contain YAML key: value pairs")
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

// formatHints joins multiple hints with consistent formatting.
func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
