package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// fixedNow is the clock used by CLI tests.
var fixedNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

// testEnv returns an Environment with captured output, a fixed clock and
// the given environment variables.
func testEnv(vars map[string]string) (*Environment, *bytes.Buffer, *bytes.Buffer) {
	var stdout, stderr bytes.Buffer
	environ := make([]string, 0, len(vars))
	for k, v := range vars {
		environ = append(environ, k+"="+v)
	}
	return &Environment{
		Now:     func() time.Time { return fixedNow },
		Stdout:  &stdout,
		Stderr:  &stderr,
		Getenv:  func(key string) string { return vars[key] },
		Environ: func() []string { return environ },
	}, &stdout, &stderr
}

// setupTestDir creates a temp directory with the given file structure.
// Files map slash-separated paths to content. Returns the temp directory path.
func setupTestDir(t *testing.T, files map[string]string) string {
	t.Helper()
	tempDir := t.TempDir()

	for path, content := range files {
		fullPath := filepath.Join(tempDir, filepath.FromSlash(path))
		if err := os.MkdirAll(filepath.Dir(fullPath), 0o750); err != nil {
			t.Fatalf("failed to create dir for %s: %v", path, err)
		}
		if err := os.WriteFile(fullPath, []byte(content), 0o644); err != nil {
			t.Fatalf("failed to write %s: %v", path, err)
		}
	}

	return tempDir
}

// writeSiteConfig writes md2site.yaml into dir with every content path
// rooted in dir, and returns the config path. Extra YAML is appended.
func writeSiteConfig(t *testing.T, dir, extra string) string {
	t.Helper()
	return writeConfigFile(t, dir, "", extra)
}

// writeSiteConfigWithContent is writeSiteConfig with one more key in the
// content section.
func writeSiteConfigWithContent(t *testing.T, dir, contentKey string) string {
	t.Helper()
	return writeConfigFile(t, dir, "  "+filepath.ToSlash(contentKey)+"\n", "")
}

func writeConfigFile(t *testing.T, dir, contentExtra, extra string) string {
	t.Helper()
	root := filepath.ToSlash(dir)
	cfg := fmt.Sprintf(`site:
  title: Test Blog
  description: Notes from the test suite
  url: https://example.com
  author: Jane Doe
content:
  postsDir: %[1]s/posts
  staticDir: %[1]s/static
  assetsDir: %[1]s/assets
%[2]sbuild:
  outputDir: %[1]s/dist
%[3]s`, root, contentExtra, extra)

	path := filepath.Join(dir, "md2site.yaml")
	if err := os.WriteFile(path, []byte(cfg), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

// postSource renders a post file with frontmatter.
func postSource(title, date string, tags []string, body string) string {
	var b strings.Builder
	b.WriteString("---\n")
	fmt.Fprintf(&b, "title: %q\n", title)
	fmt.Fprintf(&b, "date: %s\n", date)
	if len(tags) > 0 {
		fmt.Fprintf(&b, "tags: [%s]\n", strings.Join(tags, ", "))
	}
	b.WriteString("---\n\n")
	b.WriteString(body)
	return b.String()
}

// fileExists reports whether rel exists under dir.
func fileExists(t *testing.T, dir, rel string) bool {
	t.Helper()
	_, err := os.Stat(filepath.Join(dir, filepath.FromSlash(rel)))
	return err == nil
}

// readFile returns the content of rel under dir.
func readFile(t *testing.T, dir, rel string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(rel)))
	if err != nil {
		t.Fatalf("reading %s: %v", rel, err)
	}
	return string(data)
}
