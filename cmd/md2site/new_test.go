package main

// Notes:
// - runNew: we test the scaffolded file round-trips through the post
//   parser, refuses to overwrite, and rejects titles without a slug.
// - scaffoldPost: we test tag cleanup and the draft flag.
// - resolvePostDate: we test auto expansion and rejection of dates build
//   could not parse.

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/alnah/go-md2site/internal/content"
)

// ---------------------------------------------------------------------------
// TestRunNew - Post scaffolding
// ---------------------------------------------------------------------------

func TestRunNew(t *testing.T) {
	t.Parallel()

	t.Run("creates a parseable post", func(t *testing.T) {
		t.Parallel()

		dir := setupTestDir(t, nil)
		cfgPath := writeSiteConfig(t, dir, "")
		env, stdout, stderr := testEnv(nil)

		code := runMain([]string{"md2site", "new", "-c", cfgPath, "--tags", "go, testing", "--draft", "Hello, World!"}, env)
		if code != ExitSuccess {
			t.Fatalf("exit code = %d, stderr: %s", code, stderr.String())
		}

		path := filepath.Join(dir, "posts", "hello-world.md")
		if !strings.Contains(stdout.String(), "Created "+path) {
			t.Errorf("stdout = %q, want Created line", stdout.String())
		}

		doc, err := content.LoadDocument(path)
		if err != nil {
			t.Fatalf("scaffolded post does not parse: %v", err)
		}
		if doc.Title != "Hello, World!" {
			t.Errorf("Title = %q", doc.Title)
		}
		if doc.Date != "2025-06-01" {
			t.Errorf("Date = %q, want 2025-06-01", doc.Date)
		}
		if diff := cmp.Diff([]string{"go", "testing"}, []string(doc.Tags)); diff != "" {
			t.Errorf("Tags mismatch (-want +got):\n%s", diff)
		}
		if !doc.Draft {
			t.Error("expected draft: true")
		}
	})

	t.Run("multi-word title without quotes", func(t *testing.T) {
		t.Parallel()

		dir := setupTestDir(t, nil)
		cfgPath := writeSiteConfig(t, dir, "")
		env, _, stderr := testEnv(nil)

		if code := runMain([]string{"md2site", "new", "-c", cfgPath, "My", "First", "Post"}, env); code != ExitSuccess {
			t.Fatalf("exit code = %d, stderr: %s", code, stderr.String())
		}
		if !fileExists(t, dir, "posts/my-first-post.md") {
			t.Error("expected posts/my-first-post.md")
		}
	})

	t.Run("refuses to overwrite", func(t *testing.T) {
		t.Parallel()

		dir := setupTestDir(t, map[string]string{"posts/existing.md": "keep me"})
		cfgPath := writeSiteConfig(t, dir, "")
		env, _, stderr := testEnv(nil)

		code := runMain([]string{"md2site", "new", "-c", cfgPath, "Existing"}, env)
		if code != ExitIO {
			t.Errorf("exit code = %d, want %d", code, ExitIO)
		}
		if !strings.Contains(stderr.String(), "already exists") {
			t.Errorf("stderr = %q", stderr.String())
		}
		if got := readFile(t, dir, "posts/existing.md"); got != "keep me" {
			t.Errorf("existing file changed: %q", got)
		}
	})

	t.Run("title without slug characters", func(t *testing.T) {
		t.Parallel()

		env, _, _ := testEnv(nil)
		if code := runMain([]string{"md2site", "new", "!!!"}, env); code != ExitUsage {
			t.Errorf("exit code = %d, want %d", code, ExitUsage)
		}
	})
}

// ---------------------------------------------------------------------------
// TestScaffoldPost - Frontmatter rendering
// ---------------------------------------------------------------------------

func TestScaffoldPost(t *testing.T) {
	t.Parallel()

	t.Run("drops empty tags and omits false draft", func(t *testing.T) {
		t.Parallel()

		src, err := scaffoldPost("Title", []string{" go ", "", "  "}, false, "2025-06-01")
		if err != nil {
			t.Fatalf("scaffoldPost() error = %v", err)
		}

		fm, body, found, err := content.Split(src)
		if err != nil || !found {
			t.Fatalf("Split() found=%v err=%v", found, err)
		}
		if diff := cmp.Diff(content.TagList{"go"}, fm.Tags); diff != "" {
			t.Errorf("Tags mismatch (-want +got):\n%s", diff)
		}
		if strings.Contains(string(src), "draft") {
			t.Errorf("draft key should be omitted: %q", src)
		}
		if body == "" {
			t.Error("expected placeholder body")
		}
	})

	t.Run("no tags", func(t *testing.T) {
		t.Parallel()

		src, err := scaffoldPost("Title", nil, false, "2025-06-01")
		if err != nil {
			t.Fatalf("scaffoldPost() error = %v", err)
		}
		if strings.Contains(string(src), "tags") {
			t.Errorf("tags key should be omitted: %q", src)
		}
		if !strings.HasPrefix(string(src), "---\ntitle: Title\ndate: \"2025-06-01\"\n") &&
			!strings.HasPrefix(string(src), "---\ntitle: Title\ndate: 2025-06-01\n") {
			t.Errorf("unexpected frontmatter: %q", src)
		}
	})
}

// ---------------------------------------------------------------------------
// TestResolvePostDate - --date expansion
// ---------------------------------------------------------------------------

func TestResolvePostDate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		value   string
		want    string
		wantErr bool
	}{
		{"auto", "auto", "2025-06-01", false},
		{"auto iso preset", "auto:iso", "2025-06-01", false},
		{"auto custom format", "auto:YYYY/MM/DD", "2025/06/01", false},
		{"literal date", "2024-12-24", "2024-12-24", false},
		{"auto format build cannot parse", "auto:long", "", true},
		{"bad auto syntax", "automatic", "", true},
		{"not a date", "yesterday", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := resolvePostDate(tt.value, fixedNow)
			if tt.wantErr {
				if !errors.Is(err, ErrUsage) {
					t.Errorf("resolvePostDate(%q) error = %v, want ErrUsage", tt.value, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("resolvePostDate(%q) error = %v", tt.value, err)
			}
			if got != tt.want {
				t.Errorf("resolvePostDate(%q) = %q, want %q", tt.value, got, tt.want)
			}
		})
	}
}
