package fileutil_test

// Notes:
// - WriteFile Write/Close/Chmod error branches are not tested because
//   triggering disk failures is platform-specific.
// - CopyDir skipping symlinks is not tested: creating symlinks needs
//   privileges on Windows.
// These are acceptable gaps: we test observable behavior, not implementation details.

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alnah/go-md2site/internal/fileutil"
)

// ---------------------------------------------------------------------------
// TestWriteFile - Atomic file writes
// ---------------------------------------------------------------------------

func TestWriteFile(t *testing.T) {
	t.Parallel()

	t.Run("creates parent directories", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "posts", "deep", "index.html")
		if err := fileutil.WriteFile(path, []byte("<p>hi</p>")); err != nil {
			t.Fatalf("WriteFile() unexpected error: %v", err)
		}

		got, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("failed to read written file: %v", err)
		}
		if string(got) != "<p>hi</p>" {
			t.Errorf("content = %q, want %q", got, "<p>hi</p>")
		}
	})

	t.Run("overwrites existing file", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "rss.xml")
		if err := os.WriteFile(path, []byte("old content that is longer"), 0o600); err != nil {
			t.Fatal(err)
		}
		if err := fileutil.WriteFile(path, []byte("new")); err != nil {
			t.Fatalf("WriteFile() unexpected error: %v", err)
		}

		got, _ := os.ReadFile(path)
		if string(got) != "new" {
			t.Errorf("content = %q, want %q", got, "new")
		}
	})

	t.Run("leaves no temp files behind", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		if err := fileutil.WriteFile(filepath.Join(dir, "a.html"), []byte("a")); err != nil {
			t.Fatal(err)
		}

		entries, err := os.ReadDir(dir)
		if err != nil {
			t.Fatal(err)
		}
		if len(entries) != 1 || entries[0].Name() != "a.html" {
			var names []string
			for _, e := range entries {
				names = append(names, e.Name())
			}
			t.Errorf("directory entries = %v, want [a.html]", names)
		}
	})

	t.Run("parent is a file", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		blocker := filepath.Join(dir, "blocker")
		if err := os.WriteFile(blocker, []byte("x"), 0o600); err != nil {
			t.Fatal(err)
		}

		err := fileutil.WriteFile(filepath.Join(blocker, "out.html"), []byte("x"))
		if err == nil {
			t.Fatal("expected error when parent is a file")
		}
		if !strings.Contains(err.Error(), "creating directory") {
			t.Errorf("error = %q, want containing %q", err, "creating directory")
		}
	})
}

// ---------------------------------------------------------------------------
// TestCopyFile - Single file copy
// ---------------------------------------------------------------------------

func TestCopyFile(t *testing.T) {
	t.Parallel()

	t.Run("copies content", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		src := filepath.Join(dir, "theme.css")
		dst := filepath.Join(dir, "dist", "styles", "theme.css")
		if err := os.WriteFile(src, []byte("body{}"), 0o600); err != nil {
			t.Fatal(err)
		}

		if err := fileutil.CopyFile(src, dst); err != nil {
			t.Fatalf("CopyFile() unexpected error: %v", err)
		}
		got, err := os.ReadFile(dst)
		if err != nil {
			t.Fatal(err)
		}
		if string(got) != "body{}" {
			t.Errorf("content = %q, want %q", got, "body{}")
		}
	})

	t.Run("missing source", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		err := fileutil.CopyFile(filepath.Join(dir, "missing"), filepath.Join(dir, "out"))
		if !errors.Is(err, os.ErrNotExist) {
			t.Errorf("error = %v, want os.ErrNotExist", err)
		}
	})
}

// ---------------------------------------------------------------------------
// TestCopyDir - Recursive directory copy
// ---------------------------------------------------------------------------

func TestCopyDir(t *testing.T) {
	t.Parallel()

	t.Run("copies nested tree", func(t *testing.T) {
		t.Parallel()

		src := t.TempDir()
		dst := filepath.Join(t.TempDir(), "assets")
		files := map[string]string{
			"logo.svg":            "<svg/>",
			"img/a.png":           "png",
			"img/icons/close.svg": "<svg/>",
		}
		for rel, content := range files {
			path := filepath.Join(src, filepath.FromSlash(rel))
			if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
				t.Fatal(err)
			}
			if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
				t.Fatal(err)
			}
		}

		n, err := fileutil.CopyDir(src, dst)
		if err != nil {
			t.Fatalf("CopyDir() unexpected error: %v", err)
		}
		if n != len(files) {
			t.Errorf("copied = %d, want %d", n, len(files))
		}
		for rel, content := range files {
			got, err := os.ReadFile(filepath.Join(dst, filepath.FromSlash(rel)))
			if err != nil {
				t.Errorf("missing %s: %v", rel, err)
				continue
			}
			if string(got) != content {
				t.Errorf("%s content = %q, want %q", rel, got, content)
			}
		}
	})

	t.Run("empty directory", func(t *testing.T) {
		t.Parallel()

		dst := filepath.Join(t.TempDir(), "out")
		n, err := fileutil.CopyDir(t.TempDir(), dst)
		if err != nil {
			t.Fatalf("CopyDir() unexpected error: %v", err)
		}
		if n != 0 {
			t.Errorf("copied = %d, want 0", n)
		}
		if !fileutil.DirExists(dst) {
			t.Error("destination directory not created")
		}
	})

	t.Run("source is a file", func(t *testing.T) {
		t.Parallel()

		src := filepath.Join(t.TempDir(), "file.txt")
		if err := os.WriteFile(src, []byte("x"), 0o600); err != nil {
			t.Fatal(err)
		}
		_, err := fileutil.CopyDir(src, t.TempDir())
		if !errors.Is(err, fileutil.ErrNotDirectory) {
			t.Errorf("error = %v, want ErrNotDirectory", err)
		}
	})

	t.Run("missing source", func(t *testing.T) {
		t.Parallel()

		_, err := fileutil.CopyDir(filepath.Join(t.TempDir(), "missing"), t.TempDir())
		if !errors.Is(err, os.ErrNotExist) {
			t.Errorf("error = %v, want os.ErrNotExist", err)
		}
	})
}

// ---------------------------------------------------------------------------
// TestIsMarkdown - Markdown extension detection
// ---------------------------------------------------------------------------

func TestIsMarkdown(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path string
		want bool
	}{
		{"post.md", true},
		{"post.markdown", true},
		{"POST.MD", true},
		{"dir/post.md", true},
		{"post.txt", false},
		{"post.md.bak", false},
		{"md", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			t.Parallel()

			if got := fileutil.IsMarkdown(tt.path); got != tt.want {
				t.Errorf("IsMarkdown(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestFileExists / TestDirExists - Existence checks
// ---------------------------------------------------------------------------

func TestFileExists(t *testing.T) {
	t.Parallel()

	tempDir := t.TempDir()

	testFile := filepath.Join(tempDir, "test.txt")
	if err := os.WriteFile(testFile, []byte("content"), 0o644); err != nil {
		t.Fatalf("failed to create test file: %v", err)
	}

	testDir := filepath.Join(tempDir, "testdir")
	if err := os.Mkdir(testDir, 0o755); err != nil {
		t.Fatalf("failed to create test dir: %v", err)
	}

	tests := []struct {
		name     string
		path     string
		wantFile bool
		wantDir  bool
	}{
		{
			name:     "existing file",
			path:     testFile,
			wantFile: true,
			wantDir:  false,
		},
		{
			name:     "directory",
			path:     testDir,
			wantFile: false,
			wantDir:  true,
		},
		{
			name:     "nonexistent path",
			path:     filepath.Join(tempDir, "nonexistent"),
			wantFile: false,
			wantDir:  false,
		},
		{
			name:     "empty path",
			path:     "",
			wantFile: false,
			wantDir:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := fileutil.FileExists(tt.path); got != tt.wantFile {
				t.Errorf("FileExists(%q) = %v, want %v", tt.path, got, tt.wantFile)
			}
			if got := fileutil.DirExists(tt.path); got != tt.wantDir {
				t.Errorf("DirExists(%q) = %v, want %v", tt.path, got, tt.wantDir)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestIsWithin - Path containment
// ---------------------------------------------------------------------------

func TestIsWithin(t *testing.T) {
	t.Parallel()

	root := filepath.Join(t.TempDir(), "project")

	tests := []struct {
		name string
		path string
		dir  string
		want bool
	}{
		{"same directory", root, root, true},
		{"child", filepath.Join(root, "dist"), root, true},
		{"grandchild", filepath.Join(root, "dist", "posts"), root, true},
		{"parent", filepath.Dir(root), root, false},
		{"sibling with shared prefix", root + "-other", root, false},
		{"dotdot-prefixed name is a child", filepath.Join(root, "..dist"), root, true},
		{"cleaned traversal", filepath.Join(root, "dist", "..", ".."), root, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := fileutil.IsWithin(tt.path, tt.dir); got != tt.want {
				t.Errorf("IsWithin(%q, %q) = %v, want %v", tt.path, tt.dir, got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestIsFilePath - File path detection
// ---------------------------------------------------------------------------

func TestIsFilePath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{
			name:  "simple name returns false",
			input: "default",
			want:  false,
		},
		{
			name:  "relative path with dot-slash returns true",
			input: "./theme.css",
			want:  true,
		},
		{
			name:  "parent path returns true",
			input: "../shared/post.html",
			want:  true,
		},
		{
			name:  "absolute Unix path returns true",
			input: "/absolute/theme.css",
			want:  true,
		},
		{
			name:  "Windows path with backslash returns true",
			input: "C:\\windows\\theme.css",
			want:  true,
		},
		{
			name:  "hyphenated name returns false",
			input: "my-theme",
			want:  false,
		},
		{
			name:  "empty string returns false",
			input: "",
			want:  false,
		},
		{
			name:  "name with dots but no slash returns false",
			input: "name.with.dots",
			want:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := fileutil.IsFilePath(tt.input)
			if got != tt.want {
				t.Errorf("IsFilePath(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestIsURL - URL detection
// ---------------------------------------------------------------------------

func TestIsURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"http URL returns true", "http://example.com", true},
		{"https URL returns true", "https://example.com", true},
		{"file path returns false", "/path/to/file", false},
		{"empty string returns false", "", false},
		{"ftp URL returns false", "ftp://example.com", false},
		{"HTTP uppercase returns false", "HTTP://example.com", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := fileutil.IsURL(tt.input)
			if got != tt.want {
				t.Errorf("IsURL(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}
