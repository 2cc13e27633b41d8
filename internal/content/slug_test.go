package content

import (
	"path/filepath"
	"testing"
)

func TestSlugify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"Hello World", "hello-world"},
		{"  Go & Rust: A Comparison!  ", "go-rust-a-comparison"},
		{"already-slugged", "already-slugged"},
		{"multiple   spaces -- and dashes", "multiple-spaces-and-dashes"},
		{"snake_case_kept", "snake_case_kept"},
		{"Café Crème", "café-crème"},
		{"C++", "c"},
		{"!!!", ""},
		{"", ""},
		{"-leading and trailing-", "leading-and-trailing"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()

			if got := Slugify(tt.in); got != tt.want {
				t.Errorf("Slugify(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestTagSlug_Fallback(t *testing.T) {
	t.Parallel()

	if got := TagSlug("???"); got != fallbackTagSlug {
		t.Errorf("TagSlug(???) = %q, want %q", got, fallbackTagSlug)
	}
}

func TestCapitalize(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"go":    "Go",
		"éclat": "Éclat",
		"":      "",
		"Web":   "Web",
	}
	for in, want := range tests {
		if got := Capitalize(in); got != want {
			t.Errorf("Capitalize(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestSlugFromPath(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		filepath.Join("posts", "hello.md"):     "hello",
		filepath.Join("posts", "a.b.markdown"): "a.b",
		"plain":                                "plain",
	}
	for in, want := range tests {
		if got := SlugFromPath(in); got != want {
			t.Errorf("SlugFromPath(%q) = %q, want %q", in, got, want)
		}
	}
}
