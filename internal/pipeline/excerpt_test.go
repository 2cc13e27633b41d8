package pipeline

import (
	"strings"
	"testing"
	"unicode/utf8"
)

// ---------------------------------------------------------------------------
// TestExcerpt
// ---------------------------------------------------------------------------

func TestExcerpt(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		body   string
		maxLen int
		want   string
	}{
		{"short text unchanged", "Hello", 160, "Hello"},
		{"header markers stripped", "## Title\nBody", 160, "Title Body"},
		{"emphasis stripped", "**bold** and *it* and __strong__", 160, "bold and it and strong"},
		{"inline code keeps content", "run `go test` now", 160, "run go test now"},
		{"fenced code removed", "Intro\n```go\nx := 1\n```\nOutro", 160, "Intro Outro"},
		{"link reduced to label", "read [the docs](http://x.io) first", 160, "read the docs first"},
		{"image removed", "see ![diagram](d.png)", 160, "see"},
		{"quote marker stripped", "> quoted words", 160, "quoted words"},
		{"newline runs collapse", "a\n\n\nb", 160, "a b"},
		{"whitespace trimmed", "\n  text  \n", 160, "text"},
		{"exact limit not cut", strings.Repeat("x", 10), 10, strings.Repeat("x", 10)},
		{"cut at limit", strings.Repeat("x", 11), 10, strings.Repeat("x", 10) + "..."},
		{"cut ignores word boundaries", "abcdef ghijkl", 9, "abcdef gh..."},
		{"trailing space at the cut is trimmed", "abcd efgh", 5, "abcd..."},
		{"zero limit uses default", strings.Repeat("y", 200), 0, strings.Repeat("y", 160) + "..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := Excerpt(tt.body, tt.maxLen); got != tt.want {
				t.Errorf("Excerpt(%q, %d) = %q, want %q", tt.body, tt.maxLen, got, tt.want)
			}
		})
	}
}

func TestExcerpt_DefaultLength(t *testing.T) {
	t.Parallel()

	got := Excerpt(strings.Repeat("a", 200), DefaultExcerptLength)
	if len(got) != 163 {
		t.Errorf("len(Excerpt) = %d, want 163", len(got))
	}
	if !strings.HasSuffix(got, "...") {
		t.Errorf("Excerpt = %q, want ... suffix", got)
	}
}

func TestExcerpt_CountsRunes(t *testing.T) {
	t.Parallel()

	got := Excerpt(strings.Repeat("é", 170), 160)
	if n := utf8.RuneCountInString(got); n != 163 {
		t.Errorf("rune count = %d, want 163", n)
	}
	if !utf8.ValidString(got) {
		t.Errorf("Excerpt produced invalid UTF-8: %q", got)
	}
}

// ---------------------------------------------------------------------------
// TestReadingTime
// ---------------------------------------------------------------------------

func TestReadingTime(t *testing.T) {
	t.Parallel()

	words := func(n int) string {
		return strings.TrimSpace(strings.Repeat("word ", n))
	}

	tests := []struct {
		name string
		body string
		wpm  int
		want int
	}{
		{"empty body is one minute", "", 200, 1},
		{"under one minute", words(50), 200, 1},
		{"exactly one minute", words(200), 200, 1},
		{"201 words rounds up", words(201), 200, 2},
		{"400 words", words(400), 200, 2},
		{"custom speed", words(250), 100, 3},
		{"zero speed uses default", words(400), 0, 2},
		{"newlines and tabs separate words", "a\nb\tc  d", 2, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := ReadingTime(tt.body, tt.wpm); got != tt.want {
				t.Errorf("ReadingTime(%d words, %d) = %d, want %d", len(strings.Fields(tt.body)), tt.wpm, got, tt.want)
			}
		})
	}
}
