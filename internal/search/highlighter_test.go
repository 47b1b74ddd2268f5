package search

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestHighlight(t *testing.T) {
	if got := Highlight("short", 100); got != "short" {
		t.Errorf("short content unchanged, got %q", got)
	}
	if got := Highlight("anything", 0); got != "anything" {
		t.Errorf("maxLen 0 returns as-is, got %q", got)
	}

	long := strings.Repeat("word ", 50)
	got := Highlight(long, 40)
	if !strings.HasSuffix(got, "...") {
		t.Errorf("truncated snippet must end with ellipsis: %q", got)
	}
	if len(got) > 43 {
		t.Errorf("snippet too long: %d chars", len(got))
	}
	if strings.HasSuffix(strings.TrimSuffix(got, "..."), "wor") {
		t.Errorf("snippet should break at a word boundary: %q", got)
	}
}

func TestHighlightMultibyteContent(t *testing.T) {
	content := strings.Repeat("思い出の夏", 10)
	got := Highlight(content, 12)
	if !utf8.ValidString(got) {
		t.Fatalf("snippet is not valid UTF-8: %q", got)
	}
	if n := utf8.RuneCountInString(strings.TrimSuffix(got, "...")); n > 12 {
		t.Errorf("snippet has %d runes, want at most 12", n)
	}
}
