package utils

import "testing"

func TestTruncate(t *testing.T) {
	tests := []struct {
		name     string
		s        string
		maxRunes int
		want     string
	}{
		{"shorter than limit", "hello", 10, "hello"},
		{"exactly at limit", "hello", 5, "hello"},
		{"over limit", "hello world", 5, "hello..."},
		{"zero limit returns unchanged", "hello", 0, "hello"},
		{"negative limit returns unchanged", "hello", -1, "hello"},
		{"multibyte runes counted not bytes", "思い出を探す", 3, "思い出..."},
		{"empty string", "", 5, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Truncate(tt.s, tt.maxRunes); got != tt.want {
				t.Errorf("Truncate(%q, %d) = %q, want %q", tt.s, tt.maxRunes, got, tt.want)
			}
		})
	}
}

func TestPluralize(t *testing.T) {
	if got := Pluralize(1, "memory", "memories"); got != "memory" {
		t.Errorf("Pluralize(1) = %q", got)
	}
	if got := Pluralize(2, "memory", "memories"); got != "memories" {
		t.Errorf("Pluralize(2) = %q", got)
	}
	if got := Pluralize(0, "memory", "memories"); got != "memories" {
		t.Errorf("Pluralize(0) = %q", got)
	}
}
