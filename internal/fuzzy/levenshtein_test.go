package fuzzy

import "testing"

func TestLevenshteinDistance(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want int
	}{
		{"identical strings", "beach", "beach", 0},
		{"empty to word", "", "beach", 5},
		{"word to empty", "beach", "", 5},
		{"single substitution", "beach", "peach", 1},
		{"single deletion", "beach", "each", 1},
		{"single insertion", "each", "beach", 1},
		{"transposition counts as two", "beach", "baech", 2},
		{"unrelated words", "beach", "work", 5},
		{"unicode runes", "思い出", "思い", 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := LevenshteinDistance(tt.a, tt.b); got != tt.want {
				t.Errorf("LevenshteinDistance(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
			}
			// Distance is symmetric.
			if got := LevenshteinDistance(tt.b, tt.a); got != tt.want {
				t.Errorf("LevenshteinDistance(%q, %q) = %d, want %d", tt.b, tt.a, got, tt.want)
			}
		})
	}
}

func TestDamerauLevenshteinDistance(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want int
	}{
		{"identical strings", "beach", "beach", 0},
		{"empty to word", "", "trip", 4},
		{"transposition is one edit", "beach", "baech", 1},
		{"trailing transposition", "beahc", "beach", 1},
		{"substitution", "beach", "peach", 1},
		{"unicode runes", "日記", "記日", 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DamerauLevenshteinDistance(tt.a, tt.b); got != tt.want {
				t.Errorf("DamerauLevenshteinDistance(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestDamerauNeverExceedsLevenshtein(t *testing.T) {
	pairs := [][2]string{
		{"beach", "baech"},
		{"budget", "budgte"},
		{"memory", "memroy"},
		{"family", "fmaily"},
	}
	for _, p := range pairs {
		lev := LevenshteinDistance(p[0], p[1])
		dam := DamerauLevenshteinDistance(p[0], p[1])
		if dam > lev {
			t.Errorf("Damerau(%q, %q) = %d exceeds Levenshtein %d", p[0], p[1], dam, lev)
		}
	}
}
