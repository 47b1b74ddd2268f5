package ranking

import (
	"strings"
	"unicode/utf8"
)

// QueryWords splits a query on whitespace and returns the lowercase words
// of at least minLen runes. Shorter words carry too little signal and are
// ignored by the scorer.
func QueryWords(query string, minLen int) []string {
	fields := strings.Fields(strings.ToLower(query))
	words := make([]string, 0, len(fields))
	for _, w := range fields {
		if utf8.RuneCountInString(w) >= minLen {
			words = append(words, w)
		}
	}
	return words
}

// TokenSet tokenizes text into the set of lowercase words of at least minLen
// runes. Used by the similarity engine.
func TokenSet(text string, minLen int) map[string]struct{} {
	set := make(map[string]struct{})
	for _, w := range strings.Fields(strings.ToLower(text)) {
		if utf8.RuneCountInString(w) >= minLen {
			set[w] = struct{}{}
		}
	}
	return set
}

// CountOccurrences counts non-overlapping occurrences of word in text.
// Both arguments are expected to be lowercase already.
func CountOccurrences(word, text string) int {
	if word == "" {
		return 0
	}
	return strings.Count(text, word)
}
