package search

import "strings"

// Highlight truncates content to at most maxLen runes for result snippets,
// breaking at a word boundary when one is close enough.
func Highlight(content string, maxLen int) string {
	if maxLen <= 0 {
		return content
	}
	runes := []rune(content)
	if len(runes) <= maxLen {
		return content
	}
	cut := string(runes[:maxLen])
	if idx := strings.LastIndexByte(cut, ' '); idx > len(cut)/2 {
		cut = cut[:idx]
	}
	return cut + "..."
}
