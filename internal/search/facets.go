package search

import (
	"sort"

	"github.com/hyperjump/omoide/internal/models"
)

// AvailableTags returns the deduplicated, sorted set of all tags across the
// collection. A simple derived projection for filter UIs, no ranking.
func AvailableTags(memories []*models.Memory) []string {
	seen := make(map[string]struct{})
	tags := make([]string, 0)
	for _, m := range memories {
		for _, t := range m.Tags {
			if _, ok := seen[t]; ok {
				continue
			}
			seen[t] = struct{}{}
			tags = append(tags, t)
		}
	}
	sort.Strings(tags)
	return tags
}

// AvailableTypes returns the deduplicated, sorted set of all memory types.
func AvailableTypes(memories []*models.Memory) []string {
	seen := make(map[string]struct{})
	types := make([]string, 0)
	for _, m := range memories {
		if m.Type == "" {
			continue
		}
		if _, ok := seen[m.Type]; ok {
			continue
		}
		seen[m.Type] = struct{}{}
		types = append(types, m.Type)
	}
	sort.Strings(types)
	return types
}
