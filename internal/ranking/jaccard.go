package ranking

import (
	"sort"

	"github.com/hyperjump/omoide/internal/models"
)

// Similarity computes the Jaccard index of the two memories' token sets
// (lowercase words of the combined title + content, minimum length minLen).
// Returns a value in [0, 1]; an empty union yields 0 by convention.
func Similarity(a, b *models.Memory, minLen int) float64 {
	if a == nil || b == nil {
		return 0
	}
	setA := TokenSet(a.SearchText(), minLen)
	setB := TokenSet(b.SearchText(), minLen)

	intersection := 0
	for w := range setA {
		if _, ok := setB[w]; ok {
			intersection++
		}
	}
	union := len(setA) + len(setB) - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}

// Related ranks every other memory by similarity to target and returns the
// top limit, most similar first. The target itself is excluded by ID.
// O(n * avgTokens) per call; fine for the hundreds-to-low-thousands of
// memories this engine is built for, not for large corpora.
func Related(target *models.Memory, memories []*models.Memory, limit, minLen int) []*models.RelatedResult {
	if target == nil {
		return nil
	}
	if limit <= 0 {
		limit = 5
	}

	results := make([]*models.RelatedResult, 0, len(memories))
	for _, m := range memories {
		if m.ID == target.ID {
			continue
		}
		results = append(results, &models.RelatedResult{
			Memory:     m,
			Similarity: Similarity(target, m, minLen),
		})
	}
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Similarity > results[j].Similarity
	})
	if len(results) > limit {
		results = results[:limit]
	}
	return results
}
