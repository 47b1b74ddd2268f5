package ranking

import (
	"sort"
	"strings"

	"github.com/hyperjump/omoide/internal/models"
)

// SemanticScorer computes the custom keyword relevance score for memories.
// It privileges tag matches most heavily and rewards exact phrase hits; it is
// a weighted occurrence count, not an embedding model.
type SemanticScorer struct {
	config *ScoringConfig
}

// NewSemanticScorer creates a scorer with the given config.
func NewSemanticScorer(config *ScoringConfig) *SemanticScorer {
	if config == nil {
		config = DefaultScoringConfig()
	}
	config.ApplyDefaults()
	return &SemanticScorer{config: config}
}

// Name returns the scorer name.
func (s *SemanticScorer) Name() string {
	return "semantic"
}

// Score calculates the relevance of a memory for the query. A zero score
// means no match; callers exclude such memories from results.
func (s *SemanticScorer) Score(query string, m *models.Memory) float64 {
	if m == nil {
		return 0
	}
	queryLower := strings.ToLower(strings.TrimSpace(query))
	if queryLower == "" {
		return 0
	}

	titleLower := strings.ToLower(m.Title)
	contentLower := strings.ToLower(m.Content)
	text := titleLower + " " + contentLower
	tagsLower := strings.ToLower(strings.Join(m.Tags, " "))

	score := 0.0

	// Exact phrase hit on the combined text.
	if strings.Contains(text, queryLower) {
		score += s.config.PhraseBonus
	}

	words := QueryWords(queryLower, s.config.MinTokenLength)
	for _, w := range words {
		score += float64(CountOccurrences(w, titleLower)) * s.config.TitleWeight
		score += float64(CountOccurrences(w, contentLower)) * s.config.ContentWeight
		score += float64(CountOccurrences(w, tagsLower)) * s.config.TagWeight
	}

	if loc := strings.ToLower(m.Location()); loc != "" {
		// Location counts each distinct query word once, so a repeated word
		// in the query does not stack the bonus.
		seen := make(map[string]struct{}, len(words))
		for _, w := range words {
			if _, dup := seen[w]; dup {
				continue
			}
			seen[w] = struct{}{}
			if strings.Contains(loc, w) {
				score += s.config.LocationWeight
			}
		}
	}

	return score
}

// ScoredMemory pairs a memory with its relevance score.
type ScoredMemory struct {
	Memory *models.Memory
	Score  float64
}

// Rank scores every memory and returns the matches sorted by score
// descending. The sort is stable: ties keep their original order. Memories
// scoring zero are excluded.
func (s *SemanticScorer) Rank(query string, memories []*models.Memory) []*ScoredMemory {
	results := make([]*ScoredMemory, 0, len(memories))
	for _, m := range memories {
		if score := s.Score(query, m); score > 0 {
			results = append(results, &ScoredMemory{Memory: m, Score: score})
		}
	}
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	return results
}
