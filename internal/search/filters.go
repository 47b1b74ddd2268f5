package search

import (
	"strings"

	"github.com/hyperjump/omoide/internal/models"
)

// Predicate is a pure include/exclude test over a single memory. Predicates
// are independent and AND-composed before any ranking step.
type Predicate func(*models.Memory) bool

// TypePredicate passes when no type filter is set or the memory type matches
// exactly (case-sensitive).
func TypePredicate(filters *models.SearchFilters) Predicate {
	return func(m *models.Memory) bool {
		return filters.Type == "" || m.Type == filters.Type
	}
}

// TagsPredicate passes when every required tag case-insensitively
// substring-matches at least one of the memory's tags. Substring semantics
// are intentional: required "fam" matches an item tagged "Family".
func TagsPredicate(filters *models.SearchFilters) Predicate {
	required := make([]string, len(filters.Tags))
	for i, t := range filters.Tags {
		required[i] = strings.ToLower(t)
	}
	return func(m *models.Memory) bool {
		for _, want := range required {
			found := false
			for _, have := range m.Tags {
				if strings.Contains(strings.ToLower(have), want) {
					found = true
					break
				}
			}
			if !found {
				return false
			}
		}
		return true
	}
}

// DatePredicate passes when the memory's resolved date falls inside the
// inclusive range. An unparseable memory date resolves to the zero time, so
// it fails any lower bound. An inverted range simply matches nothing.
func DatePredicate(filters *models.SearchFilters) Predicate {
	from, hasFrom := filters.DateFromBound()
	to, hasTo := filters.DateToBound()
	return func(m *models.Memory) bool {
		if !hasFrom && !hasTo {
			return true
		}
		d, _ := m.ResolvedDate()
		if hasFrom && d.Before(from) {
			return false
		}
		if hasTo && d.After(to) {
			return false
		}
		return true
	}
}

// EmotionPredicate passes when no emotion filter is set or the memory's
// metadata emotion matches exactly. A memory without metadata fails a set
// filter.
func EmotionPredicate(filters *models.SearchFilters) Predicate {
	return func(m *models.Memory) bool {
		return filters.Emotion == "" || m.Emotion() == filters.Emotion
	}
}

// ApplyPredicates returns the memories passing all predicates, in order.
func ApplyPredicates(memories []*models.Memory, predicates ...Predicate) []*models.Memory {
	out := make([]*models.Memory, 0, len(memories))
	for _, m := range memories {
		pass := true
		for _, p := range predicates {
			if !p(m) {
				pass = false
				break
			}
		}
		if pass {
			out = append(out, m)
		}
	}
	return out
}
