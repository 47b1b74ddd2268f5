package fuzzy

import (
	"sort"
	"strings"
	"sync"
)

// Suggestion is a candidate spelling correction with its ranking score.
type Suggestion struct {
	Term      string  // the suggested term
	Distance  int     // edit distance from the original term
	Frequency int     // number of memories containing the term
	Score     float64 // combined score for ranking
}

// Suggester produces "did you mean" corrections for query words absent from
// the collection vocabulary (tags plus title and content words).
type Suggester struct {
	maxDistance    int
	minFreq        int
	maxSuggestions int
	minTokenLength int

	mu    sync.RWMutex
	terms []string
	freq  map[string]int
}

// SuggesterOption configures a Suggester.
type SuggesterOption func(*Suggester)

// WithMaxDistance sets the maximum edit distance for suggestions.
func WithMaxDistance(d int) SuggesterOption {
	return func(s *Suggester) {
		if d > 0 {
			s.maxDistance = d
		}
	}
}

// WithMinFrequency sets the minimum memory frequency for suggestions.
// Terms seen fewer times are ignored (likely noise).
func WithMinFrequency(f int) SuggesterOption {
	return func(s *Suggester) {
		if f >= 0 {
			s.minFreq = f
		}
	}
}

// WithMaxSuggestions caps the number of suggestions returned per term.
func WithMaxSuggestions(n int) SuggesterOption {
	return func(s *Suggester) {
		if n > 0 {
			s.maxSuggestions = n
		}
	}
}

// NewSuggester creates a Suggester with an empty vocabulary.
func NewSuggester(opts ...SuggesterOption) *Suggester {
	s := &Suggester{
		maxDistance:    2,
		minFreq:        1,
		maxSuggestions: 3,
		minTokenLength: 3,
		freq:           make(map[string]int),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SetVocabulary rebuilds the term dictionary from the given snapshot.
// Each memory contributes its tags and the words of its title and content;
// frequency counts memories, not occurrences.
func (s *Suggester) SetVocabulary(items []Indexable) {
	freq := make(map[string]int)
	for _, item := range items {
		seen := make(map[string]struct{})
		text := item.Title + " " + item.Content + " " + strings.Join(item.Tags, " ")
		for _, w := range strings.Fields(strings.ToLower(text)) {
			w = strings.Trim(w, ".,;:!?\"'()")
			if len(w) < s.minTokenLength {
				continue
			}
			if _, ok := seen[w]; ok {
				continue
			}
			seen[w] = struct{}{}
			freq[w]++
		}
	}

	terms := make([]string, 0, len(freq))
	for w := range freq {
		terms = append(terms, w)
	}
	sort.Strings(terms)

	s.mu.Lock()
	s.terms = terms
	s.freq = freq
	s.mu.Unlock()
}

// Contains reports whether term is in the vocabulary.
func (s *Suggester) Contains(term string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.freq[strings.ToLower(term)]
	return ok
}

// Suggest returns ranked corrections for a single term. Lower edit distance
// and higher frequency rank first.
func (s *Suggester) Suggest(term string) []Suggestion {
	termLower := strings.ToLower(term)

	s.mu.RLock()
	terms := s.terms
	freq := s.freq
	s.mu.RUnlock()

	suggestions := make([]Suggestion, 0)
	for _, candidate := range terms {
		if candidate == termLower {
			continue
		}
		lenDiff := len(candidate) - len(termLower)
		if lenDiff < 0 {
			lenDiff = -lenDiff
		}
		if lenDiff > s.maxDistance {
			continue
		}
		distance := DamerauLevenshteinDistance(termLower, candidate)
		if distance > s.maxDistance {
			continue
		}
		f := freq[candidate]
		if f < s.minFreq {
			continue
		}
		suggestions = append(suggestions, Suggestion{
			Term:      candidate,
			Distance:  distance,
			Frequency: f,
			Score:     (1.0 / float64(distance+1)) * float64(f),
		})
	}

	sort.Slice(suggestions, func(i, j int) bool {
		return suggestions[i].Score > suggestions[j].Score
	})
	if len(suggestions) > s.maxSuggestions {
		suggestions = suggestions[:s.maxSuggestions]
	}
	return suggestions
}

// SuggestQuery returns the best correction for each query word missing from
// the vocabulary. Words that are present, or too short to matter, yield
// nothing.
func (s *Suggester) SuggestQuery(query string) []string {
	var out []string
	for _, w := range strings.Fields(strings.ToLower(query)) {
		if len(w) < s.minTokenLength || s.Contains(w) {
			continue
		}
		if candidates := s.Suggest(w); len(candidates) > 0 {
			out = append(out, candidates[0].Term)
		}
	}
	return out
}
