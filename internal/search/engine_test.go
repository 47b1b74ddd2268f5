package search

import (
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/hyperjump/omoide/internal/config"
	"github.com/hyperjump/omoide/internal/fuzzy"
	"github.com/hyperjump/omoide/internal/models"
)

// fakeMatcher is a deterministic Matcher for engine tests.
type fakeMatcher struct {
	hits      []fuzzy.Match
	err       error
	reindexes int
}

func (f *fakeMatcher) Reindex(items []fuzzy.Indexable) error {
	f.reindexes++
	return nil
}

func (f *fakeMatcher) Match(query string) ([]fuzzy.Match, error) {
	return f.hits, f.err
}

func (f *fakeMatcher) Close() error { return nil }

func sampleMemories() []*models.Memory {
	return []*models.Memory{
		{ID: "1", Title: "Family Trip", Content: "We went to the beach", Tags: []string{"family", "beach"}, Type: "photo", Date: "2024-01-01"},
		{ID: "2", Title: "Work Meeting", Content: "Discussed beach house budget", Tags: []string{"work"}, Type: "text", Date: "2024-06-01"},
	}
}

func newTestEngine(matcher fuzzy.Matcher) *Engine {
	return NewEngine(matcher, nil, &config.SearchConfig{}, zap.NewNop())
}

func TestEngine_FuzzyQuery(t *testing.T) {
	matcher := &fakeMatcher{hits: []fuzzy.Match{{ID: "1", Score: 0}, {ID: "2", Score: 0.2}}}
	engine := newTestEngine(matcher)
	snap := Snapshot{Memories: sampleMemories(), Version: 1}

	resp := engine.Search(snap, &models.SearchFilters{Query: "beach"})
	if resp.TotalResults != 2 {
		t.Fatalf("TotalResults = %d, want 2", resp.TotalResults)
	}
	if resp.Results[0].Memory.ID != "1" || resp.Results[1].Memory.ID != "2" {
		t.Errorf("fuzzy results must be ordered ascending by distance")
	}
	if resp.Results[0].Rank != 1 || resp.Results[1].Rank != 2 {
		t.Errorf("ranks = %d, %d", resp.Results[0].Rank, resp.Results[1].Rank)
	}
	if !resp.HasActiveFilters {
		t.Error("query makes filters active")
	}
}

func TestEngine_SemanticQuery(t *testing.T) {
	engine := newTestEngine(nil)
	snap := Snapshot{Memories: sampleMemories(), Version: 1}

	resp := engine.Search(snap, &models.SearchFilters{Query: "beach", SemanticSearch: true})
	if resp.TotalResults != 2 {
		t.Fatalf("TotalResults = %d, want 2", resp.TotalResults)
	}
	// Title+content+tag synergy must beat a content-only hit.
	if resp.Results[0].Memory.ID != "1" {
		t.Errorf("memory 1 must rank first, got %s", resp.Results[0].Memory.ID)
	}
	if resp.Results[0].Score <= resp.Results[1].Score {
		t.Error("semantic scores must be descending")
	}
	for _, r := range resp.Results {
		if r.Score <= 0 {
			t.Error("zero-score memories must be excluded")
		}
	}
}

func TestEngine_FuzzyFailureDegradesToSemantic(t *testing.T) {
	matcher := &fakeMatcher{err: errors.New("index corrupted")}
	engine := newTestEngine(matcher)
	snap := Snapshot{Memories: sampleMemories(), Version: 1}

	resp := engine.Search(snap, &models.SearchFilters{Query: "beach"})
	if resp.TotalResults != 2 {
		t.Fatalf("degraded search should still return semantic matches, got %d", resp.TotalResults)
	}
	if resp.Results[0].Memory.ID != "1" {
		t.Errorf("degraded ordering should be semantic, got %s first", resp.Results[0].Memory.ID)
	}
}

func TestEngine_TagFilterAppliesBeforeQuery(t *testing.T) {
	matcher := &fakeMatcher{hits: []fuzzy.Match{{ID: "1", Score: 0}, {ID: "2", Score: 0.1}}}
	engine := newTestEngine(matcher)
	snap := Snapshot{Memories: sampleMemories(), Version: 1}

	resp := engine.Search(snap, &models.SearchFilters{Query: "beach", Tags: []string{"family"}})
	if resp.TotalResults != 1 || resp.Results[0].Memory.ID != "1" {
		t.Errorf("tag filter must restrict fuzzy hits, got %+v", resp.Results)
	}
}

func TestEngine_NoQuerySorts(t *testing.T) {
	engine := newTestEngine(nil)
	memories := []*models.Memory{
		{ID: "b", Title: "Bravo", Date: "2024-03-01"},
		{ID: "a", Title: "Alpha", Date: "2024-06-01"},
		{ID: "c", Title: "Charlie", Date: "2024-01-01"},
	}
	snap := Snapshot{Memories: memories, Version: 1}

	t.Run("date descending", func(t *testing.T) {
		resp := engine.Search(snap, &models.SearchFilters{SortBy: models.SortDate})
		var prev *models.SearchResult
		for _, r := range resp.Results {
			if prev != nil {
				pd, _ := prev.Memory.ResolvedDate()
				cd, _ := r.Memory.ResolvedDate()
				if cd.After(pd) {
					t.Error("dates must be non-increasing")
				}
			}
			prev = r
		}
		if resp.Results[0].Memory.ID != "a" {
			t.Errorf("newest first, got %s", resp.Results[0].Memory.ID)
		}
	})

	t.Run("title ascending", func(t *testing.T) {
		resp := engine.Search(snap, &models.SearchFilters{SortBy: models.SortTitle})
		want := []string{"a", "b", "c"}
		for i, id := range want {
			if resp.Results[i].Memory.ID != id {
				t.Errorf("position %d = %s, want %s", i, resp.Results[i].Memory.ID, id)
			}
		}
	})

	t.Run("relevance falls back to date", func(t *testing.T) {
		resp := engine.Search(snap, &models.SearchFilters{SortBy: models.SortRelevance})
		if resp.Results[0].Memory.ID != "a" {
			t.Errorf("relevance without query must sort by date, got %s first", resp.Results[0].Memory.ID)
		}
	})

	t.Run("no active filters without query", func(t *testing.T) {
		resp := engine.Search(snap, &models.SearchFilters{SortBy: models.SortDate})
		if resp.HasActiveFilters {
			t.Error("sort alone is not an active filter")
		}
	})
}

func TestEngine_MalformedDatesCounted(t *testing.T) {
	engine := newTestEngine(nil)
	memories := []*models.Memory{
		{ID: "ok", Date: "2024-01-01"},
		{ID: "bad", Date: "last tuesday"},
	}
	snap := Snapshot{Memories: memories, Version: 1}

	resp := engine.Search(snap, &models.SearchFilters{SortBy: models.SortDate})
	if resp.TotalResults != 2 {
		t.Fatal("malformed dates must not drop memories")
	}
	if resp.InvalidDates != 1 {
		t.Errorf("InvalidDates = %d, want 1", resp.InvalidDates)
	}
	// Epoch-equivalent sorts last under date descending.
	if resp.Results[1].Memory.ID != "bad" {
		t.Error("unresolvable date must sort as oldest")
	}
}

func TestEngine_EmptyCollection(t *testing.T) {
	engine := newTestEngine(&fakeMatcher{})
	resp := engine.Search(Snapshot{Version: 1}, &models.SearchFilters{Query: "anything"})
	if resp.TotalResults != 0 || len(resp.Results) != 0 {
		t.Errorf("empty collection must return empty results, got %+v", resp)
	}
}

func TestEngine_NilFilters(t *testing.T) {
	engine := newTestEngine(nil)
	resp := engine.Search(Snapshot{Memories: sampleMemories(), Version: 1}, nil)
	if resp.TotalResults != 2 {
		t.Errorf("nil filters must match everything, got %d", resp.TotalResults)
	}
}

func TestEngine_Memoization(t *testing.T) {
	matcher := &fakeMatcher{hits: []fuzzy.Match{{ID: "1", Score: 0}}}
	engine := newTestEngine(matcher)
	snap := Snapshot{Memories: sampleMemories(), Version: 1}
	filters := &models.SearchFilters{Query: "beach"}

	first := engine.Search(snap, filters)
	second := engine.Search(snap, filters)
	if first != second {
		t.Error("identical (version, filters) must hit the memo cache")
	}

	// A different filter misses the cache.
	third := engine.Search(snap, &models.SearchFilters{Query: "beach", Type: "photo"})
	if third == first {
		t.Error("different filters must not reuse the cached response")
	}

	// A version bump invalidates and triggers a reindex.
	before := matcher.reindexes
	fourth := engine.Search(Snapshot{Memories: sampleMemories(), Version: 2}, filters)
	if fourth == first {
		t.Error("new snapshot version must not reuse the cached response")
	}
	if matcher.reindexes != before+1 {
		t.Errorf("reindexes = %d, want %d", matcher.reindexes, before+1)
	}
}

func TestEngine_Idempotent(t *testing.T) {
	engine := newTestEngine(nil)
	snap := Snapshot{Memories: sampleMemories(), Version: 7}
	filters := &models.SearchFilters{Query: "beach", SemanticSearch: true}

	a := engine.Search(snap, filters)
	b := engine.Search(snap, filters)
	if a.TotalResults != b.TotalResults {
		t.Fatal("idempotence violated")
	}
	for i := range a.Results {
		if a.Results[i].Memory.ID != b.Results[i].Memory.ID || a.Results[i].Score != b.Results[i].Score {
			t.Errorf("result %d differs between identical calls", i)
		}
	}
}

func TestEngine_Suggestions(t *testing.T) {
	suggester := fuzzy.NewSuggester()
	engine := NewEngine(nil, suggester, &config.SearchConfig{}, zap.NewNop())
	snap := Snapshot{Memories: sampleMemories(), Version: 1}

	resp := engine.Search(snap, &models.SearchFilters{Query: "beahc", SemanticSearch: true})
	if resp.TotalResults != 0 {
		t.Fatalf("misspelled query should not match, got %d", resp.TotalResults)
	}
	if len(resp.Suggestions) == 0 {
		t.Fatal("expected a suggestion for the misspelled query")
	}
	if resp.Suggestions[0] != "beach" {
		t.Errorf("suggestion = %q, want \"beach\"", resp.Suggestions[0])
	}
}

func TestEngine_Related(t *testing.T) {
	engine := newTestEngine(nil)
	memories := sampleMemories()
	snap := Snapshot{Memories: memories, Version: 1}

	related := engine.Related(memories[0], snap, 0)
	if len(related) != 1 {
		t.Fatalf("expected 1 related memory, got %d", len(related))
	}
	if related[0].Memory.ID != "2" {
		t.Errorf("related = %s, want memory 2", related[0].Memory.ID)
	}
	if related[0].Similarity <= 0 {
		t.Error("shared token \"beach\" must give positive similarity")
	}
}
