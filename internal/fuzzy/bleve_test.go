package fuzzy

import (
	"testing"
)

func testItems() []Indexable {
	return []Indexable{
		{ID: "1", Title: "Family Trip", Content: "We went to the beach", Tags: []string{"family", "beach"}},
		{ID: "2", Title: "Work Meeting", Content: "Discussed beach house budget", Tags: []string{"work"}},
		{ID: "3", Title: "Grocery List", Content: "milk eggs coffee", Tags: []string{"errands"}},
	}
}

func newTestMatcher(t *testing.T) *BleveMatcher {
	t.Helper()
	m := NewBleveMatcher(nil)
	if err := m.Reindex(testItems()); err != nil {
		t.Fatalf("Reindex() error: %v", err)
	}
	t.Cleanup(func() { _ = m.Close() })
	return m
}

func TestBleveMatcher_Match(t *testing.T) {
	m := newTestMatcher(t)

	hits, err := m.Match("beach")
	if err != nil {
		t.Fatalf("Match() error: %v", err)
	}
	if len(hits) == 0 {
		t.Fatal("expected hits for \"beach\"")
	}
	if hits[0].Score != 0 {
		t.Errorf("best hit distance = %v, want 0", hits[0].Score)
	}
	for i, h := range hits {
		if h.Score < 0 || h.Score > 1 {
			t.Errorf("hit %d distance %v out of [0,1]", i, h.Score)
		}
		if h.Score > DefaultConfig().Threshold {
			t.Errorf("hit %d distance %v above threshold", i, h.Score)
		}
		if i > 0 && hits[i-1].Score > h.Score {
			t.Error("hits must be ordered ascending by distance")
		}
		if h.ID == "3" {
			t.Error("grocery memory should not match \"beach\"")
		}
	}
}

func TestBleveMatcher_TypoTolerance(t *testing.T) {
	m := newTestMatcher(t)

	hits, err := m.Match("beah")
	if err != nil {
		t.Fatalf("Match() error: %v", err)
	}
	if len(hits) == 0 {
		t.Fatal("expected fuzzy hits for \"beah\" (edit distance 1 from \"beach\")")
	}
}

func TestBleveMatcher_NoMatch(t *testing.T) {
	m := newTestMatcher(t)

	hits, err := m.Match("zzzzzzzz")
	if err != nil {
		t.Fatalf("Match() error: %v", err)
	}
	if len(hits) != 0 {
		t.Errorf("expected no hits, got %d", len(hits))
	}
}

func TestBleveMatcher_EmptyQuery(t *testing.T) {
	m := newTestMatcher(t)

	hits, err := m.Match("   ")
	if err != nil {
		t.Fatalf("Match() error: %v", err)
	}
	if hits != nil {
		t.Errorf("expected nil hits for blank query, got %v", hits)
	}
}

func TestBleveMatcher_RequiresReindex(t *testing.T) {
	m := NewBleveMatcher(nil)
	if _, err := m.Match("beach"); err == nil {
		t.Error("expected error before first Reindex")
	}
}

func TestBleveMatcher_ReindexReplaces(t *testing.T) {
	m := newTestMatcher(t)

	if err := m.Reindex([]Indexable{{ID: "only", Title: "Mountain Hike", Content: "trail and summit"}}); err != nil {
		t.Fatalf("Reindex() error: %v", err)
	}
	hits, err := m.Match("beach")
	if err != nil {
		t.Fatalf("Match() error: %v", err)
	}
	if len(hits) != 0 {
		t.Errorf("old snapshot should be gone, got %d hits", len(hits))
	}
}
