// Package search provides the memory search engine: filtering, fuzzy and
// semantic ranking, and related-memory lookup.
package search

import (
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/hyperjump/omoide/internal/config"
	"github.com/hyperjump/omoide/internal/fuzzy"
	"github.com/hyperjump/omoide/internal/models"
	"github.com/hyperjump/omoide/internal/ranking"
)

// Snapshot is an immutable view of the memory collection. Version increases
// monotonically with every collection mutation; the engine uses it to know
// when to reindex the fuzzy matcher and invalidate memoized results.
type Snapshot struct {
	Memories []*models.Memory
	Version  uint64
}

// Engine runs filtered fuzzy/semantic search over memory snapshots.
// Search is a pure function of (snapshot, filters): it never mutates the
// snapshot and never returns an error; all failures degrade locally.
type Engine struct {
	matcher   fuzzy.Matcher
	suggester *fuzzy.Suggester
	scorer    *ranking.SemanticScorer
	config    *config.SearchConfig
	logger    *zap.Logger

	mu             sync.Mutex
	indexed        bool
	indexedVersion uint64
	matcherBroken  bool
	memo           memoCache
}

// NewEngine creates a search engine with the given dependencies.
// matcher and suggester may be nil: without a matcher, non-semantic queries
// degrade to the semantic scorer; without a suggester, no corrections are
// produced.
func NewEngine(matcher fuzzy.Matcher, suggester *fuzzy.Suggester, cfg *config.SearchConfig, logger *zap.Logger) *Engine {
	if cfg == nil {
		cfg = &config.SearchConfig{}
	}
	cfg.Fuzzy.ApplyDefaults()
	cfg.Scoring.ApplyDefaults()
	if cfg.RelatedLimit == 0 {
		cfg.RelatedLimit = 5
	}
	if cfg.SnippetLength == 0 {
		cfg.SnippetLength = 160
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		matcher:   matcher,
		suggester: suggester,
		scorer:    ranking.NewSemanticScorer(&cfg.Scoring),
		config:    cfg,
		logger:    logger,
	}
}

// Search applies the predicate filters, then ranks by fuzzy distance or
// semantic score when a query is active, or sorts by the requested mode
// otherwise. An empty snapshot is valid input and yields an empty result.
func (e *Engine) Search(snap Snapshot, filters *models.SearchFilters) *models.SearchResponse {
	startTime := time.Now()

	f := models.SearchFilters{}
	if filters != nil {
		f = *filters
	}
	f.Normalize()

	e.ensureIndexed(snap)
	if resp, ok := e.memo.get(snap.Version, f.Key()); ok {
		return resp
	}

	filtered := ApplyPredicates(snap.Memories,
		TypePredicate(&f),
		TagsPredicate(&f),
		DatePredicate(&f),
		EmotionPredicate(&f),
	)

	var scored []scoredMemory
	invalidDates := 0
	if f.Query != "" {
		scored = e.rankByQuery(filtered, &f)
	} else {
		scored, invalidDates = e.sortUnqueried(filtered, f.SortBy)
	}

	resp := &models.SearchResponse{
		Results:          make([]*models.SearchResult, 0, len(scored)),
		TotalResults:     len(scored),
		HasActiveFilters: f.HasActiveFilters(),
		Query:            f.Query,
		InvalidDates:     invalidDates,
	}
	for i, s := range scored {
		resp.Results = append(resp.Results, &models.SearchResult{
			Memory:  s.memory,
			Score:   s.score,
			Snippet: Highlight(s.memory.Content, e.config.SnippetLength),
			Rank:    i + 1,
		})
	}

	if invalidDates > 0 {
		e.logger.Warn("memories with unresolvable dates sorted as epoch",
			zap.Int("count", invalidDates))
	}
	if f.Query != "" && len(scored) == 0 && e.suggester != nil && e.config.SuggestionsOrDefault() {
		resp.Suggestions = e.suggester.SuggestQuery(f.Query)
	}

	resp.QueryTime = time.Since(startTime).Milliseconds()
	e.memo.put(snap.Version, f.Key(), resp)
	return resp
}

// Related returns the memories most similar to target by token-set Jaccard
// similarity, most similar first. limit <= 0 uses the configured default.
func (e *Engine) Related(target *models.Memory, snap Snapshot, limit int) []*models.RelatedResult {
	if limit <= 0 {
		limit = e.config.RelatedLimit
	}
	return ranking.Related(target, snap.Memories, limit, e.config.Scoring.MinTokenLength)
}

type scoredMemory struct {
	memory *models.Memory
	score  float64
}

// rankByQuery ranks the filtered memories for a non-empty query. Semantic
// mode uses the keyword scorer; otherwise the fuzzy matcher restricts and
// orders the results, degrading to the scorer if the matcher fails.
func (e *Engine) rankByQuery(filtered []*models.Memory, f *models.SearchFilters) []scoredMemory {
	if !f.SemanticSearch {
		if matches, ok := e.fuzzyMatches(f.Query); ok {
			out := make([]scoredMemory, 0, len(filtered))
			for _, m := range filtered {
				if score, hit := matches[m.ID]; hit {
					out = append(out, scoredMemory{memory: m, score: score})
				}
			}
			sort.SliceStable(out, func(i, j int) bool { return out[i].score < out[j].score })
			return out
		}
		e.logger.Warn("fuzzy matcher unavailable, degrading to semantic scoring",
			zap.String("query", f.Query))
	}

	ranked := e.scorer.Rank(f.Query, filtered)
	out := make([]scoredMemory, len(ranked))
	for i, r := range ranked {
		out[i] = scoredMemory{memory: r.Memory, score: r.Score}
	}
	return out
}

// fuzzyMatches runs the matcher and returns hit distances by memory ID.
// ok is false when no matcher is configured or the match failed.
func (e *Engine) fuzzyMatches(query string) (map[string]float64, bool) {
	e.mu.Lock()
	broken := e.matcherBroken
	e.mu.Unlock()
	if e.matcher == nil || broken {
		return nil, false
	}
	hits, err := e.matcher.Match(query)
	if err != nil {
		e.logger.Warn("fuzzy match failed", zap.Error(err))
		return nil, false
	}
	matches := make(map[string]float64, len(hits))
	for _, h := range hits {
		matches[h.ID] = h.Score
	}
	return matches, true
}

// sortUnqueried sorts filtered memories for the no-query case and counts
// memories whose date could not be resolved. "relevance" has no signal
// without a query and falls back to date descending.
func (e *Engine) sortUnqueried(filtered []*models.Memory, sortBy models.SortMode) ([]scoredMemory, int) {
	out := make([]scoredMemory, len(filtered))
	for i, m := range filtered {
		out[i] = scoredMemory{memory: m}
	}

	switch sortBy {
	case models.SortTitle:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].memory.Title < out[j].memory.Title
		})
		return out, 0
	default: // SortDate and SortRelevance: newest first
		invalid := 0
		type dated struct {
			entry scoredMemory
			date  time.Time
		}
		byDate := make([]dated, len(out))
		for i, s := range out {
			d, ok := s.memory.ResolvedDate()
			if !ok {
				invalid++
			}
			byDate[i] = dated{entry: s, date: d}
		}
		sort.SliceStable(byDate, func(i, j int) bool {
			return byDate[i].date.After(byDate[j].date)
		})
		for i, d := range byDate {
			out[i] = d.entry
		}
		return out, invalid
	}
}

// ensureIndexed reindexes the matcher and suggester vocabulary when the
// snapshot version changed since the last pass.
func (e *Engine) ensureIndexed(snap Snapshot) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.indexed && e.indexedVersion == snap.Version {
		return
	}

	items := make([]fuzzy.Indexable, len(snap.Memories))
	for i, m := range snap.Memories {
		items[i] = fuzzy.Indexable{ID: m.ID, Title: m.Title, Content: m.Content, Tags: m.Tags}
	}
	if e.matcher != nil {
		if err := e.matcher.Reindex(items); err != nil {
			e.logger.Warn("fuzzy reindex failed", zap.Error(err))
			e.matcherBroken = true
		} else {
			e.matcherBroken = false
		}
	}
	if e.suggester != nil {
		e.suggester.SetVocabulary(items)
	}
	e.indexed = true
	e.indexedVersion = snap.Version
	e.memo.invalidate()
}
