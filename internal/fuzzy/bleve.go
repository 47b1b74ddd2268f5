package fuzzy

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/standard"
	blevequery "github.com/blevesearch/bleve/v2/search/query"
)

// BleveMatcher implements Matcher over an in-memory Bleve index.
// The whole snapshot is (re)indexed on every collection change; the target
// collections are small enough (hundreds to low thousands) that rebuilding
// beats incremental bookkeeping.
type BleveMatcher struct {
	config *Config

	mu    sync.RWMutex
	index bleve.Index
	count int
}

type bleveDoc struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	Tags    string `json:"tags"`
}

// NewBleveMatcher creates a matcher with the given config (nil = defaults).
func NewBleveMatcher(config *Config) *BleveMatcher {
	if config == nil {
		config = DefaultConfig()
	}
	config.ApplyDefaults()
	return &BleveMatcher{config: config}
}

func newMemIndex() (bleve.Index, error) {
	im := bleve.NewIndexMapping()
	docMapping := bleve.NewDocumentMapping()
	textFieldMapping := bleve.NewTextFieldMapping()
	// Standard analyzer (lowercase + tokenize, no stemming) so a query term
	// matches the exact indexed word before fuzziness is applied.
	textFieldMapping.Analyzer = standard.Name
	docMapping.AddFieldMappingsAt("title", textFieldMapping)
	docMapping.AddFieldMappingsAt("content", textFieldMapping)
	docMapping.AddFieldMappingsAt("tags", textFieldMapping)
	im.AddDocumentMapping("memory", docMapping)
	im.DefaultType = "memory"
	im.DefaultMapping = docMapping
	return bleve.NewMemOnly(im)
}

// Reindex replaces the index contents with the given snapshot.
func (b *BleveMatcher) Reindex(items []Indexable) error {
	index, err := newMemIndex()
	if err != nil {
		return fmt.Errorf("failed to create index: %w", err)
	}
	batch := index.NewBatch()
	for _, item := range items {
		doc := bleveDoc{
			Title:   item.Title,
			Content: item.Content,
			Tags:    strings.Join(item.Tags, " "),
		}
		if err := batch.Index(item.ID, doc); err != nil {
			_ = index.Close()
			return fmt.Errorf("failed to index memory %s: %w", item.ID, err)
		}
	}
	if err := index.Batch(batch); err != nil {
		_ = index.Close()
		return fmt.Errorf("failed to apply index batch: %w", err)
	}

	b.mu.Lock()
	old := b.index
	b.index = index
	b.count = len(items)
	b.mu.Unlock()
	if old != nil {
		_ = old.Close()
	}
	return nil
}

// Match runs a weighted fuzzy query across title, content and tags and
// returns hits with distance <= threshold, ordered best (lowest) first.
// Raw Bleve scores are normalized by the best hit and inverted into
// distances, so the top hit always has distance 0.
func (b *BleveMatcher) Match(query string) ([]Match, error) {
	b.mu.RLock()
	index := b.index
	count := b.count
	b.mu.RUnlock()

	if index == nil {
		return nil, fmt.Errorf("matcher has no index; call Reindex first")
	}
	if strings.TrimSpace(query) == "" || count == 0 {
		return nil, nil
	}

	q := bleve.NewDisjunctionQuery(
		b.fieldQuery(query, "title", b.config.TitleWeight),
		b.fieldQuery(query, "content", b.config.ContentWeight),
		b.fieldQuery(query, "tags", b.config.TagWeight),
	)
	req := bleve.NewSearchRequest(q)
	req.Size = count
	results, err := index.Search(req)
	if err != nil {
		return nil, fmt.Errorf("fuzzy search failed: %w", err)
	}
	if len(results.Hits) == 0 {
		return nil, nil
	}

	maxScore := results.Hits[0].Score
	for _, hit := range results.Hits {
		if hit.Score > maxScore {
			maxScore = hit.Score
		}
	}
	if maxScore == 0 {
		return nil, nil
	}

	out := make([]Match, 0, len(results.Hits))
	for _, hit := range results.Hits {
		distance := 1 - hit.Score/maxScore
		if distance > b.config.Threshold {
			continue
		}
		out = append(out, Match{ID: hit.ID, Score: distance})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Score < out[j].Score })
	return out, nil
}

// fieldQuery builds a boosted disjunction of match + per-term fuzzy queries
// for one field. The exact match query keeps typo-free terms scoring higher
// than their fuzzy neighbors.
func (b *BleveMatcher) fieldQuery(query, field string, weight float64) blevequery.Query {
	mq := bleve.NewMatchQuery(query)
	mq.SetField(field)
	mq.SetBoost(weight)

	terms := strings.Fields(strings.ToLower(query))
	queries := make([]blevequery.Query, 0, len(terms)+1)
	queries = append(queries, mq)
	for _, term := range terms {
		fq := bleve.NewFuzzyQuery(term)
		fq.SetFuzziness(b.config.Fuzziness)
		fq.SetField(field)
		fq.SetBoost(weight)
		queries = append(queries, fq)
	}
	return bleve.NewDisjunctionQuery(queries...)
}

// Close releases the in-memory index.
func (b *BleveMatcher) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.index == nil {
		return nil
	}
	err := b.index.Close()
	b.index = nil
	b.count = 0
	return err
}
