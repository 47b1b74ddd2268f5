package models

// SearchResult is a single search hit with its memory and score.
// For fuzzy matches Score is a distance (lower is better, 0 = best);
// for semantic matches it is the keyword relevance score (higher is better).
type SearchResult struct {
	Memory  *Memory `json:"memory"`
	Score   float64 `json:"score"`
	Snippet string  `json:"snippet,omitempty"`
	Rank    int     `json:"rank"`
}

// SearchResponse is the result of one search pass.
type SearchResponse struct {
	Results          []*SearchResult `json:"results"`
	TotalResults     int             `json:"total_results"`
	HasActiveFilters bool            `json:"has_active_filters"`
	QueryTime        int64           `json:"query_time_ms"`
	Query            string          `json:"query"`
	// Suggestions holds "did you mean" corrections when query words are
	// absent from the collection vocabulary.
	Suggestions []string `json:"suggestions,omitempty"`
	// InvalidDates counts memories whose date failed to parse during this
	// pass; they sort as epoch-equivalent rather than being dropped.
	InvalidDates int `json:"invalid_dates,omitempty"`
}

// RelatedResult pairs a memory with its Jaccard similarity to the target.
type RelatedResult struct {
	Memory     *Memory `json:"memory"`
	Similarity float64 `json:"similarity"`
}
