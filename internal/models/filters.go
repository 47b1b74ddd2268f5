package models

import (
	"fmt"
	"strings"
	"time"
)

// SortMode selects result ordering when no query is active.
type SortMode string

const (
	// SortRelevance orders by match score; without a query it falls back to date.
	SortRelevance SortMode = "relevance"
	// SortDate orders by resolved memory date, newest first.
	SortDate SortMode = "date"
	// SortTitle orders by title, ascending lexicographic.
	SortTitle SortMode = "title"
)

// SearchFilters is the mutable query state for one search session.
// The zero value (all fields empty) matches every memory.
type SearchFilters struct {
	Query          string   `json:"query,omitempty"`
	Type           string   `json:"type,omitempty"`
	Tags           []string `json:"tags,omitempty"`
	DateFrom       string   `json:"date_from,omitempty"`
	DateTo         string   `json:"date_to,omitempty"`
	Emotion        string   `json:"emotion,omitempty"`
	SemanticSearch bool     `json:"semantic_search,omitempty"`
	SortBy         SortMode `json:"sort_by,omitempty"`
}

// Normalize trims the query and applies the default sort mode.
func (f *SearchFilters) Normalize() {
	f.Query = strings.TrimSpace(f.Query)
	if f.SortBy == "" {
		f.SortBy = SortRelevance
	}
}

// HasActiveFilters reports whether any filter deviates from the default
// (non-empty query or any predicate set).
func (f *SearchFilters) HasActiveFilters() bool {
	return f.Query != "" ||
		f.Type != "" ||
		len(f.Tags) > 0 ||
		f.DateFrom != "" ||
		f.DateTo != "" ||
		f.Emotion != ""
}

// Key returns a deterministic string identifying this filter state, used as
// the memoization cache key together with the snapshot version.
func (f *SearchFilters) Key() string {
	return fmt.Sprintf("q=%s|t=%s|tags=%s|from=%s|to=%s|e=%s|sem=%t|sort=%s",
		f.Query, f.Type, strings.Join(f.Tags, ","), f.DateFrom, f.DateTo,
		f.Emotion, f.SemanticSearch, f.SortBy)
}

// DateFromBound returns the inclusive lower bound of the date range at
// 00:00:00 local time. ok is false when DateFrom is empty or unparseable
// (unbounded).
func (f *SearchFilters) DateFromBound() (t time.Time, ok bool) {
	t, ok = ParseDate(f.DateFrom)
	if !ok {
		return time.Time{}, false
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location()), true
}

// DateToBound returns the inclusive upper bound of the date range at
// 23:59:59.999 local time (end-of-day inclusive). ok is false when DateTo is
// empty or unparseable (unbounded).
func (f *SearchFilters) DateToBound() (t time.Time, ok bool) {
	t, ok = ParseDate(f.DateTo)
	if !ok {
		return time.Time{}, false
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, int(999*time.Millisecond), t.Location()), true
}
