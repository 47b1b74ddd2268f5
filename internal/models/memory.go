// Package models defines core data structures for memories, filters, and search results.
package models

import (
	"strings"
	"time"
)

// Memory represents a single stored memory (journal entry, photo note, contact, etc.).
type Memory struct {
	ID        string    `json:"id" db:"id"`
	Title     string    `json:"title" db:"title"`
	Content   string    `json:"content" db:"content"`
	Tags      []string  `json:"tags,omitempty" db:"tags"`
	Type      string    `json:"type" db:"type"`
	Date      string    `json:"date" db:"date"`
	Metadata  *Metadata `json:"metadata,omitempty" db:"metadata"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// Metadata is the optional bag of extra fields attached to a memory.
// Date, when set, overrides the top-level Date for sorting and range filters.
type Metadata struct {
	Date     string `json:"date,omitempty"`
	Emotion  string `json:"emotion,omitempty"`
	Location string `json:"location,omitempty"`
}

// MemoryInput is the input for creating or updating a memory.
type MemoryInput struct {
	ID       string    `json:"id,omitempty"`
	Title    string    `json:"title,omitempty"`
	Content  string    `json:"content"`
	Tags     []string  `json:"tags,omitempty"`
	Type     string    `json:"type,omitempty"`
	Date     string    `json:"date,omitempty"`
	Metadata *Metadata `json:"metadata,omitempty"`
}

// Emotion returns the metadata emotion label, or "" when metadata is absent.
func (m *Memory) Emotion() string {
	if m.Metadata == nil {
		return ""
	}
	return m.Metadata.Emotion
}

// Location returns the metadata location, or "" when metadata is absent.
func (m *Memory) Location() string {
	if m.Metadata == nil {
		return ""
	}
	return m.Metadata.Location
}

// SearchText returns the combined title and content used for scoring and similarity.
func (m *Memory) SearchText() string {
	return m.Title + " " + m.Content
}

// dateLayouts are the accepted memory date formats, tried in order.
var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseDate parses an ISO-ish date string. The second return value is false
// when the string is empty or matches none of the accepted layouts.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// ResolvedDate returns the memory's effective timestamp: metadata date when
// set, otherwise the top-level date. Unparseable or missing dates resolve to
// the zero time so the memory sorts as epoch-equivalent; ok reports whether
// a valid date was found.
func (m *Memory) ResolvedDate() (t time.Time, ok bool) {
	if m.Metadata != nil && m.Metadata.Date != "" {
		if t, ok = ParseDate(m.Metadata.Date); ok {
			return t, true
		}
	}
	return ParseDate(m.Date)
}
