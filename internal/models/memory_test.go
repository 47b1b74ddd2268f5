package models

import (
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		name   string
		in     string
		wantOK bool
	}{
		{"date only", "2024-01-01", true},
		{"rfc3339", "2024-06-01T10:30:00Z", true},
		{"datetime no zone", "2024-06-01T10:30:00", true},
		{"datetime space", "2024-06-01 10:30:00", true},
		{"empty", "", false},
		{"garbage", "not-a-date", false},
		{"whitespace only", "   ", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseDate(tt.in)
			if ok != tt.wantOK {
				t.Errorf("ParseDate(%q) ok = %v, want %v", tt.in, ok, tt.wantOK)
			}
			if !ok && !got.IsZero() {
				t.Errorf("ParseDate(%q) = %v, want zero time on failure", tt.in, got)
			}
		})
	}
}

func TestMemory_ResolvedDate(t *testing.T) {
	t.Run("metadata date overrides top-level date", func(t *testing.T) {
		m := &Memory{
			Date:     "2024-01-01",
			Metadata: &Metadata{Date: "2024-06-15"},
		}
		got, ok := m.ResolvedDate()
		if !ok {
			t.Fatal("expected resolvable date")
		}
		want, _ := ParseDate("2024-06-15")
		if !got.Equal(want) {
			t.Errorf("ResolvedDate() = %v, want %v", got, want)
		}
	})

	t.Run("falls back to top-level date", func(t *testing.T) {
		m := &Memory{Date: "2024-01-01", Metadata: &Metadata{Emotion: "happy"}}
		got, ok := m.ResolvedDate()
		if !ok {
			t.Fatal("expected resolvable date")
		}
		if got.Year() != 2024 || got.Month() != time.January {
			t.Errorf("ResolvedDate() = %v", got)
		}
	})

	t.Run("malformed metadata date falls back to top-level", func(t *testing.T) {
		m := &Memory{Date: "2024-01-01", Metadata: &Metadata{Date: "yesterday"}}
		if _, ok := m.ResolvedDate(); !ok {
			t.Error("expected fallback to top-level date")
		}
	})

	t.Run("both malformed resolves to zero time", func(t *testing.T) {
		m := &Memory{Date: "???", Metadata: &Metadata{Date: "!!!"}}
		got, ok := m.ResolvedDate()
		if ok {
			t.Error("expected ok = false for unparseable dates")
		}
		if !got.IsZero() {
			t.Errorf("expected zero time, got %v", got)
		}
	})
}

func TestMemory_OptionalMetadata(t *testing.T) {
	m := &Memory{Title: "no metadata"}
	if m.Emotion() != "" {
		t.Error("Emotion() should be empty without metadata")
	}
	if m.Location() != "" {
		t.Error("Location() should be empty without metadata")
	}
}
