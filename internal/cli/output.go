// Package cli provides output formatting for the Omoide CLI.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/hyperjump/omoide/internal/models"
	"github.com/hyperjump/omoide/pkg/utils"
)

// OutputFormat is the format for CLI output.
type OutputFormat string

const (
	// OutputText is human-readable text (default).
	OutputText OutputFormat = "text"
	// OutputJSON is structured JSON for machine consumption.
	OutputJSON OutputFormat = "json"
)

// ParseFormat validates a format string from a flag.
func ParseFormat(s string) (OutputFormat, error) {
	switch s {
	case "", "text":
		return OutputText, nil
	case "json":
		return OutputJSON, nil
	default:
		return "", fmt.Errorf("unknown output format %q; use text or json", s)
	}
}

// WriteSearchResults writes search results to w in the given format.
func WriteSearchResults(w io.Writer, response *models.SearchResponse, format OutputFormat) error {
	if format == OutputJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(response)
	}
	fmt.Fprintf(w, "\nFound %d %s in %dms\n\n",
		response.TotalResults,
		utils.Pluralize(response.TotalResults, "result", "results"),
		response.QueryTime)
	for _, result := range response.Results {
		writeOneResult(w, result)
	}
	if len(response.Suggestions) > 0 {
		fmt.Fprintf(w, "Did you mean: %s?\n", strings.Join(response.Suggestions, ", "))
	}
	return nil
}

func writeOneResult(w io.Writer, result *models.SearchResult) {
	fmt.Fprintf(w, "─────────────────────────────────────────────────────────\n")
	fmt.Fprintf(w, "Rank: %d | Score: %.4f\n", result.Rank, result.Score)
	fmt.Fprintf(w, "ID: %s\n", result.Memory.ID)
	if result.Memory.Title != "" {
		fmt.Fprintf(w, "Title: %s\n", result.Memory.Title)
	}
	if len(result.Memory.Tags) > 0 {
		fmt.Fprintf(w, "Tags: %s\n", strings.Join(result.Memory.Tags, ", "))
	}
	snippet := result.Snippet
	if snippet == "" {
		snippet = utils.Truncate(result.Memory.Content, 200)
	}
	fmt.Fprintf(w, "\n%s\n\n", snippet)
}

// WriteRelated writes related-memory results to w in the given format.
func WriteRelated(w io.Writer, related []*models.RelatedResult, format OutputFormat) error {
	if format == OutputJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(related)
	}
	if len(related) == 0 {
		fmt.Fprintln(w, "No related memories found.")
		return nil
	}
	for _, r := range related {
		title := r.Memory.Title
		if title == "" {
			title = utils.Truncate(r.Memory.Content, 60)
		}
		fmt.Fprintf(w, "%.4f  %s  %s\n", r.Similarity, r.Memory.ID, title)
	}
	return nil
}
