package fuzzy

// Config holds fuzzy matcher settings. Field weights follow the searchable
// field priorities: title > content > tags.
type Config struct {
	// TitleWeight, ContentWeight and TagWeight boost matches in the
	// corresponding memory field.
	TitleWeight   float64 `yaml:"title_weight"`   // default: 0.4
	ContentWeight float64 `yaml:"content_weight"` // default: 0.3
	TagWeight     float64 `yaml:"tag_weight"`     // default: 0.2

	// Threshold is the maximum distance a hit may have to be returned.
	// Distances are in [0,1] with 0 = best match; 0.3 keeps the matcher
	// strict.
	Threshold float64 `yaml:"threshold"` // default: 0.3

	// Fuzziness is the maximum edit distance for per-term fuzzy matching.
	Fuzziness int `yaml:"fuzziness"` // default: 1
}

// DefaultConfig returns the default matcher configuration.
func DefaultConfig() *Config {
	return &Config{
		TitleWeight:   0.4,
		ContentWeight: 0.3,
		TagWeight:     0.2,
		Threshold:     0.3,
		Fuzziness:     1,
	}
}

// ApplyDefaults fills in zero values with defaults.
func (c *Config) ApplyDefaults() {
	defaults := DefaultConfig()
	if c.TitleWeight == 0 {
		c.TitleWeight = defaults.TitleWeight
	}
	if c.ContentWeight == 0 {
		c.ContentWeight = defaults.ContentWeight
	}
	if c.TagWeight == 0 {
		c.TagWeight = defaults.TagWeight
	}
	if c.Threshold == 0 {
		c.Threshold = defaults.Threshold
	}
	if c.Fuzziness == 0 {
		c.Fuzziness = defaults.Fuzziness
	}
}

// Match is a single fuzzy hit. Score is a distance in [0,1]: lower is
// better, 0 is the best hit in the result set.
type Match struct {
	ID    string
	Score float64
}

// Matcher is the narrow fuzzy-matching capability the search engine depends
// on. Any weighted multi-field, threshold-based scorer can implement it; the
// engine's control flow must not assume a particular library underneath.
type Matcher interface {
	// Reindex replaces the indexed collection with the given snapshot.
	Reindex(items []Indexable) error
	// Match returns hits for query with distance <= threshold, best first.
	Match(query string) ([]Match, error)
	Close() error
}

// Indexable is the view of a memory the matcher indexes.
type Indexable struct {
	ID      string
	Title   string
	Content string
	Tags    []string
}
