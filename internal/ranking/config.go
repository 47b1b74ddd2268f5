// Package ranking provides the keyword relevance scorer and memory similarity.
package ranking

// ScoringConfig holds the weights for the keyword relevance scorer.
type ScoringConfig struct {
	// PhraseBonus is added when the full query appears as a substring of
	// the combined title + content text.
	PhraseBonus float64 `yaml:"phrase_bonus"` // default: 10

	// Per-field occurrence weights for individual query words.
	TitleWeight   float64 `yaml:"title_weight"`   // default: 3
	ContentWeight float64 `yaml:"content_weight"` // default: 2
	TagWeight     float64 `yaml:"tag_weight"`     // default: 4

	// LocationWeight is added once per distinct query word found in the
	// metadata location.
	LocationWeight float64 `yaml:"location_weight"` // default: 1.5

	// MinTokenLength is the minimum word length considered by the scorer
	// and the similarity tokenizer; shorter words are ignored.
	MinTokenLength int `yaml:"min_token_length"` // default: 3
}

// DefaultScoringConfig returns the default scoring configuration.
func DefaultScoringConfig() *ScoringConfig {
	return &ScoringConfig{
		PhraseBonus:    10,
		TitleWeight:    3,
		ContentWeight:  2,
		TagWeight:      4,
		LocationWeight: 1.5,
		MinTokenLength: 3,
	}
}

// ApplyDefaults fills in zero values with defaults.
func (c *ScoringConfig) ApplyDefaults() {
	defaults := DefaultScoringConfig()

	if c.PhraseBonus == 0 {
		c.PhraseBonus = defaults.PhraseBonus
	}
	if c.TitleWeight == 0 {
		c.TitleWeight = defaults.TitleWeight
	}
	if c.ContentWeight == 0 {
		c.ContentWeight = defaults.ContentWeight
	}
	if c.TagWeight == 0 {
		c.TagWeight = defaults.TagWeight
	}
	if c.LocationWeight == 0 {
		c.LocationWeight = defaults.LocationWeight
	}
	if c.MinTokenLength == 0 {
		c.MinTokenLength = defaults.MinTokenLength
	}
}
