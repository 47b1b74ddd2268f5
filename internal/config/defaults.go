package config

// ApplyDefaults sets default values for any zero values in cfg.
func ApplyDefaults(cfg *Config) {
	if cfg.Server.Host == "" {
		cfg.Server.Host = "localhost"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Storage.DatabasePath == "" {
		cfg.Storage.DatabasePath = "/usr/local/var/omoide/data/memories.db"
	}
	cfg.Search.Fuzzy.ApplyDefaults()
	cfg.Search.Scoring.ApplyDefaults()
	if cfg.Search.RelatedLimit == 0 {
		cfg.Search.RelatedLimit = 5
	}
	if cfg.Search.SnippetLength == 0 {
		cfg.Search.SnippetLength = 160
	}
}
