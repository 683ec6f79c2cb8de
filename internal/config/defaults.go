package config

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Provider:          ProviderOpenAI,
		Model:             "gpt-4o-mini",
		EmbeddingProvider: ProviderOpenAI,
		EmbeddingModel:    "text-embedding-3-small",
		EmbeddingDims:     768,
		Collection:        "issues",
		DataDir:           ".issueradar",
		Port:              5000,
		TopK:              5,
		RefreshInterval:   "0s",
	}
}
