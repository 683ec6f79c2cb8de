package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/civicradar/issueradar/internal/config"
	"github.com/civicradar/issueradar/internal/embeddings"
	"github.com/civicradar/issueradar/internal/llm"
	"github.com/civicradar/issueradar/internal/store"
)

// loadConfig loads and validates the config, providing a user-friendly error.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w\nRun `issueradar init` to create a config file", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// createEmbedderFromConfig creates an embeddings.Embedder based on config.
func createEmbedderFromConfig(cfg *config.Config) (embeddings.Embedder, error) {
	switch cfg.EmbeddingProvider {
	case config.ProviderOpenAI:
		apiKey := os.Getenv(config.APIKeyEnvVar(config.ProviderOpenAI))
		if apiKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY environment variable is required for OpenAI embeddings")
		}
		return embeddings.NewOpenAIEmbedder(apiKey, embeddings.OpenAIModel(cfg.EmbeddingModel)), nil
	case config.ProviderOllama:
		return embeddings.NewOllamaEmbedder(cfg.EmbeddingModel, cfg.EmbeddingDims, cfg.OllamaURL), nil
	default:
		return nil, fmt.Errorf("unsupported embedding provider %q", cfg.EmbeddingProvider)
	}
}

// createSourceFromConfig creates the issue source: a static JSON file
// when issues_file is set, Firestore otherwise.
func createSourceFromConfig(ctx context.Context, cfg *config.Config) (store.Source, error) {
	if cfg.IssuesFile != "" {
		return store.NewStaticSource(cfg.IssuesFile)
	}
	return store.NewFirestoreSource(ctx, cfg.ProjectID, cfg.Collection, cfg.CredentialsFile)
}

// createLLMProviderFromConfig creates the chat provider for the
// assistant endpoints.
func createLLMProviderFromConfig(cfg *config.Config) (llm.Provider, error) {
	return llm.NewProvider(string(cfg.Provider), cfg.Model)
}

// loadKnowledge reads the optional chat knowledge-base file.
func loadKnowledge(cfg *config.Config) (string, error) {
	if cfg.KnowledgeFile == "" {
		return "", nil
	}
	data, err := os.ReadFile(cfg.KnowledgeFile)
	if err != nil {
		return "", fmt.Errorf("reading knowledge file: %w", err)
	}
	return string(data), nil
}
