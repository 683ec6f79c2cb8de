package config

import (
	"fmt"
	"strconv"

	"github.com/manifoldco/promptui"
)

// RunWizard runs an interactive configuration wizard, saves the result
// to .issueradar.yml, and returns it.
func RunWizard() (*Config, error) {
	fmt.Println("Welcome to issueradar! Let's configure the service.")
	fmt.Println()

	cfg := DefaultConfig()

	// 1. Embedding provider.
	embedPrompt := promptui.Select{
		Label: "Select embedding provider",
		Items: []string{"openai", "ollama"},
	}
	_, embedStr, err := embedPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("embedding provider selection: %w", err)
	}
	cfg.EmbeddingProvider = ProviderType(embedStr)

	defaultModel := "text-embedding-3-small"
	if cfg.EmbeddingProvider == ProviderOllama {
		defaultModel = "nomic-embed-text"
	}
	modelPrompt := promptui.Prompt{
		Label:   "Embedding model",
		Default: defaultModel,
	}
	if cfg.EmbeddingModel, err = modelPrompt.Run(); err != nil {
		return nil, fmt.Errorf("embedding model: %w", err)
	}

	// 2. Issue store.
	storePrompt := promptui.Select{
		Label: "Issue store",
		Items: []string{"firestore", "static JSON file"},
	}
	storeIdx, _, err := storePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("issue store selection: %w", err)
	}

	if storeIdx == 0 {
		projectPrompt := promptui.Prompt{Label: "Firestore project ID"}
		if cfg.ProjectID, err = projectPrompt.Run(); err != nil {
			return nil, fmt.Errorf("project ID: %w", err)
		}
		credsPrompt := promptui.Prompt{
			Label:   "Service account credentials file (blank for application default)",
			Default: "",
		}
		if cfg.CredentialsFile, err = credsPrompt.Run(); err != nil {
			return nil, fmt.Errorf("credentials file: %w", err)
		}
	} else {
		filePrompt := promptui.Prompt{
			Label:   "Issues JSON file",
			Default: "issues.json",
		}
		if cfg.IssuesFile, err = filePrompt.Run(); err != nil {
			return nil, fmt.Errorf("issues file: %w", err)
		}
	}

	collectionPrompt := promptui.Prompt{
		Label:   "Issues collection name",
		Default: cfg.Collection,
	}
	if cfg.Collection, err = collectionPrompt.Run(); err != nil {
		return nil, fmt.Errorf("collection: %w", err)
	}

	// 3. Server port.
	portPrompt := promptui.Prompt{
		Label:   "HTTP port",
		Default: strconv.Itoa(cfg.Port),
		Validate: func(s string) error {
			n, err := strconv.Atoi(s)
			if err != nil || n <= 0 || n > 65535 {
				return fmt.Errorf("enter a port in 1..65535")
			}
			return nil
		},
	}
	portStr, err := portPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("port: %w", err)
	}
	cfg.Port, _ = strconv.Atoi(portStr)

	// 4. Refresh interval.
	refreshPrompt := promptui.Prompt{
		Label:   "Corpus refresh interval (0s to disable scheduled reloads)",
		Default: cfg.RefreshInterval,
	}
	if cfg.RefreshInterval, err = refreshPrompt.Run(); err != nil {
		return nil, fmt.Errorf("refresh interval: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if err := cfg.Save(".issueradar.yml"); err != nil {
		return nil, err
	}

	fmt.Println()
	fmt.Println("Configuration saved to .issueradar.yml")
	return cfg, nil
}
