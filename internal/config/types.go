package config

// ProviderType identifies a model provider for embeddings or chat.
type ProviderType string

const (
	ProviderOpenAI ProviderType = "openai"
	ProviderOllama ProviderType = "ollama"
)

// Config is the top-level issueradar configuration, corresponding to
// .issueradar.yml.
type Config struct {
	// Chat model behind the assistant endpoints.
	Provider ProviderType `yaml:"provider" koanf:"provider"`
	Model    string       `yaml:"model" koanf:"model"`

	// Sentence-embedding model. One model serves corpus loading and
	// query encoding, which keeps vector dimensions identical.
	EmbeddingProvider ProviderType `yaml:"embedding_provider" koanf:"embedding_provider"`
	EmbeddingModel    string       `yaml:"embedding_model" koanf:"embedding_model"`
	EmbeddingDims     int          `yaml:"embedding_dimensions" koanf:"embedding_dimensions"`
	OllamaURL         string       `yaml:"ollama_url" koanf:"ollama_url"`

	// Issue store. ProjectID selects Firestore; IssuesFile selects a
	// static JSON file instead (offline/dev runs).
	ProjectID       string `yaml:"project_id" koanf:"project_id"`
	Collection      string `yaml:"collection" koanf:"collection"`
	CredentialsFile string `yaml:"credentials_file" koanf:"credentials_file"`
	IssuesFile      string `yaml:"issues_file" koanf:"issues_file"`

	// Optional knowledge-base text file for the chat assistant.
	KnowledgeFile string `yaml:"knowledge_file" koanf:"knowledge_file"`

	DataDir         string `yaml:"data_dir" koanf:"data_dir"`
	Port            int    `yaml:"port" koanf:"port"`
	AllowAllOrigins bool   `yaml:"allow_all_origins" koanf:"allow_all_origins"`
	TopK            int    `yaml:"top_k" koanf:"top_k"`
	RefreshInterval string `yaml:"refresh_interval" koanf:"refresh_interval"`
}
