package domain

const unknownDescription = "Unknown"

// AIProvider identifies an AI service provider for embeddings or LLM.
type AIProvider string

// Available AI providers.
const (
	// AIProviderOllama is a local Ollama instance.
	AIProviderOllama AIProvider = "ollama"

	// AIProviderOpenAI is the OpenAI cloud API.
	AIProviderOpenAI AIProvider = "openai"

	// AIProviderAnthropic is the Anthropic cloud API.
	AIProviderAnthropic AIProvider = "anthropic"
)

// IsValid returns true if the AI provider is recognised.
func (p AIProvider) IsValid() bool {
	switch p {
	case AIProviderOllama, AIProviderOpenAI, AIProviderAnthropic:
		return true
	default:
		return false
	}
}

// RequiresAPIKey returns true if this provider needs an API key.
func (p AIProvider) RequiresAPIKey() bool {
	return p == AIProviderOpenAI || p == AIProviderAnthropic
}

// IsLocal returns true if this provider runs locally.
func (p AIProvider) IsLocal() bool {
	return p == AIProviderOllama
}

// String returns the string representation.
func (p AIProvider) String() string {
	return string(p)
}

// Description returns a human-readable description of the provider.
func (p AIProvider) Description() string {
	switch p {
	case AIProviderOllama:
		return "Ollama (local)"
	case AIProviderOpenAI:
		return "OpenAI (cloud)"
	case AIProviderAnthropic:
		return "Anthropic (cloud)"
	default:
		return unknownDescription
	}
}

// EmbeddingSettings holds embedding provider configuration.
type EmbeddingSettings struct {
	// Provider is the embedding provider.
	Provider AIProvider `toml:"provider"`

	// Model is the embedding model name.
	Model string `toml:"model"`

	// BaseURL overrides the provider's default endpoint.
	BaseURL string `toml:"base_url,omitempty"`

	// APIKey authenticates cloud providers. Usually supplied via
	// environment rather than the config file.
	APIKey string `toml:"api_key,omitempty"`
}

// IsConfigured returns true if the settings are usable.
func (s *EmbeddingSettings) IsConfigured() bool {
	if s == nil || !s.Provider.IsValid() {
		return false
	}
	if s.Provider.RequiresAPIKey() && s.APIKey == "" {
		return false
	}
	return true
}

// LLMSettings holds generative model provider configuration.
type LLMSettings struct {
	// Provider is the LLM provider.
	Provider AIProvider `toml:"provider"`

	// Model is the model name.
	Model string `toml:"model"`

	// BaseURL overrides the provider's default endpoint.
	BaseURL string `toml:"base_url,omitempty"`

	// APIKey authenticates cloud providers.
	APIKey string `toml:"api_key,omitempty"`
}

// IsConfigured returns true if the settings are usable.
func (s *LLMSettings) IsConfigured() bool {
	if s == nil || !s.Provider.IsValid() {
		return false
	}
	if s.Provider.RequiresAPIKey() && s.APIKey == "" {
		return false
	}
	return true
}

// VectorStoreSettings holds vector store connection configuration.
type VectorStoreSettings struct {
	// URL is the Qdrant endpoint (for example http://localhost:6333).
	URL string `toml:"url"`

	// APIKey authenticates managed Qdrant deployments.
	APIKey string `toml:"api_key,omitempty"`

	// Collection is the collection name holding document vectors.
	Collection string `toml:"collection"`
}

// IsConfigured returns true if the settings are usable.
func (s *VectorStoreSettings) IsConfigured() bool {
	return s != nil && s.URL != "" && s.Collection != ""
}

// ChunkingSettings holds text chunking configuration.
type ChunkingSettings struct {
	// MaxChunkChars is the chunk window size in characters.
	MaxChunkChars int `toml:"max_chunk_chars"`

	// OverlapChars is the overlap between consecutive chunks in characters.
	OverlapChars int `toml:"overlap_chars"`
}

// Settings is the full application configuration.
type Settings struct {
	Embedding   EmbeddingSettings   `toml:"embedding"`
	LLM         LLMSettings         `toml:"llm"`
	VectorStore VectorStoreSettings `toml:"vector_store"`
	Chunking    ChunkingSettings    `toml:"chunking"`
}

// DefaultEmbeddingModels returns default models for each embedding provider.
func DefaultEmbeddingModels() map[AIProvider]string {
	return map[AIProvider]string{
		AIProviderOllama: "nomic-embed-text",
		AIProviderOpenAI: "text-embedding-3-small",
	}
}

// DefaultLLMModels returns default models for each LLM provider.
func DefaultLLMModels() map[AIProvider]string {
	return map[AIProvider]string{
		AIProviderOllama:    "llama3.2",
		AIProviderOpenAI:    "gpt-4o-mini",
		AIProviderAnthropic: "claude-3-5-sonnet-latest",
	}
}

// EmbeddingDimensions returns the vector dimensions for known models.
func EmbeddingDimensions() map[string]int {
	return map[string]int{
		// Ollama models
		"nomic-embed-text":  768,
		"mxbai-embed-large": 1024,
		"all-minilm":        384,
		// OpenAI models
		"text-embedding-3-small": 1536,
		"text-embedding-3-large": 3072,
		"text-embedding-ada-002": 1536,
	}
}
