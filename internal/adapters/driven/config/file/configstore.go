// Package file provides a TOML file-based implementation of the config store.
package file

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/pelletier/go-toml/v2"

	"github.com/studykit-labs/studykit/internal/core/domain"
	"github.com/studykit-labs/studykit/internal/core/ports/driven"
)

// Ensure ConfigStore implements the interface.
var _ driven.ConfigStore = (*ConfigStore)(nil)

// ConfigStore persists settings as a TOML file in the studykit config
// directory.
type ConfigStore struct {
	mu       sync.RWMutex
	filePath string
}

// NewConfigStore creates a new TOML-based config store.
// If configDir is empty, defaults to ~/.studykit/config.toml.
func NewConfigStore(configDir string) (*ConfigStore, error) {
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		configDir = filepath.Join(home, ".studykit")
	}

	// Ensure directory exists
	if err := os.MkdirAll(configDir, 0700); err != nil {
		return nil, fmt.Errorf("creating config directory: %w", err)
	}

	return &ConfigStore{
		filePath: filepath.Join(configDir, "config.toml"),
	}, nil
}

// Load reads settings from the TOML file. A missing file yields defaults.
func (s *ConfigStore) Load() (*domain.Settings, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	settings := DefaultSettings()

	data, err := os.ReadFile(s.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			// No config file yet - start from defaults
			return settings, nil
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	if err := toml.Unmarshal(data, settings); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", s.filePath, err)
	}

	return settings, nil
}

// Save persists the settings with restricted file permissions.
func (s *ConfigStore) Save(settings *domain.Settings) error {
	if settings == nil {
		return fmt.Errorf("%w: settings are required", domain.ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := toml.Marshal(settings)
	if err != nil {
		return fmt.Errorf("encoding settings: %w", err)
	}

	// API keys may be present, keep the file private
	if err := os.WriteFile(s.filePath, data, 0600); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

// Path returns the configuration file path.
func (s *ConfigStore) Path() string {
	return s.filePath
}

// DefaultSettings returns the settings used when no config file exists.
func DefaultSettings() *domain.Settings {
	return &domain.Settings{
		Embedding: domain.EmbeddingSettings{
			Provider: domain.AIProviderOllama,
			Model:    domain.DefaultEmbeddingModels()[domain.AIProviderOllama],
		},
		LLM: domain.LLMSettings{
			Provider: domain.AIProviderOllama,
			Model:    domain.DefaultLLMModels()[domain.AIProviderOllama],
		},
		VectorStore: domain.VectorStoreSettings{
			URL:        "http://localhost:6333",
			Collection: "studykit_chunks",
		},
		Chunking: domain.ChunkingSettings{
			MaxChunkChars: 1000,
			OverlapChars:  200,
		},
	}
}
