package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studykit-labs/studykit/internal/core/domain"
)

func TestCreateEmbeddingService(t *testing.T) {
	tests := []struct {
		name     string
		settings *domain.EmbeddingSettings
		wantErr  bool
	}{
		{
			name: "ollama",
			settings: &domain.EmbeddingSettings{
				Provider: domain.AIProviderOllama,
				Model:    "nomic-embed-text",
			},
		},
		{
			name: "openai with key",
			settings: &domain.EmbeddingSettings{
				Provider: domain.AIProviderOpenAI,
				Model:    "text-embedding-3-small",
				APIKey:   "sk-test",
			},
		},
		{
			name: "openai without key",
			settings: &domain.EmbeddingSettings{
				Provider: domain.AIProviderOpenAI,
				Model:    "text-embedding-3-small",
			},
			wantErr: true,
		},
		{
			name: "anthropic has no embeddings",
			settings: &domain.EmbeddingSettings{
				Provider: domain.AIProviderAnthropic,
				Model:    "claude-3-5-sonnet-latest",
				APIKey:   "sk-ant-test",
			},
			wantErr: true,
		},
		{
			name:     "nil settings",
			settings: nil,
			wantErr:  true,
		},
		{
			name: "unknown provider",
			settings: &domain.EmbeddingSettings{
				Provider: "mystery",
				Model:    "m",
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, err := CreateEmbeddingService(tt.settings)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, svc)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, svc)
			svc.Close()
		})
	}
}

func TestCreateEmbeddingServiceUsesKnownDimensions(t *testing.T) {
	svc, err := CreateEmbeddingService(&domain.EmbeddingSettings{
		Provider: domain.AIProviderOllama,
		Model:    "mxbai-embed-large",
	})
	require.NoError(t, err)
	defer svc.Close()

	assert.Equal(t, 1024, svc.Dimensions())
}

func TestCreateLLMService(t *testing.T) {
	tests := []struct {
		name     string
		settings *domain.LLMSettings
		wantErr  bool
	}{
		{
			name: "ollama",
			settings: &domain.LLMSettings{
				Provider: domain.AIProviderOllama,
				Model:    "llama3.2",
			},
		},
		{
			name: "openai",
			settings: &domain.LLMSettings{
				Provider: domain.AIProviderOpenAI,
				Model:    "gpt-4o-mini",
				APIKey:   "sk-test",
			},
		},
		{
			name: "anthropic",
			settings: &domain.LLMSettings{
				Provider: domain.AIProviderAnthropic,
				Model:    "claude-3-5-sonnet-latest",
				APIKey:   "sk-ant-test",
			},
		},
		{
			name: "anthropic without key",
			settings: &domain.LLMSettings{
				Provider: domain.AIProviderAnthropic,
				Model:    "claude-3-5-sonnet-latest",
			},
			wantErr: true,
		},
		{
			name:     "nil settings",
			settings: nil,
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, err := CreateLLMService(tt.settings)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, svc)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, svc)
			assert.Equal(t, tt.settings.Model, svc.ModelName())
			svc.Close()
		})
	}
}
