package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studykit-labs/studykit/internal/core/domain"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	err := rootCmd.Execute()
	return buf.String(), err
}

func TestVersionCmd_Executes(t *testing.T) {
	originalVersion := version
	version = "test-version-1.0.0"
	defer func() { version = originalVersion }()

	out, err := execute(t, "version")
	assert.NoError(t, err)
	assert.Contains(t, out, "studykit version test-version-1.0.0")
}

func TestIngestCmd_RequiresExactlyOneArg(t *testing.T) {
	_, err := execute(t, "ingest")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 1 arg(s)")
}

func TestAskCmd_RequiresSourceFlag(t *testing.T) {
	_, err := execute(t, "ask", "what is a cell?")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "source")
}

func TestSearchCmd_HasLimitFlag(t *testing.T) {
	flag := searchCmd.Flags().Lookup("limit")
	require.NotNil(t, flag)
	assert.Equal(t, "n", flag.Shorthand)
	assert.Equal(t, "10", flag.DefValue)
}

func TestAskCmd_TopKFlagDefault(t *testing.T) {
	flag := askCmd.Flags().Lookup("top-k")
	require.NotNil(t, flag)
	assert.Equal(t, "k", flag.Shorthand)
	assert.Equal(t, "5", flag.DefValue)
}

func TestDocumentCmd_HasSubcommands(t *testing.T) {
	names := make([]string, 0)
	for _, sub := range documentCmd.Commands() {
		names = append(names, sub.Name())
	}
	assert.Contains(t, names, "list")
	assert.Contains(t, names, "get")
	assert.Contains(t, names, "delete")
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 1, clamp(0, 1, 10))
	assert.Equal(t, 10, clamp(50, 1, 10))
	assert.Equal(t, 5, clamp(5, 1, 10))
}

func TestApplyEnvOverrides(t *testing.T) {
	t.Setenv("QDRANT_URL", "https://qdrant.example.net:6333")
	t.Setenv("QDRANT_API_KEY", "qdrant-secret")
	t.Setenv("OPENAI_API_KEY", "sk-env")

	s := &domain.Settings{
		Embedding: domain.EmbeddingSettings{Provider: domain.AIProviderOpenAI},
		LLM:       domain.LLMSettings{Provider: domain.AIProviderOllama},
		VectorStore: domain.VectorStoreSettings{
			URL: "http://localhost:6333",
		},
	}
	applyEnvOverrides(s)

	assert.Equal(t, "https://qdrant.example.net:6333", s.VectorStore.URL)
	assert.Equal(t, "qdrant-secret", s.VectorStore.APIKey)
	assert.Equal(t, "sk-env", s.Embedding.APIKey)
	// The LLM runs on ollama, the key must not leak onto it.
	assert.Empty(t, s.LLM.APIKey)
}

func TestApplyEnvOverridesKeepsExplicitKey(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-env")

	s := &domain.Settings{
		Embedding: domain.EmbeddingSettings{
			Provider: domain.AIProviderOpenAI,
			APIKey:   "sk-from-config",
		},
	}
	applyEnvOverrides(s)
	assert.Equal(t, "sk-from-config", s.Embedding.APIKey)
}
