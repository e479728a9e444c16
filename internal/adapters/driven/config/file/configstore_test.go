package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studykit-labs/studykit/internal/core/domain"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	settings, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, domain.AIProviderOllama, settings.Embedding.Provider)
	assert.Equal(t, "nomic-embed-text", settings.Embedding.Model)
	assert.Equal(t, "http://localhost:6333", settings.VectorStore.URL)
	assert.Equal(t, "studykit_chunks", settings.VectorStore.Collection)
	assert.Equal(t, 1000, settings.Chunking.MaxChunkChars)
	assert.Equal(t, 200, settings.Chunking.OverlapChars)
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	settings := DefaultSettings()
	settings.Embedding.Provider = domain.AIProviderOpenAI
	settings.Embedding.Model = "text-embedding-3-small"
	settings.Embedding.APIKey = "sk-test"
	settings.VectorStore.URL = "https://qdrant.example.net:6333"

	require.NoError(t, store.Save(settings))

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, domain.AIProviderOpenAI, loaded.Embedding.Provider)
	assert.Equal(t, "sk-test", loaded.Embedding.APIKey)
	assert.Equal(t, "https://qdrant.example.net:6333", loaded.VectorStore.URL)
}

func TestSaveRestrictsPermissions(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Save(DefaultSettings()))

	info, err := os.Stat(store.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestSaveNilSettings(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	assert.ErrorIs(t, store.Save(nil), domain.ErrInvalidInput)
}

func TestLoadRejectsMalformedFile(t *testing.T) {
	dir := t.TempDir()
	store, err := NewConfigStore(dir)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte("not = [toml"), 0600))

	_, err = store.Load()
	assert.Error(t, err)
}

func TestPartialFileKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	store, err := NewConfigStore(dir)
	require.NoError(t, err)

	content := "[llm]\nprovider = \"anthropic\"\nmodel = \"claude-3-5-sonnet-latest\"\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(content), 0600))

	settings, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, domain.AIProviderAnthropic, settings.LLM.Provider)
	// Sections absent from the file keep their defaults.
	assert.Equal(t, domain.AIProviderOllama, settings.Embedding.Provider)
	assert.Equal(t, "http://localhost:6333", settings.VectorStore.URL)
}
