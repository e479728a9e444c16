package services

import (
	"context"

	"github.com/studykit-labs/studykit/internal/core/domain"
	"github.com/studykit-labs/studykit/internal/core/ports/driven"
)

func domainUsage() domain.TokenUsage {
	return domain.TokenUsage{PromptTokens: 120, CompletionTokens: 40, TotalTokens: 160}
}

// --- Mock implementations ---

// mockEmbeddingService implements driven.EmbeddingService for testing.
type mockEmbeddingService struct {
	dims       int
	embedErr   error
	batchErr   error
	batchCalls [][]string
}

func (m *mockEmbeddingService) Embed(_ context.Context, text string) ([]float32, error) {
	if m.embedErr != nil {
		return nil, m.embedErr
	}
	return m.vectorFor(text), nil
}

func (m *mockEmbeddingService) EmbedBatch(_ context.Context, texts []string) ([][]float32, error) {
	if m.batchErr != nil {
		return nil, m.batchErr
	}
	m.batchCalls = append(m.batchCalls, texts)
	vectors := make([][]float32, len(texts))
	for i, text := range texts {
		vectors[i] = m.vectorFor(text)
	}
	return vectors, nil
}

// vectorFor derives a distinguishable vector from the text length.
func (m *mockEmbeddingService) vectorFor(text string) []float32 {
	v := make([]float32, m.dimensions())
	v[0] = float32(len(text))
	return v
}

func (m *mockEmbeddingService) dimensions() int {
	if m.dims == 0 {
		return 4
	}
	return m.dims
}

func (m *mockEmbeddingService) Dimensions() int    { return m.dimensions() }
func (m *mockEmbeddingService) ModelName() string  { return "mock-embed" }
func (m *mockEmbeddingService) Ping(_ context.Context) error { return nil }
func (m *mockEmbeddingService) Close() error       { return nil }

// mockVectorIndex implements driven.VectorIndex for testing.
type mockVectorIndex struct {
	hits []driven.VectorHit

	ensureErr error
	upsertErr error
	// failAtBatch fails the Nth Upsert call (1-based) when non-zero.
	failAtBatch int
	searchErr   error
	deleteErr   error

	ensureCalls   int
	ensureSize    int
	upsertBatches [][]driven.IndexPoint
	searchLimit   int
	searchSource  string
	deletedSource string
}

func (m *mockVectorIndex) EnsureCollection(_ context.Context, _ string, vectorSize int) error {
	m.ensureCalls++
	m.ensureSize = vectorSize
	return m.ensureErr
}

func (m *mockVectorIndex) Upsert(_ context.Context, _ string, points []driven.IndexPoint) error {
	if m.upsertErr != nil {
		if m.failAtBatch == 0 || len(m.upsertBatches)+1 == m.failAtBatch {
			return m.upsertErr
		}
	}
	m.upsertBatches = append(m.upsertBatches, points)
	return nil
}

func (m *mockVectorIndex) Search(_ context.Context, _ string, _ []float32, limit int, sourceID string) ([]driven.VectorHit, error) {
	if m.searchErr != nil {
		return nil, m.searchErr
	}
	m.searchLimit = limit
	m.searchSource = sourceID
	if limit < len(m.hits) {
		return m.hits[:limit], nil
	}
	return m.hits, nil
}

func (m *mockVectorIndex) DeleteBySource(_ context.Context, _ string, sourceID string) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	m.deletedSource = sourceID
	return nil
}

func (m *mockVectorIndex) CollectionInfo(_ context.Context, _ string) (*driven.CollectionInfo, error) {
	var count int64
	for _, batch := range m.upsertBatches {
		count += int64(len(batch))
	}
	return &driven.CollectionInfo{PointCount: count, VectorSize: m.ensureSize, Status: "green"}, nil
}

func (m *mockVectorIndex) Close() error { return nil }

// mockLLMService implements driven.LLMService for testing.
type mockLLMService struct {
	response string
	chatErr  error
	messages []driven.ChatMessage
}

func (m *mockLLMService) Chat(_ context.Context, messages []driven.ChatMessage, _ driven.ChatOptions) (*driven.ChatResult, error) {
	if m.chatErr != nil {
		return nil, m.chatErr
	}
	m.messages = messages
	return &driven.ChatResult{
		Text:  m.response,
		Model: "mock-llm",
		Usage: domainUsage(),
	}, nil
}

func (m *mockLLMService) ModelName() string             { return "mock-llm" }
func (m *mockLLMService) Ping(_ context.Context) error  { return nil }
func (m *mockLLMService) Close() error                  { return nil }
