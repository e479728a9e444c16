package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/studykit-labs/studykit/internal/core/domain"
	"github.com/studykit-labs/studykit/internal/core/ports/driven"
	"github.com/studykit-labs/studykit/internal/core/ports/driving"
	"github.com/studykit-labs/studykit/internal/logger"
)

// Ensure RAGEngine implements the interface.
var _ driving.AnswerService = (*RAGEngine)(nil)

// sourcePreviewChars bounds the excerpt length in answer citations.
const sourcePreviewChars = 200

// ragState names the orchestrator's phases for logging.
type ragState string

const (
	stateEmbedding ragState = "embedding"
	stateSearching ragState = "searching"
	stateComposing ragState = "composing"
	stateDone      ragState = "done"
)

// RAGEngine answers free-text questions grounded on indexed chunks.
//
// Each request moves through embedding, searching and composing phases
// sequentially. Fatal failures in any phase are wrapped in
// domain.ErrRAGFailed; "no relevant content" and "no extractable text"
// are soft outcomes returned as unsuccessful AnswerResults.
type RAGEngine struct {
	embedder   driven.EmbeddingService
	index      driven.VectorIndex
	composer   *AnswerComposer
	collection string
}

// NewRAGEngine creates a new retrieval orchestrator.
func NewRAGEngine(
	embedder driven.EmbeddingService,
	index driven.VectorIndex,
	composer *AnswerComposer,
	collection string,
) *RAGEngine {
	return &RAGEngine{
		embedder:   embedder,
		index:      index,
		composer:   composer,
		collection: collection,
	}
}

// Answer retrieves the chunks most similar to the question and
// conditions a generative model call on them.
func (e *RAGEngine) Answer(ctx context.Context, question, sourceID, sourceName string, topK int) (*domain.AnswerResult, error) {
	if strings.TrimSpace(question) == "" {
		return nil, fmt.Errorf("%w: question is empty", domain.ErrInvalidInput)
	}
	topK = clampTopK(topK, driving.MaxAnswerTopK)

	// Embedding
	logger.Debug("RAG %s: %s", stateEmbedding, sourceID)
	queryVector, err := e.embedder.Embed(ctx, question)
	if err != nil {
		return nil, fmt.Errorf("%w: embedding question: %w", domain.ErrRAGFailed, err)
	}

	// Searching
	logger.Debug("RAG %s: %s topK=%d", stateSearching, sourceID, topK)
	hits, err := e.index.Search(ctx, e.collection, queryVector, topK, sourceID)
	if err != nil {
		return nil, fmt.Errorf("%w: searching index: %w", domain.ErrRAGFailed, err)
	}
	if len(hits) == 0 {
		logger.Debug("RAG %s: no hits for %s", stateDone, sourceID)
		return softFailure(fmt.Sprintf(
			"I couldn't find any relevant content in %s for that question. "+
				"Try rephrasing it, or check that the document has been ingested.",
			displayName(sourceName, sourceID))), nil
	}

	// Extraction: tolerate the legacy "chunk" payload key, skip hits
	// whose payload carries no usable text.
	texts := make([]string, 0, len(hits))
	sources := make([]domain.AnswerSource, 0, len(hits))
	var scoreSum float64
	for _, hit := range hits {
		text := payloadText(hit.Payload)
		if strings.TrimSpace(text) == "" {
			continue
		}
		texts = append(texts, text)
		scoreSum += hit.Score
		sources = append(sources, domain.AnswerSource{
			TextPreview: preview(text, sourcePreviewChars),
			Score:       hit.Score,
			Metadata:    sourceMetadata(hit.Payload),
		})
	}
	if len(texts) == 0 {
		logger.Debug("RAG %s: all hits empty for %s", stateDone, sourceID)
		return softFailure(fmt.Sprintf(
			"I found matches in %s but couldn't extract any readable text from them.",
			displayName(sourceName, sourceID))), nil
	}

	confidence := clipConfidence(scoreSum / float64(len(texts)))

	// Composing
	logger.Debug("RAG %s: %d chunks, confidence %.2f", stateComposing, len(texts), confidence)
	completion, err := e.composer.Compose(ctx, question, texts, sourceName)
	if err != nil {
		return nil, fmt.Errorf("%w: generating answer: %w", domain.ErrRAGFailed, err)
	}

	logger.Debug("RAG %s: %s", stateDone, sourceID)
	return &domain.AnswerResult{
		Success:    true,
		Answer:     completion.Text,
		Sources:    sources,
		Confidence: confidence,
		ModelUsed:  completion.Model,
		Usage:      completion.Usage,
	}, nil
}

// Search returns the raw scored chunks for a query without invoking the
// generative model.
func (e *RAGEngine) Search(ctx context.Context, query, sourceID string, topK int) ([]domain.SearchResult, error) {
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("%w: query is empty", domain.ErrInvalidInput)
	}
	topK = clampTopK(topK, driving.MaxSearchTopK)

	queryVector, err := e.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embedding query: %w", err)
	}

	hits, err := e.index.Search(ctx, e.collection, queryVector, topK, sourceID)
	if err != nil {
		return nil, fmt.Errorf("searching index: %w", err)
	}

	results := make([]domain.SearchResult, 0, len(hits))
	for _, hit := range hits {
		text := payloadText(hit.Payload)
		if strings.TrimSpace(text) == "" {
			continue
		}
		results = append(results, domain.SearchResult{
			Text:       text,
			Score:      hit.Score,
			SourceID:   payloadString(hit.Payload, "source_id"),
			ChunkIndex: payloadInt(hit.Payload, "chunk_index"),
			Metadata:   sourceMetadata(hit.Payload),
		})
	}
	return results, nil
}

// softFailure builds the non-error "no answer available" result.
func softFailure(answer string) *domain.AnswerResult {
	return &domain.AnswerResult{
		Success:    false,
		Answer:     answer,
		Sources:    []domain.AnswerSource{},
		Confidence: 0,
	}
}

// clampTopK enforces [1, limit] without failing well-behaved callers.
func clampTopK(topK, limit int) int {
	if topK < 1 {
		return 1
	}
	if topK > limit {
		return limit
	}
	return topK
}

// clipConfidence clips a mean cosine score into [0, 1].
func clipConfidence(mean float64) float64 {
	if mean < 0 {
		return 0
	}
	if mean > 1 {
		return 1
	}
	return mean
}

// payloadText extracts the chunk text, tolerating the legacy key.
func payloadText(payload map[string]any) string {
	if text := payloadString(payload, "text"); text != "" {
		return text
	}
	return payloadString(payload, "chunk")
}

// sourceMetadata returns the payload minus the chunk text keys.
func sourceMetadata(payload map[string]any) map[string]any {
	metadata := make(map[string]any, len(payload))
	for k, v := range payload {
		if k == "text" || k == "chunk" {
			continue
		}
		metadata[k] = v
	}
	return metadata
}

// preview truncates text for citation display.
func preview(text string, limit int) string {
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit]) + "..."
}

// displayName prefers the human-readable name over the raw id.
func displayName(name, id string) string {
	if name != "" {
		return fmt.Sprintf("%q", name)
	}
	return fmt.Sprintf("document %q", id)
}

func payloadString(payload map[string]any, key string) string {
	if v, ok := payload[key].(string); ok {
		return v
	}
	return ""
}

// payloadInt reads an integer payload field. JSON decoding yields
// float64 for numbers, so both are accepted.
func payloadInt(payload map[string]any, key string) int {
	switch v := payload[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	default:
		return 0
	}
}
