package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/studykit-labs/studykit/internal/core/domain"
	"github.com/studykit-labs/studykit/internal/core/ports/driven"
	"github.com/studykit-labs/studykit/internal/core/ports/driving"
	"github.com/studykit-labs/studykit/internal/logger"
)

// Ensure IngestPipeline implements the interface.
var _ driving.IngestService = (*IngestPipeline)(nil)

// upsertBatchSize bounds the number of points per upsert request.
const upsertBatchSize = 100

// pointNamespace scopes deterministic point ids. Ids are a SHA1 UUID of
// (source id, chunk index) under this namespace, so re-ingesting a
// source overwrites its previous points instead of duplicating them.
var pointNamespace = uuid.MustParse("d2c1b3a4-5e6f-4a78-9b0c-1d2e3f405162")

// PointID returns the deterministic vector point id for a chunk.
func PointID(sourceID string, chunkIndex int) string {
	return uuid.NewSHA1(pointNamespace, []byte(fmt.Sprintf("%s:%d", sourceID, chunkIndex))).String()
}

// IngestPipeline turns a document into embedded, indexed chunks.
type IngestPipeline struct {
	normaliser driven.Normaliser
	pipeline   driven.PostProcessorPipeline
	embedder   driven.EmbeddingService
	index      driven.VectorIndex
	docStore   driven.DocumentStore
	collection string
}

// NewIngestPipeline creates a new ingestion pipeline.
func NewIngestPipeline(
	normaliser driven.Normaliser,
	pipeline driven.PostProcessorPipeline,
	embedder driven.EmbeddingService,
	index driven.VectorIndex,
	docStore driven.DocumentStore,
	collection string,
) *IngestPipeline {
	return &IngestPipeline{
		normaliser: normaliser,
		pipeline:   pipeline,
		embedder:   embedder,
		index:      index,
		docStore:   docStore,
		collection: collection,
	}
}

// Ingest normalises, chunks, embeds and indexes one document.
//
// Semantics are at-least-once: upsert batches are sequential, and a
// mid-run failure leaves already written points in place. The returned
// result carries the partial vector count; because point ids are
// deterministic, retrying the same ingestion reconciles the index.
func (p *IngestPipeline) Ingest(ctx context.Context, req driving.IngestRequest) (*domain.IngestResult, error) {
	if req.SourceID == "" {
		return nil, fmt.Errorf("%w: source id is required", domain.ErrInvalidInput)
	}

	// 1. Normalise
	text := p.normaliser.Normalise(req.Text)

	// 2. Chunk
	chunks, err := p.pipeline.Process(ctx, req.SourceID, text)
	if err != nil {
		return nil, fmt.Errorf("chunking %s: %w", req.SourceID, err)
	}
	if len(chunks) == 0 {
		return nil, fmt.Errorf("%w: %s produced no chunks", domain.ErrEmptyDocument, req.SourceID)
	}
	logger.Debug("Chunked %s into %d chunks", req.SourceID, len(chunks))

	// 3. Ensure collection
	if err := p.index.EnsureCollection(ctx, p.collection, p.embedder.Dimensions()); err != nil {
		return nil, fmt.Errorf("ensure collection: %w", err)
	}

	// 4. Embed all chunk texts
	texts := make([]string, len(chunks))
	for i, chunk := range chunks {
		texts[i] = chunk.Text
	}
	vectors, err := p.embedder.EmbedBatch(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("embedding chunks: %w", err)
	}

	// 5. Build points
	ingestedAt := time.Now().UTC().Format(time.RFC3339)
	points := make([]driven.IndexPoint, len(chunks))
	for i, chunk := range chunks {
		points[i] = driven.IndexPoint{
			ID:     PointID(req.SourceID, chunk.Index),
			Vector: vectors[i],
			Payload: map[string]any{
				"text":          chunk.Text,
				"source_id":     req.SourceID,
				"chunk_index":   chunk.Index,
				"total_chunks":  len(chunks),
				"document_type": req.DocumentType,
				"ingested_at":   ingestedAt,
			},
		}
	}

	// 6. Upsert sequentially in bounded batches
	result := &domain.IngestResult{ChunkCount: len(chunks)}
	for start := 0; start < len(points); start += upsertBatchSize {
		end := start + upsertBatchSize
		if end > len(points) {
			end = len(points)
		}
		if err := p.index.Upsert(ctx, p.collection, points[start:end]); err != nil {
			if saveErr := p.recordDocument(ctx, req, result); saveErr != nil {
				logger.Warn("Failed to record partial ingestion of %s: %v", req.SourceID, saveErr)
			}
			return result, fmt.Errorf("upserting points %d..%d of %d: %w",
				start, end-1, len(points), err)
		}
		result.VectorCount = end
	}

	if err := p.recordDocument(ctx, req, result); err != nil {
		return result, fmt.Errorf("recording document: %w", err)
	}

	logger.Info("Ingested %s: %d chunks, %d vectors", req.SourceID, result.ChunkCount, result.VectorCount)
	return result, nil
}

// recordDocument saves the metadata record reflecting the run's outcome.
func (p *IngestPipeline) recordDocument(ctx context.Context, req driving.IngestRequest, result *domain.IngestResult) error {
	status := domain.StatusIndexed
	switch {
	case result.VectorCount == 0:
		status = domain.StatusFailed
	case result.VectorCount < result.ChunkCount:
		status = domain.StatusPartial
	}

	name := req.Name
	if name == "" {
		name = req.SourceID
	}

	return p.docStore.Save(ctx, &domain.Document{
		ID:           req.SourceID,
		Name:         name,
		DocumentType: req.DocumentType,
		ChunkCount:   result.ChunkCount,
		VectorCount:  result.VectorCount,
		Status:       status,
	})
}
