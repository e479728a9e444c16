package driven

import "context"

// VectorIndex is a named collection of (id, vector, payload) points
// supporting upsert and k-nearest-neighbour cosine search, backed by an
// external vector database service.
type VectorIndex interface {
	// EnsureCollection checks whether the collection exists and creates
	// it configured for cosine distance if absent. Idempotent; a no-op
	// when the collection is present.
	EnsureCollection(ctx context.Context, name string, vectorSize int) error

	// Upsert writes or overwrites points by id. It waits for the store
	// to acknowledge durability before returning, so ingestion can be
	// sequenced safely.
	Upsert(ctx context.Context, collection string, points []IndexPoint) error

	// Search returns up to limit nearest points by cosine similarity in
	// descending score order (the store's native ordering is trusted).
	// A non-empty sourceID restricts results to points whose payload
	// source_id matches.
	Search(ctx context.Context, collection string, vector []float32, limit int, sourceID string) ([]VectorHit, error)

	// DeleteBySource removes every point whose payload source_id matches.
	// Used when the owning document is deleted.
	DeleteBySource(ctx context.Context, collection, sourceID string) error

	// CollectionInfo returns read-only diagnostics for the collection.
	CollectionInfo(ctx context.Context, collection string) (*CollectionInfo, error)

	// Close releases resources.
	Close() error
}

// IndexPoint is one stored vector with its payload. Created during
// ingestion, never mutated, deleted only with the owning document.
type IndexPoint struct {
	// ID is unique within the collection. Deterministic per
	// (source, chunk index) so re-ingestion overwrites rather than
	// duplicates.
	ID string

	// Vector is the embedding. Length is constant per collection.
	Vector []float32

	// Payload carries the chunk text and its provenance metadata.
	Payload map[string]any
}

// VectorHit is a single similarity search result.
type VectorHit struct {
	// ID is the matched point's id.
	ID string

	// Score is the cosine similarity in [-1, 1].
	Score float64

	// Payload is the matched point's payload.
	Payload map[string]any
}

// CollectionInfo holds read-only collection diagnostics.
type CollectionInfo struct {
	// PointCount is the number of points in the collection.
	PointCount int64

	// VectorSize is the configured vector dimension.
	VectorSize int

	// Status is the store's reported collection status.
	Status string
}
