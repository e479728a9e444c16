package domain

import "time"

// DocumentStatus tracks the outcome of a document's ingestion.
type DocumentStatus string

// Document ingestion statuses.
const (
	// StatusIndexed means all chunks were embedded and upserted.
	StatusIndexed DocumentStatus = "indexed"

	// StatusPartial means ingestion aborted mid-way and only some
	// vectors reached the index. Re-running ingestion reconciles the
	// document because point ids are deterministic.
	StatusPartial DocumentStatus = "partial"

	// StatusFailed means no vectors reached the index.
	StatusFailed DocumentStatus = "failed"
)

// IsValid returns true if the status is recognised.
func (s DocumentStatus) IsValid() bool {
	switch s {
	case StatusIndexed, StatusPartial, StatusFailed:
		return true
	default:
		return false
	}
}

// Document holds the metadata record for an ingested document.
// The text itself is not stored here; it lives chunked in the vector index.
type Document struct {
	// ID is the source identifier the vector points are keyed under.
	ID string

	// Name is the human-readable document name (for example "syllabus.pdf").
	Name string

	// DocumentType describes the original format ("pdf", "docx", "txt").
	DocumentType string

	// ChunkCount is the number of chunks produced at ingestion.
	ChunkCount int

	// VectorCount is the number of vectors that reached the index.
	// Equal to ChunkCount unless ingestion aborted part-way.
	VectorCount int

	// Status records the ingestion outcome.
	Status DocumentStatus

	// CreatedAt is when the document was first ingested.
	CreatedAt time.Time

	// UpdatedAt is when the document was last re-ingested.
	UpdatedAt time.Time
}

// Chunk is a bounded, overlapping slice of a document's normalised text.
// It is the unit of embedding and retrieval. Chunks are immutable and
// ordered by Index within a source.
type Chunk struct {
	// Text is the chunk content. Always non-empty after trimming.
	Text string

	// Index is the ordinal position within the source document.
	Index int

	// SourceID links to the owning document.
	SourceID string
}

// IngestResult summarises one ingestion run.
type IngestResult struct {
	// ChunkCount is the number of chunks produced from the document.
	ChunkCount int

	// VectorCount is the number of vectors written to the index.
	VectorCount int
}
