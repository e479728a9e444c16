package driving

import (
	"context"

	"github.com/studykit-labs/studykit/internal/core/domain"
)

// IngestRequest describes one document to index.
type IngestRequest struct {
	// SourceID identifies the document. Re-using an id overwrites the
	// previous ingestion's points.
	SourceID string

	// Name is the human-readable document name.
	Name string

	// Text is the raw extracted document text.
	Text string

	// DocumentType describes the original format ("pdf", "docx", "txt").
	DocumentType string
}

// IngestService turns a document into searchable, embedded, indexed chunks.
type IngestService interface {
	// Ingest normalises, chunks, embeds and indexes the document.
	// Returns domain.ErrEmptyDocument when the text yields no chunks.
	// Ingestion is at-least-once: a mid-run failure leaves already
	// upserted points in place, and the returned result carries the
	// partial vector count.
	Ingest(ctx context.Context, req IngestRequest) (*domain.IngestResult, error)
}
