package driven

import (
	"context"

	"github.com/studykit-labs/studykit/internal/core/domain"
)

// DocumentStore persists document metadata records.
//
// The document text itself is not stored here; it lives chunked in the
// vector index. The store exists so that listing and deletion can be
// resolved against the index (chunk counts determine which point ids
// belong to a source).
type DocumentStore interface {
	// Save stores or updates a document record.
	Save(ctx context.Context, doc *domain.Document) error

	// Get retrieves a document by ID.
	// Returns domain.ErrNotFound if it does not exist.
	Get(ctx context.Context, id string) (*domain.Document, error)

	// List returns all document records ordered by creation time.
	List(ctx context.Context) ([]domain.Document, error)

	// Delete removes a document record.
	// Returns domain.ErrNotFound if it does not exist.
	Delete(ctx context.Context, id string) error
}
