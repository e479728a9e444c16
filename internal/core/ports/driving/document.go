package driving

import (
	"context"

	"github.com/studykit-labs/studykit/internal/core/domain"
)

// DocumentService manages ingested document records.
type DocumentService interface {
	// List returns all document records.
	List(ctx context.Context) ([]domain.Document, error)

	// Get retrieves a document record by ID.
	Get(ctx context.Context, id string) (*domain.Document, error)

	// Delete removes the document's vectors from the index and its
	// metadata record from the store.
	Delete(ctx context.Context, id string) error
}
