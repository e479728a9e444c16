package services

import (
	"context"
	"fmt"

	"github.com/studykit-labs/studykit/internal/core/domain"
	"github.com/studykit-labs/studykit/internal/core/ports/driven"
	"github.com/studykit-labs/studykit/internal/core/ports/driving"
	"github.com/studykit-labs/studykit/internal/logger"
)

// Ensure DocumentManager implements the interface.
var _ driving.DocumentService = (*DocumentManager)(nil)

// DocumentManager manages ingested document records and keeps the
// vector index consistent with them.
type DocumentManager struct {
	docStore   driven.DocumentStore
	index      driven.VectorIndex
	collection string
}

// NewDocumentManager creates a new document manager.
func NewDocumentManager(docStore driven.DocumentStore, index driven.VectorIndex, collection string) *DocumentManager {
	return &DocumentManager{
		docStore:   docStore,
		index:      index,
		collection: collection,
	}
}

// List returns all document records.
func (m *DocumentManager) List(ctx context.Context) ([]domain.Document, error) {
	return m.docStore.List(ctx)
}

// Get retrieves a document record by ID.
func (m *DocumentManager) Get(ctx context.Context, id string) (*domain.Document, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: document id is required", domain.ErrInvalidInput)
	}
	return m.docStore.Get(ctx, id)
}

// Delete removes the document's vectors from the index, then its
// metadata record. Vectors go first: if the index delete fails the
// record survives, so the operation can be retried.
func (m *DocumentManager) Delete(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("%w: document id is required", domain.ErrInvalidInput)
	}

	if _, err := m.docStore.Get(ctx, id); err != nil {
		return err
	}

	if err := m.index.DeleteBySource(ctx, m.collection, id); err != nil {
		return fmt.Errorf("deleting vectors for %s: %w", id, err)
	}

	if err := m.docStore.Delete(ctx, id); err != nil {
		return fmt.Errorf("deleting record for %s: %w", id, err)
	}

	logger.Info("Deleted document %s and its vectors", id)
	return nil
}
