package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studykit-labs/studykit/internal/adapters/driven/storage/memory"
	"github.com/studykit-labs/studykit/internal/core/domain"
)

func newDocumentManager(index *mockVectorIndex) (*DocumentManager, *memory.DocumentStore) {
	docStore := memory.NewDocumentStore()
	return NewDocumentManager(docStore, index, testCollection), docStore
}

func TestDeleteRemovesVectorsAndRecord(t *testing.T) {
	index := &mockVectorIndex{}
	manager, docStore := newDocumentManager(index)
	ctx := context.Background()

	require.NoError(t, docStore.Save(ctx, &domain.Document{ID: "bio-notes", Name: "Bio"}))

	require.NoError(t, manager.Delete(ctx, "bio-notes"))
	assert.Equal(t, "bio-notes", index.deletedSource)

	_, err := docStore.Get(ctx, "bio-notes")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDeleteMissingDocument(t *testing.T) {
	manager, _ := newDocumentManager(&mockVectorIndex{})

	err := manager.Delete(context.Background(), "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDeleteKeepsRecordWhenIndexFails(t *testing.T) {
	index := &mockVectorIndex{deleteErr: domain.ErrConnectionFailed}
	manager, docStore := newDocumentManager(index)
	ctx := context.Background()

	require.NoError(t, docStore.Save(ctx, &domain.Document{ID: "bio-notes"}))

	err := manager.Delete(ctx, "bio-notes")
	assert.ErrorIs(t, err, domain.ErrConnectionFailed)

	// The record survives so the delete can be retried.
	_, getErr := docStore.Get(ctx, "bio-notes")
	assert.NoError(t, getErr)
}

func TestListAndGet(t *testing.T) {
	manager, docStore := newDocumentManager(&mockVectorIndex{})
	ctx := context.Background()

	require.NoError(t, docStore.Save(ctx, &domain.Document{ID: "a", Name: "First"}))
	require.NoError(t, docStore.Save(ctx, &domain.Document{ID: "b", Name: "Second"}))

	docs, err := manager.List(ctx)
	require.NoError(t, err)
	assert.Len(t, docs, 2)

	doc, err := manager.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "First", doc.Name)

	_, err = manager.Get(ctx, "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
