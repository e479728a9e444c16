package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studykit-labs/studykit/internal/core/domain"
)

// setupTestStore creates a temporary SQLite store for testing.
func setupTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := NewStore(t.TempDir())
	require.NoError(t, err)
	require.NotNil(t, store)
	t.Cleanup(func() {
		assert.NoError(t, store.Close())
	})

	return store
}

func testDocument(id string) *domain.Document {
	return &domain.Document{
		ID:           id,
		Name:         "Cell Biology Notes",
		DocumentType: "lecture-notes",
		ChunkCount:   4,
		VectorCount:  4,
		Status:       domain.StatusIndexed,
	}
}

func TestSaveAndGetDocument(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	doc := testDocument("bio-notes")
	require.NoError(t, store.Save(ctx, doc))
	assert.False(t, doc.CreatedAt.IsZero())

	got, err := store.Get(ctx, "bio-notes")
	require.NoError(t, err)
	assert.Equal(t, "Cell Biology Notes", got.Name)
	assert.Equal(t, "lecture-notes", got.DocumentType)
	assert.Equal(t, 4, got.ChunkCount)
	assert.Equal(t, 4, got.VectorCount)
	assert.Equal(t, domain.StatusIndexed, got.Status)
}

func TestSaveUpsertsExistingDocument(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	doc := testDocument("bio-notes")
	require.NoError(t, store.Save(ctx, doc))
	created := doc.CreatedAt

	doc.ChunkCount = 7
	doc.VectorCount = 5
	doc.Status = domain.StatusPartial
	require.NoError(t, store.Save(ctx, doc))

	got, err := store.Get(ctx, "bio-notes")
	require.NoError(t, err)
	assert.Equal(t, 7, got.ChunkCount)
	assert.Equal(t, 5, got.VectorCount)
	assert.Equal(t, domain.StatusPartial, got.Status)
	assert.WithinDuration(t, created, got.CreatedAt, time.Second)

	docs, err := store.List(ctx)
	require.NoError(t, err)
	assert.Len(t, docs, 1)
}

func TestSaveRejectsEmptyID(t *testing.T) {
	store := setupTestStore(t)

	err := store.Save(context.Background(), &domain.Document{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestGetMissingDocument(t *testing.T) {
	store := setupTestStore(t)

	_, err := store.Get(context.Background(), "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestListOrdersByCreation(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	first := testDocument("first")
	first.CreatedAt = time.Now().UTC().Add(-2 * time.Hour)
	require.NoError(t, store.Save(ctx, first))

	second := testDocument("second")
	second.CreatedAt = time.Now().UTC().Add(-1 * time.Hour)
	require.NoError(t, store.Save(ctx, second))

	docs, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "first", docs[0].ID)
	assert.Equal(t, "second", docs[1].ID)
}

func TestDeleteDocument(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, testDocument("bio-notes")))
	require.NoError(t, store.Delete(ctx, "bio-notes"))

	_, err := store.Get(ctx, "bio-notes")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	assert.ErrorIs(t, store.Delete(ctx, "bio-notes"), domain.ErrNotFound)
}

func TestMigrationsAreIdempotent(t *testing.T) {
	dir := t.TempDir()

	store, err := NewStore(dir)
	require.NoError(t, err)
	require.NoError(t, store.Close())

	// Reopening the same directory reruns the migration path.
	store, err = NewStore(dir)
	require.NoError(t, err)
	assert.NoError(t, store.Close())
}
