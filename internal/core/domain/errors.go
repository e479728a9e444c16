package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input, such as empty
	// text passed to chunking or embedding. Caller error, never retried.
	ErrInvalidInput = errors.New("invalid input")

	// ErrEmptyDocument indicates ingestion produced zero chunks.
	// A data problem with the document, not a system fault.
	ErrEmptyDocument = errors.New("document contains no indexable text")

	// ErrEmbeddingFailed indicates the embedding service returned an error
	// (auth, rate limit, network). Fatal to the current operation.
	ErrEmbeddingFailed = errors.New("embedding failed")

	// Vector store errors.

	// ErrConnectionFailed indicates the vector store endpoint is unreachable.
	// This usually means misconfiguration (for example a loopback address in
	// a deployed environment) rather than a transient blip, so adapters
	// attach an explicit diagnosis to the message.
	ErrConnectionFailed = errors.New("vector store connection failed")

	// ErrCollectionNotFound indicates the collection does not exist.
	ErrCollectionNotFound = errors.New("collection not found")

	// ErrUpsertFailed indicates a point write was rejected by the store.
	ErrUpsertFailed = errors.New("vector upsert failed")

	// ErrSearchFailed indicates a similarity search was rejected by the store.
	ErrSearchFailed = errors.New("vector search failed")

	// ErrRAGFailed indicates a fatal failure during question answering.
	// Soft "no relevant content" outcomes are NOT errors; they are returned
	// as AnswerResult values with Success set to false.
	ErrRAGFailed = errors.New("question answering failed")

	// Service availability errors.

	// ErrLLMUnavailable indicates the LLM service is not configured.
	ErrLLMUnavailable = errors.New("LLM service unavailable")

	// ErrEmbeddingUnavailable indicates the embedding service is not configured.
	ErrEmbeddingUnavailable = errors.New("embedding service unavailable")

	// ErrVectorIndexUnavailable indicates the vector index is not configured.
	ErrVectorIndexUnavailable = errors.New("vector index unavailable")
)
