package domain

// TokenUsage reports token consumption for one generative model call.
type TokenUsage struct {
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
}

// AnswerSource describes one retrieved chunk that grounded an answer.
type AnswerSource struct {
	// TextPreview is a truncated excerpt of the chunk text.
	TextPreview string

	// Score is the cosine similarity between the question and the chunk.
	Score float64

	// Metadata carries the point payload minus the chunk text
	// (source id, chunk index, document type, ingestion timestamp).
	Metadata map[string]any
}

// AnswerResult is the outcome of a grounded question-answering run.
//
// Success is false for the soft "no relevant content" and "no extractable
// text" outcomes. These are expected, user-facing results rather than
// system errors: Answer then carries an explanation to render to the
// end user, Sources is empty and Confidence is zero.
type AnswerResult struct {
	// Success reports whether a grounded answer was produced.
	Success bool

	// Answer is the model's text, or an explanation when Success is false.
	Answer string

	// Sources lists the chunks the answer was grounded on,
	// in descending score order.
	Sources []AnswerSource

	// Confidence is the arithmetic mean of the source scores, clipped to
	// [0, 1]. A heuristic trust signal, not a calibrated probability.
	// Exactly zero when Sources is empty.
	Confidence float64

	// ModelUsed identifies the generative model that produced the answer.
	ModelUsed string

	// Usage reports token consumption of the model call.
	Usage TokenUsage
}

// SearchResult is a single scored retrieval hit. Ephemeral: produced per
// query, never persisted.
type SearchResult struct {
	// Text is the chunk text extracted from the point payload.
	Text string

	// Score is the cosine similarity in [-1, 1].
	Score float64

	// SourceID is the owning document's identifier.
	SourceID string

	// ChunkIndex is the chunk's ordinal position within the source.
	ChunkIndex int

	// Metadata carries the remaining point payload.
	Metadata map[string]any
}
