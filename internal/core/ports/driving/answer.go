package driving

import (
	"context"

	"github.com/studykit-labs/studykit/internal/core/domain"
)

// Bounds applied to topK. Callers are expected to stay within these;
// the service enforces them as well.
const (
	// MaxAnswerTopK is the largest number of chunks used to ground an answer.
	MaxAnswerTopK = 10

	// MaxSearchTopK is the largest number of results for a plain search.
	MaxSearchTopK = 20
)

// AnswerService answers free-text questions grounded on indexed documents.
type AnswerService interface {
	// Answer embeds the question, retrieves the topK most similar chunks
	// for the source, and conditions a generative model call on them.
	//
	// "No relevant content" and "no extractable text" are soft outcomes
	// returned as AnswerResult values with Success false, not errors.
	// Fatal failures (embedding, search, model) are wrapped in
	// domain.ErrRAGFailed.
	Answer(ctx context.Context, question, sourceID, sourceName string, topK int) (*domain.AnswerResult, error)

	// Search returns the raw scored chunks for a query without invoking
	// the generative model.
	Search(ctx context.Context, query, sourceID string, topK int) ([]domain.SearchResult, error)
}
