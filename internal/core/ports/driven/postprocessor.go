package driven

import (
	"context"

	"github.com/studykit-labs/studykit/internal/core/domain"
)

// PostProcessor transforms document text into chunks, or transforms the
// chunks produced by an earlier processor in a pipeline.
type PostProcessor interface {
	// Name returns the processor name for error reporting.
	Name() string

	// Process produces chunks for the given source text. The first
	// processor in a pipeline receives nil chunks and creates them;
	// later processors receive and may modify them.
	Process(ctx context.Context, sourceID, text string, chunks []domain.Chunk) ([]domain.Chunk, error)
}

// PostProcessorPipeline runs an ordered chain of post-processors over a
// document's text.
type PostProcessorPipeline interface {
	// Process produces the final chunk list for the source text.
	Process(ctx context.Context, sourceID, text string) ([]domain.Chunk, error)
}

// Normaliser prepares raw extracted text for chunking.
type Normaliser interface {
	// Normalise collapses whitespace runs and caps consecutive blank
	// lines at one.
	Normalise(text string) string
}
