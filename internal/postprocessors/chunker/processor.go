// Package chunker provides a boundary-aware overlapping text chunking processor.
package chunker

import (
	"context"
	"strings"

	"github.com/studykit-labs/studykit/internal/core/domain"
)

// DefaultChunkSize is the default number of characters per chunk.
const DefaultChunkSize = 1000

// DefaultChunkOverlap is the default number of overlapping characters.
const DefaultChunkOverlap = 200

// Processor splits document text into overlapping chunks, snapping the
// window to sentence or line boundaries where possible to avoid
// mid-sentence cuts. It implements the PostProcessor interface.
type Processor struct {
	chunkSize int
	overlap   int
}

// Option configures the chunker processor.
type Option func(*Processor)

// WithChunkSize sets the chunk size in characters.
func WithChunkSize(size int) Option {
	return func(p *Processor) {
		if size > 0 {
			p.chunkSize = size
		}
	}
}

// WithOverlap sets the overlap between chunks in characters.
func WithOverlap(overlap int) Option {
	return func(p *Processor) {
		if overlap >= 0 {
			p.overlap = overlap
		}
	}
}

// New creates a new chunker processor with the given options.
func New(opts ...Option) *Processor {
	p := &Processor{
		chunkSize: DefaultChunkSize,
		overlap:   DefaultChunkOverlap,
	}

	for _, opt := range opts {
		opt(p)
	}

	// Ensure overlap doesn't exceed chunk size
	if p.overlap >= p.chunkSize {
		p.overlap = p.chunkSize / 4
	}

	return p
}

// Name returns the processor name.
func (p *Processor) Name() string {
	return "chunker"
}

// Process splits the text into chunks.
// Input chunks are ignored; this processor creates new chunks from the text.
func (p *Processor) Process(_ context.Context, sourceID, text string, _ []domain.Chunk) ([]domain.Chunk, error) {
	if text == "" {
		// Empty content produces no chunks
		return nil, nil
	}

	textLen := len(text)
	estimated := (textLen / (p.chunkSize - p.overlap)) + 1
	chunks := make([]domain.Chunk, 0, estimated)

	start := 0
	index := 0

	for start < textLen {
		end := start + p.chunkSize
		if end >= textLen {
			end = textLen
		} else if cut := p.boundaryCut(text, start, end); cut > 0 {
			end = cut
		}

		piece := strings.TrimSpace(text[start:end])
		if piece != "" {
			chunks = append(chunks, domain.Chunk{
				Text:     piece,
				Index:    index,
				SourceID: sourceID,
			})
			index++
		}

		if end >= textLen {
			break
		}

		next := end - p.overlap
		if next <= start {
			// A boundary snap shrank the window below the overlap;
			// advance without overlap to guarantee progress.
			next = end
		}
		start = next
	}

	return chunks, nil
}

// boundaryCut searches backward from the window edge for the last sentence
// terminator or newline. The cut is applied only when it lands beyond the
// midpoint of the window, so a snap never halves the chunk size.
// Returns 0 when no suitable boundary exists.
func (p *Processor) boundaryCut(text string, start, end int) int {
	b := strings.LastIndexAny(text[start:end], ".\n")
	if b < 0 {
		return 0
	}
	cut := start + b + 1
	if cut <= start+p.chunkSize/2 {
		return 0
	}
	return cut
}
