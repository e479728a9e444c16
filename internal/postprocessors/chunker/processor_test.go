package chunker

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildText produces deterministic prose of at least n characters made of
// unique sentences, so chunk positions can be located unambiguously.
func buildText(n int) string {
	var b strings.Builder
	for i := 0; b.Len() < n; i++ {
		fmt.Fprintf(&b, "Sentence number %d tells a small fact about the course material. ", i)
	}
	return strings.TrimSpace(b.String())
}

func TestProcessEmptyText(t *testing.T) {
	p := New()

	chunks, err := p.Process(context.Background(), "doc-1", "", nil)
	require.NoError(t, err)
	assert.Empty(t, chunks)
}

func TestProcessShortText(t *testing.T) {
	p := New()

	chunks, err := p.Process(context.Background(), "doc-1", "  A single short paragraph.  ", nil)
	require.NoError(t, err)
	require.Len(t, chunks, 1)
	assert.Equal(t, "A single short paragraph.", chunks[0].Text)
	assert.Equal(t, 0, chunks[0].Index)
	assert.Equal(t, "doc-1", chunks[0].SourceID)
}

func TestThousandCharWindows(t *testing.T) {
	// A ~3000 character document with maxChunkChars=1000 and
	// overlapChars=200 yields 3-4 chunks of 700-1000 characters with
	// consecutive chunks sharing an overlap region.
	text := buildText(3000)
	p := New(WithChunkSize(1000), WithOverlap(200))

	chunks, err := p.Process(context.Background(), "doc-1", text, nil)
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(chunks), 3)
	require.LessOrEqual(t, len(chunks), 4)

	for i, c := range chunks {
		assert.NotEmpty(t, strings.TrimSpace(c.Text))
		assert.Equal(t, i, c.Index)
		if i < len(chunks)-1 {
			assert.GreaterOrEqual(t, len(c.Text), 700, "chunk %d too short", i)
			assert.LessOrEqual(t, len(c.Text), 1000, "chunk %d too long", i)
		}
	}

	// The head of each chunk lies inside its predecessor's tail.
	for i := 1; i < len(chunks); i++ {
		head := chunks[i].Text[:80]
		assert.Contains(t, chunks[i-1].Text, head,
			"chunk %d does not overlap chunk %d", i, i-1)
	}
}

func TestCoverageHasNoGaps(t *testing.T) {
	tests := []struct {
		name      string
		chunkSize int
		overlap   int
	}{
		{"default window", 1000, 200},
		{"small window", 120, 30},
		{"no overlap", 200, 0},
	}

	text := buildText(2500)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := New(WithChunkSize(tt.chunkSize), WithOverlap(tt.overlap))

			chunks, err := p.Process(context.Background(), "doc-1", text, nil)
			require.NoError(t, err)
			require.NotEmpty(t, chunks)

			// Locate each chunk in the original and check that nothing but
			// whitespace separates chunk N's end from chunk N+1's start.
			prevEnd := 0
			for i, c := range chunks {
				start := strings.Index(text, c.Text)
				require.GreaterOrEqual(t, start, 0, "chunk %d not found in source", i)
				if start > prevEnd {
					gap := text[prevEnd:start]
					assert.Empty(t, strings.TrimSpace(gap), "gap before chunk %d", i)
				}
				prevEnd = start + len(c.Text)
			}
			assert.GreaterOrEqual(t, prevEnd, len(strings.TrimSpace(text)))
		})
	}
}

func TestBoundarySnapBeyondMidpoint(t *testing.T) {
	// The last sentence terminator inside the window sits past the
	// midpoint, so the window truncates there.
	text := strings.Repeat("a", 78) + ". " + strings.Repeat("b", 120)
	p := New(WithChunkSize(100), WithOverlap(10))

	chunks, err := p.Process(context.Background(), "doc-1", text, nil)
	require.NoError(t, err)
	require.NotEmpty(t, chunks)
	assert.Equal(t, strings.Repeat("a", 78)+".", chunks[0].Text)
}

func TestBoundaryBeforeMidpointIgnored(t *testing.T) {
	// The only terminator sits before the midpoint; the window keeps its
	// full size instead of collapsing to a tiny chunk.
	text := strings.Repeat("a", 30) + ". " + strings.Repeat("b", 200)
	p := New(WithChunkSize(100), WithOverlap(10))

	chunks, err := p.Process(context.Background(), "doc-1", text, nil)
	require.NoError(t, err)
	require.NotEmpty(t, chunks)
	assert.Len(t, chunks[0].Text, 100)
}

func TestNewlineIsABoundary(t *testing.T) {
	text := strings.Repeat("a", 70) + "\n" + strings.Repeat("b", 120)
	p := New(WithChunkSize(100), WithOverlap(10))

	chunks, err := p.Process(context.Background(), "doc-1", text, nil)
	require.NoError(t, err)
	require.NotEmpty(t, chunks)
	assert.Equal(t, strings.Repeat("a", 70), chunks[0].Text)
}

func TestSnapBelowOverlapStillAdvances(t *testing.T) {
	// With a large overlap, a boundary snap can shrink the window below
	// the overlap size. The processor must advance regardless.
	text := strings.Repeat("a", 53) + ". " + strings.Repeat("b", 500)
	p := New(WithChunkSize(100), WithOverlap(60))

	chunks, err := p.Process(context.Background(), "doc-1", text, nil)
	require.NoError(t, err)
	require.NotEmpty(t, chunks)
	for i, c := range chunks {
		assert.Equal(t, i, c.Index)
	}
}

func TestOverlapGuard(t *testing.T) {
	p := New(WithChunkSize(100), WithOverlap(100))
	assert.Equal(t, 100, p.chunkSize)
	assert.Equal(t, 25, p.overlap)
}

func TestName(t *testing.T) {
	assert.Equal(t, "chunker", New().Name())
}
