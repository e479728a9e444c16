package services

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComposeBuildsGroundedPrompt(t *testing.T) {
	llm := &mockLLMService{response: "The answer."}
	composer := NewAnswerComposer(llm)

	chunks := []string{"First excerpt.", "Second excerpt.", "Third excerpt."}
	result, err := composer.Compose(context.Background(), "What is X?", chunks, "notes.pdf")
	require.NoError(t, err)
	assert.Equal(t, "The answer.", result.Text)

	require.Len(t, llm.messages, 2)

	system := llm.messages[0]
	assert.Equal(t, "system", system.Role)
	assert.Contains(t, system.Content, `"notes.pdf"`)
	assert.Contains(t, system.Content, "ONLY the provided context")

	user := llm.messages[1]
	assert.Equal(t, "user", user.Role)
	for i, chunk := range chunks {
		assert.Contains(t, user.Content, "[Chunk "+string(rune('1'+i))+"]")
		assert.Contains(t, user.Content, chunk)
	}
	assert.Contains(t, user.Content, "Question: What is X?")

	// Chunks are separated by the delimiter, not run together.
	assert.Equal(t, 2, strings.Count(user.Content, chunkDelimiter))
}

func TestComposeWithoutDocumentName(t *testing.T) {
	llm := &mockLLMService{response: "ok"}
	composer := NewAnswerComposer(llm)

	_, err := composer.Compose(context.Background(), "q?", []string{"ctx"}, "")
	require.NoError(t, err)
	assert.NotContains(t, llm.messages[0].Content, `""`)
}

func TestComposePropagatesModelError(t *testing.T) {
	llm := &mockLLMService{chatErr: assert.AnError}
	composer := NewAnswerComposer(llm)

	_, err := composer.Compose(context.Background(), "q?", []string{"ctx"}, "doc")
	assert.ErrorIs(t, err, assert.AnError)
}
