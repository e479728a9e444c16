package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/studykit-labs/studykit/internal/core/ports/driven"
)

// Sampling parameters for answer composition. Low temperature keeps the
// model close to the provided context.
const (
	composeMaxTokens   = 1024
	composeTemperature = 0.2
)

// chunkDelimiter separates context chunks in the prompt. Chosen to be
// unlikely to occur in document text.
const chunkDelimiter = "\n\n=====\n\n"

// AnswerComposer builds a grounded prompt from retrieved chunks and
// invokes the generative model. It applies no retry policy; model
// failures are fatal to the current request.
type AnswerComposer struct {
	llm driven.LLMService
}

// NewAnswerComposer creates a new answer composer.
func NewAnswerComposer(llm driven.LLMService) *AnswerComposer {
	return &AnswerComposer{llm: llm}
}

// Compose builds the prompt from the context chunks and calls the model.
func (c *AnswerComposer) Compose(ctx context.Context, question string, contextChunks []string, documentName string) (*driven.ChatResult, error) {
	messages := []driven.ChatMessage{
		{Role: "system", Content: systemInstruction(documentName)},
		{Role: "user", Content: userPrompt(question, contextChunks)},
	}

	return c.llm.Chat(ctx, messages, driven.ChatOptions{
		MaxTokens:   composeMaxTokens,
		Temperature: composeTemperature,
	})
}

// systemInstruction constrains the model to the provided context.
func systemInstruction(documentName string) string {
	var b strings.Builder
	b.WriteString("You are a study assistant answering questions about a student's document")
	if documentName != "" {
		fmt.Fprintf(&b, " named %q", documentName)
	}
	b.WriteString(".\n")
	b.WriteString("Answer using ONLY the provided context excerpts. ")
	b.WriteString("Do not use outside knowledge. ")
	b.WriteString("If the context does not contain the answer, say explicitly that the document does not cover it.")
	return b.String()
}

// userPrompt assembles the labelled context block and the question.
func userPrompt(question string, contextChunks []string) string {
	var b strings.Builder
	b.WriteString("Context excerpts:\n\n")
	for i, chunk := range contextChunks {
		if i > 0 {
			b.WriteString(chunkDelimiter)
		}
		fmt.Fprintf(&b, "[Chunk %d]\n%s", i+1, chunk)
	}
	b.WriteString("\n\nQuestion: ")
	b.WriteString(question)
	return b.String()
}
