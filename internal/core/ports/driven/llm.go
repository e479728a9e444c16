package driven

import (
	"context"

	"github.com/studykit-labs/studykit/internal/core/domain"
)

// LLMService provides generative model calls for answer composition.
//
// Implementations may include:
//   - OpenAI (GPT-4o, GPT-4o-mini)
//   - Anthropic (Claude)
//   - Ollama (local models)
type LLMService interface {
	// Chat sends an ordered message list to the model and returns the
	// completion. Model failures are fatal to the current request;
	// callers apply no retry policy.
	Chat(ctx context.Context, messages []ChatMessage, opts ChatOptions) (*ChatResult, error)

	// ModelName returns the name of the model being used.
	ModelName() string

	// Ping validates the service is reachable by making a lightweight
	// test request.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}

// ChatMessage represents a single message in a conversation.
type ChatMessage struct {
	// Role is one of "system", "user", or "assistant".
	Role string

	// Content is the message text.
	Content string
}

// ChatOptions configures chat behaviour.
type ChatOptions struct {
	// MaxTokens is the maximum number of tokens to generate.
	MaxTokens int

	// Temperature controls randomness (0.0 = deterministic, 1.0 = creative).
	Temperature float64
}

// ChatResult is the model's completion plus identification and usage.
type ChatResult struct {
	// Text is the completion text.
	Text string

	// Model identifies the model that produced the completion.
	Model string

	// Usage reports token consumption for the call.
	Usage domain.TokenUsage
}
