package llm

import (
	"context"

	"github.com/ollama/ollama/api"
)

// Message is one entry of a conversation passed to a model.
type Message struct {
	Role         string `json:"role"` // "user", "assistant", "system"
	Content      string `json:"content"`
	IsToolResult bool   `json:"-"` // tool results ride as user messages but are trimmed differently
}

// Client is a chat-completion model. Implementations surface requested tool
// calls through the tool callback using ollama's api.ToolCall shape, so the
// orchestration loop stays provider-agnostic.
type Client interface {
	GenerateInference(
		ctx context.Context,
		messages []Message,
		callback func(chunk string) error,
		opts ...Option,
	) error

	// GenerateInferenceWithTools exposes the tool catalog to the model. The
	// model either streams text through contentCallback or requests tool
	// calls through toolCallback, never both in one turn.
	GenerateInferenceWithTools(
		ctx context.Context,
		messages []Message,
		contentCallback func(chunk string) error,
		toolCallback func(toolCalls []api.ToolCall) error,
		opts ...Option,
	) error

	GetModel() string
}

type settings struct {
	model       string
	temperature float64
	maxTokens   int
	system      string
	tools       []api.Tool
}

func defaultSettings(model string) settings {
	return settings{
		model:       model,
		temperature: 0.7,
		maxTokens:   4096,
	}
}

// Option tunes a single inference call.
type Option func(*settings)

func WithTemperature(temp float64) Option {
	return func(s *settings) { s.temperature = temp }
}

func WithMaxTokens(tokens int) Option {
	return func(s *settings) { s.maxTokens = tokens }
}

func WithSystemPrompt(prompt string) Option {
	return func(s *settings) { s.system = prompt }
}

func WithTools(tools []api.Tool) Option {
	return func(s *settings) { s.tools = tools }
}
