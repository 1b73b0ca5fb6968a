package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/SaiNageswarS/go-api-boot/logger"
	"github.com/ollama/ollama/api"
)

// GroqClient talks to Groq's OpenAI-compatible chat completion endpoint.
type GroqClient struct {
	apiKey     string
	httpClient *http.Client
	url        string
	model      string
}

func NewGroqClient(model string) Client {
	apiKey := os.Getenv("GROQ_API_KEY")
	if apiKey == "" {
		logger.Fatal("GROQ_API_KEY environment variable is not set")
		return nil
	}

	return &GroqClient{
		apiKey:     apiKey,
		httpClient: &http.Client{},
		url:        "https://api.groq.com/openai/v1/chat/completions",
		model:      model,
	}
}

func (c *GroqClient) GetModel() string {
	return c.model
}

type groqTool struct {
	Type     string `json:"type"`
	Function struct {
		Name        string `json:"name"`
		Description string `json:"description"`
		Parameters  any    `json:"parameters"`
	} `json:"function"`
}

type groqRequest struct {
	Model       string     `json:"model"`
	Messages    []Message  `json:"messages"`
	Temperature float64    `json:"temperature"`
	MaxTokens   int        `json:"max_tokens"`
	Tools       []groqTool `json:"tools,omitempty"`
	ToolChoice  string     `json:"tool_choice,omitempty"`
}

type groqToolCall struct {
	ID       string `json:"id"`
	Type     string `json:"type"`
	Function struct {
		Name      string `json:"name"`
		Arguments string `json:"arguments"`
	} `json:"function"`
}

type groqResponse struct {
	Choices []struct {
		Message struct {
			Content   string         `json:"content"`
			ToolCalls []groqToolCall `json:"tool_calls"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
}

func (c *GroqClient) GenerateInference(ctx context.Context, messages []Message, callback func(chunk string) error, opts ...Option) error {
	s := defaultSettings(c.model)
	for _, opt := range opts {
		opt(&s)
	}

	request := groqRequest{
		Model:       s.model,
		Messages:    promoteSystem(messages, s.system),
		Temperature: s.temperature,
		MaxTokens:   s.maxTokens,
	}
	return c.makeRequest(ctx, request, callback, nil)
}

func (c *GroqClient) GenerateInferenceWithTools(
	ctx context.Context,
	messages []Message,
	contentCallback func(chunk string) error,
	toolCallback func(toolCalls []api.ToolCall) error,
	opts ...Option,
) error {
	s := defaultSettings(c.model)
	for _, opt := range opts {
		opt(&s)
	}

	request := groqRequest{
		Model:       s.model,
		Messages:    promoteSystem(messages, s.system),
		Temperature: s.temperature,
		MaxTokens:   s.maxTokens,
		Tools:       toGroqTools(s.tools),
		ToolChoice:  "auto",
	}
	return c.makeRequest(ctx, request, contentCallback, toolCallback)
}

// promoteSystem prepends the system prompt as a system message, the way the
// OpenAI-compatible API expects it.
func promoteSystem(messages []Message, system string) []Message {
	if system == "" {
		return messages
	}
	return append([]Message{{Role: "system", Content: system}}, messages...)
}

func toGroqTools(tools []api.Tool) []groqTool {
	out := make([]groqTool, len(tools))
	for i, t := range tools {
		out[i].Type = "function"
		out[i].Function.Name = t.Function.Name
		out[i].Function.Description = t.Function.Description
		out[i].Function.Parameters = t.Function.Parameters
	}
	return out
}

func (c *GroqClient) makeRequest(
	ctx context.Context,
	request groqRequest,
	contentCallback func(chunk string) error,
	toolCallback func(toolCalls []api.ToolCall) error,
) error {
	jsonData, err := json.Marshal(request)
	if err != nil {
		return fmt.Errorf("error marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.url, bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("error creating request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("error making request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("error reading response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("API request failed with status %d: %s", resp.StatusCode, string(body))
	}

	var response groqResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return fmt.Errorf("error unmarshaling response: %w", err)
	}
	if len(response.Choices) == 0 {
		return fmt.Errorf("no choices in response")
	}

	choice := response.Choices[0]
	if len(choice.Message.ToolCalls) > 0 && toolCallback != nil {
		calls := make([]api.ToolCall, 0, len(choice.Message.ToolCalls))
		for _, tc := range choice.Message.ToolCalls {
			var args map[string]any
			if err := json.Unmarshal([]byte(tc.Function.Arguments), &args); err != nil {
				logger.Error("skipping tool call with malformed arguments")
				continue
			}
			calls = append(calls, api.ToolCall{
				Function: api.ToolCallFunction{
					Name:      tc.Function.Name,
					Arguments: args,
				},
			})
		}
		if len(calls) > 0 {
			return toolCallback(calls)
		}
	}

	return contentCallback(choice.Message.Content)
}
