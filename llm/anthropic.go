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

type AnthropicClient struct {
	apiKey     string
	httpClient *http.Client
	url        string
	model      string
}

func NewAnthropicClient(model string) Client {
	apiKey := os.Getenv("ANTHROPIC_API_KEY")
	if apiKey == "" {
		// Providers are designed for dependency injection; a missing key is
		// a deployment error, not a runtime condition.
		logger.Fatal("ANTHROPIC_API_KEY environment variable is not set")
		return nil
	}

	return &AnthropicClient{
		apiKey:     apiKey,
		httpClient: &http.Client{},
		url:        "https://api.anthropic.com/v1/messages",
		model:      model,
	}
}

func (c *AnthropicClient) GetModel() string {
	return c.model
}

type anthropicTool struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	InputSchema any    `json:"input_schema"`
}

type anthropicRequest struct {
	Model       string          `json:"model"`
	MaxTokens   int             `json:"max_tokens"`
	Temperature float64         `json:"temperature"`
	System      string          `json:"system,omitempty"`
	Messages    []Message       `json:"messages"`
	Tools       []anthropicTool `json:"tools,omitempty"`
	ToolChoice  map[string]any  `json:"tool_choice,omitempty"`
}

type anthropicContent struct {
	Type  string         `json:"type"`
	Text  string         `json:"text,omitempty"`
	Name  string         `json:"name,omitempty"`
	Input map[string]any `json:"input,omitempty"`
}

type anthropicResponse struct {
	Content    []anthropicContent `json:"content"`
	StopReason string             `json:"stop_reason"`
	Error      *struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

func (c *AnthropicClient) GenerateInference(ctx context.Context, messages []Message, callback func(chunk string) error, opts ...Option) error {
	resp, err := c.call(ctx, messages, nil, opts...)
	if err != nil {
		return err
	}
	for _, block := range resp.Content {
		if block.Type == "text" {
			return callback(block.Text)
		}
	}
	return fmt.Errorf("no text content in response")
}

func (c *AnthropicClient) GenerateInferenceWithTools(
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

	if len(s.tools) == 0 {
		return c.GenerateInference(ctx, messages, contentCallback, opts...)
	}

	resp, err := c.call(ctx, messages, s.tools, opts...)
	if err != nil {
		return err
	}

	var toolCalls []api.ToolCall
	var text string
	for _, block := range resp.Content {
		switch block.Type {
		case "tool_use":
			toolCalls = append(toolCalls, api.ToolCall{
				Function: api.ToolCallFunction{
					Name:      block.Name,
					Arguments: block.Input,
				},
			})
		case "text":
			text = block.Text
		}
	}

	if len(toolCalls) > 0 {
		return toolCallback(toolCalls)
	}
	return contentCallback(text)
}

func (c *AnthropicClient) call(ctx context.Context, messages []Message, tools []api.Tool, opts ...Option) (*anthropicResponse, error) {
	s := defaultSettings(c.model)
	for _, opt := range opts {
		opt(&s)
	}

	request := anthropicRequest{
		Model:       s.model,
		MaxTokens:   s.maxTokens,
		Temperature: s.temperature,
		System:      s.system,
		Messages:    messages,
	}
	if len(tools) > 0 {
		for _, t := range tools {
			request.Tools = append(request.Tools, anthropicTool{
				Name:        t.Function.Name,
				Description: t.Function.Description,
				InputSchema: t.Function.Parameters,
			})
		}
		request.ToolChoice = map[string]any{"type": "auto"}
	}

	jsonData, err := json.Marshal(request)
	if err != nil {
		return nil, fmt.Errorf("error marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", c.apiKey)
	req.Header.Set("anthropic-version", "2023-06-01")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error making request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("API request failed with status %d: %s", resp.StatusCode, string(body))
	}

	var response anthropicResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("error unmarshaling response: %w", err)
	}
	if response.Error != nil {
		return nil, fmt.Errorf("API error %s: %s", response.Error.Type, response.Error.Message)
	}
	if len(response.Content) == 0 {
		return nil, fmt.Errorf("no content in response")
	}
	return &response, nil
}
