package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ollama/ollama/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAnthropicClient(server *httptest.Server) *AnthropicClient {
	return &AnthropicClient{
		apiKey:     "test-key",
		httpClient: server.Client(),
		url:        server.URL,
		model:      "claude-test",
	}
}

func TestAnthropicTextResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-key", r.Header.Get("x-api-key"))
		assert.Equal(t, "2023-06-01", r.Header.Get("anthropic-version"))

		var req anthropicRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "claude-test", req.Model)
		assert.Equal(t, "be helpful", req.System)

		json.NewEncoder(w).Encode(anthropicResponse{
			Content:    []anthropicContent{{Type: "text", Text: "hello"}},
			StopReason: "end_turn",
		})
	}))
	defer server.Close()

	client := newTestAnthropicClient(server)
	var got string
	err := client.GenerateInference(context.Background(),
		[]Message{{Role: "user", Content: "hi"}},
		func(chunk string) error { got = chunk; return nil },
		WithSystemPrompt("be helpful"),
	)

	require.NoError(t, err)
	assert.Equal(t, "hello", got)
}

func TestAnthropicToolUse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req anthropicRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Tools, 1)
		assert.Equal(t, "findTrips", req.Tools[0].Name)
		assert.Equal(t, map[string]any{"type": "auto"}, req.ToolChoice)

		json.NewEncoder(w).Encode(anthropicResponse{
			Content: []anthropicContent{
				{Type: "text", Text: "Let me look that up."},
				{Type: "tool_use", Name: "findTrips", Input: map[string]any{"origin": "Zürich HB"}},
			},
			StopReason: "tool_use",
		})
	}))
	defer server.Close()

	client := newTestAnthropicClient(server)
	tool := api.Tool{Type: "function"}
	tool.Function.Name = "findTrips"

	var calls []api.ToolCall
	err := client.GenerateInferenceWithTools(context.Background(),
		[]Message{{Role: "user", Content: "trains from Zürich HB"}},
		func(string) error { t.Fatal("content callback should not run"); return nil },
		func(toolCalls []api.ToolCall) error { calls = toolCalls; return nil },
		WithTools([]api.Tool{tool}),
	)

	require.NoError(t, err)
	require.Len(t, calls, 1)
	assert.Equal(t, "findTrips", calls[0].Function.Name)
	assert.Equal(t, "Zürich HB", calls[0].Function.Arguments["origin"])
}

func TestAnthropicAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":{"type":"authentication_error","message":"invalid x-api-key"}}`))
	}))
	defer server.Close()

	client := newTestAnthropicClient(server)
	err := client.GenerateInference(context.Background(),
		[]Message{{Role: "user", Content: "hi"}},
		func(string) error { return nil },
	)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
}
