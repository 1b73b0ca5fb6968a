package tools

import (
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
)

func TestOkPayloadIsTheValue(t *testing.T) {
	r := Ok(map[string]any{"trips": []any{}})

	assert.True(t, r.OK)
	assert.Equal(t, map[string]any{"trips": []any{}}, r.Payload())
}

func TestFailPayloadCarriesKindAndMessage(t *testing.T) {
	r := Fail(ErrTimeout, "tool call timed out")

	assert.False(t, r.OK)
	assert.Equal(t, map[string]any{
		"error":   "timeout",
		"message": "tool call timed out",
	}, r.Payload())
}

func TestFirstTextPicksFirstTextContent(t *testing.T) {
	res := &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.ImageContent{Type: "image"},
			mcp.TextContent{Type: "text", Text: `{"ok":true}`},
			mcp.TextContent{Type: "text", Text: "second"},
		},
	}
	assert.Equal(t, `{"ok":true}`, firstText(res))

	assert.Empty(t, firstText(&mcp.CallToolResult{}))
}
