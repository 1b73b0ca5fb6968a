package memory

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/transitwise/travel-agent/llm"
)

func TestNewConversationGeneratesID(t *testing.T) {
	c := NewConversation("")
	assert.NotEmpty(t, c.Id())

	c = NewConversation("session-1")
	assert.Equal(t, "session-1", c.Id())
	assert.Equal(t, "conversations", c.CollectionName())
}

func TestAddMessages(t *testing.T) {
	c := NewConversation("s1")
	c.AddUserMessage("hello")
	c.AddAssistantMessage("hi")
	c.AddToolResult("result payload")

	assert.Len(t, c.Messages, 3)
	assert.Equal(t, "user", c.Messages[0].Role)
	assert.Equal(t, "assistant", c.Messages[1].Role)
	assert.Equal(t, "user", c.Messages[2].Role)
	assert.True(t, c.Messages[2].IsToolResult)
}

func TestTrimKeepsLastUserTurns(t *testing.T) {
	cm := NewConversationManager(nil, 2)

	var msgs []llm.Message
	for i := 0; i < 4; i++ {
		msgs = append(msgs,
			llm.Message{Role: "user", Content: fmt.Sprintf("question %d", i)},
			llm.Message{Role: "assistant", Content: fmt.Sprintf("answer %d", i)},
		)
	}

	trimmed := cm.trim(msgs)

	assert.Len(t, trimmed, 4)
	assert.Equal(t, "question 2", trimmed[0].Content)
	assert.Equal(t, "answer 3", trimmed[3].Content)
}

func TestTrimDoesNotCountToolResults(t *testing.T) {
	cm := NewConversationManager(nil, 1)

	msgs := []llm.Message{
		{Role: "user", Content: "earlier question"},
		{Role: "assistant", Content: "earlier answer"},
		{Role: "user", Content: "find trips"},
		{Role: "user", Content: "tool output", IsToolResult: true},
		{Role: "user", Content: "more tool output", IsToolResult: true},
		{Role: "assistant", Content: "final answer"},
	}

	trimmed := cm.trim(msgs)

	assert.Len(t, trimmed, 4)
	assert.Equal(t, "find trips", trimmed[0].Content)
}

func TestTrimShortHistoryUnchanged(t *testing.T) {
	cm := NewConversationManager(nil, 10)
	msgs := []llm.Message{
		{Role: "user", Content: "only question"},
		{Role: "assistant", Content: "only answer"},
	}

	assert.Equal(t, msgs, cm.trim(msgs))
}

func TestNilManagerIsNoOp(t *testing.T) {
	var cm *ConversationManager
	ctx := context.Background()

	c := cm.LoadSession(ctx, "s1")
	assert.NotNil(t, c)
	assert.Empty(t, c.Messages)

	c.AddUserMessage("hello")
	assert.NoError(t, cm.SaveSession(ctx, c))
}
