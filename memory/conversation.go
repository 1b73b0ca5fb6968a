package memory

import (
	"github.com/google/uuid"
	"github.com/transitwise/travel-agent/llm"
)

// Conversation is the persisted message history of one assistant session.
type Conversation struct {
	ID       string        `bson:"_id"`
	Messages []llm.Message `bson:"messages"`
}

func NewConversation(sessionID string) *Conversation {
	if sessionID == "" {
		sessionID = uuid.New().String()
	}
	return &Conversation{ID: sessionID}
}

func (m Conversation) Id() string {
	return m.ID
}

func (m Conversation) CollectionName() string {
	return "conversations"
}

func (m *Conversation) AddUserMessage(content string) {
	m.Messages = append(m.Messages, llm.Message{Role: "user", Content: content})
}

func (m *Conversation) AddAssistantMessage(content string) {
	m.Messages = append(m.Messages, llm.Message{Role: "assistant", Content: content})
}

// AddToolResult appends a tool result. It rides as a user message so every
// provider sees it, but is flagged so history trimming does not count it as
// a real user turn.
func (m *Conversation) AddToolResult(content string) {
	m.Messages = append(m.Messages, llm.Message{Role: "user", Content: content, IsToolResult: true})
}
