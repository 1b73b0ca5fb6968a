package memory

import (
	"context"

	"github.com/SaiNageswarS/go-api-boot/logger"
	"github.com/SaiNageswarS/go-api-boot/odm"
	"github.com/SaiNageswarS/go-collection-boot/async"
	"github.com/transitwise/travel-agent/llm"
	"go.uber.org/zap"
)

// ConversationManager loads and saves session histories. A nil collection
// makes it a no-op, which keeps the assistant usable without a database.
type ConversationManager struct {
	collection odm.OdmCollectionInterface[Conversation]
	maxTurns   int
}

// NewConversationManager keeps at most maxTurns user turns per session on
// save.
func NewConversationManager(collection odm.OdmCollectionInterface[Conversation], maxTurns int) *ConversationManager {
	return &ConversationManager{
		collection: collection,
		maxTurns:   maxTurns,
	}
}

// LoadSession returns the stored conversation for sessionID, or an empty one
// so a lookup failure never blocks the user's turn.
func (cm *ConversationManager) LoadSession(ctx context.Context, sessionID string) *Conversation {
	if cm == nil || cm.collection == nil {
		return NewConversation(sessionID)
	}

	conversation, err := async.Await(cm.collection.FindOneByID(ctx, sessionID))
	if err != nil {
		logger.Get().Warn("no stored conversation for session", zap.String("sessionId", sessionID), zap.Error(err))
		return NewConversation(sessionID)
	}
	return conversation
}

func (cm *ConversationManager) SaveSession(ctx context.Context, conversation *Conversation) error {
	if cm == nil || cm.collection == nil {
		return nil
	}

	conversation.Messages = cm.trim(conversation.Messages)
	_, err := async.Await(cm.collection.Save(ctx, *conversation))
	if err != nil {
		logger.Error("failed to save conversation", zap.String("sessionId", conversation.ID), zap.Error(err))
		return err
	}
	return nil
}

// trim keeps the last maxTurns user messages plus whatever assistant and
// tool-result messages follow them. Tool results do not count as user turns.
func (cm *ConversationManager) trim(msgs []llm.Message) []llm.Message {
	if cm.maxTurns <= 0 || len(msgs) == 0 {
		return []llm.Message{}
	}

	usersSeen := 0
	start := 0
	for i := len(msgs) - 1; i >= 0; i-- {
		if msgs[i].Role == "user" && !msgs[i].IsToolResult {
			usersSeen++
			if usersSeen == cm.maxTurns {
				start = i
				break
			}
		}
	}
	return msgs[start:]
}
