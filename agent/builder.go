package agent

import (
	"time"

	"github.com/ollama/ollama/api"
	"github.com/transitwise/travel-agent/llm"
	"github.com/transitwise/travel-agent/memory"
	"github.com/transitwise/travel-agent/session"
	"github.com/transitwise/travel-agent/tools"
	"github.com/transitwise/travel-agent/translate"
)

// Builder assembles an Agent step by step.
type Builder struct {
	config Config
}

func NewBuilder() *Builder {
	return &Builder{}
}

func (b *Builder) WithModel(client llm.Client) *Builder {
	b.config.Model = client
	return b
}

func (b *Builder) WithMiniModel(client llm.Client) *Builder {
	b.config.MiniModel = client
	return b
}

func (b *Builder) WithTranslator(tr translate.Translator) *Builder {
	b.config.Translator = tr
	return b
}

func (b *Builder) WithExecutor(ex tools.Executor) *Builder {
	b.config.Executor = ex
	return b
}

func (b *Builder) WithTools(catalog []api.Tool) *Builder {
	b.config.Tools = catalog
	return b
}

func (b *Builder) WithSessions(store session.Store) *Builder {
	b.config.Sessions = store
	return b
}

func (b *Builder) WithConversations(cm *memory.ConversationManager) *Builder {
	b.config.Conversations = cm
	return b
}

func (b *Builder) WithMaxRounds(rounds int) *Builder {
	b.config.MaxRounds = rounds
	return b
}

func (b *Builder) WithCallTimeout(d time.Duration) *Builder {
	b.config.CallTimeout = d
	return b
}

func (b *Builder) WithMaxTokens(tokens int) *Builder {
	b.config.MaxTokens = tokens
	return b
}

func (b *Builder) WithClock(clock func() time.Time) *Builder {
	b.config.Clock = clock
	return b
}

func (b *Builder) Build() *Agent {
	return New(b.config)
}
