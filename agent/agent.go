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

const (
	defaultMaxRounds   = 5
	defaultCallTimeout = 10 * time.Second
	defaultMaxTokens   = 2048
)

// Config wires the agent's collaborators. Model and Executor are required;
// everything else has a usable default or degrades gracefully when nil.
type Config struct {
	Model      llm.Client // function-calling model driving the loop
	MiniModel  llm.Client // small model for translation; falls back to Model
	Translator translate.Translator
	Executor   tools.Executor
	Tools      []api.Tool
	Sessions   session.Store

	// Conversations persists message history across process restarts; nil
	// keeps the agent stateless beyond the session store.
	Conversations *memory.ConversationManager

	MaxRounds   int           // hard ceiling on planning rounds
	CallTimeout time.Duration // per external call (model or tool)
	MaxTokens   int

	Clock func() time.Time // injected for deterministic date resolution
}

// Agent runs the intent pipeline and the tool-orchestration loop.
type Agent struct {
	config Config
}

func New(config Config) *Agent {
	if config.MaxRounds <= 0 {
		config.MaxRounds = defaultMaxRounds
	}
	if config.CallTimeout <= 0 {
		config.CallTimeout = defaultCallTimeout
	}
	if config.MaxTokens <= 0 {
		config.MaxTokens = defaultMaxTokens
	}
	if config.Clock == nil {
		config.Clock = time.Now
	}
	if config.Sessions == nil {
		config.Sessions = session.NewMemoryStore(30 * time.Minute)
	}
	if config.Translator == nil {
		if config.MiniModel != nil {
			config.Translator = translate.NewLLMTranslator(config.MiniModel)
		} else if config.Model != nil {
			config.Translator = translate.NewLLMTranslator(config.Model)
		}
	}
	return &Agent{config: config}
}
