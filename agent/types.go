package agent

import (
	"github.com/transitwise/travel-agent/intent"
	"github.com/transitwise/travel-agent/language"
	"github.com/transitwise/travel-agent/llm"
)

// ChatRequest is one user turn handed to the assistant by the boundary
// layer. The language code is validated before it reaches the core.
type ChatRequest struct {
	Message   string
	SessionID string
	History   []llm.Message
	Language  language.Language
	// Intent lets the caller pass a pre-parsed intent; nil means the agent
	// parses the message itself.
	Intent *intent.ParsedIntent
}

// ToolCallRecord is one entry of the tool-call trace returned with the
// answer. Failed calls appear with OK false and an error payload; they are
// never raised as errors.
type ToolCallRecord struct {
	ToolName string         `json:"toolName"`
	Params   map[string]any `json:"params"`
	Result   map[string]any `json:"result"`
	OK       bool           `json:"ok"`
}

// ChatResponse is the assistant's answer plus the ordered trace of every
// tool invocation made while producing it.
type ChatResponse struct {
	Response  string           `json:"response"`
	ToolCalls []ToolCallRecord `json:"toolCalls"`
}

// RunErrorKind separates configuration problems from transient upstream
// failures in user-visible run errors.
type RunErrorKind string

const (
	RunErrConfig   RunErrorKind = "configuration"
	RunErrUpstream RunErrorKind = "upstream"
)

// RunError is the single fatal failure mode of a run: the model call itself
// failed, so no further planning is possible. UserMessage is safe to show;
// the wrapped cause is for server-side logs only.
type RunError struct {
	Kind        RunErrorKind
	UserMessage string
	cause       error
}

func (e *RunError) Error() string {
	return e.UserMessage
}

func (e *RunError) Unwrap() error {
	return e.cause
}
