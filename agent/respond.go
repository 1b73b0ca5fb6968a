package agent

import (
	"context"
	"fmt"
	"strings"

	"github.com/SaiNageswarS/go-api-boot/logger"
	"github.com/SaiNageswarS/go-collection-boot/async"
	"github.com/ollama/ollama/api"
	"github.com/transitwise/travel-agent/extract"
	"github.com/transitwise/travel-agent/intent"
	"github.com/transitwise/travel-agent/language"
	"github.com/transitwise/travel-agent/llm"
	"github.com/transitwise/travel-agent/prompts"
	"github.com/transitwise/travel-agent/session"
	"github.com/transitwise/travel-agent/tools"
	"github.com/transitwise/travel-agent/translate"
	"go.uber.org/zap"
)

const fallbackAnswer = "I gathered what I could but ran out of lookup steps. Please try a more specific question."

// Respond handles one user turn end to end: translation gate, intent
// parsing, entity extraction, then either a single-shot completion or the
// bounded tool-orchestration loop. The only fatal failure is the model call
// itself; everything below it is absorbed into the tool-call trace.
func (a *Agent) Respond(ctx context.Context, reporter ProgressReporter, req *ChatRequest) (*ChatResponse, error) {
	if reporter == nil {
		reporter = &NoOpProgressReporter{}
	}
	lang := req.Language
	if lang == "" {
		lang = language.English
	}

	sctx, err := a.config.Sessions.Get(ctx, req.SessionID)
	if err != nil {
		logger.Get().Warn("session lookup failed, starting fresh", zap.Error(err))
		sctx = session.NewContext()
	}
	if err := a.config.Sessions.Update(ctx, req.SessionID, session.Patch{Language: lang}); err != nil {
		logger.Get().Warn("session update failed", zap.Error(err))
	}

	// Extraction dictionaries are English-centric; the gate translates
	// non-Latin-script input and passes everything else through.
	text := translate.Apply(ctx, a.config.Translator, req.Message, lang)

	pi := req.Intent
	if pi == nil {
		parsed := intent.ParseMarkdownIntent(text)
		pi = &parsed
	}
	ents := extract.Extract(text, lang, a.config.Clock())

	history := req.History
	conversation := a.config.Conversations.LoadSession(ctx, req.SessionID)
	if len(history) == 0 {
		history = conversation.Messages
	}
	conversation.AddUserMessage(req.Message)

	system, err := prompts.RenderSystemPrompt(prompts.SystemPromptData{
		Language:       lang.Name(),
		ContextSummary: contextSummary(sctx),
		Entities:       entitiesMarkdown(ents),
	})
	if err != nil {
		return nil, &RunError{Kind: RunErrConfig, UserMessage: "The assistant is misconfigured.", cause: err}
	}

	msgs := append(append([]llm.Message{}, history...), llm.Message{Role: "user", Content: req.Message})

	var response *ChatResponse
	if intent.RequiresOrchestration(*pi, req.Message) || intent.RequiresOrchestration(*pi, text) {
		response, err = a.runOrchestration(ctx, reporter, req, msgs, system, ents, sctx)
	} else {
		response, err = a.singleShot(ctx, reporter, msgs, system)
	}
	if err != nil {
		reporter.Send(newStreamError(err.Error()))
		return nil, err
	}

	for _, record := range response.ToolCalls {
		conversation.AddToolResult(formatToolResult(record))
	}
	conversation.AddAssistantMessage(response.Response)
	if err := a.config.Conversations.SaveSession(ctx, conversation); err != nil {
		logger.Get().Warn("failed to persist conversation", zap.Error(err))
	}

	reporter.Send(newProgressUpdate(StageComplete, "done"))
	return response, nil
}

// singleShot answers without tools: one model call, empty trace.
func (a *Agent) singleShot(ctx context.Context, reporter ProgressReporter, msgs []llm.Message, system string) (*ChatResponse, error) {
	reporter.Send(newProgressUpdate(StageAnswering, "generating answer"))

	var answer strings.Builder
	callCtx, cancel := context.WithTimeout(ctx, a.config.CallTimeout)
	defer cancel()

	err := a.config.Model.GenerateInference(callCtx, msgs,
		func(chunk string) error {
			answer.WriteString(chunk)
			return reporter.Send(newAnswerChunk(chunk))
		},
		llm.WithSystemPrompt(system),
		llm.WithMaxTokens(a.config.MaxTokens),
	)
	if err != nil {
		return nil, a.runError(err)
	}
	return &ChatResponse{Response: answer.String(), ToolCalls: []ToolCallRecord{}}, nil
}

// runOrchestration drives the Planning/Executing loop. Each round sends the
// full conversation, including every tool result of this run, back to the
// model; the loop ends when the model stops requesting tools or the round
// ceiling forces a best-effort answer.
func (a *Agent) runOrchestration(
	ctx context.Context,
	reporter ProgressReporter,
	req *ChatRequest,
	msgs []llm.Message,
	system string,
	ents extract.Entities,
	sctx *session.Context,
) (*ChatResponse, error) {
	trace := []ToolCallRecord{}

	for round := 0; round < a.config.MaxRounds; round++ {
		reporter.Send(newProgressUpdate(StagePlanning, fmt.Sprintf("planning round %d", round+1)))

		content, calls, err := a.plan(ctx, msgs, system)
		if err != nil {
			return nil, a.runError(err)
		}
		if len(calls) == 0 {
			return &ChatResponse{Response: content, ToolCalls: trace}, nil
		}

		records := a.executeRound(ctx, reporter, req, calls, ents, sctx)
		for _, record := range records {
			trace = append(trace, record)
			msgs = append(msgs, llm.Message{
				Role:         "user",
				Content:      formatToolResult(record),
				IsToolResult: true,
			})
			a.foldIntoContext(ctx, req.SessionID, sctx, record)
		}
	}

	// Round ceiling hit: the model still owes the user an answer from
	// whatever data the rounds produced.
	answer, err := a.forcedAnswer(ctx, reporter, msgs, system)
	if err != nil {
		return nil, a.runError(err)
	}
	if strings.TrimSpace(answer) == "" {
		answer = fallbackAnswer
	}
	return &ChatResponse{Response: answer, ToolCalls: trace}, nil
}

// plan asks the model for either an answer or the next batch of tool calls.
func (a *Agent) plan(ctx context.Context, msgs []llm.Message, system string) (string, []api.ToolCall, error) {
	var content strings.Builder
	var calls []api.ToolCall

	callCtx, cancel := context.WithTimeout(ctx, a.config.CallTimeout)
	defer cancel()

	err := a.config.Model.GenerateInferenceWithTools(callCtx, msgs,
		func(chunk string) error {
			content.WriteString(chunk)
			return nil
		},
		func(toolCalls []api.ToolCall) error {
			calls = append(calls, toolCalls...)
			return nil
		},
		llm.WithTools(a.config.Tools),
		llm.WithSystemPrompt(system),
		llm.WithMaxTokens(a.config.MaxTokens),
	)
	return content.String(), calls, err
}

// executeRound runs the round's tool calls concurrently and collects one
// record per call. A sibling's failure never cancels the others: every task
// resolves to a record, failed ones with OK false.
func (a *Agent) executeRound(
	ctx context.Context,
	reporter ProgressReporter,
	req *ChatRequest,
	calls []api.ToolCall,
	ents extract.Entities,
	sctx *session.Context,
) []ToolCallRecord {
	tasks := make([]<-chan async.Result[ToolCallRecord], 0, len(calls))
	for _, call := range calls {
		name := call.Function.Name
		params := resolveParams(call, ents, sctx, req.Message)
		reporter.Send(newProgressUpdate(StageToolStarting, fmt.Sprintf("running %s", name)))

		tasks = append(tasks, async.Go(func() (ToolCallRecord, error) {
			record := ToolCallRecord{ToolName: name, Params: params}
			if _, known := tools.Find(a.config.Tools, name); !known {
				record.Result = tools.Fail(tools.ErrBackend, "unknown tool").Payload()
				return record, nil
			}
			res := a.config.Executor.Execute(ctx, name, params)
			record.Result = res.Payload()
			record.OK = res.OK
			return record, nil
		}))
	}

	records, err := async.AwaitAll(tasks...)
	if err != nil {
		// Tasks never return errors; this is unreachable in practice.
		logger.Error("tool round await failed", zap.Error(err))
	}
	for i := range records {
		reporter.Send(newToolChunk(&records[i]))
		reporter.Send(newProgressUpdate(StageToolCompleted, records[i].ToolName))
	}
	return records
}

// foldIntoContext makes a completed tool call visible to later turns:
// successful payloads overwrite the per-tool slot, and the call's station or
// journey becomes the last mentioned entity.
func (a *Agent) foldIntoContext(ctx context.Context, sessionID string, sctx *session.Context, record ToolCallRecord) {
	if !record.OK {
		return
	}
	patch := session.Patch{
		ToolResults: map[string]map[string]any{record.ToolName: record.Result},
		Mentioned:   mentionedEntity(record.ToolName, record.Params),
	}

	// Keep the local copy in step so later rounds of this run resolve
	// against fresh context without a store round-trip.
	if sctx.LastToolResults == nil {
		sctx.LastToolResults = map[string]map[string]any{}
	}
	sctx.LastToolResults[record.ToolName] = record.Result
	if patch.Mentioned != nil {
		sctx.LastMentioned = patch.Mentioned
	}

	if err := a.config.Sessions.Update(ctx, sessionID, patch); err != nil {
		logger.Get().Warn("failed to update session context", zap.Error(err))
	}
}

// forcedAnswer asks the model for a final text answer with no tools
// attached.
func (a *Agent) forcedAnswer(ctx context.Context, reporter ProgressReporter, msgs []llm.Message, system string) (string, error) {
	reporter.Send(newProgressUpdate(StageAnswering, "generating final answer"))

	msgs = append(msgs, llm.Message{
		Role:    "user",
		Content: "Answer now with the information gathered so far. Do not request any more lookups.",
	})

	var answer strings.Builder
	callCtx, cancel := context.WithTimeout(ctx, a.config.CallTimeout)
	defer cancel()

	err := a.config.Model.GenerateInference(callCtx, msgs,
		func(chunk string) error {
			answer.WriteString(chunk)
			return reporter.Send(newAnswerChunk(chunk))
		},
		llm.WithSystemPrompt(system),
		llm.WithMaxTokens(a.config.MaxTokens),
	)
	return answer.String(), err
}

func formatToolResult(record ToolCallRecord) string {
	status := "succeeded"
	if !record.OK {
		status = "failed"
	}
	return fmt.Sprintf("Tool %s %s.\nParameters: %s\nResult: %s",
		record.ToolName, status, marshalJSON(record.Params), marshalJSON(record.Result))
}

// runError classifies a fatal model failure for the user without leaking
// internals; the cause stays in server-side logs.
func (a *Agent) runError(err error) error {
	logger.Error("model call failed", zap.Error(err))
	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "api key") || strings.Contains(msg, "401") ||
		strings.Contains(msg, "credential") || strings.Contains(msg, "not set") {
		return &RunError{
			Kind:        RunErrConfig,
			UserMessage: "The assistant is not configured correctly. Please contact the operator.",
			cause:       err,
		}
	}
	return &RunError{
		Kind:        RunErrUpstream,
		UserMessage: "The assistant could not reach its language model. Please try again.",
		cause:       err,
	}
}
