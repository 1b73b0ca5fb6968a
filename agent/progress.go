package agent

import (
	"time"

	"google.golang.org/grpc"
)

// Stage labels a progress event during a run.
type Stage string

const (
	StagePlanning      Stage = "planning"
	StageToolStarting  Stage = "tool_execution_starting"
	StageToolCompleted Stage = "tool_execution_completed"
	StageAnswering     Stage = "answering"
	StageComplete      Stage = "complete"
)

// StreamChunk is one progress event. Exactly one of the payload fields is
// set, mirroring a oneof.
type StreamChunk struct {
	Stage     Stage           `json:"stage,omitempty"`
	Timestamp int64           `json:"timestamp"`
	Message   string          `json:"message,omitempty"`
	Answer    string          `json:"answer,omitempty"`
	ToolCall  *ToolCallRecord `json:"toolCall,omitempty"`
	Error     string          `json:"error,omitempty"`
}

// ProgressReporter receives progress events during a run.
type ProgressReporter interface {
	Send(event *StreamChunk) error
}

// NoOpProgressReporter drops every event.
type NoOpProgressReporter struct{}

func (r *NoOpProgressReporter) Send(*StreamChunk) error { return nil }

// GrpcProgressReporter forwards events onto a gRPC server stream.
type GrpcProgressReporter struct {
	Stream grpc.ServerStreamingServer[StreamChunk]
}

func (r *GrpcProgressReporter) Send(event *StreamChunk) error {
	return r.Stream.Send(event)
}

func newProgressUpdate(stage Stage, message string) *StreamChunk {
	return &StreamChunk{
		Stage:     stage,
		Timestamp: time.Now().UnixMilli(),
		Message:   message,
	}
}

func newAnswerChunk(answer string) *StreamChunk {
	return &StreamChunk{Timestamp: time.Now().UnixMilli(), Answer: answer}
}

func newToolChunk(record *ToolCallRecord) *StreamChunk {
	return &StreamChunk{Timestamp: time.Now().UnixMilli(), ToolCall: record}
}

func newStreamError(message string) *StreamChunk {
	return &StreamChunk{Timestamp: time.Now().UnixMilli(), Error: message}
}
