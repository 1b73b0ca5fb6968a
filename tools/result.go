package tools

// ErrorKind classifies a failed tool invocation at the boundary where the
// backend's response is first parsed, so the rest of the pipeline never
// branches on untyped shapes.
type ErrorKind string

const (
	ErrBackend   ErrorKind = "backend_error"
	ErrTimeout   ErrorKind = "timeout"
	ErrMalformed ErrorKind = "malformed_result"
)

// Result is the tagged outcome of one tool invocation: either OK with a
// decoded value, or a failure with a kind and message. Failures are data,
// not errors; the orchestration loop records them and moves on.
type Result struct {
	OK      bool
	Value   map[string]any
	Kind    ErrorKind
	Message string
}

func Ok(value map[string]any) Result {
	return Result{OK: true, Value: value}
}

func Fail(kind ErrorKind, message string) Result {
	return Result{OK: false, Kind: kind, Message: message}
}

// Payload renders the result for the tool-call trace: the decoded value on
// success, a small error object otherwise.
func (r Result) Payload() map[string]any {
	if r.OK {
		return r.Value
	}
	return map[string]any{
		"error":   string(r.Kind),
		"message": r.Message,
	}
}
