package tools

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/SaiNageswarS/go-api-boot/logger"
	"github.com/mark3labs/mcp-go/client"
	"github.com/mark3labs/mcp-go/mcp"
	"go.uber.org/zap"
)

// Executor invokes a named tool against the tool-execution backend. It never
// returns a Go error: every failure mode is folded into the tagged Result so
// one bad call cannot abort an orchestration round.
type Executor interface {
	Execute(ctx context.Context, name string, params map[string]any) Result
}

// MCPExecutor executes tools against an MCP server over streamable HTTP.
type MCPExecutor struct {
	client  *client.Client
	timeout time.Duration
}

// NewMCPExecutor connects to the MCP server at baseURL and performs the
// initialize handshake. timeout bounds each individual tool call.
func NewMCPExecutor(ctx context.Context, baseURL string, timeout time.Duration) (*MCPExecutor, error) {
	c, err := client.NewStreamableHttpClient(baseURL)
	if err != nil {
		return nil, err
	}

	initReq := mcp.InitializeRequest{}
	initReq.Params.ProtocolVersion = mcp.LATEST_PROTOCOL_VERSION
	initReq.Params.ClientInfo = mcp.Implementation{
		Name:    "travel-agent",
		Version: "1.0.0",
	}
	if _, err := c.Initialize(ctx, initReq); err != nil {
		return nil, err
	}

	return &MCPExecutor{client: c, timeout: timeout}, nil
}

func (e *MCPExecutor) Close() error {
	return e.client.Close()
}

func (e *MCPExecutor) Execute(ctx context.Context, name string, params map[string]any) Result {
	callCtx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	req := mcp.CallToolRequest{}
	req.Params.Name = name
	req.Params.Arguments = params

	res, err := e.client.CallTool(callCtx, req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || callCtx.Err() != nil {
			logger.Get().Warn("tool call timed out", zap.String("tool", name))
			return Fail(ErrTimeout, "tool call timed out")
		}
		logger.Error("tool call failed", zap.String("tool", name), zap.Error(err))
		return Fail(ErrBackend, err.Error())
	}

	text := firstText(res)
	if res.IsError {
		return Fail(ErrBackend, text)
	}
	if text == "" {
		return Fail(ErrMalformed, "empty tool result")
	}

	var value map[string]any
	if err := json.Unmarshal([]byte(text), &value); err != nil {
		return Fail(ErrMalformed, "tool result is not a JSON object: "+err.Error())
	}
	return Ok(value)
}

func firstText(res *mcp.CallToolResult) string {
	for _, content := range res.Content {
		if tc, ok := content.(mcp.TextContent); ok {
			return tc.Text
		}
	}
	return ""
}
