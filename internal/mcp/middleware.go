package mcp

import (
	"context"
	"time"

	"github.com/ganot/nirapod/internal/viewstate"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// Panel labels MCP timings in the metrics registry.
const Panel = "mcp"

// timingMiddleware records every tool call with the tool name as the operation.
func timingMiddleware(rec viewstate.Recorder) sdkmcp.Middleware {
	return func(next sdkmcp.MethodHandler) sdkmcp.MethodHandler {
		return func(ctx context.Context, method string, req sdkmcp.Request) (sdkmcp.Result, error) {
			if rec == nil || method != "tools/call" {
				return next(ctx, method, req)
			}
			op := toolName(req)
			if op == "" {
				op = method
			}
			start := time.Now()
			result, err := next(ctx, method, req)
			success := err == nil
			if res, ok := result.(*sdkmcp.CallToolResult); ok && res != nil && res.IsError {
				success = false
			}
			rec.Observe(Panel, op, success, time.Since(start))
			return result, err
		}
	}
}
