package common

import (
	"context"

	mcpserver "github.com/mark3labs/mcp-go/server"
)

// AgentFromRequest resolves the agent identity a tool invocation acts on
// behalf of. The identity is an opaque key into the credential store; two
// invocations with the same identity share credentials.
//
// Priority order:
//  1. Explicit "agent" argument in the request
//  2. MCP client session ID from context
//  3. "default"
func AgentFromRequest(ctx context.Context, args map[string]interface{}) string {
	if agentVal, ok := args["agent"].(string); ok && agentVal != "" {
		return agentVal
	}

	if session := mcpserver.ClientSessionFromContext(ctx); session != nil && session.SessionID() != "" {
		return session.SessionID()
	}

	return "default"
}
