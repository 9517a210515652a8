package docs_tools

import (
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/teemow/agentdocs/internal/auth"
)

// RenderOutcome converts a gateway outcome into a tool result.
//
// An authorization requirement is rendered as ordinary text, not as a tool
// error: the agent did nothing wrong, it just has to send its user through
// the consent flow first.
func RenderOutcome(outcome auth.Outcome) *mcp.CallToolResult {
	switch outcome.Kind {
	case auth.OutcomeAuthorizationRequired:
		return mcp.NewToolResultText(fmt.Sprintf(
			"Authentication required. Please authenticate with Google Docs by visiting:\n%s\n\nThen retry the operation.",
			outcome.ChallengeURL,
		))

	case auth.OutcomeSuccess:
		if outcome.Payload == nil {
			return mcp.NewToolResultText(outcome.Summary)
		}
		jsonBytes, err := json.MarshalIndent(outcome.Payload, "", "  ")
		if err != nil {
			return mcp.NewToolResultText(outcome.Summary)
		}
		return mcp.NewToolResultText(fmt.Sprintf("%s\n%s", outcome.Summary, string(jsonBytes)))

	default:
		return mcp.NewToolResultError(outcome.Summary)
	}
}
