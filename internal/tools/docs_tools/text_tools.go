package docs_tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"golang.org/x/oauth2"

	"github.com/teemow/agentdocs/internal/auth"
	"github.com/teemow/agentdocs/internal/docs"
	"github.com/teemow/agentdocs/internal/server"
	"github.com/teemow/agentdocs/internal/tools/common"
)

func handleInsertText(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	documentID, ok := args["documentId"].(string)
	if !ok || documentID == "" {
		return mcp.NewToolResultError("documentId is required"), nil
	}
	text, ok := args["text"].(string)
	if !ok || text == "" {
		return mcp.NewToolResultError("text is required"), nil
	}
	location, ok := int64Arg(args, "location")
	if !ok || location < 1 {
		return mcp.NewToolResultError("location must be a positive number"), nil
	}

	op := auth.Operation{
		Name:           "insert_text",
		FailureSummary: "Error inserting text",
		Call: func(ctx context.Context, token *oauth2.Token) (*auth.Result, error) {
			client, err := docs.NewClientForToken(ctx, token)
			if err != nil {
				return nil, err
			}
			if _, err := client.InsertText(ctx, documentID, text, location); err != nil {
				return nil, err
			}
			return &auth.Result{Summary: "Text inserted successfully"}, nil
		},
	}

	agentID := common.AgentFromRequest(ctx, args)
	return RenderOutcome(sc.Gateway().Execute(ctx, agentID, op)), nil
}

func handleReplaceAllText(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	documentID, ok := args["documentId"].(string)
	if !ok || documentID == "" {
		return mcp.NewToolResultError("documentId is required"), nil
	}
	searchText, ok := args["searchText"].(string)
	if !ok || searchText == "" {
		return mcp.NewToolResultError("searchText is required"), nil
	}
	replaceText, ok := args["replaceText"].(string)
	if !ok {
		return mcp.NewToolResultError("replaceText is required"), nil
	}
	matchCase, _ := boolArg(args, "matchCase")

	op := auth.Operation{
		Name:           "replace_all_text",
		FailureSummary: "Error replacing text",
		Call: func(ctx context.Context, token *oauth2.Token) (*auth.Result, error) {
			client, err := docs.NewClientForToken(ctx, token)
			if err != nil {
				return nil, err
			}
			if _, err := client.ReplaceAllText(ctx, documentID, searchText, replaceText, matchCase); err != nil {
				return nil, err
			}
			return &auth.Result{Summary: "Text replaced successfully"}, nil
		},
	}

	agentID := common.AgentFromRequest(ctx, args)
	return RenderOutcome(sc.Gateway().Execute(ctx, agentID, op)), nil
}

func handleUpdateTextStyle(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	documentID, ok := args["documentId"].(string)
	if !ok || documentID == "" {
		return mcp.NewToolResultError("documentId is required"), nil
	}
	startIndex, ok := int64Arg(args, "startIndex")
	if !ok || startIndex < 1 {
		return mcp.NewToolResultError("startIndex must be a positive number"), nil
	}
	endIndex, ok := int64Arg(args, "endIndex")
	if !ok || endIndex <= startIndex {
		return mcp.NewToolResultError("endIndex must be greater than startIndex"), nil
	}

	var style docs.TextStyleOptions
	if v, ok := boolArg(args, "bold"); ok {
		style.Bold = &v
	}
	if v, ok := boolArg(args, "italic"); ok {
		style.Italic = &v
	}
	if v, ok := boolArg(args, "underline"); ok {
		style.Underline = &v
	}
	if v, ok := boolArg(args, "strikethrough"); ok {
		style.Strikethrough = &v
	}
	if v, ok := float64Arg(args, "fontSize"); ok {
		style.FontSize = &v
	}
	if style.IsZero() {
		return mcp.NewToolResultError("at least one style option is required"), nil
	}

	op := auth.Operation{
		Name:           "update_text_style",
		FailureSummary: "Error updating text style",
		Call: func(ctx context.Context, token *oauth2.Token) (*auth.Result, error) {
			client, err := docs.NewClientForToken(ctx, token)
			if err != nil {
				return nil, err
			}
			if _, err := client.UpdateTextStyle(ctx, documentID, startIndex, endIndex, style); err != nil {
				return nil, err
			}
			return &auth.Result{Summary: "Text style updated successfully"}, nil
		},
	}

	agentID := common.AgentFromRequest(ctx, args)
	return RenderOutcome(sc.Gateway().Execute(ctx, agentID, op)), nil
}
