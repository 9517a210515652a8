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

func handleInsertTable(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	documentID, ok := args["documentId"].(string)
	if !ok || documentID == "" {
		return mcp.NewToolResultError("documentId is required"), nil
	}
	rows, ok := int64Arg(args, "rows")
	if !ok || rows < 1 {
		return mcp.NewToolResultError("rows must be a positive number"), nil
	}
	columns, ok := int64Arg(args, "columns")
	if !ok || columns < 1 {
		return mcp.NewToolResultError("columns must be a positive number"), nil
	}
	location, ok := int64Arg(args, "location")
	if !ok {
		location = 1
	}

	op := auth.Operation{
		Name:           "insert_table",
		FailureSummary: "Error inserting table",
		Call: func(ctx context.Context, token *oauth2.Token) (*auth.Result, error) {
			client, err := docs.NewClientForToken(ctx, token)
			if err != nil {
				return nil, err
			}
			if _, err := client.InsertTable(ctx, documentID, rows, columns, location); err != nil {
				return nil, err
			}
			return &auth.Result{Summary: "Table inserted successfully"}, nil
		},
	}

	agentID := common.AgentFromRequest(ctx, args)
	return RenderOutcome(sc.Gateway().Execute(ctx, agentID, op)), nil
}

func handleInsertTableRow(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	documentID, ok := args["documentId"].(string)
	if !ok || documentID == "" {
		return mcp.NewToolResultError("documentId is required"), nil
	}
	tableIndex, ok := int64Arg(args, "tableIndex")
	if !ok {
		return mcp.NewToolResultError("tableIndex is required"), nil
	}
	rowIndex, ok := int64Arg(args, "rowIndex")
	if !ok || rowIndex < 0 {
		return mcp.NewToolResultError("rowIndex must be a non-negative number"), nil
	}
	insertBelow, _ := boolArg(args, "insertBelow")

	op := auth.Operation{
		Name:           "insert_table_row",
		FailureSummary: "Error inserting table row",
		Call: func(ctx context.Context, token *oauth2.Token) (*auth.Result, error) {
			client, err := docs.NewClientForToken(ctx, token)
			if err != nil {
				return nil, err
			}
			if _, err := client.InsertTableRow(ctx, documentID, tableIndex, rowIndex, insertBelow); err != nil {
				return nil, err
			}
			return &auth.Result{Summary: "Table row inserted successfully"}, nil
		},
	}

	agentID := common.AgentFromRequest(ctx, args)
	return RenderOutcome(sc.Gateway().Execute(ctx, agentID, op)), nil
}

func handleInsertTableColumn(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	documentID, ok := args["documentId"].(string)
	if !ok || documentID == "" {
		return mcp.NewToolResultError("documentId is required"), nil
	}
	tableIndex, ok := int64Arg(args, "tableIndex")
	if !ok {
		return mcp.NewToolResultError("tableIndex is required"), nil
	}
	columnIndex, ok := int64Arg(args, "columnIndex")
	if !ok || columnIndex < 0 {
		return mcp.NewToolResultError("columnIndex must be a non-negative number"), nil
	}
	insertRight, _ := boolArg(args, "insertRight")

	op := auth.Operation{
		Name:           "insert_table_column",
		FailureSummary: "Error inserting table column",
		Call: func(ctx context.Context, token *oauth2.Token) (*auth.Result, error) {
			client, err := docs.NewClientForToken(ctx, token)
			if err != nil {
				return nil, err
			}
			if _, err := client.InsertTableColumn(ctx, documentID, tableIndex, columnIndex, insertRight); err != nil {
				return nil, err
			}
			return &auth.Result{Summary: "Table column inserted successfully"}, nil
		},
	}

	agentID := common.AgentFromRequest(ctx, args)
	return RenderOutcome(sc.Gateway().Execute(ctx, agentID, op)), nil
}

func handleDeleteTableRow(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	documentID, ok := args["documentId"].(string)
	if !ok || documentID == "" {
		return mcp.NewToolResultError("documentId is required"), nil
	}
	tableIndex, ok := int64Arg(args, "tableIndex")
	if !ok {
		return mcp.NewToolResultError("tableIndex is required"), nil
	}
	rowIndex, ok := int64Arg(args, "rowIndex")
	if !ok || rowIndex < 0 {
		return mcp.NewToolResultError("rowIndex must be a non-negative number"), nil
	}

	op := auth.Operation{
		Name:           "delete_table_row",
		FailureSummary: "Error deleting table row",
		Call: func(ctx context.Context, token *oauth2.Token) (*auth.Result, error) {
			client, err := docs.NewClientForToken(ctx, token)
			if err != nil {
				return nil, err
			}
			if _, err := client.DeleteTableRow(ctx, documentID, tableIndex, rowIndex); err != nil {
				return nil, err
			}
			return &auth.Result{Summary: "Table row deleted successfully"}, nil
		},
	}

	agentID := common.AgentFromRequest(ctx, args)
	return RenderOutcome(sc.Gateway().Execute(ctx, agentID, op)), nil
}
