package docs_tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/teemow/agentdocs/internal/server"
	"github.com/teemow/agentdocs/internal/tools/common"
)

// RegisterDocsTools registers all Google Docs editing tools with the MCP server
func RegisterDocsTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	agentOpt := mcp.WithString("agent",
		mcp.Description("Agent identity to act for (defaults to the session)"),
	)

	createDocumentTool := mcp.NewTool("docs_create_document",
		mcp.WithDescription("Creates a new Google Doc"),
		mcp.WithString("title",
			mcp.Required(),
			mcp.Description("The title of the document"),
		),
		mcp.WithString("content",
			mcp.Description("Initial content of the document"),
		),
		agentOpt,
	)
	addTool(s, sc, createDocumentTool, "create", handleCreateDocument)

	getDocumentTool := mcp.NewTool("docs_get_document",
		mcp.WithDescription("Retrieves a Google Doc by ID"),
		mcp.WithString("documentId",
			mcp.Required(),
			mcp.Description("The ID of the document to retrieve"),
		),
		agentOpt,
	)
	addTool(s, sc, getDocumentTool, "get", handleGetDocument)

	getMetadataTool := mcp.NewTool("docs_get_document_metadata",
		mcp.WithDescription("Gets metadata about a Google Doc or Drive file"),
		mcp.WithString("documentId",
			mcp.Required(),
			mcp.Description("The ID of the Google Doc or Drive file"),
		),
		agentOpt,
	)
	addTool(s, sc, getMetadataTool, "get_metadata", handleGetMetadata)

	insertTableTool := mcp.NewTool("docs_insert_table",
		mcp.WithDescription("Inserts a table into a Google Doc"),
		mcp.WithString("documentId",
			mcp.Required(),
			mcp.Description("The ID of the document to insert the table into"),
		),
		mcp.WithNumber("rows",
			mcp.Required(),
			mcp.Description("Number of rows in the table"),
		),
		mcp.WithNumber("columns",
			mcp.Required(),
			mcp.Description("Number of columns in the table"),
		),
		mcp.WithNumber("location",
			mcp.Description("Body index where to insert the table (defaults to 1)"),
		),
		agentOpt,
	)
	addTool(s, sc, insertTableTool, "insert_table", handleInsertTable)

	insertTableRowTool := mcp.NewTool("docs_insert_table_row",
		mcp.WithDescription("Inserts a row into a table in a Google Doc"),
		mcp.WithString("documentId",
			mcp.Required(),
			mcp.Description("The ID of the document containing the table"),
		),
		mcp.WithNumber("tableIndex",
			mcp.Required(),
			mcp.Description("The body index where the table starts"),
		),
		mcp.WithNumber("rowIndex",
			mcp.Required(),
			mcp.Description("The row index where to insert the new row"),
		),
		mcp.WithBoolean("insertBelow",
			mcp.Description("Whether to insert below the specified row"),
		),
		agentOpt,
	)
	addTool(s, sc, insertTableRowTool, "insert_table_row", handleInsertTableRow)

	insertTableColumnTool := mcp.NewTool("docs_insert_table_column",
		mcp.WithDescription("Inserts a column into a table in a Google Doc"),
		mcp.WithString("documentId",
			mcp.Required(),
			mcp.Description("The ID of the document containing the table"),
		),
		mcp.WithNumber("tableIndex",
			mcp.Required(),
			mcp.Description("The body index where the table starts"),
		),
		mcp.WithNumber("columnIndex",
			mcp.Required(),
			mcp.Description("The column index where to insert the new column"),
		),
		mcp.WithBoolean("insertRight",
			mcp.Description("Whether to insert to the right of the specified column"),
		),
		agentOpt,
	)
	addTool(s, sc, insertTableColumnTool, "insert_table_column", handleInsertTableColumn)

	deleteTableRowTool := mcp.NewTool("docs_delete_table_row",
		mcp.WithDescription("Deletes a row from a table in a Google Doc"),
		mcp.WithString("documentId",
			mcp.Required(),
			mcp.Description("The ID of the document containing the table"),
		),
		mcp.WithNumber("tableIndex",
			mcp.Required(),
			mcp.Description("The body index where the table starts"),
		),
		mcp.WithNumber("rowIndex",
			mcp.Required(),
			mcp.Description("The index of the row to delete"),
		),
		agentOpt,
	)
	addTool(s, sc, deleteTableRowTool, "delete_table_row", handleDeleteTableRow)

	insertTextTool := mcp.NewTool("docs_insert_text",
		mcp.WithDescription("Inserts text into a Google Doc"),
		mcp.WithString("documentId",
			mcp.Required(),
			mcp.Description("The ID of the document to update"),
		),
		mcp.WithString("text",
			mcp.Required(),
			mcp.Description("The text to insert"),
		),
		mcp.WithNumber("location",
			mcp.Required(),
			mcp.Description("The body index where to insert the text"),
		),
		agentOpt,
	)
	addTool(s, sc, insertTextTool, "insert_text", handleInsertText)

	replaceAllTextTool := mcp.NewTool("docs_replace_all_text",
		mcp.WithDescription("Replaces all occurrences of text in a Google Doc"),
		mcp.WithString("documentId",
			mcp.Required(),
			mcp.Description("The ID of the document to update"),
		),
		mcp.WithString("searchText",
			mcp.Required(),
			mcp.Description("The text to search for and replace"),
		),
		mcp.WithString("replaceText",
			mcp.Required(),
			mcp.Description("The text to replace matches with"),
		),
		mcp.WithBoolean("matchCase",
			mcp.Description("Whether to match case when searching"),
		),
		agentOpt,
	)
	addTool(s, sc, replaceAllTextTool, "replace_all_text", handleReplaceAllText)

	updateTextStyleTool := mcp.NewTool("docs_update_text_style",
		mcp.WithDescription("Updates the style of text in a specific range"),
		mcp.WithString("documentId",
			mcp.Required(),
			mcp.Description("The ID of the document to update"),
		),
		mcp.WithNumber("startIndex",
			mcp.Required(),
			mcp.Description("The starting index of the text range"),
		),
		mcp.WithNumber("endIndex",
			mcp.Required(),
			mcp.Description("The ending index of the text range"),
		),
		mcp.WithBoolean("bold", mcp.Description("Apply or clear bold")),
		mcp.WithBoolean("italic", mcp.Description("Apply or clear italic")),
		mcp.WithBoolean("underline", mcp.Description("Apply or clear underline")),
		mcp.WithBoolean("strikethrough", mcp.Description("Apply or clear strikethrough")),
		mcp.WithNumber("fontSize", mcp.Description("Font size in points")),
		agentOpt,
	)
	addTool(s, sc, updateTextStyleTool, "update_text_style", handleUpdateTextStyle)

	return nil
}

type toolHandler func(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error)

func addTool(s *mcpserver.MCPServer, sc *server.ServerContext, tool mcp.Tool, operation string, handler toolHandler) {
	s.AddTool(tool, common.InstrumentedToolHandler(tool.Name, operation, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handler(ctx, request, sc)
		},
	))
}

// int64Arg reads a numeric argument. JSON numbers arrive as float64.
func int64Arg(args map[string]interface{}, key string) (int64, bool) {
	switch v := args[key].(type) {
	case float64:
		return int64(v), true
	case int:
		return int64(v), true
	case int64:
		return v, true
	default:
		return 0, false
	}
}

func boolArg(args map[string]interface{}, key string) (bool, bool) {
	v, ok := args[key].(bool)
	return v, ok
}

func float64Arg(args map[string]interface{}, key string) (float64, bool) {
	switch v := args[key].(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	default:
		return 0, false
	}
}
