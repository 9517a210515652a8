package docs_tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"golang.org/x/oauth2"

	"github.com/teemow/agentdocs/internal/auth"
	"github.com/teemow/agentdocs/internal/docs"
	"github.com/teemow/agentdocs/internal/server"
	"github.com/teemow/agentdocs/internal/tools/common"
)

func handleCreateDocument(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	title, ok := args["title"].(string)
	if !ok || title == "" {
		return mcp.NewToolResultError("title is required"), nil
	}
	content, _ := args["content"].(string)

	op := auth.Operation{
		Name:           "create_document",
		FailureSummary: "Error creating document",
		Call: func(ctx context.Context, token *oauth2.Token) (*auth.Result, error) {
			client, err := docs.NewClientForToken(ctx, token)
			if err != nil {
				return nil, err
			}
			doc, err := client.CreateDocument(ctx, title, content)
			if err != nil {
				return nil, err
			}
			return &auth.Result{
				Summary: fmt.Sprintf("Created document: %s", doc.Title),
				Payload: docs.DocumentSummary{
					DocumentID: doc.DocumentId,
					Title:      doc.Title,
					URL:        docs.DocumentURL(doc.DocumentId),
				},
			}, nil
		},
	}

	agentID := common.AgentFromRequest(ctx, args)
	return RenderOutcome(sc.Gateway().Execute(ctx, agentID, op)), nil
}

func handleGetDocument(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	documentID, ok := args["documentId"].(string)
	if !ok || documentID == "" {
		return mcp.NewToolResultError("documentId is required"), nil
	}

	op := auth.Operation{
		Name:           "get_document",
		FailureSummary: "Error retrieving document",
		Call: func(ctx context.Context, token *oauth2.Token) (*auth.Result, error) {
			client, err := docs.NewClientForToken(ctx, token)
			if err != nil {
				return nil, err
			}
			doc, err := client.GetDocument(ctx, documentID)
			if err != nil {
				return nil, err
			}
			content, err := docs.DocumentToPlainText(doc)
			if err != nil {
				return nil, err
			}
			return &auth.Result{
				Summary: fmt.Sprintf("Retrieved document: %s", doc.Title),
				Payload: docs.DocumentSummary{
					DocumentID: doc.DocumentId,
					Title:      doc.Title,
					URL:        docs.DocumentURL(doc.DocumentId),
					Content:    content,
				},
			}, nil
		},
	}

	agentID := common.AgentFromRequest(ctx, args)
	return RenderOutcome(sc.Gateway().Execute(ctx, agentID, op)), nil
}

func handleGetMetadata(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	documentID, ok := args["documentId"].(string)
	if !ok || documentID == "" {
		return mcp.NewToolResultError("documentId is required"), nil
	}

	op := auth.Operation{
		Name:           "get_document_metadata",
		FailureSummary: "Error retrieving document metadata",
		Call: func(ctx context.Context, token *oauth2.Token) (*auth.Result, error) {
			client, err := docs.NewClientForToken(ctx, token)
			if err != nil {
				return nil, err
			}
			metadata, err := client.GetFileMetadata(ctx, documentID)
			if err != nil {
				return nil, err
			}
			return &auth.Result{
				Summary: fmt.Sprintf("Retrieved metadata: %s", metadata.Name),
				Payload: metadata,
			}, nil
		},
	}

	agentID := common.AgentFromRequest(ctx, args)
	return RenderOutcome(sc.Gateway().Execute(ctx, agentID, op)), nil
}
