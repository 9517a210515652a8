package docs

import (
	"context"
	"fmt"
	"net/http"

	"golang.org/x/oauth2"
	docs "google.golang.org/api/docs/v1"
	drive "google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
)

// Client wraps the Google Docs and Drive API services for a single
// credential. Clients are cheap to create and are built per call.
type Client struct {
	docsService  *docs.Service
	driveService *drive.Service
}

// NewClientForToken creates a Docs client authenticated with the given OAuth
// token. The token is used as-is; no refresh is attempted.
func NewClientForToken(ctx context.Context, token *oauth2.Token) (*Client, error) {
	if token == nil {
		return nil, fmt.Errorf("token cannot be nil")
	}

	httpClient := oauth2.NewClient(ctx, oauth2.StaticTokenSource(token))

	// Force HTTP/1.1 by disabling HTTP/2
	if transport, ok := httpClient.Transport.(*oauth2.Transport); ok {
		transport.Base = &http.Transport{
			ForceAttemptHTTP2: false,
		}
	}

	docsService, err := docs.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("failed to create Docs service: %w", err)
	}

	driveService, err := drive.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("failed to create Drive service: %w", err)
	}

	return &Client{
		docsService:  docsService,
		driveService: driveService,
	}, nil
}

// CreateDocument creates a new Google Doc with the given title. Initial
// content, when non-empty, is sent as the document body in the same request.
func (c *Client) CreateDocument(ctx context.Context, title, content string) (*docs.Document, error) {
	if title == "" {
		return nil, fmt.Errorf("title is required")
	}

	doc := &docs.Document{Title: title}
	if content != "" {
		doc.Body = &docs.Body{
			Content: []*docs.StructuralElement{
				{
					Paragraph: &docs.Paragraph{
						Elements: []*docs.ParagraphElement{
							{TextRun: &docs.TextRun{Content: content}},
						},
					},
				},
			},
		}
	}

	created, err := c.docsService.Documents.Create(doc).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to create document: %w", err)
	}

	return created, nil
}

// GetDocument retrieves a Google Doc's content by document ID.
// This method automatically fetches all tabs to support documents with
// multiple tabs (introduced Oct 2024).
func (c *Client) GetDocument(ctx context.Context, documentID string) (*docs.Document, error) {
	if documentID == "" {
		return nil, fmt.Errorf("documentID is required")
	}

	doc, err := c.docsService.Documents.Get(documentID).
		IncludeTabsContent(true).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to get document %s: %w", documentID, err)
	}

	return doc, nil
}

// BatchUpdate applies the given requests to a document in order.
func (c *Client) BatchUpdate(ctx context.Context, documentID string, requests []*docs.Request) (*docs.BatchUpdateDocumentResponse, error) {
	if documentID == "" {
		return nil, fmt.Errorf("documentID is required")
	}
	if len(requests) == 0 {
		return nil, fmt.Errorf("at least one request is required")
	}

	resp, err := c.docsService.Documents.BatchUpdate(documentID, &docs.BatchUpdateDocumentRequest{
		Requests: requests,
	}).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to update document %s: %w", documentID, err)
	}

	return resp, nil
}

// InsertTable inserts a rows x columns table at the given body index.
func (c *Client) InsertTable(ctx context.Context, documentID string, rows, columns, index int64) (*docs.BatchUpdateDocumentResponse, error) {
	return c.BatchUpdate(ctx, documentID, []*docs.Request{InsertTableRequest(rows, columns, index)})
}

// InsertTableRow inserts a row relative to the cell at rowIndex in the table
// that starts at tableStartIndex.
func (c *Client) InsertTableRow(ctx context.Context, documentID string, tableStartIndex, rowIndex int64, insertBelow bool) (*docs.BatchUpdateDocumentResponse, error) {
	return c.BatchUpdate(ctx, documentID, []*docs.Request{InsertTableRowRequest(tableStartIndex, rowIndex, insertBelow)})
}

// InsertTableColumn inserts a column relative to the cell at columnIndex in
// the table that starts at tableStartIndex.
func (c *Client) InsertTableColumn(ctx context.Context, documentID string, tableStartIndex, columnIndex int64, insertRight bool) (*docs.BatchUpdateDocumentResponse, error) {
	return c.BatchUpdate(ctx, documentID, []*docs.Request{InsertTableColumnRequest(tableStartIndex, columnIndex, insertRight)})
}

// DeleteTableRow deletes the row containing the cell at rowIndex in the table
// that starts at tableStartIndex.
func (c *Client) DeleteTableRow(ctx context.Context, documentID string, tableStartIndex, rowIndex int64) (*docs.BatchUpdateDocumentResponse, error) {
	return c.BatchUpdate(ctx, documentID, []*docs.Request{DeleteTableRowRequest(tableStartIndex, rowIndex)})
}

// InsertText inserts text at the given body index.
func (c *Client) InsertText(ctx context.Context, documentID, text string, index int64) (*docs.BatchUpdateDocumentResponse, error) {
	return c.BatchUpdate(ctx, documentID, []*docs.Request{InsertTextRequest(text, index)})
}

// ReplaceAllText replaces every occurrence of findText with replaceText.
func (c *Client) ReplaceAllText(ctx context.Context, documentID, findText, replaceText string, matchCase bool) (*docs.BatchUpdateDocumentResponse, error) {
	return c.BatchUpdate(ctx, documentID, []*docs.Request{ReplaceAllTextRequest(findText, replaceText, matchCase)})
}

// UpdateTextStyle applies the given style options to the [startIndex, endIndex)
// range. At least one style option must be set.
func (c *Client) UpdateTextStyle(ctx context.Context, documentID string, startIndex, endIndex int64, style TextStyleOptions) (*docs.BatchUpdateDocumentResponse, error) {
	req, err := UpdateTextStyleRequest(startIndex, endIndex, style)
	if err != nil {
		return nil, err
	}
	return c.BatchUpdate(ctx, documentID, []*docs.Request{req})
}

// GetFileMetadata retrieves metadata for any Google Drive file.
func (c *Client) GetFileMetadata(ctx context.Context, fileID string) (*DocumentMetadata, error) {
	if fileID == "" {
		return nil, fmt.Errorf("fileID is required")
	}

	file, err := c.driveService.Files.Get(fileID).
		Fields("id, name, mimeType, createdTime, modifiedTime, size, owners").
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to get file metadata %s: %w", fileID, err)
	}

	metadata := &DocumentMetadata{
		ID:           file.Id,
		Name:         file.Name,
		MimeType:     file.MimeType,
		CreatedTime:  file.CreatedTime,
		ModifiedTime: file.ModifiedTime,
		Size:         file.Size,
	}

	for _, owner := range file.Owners {
		metadata.Owners = append(metadata.Owners, User{
			DisplayName:  owner.DisplayName,
			EmailAddress: owner.EmailAddress,
		})
	}

	return metadata, nil
}
