// Package docs provides functionality for interacting with the Google Docs API.
//
// This package includes a per-token client for creating and retrieving
// documents, applying batchUpdate edit requests (tables, text insertion,
// find/replace, text styling), and reading Drive file metadata.
//
// The package handles:
//   - Document creation and retrieval via the Google Docs API
//   - Structural edits through typed batchUpdate request builders
//   - Document metadata retrieval via the Google Drive API
//   - Document content extraction to plain text
//
// Example usage:
//
//	client, err := docs.NewClientForToken(ctx, token)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	doc, err := client.GetDocument(ctx, "1ABC123xyz")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	text, err := docs.DocumentToPlainText(doc)
//	if err != nil {
//	    log.Fatal(err)
//	}
package docs
