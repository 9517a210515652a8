package docs

import "fmt"

// DocumentMetadata represents metadata about a Google Drive file
type DocumentMetadata struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	MimeType     string `json:"mimeType"`
	CreatedTime  string `json:"createdTime"`
	ModifiedTime string `json:"modifiedTime"`
	Size         int64  `json:"size,omitempty"`
	Owners       []User `json:"owners,omitempty"`
}

// User represents a Google Drive user
type User struct {
	DisplayName  string `json:"displayName"`
	EmailAddress string `json:"emailAddress"`
}

// DocumentSummary is the payload returned to callers after creating or
// reading a document.
type DocumentSummary struct {
	DocumentID string `json:"documentId"`
	Title      string `json:"title"`
	URL        string `json:"url"`
	Content    string `json:"content,omitempty"`
}

// DocumentURL returns the browser URL for a document ID.
func DocumentURL(documentID string) string {
	return fmt.Sprintf("https://docs.google.com/document/d/%s", documentID)
}
