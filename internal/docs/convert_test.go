package docs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	docs "google.golang.org/api/docs/v1"
)

func paragraph(content string) *docs.StructuralElement {
	return &docs.StructuralElement{
		Paragraph: &docs.Paragraph{
			Elements: []*docs.ParagraphElement{
				{TextRun: &docs.TextRun{Content: content}},
			},
		},
	}
}

func TestDocumentToPlainTextNilDocument(t *testing.T) {
	_, err := DocumentToPlainText(nil)
	require.Error(t, err)
}

func TestDocumentToPlainTextBody(t *testing.T) {
	doc := &docs.Document{
		Body: &docs.Body{
			Content: []*docs.StructuralElement{
				paragraph("Hello\n"),
				paragraph("World\n"),
			},
		},
	}

	text, err := DocumentToPlainText(doc)
	require.NoError(t, err)
	assert.Equal(t, "Hello\nWorld\n", text)
}

func TestDocumentToPlainTextTable(t *testing.T) {
	doc := &docs.Document{
		Body: &docs.Body{
			Content: []*docs.StructuralElement{
				{
					Table: &docs.Table{
						TableRows: []*docs.TableRow{
							{
								TableCells: []*docs.TableCell{
									{Content: []*docs.StructuralElement{paragraph("a")}},
									{Content: []*docs.StructuralElement{paragraph("b")}},
								},
							},
						},
					},
				},
			},
		},
	}

	text, err := DocumentToPlainText(doc)
	require.NoError(t, err)
	assert.Equal(t, "a\tb\t\n", text)
}

func TestDocumentToPlainTextTabs(t *testing.T) {
	doc := &docs.Document{
		Tabs: []*docs.Tab{
			{
				TabProperties: &docs.TabProperties{Title: "Overview"},
				DocumentTab: &docs.DocumentTab{
					Body: &docs.Body{
						Content: []*docs.StructuralElement{paragraph("intro\n")},
					},
				},
				ChildTabs: []*docs.Tab{
					{
						TabProperties: &docs.TabProperties{Title: "Details"},
						DocumentTab: &docs.DocumentTab{
							Body: &docs.Body{
								Content: []*docs.StructuralElement{paragraph("more\n")},
							},
						},
					},
				},
			},
		},
	}

	text, err := DocumentToPlainText(doc)
	require.NoError(t, err)
	assert.Contains(t, text, "=== Overview ===")
	assert.Contains(t, text, "intro")
	assert.Contains(t, text, "--- Details ---")
	assert.Contains(t, text, "more")
}

func TestDocumentURL(t *testing.T) {
	assert.Equal(t, "https://docs.google.com/document/d/abc123", DocumentURL("abc123"))
}
