package docs

import (
	"fmt"
	"strings"

	docs "google.golang.org/api/docs/v1"
)

// DocumentToPlainText extracts plain text from a Google Doc.
// Supports both legacy documents (with doc.Body) and tabbed documents
// (with doc.Tabs).
func DocumentToPlainText(doc *docs.Document) (string, error) {
	if doc == nil {
		return "", fmt.Errorf("document is nil")
	}

	var text strings.Builder

	if len(doc.Tabs) > 0 {
		for tabIndex, tab := range doc.Tabs {
			if tab.TabProperties != nil && tab.TabProperties.Title != "" {
				fmt.Fprintf(&text, "=== %s ===\n\n", tab.TabProperties.Title)
			} else if tabIndex > 0 {
				fmt.Fprintf(&text, "=== Tab %d ===\n\n", tabIndex+1)
			}
			writeTabText(&text, tab)
			text.WriteString("\n")
		}
	} else if doc.Body != nil {
		for _, element := range doc.Body.Content {
			writeElementText(&text, element)
		}
	}

	return text.String(), nil
}

func writeTabText(text *strings.Builder, tab *docs.Tab) {
	if tab.DocumentTab != nil && tab.DocumentTab.Body != nil {
		for _, element := range tab.DocumentTab.Body.Content {
			writeElementText(text, element)
		}
	}
	for _, child := range tab.ChildTabs {
		if child.TabProperties != nil && child.TabProperties.Title != "" {
			fmt.Fprintf(text, "--- %s ---\n\n", child.TabProperties.Title)
		}
		writeTabText(text, child)
	}
}

func writeElementText(text *strings.Builder, element *docs.StructuralElement) {
	switch {
	case element.Paragraph != nil:
		writeParagraphText(text, element.Paragraph)
	case element.Table != nil:
		writeTableText(text, element.Table)
	}
}

func writeParagraphText(text *strings.Builder, para *docs.Paragraph) {
	for _, elem := range para.Elements {
		if elem.TextRun != nil {
			text.WriteString(elem.TextRun.Content)
		}
	}
}

func writeTableText(text *strings.Builder, table *docs.Table) {
	for _, row := range table.TableRows {
		for _, cell := range row.TableCells {
			for _, element := range cell.Content {
				if element.Paragraph != nil {
					writeParagraphText(text, element.Paragraph)
				}
			}
			text.WriteString("\t")
		}
		text.WriteString("\n")
	}
}
