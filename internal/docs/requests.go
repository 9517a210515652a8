package docs

import (
	"fmt"
	"strings"

	docs "google.golang.org/api/docs/v1"
)

// TextStyleOptions selects which style attributes to apply to a text range.
// Nil fields are left untouched in the document.
type TextStyleOptions struct {
	Bold          *bool
	Italic        *bool
	Underline     *bool
	Strikethrough *bool
	FontSize      *float64 // points
}

// IsZero reports whether no style attribute is set.
func (o TextStyleOptions) IsZero() bool {
	return o.Bold == nil && o.Italic == nil && o.Underline == nil &&
		o.Strikethrough == nil && o.FontSize == nil
}

// InsertTableRequest builds a request inserting a rows x columns table at the
// given body index.
func InsertTableRequest(rows, columns, index int64) *docs.Request {
	return &docs.Request{
		InsertTable: &docs.InsertTableRequest{
			Rows:     rows,
			Columns:  columns,
			Location: location(index),
		},
	}
}

// InsertTableRowRequest builds a request inserting a row above or below the
// cell at rowIndex in the table starting at tableStartIndex.
func InsertTableRowRequest(tableStartIndex, rowIndex int64, insertBelow bool) *docs.Request {
	req := &docs.InsertTableRowRequest{
		TableCellLocation: tableCellLocation(tableStartIndex, rowIndex, 0),
		InsertBelow:       insertBelow,
	}
	if !insertBelow {
		req.ForceSendFields = append(req.ForceSendFields, "InsertBelow")
	}
	return &docs.Request{InsertTableRow: req}
}

// InsertTableColumnRequest builds a request inserting a column left or right
// of the cell at columnIndex in the table starting at tableStartIndex.
func InsertTableColumnRequest(tableStartIndex, columnIndex int64, insertRight bool) *docs.Request {
	req := &docs.InsertTableColumnRequest{
		TableCellLocation: tableCellLocation(tableStartIndex, 0, columnIndex),
		InsertRight:       insertRight,
	}
	if !insertRight {
		req.ForceSendFields = append(req.ForceSendFields, "InsertRight")
	}
	return &docs.Request{InsertTableColumn: req}
}

// DeleteTableRowRequest builds a request deleting the row containing the cell
// at rowIndex in the table starting at tableStartIndex.
func DeleteTableRowRequest(tableStartIndex, rowIndex int64) *docs.Request {
	return &docs.Request{
		DeleteTableRow: &docs.DeleteTableRowRequest{
			TableCellLocation: tableCellLocation(tableStartIndex, rowIndex, 0),
		},
	}
}

// InsertTextRequest builds a request inserting text at the given body index.
func InsertTextRequest(text string, index int64) *docs.Request {
	return &docs.Request{
		InsertText: &docs.InsertTextRequest{
			Text:     text,
			Location: location(index),
		},
	}
}

// ReplaceAllTextRequest builds a request replacing every occurrence of
// findText with replaceText.
func ReplaceAllTextRequest(findText, replaceText string, matchCase bool) *docs.Request {
	criteria := &docs.SubstringMatchCriteria{
		Text:      findText,
		MatchCase: matchCase,
	}
	if !matchCase {
		criteria.ForceSendFields = append(criteria.ForceSendFields, "MatchCase")
	}
	req := &docs.ReplaceAllTextRequest{
		ContainsText: criteria,
		ReplaceText:  replaceText,
	}
	if replaceText == "" {
		req.ForceSendFields = append(req.ForceSendFields, "ReplaceText")
	}
	return &docs.Request{ReplaceAllText: req}
}

// UpdateTextStyleRequest builds a request applying the set style options to
// the [startIndex, endIndex) range. The fields mask names exactly the
// attributes being changed so unset ones keep their current value.
func UpdateTextStyleRequest(startIndex, endIndex int64, style TextStyleOptions) (*docs.Request, error) {
	if style.IsZero() {
		return nil, fmt.Errorf("at least one style option is required")
	}

	textStyle := &docs.TextStyle{}
	var fields []string

	if style.Bold != nil {
		textStyle.Bold = *style.Bold
		textStyle.ForceSendFields = append(textStyle.ForceSendFields, "Bold")
		fields = append(fields, "bold")
	}
	if style.Italic != nil {
		textStyle.Italic = *style.Italic
		textStyle.ForceSendFields = append(textStyle.ForceSendFields, "Italic")
		fields = append(fields, "italic")
	}
	if style.Underline != nil {
		textStyle.Underline = *style.Underline
		textStyle.ForceSendFields = append(textStyle.ForceSendFields, "Underline")
		fields = append(fields, "underline")
	}
	if style.Strikethrough != nil {
		textStyle.Strikethrough = *style.Strikethrough
		textStyle.ForceSendFields = append(textStyle.ForceSendFields, "Strikethrough")
		fields = append(fields, "strikethrough")
	}
	if style.FontSize != nil {
		textStyle.FontSize = &docs.Dimension{
			Magnitude: *style.FontSize,
			Unit:      "PT",
		}
		fields = append(fields, "fontSize")
	}

	return &docs.Request{
		UpdateTextStyle: &docs.UpdateTextStyleRequest{
			Range: &docs.Range{
				StartIndex:      startIndex,
				EndIndex:        endIndex,
				ForceSendFields: []string{"StartIndex"},
			},
			TextStyle: textStyle,
			Fields:    strings.Join(fields, ","),
		},
	}, nil
}

func location(index int64) *docs.Location {
	loc := &docs.Location{Index: index}
	if index == 0 {
		loc.ForceSendFields = append(loc.ForceSendFields, "Index")
	}
	return loc
}

func tableCellLocation(tableStartIndex, rowIndex, columnIndex int64) *docs.TableCellLocation {
	loc := &docs.TableCellLocation{
		TableStartLocation: location(tableStartIndex),
		RowIndex:           rowIndex,
		ColumnIndex:        columnIndex,
		ForceSendFields:    []string{"RowIndex", "ColumnIndex"},
	}
	return loc
}
