// Package document reads and writes question tables.
//
// A table is a header row of column names plus data rows of cells. Each cell
// carries its text and an optional highlight color. Tables are stored as
// YAML or JSON, chosen by file extension.
package document

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Cell is one table cell.
type Cell struct {
	Text      string `json:"text" yaml:"text"`
	Highlight string `json:"highlight,omitempty" yaml:"highlight,omitempty"`
}

// Row is one table row.
type Row struct {
	Cells []Cell `json:"cells" yaml:"cells"`
}

// Table is a question document.
type Table struct {
	Columns []string `json:"columns" yaml:"columns"`
	Rows    []Row    `json:"rows" yaml:"rows"`
}

// Format is an on-disk encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// FormatFor picks the encoding from a file extension.
func FormatFor(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("unsupported document type %q (want .yaml, .yml or .json)", filepath.Ext(path))
	}
}

// Template is the column layout written by Blank.
var Template = []string{
	"TUB", "Subject", "Ques", "LOD", "Question",
	"Subcategory", "Set", "Round", "Letter", "Author", "Comments",
}

// Blank returns an empty templated table with the given number of rows.
func Blank(rows int) *Table {
	t := &Table{
		Columns: append([]string(nil), Template...),
		Rows:    make([]Row, rows),
	}
	for i := range t.Rows {
		t.Rows[i].Cells = make([]Cell, len(t.Columns))
	}
	return t
}

// ColumnIndex returns the index of the named column, ignoring case and
// surrounding spaces, or -1.
func (t *Table) ColumnIndex(name string) int {
	if name == "" {
		return -1
	}
	for i, c := range t.Columns {
		if strings.EqualFold(strings.TrimSpace(c), strings.TrimSpace(name)) {
			return i
		}
	}
	return -1
}

// Cell returns a pointer to the cell at row r and column c, padding the row
// if it is short. It returns nil when r or c is out of range of the table.
func (t *Table) Cell(r, c int) *Cell {
	if r < 0 || r >= len(t.Rows) || c < 0 || c >= len(t.Columns) {
		return nil
	}
	row := &t.Rows[r]
	for len(row.Cells) < len(t.Columns) {
		row.Cells = append(row.Cells, Cell{})
	}
	return &row.Cells[c]
}

// Text returns the text at row r and column c, or "" when absent.
func (t *Table) Text(r, c int) string {
	if r < 0 || r >= len(t.Rows) || c < 0 || c >= len(t.Rows[r].Cells) {
		return ""
	}
	return t.Rows[r].Cells[c].Text
}

// Clone returns a deep copy.
func (t *Table) Clone() *Table {
	out := &Table{
		Columns: append([]string(nil), t.Columns...),
		Rows:    make([]Row, len(t.Rows)),
	}
	for i, r := range t.Rows {
		out.Rows[i].Cells = append([]Cell(nil), r.Cells...)
	}
	return out
}
