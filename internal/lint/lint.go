// Package lint aggregates question defects into highlight instructions and
// terminal messages.
package lint

import (
	"fmt"
	"sort"

	"github.com/jackzampolin/nsb/internal/question"
)

// Color is a highlight color understood by the document writer.
type Color string

const (
	ColorNone   Color = ""
	ColorRed    Color = "red"
	ColorYellow Color = "yellow"
)

// Colors maps each severity to a highlight color.
type Colors struct {
	Parse     Color
	Structure Color
}

// DefaultColors highlights parse defects red and structure defects yellow.
var DefaultColors = Colors{Parse: ColorRed, Structure: ColorYellow}

// For returns the highlight color for a severity.
func (c Colors) For(s question.Severity) Color {
	switch s {
	case question.SeverityParse:
		return c.Parse
	case question.SeverityStructure:
		return c.Structure
	default:
		return ColorNone
	}
}

// Highlight asks the writer to color one field of one question's row.
type Highlight struct {
	Index int    `json:"index" yaml:"index"`
	Field string `json:"field,omitempty" yaml:"field,omitempty"`
	Color Color  `json:"color" yaml:"color"`
}

// Report is the linter output in document order.
type Report struct {
	Defects    []question.Defect `json:"defects" yaml:"defects"`
	Highlights []Highlight       `json:"highlights" yaml:"highlights"`
	Lines      []string          `json:"lines" yaml:"lines"`
}

// Linter collects defects. It is not safe for concurrent use; callers
// gather per-cell results first and add them afterwards.
type Linter struct {
	colors  Colors
	defects []question.Defect
}

// New creates a linter using the given colors.
func New(colors Colors) *Linter {
	return &Linter{colors: colors}
}

// Add records a defect.
func (l *Linter) Add(d question.Defect) {
	l.defects = append(l.defects, d)
}

// AddError converts a per-cell error and records it.
func (l *Linter) AddError(index int, err error) {
	l.Add(question.DefectFrom(index, err))
}

// Report sorts defects into cell order and renders highlights and lines.
// Defects for the same cell keep the order they were added in.
func (l *Linter) Report() Report {
	defects := make([]question.Defect, len(l.defects))
	copy(defects, l.defects)
	sort.SliceStable(defects, func(i, j int) bool {
		return defects[i].Index < defects[j].Index
	})

	r := Report{
		Defects:    defects,
		Highlights: make([]Highlight, 0, len(defects)),
		Lines:      make([]string, 0, len(defects)),
	}
	for _, d := range defects {
		r.Highlights = append(r.Highlights, Highlight{
			Index: d.Index,
			Field: d.Field,
			Color: l.colors.For(d.Severity),
		})
		r.Lines = append(r.Lines, Line(d))
	}
	return r
}

// Line renders a defect as "Question <n>: <message>" with n counted from 1.
func Line(d question.Defect) string {
	return fmt.Sprintf("Question %d: %s", d.Index+1, d.Message)
}

// Count returns how many defects of each severity the report holds.
func (r Report) Count() (parse, structure int) {
	for _, d := range r.Defects {
		switch d.Severity {
		case question.SeverityParse:
			parse++
		case question.SeverityStructure:
			structure++
		}
	}
	return parse, structure
}
