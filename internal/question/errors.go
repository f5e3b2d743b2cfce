package question

import (
	"errors"
	"fmt"
)

// ErrorKind classifies why a cell could not be canonicalized cleanly.
type ErrorKind string

const (
	KindUnrecognizedHeader    ErrorKind = "unrecognized_header"
	KindBadHeader             ErrorKind = "bad_header"
	KindMissingStem           ErrorKind = "missing_stem"
	KindMissingChoices        ErrorKind = "missing_choices"
	KindMissingAnswer         ErrorKind = "missing_answer"
	KindFormatMismatch        ErrorKind = "format_mismatch"
	KindMalformedChoiceLabels ErrorKind = "malformed_choice_labels"
)

// Severity decides how a defective cell is treated on writeback.
type Severity string

const (
	// SeverityParse: no Question could be built; the cell keeps its text.
	SeverityParse Severity = "parse"
	// SeverityStructure: a Question was built but breaks a soft rule.
	SeverityStructure Severity = "structure"
)

const stallPrefix = "Couldn't parse question, was looking for "

// LexError reports a cell whose first non-blank line is not a header.
type LexError struct {
	Line int // 1-based, 0 for an empty cell
	Text string
}

func (e *LexError) Error() string {
	return stallPrefix + "HEADER"
}

// StructureError reports a cell the state machine could not accept as-is.
// Expected names what the machine was waiting for when it stalled.
type StructureError struct {
	Kind     ErrorKind
	State    State
	Expected string
	Field    string
	Detail   string
}

func (e *StructureError) Error() string {
	if e.Kind == KindFormatMismatch {
		return e.Detail
	}
	return stallPrefix + e.Expected
}

// Severity returns SeverityStructure for a format mismatch and
// SeverityParse for everything else.
func (e *StructureError) Severity() Severity {
	if e.Kind == KindFormatMismatch {
		return SeverityStructure
	}
	return SeverityParse
}

func stall(state State, expected string, kind ErrorKind) *StructureError {
	return &StructureError{Kind: kind, State: state, Expected: expected, Field: fieldOf(expected)}
}

func fieldOf(expected string) string {
	switch expected {
	case "ROUND":
		return "round"
	case "SUBJECT":
		return "subject"
	case "FORMAT":
		return "format"
	case "STEM":
		return "stem"
	case "CHOICES":
		return "choices"
	case "ANSWER":
		return "answer"
	}
	return "header"
}

// Defect is a classified problem with one question cell. Index is the
// 0-based position of the cell among question cells.
type Defect struct {
	Severity Severity  `json:"severity" yaml:"severity"`
	Kind     ErrorKind `json:"kind" yaml:"kind"`
	Index    int       `json:"index" yaml:"index"`
	Message  string    `json:"message" yaml:"message"`
	Field    string    `json:"field,omitempty" yaml:"field,omitempty"`
}

// DefectFrom converts a per-cell error into a Defect. Errors that did not
// come from this package are treated as parse failures.
func DefectFrom(index int, err error) Defect {
	var lexErr *LexError
	var structErr *StructureError
	switch {
	case errors.As(err, &lexErr):
		return Defect{
			Severity: SeverityParse,
			Kind:     KindUnrecognizedHeader,
			Index:    index,
			Message:  lexErr.Error(),
			Field:    "header",
		}
	case errors.As(err, &structErr):
		return Defect{
			Severity: structErr.Severity(),
			Kind:     structErr.Kind,
			Index:    index,
			Message:  structErr.Error(),
			Field:    structErr.Field,
		}
	default:
		return Defect{
			Severity: SeverityParse,
			Index:    index,
			Message:  fmt.Sprintf("Couldn't parse question: %v", err),
		}
	}
}
