// Package columns normalizes the companion cells that sit next to each
// question: TUB (toss-up/bonus), subject, Ques (question type) and LOD
// (level of difficulty).
package columns

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jackzampolin/nsb/internal/question"
)

// Canonical TUB values.
const (
	TossUp      = "TOSS-UP"
	Bonus       = "BONUS"
	VisualBonus = "VISUAL BONUS"
)

var tubWords = map[string]string{
	"TU":           TossUp,
	"T":            TossUp,
	"TOSSUP":       TossUp,
	"TOSS-UP":      TossUp,
	"TOSS UP":      TossUp,
	"B":            Bonus,
	"BONUS":        Bonus,
	"VB":           VisualBonus,
	"VISUAL BONUS": VisualBonus,
	"VISUAL-BONUS": VisualBonus,
	"VISUALBONUS":  VisualBonus,
}

// Column names used in errors and defect fields.
const (
	ColumnTUB     = "TUB"
	ColumnSubject = "subject"
	ColumnQues    = "Ques"
	ColumnLOD     = "LOD"
)

// KindInvalidColumn classifies a companion cell that could not be
// normalized.
const KindInvalidColumn question.ErrorKind = "invalid_column"

// Error reports a companion cell that could not be normalized.
type Error struct {
	Column string
	Value  string
}

func (e *Error) Error() string {
	return fmt.Sprintf("Invalid %s %q", e.Column, e.Value)
}

// Defect converts the error into a parse defect for the question at index.
func (e *Error) Defect(index int) question.Defect {
	return question.Defect{
		Severity: question.SeverityParse,
		Kind:     KindInvalidColumn,
		Index:    index,
		Message:  e.Error(),
		Field:    FieldOf(e.Column),
	}
}

// FieldOf returns the defect field used for a companion column, e.g.
// "tub_column". Question fields never end in "_column".
func FieldOf(column string) string {
	return strings.ToLower(column) + "_column"
}

// NormalizeTUB maps a TUB cell to TOSS-UP, BONUS or VISUAL BONUS.
func NormalizeTUB(text string) (string, error) {
	key := strings.ToUpper(strings.Join(strings.Fields(text), " "))
	if v, ok := tubWords[key]; ok {
		return v, nil
	}
	return text, &Error{Column: ColumnTUB, Value: strings.TrimSpace(text)}
}

// RoundOf returns the question round implied by a normalized TUB value.
// Visual bonuses are read as bonuses.
func RoundOf(tub string) question.Round {
	switch tub {
	case TossUp:
		return question.TossUp
	case Bonus, VisualBonus:
		return question.Bonus
	default:
		return question.RoundUnknown
	}
}

// NormalizeSubject maps a subject cell (shorthand or full name) to its
// title-case name, e.g. "es" to "Earth and Space".
func NormalizeSubject(text string) (string, error) {
	s, ok := question.ExpandSubject(text)
	if !ok {
		return text, &Error{Column: ColumnSubject, Value: strings.TrimSpace(text)}
	}
	return s.Title(), nil
}

// NormalizeQues maps a question type cell ("MC", "short answer", ...) to
// "Multiple Choice" or "Short Answer".
func NormalizeQues(text string) (string, error) {
	f, ok := question.ExpandFormat(text)
	if !ok {
		return text, &Error{Column: ColumnQues, Value: strings.TrimSpace(text)}
	}
	return f.String(), nil
}

// Difficulty bounds for the LOD column.
const (
	MinLOD = 1
	MaxLOD = 4
)

// ValidateLOD checks that a level-of-difficulty cell is a whole number from
// MinLOD to MaxLOD and returns it trimmed.
func ValidateLOD(text string) (string, error) {
	v := strings.TrimSpace(text)
	n, err := strconv.Atoi(v)
	if err != nil || n < MinLOD || n > MaxLOD {
		return text, &Error{Column: ColumnLOD, Value: v}
	}
	return strconv.Itoa(n), nil
}
