// Package question parses, validates and canonically formats Science Bowl
// question cells.
//
// A cell passes through four stages: Lex splits the raw text into tokens,
// Expand resolves shorthand header words, Build drives the structure state
// machine and Render renders the canonical layout. Process runs all four.
package question

// Round is the round a question is written for.
type Round int

const (
	RoundUnknown Round = iota
	TossUp
	Bonus
)

// Subject is the science category of a question.
type Subject int

const (
	SubjectUnknown Subject = iota
	Biology
	Chemistry
	Physics
	Math
	EarthAndSpace
	Energy
	General
)

// Format is the answer format of a question.
type Format int

const (
	FormatUnknown Format = iota
	MultipleChoice
	ShortAnswer
)

// Letters are the valid multiple-choice labels in canonical order.
var Letters = [4]byte{'W', 'X', 'Y', 'Z'}

// ChoiceOption is one multiple-choice option.
type ChoiceOption struct {
	Letter byte   `json:"letter" yaml:"letter"`
	Text   string `json:"text" yaml:"text"`
}

// Question is a fully parsed question cell.
// Choices is empty unless Format is MultipleChoice, in which case it holds
// exactly four options labeled W, X, Y, Z in order.
type Question struct {
	Round   Round          `json:"round" yaml:"round"`
	Subject Subject        `json:"subject" yaml:"subject"`
	Format  Format         `json:"format" yaml:"format"`
	Stem    string         `json:"stem" yaml:"stem"`
	Choices []ChoiceOption `json:"choices,omitempty" yaml:"choices,omitempty"`
	Answer  string         `json:"answer" yaml:"answer"`
}

func (r Round) String() string {
	if l, ok := roundLabels[r]; ok {
		return l.Canonical
	}
	return "UNKNOWN"
}

func (s Subject) String() string {
	if l, ok := subjectLabels[s]; ok {
		return l.Canonical
	}
	return "UNKNOWN"
}

// Title returns the mixed-case subject name used in the subject column.
func (s Subject) Title() string {
	if l, ok := subjectLabels[s]; ok {
		return l.Title
	}
	return ""
}

func (f Format) String() string {
	if l, ok := formatLabels[f]; ok {
		return l.Canonical
	}
	return "UNKNOWN"
}

// MarshalText renders the canonical label so reports read naturally.
func (r Round) MarshalText() ([]byte, error) { return []byte(r.String()), nil }

func (s Subject) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

func (f Format) MarshalText() ([]byte, error) { return []byte(f.String()), nil }
