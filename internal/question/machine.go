package question

import (
	"fmt"
	"regexp"
	"slices"
	"strings"
	"unicode"
)

// State is a state of the question structure machine.
type State int

const (
	StateHeader State = iota
	StateStem
	StateChoices
	StateAnswer
	StateDone
)

func (s State) String() string {
	switch s {
	case StateHeader:
		return "HEADER"
	case StateStem:
		return "STEM"
	case StateChoices:
		return "CHOICES"
	case StateAnswer:
		return "ANSWER"
	case StateDone:
		return "DONE"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

var strayChoicePattern = regexp.MustCompile(`^\(?[A-Za-z]\s*\)`)

// Correction records an automatic fix applied while building a question.
type Correction struct {
	Kind    ErrorKind `json:"kind" yaml:"kind"`
	Message string    `json:"message" yaml:"message"`
}

// Built is the outcome of a successful machine run. Warning is set when the
// question was built but its declared format disagrees with its choices.
type Built struct {
	Question    Question
	Warning     *StructureError
	Corrections []Correction
}

// machine walks a token stream through HEADER, STEM, CHOICES, ANSWER, DONE.
// It never backtracks.
type machine struct {
	tokens []Token
	pos    int
	state  State
	hint   Round

	q        Question
	declared Format
	stem     []string
	choices  []ChoiceOption
	built    Built
}

func newMachine(tokens []Token, hint Round) *machine {
	return &machine{tokens: tokens, hint: hint, state: StateHeader}
}

// Build runs the structure machine over expanded tokens. hint supplies the
// round when the header omits it.
func Build(tokens []Token, hint Round) (*Built, error) {
	m := newMachine(tokens, hint)
	for m.state != StateDone {
		if err := m.step(); err != nil {
			return nil, err
		}
	}
	return &m.built, nil
}

// step performs exactly one state transition.
func (m *machine) step() error {
	switch m.state {
	case StateHeader:
		return m.header()
	case StateStem:
		return m.stemLines()
	case StateChoices:
		return m.choiceLines()
	case StateAnswer:
		return m.answer()
	default:
		return fmt.Errorf("step called in state %s", m.state)
	}
}

func (m *machine) peek() (Token, bool) {
	if m.pos >= len(m.tokens) {
		return Token{}, false
	}
	return m.tokens[m.pos], true
}

func (m *machine) header() error {
	tok, ok := m.peek()
	if !ok || tok.Kind != TokenHeader {
		return stall(StateHeader, "HEADER", KindBadHeader)
	}
	m.pos++
	h := tok.Header

	switch {
	case h.RoundWord == "" && m.hint == RoundUnknown:
		return stall(StateHeader, "ROUND", KindBadHeader)
	case h.RoundWord == "":
		m.q.Round = m.hint
	case h.Round == RoundUnknown:
		return stall(StateHeader, "ROUND", KindBadHeader)
	default:
		m.q.Round = h.Round
	}

	if h.Subject == SubjectUnknown {
		return stall(StateHeader, "SUBJECT", KindBadHeader)
	}
	m.q.Subject = h.Subject

	if h.FormatWord != "" && h.Format == FormatUnknown {
		return stall(StateHeader, "FORMAT", KindBadHeader)
	}
	m.declared = h.Format

	m.state = StateStem
	return nil
}

func (m *machine) stemLines() error {
	next := StateDone
loop:
	for {
		tok, ok := m.peek()
		if !ok {
			break
		}
		switch tok.Kind {
		case TokenText:
			m.stem = append(m.stem, tok.Text)
		case TokenBlank:
			m.stem = append(m.stem, "")
		case TokenChoice:
			next = StateChoices
			break loop
		case TokenAnswer:
			next = StateAnswer
			break loop
		default:
			return stall(StateStem, "ANSWER", KindMissingAnswer)
		}
		m.pos++
	}

	m.q.Stem = strings.Join(trimBlankLines(m.stem), "\n")
	if m.q.Stem == "" {
		return stall(StateStem, "STEM", KindMissingStem)
	}
	if next == StateDone {
		return stall(StateStem, "ANSWER", KindMissingAnswer)
	}
	m.state = next
	return nil
}

func (m *machine) choiceLines() error {
	for {
		tok, ok := m.peek()
		if !ok {
			return stall(StateChoices, "ANSWER", KindMissingAnswer)
		}
		switch tok.Kind {
		case TokenChoice:
			m.choices = append(m.choices, ChoiceOption{Letter: tok.Letter, Text: tok.Text})
		case TokenText:
			// A marker outside W-Z and A-D is an extra option, not wrapped text.
			if strayChoicePattern.MatchString(tok.Text) {
				return stall(StateChoices, "CHOICES", KindMissingChoices)
			}
			// Wrapped choice text continues the previous option.
			last := &m.choices[len(m.choices)-1]
			if last.Text == "" {
				last.Text = tok.Text
			} else {
				last.Text += " " + tok.Text
			}
		case TokenBlank:
		case TokenAnswer:
			m.state = StateAnswer
			return nil
		default:
			return stall(StateChoices, "ANSWER", KindMissingAnswer)
		}
		m.pos++
	}
}

func (m *machine) answer() error {
	tok, ok := m.peek()
	if !ok || tok.Kind != TokenAnswer {
		return stall(StateAnswer, "ANSWER", KindMissingAnswer)
	}
	m.pos++

	lines := []string{tok.Text}
	for ; m.pos < len(m.tokens); m.pos++ {
		lines = append(lines, m.tokens[m.pos].Text)
	}
	// Inner spacing is kept as written; only trailing whitespace goes.
	m.q.Answer = strings.TrimRightFunc(strings.Join(lines, "\n"), unicode.IsSpace)
	if m.q.Answer == "" {
		return stall(StateAnswer, "ANSWER", KindMissingAnswer)
	}

	return m.finish()
}

// finish settles the choice block against the declared format and moves
// to DONE.
func (m *machine) finish() error {
	n := len(m.choices)
	if n > 0 && n != len(Letters) {
		return stall(StateChoices, "CHOICES", KindMissingChoices)
	}

	observed := ShortAnswer
	if n > 0 {
		observed = MultipleChoice
		m.q.Choices = m.normalizeLetters(m.choices)
	}

	switch {
	case m.declared == MultipleChoice && observed == ShortAnswer:
		m.built.Warning = &StructureError{
			Kind:   KindFormatMismatch,
			State:  StateChoices,
			Field:  "format",
			Detail: "Format mismatch: declared Multiple Choice but found no choices",
		}
	case m.declared == ShortAnswer && observed == MultipleChoice:
		m.built.Warning = &StructureError{
			Kind:   KindFormatMismatch,
			State:  StateChoices,
			Field:  "format",
			Detail: fmt.Sprintf("Format mismatch: declared Short Answer but found %d choices", n),
		}
	}
	m.q.Format = observed

	m.built.Question = m.q
	m.state = StateDone
	return nil
}

// normalizeLetters returns four choices labeled W, X, Y, Z in order. A
// permutation of W-Z is sorted; anything else is relabeled in the order the
// choices were written. Choice text is never changed.
func (m *machine) normalizeLetters(in []ChoiceOption) []ChoiceOption {
	out := slices.Clone(in)

	if isPermutation(out) {
		sorted := slices.IsSortedFunc(out, compareLetter)
		if !sorted {
			slices.SortFunc(out, compareLetter)
			m.built.Corrections = append(m.built.Corrections, Correction{
				Kind:    KindMalformedChoiceLabels,
				Message: "reordered choices " + letterList(in) + " as W, X, Y, Z",
			})
		}
		return out
	}

	for i := range out {
		out[i].Letter = Letters[i]
	}
	m.built.Corrections = append(m.built.Corrections, Correction{
		Kind:    KindMalformedChoiceLabels,
		Message: "relabeled choices " + letterList(in) + " as W, X, Y, Z",
	})
	return out
}

func isPermutation(choices []ChoiceOption) bool {
	var seen [4]bool
	for _, c := range choices {
		i := slices.Index(Letters[:], c.Letter)
		if i < 0 || seen[i] {
			return false
		}
		seen[i] = true
	}
	return true
}

func compareLetter(a, b ChoiceOption) int {
	return int(a.Letter) - int(b.Letter)
}

func letterList(choices []ChoiceOption) string {
	letters := make([]string, len(choices))
	for i, c := range choices {
		letters[i] = string(c.Letter)
	}
	return strings.Join(letters, ", ")
}

func trimBlankLines(lines []string) []string {
	start, end := 0, len(lines)
	for start < end && strings.TrimSpace(lines[start]) == "" {
		start++
	}
	for end > start && strings.TrimSpace(lines[end-1]) == "" {
		end--
	}
	return lines[start:end]
}
