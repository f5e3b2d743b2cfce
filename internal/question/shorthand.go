package question

import (
	"strings"
)

// label describes how one enum member is written.
type label struct {
	Canonical string
	Short     string
	Title     string
	Aliases   []string
}

var roundLabels = map[Round]label{
	TossUp: {Canonical: "TOSS-UP", Short: "TU", Aliases: []string{"TOSSUP", "TOSS UP"}},
	Bonus:  {Canonical: "BONUS", Short: "B"},
}

// Earth and Space and Energy share a first letter, so they get two-letter codes.
var subjectLabels = map[Subject]label{
	Biology:       {Canonical: "BIOLOGY", Short: "B", Title: "Biology"},
	Chemistry:     {Canonical: "CHEMISTRY", Short: "C", Title: "Chemistry"},
	Physics:       {Canonical: "PHYSICS", Short: "P", Title: "Physics"},
	Math:          {Canonical: "MATH", Short: "M", Title: "Math", Aliases: []string{"MATHEMATICS"}},
	EarthAndSpace: {Canonical: "EARTH AND SPACE", Short: "ES", Title: "Earth and Space", Aliases: []string{"EARTH & SPACE"}},
	Energy:        {Canonical: "ENERGY", Short: "EN", Title: "Energy"},
	General:       {Canonical: "GENERAL SCIENCE", Short: "G", Title: "General Science", Aliases: []string{"GENERAL"}},
}

var formatLabels = map[Format]label{
	MultipleChoice: {Canonical: "Multiple Choice", Short: "MC", Aliases: []string{"MULTIPLE-CHOICE"}},
	ShortAnswer:    {Canonical: "Short Answer", Short: "SA", Aliases: []string{"SHORT-ANSWER"}},
}

// Lookup tables keyed by normalized word. Built once, read-only afterwards.
var (
	roundWords   = buildWords(roundLabels)
	subjectWords = buildWords(subjectLabels)
	formatWords  = buildWords(formatLabels)

	// maxPhraseWords is the longest label measured in words ("EARTH AND SPACE").
	maxPhraseWords = longestPhrase()
)

func buildWords[K comparable](labels map[K]label) map[string]K {
	words := make(map[string]K)
	for k, l := range labels {
		words[normalizeWord(l.Canonical)] = k
		words[normalizeWord(l.Short)] = k
		for _, a := range l.Aliases {
			words[normalizeWord(a)] = k
		}
	}
	return words
}

func longestPhrase() int {
	return max(phraseLen(roundWords), phraseLen(subjectWords), phraseLen(formatWords))
}

func phraseLen[K comparable](words map[string]K) int {
	n := 1
	for w := range words {
		n = max(n, len(strings.Fields(w)))
	}
	return n
}

// normalizeWord upper-cases a header word and collapses inner whitespace.
func normalizeWord(s string) string {
	return strings.ToUpper(strings.Join(strings.Fields(s), " "))
}

// ExpandRound resolves a round word ("TU", "Bonus", ...).
func ExpandRound(word string) (Round, bool) {
	r, ok := roundWords[normalizeWord(word)]
	return r, ok
}

// ExpandSubject resolves a subject word ("ES", "Chemistry", ...).
func ExpandSubject(word string) (Subject, bool) {
	s, ok := subjectWords[normalizeWord(word)]
	return s, ok
}

// ExpandFormat resolves a format word ("MC", "Short Answer", ...).
func ExpandFormat(word string) (Format, bool) {
	f, ok := formatWords[normalizeWord(word)]
	return f, ok
}

func isHeaderWord(word string) bool {
	w := normalizeWord(word)
	_, r := roundWords[w]
	_, s := subjectWords[w]
	_, f := formatWords[w]
	return r || s || f
}

// Expand fills in the header kinds of every header token. Words that are not
// in the table are left unresolved for the state machine to report.
func Expand(tokens []Token) []Token {
	out := make([]Token, len(tokens))
	copy(out, tokens)
	for i := range out {
		if out[i].Kind != TokenHeader {
			continue
		}
		h := &out[i].Header
		if h.RoundWord != "" {
			h.Round, _ = ExpandRound(h.RoundWord)
		}
		if h.SubjectWord != "" {
			h.Subject, _ = ExpandSubject(h.SubjectWord)
		}
		if h.FormatWord != "" {
			h.Format, _ = ExpandFormat(h.FormatWord)
		}
	}
	return out
}
