package question

import (
	"regexp"
	"strings"
	"unicode"
)

// TokenKind identifies the variant held by a Token.
type TokenKind int

const (
	TokenHeader TokenKind = iota
	TokenText
	TokenChoice
	TokenBlank
	TokenAnswer
)

func (k TokenKind) String() string {
	switch k {
	case TokenHeader:
		return "header"
	case TokenText:
		return "text"
	case TokenChoice:
		return "choice"
	case TokenBlank:
		return "blank"
	case TokenAnswer:
		return "answer"
	default:
		return "unknown"
	}
}

// Header holds the header words as written and, after Expand, their kinds.
// An empty word means the field was omitted.
type Header struct {
	RoundWord   string
	SubjectWord string
	FormatWord  string

	Round   Round
	Subject Subject
	Format  Format
}

// Token is one lexical unit of a cell. Line is the 1-based source line.
type Token struct {
	Kind   TokenKind
	Line   int
	Header Header // TokenHeader only
	Letter byte   // TokenChoice only, upper-cased
	Text   string
}

var (
	// A header prefix is separated from the stem by a tab or a run of two or
	// more spaces.
	separatorPattern = regexp.MustCompile(`\t\s*|\s{2,}`)
	wordPattern      = regexp.MustCompile(`\S+`)

	// W-Z are the real labels; A-D are accepted so mislabeled sets can be fixed.
	choicePattern = regexp.MustCompile(`^\s*\(?([W-Zw-zA-Da-d])\s*\)\s*(.*)$`)
	answerPattern = regexp.MustCompile(`(?i)^\s*ANSWER\s*:\s?(.*)$`)
)

// Lex splits raw cell text into tokens. It fails with a *LexError when the
// first non-blank line is not a header.
func Lex(text string) ([]Token, error) {
	lines := splitLines(text)

	first := -1
	for i, line := range lines {
		if strings.TrimSpace(line) != "" {
			first = i
			break
		}
	}
	if first < 0 {
		return nil, &LexError{Line: 0}
	}

	header, stem, ok := lexHeader(lines[first])
	if !ok {
		return nil, &LexError{Line: first + 1, Text: strings.TrimSpace(lines[first])}
	}

	tokens := []Token{{Kind: TokenHeader, Line: first + 1, Header: header}}
	if stem != "" {
		tokens = append(tokens, Token{Kind: TokenText, Line: first + 1, Text: stem})
	}

	inAnswer := false
	for i := first + 1; i < len(lines); i++ {
		line := lines[i]
		lineNo := i + 1

		if inAnswer {
			tokens = append(tokens, Token{Kind: TokenText, Line: lineNo, Text: line})
			continue
		}

		if strings.TrimSpace(line) == "" {
			tokens = append(tokens, Token{Kind: TokenBlank, Line: lineNo})
			continue
		}

		if m := answerPattern.FindStringSubmatch(line); m != nil {
			inAnswer = true
			tokens = append(tokens, Token{Kind: TokenAnswer, Line: lineNo, Text: strings.TrimLeftFunc(m[1], unicode.IsSpace)})
			continue
		}

		if m := choicePattern.FindStringSubmatch(line); m != nil {
			tokens = append(tokens, Token{
				Kind:   TokenChoice,
				Line:   lineNo,
				Letter: byte(unicode.ToUpper(rune(m[1][0]))),
				Text:   strings.TrimSpace(m[2]),
			})
			continue
		}

		tokens = append(tokens, Token{Kind: TokenText, Line: lineNo, Text: strings.TrimSpace(line)})
	}

	return tokens, nil
}

// splitLines normalizes line breaks (including Word's vertical-tab line
// break) and splits on them.
func splitLines(text string) []string {
	r := strings.NewReplacer("\r\n", "\n", "\r", "\n", "\v", "\n")
	return strings.Split(r.Replace(text), "\n")
}

// lexHeader recognizes the header prefix of a line and returns the
// remaining stem text.
func lexHeader(line string) (Header, string, bool) {
	line = strings.TrimSpace(line)
	seps := separatorPattern.FindAllStringIndex(line, -1)

	// Longest prefix ending at a wide separator that is entirely header words.
	// Sloppy cells may also use wide gaps between the header words themselves.
	for i := len(seps) - 1; i >= 0; i-- {
		phrases, known := segment(strings.Fields(line[:seps[i][0]]))
		if known != len(phrases) {
			continue
		}
		if h, ok := assign(phrases); ok {
			return h, strings.TrimSpace(line[seps[i][1]:]), true
		}
	}

	// No usable separator: consume recognized words greedily.
	if h, stem, ok := lexGreedy(line); ok {
		return h, stem, true
	}

	// The prefix looks like a header but carries words the table does not
	// know; pass them through so the machine can say which field is wrong.
	for i := len(seps) - 1; i >= 0; i-- {
		phrases, known := segment(strings.Fields(line[:seps[i][0]]))
		if known > 0 && len(phrases) <= 3 {
			return assignLoose(phrases), strings.TrimSpace(line[seps[i][1]:]), true
		}
	}

	return Header{}, "", false
}

// segment groups words into header phrases, longest match first. Unknown
// words become single-word phrases. It reports how many phrases were known.
func segment(words []string) ([]string, int) {
	var phrases []string
	known := 0
	for i := 0; i < len(words); {
		n := matchPhrase(words[i:])
		if n == 0 {
			phrases = append(phrases, words[i])
			i++
			continue
		}
		phrases = append(phrases, strings.Join(words[i:i+n], " "))
		known++
		i += n
	}
	return phrases, known
}

// matchPhrase returns the word count of the longest header phrase at the
// start of words, or 0.
func matchPhrase(words []string) int {
	for n := min(maxPhraseWords, len(words)); n > 0; n-- {
		if isHeaderWord(strings.Join(words[:n], " ")) {
			return n
		}
	}
	return 0
}

// lexGreedy reads header words off the front of a line with no wide
// separator. A lone subject word only counts when nothing follows it, so
// prose that happens to open with "Energy" or "C" is not taken as a header.
func lexGreedy(line string) (Header, string, bool) {
	locs := wordPattern.FindAllStringIndex(line, -1)
	words := make([]string, len(locs))
	for i, loc := range locs {
		words[i] = line[loc[0]:loc[1]]
	}

	var (
		phrases []string
		ends    []int
	)
	for i := 0; i < len(words) && len(phrases) < 3; {
		n := matchPhrase(words[i:])
		if n == 0 {
			break
		}
		phrases = append(phrases, strings.Join(words[i:i+n], " "))
		ends = append(ends, locs[i+n-1][1])
		i += n
	}

	for k := len(phrases); k > 0; k-- {
		h, ok := assign(phrases[:k])
		if !ok {
			continue
		}
		rest := strings.TrimSpace(line[ends[k-1]:])
		if k == 1 && rest != "" {
			break
		}
		return h, rest, true
	}
	return Header{}, "", false
}

// assign maps recognized phrases onto round, subject and format. A leading
// "B" is a round only when a subject follows it.
func assign(p []string) (Header, bool) {
	switch len(p) {
	case 3:
		if isRound(p[0]) && isSubject(p[1]) && isFormat(p[2]) {
			return Header{RoundWord: p[0], SubjectWord: p[1], FormatWord: p[2]}, true
		}
	case 2:
		if isRound(p[0]) && isSubject(p[1]) {
			return Header{RoundWord: p[0], SubjectWord: p[1]}, true
		}
		if isSubject(p[0]) && isFormat(p[1]) {
			return Header{SubjectWord: p[0], FormatWord: p[1]}, true
		}
	case 1:
		if isSubject(p[0]) {
			return Header{SubjectWord: p[0]}, true
		}
	}
	return Header{}, false
}

// assignLoose positions phrases by shape when some are unknown.
func assignLoose(p []string) Header {
	switch len(p) {
	case 3:
		return Header{RoundWord: p[0], SubjectWord: p[1], FormatWord: p[2]}
	case 2:
		if isRound(p[0]) && !isFormat(p[1]) {
			return Header{RoundWord: p[0], SubjectWord: p[1]}
		}
		return Header{SubjectWord: p[0], FormatWord: p[1]}
	default:
		return Header{SubjectWord: p[0]}
	}
}

func isRound(w string) bool {
	_, ok := ExpandRound(w)
	return ok
}

func isSubject(w string) bool {
	_, ok := ExpandSubject(w)
	return ok
}

func isFormat(w string) bool {
	_, ok := ExpandFormat(w)
	return ok
}
