package question

import (
	"strings"
)

// HeaderSeparator sits between the header words and the stem.
const HeaderSeparator = "    "

// Render renders q in the canonical cell layout:
//
//	<ROUND> <SUBJECT> <FORMAT>    <stem>
//
//	W) <choice>
//	X) <choice>
//	Y) <choice>
//	Z) <choice>
//
//	ANSWER: <answer>
//
// The choice block and the blank line before it are present only when q has
// choices. Formatting is a fixed point: Process(Render(q)) renders the same text.
func Render(q Question) string {
	var b strings.Builder

	b.WriteString(q.Round.String())
	b.WriteByte(' ')
	b.WriteString(q.Subject.String())
	b.WriteByte(' ')
	b.WriteString(q.Format.String())
	b.WriteString(HeaderSeparator)
	b.WriteString(q.Stem)
	b.WriteString("\n\n")

	if len(q.Choices) > 0 {
		for _, c := range q.Choices {
			b.WriteByte(c.Letter)
			b.WriteString(") ")
			b.WriteString(c.Text)
			b.WriteByte('\n')
		}
		b.WriteByte('\n')
	}

	// An answer that starts on the next line gets no trailing space.
	b.WriteString("ANSWER:")
	if !strings.HasPrefix(q.Answer, "\n") {
		b.WriteByte(' ')
	}
	b.WriteString(q.Answer)

	return b.String()
}
