package question

// Result is the outcome of processing one cell.
//
// When Err is nil the cell is clean and Text holds its canonical form. When
// Err is a format mismatch, Question and Text are still set. For any other
// error Question is nil and Text is the original cell text.
type Result struct {
	Text        string
	Question    *Question
	Err         error
	Corrections []Correction
}

// Formatted reports whether the cell text should be replaced by Text.
func (r Result) Formatted() bool {
	return r.Question != nil
}

// Process runs one cell through Lex, Expand, Build and Format. hint is the
// round to use when the header omits one.
func Process(text string, hint Round) Result {
	tokens, err := Lex(text)
	if err != nil {
		return Result{Text: text, Err: err}
	}

	built, err := Build(Expand(tokens), hint)
	if err != nil {
		return Result{Text: text, Err: err}
	}

	q := built.Question
	res := Result{
		Text:        Render(q),
		Question:    &q,
		Corrections: built.Corrections,
	}
	if built.Warning != nil {
		res.Err = built.Warning
	}
	return res
}
