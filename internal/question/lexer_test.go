package question

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestLex(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []Token
	}{
		{
			name: "shorthand header with choices",
			in:   "TU B MC    Name this element.\nW) Gold\nx ) Silver\n\nANSWER: Gold",
			want: []Token{
				{Kind: TokenHeader, Line: 1, Header: Header{RoundWord: "TU", SubjectWord: "B", FormatWord: "MC"}},
				{Kind: TokenText, Line: 1, Text: "Name this element."},
				{Kind: TokenChoice, Line: 2, Letter: 'W', Text: "Gold"},
				{Kind: TokenChoice, Line: 3, Letter: 'X', Text: "Silver"},
				{Kind: TokenBlank, Line: 4},
				{Kind: TokenAnswer, Line: 5, Text: "Gold"},
			},
		},
		{
			name: "canonical header with multi-word labels",
			in:   "BONUS EARTH AND SPACE Short Answer    Why?\n\nANSWER: Because",
			want: []Token{
				{Kind: TokenHeader, Line: 1, Header: Header{RoundWord: "BONUS", SubjectWord: "EARTH AND SPACE", FormatWord: "Short Answer"}},
				{Kind: TokenText, Line: 1, Text: "Why?"},
				{Kind: TokenBlank, Line: 2},
				{Kind: TokenAnswer, Line: 3, Text: "Because"},
			},
		},
		{
			name: "single spaced header is split greedily",
			in:   "tu es sa What is the closest star?\nanswer:   the  Sun",
			want: []Token{
				{Kind: TokenHeader, Line: 1, Header: Header{RoundWord: "tu", SubjectWord: "es", FormatWord: "sa"}},
				{Kind: TokenText, Line: 1, Text: "What is the closest star?"},
				{Kind: TokenAnswer, Line: 2, Text: "the  Sun"},
			},
		},
		{
			name: "leading B followed by format is a subject",
			in:   "B MC    Which organelle?",
			want: []Token{
				{Kind: TokenHeader, Line: 1, Header: Header{SubjectWord: "B", FormatWord: "MC"}},
				{Kind: TokenText, Line: 1, Text: "Which organelle?"},
			},
		},
		{
			name: "stem on the following line and leading blank lines",
			in:   "\n\nTU P SA\n  What is a newton?  \nANSWER: kg m/s^2",
			want: []Token{
				{Kind: TokenHeader, Line: 3, Header: Header{RoundWord: "TU", SubjectWord: "P", FormatWord: "SA"}},
				{Kind: TokenText, Line: 4, Text: "What is a newton?"},
				{Kind: TokenAnswer, Line: 5, Text: "kg m/s^2"},
			},
		},
		{
			name: "answer section is verbatim",
			in:   "TU C SA    Q?\nANSWER: one\n  W) not a choice\n\nACCEPT:  two",
			want: []Token{
				{Kind: TokenHeader, Line: 1, Header: Header{RoundWord: "TU", SubjectWord: "C", FormatWord: "SA"}},
				{Kind: TokenText, Line: 1, Text: "Q?"},
				{Kind: TokenAnswer, Line: 2, Text: "one"},
				{Kind: TokenText, Line: 3, Text: "  W) not a choice"},
				{Kind: TokenText, Line: 4, Text: ""},
				{Kind: TokenText, Line: 5, Text: "ACCEPT:  two"},
			},
		},
		{
			name: "two header words without a wide separator",
			in:   "es sa Why is the sky blue?\nANSWER: scattering",
			want: []Token{
				{Kind: TokenHeader, Line: 1, Header: Header{SubjectWord: "es", FormatWord: "sa"}},
				{Kind: TokenText, Line: 1, Text: "Why is the sky blue?"},
				{Kind: TokenAnswer, Line: 2, Text: "scattering"},
			},
		},
		{
			name: "lone subject word on its own line",
			in:   "Energy\nWhat is a joule?\nANSWER: a unit",
			want: []Token{
				{Kind: TokenHeader, Line: 1, Header: Header{SubjectWord: "Energy"}},
				{Kind: TokenText, Line: 2, Text: "What is a joule?"},
				{Kind: TokenAnswer, Line: 3, Text: "a unit"},
			},
		},
		{
			name: "unknown subject passes through",
			in:   "TU Q MC    Stem",
			want: []Token{
				{Kind: TokenHeader, Line: 1, Header: Header{RoundWord: "TU", SubjectWord: "Q", FormatWord: "MC"}},
				{Kind: TokenText, Line: 1, Text: "Stem"},
			},
		},
		{
			name: "carriage returns and vertical tabs break lines",
			in:   "TU M SA    2+2?\r\nANSWER: 4\v(ACCEPT: four)",
			want: []Token{
				{Kind: TokenHeader, Line: 1, Header: Header{RoundWord: "TU", SubjectWord: "M", FormatWord: "SA"}},
				{Kind: TokenText, Line: 1, Text: "2+2?"},
				{Kind: TokenAnswer, Line: 2, Text: "4"},
				{Kind: TokenText, Line: 3, Text: "(ACCEPT: four)"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Lex(tt.in)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("tokens mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLex_Errors(t *testing.T) {
	tests := []struct {
		name string
		in   string
		line int
	}{
		{name: "empty cell", in: "  \n\n", line: 0},
		{name: "prose first line", in: "Name this element.\nANSWER: Gold", line: 1},
		{name: "prose with wide spacing", in: "\nWhat is    this?", line: 2},
		{name: "prose opening with a subject word", in: "Energy is conserved in which process?\nANSWER: all", line: 1},
		{name: "prose opening with a subject code", in: "C is the symbol for which element?\nANSWER: carbon", line: 1},
		{name: "prose opening with math", in: "Math problem: what is 2+2?\nANSWER: 4", line: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Lex(tt.in)
			var lexErr *LexError
			if !errors.As(err, &lexErr) {
				t.Fatalf("expected *LexError, got %v", err)
			}
			if lexErr.Line != tt.line {
				t.Errorf("expected line %d, got %d", tt.line, lexErr.Line)
			}
			if err.Error() != "Couldn't parse question, was looking for HEADER" {
				t.Errorf("unexpected message: %s", err)
			}
		})
	}
}
