package cnf

import "fmt"

// --- Tokens ----------------------------------------------------------------

// TokType is the category of a Token. Constants are left to the scanners, every
// scanner has its own set of categories.
type TokType int

// Token is an occurrence of a terminal in an input text, as produced by a
// scanner. For the word "baaba", split into runes, the second token is
//
//    TokType = 4           // category, scanner specific
//    Lexeme  = "a"         // name of the terminal
//    Span    = (1…2)       // byte positions in the input text
//
type Token interface {
	TokType() TokType
	Lexeme() string
	Value() interface{}
	Span() Span
}

// --- Spans -----------------------------------------------------------------

// Span is a half-open range of input positions (x…y). Derivation trees track
// for every node the range of word positions it derives; tokens track byte
// positions of the input text.
type Span [2]uint64

// From returns the first position of a span.
func (s Span) From() uint64 {
	return s[0]
}

// To returns the position just behind a span.
func (s Span) To() uint64 {
	return s[1]
}

// Len returns the number of positions covered.
func (s Span) Len() uint64 {
	return s[1] - s[0]
}

// IsNull is true for (0…0).
func (s Span) IsNull() bool {
	return s[0] == 0 && s[1] == 0
}

// Extend returns the smallest span covering s and other.
func (s Span) Extend(other Span) Span {
	return Span{min(s[0], other[0]), max(s[1], other[1])}
}

func (s Span) String() string {
	return fmt.Sprintf("(%d…%d)", s[0], s[1])
}
