/*
Package scanner turns input text into words of terminals.

A word is handed to a recognizer as a sequence of terminal names. How input
text is split into terminals depends on the grammar at hand: single runes,
white-space separated fields, Go-like tokens, or the longest terminal of a
grammar matching the input. All of these are produced by tokenizers, which
share a common interface:

    t := scanner.RuneTokenizer(strings.NewReader("ba ab a"))
    word := scanner.ReadWord(t)        // = [ "b", "a", "a", "b", "a" ]

Tokenizers backed by text/scanner and by category codes of runes live in this
package; an adapter for lexmachine lives in sub-package `lexmach`.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package scanner

import (
	"fmt"
	"io"
	"text/scanner"

	"github.com/npillmayer/cnf"
	"github.com/npillmayer/cnf/grammar"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'cnf.scanner'.
func tracer() tracing.Trace {
	return tracing.Select("cnf.scanner")
}

// EOF is the token type every tokenizer returns at the end of its input.
const EOF cnf.TokType = scanner.EOF

// Token types of GoTokenizer, as defined by text/scanner. Operators and other
// single characters have their rune value as token type.
const (
	Ident   cnf.TokType = scanner.Ident
	Int     cnf.TokType = scanner.Int
	String  cnf.TokType = scanner.String
	Comment cnf.TokType = scanner.Comment
)

// Tokenizer is the interface of all the scanners of this module.
type Tokenizer interface {
	NextToken() cnf.Token
	SetErrorHandler(func(error))
}

// ReadWord reads tokens until EOF and returns their lexemes as a word.
func ReadWord(t Tokenizer) grammar.Word {
	word := grammar.Word{}
	for token := t.NextToken(); token.TokType() != EOF; token = t.NextToken() {
		tracer().Debugf("token %4d | %-12q | %v", token.TokType(), token.Lexeme(), token.Span())
		word = append(word, token.Lexeme())
	}
	return word
}

// logError is the error handler of tokenizers which have not been given one.
func logError(e error) {
	tracer().Errorf("scanner error: %v", e)
}

// --- Tokens ----------------------------------------------------------------

// Token is the token type produced by all the tokenizers of this module.
type Token struct {
	Type cnf.TokType
	Text string      // lexeme
	Val  interface{} // optional value
	At   cnf.Span    // byte positions
}

var _ cnf.Token = Token{}

// NewToken creates a token without a value.
func NewToken(typ cnf.TokType, text string, span cnf.Span) Token {
	return Token{Type: typ, Text: text, At: span}
}

// TokType is part of the cnf.Token interface.
func (t Token) TokType() cnf.TokType { return t.Type }

// Lexeme is part of the cnf.Token interface.
func (t Token) Lexeme() string { return t.Text }

// Value is part of the cnf.Token interface.
func (t Token) Value() interface{} { return t.Val }

// Span is part of the cnf.Token interface.
func (t Token) Span() cnf.Span { return t.At }

// --- Go tokenizer ----------------------------------------------------------

// GoScanner splits input into tokens similar to the Go language, using
// text/scanner. Create one with GoTokenizer.
type GoScanner struct {
	sc           scanner.Scanner
	onError      func(error)
	unifyStrings bool // raw strings and chars become strings
}

var _ Tokenizer = (*GoScanner)(nil)

// Option configures a GoScanner.
type Option func(gs *GoScanner)

// SkipComments sets or clears mode-flag SkipComments. It is set by default.
func SkipComments(b bool) Option {
	return func(gs *GoScanner) {
		if b {
			gs.sc.Mode |= scanner.SkipComments
		} else {
			gs.sc.Mode &^= scanner.SkipComments
		}
	}
}

// UnifyStrings lets raw strings and character literals be reported as strings.
func UnifyStrings(b bool) Option {
	return func(gs *GoScanner) {
		gs.unifyStrings = b
	}
}

// GoTokenizer creates a tokenizer for Go-like tokens. sourceID names the input
// in error messages.
func GoTokenizer(sourceID string, input io.Reader, opts ...Option) *GoScanner {
	gs := &GoScanner{onError: logError}
	gs.sc.Init(input)
	gs.sc.Filename = sourceID
	gs.sc.Error = func(s *scanner.Scanner, msg string) {
		gs.onError(fmt.Errorf("%s: %s", s.Position, msg))
	}
	for _, opt := range opts {
		opt(gs)
	}
	return gs
}

// SetErrorHandler sets an error handler for the scanner. nil restores the
// default, which traces errors.
func (gs *GoScanner) SetErrorHandler(h func(error)) {
	if h == nil {
		h = logError
	}
	gs.onError = h
}

// NextToken is part of the Tokenizer interface.
func (gs *GoScanner) NextToken() cnf.Token {
	typ := gs.sc.Scan()
	switch {
	case typ == scanner.EOF:
		tracer().Debugf("Go scanner reached end of input %s", gs.sc.Filename)
	case gs.unifyStrings && (typ == scanner.RawString || typ == scanner.Char):
		typ = scanner.String
	}
	from, to := gs.sc.Position.Offset, gs.sc.Pos().Offset
	if typ == scanner.EOF {
		from = to
	}
	return NewToken(cnf.TokType(typ), gs.sc.TokenText(), cnf.Span{uint64(from), uint64(to)})
}
