package scanner

import (
	"bytes"
	"fmt"
	"io"
	"unicode"

	"github.com/npillmayer/cnf"
)

// --- Category codes --------------------------------------------------------

// CatCode is a category of runes. Runs of runes of equal category form a token,
// except for runes reported as loners.
type CatCode int16

// Pre-defined category codes. Runs of SpaceCatCode runes are dropped, runes of
// IllegalCatCode are reported to the error handler and dropped.
const (
	IllegalCatCode CatCode = 0
	SpaceCatCode   CatCode = 1
	LetterCatCode  CatCode = 2
	DigitCatCode   CatCode = 3
	OtherCatCode   CatCode = 4
)

// RuneCategorizer maps runes to categories.
type RuneCategorizer interface {
	Cat(r rune) (cat CatCode, isLoner bool)
}

// CategorizerFunc adapts a function to the RuneCategorizer interface.
type CategorizerFunc func(r rune) (CatCode, bool)

// Cat is part of the RuneCategorizer interface.
func (f CategorizerFunc) Cat(r rune) (CatCode, bool) {
	return f(r)
}

// RuneCategories makes every rune a terminal of its own, dropping white space.
var RuneCategories = CategorizerFunc(func(r rune) (CatCode, bool) {
	if unicode.IsSpace(r) {
		return SpaceCatCode, false
	}
	return OtherCatCode, true
})

// FieldCategories splits input at white space.
var FieldCategories = CategorizerFunc(func(r rune) (CatCode, bool) {
	if unicode.IsSpace(r) {
		return SpaceCatCode, false
	}
	return OtherCatCode, false
})

// ClassCategories groups runs of letters and runs of digits. Every other rune is
// a terminal of its own.
var ClassCategories = CategorizerFunc(func(r rune) (CatCode, bool) {
	switch {
	case unicode.IsSpace(r):
		return SpaceCatCode, false
	case unicode.IsLetter(r) || r == '_':
		return LetterCatCode, false
	case unicode.IsDigit(r):
		return DigitCatCode, false
	case unicode.IsGraphic(r):
		return OtherCatCode, true
	}
	return IllegalCatCode, true
})

// --- Category tokenizer ----------------------------------------------------

// CategoryTokenizer is a tokenizer which splits input into runs of runes of equal
// category. Token types are the category codes. Spans are byte positions.
type CategoryTokenizer struct {
	reader io.RuneReader
	rc     RuneCategorizer
	la     rune // lookahead rune
	lasize int  // byte length of la
	hasLA  bool
	isEOF  bool
	pos    uint64 // byte position of la
	writer bytes.Buffer
	Error  func(error) // error handler
}

var _ Tokenizer = (*CategoryTokenizer)(nil)

// NewCategoryTokenizer creates a tokenizer for input, using categorizer rc.
func NewCategoryTokenizer(input io.RuneReader, rc RuneCategorizer) *CategoryTokenizer {
	return &CategoryTokenizer{
		reader: input,
		rc:     rc,
		Error:  logError,
	}
}

// RuneTokenizer creates a tokenizer producing one token per rune, except for
// white space.
func RuneTokenizer(input io.RuneReader) *CategoryTokenizer {
	return NewCategoryTokenizer(input, RuneCategories)
}

// FieldTokenizer creates a tokenizer producing tokens separated by white space.
func FieldTokenizer(input io.RuneReader) *CategoryTokenizer {
	return NewCategoryTokenizer(input, FieldCategories)
}

// SetErrorHandler sets an error handler for the scanner.
func (ct *CategoryTokenizer) SetErrorHandler(h func(error)) {
	if h == nil {
		ct.Error = logError
		return
	}
	ct.Error = h
}

// NextToken is part of the Tokenizer interface.
func (ct *CategoryTokenizer) NextToken() cnf.Token {
	for {
		r, ok := ct.lookahead()
		if !ok {
			return NewToken(EOF, "", cnf.Span{ct.pos, ct.pos})
		}
		start := ct.pos
		cat, isLoner := ct.rc.Cat(r)
		ct.writer.Reset()
		ct.match()
		for !isLoner {
			if r, ok = ct.lookahead(); !ok {
				break
			}
			if c, _ := ct.rc.Cat(r); c != cat {
				break
			}
			ct.match()
		}
		switch cat {
		case SpaceCatCode:
			continue
		case IllegalCatCode:
			ct.Error(fmt.Errorf("illegal input %q at position %d", ct.writer.String(), start))
			continue
		}
		return NewToken(cnf.TokType(cat), ct.writer.String(), cnf.Span{start, ct.pos})
	}
}

func (ct *CategoryTokenizer) lookahead() (rune, bool) {
	if ct.hasLA {
		return ct.la, true
	}
	if ct.isEOF {
		return 0, false
	}
	r, sz, err := ct.reader.ReadRune()
	if err != nil {
		if err != io.EOF {
			ct.Error(fmt.Errorf("scanner cannot read input (%w)", err))
		}
		tracer().Debugf("CategoryTokenizer reached end of input")
		ct.isEOF = true
		return 0, false
	}
	ct.la, ct.lasize, ct.hasLA = r, sz, true
	return r, true
}

func (ct *CategoryTokenizer) match() {
	ct.writer.WriteRune(ct.la)
	ct.pos += uint64(ct.lasize)
	ct.hasLA = false
}
