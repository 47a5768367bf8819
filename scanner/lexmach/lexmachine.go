package lexmach

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/npillmayer/cnf"
	"github.com/npillmayer/cnf/grammar"
	"github.com/npillmayer/cnf/scanner"
	"github.com/npillmayer/schuko/tracing"

	"github.com/timtadh/lexmachine"
	"github.com/timtadh/lexmachine/machines"
)

// tracer traces with key 'cnf.scanner'.
func tracer() tracing.Trace {
	return tracing.Select("cnf.scanner")
}

// Adapter holds a compiled lexmachine DFA. It creates a Tokenizer for every
// input and may be shared between goroutines.
type Adapter struct {
	lexer *lexmachine.Lexer
}

// Compile creates an adapter. setup, if not nil, adds patterns and actions to
// the lexer first. Then every literal is added as a pattern matching the
// literal text, with token type ids[literal].
//
// Compile returns an error if lexmachine fails to build the DFA.
func Compile(setup func(*lexmachine.Lexer), literals []string, ids map[string]int) (*Adapter, error) {
	lexer := lexmachine.NewLexer()
	if setup != nil {
		setup(lexer)
	}
	for _, lit := range literals {
		lexer.Add([]byte(Quote(lit)), Emit(ids[lit]))
	}
	if err := lexer.Compile(); err != nil {
		tracer().Errorf("cannot compile DFA: %v", err)
		return nil, err
	}
	return &Adapter{lexer: lexer}, nil
}

// ForGrammar creates an adapter recognizing the terminals of grammar g as
// literals. Token types are the symbol values of the terminals. White space
// between terminals is skipped.
func ForGrammar(g *grammar.Grammar) (*Adapter, error) {
	var literals []string
	ids := make(map[string]int)
	g.EachTerminal(func(a *grammar.Symbol) {
		literals = append(literals, a.Name)
		ids[a.Name] = a.Value
	})
	return Compile(func(lexer *lexmachine.Lexer) {
		lexer.Add([]byte(`( |\t|\n|\r)+`), Skip)
	}, literals, ids)
}

// Quote escapes the ASCII punctuation of a literal, making it a regular
// expression matching the literal only.
func Quote(lit string) string {
	var b strings.Builder
	for _, r := range lit {
		if r < unicode.MaxASCII && !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != ' ' {
			b.WriteRune('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Scan creates a tokenizer for input.
func (a *Adapter) Scan(input string) (*Tokenizer, error) {
	sc, err := a.lexer.Scanner([]byte(input))
	if err != nil {
		return nil, err
	}
	return &Tokenizer{sc: sc, size: len(input), onError: logError}, nil
}

// Tokenizer is a lexmachine scanner implementing scanner.Tokenizer.
type Tokenizer struct {
	sc      *lexmachine.Scanner
	size    int // length of input
	onError func(error)
}

var _ scanner.Tokenizer = (*Tokenizer)(nil)

// SetErrorHandler sets an error handler for the tokenizer. nil restores the
// default, which traces errors.
func (t *Tokenizer) SetErrorHandler(h func(error)) {
	if h == nil {
		h = logError
	}
	t.onError = h
}

func logError(e error) {
	tracer().Errorf("scanner error: %v", e)
}

// NextToken is part of the scanner.Tokenizer interface. Input no pattern
// matches is reported to the error handler and skipped.
func (t *Tokenizer) NextToken() cnf.Token {
	for {
		tok, err, eof := t.sc.Next()
		if eof {
			return scanner.NewToken(scanner.EOF, "", cnf.Span{uint64(t.size), uint64(t.size)})
		}
		if err != nil {
			t.onError(err)
			ui, ok := err.(*machines.UnconsumedInput)
			if !ok {
				t.onError(fmt.Errorf("giving up at position %d", t.sc.TC))
				return scanner.NewToken(scanner.EOF, "", cnf.Span{uint64(t.sc.TC), uint64(t.sc.TC)})
			}
			t.sc.TC = ui.FailTC
			continue
		}
		lt := tok.(*lexmachine.Token)
		tracer().Debugf("lexmachine token %d %q at %d", lt.Type, lt.Lexeme, lt.TC)
		return scanner.NewToken(cnf.TokType(lt.Type), string(lt.Lexeme),
			cnf.Span{uint64(lt.TC), uint64(lt.TC + len(lt.Lexeme))})
	}
}

// --- Actions ---------------------------------------------------------------

// Skip is an action which drops the match.
func Skip(*lexmachine.Scanner, *machines.Match) (interface{}, error) {
	return nil, nil
}

// Emit returns an action which turns a match into a token of type id.
func Emit(id int) lexmachine.Action {
	return func(s *lexmachine.Scanner, m *machines.Match) (interface{}, error) {
		return s.Token(id, string(m.Bytes), m), nil
	}
}
