package loader

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/npillmayer/cnf"
	"github.com/npillmayer/cnf/grammar"
	"github.com/npillmayer/cnf/scanner"
	"github.com/npillmayer/cnf/scanner/lexmach"
	"github.com/timtadh/lexmachine"
)

// ErrSyntax is returned (wrapped) for malformed grammar input.
var ErrSyntax = errors.New("syntax error")

// Token types of the rule notation.
const (
	tokIdent cnf.TokType = iota + 1
	tokQuoted
	tokArrow
	tokBar
	tokSemicolon
	tokEpsilon
	tokStart
	tokTerminals
)

var notationLiterals = []string{"->", "::=", "|", ";", "%empty", "%start", "%terminals"}

var notationTokenIds = map[string]int{
	"->":         int(tokArrow),
	"::=":        int(tokArrow),
	"|":          int(tokBar),
	";":          int(tokSemicolon),
	"%empty":     int(tokEpsilon),
	"%start":     int(tokStart),
	"%terminals": int(tokTerminals),
}

func initNotationLexer(lexer *lexmachine.Lexer) {
	lexer.Add([]byte(`#[^\n]*`), lexmach.Skip)
	lexer.Add([]byte(`( |\t|\n|\r)+`), lexmach.Skip)
	lexer.Add([]byte(`([a-z]|[A-Z]|_)([a-z]|[A-Z]|[0-9]|_)*`), lexmach.Emit(int(tokIdent)))
	lexer.Add([]byte(`'[^']*'`), lexmach.Emit(int(tokQuoted)))
	lexer.Add([]byte(`\"[^"]*\"`), lexmach.Emit(int(tokQuoted)))
	lexer.Add([]byte("→"), lexmach.Emit(int(tokArrow)))
	lexer.Add([]byte("ε"), lexmach.Emit(int(tokEpsilon)))
}

// The lexer is compiled once, on first use.
var notationLexer struct {
	once sync.Once
	lm   *lexmach.Adapter
	err  error
}

func notationScanner(input string) (scanner.Tokenizer, error) {
	notationLexer.once.Do(func() {
		notationLexer.lm, notationLexer.err = lexmach.Compile(initNotationLexer,
			notationLiterals, notationTokenIds)
	})
	if notationLexer.err != nil {
		return nil, notationLexer.err
	}
	return notationLexer.lm.Scan(input)
}

// ReadNotation reads a grammar in rule notation.
func ReadNotation(name string, r io.Reader) (*grammar.Grammar, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return ParseNotation(name, string(src))
}

// ParseNotation creates a grammar from a string in rule notation.
func ParseNotation(name string, input string) (*grammar.Grammar, error) {
	sc, err := notationScanner(input)
	if err != nil {
		return nil, err
	}
	p := &notationParser{
		name:     name,
		input:    input,
		quoted:   make(map[string]bool),
		declared: make(map[string]bool),
		lhsNames: make(map[string]bool),
	}
	sc.SetErrorHandler(func(e error) {
		if p.err == nil {
			p.err = fmt.Errorf("%w in %s: %v", ErrSyntax, name, e)
		}
	})
	for token := sc.NextToken(); token.TokType() != scanner.EOF; token = sc.NextToken() {
		p.tokens = append(p.tokens, token)
	}
	if p.err != nil {
		return nil, p.err
	}
	if err = p.parse(); err != nil {
		return nil, err
	}
	return p.grammar()
}

type notationParser struct {
	name     string
	input    string
	tokens   []cnf.Token
	pos      int
	start    string
	rules    []grammar.Rule
	order    []string        // symbol names in order of appearance
	quoted   map[string]bool // names appearing quoted
	declared map[string]bool // names declared by %terminals
	lhsNames map[string]bool
	err      error
}

func (p *notationParser) peek() cnf.Token {
	if p.pos < len(p.tokens) {
		return p.tokens[p.pos]
	}
	return nil
}

func (p *notationParser) next() cnf.Token {
	t := p.peek()
	if t != nil {
		p.pos++
	}
	return t
}

func (p *notationParser) expect(typ cnf.TokType, what string) (cnf.Token, error) {
	t := p.next()
	if t == nil {
		return nil, p.errorf(len(p.input), "expected %s, found end of input", what)
	}
	if t.TokType() != typ {
		return nil, p.errorf(int(t.Span().From()), "expected %s, found %q", what, t.Lexeme())
	}
	return t, nil
}

// parse reads declarations until the end of input.
func (p *notationParser) parse() error {
	for t := p.peek(); t != nil; t = p.peek() {
		var err error
		switch t.TokType() {
		case tokStart:
			err = p.startClause()
		case tokTerminals:
			err = p.terminalsClause()
		case tokIdent:
			err = p.ruleClause()
		default:
			err = p.errorf(int(t.Span().From()), "unexpected %q", t.Lexeme())
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (p *notationParser) startClause() error {
	p.next()
	t, err := p.expect(tokIdent, "start symbol")
	if err != nil {
		return err
	}
	if p.start != "" {
		return p.errorf(int(t.Span().From()), "start symbol set twice")
	}
	p.start = t.Lexeme()
	_, err = p.expect(tokSemicolon, "';'")
	return err
}

func (p *notationParser) terminalsClause() error {
	p.next()
	for t := p.next(); t == nil || t.TokType() != tokSemicolon; t = p.next() {
		if t == nil {
			return p.errorf(len(p.input), "unterminated %%terminals clause")
		}
		switch t.TokType() {
		case tokIdent:
			p.symbol(t.Lexeme(), false)
			p.declared[t.Lexeme()] = true
		case tokQuoted:
			p.symbol(unquote(t.Lexeme()), true)
			p.declared[unquote(t.Lexeme())] = true
		default:
			return p.errorf(int(t.Span().From()), "expected terminal, found %q", t.Lexeme())
		}
	}
	return nil
}

// ruleClause reads  A -> alt | alt … ;
func (p *notationParser) ruleClause() error {
	lhs := p.next().Lexeme()
	p.symbol(lhs, false)
	p.lhsNames[lhs] = true
	if _, err := p.expect(tokArrow, "'->'"); err != nil {
		return err
	}
	for {
		rhs, err := p.alternative()
		if err != nil {
			return err
		}
		p.rules = append(p.rules, grammar.Rule{LHS: lhs, RHS: rhs})
		t := p.next()
		if t == nil {
			return p.errorf(len(p.input), "expected ';', found end of input")
		}
		switch t.TokType() {
		case tokSemicolon:
			return nil
		case tokBar:
			continue
		}
		return p.errorf(int(t.Span().From()), "expected '|' or ';', found %q", t.Lexeme())
	}
}

// alternative reads a sequence of symbols or ε. The empty sequence is ε, too.
func (p *notationParser) alternative() ([]string, error) {
	var rhs []string
	if t := p.peek(); t != nil && t.TokType() == tokEpsilon {
		p.next()
		return rhs, nil
	}
	for t := p.peek(); t != nil; t = p.peek() {
		switch t.TokType() {
		case tokIdent:
			rhs = append(rhs, t.Lexeme())
			p.symbol(t.Lexeme(), false)
		case tokQuoted:
			rhs = append(rhs, unquote(t.Lexeme()))
			p.symbol(unquote(t.Lexeme()), true)
		case tokEpsilon:
			return nil, p.errorf(int(t.Span().From()), "ε must be the only symbol of a right-hand side")
		default:
			return rhs, nil
		}
		p.next()
	}
	return rhs, nil
}

func (p *notationParser) symbol(name string, quoted bool) {
	if quoted {
		p.quoted[name] = true
	}
	for _, s := range p.order {
		if s == name {
			return
		}
	}
	p.order = append(p.order, name)
}

// grammar classifies the names found and creates the grammar.
func (p *notationParser) grammar() (*grammar.Grammar, error) {
	if len(p.rules) == 0 {
		return nil, p.errorf(len(p.input), "no rules found")
	}
	var N, T []string
	for _, name := range p.order {
		if p.quoted[name] || p.declared[name] {
			T = append(T, name)
			if p.lhsNames[name] {
				// let grammar.New report the clash
				N = append(N, name)
			}
		} else {
			N = append(N, name)
		}
	}
	start := p.start
	if start == "" {
		start = p.rules[0].LHS
	}
	tracer().Debugf("%s: %d rules, N = %v, T = %v, start = %s", p.name, len(p.rules), N, T, start)
	return grammar.New(p.name, N, T, p.rules, start)
}

func (p *notationParser) errorf(offset int, format string, args ...interface{}) error {
	line, col := position(p.input, offset)
	return fmt.Errorf("%w in %s at %d:%d: %s", ErrSyntax, p.name, line, col, fmt.Sprintf(format, args...))
}

// position converts a byte offset to 1-based line and column numbers.
func position(input string, offset int) (line, col int) {
	if offset > len(input) {
		offset = len(input)
	}
	before := input[:offset]
	line = strings.Count(before, "\n") + 1
	col = offset - strings.LastIndex(before, "\n")
	return
}

func unquote(s string) string {
	if len(s) >= 2 {
		return s[1 : len(s)-1]
	}
	return s
}
