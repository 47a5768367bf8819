package cyk

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/emirpasic/gods/stacks/arraystack"
	"github.com/npillmayer/cnf/chart"
	"github.com/npillmayer/cnf/grammar"
	"github.com/npillmayer/schuko/gconf"
	"golang.org/x/sync/errgroup"
)

// Trace is an ordered sequence of rule numbers, encoding a derivation tree in
// pre-order. An empty trace signals that no derivation exists.
type Trace []int

func (t Trace) String() string {
	s := make([]string, len(t))
	for i, r := range t {
		s[i] = fmt.Sprintf("%d", r)
	}
	return "[" + strings.Join(s, " ") + "]"
}

// Derive returns the trace of a derivation of word from grammar g, or an empty
// trace if g does not derive word.
func Derive(g *grammar.Grammar, word grammar.Word) Trace {
	p := NewParser(g)
	if !p.Parse(word) {
		return Trace{}
	}
	return p.Trace()
}

// Parser is a CYK recognizer for a grammar. A parser may be used for
// more than one word, but not concurrently.
type Parser struct {
	g       *grammar.Grammar
	word    grammar.Word
	input   []*grammar.Symbol // terminals of word
	chart   *chart.Chart
	trace   Trace
	workers int // > 1 for concurrent table construction
}

// Option configures a parser.
type Option func(p *Parser)

// Parallel lets a parser fill each tier of its parse table with up to
// workers goroutines. workers < 2 means serial construction.
func Parallel(workers int) Option {
	return func(p *Parser) {
		p.workers = workers
	}
}

// NewParser creates a parser for grammar g.
func NewParser(g *grammar.Grammar, opts ...Option) *Parser {
	p := &Parser{g: g}
	if gconf.GetBool("cyk-parallel") {
		p.workers = runtime.NumCPU()
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Workers returns the number of goroutines filling a tier of the parse table.
func (p *Parser) Workers() int {
	return p.workers
}

// Grammar returns the grammar of this parser.
func (p *Parser) Grammar() *grammar.Grammar {
	return p.g
}

// Word returns the word of the most recent call to Parse.
func (p *Parser) Word() grammar.Word {
	return p.word
}

// Chart returns the parse table of the most recent call to Parse. It is nil for
// the empty word and for words containing symbols which are not terminals of
// the grammar.
func (p *Parser) Chart() *chart.Chart {
	return p.chart
}

// Trace returns the trace of the most recent successful parse, or an empty trace.
func (p *Parser) Trace() Trace {
	if p.trace == nil {
		return Trace{}
	}
	return p.trace
}

// Parse checks if word is derivable from the grammar. If it is, the derivation
// trace is available with Trace() afterwards.
func (p *Parser) Parse(word grammar.Word) bool {
	p.word, p.chart, p.trace = word, nil, nil
	if len(word) == 0 {
		if r := p.g.EpsilonRule(); r != nil {
			tracer().Debugf("empty word derived by rule %v", r)
			p.trace = Trace{r.Serial}
			return true
		}
		return false
	}
	p.input = make([]*grammar.Symbol, len(word))
	for k, name := range word {
		if p.input[k] = p.g.Terminal(name); p.input[k] == nil {
			tracer().Infof("symbol %q at position %d is not a terminal of %s", name, k, p.g.Name)
			return false
		}
	}
	n := len(word)
	p.chart = chart.New(p.g.NonTerminalCount(), n)
	p.fillTerminals()
	for l := 2; l <= n; l++ {
		p.fillTier(l)
	}
	tracer().Debugf("chart for %q has %d entries", word, p.chart.ValueCount())
	if !p.chart.Has(p.g.Start().Value, 0, n-1) {
		tracer().Infof("%q is not in L(%s)", word, p.g.Name)
		return false
	}
	p.trace = p.backtrace()
	tracer().Infof("%q is in L(%s), trace = %v", word, p.g.Name, p.trace)
	return true
}

// fillTerminals sets the cells for sub-words of length 1. Rules are visited in
// order of their serial numbers, thus the lowest rule number wins.
func (p *Parser) fillTerminals() {
	for pos, a := range p.input {
		for _, r := range p.g.TerminalRules() {
			if r.RHS()[0] == a {
				p.chart.Set(r.LHS.Value, pos, pos, int32(r.Serial), chart.NullValue)
			}
		}
	}
}

// fillTier sets the cells for all sub-words of length l. Cells of a tier depend
// on shorter sub-words only, therefore start positions may be handled concurrently.
func (p *Parser) fillTier(l int) {
	last := len(p.input) - l // last start position
	if p.workers < 2 || last < 1 {
		for i := 0; i <= last; i++ {
			p.fillCell(i, i+l-1)
		}
		return
	}
	var group errgroup.Group
	for w := 0; w < p.workers && w <= last; w++ {
		w := w
		group.Go(func() error {
			for i := w; i <= last; i += p.workers {
				p.fillCell(i, i+l-1)
			}
			return nil
		})
	}
	group.Wait()
}

// fillCell finds derivations A → B C for word[i…j], with B deriving word[i…k]
// and C deriving word[k+1…j]. Split points are tried from right to left, and
// for each split point rules from the highest serial number down. The first
// match for A is kept, together with its split point.
func (p *Parser) fillCell(i, j int) {
	rules := p.g.BinaryRules()
	for k := j - 1; k >= i; k-- {
		for n := len(rules) - 1; n >= 0; n-- {
			r := rules[n]
			B, C := r.RHS()[0], r.RHS()[1]
			if p.chart.Has(B.Value, i, k) && p.chart.Has(C.Value, k+1, j) {
				p.chart.Set(r.LHS.Value, i, j, int32(r.Serial), int32(k))
			}
		}
	}
}

type cell struct {
	A, i, j int
}

// backtrace collects the rules of the derivation recorded in the chart, in
// pre-order. Right children are pushed first, to be popped after the complete
// left sub-tree.
func (p *Parser) backtrace() Trace {
	n := len(p.input)
	trace := make(Trace, 0, 2*n-1)
	stack := arraystack.New()
	stack.Push(cell{A: p.g.Start().Value, i: 0, j: n - 1})
	for !stack.Empty() {
		x, _ := stack.Pop()
		c := x.(cell)
		rule, split := p.chart.Values(c.A, c.i, c.j)
		trace = append(trace, int(rule))
		if c.i == c.j {
			continue
		}
		rhs, k := p.g.Rule(int(rule)).RHS(), int(split)
		stack.Push(cell{A: rhs[1].Value, i: k + 1, j: c.j})
		stack.Push(cell{A: rhs[0].Value, i: c.i, j: k})
	}
	return trace
}
