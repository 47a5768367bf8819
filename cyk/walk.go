package cyk

import (
	"errors"
	"fmt"

	"github.com/npillmayer/cnf"
	"github.com/npillmayer/cnf/grammar"
	"github.com/npillmayer/schuko/gconf"
)

// ErrInvalidTrace is returned (wrapped) for traces which do not encode a
// derivation of the grammar they are replayed with.
var ErrInvalidTrace = errors.New("invalid trace")

// --- Derivation listener ---------------------------------------------------

// Listener is a type for walking a derivation tree encoded by a trace.
//
// Reduce is called for every rule of the trace, after all of the symbols of its
// right-hand side have been visited. Terminal is called for every terminal of
// the derived word, from left to right. The values returned by both methods are
// handed to the Reduce call of the enclosing rule, as Value of a RuleNode.
type Listener interface {
	Reduce(lhs *grammar.Symbol, rule int, rhs []*RuleNode, span cnf.Span, level int) interface{}
	Terminal(a *grammar.Symbol, span cnf.Span, level int) interface{}
}

// RuleNode represents a node occuring during a derivation walk.
type RuleNode struct {
	sym    *grammar.Symbol
	Extent cnf.Span    // span of input positions this node derives
	Value  interface{} // user defined value
}

// Symbol returns the grammar symbol a RuleNode refers to.
// It is either a terminal or the LHS of a rule.
func (rnode *RuleNode) Symbol() *grammar.Symbol {
	return rnode.sym
}

// --- Tree walker -----------------------------------------------------------

// Walk replays a trace with grammar g, calling listener for every terminal and
// for every rule. It returns one RuleNode per complete derivation found in the
// trace; usually this is a single root. An empty trace results in no roots and
// no error.
//
// If the trace refers to rules not in g, if a rule's LHS does not match the
// non-terminal to be expanded next, or if the trace ends before a derivation is
// complete, Walk returns the roots found so far and an error wrapping
// ErrInvalidTrace.
func Walk(g *grammar.Grammar, trace Trace, listener Listener) ([]*RuleNode, error) {
	w := walker{g: g, trace: trace, listener: listener}
	var roots []*RuleNode
	var root *RuleNode
	var err error
	at := cursor{}
	for at.next < len(trace) {
		if root, at, err = w.expand(nil, at, 0); err != nil {
			invalidTrace(err)
			return roots, err
		}
		roots = append(roots, root)
	}
	return roots, nil
}

// WalkDerivation walks the derivation of the most recent successful parse.
// It returns nil if the last word has not been accepted.
func (p *Parser) WalkDerivation(listener Listener) (*RuleNode, error) {
	roots, err := Walk(p.g, p.trace, listener)
	if err != nil || len(roots) == 0 {
		return nil, err
	}
	return roots[0], nil
}

// ReconstructWord returns the word derived by a trace. For traces generated by
// Derive or Parser.Trace with the same grammar, this is the word the trace has
// been generated for. For traces consisting of several complete derivations the
// words are concatenated.
func ReconstructWord(g *grammar.Grammar, trace Trace) (grammar.Word, error) {
	collector := &wordCollector{word: grammar.Word{}}
	if _, err := Walk(g, trace, collector); err != nil {
		return nil, err
	}
	return collector.word, nil
}

// cursor is the state of a walk: the next trace entry to consume and the next
// input position to derive.
type cursor struct {
	next int
	pos  uint64
}

type walker struct {
	g        *grammar.Grammar
	trace    Trace
	listener Listener
}

// expand consumes the rules for a sub-tree rooted at non-terminal A, starting at
// cursor at. A == nil matches any rule. It returns the node for the sub-tree and
// the cursor behind it.
func (w walker) expand(A *grammar.Symbol, at cursor, level int) (*RuleNode, cursor, error) {
	if at.next >= len(w.trace) {
		return nil, at, fmt.Errorf("%w: trace exhausted while expanding %s at position %d",
			ErrInvalidTrace, A, at.pos)
	}
	no := w.trace[at.next]
	rule := w.g.Rule(no)
	if rule == nil {
		return nil, at, fmt.Errorf("%w: entry #%d refers to rule %d, grammar %s has %d rules",
			ErrInvalidTrace, at.next, no, w.g.Name, w.g.Size())
	}
	if A != nil && rule.LHS != A {
		return nil, at, fmt.Errorf("%w: entry #%d is rule %v, expected rule for %s",
			ErrInvalidTrace, at.next, rule, A)
	}
	start := at.pos
	at.next++
	rhs := make([]*RuleNode, len(rule.RHS()))
	for i, sym := range rule.RHS() {
		if sym.IsTerminal() {
			span := cnf.Span{at.pos, at.pos + 1}
			rhs[i] = &RuleNode{
				sym:    sym,
				Extent: span,
				Value:  w.listener.Terminal(sym, span, level+1),
			}
			at.pos++
			continue
		}
		var err error
		if rhs[i], at, err = w.expand(sym, at, level+1); err != nil {
			return nil, at, err
		}
	}
	span := cnf.Span{start, at.pos}
	node := &RuleNode{
		sym:    rule.LHS,
		Extent: span,
		Value:  w.listener.Reduce(rule.LHS, rule.Serial, rhs, span, level),
	}
	return node, at, nil
}

func invalidTrace(err error) {
	tracer().Errorf("%v", err)
	if gconf.GetBool("panic-on-invalid-trace") {
		panic(`Trace replay failed.

Configuration flag panic-on-invalid-trace is set to true. It is aimed at helping
to debug the generation of traces and do a post-mortem of what went wrong.
If you did not expect this to panic, please unset panic-on-invalid-trace to
its default (false).

` + err.Error())
	}
}

// --- Word collecting listener -----------------------------------------

type wordCollector struct {
	word grammar.Word
}

func (wc *wordCollector) Reduce(*grammar.Symbol, int, []*RuleNode, cnf.Span, int) interface{} {
	return nil
}

func (wc *wordCollector) Terminal(a *grammar.Symbol, _ cnf.Span, _ int) interface{} {
	wc.word = append(wc.word, a.Name)
	return nil
}

var _ Listener = &wordCollector{}
