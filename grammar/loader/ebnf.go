package loader

import (
	"fmt"
	"io"

	"github.com/emirpasic/gods/maps/treemap"
	"github.com/npillmayer/cnf/grammar"
	"golang.org/x/exp/ebnf"
)

// ReadEBNF reads a grammar in EBNF notation. If start is empty, the first
// production of the input is the start symbol. Every production has to be
// reachable from the start symbol.
func ReadEBNF(name string, r io.Reader, start string) (*grammar.Grammar, error) {
	eg, err := ebnf.Parse(name, r)
	if err != nil {
		return nil, fmt.Errorf("%w in %s: %v", ErrSyntax, name, err)
	}
	bySource := treemap.NewWithIntComparator() // productions in source order
	for _, prod := range eg {
		bySource.Put(prod.Name.Pos().Offset, prod)
	}
	prods := make([]*ebnf.Production, 0, bySource.Size())
	for _, x := range bySource.Values() {
		prods = append(prods, x.(*ebnf.Production))
	}
	if len(prods) == 0 {
		return nil, fmt.Errorf("%w in %s: no productions found", ErrSyntax, name)
	}
	if start == "" {
		start = prods[0].Name.String
	}
	if err = ebnf.Verify(eg, start); err != nil {
		return nil, fmt.Errorf("%w in %s: %v", ErrSyntax, name, err)
	}
	conv := &ebnfConverter{name: name, terminals: make(map[string]bool)}
	var N []string
	for _, prod := range prods {
		N = append(N, prod.Name.String)
		if err = conv.production(prod); err != nil {
			return nil, err
		}
	}
	tracer().Debugf("%s: %d rules from %d EBNF productions", name, len(conv.rules), len(prods))
	return grammar.New(name, N, conv.order, conv.rules, start)
}

type ebnfConverter struct {
	name      string
	rules     []grammar.Rule
	terminals map[string]bool
	order     []string // terminals in order of appearance
}

// production adds a rule for every top-level alternative of prod.
func (conv *ebnfConverter) production(prod *ebnf.Production) error {
	lhs := prod.Name.String
	expr := prod.Expr
	if opt, ok := expr.(*ebnf.Option); ok {
		conv.rules = append(conv.rules, grammar.Rule{LHS: lhs})
		expr = opt.Body
	}
	if expr == nil {
		conv.rules = append(conv.rules, grammar.Rule{LHS: lhs})
		return nil
	}
	alts, ok := expr.(ebnf.Alternative)
	if !ok {
		alts = ebnf.Alternative{expr}
	}
	for _, alt := range alts {
		rhs, err := conv.sequence(alt, nil)
		if err != nil {
			return err
		}
		conv.rules = append(conv.rules, grammar.Rule{LHS: lhs, RHS: rhs})
	}
	return nil
}

// sequence flattens a sequence of names and tokens, possibly grouped.
func (conv *ebnfConverter) sequence(expr ebnf.Expression, rhs []string) ([]string, error) {
	switch x := expr.(type) {
	case nil:
		return rhs, nil
	case *ebnf.Name:
		return append(rhs, x.String), nil
	case *ebnf.Token:
		if !conv.terminals[x.String] {
			conv.terminals[x.String] = true
			conv.order = append(conv.order, x.String)
		}
		return append(rhs, x.String), nil
	case ebnf.Sequence:
		var err error
		for _, e := range x {
			if rhs, err = conv.sequence(e, rhs); err != nil {
				return nil, err
			}
		}
		return rhs, nil
	case *ebnf.Group:
		if _, isAlt := x.Body.(ebnf.Alternative); !isAlt {
			return conv.sequence(x.Body, rhs)
		}
	}
	pos := expr.Pos()
	return nil, fmt.Errorf("%w in %s at %d:%d: %T cannot be expressed in normal form",
		ErrSyntax, conv.name, pos.Line, pos.Column, expr)
}
