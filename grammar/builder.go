package grammar

import (
	"github.com/emirpasic/gods/sets/treeset"
)

// Builder is a helper type to construct a grammar rule by rule.
// Symbols are declared implicitly by their usage: N() declares a non-terminal,
// T() declares a terminal. The start symbol defaults to the LHS of the
// first rule.
type Builder struct {
	name     string
	start    string
	nonterms *treeset.Set
	terms    *treeset.Set
	rules    []Rule
}

// NewBuilder gets a new grammar builder, given the name of the grammar to build.
func NewBuilder(name string) *Builder {
	return &Builder{
		name:     name,
		nonterms: treeset.NewWithStringComparator(),
		terms:    treeset.NewWithStringComparator(),
	}
}

// Start sets the start symbol explicitly.
func (b *Builder) Start(name string) *Builder {
	b.start = name
	b.nonterms.Add(name)
	return b
}

// Terminals declares terminals which may not be used by any rule.
func (b *Builder) Terminals(names ...string) *Builder {
	for _, a := range names {
		b.terms.Add(a)
	}
	return b
}

// LHS starts a new rule, given the name of the left-hand side non-terminal.
func (b *Builder) LHS(name string) *RuleBuilder {
	b.nonterms.Add(name)
	return &RuleBuilder{b: b, lhs: name}
}

// Grammar returns the grammar built so far. It is an error if the rules do not
// form a grammar in normal form.
func (b *Builder) Grammar() (*Grammar, error) {
	start := b.start
	if start == "" && len(b.rules) > 0 {
		start = b.rules[0].LHS
	}
	return New(b.name, names(b.nonterms), names(b.terms), b.rules, start)
}

func names(set *treeset.Set) []string {
	r := make([]string, 0, set.Size())
	for _, x := range set.Values() {
		r = append(r, x.(string))
	}
	return r
}

// RuleBuilder collects the right-hand side of a single rule.
type RuleBuilder struct {
	b   *Builder
	lhs string
	rhs []string
}

// N appends a non-terminal to the RHS.
func (rb *RuleBuilder) N(name string) *RuleBuilder {
	rb.b.nonterms.Add(name)
	rb.rhs = append(rb.rhs, name)
	return rb
}

// T appends a terminal to the RHS.
func (rb *RuleBuilder) T(name string) *RuleBuilder {
	rb.b.terms.Add(name)
	rb.rhs = append(rb.rhs, name)
	return rb
}

// End closes the rule and returns its serial number.
func (rb *RuleBuilder) End() int {
	rb.b.rules = append(rb.b.rules, Rule{LHS: rb.lhs, RHS: rb.rhs})
	return len(rb.b.rules) - 1
}

// Epsilon closes the rule as an epsilon-production and returns its serial number.
func (rb *RuleBuilder) Epsilon() int {
	rb.rhs = nil
	return rb.End()
}
