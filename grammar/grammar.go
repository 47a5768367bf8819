package grammar

import (
	"errors"
	"fmt"

	"github.com/cnf/structhash"
	"github.com/emirpasic/gods/sets/treeset"
)

// ErrInvalidGrammar is returned (wrapped) for every grammar not in normal form.
var ErrInvalidGrammar = errors.New("invalid grammar")

func invalid(g string, format string, args ...interface{}) error {
	return fmt.Errorf("%w %s: %s", ErrInvalidGrammar, g, fmt.Sprintf(format, args...))
}

// Rule is a literal production, referring to symbols by name. An empty RHS
// denotes an epsilon-production.
type Rule struct {
	LHS string
	RHS []string
}

// Grammar is a type for a context-free grammar in Chomsky normal form.
// A grammar value is immutable after construction and may be shared between
// parsers.
type Grammar struct {
	Name         string
	nonterminals []*Symbol // index = Symbol.Value
	terminals    []*Symbol // index = Symbol.Value - len(nonterminals)
	symbols      map[string]*Symbol
	rules        []*Production
	start        *Symbol
	termRules    []*Production // A → a, ordered by serial
	binRules     []*Production // A → B C, ordered by serial
	epsRule      *Production   // first S → ε for start symbol S, if any
}

// New creates a grammar from explicit sets of non-terminals and terminals, an
// ordered list of rules and a start symbol. Duplicate names within a set are
// ignored. Rules keep their position in the list as serial number.
//
// New returns an error wrapping ErrInvalidGrammar if the grammar is not in
// normal form.
func New(name string, nonterminals, terminals []string, rules []Rule, start string) (*Grammar, error) {
	N := treeset.NewWithStringComparator()
	for _, A := range nonterminals {
		N.Add(A)
	}
	T := treeset.NewWithStringComparator()
	for _, a := range terminals {
		T.Add(a)
	}
	g := &Grammar{
		Name:         name,
		nonterminals: make([]*Symbol, 0, N.Size()),
		terminals:    make([]*Symbol, 0, T.Size()),
		symbols:      make(map[string]*Symbol, N.Size()+T.Size()),
	}
	for _, x := range N.Values() {
		A := x.(string)
		if A == "" {
			return nil, invalid(name, "empty non-terminal name")
		}
		if T.Contains(A) {
			return nil, invalid(name, "symbol %q declared as terminal and as non-terminal", A)
		}
		sym := &Symbol{Name: A, Value: len(g.nonterminals)}
		g.nonterminals = append(g.nonterminals, sym)
		g.symbols[A] = sym
	}
	for _, x := range T.Values() {
		a := x.(string)
		if a == "" {
			return nil, invalid(name, "empty terminal name")
		}
		sym := &Symbol{Name: a, Value: N.Size() + len(g.terminals), terminal: true}
		g.terminals = append(g.terminals, sym)
		g.symbols[a] = sym
	}
	if g.start = g.NonTerminal(start); g.start == nil {
		return nil, invalid(name, "start symbol %q is not a declared non-terminal", start)
	}
	if len(rules) == 0 {
		return nil, invalid(name, "grammar has no rules")
	}
	g.rules = make([]*Production, len(rules))
	for i, r := range rules {
		p, err := g.production(i, r)
		if err != nil {
			return nil, err
		}
		g.rules[i] = p
		switch {
		case p.IsEpsilon():
			if g.epsRule == nil {
				g.epsRule = p
			}
		case p.IsTerminal():
			g.termRules = append(g.termRules, p)
		default:
			g.binRules = append(g.binRules, p)
		}
	}
	if g.epsRule != nil {
		for _, p := range g.binRules {
			if p.rhs[0] == g.start || p.rhs[1] == g.start {
				return nil, invalid(name, "rule %d: start symbol %s is nullable and must not occur on a RHS",
					p.Serial, g.start)
			}
		}
	}
	tracer().Debugf("grammar %s: %d non-terminals, %d terminals, %d rules",
		name, len(g.nonterminals), len(g.terminals), len(g.rules))
	return g, nil
}

// production resolves and checks a rule literal.
func (g *Grammar) production(serial int, r Rule) (*Production, error) {
	lhs := g.NonTerminal(r.LHS)
	if lhs == nil {
		return nil, invalid(g.Name, "rule %d: LHS %q is not a declared non-terminal", serial, r.LHS)
	}
	p := &Production{Serial: serial, LHS: lhs, rhs: make([]*Symbol, len(r.RHS))}
	for k, name := range r.RHS {
		if p.rhs[k] = g.SymbolByName(name); p.rhs[k] == nil {
			return nil, invalid(g.Name, "rule %d: symbol %q is not declared", serial, name)
		}
	}
	switch len(p.rhs) {
	case 0:
		if lhs != g.start {
			return nil, invalid(g.Name, "rule %d: epsilon-production for %s, which is not the start symbol",
				serial, lhs)
		}
	case 1:
		if !p.rhs[0].IsTerminal() {
			return nil, invalid(g.Name, "rule %d: unit production %s → %s", serial, lhs, p.rhs[0])
		}
	case 2:
		if p.rhs[0].IsTerminal() || p.rhs[1].IsTerminal() {
			return nil, invalid(g.Name, "rule %d: binary production %s → %v contains a terminal",
				serial, lhs, p.rhs)
		}
	default:
		return nil, invalid(g.Name, "rule %d: RHS of length %d", serial, len(p.rhs))
	}
	return p, nil
}

// Start returns the start symbol.
func (g *Grammar) Start() *Symbol {
	return g.start
}

// Size returns the number of rules.
func (g *Grammar) Size() int {
	return len(g.rules)
}

// Rule returns rule number no, or nil if no is out of range.
func (g *Grammar) Rule(no int) *Production {
	if no < 0 || no >= len(g.rules) {
		return nil
	}
	return g.rules[no]
}

// NonTerminalCount returns |N|.
func (g *Grammar) NonTerminalCount() int {
	return len(g.nonterminals)
}

// SymbolByName returns a terminal or non-terminal by name, or nil.
func (g *Grammar) SymbolByName(name string) *Symbol {
	return g.symbols[name]
}

// NonTerminal returns a non-terminal by name, or nil.
func (g *Grammar) NonTerminal(name string) *Symbol {
	if sym := g.symbols[name]; sym != nil && !sym.IsTerminal() {
		return sym
	}
	return nil
}

// Terminal returns a terminal by name, or nil.
func (g *Grammar) Terminal(name string) *Symbol {
	if sym := g.symbols[name]; sym != nil && sym.IsTerminal() {
		return sym
	}
	return nil
}

// EachNonTerminal calls mapper for every non-terminal, in order of their values.
func (g *Grammar) EachNonTerminal(mapper func(A *Symbol)) {
	for _, A := range g.nonterminals {
		mapper(A)
	}
}

// EachTerminal calls mapper for every terminal, in order of their values.
func (g *Grammar) EachTerminal(mapper func(a *Symbol)) {
	for _, a := range g.terminals {
		mapper(a)
	}
}

// TerminalRules returns all rules A → a, ordered by serial.
func (g *Grammar) TerminalRules() []*Production {
	return g.termRules
}

// BinaryRules returns all rules A → B C, ordered by serial.
func (g *Grammar) BinaryRules() []*Production {
	return g.binRules
}

// EpsilonRule returns the first epsilon-production of the start symbol, or nil.
func (g *Grammar) EpsilonRule() *Production {
	return g.epsRule
}

// Dump is a debugging helper, tracing all rules at level Debug.
func (g *Grammar) Dump() {
	tracer().Debugf("--- %s --------------------------------------------", g.Name)
	tracer().Debugf("start symbol %s", g.start)
	for _, r := range g.rules {
		tracer().Debugf("%v", r)
	}
	tracer().Debugf("-------------------------------------------------------")
}

// fingerprint is the hashable view of a grammar. Names of the grammar itself
// do not take part.
type fingerprint struct {
	Start        string
	NonTerminals []string
	Terminals    []string
	Rules        [][]string
}

// Fingerprint returns a hash identifying the structure of a grammar: its symbol
// sets, start symbol and the ordered rules. Two grammars with equal fingerprints
// produce identical traces for every word.
func (g *Grammar) Fingerprint() string {
	fp := fingerprint{Start: g.start.Name}
	for _, A := range g.nonterminals {
		fp.NonTerminals = append(fp.NonTerminals, A.Name)
	}
	for _, a := range g.terminals {
		fp.Terminals = append(fp.Terminals, a.Name)
	}
	for _, r := range g.rules {
		rule := []string{r.LHS.Name}
		for _, sym := range r.rhs {
			rule = append(rule, sym.Name)
		}
		fp.Rules = append(fp.Rules, rule)
	}
	hash, err := structhash.Hash(fp, 1)
	if err != nil {
		tracer().Errorf("cannot hash grammar %s: %v", g.Name, err)
		return ""
	}
	return hash
}
