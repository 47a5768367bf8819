package grammar

import (
	"errors"
	"testing"

	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

// S → A B | B C,  A → B A | a,  B → C C | b,  C → A B | a
func makeG0(t *testing.T) *Grammar {
	g, err := New("G0",
		[]string{"A", "B", "C", "S"},
		[]string{"a", "b"},
		[]Rule{
			{"S", []string{"A", "B"}},
			{"S", []string{"B", "C"}},
			{"A", []string{"B", "A"}},
			{"A", []string{"a"}},
			{"B", []string{"C", "C"}},
			{"B", []string{"b"}},
			{"C", []string{"A", "B"}},
			{"C", []string{"a"}},
		}, "S")
	if err != nil {
		t.Fatal(err)
	}
	return g
}

func TestNewGrammar(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cnf.grammar")
	defer teardown()
	//
	g := makeG0(t)
	tracing.Select("cnf.grammar").SetTraceLevel(tracing.LevelDebug)
	g.Dump()
	if g.Size() != 8 {
		t.Errorf("expected 8 rules, have %d", g.Size())
	}
	if g.Start().Name != "S" {
		t.Errorf("expected start symbol S, is %v", g.Start())
	}
	if g.NonTerminalCount() != 4 {
		t.Errorf("expected 4 non-terminals, have %d", g.NonTerminalCount())
	}
	// non-terminals are numbered densely in ascending order of names
	for i, name := range []string{"A", "B", "C", "S"} {
		if A := g.NonTerminal(name); A == nil || A.Value != i {
			t.Errorf("expected %s to have value %d, is %v", name, i, A)
		}
	}
	if a := g.Terminal("a"); a == nil || a.Value != 4 || !a.IsTerminal() {
		t.Errorf("expected terminal a with value 4, is %v", a)
	}
	if g.Terminal("S") != nil || g.NonTerminal("a") != nil {
		t.Errorf("symbol kinds mixed up")
	}
	if g.SymbolByName("c") != nil {
		t.Errorf("did not expect undeclared symbol c to be found")
	}
	if len(g.TerminalRules()) != 3 || len(g.BinaryRules()) != 5 {
		t.Errorf("expected 3 terminal and 5 binary rules, have %d and %d",
			len(g.TerminalRules()), len(g.BinaryRules()))
	}
	if g.EpsilonRule() != nil {
		t.Errorf("G0 is not nullable")
	}
	if r := g.Rule(6); r.String() != "6: [C] ::= [A B]" {
		t.Errorf("unexpected rule string %q", r.String())
	}
	if g.Rule(8) != nil || g.Rule(-1) != nil {
		t.Errorf("expected nil for rule index out of range")
	}
}

func TestBuilder(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cnf.grammar")
	defer teardown()
	//
	b := NewBuilder("G1")
	b.Terminals("y")
	b.LHS("A").Epsilon()
	b.LHS("A").T("x").End()
	b.LHS("B").T("x").End()
	b.LHS("A").N("B").N("B").End()
	if n := b.LHS("B").N("B").N("B").End(); n != 4 {
		t.Errorf("expected serial 4 for last rule, is %d", n)
	}
	g, err := b.Grammar()
	if err != nil {
		t.Fatal(err)
	}
	if g.Start().Name != "A" {
		t.Errorf("expected start symbol to default to A, is %v", g.Start())
	}
	if g.EpsilonRule() == nil || g.EpsilonRule().Serial != 0 {
		t.Errorf("expected rule 0 to be the epsilon rule")
	}
	if g.Terminal("y") == nil {
		t.Errorf("expected unused terminal y to be declared")
	}
	n := 0
	g.EachTerminal(func(a *Symbol) { n++ })
	g.EachNonTerminal(func(A *Symbol) { n++ })
	if n != 4 {
		t.Errorf("expected 4 symbols, have %d", n)
	}
}

func TestInvalidGrammars(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cnf.grammar")
	defer teardown()
	//
	N, T := []string{"S", "A"}, []string{"a"}
	for i, test := range []struct {
		N, T  []string
		rules []Rule
		start string
	}{
		{N, T, []Rule{{"S", []string{"a"}}}, "X"},                 // start undeclared
		{N, T, []Rule{{"S", []string{"a"}}}, "a"},                 // start is terminal
		{N, T, nil, "S"},                                          // no rules
		{N, T, []Rule{{"a", []string{"a"}}}, "S"},                 // LHS terminal
		{N, T, []Rule{{"S", []string{"b"}}}, "S"},                 // undeclared RHS
		{N, T, []Rule{{"S", []string{"A"}}}, "S"},                 // unit production
		{N, T, []Rule{{"S", []string{"A", "a"}}}, "S"},            // terminal in binary rule
		{N, T, []Rule{{"S", []string{"A", "A", "A"}}}, "S"},       // RHS too long
		{N, T, []Rule{{"S", []string{"a"}}, {"A", nil}}, "S"},     // epsilon for non-start
		{[]string{"S", "a"}, T, []Rule{{"S", []string{"a"}}}, "S"}, // overlap
		{N, T, []Rule{{"S", nil}, {"S", []string{"A", "S"}}, {"A", []string{"a"}}}, "S"}, // nullable start on RHS
		{N, T, []Rule{{"A", []string{"S", "A"}}, {"S", nil}, {"A", []string{"a"}}}, "S"}, // RHS before epsilon
	} {
		_, err := New("bad", test.N, test.T, test.rules, test.start)
		if err == nil {
			t.Errorf("test %d: expected grammar to be rejected", i)
		} else if !errors.Is(err, ErrInvalidGrammar) {
			t.Errorf("test %d: expected ErrInvalidGrammar, got %v", i, err)
		} else {
			t.Logf("test %d: %v", i, err)
		}
	}
}

func TestBuilderRejectsMixedUsage(t *testing.T) {
	b := NewBuilder("Mixed")
	b.LHS("S").N("A").N("A").End()
	b.LHS("A").T("A").End()
	if _, err := b.Grammar(); !errors.Is(err, ErrInvalidGrammar) {
		t.Errorf("expected symbol used as terminal and non-terminal to be rejected, got %v", err)
	}
}

func TestFingerprint(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cnf.grammar")
	defer teardown()
	//
	g1, g2 := makeG0(t), makeG0(t)
	if g1.Fingerprint() == "" || g1.Fingerprint() != g2.Fingerprint() {
		t.Errorf("expected equal grammars to have equal fingerprints")
	}
	b := NewBuilder("G0-swapped")
	b.LHS("S").N("B").N("C").End() // rules 0 and 1 swapped
	b.LHS("S").N("A").N("B").End()
	b.LHS("A").N("B").N("A").End()
	b.LHS("A").T("a").End()
	b.LHS("B").N("C").N("C").End()
	b.LHS("B").T("b").End()
	b.LHS("C").N("A").N("B").End()
	b.LHS("C").T("a").End()
	g3, err := b.Grammar()
	if err != nil {
		t.Fatal(err)
	}
	if g3.Fingerprint() == g1.Fingerprint() {
		t.Errorf("expected reordered rules to change the fingerprint")
	}
}

func TestWord(t *testing.T) {
	w := Runes("baaba")
	if len(w) != 5 || w[0] != "b" || w.String() != "baaba" {
		t.Errorf("unexpected word %v", w)
	}
	long := Word{"id", "+", "id"}
	if long.String() != "id + id" {
		t.Errorf("expected blank separated word, have %q", long.String())
	}
	if !Word(nil).Equals(Word{}) || w.Equals(long) || !w.Equals(Runes("baaba")) {
		t.Errorf("word equality broken")
	}
}
