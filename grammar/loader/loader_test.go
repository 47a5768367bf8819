package loader

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/npillmayer/cnf/cyk"
	"github.com/npillmayer/cnf/grammar"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func makeG0(t *testing.T) *grammar.Grammar {
	b := grammar.NewBuilder("G0")
	b.LHS("S").N("A").N("B").End()
	b.LHS("S").N("B").N("C").End()
	b.LHS("A").N("B").N("A").End()
	b.LHS("A").T("a").End()
	b.LHS("B").N("C").N("C").End()
	b.LHS("B").T("b").End()
	b.LHS("C").N("A").N("B").End()
	b.LHS("C").T("a").End()
	g, err := b.Grammar()
	if err != nil {
		t.Fatal(err)
	}
	return g
}

func TestNotationFile(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cnf.loader")
	defer teardown()
	//
	g, err := File("testdata/g0.cnf")
	if err != nil {
		t.Fatal(err)
	}
	if g.Name != "g0" || g.Size() != 8 || g.Start().Name != "S" {
		t.Errorf("unexpected grammar %s with %d rules, start %v", g.Name, g.Size(), g.Start())
	}
	if g.Fingerprint() != makeG0(t).Fingerprint() {
		t.Errorf("expected loaded grammar to equal G0")
		g.Dump()
	}
	trace := cyk.Derive(g, grammar.Runes("baaba"))
	if diff := cmp.Diff(cyk.Trace{0, 2, 5, 3, 4, 6, 3, 5, 7}, trace); diff != "" {
		t.Errorf("trace mismatch (-want +got):\n%s", diff)
	}
}

func TestNotation(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cnf.loader")
	defer teardown()
	//
	g, err := ParseNotation("G1", `
		%terminals x y ;
		A -> %empty | x ;
		B -> x ;
		A -> B B ;
		B -> B B ;  # recursive`)
	if err != nil {
		t.Fatal(err)
	}
	if g.EpsilonRule() == nil || g.EpsilonRule().Serial != 0 {
		t.Errorf("expected rule 0 to be the epsilon rule")
	}
	if g.Terminal("y") == nil || g.Terminal("x") == nil || g.NonTerminalCount() != 2 {
		t.Errorf("expected terminals x, y and 2 non-terminals")
	}
	trace := cyk.Derive(g, grammar.Runes("xxx"))
	if diff := cmp.Diff(cyk.Trace{3, 4, 2, 2, 2}, trace); diff != "" {
		t.Errorf("trace mismatch (-want +got):\n%s", diff)
	}
	g, err = ParseNotation("G2", "%start B ; A -> 'x' ; B -> 'x' ; A -> B B ; B -> B B ;")
	if err != nil {
		t.Fatal(err)
	}
	if g.Start().Name != "B" {
		t.Errorf("expected start symbol B, is %v", g.Start())
	}
	g, err = ParseNotation("Multi", "S → Open Close ; Open → 'begin' ; Close → \"end\" | ε ;")
	if err == nil {
		t.Errorf("expected epsilon rule for Close to be rejected, have %d rules", g.Size())
	}
}

func TestNotationErrors(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cnf.loader")
	defer teardown()
	//
	for i, c := range []struct {
		input string
		err   error
	}{
		{"S -> A B", ErrSyntax},
		{"S -> 'a' ; %start ;", ErrSyntax},
		{"S -> A @ B ;", ErrSyntax},
		{"S -> ε 'a' ;", ErrSyntax},
		{"S -> 'a' ε ;", ErrSyntax},
		{"S 'a' ;", ErrSyntax},
		{"%terminals 'a' ", ErrSyntax},
		{"# nothing", ErrSyntax},
		{"", ErrSyntax},
		{"S -> A ;", grammar.ErrInvalidGrammar},
		{"S -> 'a' ; a -> 'b' ;", grammar.ErrInvalidGrammar},
		{"A -> 'x' ; B -> ε ;", grammar.ErrInvalidGrammar},
	} {
		_, err := ParseNotation("test", c.input)
		if !errors.Is(err, c.err) {
			t.Errorf("test #%d: expected %v for %q, have %v", i, c.err, c.input, err)
		}
	}
	_, err := ParseNotation("test", "S -> A B ;\nA -> 'a' ;\nB -> 'b' 'c' 'd' ; ")
	if err == nil || !errors.Is(err, grammar.ErrInvalidGrammar) {
		t.Errorf("expected ternary rule to be rejected, have %v", err)
	}
	_, err = ParseNotation("test", "S -> A B ;\nA -> 'a' \nB -> 'b' ;")
	if err == nil || !strings.Contains(err.Error(), "at 3:3") {
		t.Errorf("expected error position 3:3, have %v", err)
	}
}

func TestEBNF(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cnf.loader")
	defer teardown()
	//
	g, err := File("testdata/g1.ebnf")
	if err != nil {
		t.Fatal(err)
	}
	if g.Start().Name != "A" || g.Size() != 5 {
		t.Fatalf("expected 5 rules for start symbol A, have %d for %v", g.Size(), g.Start())
	}
	if !g.Rule(0).IsEpsilon() || !g.Rule(1).IsTerminal() || !g.Rule(2).IsBinary() {
		t.Errorf("unexpected order of rules: %v, %v, %v", g.Rule(0), g.Rule(1), g.Rule(2))
	}
	if g.Rule(3).LHS.Name != "B" {
		t.Errorf("expected rule 3 to be a rule for B, is %v", g.Rule(3))
	}
	if w, _ := cyk.ReconstructWord(g, cyk.Derive(g, grammar.Runes("xxxx"))); w.String() != "xxxx" {
		t.Errorf("expected xxxx to be derivable, have %q", w)
	}
	g, err = ReadEBNF("G", strings.NewReader(`S = ( A B ) | B A . A = "a" . B = "b" .`), "")
	if err != nil {
		t.Fatal(err)
	}
	if g.Size() != 4 || len(g.Rule(0).RHS()) != 2 {
		t.Errorf("expected group to be flattened, rule 0 is %v", g.Rule(0))
	}
	for i, input := range []string{
		`S = { "a" } .`,
		`S = "a" … "z" .`,
		`S = "a"`,
		`S = A . A = "a" . B = "b" .`, // B is unreachable
		`S = ( A | B ) B . A = "a" . B = "b" .`,
		``,
	} {
		if _, err := ReadEBNF("test", strings.NewReader(input), ""); !errors.Is(err, ErrSyntax) {
			t.Errorf("test #%d: expected syntax error, have %v", i, err)
		}
	}
}

func TestYAML(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cnf.loader")
	defer teardown()
	//
	g, err := File("testdata/g3.yaml")
	if err != nil {
		t.Fatal(err)
	}
	if g.Name != "G3" || g.Size() != 13 {
		t.Errorf("expected G3 with 13 rules, have %s with %d", g.Name, g.Size())
	}
	trace := cyk.Derive(g, grammar.Runes("abaab"))
	if diff := cmp.Diff(cyk.Trace{1, 2, 0, 3, 7, 1, 2, 2, 7}, trace); diff != "" {
		t.Errorf("trace mismatch (-want +got):\n%s", diff)
	}
	var buf bytes.Buffer
	if err = WriteYAML(makeG0(t), &buf); err != nil {
		t.Fatal(err)
	}
	g, err = ReadYAML("copy", &buf)
	if err != nil {
		t.Fatal(err)
	}
	if g.Name != "G0" || g.Fingerprint() != makeG0(t).Fingerprint() {
		t.Errorf("expected G0 to survive a YAML round trip")
	}
	for i, input := range []string{
		"name: [",
		"nonterminals: [S]\nterminals: [a]\nstart: S\nrule: []",
	} {
		if _, err := ReadYAML("test", strings.NewReader(input)); !errors.Is(err, ErrSyntax) {
			t.Errorf("test #%d: expected syntax error, have %v", i, err)
		}
	}
	_, err = ReadYAML("test", strings.NewReader("nonterminals: [S]\nterminals: [a]\nstart: S\n"))
	if !errors.Is(err, grammar.ErrInvalidGrammar) {
		t.Errorf("expected grammar without rules to be invalid, have %v", err)
	}
}

func TestFileFormats(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cnf.loader")
	defer teardown()
	//
	if _, err := File("testdata/g0.json"); err == nil {
		t.Errorf("expected missing file to be reported")
	}
	if _, err := File("loader_test.go"); err == nil || !strings.Contains(err.Error(), "unknown grammar format") {
		t.Errorf("expected unknown format to be reported, have %v", err)
	}
}
