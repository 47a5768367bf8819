package main

import (
	"fmt"

	"github.com/npillmayer/cnf/grammar"
	"github.com/npillmayer/cnf/grammar/loader"
)

// We provide a couple of small grammars as defaults for experiments.
//
//  G0:  S → A B | B C,   A → B A | a,   B → C C | b,   C → A B | a
//  G1:  A → ε | x | B B,   B → x | B B
//  G2:  A → x | B B,   B → x | B B,   start symbol B
//  G3:  S → A B | S S | a,   A → B S | C D | b,   B → D D | b,
//       C → D E | b | a,   D → a,   E → S S
//
var predefined = map[string]func() *grammar.Builder{
	"G0": func() *grammar.Builder {
		b := grammar.NewBuilder("G0")
		b.LHS("S").N("A").N("B").End()
		b.LHS("S").N("B").N("C").End()
		b.LHS("A").N("B").N("A").End()
		b.LHS("A").T("a").End()
		b.LHS("B").N("C").N("C").End()
		b.LHS("B").T("b").End()
		b.LHS("C").N("A").N("B").End()
		b.LHS("C").T("a").End()
		return b
	},
	"G1": func() *grammar.Builder {
		b := grammar.NewBuilder("G1").Terminals("x", "y")
		b.LHS("A").Epsilon()
		b.LHS("A").T("x").End()
		b.LHS("B").T("x").End()
		b.LHS("A").N("B").N("B").End()
		b.LHS("B").N("B").N("B").End()
		return b
	},
	"G2": func() *grammar.Builder {
		b := grammar.NewBuilder("G2").Start("B").Terminals("x", "y")
		b.LHS("A").T("x").End()
		b.LHS("B").T("x").End()
		b.LHS("A").N("B").N("B").End()
		b.LHS("B").N("B").N("B").End()
		return b
	},
	"G3": func() *grammar.Builder {
		b := grammar.NewBuilder("G3")
		b.LHS("S").N("A").N("B").End()
		b.LHS("S").N("S").N("S").End()
		b.LHS("S").T("a").End()
		b.LHS("A").N("B").N("S").End()
		b.LHS("A").N("C").N("D").End()
		b.LHS("A").T("b").End()
		b.LHS("B").N("D").N("D").End()
		b.LHS("B").T("b").End()
		b.LHS("C").N("D").N("E").End()
		b.LHS("C").T("b").End()
		b.LHS("C").T("a").End()
		b.LHS("D").T("a").End()
		b.LHS("E").N("S").N("S").End()
		return b
	},
}

// loadGrammar returns a pre-defined grammar or loads one from a file.
func loadGrammar(name string) (*grammar.Grammar, error) {
	if builder, ok := predefined[name]; ok {
		g, err := builder().Grammar()
		if err != nil {
			panic(fmt.Errorf("error creating grammar: %s", err.Error()))
		}
		return g, nil
	}
	return loader.File(name)
}
