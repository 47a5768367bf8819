/*
Package cyk implements a CYK recognizer for grammars in Chomsky normal form,
together with extraction and replay of derivation traces.

A trace is the sequence of rule numbers of a derivation tree in pre-order:
every rule appears before the rules used to expand the non-terminals of its
right-hand side, left sub-tree first. Replaying a trace re-generates the word
it has been produced for.

Usage

    g, err := grammar.New(…)            // or use a grammar.Builder
    trace := cyk.Derive(g, grammar.Runes("baaba"))
    if len(trace) == 0 {
        // "baaba" is not derivable from g
    }
    word, err := cyk.ReconstructWord(g, trace)  // word is "baaba" again

Clients who need access to the parse table use a Parser:

    p := cyk.NewParser(g, cyk.Parallel(4))
    if p.Parse(word) {
        tree, err := p.WalkDerivation(cyk.NewTreeBuilder())
        …
    }

Ambiguity

For ambiguous grammars more than one derivation exists for a word. The
recognizer always selects the same one: for a word consisting of a single
terminal the rule with the lowest number wins; for longer sub-words the
derivation with the rightmost split point wins, and for equal split points
the rule with the highest number.

Configuration

Two boolean configuration keys are read with gconf:

    cyk-parallel             fill parse tables concurrently by default
    panic-on-invalid-trace   panic instead of returning ErrInvalidTrace

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package cyk

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'cnf.cyk'.
func tracer() tracing.Trace {
	return tracing.Select("cnf.cyk")
}
