/*
Package grammar implements grammars in Chomsky normal form.

Grammars are either specified as literals, by naming their sets of
non-terminals and terminals, or by using a grammar builder object.
Clients add rules, consisting of non-terminal symbols and terminals.

Example:

    b := grammar.NewBuilder("G")
    b.LHS("S").N("A").N("B").End()    // 0: S  ->  A B
    b.LHS("A").T("a").End()           // 1: A  ->  a
    b.LHS("B").T("b").End()           // 2: B  ->  b
    b.LHS("S").Epsilon()              // 3: S  ->
    g, err := b.Grammar()

Rules are numbered in the order they have been added. This number is the
public identity of a rule and will never change for a grammar value.

Every grammar is checked for the normal form on construction: a right-hand side
is either empty, a single terminal, or a pair of non-terminals. Empty
right-hand sides are allowed for the start symbol only, and a nullable start
symbol must not occur on any right-hand side. Violations are reported as errors
wrapping ErrInvalidGrammar.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package grammar

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'cnf.grammar'.
func tracer() tracing.Trace {
	return tracing.Select("cnf.grammar")
}
