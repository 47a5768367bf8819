/*
Package loader reads grammars in Chomsky normal form from text.

Three formats are supported. The rule notation is the most compact one:

    # G0
    S -> A B | B C ;
    A -> B A | 'a' ;
    B -> C C | 'b' ;
    C -> A B | 'a' ;

Terminals are quoted with single or double quotes, or declared with a
`%terminals` clause. Every other name is a non-terminal. The start symbol is the
LHS of the first rule, unless it is set with `%start S ;`. An empty right-hand
side is written as `ε` or `%empty`. Rules are numbered in order of appearance,
alternatives from left to right. `->`, `→` and `::=` are all accepted as arrows.

EBNF grammars use the notation of golang.org/x/exp/ebnf:

    S = A B | B C .
    A = B A | "a" .

The alternatives of a production become rules in source order. An optional
right-hand side `[ … ]` denotes an additional ε-rule, numbered before its body.
The first production is the start symbol.

YAML grammars list their symbols explicitly:

    name: G1
    start: A
    nonterminals: [A, B]
    terminals: [x, y]
    rules:
      - { lhs: A, rhs: [] }
      - { lhs: A, rhs: [x] }

Errors in the input text are reported by wrapping ErrSyntax. Grammars which are
syntactically correct, but not in normal form, result in errors wrapping
grammar.ErrInvalidGrammar.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package loader

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'cnf.loader'.
func tracer() tracing.Trace {
	return tracing.Select("cnf.loader")
}
