/*
Package lexmach provides an adapter to use the lexmachine scanner generator for
splitting input into words of terminals.

For more information on lexmachine, see e.g.
https://hackthology.com/how-to-tokenize-complex-strings-with-lexmachine.html

The most common usage is to derive a tokenizer from the terminals of a grammar.
Every terminal becomes a literal pattern of the lexer, white space is skipped,
and the longest match wins:

	LM, err := lexmach.ForGrammar(g)
	if err != nil {
		// do error handling
	}
	t, err := LM.Scan("begin end")
	word := scanner.ReadWord(t)     // = [ "begin", "end" ]

Clients who need more control set up lexmachine patterns themselves, before
literals are added:

	setup := func(lexer *lexmachine.Lexer) {
		lexer.Add([]byte(`#[^\n]*`), lexmach.Skip)         // drop the match
		lexer.Add([]byte(`[a-z]+`), lexmach.Emit(IDENT))    // emit a token
	}
	LM, err := lexmach.Compile(setup, literals, tokenIds)

________________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package lexmach
