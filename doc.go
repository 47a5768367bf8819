/*
Package cnf is a toolbox for grammars in Chomsky normal form.

Every production of such a grammar has either exactly one terminal on its
right-hand side, exactly two non-terminals, or is empty (the latter only for
the start symbol). This restricted form allows a simple cubic-time membership
test by dynamic programming, commonly known as the CYK algorithm.
Package structure is as follows:

■ grammar: Package grammar defines symbols, productions and grammars, together
with a grammar builder and validation of the normal form.

■ grammar/loader: Package loader reads grammars from text files in rule
notation, EBNF or YAML.

■ cyk: Package cyk implements recognition, derivation trace extraction and
trace replay.

■ chart: Package chart implements the parse table used by the recognizer.

■ scanner: Package scanner turns input text into words of terminals.

The base package contains data types which are used throughout all the other packages.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package cnf
