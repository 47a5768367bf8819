/*
Command cnftrace recognizes words with grammars in Chomsky normal form and
prints derivation traces.

    cnftrace trace baaba                    # prints [0 2 5 3 4 6 3 5 7]
    cnftrace replay 0 2 5 3 4 6 3 5 7       # prints baaba
    cnftrace -g mygrammar.cnf tree "a b"    # prints a derivation tree
    cnftrace chart baaba --out chart.html   # exports the CYK table
    cnftrace repl                           # interactive shell

Grammars are either pre-defined (G0…G3) or loaded from files in rule notation
(.cnf), EBNF (.ebnf) or YAML (.yaml).

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package main

import (
	"os"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/pterm/pterm"
)

// tracer traces with key 'cnf.cli'.
func tracer() tracing.Trace {
	return tracing.Select("cnf.cli")
}

// tracerKeys are the trace keys of all the packages of this module.
var tracerKeys = []string{"cnf.cli", "cnf.grammar", "cnf.loader", "cnf.scanner", "cnf.cyk"}

func main() {
	initDisplay()
	gtrace.SyntaxTracer = gologadapter.New()
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.Info.Prefix = pterm.Prefix{
		Text:  "  >>",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  "  Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

func setTraceLevel(level string) {
	l := tracing.TraceLevelFromString(level)
	if gtrace.SyntaxTracer != nil {
		gtrace.SyntaxTracer.SetTraceLevel(l)
	}
	for _, key := range tracerKeys {
		tracing.Select(key).SetTraceLevel(l)
	}
}
