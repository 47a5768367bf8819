package main

import (
	"fmt"
	"strings"

	"github.com/npillmayer/cnf/grammar"
	"github.com/npillmayer/cnf/scanner"
	"github.com/npillmayer/cnf/scanner/lexmach"
)

// splitWord turns input into a word of terminals. Modes are
//
//     runes    every rune is a terminal, white space is ignored
//     fields   terminals are separated by white space
//     go       Go tokens
//     lexer    the longest terminal of g matching the input
//
func splitWord(input string, mode string, g *grammar.Grammar) (grammar.Word, error) {
	var t scanner.Tokenizer
	switch mode {
	case "runes", "":
		t = scanner.RuneTokenizer(strings.NewReader(input))
	case "fields":
		t = scanner.FieldTokenizer(strings.NewReader(input))
	case "go":
		t = scanner.GoTokenizer("input", strings.NewReader(input))
	case "lexer":
		lm, err := lexmach.ForGrammar(g)
		if err != nil {
			return nil, err
		}
		sc, err := lm.Scan(input)
		if err != nil {
			return nil, err
		}
		t = sc
	default:
		return nil, fmt.Errorf("unknown split mode %q", mode)
	}
	var scanErr error
	t.SetErrorHandler(func(e error) {
		if scanErr == nil {
			scanErr = e
		}
	})
	w := scanner.ReadWord(t)
	tracer().Debugf("input %q split into %d terminals", input, len(w))
	return w, scanErr
}
