package main

import (
	"fmt"
	"io"

	"github.com/npillmayer/cnf/cyk"
	"github.com/npillmayer/cnf/grammar"
	"github.com/pterm/pterm"
)

func printRules(g *grammar.Grammar, w io.Writer) {
	fmt.Fprintf(w, "grammar %s, start symbol %s\n", g.Name, g.Start())
	for i := 0; i < g.Size(); i++ {
		fmt.Fprintf(w, "  %v\n", g.Rule(i))
	}
	fmt.Fprintf(w, "fingerprint %s\n", g.Fingerprint())
}

// printTree displays a derivation tree on a terminal.
func printTree(tree *cyk.Node) {
	root := pterm.NewTreeFromLeveledList(leveledList(tree))
	pterm.DefaultTree.WithRoot(root).Render()
}

func leveledList(tree *cyk.Node) pterm.LeveledList {
	ll := pterm.LeveledList{}
	if tree == nil {
		return ll
	}
	tree.Each(func(node *cyk.Node, depth int) {
		ll = append(ll, pterm.LeveledListItem{
			Level: depth,
			Text:  node.String(),
		})
	})
	return ll
}
