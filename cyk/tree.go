package cyk

import (
	"fmt"
	"io"

	"github.com/npillmayer/cnf"
	"github.com/npillmayer/cnf/grammar"
)

// Node is a node of a derivation tree. Leafs carry a terminal and Rule = -1.
type Node struct {
	Symbol   *grammar.Symbol
	Rule     int
	Span     cnf.Span
	Children []*Node
}

// IsLeaf is true for terminal nodes.
func (n *Node) IsLeaf() bool {
	return n.Rule < 0
}

func (n *Node) String() string {
	if n.IsLeaf() {
		return fmt.Sprintf("%s %v", n.Symbol, n.Span)
	}
	return fmt.Sprintf("%s #%d %v", n.Symbol, n.Rule, n.Span)
}

// Each calls f for every node of the tree in pre-order, together with its depth.
func (n *Node) Each(f func(node *Node, depth int)) {
	n.each(f, 0)
}

func (n *Node) each(f func(node *Node, depth int), depth int) {
	f(n, depth)
	for _, ch := range n.Children {
		ch.each(f, depth+1)
	}
}

// --- Tree building listener -------------------------------------------

// TreeBuilder is a Listener which creates a derivation tree. The value of
// every RuleNode of a walk is a *Node.
//
//     root, err := parser.WalkDerivation(cyk.NewTreeBuilder())
//     tree := root.Value.(*cyk.Node)
//
type TreeBuilder struct {
	nodes int
}

// NewTreeBuilder creates a TreeBuilder.
func NewTreeBuilder() *TreeBuilder {
	return &TreeBuilder{}
}

// NodeCount returns the number of nodes created so far.
func (tb *TreeBuilder) NodeCount() int {
	return tb.nodes
}

// Reduce is a listener method, called for every rule.
func (tb *TreeBuilder) Reduce(lhs *grammar.Symbol, rule int, rhs []*RuleNode, span cnf.Span, level int) interface{} {
	node := &Node{Symbol: lhs, Rule: rule, Span: span, Children: make([]*Node, len(rhs))}
	for i, r := range rhs {
		node.Children[i] = r.Value.(*Node)
	}
	tb.nodes++
	return node
}

// Terminal is a listener method, called for every terminal.
func (tb *TreeBuilder) Terminal(a *grammar.Symbol, span cnf.Span, level int) interface{} {
	tb.nodes++
	return &Node{Symbol: a, Rule: -1, Span: span}
}

var _ Listener = &TreeBuilder{}

// BuildTree replays a trace and returns the derivation tree of its first
// derivation, or nil for an empty trace.
func BuildTree(g *grammar.Grammar, trace Trace) (*Node, error) {
	roots, err := Walk(g, trace, NewTreeBuilder())
	if err != nil || len(roots) == 0 {
		return nil, err
	}
	return roots[0].Value.(*Node), nil
}

// --- Export ----------------------------------------------------------------

// ToGraphViz exports a derivation tree to the Graphviz Dot format.
func ToGraphViz(root *Node, w io.Writer) {
	io.WriteString(w, `digraph {
graph [splines=true, fontname=Helvetica, fontsize=10];
node [shape=Mrecord, style=filled, fontname=Helvetica, fontsize=10];
edge [fontname=Helvetica, fontsize=10];

`)
	if root == nil {
		io.WriteString(w, "}\n")
		return
	}
	ids := make(map[*Node]int)
	root.Each(func(node *Node, depth int) {
		id := len(ids)
		ids[node] = id
		if node.IsLeaf() {
			io.WriteString(w, fmt.Sprintf("n%03d [fillcolor=lightgray label=\"%s | %d\"]\n",
				id, node.Symbol, node.Span.From()))
			return
		}
		io.WriteString(w, fmt.Sprintf("n%03d [fillcolor=white label=\"{%s | #%d | %d…%d}\"]\n",
			id, node.Symbol, node.Rule, node.Span.From(), node.Span.To()))
	})
	root.Each(func(node *Node, depth int) {
		for _, ch := range node.Children {
			io.WriteString(w, fmt.Sprintf("n%03d -> n%03d\n", ids[node], ids[ch]))
		}
	})
	io.WriteString(w, "}\n")
}
