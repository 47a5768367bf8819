package loader

import (
	"fmt"
	"io"

	"github.com/npillmayer/cnf/grammar"
	"gopkg.in/yaml.v3"
)

// yamlGrammar is the YAML representation of a grammar.
type yamlGrammar struct {
	Name         string     `yaml:"name"`
	Start        string     `yaml:"start"`
	NonTerminals []string   `yaml:"nonterminals"`
	Terminals    []string   `yaml:"terminals"`
	Rules        []yamlRule `yaml:"rules"`
}

type yamlRule struct {
	LHS string   `yaml:"lhs"`
	RHS []string `yaml:"rhs"`
}

// ReadYAML reads a grammar from a YAML document. If the document does not name
// the grammar, name is used.
func ReadYAML(name string, r io.Reader) (*grammar.Grammar, error) {
	var yg yamlGrammar
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&yg); err != nil {
		return nil, fmt.Errorf("%w in %s: %v", ErrSyntax, name, err)
	}
	if yg.Name != "" {
		name = yg.Name
	}
	rules := make([]grammar.Rule, len(yg.Rules))
	for i, r := range yg.Rules {
		rules[i] = grammar.Rule{LHS: r.LHS, RHS: r.RHS}
	}
	return grammar.New(name, yg.NonTerminals, yg.Terminals, rules, yg.Start)
}

// WriteYAML writes a grammar as a YAML document, readable by ReadYAML.
func WriteYAML(g *grammar.Grammar, w io.Writer) error {
	yg := yamlGrammar{Name: g.Name, Start: g.Start().Name}
	g.EachNonTerminal(func(A *grammar.Symbol) {
		yg.NonTerminals = append(yg.NonTerminals, A.Name)
	})
	g.EachTerminal(func(a *grammar.Symbol) {
		yg.Terminals = append(yg.Terminals, a.Name)
	})
	for i := 0; i < g.Size(); i++ {
		r := g.Rule(i)
		rhs := []string{}
		for _, sym := range r.RHS() {
			rhs = append(rhs, sym.Name)
		}
		yg.Rules = append(yg.Rules, yamlRule{LHS: r.LHS.Name, RHS: rhs})
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(&yg); err != nil {
		return err
	}
	return enc.Close()
}
