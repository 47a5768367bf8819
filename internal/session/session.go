/*
Package session holds the state of an interactive shell: named grammars, words
and traces, organized in scopes, together with the grammar in use and the
outcome of the most recent parse.

Bindings are stored in symbol tables. Every scope owns a table and links back
to a parent scope, where lookups continue if a name is not bound locally. A
session uses two scopes: one for pre-defined bindings and one for the user's.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package session

import (
	"fmt"

	"github.com/emirpasic/gods/maps/treemap"
	"github.com/npillmayer/cnf/cyk"
	"github.com/npillmayer/cnf/grammar"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'cnf.cli'.
func tracer() tracing.Trace {
	return tracing.Select("cnf.cli")
}

// --- Bindings ---------------------------------------------------------

// Kind is the type of value a binding holds.
type Kind int8

// Kinds of bindings.
const (
	Undefined Kind = iota
	GrammarKind
	WordKind
	TraceKind
)

func (k Kind) String() string {
	switch k {
	case GrammarKind:
		return "grammar"
	case WordKind:
		return "word"
	case TraceKind:
		return "trace"
	}
	return "undefined"
}

// Binding binds a name to a grammar, a word or a trace.
type Binding struct {
	name  string
	Kind  Kind
	UData interface{} // the value bound
}

// NewBinding creates an undefined binding.
func NewBinding(name string) *Binding {
	return &Binding{name: name}
}

// To sets the value of a binding, together with its kind. Values of other types
// than *grammar.Grammar, grammar.Word and cyk.Trace make the binding undefined.
//
//    b := NewBinding("G").To(g)
//
func (b *Binding) To(value interface{}) *Binding {
	b.UData = value
	switch value.(type) {
	case *grammar.Grammar:
		b.Kind = GrammarKind
	case grammar.Word:
		b.Kind = WordKind
	case cyk.Trace:
		b.Kind = TraceKind
	default:
		b.Kind = Undefined
	}
	return b
}

// Name gets the binding's name.
func (b *Binding) Name() string {
	return b.name
}

// Grammar returns the grammar bound, or nil.
func (b *Binding) Grammar() *grammar.Grammar {
	if g, ok := b.UData.(*grammar.Grammar); ok {
		return g
	}
	return nil
}

// String is a debug Stringer for bindings.
func (b *Binding) String() string {
	return fmt.Sprintf("<%s %s = %v>", b.Kind, b.name, b.UData)
}

// === Symbol tables =========================================================

// Table stores bindings by name (map-like semantics). Iteration is in order of
// names.
type Table struct {
	bindings *treemap.Map
}

// NewTable creates an empty table.
func NewTable() *Table {
	return &Table{bindings: treemap.NewWithStringComparator()}
}

// Resolve checks for a binding in the table.
// Returns a binding or nil.
func (t *Table) Resolve(name string) *Binding {
	if b, found := t.bindings.Get(name); found {
		return b.(*Binding)
	}
	return nil
}

// ResolveOrDefine finds a binding in the table, inserts a new one if not
// found. Returns the binding and a flag, signalling whether the binding has
// already been present.
func (t *Table) ResolveOrDefine(name string) (*Binding, bool) {
	if len(name) == 0 {
		return nil, false
	}
	if b := t.Resolve(name); b != nil {
		return b, true
	}
	b, _ := t.Define(name)
	return b, false
}

// Define creates a new binding to store into the table. The name may not be
// empty. Overwrites an existing binding with this name, if any.
// Returns the new binding and the previously stored one (or nil).
func (t *Table) Define(name string) (*Binding, *Binding) {
	if len(name) == 0 {
		return nil, nil
	}
	b := NewBinding(name)
	return b, t.Insert(b)
}

// Insert inserts a pre-created binding. Returns the previously stored one (or nil).
func (t *Table) Insert(b *Binding) *Binding {
	old := t.Resolve(b.name)
	t.bindings.Put(b.name, b)
	return old
}

// Size counts the bindings in a table.
func (t *Table) Size() int {
	return t.bindings.Size()
}

// Each iterates over the bindings in the table in order of their names.
func (t *Table) Each(mapper func(string, *Binding)) {
	it := t.bindings.Iterator()
	for it.Next() {
		mapper(it.Key().(string), it.Value().(*Binding))
	}
}

// === Scopes ================================================================

// Scope is a named scope, which may contain bindings. Scopes link back to a
// parent scope, forming a tree.
type Scope struct {
	Name   string
	Parent *Scope
	table  *Table
}

// NewScope creates a new scope.
func NewScope(name string, parent *Scope) *Scope {
	return &Scope{
		Name:   name,
		Parent: parent,
		table:  NewTable(),
	}
}

func (s *Scope) String() string {
	return fmt.Sprintf("<scope %s>", s.Name)
}

// Bindings returns the symbol table of a scope.
func (s *Scope) Bindings() *Table {
	return s.table
}

// Bind binds a value to a name in this scope. Returns the new binding and the
// previously stored binding under this name, if any.
func (s *Scope) Bind(name string, value interface{}) (*Binding, *Binding) {
	b, old := s.table.Define(name)
	if b != nil {
		b.To(value)
		tracer().Debugf("%v bound in %v", b, s)
	}
	return b, old
}

// Resolve finds a binding. Returns the binding (or nil) and the scope (of a
// scope-tree-path) the binding was found in.
func (s *Scope) Resolve(name string) (*Binding, *Scope) {
	for ; s != nil; s = s.Parent {
		if b := s.table.Resolve(name); b != nil {
			return b, s
		}
	}
	return nil, nil
}
