package grammar

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Symbol is a grammar symbol, either a terminal or a non-terminal.
//
// Non-terminals carry dense values 0…|N|-1, in ascending order of their names.
// Terminals are numbered starting at |N|. Values are unique within a grammar and
// may be used as indices.
type Symbol struct {
	Name     string
	Value    int
	terminal bool
}

// IsTerminal returns true if this symbol represents a terminal.
func (sym *Symbol) IsTerminal() bool {
	return sym.terminal
}

func (sym *Symbol) String() string {
	if sym == nil {
		return "<nil>"
	}
	return sym.Name
}

// --- Productions ------------------------------------------------------

// Production is a grammar rule LHS → RHS. Serial is the position of the rule
// within the grammar and serves as its public identity.
type Production struct {
	Serial int
	LHS    *Symbol
	rhs    []*Symbol
}

// RHS returns the right-hand side of a production. Clients must not modify it.
func (p *Production) RHS() []*Symbol {
	return p.rhs
}

// IsEpsilon is true for A → ε.
func (p *Production) IsEpsilon() bool {
	return len(p.rhs) == 0
}

// IsTerminal is true for A → a.
func (p *Production) IsTerminal() bool {
	return len(p.rhs) == 1 && p.rhs[0].IsTerminal()
}

// IsBinary is true for A → B C.
func (p *Production) IsBinary() bool {
	return len(p.rhs) == 2
}

func (p *Production) String() string {
	return fmt.Sprintf("%d: [%s] ::= %v", p.Serial, p.LHS, p.rhs)
}

// --- Words ------------------------------------------------------------

// Word is a sequence of terminals, identified by name. Words may contain names
// which are not declared by a grammar; those words are simply not derivable.
type Word []string

// Runes splits a string into a word with one terminal per rune.
func Runes(s string) Word {
	w := make(Word, 0, utf8.RuneCountInString(s))
	for _, r := range s {
		w = append(w, string(r))
	}
	return w
}

// String concatenates single-rune terminals and separates longer ones by blanks.
func (w Word) String() string {
	for _, t := range w {
		if utf8.RuneCountInString(t) != 1 {
			return strings.Join(w, " ")
		}
	}
	return strings.Join(w, "")
}

// Equals compares two words element-wise. nil and an empty word are equal.
func (w Word) Equals(other Word) bool {
	if len(w) != len(other) {
		return false
	}
	for i := range w {
		if w[i] != other[i] {
			return false
		}
	}
	return true
}
