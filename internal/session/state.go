package session

import (
	"fmt"

	"github.com/npillmayer/cnf/cyk"
	"github.com/npillmayer/cnf/grammar"
)

// Session is the state of an interactive shell.
type Session struct {
	Globals   *Scope // pre-defined bindings
	User      *Scope // bindings made by the user, child of Globals
	grammar   *grammar.Grammar
	lastWord  grammar.Word
	lastTrace cyk.Trace
}

// New creates a session with empty scopes.
func New() *Session {
	globals := NewScope("globals", nil)
	return &Session{
		Globals: globals,
		User:    NewScope("user", globals),
	}
}

// Grammar returns the grammar in use, or nil.
func (s *Session) Grammar() *grammar.Grammar {
	return s.grammar
}

// SetGrammar makes g the grammar in use. The results of the last parse are
// cleared.
func (s *Session) SetGrammar(g *grammar.Grammar) {
	s.grammar = g
	s.lastWord, s.lastTrace = nil, nil
	tracer().Infof("using grammar %s", g.Name)
}

// Use makes the grammar bound to name the grammar in use.
func (s *Session) Use(name string) (*grammar.Grammar, error) {
	b, _ := s.User.Resolve(name)
	if b == nil {
		return nil, fmt.Errorf("%s is not defined", name)
	}
	g := b.Grammar()
	if g == nil {
		return nil, fmt.Errorf("%s is bound to a %s, not a grammar", name, b.Kind)
	}
	s.SetGrammar(g)
	return g, nil
}

// Remember stores the outcome of a parse.
func (s *Session) Remember(word grammar.Word, trace cyk.Trace) {
	s.lastWord, s.lastTrace = word, trace
}

// Last returns the word and trace of the most recent parse.
func (s *Session) Last() (grammar.Word, cyk.Trace) {
	return s.lastWord, s.lastTrace
}

// TraceNamed returns the trace bound to name, where "_" denotes the last trace.
// A failed parse leaves no trace to refer to.
func (s *Session) TraceNamed(name string) (cyk.Trace, error) {
	if name == "_" {
		if len(s.lastTrace) == 0 {
			if s.lastWord != nil {
				return nil, fmt.Errorf("%q is not derivable", s.lastWord)
			}
			return nil, fmt.Errorf("no trace recorded yet")
		}
		return s.lastTrace, nil
	}
	b, _ := s.User.Resolve(name)
	if b == nil || b.Kind != TraceKind {
		return nil, fmt.Errorf("%s is not bound to a trace", name)
	}
	return b.UData.(cyk.Trace), nil
}

// WordNamed returns the word bound to name, where "_" denotes the last word
// parsed.
func (s *Session) WordNamed(name string) (grammar.Word, error) {
	if name == "_" {
		if s.lastWord == nil {
			return nil, fmt.Errorf("no word parsed yet")
		}
		return s.lastWord, nil
	}
	b, _ := s.User.Resolve(name)
	if b == nil || b.Kind != WordKind {
		return nil, fmt.Errorf("%s is not bound to a word", name)
	}
	return b.UData.(grammar.Word), nil
}
