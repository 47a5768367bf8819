package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/npillmayer/cnf/cyk"
	"github.com/npillmayer/cnf/grammar"
	"github.com/npillmayer/cnf/grammar/loader"
	"github.com/npillmayer/cnf/internal/session"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

func newReplCmd(opts *options) *cobra.Command {
	var initf string
	cmd := &cobra.Command{
		Use:   "repl",
		Short: "Start an interactive shell",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			intp, err := newIntp(opts)
			if err != nil {
				return err
			}
			repl, err := readline.New("cnf> ")
			if err != nil {
				return err
			}
			defer repl.Close()
			intp.repl = repl
			pterm.Info.Println("Welcome to the CNF shell") // colored welcome message
			pterm.Info.Println("Quit with <ctrl>D or :quit")
			intp.loadInitFile(initf)
			intp.REPL()
			return nil
		},
	}
	cmd.Flags().StringVar(&initf, "init", "", "Initial load")
	return cmd
}

// Intp is our interpreter object
type Intp struct {
	opts *options
	sess *session.Session
	repl *readline.Instance
}

// newIntp creates an interpreter with all the pre-defined grammars bound, and the
// grammar of option --grammar in use.
func newIntp(opts *options) (*Intp, error) {
	intp := &Intp{opts: opts, sess: session.New()}
	for name := range predefined {
		g, err := loadGrammar(name)
		if err != nil {
			return nil, err
		}
		intp.sess.Globals.Bind(name, g)
	}
	g, err := loadGrammar(opts.grammar)
	if err != nil {
		return nil, err
	}
	intp.sess.User.Bind(g.Name, g)
	intp.sess.SetGrammar(g)
	return intp, nil
}

func (intp *Intp) loadInitFile(filename string) {
	if filename == "" {
		return
	}
	f, err := os.Open(filename)
	if err != nil {
		tracer().Errorf("Unable to open init file: %s", filename)
		return
	}
	defer f.Close()
	scanner := bufio.NewScanner(f)
	lineno := 1
	for scanner.Scan() {
		line := scanner.Text()
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		if _, err := intp.Eval(line); err != nil {
			tracer().Errorf("Error line %d: %v", lineno, err)
		}
		lineno++
	}
	if err := scanner.Err(); err != nil {
		tracer().Errorf("Error while reading init file: %v", err)
	}
}

// REPL starts interactive mode.
func (intp *Intp) REPL() {
	for {
		line, err := intp.repl.Readline()
		if err != nil { // io.EOF
			break
		}
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		quit, err := intp.Eval(line)
		if err != nil {
			pterm.Error.Println(err.Error())
			continue
		}
		if quit {
			break
		}
	}
	println("Good bye!")
}

const replHelp = `<word>               parse word and print its trace
:parse name           parse the word bound to name
:replay [rule…|name]  print the word derived by a trace, default is the last one
:tree                 print the derivation tree of the last word
:let name             bind the last trace to name
:word name            bind the last word to name
:use name             use grammar name
:load name file       load a grammar from a file and bind it to name
:grammar              print the rules of the grammar in use
:list                 list all bindings
:quit                 leave the shell`

// Eval evaluates a line of input, which is either a command or a word.
func (intp *Intp) Eval(line string) (bool, error) {
	if !strings.HasPrefix(line, ":") {
		return false, intp.parse(line)
	}
	args := strings.Fields(line)
	cmd, args := args[0], args[1:]
	switch cmd {
	case ":quit", ":q":
		return true, nil
	case ":help", ":h":
		pterm.Println(replHelp)
	case ":replay", ":r":
		return false, intp.replay(args)
	case ":parse", ":p":
		if len(args) != 1 {
			return false, fmt.Errorf("usage: :parse name")
		}
		w, err := intp.sess.WordNamed(args[0])
		if err != nil {
			return false, err
		}
		return false, intp.parseWord(w)
	case ":tree", ":t":
		trace, err := intp.sess.TraceNamed("_")
		if err != nil {
			return false, err
		}
		tree, err := cyk.BuildTree(intp.sess.Grammar(), trace)
		if err != nil {
			return false, err
		}
		w, _ := intp.sess.Last()
		pterm.Println(w.String())
		printTree(tree)
	case ":let":
		if len(args) != 1 {
			return false, fmt.Errorf("usage: :let name")
		}
		trace, err := intp.sess.TraceNamed("_")
		if err != nil {
			return false, err
		}
		intp.sess.User.Bind(args[0], trace)
	case ":word", ":w":
		if len(args) != 1 {
			return false, fmt.Errorf("usage: :word name")
		}
		w, err := intp.sess.WordNamed("_")
		if err != nil {
			return false, err
		}
		intp.sess.User.Bind(args[0], w)
	case ":use", ":u":
		if len(args) != 1 {
			return false, fmt.Errorf("usage: :use name")
		}
		g, err := intp.sess.Use(args[0])
		if err != nil {
			return false, err
		}
		pterm.Info.Println("using grammar " + g.Name)
	case ":load":
		if len(args) != 2 {
			return false, fmt.Errorf("usage: :load name file")
		}
		g, err := loader.File(args[1])
		if err != nil {
			return false, err
		}
		intp.sess.User.Bind(args[0], g)
		intp.sess.SetGrammar(g)
		pterm.Info.Println(fmt.Sprintf("using grammar %s with %d rules", args[0], g.Size()))
	case ":grammar", ":g":
		printRules(intp.sess.Grammar(), os.Stdout)
	case ":list", ":l":
		for _, scope := range []*session.Scope{intp.sess.Globals, intp.sess.User} {
			scope.Bindings().Each(func(name string, b *session.Binding) {
				pterm.Println(fmt.Sprintf("%-8s %-10s %-8s %s", scope.Name, name, b.Kind, bindingValue(b)))
			})
		}
	default:
		return false, fmt.Errorf("unknown command %s, try :help", cmd)
	}
	return false, nil
}

func (intp *Intp) parse(input string) error {
	w, err := splitWord(input, intp.opts.split, intp.sess.Grammar())
	if err != nil {
		return err
	}
	return intp.parseWord(w)
}

func (intp *Intp) parseWord(w grammar.Word) error {
	g := intp.sess.Grammar()
	p := cyk.NewParser(g, intp.opts.parserOptions()...)
	p.Parse(w)
	intp.sess.Remember(w, p.Trace())
	if len(p.Trace()) == 0 {
		pterm.Info.Println(fmt.Sprintf("%q is not derivable with %s", w, g.Name))
		return nil
	}
	pterm.Info.Println(p.Trace().String())
	return nil
}

func (intp *Intp) replay(args []string) error {
	var trace cyk.Trace
	var err error
	switch {
	case len(args) == 0:
		trace, err = intp.sess.TraceNamed("_")
	case len(args) == 1 && intp.sess.User.Bindings().Resolve(args[0]) != nil:
		trace, err = intp.sess.TraceNamed(args[0])
	default:
		trace, err = parseTrace(args)
	}
	if err != nil {
		return err
	}
	w, err := cyk.ReconstructWord(intp.sess.Grammar(), trace)
	if err != nil {
		return err
	}
	pterm.Info.Println(fmt.Sprintf("%q", w.String()))
	return nil
}

func bindingValue(b *session.Binding) string {
	if g := b.Grammar(); g != nil {
		return fmt.Sprintf("%d rules, start %s", g.Size(), g.Start())
	}
	return fmt.Sprintf("%v", b.UData)
}
