package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/npillmayer/cnf/cyk"
	"github.com/npillmayer/cnf/grammar"
	"github.com/npillmayer/cnf/grammar/loader"
	"github.com/spf13/cobra"
)

// options are the persistent flags of the root command.
type options struct {
	grammar string // file name or name of a pre-defined grammar
	trace   string // trace level
	split   string // how to split input into terminals
	workers int    // > 1 for concurrent table construction, 0 for configuration default
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:   "cnftrace",
		Short: "Recognize words with CNF grammars and print derivation traces",
		Long: `cnftrace runs a CYK recognizer for grammars in Chomsky normal form.
For accepted words it prints the derivation as a sequence of rule numbers,
in pre-order. Such traces may be replayed to re-create the word.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			setTraceLevel(opts.trace)
		},
	}
	flags := root.PersistentFlags()
	flags.StringVarP(&opts.grammar, "grammar", "g", "G0", "grammar file or pre-defined grammar G0…G3")
	flags.StringVar(&opts.trace, "trace", "Error", "Trace level [Debug|Info|Error]")
	flags.StringVar(&opts.split, "split", "runes", "split input into terminals by [runes|fields|go|lexer]")
	flags.IntVar(&opts.workers, "workers", 0, "number of goroutines filling the CYK table (0 = from config key cyk-parallel)")
	root.AddCommand(
		newTraceCmd(opts),
		newReplayCmd(opts),
		newTreeCmd(opts),
		newChartCmd(opts),
		newGrammarCmd(opts),
		newReplCmd(opts),
	)
	return root
}

func newTraceCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "trace [word...]",
		Short: "Print the derivation trace of a word, [] if it is not derivable",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, _, err := parse(opts, strings.Join(args, " "))
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), p.Trace())
			return nil
		},
	}
}

func newReplayCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "replay [rule...]",
		Short: "Print the word derived by a trace",
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := loadGrammar(opts.grammar)
			if err != nil {
				return err
			}
			trace, err := parseTrace(args)
			if err != nil {
				return err
			}
			w, err := cyk.ReconstructWord(g, trace)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), w)
			return nil
		},
	}
}

func newTreeCmd(opts *options) *cobra.Command {
	var dot string
	cmd := &cobra.Command{
		Use:   "tree [word...]",
		Short: "Print the derivation tree of a word",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, w, err := parse(opts, strings.Join(args, " "))
			if err != nil {
				return err
			}
			if len(p.Trace()) == 0 {
				return fmt.Errorf("%q is not derivable with %s", w, p.Grammar().Name)
			}
			tree, err := cyk.BuildTree(p.Grammar(), p.Trace())
			if err != nil {
				return err
			}
			if dot == "" {
				printTree(tree)
				return nil
			}
			f, err := os.Create(dot)
			if err != nil {
				return err
			}
			defer f.Close()
			cyk.ToGraphViz(tree, f)
			return nil
		},
	}
	cmd.Flags().StringVar(&dot, "dot", "", "write tree to file in Graphviz Dot format")
	return cmd
}

func newChartCmd(opts *options) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "chart [word...]",
		Short: "Export the CYK table for a word as HTML",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, w, err := parse(opts, strings.Join(args, " "))
			if err != nil {
				return err
			}
			if p.Chart() == nil {
				return fmt.Errorf("no table built for %q", w)
			}
			if out == "" {
				cyk.ChartAsHTML(p, cmd.OutOrStdout())
				return nil
			}
			f, err := os.Create(out)
			if err != nil {
				return err
			}
			defer f.Close()
			cyk.ChartAsHTML(p, f)
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "HTML output file, default stdout")
	return cmd
}

func newGrammarCmd(opts *options) *cobra.Command {
	var asYAML bool
	cmd := &cobra.Command{
		Use:   "grammar",
		Short: "Print the rules of the grammar",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := loadGrammar(opts.grammar)
			if err != nil {
				return err
			}
			if asYAML {
				return loader.WriteYAML(g, cmd.OutOrStdout())
			}
			printRules(g, cmd.OutOrStdout())
			return nil
		},
	}
	cmd.Flags().BoolVar(&asYAML, "yaml", false, "print grammar as YAML document")
	return cmd
}

// parse loads the grammar, splits input into a word and runs the recognizer.
func parse(opts *options, input string) (*cyk.Parser, grammar.Word, error) {
	g, err := loadGrammar(opts.grammar)
	if err != nil {
		return nil, nil, err
	}
	w, err := splitWord(input, opts.split, g)
	if err != nil {
		return nil, nil, err
	}
	p := cyk.NewParser(g, opts.parserOptions()...)
	p.Parse(w)
	return p, w, nil
}

// parserOptions leaves the number of workers to configuration unless flag
// --workers is given.
func (opts *options) parserOptions() []cyk.Option {
	if opts.workers > 0 {
		return []cyk.Option{cyk.Parallel(opts.workers)}
	}
	return nil
}

// parseTrace converts arguments to rule numbers. Arguments may be separated by
// blanks or commas, and the trace may be enclosed in brackets.
func parseTrace(args []string) (cyk.Trace, error) {
	s := strings.Join(args, " ")
	s = strings.NewReplacer("[", " ", "]", " ", ",", " ").Replace(s)
	trace := cyk.Trace{}
	for _, field := range strings.Fields(s) {
		n, err := strconv.Atoi(field)
		if err != nil {
			return nil, fmt.Errorf("not a rule number: %q", field)
		}
		trace = append(trace, n)
	}
	return trace, nil
}
