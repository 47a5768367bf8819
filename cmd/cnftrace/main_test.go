package main

import (
	"bytes"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/npillmayer/cnf/cyk"
	"github.com/npillmayer/cnf/grammar"
	"github.com/npillmayer/schuko/gconf"
	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func runCmd(t *testing.T, args ...string) (string, error) {
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestTraceCommand(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cnf.cli")
	defer teardown()
	//
	for _, c := range []struct {
		args []string
		out  string
	}{
		{[]string{"trace", "baaba"}, "[0 2 5 3 4 6 3 5 7]"},
		{[]string{"trace", "ba", "aba"}, "[0 2 5 3 4 6 3 5 7]"},
		{[]string{"trace", "--workers", "4", "aaaaa"}, "[1 4 6 3 4 7 7 7 7]"},
		{[]string{"trace", "ca"}, "[]"},
		{[]string{"-g", "G1", "trace"}, "[0]"},
		{[]string{"-g", "G3", "trace", "abaab"}, "[1 2 0 3 7 1 2 2 7]"},
		{[]string{"replay", "0", "2", "5", "3", "4", "6", "3", "5", "7"}, "baaba"},
		{[]string{"replay", "[1,5,7]"}, "ba"},
		{[]string{"-g", "G2", "replay", "3", "1", "1"}, "xx"},
	} {
		out, err := runCmd(t, c.args...)
		if err != nil {
			t.Errorf("%v failed: %v", c.args, err)
			continue
		}
		if strings.TrimSpace(out) != c.out {
			t.Errorf("expected %v to print %s, have %q", c.args, c.out, out)
		}
	}
}

func TestWorkersFromConfiguration(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cnf.cli")
	defer teardown()
	//
	if def := newRootCmd().PersistentFlags().Lookup("workers").DefValue; def != "0" {
		t.Errorf("expected --workers to default to 0, is %s", def)
	}
	gconf.Initialize(testconfig.Conf{"tracing.adapter": "nop", "cyk-parallel": true})
	defer gconf.Initialize(testconfig.Conf{"tracing.adapter": "nop"})
	opts := &options{grammar: "G0", split: "runes"}
	p, _, err := parse(opts, "baaba")
	if err != nil {
		t.Fatal(err)
	}
	if p.Workers() != runtime.NumCPU() {
		t.Errorf("expected %d workers from configuration, have %d", runtime.NumCPU(), p.Workers())
	}
	if p.Trace().String() != "[0 2 5 3 4 6 3 5 7]" {
		t.Errorf("unexpected trace %v", p.Trace())
	}
	opts.workers = 2
	if p, _, _ = parse(opts, "baaba"); p.Workers() != 2 {
		t.Errorf("expected flag to override configuration, have %d workers", p.Workers())
	}
}

func TestCommandErrors(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cnf.cli")
	defer teardown()
	//
	for _, args := range [][]string{
		{"replay", "0", "3"},
		{"replay", "x"},
		{"-g", "nosuchfile.cnf", "trace", "a"},
		{"--split", "bytes", "trace", "a"},
		{"tree", "ca"},
		{"chart", "ca"},
	} {
		if _, err := runCmd(t, args...); err == nil {
			t.Errorf("expected %v to fail", args)
		}
	}
}

func TestExportCommands(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cnf.cli")
	defer teardown()
	//
	dir := t.TempDir()
	dot := filepath.Join(dir, "tree.dot")
	if _, err := runCmd(t, "tree", "baaba", "--dot", dot); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(dot)
	if err != nil || !strings.HasPrefix(string(data), "digraph") {
		t.Errorf("expected Dot file to be written, error is %v", err)
	}
	out, err := runCmd(t, "chart", "baaba")
	if err != nil || !strings.Contains(out, "<table") {
		t.Errorf("expected HTML table on stdout, error is %v", err)
	}
	out, err = runCmd(t, "-g", "G1", "grammar", "--yaml")
	if err != nil || !strings.Contains(out, "name: G1") {
		t.Errorf("expected YAML grammar, have %q", out)
	}
	out, err = runCmd(t, "grammar")
	if err != nil || !strings.Contains(out, "6: [C] ::= [A B]") {
		t.Errorf("expected rules of G0, have %q", out)
	}
}

func TestGrammarFile(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cnf.cli")
	defer teardown()
	//
	path := filepath.Join(t.TempDir(), "pairs.cnf")
	src := "S -> Open Close ; Open -> 'begin' ; Close -> 'end' ;"
	if err := os.WriteFile(path, []byte(src), 0644); err != nil {
		t.Fatal(err)
	}
	out, err := runCmd(t, "-g", path, "--split", "fields", "trace", "begin end")
	if err != nil || strings.TrimSpace(out) != "[0 1 2]" {
		t.Errorf("expected trace [0 1 2], have %q, error %v", out, err)
	}
	out, err = runCmd(t, "-g", path, "--split", "lexer", "trace", "beginend")
	if err != nil || strings.TrimSpace(out) != "[0 1 2]" {
		t.Errorf("expected trace [0 1 2], have %q, error %v", out, err)
	}
	out, err = runCmd(t, "-g", path, "replay", "0", "1", "2")
	if err != nil || strings.TrimSpace(out) != "begin end" {
		t.Errorf("expected 'begin end', have %q, error %v", out, err)
	}
}

func TestSplitWord(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cnf.cli")
	defer teardown()
	//
	g, err := loadGrammar("G0")
	if err != nil {
		t.Fatal(err)
	}
	for _, c := range []struct {
		mode, input string
		word        grammar.Word
	}{
		{"runes", "b a ab", grammar.Word{"b", "a", "a", "b"}},
		{"", "ab", grammar.Word{"a", "b"}},
		{"fields", "ab b", grammar.Word{"ab", "b"}},
		{"go", "x+12", grammar.Word{"x", "+", "12"}},
		{"lexer", "ab ba", grammar.Word{"a", "b", "b", "a"}},
	} {
		w, err := splitWord(c.input, c.mode, g)
		if err != nil {
			t.Errorf("%s: %v", c.mode, err)
			continue
		}
		if diff := cmp.Diff(c.word, w); diff != "" {
			t.Errorf("%s: word mismatch (-want +got):\n%s", c.mode, diff)
		}
	}
	if _, err := splitWord("abc", "lexer", g); err == nil {
		t.Errorf("expected c to be rejected by the lexer of G0")
	}
}

func TestParseTrace(t *testing.T) {
	trace, err := parseTrace([]string{"[0", "2,5]"})
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(cyk.Trace{0, 2, 5}, trace); diff != "" {
		t.Errorf("trace mismatch (-want +got):\n%s", diff)
	}
	if trace, err = parseTrace(nil); err != nil || trace == nil || len(trace) != 0 {
		t.Errorf("expected empty trace for no arguments")
	}
}

func TestIntp(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cnf.cli")
	defer teardown()
	//
	intp, err := newIntp(&options{grammar: "G0", split: "runes"})
	if err != nil {
		t.Fatal(err)
	}
	for _, line := range []string{"baaba", ":let t1", ":use G2", "xxx", ":replay", ":tree", ":list"} {
		if quit, err := intp.Eval(line); err != nil || quit {
			t.Fatalf("%s: unexpected result %v, %v", line, quit, err)
		}
	}
	if w, trace := intp.sess.Last(); w.String() != "xxx" || len(trace) != 5 {
		t.Errorf("expected last parse to be xxx, is %v %v", w, trace)
	}
	if _, err := intp.Eval(":replay t1"); err == nil {
		t.Errorf("expected trace of G0 not to replay with G2")
	}
	if _, err := intp.Eval(":use G0"); err != nil {
		t.Fatal(err)
	}
	if _, err := intp.Eval(":replay t1"); err != nil {
		t.Errorf("expected t1 to replay with G0, error is %v", err)
	}
	for _, line := range []string{":use t1", ":use", ":let", ":frobnicate", ":load x"} {
		if _, err := intp.Eval(line); err == nil {
			t.Errorf("expected %s to fail", line)
		}
	}
	// a word which is not derivable leaves no trace to bind or replay
	if _, err := intp.Eval("ca"); err != nil {
		t.Fatal(err)
	}
	for _, line := range []string{":let t2", ":replay", ":tree"} {
		if _, err := intp.Eval(line); err == nil {
			t.Errorf("expected %s to fail after failed parse", line)
		}
	}
	if b, _ := intp.sess.User.Resolve("t2"); b != nil {
		t.Errorf("did not expect t2 to be bound, is %v", b)
	}
	for _, line := range []string{":word w1", "ab", ":word w2", ":use G2", ":parse w2", ":use G0", ":parse w2"} {
		if _, err := intp.Eval(line); err != nil {
			t.Fatalf("%s: unexpected error %v", line, err)
		}
	}
	if w, trace := intp.sess.Last(); w.String() != "ab" || trace.String() != "[0 3 5]" {
		t.Errorf("expected bound word ab to parse to [0 3 5], is %v %v", w, trace)
	}
	if w, err := intp.sess.WordNamed("w1"); err != nil || w.String() != "ca" {
		t.Errorf("expected w1 to be bound to ca, is %v, %v", w, err)
	}
	for _, line := range []string{":parse t1", ":parse", ":parse none"} {
		if _, err := intp.Eval(line); err == nil {
			t.Errorf("expected %s to fail", line)
		}
	}
	if _, err := intp.Eval(":use G1"); err != nil {
		t.Fatal(err)
	}
	if _, err := intp.Eval(":word w3"); err == nil {
		t.Errorf("expected no last word after change of grammar")
	}
	if quit, _ := intp.Eval(":quit"); !quit {
		t.Errorf("expected :quit to quit")
	}
}

func TestLeveledList(t *testing.T) {
	g, err := loadGrammar("G0")
	if err != nil {
		t.Fatal(err)
	}
	tree, err := cyk.BuildTree(g, cyk.Trace{0, 3, 5})
	if err != nil {
		t.Fatal(err)
	}
	ll := leveledList(tree)
	if len(ll) != 5 || ll[0].Level != 0 || ll[4].Level != 2 {
		t.Errorf("unexpected leveled list %v", ll)
	}
	if len(leveledList(nil)) != 0 {
		t.Errorf("expected empty list for nil tree")
	}
}
