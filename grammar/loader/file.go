package loader

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/npillmayer/cnf/grammar"
)

// File loads a grammar from a file. The format is selected by the file
// extension:
//
//     .cnf, .txt     rule notation
//     .ebnf          EBNF, first production is the start symbol
//     .yaml, .yml    YAML
//
// The grammar is named after the file, unless a YAML document names it.
func File(path string) (*grammar.Grammar, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	ext := strings.ToLower(filepath.Ext(path))
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	tracer().Infof("loading grammar %s from %s", name, path)
	switch ext {
	case ".cnf", ".txt":
		return ReadNotation(name, f)
	case ".ebnf":
		return ReadEBNF(name, f, "")
	case ".yaml", ".yml":
		return ReadYAML(name, f)
	}
	return nil, fmt.Errorf("unknown grammar format %q of file %s", ext, path)
}
