package cyk

import (
	"fmt"
	"io"
	"strings"

	"github.com/npillmayer/cnf/grammar"
)

// ChartAsHTML exports the parse table of the most recent parse in HTML-format.
// Rows hold sub-words of equal length, longest first; columns are start
// positions. A cell lists every non-terminal deriving the sub-word, with the
// recorded rule and split point.
func ChartAsHTML(p *Parser, w io.Writer) {
	C := p.Chart()
	if C == nil {
		tracer().Errorf("no parse table for %q, cannot export to HTML", p.Word())
		return
	}
	n := C.N()
	io.WriteString(w, "<html><body>\n")
	io.WriteString(w, fmt.Sprintf("CYK table for %q of size = %d<p>", p.Word(), C.ValueCount()))
	io.WriteString(w, "<table border=1 cellspacing=0 cellpadding=5>\n")
	for l := n; l >= 1; l-- {
		io.WriteString(w, fmt.Sprintf("<tr><td bgcolor=#cccccc>%d</td>\n", l))
		for i := 0; i <= n-l; i++ {
			io.WriteString(w, "<td>")
			io.WriteString(w, cellAsString(p, i, i+l-1))
			io.WriteString(w, "</td>\n")
		}
		io.WriteString(w, "</tr>\n")
	}
	io.WriteString(w, "<tr bgcolor=#cccccc><td></td>\n")
	for _, a := range p.Word() {
		io.WriteString(w, fmt.Sprintf("<td>%s</td>", a))
	}
	io.WriteString(w, "</tr>\n")
	io.WriteString(w, "</table></body></html>\n")
}

func cellAsString(p *Parser, i, j int) string {
	C := p.Chart()
	var entries []string
	p.g.EachNonTerminal(func(A *grammar.Symbol) {
		rule, split := C.Values(A.Value, i, j)
		if rule == C.NullValue() {
			return
		}
		if split == C.NullValue() {
			entries = append(entries, fmt.Sprintf("%s:%d", A, rule))
		} else {
			entries = append(entries, fmt.Sprintf("%s:%d/%d", A, rule, split))
		}
	})
	if len(entries) == 0 {
		return "&nbsp;"
	}
	return strings.Join(entries, " ")
}
