/*
Package chart implements the parse table of a CYK recognizer.

For every non-terminal A and every range [i…j] of input positions (0-based,
inclusive) the chart holds at most one entry: a pair of integers, usually the
number of a rule deriving word[i…j] from A and the split point of the
derivation. Empty cells hold the null-value.

The chart is dense: cells are stored in a flat slice, indexed by
(A, i, j). Cells with j < i are allocated but never used.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package chart

import (
	"fmt"
)

// Chart is a type for a parse table of integer pairs. Construct with
//
//     C := chart.New(4, 5)           // 4 non-terminals, input of length 5
//
// Now
//
//     C.Set(2, 0, 3, 7, 1)           // cell (2, 0…3) := (7, 1)
//     v := C.Value(2, 0, 3)          // returns 7
//     C.Set(2, 0, 3, 4, 2)           // cell is occupied, returns false
//     v = C.Value(1, 0, 3)           // returns NullValue
//
// Values cannot be deleted. The first value stored into a cell wins.
type Chart struct {
	cells   []intPair
	rowcnt  int // number of non-terminals
	n       int // length of input
	nullval int32
}

// NullValue is the empty-value for chart cells (min int32).
const NullValue = -2147483648

// New creates a chart for a given number of non-terminals and an input length n.
func New(nonterminals, n int) *Chart {
	c := &Chart{
		cells:   make([]intPair, nonterminals*n*n),
		rowcnt:  nonterminals,
		n:       n,
		nullval: NullValue,
	}
	for k := range c.cells {
		c.cells[k] = intPair{c.nullval, c.nullval}
	}
	return c
}

// M returns the number of non-terminals.
func (c *Chart) M() int {
	return c.rowcnt
}

// N returns the input length.
func (c *Chart) N() int {
	return c.n
}

// NullValue returns this chart's null value.
func (c *Chart) NullValue() int32 {
	return c.nullval
}

func (c *Chart) index(A, i, j int) int {
	if A < 0 || A >= c.rowcnt || i < 0 || j < i || j >= c.n {
		panic(fmt.Sprintf("chart cell (%d, %d…%d) out of range", A, i, j))
	}
	return (A*c.n+i)*c.n + j
}

// Has returns true if cell (A, i…j) is occupied.
func (c *Chart) Has(A, i, j int) bool {
	return c.cells[c.index(A, i, j)].a != c.nullval
}

// Value returns the primary value at cell (A, i…j), or NullValue.
func (c *Chart) Value(A, i, j int) int32 {
	return c.cells[c.index(A, i, j)].a
}

// Values returns the pair of values at cell (A, i…j), or (NullValue, NullValue).
func (c *Chart) Values(A, i, j int) (int32, int32) {
	pr := c.cells[c.index(A, i, j)]
	return pr.a, pr.b
}

// Set stores a pair of values at cell (A, i…j), if the cell is empty.
// Returns true if the values have been stored.
//
// Set may be called concurrently for distinct cells.
func (c *Chart) Set(A, i, j int, a, b int32) bool {
	k := c.index(A, i, j)
	if c.cells[k].a != c.nullval {
		return false
	}
	c.cells[k] = intPair{a, b}
	return true
}

// ValueCount returns the number of occupied cells.
func (c *Chart) ValueCount() int {
	cnt := 0
	for _, pr := range c.cells {
		if pr.a != c.nullval {
			cnt++
		}
	}
	return cnt
}

// we will store 2 int32 in one position
type intPair struct {
	a int32
	b int32
}

func (pr intPair) String() string {
	return fmt.Sprintf("[%d,%d]", pr.a, pr.b)
}
