package flipmachine

import (
	"encoding/binary"
	"fmt"
	"strings"
	"sync"
)

// A Term is an ordered sequence of distinct variable ids. [0 1] and
// [1 0] are different terms.
type Term []int

// Head returns the first variable of the term.
func (t Term) Head() int {
	return t[0]
}

// Suffix returns the term with its first variable dropped. The result
// is empty for a term of length 1 and shares storage with t.
func (t Term) Suffix() Term {
	return t[1:]
}

// Equal reports whether t and u hold the same variables in the same
// order.
func (t Term) Equal(u Term) bool {
	if len(t) != len(u) {
		return false
	}
	for idx, v := range t {
		if u[idx] != v {
			return false
		}
	}
	return true
}

func (t Term) String() string {
	var sb strings.Builder
	sb.WriteByte('[')
	for idx, v := range t {
		if idx > 0 {
			sb.WriteByte(' ')
		}
		fmt.Fprint(&sb, v)
	}
	sb.WriteByte(']')
	return sb.String()
}

func (t Term) key() string {
	buf := make([]byte, 0, len(t)*2)
	for _, v := range t {
		buf = binary.AppendUvarint(buf, uint64(v))
	}
	return string(buf)
}

// Table is the term table for one universe size: every term in a
// fixed order, together with the inverse mapping from term to
// position. A Table is immutable once built and safe for concurrent
// use. Obtain one from Tables.For.
type Table struct {
	variables int
	terms     []Term
	index     map[string]int
	// Per slot: the first variable of the term, and the slot of its
	// suffix (-1 for singletons). Flip scans these instead of probing
	// the index.
	heads    []int
	suffixes []int
}

func buildTable(variables int) *Table {
	count := TermCount(variables)
	t := &Table{
		variables: variables,
		terms:     make([]Term, 0, count),
		index:     make(map[string]int, count),
		heads:     make([]int, 0, count),
		suffixes:  make([]int, 0, count),
	}
	ForEachTerm(variables, func(term Term) {
		term = append(Term(nil), term...)
		t.index[term.key()] = len(t.terms)
		t.terms = append(t.terms, term)
	})
	for _, term := range t.terms {
		t.heads = append(t.heads, term.Head())
		suffix := -1
		if len(term) > 1 {
			// Shorter terms precede longer ones, so the suffix is
			// already indexed.
			suffix = t.Index(term.Suffix())
		}
		t.suffixes = append(t.suffixes, suffix)
	}
	return t
}

// Variables returns the universe size of the table.
func (t *Table) Variables() int {
	return t.variables
}

// Len returns the number of terms in the table.
func (t *Table) Len() int {
	return len(t.terms)
}

// Term returns the term at position idx. The result must not be
// modified.
func (t *Table) Term(idx int) Term {
	return t.terms[idx]
}

// Terms returns every term in table order. Neither the slice nor the
// terms must be modified.
func (t *Table) Terms() []Term {
	return t.terms
}

// Lookup returns the position of term in the table, and whether it
// was found.
func (t *Table) Lookup(term Term) (int, bool) {
	idx, found := t.index[term.key()]
	return idx, found
}

// Index returns the position of term in the table. It panics if term
// is not a term over the table's variables.
func (t *Table) Index(term Term) int {
	idx, found := t.Lookup(term)
	if !found {
		panic(fmt.Sprintf("flipmachine: term %v not in table for %d variables", term, t.variables))
	}
	return idx
}

// Singleton returns the position of the term [variable]. The
// singletons occupy the first Variables() positions.
func (t *Table) Singleton(variable int) int {
	if variable < 0 || variable >= t.variables {
		panic(fmt.Sprintf("flipmachine: variable %d out of range [0, %d)", variable, t.variables))
	}
	return variable
}

// Tables caches one Table per universe size. Tables are built on
// first use and never evicted. The zero value is not usable; call
// NewTables.
type Tables struct {
	mu     sync.Mutex
	tables map[int]*Table
}

func NewTables() *Tables {
	return &Tables{
		tables: make(map[int]*Table),
	}
}

// For returns the Table for the given universe size, building it if
// necessary. It is safe to call from multiple go-routines: for any
// one universe size every caller receives the same Table.
func (ts *Tables) For(variables int) *Table {
	if variables < 0 {
		panic(fmt.Sprintf("flipmachine: negative universe size %d", variables))
	}
	ts.mu.Lock()
	defer ts.mu.Unlock()
	t, found := ts.tables[variables]
	if !found {
		t = buildTable(variables)
		ts.tables[variables] = t
	}
	return t
}

// NewMachine is shorthand for ts.For(variables).NewMachine(p).
func (ts *Tables) NewMachine(variables int, p Producer) *Machine {
	return ts.For(variables).NewMachine(p)
}
