package flipmachine

import (
	"strings"

	"github.com/segmentio/fasthash/fnv1a"
)

// A Producer supplies the initial value of each term when a Machine
// is built. The term passed in belongs to the Table and must not be
// modified or retained.
type Producer func(Term) bool

// Machine holds one boolean per term of its Table. The values are
// stored densely, in table order.
//
// A Machine is not safe for concurrent mutation.
type Machine struct {
	table  *Table
	values []bool
}

// NewMachine builds a Machine over the table. p is called exactly
// once for every term, in table order.
func (t *Table) NewMachine(p Producer) *Machine {
	values := make([]bool, 0, t.Len())
	for _, term := range t.terms {
		values = append(values, p(term))
	}
	return &Machine{
		table:  t,
		values: values,
	}
}

// Table returns the table the machine is indexed by.
func (m *Machine) Table() *Table {
	return m.table
}

// Variables returns the universe size of the machine.
func (m *Machine) Variables() int {
	return m.table.variables
}

// Get returns the value of the term [variable].
func (m *Machine) Get(variable int) bool {
	return m.values[m.table.Singleton(variable)]
}

// Value returns the value of an arbitrary term. It panics if term is
// not in the machine's table.
func (m *Machine) Value(term Term) bool {
	return m.values[m.table.Index(term)]
}

// Set makes Get(variable) return value, flipping variable if, and
// only if, it currently holds the other value.
func (m *Machine) Set(variable int, value bool) {
	if m.Get(variable) != value {
		m.Flip(variable)
	}
}

// Flip toggles the term [variable] and then, for every term headed by
// variable which is currently true, toggles the term's suffix.
//
// The suffixes to toggle are all selected before any is toggled, so
// the result does not depend on scan order. No selected suffix starts
// with variable, which makes Flip its own inverse.
func (m *Machine) Flip(variable int) {
	slot := m.table.Singleton(variable)
	m.values[slot] = !m.values[slot]

	var toFlip []int
	for idx, value := range m.values {
		if value && m.table.heads[idx] == variable {
			if suffix := m.table.suffixes[idx]; suffix >= 0 {
				toFlip = append(toFlip, suffix)
			}
		}
	}
	for _, idx := range toFlip {
		m.values[idx] = !m.values[idx]
	}
}

// Values returns a copy of the machine's values, in table order.
func (m *Machine) Values() []bool {
	values := make([]bool, len(m.values))
	copy(values, m.values)
	return values
}

// Clone returns a Machine over the same table which shares no mutable
// state with the receiver.
func (m *Machine) Clone() *Machine {
	return &Machine{
		table:  m.table,
		values: m.Values(),
	}
}

// Equal reports whether m and o have the same universe size and the
// same value for every term.
func (m *Machine) Equal(o *Machine) bool {
	if m.table.variables != o.table.variables || len(m.values) != len(o.values) {
		return false
	}
	for idx, value := range m.values {
		if o.values[idx] != value {
			return false
		}
	}
	return true
}

// Hash returns a hash of the universe size and values. Equal machines
// have equal hashes.
func (m *Machine) Hash() uint64 {
	h := fnv1a.AddUint64(fnv1a.Init64, uint64(m.table.variables))
	var word uint64
	for idx, value := range m.values {
		if value {
			word |= 1 << uint(idx%64)
		}
		if idx%64 == 63 {
			h = fnv1a.AddUint64(h, word)
			word = 0
		}
	}
	if len(m.values)%64 != 0 {
		h = fnv1a.AddUint64(h, word)
	}
	return h
}

// String renders every term with its value, in table order, e.g.
// {[0]:false [1]:true [0 1]:true [1 0]:false}
func (m *Machine) String() string {
	var sb strings.Builder
	sb.WriteByte('{')
	for idx, value := range m.values {
		if idx > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(m.table.terms[idx].String())
		if value {
			sb.WriteString(":true")
		} else {
			sb.WriteString(":false")
		}
	}
	sb.WriteByte('}')
	return sb.String()
}
