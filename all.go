package flipmachine

import (
	"fmt"
	"math/big"
)

var bigIntOne = big.NewInt(1)

// MachineCount returns the number of distinct machines over the
// table: 2 to the power of Len().
func (t *Table) MachineCount() *big.Int {
	return big.NewInt(0).Lsh(bigIntOne, uint(t.Len()))
}

// Number returns the machine's number. Every machine over a table has
// a unique number: the values read in table order as binary digits,
// most significant first. So machine 0 has every term false, and the
// last term's value is the least significant bit.
func (m *Machine) Number() *big.Int {
	n := big.NewInt(0)
	last := len(m.values) - 1
	for idx, value := range m.values {
		if value {
			n.SetBit(n, last-idx, 1)
		}
	}
	return n
}

// MachineFromNumber builds the machine with the given number (see
// Machine.Number). It panics if num is negative or not less than
// MachineCount().
func (t *Table) MachineFromNumber(num *big.Int) *Machine {
	if num.Sign() < 0 || num.BitLen() > t.Len() {
		panic(fmt.Sprintf("flipmachine: machine number %v out of range for %d terms", num, t.Len()))
	}
	return t.NewMachine(signature(num, t.Len()))
}

// signature returns a Producer which hands out the binary digits of
// num, most significant first, one per call.
func signature(num *big.Int, width int) Producer {
	bit := width
	return func(Term) bool {
		bit -= 1
		return num.Bit(bit) == 1
	}
}

// ForEachMachine calls f once for every machine over the table, in
// number order. f receives the machine's number and the machine;
// both are freshly allocated and may be retained. The number of calls
// is MachineCount(), so this is only practical for very small tables.
func (t *Table) ForEachMachine(f func(*big.Int, *Machine)) {
	count := t.MachineCount()
	for n := big.NewInt(0); n.Cmp(count) < 0; n = big.NewInt(0).Add(n, bigIntOne) {
		f(n, t.NewMachine(signature(n, t.Len())))
	}
}

// AllMachines returns every machine over the table, in number order:
// AllMachines()[k].Number() is k.
func (t *Table) AllMachines() []*Machine {
	var machines []*Machine
	t.ForEachMachine(func(_ *big.Int, m *Machine) {
		machines = append(machines, m)
	})
	return machines
}
