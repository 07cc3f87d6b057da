package flipmachine

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMachineCount(t *testing.T) {
	tables := NewTables()
	assert.Equal(t, "1", tables.For(0).MachineCount().String())
	assert.Equal(t, "2", tables.For(1).MachineCount().String())
	assert.Equal(t, "16", tables.For(2).MachineCount().String())
	assert.Equal(t, "32768", tables.For(3).MachineCount().String())
	assert.Equal(t, "18446744073709551616", tables.For(4).MachineCount().String())
}

func TestAllMachinesComplete(t *testing.T) {
	tables := NewTables()
	for variables := 0; variables <= 3; variables++ {
		table := tables.For(variables)
		machines := table.AllMachines()
		require.Len(t, machines, 1<<uint(table.Len()))

		seen := make(map[string]bool, len(machines))
		for k, m := range machines {
			require.Equal(t, table.Len(), len(m.Values()))
			require.Equal(t, int64(k), m.Number().Int64())
			key := m.String()
			require.False(t, seen[key], "machine %d repeated", k)
			seen[key] = true
		}
	}
}

func TestAllMachinesBitOrder(t *testing.T) {
	machines := NewTables().For(2).AllMachines()
	// Slot 0 ([0]) is the most significant bit, slot 3 ([1 0]) the
	// least.
	assert.Equal(t, []bool{false, false, false, false}, machines[0].Values())
	assert.Equal(t, []bool{false, false, false, true}, machines[1].Values())
	assert.Equal(t, []bool{false, false, true, false}, machines[2].Values())
	assert.Equal(t, []bool{true, false, false, false}, machines[8].Values())
	assert.Equal(t, []bool{true, true, true, true}, machines[15].Values())
}

func TestAllMachinesZeroVariables(t *testing.T) {
	machines := NewTables().For(0).AllMachines()
	require.Len(t, machines, 1)
	assert.Empty(t, machines[0].Values())
	assert.Equal(t, int64(0), machines[0].Number().Int64())
}

func TestForEachMachineNumbers(t *testing.T) {
	table := NewTables().For(2)
	var numbers []int64
	table.ForEachMachine(func(n *big.Int, m *Machine) {
		assert.Equal(t, 0, n.Cmp(m.Number()))
		numbers = append(numbers, n.Int64())
	})
	require.Len(t, numbers, 16)
	for idx, n := range numbers {
		assert.Equal(t, int64(idx), n)
	}
}

func TestMachineFromNumber(t *testing.T) {
	table := NewTables().For(3)
	for _, m := range table.AllMachines() {
		assert.True(t, m.Equal(table.MachineFromNumber(m.Number())))
	}
}

func TestMachineFromNumberLargeTable(t *testing.T) {
	table := NewTables().For(4)
	num, ok := big.NewInt(0).SetString("12345678901234567890", 10)
	require.True(t, ok)
	m := table.MachineFromNumber(num)
	assert.Equal(t, 0, num.Cmp(m.Number()))

	last := big.NewInt(0).Sub(table.MachineCount(), bigIntOne)
	m = table.MachineFromNumber(last)
	for _, value := range m.Values() {
		assert.True(t, value)
	}
}

func TestMachineFromNumberOutOfRange(t *testing.T) {
	table := NewTables().For(2)
	assert.Panics(t, func() { table.MachineFromNumber(big.NewInt(16)) })
	assert.Panics(t, func() { table.MachineFromNumber(big.NewInt(-1)) })
	assert.NotPanics(t, func() { table.MachineFromNumber(big.NewInt(15)) })
}
