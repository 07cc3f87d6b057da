// Package flipmachine provides a permutation-indexed boolean state
// machine, and the tools to exhaustively explore every such machine
// over a small number of variables.
//
// Given n variables, a term is an ordered sequence of distinct
// variables, of length 1 to n. [0 1] and [1 0] are different terms. A
// Machine holds one boolean for every term. The only way to change a
// Machine (other than building a new one) is to Flip a variable: this
// toggles the term [v], and then for every term which starts with v
// and is currently true, toggles that term with v dropped from the
// front. So with two variables, if [0 1] is true then flipping 0 also
// flips 1.
//
// Every term over n variables has a fixed position in a Table, which
// is what allows a Machine to store its values as a dense slice
// rather than a map. Tables are built on demand and cached by a
// Tables value, which is safe to share between go-routines:
//
//	tables := flipmachine.NewTables()
//	m := tables.NewMachine(2, func(term flipmachine.Term) bool {
//		return term.Equal(flipmachine.Term{0, 1})
//	})
//	m.Set(0, true) // m.Get(1) is now also true
//
// The number of machines over n variables grows very quickly (2^4
// for n=2, 2^15 for n=3, 2^64 for n=4), so exhaustive iteration with
// AllMachines, ForEachMachine or Explore is only practical for tiny
// n. Every machine has a unique number (see Machine.Number), which
// may be used to regenerate a specific machine with
// Table.MachineFromNumber.
//
// Explore links every machine to the machines reachable from it by a
// single flip, and StateGraph.Orbits groups machines which can reach
// one another.
//
// See https://github.com/msackman/flipmachine/blob/master/main/main.go
// for a command line tool built on this package.
package flipmachine
