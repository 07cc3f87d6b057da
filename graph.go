package flipmachine

import (
	"fmt"
	"math/big"
	"sort"
)

// StateNode is one machine in a StateGraph, identified by its machine
// number. An edge from a to b means some single Flip takes machine a
// to machine b. Since Flip is its own inverse every edge also appears
// reversed. A node has at most one edge per variable, and fewer when
// flips of different variables reach the same machine.
type StateNode struct {
	// The machine number of this node.
	Number int
	// The outgoing edges from this node, ascending by machine number,
	// without duplicates. Treat this field as read-only.
	Out []*StateNode
	// The incoming edges to this node, ascending by machine number,
	// without duplicates. Treat this field as read-only.
	In []*StateNode
}

func (sn *StateNode) String() string {
	return fmt.Sprintf("StateNode for machine %d", sn.Number)
}

// StateGraph holds every machine over a table, linked by single
// flips. Build one with Explore.
type StateGraph struct {
	table *Table
	// Nodes[k] is the node for machine number k.
	Nodes []*StateNode
}

func newStateGraph(t *Table, count int) *StateGraph {
	nodes := make([]*StateNode, count)
	for idx := range nodes {
		nodes[idx] = &StateNode{Number: idx}
	}
	return &StateGraph{
		table: t,
		Nodes: nodes,
	}
}

// link adds an edge from a to b. Each edge must be linked only once.
func (sg *StateGraph) link(a, b *StateNode) {
	a.Out = append(a.Out, b)
	b.In = append(b.In, a)
}

// Table returns the table whose machines the graph covers.
func (sg *StateGraph) Table() *Table {
	return sg.table
}

// Machine builds the machine for node number k.
func (sg *StateGraph) Machine(k int) *Machine {
	return sg.table.MachineFromNumber(big.NewInt(int64(k)))
}

// An Orbit is a set of machines which can all be reached from one
// another by sequences of flips.
type Orbit struct {
	// The smallest machine number in the orbit.
	Representative int
	// Every machine number in the orbit, ascending.
	Members []int
}

func (o Orbit) Size() int {
	return len(o.Members)
}

// Orbits partitions the graph into its connected components. Orbits
// are returned ordered by representative.
func (sg *StateGraph) Orbits() []Orbit {
	visited := make([]bool, len(sg.Nodes))
	orbits := []Orbit{}
	for _, start := range sg.Nodes {
		if visited[start.Number] {
			continue
		}
		visited[start.Number] = true
		members := []int{}
		worklist := []*StateNode{start}
		for l := len(worklist); l != 0; l = len(worklist) {
			cur := worklist[l-1]
			worklist = worklist[:l-1]
			members = append(members, cur.Number)
			for _, edges := range [][]*StateNode{cur.Out, cur.In} {
				for _, next := range edges {
					if !visited[next.Number] {
						visited[next.Number] = true
						worklist = append(worklist, next)
					}
				}
			}
		}
		sort.Ints(members)
		orbits = append(orbits, Orbit{
			Representative: start.Number,
			Members:        members,
		})
	}
	return orbits
}
