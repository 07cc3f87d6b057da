package flipmachine

import (
	"context"
	"math/big"
	"runtime"
	"slices"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

// MaxExploreTerms is the largest table, in terms, Explore will accept.
// The graph has one node per machine, 2^terms in total.
const MaxExploreTerms = 20

// ErrStateSpaceTooLarge is returned by Explore for tables with more
// than MaxExploreTerms terms.
var ErrStateSpaceTooLarge = errors.New("state space too large to explore")

// ExploreOptions tunes Explore. The zero value is usable.
type ExploreOptions struct {
	// Number of go-routines computing flips. Defaults to GOMAXPROCS.
	Workers int
	// Number of machines handed to a go-routine at a time. Defaults
	// to 2048.
	BatchSize int
}

func (o ExploreOptions) withDefaults() ExploreOptions {
	if o.Workers <= 0 {
		o.Workers = runtime.GOMAXPROCS(0) // 0 gets the current count
	}
	if o.BatchSize <= 0 {
		o.BatchSize = 2048
	}
	return o
}

type batch struct {
	from, to int
}

// Explore builds the StateGraph for the table: every machine, with an
// edge for each variable to the machine Flip produces.
//
// Machines are numbered and handed out to the workers in batches.
// Each worker builds its own machines, so nothing is shared between
// go-routines other than disjoint slots of the result. If the batch
// size is very low the workers will contend on the channel; if it is
// very high, work is spread unevenly.
func Explore(ctx context.Context, t *Table, opts ExploreOptions) (*StateGraph, error) {
	if t.Len() > MaxExploreTerms {
		return nil, errors.Wrapf(ErrStateSpaceTooLarge, "%d variables give %d terms, limit is %d",
			t.Variables(), t.Len(), MaxExploreTerms)
	}
	opts = opts.withDefaults()

	count := 1 << uint(t.Len())
	variables := t.Variables()
	// successors[k*variables+v] is the number of machine k flipped at v.
	successors := make([]int, count*variables)

	g, ctx := errgroup.WithContext(ctx)
	ch := make(chan batch, opts.Workers*opts.Workers)

	g.Go(func() error {
		defer close(ch)
		for from := 0; from < count; from += opts.BatchSize {
			to := from + opts.BatchSize
			if to > count {
				to = count
			}
			select {
			case ch <- batch{from: from, to: to}:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return nil
	})

	for idx := 0; idx < opts.Workers; idx += 1 {
		g.Go(func() error {
			num := big.NewInt(0)
			for b := range ch {
				if err := ctx.Err(); err != nil {
					return err
				}
				for k := b.from; k < b.to; k += 1 {
					m := t.MachineFromNumber(num.SetInt64(int64(k)))
					for v := 0; v < variables; v += 1 {
						m.Flip(v)
						successors[k*variables+v] = int(m.Number().Int64())
						m.Flip(v)
					}
				}
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, errors.Wrap(err, "exploring state graph")
	}

	sg := newStateGraph(t, count)
	targets := make([]int, 0, variables)
	for k, node := range sg.Nodes {
		// Flips of different variables may reach the same machine: for
		// two variables, flipping either 0 or 1 takes machine 3 to 15.
		targets = append(targets[:0], successors[k*variables:(k+1)*variables]...)
		slices.Sort(targets)
		for _, target := range slices.Compact(targets) {
			sg.link(node, sg.Nodes[target])
		}
	}
	return sg, nil
}
