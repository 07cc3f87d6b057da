package main

import (
	"fmt"
	"sort"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/go-kit/log/level"
	"github.com/spf13/cobra"

	"github.com/msackman/flipmachine"
)

func (a *app) orbitsCmd() *cobra.Command {
	var (
		opts flipmachine.ExploreOptions
		top  int
	)
	cmd := &cobra.Command{
		Use:   "orbits <variables>",
		Short: "Group every machine by what single flips can reach",
		Long: `Build every machine over the given number of variables, link each to
the machines one flip away, and print the resulting orbits: sets of
machines which can all reach one another. Only practical for up to 3
variables.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := parseVariables(args[0], maxTermsVariables)
			if err != nil {
				return err
			}
			t := a.tables.For(n)
			level.Info(a.logger).Log("msg", "exploring", "variables", n, "terms", t.Len())

			start := time.Now()
			sg, err := flipmachine.Explore(cmd.Context(), t, opts)
			if err != nil {
				return err
			}
			orbits := sg.Orbits()
			level.Info(a.logger).Log("msg", "explored", "orbits", len(orbits), "duration", time.Since(start))

			printOrbits(cmd, sg, orbits, top)
			return nil
		},
	}
	cmd.Flags().IntVar(&opts.Workers, "workers", 0, "Number of go-routines computing flips. 0 means GOMAXPROCS.")
	cmd.Flags().IntVar(&opts.BatchSize, "batch-size", 2048, "Number of machines handed to a go-routine at a time.")
	cmd.Flags().IntVar(&top, "top", 3, "Number of smallest and largest orbits to print.")
	return cmd
}

func printOrbits(cmd *cobra.Command, sg *flipmachine.StateGraph, orbits []flipmachine.Orbit, top int) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "orbits: %s\n", humanize.Comma(int64(len(orbits))))

	sizes := make(map[int]int)
	for _, orbit := range orbits {
		sizes[orbit.Size()] += 1
	}
	keys := make([]int, 0, len(sizes))
	for size := range sizes {
		keys = append(keys, size)
	}
	sort.Ints(keys)
	for _, size := range keys {
		fmt.Fprintf(out, "  size %s: %s\n", humanize.Comma(int64(size)), humanize.Comma(int64(sizes[size])))
	}

	bySize := make([]flipmachine.Orbit, len(orbits))
	copy(bySize, orbits)
	sort.SliceStable(bySize, func(i, j int) bool {
		return bySize[i].Size() < bySize[j].Size()
	})
	top = max(0, min(top, len(bySize)))
	fmt.Fprintln(out, "smallest:")
	for _, orbit := range bySize[:top] {
		printOrbit(cmd, sg, orbit)
	}
	fmt.Fprintln(out, "largest:")
	for idx := len(bySize) - 1; idx >= len(bySize)-top; idx -= 1 {
		printOrbit(cmd, sg, bySize[idx])
	}
}

func printOrbit(cmd *cobra.Command, sg *flipmachine.StateGraph, orbit flipmachine.Orbit) {
	fmt.Fprintf(cmd.OutOrStdout(), "  #%d (%d machines) %v\n",
		orbit.Representative, orbit.Size(), sg.Machine(orbit.Representative))
}
