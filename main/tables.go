package main

import (
	"fmt"
	"math/big"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/go-kit/log/level"
	"github.com/spf13/cobra"

	"github.com/msackman/flipmachine"
)

const (
	// 8 variables is already 109600 terms.
	maxTermsVariables = 8
	// TermCount overflows an int beyond 20 variables.
	maxCountVariables = 20
)

func (a *app) termsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "terms <variables>",
		Short: "Print the term table for a number of variables",
		Long: `Print every term over the given number of variables, with its
position in the table. Terms are ordered by length, then
lexicographically.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := parseVariables(args[0], maxTermsVariables)
			if err != nil {
				return err
			}
			t := a.tables.For(n)
			level.Debug(a.logger).Log("msg", "built term table", "variables", n, "terms", t.Len())

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 8, 1, ' ', 0)
			for idx, term := range t.Terms() {
				fmt.Fprintf(w, "%d\t%v\n", idx, term)
			}
			return w.Flush()
		},
	}
}

func (a *app) countCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "count <variables>",
		Short: "Print how many terms and machines exist",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := parseVariables(args[0], maxCountVariables)
			if err != nil {
				return err
			}
			terms := flipmachine.TermCount(n)
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "variables: %d\n", n)
			fmt.Fprintf(out, "terms:     %s\n", humanize.Comma(int64(terms)))
			if terms <= 1<<16 {
				machines := big.NewInt(0).Lsh(big.NewInt(1), uint(terms))
				fmt.Fprintf(out, "machines:  %s\n", humanize.BigComma(machines))
			} else {
				fmt.Fprintf(out, "machines:  2^%s\n", humanize.Comma(int64(terms)))
			}
			return nil
		},
	}
}
