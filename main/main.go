// flipmachine is a command line tool for inspecting term tables,
// exploring the orbits of every machine over a few variables, and
// running scenario files.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/msackman/flipmachine"
)

func main() {
	os.Exit(execute(os.Args[1:], os.Stdout, os.Stderr))
}

type app struct {
	logLevel string
	logger   log.Logger
	tables   *flipmachine.Tables
}

func execute(args []string, stdout, stderr io.Writer) int {
	a := &app{
		tables: flipmachine.NewTables(),
	}
	// Replaced once --log.level has been parsed.
	a.logger = newLogger(stderr, level.AllowInfo())
	root := a.rootCmd(stderr)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := root.ExecuteContext(ctx); err != nil {
		// %+v gets the stack trace from errors using github.com/pkg/errors
		level.Error(a.logger).Log("err", fmt.Sprintf("%+v", err))
		return 1
	}
	return 0
}

func (a *app) rootCmd(stderr io.Writer) *cobra.Command {
	root := &cobra.Command{
		Use:   "flipmachine",
		Short: "Inspect and explore permutation-indexed boolean machines",
		Long: `flipmachine works with machines holding one boolean per term, where a
term is an ordered sequence of distinct variables. Flipping a variable
toggles it, and toggles the suffix of every true term it heads.

Subcommands:
  terms   Print the term table for a number of variables
  count   Print how many terms and machines exist
  orbits  Group every machine by what single flips can reach
  run     Run scenario files`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			allow, err := parseLevel(a.logLevel)
			if err != nil {
				return err
			}
			a.logger = newLogger(stderr, allow)
			return nil
		},
	}
	root.PersistentFlags().StringVar(&a.logLevel, "log.level", "info",
		"Only log messages with the given severity or above. Valid levels: [debug, info, warn, error]")

	root.AddCommand(a.termsCmd(), a.countCmd(), a.orbitsCmd(), a.runCmd())
	return root
}

// parseVariables parses a universe size argument, which must lie in
// [0, max].
func parseVariables(arg string, max int) (int, error) {
	n, err := strconv.Atoi(arg)
	if err != nil {
		return 0, errors.Wrapf(err, "parsing number of variables %q", arg)
	}
	if n < 0 || n > max {
		return 0, errors.Errorf("number of variables must be between 0 and %d, got %d", max, n)
	}
	return n, nil
}
