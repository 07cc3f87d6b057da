package main

import (
	"fmt"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/msackman/flipmachine/scenario"
)

func (a *app) runCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run <scenario.yaml>...",
		Short: "Run scenario files",
		Long: `Run every given scenario file against a fresh machine and report
whether each one passed. Use --log.level=debug to see the machine after
every step.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			failed := 0
			for _, path := range args {
				logger := log.With(a.logger, "file", path)
				if err := a.runScenario(path, logger); err != nil {
					failed += 1
					fmt.Fprintf(cmd.OutOrStdout(), "FAIL %s: %v\n", path, err)
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "PASS %s\n", path)
			}
			if failed > 0 {
				return errors.Errorf("%d of %d scenarios failed", failed, len(args))
			}
			return nil
		},
	}
}

func (a *app) runScenario(path string, logger log.Logger) error {
	s, err := scenario.Load(path)
	if err != nil {
		return err
	}
	m, err := s.Run(a.tables, logger)
	if err != nil {
		return err
	}
	level.Debug(logger).Log("msg", "scenario passed", "steps", len(s.Steps), "machine", m)
	return nil
}
