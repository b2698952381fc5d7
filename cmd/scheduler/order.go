package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/TudorHulban/taskscheduler/internal/engine"
)

func orderCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "order <problem>",
		Short: "Print the order tasks are considered in",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			tasks, _, err := loadProblem(args[0])
			if err != nil {
				return err
			}

			e, err := engine.New(
				&engine.ParamsNew{
					Logger: cfg.Logging.Logger("cli", cmd.ErrOrStderr()),
					Config: cfg.Solver,
				},
			)
			if err != nil {
				return err
			}

			order, err := e.Order(tasks)
			if err != nil {
				return err
			}

			for ix, id := range order {
				if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%d. %s\n", ix+1, id); err != nil {
					return err
				}
			}

			return nil
		},
	}
}
