package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/TudorHulban/taskscheduler/internal/engine"
	"github.com/TudorHulban/taskscheduler/internal/metrics"
)

func solveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "solve <problem>",
		Short: "Compute a schedule for a problem file",
		Args:  cobra.ExactArgs(1),
		RunE:  runSolve,
	}

	cmd.Flags().BoolVar(&flagJSON, "json", false, "print the schedule as JSON")
	cmd.Flags().StringVar(&flagMetricsFile, "metrics-file", "", "write run metrics to a node exporter textfile")

	return cmd
}

func runSolve(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	log := cfg.Logging.Logger("cli", cmd.ErrOrStderr())

	tasks, resources, err := loadProblem(args[0])
	if err != nil {
		return err
	}

	textfile := cfg.Metrics.Textfile
	if flagMetricsFile != "" {
		textfile = flagMetricsFile
	}

	var (
		sink     metrics.Sink = metrics.NopSink{}
		registry *prometheus.Registry
	)

	if cfg.Metrics.Enabled || textfile != "" {
		registry = prometheus.NewRegistry()

		promSink, err := metrics.NewPromSink(cfg.Metrics, registry)
		if err != nil {
			return fmt.Errorf("metrics: %w", err)
		}

		sink = promSink
	}

	e, err := engine.New(
		&engine.ParamsNew{
			Logger:  log,
			Metrics: sink,
			Config:  cfg.Solver,
		},
	)
	if err != nil {
		return err
	}

	schedule, errSchedule := e.Schedule(ctx, tasks, resources)

	if registry != nil && textfile != "" {
		if err := metrics.WriteTextfile(textfile, registry); err != nil {
			log.Errorf("%v", err)
		}
	}

	if errSchedule != nil {
		return errSchedule
	}

	out := cmd.OutOrStdout()

	if flagJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")

		return enc.Encode(schedule)
	}

	_, err = fmt.Fprintln(out, renderSchedule(schedule))

	return err
}
