package main

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	flagConfig      string
	flagLogLevel    string
	flagJSON        bool
	flagMetricsFile string
)

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "scheduler",
		Short: "Schedule interdependent tasks on time limited resources",
		Long: `scheduler reads tasks with precedence constraints and resource demands,
plus resources with availability windows, and computes a greedy schedule:
a start time and resource assignment per task, never overbooking capacity.`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVarP(&flagConfig, "config", "c", "", "configuration file (yaml or json)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "override the configured log level")

	rootCmd.AddCommand(solveCmd())
	rootCmd.AddCommand(orderCmd())
	rootCmd.AddCommand(versionCmd())

	return rootCmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
