package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	boxPath      string
	platformPath string
	noLedger     bool
)

// Execute runs the root command
func Execute(ctx context.Context, version, commit, buildDate string) error {
	rootCmd := newRootCommand(version, commit, buildDate)
	return rootCmd.ExecuteContext(ctx)
}

func newRootCommand(version, commit, buildDate string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "mlbox",
		Short: "MLBox - Portable ML Workload Runner",
		Long: `MLBox packages machine learning workloads as self-describing box
directories and runs them against pluggable platforms.

A box carries its own definition (mlbox.yaml), an image build context,
task definitions, and task invocations. Platform files describe where
and how tasks execute; layered configuration merges box defaults with
user settings and per-task overrides.`,
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, buildDate),
	}

	// Persistent flags available to all commands
	rootCmd.PersistentFlags().StringVar(&boxPath, "mlbox", "", "path to the box directory")
	rootCmd.PersistentFlags().StringVar(&platformPath, "platform", "", "path to the platform configuration file")
	rootCmd.PersistentFlags().BoolVar(&noLedger, "no-ledger", false, "do not record invocations in the run ledger")

	rootCmd.AddCommand(newConfigureCommand())
	rootCmd.AddCommand(newRunCommand())
	rootCmd.AddCommand(newDescribeCommand())
	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newHistoryCommand())

	return rootCmd
}
