package commands

import (
	"fmt"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
)

func newDescribeCommand() *cobra.Command {
	var taskName string

	cmd := &cobra.Command{
		Use:   "describe",
		Short: "Print the effective platform configuration",
		Long: `Print the effective platform configuration as JSON.

The document is the result of layering the declared defaults, the
box's own platform defaults, the user platform file and, with --task,
the task's override.`,
		Example: `  # Effective configuration for the box
  mlbox describe --mlbox ./my_box --platform ./platforms/docker.yaml

  # Including the train task's override
  mlbox describe --mlbox ./my_box --platform ./platforms/docker.yaml --task train`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			box, err := openBox()
			if err != nil {
				return err
			}
			cfg, err := buildConfig(box, taskName)
			if err != nil {
				return err
			}

			out, err := json.MarshalIndent(cfg.Document(), "", "  ")
			if err != nil {
				return fmt.Errorf("render configuration: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return nil
		},
	}

	cmd.Flags().StringVar(&taskName, "task", "", "apply the named task's override")

	return cmd
}
