package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/xyhuang/mlbox/pkg/template"
)

func newInitCommand() *cobra.Command {
	var rootDir string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a new box from the starter template",
		Long: `Create a new box directory from the embedded starter template.

The template is a complete, runnable hello-world box: a definition,
an image build context, one task with an invocation, a docker platform
file and a workspace. The target path must not exist yet.`,
		Example: `  mlbox init --root-dir ./my_box`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := template.Scaffold(rootDir); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Template box created at %s\n", rootDir)
			return nil
		},
	}

	cmd.Flags().StringVar(&rootDir, "root-dir", "mlbox_example", "directory to create the box in")

	return cmd
}
