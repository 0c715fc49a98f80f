package commands

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func newRunCommand() *cobra.Command {
	var taskPath string

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run a task invocation in a container",
		Long: `Run one task invocation of the box.

The invocation document names the task to run and binds its declared
input and output parameters to host paths. Bindings may reference
$WORKSPACE, which resolves to the box's workspace directory. If the
effective configuration declares an override for the task, its params
and environment apply on top of the platform settings.`,
		Example: `  # Run the invocation described by run/train.yaml
  mlbox run --mlbox ./my_box --platform ./platforms/docker.yaml --task ./my_box/run/train.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if taskPath == "" {
				return fmt.Errorf("--task is required")
			}
			box, err := openBox()
			if err != nil {
				return err
			}
			if err := box.LoadInvoke(taskPath); err != nil {
				return err
			}
			if err := box.LoadTask(box.Invoke.TaskName); err != nil {
				return err
			}

			cfg, err := buildConfig(box, box.Invoke.TaskName)
			if err != nil {
				return err
			}

			log.Info().
				Str("box", box.Def.Name).
				Str("task", box.Invoke.TaskName).
				Str("platform", cfg.Platform().Name()).
				Msg("Running task")

			runner, cleanup, err := newRunner(cmd.Context(), box, cfg)
			if err != nil {
				return err
			}
			defer cleanup()

			return runner.Run(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&taskPath, "task", "", "path to the task invocation file")

	return cmd
}
