package commands

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func newConfigureCommand() *cobra.Command {
	var watch bool

	cmd := &cobra.Command{
		Use:   "configure",
		Short: "Build the box's workload image",
		Long: `Build the box's container image from its build context.

The effective platform configuration decides the image name, runtime
and build arguments. With --watch, the build directory is watched and
the image is rebuilt whenever its contents change.`,
		Example: `  # Build the image once
  mlbox configure --mlbox ./my_box --platform ./platforms/docker.yaml

  # Rebuild on build-directory changes
  mlbox configure --mlbox ./my_box --platform ./platforms/docker.yaml --watch`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			box, err := openBox()
			if err != nil {
				return err
			}
			cfg, err := buildConfig(box, "")
			if err != nil {
				return err
			}

			log.Info().
				Str("box", box.Def.Name).
				Str("platform", cfg.Platform().Name()).
				Bool("watch", watch).
				Msg("Configuring box")

			runner, cleanup, err := newRunner(cmd.Context(), box, cfg)
			if err != nil {
				return err
			}
			defer cleanup()

			if watch {
				return runner.Watch(cmd.Context())
			}
			return runner.Configure(cmd.Context())
		},
	}

	cmd.Flags().BoolVar(&watch, "watch", false, "rebuild when the build directory changes")

	return cmd
}
