package commands

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
)

func newHistoryCommand() *cobra.Command {
	var (
		limit      int
		offset     int
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded box invocations",
		Long: `List recorded invocations from the box's run ledger, most recent
first. Every configure and run invocation is recorded unless
--no-ledger was given.`,
		Example: `  # Last ten invocations
  mlbox history --mlbox ./my_box

  # Full records as JSON
  mlbox history --mlbox ./my_box --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			box, err := openBox()
			if err != nil {
				return err
			}
			store, err := openLedger(cmd.Context(), box)
			if err != nil {
				return err
			}
			if store == nil {
				return fmt.Errorf("run ledger is disabled")
			}
			defer store.Close()

			runs, err := store.ListRuns(cmd.Context(), limit, offset)
			if err != nil {
				return err
			}

			if jsonOutput {
				out, err := json.MarshalIndent(runs, "", "  ")
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(out))
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "STARTED\tACTION\tTASK\tSTATUS\tID")
			for _, run := range runs {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
					run.StartedAt.Local().Format(time.RFC3339),
					run.Action, run.Task, run.Status, run.ID)
			}
			return w.Flush()
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 10, "maximum number of entries to list")
	cmd.Flags().IntVar(&offset, "offset", 0, "number of entries to skip")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "output full records as JSON")

	return cmd
}
