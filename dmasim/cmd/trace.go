package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/sarchlab/mcusim/datarecording"
	"github.com/sarchlab/mcusim/tracing"
	"github.com/spf13/cobra"
)

var traceCmd = &cobra.Command{
	Use:   "trace <db>",
	Short: "Print the DMA blocks recorded by run --trace-db.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		// sql.Open creates missing files, so check first.
		_, err := os.Stat(args[0])
		if err != nil {
			return err
		}

		reader, err := datarecording.NewReader(args[0])
		if err != nil {
			return err
		}
		defer reader.Close()

		kind, _ := cmd.Flags().GetString("kind")

		tasks, err := tracing.ReadTasks(cmd.Context(), reader, kind)
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "TASK\tWHAT\tSTART\tEND\tCYCLES\tSTEPS")
		for _, t := range tasks {
			fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%d\t%d\n",
				t.ID, t.What, t.StartTime, t.EndTime, t.Duration(), len(t.Steps))
		}

		err = w.Flush()
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "%d tasks\n", len(tasks))

		return nil
	},
}

func init() {
	rootCmd.AddCommand(traceCmd)
	traceCmd.Flags().String("kind", "dma_block", "task kind to list, empty for all")
}
