package cmd

import (
	"fmt"

	"github.com/sarchlab/mcusim/dma"
	"github.com/spf13/cobra"
)

var triggersCmd = &cobra.Command{
	Use:   "triggers",
	Short: "List the DMA trigger ids and what they are bound to.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		p, err := loadPlatform(cmd)
		if err != nil {
			return err
		}

		all, _ := cmd.Flags().GetBool("all")

		for id := 0; id < dma.NumTriggers; id++ {
			binding := p.DMA.TriggerBinding(id)
			if binding == "none" && !all {
				continue
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%2d  %-9s %s\n",
				id, dma.TriggerName(id), binding)
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(triggersCmd)
	triggersCmd.Flags().Bool("all", false, "also list unbound triggers")
}
