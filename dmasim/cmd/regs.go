package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/davecgh/go-spew/spew"
	"github.com/sarchlab/mcusim/dma"
	"github.com/spf13/cobra"
)

var regsCmd = &cobra.Command{
	Use:   "regs",
	Short: "Print the DMA register map and the power-up state.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		p, err := loadPlatform(cmd)
		if err != nil {
			return err
		}

		base := p.DMA.Base()
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)

		shared := []struct {
			name   string
			offset uint32
		}{
			{"DMACTL0", dma.DMACTL0},
			{"DMACTL1", dma.DMACTL1},
			{"DMACTL2", dma.DMACTL2},
			{"DMACTL3", dma.DMACTL3},
			{"DMACTL4", dma.DMACTL4},
			{"DMAIV", dma.DMAIV},
		}
		for _, r := range shared {
			fmt.Fprintf(w, "%s\t0x%05x\n", r.name, base+r.offset)
		}

		perChannel := []struct {
			name   string
			offset uint32
		}{
			{"CTL", dma.DMAxCTL},
			{"SAL", dma.DMAxSAL},
			{"SAH", dma.DMAxSAH},
			{"DAL", dma.DMAxDAL},
			{"DAH", dma.DMAxDAH},
			{"SZ", dma.DMAxSZ},
		}
		for n := 0; n < dma.NumChannels; n++ {
			for _, r := range perChannel {
				fmt.Fprintf(w, "DMA%d%s\t0x%05x\n",
					n, r.name, base+dma.ChannelOffset(n, r.offset))
			}
		}

		err = w.Flush()
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), p.DMA.Info())

		if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
			cfg := spew.ConfigState{Indent: "  ", DisablePointerAddresses: true}
			cfg.Fdump(cmd.OutOrStdout(), p.DMA.Status())
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(regsCmd)
	regsCmd.Flags().Bool("verbose", false, "also dump the structured status")
}
