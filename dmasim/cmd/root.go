// Package cmd provides the command-line interface of dmasim.
package cmd

import (
	"github.com/sarchlab/mcusim/platform"
	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "dmasim",
	Short: "dmasim runs the MSP430 DMA controller on a simulated chip.",
	Long: `dmasim runs the MSP430 DMAxv2 controller on a simulated ` +
		`MSP430F5437. The machine layout is read from a dotenv file and ` +
		`MCUSIM_* environment variables.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().String("env", ".env",
		"dotenv file with MCUSIM_* settings")
}

// Execute adds all child commands to the root command and sets flags
// appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func loadPlatform(cmd *cobra.Command) (*platform.Platform, error) {
	envFile, _ := cmd.Flags().GetString("env")

	cfg, err := platform.LoadConfig(envFile)
	if err != nil {
		return nil, err
	}

	return platform.New(cfg)
}
