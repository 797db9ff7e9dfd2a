package main

import (
	"os"

	"github.com/apex/log"
	"github.com/apex/log/handlers/cli"
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:   "stemsplit",
		Short: "Separate music into vocal and accompaniment stems",
		Long: `Separate music into vocal and accompaniment stems.

The input is analysed with a 4096-point STFT, each model predicts a mask for
its source, the masks are normalised against each other and every stem is
resynthesised by overlap-add.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			log.SetHandler(cli.New(cmd.ErrOrStderr()))
			if verbose {
				log.SetLevel(log.DebugLevel)
			} else {
				log.SetLevel(log.InfoLevel)
			}
		},
	}

	root.SetOut(os.Stdout)
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log pipeline details")

	root.AddCommand(newSeparateCmd())
	root.AddCommand(newWindowCmd())

	return root
}
