package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-stems/dsp/window"
)

var windowTypes = map[string]window.Type{
	"rectangular": window.TypeRectangular,
	"hann":        window.TypeHann,
	"hamming":     window.TypeHamming,
	"blackman":    window.TypeBlackman,
}

func newWindowCmd() *cobra.Command {
	var (
		size      int
		hop       int
		symmetric bool
	)

	cmd := &cobra.Command{
		Use:   "window [type ...]",
		Short: "Print overlap-add properties of analysis windows",
		Long: `Print overlap-add properties of analysis windows.

For each window the equivalent noise bandwidth and the squared-window
overlap gain at the given hop are shown. A pair with zero ripple
reconstructs exactly after analysis and synthesis windowing.

Examples:
  stemsplit window
  stemsplit window --size 2048 --hop 512 hann hamming`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				args = []string{"hann"}
			}

			var opts []window.Option
			if !symmetric {
				opts = append(opts, window.WithPeriodic())
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintf(tw, "Window\tSize\tHop\tENBW [bins]\tOLA gain\tRipple\tCOLA\n")

			for _, name := range args {
				typ, ok := windowTypes[strings.ToLower(name)]
				if !ok {
					return errors.Newf("unknown window %q", name)
				}

				coeffs := window.Generate(typ, size, opts...)
				enbw, err := window.EquivalentNoiseBandwidth(coeffs)
				if err != nil {
					return errors.Wrapf(err, "window %s", name)
				}
				gain, ripple, err := window.COLA(coeffs, hop)
				if err != nil {
					return errors.Wrapf(err, "window %s", name)
				}

				fmt.Fprintf(tw, "%s\t%d\t%d\t%.4f\t%.4f\t%.2e\t%t\n",
					window.Info(typ).Name, size, hop, enbw, gain, ripple, ripple < 1e-9)
			}

			return tw.Flush()
		},
	}

	cmd.Flags().IntVar(&size, "size", 4096, "window length in samples")
	cmd.Flags().IntVar(&hop, "hop", 1024, "hop length in samples")
	cmd.Flags().BoolVar(&symmetric, "symmetric", false, "use the symmetric form instead of the periodic one")

	return cmd
}
