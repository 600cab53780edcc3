package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-tfa/tfa/periods"
	"github.com/cwbudde/algo-tfa/tfa/wavelet"
)

var gridCmd = &cobra.Command{
	Use:   "grid",
	Short: "Print the period grid and per-period wavelet properties",
	Long: `Grid builds the logarithmic period grid for the given bounds and prints
each period with its Morlet scale and the edge distance a coefficient
needs to escape the cone of influence.`,
	RunE: runGrid,
}

func init() {
	addAnalysisFlags(gridCmd)
}

func runGrid(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	grid, err := periods.Build(cfg.SmallestPeriod, cfg.LargestPeriod, cfg.NumPeriods, flagDt)
	if err != nil {
		return err
	}

	slope := wavelet.COISlope()
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "index\tperiod (%s)\tscale (samples)\tCOI edge (%s)\n", flagUnit, flagUnit)
	for i, p := range grid {
		fmt.Fprintf(w, "%d\t%.4g\t%.4g\t%.4g\n",
			i, p, wavelet.ScaleForPeriod(p, flagDt), p/slope)
	}
	return w.Flush()
}
