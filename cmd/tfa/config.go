package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/cwbudde/algo-tfa/internal/ingest"
	"github.com/cwbudde/algo-tfa/tfa/core"
)

// fileConfig is the YAML shape of an analysis parameter file.
type fileConfig struct {
	Dt             float64 `yaml:"dt"`
	Unit           string  `yaml:"unit"`
	CutoffPeriod   float64 `yaml:"cutoff_period"`
	SmallestPeriod float64 `yaml:"smallest_period"`
	LargestPeriod  float64 `yaml:"largest_period"`
	NumPeriods     int     `yaml:"num_periods"`
	MinRidgePower  float64 `yaml:"min_ridge_power"`
	MaxRidgeJump   int     `yaml:"max_ridge_jump"`
}

var (
	flagCutoff   float64
	flagSmallest float64
	flagLargest  float64
	flagNum      int
	flagMinPower float64
	flagMaxJump  int
)

func addAnalysisFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&flagCutoff, "cutoff-period", 0, "detrending cutoff period (0 disables detrending)")
	cmd.Flags().Float64Var(&flagSmallest, "smallest-period", 0, "smallest analysis period")
	cmd.Flags().Float64Var(&flagLargest, "largest-period", 0, "largest analysis period")
	cmd.Flags().IntVar(&flagNum, "num-periods", 150, "period grid resolution")
	cmd.Flags().Float64Var(&flagMinPower, "min-power", 0, "ridge power threshold")
	cmd.Flags().IntVar(&flagMaxJump, "max-jump", 3, "ridge jump bound in period indices")
}

// resolveConfig merges the optional YAML file with command-line flags.
// Flags changed explicitly on the command line take precedence.
func resolveConfig(cmd *cobra.Command) (core.Config, error) {
	cfg := core.DefaultConfig()

	if flagConfig != "" {
		raw, err := os.ReadFile(flagConfig)
		if err != nil {
			return core.Config{}, fmt.Errorf("config %s: %w", flagConfig, err)
		}
		var fc fileConfig
		if err := yaml.Unmarshal(raw, &fc); err != nil {
			return core.Config{}, fmt.Errorf("config %s: %w", flagConfig, err)
		}

		if fc.Dt > 0 && !cmd.Flags().Changed("dt") {
			flagDt = fc.Dt
		}
		if fc.Unit != "" && !cmd.Flags().Changed("unit") {
			flagUnit = fc.Unit
		}
		cfg.CutoffPeriod = fc.CutoffPeriod
		cfg.SmallestPeriod = fc.SmallestPeriod
		cfg.LargestPeriod = fc.LargestPeriod
		if fc.NumPeriods > 0 {
			cfg.NumPeriods = fc.NumPeriods
		}
		cfg.MinRidgePower = fc.MinRidgePower
		if fc.MaxRidgeJump > 0 {
			cfg.MaxRidgeJump = fc.MaxRidgeJump
		}
	}

	override := func(name string, set func()) {
		if cmd.Flags().Changed(name) {
			set()
		}
	}
	override("cutoff-period", func() { cfg.CutoffPeriod = flagCutoff })
	override("smallest-period", func() { cfg.SmallestPeriod = flagSmallest })
	override("largest-period", func() { cfg.LargestPeriod = flagLargest })
	override("num-periods", func() { cfg.NumPeriods = flagNum })
	override("min-power", func() { cfg.MinRidgePower = flagMinPower })
	override("max-jump", func() { cfg.MaxRidgeJump = flagMaxJump })

	return cfg, nil
}

// readSeries loads and parses the input table.
func readSeries() (core.TimeSeries, error) {
	parser, err := ingest.ForPath(flagInput, ingest.Options{
		Dt:         flagDt,
		Unit:       flagUnit,
		Column:     flagColumn,
		SkipHeader: flagSkipHeader,
	})
	if err != nil {
		return core.TimeSeries{}, err
	}

	raw, err := os.ReadFile(flagInput)
	if err != nil {
		return core.TimeSeries{}, err
	}

	series, err := parser.Parse(raw)
	if err != nil {
		return core.TimeSeries{}, err
	}

	log.Debug().
		Int("samples", series.Len()).
		Float64("dt", series.Dt).
		Str("unit", series.Unit).
		Msg("series loaded")
	return series, nil
}

// openOutput returns the output writer, stdout when no path is set.
func openOutput() (*os.File, func(), error) {
	if flagOutput == "" {
		return os.Stdout, func() {}, nil
	}
	f, err := os.Create(flagOutput)
	if err != nil {
		return nil, nil, err
	}
	return f, func() { _ = f.Close() }, nil
}
