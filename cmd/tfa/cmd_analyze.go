package main

import (
	"encoding/csv"
	"fmt"
	"math"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-tfa/tfa/detrend"
	"github.com/cwbudde/algo-tfa/tfa/periods"
	"github.com/cwbudde/algo-tfa/tfa/ridge"
	"github.com/cwbudde/algo-tfa/tfa/wavelet"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Run the full detrend → wavelet → ridge → phase pipeline",
	Long: `Analyze loads a tabular time series, optionally detrends it, computes
the Morlet wavelet spectrum over a logarithmic period grid, extracts the
dominant-period ridge, and writes one CSV row per unmasked ridge point:
time, period, frequency, phase (raw and unwrapped), power, amplitude.`,
	RunE: runAnalyze,
}

func init() {
	addInputFlags(analyzeCmd)
	addAnalysisFlags(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	series, err := readSeries()
	if err != nil {
		return err
	}
	if err := cfg.Validate(series.Dt); err != nil {
		return err
	}

	if cfg.CutoffPeriod > 0 {
		log.Info().Float64("cutoff_period", cfg.CutoffPeriod).Msg("detrending")
		_, detrended, err := detrend.Detrend(series, cfg.CutoffPeriod)
		if err != nil {
			return err
		}
		series = detrended
	}

	grid, err := periods.Build(cfg.SmallestPeriod, cfg.LargestPeriod, cfg.NumPeriods, series.Dt)
	if err != nil {
		return err
	}

	log.Info().
		Int("periods", len(grid)).
		Int("samples", series.Len()).
		Msg("computing wavelet spectrum")
	spec, err := wavelet.Transform(cmd.Context(), series, grid)
	if err != nil {
		return err
	}

	if beyond := spec.PeriodsBeyondDuration(); len(beyond) > 0 {
		log.Warn().
			Float64("duration", series.Duration()).
			Float64("largest_period", grid.Max()).
			Int("affected", len(beyond)).
			Msg("grid periods exceed the series duration; results there are low-confidence")
	}

	r, err := ridge.Extract(spec,
		ridge.WithMinPower(cfg.MinRidgePower),
		ridge.WithMaxJump(cfg.MaxRidgeJump))
	if err != nil {
		return err
	}

	points := ridge.Eval(spec, r)
	unwrapped := ridge.Phase(spec, r)
	first, last := ridge.ReliableSpan(spec, r)
	log.Info().
		Int("ridge_points", len(points)).
		Int("coi_first", first).
		Int("coi_last", last).
		Msg("ridge extracted")

	out, closeOut, err := openOutput()
	if err != nil {
		return err
	}
	defer closeOut()

	w := csv.NewWriter(out)
	header := []string{"time", "period", "frequency", "phase", "phase_unwrapped", "power", "amplitude"}
	if err := w.Write(header); err != nil {
		return err
	}
	for _, pt := range points {
		row := []string{
			formatFloat(pt.Time),
			formatFloat(pt.Period),
			formatFloat(pt.Frequency),
			formatFloat(pt.Phase),
			formatFloat(unwrapped[pt.TimeIndex]),
			formatFloat(pt.Power),
			formatFloat(pt.Amplitude),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("writing results: %w", err)
	}
	return nil
}

func formatFloat(v float64) string {
	if math.IsNaN(v) {
		return "NaN"
	}
	return strconv.FormatFloat(v, 'g', 9, 64)
}
