package detrend

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-tfa/tfa/core"
)

// Envelope estimates the amplitude envelope of a series: half the max-min
// range inside a sliding window of windowSize time units, centered on each
// sample. Windows shrink at the series boundaries. The window is rounded to
// an odd number of samples and should cover at least one full oscillation
// period, or the envelope dips between extrema.
func Envelope(series core.TimeSeries, windowSize float64) (core.TimeSeries, error) {
	if err := series.Validate(); err != nil {
		return core.TimeSeries{}, err
	}

	w, err := windowSamples(series, windowSize)
	if err != nil {
		return core.TimeSeries{}, err
	}

	n := series.Len()
	half := w / 2
	out := make([]float64, n)
	for t := range out {
		lo := t - half
		if lo < 0 {
			lo = 0
		}
		hi := t + half
		if hi > n-1 {
			hi = n - 1
		}

		mn, mx := series.Data[lo], series.Data[lo]
		for i := lo + 1; i <= hi; i++ {
			v := series.Data[i]
			mn = math.Min(mn, v)
			mx = math.Max(mx, v)
		}
		out[t] = (mx - mn) / 2
	}

	return core.TimeSeries{Data: out, Dt: series.Dt, Unit: series.Unit}, nil
}

// NormalizeWithEnvelope divides a series by its amplitude envelope, so
// oscillations come out with unit amplitude regardless of amplitude drift.
// Detrend first: a residual trend inflates the envelope and suppresses the
// oscillation. A vanishing envelope (the series is constant somewhere over
// a full window) is an analysis error.
func NormalizeWithEnvelope(series core.TimeSeries, windowSize float64) (core.TimeSeries, error) {
	env, err := Envelope(series, windowSize)
	if err != nil {
		return core.TimeSeries{}, err
	}

	out := make([]float64, series.Len())
	for i, v := range series.Data {
		e := env.Data[i]
		if e == 0 {
			return core.TimeSeries{}, fmt.Errorf(
				"detrend: envelope vanishes at sample %d, cannot normalize: %w",
				i, core.ErrAnalysis)
		}
		out[i] = v / e
	}

	return core.TimeSeries{Data: out, Dt: series.Dt, Unit: series.Unit}, nil
}

// windowSamples converts a window in time units to an odd sample count of
// at least 3, bounded by the series duration.
func windowSamples(series core.TimeSeries, windowSize float64) (int, error) {
	if windowSize <= 0 {
		return 0, fmt.Errorf("detrend: window size must be > 0: %g: %w",
			windowSize, core.ErrInvalidParameter)
	}
	if windowSize > series.Duration() {
		return 0, fmt.Errorf("detrend: window size %g exceeds series duration %g: %w",
			windowSize, series.Duration(), core.ErrInvalidParameter)
	}

	w := int(windowSize / series.Dt)
	if w%2 == 0 {
		w++
	}
	if w < 3 {
		return 0, fmt.Errorf("detrend: window size %g spans fewer than 3 samples at dt %g: %w",
			windowSize, series.Dt, core.ErrInvalidParameter)
	}
	return w, nil
}
