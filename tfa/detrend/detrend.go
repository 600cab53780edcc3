package detrend

import (
	"fmt"
	"math"

	vecmath "github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-tfa/internal/fftconv"
	"github.com/cwbudde/algo-tfa/tfa/core"
)

// kernelLengthFactor scales the kernel order with cutoffPeriod/dt. A
// Blackman-windowed sinc needs roughly ten periods of support for a sharp
// roll-off at the cutoff; longer kernels only add cost.
const kernelLengthFactor = 10

// Kernel returns the Blackman-windowed sinc low-pass coefficients for the
// given even order and relative cutoff frequency (in units of the sampling
// frequency, at most 0.5). The kernel has order+1 taps and unit sum, so it
// passes DC unchanged.
func Kernel(order int, relCutoff float64) ([]float64, error) {
	if order < 2 || order%2 != 0 {
		return nil, fmt.Errorf("detrend: kernel order must be even and >= 2: %d: %w",
			order, core.ErrInvalidParameter)
	}
	if relCutoff <= 0 || relCutoff > 0.5 {
		return nil, fmt.Errorf("detrend: relative cutoff must be in (0, 0.5]: %g: %w",
			relCutoff, core.ErrInvalidParameter)
	}

	mid := float64(order) / 2
	coeffs := make([]float64, order+1)
	for x := range coeffs {
		t := float64(x) - mid
		if t == 0 {
			// sinc limit at the center tap
			coeffs[x] = 2 * math.Pi * relCutoff
			continue
		}

		s := math.Sin(2*math.Pi*relCutoff*t) / t
		w := 0.42 -
			0.5*math.Cos(2*math.Pi*float64(x)/float64(order)) +
			0.08*math.Cos(4*math.Pi*float64(x)/float64(order))
		coeffs[x] = s * w
	}

	vecmath.ScaleBlockInPlace(coeffs, 1/vecmath.Sum(coeffs))
	return coeffs, nil
}

// Detrend splits a series into a low-pass trend and the detrended
// remainder. Oscillations with periods above cutoffPeriod end up in the
// trend. Both outputs have the length of the input and satisfy
// input = trend + detrended elementwise.
func Detrend(series core.TimeSeries, cutoffPeriod float64) (trend, detrended core.TimeSeries, err error) {
	if err := series.Validate(); err != nil {
		return core.TimeSeries{}, core.TimeSeries{}, err
	}
	if cutoffPeriod <= 0 {
		return core.TimeSeries{}, core.TimeSeries{}, fmt.Errorf(
			"detrend: cutoff period must be > 0: %g: %w", cutoffPeriod, core.ErrInvalidParameter)
	}
	if cutoffPeriod < 2*series.Dt {
		return core.TimeSeries{}, core.TimeSeries{}, fmt.Errorf(
			"detrend: cutoff period %g below Nyquist limit %g: %w",
			cutoffPeriod, 2*series.Dt, core.ErrInvalidParameter)
	}
	if cutoffPeriod > series.Duration() {
		return core.TimeSeries{}, core.TimeSeries{}, fmt.Errorf(
			"detrend: cutoff period %g exceeds series duration %g: %w",
			cutoffPeriod, series.Duration(), core.ErrInvalidParameter)
	}

	n := series.Len()
	order := kernelOrder(n, cutoffPeriod/series.Dt)
	if order < 2 {
		return core.TimeSeries{}, core.TimeSeries{}, fmt.Errorf(
			"detrend: series of %d samples too short for a sinc kernel: %w",
			n, core.ErrInvalidParameter)
	}

	kernel, err := Kernel(order, series.Dt/cutoffPeriod)
	if err != nil {
		return core.TimeSeries{}, core.TimeSeries{}, err
	}

	padded := mirrorPad(series.Data, order/2)
	full, err := fftconv.Real(padded, kernel)
	if err != nil {
		return core.TimeSeries{}, core.TimeSeries{}, fmt.Errorf("detrend: %w", err)
	}
	smoothed := fftconv.Valid(full, len(padded), len(kernel))

	trendData := append([]float64(nil), smoothed...)
	residual := make([]float64, n)
	for i, v := range series.Data {
		residual[i] = v - trendData[i]
	}

	trend = core.TimeSeries{Data: trendData, Dt: series.Dt, Unit: series.Unit}
	detrended = core.TimeSeries{Data: residual, Dt: series.Dt, Unit: series.Unit}
	return trend, detrended, nil
}

// kernelOrder picks an even kernel order: long enough for a sharp roll-off
// at the cutoff, capped at series length.
func kernelOrder(n int, cutoffSamples float64) int {
	order := int(kernelLengthFactor * cutoffSamples)
	if order > n-1 {
		order = n - 1
	}
	if order%2 != 0 {
		order--
	}
	return order
}

// mirrorPad reflects w samples at each boundary without repeating the edge
// sample, so the filter sees a continuous signal at the borders.
func mirrorPad(data []float64, w int) []float64 {
	n := len(data)
	out := make([]float64, n+2*w)
	for i := 0; i < w; i++ {
		out[i] = data[w-i]
		out[w+n+i] = data[n-2-i]
	}
	copy(out[w:], data)
	return out
}
