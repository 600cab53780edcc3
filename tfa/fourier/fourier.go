// Package fourier computes a variance-normalized Fourier power spectrum,
// the global-periodicity companion to the time-resolved wavelet transform.
package fourier

import (
	"fmt"

	algofft "github.com/MeKo-Christian/algo-fft"
	vecmath "github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-tfa/internal/fftconv"
	"github.com/cwbudde/algo-tfa/tfa/core"
)

// PowerSpectrum returns the frequencies and variance-normalized power of
// the non-negative FFT bins. The series is mean-subtracted and zero-padded
// to a power of two; power is |X|²/(N·σ²), so white noise averages to 1
// per bin, matching the wavelet power convention.
func PowerSpectrum(series core.TimeSeries) (freqs, power []float64, err error) {
	if err := series.Validate(); err != nil {
		return nil, nil, err
	}

	n := series.Len()
	mean, variance := core.Moments(series.Data)

	fftSize := fftconv.NextPowerOf2(n)
	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return nil, nil, fmt.Errorf("fourier: failed to create FFT plan: %w", err)
	}

	padded := make([]complex128, fftSize)
	for i, v := range series.Data {
		padded[i] = complex(v-mean, 0)
	}
	spectrum := make([]complex128, fftSize)
	if err := plan.Forward(spectrum, padded); err != nil {
		return nil, nil, fmt.Errorf("fourier: FFT failed: %w", err)
	}

	bins := fftSize/2 + 1
	freqs = make([]float64, bins)
	power = make([]float64, bins)

	re, im := make([]float64, bins), make([]float64, bins)
	for k := 0; k < bins; k++ {
		freqs[k] = float64(k) / (float64(fftSize) * series.Dt)
		re[k] = real(spectrum[k])
		im[k] = imag(spectrum[k])
	}
	vecmath.Power(power, re, im)

	norm := 0.0
	if variance > 0 {
		norm = 1 / (float64(n) * variance)
	}
	vecmath.ScaleBlockInPlace(power, norm)

	return freqs, power, nil
}
