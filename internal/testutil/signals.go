// Package testutil provides deterministic test signals and tolerance
// assertions for the analysis packages.
package testutil

import (
	"math"
	"math/rand"
)

// Sine generates a sine wave of the given period (in time units) sampled at
// interval dt.
func Sine(period, dt, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	step := 2 * math.Pi * dt / period
	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i))
	}
	return out
}

// Chirp generates a sine whose period sweeps linearly from startPeriod to
// endPeriod over the signal, for drift ("chirp") scenarios.
func Chirp(startPeriod, endPeriod, dt, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	if length == 0 {
		return out
	}

	f0 := 1 / startPeriod
	f1 := 1 / endPeriod
	duration := float64(length) * dt
	k := (f1 - f0) / duration

	for i := range out {
		t := float64(i) * dt
		out[i] = amplitude * math.Sin(2*math.Pi*(f0*t+0.5*k*t*t))
	}
	return out
}

// Noise generates white noise with a fixed seed for reproducibility.
func Noise(seed int64, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return out
}

// Constant generates a constant-valued signal.
func Constant(value float64, length int) []float64 {
	out := make([]float64, length)
	for i := range out {
		out[i] = value
	}
	return out
}
