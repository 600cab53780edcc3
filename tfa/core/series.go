package core

import (
	"fmt"
	"math"

	vecmath "github.com/cwbudde/algo-vecmath"
)

// TimeSeries is an ordered sequence of samples with a uniform sampling
// interval Dt (in the time unit named by Unit).
type TimeSeries struct {
	Data []float64
	Dt   float64
	Unit string
}

// NewTimeSeries builds a validated TimeSeries. The sample data is copied so
// the returned value cannot alias caller memory.
func NewTimeSeries(data []float64, dt float64, unit string) (TimeSeries, error) {
	ts := TimeSeries{
		Data: append([]float64(nil), data...),
		Dt:   dt,
		Unit: unit,
	}
	if err := ts.Validate(); err != nil {
		return TimeSeries{}, err
	}
	return ts, nil
}

// Validate checks the TimeSeries invariants: at least one sample and a
// positive sampling interval.
func (ts TimeSeries) Validate() error {
	if len(ts.Data) == 0 {
		return fmt.Errorf("core: series must not be empty: %w", ErrInvalidParameter)
	}
	if ts.Dt <= 0 {
		return fmt.Errorf("core: sampling interval must be > 0: %g: %w", ts.Dt, ErrInvalidParameter)
	}
	return nil
}

// Len returns the number of samples.
func (ts TimeSeries) Len() int { return len(ts.Data) }

// Duration returns the series length in time units, N*dt. Periods above
// this value carry essentially no spectral confidence.
func (ts TimeSeries) Duration() float64 {
	return float64(len(ts.Data)) * ts.Dt
}

// Time returns the time value of sample i.
func (ts TimeSeries) Time(i int) float64 { return float64(i) * ts.Dt }

// Mean returns the arithmetic mean of the samples.
func (ts TimeSeries) Mean() float64 {
	if len(ts.Data) == 0 {
		return 0
	}
	return vecmath.Sum(ts.Data) / float64(len(ts.Data))
}

// Moments returns the mean and the population variance of data in a single
// pass using Welford's online algorithm for numerical stability.
func Moments(data []float64) (mean, variance float64) {
	n := len(data)
	if n == 0 {
		return 0, 0
	}

	var m, m2 float64
	for i, x := range data {
		delta := x - m
		m += delta / float64(i+1)
		m2 += delta * (x - m)
	}

	return m, m2 / float64(n)
}

// NearlyEqual reports whether a and b agree within eps, absolutely for small
// magnitudes and relatively otherwise.
func NearlyEqual(a, b, eps float64) bool {
	diff := math.Abs(a - b)
	if diff <= eps {
		return true
	}

	largest := math.Max(math.Abs(a), math.Abs(b))
	if largest == 0 {
		return diff <= eps
	}

	return diff/largest <= eps
}
