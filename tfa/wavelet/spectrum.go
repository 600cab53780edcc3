package wavelet

import (
	"math/cmplx"
	"sync"

	vecmath "github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-tfa/tfa/periods"
)

// Spectrum holds the complex wavelet coefficients of one transform,
// indexed by (period index, time index). It is immutable after creation.
type Spectrum struct {
	coeff    [][]complex128
	grid     periods.Grid
	dt       float64
	unit     string
	variance float64
}

// NumPeriods returns the period-axis length.
func (s *Spectrum) NumPeriods() int { return len(s.coeff) }

// NumTimes returns the time-axis length.
func (s *Spectrum) NumTimes() int {
	if len(s.coeff) == 0 {
		return 0
	}
	return len(s.coeff[0])
}

// Periods returns the period grid the transform was evaluated at.
func (s *Spectrum) Periods() periods.Grid { return s.grid }

// Dt returns the sampling interval of the transformed series.
func (s *Spectrum) Dt() float64 { return s.dt }

// Unit returns the time-unit label of the transformed series.
func (s *Spectrum) Unit() string { return s.unit }

// Variance returns the variance of the mean-subtracted input, the power
// normalization reference.
func (s *Spectrum) Variance() float64 { return s.variance }

// Coefficient returns the complex coefficient at (periodIndex, timeIndex).
func (s *Spectrum) Coefficient(periodIndex, timeIndex int) complex128 {
	return s.coeff[periodIndex][timeIndex]
}

// PhaseAt returns the instantaneous phase arg(W) at (periodIndex,
// timeIndex), in (-π, π].
func (s *Spectrum) PhaseAt(periodIndex, timeIndex int) float64 {
	return cmplx.Phase(s.coeff[periodIndex][timeIndex])
}

// PowerAt returns the variance-normalized power |W|²/σ² at (periodIndex,
// timeIndex).
func (s *Spectrum) PowerAt(periodIndex, timeIndex int) float64 {
	c := s.coeff[periodIndex][timeIndex]
	re := real(c)
	im := imag(c)
	return (re*re + im*im) * s.invVariance()
}

// Power returns the variance-normalized power surface, shape
// (NumPeriods, NumTimes). A power of 1 corresponds to the white-noise
// expectation. The result is freshly allocated on every call.
func (s *Spectrum) Power() [][]float64 {
	n := s.NumTimes()
	inv := s.invVariance()

	out := make([][]float64, len(s.coeff))
	re, im, buf := getScratch(n)
	for p, row := range s.coeff {
		for t, c := range row {
			re[t] = real(c)
			im[t] = imag(c)
		}
		dst := make([]float64, n)
		vecmath.Power(dst, re, im)
		vecmath.ScaleBlockInPlace(dst, inv)
		out[p] = dst
	}
	putScratch(buf)
	return out
}

// COI returns, per time index, the largest period free of edge effects.
// The cone widens with period: near the boundaries only short periods are
// trustworthy.
func (s *Spectrum) COI() []float64 {
	n := s.NumTimes()
	slope := COISlope()
	out := make([]float64, n)
	for t := range out {
		edge := t
		if n-1-t < edge {
			edge = n - 1 - t
		}
		out[t] = slope * float64(edge) * s.dt
	}
	return out
}

// Reliable reports whether the coefficient at (periodIndex, timeIndex) lies
// outside the cone of influence. Coefficients inside the cone are computed
// but carry edge artifacts.
func (s *Spectrum) Reliable(periodIndex, timeIndex int) bool {
	n := s.NumTimes()
	edge := timeIndex
	if n-1-timeIndex < edge {
		edge = n - 1 - timeIndex
	}
	return s.grid[periodIndex] <= COISlope()*float64(edge)*s.dt
}

// PeriodsBeyondDuration returns the grid entries above the series duration
// N·dt. Analysis at those periods is inherently low-confidence; the
// transform computes them anyway, and callers may want to warn.
func (s *Spectrum) PeriodsBeyondDuration() []float64 {
	duration := float64(s.NumTimes()) * s.dt
	var out []float64
	for _, p := range s.grid {
		if p > duration {
			out = append(out, p)
		}
	}
	return out
}

func (s *Spectrum) invVariance() float64 {
	if s.variance == 0 {
		// Constant input: every coefficient is zero, any factor keeps the
		// power at exact zero without producing NaN.
		return 1
	}
	return 1 / s.variance
}

// scratchBuf holds pooled scratch memory for complex-to-real unpacking.
type scratchBuf struct {
	data []float64
}

var scratchPool = sync.Pool{
	New: func() any { return &scratchBuf{} },
}

func getScratch(n int) (re, im []float64, buf *scratchBuf) {
	buf = scratchPool.Get().(*scratchBuf)
	need := 2 * n
	if cap(buf.data) < need {
		buf.data = make([]float64, need)
	} else {
		buf.data = buf.data[:need]
	}
	return buf.data[:n], buf.data[n:need], buf
}

func putScratch(buf *scratchBuf) {
	scratchPool.Put(buf)
}
