package wavelet

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-tfa/tfa/core"
	"github.com/cwbudde/algo-tfa/tfa/periods"
)

// Chi-square quantiles for two degrees of freedom. The real and imaginary
// parts of a Morlet coefficient of a Gaussian process are independent, so
// normalized power is χ²₂-distributed around the background spectrum.
const (
	Chi2Quantile95 = 5.99
	Chi2Quantile99 = 9.21
)

// AR1Background returns the analytic power spectrum of an AR(1) ("red
// noise") process with lag-one autocorrelation alpha, evaluated at the grid
// periods. With the variance normalization of [Transform], this is the
// expected power of pure noise; alpha = 0 gives the flat white-noise
// background of 1.
func AR1Background(alpha float64, grid periods.Grid, dt float64) ([]float64, error) {
	if alpha < 0 || alpha >= 1 {
		return nil, fmt.Errorf("wavelet: AR(1) autocorrelation must be in [0, 1): %g: %w",
			alpha, core.ErrInvalidParameter)
	}
	if dt <= 0 {
		return nil, fmt.Errorf("wavelet: sampling interval must be > 0: %g: %w",
			dt, core.ErrInvalidParameter)
	}

	out := make([]float64, len(grid))
	for i, period := range grid {
		out[i] = (1 - alpha*alpha) /
			(1 + alpha*alpha - 2*alpha*math.Cos(2*math.Pi*dt/period))
	}
	return out, nil
}

// SignificanceThreshold scales a background spectrum to the power level a
// coefficient must exceed to be significant at the given χ²₂ quantile
// (e.g. [Chi2Quantile95]).
func SignificanceThreshold(background []float64, quantile float64) []float64 {
	out := make([]float64, len(background))
	for i, b := range background {
		out[i] = b * quantile / 2
	}
	return out
}
