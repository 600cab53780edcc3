// Package detrend removes slow trends from a time series with a
// Blackman-windowed sinc low-pass filter.
//
// The filter kernel approximates the ideal low-pass response at the cutoff
// frequency 1/cutoffPeriod. Convolution uses mirror padding at the series
// boundaries, so the trend has the same length as the input without edge
// bias, and the detrended remainder satisfies input = trend + detrended
// pointwise.
//
// Envelope and NormalizeWithEnvelope complement the detrender for signals
// with amplitude drift: a sliding max-min window estimates the amplitude
// envelope, and dividing by it equalizes oscillation amplitude before
// spectral analysis.
//
//	trend, residual, err := detrend.Detrend(series, 220.0)
package detrend
