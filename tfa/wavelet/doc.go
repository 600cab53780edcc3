// Package wavelet computes the continuous wavelet transform of a time
// series with the Morlet kernel.
//
// The transform evaluates one complex coefficient per (period, time) pair.
// Each period's convolution runs in the frequency domain (FFT multiply), so
// per-period cost is near-linear in series length, and periods are fanned
// out to parallel workers. Power is normalized by the variance of the
// mean-subtracted input, so white noise has expected power 1 and results
// compare against fixed significance thresholds regardless of amplitude.
//
// Conventions follow Torrence & Compo, "A Practical Guide to Wavelet
// Analysis" (1998): central frequency [Omega0] = 6, the admissible
// scale↔period map, and the e-folding cone of influence. Coefficients
// inside the cone are computed, not dropped; [Spectrum.Reliable] flags
// them for downstream consumers.
//
//	spec, err := wavelet.Transform(ctx, series, grid)
//	power := spec.Power()
package wavelet
