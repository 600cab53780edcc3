// Package fftconv provides one-shot FFT-based linear convolution for the
// analysis packages. Signals are zero-padded to the next power of two,
// transformed, multiplied bin-wise, and inverted, so the cost is
// O(N log N) regardless of kernel length.
package fftconv

import (
	"errors"
	"fmt"

	algofft "github.com/MeKo-Christian/algo-fft"
)

// Errors returned by convolution functions.
var (
	ErrEmptyInput  = errors.New("fftconv: empty input")
	ErrEmptyKernel = errors.New("fftconv: empty kernel")
)

// NextPowerOf2 returns the next power of 2 >= n.
func NextPowerOf2(n int) int {
	if n <= 1 {
		return 1
	}
	p := 1
	for p < n {
		p *= 2
	}
	return p
}

// Real computes the full linear convolution of two real signals.
// The result has length len(a) + len(b) - 1.
func Real(a, b []float64) ([]float64, error) {
	if len(a) == 0 {
		return nil, ErrEmptyInput
	}
	if len(b) == 0 {
		return nil, ErrEmptyKernel
	}

	fullLen := len(a) + len(b) - 1
	fftSize := NextPowerOf2(fullLen)

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return nil, fmt.Errorf("fftconv: failed to create FFT plan: %w", err)
	}

	aPadded := make([]complex128, fftSize)
	bPadded := make([]complex128, fftSize)
	for i, v := range a {
		aPadded[i] = complex(v, 0)
	}
	for i, v := range b {
		bPadded[i] = complex(v, 0)
	}

	aFreq := make([]complex128, fftSize)
	bFreq := make([]complex128, fftSize)
	if err := plan.Forward(aFreq, aPadded); err != nil {
		return nil, err
	}
	if err := plan.Forward(bFreq, bPadded); err != nil {
		return nil, err
	}

	for i := range aFreq {
		aFreq[i] *= bFreq[i]
	}

	if err := plan.Inverse(aPadded, aFreq); err != nil {
		return nil, err
	}

	result := make([]float64, fullLen)
	for i := range result {
		result[i] = real(aPadded[i])
	}
	return result, nil
}

// Valid extracts the fully overlapping portion of a full convolution result,
// with length max(lenA, lenB) - min(lenA, lenB) + 1.
func Valid(full []float64, lenA, lenB int) []float64 {
	if lenA >= lenB {
		return full[lenB-1 : lenA]
	}
	return full[lenA-1 : lenB]
}

// Same extracts the center portion of a full convolution result so the
// output aligns with, and has the length of, the first input.
func Same(full []float64, lenA, lenB int) []float64 {
	start := (lenB - 1) / 2
	return full[start : start+lenA]
}
