package core

import "errors"

// Errors returned by the analysis packages. Every failure in this module
// wraps one of these two sentinels.
var (
	// ErrInvalidParameter reports a caller-supplied bound that violates a
	// documented constraint (non-positive cutoff, sub-Nyquist smallest
	// period, non-positive period count, mismatched lengths).
	ErrInvalidParameter = errors.New("tfa: invalid parameter")

	// ErrAnalysis reports input that is numerically degenerate for the
	// requested operation (empty series, spectrum without positive power).
	ErrAnalysis = errors.New("tfa: analysis error")
)
