// Package core provides the shared value types and error taxonomy of the
// time-frequency analysis engine.
//
// A [TimeSeries] couples a uniformly sampled sequence with its sampling
// interval and time-unit label. All analysis packages consume and produce
// immutable values; nothing in this module mutates a series after
// construction, and re-running an analysis with identical inputs yields
// identical results.
//
// Failures fall into two classes: [ErrInvalidParameter] for caller-supplied
// bounds that violate a documented constraint, and [ErrAnalysis] for input
// that is numerically degenerate for the requested operation. All package
// errors wrap one of the two, so callers can classify with [errors.Is].
package core
