// Package ridge traces the dominant-power period through a wavelet power
// surface and reads instantaneous phase along it.
//
// Extraction seeds at the global power maximum (or a caller-provided seed)
// and tracks forward and backward in time. Each step searches the power
// column within ±MaxJump period indices of the previous unmasked point and
// takes the maximum; columns whose window maximum falls below MinPower are
// masked, a "no ridge" gap rather than a forced continuation.
//
// ExtractAnnealed is the global alternative: simulated annealing of a whole
// ridge curve trades summed power against a curvature penalty, useful when
// the per-column maximum hops between competing oscillations.
//
//	r, err := ridge.Extract(spec, ridge.WithMinPower(5), ridge.WithMaxJump(3))
//	phase := ridge.Phase(spec, r)
package ridge
