package ridge

import (
	"math"

	"github.com/cwbudde/algo-tfa/tfa/wavelet"
)

// Phase reads the instantaneous phase along the ridge and unwraps it across
// time: whenever the raw difference between consecutive unmasked values
// exceeds π in magnitude, a 2π offset keeps the trajectory continuous.
// Masked time samples are NaN; no interpolation happens across gaps.
func Phase(spec *wavelet.Spectrum, r Ridge) []float64 {
	out := make([]float64, r.Len())

	prev := math.NaN()
	offset := 0.0
	for t, p := range r.Index {
		if p == Masked {
			out[t] = math.NaN()
			continue
		}

		phi := spec.PhaseAt(p, t) + offset
		if !math.IsNaN(prev) {
			for phi-prev > math.Pi {
				offset -= 2 * math.Pi
				phi -= 2 * math.Pi
			}
			for phi-prev < -math.Pi {
				offset += 2 * math.Pi
				phi += 2 * math.Pi
			}
		}

		out[t] = phi
		prev = phi
	}

	return out
}
