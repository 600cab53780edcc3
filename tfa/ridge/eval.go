package ridge

import (
	"math"

	"github.com/cwbudde/algo-tfa/tfa/wavelet"
)

// Point is the full read-out of one unmasked ridge sample.
type Point struct {
	TimeIndex int
	Time      float64
	Period    float64
	Frequency float64
	Phase     float64 // raw phase in [0, 2π), not unwrapped
	Power     float64
	Amplitude float64
}

// Eval reads the spectrum along the ridge and returns one Point per
// unmasked time sample: instantaneous period, frequency, phase, normalized
// power, and an amplitude estimate. The amplitude rescaling follows Lilly,
// "On the Analytic Wavelet Transform" (2010).
func Eval(spec *wavelet.Spectrum, r Ridge) []Point {
	grid := spec.Periods()
	std := math.Sqrt(spec.Variance())

	out := make([]Point, 0, r.Len())
	for t, p := range r.Index {
		if p == Masked {
			continue
		}

		period := grid[p]
		phi := math.Mod(spec.PhaseAt(p, t), 2*math.Pi)
		if phi < 0 {
			phi += 2 * math.Pi
		}

		scale := wavelet.ScaleForPeriod(period, spec.Dt())
		kappa := math.Pow(math.Pi, -0.25) / math.Sqrt(scale) * std * math.Sqrt2

		out = append(out, Point{
			TimeIndex: t,
			Time:      float64(t) * spec.Dt(),
			Period:    period,
			Frequency: 1 / period,
			Phase:     phi,
			Power:     r.Power[t],
			Amplitude: math.Sqrt(r.Power[t]) * kappa,
		})
	}

	return out
}

// ReliableSpan returns the first and last unmasked ridge samples outside
// the cone of influence, or (-1, -1) when the whole ridge sits inside it.
func ReliableSpan(spec *wavelet.Spectrum, r Ridge) (first, last int) {
	first, last = -1, -1
	for t, p := range r.Index {
		if p == Masked || !spec.Reliable(p, t) {
			continue
		}
		if first == -1 {
			first = t
		}
		last = t
	}
	return first, last
}
