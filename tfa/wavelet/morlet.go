package wavelet

import "math"

// Omega0 is the central angular frequency of the mother wavelet, the
// Torrence & Compo (1998) convention. It fixes the scale↔period map and the
// cone-of-influence slope for the whole engine.
const Omega0 = 6.0

// envelopeCutoff clips the wavelet support where the Gaussian envelope
// falls below this fraction of its peak; beyond that the taps are
// numerically irrelevant and only inflate the convolution.
const envelopeCutoff = 1e-6

// admissibility is ω₀ + √(2+ω₀²), the factor of the strictly admissible
// Morlet scale↔period conversion.
var admissibility = Omega0 + math.Sqrt(2+Omega0*Omega0)

// ScaleForPeriod converts a period (in time units) to the Morlet scale in
// sample units: s = (ω₀ + √(2+ω₀²)) · T / (4π·dt).
func ScaleForPeriod(period, dt float64) float64 {
	return admissibility * period / (4 * math.Pi * dt)
}

// COISlope returns the cone-of-influence slope: the largest reliable period
// per unit of time-distance from the series edge. Coefficients at periods
// above slope·distance are dominated by edge effects.
func COISlope() float64 {
	return 4 * math.Pi / (math.Sqrt2 * admissibility)
}

// kernel evaluates the unit-energy Morlet wavelet
//
//	ψ(t) = π^(-1/4)/√s · exp(iω₀t/s) · exp(-t²/2s²)
//
// at integer sample offsets. The support is clipped at the envelope cutoff
// and capped at maxLen samples.
func kernel(scale float64, maxLen int) []complex128 {
	half := int(scale * math.Sqrt(-2*math.Log(envelopeCutoff)))
	if 2*half+1 > maxLen {
		half = (maxLen - 1) / 2
	}
	if half < 1 {
		half = 1
	}

	// Odd length keeps the taps symmetric about the center sample, so the
	// "same"-mode cut of the convolution aligns each coefficient with its
	// time index exactly.
	norm := math.Pow(math.Pi, -0.25) / math.Sqrt(scale)
	taps := make([]complex128, 2*half+1)
	for i := range taps {
		t := float64(i - half)
		g := norm * math.Exp(-0.5*t*t/(scale*scale))
		sin, cos := math.Sincos(Omega0 * t / scale)
		taps[i] = complex(g*cos, g*sin)
	}
	return taps
}
