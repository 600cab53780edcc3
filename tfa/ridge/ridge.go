package ridge

import (
	"fmt"

	"github.com/cwbudde/algo-tfa/tfa/core"
	"github.com/cwbudde/algo-tfa/tfa/wavelet"
)

// Masked marks a time sample without a qualifying ridge point.
const Masked = -1

// Ridge is the trajectory of the dominant period, aligned 1:1 with the
// spectrum's time axis. Index[t] is a period index, or [Masked] when the
// window maximum at t fell below the power threshold; Power[t] is the
// normalized wavelet power at the ridge point (0 when masked).
type Ridge struct {
	Index []int
	Power []float64
}

// Len returns the number of time samples.
func (r Ridge) Len() int { return len(r.Index) }

// IsMasked reports whether time sample t has no ridge point.
func (r Ridge) IsMasked(t int) bool { return r.Index[t] == Masked }

// Option configures ridge extraction.
type Option func(*config)

type config struct {
	minPower float64
	maxJump  int
	seedTime int
	seedSet  bool
}

func defaultConfig() config {
	return config{
		minPower: 0,
		maxJump:  3,
		seedTime: -1,
	}
}

// WithMinPower sets the power floor below which a time sample is masked.
func WithMinPower(p float64) Option {
	return func(c *config) { c.minPower = p }
}

// WithMaxJump bounds the period-index distance between adjacent unmasked
// ridge points.
func WithMaxJump(j int) Option {
	return func(c *config) { c.maxJump = j }
}

// WithSeed overrides the starting time index. The seed period index is the
// power maximum of that column.
func WithSeed(timeIndex int) Option {
	return func(c *config) {
		c.seedTime = timeIndex
		c.seedSet = true
	}
}

// Extract traces the maximum-power ridge through the spectrum. It fails
// with an analysis error when the spectrum holds no positive power, since
// no meaningful seed exists.
func Extract(spec *wavelet.Spectrum, opts ...Option) (Ridge, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	if cfg.minPower < 0 {
		return Ridge{}, fmt.Errorf("ridge: power threshold must be >= 0: %g: %w",
			cfg.minPower, core.ErrInvalidParameter)
	}
	if cfg.maxJump < 1 {
		return Ridge{}, fmt.Errorf("ridge: jump bound must be >= 1: %d: %w",
			cfg.maxJump, core.ErrInvalidParameter)
	}

	power := spec.Power()
	numPeriods := len(power)
	numTimes := spec.NumTimes()
	if numPeriods == 0 || numTimes == 0 {
		return Ridge{}, fmt.Errorf("ridge: empty spectrum: %w", core.ErrAnalysis)
	}
	if cfg.seedSet && (cfg.seedTime < 0 || cfg.seedTime >= numTimes) {
		return Ridge{}, fmt.Errorf("ridge: seed time %d outside [0, %d): %w",
			cfg.seedTime, numTimes, core.ErrInvalidParameter)
	}

	seedT, seedP, seedPower := seed(power, cfg)
	if seedPower <= 0 {
		if cfg.seedSet {
			return Ridge{}, fmt.Errorf("ridge: no positive power in seed column %d: %w",
				cfg.seedTime, core.ErrAnalysis)
		}
		return Ridge{}, fmt.Errorf("ridge: spectrum has no positive power: %w", core.ErrAnalysis)
	}

	r := Ridge{
		Index: make([]int, numTimes),
		Power: make([]float64, numTimes),
	}
	for t := range r.Index {
		r.Index[t] = Masked
	}

	place := func(t, anchor, p int, pw float64) int {
		// Below the floor the sample stays masked; the previous unmasked
		// index keeps anchoring the search window across the gap.
		if pw < cfg.minPower {
			return anchor
		}
		r.Index[t] = p
		r.Power[t] = pw
		return p
	}

	anchor := place(seedT, seedP, seedP, seedPower)
	for t := seedT + 1; t < numTimes; t++ {
		p, pw := windowMax(power, t, anchor, cfg.maxJump)
		anchor = place(t, anchor, p, pw)
	}
	anchor = seedP
	for t := seedT - 1; t >= 0; t-- {
		p, pw := windowMax(power, t, anchor, cfg.maxJump)
		anchor = place(t, anchor, p, pw)
	}

	return r, nil
}

// seed locates the starting point: the global power maximum, or the column
// maximum at the caller-provided seed time.
func seed(power [][]float64, cfg config) (t, p int, pw float64) {
	if cfg.seedSet {
		t = cfg.seedTime
		p, pw = columnMax(power, t)
		return t, p, pw
	}

	for pi := range power {
		for ti, v := range power[pi] {
			if v > pw {
				t, p, pw = ti, pi, v
			}
		}
	}
	return t, p, pw
}

func columnMax(power [][]float64, t int) (p int, pw float64) {
	pw = power[0][t]
	for pi := 1; pi < len(power); pi++ {
		if power[pi][t] > pw {
			p, pw = pi, power[pi][t]
		}
	}
	return p, pw
}

// windowMax scans the power column at t within ±maxJump of the anchor.
// Ties break toward the period index closest to the anchor; at equal
// distance the lower index wins, keeping extraction deterministic.
func windowMax(power [][]float64, t, anchor, maxJump int) (p int, pw float64) {
	lo := anchor - maxJump
	if lo < 0 {
		lo = 0
	}
	hi := anchor + maxJump
	if hi > len(power)-1 {
		hi = len(power) - 1
	}

	p = lo
	pw = power[lo][t]
	for pi := lo + 1; pi <= hi; pi++ {
		v := power[pi][t]
		if v > pw || (v == pw && abs(pi-anchor) < abs(p-anchor)) {
			p, pw = pi, v
		}
	}
	return p, pw
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
