package ridge

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/cwbudde/algo-tfa/tfa/core"
	"github.com/cwbudde/algo-tfa/tfa/wavelet"
)

// temperatureScale maps caller temperatures and curvature weights, both in
// a natural (0, 100] range, onto the cost units of the power landscape.
const temperatureScale = 0.01

// AnnealParams configures simulated-annealing ridge extraction. Start from
// [DefaultAnnealParams] and override.
type AnnealParams struct {
	// InitialPeriod is the period of the straight-line initial guess. Best
	// set close to a peak in the power surface.
	InitialPeriod float64

	// Temperature is the initial annealing temperature; higher values accept
	// more cost-increasing moves early on. Natural range (0, 100].
	Temperature float64

	// Steps is the number of random single-sample moves to attempt.
	Steps int

	// MaxJump bounds the period-index distance of one random move.
	MaxJump int

	// CurvePenalty weights the second difference of the ridge in the cost;
	// higher values anneal toward smoother ridges.
	CurvePenalty float64

	// MinPower masks result samples whose ridge power falls below it.
	MinPower float64

	// Seed drives the random walk. Extraction is fully deterministic for a
	// fixed seed, spectrum, and parameter set.
	Seed int64
}

// DefaultAnnealParams returns the conventional annealing parameters for an
// initial period guess.
func DefaultAnnealParams(initialPeriod float64) AnnealParams {
	return AnnealParams{
		InitialPeriod: initialPeriod,
		Temperature:   1,
		Steps:         5000,
		MaxJump:       3,
		CurvePenalty:  0,
		MinPower:      0,
		Seed:          1,
	}
}

func (p AnnealParams) validate() error {
	if p.InitialPeriod <= 0 {
		return fmt.Errorf("ridge: initial period must be > 0: %g: %w",
			p.InitialPeriod, core.ErrInvalidParameter)
	}
	if p.Temperature <= 0 {
		return fmt.Errorf("ridge: temperature must be > 0: %g: %w",
			p.Temperature, core.ErrInvalidParameter)
	}
	if p.Steps < 1 {
		return fmt.Errorf("ridge: step count must be >= 1: %d: %w",
			p.Steps, core.ErrInvalidParameter)
	}
	if p.MaxJump < 1 {
		return fmt.Errorf("ridge: jump bound must be >= 1: %d: %w",
			p.MaxJump, core.ErrInvalidParameter)
	}
	if p.CurvePenalty < 0 {
		return fmt.Errorf("ridge: curvature penalty must be >= 0: %g: %w",
			p.CurvePenalty, core.ErrInvalidParameter)
	}
	if p.MinPower < 0 {
		return fmt.Errorf("ridge: power threshold must be >= 0: %g: %w",
			p.MinPower, core.ErrInvalidParameter)
	}
	return nil
}

// ExtractAnnealed traces a ridge by simulated annealing: starting from a
// straight line at the grid entry nearest InitialPeriod, random
// single-sample moves are accepted when they lower the cost (negative mean
// ridge power plus the curvature penalty), or with Boltzmann probability
// exp(-Δcost/T) when they raise it; the temperature decays logarithmically
// over the steps. Unlike [Extract], the result is a global trade-off
// between ridge power and smoothness rather than a per-column maximum.
func ExtractAnnealed(spec *wavelet.Spectrum, params AnnealParams) (Ridge, error) {
	if err := params.validate(); err != nil {
		return Ridge{}, err
	}

	power := spec.Power()
	numPeriods := len(power)
	numTimes := spec.NumTimes()
	if numPeriods == 0 || numTimes == 0 {
		return Ridge{}, fmt.Errorf("ridge: empty spectrum: %w", core.ErrAnalysis)
	}
	if numPeriods <= params.MaxJump+1 {
		return Ridge{}, fmt.Errorf("ridge: jump bound %d needs more than %d period rows: %w",
			params.MaxJump, params.MaxJump+1, core.ErrInvalidParameter)
	}
	if !hasPositivePower(power) {
		return Ridge{}, fmt.Errorf("ridge: spectrum has no positive power: %w", core.ErrAnalysis)
	}

	ys := make([]int, numTimes)
	y0 := spec.Periods().ClosestIndex(params.InitialPeriod)
	for t := range ys {
		ys[t] = y0
	}

	rng := rand.New(rand.NewSource(params.Seed))
	tIni := params.Temperature * temperatureScale
	pen := params.CurvePenalty * temperatureScale

	cost := annealCost(power, ys, pen)
	for k := 0; k < params.Steps; k++ {
		tk := tIni / math.Log(2+float64(k))
		pos := rng.Intn(numTimes)

		var eps int
		switch {
		case ys[pos] >= numPeriods-params.MaxJump-1:
			eps = -1
		case ys[pos] < params.MaxJump:
			eps = 1
		default:
			v := rng.Intn(2 * params.MaxJump)
			if v < params.MaxJump {
				eps = v + 1
			} else {
				eps = v - 2*params.MaxJump
			}
		}

		ys[pos] += eps
		candidate := annealCost(power, ys, pen)
		if candidate > cost && rng.Float64() > math.Exp(-(candidate-cost)/tk) {
			ys[pos] -= eps
			continue
		}
		cost = candidate
	}

	r := Ridge{
		Index: make([]int, numTimes),
		Power: make([]float64, numTimes),
	}
	for t, p := range ys {
		pw := power[p][t]
		if pw < params.MinPower {
			r.Index[t] = Masked
			continue
		}
		r.Index[t] = p
		r.Power[t] = pw
	}
	return r, nil
}

// annealCost scores a ridge candidate: negative summed power plus the
// weighted absolute second difference, per time sample. Lower is better.
func annealCost(power [][]float64, ys []int, curvePen float64) float64 {
	var d float64
	for t, p := range ys {
		d -= power[p][t]
	}

	var s2 float64
	for t := 2; t < len(ys); t++ {
		s2 += math.Abs(float64(ys[t] - 2*ys[t-1] + ys[t-2]))
	}

	return (d + curvePen*s2) / float64(len(ys))
}

func hasPositivePower(power [][]float64) bool {
	for _, row := range power {
		for _, v := range row {
			if v > 0 {
				return true
			}
		}
	}
	return false
}
