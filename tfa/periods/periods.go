// Package periods builds the ordered set of periods a wavelet transform is
// evaluated at.
//
// The grid is logarithmically spaced: wavelet scale progression is
// multiplicative, so log spacing gives even resolution across octaves
// instead of oversampling the long periods.
package periods

import (
	"fmt"
	"math"
	"sort"

	"github.com/cwbudde/algo-tfa/tfa/core"
)

// Grid is a strictly increasing sequence of period values.
type Grid []float64

// Build returns a logarithmically spaced grid of num periods between
// smallest and largest (both inclusive). The smallest period must respect
// the Nyquist limit 2*dt.
func Build(smallest, largest float64, num int, dt float64) (Grid, error) {
	if dt <= 0 {
		return nil, fmt.Errorf("periods: sampling interval must be > 0: %g: %w",
			dt, core.ErrInvalidParameter)
	}
	if num < 1 {
		return nil, fmt.Errorf("periods: number of periods must be >= 1: %d: %w",
			num, core.ErrInvalidParameter)
	}
	if smallest < 2*dt {
		return nil, fmt.Errorf("periods: smallest period %g below Nyquist limit %g: %w",
			smallest, 2*dt, core.ErrInvalidParameter)
	}
	if largest <= smallest {
		return nil, fmt.Errorf("periods: largest period %g must exceed smallest period %g: %w",
			largest, smallest, core.ErrInvalidParameter)
	}

	grid := make(Grid, num)
	if num == 1 {
		grid[0] = smallest
		return grid, nil
	}

	logLo := math.Log(smallest)
	step := (math.Log(largest) - logLo) / float64(num-1)
	for i := range grid {
		grid[i] = math.Exp(logLo + step*float64(i))
	}

	// Pin the endpoints exactly; exp/log round-trips drift in the last ulp.
	grid[0] = smallest
	grid[num-1] = largest

	for i := 1; i < num; i++ {
		if grid[i] <= grid[i-1] {
			return nil, fmt.Errorf("periods: %d steps collapse between %g and %g: %w",
				num, smallest, largest, core.ErrInvalidParameter)
		}
	}

	return grid, nil
}

// ClosestIndex returns the index of the grid entry nearest to period.
func (g Grid) ClosestIndex(period float64) int {
	if len(g) == 0 {
		return -1
	}

	i := sort.SearchFloat64s(g, period)
	if i == 0 {
		return 0
	}
	if i == len(g) {
		return len(g) - 1
	}
	if period-g[i-1] <= g[i]-period {
		return i - 1
	}
	return i
}

// Min returns the smallest period of the grid.
func (g Grid) Min() float64 { return g[0] }

// Max returns the largest period of the grid.
func (g Grid) Max() float64 { return g[len(g)-1] }
