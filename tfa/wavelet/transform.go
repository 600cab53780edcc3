package wavelet

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"

	algofft "github.com/MeKo-Christian/algo-fft"

	"github.com/cwbudde/algo-tfa/internal/fftconv"
	"github.com/cwbudde/algo-tfa/tfa/core"
	"github.com/cwbudde/algo-tfa/tfa/periods"
)

// Option configures a transform.
type Option func(*config)

type config struct {
	workers int
}

func defaultConfig() config {
	return config{workers: runtime.NumCPU()}
}

// WithWorkers sets the number of goroutines computing period rows.
// Values below 1 fall back to the default (number of CPUs).
func WithWorkers(n int) Option {
	return func(c *config) {
		if n >= 1 {
			c.workers = n
		}
	}
}

// Transform computes the Morlet wavelet spectrum of a series over the given
// period grid. Periods are independent and run on parallel workers; the
// context is checked before every period row, and on cancellation (or any
// worker error) no partial spectrum is returned.
//
// The mean is subtracted before transforming. An all-zero (or constant)
// series is valid and yields an all-zero power surface.
func Transform(ctx context.Context, series core.TimeSeries, grid periods.Grid, opts ...Option) (*Spectrum, error) {
	if err := series.Validate(); err != nil {
		return nil, err
	}
	if len(grid) == 0 {
		return nil, fmt.Errorf("wavelet: period grid must not be empty: %w", core.ErrInvalidParameter)
	}
	if grid[0] < 2*series.Dt {
		// A grid whose smallest period violates Nyquist was built for a
		// different sampling interval.
		return nil, fmt.Errorf("wavelet: grid smallest period %g below Nyquist limit %g, grid/dt mismatch: %w",
			grid[0], 2*series.Dt, core.ErrInvalidParameter)
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	if cfg.workers > len(grid) {
		cfg.workers = len(grid)
	}

	n := series.Len()
	mean, variance := core.Moments(series.Data)
	centered := make([]float64, n)
	for i, v := range series.Data {
		centered[i] = v - mean
	}

	// The kernel support is capped at the series length, so one FFT size
	// accommodates every period and the signal transforms only once.
	fftSize := fftconv.NextPowerOf2(2 * n)
	signalFreq := make([]complex128, fftSize)
	{
		plan, err := algofft.NewPlan64(fftSize)
		if err != nil {
			return nil, fmt.Errorf("wavelet: failed to create FFT plan: %w", err)
		}
		padded := make([]complex128, fftSize)
		for i, v := range centered {
			padded[i] = complex(v, 0)
		}
		if err := plan.Forward(signalFreq, padded); err != nil {
			return nil, fmt.Errorf("wavelet: signal FFT failed: %w", err)
		}
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	rows := make([][]complex128, len(grid))
	var (
		next     atomic.Int64
		wg       sync.WaitGroup
		errOnce  sync.Once
		firstErr error
	)
	fail := func(err error) {
		errOnce.Do(func() {
			firstErr = err
			cancel()
		})
	}

	for w := 0; w < cfg.workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			plan, err := algofft.NewPlan64(fftSize)
			if err != nil {
				fail(fmt.Errorf("wavelet: failed to create FFT plan: %w", err))
				return
			}
			scratch := make([]complex128, fftSize)
			freq := make([]complex128, fftSize)

			for {
				i := int(next.Add(1)) - 1
				if i >= len(grid) {
					return
				}
				if err := ctx.Err(); err != nil {
					fail(fmt.Errorf("wavelet: transform canceled: %w", err))
					return
				}

				row, err := transformPeriod(plan, signalFreq, scratch, freq,
					ScaleForPeriod(grid[i], series.Dt), n)
				if err != nil {
					fail(err)
					return
				}
				rows[i] = row
			}
		}()
	}
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}

	return &Spectrum{
		coeff:    rows,
		grid:     append(periods.Grid(nil), grid...),
		dt:       series.Dt,
		unit:     series.Unit,
		variance: variance,
	}, nil
}

// transformPeriod convolves the frequency-domain signal with one scaled
// Morlet kernel and cuts the center ("same" mode) of the linear
// convolution.
func transformPeriod(plan *algofft.Plan[complex128], signalFreq []complex128,
	scratch, freq []complex128, scale float64, n int) ([]complex128, error) {

	taps := kernel(scale, n)
	m := len(taps)

	for i := range scratch {
		scratch[i] = 0
	}
	copy(scratch, taps)

	if err := plan.Forward(freq, scratch); err != nil {
		return nil, fmt.Errorf("wavelet: kernel FFT failed: %w", err)
	}
	for i := range freq {
		freq[i] *= signalFreq[i]
	}
	if err := plan.Inverse(scratch, freq); err != nil {
		return nil, fmt.Errorf("wavelet: inverse FFT failed: %w", err)
	}

	row := make([]complex128, n)
	copy(row, scratch[(m-1)/2:(m-1)/2+n])
	return row, nil
}
