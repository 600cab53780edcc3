package core

import "fmt"

// Config enumerates the analysis parameters in one place. The zero values
// are not meaningful; start from [DefaultConfig] and override.
type Config struct {
	// CutoffPeriod is the detrending low-pass cutoff. Oscillations slower
	// than this are treated as trend.
	CutoffPeriod float64

	// SmallestPeriod and LargestPeriod bound the period grid.
	SmallestPeriod float64
	LargestPeriod  float64

	// NumPeriods is the period-grid resolution.
	NumPeriods int

	// MinRidgePower is the wavelet-power floor below which a time sample is
	// masked instead of assigned a ridge point.
	MinRidgePower float64

	// MaxRidgeJump bounds the period-index distance between adjacent
	// unmasked ridge points.
	MaxRidgeJump int
}

// DefaultConfig returns the conventional starting parameters. The ridge
// defaults (threshold 0, jump 3) match long-standing practice for Morlet
// ridge tracking of biological time series.
func DefaultConfig() Config {
	return Config{
		NumPeriods:    150,
		MinRidgePower: 0,
		MaxRidgeJump:  3,
	}
}

// Validate checks the config against the sampling interval dt. Period
// bounds and the cutoff must respect the Nyquist limit 2*dt.
func (c Config) Validate(dt float64) error {
	if dt <= 0 {
		return fmt.Errorf("core: sampling interval must be > 0: %g: %w", dt, ErrInvalidParameter)
	}
	if c.CutoffPeriod != 0 && c.CutoffPeriod < 2*dt {
		return fmt.Errorf("core: cutoff period %g below Nyquist limit %g: %w",
			c.CutoffPeriod, 2*dt, ErrInvalidParameter)
	}
	if c.SmallestPeriod < 2*dt {
		return fmt.Errorf("core: smallest period %g below Nyquist limit %g: %w",
			c.SmallestPeriod, 2*dt, ErrInvalidParameter)
	}
	if c.LargestPeriod <= c.SmallestPeriod {
		return fmt.Errorf("core: largest period %g must exceed smallest period %g: %w",
			c.LargestPeriod, c.SmallestPeriod, ErrInvalidParameter)
	}
	if c.NumPeriods < 1 {
		return fmt.Errorf("core: number of periods must be >= 1: %d: %w",
			c.NumPeriods, ErrInvalidParameter)
	}
	if c.MinRidgePower < 0 {
		return fmt.Errorf("core: ridge power threshold must be >= 0: %g: %w",
			c.MinRidgePower, ErrInvalidParameter)
	}
	if c.MaxRidgeJump < 1 {
		return fmt.Errorf("core: ridge jump bound must be >= 1: %d: %w",
			c.MaxRidgeJump, ErrInvalidParameter)
	}
	return nil
}
