package ridge

import (
	"context"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/cwbudde/algo-tfa/internal/testutil"
	"github.com/cwbudde/algo-tfa/tfa/core"
	"github.com/cwbudde/algo-tfa/tfa/periods"
	"github.com/cwbudde/algo-tfa/tfa/wavelet"
)

func transform(t *testing.T, data []float64, dt, smallest, largest float64, num int) (*wavelet.Spectrum, periods.Grid) {
	t.Helper()

	series := core.TimeSeries{Data: data, Dt: dt, Unit: "min"}
	grid, err := periods.Build(smallest, largest, num, dt)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	spec, err := wavelet.Transform(context.Background(), series, grid)
	if err != nil {
		t.Fatalf("Transform: %v", err)
	}
	return spec, grid
}

func TestExtractPureSineStabilizes(t *testing.T) {
	spec, grid := transform(t, testutil.Sine(10, 1, 1, 500), 1, 4, 64, 50)

	r, err := Extract(spec, WithMinPower(0), WithMaxJump(3))
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}

	if r.Len() != 500 {
		t.Fatalf("length: got %d, want 500", r.Len())
	}

	want := grid.ClosestIndex(10)
	for ti := 50; ti < 450; ti++ {
		if r.IsMasked(ti) {
			t.Fatalf("time %d unexpectedly masked", ti)
		}
		if r.Index[ti] != want {
			t.Fatalf("time %d: ridge at %d (period %v), want %d (period %v)",
				ti, r.Index[ti], grid[r.Index[ti]], want, grid[want])
		}
	}
}

func TestExtractJumpBound(t *testing.T) {
	// A chirp drags the ridge across the period axis; the jump bound must
	// hold between every pair of adjacent unmasked samples.
	spec, _ := transform(t, testutil.Chirp(8, 40, 1, 1, 600), 1, 4, 64, 60)

	const maxJump = 2
	r, err := Extract(spec, WithMaxJump(maxJump))
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}

	prev := Masked
	for t2 := 0; t2 < r.Len(); t2++ {
		if r.IsMasked(t2) {
			continue
		}
		if prev != Masked {
			jump := r.Index[t2] - prev
			if jump < -maxJump || jump > maxJump {
				t.Fatalf("time %d: jump %d exceeds bound %d", t2, jump, maxJump)
			}
		}
		prev = r.Index[t2]
	}
}

func TestExtractMasksBelowThreshold(t *testing.T) {
	spec, _ := transform(t, testutil.Sine(10, 1, 1, 500), 1, 4, 64, 50)

	r, err := Extract(spec, WithMinPower(10))
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}

	masked, unmasked := 0, 0
	for ti := 0; ti < r.Len(); ti++ {
		if r.IsMasked(ti) {
			masked++
			if r.Power[ti] != 0 {
				t.Fatalf("masked sample %d carries power %v", ti, r.Power[ti])
			}
			continue
		}
		unmasked++
		if r.Power[ti] < 10 {
			t.Fatalf("unmasked sample %d below threshold: %v", ti, r.Power[ti])
		}
	}

	// Edge columns see only part of the wavelet and fall under the floor;
	// the center carries the full sine power.
	if masked == 0 {
		t.Fatal("expected masked edge samples")
	}
	if unmasked == 0 {
		t.Fatal("expected unmasked center samples")
	}
	if r.IsMasked(250) {
		t.Fatal("center sample must survive the threshold")
	}
}

func TestExtractZeroSpectrum(t *testing.T) {
	spec, _ := transform(t, testutil.Constant(0, 128), 1, 4, 32, 20)

	_, err := Extract(spec)
	if !errors.Is(err, core.ErrAnalysis) {
		t.Fatalf("want ErrAnalysis, got %v", err)
	}
}

func TestExtractSeed(t *testing.T) {
	spec, grid := transform(t, testutil.Sine(10, 1, 1, 500), 1, 4, 64, 50)

	r, err := Extract(spec, WithSeed(250))
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if r.IsMasked(250) {
		t.Fatal("seed column masked")
	}
	if r.Index[250] != grid.ClosestIndex(10) {
		t.Fatalf("seed column ridge at %d, want %d", r.Index[250], grid.ClosestIndex(10))
	}

	if _, err := Extract(spec, WithSeed(500)); !errors.Is(err, core.ErrInvalidParameter) {
		t.Fatalf("out-of-range seed: want ErrInvalidParameter, got %v", err)
	}
}

func TestExtractSeedErrorNamesColumn(t *testing.T) {
	spec, _ := transform(t, testutil.Constant(0, 128), 1, 4, 32, 20)

	_, err := Extract(spec, WithSeed(10))
	if !errors.Is(err, core.ErrAnalysis) {
		t.Fatalf("want ErrAnalysis, got %v", err)
	}
	// The diagnosis must point at the seed column, not the whole spectrum.
	if !strings.Contains(err.Error(), "seed column 10") {
		t.Fatalf("error does not name the seed column: %v", err)
	}
}

func TestExtractInvalidOptions(t *testing.T) {
	spec, _ := transform(t, testutil.Sine(10, 1, 1, 128), 1, 4, 32, 20)

	if _, err := Extract(spec, WithMinPower(-1)); !errors.Is(err, core.ErrInvalidParameter) {
		t.Fatalf("negative threshold: want ErrInvalidParameter, got %v", err)
	}
	if _, err := Extract(spec, WithMaxJump(0)); !errors.Is(err, core.ErrInvalidParameter) {
		t.Fatalf("zero jump: want ErrInvalidParameter, got %v", err)
	}
}

func TestExtractDeterministic(t *testing.T) {
	spec, _ := transform(t, testutil.Noise(11, 1, 300), 1, 4, 64, 40)

	a, err := Extract(spec)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	b, err := Extract(spec)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}

	for ti := range a.Index {
		if a.Index[ti] != b.Index[ti] || a.Power[ti] != b.Power[ti] {
			t.Fatalf("time %d differs across repeated extractions", ti)
		}
	}
}

func TestWindowMaxTieBreak(t *testing.T) {
	// Two equal maxima at distance 1 and 2 from the anchor: the closer one
	// wins; at equal distance the lower index wins.
	column := [][]float64{
		{1}, {5}, {2}, {5}, {1},
	}

	p, pw := windowMax(column, 0, 2, 2)
	if p != 1 || pw != 5 {
		t.Fatalf("got index %d power %v, want 1 and 5", p, pw)
	}

	// Anchor exactly between the two maxima.
	column = [][]float64{
		{5}, {1}, {5},
	}
	p, _ = windowMax(column, 0, 1, 1)
	if p != 0 {
		t.Fatalf("equal-distance tie: got %d, want lower index 0", p)
	}
}

func TestWindowMaxClampsToGrid(t *testing.T) {
	column := [][]float64{{1}, {2}, {3}}

	p, _ := windowMax(column, 0, 0, 5)
	if p != 2 {
		t.Fatalf("got %d, want 2", p)
	}
	p, _ = windowMax(column, 0, 2, 5)
	if p != 2 {
		t.Fatalf("got %d, want 2", p)
	}
}

func TestPhaseUnwrapOnSine(t *testing.T) {
	spec, _ := transform(t, testutil.Sine(10, 1, 1, 500), 1, 4, 64, 50)

	r, err := Extract(spec)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}

	phase := Phase(spec, r)
	if len(phase) != 500 {
		t.Fatalf("length: got %d, want 500", len(phase))
	}

	prev := math.NaN()
	for ti, phi := range phase {
		if r.IsMasked(ti) {
			if !math.IsNaN(phi) {
				t.Fatalf("masked sample %d has phase %v, want NaN", ti, phi)
			}
			continue
		}
		if math.IsNaN(phi) {
			t.Fatalf("unmasked sample %d has NaN phase", ti)
		}
		if !math.IsNaN(prev) {
			if d := math.Abs(phi - prev); d > math.Pi {
				t.Fatalf("sample %d: unwrapped step %v exceeds pi", ti, d)
			}
		}
		prev = phi
	}

	// A period-10 oscillation advances by about 2*pi/10 per sample; over the
	// central 300 samples the unwrapped phase must climb by about 60*pi.
	climb := phase[400] - phase[100]
	want := 2 * math.Pi / 10 * 300
	if math.Abs(climb-want) > want*0.05 {
		t.Fatalf("phase climb: got %v, want about %v", climb, want)
	}
}

func TestPhaseKeepsGaps(t *testing.T) {
	spec, _ := transform(t, testutil.Sine(10, 1, 1, 500), 1, 4, 64, 50)

	r, err := Extract(spec, WithMinPower(10))
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}

	phase := Phase(spec, r)
	sawGap := false
	for ti := range phase {
		if r.IsMasked(ti) != math.IsNaN(phase[ti]) {
			t.Fatalf("sample %d: mask and NaN disagree", ti)
		}
		if math.IsNaN(phase[ti]) {
			sawGap = true
		}
	}
	if !sawGap {
		t.Fatal("expected gaps from thresholding")
	}
}

func TestEvalAmplitudeOfUnitSine(t *testing.T) {
	spec, _ := transform(t, testutil.Sine(10, 1, 1, 500), 1, 4, 64, 50)

	r, err := Extract(spec)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}

	points := Eval(spec, r)
	if len(points) != 500 {
		t.Fatalf("points: got %d, want 500", len(points))
	}

	for _, pt := range points {
		if pt.TimeIndex < 100 || pt.TimeIndex > 400 {
			continue
		}
		if pt.Amplitude < 0.7 || pt.Amplitude > 1.3 {
			t.Fatalf("time %d: amplitude %v strays from 1", pt.TimeIndex, pt.Amplitude)
		}
		if pt.Phase < 0 || pt.Phase >= 2*math.Pi {
			t.Fatalf("time %d: raw phase %v outside [0, 2pi)", pt.TimeIndex, pt.Phase)
		}
		if math.Abs(pt.Frequency*pt.Period-1) > 1e-12 {
			t.Fatalf("time %d: frequency/period inconsistent", pt.TimeIndex)
		}
	}
}

func TestReliableSpan(t *testing.T) {
	spec, _ := transform(t, testutil.Sine(10, 1, 1, 500), 1, 4, 64, 50)

	r, err := Extract(spec)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}

	first, last := ReliableSpan(spec, r)
	if first <= 0 || last >= 499 || first >= last {
		t.Fatalf("span (%d, %d) implausible for a period-10 ridge", first, last)
	}
	// A period-10 ridge point needs roughly 14 samples of edge distance.
	if first > 30 || last < 470 {
		t.Fatalf("span (%d, %d) too conservative", first, last)
	}
}
