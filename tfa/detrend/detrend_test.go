package detrend

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-tfa/internal/testutil"
	"github.com/cwbudde/algo-tfa/tfa/core"
)

func TestDetrendLengthAndAdditivity(t *testing.T) {
	// Fast oscillation on a linear ramp.
	n := 400
	data := make([]float64, n)
	for i := range data {
		data[i] = 0.01*float64(i) + math.Sin(2*math.Pi*float64(i)/12)
	}
	series := core.TimeSeries{Data: data, Dt: 1, Unit: "min"}

	trend, residual, err := Detrend(series, 100)
	if err != nil {
		t.Fatalf("Detrend: %v", err)
	}

	if trend.Len() != n || residual.Len() != n {
		t.Fatalf("lengths: trend %d, residual %d, want %d", trend.Len(), residual.Len(), n)
	}

	// input = trend + detrended, elementwise.
	sum := make([]float64, n)
	for i := range sum {
		sum[i] = trend.Data[i] + residual.Data[i]
	}
	testutil.RequireSliceNearlyEqual(t, sum, data, 1e-9)
}

func TestDetrendRecoversRamp(t *testing.T) {
	// A slow ramp with a fast sine on top: the trend should follow the ramp
	// away from the boundaries while the residual keeps the oscillation.
	n := 500
	data := make([]float64, n)
	ramp := make([]float64, n)
	for i := range data {
		ramp[i] = 0.02 * float64(i)
		data[i] = ramp[i] + math.Sin(2*math.Pi*float64(i)/10)
	}
	series := core.TimeSeries{Data: data, Dt: 1, Unit: "min"}

	trend, _, err := Detrend(series, 80)
	if err != nil {
		t.Fatalf("Detrend: %v", err)
	}

	for i := n / 4; i < 3*n/4; i++ {
		if math.Abs(trend.Data[i]-ramp[i]) > 0.2 {
			t.Fatalf("index %d: trend %v strays from ramp %v", i, trend.Data[i], ramp[i])
		}
	}
}

func TestDetrendConstantSeries(t *testing.T) {
	series := core.TimeSeries{Data: testutil.Constant(3.5, 200), Dt: 1}

	trend, residual, err := Detrend(series, 50)
	if err != nil {
		t.Fatalf("Detrend: %v", err)
	}

	// Unit-sum kernel plus mirror padding: a constant passes through intact.
	testutil.RequireSliceNearlyEqual(t, trend.Data, testutil.Constant(3.5, 200), 1e-9)
	testutil.RequireSliceNearlyEqual(t, residual.Data, testutil.Constant(0, 200), 1e-9)
}

func TestDetrendInvalidParameters(t *testing.T) {
	series := core.TimeSeries{Data: testutil.Sine(10, 1, 1, 100), Dt: 1}

	cases := []struct {
		name   string
		cutoff float64
	}{
		{"zero", 0},
		{"negative", -5},
		{"sub-nyquist", 1.5},
		{"beyond duration", 101},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := Detrend(series, tc.cutoff)
			if !errors.Is(err, core.ErrInvalidParameter) {
				t.Fatalf("want ErrInvalidParameter, got %v", err)
			}
		})
	}
}

func TestDetrendDeterministic(t *testing.T) {
	series := core.TimeSeries{Data: testutil.Noise(42, 1, 300), Dt: 1}

	t1, d1, err := Detrend(series, 60)
	if err != nil {
		t.Fatalf("Detrend: %v", err)
	}
	t2, d2, err := Detrend(series, 60)
	if err != nil {
		t.Fatalf("Detrend: %v", err)
	}

	testutil.RequireSliceNearlyEqual(t, t1.Data, t2.Data, 0)
	testutil.RequireSliceNearlyEqual(t, d1.Data, d2.Data, 0)
}

func TestKernelUnitSumAndSymmetry(t *testing.T) {
	kernel, err := Kernel(64, 0.05)
	if err != nil {
		t.Fatalf("Kernel: %v", err)
	}

	if len(kernel) != 65 {
		t.Fatalf("length: got %d, want 65", len(kernel))
	}

	sum := 0.0
	for _, c := range kernel {
		sum += c
	}
	if math.Abs(sum-1) > 1e-12 {
		t.Fatalf("kernel sum: got %v, want 1", sum)
	}

	for i := 0; i < len(kernel)/2; i++ {
		if math.Abs(kernel[i]-kernel[len(kernel)-1-i]) > 1e-12 {
			t.Fatalf("kernel asymmetric at %d", i)
		}
	}
}

func TestKernelInvalidParameters(t *testing.T) {
	if _, err := Kernel(63, 0.1); !errors.Is(err, core.ErrInvalidParameter) {
		t.Fatalf("odd order: want ErrInvalidParameter, got %v", err)
	}
	if _, err := Kernel(64, 0.6); !errors.Is(err, core.ErrInvalidParameter) {
		t.Fatalf("cutoff above 0.5: want ErrInvalidParameter, got %v", err)
	}
	if _, err := Kernel(64, 0); !errors.Is(err, core.ErrInvalidParameter) {
		t.Fatalf("zero cutoff: want ErrInvalidParameter, got %v", err)
	}
}
