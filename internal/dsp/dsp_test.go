package dsp

import (
	"math"
	"testing"
)

func TestQ31RoundTripWithinOneStep(t *testing.T) {
	const step = 1.0 / (1 << 31)
	for i := -1000; i < 1000; i++ {
		x := float32(i) / 1000
		got := Q31ToF32(ToQ31(x))
		if d := math.Abs(float64(got - x)); d > step {
			t.Fatalf("round trip of %v = %v, off by %g", x, got, d)
		}
	}
	for _, x := range []float32{-1, 0.5e-9, -0.33333334, 0.99999994} {
		got := Q31ToF32(ToQ31(x))
		if d := math.Abs(float64(got - x)); d > step {
			t.Fatalf("round trip of %v = %v, off by %g", x, got, d)
		}
	}
}

func TestToQ31Extremes(t *testing.T) {
	if got := ToQ31(0); got != 0 {
		t.Fatalf("ToQ31(0) = %d, want 0", got)
	}
	if got := ToQ31(-1); got != math.MinInt32 {
		t.Fatalf("ToQ31(-1) = %d, want %d", got, math.MinInt32)
	}
	if got := ToQ31(0.5); got != 1<<30 {
		t.Fatalf("ToQ31(0.5) = %d, want %d", got, 1<<30)
	}
}

func TestLerp(t *testing.T) {
	cases := []struct {
		fr, x0, x1, want float32
	}{
		{0, 2, 4, 2},
		{1, 2, 4, 4},
		{0.5, 2, 4, 3},
		{2, 0, 1, 2},
		{-1, 0, 1, -1},
	}
	for _, tc := range cases {
		if got := Lerp(tc.fr, tc.x0, tc.x1); got != tc.want {
			t.Errorf("Lerp(%v, %v, %v) = %v, want %v", tc.fr, tc.x0, tc.x1, got, tc.want)
		}
	}
}

func TestRoundToNearestHalfAwayFromZero(t *testing.T) {
	cases := []struct {
		in, want float32
	}{
		{0.5, 1},
		{-0.5, -1},
		{1.49, 1},
		{-1.49, -1},
		{2.5, 3},
		{-2.5, -3},
		{0, 0},
		{0.2, 0},
	}
	for _, tc := range cases {
		if got := RoundToNearest(tc.in); got != tc.want {
			t.Errorf("RoundToNearest(%v) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestCopySign(t *testing.T) {
	if got := CopySign(0.5, -3); got != -0.5 {
		t.Fatalf("CopySign(0.5, -3) = %v, want -0.5", got)
	}
	if got := CopySign(-0.5, 3); got != 0.5 {
		t.Fatalf("CopySign(-0.5, 3) = %v, want 0.5", got)
	}
	negZero := float32(math.Copysign(0, -1))
	if got := CopySign(2, negZero); got != -2 {
		t.Fatalf("CopySign(2, -0) = %v, want -2", got)
	}
}

func TestParamToUnit(t *testing.T) {
	if got := ParamToUnit(0); got != 0 {
		t.Fatalf("ParamToUnit(0) = %v, want 0", got)
	}
	if got := ParamToUnit(16383); math.Abs(float64(got)-1) > 1e-6 {
		t.Fatalf("ParamToUnit(16383) = %v, want ~1", got)
	}
	if got := ParamToUnit(8192); math.Abs(float64(got)-0.5) > 1e-3 {
		t.Fatalf("ParamToUnit(8192) = %v, want ~0.5", got)
	}
}

func TestClampSample(t *testing.T) {
	for _, x := range []float32{1, 1.5, 100} {
		if got := ToQ31(ClampSample(x)); got <= 0 {
			t.Fatalf("ToQ31(ClampSample(%v)) = %d, want positive full scale", x, got)
		}
	}
	if got := ClampSample(-3); got != -1 {
		t.Fatalf("ClampSample(-3) = %v, want -1", got)
	}
	if got := ClampSample(0.25); got != 0.25 {
		t.Fatalf("ClampSample(0.25) = %v, want 0.25", got)
	}
}
