package main

import (
	"math"
	"math/cmplx"
	"testing"
)

func TestFFTFindsTone(t *testing.T) {
	const n = 256
	x := make([]complex128, n)
	for i := range x {
		x[i] = complex(math.Sin(2*math.Pi*8*float64(i)/n), 0)
	}
	fft(x)
	peak := 0
	for k := 1; k < n/2; k++ {
		if cmplx.Abs(x[k]) > cmplx.Abs(x[peak]) {
			peak = k
		}
	}
	if peak != 8 {
		t.Fatalf("peak bin = %d, want 8", peak)
	}
}

func TestAnalyzerSnapshotFollowsPlayback(t *testing.T) {
	a := newAnalyzer(48000)
	stereo := make([]float32, 2*100)
	for i := 0; i < 100; i++ {
		stereo[2*i] = float32(i)
		stereo[2*i+1] = float32(i)
	}
	a.Tap(stereo)

	got := a.Snapshot(10, 100)
	if got[0] != 90 || got[9] != 99 {
		t.Fatalf("caught-up snapshot = %v, want 90..99", got)
	}
	got = a.Snapshot(10, 50)
	if got[0] != 40 || got[9] != 49 {
		t.Fatalf("lagging snapshot = %v, want 40..49", got)
	}
}

func TestFindZeroCrossing(t *testing.T) {
	s := []float32{0.5, -0.2, 0.3, 0.4, 0.1, 0.2}
	if got := findZeroCrossing(s, len(s)); got != 2 {
		t.Fatalf("findZeroCrossing = %d, want 2", got)
	}
	if got := findZeroCrossing([]float32{1, 1, 1}, 3); got != 0 {
		t.Fatalf("findZeroCrossing without crossing = %d, want 0", got)
	}
}
