package lfo

import (
	"math"
	"testing"

	"github.com/cbegin/uosc-go/internal/dsp"
)

// blockValues steps a 1 Hz LFO in blocks of 480 frames, 100 blocks per cycle.
func blockValues(l *LFO, n int) []float32 {
	out := make([]float32, n)
	for i := range out {
		out[i] = dsp.Q31ToF32(l.Block(480))
	}
	return out
}

func TestLFOTriangleBasicShape(t *testing.T) {
	l := New()
	l.Set(1, 1, WaveTriangle)
	v := blockValues(l, 100)

	if math.Abs(float64(v[0]+1)) > 0.05 {
		t.Errorf("triangle at phase 0: got %f, want -1.0", v[0])
	}
	if math.Abs(float64(v[25])) > 0.05 {
		t.Errorf("triangle at phase 0.25: got %f, want ~0", v[25])
	}
	if math.Abs(float64(v[50]-1)) > 0.05 {
		t.Errorf("triangle at phase 0.5: got %f, want 1.0", v[50])
	}
}

func TestLFOSquareShape(t *testing.T) {
	l := New()
	l.Set(0.5, 1, WaveSquare)
	v := blockValues(l, 100)
	if math.Abs(float64(v[0]-0.5)) > 0.01 {
		t.Errorf("square first half: got %f, want 0.5", v[0])
	}
	if math.Abs(float64(v[60]+0.5)) > 0.01 {
		t.Errorf("square second half: got %f, want -0.5", v[60])
	}
}

func TestLFOSawShape(t *testing.T) {
	l := New()
	l.Set(1, 1, WaveSaw)
	v := blockValues(l, 100)
	if v[0] <= 0.99 {
		t.Errorf("saw at phase 0: got %f, want ~1.0", v[0])
	}
	if math.Abs(float64(v[50])) > 0.05 {
		t.Errorf("saw at phase 0.5: got %f, want ~0", v[50])
	}
}

func TestLFORandomHoldsUntilWrap(t *testing.T) {
	l := New()
	l.Set(1, 1, WaveRandom)
	v := blockValues(l, 250)
	for i := 1; i < 90; i++ {
		if v[i] != v[0] {
			t.Fatalf("held value changed mid-cycle at block %d", i)
		}
	}
	if v[150] == v[0] && v[249] == v[150] {
		t.Fatal("held value never changed across wraps")
	}
}

func TestLFOInactive(t *testing.T) {
	l := New()
	if l.Active() {
		t.Fatal("new LFO reported active")
	}
	if got := l.Block(64); got != 0 {
		t.Fatalf("inactive Block = %d, want 0", got)
	}
	l.Set(1, 0, WaveSaw)
	if got := l.Block(64); got != 0 {
		t.Fatalf("zero-rate Block = %d, want 0", got)
	}
}

func TestLFOReset(t *testing.T) {
	l := New()
	l.Set(1, 1, WaveTriangle)
	first := l.Block(480)
	blockValues(l, 33)
	l.Reset()
	if got := l.Block(480); got != first {
		t.Fatalf("after reset Block = %d, want %d", got, first)
	}
}

func TestLFOUnknownWaveformFallsBack(t *testing.T) {
	l := New()
	l.Set(1, 1, Waveform(99))
	if l.waveform != WaveTriangle {
		t.Fatalf("waveform = %v, want triangle", l.waveform)
	}
}

func TestParseWaveform(t *testing.T) {
	for w := WaveSaw; w <= WaveRandom; w++ {
		got, err := ParseWaveform(w.String())
		if err != nil || got != w {
			t.Fatalf("ParseWaveform(%q) = (%v, %v)", w.String(), got, err)
		}
	}
	if got, err := ParseWaveform(""); err != nil || got != WaveTriangle {
		t.Fatalf("ParseWaveform(\"\") = (%v, %v), want triangle", got, err)
	}
	if _, err := ParseWaveform("sine"); err == nil {
		t.Fatal("ParseWaveform(sine) succeeded")
	}
}
