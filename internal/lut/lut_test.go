package lut

import (
	"math"
	"testing"
)

func rampTable(n int) []float32 {
	t := make([]float32, n)
	for i := range t {
		t[i] = float32(i*i) * 0.25
	}
	return t
}

func TestEvalHitsEntriesExactly(t *testing.T) {
	for _, n := range []int{2, 5, 129, 257} {
		table := rampTable(n)
		for k := 0; k < n; k++ {
			x := float32(k) / float32(n-1)
			if got := Eval(table, x); got != table[k] {
				t.Fatalf("n=%d: Eval(k=%d) = %v, want %v", n, k, got, table[k])
			}
		}
	}
}

func TestEvalInterpolatesBetweenEntries(t *testing.T) {
	table := []float32{0, 10, 20, 40}
	cases := []struct {
		x, want float32
	}{
		{1.0 / 6, 5},
		{0.5, 15},
		{5.0 / 6, 30},
	}
	for _, tc := range cases {
		got := Eval(table, tc.x)
		if math.Abs(float64(got-tc.want)) > 1e-4 {
			t.Errorf("Eval(%v) = %v, want %v", tc.x, got, tc.want)
		}
	}
}

func TestEvalClampsAtEdges(t *testing.T) {
	table := rampTable(129)
	last := table[len(table)-1]
	for _, x := range []float32{1, 1.0000001, 2, 1e30, float32(math.Inf(1))} {
		if got := Eval(table, x); got != last {
			t.Fatalf("Eval(%v) = %v, want last entry %v", x, got, last)
		}
	}
	for _, x := range []float32{0, -0.5, float32(math.Inf(-1)), float32(math.NaN())} {
		if got := Eval(table, x); got != table[0] {
			t.Fatalf("Eval(%v) = %v, want first entry %v", x, got, table[0])
		}
	}
	if got := Eval(nil, 0.5); got != 0 {
		t.Fatalf("Eval(nil) = %v, want 0", got)
	}
	if got := Eval([]float32{7}, 0.3); got != 7 {
		t.Fatalf("Eval(single) = %v, want 7", got)
	}
}

func TestWaveScanPeriodic(t *testing.T) {
	tables := Builtin()
	wave := tables.WavesA[3]
	for i := -200; i <= 200; i++ {
		x := float32(i) / 64.3
		a := WaveScan(wave, x)
		b := WaveScan(wave, x+1)
		if math.Abs(float64(a-b)) > 1e-4 {
			t.Fatalf("WaveScan(%v) = %v but WaveScan(%v) = %v", x, a, x+1, b)
		}
	}
}

func TestWaveScanReadsSamples(t *testing.T) {
	var w Wave
	for i := range w {
		w[i] = float32(i % 128)
	}
	if got := WaveScan(&w, 0); got != 0 {
		t.Fatalf("WaveScan(0) = %v, want 0", got)
	}
	if got := WaveScan(&w, 0.25); got != 32 {
		t.Fatalf("WaveScan(0.25) = %v, want 32", got)
	}
	if got := WaveScan(&w, 10.0/128+0.5/128); math.Abs(float64(got)-10.5) > 1e-3 {
		t.Fatalf("WaveScan between samples = %v, want 10.5", got)
	}
	// The last segment interpolates back toward sample 0.
	if got := WaveScan(&w, 127.5/128); math.Abs(float64(got)-63.5) > 1e-3 {
		t.Fatalf("WaveScan in wrap segment = %v, want 63.5", got)
	}
}

func TestBuiltinWavetablesWrap(t *testing.T) {
	tables := Builtin()
	banks := [][]*Wave{tables.WavesA, tables.WavesB, tables.WavesC, tables.WavesD, tables.WavesE, tables.WavesF}
	for b, bank := range banks {
		if len(bank) != bankSizes[b] {
			t.Fatalf("bank %d has %d waves, want %d", b, len(bank), bankSizes[b])
		}
		for i, w := range bank {
			if w[0] != w[WaveLen-1] {
				t.Fatalf("bank %d wave %d: first %v != last %v", b, i, w[0], w[WaveLen-1])
			}
			for s, v := range w {
				if v >= 1 || v < -1 {
					t.Fatalf("bank %d wave %d sample %d = %v outside [-1, 1)", b, i, s, v)
				}
			}
		}
	}
}

func TestNoteHzClampsToTable(t *testing.T) {
	tables := Builtin()
	if got := tables.NoteHz(69); math.Abs(float64(got)-440) > 1e-3 {
		t.Fatalf("NoteHz(69) = %v, want 440", got)
	}
	if got, want := tables.NoteHz(255), tables.MidiToHz[MidiToHzLen-1]; got != want {
		t.Fatalf("NoteHz(255) = %v, want %v", got, want)
	}
}

func TestW0ForNote(t *testing.T) {
	tables := Builtin()
	got := tables.W0ForNote(69, 0)
	want := float32(440.0 / 48000.0)
	if math.Abs(float64(got-want)) > 1e-6 {
		t.Fatalf("W0ForNote(69, 0) = %v, want %v", got, want)
	}
	half := tables.W0ForNote(69, 128)
	if half <= got || half >= tables.W0ForNote(70, 0) {
		t.Fatalf("fine modulation should land between semitones, got %v", half)
	}
	top := tables.W0ForNote(255, 255)
	if limit := NoteMaxHz / 48000; math.Abs(float64(top-limit)) > 1e-6 {
		t.Fatalf("W0ForNote(255, 255) = %v, want clamp %v", top, limit)
	}
	if top >= 0.5 {
		t.Fatalf("clamped w0 %v must stay below Nyquist", top)
	}
}

func TestBitResCurve(t *testing.T) {
	tables := Builtin()
	if got, want := tables.BitRes(1), tables.BitResCurve[BitResLen-1]; got != want {
		t.Fatalf("BitRes(1) = %v, want last entry %v", got, want)
	}
	if tables.BitRes(0) <= tables.BitRes(0.5) {
		t.Fatal("bit resolution should fall as the crush amount rises")
	}
}

func TestMathCurves(t *testing.T) {
	tables := Builtin()
	if got := tables.Log(1); got != 0 {
		t.Fatalf("Log(1) = %v, want 0", got)
	}
	if got := tables.Sqrtm2Log(1); got != 0 {
		t.Fatalf("Sqrtm2Log(1) = %v, want 0", got)
	}
	if got := tables.TanPi(0); got != 0 {
		t.Fatalf("TanPi(0) = %v, want 0", got)
	}
	if got := tables.CubicSat(1); got != 1 {
		t.Fatalf("CubicSat(1) = %v, want 1", got)
	}
	if got := tables.Schetzen(1); got != 1 {
		t.Fatalf("Schetzen(1) = %v, want 1", got)
	}
}

func TestPick(t *testing.T) {
	opts := []int{10, 20, 30, 40}
	cases := []struct {
		name   string
		x      float32
		want   int
		wantOK bool
	}{
		{"first", 0, 10, true},
		{"last", 1, 40, true},
		{"middle", 0.5, 20, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := Pick(opts, tc.x)
			if ok != tc.wantOK || got != tc.want {
				t.Fatalf("Pick(%v) = (%v, %v), want (%v, %v)", tc.x, got, ok, tc.want, tc.wantOK)
			}
		})
	}
}

func TestPickSingleOption(t *testing.T) {
	for _, x := range []float32{0, 0.3, 1, 5, -2} {
		got, ok := Pick([]string{"only"}, x)
		if !ok || got != "only" {
			t.Fatalf("Pick(single, %v) = (%q, %v), want (\"only\", true)", x, got, ok)
		}
	}
}
