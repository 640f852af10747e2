package lut

import (
	"sync"

	"maze.io/x/math32"
)

const (
	// WaveLen is the sample count of every wavetable. The last sample
	// repeats the first so the scan can wrap without a branch.
	WaveLen  = 129
	waveSpan = float32(WaveLen - 1)
	waveMask = WaveLen - 2

	BitResLen   = 129
	MidiToHzLen = 152
	MathLen     = 257
	SatLen      = 129
)

// Wave is one single-cycle waveform.
type Wave [WaveLen]float32

// Tables is the host's constant data image. Oscillators hold pointers into it
// and never write to it.
type Tables struct {
	WavesA []*Wave
	WavesB []*Wave
	WavesC []*Wave
	WavesD []*Wave
	WavesE []*Wave
	WavesF []*Wave

	Sine Wave

	BitResCurve [BitResLen]float32
	MidiToHz    [MidiToHzLen]float32

	LogCurve       [MathLen]float32
	Sqrtm2LogCurve [MathLen]float32
	TanPiCurve     [MathLen]float32

	CubicSatCurve [SatLen]float32
	SchetzenCurve [SatLen]float32
}

// Bank sizes of the vendor wavetable sets A through F.
var bankSizes = [6]int{16, 16, 14, 13, 15, 16}

var (
	builtinOnce sync.Once
	builtin     *Tables
)

// Builtin returns a synthesized stand-in for the host image: harmonic
// wavetables, an equal-tempered note table and the math curves. It is built
// once and shared.
func Builtin() *Tables {
	builtinOnce.Do(func() {
		builtin = newBuiltin()
	})
	return builtin
}

func newBuiltin() *Tables {
	t := &Tables{}
	fillSine(&t.Sine)

	banks := [6]*[]*Wave{&t.WavesA, &t.WavesB, &t.WavesC, &t.WavesD, &t.WavesE, &t.WavesF}
	for b, size := range bankSizes {
		storage := make([]Wave, size)
		waves := make([]*Wave, size)
		for i := range storage {
			fillHarmonic(&storage[i], b, i)
			waves[i] = &storage[i]
		}
		*banks[b] = waves
	}

	for i := range t.BitResCurve {
		x := float32(i) / float32(BitResLen-1)
		bits := 24 - 23*x
		t.BitResCurve[i] = math32.Pow(2, bits)
	}
	for i := range t.MidiToHz {
		t.MidiToHz[i] = 440 * math32.Pow(2, float32(i-69)/12)
	}
	for i := range t.LogCurve {
		x := float32(max(i, 1)) / float32(MathLen-1)
		t.LogCurve[i] = math32.Log(x)
		t.Sqrtm2LogCurve[i] = math32.Sqrt(-2 * math32.Log(x))
		a := math32.Pi * 0.49 * float32(i) / float32(MathLen-1)
		t.TanPiCurve[i] = math32.Sin(a) / math32.Cos(a)
	}
	for i := range t.CubicSatCurve {
		x := float32(i) / float32(SatLen-1)
		t.CubicSatCurve[i] = 1.5*x - 0.5*x*x*x
		t.SchetzenCurve[i] = schetzen(x)
	}
	return t
}

func fillSine(w *Wave) {
	for i := 0; i < WaveLen-1; i++ {
		w[i] = math32.Sin(2 * math32.Pi * float32(i) / waveSpan)
	}
	w[WaveLen-1] = w[0]
}

// fillHarmonic writes wave i of bank b. Wave 0 of every bank is a pure sine;
// later waves add harmonics with a bank-specific spectrum.
func fillHarmonic(w *Wave, bank, i int) {
	harmonics := 1 + i*2
	var peak float32
	for s := 0; s < WaveLen-1; s++ {
		ph := 2 * math32.Pi * float32(s) / waveSpan
		var v float32
		for h := 1; h <= harmonics; h++ {
			v += harmonicGain(bank, h) * math32.Sin(float32(h)*ph)
		}
		w[s] = v
		if a := math32.Abs(v); a > peak {
			peak = a
		}
	}
	if peak > 0 {
		g := 0.98 / peak
		for s := 0; s < WaveLen-1; s++ {
			w[s] *= g
		}
	}
	w[WaveLen-1] = w[0]
}

func harmonicGain(bank, h int) float32 {
	hf := float32(h)
	switch bank {
	case 0: // saw
		return 1 / hf
	case 1: // square
		if h%2 == 0 {
			return 0
		}
		return 1 / hf
	case 2: // triangle
		if h%2 == 0 {
			return 0
		}
		if (h/2)%2 == 1 {
			return -1 / (hf * hf)
		}
		return 1 / (hf * hf)
	case 3: // formant around the fifth harmonic
		d := hf - 5
		return 1 / (1 + d*d)
	case 4: // bright, slowly decaying
		return 1 / math32.Sqrt(hf)
	default: // alternating-sign comb
		if h%2 == 0 {
			return -0.5 / hf
		}
		return 1 / hf
	}
}

func schetzen(x float32) float32 {
	switch {
	case x < 1.0/3:
		return 2 * x
	case x < 2.0/3:
		d := 2 - 3*x
		return (3 - d*d) / 3
	default:
		return 1
	}
}
