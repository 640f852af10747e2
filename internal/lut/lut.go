// Package lut evaluates the host's read-only lookup tables: the bit-crush
// curve, the note-to-frequency table, the math curves and the wavetables.
//
// Every evaluator clamps instead of failing. A query at or past the top
// edge returns the last entry, and no evaluator reads outside its table.
package lut

import (
	"math"

	"maze.io/x/math32"

	"github.com/cbegin/uosc-go/internal/dsp"
)

const (
	// NoteModScale maps the 8-bit fine modulation byte onto one semitone.
	NoteModScale = float32(0.00392156862745098)
	// NoteMaxHz keeps w0 below the point where the accumulator would alias.
	NoteMaxHz = float32(23679.643054)
)

// Eval reads table at the normalized position x, interpolating linearly
// between neighbouring entries.
func Eval(table []float32, x float32) float32 {
	n := len(table)
	if n == 0 {
		return 0
	}
	if !(x > 0) {
		return table[0]
	}
	if x >= 1 {
		return table[n-1]
	}
	xf := x * float32(n-1)
	xi := int(xf)
	if xi+1 >= n {
		return table[n-1]
	}
	return dsp.Lerp(xf-float32(xi), table[xi], table[xi+1])
}

// WaveScan reads a periodic wavetable at phase x. The integer part of x is
// discarded, so WaveScan(w, x) and WaveScan(w, x+1) agree.
func WaveScan(wave *Wave, x float32) float32 {
	p := x - math32.Floor(x)
	x0f := p * waveSpan
	x0i := int(x0f)
	x0 := x0i & waveMask
	x1 := (x0 + 1) & waveMask
	return dsp.Lerp(x0f-float32(x0i), wave[x0], wave[x1])
}

// NoteHz returns the frequency of a note from the host's table, clamping the
// note to the table range.
func (t *Tables) NoteHz(note uint8) float32 {
	idx := int(note)
	if last := len(t.MidiToHz) - 1; idx > last {
		idx = last
	}
	return t.MidiToHz[idx]
}

// W0ForNote converts a note and its fine modulation byte into a phase
// increment in cycles per sample.
func (t *Tables) W0ForNote(note, mod uint8) float32 {
	next := note
	if next < math.MaxUint8 {
		next++
	}
	f0 := t.NoteHz(note)
	f1 := t.NoteHz(next)
	f := dsp.Clamp(dsp.Lerp(float32(mod)*NoteModScale, f0, f1), 0, NoteMaxHz)
	return f * dsp.SampleRateRecip
}

// BitRes returns the quantization resolution for a crush amount in [0, 1].
func (t *Tables) BitRes(x float32) float32 { return Eval(t.BitResCurve[:], x) }

func (t *Tables) Log(x float32) float32 { return Eval(t.LogCurve[:], x) }
func (t *Tables) Sqrtm2Log(x float32) float32 { return Eval(t.Sqrtm2LogCurve[:], x) }
func (t *Tables) TanPi(x float32) float32 { return Eval(t.TanPiCurve[:], x) }
func (t *Tables) CubicSat(x float32) float32 { return Eval(t.CubicSatCurve[:], x) }
func (t *Tables) Schetzen(x float32) float32 { return Eval(t.SchetzenCurve[:], x) }
