// Package phase tracks an oscillator's position through its cycle.
package phase

import (
	"github.com/cbegin/uosc-go/internal/dsp"
	"github.com/cbegin/uosc-go/internal/lut"
)

// W0 is a phase increment in cycles per sample.
type W0 float32

// ForNote derives the increment for a note and its fine modulation byte.
func ForNote(t *lut.Tables, note, mod uint8) W0 {
	return W0(t.W0ForNote(note, mod))
}

// ForPitch splits the host's 16-bit pitch word into note (high byte) and
// fine modulation (low byte).
func ForPitch(t *lut.Tables, pitch uint16) W0 {
	return ForNote(t, uint8(pitch>>8), uint8(pitch))
}

// Hz converts a fixed frequency to an increment at the host sample rate.
func Hz(f float32) W0 {
	return W0(f * dsp.SampleRateRecip)
}

// Phi is a phase in [0, 1).
type Phi float32

// Advance adds w0 and drops the integer part. w0 must be non-negative; the
// truncating conversion does not wrap negative phases.
func (p *Phi) Advance(w0 W0) {
	next := float32(*p) + float32(w0)
	next -= float32(uint32(next))
	*p = Phi(next)
}

func (p *Phi) Reset() { *p = 0 }
