// Package noise holds the wavetable and white-noise oscillators. Both run
// their output through a bit-crusher whose resolution comes from the host's
// curve table.
package noise

import (
	"github.com/cbegin/uosc-go/internal/dsp"
	"github.com/cbegin/uosc-go/internal/lut"
	"github.com/cbegin/uosc-go/internal/oscapi"
	"github.com/cbegin/uosc-go/internal/phase"
)

// Wavetable scans one wave from bank A at the host pitch.
type Wavetable struct {
	oscapi.Base
	tables *lut.Tables
	wave   *lut.Wave
	shape  float32
	phi    phase.Phi
	crush  crusher
}

func NewWavetable(t *lut.Tables) *Wavetable {
	return &Wavetable{
		tables: t,
		wave:   t.WavesA[0],
		crush:  newCrusher(),
	}
}

func WavetableFactory(t *lut.Tables) oscapi.Factory {
	return func(oscapi.Platform, uint32) oscapi.Oscillator {
		return NewWavetable(t)
	}
}

func (o *Wavetable) Cycle(params *oscapi.Params, buf []int32) {
	w0 := phase.ForPitch(o.tables, params.Pitch)
	wave := o.wave
	if params.ShapeLFO != 0 {
		x := dsp.Clamp(o.shape+dsp.Q31ToF32(params.ShapeLFO), 0, 1)
		if w, ok := lut.Pick(o.tables.WavesA, x); ok {
			wave = w
		}
	}

	for i := range buf {
		sig := lut.WaveScan(wave, float32(o.phi))
		sig = o.crush.apply(sig)
		buf[i] = dsp.ToQ31(dsp.ClampSample(sig))
		o.phi.Advance(w0)
	}
}

// Mute restarts the cycle so the next note begins at phase zero.
func (o *Wavetable) Mute(*oscapi.Params) {
	o.phi.Reset()
}

func (o *Wavetable) SetParam(p oscapi.Param, value uint16) {
	switch p {
	case oscapi.ParamShape:
		x := dsp.ParamToUnit(value)
		// Keep the previous wave if the pick fails.
		if w, ok := lut.Pick(o.tables.WavesA, x); ok {
			o.shape = x
			o.wave = w
		}
	case oscapi.ParamShiftShape:
		o.crush.set(o.tables, value)
	}
}
