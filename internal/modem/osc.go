package modem

import (
	"github.com/cbegin/uosc-go/internal/dsp"
	"github.com/cbegin/uosc-go/internal/lut"
	"github.com/cbegin/uosc-go/internal/oscapi"
	"github.com/cbegin/uosc-go/internal/phase"
)

// DefaultMessage is transmitted once on init.
var DefaultMessage = []byte("Hello, world!")

// Osc plays a modem transmission through a wavetable. Between
// transmissions it idles on the mark tone.
type Osc struct {
	oscapi.Base
	tables  *lut.Tables
	wave    *lut.Wave
	modem   *Modem
	phi     phase.Phi
	message []byte
}

func NewOsc(t *lut.Tables, p Profile) *Osc {
	return &Osc{
		tables: t,
		wave:   t.WavesA[0],
		modem:  New(p),
	}
}

// Factory constructs an Osc on the host's init call and starts sending
// message.
func Factory(t *lut.Tables, p Profile, message []byte) oscapi.Factory {
	return func(oscapi.Platform, uint32) oscapi.Oscillator {
		o := NewOsc(t, p)
		o.Send(message)
		return o
	}
}

// Send replaces any transmission in flight. message is borrowed.
func (o *Osc) Send(message []byte) {
	o.message = message
	o.modem.Send(message)
}

func (o *Osc) Busy() bool { return o.modem.Busy() }

func (o *Osc) Cycle(_ *oscapi.Params, buf []int32) {
	mark := o.modem.profile.Mark
	for i := range buf {
		sig := lut.WaveScan(o.wave, float32(o.phi))
		buf[i] = dsp.ToQ31(dsp.ClampSample(sig))

		w0, ok := o.modem.Next()
		if !ok {
			w0 = mark
		}
		o.phi.Advance(w0)
	}
}

// NoteOn sends the last message again.
func (o *Osc) NoteOn(*oscapi.Params) {
	if o.message != nil {
		o.modem.Send(o.message)
	}
}

// Mute abandons the transmission and returns to the idle tone.
func (o *Osc) Mute(*oscapi.Params) {
	o.modem.Stop()
}

func (o *Osc) SetParam(p oscapi.Param, value uint16) {
	if p != oscapi.ParamShape {
		return
	}
	if w, ok := lut.Pick(o.tables.WavesA, dsp.ParamToUnit(value)); ok {
		o.wave = w
	}
}
