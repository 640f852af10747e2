package noise

import (
	"github.com/cbegin/uosc-go/internal/dsp"
	"github.com/cbegin/uosc-go/internal/lut"
	"github.com/cbegin/uosc-go/internal/oscapi"
)

const whiteSeed = 0x9E3779B9

// WhiteSource is a xorshift register producing white noise in [-1, 1).
type WhiteSource struct {
	state uint32
}

func NewWhiteSource(seed uint32) WhiteSource {
	if seed == 0 {
		seed = whiteSeed
	}
	return WhiteSource{state: seed}
}

func (w *WhiteSource) Next() float32 {
	s := w.state
	s ^= s << 13
	s ^= s >> 17
	s ^= s << 5
	w.state = s
	return dsp.Q31ToF32(int32(s))
}

// White is a bit-crushed white noise oscillator. Shape sets the level.
type White struct {
	oscapi.Base
	tables *lut.Tables
	src    WhiteSource
	level  float32
	crush  crusher
}

func NewWhite(t *lut.Tables, seed uint32) *White {
	return &White{
		tables: t,
		src:    NewWhiteSource(seed),
		level:  1,
		crush:  newCrusher(),
	}
}

func WhiteFactory(t *lut.Tables) oscapi.Factory {
	return func(oscapi.Platform, uint32) oscapi.Oscillator {
		return NewWhite(t, whiteSeed)
	}
}

func (o *White) Cycle(_ *oscapi.Params, buf []int32) {
	for i := range buf {
		sig := o.src.Next() * o.level
		sig = o.crush.apply(sig)
		buf[i] = dsp.ToQ31(dsp.ClampSample(sig))
	}
}

func (o *White) SetParam(p oscapi.Param, value uint16) {
	switch p {
	case oscapi.ParamShape:
		o.level = dsp.ParamToUnit(value)
	case oscapi.ParamShiftShape:
		o.crush.set(o.tables, value)
	}
}
