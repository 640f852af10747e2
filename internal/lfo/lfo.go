// Package lfo emulates the host's shape LFO, which arrives once per cycle
// block in the ShapeLFO field of the parameter block.
package lfo

import (
	"fmt"
	"strings"

	"github.com/cbegin/uosc-go/internal/dsp"
	"github.com/cbegin/uosc-go/internal/noise"
	"github.com/cbegin/uosc-go/internal/phase"
)

type Waveform int

const (
	WaveSaw Waveform = iota
	WaveSquare
	WaveTriangle
	WaveRandom
)

var waveNames = [...]string{"saw", "square", "triangle", "random"}

func (w Waveform) String() string {
	if w < 0 || int(w) >= len(waveNames) {
		return fmt.Sprintf("Waveform(%d)", int(w))
	}
	return waveNames[w]
}

// ParseWaveform accepts the names printed by String. Empty selects triangle.
func ParseWaveform(name string) (Waveform, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return WaveTriangle, nil
	}
	for i, n := range waveNames {
		if n == name {
			return Waveform(i), nil
		}
	}
	return 0, fmt.Errorf("unknown lfo waveform %q (expected saw|square|triangle|random)", name)
}

// LFO is a block-rate modulation source. Depth scales the output within
// [-1, 1] before conversion to q31.
type LFO struct {
	depth    float32
	rate     phase.W0
	waveform Waveform
	phi      phase.Phi
	held     float32
	rng      noise.WhiteSource
}

func New() *LFO {
	return &LFO{waveform: WaveTriangle, rng: noise.NewWhiteSource(0)}
}

// Set configures the LFO parameters. Unknown waveforms fall back to triangle.
func (l *LFO) Set(depth, rateHz float32, waveform Waveform) {
	l.depth = dsp.Clamp(depth, 0, 1)
	l.rate = phase.Hz(dsp.Clamp(rateHz, 0, dsp.SampleRate/2))
	if waveform < WaveSaw || waveform > WaveRandom {
		waveform = WaveTriangle
	}
	l.waveform = waveform
}

// Active reports whether the LFO has non-zero depth and rate.
func (l *LFO) Active() bool {
	return l.depth != 0 && l.rate != 0
}

func (l *LFO) value() float32 {
	p := float32(l.phi)
	switch l.waveform {
	case WaveSaw:
		return 1 - 2*p
	case WaveSquare:
		if p < 0.5 {
			return 1
		}
		return -1
	case WaveRandom:
		return l.held
	default:
		if p < 0.5 {
			return 4*p - 1
		}
		return 3 - 4*p
	}
}

// Block returns the q31 value for a block of frames starting at the current
// phase, then advances past the block. Inactive LFOs return 0.
func (l *LFO) Block(frames int) int32 {
	if !l.Active() || frames <= 0 {
		return 0
	}
	v := dsp.ClampSample(l.value() * l.depth)

	old := l.phi
	l.phi.Advance(phase.W0(float32(l.rate) * float32(frames)))
	// Sample-and-hold picks a new value each time the phase wraps.
	if l.waveform == WaveRandom && l.phi < old {
		l.held = l.rng.Next()
	}
	return dsp.ToQ31(v)
}

// Reset zeros the phase and held value.
func (l *LFO) Reset() {
	l.phi.Reset()
	l.held = 0
}
