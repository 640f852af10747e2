package uosc

import (
	"errors"
	"fmt"
	"sync"

	intaudio "github.com/cbegin/uosc-go/internal/audio"
	"github.com/cbegin/uosc-go/internal/config"
	"github.com/cbegin/uosc-go/internal/dsp"
	"github.com/cbegin/uosc-go/internal/lfo"
	"github.com/cbegin/uosc-go/internal/oscapi"
)

type Backend string

const (
	BackendEbiten Backend = "ebiten"
	BackendOto    Backend = "oto"
)

// ParseBackend maps a config or flag value to a Backend. Empty selects ebiten.
func ParseBackend(name string) (Backend, error) {
	switch Backend(name) {
	case "", BackendEbiten:
		return BackendEbiten, nil
	case BackendOto:
		return BackendOto, nil
	default:
		return "", fmt.Errorf("invalid backend %q (expected ebiten|oto)", name)
	}
}

type PlayerOption func(*playerConfig)

type playerConfig struct {
	variant   VariantName
	backend   Backend
	sampleTap func([]float32)
	runtime   []RuntimeOption
}

func defaultPlayerConfig() playerConfig {
	return playerConfig{variant: VariantWavetable, backend: BackendEbiten}
}

func WithVariant(name VariantName) PlayerOption {
	return func(cfg *playerConfig) {
		cfg.variant = name
	}
}

func WithPlatform(p oscapi.Platform) PlayerOption {
	return func(cfg *playerConfig) {
		cfg.runtime = append(cfg.runtime, WithRuntimePlatform(p))
	}
}

func WithBackend(b Backend) PlayerOption {
	return func(cfg *playerConfig) {
		cfg.backend = b
	}
}

// WithRuntimeOptions forwards options to the runtime the player boots.
func WithRuntimeOptions(opts ...RuntimeOption) PlayerOption {
	return func(cfg *playerConfig) {
		cfg.runtime = append(cfg.runtime, opts...)
	}
}

// WithSampleTap installs a callback invoked with each generated stereo buffer.
// The callback runs on the audio thread; keep work brief and non-blocking.
func WithSampleTap(tap func([]float32)) PlayerOption {
	return func(cfg *playerConfig) {
		cfg.sampleTap = tap
	}
}

// Player previews one oscillator on the sound device. The runtime is driven
// the way the host drives it: one caller at a time, in blocks of at most
// BlockSize frames, with the shape LFO sampled once per block.
type Player struct {
	mu      sync.Mutex
	backend Backend
	audio   intaudio.Backend

	// voiceMu serializes every call into the runtime.
	voiceMu   sync.Mutex
	rt        *oscapi.Runtime
	params    oscapi.Params
	shapeLFO  *lfo.LFO
	volume    float64
	sampleTap func([]float32)
	block     []float32
	scratch   []int32
}

// voice adapts the player to intaudio.SampleSource.
type voice struct {
	p *Player
}

func (v voice) Process(dst []float32) { v.p.process(dst) }

func NewPlayer(opts ...PlayerOption) (*Player, error) {
	cfg := defaultPlayerConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if _, err := ParseBackend(string(cfg.backend)); err != nil {
		return nil, err
	}
	rt, err := Boot(cfg.variant, cfg.runtime...)
	if err != nil {
		return nil, err
	}
	return &Player{
		backend:   cfg.backend,
		rt:        rt,
		params:    oscapi.Params{Pitch: oscapi.PitchWord(60, 0)},
		shapeLFO:  lfo.New(),
		volume:    1,
		sampleTap: cfg.sampleTap,
		block:     make([]float32, BlockSize),
		scratch:   make([]int32, BlockSize),
	}, nil
}

// Variant returns the name of the oscillator the player runs.
func (p *Player) Variant() VariantName {
	return VariantName(p.rt.Variant().Name)
}

func (p *Player) process(dst []float32) {
	p.voiceMu.Lock()
	defer p.voiceMu.Unlock()

	gain := float32(p.volume)
	frames := len(dst) / intaudio.Channels
	for off := 0; off < frames; off += BlockSize {
		n := min(BlockSize, frames-off)
		p.params.ShapeLFO = p.shapeLFO.Block(n)
		oscapi.FloatCycle(p.rt, &p.params, p.block[:n], p.scratch)
		for i, s := range p.block[:n] {
			s *= gain
			j := (off + i) * intaudio.Channels
			dst[j] = s
			dst[j+1] = s
		}
	}
	clear(dst[frames*intaudio.Channels:])
	if p.sampleTap != nil {
		p.sampleTap(dst)
	}
}

// Start opens the output stream and begins playback.
func (p *Player) Start() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.audio != nil {
		p.audio.Play()
		return nil
	}
	var (
		backend intaudio.Backend
		err     error
	)
	switch p.backend {
	case BackendOto:
		backend, err = intaudio.NewOtoPlayer(dsp.SampleRate, voice{p})
	default:
		backend, err = intaudio.NewPlayer(dsp.SampleRate, voice{p})
	}
	if err != nil {
		return fmt.Errorf("start %s backend: %w", p.backend, err)
	}
	p.audio = backend
	p.audio.Play()
	return nil
}

func (p *Player) Pause() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.audio != nil {
		p.audio.Pause()
	}
}

func (p *Player) Resume() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.audio != nil {
		p.audio.Play()
	}
}

func (p *Player) IsPlaying() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.audio != nil && p.audio.IsPlaying()
}

// Stop closes the output stream. The oscillator keeps its state, so a later
// Start resumes where it left off.
func (p *Player) Stop() error {
	p.mu.Lock()
	a := p.audio
	p.audio = nil
	p.mu.Unlock()
	if a == nil {
		return nil
	}
	return a.Stop()
}

// PlaybackPosition returns the current output position of the audio driver
// in frames. Returns 0 if not playing.
func (p *Player) PlaybackPosition() int64 {
	p.mu.Lock()
	a := p.audio
	p.mu.Unlock()
	if a == nil {
		return 0
	}
	return int64(a.Position().Seconds() * dsp.SampleRate)
}

// SetPitch sets the note and fine modulation of the parameter block.
func (p *Player) SetPitch(note, mod uint8) {
	p.voiceMu.Lock()
	defer p.voiceMu.Unlock()
	p.params.Pitch = oscapi.PitchWord(note, mod)
}

func (p *Player) Pitch() (note, mod uint8) {
	p.voiceMu.Lock()
	defer p.voiceMu.Unlock()
	return p.params.Note(), p.params.Mod()
}

// SetParam forwards a parameter change through the host's param slot.
func (p *Player) SetParam(param oscapi.Param, value uint16) {
	p.voiceMu.Lock()
	defer p.voiceMu.Unlock()
	p.rt.Param(uint16(param), value)
}

func (p *Player) NoteOn() {
	p.voiceMu.Lock()
	defer p.voiceMu.Unlock()
	p.rt.NoteOn(&p.params)
}

func (p *Player) NoteOff() {
	p.voiceMu.Lock()
	defer p.voiceMu.Unlock()
	p.rt.NoteOff(&p.params)
}

func (p *Player) Mute() {
	p.voiceMu.Lock()
	defer p.voiceMu.Unlock()
	p.rt.Mute(&p.params)
}

// SetLFO configures the emulated shape LFO. Zero depth disables it.
func (p *Player) SetLFO(depth, rateHz float32, wave lfo.Waveform) {
	p.voiceMu.Lock()
	defer p.voiceMu.Unlock()
	p.shapeLFO.Set(depth, rateHz, wave)
	if !p.shapeLFO.Active() {
		p.params.ShapeLFO = 0
	}
}

// SetMasterVolume sets runtime volume scalar. 1.0 is default.
func (p *Player) SetMasterVolume(volume float64) {
	if volume < 0 {
		volume = 0
	}
	p.voiceMu.Lock()
	defer p.voiceMu.Unlock()
	p.volume = volume
}

func (p *Player) MasterVolume() float64 {
	p.voiceMu.Lock()
	defer p.voiceMu.Unlock()
	return p.volume
}

// ErrVariantChanged reports a config that names a different oscillator than
// the one the player was built with. The rest of the config is still applied.
var ErrVariantChanged = errors.New("variant change needs a restart")

// ApplyConfig updates pitch, params, LFO and volume from c.
func (p *Player) ApplyConfig(c *config.Config) error {
	p.SetPitch(c.Note, c.Mod)
	for _, pv := range c.ParamValues() {
		p.SetParam(pv.Param, pv.Value)
	}
	p.SetLFO(c.LFO.Depth, c.LFO.RateHz, c.Waveform())
	p.SetMasterVolume(c.Volume)
	if c.Variant != "" && VariantName(c.Variant) != p.Variant() {
		return fmt.Errorf("%w: running %s, config wants %s", ErrVariantChanged, p.Variant(), c.Variant)
	}
	return nil
}
