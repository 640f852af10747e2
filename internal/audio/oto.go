package audio

import (
	"fmt"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"
)

// OtoPlayer plays a SampleSource on a bare oto context, for builds that do
// not want ebiten's game loop machinery.
type OtoPlayer struct {
	mu         sync.Mutex
	player     *oto.Player
	reader     *StreamReader
	sampleRate int
	started    time.Time
	elapsed    time.Duration
}

var (
	otoContextOnce sync.Once
	otoContext     *oto.Context
	otoContextErr  error
	otoSampleRate  int
)

func sharedOtoContext(sampleRate int) (*oto.Context, error) {
	otoContextOnce.Do(func() {
		otoSampleRate = sampleRate
		ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
			SampleRate:   sampleRate,
			ChannelCount: Channels,
			Format:       oto.FormatFloat32LE,
		})
		if err != nil {
			otoContextErr = fmt.Errorf("oto context: %w", err)
			return
		}
		<-ready
		otoContext = ctx
	})
	if otoContextErr != nil {
		return nil, otoContextErr
	}
	if otoSampleRate != sampleRate {
		return nil, fmt.Errorf("oto context already initialized at %d Hz (requested %d Hz)", otoSampleRate, sampleRate)
	}
	return otoContext, nil
}

func NewOtoPlayer(sampleRate int, source SampleSource) (*OtoPlayer, error) {
	ctx, err := sharedOtoContext(sampleRate)
	if err != nil {
		return nil, err
	}
	reader := NewStreamReader(source)
	return &OtoPlayer{
		player:     ctx.NewPlayer(reader),
		reader:     reader,
		sampleRate: sampleRate,
	}, nil
}

func (p *OtoPlayer) Play() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.player.IsPlaying() {
		return
	}
	p.started = time.Now()
	p.player.Play()
}

func (p *OtoPlayer) Pause() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.player.IsPlaying() {
		return
	}
	p.elapsed += time.Since(p.started)
	p.player.Pause()
}

func (p *OtoPlayer) IsPlaying() bool {
	return p.player.IsPlaying()
}

// Position estimates playback time from wall clock minus buffered audio.
func (p *OtoPlayer) Position() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()
	pos := p.elapsed
	if p.player.IsPlaying() {
		pos += time.Since(p.started)
	}
	buffered := time.Duration(p.player.BufferedSize()/bytesPerFrame) * time.Second / time.Duration(p.sampleRate)
	if pos -= buffered; pos < 0 {
		pos = 0
	}
	return pos
}

func (p *OtoPlayer) Stop() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.player.Pause()
	p.player.Close()
	return p.reader.Close()
}
