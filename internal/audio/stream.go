// Package audio streams oscillator output to the host sound device through
// either ebiten's audio context or a bare oto context.
package audio

import (
	"encoding/binary"
	"math"
	"sync"
	"time"
)

// Channels is the interleaved channel count of every stream.
const Channels = 2

const bytesPerFrame = Channels * 4

type SampleSource interface {
	Process(dst []float32)
}

// Backend is a started or paused output stream.
type Backend interface {
	Play()
	Pause()
	IsPlaying() bool
	Position() time.Duration
	Stop() error
}

// StreamReader renders a SampleSource as interleaved little-endian float32.
type StreamReader struct {
	mu     sync.Mutex
	source SampleSource
	buf    []float32
}

func NewStreamReader(source SampleSource) *StreamReader {
	return &StreamReader{source: source}
}

func (r *StreamReader) Read(p []byte) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	frames := len(p) / bytesPerFrame
	if frames == 0 {
		return 0, nil
	}
	need := frames * Channels
	if cap(r.buf) < need {
		r.buf = make([]float32, need)
	}
	r.buf = r.buf[:need]
	r.source.Process(r.buf)
	for i := 0; i < need; i++ {
		u := math.Float32bits(r.buf[i])
		binary.LittleEndian.PutUint32(p[i*4:], u)
	}
	return frames * bytesPerFrame, nil
}

func (r *StreamReader) Close() error { return nil }
