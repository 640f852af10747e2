package audio

import (
	"encoding/binary"
	"math"
	"testing"
)

type rampSource struct {
	next float32
}

func (s *rampSource) Process(dst []float32) {
	for i := range dst {
		dst[i] = s.next
		s.next += 0.25
	}
}

func TestStreamReaderEncodesFloat32LE(t *testing.T) {
	src := &rampSource{}
	r := NewStreamReader(src)
	p := make([]byte, 2*bytesPerFrame+3)
	n, err := r.Read(p)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if n != 2*bytesPerFrame {
		t.Fatalf("n = %d, want %d", n, 2*bytesPerFrame)
	}
	for i := 0; i < 4; i++ {
		got := math.Float32frombits(binary.LittleEndian.Uint32(p[i*4:]))
		if want := float32(i) * 0.25; got != want {
			t.Fatalf("sample %d = %v, want %v", i, got, want)
		}
	}
}

func TestStreamReaderShortBuffer(t *testing.T) {
	r := NewStreamReader(&rampSource{})
	n, err := r.Read(make([]byte, bytesPerFrame-1))
	if n != 0 || err != nil {
		t.Fatalf("Read = (%d, %v), want (0, nil)", n, err)
	}
}

func TestStreamReaderNeverEnds(t *testing.T) {
	r := NewStreamReader(&rampSource{})
	p := make([]byte, 16*bytesPerFrame)
	for i := 0; i < 100; i++ {
		n, err := r.Read(p)
		if n != len(p) || err != nil {
			t.Fatalf("read %d = (%d, %v), want (%d, nil)", i, n, err, len(p))
		}
	}
}
