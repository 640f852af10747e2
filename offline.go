package uosc

import (
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/cbegin/uosc-go/internal/dsp"
	"github.com/cbegin/uosc-go/internal/oscapi"
)

// BlockSize is the largest buffer the host hands to a single cycle call.
const BlockSize = 64

const (
	wavBitDepth  = 32
	wavChannels  = 1
	wavFormatPCM = 1
)

// RenderSamples runs the runtime's cycle callback in host-sized blocks until
// frames samples have been produced.
func RenderSamples(rt *oscapi.Runtime, params oscapi.Params, frames int) []int32 {
	if frames <= 0 {
		return nil
	}
	out := make([]int32, frames)
	for off := 0; off < frames; off += BlockSize {
		end := min(off+BlockSize, frames)
		rt.CycleSlice(&params, out[off:end])
	}
	return out
}

// RenderRequest describes one offline render of a registered variant.
type RenderRequest struct {
	Variant VariantName
	Note    uint8
	Mod     uint8
	Params  map[oscapi.Param]uint16
	Seconds float64
	Options []RuntimeOption
}

// Render boots a fresh runtime, applies the params in index order, sends a
// note on, and renders the requested duration.
func Render(req RenderRequest) ([]int32, error) {
	if req.Seconds <= 0 {
		return nil, fmt.Errorf("invalid duration %v", req.Seconds)
	}
	rt, err := Boot(req.Variant, req.Options...)
	if err != nil {
		return nil, err
	}
	for p := oscapi.Param1; p <= oscapi.ParamShiftShape; p++ {
		if v, ok := req.Params[p]; ok {
			rt.Param(uint16(p), v)
		}
	}
	params := oscapi.Params{Pitch: oscapi.PitchWord(req.Note, req.Mod)}
	rt.NoteOn(&params)
	frames := int(req.Seconds * dsp.SampleRate)
	return RenderSamples(rt, params, frames), nil
}

// EncodeWAV writes q31 samples as a mono 32-bit PCM WAV at the host rate.
func EncodeWAV(w io.WriteSeeker, samples []int32) error {
	enc := wav.NewEncoder(w, dsp.SampleRate, wavBitDepth, wavChannels, wavFormatPCM)
	data := make([]int, len(samples))
	for i, s := range samples {
		data[i] = int(s)
	}
	buf := &goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: wavChannels, SampleRate: dsp.SampleRate},
		Data:           data,
		SourceBitDepth: wavBitDepth,
	}
	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("wav write: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("wav close: %w", err)
	}
	return nil
}
