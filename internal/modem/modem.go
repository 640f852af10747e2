// Package modem encodes a byte buffer as an FSK tone, one phase increment
// per output sample.
//
// Bytes are framed 8-N-1: a start bit on the space tone, eight data bits
// least significant first (space for 0, mark for 1), and a stop bit on the
// mark tone. Each bit holds its tone for Profile.SamplesPerBit samples.
package modem

import (
	"github.com/cbegin/uosc-go/internal/dsp"
	"github.com/cbegin/uosc-go/internal/phase"
)

const (
	bitsPerFrame = 10
	stopBit      = bitsPerFrame - 1

	// CarrierSamples is the 50 ms of pure mark tone sent ahead of the data.
	CarrierSamples = dsp.SampleRate / 20
)

// Profile fixes the bit length and the two tones.
type Profile struct {
	SamplesPerBit int
	Space         phase.W0
	Mark          phase.W0
}

// NewProfile derives a profile from a baud rate and tone frequencies at the
// host sample rate.
func NewProfile(baud int, spaceHz, markHz float32) Profile {
	spb := 1
	if baud > 0 && baud < dsp.SampleRate {
		spb = dsp.SampleRate / baud
	}
	return Profile{
		SamplesPerBit: spb,
		Space:         phase.Hz(spaceHz),
		Mark:          phase.Hz(markHz),
	}
}

var (
	// Bell103 is 300 baud, 1070 Hz space and 1270 Hz mark.
	Bell103 = NewProfile(300, 1070, 1270)
	// Bell202 is 1200 baud, 2200 Hz space and 1200 Hz mark.
	Bell202 = NewProfile(1200, 2200, 1200)
)

// SampleIter walks a buffer byte by byte, bit by bit, sample by sample.
type SampleIter struct {
	profile   Profile
	buf       []byte
	byteOff   int
	bitOff    int
	sampleOff int
}

// NewSampleIter borrows buf for the life of the iterator.
func NewSampleIter(p Profile, buf []byte) SampleIter {
	if p.SamplesPerBit < 1 {
		p.SamplesPerBit = 1
	}
	return SampleIter{profile: p, buf: buf}
}

// Next returns the increment for the next sample, or false once every byte
// has been sent.
func (it *SampleIter) Next() (phase.W0, bool) {
	if it.sampleOff == it.profile.SamplesPerBit {
		it.sampleOff = 0
		it.bitOff++
	}
	if it.bitOff == bitsPerFrame {
		it.bitOff = 0
		it.byteOff++
	}
	if it.byteOff >= len(it.buf) {
		return 0, false
	}

	var w0 phase.W0
	switch bit := it.bitOff; {
	case bit == 0:
		w0 = it.profile.Space
	case bit < stopBit:
		if (it.buf[it.byteOff]>>(bit-1))&1 == 1 {
			w0 = it.profile.Mark
		} else {
			w0 = it.profile.Space
		}
	default:
		w0 = it.profile.Mark
	}
	it.sampleOff++
	return w0, true
}

// Exhausted reports whether Next has nothing left to produce.
func (it *SampleIter) Exhausted() bool {
	last := len(it.buf) - 1
	switch {
	case it.byteOff > last:
		return true
	case it.byteOff < last:
		return false
	}
	return it.bitOff == stopBit && it.sampleOff == it.profile.SamplesPerBit
}

// Modem prepends the carrier to a framed transmission.
type Modem struct {
	profile Profile
	carrier int
	iter    SampleIter
	sending bool
}

func New(p Profile) *Modem {
	return &Modem{profile: p}
}

func (m *Modem) Profile() Profile { return m.profile }

// Send starts transmitting buf after a carrier lead-in. Any transmission
// still in flight is dropped. buf is borrowed, not copied, and must not be
// modified until Busy reports false.
func (m *Modem) Send(buf []byte) {
	m.carrier = CarrierSamples
	m.iter = NewSampleIter(m.profile, buf)
	m.sending = true
}

// Stop abandons the carrier and any data still queued.
func (m *Modem) Stop() {
	m.carrier = 0
	m.iter = SampleIter{}
	m.sending = false
}

// Next returns the increment for the next sample, or false when idle.
func (m *Modem) Next() (phase.W0, bool) {
	if m.carrier != 0 {
		m.carrier--
		return m.profile.Mark, true
	}
	if !m.sending {
		return 0, false
	}
	w0, ok := m.iter.Next()
	if !ok {
		m.sending = false
	}
	return w0, ok
}

// Busy reports whether carrier or data samples remain.
func (m *Modem) Busy() bool {
	return m.carrier != 0 || (m.sending && !m.iter.Exhausted())
}
