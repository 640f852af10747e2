package oscapi

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// ParamsSize is the byte size of the host's parameter block.
const ParamsSize = 16

// Params is the read-only block the host passes to Cycle and the note
// callbacks. Field order and widths follow the host structure.
type Params struct {
	ShapeLFO  int32
	Pitch     uint16
	Cutoff    uint16
	Resonance uint16
	Reserved  [3]uint16
}

// Note is the note number carried in the high byte of Pitch.
func (p *Params) Note() uint8 { return uint8(p.Pitch >> 8) }

// Mod is the fine modulation carried in the low byte of Pitch.
func (p *Params) Mod() uint8 { return uint8(p.Pitch) }

// PitchWord packs a note and fine modulation into the host's pitch format.
func PitchWord(note, mod uint8) uint16 {
	return uint16(note)<<8 | uint16(mod)
}

func (p *Params) MarshalBinary() ([]byte, error) {
	b := make([]byte, ParamsSize)
	binary.LittleEndian.PutUint32(b[0:], uint32(p.ShapeLFO))
	binary.LittleEndian.PutUint16(b[4:], p.Pitch)
	binary.LittleEndian.PutUint16(b[6:], p.Cutoff)
	binary.LittleEndian.PutUint16(b[8:], p.Resonance)
	for i, r := range p.Reserved {
		binary.LittleEndian.PutUint16(b[10+2*i:], r)
	}
	return b, nil
}

func (p *Params) UnmarshalBinary(b []byte) error {
	if len(b) < ParamsSize {
		return fmt.Errorf("param block: got %d bytes, want %d", len(b), ParamsSize)
	}
	p.ShapeLFO = int32(binary.LittleEndian.Uint32(b[0:]))
	p.Pitch = binary.LittleEndian.Uint16(b[4:])
	p.Cutoff = binary.LittleEndian.Uint16(b[6:])
	p.Resonance = binary.LittleEndian.Uint16(b[8:])
	for i := range p.Reserved {
		p.Reserved[i] = binary.LittleEndian.Uint16(b[10+2*i:])
	}
	return nil
}

// Platform identifies the host hardware family.
type Platform uint8

const (
	Prologue      Platform = 1
	MinilogueXD   Platform = 2
	NutektDigital Platform = 3
)

var ErrUnknownPlatform = errors.New("unknown platform")

func (p Platform) Valid() bool {
	return p >= Prologue && p <= NutektDigital
}

func (p Platform) String() string {
	switch p {
	case Prologue:
		return "prologue"
	case MinilogueXD:
		return "minilogue-xd"
	case NutektDigital:
		return "nutekt-digital"
	default:
		return fmt.Sprintf("platform(%d)", uint8(p))
	}
}

// ParsePlatform accepts the names returned by Platform.String.
func ParsePlatform(name string) (Platform, error) {
	for p := Prologue; p <= NutektDigital; p++ {
		if p.String() == name {
			return p, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownPlatform, name)
}

// Param enumerates the parameter indices the host sends to the param
// callback.
type Param uint16

const (
	Param1 Param = iota
	Param2
	Param3
	Param4
	Param5
	Param6
	ParamShape
	ParamShiftShape
)

// ParamFromIndex validates a raw host index. Indices past ParamShiftShape are
// reported as not ok.
func ParamFromIndex(idx uint16) (Param, bool) {
	if idx > uint16(ParamShiftShape) {
		return 0, false
	}
	return Param(idx), true
}

func (p Param) String() string {
	switch {
	case p <= Param6:
		return fmt.Sprintf("param%d", uint16(p)+1)
	case p == ParamShape:
		return "shape"
	case p == ParamShiftShape:
		return "shift-shape"
	default:
		return fmt.Sprintf("param(%d)", uint16(p))
	}
}

// ParseParam accepts the names returned by Param.String.
func ParseParam(name string) (Param, bool) {
	for p := Param1; p <= ParamShiftShape; p++ {
		if p.String() == name {
			return p, true
		}
	}
	return 0, false
}
