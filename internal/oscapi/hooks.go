package oscapi

import "encoding/binary"

// Host table constants.
const (
	Magic      = "UOSC"
	APIVersion = 0x01_01_00
)

// Byte offsets of the serialized hook table. The layout is packed: the only
// filler is the explicit reserved field after the platform byte.
const (
	OffsetMagic    = 0
	OffsetAPI      = 4
	OffsetPlatform = 8
	OffsetReserved = 9
	OffsetSlots    = 16

	ReservedLen = 7

	// SlotSize is the host's function pointer width.
	SlotSize      = 4
	HookTableSize = OffsetSlots + int(NumSlots)*SlotSize
)

// Slot names the call slots in host order.
type Slot int

const (
	SlotEntry Slot = iota
	SlotCycle
	SlotNoteOn
	SlotNoteOff
	SlotMute
	SlotValue
	SlotParam
	NumSlots
)

func (s Slot) String() string {
	switch s {
	case SlotEntry:
		return "entry"
	case SlotCycle:
		return "cycle"
	case SlotNoteOn:
		return "on"
	case SlotNoteOff:
		return "off"
	case SlotMute:
		return "mute"
	case SlotValue:
		return "value"
	case SlotParam:
		return "param"
	default:
		return "invalid"
	}
}

// Hooks are the forwarding functions behind the call slots.
type Hooks struct {
	Entry   func(platform, api uint32)
	Cycle   func(params *Params, buf *int32, frames int32)
	NoteOn  func(params *Params)
	NoteOff func(params *Params)
	Mute    func(params *Params)
	Value   func(value uint16)
	Param   func(idx, value uint16)
}

// HookTable mirrors the host's packed callback structure.
type HookTable struct {
	Magic    [4]byte
	API      uint32
	Platform Platform
	Reserved [ReservedLen]byte
	Hooks    Hooks
}

// SlotAddrs are the code addresses the linker assigns to each slot, in slot
// order.
type SlotAddrs [NumSlots]uint32

// SequentialSlots lays the slots out stride bytes apart from base.
func SequentialSlots(base, stride uint32) SlotAddrs {
	var a SlotAddrs
	for i := range a {
		a[i] = base + uint32(i)*stride
	}
	return a
}

// NewHookTable builds the table for rt's variant with every slot forwarding
// to rt.
func NewHookTable(rt *Runtime) HookTable {
	h := HookTable{
		API:      APIVersion,
		Platform: rt.Variant().Platform,
		Hooks: Hooks{
			Entry:   rt.Init,
			Cycle:   rt.Cycle,
			NoteOn:  rt.NoteOn,
			NoteOff: rt.NoteOff,
			Mute:    rt.Mute,
			Value:   rt.Value,
			Param:   rt.Param,
		},
	}
	copy(h.Magic[:], Magic)
	return h
}

// AppendBinary appends the packed little-endian image of the table to b.
// Layout is written field by field at fixed offsets and never depends on Go
// struct layout.
func (h *HookTable) AppendBinary(b []byte, addrs SlotAddrs) []byte {
	start := len(b)
	b = append(b, make([]byte, HookTableSize)...)
	out := b[start:]
	copy(out[OffsetMagic:OffsetAPI], h.Magic[:])
	binary.LittleEndian.PutUint32(out[OffsetAPI:], h.API)
	out[OffsetPlatform] = byte(h.Platform)
	copy(out[OffsetReserved:OffsetSlots], h.Reserved[:])
	for i, a := range addrs {
		binary.LittleEndian.PutUint32(out[OffsetSlots+i*SlotSize:], a)
	}
	return b
}

func (h *HookTable) Bytes(addrs SlotAddrs) []byte {
	return h.AppendBinary(make([]byte, 0, HookTableSize), addrs)
}
