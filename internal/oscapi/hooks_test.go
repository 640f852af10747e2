package oscapi

import (
	"bytes"
	"testing"
)

// referenceTable is the host structure written out by hand: magic, api
// version, platform byte, seven reserved bytes, then seven 32-bit slots.
func referenceTable(platform byte, addrs SlotAddrs) []byte {
	b := []byte{
		'U', 'O', 'S', 'C',
		0x00, 0x01, 0x01, 0x00,
		platform,
		0, 0, 0, 0, 0, 0, 0,
	}
	for _, a := range addrs {
		b = append(b, byte(a), byte(a>>8), byte(a>>16), byte(a>>24))
	}
	return b
}

func TestHookTableLayout(t *testing.T) {
	addrs := SequentialSlots(0x2000_0101, 0x40)
	for _, platform := range []Platform{Prologue, MinilogueXD, NutektDigital} {
		t.Run(platform.String(), func(t *testing.T) {
			rt := NewRuntime(Variant{Platform: platform}, nil)
			table := NewHookTable(rt)
			got := table.Bytes(addrs)
			want := referenceTable(byte(platform), addrs)
			if len(got) != HookTableSize || HookTableSize != 44 {
				t.Fatalf("table size = %d (const %d), want 44", len(got), HookTableSize)
			}
			if !bytes.Equal(got, want) {
				t.Fatalf("hook table bytes\nwant: % x\ngot:  % x", want, got)
			}
		})
	}
}

func TestHookTableOffsets(t *testing.T) {
	if OffsetAPI != OffsetMagic+4 || OffsetPlatform != OffsetAPI+4 ||
		OffsetReserved != OffsetPlatform+1 || OffsetSlots != OffsetReserved+ReservedLen {
		t.Fatal("hook table offsets are not packed")
	}
	if NumSlots != 7 {
		t.Fatalf("slot count = %d, want 7", NumSlots)
	}
	names := []string{"entry", "cycle", "on", "off", "mute", "value", "param"}
	for s := SlotEntry; s < NumSlots; s++ {
		if s.String() != names[s] {
			t.Fatalf("slot %d named %q, want %q", s, s, names[s])
		}
	}
}

func TestAppendBinaryKeepsPrefix(t *testing.T) {
	rt := NewRuntime(Variant{Platform: MinilogueXD}, nil)
	table := NewHookTable(rt)
	prefix := []byte("hdr")
	out := table.AppendBinary(prefix, SlotAddrs{})
	if !bytes.Equal(out[:3], []byte("hdr")) || len(out) != 3+HookTableSize {
		t.Fatalf("AppendBinary produced % x", out)
	}
	if out[3+OffsetPlatform] != byte(MinilogueXD) {
		t.Fatalf("platform byte = %d", out[3+OffsetPlatform])
	}
}

func TestHookSlotsForwardToRuntime(t *testing.T) {
	rt, built := newRecorderRuntime(nil)
	table := NewHookTable(rt)

	table.Hooks.Param(uint16(ParamShape), 1)
	table.Hooks.Entry(uint32(MinilogueXD), APIVersion)
	if *built != 1 || !rt.Ready() {
		t.Fatal("entry slot did not construct the instance")
	}
	buf := make([]int32, 4)
	table.Hooks.Cycle(&Params{}, &buf[0], int32(len(buf)))
	table.Hooks.NoteOn(&Params{})
	table.Hooks.NoteOff(&Params{})
	table.Hooks.Mute(&Params{})
	table.Hooks.Value(9)
	table.Hooks.Param(uint16(ParamShiftShape), 2)
	table.Hooks.Param(200, 2)

	osc := rt.Oscillator().(*recorder)
	if osc.cycles != 1 || buf[3] != 7 {
		t.Fatalf("cycle slot: cycles=%d buf=%v", osc.cycles, buf)
	}
	if len(osc.notes) != 3 || len(osc.values) != 1 {
		t.Fatalf("note slots %v value slot %v", osc.notes, osc.values)
	}
	if len(osc.params) != 1 || osc.params[0] != ParamShiftShape {
		t.Fatalf("param slot dispatched %v, want [shift-shape]", osc.params)
	}
}
