// Package oscapi binds a concrete oscillator to the host's fixed callback
// table.
//
// The host calls seven entry points: init, cycle, note-on, note-off, mute,
// value and param. A Runtime owns the single oscillator instance and adapts
// those raw calls into typed calls on it; a HookTable serializes the layout
// the host loads.
package oscapi

// Oscillator is the capability set a concrete oscillator implements.
// Embed Base to get no-op defaults for everything except Cycle.
type Oscillator interface {
	// Cycle fills every element of buf. It must not allocate or block.
	Cycle(params *Params, buf []int32)
	NoteOn(params *Params)
	NoteOff(params *Params)
	Mute(params *Params)
	Value(value uint16)
	SetParam(p Param, value uint16)
}

// Base implements the optional callbacks as no-ops.
type Base struct{}

func (Base) NoteOn(*Params) {}
func (Base) NoteOff(*Params) {}
func (Base) Mute(*Params) {}
func (Base) Value(uint16) {}
func (Base) SetParam(Param, uint16) {}

// Factory constructs the instance on the host's init call.
type Factory func(platform Platform, api uint32) Oscillator

// Variant is one concrete oscillator build: the platform it targets and how
// to construct it.
type Variant struct {
	Name     string
	Platform Platform
	New      Factory
}
