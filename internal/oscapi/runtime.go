package oscapi

import "unsafe"

// Runtime owns the single oscillator instance and dispatches host calls to
// it. The host never calls concurrently, so Runtime does no locking; shims
// that run it from several goroutines serialize calls themselves.
//
// Only Init may run before the instance exists. The other trampolines
// degrade silently until then: Cycle writes silence and the rest drop the
// call.
type Runtime struct {
	variant Variant
	image   *Image
	osc     Oscillator
}

func NewRuntime(v Variant, img *Image) *Runtime {
	if img == nil {
		img = &Image{}
	}
	return &Runtime{variant: v, image: img}
}

func (r *Runtime) Variant() Variant { return r.variant }

// Ready reports whether Init has constructed the instance.
func (r *Runtime) Ready() bool { return r.osc != nil }

// Oscillator returns the instance, or nil before Init.
func (r *Runtime) Oscillator() Oscillator { return r.osc }

// Init runs the cold start and constructs the instance, in that order. Later
// calls are ignored.
func (r *Runtime) Init(platform, api uint32) {
	if r.osc != nil || r.variant.New == nil {
		return
	}
	ColdStart(r.image)
	r.osc = r.variant.New(Platform(platform), api)
}

// Cycle adapts the host's (pointer, length) output buffer.
func (r *Runtime) Cycle(params *Params, buf *int32, frames int32) {
	if buf == nil || frames <= 0 {
		return
	}
	r.CycleSlice(params, unsafe.Slice(buf, frames))
}

func (r *Runtime) CycleSlice(params *Params, buf []int32) {
	if r.osc == nil || params == nil {
		clear(buf)
		return
	}
	r.osc.Cycle(params, buf)
}

func (r *Runtime) NoteOn(params *Params) {
	if r.osc == nil || params == nil {
		return
	}
	r.osc.NoteOn(params)
}

func (r *Runtime) NoteOff(params *Params) {
	if r.osc == nil || params == nil {
		return
	}
	r.osc.NoteOff(params)
}

func (r *Runtime) Mute(params *Params) {
	if r.osc == nil || params == nil {
		return
	}
	r.osc.Mute(params)
}

func (r *Runtime) Value(value uint16) {
	if r.osc == nil {
		return
	}
	r.osc.Value(value)
}

// Param drops indices outside the known parameter set.
func (r *Runtime) Param(idx, value uint16) {
	p, ok := ParamFromIndex(idx)
	if !ok || r.osc == nil {
		return
	}
	r.osc.SetParam(p, value)
}
