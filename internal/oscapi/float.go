package oscapi

import "github.com/cbegin/uosc-go/internal/dsp"

// FloatCycle renders len(dst) frames through rt and converts them to float
// amplitude, for hosts that consume float audio. scratch holds the q31
// samples; it is grown only when shorter than dst.
func FloatCycle(rt *Runtime, params *Params, dst []float32, scratch []int32) []int32 {
	if cap(scratch) < len(dst) {
		scratch = make([]int32, len(dst))
	}
	scratch = scratch[:len(dst)]
	rt.CycleSlice(params, scratch)
	for i, s := range scratch {
		dst[i] = dsp.Q31ToF32(s)
	}
	return scratch
}
