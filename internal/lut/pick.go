package lut

// Pick selects one of several same-shaped options by a continuous position
// x in [0, 1]. The index is floor(x*(len-1)).
//
// With the default build the index is bounds-checked and ok is false when it
// falls outside opts; callers keep their previous selection in that case.
// Builds tagged uosc_unchecked trust the caller and index directly.
func Pick[T any](opts []T, x float32) (v T, ok bool) {
	if !checkedPick {
		return opts[int(x*float32(len(opts)-1))], true
	}
	switch {
	case len(opts) == 1:
		return opts[0], true
	case len(opts) == 0 || !(x >= 0):
		return v, false
	}
	xi := int(x * float32(len(opts)-1))
	if xi < 0 || xi >= len(opts) {
		return v, false
	}
	return opts[xi], true
}
