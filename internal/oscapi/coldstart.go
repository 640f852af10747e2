package oscapi

// Image is the plugin's own memory image as the host loader leaves it: an
// uninitialized data region and the static initializers that would normally
// run before main. The host skips both, so the init trampoline does the work.
type Image struct {
	BSS       []byte
	InitArray []func()
}

// ColdStart zeroes every byte of the uninitialized region, then calls each
// non-nil static initializer in order.
func ColdStart(img *Image) {
	if img == nil {
		return
	}
	for i := range img.BSS {
		img.BSS[i] = 0
	}
	for _, fn := range img.InitArray {
		if fn != nil {
			fn()
		}
	}
}
