package noise

import (
	"github.com/cbegin/uosc-go/internal/dsp"
	"github.com/cbegin/uosc-go/internal/lut"
)

// crushScale maps the shift-shape knob onto the usable part of the bit-crush
// curve.
const crushScale = 0.1

// crusher caches the quantization resolution and its reciprocal so the
// per-sample path multiplies instead of dividing.
type crusher struct {
	amount   float32
	res      float32
	resRecip float32
}

func newCrusher() crusher {
	return crusher{res: 1, resRecip: 1}
}

func (c *crusher) set(t *lut.Tables, value uint16) {
	c.amount = dsp.Clamp(dsp.ParamToUnit(value)*crushScale, 0, 1)
	c.res = t.BitRes(c.amount)
	c.resRecip = 1 / c.res
}

func (c *crusher) apply(sig float32) float32 {
	return dsp.RoundToNearest(sig*c.res) * c.resRecip
}
