// Package dsp holds the numeric primitives shared by every oscillator: q31
// sample conversion, linear interpolation, and rounding that avoids the
// soft-float library routines.
package dsp

import "math"

const (
	SampleRate      = 48000
	SampleRateRecip = float32(2.0833333e-5)
)

// paramScale maps a 14-bit host parameter onto [0, 1].
const paramScale = 1.0 / 16383.0

const (
	q31Max   = float32(0x7fffffff)
	q31Recip = float32(1.0 / (1 << 31))
)

const signBit = 0x80000000

// ToQ31 converts a sample in [-1, 1) to the host's signed 32-bit fixed-point
// format, truncating toward zero. Callers clamp beforehand.
func ToQ31(x float32) int32 {
	return int32(x * q31Max)
}

// Q31ToF32 is the inverse of ToQ31.
func Q31ToF32(x int32) float32 {
	return float32(x) * q31Recip
}

// Lerp interpolates between x0 and x1. fr is not range-checked, so values
// outside [0, 1] extrapolate.
func Lerp(fr, x0, x1 float32) float32 {
	return x0 + fr*(x1-x0)
}

// CopySign returns the magnitude of x with the sign bit of y.
func CopySign(x, y float32) float32 {
	xi := math.Float32bits(x) &^ signBit
	xi |= math.Float32bits(y) & signBit
	return math.Float32frombits(xi)
}

// RoundToNearest rounds half away from zero.
func RoundToNearest(x float32) float32 {
	return float32(int32(x + CopySign(0.5, x)))
}

// ParamToUnit scales a host parameter value to roughly [0, 1].
func ParamToUnit(val uint16) float32 {
	return float32(float64(val) * paramScale)
}

// MaxSample is the largest float that ToQ31 converts without overflow.
const MaxSample = float32(0.99999994)

// ClampSample limits x to the range ToQ31 accepts.
func ClampSample(x float32) float32 {
	return Clamp(x, -1, MaxSample)
}

// Clamp limits x to [lo, hi].
func Clamp(x, lo, hi float32) float32 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
