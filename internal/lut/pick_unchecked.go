//go:build uosc_unchecked

package lut

const checkedPick = false
