// Package uosc runs the user oscillators outside the host: a registry of
// the built variants, a live preview player, and an offline renderer.
package uosc

import (
	"fmt"
	"sort"

	"github.com/cbegin/uosc-go/internal/lut"
	"github.com/cbegin/uosc-go/internal/modem"
	"github.com/cbegin/uosc-go/internal/noise"
	"github.com/cbegin/uosc-go/internal/oscapi"
)

// bssSize is the minimum uninitialized region handed to each runtime's cold
// start. Static buffers such as the modem message live there.
const bssSize = 1024

type VariantName string

const (
	VariantWavetable VariantName = "wavetable"
	VariantWhite     VariantName = "white"
	VariantModem     VariantName = "modem"
)

type variantSpec struct {
	platform oscapi.Platform
	build    func(t *lut.Tables, bss []byte, cfg *runtimeConfig) oscapi.Factory
}

var variants = map[VariantName]variantSpec{
	VariantWavetable: {
		platform: oscapi.MinilogueXD,
		build: func(t *lut.Tables, _ []byte, _ *runtimeConfig) oscapi.Factory {
			return noise.WavetableFactory(t)
		},
	},
	VariantWhite: {
		platform: oscapi.MinilogueXD,
		build: func(t *lut.Tables, _ []byte, _ *runtimeConfig) oscapi.Factory {
			return noise.WhiteFactory(t)
		},
	},
	VariantModem: {
		platform: oscapi.MinilogueXD,
		build: func(t *lut.Tables, bss []byte, cfg *runtimeConfig) oscapi.Factory {
			// The message is copied into the zeroed region after cold start,
			// so the transmission never aliases the caller's slice.
			msg := bss[:copy(bss, cfg.message)]
			return modem.Factory(t, cfg.profile, msg)
		},
	},
}

// Variants lists the registered variant names in sorted order.
func Variants() []VariantName {
	names := make([]VariantName, 0, len(variants))
	for n := range variants {
		names = append(names, n)
	}
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })
	return names
}

// LookupVariant returns the default platform of a registered variant.
func LookupVariant(name VariantName) (oscapi.Platform, error) {
	vs, ok := variants[name]
	if !ok {
		return 0, fmt.Errorf("unknown variant %q", name)
	}
	return vs.platform, nil
}

type RuntimeOption func(*runtimeConfig)

type runtimeConfig struct {
	platform oscapi.Platform
	message  []byte
	profile  modem.Profile
}

func defaultRuntimeConfig() runtimeConfig {
	return runtimeConfig{message: modem.DefaultMessage, profile: modem.Bell103}
}

// WithRuntimePlatform overrides the variant's default platform.
func WithRuntimePlatform(p oscapi.Platform) RuntimeOption {
	return func(cfg *runtimeConfig) {
		cfg.platform = p
	}
}

// WithMessage sets the bytes the modem variant transmits.
func WithMessage(message []byte) RuntimeOption {
	return func(cfg *runtimeConfig) {
		cfg.message = message
	}
}

// WithProfile sets the modem variant's FSK profile.
func WithProfile(p modem.Profile) RuntimeOption {
	return func(cfg *runtimeConfig) {
		cfg.profile = p
	}
}

// NewRuntime builds an uninitialized runtime for a registered variant. The
// host table image is bound by the image's static initializer, so the
// factory only sees it after cold start.
func NewRuntime(name VariantName, opts ...RuntimeOption) (*oscapi.Runtime, error) {
	vs, ok := variants[name]
	if !ok {
		return nil, fmt.Errorf("unknown variant %q", name)
	}
	cfg := defaultRuntimeConfig()
	cfg.platform = vs.platform
	for _, opt := range opts {
		opt(&cfg)
	}
	if !cfg.platform.Valid() {
		return nil, fmt.Errorf("%w: %d", oscapi.ErrUnknownPlatform, cfg.platform)
	}

	var tables *lut.Tables
	img := &oscapi.Image{
		BSS: make([]byte, max(bssSize, len(cfg.message))),
		InitArray: []func(){
			func() { tables = lut.Builtin() },
		},
	}
	v := oscapi.Variant{
		Name:     string(name),
		Platform: cfg.platform,
		New: func(p oscapi.Platform, api uint32) oscapi.Oscillator {
			return vs.build(tables, img.BSS, &cfg)(p, api)
		},
	}
	return oscapi.NewRuntime(v, img), nil
}

// Boot builds a runtime and runs the host's init call on it.
func Boot(name VariantName, opts ...RuntimeOption) (*oscapi.Runtime, error) {
	rt, err := NewRuntime(name, opts...)
	if err != nil {
		return nil, err
	}
	rt.Init(uint32(rt.Variant().Platform), oscapi.APIVersion)
	return rt, nil
}
