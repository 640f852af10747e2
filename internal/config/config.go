// Package config reads the live preview settings from a JSON file and
// reloads them when the file changes.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/cbegin/uosc-go/internal/lfo"
	"github.com/cbegin/uosc-go/internal/oscapi"
)

const DefaultConfig = `{
	"variant": "wavetable",
	"platform": "minilogue-xd",
	"backend": "ebiten",
	"note": 60,
	"mod": 0,
	"volume": 0.5,
	"watchConfig": true,
	"params": {
		"shape": 0,
		"shift-shape": 0
	},
	"lfo": {
		"depth": 0,
		"rateHz": 0.5,
		"wave": "triangle"
	},
	"message": "Hello, world!"
}
`

type LFOConfig struct {
	Depth  float32 `json:"depth"`
	RateHz float32 `json:"rateHz"`
	Wave   string  `json:"wave"`
}

type Config struct {
	Variant     string            `json:"variant"`
	Platform    string            `json:"platform"`
	Backend     string            `json:"backend"`
	Note        uint8             `json:"note"`
	Mod         uint8             `json:"mod"`
	Volume      float64           `json:"volume"`
	WatchConfig bool              `json:"watchConfig"`
	Params      map[string]uint16 `json:"params"`
	LFO         LFOConfig         `json:"lfo"`
	Message     string            `json:"message"`
}

// ParamValue is one decoded entry of Config.Params.
type ParamValue struct {
	Param oscapi.Param
	Value uint16
}

// Decode parses and validates a JSON document.
func Decode(data []byte) (*Config, error) {
	var c Config
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("unmarshalling: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Read loads the config at p, writing DefaultConfig there first if the file
// does not exist.
func Read(p string) (*Config, error) {
	if _, err := os.Stat(p); errors.Is(err, os.ErrNotExist) {
		if err := os.WriteFile(p, []byte(DefaultConfig), 0o644); err != nil {
			return nil, fmt.Errorf("can't write default config: %w", err)
		}
	}
	data, err := os.ReadFile(p)
	if err != nil {
		return nil, fmt.Errorf("can't read config: %w", err)
	}
	return Decode(data)
}

// Validate checks the enumerated fields. Variant names are checked by the
// registry that resolves them.
func (c *Config) Validate() error {
	if c.Platform != "" {
		if _, err := oscapi.ParsePlatform(c.Platform); err != nil {
			return err
		}
	}
	switch c.Backend {
	case "", "ebiten", "oto":
	default:
		return fmt.Errorf("invalid backend %q (expected ebiten|oto)", c.Backend)
	}
	if c.Volume < 0 {
		return fmt.Errorf("invalid volume %v", c.Volume)
	}
	for name := range c.Params {
		if _, ok := oscapi.ParseParam(name); !ok {
			return fmt.Errorf("unknown param %q", name)
		}
	}
	if _, err := lfo.ParseWaveform(c.LFO.Wave); err != nil {
		return err
	}
	return nil
}

// ParamValues returns the params in index order.
func (c *Config) ParamValues() []ParamValue {
	var out []ParamValue
	for p := oscapi.Param1; p <= oscapi.ParamShiftShape; p++ {
		if v, ok := c.Params[p.String()]; ok {
			out = append(out, ParamValue{Param: p, Value: v})
		}
	}
	return out
}

// Waveform returns the validated LFO waveform.
func (c *Config) Waveform() lfo.Waveform {
	w, err := lfo.ParseWaveform(c.LFO.Wave)
	if err != nil {
		return lfo.WaveTriangle
	}
	return w
}
