package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/cbegin/uosc-go"
	"github.com/cbegin/uosc-go/internal/modem"
	"github.com/cbegin/uosc-go/internal/oscapi"
)

func main() {
	var (
		variantName  = flag.String("variant", "modem", "oscillator: modem|wavetable|white")
		platformName = flag.String("platform", "", "host platform: prologue|minilogue-xd|nutekt-digital (default: variant's own)")
		note         = flag.Uint("note", 60, "MIDI note")
		mod          = flag.Uint("mod", 0, "fine pitch modulation (0-255)")
		shape        = flag.Uint("shape", 0, "shape knob (0-16383)")
		shiftShape   = flag.Uint("shift-shape", 0, "shift-shape knob (0-16383)")
		seconds      = flag.Float64("seconds", 2, "render length in seconds")
		message      = flag.String("message", string(modem.DefaultMessage), "bytes the modem variant transmits")
		bell202      = flag.Bool("bell202", false, "modem variant uses Bell 202 tones instead of Bell 103")
		outPath      = flag.String("out", "out.wav", "output WAV path")
	)
	flag.Parse()

	profile := modem.Bell103
	if *bell202 {
		profile = modem.Bell202
	}
	opts := []uosc.RuntimeOption{uosc.WithMessage([]byte(*message)), uosc.WithProfile(profile)}
	if *platformName != "" {
		platform, err := oscapi.ParsePlatform(*platformName)
		if err != nil {
			log.Fatal(err)
		}
		opts = append(opts, uosc.WithRuntimePlatform(platform))
	}

	samples, err := uosc.Render(uosc.RenderRequest{
		Variant: uosc.VariantName(*variantName),
		Note:    uint8(*note),
		Mod:     uint8(*mod),
		Params: map[oscapi.Param]uint16{
			oscapi.ParamShape:      uint16(*shape),
			oscapi.ParamShiftShape: uint16(*shiftShape),
		},
		Seconds: *seconds,
		Options: opts,
	})
	if err != nil {
		log.Fatal(err)
	}

	f, err := os.Create(*outPath)
	if err != nil {
		log.Fatal(err)
	}
	if err := uosc.EncodeWAV(f, samples); err != nil {
		f.Close()
		log.Fatal(err)
	}
	if err := f.Close(); err != nil {
		log.Fatal(err)
	}
	fmt.Printf("wrote %d samples of %s to %s\n", len(samples), *variantName, *outPath)
}
