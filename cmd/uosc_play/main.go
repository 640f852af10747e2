package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/cbegin/uosc-go"
	"github.com/cbegin/uosc-go/internal/config"
	"github.com/cbegin/uosc-go/internal/lfo"
	"github.com/cbegin/uosc-go/internal/modem"
	"github.com/cbegin/uosc-go/internal/oscapi"
)

func main() {
	var (
		variantName  = flag.String("variant", "wavetable", "oscillator: "+variantList())
		platformName = flag.String("platform", "", "host platform: prologue|minilogue-xd|nutekt-digital (default: variant's own)")
		backendName  = flag.String("backend", "ebiten", "audio backend: ebiten|oto")
		note         = flag.Uint("note", 60, "MIDI note")
		mod          = flag.Uint("mod", 0, "fine pitch modulation (0-255)")
		shape        = flag.Uint("shape", 0, "shape knob (0-16383)")
		shiftShape   = flag.Uint("shift-shape", 0, "shift-shape knob (0-16383)")
		volume       = flag.Float64("volume", 0.5, "master volume scalar")
		message      = flag.String("message", string(modem.DefaultMessage), "bytes the modem variant transmits")
		bell202      = flag.Bool("bell202", false, "modem variant uses Bell 202 tones instead of Bell 103")
		lfoDepth     = flag.Float64("lfo-depth", 0, "shape LFO depth (0-1)")
		lfoRate      = flag.Float64("lfo-rate", 0.5, "shape LFO rate in Hz")
		lfoWave      = flag.String("lfo-wave", "triangle", "shape LFO waveform: saw|square|triangle|random")
		configPath   = flag.String("config", "", "JSON config file; overrides flags and is created if missing")
		watch        = flag.Bool("watch", false, "reload -config when it changes")
		duration     = flag.Duration("duration", 0, "stop after this long (0 = until interrupted)")
	)
	flag.Parse()

	var cfg *config.Config
	if *configPath != "" {
		c, err := config.Read(*configPath)
		if err != nil {
			log.Fatal(err)
		}
		cfg = c
		*variantName = orDefault(c.Variant, *variantName)
		*platformName = orDefault(c.Platform, *platformName)
		*backendName = orDefault(c.Backend, *backendName)
		*message = orDefault(c.Message, *message)
		*watch = *watch || c.WatchConfig
	}

	backend, err := uosc.ParseBackend(*backendName)
	if err != nil {
		log.Fatal(err)
	}
	profile := modem.Bell103
	if *bell202 {
		profile = modem.Bell202
	}
	opts := []uosc.PlayerOption{
		uosc.WithVariant(uosc.VariantName(*variantName)),
		uosc.WithBackend(backend),
		uosc.WithRuntimeOptions(uosc.WithMessage([]byte(*message)), uosc.WithProfile(profile)),
	}
	if *platformName != "" {
		platform, err := oscapi.ParsePlatform(*platformName)
		if err != nil {
			log.Fatal(err)
		}
		opts = append(opts, uosc.WithPlatform(platform))
	}
	pl, err := uosc.NewPlayer(opts...)
	if err != nil {
		log.Fatal(err)
	}

	if cfg != nil {
		if err := pl.ApplyConfig(cfg); err != nil {
			log.Fatal(err)
		}
	} else {
		wave, err := lfo.ParseWaveform(*lfoWave)
		if err != nil {
			log.Fatal(err)
		}
		pl.SetPitch(uint8(*note), uint8(*mod))
		pl.SetParam(oscapi.ParamShape, uint16(*shape))
		pl.SetParam(oscapi.ParamShiftShape, uint16(*shiftShape))
		pl.SetLFO(float32(*lfoDepth), float32(*lfoRate), wave)
		pl.SetMasterVolume(*volume)
	}
	pl.NoteOn()

	if err := pl.Start(); err != nil {
		log.Fatal(err)
	}
	fmt.Printf("playing %s via %s\n", pl.Variant(), backend)

	configs := make(chan *config.Config)
	errs := make(chan error)
	done := make(chan struct{})
	if *watch && *configPath != "" {
		if err := config.Watch(*configPath, configs, errs, done); err != nil {
			log.Fatal(err)
		}
		fmt.Printf("watching %s\n", *configPath)
	}

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)
	var timeout <-chan time.Time
	if *duration > 0 {
		timeout = time.After(*duration)
	}

loop:
	for {
		select {
		case c := <-configs:
			if err := pl.ApplyConfig(c); err != nil {
				log.Println(err)
			}
			fmt.Println("new conf")
		case err := <-errs:
			log.Println(err)
		case <-interrupt:
			break loop
		case <-timeout:
			break loop
		}
	}
	close(done)
	pl.NoteOff()
	if err := pl.Stop(); err != nil {
		log.Fatal(err)
	}
	fmt.Println("playback stopped")
}

func orDefault(v, def string) string {
	if strings.TrimSpace(v) != "" {
		return v
	}
	return def
}

func variantList() string {
	var names []string
	for _, n := range uosc.Variants() {
		names = append(names, string(n))
	}
	return strings.Join(names, "|")
}
