package main

import (
	"flag"
	"fmt"
	"image"
	"log"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/cbegin/uosc-go"
	"github.com/cbegin/uosc-go/internal/dsp"
	"github.com/cbegin/uosc-go/internal/lfo"
	"github.com/cbegin/uosc-go/internal/oscapi"
)

const (
	windowW    = 1000
	windowH    = 760
	minWindowW = 900
	minWindowH = 700
)

var noteNames = [...]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

type game struct {
	painter
	player   *uosc.Player
	backend  uosc.Backend
	analyzer *analyzer
	scope    scope

	variants   []uosc.VariantName
	variantIdx int
	lfoWave    lfo.Waveform

	sliders  []*slider
	dragging int // slider index, -1 when idle

	playing bool
	paused  bool

	status    string
	statusErr bool

	viewW int
	viewH int
}

func newGame(variant uosc.VariantName, backend uosc.Backend) (*game, error) {
	g := &game{
		painter:  painter{textCache: make(map[string]*ebiten.Image, 1024)},
		backend:  backend,
		analyzer: newAnalyzer(dsp.SampleRate),
		variants: uosc.Variants(),
		lfoWave:  lfo.WaveTriangle,
		dragging: -1,
		status:   "Ready",
		viewW:    windowW,
		viewH:    windowH,
	}
	for i, v := range g.variants {
		if v == variant {
			g.variantIdx = i
		}
	}
	g.sliders = []*slider{
		{name: "note", lo: 0, hi: 127, value: 60, label: noteLabel, apply: func(float64) { g.applyPitch() }},
		{name: "mod", lo: 0, hi: 255, value: 0, label: func(v float64) string { return fmt.Sprintf("Fine %d", int(v)) }, apply: func(float64) { g.applyPitch() }},
		{name: "shape", lo: 0, hi: 16383, value: 0, label: knobLabel("Shape"), apply: func(v float64) { g.player.SetParam(oscapi.ParamShape, uint16(v)) }},
		{name: "shift-shape", lo: 0, hi: 16383, value: 0, label: knobLabel("Crush"), apply: func(v float64) { g.player.SetParam(oscapi.ParamShiftShape, uint16(v)) }},
		{name: "lfo-depth", lo: 0, hi: 1, value: 0, label: percentLabel("LFO depth"), apply: func(float64) { g.applyLFO() }},
		{name: "lfo-rate", lo: 0, hi: 1, value: 0.3, label: func(v float64) string { return fmt.Sprintf("LFO %.2f Hz", lfoRate(v)) }, apply: func(float64) { g.applyLFO() }},
		{name: "volume", lo: 0, hi: 1, value: 0.5, label: percentLabel("Vol"), apply: func(v float64) { g.player.SetMasterVolume(v) }},
	}
	if err := g.rebuildPlayer(); err != nil {
		return nil, err
	}
	return g, nil
}

func noteLabel(v float64) string {
	n := int(v)
	return fmt.Sprintf("Note %s%d (%d)", noteNames[n%12], n/12-1, n)
}

func knobLabel(name string) func(float64) string {
	return func(v float64) string { return fmt.Sprintf("%s %d", name, int(v)) }
}

func percentLabel(name string) func(float64) string {
	return func(v float64) string { return fmt.Sprintf("%s %d%%", name, int(v*100+0.5)) }
}

// lfoRate maps the slider's [0, 1] onto 0.05..20 Hz exponentially.
func lfoRate(v float64) float64 {
	return 0.05 * math.Pow(400, v)
}

func (g *game) slider(name string) *slider {
	for _, s := range g.sliders {
		if s.name == name {
			return s
		}
	}
	panic("no slider " + name)
}

func (g *game) applyPitch() {
	g.player.SetPitch(uint8(g.slider("note").value), uint8(g.slider("mod").value))
}

func (g *game) applyLFO() {
	g.player.SetLFO(float32(g.slider("lfo-depth").value), float32(lfoRate(g.slider("lfo-rate").value)), g.lfoWave)
}

// rebuildPlayer boots the selected variant and replays every control onto it.
func (g *game) rebuildPlayer() error {
	wasPlaying := g.playing && !g.paused
	if g.player != nil {
		_ = g.player.Stop()
	}
	pl, err := uosc.NewPlayer(
		uosc.WithVariant(g.variants[g.variantIdx]),
		uosc.WithBackend(g.backend),
		uosc.WithSampleTap(g.analyzer.Tap),
	)
	if err != nil {
		return err
	}
	g.player = pl
	for _, s := range g.sliders {
		s.apply(s.value)
	}
	g.player.NoteOn()
	g.analyzer.Reset()
	g.playing, g.paused = false, false
	if wasPlaying {
		g.togglePlayPause()
	}
	return nil
}

func (g *game) Update() error {
	mx, my := ebiten.CursorPosition()
	l := g.layoutRects()

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		switch {
		case pointInRect(mx, my, l.play):
			g.togglePlayPause()
		case pointInRect(mx, my, l.variant):
			g.cycleVariant()
		case pointInRect(mx, my, l.wave):
			g.lfoWave = (g.lfoWave + 1) % (lfo.WaveRandom + 1)
			g.applyLFO()
		case pointInRect(mx, my, l.retrigger):
			g.player.NoteOn()
			g.setStatus("Note on")
		}
		for i, r := range l.sliders {
			if pointInRect(mx, my, sliderTrack(r)) {
				g.dragging = i
			}
		}
	}
	if !ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		g.dragging = -1
	}
	if g.dragging >= 0 {
		g.sliders[g.dragging].setFromMouse(mx, sliderTrack(l.sliders[g.dragging]))
	}
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	screen.Fill(bgColor)
	l := g.layoutRects()

	g.drawSunkenPanel(screen, l.scope)
	inner := image.Rect(l.scope.Min.X+8, l.scope.Min.Y+8, l.scope.Max.X-8, l.scope.Max.Y-8)
	if inner.Dx() > 0 && inner.Dy() > 0 {
		snap := g.analyzer.Snapshot(fftSize, g.player.PlaybackPosition())
		img := g.scope.draw(snap, inner.Dx(), inner.Dy(), dsp.SampleRate)
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(float64(inner.Min.X), float64(inner.Min.Y))
		screen.DrawImage(img, op)
	}

	g.drawButton(screen, l.play, g.playButtonLabel())
	g.drawButton(screen, l.variant, string(g.variants[g.variantIdx]))
	g.drawButton(screen, l.wave, "LFO "+g.lfoWave.String())
	g.drawButton(screen, l.retrigger, "Note on")
	for i, r := range l.sliders {
		g.drawSlider(screen, r, g.sliders[i])
	}

	g.drawSunkenPanel(screen, l.status)
	msg := "Status: " + g.status
	if g.statusErr {
		msg = "Status: ERROR - " + g.status
	}
	g.drawText(screen, shortenEnd(msg, max(8, (l.status.Dx()-16)/charW)), l.status.Min.X+8, l.status.Min.Y+6)
}

func (g *game) Layout(outsideW, outsideH int) (int, int) {
	g.viewW = max(outsideW, minWindowW)
	g.viewH = max(outsideH, minWindowH)
	return g.viewW, g.viewH
}

type uiLayout struct {
	scope, status                  image.Rectangle
	play, variant, wave, retrigger image.Rectangle
	sliders                        []image.Rectangle
}

func (g *game) layoutRects() uiLayout {
	w, h := max(g.viewW, minWindowW), max(g.viewH, minWindowH)
	pad, rowH, statusH := 20, 40, 40

	statusTop := h - pad - statusH
	slidersTop := statusTop - 8 - len(g.sliders)*(rowH+6)
	buttonsTop := slidersTop - 8 - rowH

	var l uiLayout
	l.scope = image.Rect(pad, pad, w-pad, buttonsTop-12)
	bw := (w - 2*pad - 3*12) / 4
	for i, r := range []*image.Rectangle{&l.play, &l.variant, &l.wave, &l.retrigger} {
		x := pad + i*(bw+12)
		*r = image.Rect(x, buttonsTop, x+bw, buttonsTop+rowH)
	}
	for i := range g.sliders {
		y := slidersTop + i*(rowH+6)
		l.sliders = append(l.sliders, image.Rect(pad, y, w-pad, y+rowH))
	}
	l.status = image.Rect(pad, statusTop, w-pad, statusTop+statusH)
	return l
}

func (g *game) cycleVariant() {
	g.variantIdx = (g.variantIdx + 1) % len(g.variants)
	if err := g.rebuildPlayer(); err != nil {
		g.setError(err.Error())
		return
	}
	g.setStatus("Variant " + string(g.variants[g.variantIdx]))
}

func (g *game) togglePlayPause() {
	switch {
	case !g.playing:
		if err := g.player.Start(); err != nil {
			g.setError(err.Error())
			return
		}
		g.playing = true
		g.setStatus("Playing")
	case g.paused:
		g.player.Resume()
		g.paused = false
		g.setStatus("Playing")
	default:
		g.player.Pause()
		g.paused = true
		g.setStatus("Paused")
	}
}

func (g *game) playButtonLabel() string {
	if !g.playing {
		return "Play"
	}
	if g.paused {
		return "Resume"
	}
	return "Pause"
}

func (g *game) setError(msg string) {
	g.status = msg
	g.statusErr = true
}

func (g *game) setStatus(msg string) {
	g.status = msg
	g.statusErr = false
}

func (g *game) Close() { _ = g.player.Stop() }

func main() {
	var (
		variantName = flag.String("variant", "wavetable", "initial oscillator")
		backendName = flag.String("backend", "ebiten", "audio backend: ebiten|oto")
	)
	flag.Parse()

	backend, err := uosc.ParseBackend(*backendName)
	if err != nil {
		log.Fatal(err)
	}
	if _, err := uosc.LookupVariant(uosc.VariantName(*variantName)); err != nil {
		log.Fatal(err)
	}
	g, err := newGame(uosc.VariantName(*variantName), backend)
	if err != nil {
		log.Fatal(err)
	}
	defer g.Close()

	ebiten.SetWindowSize(windowW, windowH)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSizeLimits(minWindowW, minWindowH, -1, -1)
	ebiten.SetWindowTitle("uosc-go scope")
	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
}
