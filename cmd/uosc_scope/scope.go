package main

import (
	"image/color"
	"math"
	"math/cmplx"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

const (
	fftSize    = 2048
	ringBufLen = 65536
)

type analyzer struct {
	mu          sync.Mutex
	sampleRate  int
	ring        []float32 // mono ring buffer
	writePos    int
	totalTapped int64 // total mono samples written since last reset
}

func newAnalyzer(sampleRate int) *analyzer {
	return &analyzer{
		sampleRate: sampleRate,
		ring:       make([]float32, ringBufLen),
	}
}

// Tap is called from the audio thread. Keep it minimal: just copy into ring.
func (a *analyzer) Tap(samples []float32) {
	a.mu.Lock()
	for i := 0; i+1 < len(samples); i += 2 {
		a.ring[a.writePos] = (samples[i] + samples[i+1]) * 0.5
		a.writePos = (a.writePos + 1) % ringBufLen
		a.totalTapped++
	}
	a.mu.Unlock()
}

func (a *analyzer) Reset() {
	a.mu.Lock()
	a.totalTapped = 0
	a.mu.Unlock()
}

// Snapshot copies n samples aligned to what the listener actually hears.
// playbackPos is the audio driver's current output position in frames.
func (a *analyzer) Snapshot(n int, playbackPos int64) []float32 {
	n = min(n, ringBufLen)
	out := make([]float32, n)
	a.mu.Lock()
	delay := int(a.totalTapped - playbackPos)
	delay = max(0, min(delay, ringBufLen-n))
	start := (a.writePos - delay - n + ringBufLen*2) % ringBufLen
	for i := 0; i < n; i++ {
		out[i] = a.ring[(start+i)%ringBufLen]
	}
	a.mu.Unlock()
	return out
}

// fft computes a radix-2 FFT in-place.
func fft(x []complex128) {
	n := len(x)
	if n <= 1 {
		return
	}
	bits := 0
	for m := n; m > 1; m >>= 1 {
		bits++
	}
	for i := 0; i < n; i++ {
		j := 0
		for b := 0; b < bits; b++ {
			if i&(1<<b) != 0 {
				j |= 1 << (bits - 1 - b)
			}
		}
		if i < j {
			x[i], x[j] = x[j], x[i]
		}
	}
	for size := 2; size <= n; size <<= 1 {
		half := size / 2
		wn := -2.0 * math.Pi / float64(size)
		for start := 0; start < n; start += size {
			for k := 0; k < half; k++ {
				t := cmplx.Rect(1, wn*float64(k)) * x[start+k+half]
				x[start+k+half] = x[start+k] - t
				x[start+k] = x[start+k] + t
			}
		}
	}
}

// scope draws a triggered waveform above a log-frequency spectrum.
type scope struct {
	img      *ebiten.Image
	w, h     int
	specBins []float64
	wavePeak float64
}

func (s *scope) draw(samples []float32, width, height, sampleRate int) *ebiten.Image {
	if s.img == nil || s.w != width || s.h != height {
		s.w, s.h = width, height
		s.img = ebiten.NewImage(width, height)
	}
	s.img.Fill(color.RGBA{14, 16, 22, 255})

	waveH := int(float64(height) * 0.45)
	s.drawWaveform(samples, width, waveH)
	ebitenutil.DrawRect(s.img, 0, float64(waveH), float64(width), 1, color.RGBA{50, 54, 68, 180})
	specY := waveH + 1
	s.drawSpectrum(samples, width, height-specY, specY, sampleRate)
	return s.img
}

func (s *scope) drawWaveform(samples []float32, width, height int) {
	if len(samples) < 2 || width < 2 || height < 4 {
		return
	}
	midY := height / 2
	ebitenutil.DrawRect(s.img, 0, float64(midY), float64(width), 1, color.RGBA{40, 44, 58, 100})

	// Auto-gain: track peak with fast attack, slow release.
	var peak float64
	for _, v := range samples {
		peak = max(peak, math.Abs(float64(v)))
	}
	target := max(peak, 0.01)
	if target > s.wavePeak {
		s.wavePeak = s.wavePeak*0.3 + target*0.7
	} else {
		s.wavePeak = s.wavePeak*0.995 + target*0.005
	}
	s.wavePeak = max(s.wavePeak, 0.01)
	gain := float64(midY-2) / s.wavePeak

	// Show about 1024 samples from a rising zero crossing so the trace holds still.
	trigger := findZeroCrossing(samples, len(samples)/2)
	visible := max(2, min(1024, len(samples)-trigger))

	waveColor := color.RGBA{80, 200, 255, 220}
	prevY := midY - int(float64(samples[trigger])*gain)
	for px := 1; px < width; px++ {
		si := min(trigger+px*visible/width, len(samples)-1)
		y := midY - int(float64(samples[si])*gain)
		ebitenutil.DrawLine(s.img, float64(px-1), float64(prevY), float64(px), float64(y), waveColor)
		prevY = y
	}
}

// findZeroCrossing finds a rising zero-crossing in samples to stabilize the waveform display.
func findZeroCrossing(samples []float32, searchLen int) int {
	searchLen = min(searchLen, len(samples)-2)
	for i := 1; i < searchLen; i++ {
		if samples[i-1] <= 0 && samples[i] > 0 {
			return i
		}
	}
	return 0
}

func (s *scope) drawSpectrum(samples []float32, width, height, yOffset, sampleRate int) {
	if len(samples) < fftSize || width < 4 || height < 4 {
		return
	}
	buf := make([]complex128, fftSize)
	for i := 0; i < fftSize; i++ {
		w := 0.5 * (1.0 - math.Cos(2.0*math.Pi*float64(i)/float64(fftSize-1)))
		buf[i] = complex(float64(samples[len(samples)-fftSize+i])*w, 0)
	}
	fft(buf)

	numBars := max(16, min(256, width/3))
	if len(s.specBins) != numBars {
		s.specBins = make([]float64, numBars)
	}
	halfFFT := fftSize / 2
	maxBin := min(halfFFT, halfFFT*20000/(sampleRate/2))
	logMin, logMax := 0.0, math.Log(float64(maxBin))

	for i := 0; i < numBars; i++ {
		binStart := int(math.Exp(logMin + float64(i)/float64(numBars)*(logMax-logMin)))
		binEnd := int(math.Exp(logMin + float64(i+1)/float64(numBars)*(logMax-logMin)))
		binEnd = min(max(binEnd, binStart+1), halfFFT)

		sum := 0.0
		for b := binStart; b < binEnd; b++ {
			sum += cmplx.Abs(buf[b])
		}
		avg := sum / float64(binEnd-binStart)
		db := 20.0 * math.Log10(avg/float64(fftSize)+1e-10)
		norm := max(0, min(1, (db+80.0)/80.0))

		prev := s.specBins[i]
		if norm > prev {
			s.specBins[i] = prev*0.3 + norm*0.7
		} else {
			s.specBins[i] = prev*0.85 + norm*0.15
		}
	}

	barW := float64(width) / float64(numBars)
	for i, v := range s.specBins {
		barH := max(1, v*float64(height-4))
		x := float64(i) * barW
		y := float64(yOffset) + float64(height-2) - barH
		r, gr, b := spectrumColor(v)
		ebitenutil.DrawRect(s.img, x+1, y, barW-1, barH, color.RGBA{r, gr, b, 220})
	}
}

func spectrumColor(v float64) (uint8, uint8, uint8) {
	if v < 0.33 {
		t := v / 0.33
		return uint8(30 + 20*t), uint8(80 + 120*t), uint8(200 + 55*t)
	}
	if v < 0.66 {
		t := (v - 0.33) / 0.33
		return uint8(50 + 140*t), uint8(200 + 30*t), uint8(255 - 100*t)
	}
	t := (v - 0.66) / 0.34
	return uint8(190 + 65*t), uint8(230 - 100*t), uint8(155 - 100*t)
}
