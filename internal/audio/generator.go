package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
)

// envelope shapes a cue over its normalized progress: a short linear attack
// into a cosine release, so neither edge clicks.
func envelope(progress float64) float64 {
	const attack = 0.08
	if progress < 0 {
		return 0
	}
	if progress < attack {
		return progress / attack
	}
	if progress >= 1 {
		return 0
	}
	release := (progress - attack) / (1 - attack)
	return 0.5 * (1 + math.Cos(math.Pi*release))
}

// tone is a finite sine cue with a linear pitch glide between startHz and
// endHz. Drains after its configured duration.
type tone struct {
	sr      beep.SampleRate
	startHz float64
	endHz   float64
	gain    float64
	pos     int
	samples int
}

func newTone(sr beep.SampleRate, startHz, endHz, gain float64, d time.Duration) *tone {
	return &tone{
		sr:      sr,
		startHz: startHz,
		endHz:   endHz,
		gain:    gain,
		samples: sr.N(d),
	}
}

func (g *tone) Stream(samples [][2]float64) (int, bool) {
	if g.pos >= g.samples {
		return 0, false
	}
	n := 0
	for i := range samples {
		if g.pos >= g.samples {
			break
		}
		progress := float64(g.pos) / float64(g.samples)
		freq := g.startHz + (g.endHz-g.startHz)*progress
		t := float64(g.pos) / float64(g.sr)

		s := g.gain * envelope(progress) * math.Sin(2*math.Pi*freq*t)
		samples[i][0] = s
		samples[i][1] = s
		g.pos++
		n++
	}
	return n, true
}

func (g *tone) Err() error { return nil }

// buzz is a finite harsh cue: a fundamental with two decaying harmonics,
// normalized so the peak never exceeds gain.
type buzz struct {
	sr      beep.SampleRate
	freq    float64
	gain    float64
	pos     int
	samples int
}

func newBuzz(sr beep.SampleRate, freq, gain float64, d time.Duration) *buzz {
	return &buzz{
		sr:      sr,
		freq:    freq,
		gain:    gain,
		samples: sr.N(d),
	}
}

func (g *buzz) Stream(samples [][2]float64) (int, bool) {
	if g.pos >= g.samples {
		return 0, false
	}
	n := 0
	for i := range samples {
		if g.pos >= g.samples {
			break
		}
		progress := float64(g.pos) / float64(g.samples)
		t := float64(g.pos) / float64(g.sr)

		s := math.Sin(2 * math.Pi * g.freq * t)
		s += 0.5 * math.Sin(2*math.Pi*g.freq*2*t)
		s += 0.25 * math.Sin(2*math.Pi*g.freq*3*t)
		s *= g.gain * envelope(progress) / 1.75

		samples[i][0] = s
		samples[i][1] = s
		g.pos++
		n++
	}
	return n, true
}

func (g *buzz) Err() error { return nil }
