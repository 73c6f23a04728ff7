// Package audio plays short synthesized cues for overlay interactions. All
// sounds are generated, not loaded from disk: each cue is a finite streamer
// the mixer drops as soon as it drains.
package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/scrimkit/scrim/internal/event"
	"github.com/scrimkit/scrim/internal/logging"
)

const sampleRate = beep.SampleRate(48000)

// Cue identifies one of the overlay's interaction sounds.
type Cue uint8

const (
	// CueOpen plays when an overlay becomes active.
	CueOpen Cue = iota
	// CueClose plays when an overlay is dismissed.
	CueClose
	// CueSelect plays when a list row is activated.
	CueSelect
	// CueError plays for error-severity notices.
	CueError
)

// String returns the cue name.
func (c Cue) String() string {
	switch c {
	case CueOpen:
		return "open"
	case CueClose:
		return "close"
	case CueSelect:
		return "select"
	case CueError:
		return "error"
	default:
		return "unknown"
	}
}

// Cues owns the mixer behind the speaker and synthesizes cues into it.
// Safe for concurrent use; events may arrive from any goroutine.
type Cues struct {
	log *logging.Logger

	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool
	enabled     bool
	volume      float64
	played      map[string]uint64
}

// NewCues creates the cue player. Nothing plays until Init succeeds.
func NewCues(log *logging.Logger) *Cues {
	if log == nil {
		log = logging.Discard
	}
	return &Cues{
		log:     log.WithComponent("audio"),
		mixer:   &beep.Mixer{},
		enabled: true,
		volume:  1.0,
		played:  make(map[string]uint64),
	}
}

// Init opens the speaker and starts streaming the mixer. If no audio device
// is available the player stays in silent mode; cues are dropped rather
// than surfaced as errors. Idempotent.
func (c *Cues) Init() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.initialized {
		return
	}
	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		c.log.Warn("audio unavailable, cues disabled: %v", err)
		return
	}
	speaker.Play(c.mixer)
	c.initialized = true
	c.log.Debug("speaker initialized at %d Hz", int(sampleRate))
}

// Attach subscribes the cue player to the event fabric: overlay lifecycle,
// row activations, and error notices each trigger their cue.
func (c *Cues) Attach(a *event.Adapter) {
	if a == nil {
		return
	}
	a.OnOverlayOpen(func(event.OverlayOpened) { c.Play(CueOpen) })
	a.OnOverlayClose(func(event.OverlayClosed) { c.Play(CueClose) })
	a.OnItemSelected(func(event.ItemSelected) { c.Play(CueSelect) })
	a.OnNotice(func(ev event.Notice) {
		if ev.Severity == event.SeverityError {
			c.Play(CueError)
		}
	})
}

// Play queues a cue on the mixer. Dropped silently when the speaker is not
// initialized, cues are muted, or the volume is zero.
func (c *Cues) Play(cue Cue) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.initialized || !c.enabled || c.volume <= 0 {
		return
	}

	s := c.streamerFor(cue)
	if s == nil {
		return
	}
	speaker.Lock()
	c.mixer.Add(s)
	speaker.Unlock()
	c.played[cue.String()]++
}

// streamerFor builds the finite generator for a cue at the current volume.
// Caller holds c.mu.
func (c *Cues) streamerFor(cue Cue) beep.Streamer {
	const baseGain = 0.25
	gain := baseGain * c.volume

	switch cue {
	case CueOpen:
		return newTone(sampleRate, 520, 740, gain, 120*time.Millisecond)
	case CueClose:
		return newTone(sampleRate, 740, 460, gain, 120*time.Millisecond)
	case CueSelect:
		return newTone(sampleRate, 880, 880, 0.8*gain, 45*time.Millisecond)
	case CueError:
		return newBuzz(sampleRate, 110, gain, 180*time.Millisecond)
	default:
		return nil
	}
}

// SetVolume sets the cue volume, clamped to [0, 1]. Applies to cues queued
// after the call.
func (c *Cues) SetVolume(v float64) {
	if v < 0 {
		v = 0
	}
	if v > 1 {
		v = 1
	}
	c.mu.Lock()
	c.volume = v
	c.mu.Unlock()
}

// Volume returns the current cue volume.
func (c *Cues) Volume() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.volume
}

// SetEnabled turns cue playback on or off.
func (c *Cues) SetEnabled(enabled bool) {
	c.mu.Lock()
	c.enabled = enabled
	c.mu.Unlock()
}

// Enabled reports whether cue playback is on.
func (c *Cues) Enabled() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.enabled
}

// ToggleMute flips cue playback and reports whether cues are now audible.
func (c *Cues) ToggleMute() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.enabled = !c.enabled
	return c.enabled
}

// Stats returns how many times each cue has been queued.
func (c *Cues) Stats() map[string]uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make(map[string]uint64, len(c.played))
	for k, v := range c.played {
		out[k] = v
	}
	return out
}

// Close drops all queued cues and returns to silent mode. The speaker
// itself stays open; beep provides no way to close it. Idempotent.
func (c *Cues) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.initialized {
		return
	}
	speaker.Lock()
	c.mixer.Clear()
	speaker.Unlock()
	c.initialized = false
	c.log.Debug("audio cues closed")
}
