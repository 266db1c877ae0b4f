// Package beepout plays tracks on the system speaker through beep. Only the
// terminal host links it, so headless builds need no sound device.
package beepout

import (
	"fmt"
	"math"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/mp3"
	"github.com/gopxl/beep/speaker"

	"snowfall/internal/audio"
)

const sampleRate = beep.SampleRate(44100)

// Backend implements audio.Backend on the beep speaker.
type Backend struct {
	mu       sync.Mutex
	stream   beep.StreamSeekCloser
	ctrl     *beep.Ctrl
	volume   *effects.Volume
	gain     float64
	finished atomic.Bool
}

// New initialises the speaker.
func New() (*Backend, error) {
	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return nil, fmt.Errorf("failed to init speaker: %w", err)
	}
	return &Backend{gain: 1}, nil
}

// Load decodes t and queues it paused.
func (b *Backend) Load(t audio.Track) error {
	f, err := os.Open(t.Path)
	if err != nil {
		return fmt.Errorf("failed to open track: %w", err)
	}
	stream, format, err := mp3.Decode(f)
	if err != nil {
		f.Close()
		return fmt.Errorf("failed to decode track: %w", err)
	}

	var source beep.Streamer = stream
	if format.SampleRate != sampleRate {
		source = beep.Resample(4, format.SampleRate, sampleRate, stream)
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.releaseLocked()
	b.finished.Store(false)
	done := beep.Callback(func() { b.finished.Store(true) })
	b.stream = stream
	b.ctrl = &beep.Ctrl{Streamer: beep.Seq(source, done), Paused: true}
	b.volume = &effects.Volume{Streamer: b.ctrl, Base: 2}
	applyGain(b.volume, b.gain)
	speaker.Play(b.volume)
	return nil
}

func (b *Backend) setPaused(paused bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.ctrl == nil {
		return
	}
	speaker.Lock()
	b.ctrl.Paused = paused
	speaker.Unlock()
}

// Play resumes the loaded track.
func (b *Backend) Play() { b.setPaused(false) }

// Pause holds the loaded track at its position.
func (b *Backend) Pause() { b.setPaused(true) }

// SetVolume maps a linear gain onto beep's logarithmic volume.
func (b *Backend) SetVolume(v float64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.gain = v
	if b.volume == nil {
		return
	}
	speaker.Lock()
	applyGain(b.volume, v)
	speaker.Unlock()
}

func applyGain(vol *effects.Volume, v float64) {
	if v <= 0 {
		vol.Silent = true
		return
	}
	vol.Silent = false
	vol.Volume = math.Log2(math.Min(v, 1))
}

// Finished reports whether the loaded track reached its end.
func (b *Backend) Finished() bool { return b.finished.Load() }

// Close stops playback and releases the decoder.
func (b *Backend) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.releaseLocked()
	return nil
}

func (b *Backend) releaseLocked() {
	speaker.Clear()
	if b.stream != nil {
		b.stream.Close()
	}
	b.stream = nil
	b.ctrl = nil
	b.volume = nil
}
