//go:build ebiten

package audio

import (
	"bytes"
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/mp3"
)

const ebitenSampleRate = 44100

// EbitenBackend plays tracks through ebiten's audio context.
type EbitenBackend struct {
	ctx     *audio.Context
	player  *audio.Player
	gain    float64
	wantsOn bool
}

// NewEbitenBackend reuses the process-wide audio context, creating it when needed.
func NewEbitenBackend() *EbitenBackend {
	ctx := audio.CurrentContext()
	if ctx == nil {
		ctx = audio.NewContext(ebitenSampleRate)
	}
	return &EbitenBackend{ctx: ctx, gain: 1}
}

// Load decodes the whole file and prepares a paused player.
func (b *EbitenBackend) Load(t Track) error {
	data, err := os.ReadFile(t.Path)
	if err != nil {
		return fmt.Errorf("failed to read track: %w", err)
	}
	stream, err := mp3.DecodeWithSampleRate(b.ctx.SampleRate(), bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("failed to decode track: %w", err)
	}
	player, err := b.ctx.NewPlayer(stream)
	if err != nil {
		return fmt.Errorf("failed to create player: %w", err)
	}
	b.release()
	player.SetVolume(b.gain)
	b.player = player
	b.wantsOn = false
	return nil
}

// Play starts or resumes the loaded track.
func (b *EbitenBackend) Play() {
	if b.player == nil {
		return
	}
	b.player.Play()
	b.wantsOn = true
}

// Pause holds the loaded track.
func (b *EbitenBackend) Pause() {
	if b.player == nil {
		return
	}
	b.player.Pause()
	b.wantsOn = false
}

// SetVolume sets the linear gain.
func (b *EbitenBackend) SetVolume(v float64) {
	b.gain = v
	if b.player != nil {
		b.player.SetVolume(v)
	}
}

// Finished reports a track that stopped on its own while meant to be playing.
func (b *EbitenBackend) Finished() bool {
	return b.player != nil && b.wantsOn && !b.player.IsPlaying()
}

// Close releases the current player.
func (b *EbitenBackend) Close() error {
	b.release()
	return nil
}

func (b *EbitenBackend) release() {
	if b.player == nil {
		return
	}
	b.player.Pause()
	b.player.Close()
	b.player = nil
}
