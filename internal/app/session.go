package app

import (
	"errors"
	"time"

	"snowfall/internal/audio"
	"snowfall/internal/core"
)

// Action is a host-independent user command.
type Action uint8

const (
	ActionNone Action = iota
	ActionQuit
	ActionPause
	ActionStep
	ActionReset
	ActionReseed
	ActionTogglePlay
	ActionNextTrack
	ActionPrevTrack
	ActionCycleMode
	ActionToggleRandom
	ActionVolumeUp
	ActionVolumeDown
)

// ErrQuit is returned by Apply when the user asked to leave.
var ErrQuit = errors.New("quit requested")

type spriteReadier interface {
	SetSpriteReady(ready bool)
}

// Session holds the state a host shares between input handling and the frame
// loop: the scene, the music player and the pause flags.
type Session struct {
	scene core.Scene
	music *audio.Player

	paused   bool
	tickOnce bool
	seed     int64
	dragging bool
}

// NewSession wraps sc and an optional music player.
func NewSession(sc core.Scene, music *audio.Player, seed int64) *Session {
	return &Session{scene: sc, music: music, seed: seed}
}

// Scene returns the driven scene.
func (s *Session) Scene() core.Scene { return s.scene }

// Music returns the music player, which may be nil.
func (s *Session) Music() *audio.Player { return s.music }

// Paused reports whether automatic stepping is suspended.
func (s *Session) Paused() bool { return s.paused }

// Apply executes a user command.
func (s *Session) Apply(a Action) error {
	switch a {
	case ActionQuit:
		return ErrQuit
	case ActionPause:
		s.paused = !s.paused
	case ActionStep:
		s.tickOnce = true
	case ActionReset:
		s.scene.Reset(s.seed)
		s.tickOnce = false
	case ActionReseed:
		s.seed = time.Now().UnixNano()
		s.scene.Reset(s.seed)
		s.tickOnce = false
	case ActionTogglePlay:
		s.music.TogglePlay()
	case ActionNextTrack:
		s.music.Next()
	case ActionPrevTrack:
		s.music.Prev()
	case ActionCycleMode:
		s.music.CycleMode()
	case ActionToggleRandom:
		s.music.ToggleRandom()
	case ActionVolumeUp:
		s.music.AdjustVolume(audio.VolumeStep)
	case ActionVolumeDown:
		s.music.AdjustVolume(-audio.VolumeStep)
	}
	return nil
}

// Advance runs ticks simulation steps unless paused; a pending single step
// runs once even while paused. It returns the number of steps taken.
func (s *Session) Advance(ticks int) int {
	s.music.Update()
	if s.paused {
		if !s.tickOnce {
			return 0
		}
		ticks = 1
	}
	s.tickOnce = false
	for i := 0; i < ticks; i++ {
		s.scene.Step()
	}
	return ticks
}

// SpriteReady forwards image readiness to scenes with a sprite.
func (s *Session) SpriteReady(ready bool) {
	if r, ok := s.scene.(spriteReadier); ok {
		r.SetSpriteReady(ready)
	}
}

// PointerDown forwards a press and reports whether the scene took it.
func (s *Session) PointerDown(x, y float64) bool {
	p, ok := s.scene.(core.Pointer)
	if !ok {
		return false
	}
	s.dragging = p.PointerDown(x, y)
	return s.dragging
}

// PointerMove forwards motion during a drag.
func (s *Session) PointerMove(x, y float64) {
	if !s.dragging {
		return
	}
	if p, ok := s.scene.(core.Pointer); ok {
		p.PointerMove(x, y)
	}
}

// PointerUp ends a drag.
func (s *Session) PointerUp() {
	if !s.dragging {
		return
	}
	s.dragging = false
	if p, ok := s.scene.(core.Pointer); ok {
		p.PointerUp()
	}
}

// Close releases the music player.
func (s *Session) Close() error {
	return s.music.Close()
}
