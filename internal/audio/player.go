package audio

import (
	"fmt"
	"log"

	"snowfall/internal/core"
)

// Backend plays one decoded track at a time on some audio device.
type Backend interface {
	// Load stops whatever is playing and prepares t, paused at its start.
	Load(t Track) error
	Play()
	Pause()
	// SetVolume takes a linear gain in [0, 1].
	SetVolume(v float64)
	// Finished reports whether the loaded track played to its end.
	Finished() bool
	Close() error
}

// VolumeStep is how much one volume key press changes the volume.
const VolumeStep = 10

// Player couples a Playlist with a Backend and persists its preferences.
type Player struct {
	list    *Playlist
	backend Backend
	store   *SettingsStore

	volume int
	loaded int
}

// NewPlayer builds a player over tracks. Preferences are read from store,
// which may be nil.
func NewPlayer(tracks []Track, backend Backend, store *SettingsStore, rng *core.RNG) *Player {
	p := &Player{
		list:    NewPlaylist(tracks, rng),
		backend: backend,
		store:   store,
		loaded:  -1,
	}
	settings, err := store.Load()
	if err != nil {
		log.Printf("[Music] Warning: %v (using defaults)", err)
	}
	p.volume = clampVolume(settings.Volume)
	if mode, err := ParsePlayMode(settings.Mode); err == nil {
		p.list.SetMode(mode)
	} else {
		log.Printf("[Music] Warning: %v (using normal)", err)
	}
	if backend != nil {
		backend.SetVolume(p.gain())
	}
	log.Printf("[Music] %d tracks, volume %d, mode %s", p.list.Len(), p.volume, p.list.Mode())
	return p
}

// Playlist exposes the underlying playlist.
func (p *Player) Playlist() *Playlist { return p.list }

// Volume returns the volume in [0, 100].
func (p *Player) Volume() int { return p.volume }

func (p *Player) gain() float64 { return float64(p.volume) / 100 }

func (p *Player) ready() bool { return p != nil && p.backend != nil && p.list.Len() > 0 }

// ensureLoaded hands the current track to the backend unless it already has it.
func (p *Player) ensureLoaded(force bool) bool {
	if !force && p.loaded == p.list.Index() {
		return true
	}
	track, _ := p.list.Current()
	if err := p.backend.Load(track); err != nil {
		log.Printf("[Music] Failed to load %q: %v", track.Title, err)
		p.loaded = -1
		p.list.Stop()
		return false
	}
	p.backend.SetVolume(p.gain())
	p.loaded = p.list.Index()
	return true
}

// TogglePlay starts or pauses playback.
func (p *Player) TogglePlay() {
	if !p.ready() {
		return
	}
	if !p.list.TogglePlay() {
		p.backend.Pause()
		return
	}
	if p.ensureLoaded(false) {
		p.backend.Play()
	}
}

// Next skips forward and keeps playing if playback was active.
func (p *Player) Next() {
	if !p.ready() {
		return
	}
	p.list.Next()
	p.switchTrack()
}

// Prev skips back and keeps playing if playback was active.
func (p *Player) Prev() {
	if !p.ready() {
		return
	}
	p.list.Prev()
	p.switchTrack()
}

func (p *Player) switchTrack() {
	if !p.ensureLoaded(true) {
		return
	}
	if p.list.IsPlaying() {
		p.backend.Play()
	}
}

// CycleMode advances the play mode through the UI cycle and saves it.
func (p *Player) CycleMode() {
	if p == nil {
		return
	}
	p.list.CycleMode()
	p.save()
}

// SetRepeatMode changes the repeat flag, keeps random as it is, and saves.
func (p *Player) SetRepeatMode(m RepeatMode) {
	if p == nil {
		return
	}
	p.list.SetRepeatMode(m)
	p.save()
}

// ToggleRandom flips random mode and saves it.
func (p *Player) ToggleRandom() {
	if p == nil {
		return
	}
	p.list.ToggleRandom()
	p.save()
}

// AdjustVolume changes the volume by delta, clamped to [0, 100], and saves it.
func (p *Player) AdjustVolume(delta int) {
	if p == nil {
		return
	}
	v := clampVolume(p.volume + delta)
	if v == p.volume {
		return
	}
	p.volume = v
	if p.backend != nil {
		p.backend.SetVolume(p.gain())
	}
	p.save()
}

// Update handles the end of the current track. Call it once per frame.
func (p *Player) Update() {
	if !p.ready() || !p.list.IsPlaying() || !p.backend.Finished() {
		return
	}
	if !p.list.TrackEnded() {
		p.backend.Pause()
		return
	}
	p.switchTrack()
}

// Stop halts playback and rewinds the current track.
func (p *Player) Stop() {
	if !p.ready() {
		return
	}
	p.list.Stop()
	p.backend.Pause()
	p.loaded = -1
}

// Close saves preferences and releases the backend.
func (p *Player) Close() error {
	if p == nil {
		return nil
	}
	p.save()
	if p.backend == nil {
		return nil
	}
	return p.backend.Close()
}

func (p *Player) save() {
	err := p.store.Save(Settings{Volume: p.volume, Mode: p.list.Mode().String()})
	if err != nil {
		log.Printf("[Music] Warning: %v", err)
	}
}

// Status summarises the player for display.
type Status struct {
	Title    string
	Position int
	Count    int
	Playing  bool
	Mode     PlayMode
	Volume   int
}

// Status returns the current track information.
func (p *Player) Status() Status {
	if p == nil {
		return Status{}
	}
	s := Status{
		Count:   p.list.Len(),
		Playing: p.list.IsPlaying(),
		Mode:    p.list.Mode(),
		Volume:  p.volume,
	}
	info := p.list.CurrentTrack()
	s.Title, s.Position = info.Title, info.Index
	return s
}

// StatusLines renders Status as short text lines.
func (p *Player) StatusLines() []string {
	s := p.Status()
	if s.Count == 0 {
		return []string{"Music: no tracks"}
	}
	state := "paused"
	if s.Playing {
		state = "playing"
	}
	return []string{
		fmt.Sprintf("Music: %s (%d/%d)", s.Title, s.Position, s.Count),
		fmt.Sprintf("%s, %s, vol %d", state, s.Mode, s.Volume),
	}
}
