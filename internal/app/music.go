package app

import (
	"log"
	"time"

	"snowfall/internal/audio"
	"snowfall/internal/core"
)

// settingsApp names the per-user directory holding the music settings.
const settingsApp = "snowfall"

// OpenMusic scans MusicDir and builds a player on backend. It returns nil when
// no music directory was given. A missing settings store or an unreadable
// directory is logged and the player carries on without it.
func (c *Config) OpenMusic(backend audio.Backend) *audio.Player {
	if c.MusicDir == "" {
		return nil
	}
	tracks, err := audio.ScanTracks(c.MusicDir)
	if err != nil {
		log.Printf("[Music] Failed to scan %s: %v", c.MusicDir, err)
	}
	store, err := audio.OpenSettingsStore(settingsApp)
	if err != nil {
		log.Printf("[Music] Settings unavailable, volume will not persist: %v", err)
	}
	seed := c.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return audio.NewPlayer(tracks, backend, store, core.NewRNG(seed))
}
