package audio

import (
	"fmt"
	"strings"

	"snowfall/internal/core"
)

// RepeatMode selects what happens when a track ends.
type RepeatMode uint8

const (
	// RepeatOff advances to the next track and stops after the last one.
	RepeatOff RepeatMode = iota
	// RepeatAll advances forever, wrapping to the first track.
	RepeatAll
	// RepeatOne replays the current track.
	RepeatOne
)

var repeatNames = [...]string{"off", "all", "one"}

func (m RepeatMode) String() string {
	if int(m) < len(repeatNames) {
		return repeatNames[m]
	}
	return "unknown"
}

// PlayMode is the pair of independent play flags. Random only decides the
// track that follows an ended one when Repeat is RepeatOff.
type PlayMode struct {
	Repeat RepeatMode
	Random bool
}

// String names the mode the way the UI cycle does: "normal", "repeat-all",
// "repeat-one" or "random", with "+random" appended when both flags are set.
func (m PlayMode) String() string {
	var name string
	switch m.Repeat {
	case RepeatAll:
		name = "repeat-all"
	case RepeatOne:
		name = "repeat-one"
	default:
		if m.Random {
			return "random"
		}
		return "normal"
	}
	if m.Random {
		name += "+random"
	}
	return name
}

// ParsePlayMode converts a PlayMode name back into its flags.
func ParsePlayMode(s string) (PlayMode, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	base, random := strings.CutSuffix(name, "+random")
	switch base {
	case "", "normal":
		if !random {
			return PlayMode{}, nil
		}
	case "random":
		if !random {
			return PlayMode{Random: true}, nil
		}
	case "repeat-all":
		return PlayMode{Repeat: RepeatAll, Random: random}, nil
	case "repeat-one":
		return PlayMode{Repeat: RepeatOne, Random: random}, nil
	}
	return PlayMode{}, fmt.Errorf("unknown play mode %q", s)
}

// Next returns the mode that follows m in the UI cycle normal, repeat-all,
// repeat-one, random. Any mode with Random set returns to normal.
func (m PlayMode) Next() PlayMode {
	switch {
	case m.Random:
		return PlayMode{}
	case m.Repeat == RepeatOff:
		return PlayMode{Repeat: RepeatAll}
	case m.Repeat == RepeatAll:
		return PlayMode{Repeat: RepeatOne}
	default:
		return PlayMode{Random: true}
	}
}

// Track is a single playable music file.
type Track struct {
	Title string
	Path  string
}

// TrackInfo is the display form of the current track.
type TrackInfo struct {
	Title string
	Index int
}

// Playlist tracks the ordering and transport state of the music player. It
// never touches audio devices; a Player drives a Backend from it.
type Playlist struct {
	tracks  []Track
	index   int
	playing bool
	repeat  RepeatMode
	random  bool
	rng     *core.RNG
}

// NewPlaylist copies tracks and shuffles them once.
func NewPlaylist(tracks []Track, rng *core.RNG) *Playlist {
	if rng == nil {
		rng = core.NewRNG(1)
	}
	pl := &Playlist{tracks: append([]Track(nil), tracks...), rng: rng}
	rng.Shuffle(len(pl.tracks), func(i, j int) {
		pl.tracks[i], pl.tracks[j] = pl.tracks[j], pl.tracks[i]
	})
	return pl
}

// Len returns the number of tracks.
func (pl *Playlist) Len() int { return len(pl.tracks) }

// Tracks exposes the shuffled order.
func (pl *Playlist) Tracks() []Track { return pl.tracks }

// Index returns the zero-based position of the current track.
func (pl *Playlist) Index() int { return pl.index }

// Current returns the current track.
func (pl *Playlist) Current() (Track, bool) {
	if len(pl.tracks) == 0 {
		return Track{}, false
	}
	return pl.tracks[pl.index], true
}

// CurrentTrack describes the current track for display. Index is one-based
// and zero for an empty playlist.
func (pl *Playlist) CurrentTrack() TrackInfo {
	t, ok := pl.Current()
	if !ok {
		return TrackInfo{}
	}
	return TrackInfo{Title: t.Title, Index: pl.index + 1}
}

// IsPlaying reports whether playback is active.
func (pl *Playlist) IsPlaying() bool { return pl.playing }

// Mode returns the current play flags.
func (pl *Playlist) Mode() PlayMode { return PlayMode{Repeat: pl.repeat, Random: pl.random} }

// SetMode replaces both play flags.
func (pl *Playlist) SetMode(m PlayMode) {
	pl.SetRepeatMode(m.Repeat)
	pl.random = m.Random
}

// RepeatMode returns the repeat flag.
func (pl *Playlist) RepeatMode() RepeatMode { return pl.repeat }

// IsRandom reports whether random mode is on.
func (pl *Playlist) IsRandom() bool { return pl.random }

// SetRepeatMode replaces the repeat flag and leaves random mode as it is.
// Unknown values turn repeat off.
func (pl *Playlist) SetRepeatMode(m RepeatMode) {
	if int(m) >= len(repeatNames) {
		m = RepeatOff
	}
	pl.repeat = m
}

// ToggleRandom flips random mode and reports whether it is now on.
func (pl *Playlist) ToggleRandom() bool {
	pl.random = !pl.random
	return pl.random
}

// CycleMode steps both flags through the UI cycle and returns the new mode.
func (pl *Playlist) CycleMode() PlayMode {
	pl.SetMode(pl.Mode().Next())
	return pl.Mode()
}

// TogglePlay flips between playing and paused. An empty playlist never plays.
func (pl *Playlist) TogglePlay() bool {
	if len(pl.tracks) == 0 {
		pl.playing = false
		return false
	}
	pl.playing = !pl.playing
	return pl.playing
}

// Stop halts playback.
func (pl *Playlist) Stop() { pl.playing = false }

// Next moves to the following track, or to a random one in random mode.
func (pl *Playlist) Next() {
	n := len(pl.tracks)
	if n == 0 {
		return
	}
	if pl.random {
		pl.index = pl.rng.IntN(n)
		return
	}
	pl.index = (pl.index + 1) % n
}

// Prev moves to the preceding track, wrapping to the last.
func (pl *Playlist) Prev() {
	n := len(pl.tracks)
	if n == 0 {
		return
	}
	pl.index = (pl.index - 1 + n) % n
}

// TrackEnded picks the track that follows a finished one and reports whether
// playback continues. Repeat wins over random: repeat-one replays and
// repeat-all advances in order even with random on.
func (pl *Playlist) TrackEnded() bool {
	n := len(pl.tracks)
	if n == 0 {
		pl.playing = false
		return false
	}
	switch {
	case pl.repeat == RepeatOne:
	case pl.repeat == RepeatAll:
		pl.index = (pl.index + 1) % n
	case pl.random:
		pl.index = pl.rng.IntN(n)
	default:
		if pl.index == n-1 {
			pl.playing = false
			return false
		}
		pl.index++
	}
	return pl.playing
}
