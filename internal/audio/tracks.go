package audio

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ScanTracks lists the MP3 files in dir, titled after their file names.
func ScanTracks(dir string) ([]Track, error) {
	if dir == "" {
		return nil, nil
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read music directory: %w", err)
	}
	var tracks []Track
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".mp3") {
			continue
		}
		tracks = append(tracks, Track{
			Title: titleFromFile(e.Name()),
			Path:  filepath.Join(dir, e.Name()),
		})
	}
	sort.Slice(tracks, func(i, j int) bool { return tracks[i].Path < tracks[j].Path })
	return tracks, nil
}

// titleFromFile turns "01_silent-night.mp3" into "silent night" and drops the
// artist from "Title - Artist.mp3".
func titleFromFile(name string) string {
	base := strings.TrimSuffix(name, filepath.Ext(name))
	if title, _, ok := strings.Cut(base, " - "); ok && strings.TrimSpace(title) != "" {
		base = title
	}
	base = strings.TrimLeft(base, "0123456789 ._-")
	base = strings.NewReplacer("_", " ", "-", " ").Replace(base)
	base = strings.Join(strings.Fields(base), " ")
	if base == "" {
		return name
	}
	return base
}
