package audio

import (
	"fmt"
	"log"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// Settings are the player preferences that survive restarts.
type Settings struct {
	Volume int    `yaml:"volume"` // 0 ~ 100
	Mode   string `yaml:"mode"`
}

// DefaultSettings returns the preferences used on first launch.
func DefaultSettings() Settings {
	return Settings{Volume: 70, Mode: PlayMode{}.String()}
}

const (
	settingsObject   = "music"
	settingsProperty = "player"
)

// SettingsStore persists Settings through gdata. A store without a manager
// works in memory only.
type SettingsStore struct {
	manager *gdata.Manager
}

// NewSettingsStore wraps an opened gdata manager, which may be nil.
func NewSettingsStore(manager *gdata.Manager) *SettingsStore {
	return &SettingsStore{manager: manager}
}

// OpenSettingsStore opens the per-user data directory for appName. On failure
// it still returns a usable in-memory store along with the error.
func OpenSettingsStore(appName string) (*SettingsStore, error) {
	manager, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		return NewSettingsStore(nil), fmt.Errorf("failed to open settings storage: %w", err)
	}
	return NewSettingsStore(manager), nil
}

// Load returns the stored preferences, or the defaults when nothing is stored.
func (s *SettingsStore) Load() (Settings, error) {
	if s == nil || s.manager == nil {
		return DefaultSettings(), nil
	}
	if !s.manager.ObjectPropExists(settingsObject, settingsProperty) {
		return DefaultSettings(), nil
	}
	data, err := s.manager.LoadObjectProp(settingsObject, settingsProperty)
	if err != nil {
		return DefaultSettings(), fmt.Errorf("failed to load music settings: %w", err)
	}
	loaded := DefaultSettings()
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		return DefaultSettings(), fmt.Errorf("failed to unmarshal music settings: %w", err)
	}
	loaded.Volume = clampVolume(loaded.Volume)
	return loaded, nil
}

// Save writes the preferences.
func (s *SettingsStore) Save(settings Settings) error {
	if s == nil || s.manager == nil {
		return nil
	}
	data, err := yaml.Marshal(settings)
	if err != nil {
		return fmt.Errorf("failed to marshal music settings: %w", err)
	}
	if err := s.manager.SaveObjectProp(settingsObject, settingsProperty, data); err != nil {
		return fmt.Errorf("failed to save music settings: %w", err)
	}
	log.Printf("[Music] Settings saved (volume %d, mode %s)", settings.Volume, settings.Mode)
	return nil
}

func clampVolume(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
