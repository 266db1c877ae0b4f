package audio

import (
	"testing"

	"github.com/quasilyte/gdata/v2"
)

func openTestManager(t *testing.T) *gdata.Manager {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	m, err := gdata.Open(gdata.Config{AppName: "snowfall_test"})
	if err != nil {
		t.Fatalf("Failed to create gdata manager: %v", err)
	}
	return m
}

func TestSettingsStoreRoundTrip(t *testing.T) {
	store := NewSettingsStore(openTestManager(t))

	got, err := store.Load()
	if err != nil {
		t.Fatalf("Load on empty storage: %v", err)
	}
	if got != DefaultSettings() {
		t.Fatalf("empty storage should give defaults, got %+v", got)
	}

	if err := store.Save(Settings{Volume: 35, Mode: "random"}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err = store.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Volume != 35 || got.Mode != "random" {
		t.Fatalf("loaded %+v", got)
	}
}

func TestSettingsStoreDegradedMode(t *testing.T) {
	var nilStore *SettingsStore
	if got, err := nilStore.Load(); err != nil || got != DefaultSettings() {
		t.Fatalf("nil store should load defaults, got %+v %v", got, err)
	}
	store := NewSettingsStore(nil)
	if err := store.Save(Settings{Volume: 10}); err != nil {
		t.Fatalf("in-memory save should not fail: %v", err)
	}
}

func TestSettingsStoreClampsVolume(t *testing.T) {
	m := openTestManager(t)
	if err := m.SaveObjectProp(settingsObject, settingsProperty, []byte("volume: 250\nmode: normal\n")); err != nil {
		t.Fatal(err)
	}
	got, err := NewSettingsStore(m).Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Volume != 100 {
		t.Fatalf("volume should clamp to 100, got %d", got.Volume)
	}
}

func TestSettingsStoreRejectsGarbage(t *testing.T) {
	m := openTestManager(t)
	if err := m.SaveObjectProp(settingsObject, settingsProperty, []byte("volume: [1, 2\n")); err != nil {
		t.Fatal(err)
	}
	got, err := NewSettingsStore(m).Load()
	if err == nil {
		t.Fatal("expected an unmarshal error")
	}
	if got != DefaultSettings() {
		t.Fatalf("failed load should fall back to defaults, got %+v", got)
	}
}
