package scene

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestFromMapOverridesAndIgnoresBadValues(t *testing.T) {
	cfg := FromMap(map[string]string{
		"w":               "640",
		"h":               "-3",
		"seed":            "42",
		"layers":          "sky, snow",
		"flakes":          "12",
		"max_depth":       "abc",
		"melt_threshold":  "4.5",
		"shooting_chance": "3",
	})
	def := DefaultConfig()
	if cfg.Width != 640 || cfg.Height != def.Height || cfg.Seed != 42 {
		t.Fatalf("unexpected viewport %dx%d seed %d", cfg.Width, cfg.Height, cfg.Seed)
	}
	if cfg.Layers != LayerSky|LayerSnow {
		t.Fatalf("unexpected layers %b", cfg.Layers)
	}
	if cfg.Params.InitialFlakes != 12 || cfg.Params.MeltThreshold != 4.5 {
		t.Fatal("numeric overrides not applied")
	}
	if cfg.Params.MaxDepth != def.Params.MaxDepth {
		t.Fatal("unparseable value should keep the default")
	}
	if cfg.Params.ShootingChance != 1 {
		t.Fatalf("shooting chance should clamp to 1, got %g", cfg.Params.ShootingChance)
	}
}

func TestParseConfigMergesOverDefaults(t *testing.T) {
	cfg, err := ParseConfig([]byte(`
width: 800
height: 450
layers: [sky, stars]
params:
  starCount: 50
  meltThreshold: 12
`))
	if err != nil {
		t.Fatalf("ParseConfig: %v", err)
	}
	if cfg.Width != 800 || cfg.Height != 450 {
		t.Fatalf("viewport %dx%d", cfg.Width, cfg.Height)
	}
	if cfg.Layers != LayerSky|LayerStars {
		t.Fatalf("layers %b", cfg.Layers)
	}
	if cfg.Params.StarCount != 50 || cfg.Params.MeltThreshold != 12 {
		t.Fatal("params not decoded")
	}
	if cfg.Params.DepositRadius != DefaultConfig().Params.DepositRadius {
		t.Fatal("unset params should keep defaults")
	}
}

func TestLoadConfigErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := LoadConfig(filepath.Join(dir, "missing.yaml")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("missing file should wrap ErrNotExist, got %v", err)
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("params:\n  maxDepth: -1\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(bad); !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("negative depth should be invalid, got %v", err)
	}

	layers := filepath.Join(dir, "layers.yaml")
	if err := os.WriteFile(layers, []byte("layers: [sky, fog]\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(layers); !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("unknown layer should be invalid, got %v", err)
	}

	good := filepath.Join(dir, "good.yaml")
	if err := os.WriteFile(good, []byte("seed: 9\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadConfig(good)
	if err != nil || cfg.Seed != 9 {
		t.Fatalf("LoadConfig good: %+v, %v", cfg, err)
	}
}

func TestValidateRejectsBadJitter(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Params.JitterMin = 2
	cfg.Params.JitterMax = 1
	if err := cfg.Validate(); !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig, got %v", err)
	}
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
}
