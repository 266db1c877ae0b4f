package app

import (
	"flag"

	"snowfall/internal/core"
	"snowfall/internal/scene"
)

// Config holds the command-line options shared by the scene hosts.
type Config struct {
	Scene       string
	Scale       int
	TPS         int
	Seed        int64
	ConfigPath  string
	MusicDir    string
	SpriteImage string
	HUD         bool
}

// NewConfig returns the default host options.
func NewConfig() *Config {
	return &Config{
		Scene: "winter",
		Scale: 1,
		TPS:   60,
		HUD:   true,
	}
}

// Bind registers the options on fs.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.StringVar(&c.Scene, "scene", c.Scene, "scene variant to run (winter, snow, stars)")
	fs.IntVar(&c.Scale, "scale", c.Scale, "window pixels per scene pixel")
	fs.IntVar(&c.TPS, "tps", c.TPS, "simulation ticks per second")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "random seed (0 uses the scene default)")
	fs.StringVar(&c.ConfigPath, "config", c.ConfigPath, "YAML scene configuration file")
	fs.StringVar(&c.MusicDir, "music", c.MusicDir, "directory of MP3 tracks for the player")
	fs.StringVar(&c.SpriteImage, "sprite", c.SpriteImage, "PNG, BMP or WebP image for the melt sprite")
	fs.BoolVar(&c.HUD, "hud", c.HUD, "show the parameter panel")
}

// ErrUnknownScene is returned when the requested variant is not registered.
var ErrUnknownScene = core.ErrUnknownScene

// BuildScene constructs the configured scene variant. A config file, when
// given, supplies the full scene configuration; otherwise the variant's
// registry factory is used with overrides for the viewport.
func (c *Config) BuildScene(w, h int) (core.Scene, error) {
	if c.ConfigPath != "" {
		sc, err := scene.LoadConfig(c.ConfigPath)
		if err != nil {
			return nil, err
		}
		if w > 0 && h > 0 {
			sc.Width, sc.Height = w, h
		}
		if c.Seed != 0 {
			sc.Seed = c.Seed
		}
		return scene.NewWithConfig(c.Scene, sc), nil
	}

	return core.NewScene(c.Scene, w, h, c.Seed)
}
