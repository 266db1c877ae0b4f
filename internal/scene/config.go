package scene

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Layer selects which parts of the scene are simulated and drawn.
type Layer uint8

const (
	// LayerSky paints the background gradient.
	LayerSky Layer = 1 << iota
	// LayerStars enables the twinkling starfield and shooting stars.
	LayerStars
	// LayerSnow enables snowflakes, accumulation and the snow surface.
	LayerSnow
	// LayerSprite enables the melt sprite.
	LayerSprite

	LayersAll = LayerSky | LayerStars | LayerSnow | LayerSprite
)

// Params holds tunable constants for the scene.
type Params struct {
	StarCount int `yaml:"starCount"`

	InitialFlakes int `yaml:"initialFlakes"`
	SpawnInterval int `yaml:"spawnInterval"`
	// GroundSlack is how close (in px) a flake must get to the surface to land.
	GroundSlack float64 `yaml:"groundSlack"`
	SwayAmount  float64 `yaml:"swayAmount"`
	ImpactScale float64 `yaml:"impactScale"`

	MaxDepth      float64 `yaml:"maxDepth"`
	DepositRadius int     `yaml:"depositRadius"`
	Slack         float64 `yaml:"slack"`
	SlopeReach    int     `yaml:"slopeReach"`
	JitterMin     float64 `yaml:"jitterMin"`
	JitterMax     float64 `yaml:"jitterMax"`
	SurfaceStride int     `yaml:"surfaceStride"`

	ErodeRadius   int     `yaml:"erodeRadius"`
	ErodeAmount   float64 `yaml:"erodeAmount"`
	MeltThreshold float64 `yaml:"meltThreshold"`
	SpriteStep    float64 `yaml:"spriteStep"`
	SpriteSize    float64 `yaml:"spriteSize"`
	HitMargin     float64 `yaml:"hitMargin"`

	ShootingStars  int     `yaml:"shootingStars"`
	ShootingDelay  int     `yaml:"shootingDelay"`
	ShootingChance float64 `yaml:"shootingChance"`
	ShootingFade   float64 `yaml:"shootingFade"`
}

// Config controls the scene viewport and behaviour.
type Config struct {
	Width  int   `yaml:"width"`
	Height int   `yaml:"height"`
	Seed   int64 `yaml:"seed"`
	Layers Layer `yaml:"-"`

	LayerNames []string `yaml:"layers,omitempty"`

	Params Params `yaml:"params"`
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{
		Width:  1280,
		Height: 720,
		Seed:   1225,
		Layers: LayersAll,
		Params: Params{
			StarCount:      300,
			InitialFlakes:  200,
			SpawnInterval:  30,
			GroundSlack:    5,
			SwayAmount:     0.3,
			ImpactScale:    0.5,
			MaxDepth:       400,
			DepositRadius:  20,
			Slack:          5,
			SlopeReach:     2,
			JitterMin:      0.8,
			JitterMax:      1.2,
			SurfaceStride:  2,
			ErodeRadius:    14,
			ErodeAmount:    3,
			MeltThreshold:  8,
			SpriteStep:     2,
			SpriteSize:     51,
			HitMargin:      10,
			ShootingStars:  1,
			ShootingDelay:  13 * 60,
			ShootingChance: 0.001,
			ShootingFade:   0.01,
		},
	}
}

// ErrInvalidConfig is returned by Validate for out-of-range settings.
var ErrInvalidConfig = errors.New("invalid scene config")

// Validate checks that the configuration can drive a scene.
func (c Config) Validate() error {
	p := c.Params
	switch {
	case c.Width < 0 || c.Height < 0:
		return fmt.Errorf("%w: negative viewport %dx%d", ErrInvalidConfig, c.Width, c.Height)
	case p.MaxDepth <= 0:
		return fmt.Errorf("%w: maxDepth must be positive, got %g", ErrInvalidConfig, p.MaxDepth)
	case p.DepositRadius <= 0:
		return fmt.Errorf("%w: depositRadius must be positive, got %d", ErrInvalidConfig, p.DepositRadius)
	case p.JitterMin < 0 || p.JitterMax < p.JitterMin:
		return fmt.Errorf("%w: jitter range [%g, %g]", ErrInvalidConfig, p.JitterMin, p.JitterMax)
	case p.Slack < 0 || p.SlopeReach < 0:
		return fmt.Errorf("%w: slope limits must not be negative", ErrInvalidConfig)
	case p.ErodeRadius < 0 || p.ErodeAmount < 0:
		return fmt.Errorf("%w: erosion must not be negative", ErrInvalidConfig)
	case p.SpriteSize <= 0:
		return fmt.Errorf("%w: spriteSize must be positive, got %g", ErrInvalidConfig, p.SpriteSize)
	case p.ShootingChance < 0 || p.ShootingChance > 1:
		return fmt.Errorf("%w: shootingChance %g outside [0, 1]", ErrInvalidConfig, p.ShootingChance)
	}
	return nil
}

// LoadConfig reads a YAML scene description from path and merges it over the
// defaults.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read scene config: %w", err)
	}
	return ParseConfig(data)
}

// ParseConfig decodes YAML bytes over the defaults and validates the result.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse scene config: %w", err)
	}
	if len(cfg.LayerNames) > 0 {
		layers, err := ParseLayers(strings.Join(cfg.LayerNames, ","))
		if err != nil {
			return Config{}, err
		}
		cfg.Layers = layers
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ParseLayers converts a comma separated list such as "sky,stars,snow" into a
// Layer mask. "all" selects every layer.
func ParseLayers(s string) (Layer, error) {
	var mask Layer
	for _, part := range strings.Split(s, ",") {
		switch strings.ToLower(strings.TrimSpace(part)) {
		case "":
		case "all":
			mask |= LayersAll
		case "sky":
			mask |= LayerSky
		case "stars":
			mask |= LayerStars
		case "snow":
			mask |= LayerSnow
		case "sprite":
			mask |= LayerSprite
		default:
			return 0, fmt.Errorf("%w: unknown layer %q", ErrInvalidConfig, part)
		}
	}
	return mask, nil
}

// FromMap populates the config from a string map (flag-style key/value pairs).
// Unparseable or out-of-range values keep their defaults.
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	if cfg == nil {
		return c
	}
	p := &c.Params
	if v, ok := cfg["w"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Width = parsed
		}
	}
	if v, ok := cfg["h"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Height = parsed
		}
	}
	if v, ok := cfg["seed"]; ok {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Seed = parsed
		}
	}
	if v, ok := cfg["layers"]; ok {
		if parsed, err := ParseLayers(v); err == nil && parsed != 0 {
			c.Layers = parsed
		}
	}
	setInt(cfg, "stars", &p.StarCount, 0)
	setInt(cfg, "flakes", &p.InitialFlakes, 0)
	setInt(cfg, "spawn_interval", &p.SpawnInterval, 0)
	setFloat(cfg, "max_depth", &p.MaxDepth, 1)
	setInt(cfg, "deposit_radius", &p.DepositRadius, 1)
	setFloat(cfg, "slack", &p.Slack, 0)
	setInt(cfg, "erode_radius", &p.ErodeRadius, 0)
	setFloat(cfg, "erode_amount", &p.ErodeAmount, 0)
	setFloat(cfg, "melt_threshold", &p.MeltThreshold, 0)
	setFloat(cfg, "sprite_step", &p.SpriteStep, 0)
	setInt(cfg, "shooting_stars", &p.ShootingStars, 0)
	setInt(cfg, "shooting_delay", &p.ShootingDelay, 0)
	setFloat(cfg, "shooting_chance", &p.ShootingChance, 0)
	if p.ShootingChance > 1 {
		p.ShootingChance = 1
	}
	return c
}

func setInt(cfg map[string]string, key string, dst *int, min int) {
	v, ok := cfg[key]
	if !ok {
		return
	}
	if parsed, err := strconv.Atoi(v); err == nil && parsed >= min {
		*dst = parsed
	}
}

func setFloat(cfg map[string]string, key string, dst *float64, min float64) {
	v, ok := cfg[key]
	if !ok {
		return
	}
	if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= min {
		*dst = parsed
	}
}
