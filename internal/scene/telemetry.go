package scene

import (
	"fmt"
	"strconv"
)

// RunReport captures telemetry from a deterministic headless run used for
// tuning the accumulation and melt constants.
type RunReport struct {
	// StepsSimulated reports how many ticks were executed.
	StepsSimulated int
	// FirstMeltStep is the tick the sprite first started walking, or 0.
	FirstMeltStep int
	// Laps counts how often the sprite crossed the whole viewport.
	Laps int
	// MeanDepth and PeakDepth describe the field after the final tick.
	MeanDepth float64
	PeakDepth float64
	// PeakMean is the highest mean depth seen during the run.
	PeakMean float64
	Stats    Stats
}

// MeasureRun runs a scene with the sprite enabled for steps ticks and returns
// its telemetry.
func MeasureRun(cfg Config, steps int) RunReport {
	if steps <= 0 {
		return RunReport{}
	}
	cfg.Layers |= LayerSnow | LayerSprite
	world := NewWithConfig("winter", cfg)
	world.SetSpriteReady(true)

	var rep RunReport
	for step := 1; step <= steps; step++ {
		world.Step()
		sp := world.Sprite()
		if rep.FirstMeltStep == 0 && (sp.State == SpriteMoving || sp.Laps > 0) {
			rep.FirstMeltStep = step
		}
		if m := world.Field().Mean(); m > rep.PeakMean {
			rep.PeakMean = m
		}
	}

	rep.StepsSimulated = steps
	rep.Laps = world.Sprite().Laps
	rep.MeanDepth = world.Field().Mean()
	for _, d := range world.Field().Depths() {
		if d > rep.PeakDepth {
			rep.PeakDepth = d
		}
	}
	rep.Stats = world.Stats()
	return rep
}

func (r RunReport) String() string {
	return fmt.Sprintf("melt@%d laps=%d mean=%.2f peak=%.2f peakMean=%.2f grounded=%d culled=%d",
		r.FirstMeltStep, r.Laps, r.MeanDepth, r.PeakDepth, r.PeakMean, r.Stats.Grounded, r.Stats.Culled)
}

// ApplyOverride sets one tunable from a key=value pair using the same keys and
// fallbacks as FromMap.
func ApplyOverride(cfg *Config, key, value string) error {
	if key != "layers" {
		if _, err := strconv.ParseFloat(value, 64); err != nil {
			return fmt.Errorf("%w: %s=%q is not a number", ErrInvalidConfig, key, value)
		}
	}
	merged := FromMap(map[string]string{key: value})
	switch key {
	case "w":
		cfg.Width = merged.Width
	case "h":
		cfg.Height = merged.Height
	case "seed":
		cfg.Seed = merged.Seed
	case "layers":
		cfg.Layers = merged.Layers
	default:
		if !applyParam(&cfg.Params, merged.Params, key) {
			return fmt.Errorf("%w: unknown parameter %q", ErrInvalidConfig, key)
		}
	}
	return nil
}

func applyParam(dst *Params, src Params, key string) bool {
	switch key {
	case "stars":
		dst.StarCount = src.StarCount
	case "flakes":
		dst.InitialFlakes = src.InitialFlakes
	case "spawn_interval":
		dst.SpawnInterval = src.SpawnInterval
	case "max_depth":
		dst.MaxDepth = src.MaxDepth
	case "deposit_radius":
		dst.DepositRadius = src.DepositRadius
	case "slack":
		dst.Slack = src.Slack
	case "erode_radius":
		dst.ErodeRadius = src.ErodeRadius
	case "erode_amount":
		dst.ErodeAmount = src.ErodeAmount
	case "melt_threshold":
		dst.MeltThreshold = src.MeltThreshold
	case "sprite_step":
		dst.SpriteStep = src.SpriteStep
	case "shooting_stars":
		dst.ShootingStars = src.ShootingStars
	case "shooting_delay":
		dst.ShootingDelay = src.ShootingDelay
	case "shooting_chance":
		dst.ShootingChance = src.ShootingChance
	default:
		return false
	}
	return true
}
