package scene

import (
	"math"

	"snowfall/internal/core"
)

// Parameters lists the active configuration for display on the HUD.
func (w *World) Parameters() core.ParameterSnapshot {
	p := w.cfg.Params
	groups := []core.ParameterGroup{
		{
			Name: "Viewport",
			Params: []core.Parameter{
				core.IntParam("w", "Width", w.size.W),
				core.IntParam("h", "Height", w.size.H),
				core.Int64Param("seed", "Seed", w.cfg.Seed),
			},
		},
		{
			Name: "Sky",
			Params: []core.Parameter{
				core.IntParam("stars", "Star count", p.StarCount),
				core.IntParam("shooting_stars", "Shooting stars", p.ShootingStars),
				core.IntParam("shooting_delay", "Shooting delay", p.ShootingDelay),
				core.FloatParam("shooting_chance", "Shooting chance", p.ShootingChance),
			},
		},
		{
			Name: "Snow",
			Params: []core.Parameter{
				core.IntParam("flakes", "Initial flakes", p.InitialFlakes),
				core.IntParam("spawn_interval", "Spawn interval", p.SpawnInterval),
				core.FloatParam("max_depth", "Max depth", p.MaxDepth),
				core.IntParam("deposit_radius", "Deposit radius", p.DepositRadius),
				core.FloatParam("slack", "Slope slack", p.Slack),
			},
		},
		{
			Name: "Sprite",
			Params: []core.Parameter{
				core.FloatParam("melt_threshold", "Melt threshold", p.MeltThreshold),
				core.FloatParam("sprite_step", "Walk speed", p.SpriteStep),
				core.IntParam("erode_radius", "Erode radius", p.ErodeRadius),
				core.FloatParam("erode_amount", "Erode amount", p.ErodeAmount),
				core.BoolParam("sprite_ready", "Image loaded", w.spriteReady),
			},
		},
	}
	return core.ParameterSnapshot{Groups: groups}
}

// ParameterControls lists the values adjustable at runtime from the HUD.
func (w *World) ParameterControls() []core.ParameterControl {
	return []core.ParameterControl{
		{Key: "spawn_interval", Label: "Spawn interval", Type: core.ParamTypeInt, Step: 5, Min: 0, HasMin: true, Max: 600, HasMax: true},
		{Key: "melt_threshold", Label: "Melt threshold", Type: core.ParamTypeFloat, Step: 1, Min: 0, HasMin: true, Max: w.cfg.Params.MaxDepth, HasMax: true},
		{Key: "sprite_step", Label: "Walk speed", Type: core.ParamTypeFloat, Step: 0.5, Min: 0, HasMin: true, Max: 20, HasMax: true},
		{Key: "erode_amount", Label: "Erode amount", Type: core.ParamTypeFloat, Step: 0.5, Min: 0, HasMin: true, Max: 50, HasMax: true},
		{Key: "shooting_chance", Label: "Shooting chance", Type: core.ParamTypeFloat, Step: 0.001, Min: 0, HasMin: true, Max: 1, HasMax: true},
	}
}

// SetIntParameter updates an integer tunable. Values are clamped to the control
// bounds.
func (w *World) SetIntParameter(key string, value int) bool {
	switch key {
	case "spawn_interval":
		w.cfg.Params.SpawnInterval = min(max(value, 0), 600)
		return true
	case "erode_radius":
		w.cfg.Params.ErodeRadius = max(value, 0)
		if w.sprite != nil {
			w.sprite.radius = w.cfg.Params.ErodeRadius
		}
		return true
	}
	return false
}

// SetFloatParameter updates a floating point tunable. Values are clamped to
// the control bounds and pushed to the live sprite.
func (w *World) SetFloatParameter(key string, value float64) bool {
	if math.IsNaN(value) {
		return false
	}
	p := &w.cfg.Params
	switch key {
	case "melt_threshold":
		p.MeltThreshold = clampFloat(value, 0, p.MaxDepth)
		if w.sprite != nil {
			w.sprite.threshold = p.MeltThreshold
		}
	case "sprite_step":
		p.SpriteStep = clampFloat(value, 0, 20)
		if w.sprite != nil {
			w.sprite.step = p.SpriteStep
		}
	case "erode_amount":
		p.ErodeAmount = clampFloat(value, 0, 50)
		if w.sprite != nil {
			w.sprite.erode = p.ErodeAmount
		}
	case "shooting_chance":
		p.ShootingChance = clampFloat(value, 0, 1)
	default:
		return false
	}
	return true
}
