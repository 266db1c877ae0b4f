package scene

import (
	"image/color"
	"sync"

	"snowfall/internal/core"
)

var (
	skyStops = []core.GradientStop{
		{Offset: 0, Color: color.NRGBA{R: 0x0a, G: 0x0a, B: 0x1e, A: 0xff}},
		{Offset: 0.4, Color: color.NRGBA{R: 0x10, G: 0x1b, B: 0x3a, A: 0xff}},
		{Offset: 1, Color: color.NRGBA{R: 0x19, G: 0x36, B: 0x59, A: 0xff}},
	}
	snowStops = []core.GradientStop{
		{Offset: 0, Color: color.NRGBA{R: 255, G: 255, B: 255, A: 230}},
		{Offset: 0.4, Color: color.NRGBA{R: 240, G: 245, B: 255, A: 217}},
		{Offset: 1, Color: color.NRGBA{R: 230, G: 240, B: 255, A: 204}},
	}
	highlightColor = color.NRGBA{R: 200, G: 210, B: 255, A: 26}
)

// Stats counts snowflake lifecycle events since the last Reset.
type Stats struct {
	Initial  int
	Spawned  int
	Grounded int
	Culled   int
}

// World owns all session state of one animated scene: the height field, the
// particle sets and the melt sprite. Step and Draw must be called from a
// single frame goroutine; Resize may be called from any goroutine.
type World struct {
	name string
	cfg  Config

	mu            sync.Mutex
	pendingResize *core.Size

	size      core.Size
	tick      uint64
	rng       *core.RNG
	field     *HeightField
	flakes    flakeArena
	starfield *Starfield
	shooting  []ShootingStar
	sky       []entity

	sprite      *Sprite
	spriteReady bool

	stats Stats

	smooth  []float64
	outline []core.Point
	ridge   []core.Point
	scratch []core.Segment
}

// New returns the complete winter scene with the provided viewport using defaults.
func New(w, h int) *World {
	cfg := DefaultConfig()
	cfg.Width = w
	cfg.Height = h
	return NewWithConfig("winter", cfg)
}

// NewWithConfig returns a scene configured from the provided options. The
// scene is reset with the configured seed and ready to step.
func NewWithConfig(name string, cfg Config) *World {
	if cfg.Width < 0 {
		cfg.Width = 0
	}
	if cfg.Height < 0 {
		cfg.Height = 0
	}
	w := &World{
		name: name,
		cfg:  cfg,
		size: core.Size{W: cfg.Width, H: cfg.Height},
		rng:  core.NewRNG(cfg.Seed),
	}
	w.Reset(0)
	return w
}

// Name returns the scene identifier.
func (w *World) Name() string { return w.name }

// Size reports the viewport dimensions the scene currently simulates.
func (w *World) Size() core.Size { return w.size }

// Config returns the active configuration.
func (w *World) Config() Config { return w.cfg }

// Tick returns the number of steps since the last Reset.
func (w *World) Tick() uint64 { return w.tick }

// Field exposes the snow height field.
func (w *World) Field() *HeightField { return w.field }

// Flakes exposes the live snowflakes.
func (w *World) Flakes() []Snowflake { return w.flakes.flakes }

// Starfield exposes the twinkling stars.
func (w *World) Starfield() *Starfield { return w.starfield }

// ShootingStars exposes the shooting stars.
func (w *World) ShootingStars() []ShootingStar { return w.shooting }

// Sprite returns the melt sprite, or nil while its image is not ready.
func (w *World) Sprite() *Sprite {
	if !w.spriteReady {
		return nil
	}
	return w.sprite
}

// Stats returns the snowflake lifecycle counters.
func (w *World) Stats() Stats { return w.stats }

func (w *World) has(l Layer) bool { return w.cfg.Layers&l != 0 }

// Reset rebuilds every entity from a fresh random sequence. A zero seed uses
// the configured seed.
func (w *World) Reset(seed int64) {
	effective := seed
	if effective == 0 {
		effective = w.cfg.Seed
	}
	w.rng.Reseed(effective)
	w.mu.Lock()
	if w.pendingResize != nil {
		w.size = *w.pendingResize
		w.pendingResize = nil
	}
	w.mu.Unlock()

	p := w.cfg.Params
	w.tick = 0
	w.stats = Stats{}
	w.field = NewHeightField(w.size.W, p)

	w.flakes.clear()
	if w.has(LayerSnow) {
		for i := 0; i < p.InitialFlakes; i++ {
			w.flakes.add(newSnowflake(w.rng, w.size))
		}
		w.stats.Initial = w.flakes.len()
	}

	w.sky = w.sky[:0]
	w.starfield = nil
	w.shooting = nil
	if w.has(LayerStars) {
		w.starfield = newStarfield(p.StarCount, w.rng, w.size)
		w.shooting = make([]ShootingStar, max(p.ShootingStars, 0))
		w.sky = append(w.sky, w.starfield)
		for i := range w.shooting {
			w.sky = append(w.sky, &w.shooting[i])
		}
	}

	w.sprite = nil
	if w.has(LayerSprite) {
		w.sprite = newSprite(p, w.size)
	}
}

// SetSpriteReady tells the scene whether the sprite's image has loaded. The
// sprite neither moves nor draws nor takes pointer input until it is ready.
func (w *World) SetSpriteReady(ready bool) {
	w.spriteReady = ready
}

// Resize schedules a viewport change. It is applied atomically at the start
// of the next Step so a frame never sees a half-replaced height field.
func (w *World) Resize(width, height int) {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	w.mu.Lock()
	w.pendingResize = &core.Size{W: width, H: height}
	w.mu.Unlock()
}

func (w *World) applyResize() {
	w.mu.Lock()
	pending := w.pendingResize
	w.pendingResize = nil
	w.mu.Unlock()
	if pending == nil || *pending == w.size {
		return
	}

	w.size = *pending
	w.field = NewHeightField(w.size.W, w.cfg.Params)
	if w.starfield != nil {
		w.starfield.scatter(w.rng, w.size)
	}
	if w.sprite != nil {
		w.sprite.fit(w.size)
	}
}

func (w *World) context() *frameContext {
	return &frameContext{
		tick:   w.tick,
		size:   w.size,
		field:  w.field,
		rng:    w.rng,
		params: &w.cfg.Params,
	}
}

// Step advances the scene by one tick in a fixed order: spawn, sky, snow,
// sprite. The sprite reads the field after this tick's deposits.
func (w *World) Step() {
	w.applyResize()
	w.tick++
	ctx := w.context()
	p := w.cfg.Params

	if w.has(LayerSnow) && p.SpawnInterval > 0 && w.tick%uint64(p.SpawnInterval) == 0 {
		w.flakes.add(newSnowflake(w.rng, w.size))
		w.stats.Spawned++
	}

	for _, e := range w.sky {
		e.Update(ctx)
	}

	if w.has(LayerSnow) {
		for i := 0; i < w.flakes.len(); {
			switch w.flakes.flakes[i].Update(ctx) {
			case FlakeGrounded:
				w.stats.Grounded++
			case FlakeEscaped:
				w.flakes.removeAt(i)
				w.stats.Culled++
				continue
			}
			i++
		}
	}

	if sp := w.Sprite(); sp != nil {
		sp.Update(ctx)
	}
}

// Draw renders the scene in back-to-front order.
func (w *World) Draw(s core.Surface) {
	if s == nil || w.size.W == 0 || w.size.H == 0 {
		return
	}
	if w.has(LayerSky) {
		s.FillVerticalGradient(0, 0, float64(w.size.W), float64(w.size.H), skyStops)
	}
	for _, e := range w.sky {
		e.Draw(s)
	}
	if w.has(LayerSnow) {
		for i := range w.flakes.flakes {
			w.scratch = w.flakes.flakes[i].Draw(s, w.scratch)
		}
		w.drawSnowSurface(s)
	}
	if sp := w.Sprite(); sp != nil {
		sp.Draw(s)
	}
}

// Frame steps once and draws, for hosts that drive both from one callback.
func (w *World) Frame(s core.Surface) {
	w.Step()
	w.Draw(s)
}

func (w *World) drawSnowSurface(s core.Surface) {
	width := w.field.Width()
	if width == 0 {
		return
	}
	stride := w.cfg.Params.SurfaceStride
	if stride <= 0 {
		stride = 1
	}
	h := float64(w.size.H)
	w.smooth = w.field.Smoothed(w.smooth)

	w.outline = w.outline[:0]
	w.ridge = w.ridge[:0]
	w.ridge = append(w.ridge, core.Point{X: 0, Y: h})
	raw := w.field.Depths()
	for x := 0; x < width; x += stride {
		w.outline = append(w.outline, core.Point{X: float64(x), Y: h - w.smooth[x]})
		w.ridge = append(w.ridge, core.Point{X: float64(x), Y: h - raw[x]})
	}
	w.outline = append(w.outline, core.Point{X: float64(width), Y: h - w.smooth[width-1]})

	s.FillArea(w.outline, h, h-w.field.MaxDepth(), snowStops)
	s.StrokePolyline(w.ridge, 1, highlightColor)
}

// PointerDown starts dragging the sprite when the press lands on it.
func (w *World) PointerDown(x, y float64) bool {
	sp := w.Sprite()
	if sp == nil {
		return false
	}
	return sp.BeginDrag(x, y)
}

// PointerMove drags the sprite while a drag is in progress.
func (w *World) PointerMove(x, y float64) {
	if sp := w.Sprite(); sp != nil {
		sp.DragTo(x, y, w.size)
	}
}

// PointerUp releases a dragged sprite back to its starting point.
func (w *World) PointerUp() {
	if sp := w.Sprite(); sp != nil {
		sp.EndDrag()
	}
}

func init() {
	register := func(name string, layers Layer) {
		core.Register(name, func(cfg map[string]string) core.Scene {
			c := FromMap(cfg)
			if _, ok := cfg["layers"]; !ok {
				c.Layers = layers
			}
			return NewWithConfig(name, c)
		})
	}
	register("winter", LayersAll)
	register("snow", LayerSnow)
	register("stars", LayerSky|LayerStars)
}
