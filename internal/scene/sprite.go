package scene

import (
	"math"

	"snowfall/internal/core"
)

// SpriteState enumerates the melt sprite's behaviour modes.
type SpriteState uint8

const (
	// SpriteIdle waits at the right edge for enough snow.
	SpriteIdle SpriteState = iota
	// SpriteMoving walks left, melting snow under it.
	SpriteMoving
	// SpriteDragging is held by the pointer; automatic motion is suspended.
	SpriteDragging
)

func (s SpriteState) String() string {
	switch s {
	case SpriteIdle:
		return "idle"
	case SpriteMoving:
		return "moving"
	case SpriteDragging:
		return "dragging"
	default:
		return "unknown"
	}
}

// Sprite is the figure that walks across the snow and melts a path.
type Sprite struct {
	X, Y  float64
	State SpriteState
	// Laps counts wraps from the left edge back to the right.
	Laps int

	size      float64
	step      float64
	threshold float64
	radius    int
	erode     float64
	margin    float64

	dragStartX, dragStartY float64
	dragOffX, dragOffY     float64
}

func newSprite(p Params, size core.Size) *Sprite {
	sp := &Sprite{
		size:      p.SpriteSize,
		step:      p.SpriteStep,
		threshold: p.MeltThreshold,
		radius:    p.ErodeRadius,
		erode:     p.ErodeAmount,
		margin:    p.HitMargin,
	}
	sp.X = float64(size.W)
	sp.Y = float64(size.H) - sp.size
	return sp
}

// Size returns the sprite's edge length in pixels.
func (sp *Sprite) Size() float64 { return sp.size }

// Column returns the field column the sprite stands on.
func (sp *Sprite) Column() int { return int(math.Floor(sp.X)) }

// Update advances the sprite one tick using the mean snow depth to decide when
// to start walking. While moving it erodes the field around itself and rests
// its feet on the local snow height. Passing the left edge wraps it back to
// the right edge in the idle state.
func (sp *Sprite) Update(ctx *frameContext) {
	if sp.State == SpriteDragging || ctx.field == nil {
		return
	}
	if sp.State == SpriteIdle && ctx.field.Mean() > sp.threshold {
		sp.State = SpriteMoving
	}
	if sp.State != SpriteMoving {
		return
	}

	sp.X -= sp.step
	ctx.field.Erode(sp.Column(), sp.radius, sp.erode)

	if sp.X < -float64(sp.radius) {
		sp.State = SpriteIdle
		sp.X = float64(ctx.size.W)
		sp.Laps++
	}
	sp.Y = float64(ctx.size.H) - ctx.field.At(sp.Column()) - sp.size
}

// Draw paints the sprite image.
func (sp *Sprite) Draw(s core.Surface) {
	s.DrawSprite(math.Floor(sp.X), sp.Y, sp.size)
}

// Hit reports whether (x, y) lies inside the sprite's box grown by the margin.
func (sp *Sprite) Hit(x, y float64) bool {
	left := math.Floor(sp.X)
	return x >= left-sp.margin && x <= left+sp.size+sp.margin &&
		y >= sp.Y-sp.margin && y <= sp.Y+sp.size+sp.margin
}

// BeginDrag starts a drag when (x, y) hits the sprite. The current position
// is recorded so EndDrag can put the sprite back exactly.
func (sp *Sprite) BeginDrag(x, y float64) bool {
	if sp.State == SpriteDragging || !sp.Hit(x, y) {
		return false
	}
	sp.dragStartX, sp.dragStartY = sp.X, sp.Y
	sp.dragOffX = x - sp.X
	sp.dragOffY = y - sp.Y
	sp.State = SpriteDragging
	return true
}

// DragTo moves a dragged sprite, keeping it inside the viewport.
func (sp *Sprite) DragTo(x, y float64, size core.Size) {
	if sp.State != SpriteDragging {
		return
	}
	sp.X = clampFloat(x-sp.dragOffX, 0, float64(size.W)-sp.size)
	sp.Y = clampFloat(y-sp.dragOffY, 0, float64(size.H)-sp.size)
}

// EndDrag puts the sprite back where the drag began and sets it walking,
// whatever it was doing before the press.
func (sp *Sprite) EndDrag() {
	if sp.State != SpriteDragging {
		return
	}
	sp.X, sp.Y = sp.dragStartX, sp.dragStartY
	sp.State = SpriteMoving
}

// fit keeps the sprite consistent with a new viewport.
func (sp *Sprite) fit(size core.Size) {
	if sp.State == SpriteDragging {
		sp.EndDrag()
	}
	if sp.State == SpriteIdle || sp.X > float64(size.W) {
		sp.X = float64(size.W)
	}
	sp.Y = float64(size.H) - sp.size
}

func clampFloat(v, lo, hi float64) float64 {
	if hi < lo {
		hi = lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
