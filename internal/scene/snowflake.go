package scene

import (
	"image/color"
	"math"

	"snowfall/internal/core"
)

// frameContext carries the per-tick state entities read during Update.
type frameContext struct {
	tick   uint64
	size   core.Size
	field  *HeightField
	rng    *core.RNG
	params *Params
}

// entity is the update/draw contract shared by the sky layers.
type entity interface {
	Update(ctx *frameContext)
	Draw(s core.Surface)
}

// FlakeOutcome reports what happened to a snowflake during one update.
type FlakeOutcome uint8

const (
	// FlakeFalling means the flake is still in the air.
	FlakeFalling FlakeOutcome = iota
	// FlakeGrounded means the flake landed, deposited snow and was respawned.
	FlakeGrounded
	// FlakeEscaped means the flake fell past the viewport without landing.
	FlakeEscaped
)

// flakeRespawnY is where grounded flakes restart, just above the viewport.
const flakeRespawnY = -10

// Snowflake is a single falling flake.
type Snowflake struct {
	X, Y          float64
	Size          float64
	Speed         float64
	Wind          float64
	Opacity       float64
	SwayOffset    float64
	Rotation      float64
	RotationSpeed float64
}

// newSnowflake spawns a flake somewhere above the viewport so the initial batch
// does not arrive as a single sheet.
func newSnowflake(rng *core.RNG, size core.Size) Snowflake {
	var f Snowflake
	f.reset(rng, size, -rng.Float64()*float64(size.H))
	return f
}

func (f *Snowflake) reset(rng *core.RNG, size core.Size, y float64) {
	f.X = rng.Float64() * float64(size.W)
	f.Y = y
	f.Size = rng.Range(1.5, 3.5)
	f.Speed = rng.Range(0.08, 1.08)
	f.Wind = rng.Range(-0.2, 0.2)
	f.Opacity = rng.Range(0.4, 0.8)
	f.SwayOffset = rng.Float64() * 2 * math.Pi
	f.Rotation = rng.Float64() * 2 * math.Pi
	f.RotationSpeed = rng.Range(-0.01, 0.01)
}

// Column returns the height-field column under the flake.
func (f *Snowflake) Column() int {
	return int(math.Floor(f.X))
}

// Update advances the flake one tick. A flake that reaches the snow surface
// deposits into the field and respawns above the viewport. Flakes over columns
// outside the field never land and eventually escape through the bottom.
func (f *Snowflake) Update(ctx *frameContext) FlakeOutcome {
	p := ctx.params
	f.X += f.Wind + math.Sin(float64(ctx.tick)/60+f.SwayOffset)*p.SwayAmount
	f.Y += f.Speed
	f.Rotation += f.RotationSpeed

	col := f.Column()
	if ctx.field != nil && ctx.field.Contains(col) {
		ground := float64(ctx.size.H) - ctx.field.At(col)
		if f.Y > ground-p.GroundSlack {
			ctx.field.Deposit(col, f.Size*p.ImpactScale, ctx.rng)
			f.reset(ctx.rng, ctx.size, flakeRespawnY)
			return FlakeGrounded
		}
	}
	if f.Y > float64(ctx.size.H) {
		return FlakeEscaped
	}
	return FlakeFalling
}

// Segments appends the six-armed crystal outline to dst.
func (f *Snowflake) Segments(dst []core.Segment) []core.Segment {
	s := f.Size
	arm := [3]core.Segment{
		{A: core.Point{X: 0, Y: 0}, B: core.Point{X: s * 1.5, Y: 0}},
		{A: core.Point{X: s * 0.5, Y: 0}, B: core.Point{X: s * 0.8, Y: s * 0.3}},
		{A: core.Point{X: s * 0.5, Y: 0}, B: core.Point{X: s * 0.8, Y: -s * 0.3}},
	}
	for i := 0; i < 6; i++ {
		angle := f.Rotation + float64(i)*math.Pi/3
		sin, cos := math.Sincos(angle)
		for _, seg := range arm {
			dst = append(dst, core.Segment{
				A: rotateAbout(seg.A, sin, cos, f.X, f.Y),
				B: rotateAbout(seg.B, sin, cos, f.X, f.Y),
			})
		}
	}
	return dst
}

func rotateAbout(p core.Point, sin, cos, ox, oy float64) core.Point {
	return core.Point{X: ox + p.X*cos - p.Y*sin, Y: oy + p.X*sin + p.Y*cos}
}

// Draw strokes the flake onto the surface.
func (f *Snowflake) Draw(s core.Surface, scratch []core.Segment) []core.Segment {
	scratch = f.Segments(scratch[:0])
	s.StrokeLines(scratch, f.Size*0.1, color.NRGBA{R: 255, G: 255, B: 255, A: alpha8(f.Opacity)})
	return scratch
}

// flakeArena is a contiguous live set of snowflakes with swap-remove.
type flakeArena struct {
	flakes []Snowflake
}

func (a *flakeArena) add(f Snowflake) { a.flakes = append(a.flakes, f) }

func (a *flakeArena) len() int { return len(a.flakes) }

// removeAt swaps the last flake into i and shrinks the set.
func (a *flakeArena) removeAt(i int) {
	last := len(a.flakes) - 1
	a.flakes[i] = a.flakes[last]
	a.flakes = a.flakes[:last]
}

func (a *flakeArena) clear() { a.flakes = a.flakes[:0] }

func alpha8(a float64) uint8 {
	if a <= 0 {
		return 0
	}
	if a >= 1 {
		return 255
	}
	return uint8(math.Round(a * 255))
}
