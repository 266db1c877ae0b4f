package scene

import (
	"image/color"
	"math"

	"snowfall/internal/core"
)

var starPalette = []color.NRGBA{
	{R: 0xFF, G: 0xF7, B: 0xEB, A: 0xFF},
	{R: 0xFF, G: 0x9E, B: 0x75, A: 0xFF},
	{R: 0xD2, G: 0xE9, B: 0xFF, A: 0xFF},
	{R: 0xFF, G: 0xE2, B: 0xB7, A: 0xFF},
}

// TwinkleStar is a fixed background star whose brightness oscillates.
type TwinkleStar struct {
	X, Y         float64
	Size         float64
	Color        color.NRGBA
	Phase        float64
	TwinkleSpeed float64
}

// Brightness returns the star's brightness in [0.4, 1.0] at tick.
func (s *TwinkleStar) Brightness(tick uint64) float64 {
	return math.Sin(float64(tick)*s.TwinkleSpeed+s.Phase)*0.3 + 0.7
}

// Starfield is the batch of twinkling stars created once per session.
type Starfield struct {
	stars []TwinkleStar
	tick  uint64
}

func newStarfield(n int, rng *core.RNG, size core.Size) *Starfield {
	if n < 0 {
		n = 0
	}
	sf := &Starfield{stars: make([]TwinkleStar, n)}
	for i := range sf.stars {
		sf.stars[i] = TwinkleStar{
			Size:         rng.Range(0.2, 0.5),
			Color:        starPalette[rng.IntN(len(starPalette))],
			Phase:        rng.Float64() * math.Pi,
			TwinkleSpeed: rng.Range(0.02, 0.05),
		}
	}
	sf.scatter(rng, size)
	return sf
}

// Stars exposes the star slice.
func (sf *Starfield) Stars() []TwinkleStar { return sf.stars }

// scatter re-randomises every position, keeping size, colour and phase.
func (sf *Starfield) scatter(rng *core.RNG, size core.Size) {
	for i := range sf.stars {
		sf.stars[i].X = rng.Float64() * float64(size.W)
		sf.stars[i].Y = rng.Float64() * float64(size.H)
	}
}

// Update records the tick used for the next Draw.
func (sf *Starfield) Update(ctx *frameContext) { sf.tick = ctx.tick }

// Draw paints every star with its current twinkle alpha.
func (sf *Starfield) Draw(s core.Surface) {
	for i := range sf.stars {
		st := &sf.stars[i]
		c := st.Color
		c.A = alpha8(st.Brightness(sf.tick) * 0.7)
		s.FillCircle(st.X, st.Y, st.Size*2, c)
	}
}

// ShootingStar streaks diagonally across the upper sky and fades out.
type ShootingStar struct {
	X, Y    float64
	Length  float64
	Speed   float64
	Angle   float64
	Opacity float64
	Active  bool

	// launched is false until the first, delayed activation.
	launched bool
}

// Launched reports whether the star has had its first activation.
func (ss *ShootingStar) Launched() bool { return ss.launched }

// Reset starts a new streak from a random point in the top third of the sky.
func (ss *ShootingStar) Reset(rng *core.RNG, size core.Size) {
	ss.X = rng.Float64() * float64(size.W)
	ss.Y = rng.Float64() * float64(size.H) / 3
	ss.Length = rng.Range(40, 120)
	ss.Speed = rng.Range(5, 13)
	ss.Angle = math.Pi*0.75 + rng.Float64()*math.Pi/8
	ss.Opacity = 1
	ss.Active = true
	ss.launched = true
}

// advance moves an active star along its angle and fades it. It never
// reactivates a star.
func (ss *ShootingStar) advance(fade float64, size core.Size) {
	if !ss.Active {
		return
	}
	ss.X += math.Cos(ss.Angle) * ss.Speed
	ss.Y += math.Sin(ss.Angle) * ss.Speed
	ss.Opacity -= fade
	if ss.Opacity <= 0 || ss.Y > float64(size.H) || ss.X < 0 {
		ss.Active = false
	}
}

// Update handles the whole lifecycle: the first activation waits for the
// configured delay, later ones happen with a small chance per tick while idle.
func (ss *ShootingStar) Update(ctx *frameContext) {
	p := ctx.params
	if !ss.launched {
		if ctx.tick >= uint64(max(p.ShootingDelay, 0)) {
			ss.Reset(ctx.rng, ctx.size)
		}
		return
	}
	ss.advance(p.ShootingFade, ctx.size)
	if !ss.Active && ctx.rng.Chance(p.ShootingChance) {
		ss.Reset(ctx.rng, ctx.size)
	}
}

// Tail returns the end of the trail behind the head.
func (ss *ShootingStar) Tail() core.Point {
	return core.Point{
		X: ss.X - math.Cos(ss.Angle)*ss.Length,
		Y: ss.Y - math.Sin(ss.Angle)*ss.Length,
	}
}

// Draw paints the fading trail while the star is active.
func (ss *ShootingStar) Draw(s core.Surface) {
	if !ss.Active {
		return
	}
	head := core.Point{X: ss.X, Y: ss.Y}
	s.StrokeFadingLine(head, ss.Tail(), 2, color.NRGBA{R: 255, G: 255, B: 255, A: alpha8(ss.Opacity)})
}
