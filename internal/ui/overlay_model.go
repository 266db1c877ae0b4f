package ui

import (
	"fmt"
	"image/color"

	"snowfall/internal/scene"
)

// snowProvider is implemented by scenes exposing the snow simulation state.
type snowProvider interface {
	Tick() uint64
	Field() *scene.HeightField
	Flakes() []scene.Snowflake
	Stats() scene.Stats
	Sprite() *scene.Sprite
	Config() scene.Config
}

var depthRamp = []color.RGBA{
	{R: 20, G: 40, B: 120, A: 160},
	{R: 90, G: 200, B: 230, A: 180},
	{R: 250, G: 250, B: 250, A: 200},
	{R: 255, G: 140, B: 40, A: 220},
}

// depthColor maps a depth in [0, max] onto the overlay ramp.
func depthColor(depth, max float64) color.RGBA {
	if max <= 0 {
		return depthRamp[0]
	}
	t := clamp01(depth / max)
	pos := t * float64(len(depthRamp)-1)
	i := int(pos)
	if i >= len(depthRamp)-1 {
		return depthRamp[len(depthRamp)-1]
	}
	f := pos - float64(i)
	a, b := depthRamp[i], depthRamp[i+1]
	return color.RGBA{
		R: mix8(a.R, b.R, f),
		G: mix8(a.G, b.G, f),
		B: mix8(a.B, b.B, f),
		A: mix8(a.A, b.A, f),
	}
}

func mix8(a, b uint8, f float64) uint8 {
	return uint8(float64(a) + (float64(b)-float64(a))*f + 0.5)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// fillDepthStrip writes one coloured column per field column into an RGBA
// buffer of len(depths) x rows pixels. The buffer is reallocated when short.
func fillDepthStrip(buf []byte, depths []float64, max float64, rows int) []byte {
	w := len(depths)
	need := 4 * w * rows
	if cap(buf) < need {
		buf = make([]byte, need)
	}
	buf = buf[:need]
	for x, d := range depths {
		c := depthColor(d, max)
		for y := 0; y < rows; y++ {
			i := 4 * (y*w + x)
			buf[i] = c.R
			buf[i+1] = c.G
			buf[i+2] = c.B
			buf[i+3] = c.A
		}
	}
	return buf
}

// statsLines summarises the simulation for the text overlay.
func statsLines(sp snowProvider) []string {
	st := sp.Stats()
	lines := []string{
		fmt.Sprintf("tick %d", sp.Tick()),
		fmt.Sprintf("flakes %d (initial %d, spawned %d)", len(sp.Flakes()), st.Initial, st.Spawned),
		fmt.Sprintf("grounded %d culled %d", st.Grounded, st.Culled),
	}
	if f := sp.Field(); f != nil {
		lines = append(lines, fmt.Sprintf("depth mean %.1f / max %.0f", f.Mean(), f.MaxDepth()))
	}
	if s := sp.Sprite(); s != nil {
		lines = append(lines, fmt.Sprintf("sprite %s x=%.0f laps %d", s.State, s.X, s.Laps))
	} else {
		lines = append(lines, "sprite waiting")
	}
	return lines
}
