package core

import (
	"errors"
	"image/color"
)

// ErrNoSurface is returned by hosts that were given nothing to draw on.
var ErrNoSurface = errors.New("no drawing surface")

// Point is a position on the drawing surface.
type Point struct {
	X, Y float64
}

// Segment is a straight line between two points.
type Segment struct {
	A, B Point
}

// GradientStop places a colour at an offset in [0, 1] along a gradient.
type GradientStop struct {
	Offset float64
	Color  color.NRGBA
}

// Surface is the 2-D drawing collaborator a scene renders into. Hosts provide
// implementations backed by a real canvas (ebiten image, terminal cells).
type Surface interface {
	// FillVerticalGradient paints the rectangle with a top-to-bottom gradient.
	FillVerticalGradient(x, y, w, h float64, stops []GradientStop)
	FillCircle(cx, cy, r float64, c color.NRGBA)
	StrokeLines(segs []Segment, width float64, c color.NRGBA)
	// StrokeFadingLine draws a line whose colour fades from head to transparent at tail.
	StrokeFadingLine(head, tail Point, width float64, c color.NRGBA)
	// FillArea fills the region between the polyline and the bottom edge at
	// baseline using a vertical gradient spanning [top, baseline].
	FillArea(outline []Point, baseline, top float64, stops []GradientStop)
	StrokePolyline(points []Point, width float64, c color.NRGBA)
	// DrawSprite draws the host-owned sprite image at the given box.
	DrawSprite(x, y, size float64)
}

// SampleGradient returns the colour at t along stops, interpolating linearly
// between neighbouring stops. Stops must be sorted by offset; t outside the
// stop range takes the nearest end colour.
func SampleGradient(stops []GradientStop, t float64) color.NRGBA {
	switch {
	case len(stops) == 0:
		return color.NRGBA{}
	case t <= stops[0].Offset:
		return stops[0].Color
	}
	for i := 1; i < len(stops); i++ {
		b := stops[i]
		if t > b.Offset {
			continue
		}
		a := stops[i-1]
		span := b.Offset - a.Offset
		if span <= 0 {
			return b.Color
		}
		f := (t - a.Offset) / span
		return color.NRGBA{
			R: lerp8(a.Color.R, b.Color.R, f),
			G: lerp8(a.Color.G, b.Color.G, f),
			B: lerp8(a.Color.B, b.Color.B, f),
			A: lerp8(a.Color.A, b.Color.A, f),
		}
	}
	return stops[len(stops)-1].Color
}

func lerp8(a, b uint8, f float64) uint8 {
	return uint8(float64(a) + (float64(b)-float64(a))*f + 0.5)
}
