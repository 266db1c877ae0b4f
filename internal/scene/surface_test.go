package scene

import (
	"image/color"

	"snowfall/internal/core"
)

// recorder is a core.Surface that remembers the order of draw calls.
type recorder struct {
	ops      []string
	circles  int
	segments int
	sprites  []core.Point
	area     []core.Point
	ridge    []core.Point
}

func (r *recorder) FillVerticalGradient(x, y, w, h float64, stops []core.GradientStop) {
	r.ops = append(r.ops, "gradient")
}

func (r *recorder) FillCircle(cx, cy, radius float64, c color.NRGBA) {
	r.ops = append(r.ops, "circle")
	r.circles++
}

func (r *recorder) StrokeLines(segs []core.Segment, width float64, c color.NRGBA) {
	r.ops = append(r.ops, "lines")
	r.segments += len(segs)
}

func (r *recorder) StrokeFadingLine(head, tail core.Point, width float64, c color.NRGBA) {
	r.ops = append(r.ops, "trail")
}

func (r *recorder) FillArea(outline []core.Point, baseline, top float64, stops []core.GradientStop) {
	r.ops = append(r.ops, "area")
	r.area = append(r.area[:0], outline...)
}

func (r *recorder) StrokePolyline(points []core.Point, width float64, c color.NRGBA) {
	r.ops = append(r.ops, "polyline")
	r.ridge = append(r.ridge[:0], points...)
}

func (r *recorder) DrawSprite(x, y, size float64) {
	r.ops = append(r.ops, "sprite")
	r.sprites = append(r.sprites, core.Point{X: x, Y: y})
}

func (r *recorder) index(op string) int {
	for i, o := range r.ops {
		if o == op {
			return i
		}
	}
	return -1
}

func (r *recorder) lastIndex(op string) int {
	for i := len(r.ops) - 1; i >= 0; i-- {
		if r.ops[i] == op {
			return i
		}
	}
	return -1
}
