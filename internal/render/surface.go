//go:build ebiten

package render

import (
	"image"
	"image/color"
	"math"

	"snowfall/internal/core"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

var (
	whiteImage    = ebiten.NewImage(3, 3)
	whiteSubImage = whiteImage.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
)

func init() {
	whiteImage.Fill(color.White)
}

type gradientKey struct {
	w, h        int
	first, last color.NRGBA
	n           int
}

// Canvas implements core.Surface on top of an ebiten image.
type Canvas struct {
	dst *ebiten.Image

	sky    *ebiten.Image
	skyBuf []byte
	skyKey gradientKey

	sprite *ebiten.Image

	path vector.Path
	vs   []ebiten.Vertex
	is   []uint16
}

// NewCanvas constructs an empty canvas. Call Begin before drawing.
func NewCanvas() *Canvas {
	return &Canvas{}
}

// Begin directs subsequent draw calls at dst.
func (c *Canvas) Begin(dst *ebiten.Image) {
	c.dst = dst
}

// SetSprite uploads the sprite image. A nil image disables sprite drawing.
func (c *Canvas) SetSprite(img image.Image) {
	if img == nil {
		c.sprite = nil
		return
	}
	c.sprite = ebiten.NewImageFromImage(img)
}

// HasSprite reports whether a sprite image has been uploaded.
func (c *Canvas) HasSprite() bool { return c.sprite != nil }

// FillVerticalGradient paints the rectangle from a cached gradient image.
func (c *Canvas) FillVerticalGradient(x, y, w, h float64, stops []core.GradientStop) {
	iw, ih := int(math.Ceil(w)), int(math.Ceil(h))
	if c.dst == nil || iw <= 0 || ih <= 0 {
		return
	}
	key := gradientKey{w: iw, h: ih, n: len(stops)}
	if len(stops) > 0 {
		key.first = stops[0].Color
		key.last = stops[len(stops)-1].Color
	}
	if c.sky == nil || c.skyKey != key {
		c.sky = ebiten.NewImage(iw, ih)
		c.skyBuf = make([]byte, 4*iw*ih)
		fillVerticalGradientRGBA(c.skyBuf, iw, ih, stops)
		c.sky.WritePixels(c.skyBuf)
		c.skyKey = key
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(x, y)
	c.dst.DrawImage(c.sky, op)
}

// FillCircle draws an anti-aliased disc.
func (c *Canvas) FillCircle(cx, cy, r float64, col color.NRGBA) {
	if c.dst == nil {
		return
	}
	vector.DrawFilledCircle(c.dst, float32(cx), float32(cy), float32(r), col, true)
}

// StrokeLines draws each segment independently.
func (c *Canvas) StrokeLines(segs []core.Segment, width float64, col color.NRGBA) {
	if c.dst == nil {
		return
	}
	for _, s := range segs {
		vector.StrokeLine(c.dst, float32(s.A.X), float32(s.A.Y), float32(s.B.X), float32(s.B.Y), float32(width), col, true)
	}
}

// StrokeFadingLine draws a quad whose vertex alpha falls from col at head to
// zero at tail.
func (c *Canvas) StrokeFadingLine(head, tail core.Point, width float64, col color.NRGBA) {
	if c.dst == nil {
		return
	}
	dx, dy := tail.X-head.X, tail.Y-head.Y
	length := math.Hypot(dx, dy)
	if length == 0 {
		return
	}
	nx, ny := -dy/length*width/2, dx/length*width/2
	faded := col
	faded.A = 0

	c.vs = c.vs[:0]
	c.vs = append(c.vs,
		vertex(head.X+nx, head.Y+ny, col),
		vertex(head.X-nx, head.Y-ny, col),
		vertex(tail.X+nx, tail.Y+ny, faded),
		vertex(tail.X-nx, tail.Y-ny, faded),
	)
	c.is = append(c.is[:0], 0, 1, 2, 1, 3, 2)
	op := &ebiten.DrawTrianglesOptions{AntiAlias: true}
	c.dst.DrawTriangles(c.vs, c.is, whiteSubImage, op)
}

// FillArea fills the polygon under outline down to baseline. Vertex colours
// sample the gradient by height between top and baseline.
func (c *Canvas) FillArea(outline []core.Point, baseline, top float64, stops []core.GradientStop) {
	if c.dst == nil || len(outline) < 2 {
		return
	}
	c.path = vector.Path{}
	c.path.MoveTo(float32(outline[0].X), float32(baseline))
	for _, p := range outline {
		c.path.LineTo(float32(p.X), float32(p.Y))
	}
	c.path.LineTo(float32(outline[len(outline)-1].X), float32(baseline))
	c.path.Close()

	c.vs, c.is = c.path.AppendVerticesAndIndicesForFilling(c.vs[:0], c.is[:0])
	span := baseline - top
	for i := range c.vs {
		t := 1.0
		if span > 0 {
			t = (float64(c.vs[i].DstY) - top) / span
		}
		setVertexColor(&c.vs[i], core.SampleGradient(stops, t))
	}
	op := &ebiten.DrawTrianglesOptions{AntiAlias: true, FillRule: ebiten.EvenOdd}
	c.dst.DrawTriangles(c.vs, c.is, whiteSubImage, op)
}

// StrokePolyline draws a connected line through points.
func (c *Canvas) StrokePolyline(points []core.Point, width float64, col color.NRGBA) {
	if c.dst == nil || len(points) < 2 {
		return
	}
	c.path = vector.Path{}
	c.path.MoveTo(float32(points[0].X), float32(points[0].Y))
	for _, p := range points[1:] {
		c.path.LineTo(float32(p.X), float32(p.Y))
	}
	opts := &vector.StrokeOptions{Width: float32(width), LineJoin: vector.LineJoinRound}
	c.vs, c.is = c.path.AppendVerticesAndIndicesForStroke(c.vs[:0], c.is[:0], opts)
	for i := range c.vs {
		setVertexColor(&c.vs[i], col)
	}
	op := &ebiten.DrawTrianglesOptions{AntiAlias: true}
	c.dst.DrawTriangles(c.vs, c.is, whiteSubImage, op)
}

// DrawSprite scales the sprite image into the size×size box at (x, y).
func (c *Canvas) DrawSprite(x, y, size float64) {
	if c.dst == nil || c.sprite == nil {
		return
	}
	b := c.sprite.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(size/float64(b.Dx()), size/float64(b.Dy()))
	op.GeoM.Translate(x, y)
	op.Filter = ebiten.FilterLinear
	c.dst.DrawImage(c.sprite, op)
}

func vertex(x, y float64, col color.NRGBA) ebiten.Vertex {
	v := ebiten.Vertex{DstX: float32(x), DstY: float32(y)}
	setVertexColor(&v, col)
	return v
}

func setVertexColor(v *ebiten.Vertex, col color.NRGBA) {
	v.SrcX = 1
	v.SrcY = 1
	v.ColorR = float32(col.R) / 0xff
	v.ColorG = float32(col.G) / 0xff
	v.ColorB = float32(col.B) / 0xff
	v.ColorA = float32(col.A) / 0xff
}
