package render

import (
	"image"
	"image/color"
	"math"

	"github.com/gogpu/gg"
	xdraw "golang.org/x/image/draw"

	"snowfall/internal/core"
)

// Raster implements core.Surface on a coarse CPU pixmap. Scene coordinates
// are divided by the scale to land on raster pixels. Terminal hosts map pairs
// of rows onto character cells; the web host encodes it as a preview image.
type Raster struct {
	cols, rows int
	scale      float64
	pm         *gg.Pixmap
	dc         *gg.Context

	sprite image.Image
}

// NewRaster returns a w x h raster covering a scene scale times larger.
func NewRaster(w, h, scale int) *Raster {
	r := &Raster{}
	r.Resize(w, h, scale)
	return r
}

// Resize reallocates the pixmap.
func (r *Raster) Resize(w, h, scale int) {
	if scale <= 0 {
		scale = 1
	}
	r.cols, r.rows = max(w, 0), max(h, 0)
	r.scale = float64(scale)
	if r.dc != nil {
		_ = r.dc.Close()
	}
	r.pm = gg.NewPixmap(r.cols, r.rows)
	r.dc = gg.NewContextForPixmap(r.pm)
}

// Bounds returns the raster dimensions in pixels.
func (r *Raster) Bounds() (w, h int) { return r.cols, r.rows }

// SceneSize reports the scene viewport that maps onto the raster.
func (r *Raster) SceneSize() core.Size {
	s := int(r.scale)
	return core.Size{W: r.cols * s, H: r.rows * s}
}

// Image copies the raster into an RGBA image.
func (r *Raster) Image() *image.RGBA { return r.pm.ToImage() }

// SetSprite sets the image sampled by DrawSprite.
func (r *Raster) SetSprite(img image.Image) { r.sprite = img }

// Clear resets every pixel to opaque black.
func (r *Raster) Clear() {
	if r.dc != nil {
		r.dc.ClearWithColor(gg.Black)
	}
}

// At returns the colour at (x, y) in raster coordinates. Pixels are stored
// premultiplied, which matches straight alpha once the raster is cleared.
func (r *Raster) At(x, y int) color.RGBA {
	if x < 0 || y < 0 || x >= r.cols || y >= r.rows {
		return color.RGBA{}
	}
	return r.pm.At(x, y).(color.RGBA)
}

func (r *Raster) dev(v float64) float64 { return v / r.scale }

func toGG(c color.NRGBA) gg.RGBA {
	return gg.RGBA2(float64(c.R)/255, float64(c.G)/255, float64(c.B)/255, float64(c.A)/255)
}

// verticalBrush maps stops onto device rows top..bottom.
func (r *Raster) verticalBrush(top, bottom float64, stops []core.GradientStop) *gg.LinearGradientBrush {
	b := gg.NewLinearGradientBrush(0, r.dev(top), 0, r.dev(bottom))
	for _, s := range stops {
		b.AddColorStop(s.Offset, toGG(s.Color))
	}
	return b
}

// FillVerticalGradient paints the rectangle with a top-to-bottom gradient.
func (r *Raster) FillVerticalGradient(x, y, w, h float64, stops []core.GradientStop) {
	if h <= 0 || w <= 0 || len(stops) == 0 {
		return
	}
	r.dc.SetFillBrush(r.verticalBrush(y, y+h, stops))
	r.dc.DrawRectangle(r.dev(x), r.dev(y), r.dev(w), r.dev(h))
	_ = r.dc.Fill()
}

// FillCircle fills the circle. Circles smaller than a pixel still mark the one
// containing the centre, otherwise coverage would fade them out entirely.
func (r *Raster) FillCircle(cx, cy, radius float64, c color.NRGBA) {
	r.dc.SetColor(c)
	sr := r.dev(radius)
	if sr < 0.5 {
		r.dc.DrawRectangle(math.Floor(r.dev(cx)), math.Floor(r.dev(cy)), 1, 1)
	} else {
		r.dc.DrawCircle(r.dev(cx), r.dev(cy), sr)
	}
	_ = r.dc.Fill()
}

// lineWidth keeps strokes at least one raster pixel wide.
func (r *Raster) lineWidth(width float64) float64 {
	return math.Max(r.dev(width), 1)
}

// StrokeLines strokes every segment with one brush.
func (r *Raster) StrokeLines(segs []core.Segment, width float64, c color.NRGBA) {
	if len(segs) == 0 {
		return
	}
	r.dc.SetColor(c)
	r.dc.SetLineWidth(r.lineWidth(width))
	for _, s := range segs {
		r.dc.DrawLine(r.dev(s.A.X), r.dev(s.A.Y), r.dev(s.B.X), r.dev(s.B.Y))
	}
	_ = r.dc.Stroke()
}

// StrokeFadingLine strokes from head to tail with alpha falling to zero at
// the tail.
func (r *Raster) StrokeFadingLine(head, tail core.Point, width float64, c color.NRGBA) {
	hx, hy := r.dev(head.X), r.dev(head.Y)
	tx, ty := r.dev(tail.X), r.dev(tail.Y)
	faded := c
	faded.A = 0
	b := gg.NewLinearGradientBrush(hx, hy, tx, ty).
		AddColorStop(0, toGG(c)).
		AddColorStop(1, toGG(faded))
	r.dc.SetStrokeBrush(b)
	r.dc.SetLineWidth(r.lineWidth(width))
	r.dc.DrawLine(hx, hy, tx, ty)
	_ = r.dc.Stroke()
}

// StrokePolyline strokes consecutive points as one path.
func (r *Raster) StrokePolyline(points []core.Point, width float64, c color.NRGBA) {
	if len(points) < 2 {
		return
	}
	r.dc.SetColor(c)
	r.dc.SetLineWidth(r.lineWidth(width))
	r.dc.MoveTo(r.dev(points[0].X), r.dev(points[0].Y))
	for _, p := range points[1:] {
		r.dc.LineTo(r.dev(p.X), r.dev(p.Y))
	}
	_ = r.dc.Stroke()
}

// FillArea closes the outline down to the baseline and fills it with a
// vertical gradient spanning [top, baseline].
func (r *Raster) FillArea(outline []core.Point, baseline, top float64, stops []core.GradientStop) {
	if len(outline) < 2 || len(stops) == 0 {
		return
	}
	first, last := outline[0], outline[len(outline)-1]
	r.dc.SetFillBrush(r.verticalBrush(top, baseline, stops))
	r.dc.MoveTo(r.dev(first.X), r.dev(baseline))
	for _, p := range outline {
		r.dc.LineTo(r.dev(p.X), r.dev(p.Y))
	}
	r.dc.LineTo(r.dev(last.X), r.dev(baseline))
	r.dc.ClosePath()
	_ = r.dc.Fill()
}

// DrawSprite scales the sprite onto its box with nearest-neighbour sampling
// so small rasters keep hard pixel edges.
func (r *Raster) DrawSprite(x, y, size float64) {
	if r.sprite == nil || size <= 0 {
		return
	}
	x0, y0 := int(math.Floor(r.dev(x))), int(math.Floor(r.dev(y)))
	x1, y1 := int(math.Floor(r.dev(x+size))), int(math.Floor(r.dev(y+size)))
	if x1 <= x0 || y1 <= y0 {
		return
	}
	dst := image.Rect(x0, y0, x1, y1)
	xdraw.NearestNeighbor.Scale(r.pm, dst, r.sprite, r.sprite.Bounds(), xdraw.Over, nil)
}
