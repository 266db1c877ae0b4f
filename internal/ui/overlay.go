//go:build ebiten

package ui

import (
	"image/color"

	"snowfall/internal/core"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"
)

const stripRows = 6

var (
	thresholdColor = color.RGBA{R: 255, G: 80, B: 80, A: 200}
	fieldLineColor = color.RGBA{R: 255, G: 220, B: 0, A: 220}
	statsBackdrop  = color.RGBA{R: 0, G: 0, B: 0, A: 150}
)

// Overlay draws optional debugging visuals on top of the scene. Key 1 toggles
// the raw field line with its depth strip and melt threshold, key 2 the
// statistics block.
type Overlay struct {
	scene     core.Scene
	showDepth bool
	showStats bool

	stripImg *ebiten.Image
	stripBuf []byte
}

// NewOverlay constructs a new overlay instance.
func NewOverlay(sc core.Scene) *Overlay {
	return &Overlay{scene: sc}
}

// Update toggles the overlay layers.
func (o *Overlay) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit1) {
		o.showDepth = !o.showDepth
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit2) {
		o.showStats = !o.showStats
	}
}

// Draw renders the enabled layers onto the provided screen.
func (o *Overlay) Draw(screen *ebiten.Image) {
	sp, ok := o.scene.(snowProvider)
	if !ok {
		return
	}
	if o.showDepth {
		o.drawDepth(screen, sp)
	}
	if o.showStats {
		o.drawStats(screen, sp)
	}
}

func (o *Overlay) drawDepth(screen *ebiten.Image, sp snowProvider) {
	field := sp.Field()
	if field == nil || field.Width() == 0 {
		return
	}
	w := field.Width()
	if o.stripImg == nil || o.stripImg.Bounds().Dx() != w {
		o.stripImg = ebiten.NewImage(w, stripRows)
	}
	o.stripBuf = fillDepthStrip(o.stripBuf, field.Depths(), field.MaxDepth(), stripRows)
	o.stripImg.WritePixels(o.stripBuf)

	h := screen.Bounds().Dy()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(0, float64(h-stripRows))
	screen.DrawImage(o.stripImg, op)

	depths := field.Depths()
	for x := 2; x < w; x += 2 {
		y0 := float32(float64(h) - depths[x-2])
		y1 := float32(float64(h) - depths[x])
		vector.StrokeLine(screen, float32(x-2), y0, float32(x), y1, 1, fieldLineColor, false)
	}

	y := float32(float64(h) - sp.Config().Params.MeltThreshold)
	vector.StrokeLine(screen, 0, y, float32(w), y, 1, thresholdColor, false)
	mean := float32(float64(h) - field.Mean())
	vector.StrokeLine(screen, 0, mean, float32(w), mean, 1, depthRamp[1], false)
}

func (o *Overlay) drawStats(screen *ebiten.Image, sp snowProvider) {
	lines := statsLines(sp)
	vector.DrawFilledRect(screen, 0, 0, 280, float32(len(lines)*statusHeight+panelPadding), statsBackdrop, false)
	face := basicfont.Face7x13
	for i, line := range lines {
		text.Draw(screen, line, face, 8, panelPadding+4+i*statusHeight, color.White)
	}
}
