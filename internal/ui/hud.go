//go:build ebiten

package ui

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"snowfall/internal/core"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"
)

type parameterProvider interface {
	Parameters() core.ParameterSnapshot
}

// StatusProvider contributes read-only text lines to the HUD.
type StatusProvider interface {
	StatusLines() []string
}

var (
	panelColor    = color.RGBA{R: 10, G: 14, B: 30, A: 200}
	titleColor    = color.RGBA{R: 200, G: 210, B: 235, A: 255}
	labelColor    = color.RGBA{R: 220, G: 224, B: 240, A: 255}
	dimColor      = color.RGBA{R: 140, G: 148, B: 170, A: 255}
	buttonColor   = color.RGBA{R: 54, G: 62, B: 88, A: 255}
	disabledColor = color.RGBA{R: 30, G: 34, B: 48, A: 255}
)

// HUD is a translucent panel in the top-right corner listing the scene's
// adjustable parameters with -/+ buttons, plus status lines such as the
// current music track. H toggles it.
type HUD struct {
	scene  core.Scene
	status StatusProvider

	controls    []controlState
	intSetter   core.IntParameterSetter
	floatSetter core.FloatParameterSetter
	title       string
	hidden      bool

	panel  *ebiten.Image
	height int
	origin image.Point
}

// NewHUD constructs a HUD for sc. status may be nil.
func NewHUD(sc core.Scene, status StatusProvider) *HUD {
	h := &HUD{scene: sc, status: status, title: buildTitle(sc)}
	if provider, ok := sc.(core.ParameterControlsProvider); ok {
		h.controls = newControlStates(provider.ParameterControls())
	}
	h.intSetter, _ = sc.(core.IntParameterSetter)
	h.floatSetter, _ = sc.(core.FloatParameterSetter)
	return h
}

func buildTitle(sc core.Scene) string {
	if sc == nil || sc.Name() == "" {
		return "Controls"
	}
	name := sc.Name()
	return fmt.Sprintf("%s%s controls", strings.ToUpper(name[:1]), name[1:])
}

func (h *HUD) statusLines() []string {
	if h.status == nil {
		return nil
	}
	return h.status.StatusLines()
}

func (h *HUD) controlsTop() int {
	return panelPadding + headerBaseline + 8 + len(h.statusLines())*statusHeight
}

// Update refreshes values from the scene and handles clicks. It reports
// whether the mouse press landed on the panel so the host does not also
// treat it as a drag.
func (h *HUD) Update() bool {
	if h == nil {
		return false
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyH) {
		h.hidden = !h.hidden
	}
	if h.hidden {
		return false
	}
	if provider, ok := h.scene.(parameterProvider); ok {
		params := indexParameters(provider.Parameters())
		for i := range h.controls {
			h.controls[i].refresh(params)
		}
	}
	layoutControls(h.controls, panelWidth, h.controlsTop())
	h.height = h.controlsTop() + len(h.controls)*lineHeight + panelPadding

	if !inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		return false
	}
	mx, my := ebiten.CursorPosition()
	px, py := mx-h.origin.X, my-h.origin.Y
	if !pointInRect(px, py, image.Rect(0, 0, panelWidth, h.height)) {
		return false
	}
	for i := range h.controls {
		c := &h.controls[i]
		switch {
		case pointInRect(px, py, c.minusRect):
			c.adjust(-1, h.intSetter, h.floatSetter)
		case pointInRect(px, py, c.plusRect):
			c.adjust(1, h.intSetter, h.floatSetter)
		}
	}
	return true
}

// Draw paints the panel anchored to the top-right corner of screen.
func (h *HUD) Draw(screen *ebiten.Image) {
	if h == nil || h.hidden || h.height <= 0 {
		return
	}
	if h.panel == nil || h.panel.Bounds().Dy() != h.height {
		h.panel = ebiten.NewImage(panelWidth, h.height)
	}
	h.panel.Clear()
	vector.DrawFilledRect(h.panel, 0, 0, panelWidth, float32(h.height), panelColor, false)

	face := basicfont.Face7x13
	y := panelPadding + headerBaseline
	text.Draw(h.panel, h.title, face, panelPadding, y, titleColor)
	for _, line := range h.statusLines() {
		y += statusHeight
		text.Draw(h.panel, line, face, panelPadding, y, dimColor)
	}

	for i := range h.controls {
		c := &h.controls[i]
		text.Draw(h.panel, c.control.Label, face, panelPadding, c.top+labelBaseline, labelColor)
		valueColor := labelColor
		if !c.hasValue {
			valueColor = dimColor
		}
		width := text.BoundString(face, c.value).Dx()
		text.Draw(h.panel, c.value, face, c.minusRect.Min.X-buttonGap-width, c.top+labelBaseline, valueColor)

		_, canDec := c.target(-1)
		_, canInc := c.target(1)
		h.drawButton(c.minusRect, "-", canDec)
		h.drawButton(c.plusRect, "+", canInc)
	}

	h.origin = image.Pt(screen.Bounds().Dx()-panelWidth, 0)
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(h.origin.X), float64(h.origin.Y))
	screen.DrawImage(h.panel, op)
}

func (h *HUD) drawButton(rect image.Rectangle, label string, enabled bool) {
	bg, fg := buttonColor, labelColor
	if !enabled {
		bg, fg = disabledColor, dimColor
	}
	vector.DrawFilledRect(h.panel, float32(rect.Min.X), float32(rect.Min.Y), float32(rect.Dx()), float32(rect.Dy()), bg, false)

	face := basicfont.Face7x13
	bounds := text.BoundString(face, label)
	x := rect.Min.X + (rect.Dx()-bounds.Dx())/2
	y := rect.Min.Y + (rect.Dy()-bounds.Dy())/2 + bounds.Dy()
	text.Draw(h.panel, label, face, x, y, fg)
}
