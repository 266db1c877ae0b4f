//go:build ebiten

package app

import (
	"errors"
	"log"

	"snowfall/internal/render"
	"snowfall/internal/ui"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

var keyActions = []struct {
	keys   []ebiten.Key
	action Action
}{
	{[]ebiten.Key{ebiten.KeyQ, ebiten.KeyEscape}, ActionQuit},
	{[]ebiten.Key{ebiten.KeySpace}, ActionPause},
	{[]ebiten.Key{ebiten.KeyN}, ActionStep},
	{[]ebiten.Key{ebiten.KeyR}, ActionReset},
	{[]ebiten.Key{ebiten.KeyS}, ActionReseed},
	{[]ebiten.Key{ebiten.KeyP}, ActionTogglePlay},
	{[]ebiten.Key{ebiten.KeyArrowRight}, ActionNextTrack},
	{[]ebiten.Key{ebiten.KeyArrowLeft}, ActionPrevTrack},
	{[]ebiten.Key{ebiten.KeyM}, ActionCycleMode},
	{[]ebiten.Key{ebiten.KeyX}, ActionToggleRandom},
	{[]ebiten.Key{ebiten.KeyEqual, ebiten.KeyNumpadAdd}, ActionVolumeUp},
	{[]ebiten.Key{ebiten.KeyMinus, ebiten.KeyNumpadSubtract}, ActionVolumeDown},
}

// Game adapts a scene session to the ebiten.Game interface.
type Game struct {
	session *Session
	canvas  *render.Canvas
	overlay *ui.Overlay
	hud     *ui.HUD

	sprite <-chan render.SpriteResult
	scale  int
	w, h   int
}

// New constructs a Game for the provided session. sprite delivers the sprite
// image once it has loaded; the scene keeps the sprite hidden until then.
func New(session *Session, scale int, hud bool, sprite <-chan render.SpriteResult) *Game {
	if scale <= 0 {
		scale = 1
	}
	g := &Game{
		session: session,
		canvas:  render.NewCanvas(),
		overlay: ui.NewOverlay(session.Scene()),
		sprite:  sprite,
		scale:   scale,
	}
	if hud {
		var status ui.StatusProvider
		if music := session.Music(); music != nil {
			status = music
		}
		g.hud = ui.NewHUD(session.Scene(), status)
	}
	return g
}

// Update handles per-frame input and advances the scene.
func (g *Game) Update() error {
	for _, ka := range keyActions {
		for _, k := range ka.keys {
			if !inpututil.IsKeyJustPressed(k) {
				continue
			}
			if err := g.session.Apply(ka.action); err != nil {
				if errors.Is(err, ErrQuit) {
					return ebiten.Termination
				}
				return err
			}
		}
	}

	g.pollSprite()
	g.overlay.Update()
	consumed := g.hud.Update()
	if !consumed {
		g.handlePointer()
	}

	g.session.Advance(1)
	return nil
}

func (g *Game) pollSprite() {
	if g.sprite == nil {
		return
	}
	select {
	case res := <-g.sprite:
		g.sprite = nil
		if res.Err != nil {
			log.Printf("[Sprite] Failed to load image, sprite stays hidden: %v", res.Err)
			return
		}
		g.canvas.SetSprite(res.Image)
		g.session.SpriteReady(true)
	default:
	}
}

func (g *Game) handlePointer() {
	mx, my := ebiten.CursorPosition()
	x, y := float64(mx), float64(my)
	switch {
	case inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft):
		g.session.PointerDown(x, y)
	case inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft):
		g.session.PointerUp()
	case ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft):
		g.session.PointerMove(x, y)
	}
}

// Draw renders the scene, then the debug overlay and the HUD.
func (g *Game) Draw(screen *ebiten.Image) {
	g.canvas.Begin(screen)
	g.session.Scene().Draw(g.canvas)
	g.overlay.Draw(screen)
	g.hud.Draw(screen)
}

// Layout maps the window to scene pixels and resizes the scene to match.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	w, h := outsideWidth/g.scale, outsideHeight/g.scale
	if w <= 0 || h <= 0 {
		s := g.session.Scene().Size()
		return s.W, s.H
	}
	if w != g.w || h != g.h {
		g.w, g.h = w, h
		g.session.Scene().Resize(w, h)
	}
	return w, h
}
