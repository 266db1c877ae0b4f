// Package term hosts a scene in a terminal using tcell half-block cells.
package term

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"snowfall/internal/app"
	"snowfall/internal/core"
	"snowfall/internal/render"

	"github.com/gdamore/tcell/v2"
)

var runeActions = map[rune]app.Action{
	'q': app.ActionQuit,
	' ': app.ActionPause,
	'n': app.ActionStep,
	'r': app.ActionReset,
	's': app.ActionReseed,
	'p': app.ActionTogglePlay,
	'm': app.ActionCycleMode,
	'x': app.ActionToggleRandom,
	'+': app.ActionVolumeUp,
	'=': app.ActionVolumeUp,
	'-': app.ActionVolumeDown,
}

var keyActions = map[tcell.Key]app.Action{
	tcell.KeyEscape: app.ActionQuit,
	tcell.KeyCtrlC:  app.ActionQuit,
	tcell.KeyRight:  app.ActionNextTrack,
	tcell.KeyLeft:   app.ActionPrevTrack,
}

// ActionFor maps a key event to a session action.
func ActionFor(ev *tcell.EventKey) app.Action {
	if ev.Key() == tcell.KeyRune {
		return runeActions[ev.Rune()]
	}
	return keyActions[ev.Key()]
}

// Runner drives a session at a fixed tick rate and paints it to a terminal.
type Runner struct {
	screen  tcell.Screen
	session *app.Session
	raster  *render.Raster
	clock   *core.FixedStep
	scale   int

	sprite  <-chan render.SpriteResult
	pressed bool
}

// NewRunner sizes the session's scene to the terminal. screen must already be
// initialised. sprite may be nil when no sprite image is wanted.
func NewRunner(screen tcell.Screen, session *app.Session, scale, tps int, sprite <-chan render.SpriteResult) (*Runner, error) {
	if screen == nil {
		return nil, fmt.Errorf("terminal host: %w", core.ErrNoSurface)
	}
	if scale <= 0 {
		scale = 1
	}
	r := &Runner{
		screen:  screen,
		session: session,
		clock:   core.NewFixedStep(tps),
		scale:   scale,
		sprite:  sprite,
	}
	cols, rows := screen.Size()
	r.raster = newCellRaster(cols, rows, scale)
	r.resizeScene()
	return r, nil
}

// Raster exposes the cell raster for inspection.
func (r *Runner) Raster() *render.Raster { return r.raster }

func (r *Runner) resizeScene() {
	size := r.raster.SceneSize()
	r.session.Scene().Resize(size.W, size.H)
}

// Run processes terminal events and frames until the user quits or ctx is
// cancelled.
func (r *Runner) Run(ctx context.Context) error {
	r.screen.EnableMouse()
	defer r.screen.DisableMouse()

	events := make(chan tcell.Event, 64)
	go func() {
		for {
			ev := r.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()

	ticker := time.NewTicker(r.clock.Interval())
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev := <-events:
			if err := r.HandleEvent(ev); err != nil {
				if errors.Is(err, app.ErrQuit) {
					return nil
				}
				return err
			}
		case now := <-ticker.C:
			r.Frame(now)
		}
	}
}

// HandleEvent applies a single terminal event.
func (r *Runner) HandleEvent(ev tcell.Event) error {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if a := ActionFor(ev); a != app.ActionNone {
			return r.session.Apply(a)
		}
	case *tcell.EventMouse:
		r.handleMouse(ev)
	case *tcell.EventResize:
		r.screen.Sync()
		cols, rows := ev.Size()
		r.raster.Resize(cols, rows*2, r.scale)
		r.resizeScene()
	}
	return nil
}

// cellCentre converts a terminal cell to the scene point at its centre.
func (r *Runner) cellCentre(x, y int) (float64, float64) {
	s := float64(r.scale)
	return (float64(x) + 0.5) * s, (float64(y)*2 + 1) * s
}

func (r *Runner) handleMouse(ev *tcell.EventMouse) {
	x, y := r.cellCentre(ev.Position())
	down := ev.Buttons()&tcell.Button1 != 0
	switch {
	case down && !r.pressed:
		r.pressed = true
		r.session.PointerDown(x, y)
	case down:
		r.session.PointerMove(x, y)
	case r.pressed:
		r.pressed = false
		r.session.PointerUp()
	}
}

func (r *Runner) pollSprite() {
	if r.sprite == nil {
		return
	}
	select {
	case res := <-r.sprite:
		r.sprite = nil
		if res.Err != nil {
			log.Printf("[Sprite] Failed to load image, sprite stays hidden: %v", res.Err)
			return
		}
		r.raster.SetSprite(res.Image)
		r.session.SpriteReady(true)
	default:
	}
}

// Frame advances the session by the ticks due at now and repaints.
func (r *Runner) Frame(now time.Time) {
	r.pollSprite()
	r.session.Advance(r.clock.Advance(now))
	r.Draw()
}

// Draw paints the current scene and the music status line.
func (r *Runner) Draw() {
	r.raster.Clear()
	r.session.Scene().Draw(r.raster)
	flush(r.screen, r.raster)
	if music := r.session.Music(); music != nil {
		_, rows := r.screen.Size()
		drawText(r.screen, 0, rows-1, music.StatusLines()[0], statusStyle)
	}
	r.screen.Show()
}

var statusStyle = tcell.StyleDefault.Foreground(tcell.ColorSilver).Background(tcell.ColorBlack)

func drawText(screen tcell.Screen, x, y int, s string, style tcell.Style) {
	for _, ch := range s {
		screen.SetContent(x, y, ch, nil, style)
		x++
	}
}
