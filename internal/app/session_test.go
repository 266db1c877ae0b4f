package app

import (
	"errors"
	"flag"
	"testing"

	"snowfall/internal/scene"
)

func newTestSession(t *testing.T) (*Session, *scene.World) {
	t.Helper()
	cfg := scene.DefaultConfig()
	cfg.Width = 200
	cfg.Height = 120
	world := scene.NewWithConfig("winter", cfg)
	return NewSession(world, nil, 0), world
}

func TestSessionPauseAndStep(t *testing.T) {
	s, world := newTestSession(t)
	if got := s.Advance(3); got != 3 || world.Tick() != 3 {
		t.Fatalf("advance ran %d steps, tick %d", got, world.Tick())
	}
	if err := s.Apply(ActionPause); err != nil {
		t.Fatal(err)
	}
	if got := s.Advance(3); got != 0 {
		t.Fatalf("paused session stepped %d times", got)
	}
	s.Apply(ActionStep)
	if got := s.Advance(3); got != 1 || world.Tick() != 4 {
		t.Fatalf("single step ran %d steps, tick %d", got, world.Tick())
	}
	if got := s.Advance(3); got != 0 {
		t.Fatal("single step should be consumed")
	}
}

func TestSessionResetAndQuit(t *testing.T) {
	s, world := newTestSession(t)
	s.Advance(10)
	s.Apply(ActionReset)
	if world.Tick() != 0 {
		t.Fatal("reset should rewind the scene")
	}
	if err := s.Apply(ActionQuit); !errors.Is(err, ErrQuit) {
		t.Fatalf("quit should report ErrQuit, got %v", err)
	}
	for a := ActionTogglePlay; a <= ActionVolumeDown; a++ {
		if err := s.Apply(a); err != nil {
			t.Fatalf("music action %d without a player: %v", a, err)
		}
	}
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestSessionPointerDrag(t *testing.T) {
	s, world := newTestSession(t)
	s.SpriteReady(true)
	sp := world.Sprite()
	x, y := sp.X, sp.Y

	s.PointerMove(10, 10)
	if sp.X != x {
		t.Fatal("move without a press should be ignored")
	}
	if !s.PointerDown(x+2, y+2) {
		t.Fatal("press on the sprite should start a drag")
	}
	s.PointerMove(50, 20)
	if sp.State != scene.SpriteDragging || sp.X == x {
		t.Fatal("drag should move the sprite")
	}
	s.PointerUp()
	if sp.X != x || sp.Y != y {
		t.Fatal("release should restore the sprite")
	}
}

func TestConfigBindAndBuild(t *testing.T) {
	cfg := NewConfig()
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	cfg.Bind(fs)
	if err := fs.Parse([]string{"-scene", "snow", "-seed", "5", "-tps", "30"}); err != nil {
		t.Fatal(err)
	}
	if cfg.Scene != "snow" || cfg.Seed != 5 || cfg.TPS != 30 {
		t.Fatalf("flags not bound: %+v", cfg)
	}
	sc, err := cfg.BuildScene(300, 150)
	if err != nil {
		t.Fatal(err)
	}
	if sc.Name() != "snow" || sc.Size().W != 300 || sc.Size().H != 150 {
		t.Fatalf("built %s %+v", sc.Name(), sc.Size())
	}

	cfg.Scene = "blizzard"
	if _, err := cfg.BuildScene(0, 0); !errors.Is(err, ErrUnknownScene) {
		t.Fatalf("expected ErrUnknownScene, got %v", err)
	}
	cfg.ConfigPath = t.TempDir() + "/missing.yaml"
	if _, err := cfg.BuildScene(0, 0); err == nil {
		t.Fatal("missing config file should fail")
	}
}
