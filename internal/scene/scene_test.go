package scene

import (
	"slices"
	"sync"
	"testing"

	"snowfall/internal/core"
)

func smallConfig() Config {
	cfg := DefaultConfig()
	cfg.Width = 320
	cfg.Height = 240
	cfg.Seed = 11
	return cfg
}

func TestLongRunKeepsFlakeAccounting(t *testing.T) {
	world := NewWithConfig("winter", smallConfig())
	world.SetSpriteReady(true)
	maxDepth := world.Config().Params.MaxDepth

	for i := 0; i < 10000; i++ {
		world.Step()
		if i%500 != 0 {
			continue
		}
		for c, d := range world.Field().Depths() {
			if d < 0 || d > maxDepth {
				t.Fatalf("tick %d: column %d depth %.3f out of range", world.Tick(), c, d)
			}
		}
	}

	stats := world.Stats()
	live := len(world.Flakes())
	if want := stats.Initial + stats.Spawned - stats.Culled; live != want {
		t.Fatalf("live flakes %d, want initial %d + spawned %d - culled %d = %d",
			live, stats.Initial, stats.Spawned, stats.Culled, want)
	}
	if stats.Spawned != 10000/world.Config().Params.SpawnInterval {
		t.Fatalf("unexpected spawn count %d", stats.Spawned)
	}
	if stats.Grounded == 0 {
		t.Fatal("expected snow to accumulate over a long run")
	}
	for _, d := range world.Field().Depths() {
		if d < 0 {
			t.Fatal("negative depth after long run")
		}
	}
}

func TestResetDeterministic(t *testing.T) {
	a := NewWithConfig("winter", smallConfig())
	b := NewWithConfig("winter", smallConfig())
	for i := 0; i < 400; i++ {
		a.Step()
		b.Step()
	}
	if !slices.Equal(a.Field().Depths(), b.Field().Depths()) {
		t.Fatal("same seed should produce the same snow")
	}

	initial := append([]float64(nil), a.Field().Depths()...)
	a.Reset(0)
	if a.Tick() != 0 || a.Field().Mean() != 0 {
		t.Fatal("reset should clear ticks and snow")
	}
	for i := 0; i < 400; i++ {
		a.Step()
	}
	if !slices.Equal(initial, a.Field().Depths()) {
		t.Fatal("reset with the configured seed should replay the run")
	}

	a.Reset(777)
	for i := 0; i < 400; i++ {
		a.Step()
	}
	if slices.Equal(initial, a.Field().Depths()) {
		t.Fatal("a different seed should produce a different run")
	}
}

func TestSpawnCadence(t *testing.T) {
	cfg := smallConfig()
	cfg.Params.InitialFlakes = 0
	world := NewWithConfig("winter", cfg)
	for i := 0; i < cfg.Params.SpawnInterval-1; i++ {
		world.Step()
	}
	if world.Stats().Spawned != 0 {
		t.Fatal("no flake should spawn before the interval")
	}
	world.Step()
	if world.Stats().Spawned != 1 {
		t.Fatalf("expected a spawn on tick %d", cfg.Params.SpawnInterval)
	}
}

func TestEscapedFlakesAreCulled(t *testing.T) {
	cfg := smallConfig()
	cfg.Params.InitialFlakes = 0
	cfg.Params.SpawnInterval = 0
	world := NewWithConfig("winter", cfg)
	world.flakes.add(Snowflake{X: -40, Y: 239.9, Size: 2, Speed: 1})
	world.flakes.add(Snowflake{X: 100, Y: 10, Size: 2, Speed: 1})

	world.Step()
	if got := len(world.Flakes()); got != 1 {
		t.Fatalf("expected the off-field flake to be culled, %d remain", got)
	}
	if world.Flakes()[0].X < 90 {
		t.Fatal("the wrong flake was removed")
	}
	if world.Stats().Culled != 1 {
		t.Fatalf("culled count %d, want 1", world.Stats().Culled)
	}
}

func TestShootingStarFirstLaunch(t *testing.T) {
	cfg := smallConfig()
	cfg.Params.StarCount = 0
	world := NewWithConfig("winter", cfg)
	for i := 0; i < cfg.Params.ShootingDelay-1; i++ {
		world.Step()
	}
	if world.ShootingStars()[0].Launched() {
		t.Fatalf("shooting star launched before tick %d", cfg.Params.ShootingDelay)
	}
	world.Step()
	if !world.ShootingStars()[0].Active {
		t.Fatalf("shooting star should be active at tick %d", world.Tick())
	}
}

func TestResizeAppliesOnNextStep(t *testing.T) {
	world := NewWithConfig("winter", smallConfig())
	for i := 0; i < 300; i++ {
		world.Step()
	}
	world.Resize(500, 240)
	if world.Field().Width() != 320 {
		t.Fatal("resize must wait for the next step")
	}
	world.Step()
	if world.Size() != (core.Size{W: 500, H: 240}) {
		t.Fatalf("size after resize %+v", world.Size())
	}
	if world.Field().Width() != 500 {
		t.Fatalf("field width %d, want 500", world.Field().Width())
	}
	for _, st := range world.Starfield().Stars() {
		if st.X < 0 || st.X > 500 || st.Y < 0 || st.Y > 240 {
			t.Fatalf("star %+v outside resized viewport", st)
		}
	}

}

func TestHeightOnlyResizeRebuildsField(t *testing.T) {
	world := NewWithConfig("winter", smallConfig())
	for i := 0; i < 600; i++ {
		world.Step()
	}
	if world.Field().Mean() == 0 {
		t.Fatal("snow should have settled before the resize")
	}
	before := world.Field()
	world.Resize(320, 400)
	world.Step()
	if world.Field() == before {
		t.Fatal("height-only resize should replace the field")
	}
	if world.Field().Width() != 320 {
		t.Fatalf("field width %d, want 320", world.Field().Width())
	}
	// One step of deposits after the rebuild stays far below what 600 ticks piled up.
	if world.Field().Mean() >= before.Mean() {
		t.Fatalf("field mean %.3f should restart below %.3f", world.Field().Mean(), before.Mean())
	}

	same := world.Field()
	world.Resize(320, 400)
	world.Step()
	if world.Field() != same {
		t.Fatal("resize to the current size should keep the field")
	}
}

func TestResizeFromAnotherGoroutine(t *testing.T) {
	world := NewWithConfig("winter", smallConfig())
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 50; i++ {
			world.Resize(200+i, 150+i)
		}
	}()
	for i := 0; i < 200; i++ {
		world.Step()
		if world.Field().Width() != world.Size().W {
			t.Fatalf("field width %d does not match viewport %d", world.Field().Width(), world.Size().W)
		}
	}
	wg.Wait()
	world.Step()
	if world.Size() != (core.Size{W: 249, H: 199}) {
		t.Fatalf("last resize should win, got %+v", world.Size())
	}
}

func TestDrawOrder(t *testing.T) {
	world := NewWithConfig("winter", smallConfig())
	world.SetSpriteReady(true)
	world.Step()
	r := &recorder{}
	world.Draw(r)

	if r.index("gradient") != 0 {
		t.Fatalf("sky should be painted first, got %v", r.ops[:3])
	}
	if r.circles != world.Config().Params.StarCount {
		t.Fatalf("expected %d stars drawn, got %d", world.Config().Params.StarCount, r.circles)
	}
	if r.lastIndex("circle") > r.index("lines") {
		t.Fatal("stars should be drawn before snowflakes")
	}
	if r.lastIndex("lines") > r.index("area") {
		t.Fatal("snowflakes should be drawn before the snow surface")
	}
	if r.index("area") > r.index("polyline") {
		t.Fatal("surface fill should precede its highlight")
	}
	if r.lastIndex("sprite") != len(r.ops)-1 {
		t.Fatal("sprite should be drawn last")
	}
	if got := r.area[len(r.area)-1].X; got != 320 {
		t.Fatalf("surface outline should reach the right edge, got %.0f", got)
	}
	if r.ridge[0] != (core.Point{X: 0, Y: 240}) {
		t.Fatalf("highlight should start at the bottom-left corner, got %+v", r.ridge[0])
	}
}

func TestSpriteWaitsForImage(t *testing.T) {
	world := NewWithConfig("winter", smallConfig())
	fillField(world.Field(), 50)
	world.Step()
	r := &recorder{}
	world.Draw(r)
	if r.index("sprite") != -1 || world.Sprite() != nil {
		t.Fatal("sprite should stay hidden until its image is ready")
	}
	if world.PointerDown(320, 200) {
		t.Fatal("hidden sprite should ignore the pointer")
	}

	world.SetSpriteReady(true)
	world.Step()
	if world.Sprite().State != SpriteMoving {
		t.Fatalf("ready sprite should start walking, got %s", world.Sprite().State)
	}
}

func TestPointerDragThroughWorld(t *testing.T) {
	world := NewWithConfig("winter", smallConfig())
	world.SetSpriteReady(true)
	sp := world.Sprite()
	x, y := sp.X, sp.Y

	if !world.PointerDown(x+1, y+1) {
		t.Fatal("press on the sprite should start a drag")
	}
	world.PointerMove(100, 100)
	if sp.X == x {
		t.Fatal("drag should move the sprite")
	}
	world.PointerUp()
	if sp.X != x || sp.Y != y || sp.State != SpriteMoving {
		t.Fatalf("release should restore the sprite and set it walking, got (%.1f, %.1f) %s", sp.X, sp.Y, sp.State)
	}
}

func TestRegisteredVariants(t *testing.T) {
	scenes := core.Scenes()
	for _, name := range []string{"winter", "snow", "stars"} {
		if scenes[name] == nil {
			t.Fatalf("scene %q not registered", name)
		}
	}

	snow := scenes["snow"](map[string]string{"w": "200", "h": "100"}).(*World)
	if snow.Starfield() != nil || len(snow.ShootingStars()) != 0 {
		t.Fatal("snow variant should not build stars")
	}
	r := &recorder{}
	snow.Step()
	snow.Draw(r)
	if r.index("gradient") != -1 {
		t.Fatal("snow variant should not paint the sky")
	}

	stars := scenes["stars"](map[string]string{"layers": "stars"}).(*World)
	if len(stars.Flakes()) != 0 || stars.Starfield() == nil {
		t.Fatal("explicit layers should override the variant default")
	}
}

func TestParameterSetters(t *testing.T) {
	world := NewWithConfig("winter", smallConfig())
	world.SetSpriteReady(true)

	if !world.SetFloatParameter("sprite_step", 50) {
		t.Fatal("sprite_step should be adjustable")
	}
	if world.Config().Params.SpriteStep != 20 || world.Sprite().step != 20 {
		t.Fatal("sprite_step should clamp to 20 and reach the live sprite")
	}
	if !world.SetFloatParameter("shooting_chance", -1) || world.Config().Params.ShootingChance != 0 {
		t.Fatal("shooting_chance should clamp at zero")
	}
	if !world.SetIntParameter("spawn_interval", -5) || world.Config().Params.SpawnInterval != 0 {
		t.Fatal("spawn_interval should clamp at zero")
	}
	if world.SetFloatParameter("unknown", 1) || world.SetIntParameter("unknown", 1) {
		t.Fatal("unknown keys should be rejected")
	}

	for _, ctl := range world.ParameterControls() {
		found := false
		for _, g := range world.Parameters().Groups {
			for _, p := range g.Params {
				if p.Key == ctl.Key {
					found = true
				}
			}
		}
		if !found {
			t.Fatalf("control %q missing from parameter snapshot", ctl.Key)
		}
	}
}
