package scene

import (
	"testing"

	"snowfall/internal/core"
)

func testContext(w, h int, tick uint64) (*frameContext, *Params) {
	p := DefaultConfig().Params
	p.SwayAmount = 0
	size := core.Size{W: w, H: h}
	return &frameContext{
		tick:   tick,
		size:   size,
		field:  NewHeightField(w, p),
		rng:    core.NewRNG(5),
		params: &p,
	}, &p
}

func TestSnowflakeLandsAndRespawns(t *testing.T) {
	ctx, _ := testContext(200, 100, 1)
	f := Snowflake{X: 50.5, Y: 95.5, Size: 2, Speed: 0.5}

	if got := f.Update(ctx); got != FlakeGrounded {
		t.Fatalf("expected grounded outcome, got %d", got)
	}
	if f.Y >= 0 {
		t.Fatalf("respawned flake should restart above the viewport, got y=%.2f", f.Y)
	}
	if ctx.field.At(50) <= 0 {
		t.Fatal("landing should raise the column under the flake")
	}
	if f.X < 0 || f.X >= 200 {
		t.Fatalf("respawn x %.2f outside viewport", f.X)
	}
}

func TestSnowflakeLandsHigherOnDeeperSnow(t *testing.T) {
	ctx, _ := testContext(200, 100, 1)
	for i := range ctx.field.Depths() {
		ctx.field.Depths()[i] = 30
	}
	f := Snowflake{X: 80, Y: 66, Size: 2, Speed: 0.5}
	if got := f.Update(ctx); got != FlakeGrounded {
		t.Fatalf("flake within slack of a 30px drift should land, got %d", got)
	}

	f = Snowflake{X: 80, Y: 60, Size: 2, Speed: 0.5}
	if got := f.Update(ctx); got != FlakeFalling {
		t.Fatalf("flake well above the drift should keep falling, got %d", got)
	}
}

func TestSnowflakeOutsideFieldEscapes(t *testing.T) {
	ctx, _ := testContext(200, 100, 1)
	f := Snowflake{X: -3, Y: 99.8, Size: 2, Speed: 1}
	if got := f.Update(ctx); got != FlakeEscaped {
		t.Fatalf("flake left of the field should escape, got %d", got)
	}
	for c, d := range ctx.field.Depths() {
		if d != 0 {
			t.Fatalf("escaped flake deposited into column %d", c)
		}
	}
}

func TestSnowflakeSegments(t *testing.T) {
	f := Snowflake{X: 10, Y: 20, Size: 2}
	segs := f.Segments(nil)
	if len(segs) != 18 {
		t.Fatalf("expected 18 segments, got %d", len(segs))
	}
	for _, s := range segs {
		for _, p := range []core.Point{s.A, s.B} {
			dx, dy := p.X-f.X, p.Y-f.Y
			if dx*dx+dy*dy > (f.Size*1.5)*(f.Size*1.5)+1e-9 {
				t.Fatalf("segment point %+v outside the crystal radius", p)
			}
		}
	}
}

func TestFlakeArenaSwapRemove(t *testing.T) {
	var a flakeArena
	for i := 0; i < 4; i++ {
		a.add(Snowflake{X: float64(i)})
	}
	a.removeAt(1)
	if a.len() != 3 {
		t.Fatalf("expected 3 flakes, got %d", a.len())
	}
	if a.flakes[1].X != 3 {
		t.Fatalf("last flake should fill the hole, got x=%.0f", a.flakes[1].X)
	}
	a.removeAt(2)
	if a.len() != 2 || a.flakes[0].X != 0 || a.flakes[1].X != 3 {
		t.Fatalf("removing the tail should keep the rest, got %+v", a.flakes)
	}
}
