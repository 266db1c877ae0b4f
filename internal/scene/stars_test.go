package scene

import (
	"testing"
)

func TestShootingStarWaitsForDelay(t *testing.T) {
	ctx, p := testContext(800, 600, 0)
	p.ShootingChance = 1
	var ss ShootingStar

	for tick := uint64(0); tick < uint64(p.ShootingDelay); tick++ {
		ctx.tick = tick
		ss.Update(ctx)
		if ss.Active || ss.Launched() {
			t.Fatalf("shooting star launched early at tick %d", tick)
		}
	}
	ctx.tick = uint64(p.ShootingDelay)
	ss.Update(ctx)
	if !ss.Active || ss.Opacity != 1 {
		t.Fatalf("expected launch at tick %d, got active=%v opacity=%.2f", ctx.tick, ss.Active, ss.Opacity)
	}
	if ss.Y < 0 || ss.Y > 200 {
		t.Fatalf("launch should start in the top third, got y=%.2f", ss.Y)
	}
}

func TestShootingStarFadesAndStaysDark(t *testing.T) {
	ctx, p := testContext(800, 600, 1000)
	p.ShootingChance = 0
	var ss ShootingStar
	ss.Reset(ctx.rng, ctx.size)
	ss.X, ss.Y = 790, 0

	prev := ss.Opacity
	for i := 0; i < 200; i++ {
		ss.Update(ctx)
		if !ss.Active {
			break
		}
		if ss.Opacity >= prev {
			t.Fatalf("opacity should fall while active: %.3f -> %.3f", prev, ss.Opacity)
		}
		prev = ss.Opacity
	}
	if ss.Active {
		t.Fatal("star should deactivate after fading or leaving the viewport")
	}
	x, y := ss.X, ss.Y
	for i := 0; i < 100; i++ {
		ss.Update(ctx)
	}
	if ss.Active || ss.X != x || ss.Y != y {
		t.Fatal("inactive star must not move or reactivate without a reset")
	}
}

func TestShootingStarDrawsOnlyWhileActive(t *testing.T) {
	ctx, _ := testContext(800, 600, 0)
	var ss ShootingStar
	r := &recorder{}
	ss.Draw(r)
	if len(r.ops) != 0 {
		t.Fatal("inactive star should not draw")
	}
	ss.Reset(ctx.rng, ctx.size)
	ss.Draw(r)
	if r.index("trail") != 0 {
		t.Fatalf("active star should draw a trail, got %v", r.ops)
	}
	tail := ss.Tail()
	if tail.X <= ss.X || tail.Y >= ss.Y {
		t.Fatalf("tail %+v should trail up and to the right of head (%.1f, %.1f)", tail, ss.X, ss.Y)
	}
}

func TestStarBrightnessRange(t *testing.T) {
	ctx, _ := testContext(300, 200, 0)
	sf := newStarfield(50, ctx.rng, ctx.size)
	for tick := uint64(0); tick < 500; tick += 7 {
		for _, st := range sf.Stars() {
			b := st.Brightness(tick)
			if b < 0.4-1e-9 || b > 1+1e-9 {
				t.Fatalf("brightness %.3f outside [0.4, 1]", b)
			}
		}
	}
	r := &recorder{}
	sf.Draw(r)
	if r.circles != 50 {
		t.Fatalf("expected one circle per star, got %d", r.circles)
	}
}

func TestStarfieldScatterKeepsAppearance(t *testing.T) {
	ctx, _ := testContext(300, 200, 0)
	sf := newStarfield(20, ctx.rng, ctx.size)
	before := append([]TwinkleStar(nil), sf.Stars()...)
	sf.scatter(ctx.rng, ctx.size)
	moved := false
	for i, st := range sf.Stars() {
		if st.Size != before[i].Size || st.Color != before[i].Color || st.Phase != before[i].Phase {
			t.Fatalf("scatter changed star %d appearance", i)
		}
		if st.X != before[i].X {
			moved = true
		}
	}
	if !moved {
		t.Fatal("scatter should reposition stars")
	}
}
