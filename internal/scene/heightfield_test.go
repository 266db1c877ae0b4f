package scene

import (
	"math"
	"testing"

	"snowfall/internal/core"
)

func exactParams() Params {
	p := DefaultConfig().Params
	p.JitterMin = 1
	p.JitterMax = 1
	return p
}

func TestDepositFalloffScenario(t *testing.T) {
	p := exactParams()
	field := NewHeightField(1920, p)
	field.Deposit(960, 10, core.NewRNG(1))

	peak := field.At(960)
	for c := 940; c <= 980; c++ {
		if field.At(c) > peak {
			t.Fatalf("column %d depth %.3f exceeds centre %.3f", c, field.At(c), peak)
		}
	}
	if field.At(940) != 0 || field.At(980) != 0 {
		t.Fatalf("radius edge should receive nothing, got %.3f / %.3f", field.At(940), field.At(980))
	}
	for c := 940; c <= 980; c++ {
		d := math.Abs(float64(c - 960))
		falloff := 1 - d/20
		want := math.Min(10*falloff*falloff, p.Slack)
		if got := field.At(c); math.Abs(got-want) > 1e-9 {
			t.Fatalf("column %d depth %.4f, want %.4f", c, got, want)
		}
	}
	for c := 961; c <= 980; c++ {
		if field.At(c) > field.At(c-1) {
			t.Fatalf("depth should not increase away from centre at %d", c)
		}
	}
	if field.At(939) != 0 || field.At(981) != 0 {
		t.Fatal("deposit leaked beyond its radius")
	}
}

func TestDepositJitterStaysWithinEnvelope(t *testing.T) {
	p := DefaultConfig().Params
	p.Slack = 1000
	field := NewHeightField(200, p)
	field.Deposit(100, 10, core.NewRNG(3))
	for c := 80; c <= 120; c++ {
		d := math.Abs(float64(c - 100))
		falloff := (1 - d/20) * (1 - d/20)
		lo, hi := 10*falloff*p.JitterMin, 10*falloff*p.JitterMax
		if got := field.At(c); got < lo-1e-9 || got > hi+1e-9 {
			t.Fatalf("column %d depth %.4f outside [%.4f, %.4f]", c, got, lo, hi)
		}
	}
}

func TestDepositRespectsSlopeAndCeiling(t *testing.T) {
	p := DefaultConfig().Params
	p.MaxDepth = 40
	field := NewHeightField(120, p)
	rng := core.NewRNG(42)

	for i := 0; i < 5000; i++ {
		col := rng.IntN(140) - 10
		before := append([]float64(nil), field.Depths()...)
		field.Deposit(col, rng.Range(0.5, 4), rng)
		depths := field.Depths()
		for c := range depths {
			if depths[c] < before[c] {
				t.Fatalf("deposit lowered column %d from %.3f to %.3f", c, before[c], depths[c])
			}
			if depths[c] < 0 || depths[c] > p.MaxDepth {
				t.Fatalf("column %d out of bounds: %.3f", c, depths[c])
			}
			if c > 0 && depths[c] > depths[c-1]+p.Slack+1e-9 {
				t.Fatalf("slope violated at %d: %.3f vs left %.3f", c, depths[c], depths[c-1])
			}
			if c+1 < len(depths) && depths[c] > depths[c+1]+p.Slack+1e-9 {
				t.Fatalf("slope violated at %d: %.3f vs right %.3f", c, depths[c], depths[c+1])
			}
		}
	}
}

func TestErodeFloorsAtZeroAndSkipsOutOfRange(t *testing.T) {
	p := DefaultConfig().Params
	field := NewHeightField(30, p)
	for i := range field.Depths() {
		field.Depths()[i] = 4
	}
	field.Erode(2, 14, 3)
	for c := 0; c <= 16; c++ {
		if got := field.At(c); got != 1 {
			t.Fatalf("column %d depth %.2f, want 1", c, got)
		}
	}
	if field.At(17) != 4 {
		t.Fatalf("column outside radius changed: %.2f", field.At(17))
	}
	field.Erode(2, 14, 3)
	if field.At(0) != 0 {
		t.Fatalf("erosion should floor at zero, got %.2f", field.At(0))
	}
	field.Erode(-100, 14, 3)
	field.Erode(500, 14, 3)
}

func TestBoundsUnderMixedDepositAndErode(t *testing.T) {
	p := DefaultConfig().Params
	field := NewHeightField(64, p)
	rng := core.NewRNG(9)
	for i := 0; i < 20000; i++ {
		col := rng.IntN(100) - 18
		if rng.Chance(0.3) {
			field.Erode(col, p.ErodeRadius, p.ErodeAmount)
		} else {
			field.Deposit(col, rng.Range(0, 20), rng)
		}
	}
	for c, d := range field.Depths() {
		if d < 0 || d > p.MaxDepth {
			t.Fatalf("column %d depth %.3f outside [0, %.0f]", c, d, p.MaxDepth)
		}
	}
}

func TestSmoothedFlatFieldAndEdges(t *testing.T) {
	p := DefaultConfig().Params
	field := NewHeightField(40, p)
	for i := range field.Depths() {
		field.Depths()[i] = 12
	}
	out := field.Smoothed(nil)
	if len(out) != 40 {
		t.Fatalf("smoothed length %d, want 40", len(out))
	}
	if math.Abs(out[20]-12) > 1e-9 {
		t.Fatalf("flat interior should stay flat, got %.4f", out[20])
	}
	if out[0] >= out[20] {
		t.Fatalf("edge columns should taper, got %.4f vs %.4f", out[0], out[20])
	}

	field.Clear()
	field.Depths()[20] = 6
	out = field.Smoothed(out)
	if out[20] <= out[23] || out[23] <= out[25] || out[26] != 0 {
		t.Fatalf("spike should spread with linear weights: %v", out[18:27])
	}
	if math.Abs(out[17]-out[23]) > 1e-12 {
		t.Fatal("smoothing kernel should be symmetric")
	}
}

func TestSmoothedIsAWeightedAverage(t *testing.T) {
	if w := kernelWeight(); math.Abs(w-6) > 1e-12 {
		t.Fatalf("kernel weight = %.4f, want 6", w)
	}
	p := DefaultConfig().Params
	field := NewHeightField(64, p)
	for i := range field.Depths() {
		field.Depths()[i] = 60
	}
	out := field.Smoothed(nil)
	for c := smoothRadius; c < 64-smoothRadius; c++ {
		if math.Abs(out[c]-60) > 1e-9 {
			t.Fatalf("column %d smoothed to %.4f, want 60", c, out[c])
		}
	}
	for c, d := range out {
		if d > 60+1e-9 {
			t.Fatalf("column %d rose above the field: %.4f", c, d)
		}
	}
}

func TestHeightFieldGuards(t *testing.T) {
	field := NewHeightField(-4, DefaultConfig().Params)
	if field.Width() != 0 || field.Mean() != 0 || field.At(0) != 0 {
		t.Fatal("negative width should yield an empty field")
	}
	field.Deposit(0, 10, nil)
	field.Erode(0, 3, 1)
	if out := field.Smoothed(nil); len(out) != 0 {
		t.Fatalf("empty field smoothed to %d columns", len(out))
	}
}
