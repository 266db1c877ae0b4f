package core

import (
	"image/color"
	"testing"
	"time"
)

func TestFixedStepAdvance(t *testing.T) {
	fs := NewFixedStep(60)
	start := time.Unix(0, 0)

	if got := fs.Advance(start); got != 1 {
		t.Fatalf("first advance should release the primed tick, got %d", got)
	}
	if got := fs.Advance(start.Add(fs.Interval() / 2)); got != 0 {
		t.Fatalf("half interval should not tick, got %d", got)
	}
	if got := fs.Advance(start.Add(fs.Interval())); got != 1 {
		t.Fatalf("full interval should tick once, got %d", got)
	}
	if got := fs.Advance(start.Add(10 * time.Second)); got != maxCatchUp {
		t.Fatalf("stall should clamp to %d ticks, got %d", maxCatchUp, got)
	}
	if got := fs.Advance(start.Add(10 * time.Second)); got != 0 {
		t.Fatalf("accumulator should be dropped after a clamped stall, got %d", got)
	}
}

func TestRNGDeterministic(t *testing.T) {
	a := NewRNG(7)
	b := NewRNG(7)
	for i := 0; i < 100; i++ {
		if a.Float64() != b.Float64() {
			t.Fatalf("sequences diverged at %d", i)
		}
	}
	b.Reseed(7)
	c := NewRNG(7)
	if b.Range(2, 5) != c.Range(2, 5) {
		t.Fatal("reseed should restart the sequence")
	}
	if got := c.Range(3, 3); got != 3 {
		t.Fatalf("empty range should return min, got %f", got)
	}
	if c.IntN(0) != 0 || c.Chance(0) {
		t.Fatal("degenerate inputs should not draw")
	}
}

func TestRegisterIgnoresInvalidEntries(t *testing.T) {
	before := len(Scenes())
	Register("", func(map[string]string) Scene { return nil })
	Register("nil-factory", nil)
	if len(Scenes()) != before {
		t.Fatalf("registry grew from %d to %d", before, len(Scenes()))
	}
}

func TestSampleGradient(t *testing.T) {
	stops := []GradientStop{
		{Offset: 0, Color: color.NRGBA{R: 0, A: 255}},
		{Offset: 0.5, Color: color.NRGBA{R: 100, A: 255}},
		{Offset: 1, Color: color.NRGBA{R: 200, A: 55}},
	}
	cases := []struct {
		t    float64
		want color.NRGBA
	}{
		{-1, color.NRGBA{R: 0, A: 255}},
		{0.25, color.NRGBA{R: 50, A: 255}},
		{0.5, color.NRGBA{R: 100, A: 255}},
		{0.75, color.NRGBA{R: 150, A: 155}},
		{2, color.NRGBA{R: 200, A: 55}},
	}
	for _, tc := range cases {
		if got := SampleGradient(stops, tc.t); got != tc.want {
			t.Fatalf("SampleGradient(%.2f) = %+v, want %+v", tc.t, got, tc.want)
		}
	}
	if got := SampleGradient(nil, 0.5); got != (color.NRGBA{}) {
		t.Fatalf("empty gradient should be transparent, got %+v", got)
	}
}
