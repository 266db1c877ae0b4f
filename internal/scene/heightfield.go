package scene

import (
	"math"

	"snowfall/internal/core"
)

// smoothRadius is the half-width of the display smoothing kernel (11 taps).
const smoothRadius = 5

// HeightField stores accumulated snow depth, one cell per pixel column.
type HeightField struct {
	depth []float64

	maxDepth      float64
	depositRadius int
	slack         float64
	slopeReach    int
	jitterMin     float64
	jitterMax     float64
}

// NewHeightField allocates a zeroed field for width columns using the limits in p.
func NewHeightField(width int, p Params) *HeightField {
	if width < 0 {
		width = 0
	}
	return &HeightField{
		depth:         make([]float64, width),
		maxDepth:      p.MaxDepth,
		depositRadius: p.DepositRadius,
		slack:         p.Slack,
		slopeReach:    p.SlopeReach,
		jitterMin:     p.JitterMin,
		jitterMax:     p.JitterMax,
	}
}

// Width returns the number of columns.
func (f *HeightField) Width() int { return len(f.depth) }

// MaxDepth returns the depth ceiling.
func (f *HeightField) MaxDepth() float64 { return f.maxDepth }

// Depths exposes the raw per-column depths.
func (f *HeightField) Depths() []float64 { return f.depth }

// At returns the depth at column, or 0 when the column is outside the field.
func (f *HeightField) At(column int) float64 {
	if column < 0 || column >= len(f.depth) {
		return 0
	}
	return f.depth[column]
}

// Contains reports whether column indexes a cell of the field.
func (f *HeightField) Contains(column int) bool {
	return column >= 0 && column < len(f.depth)
}

// Mean returns the average depth over all columns.
func (f *HeightField) Mean() float64 {
	if len(f.depth) == 0 {
		return 0
	}
	sum := 0.0
	for _, d := range f.depth {
		sum += d
	}
	return sum / float64(len(f.depth))
}

// Clear resets every column to zero.
func (f *HeightField) Clear() {
	for i := range f.depth {
		f.depth[i] = 0
	}
}

// Deposit raises the field around center by amount, weighted by a squared
// linear falloff over the deposit radius and a random jitter. Each raised
// column is clamped to the depth ceiling and to every neighbour within
// slopeReach plus the slack, so no deposit can build a spike. Columns are never
// lowered by a deposit.
func (f *HeightField) Deposit(center int, amount float64, rng *core.RNG) {
	if amount <= 0 || len(f.depth) == 0 {
		return
	}
	r := f.depositRadius
	if r <= 0 {
		return
	}
	for i := -r; i <= r; i++ {
		idx := center + i
		if idx < 0 || idx >= len(f.depth) {
			continue
		}
		falloff := 1 - math.Abs(float64(i))/float64(r)
		increase := amount * falloff * falloff * f.jitter(rng)

		current := f.depth[idx]
		target := math.Min(current+increase, f.maxDepth)
		for off := -f.slopeReach; off <= f.slopeReach; off++ {
			n := idx + off
			if off == 0 || n < 0 || n >= len(f.depth) {
				continue
			}
			if limit := f.depth[n] + f.slack; limit < target {
				target = limit
			}
		}
		if target > current {
			f.depth[idx] = target
		}
	}
}

func (f *HeightField) jitter(rng *core.RNG) float64 {
	if rng == nil {
		return (f.jitterMin + f.jitterMax) / 2
	}
	return rng.Range(f.jitterMin, f.jitterMax)
}

// Erode lowers every column within radius of center by amount, never below zero.
func (f *HeightField) Erode(center, radius int, amount float64) {
	if amount <= 0 || radius < 0 {
		return
	}
	for i := -radius; i <= radius; i++ {
		idx := center + i
		if idx < 0 || idx >= len(f.depth) {
			continue
		}
		f.depth[idx] = math.Max(f.depth[idx]-amount, 0)
	}
}

// Smoothed writes the display silhouette into dst (reallocated when too short)
// and returns it. Each column is an 11-tap weighted average of the raw field
// with weights falling linearly with distance; out-of-range taps count as zero.
func (f *HeightField) Smoothed(dst []float64) []float64 {
	n := len(f.depth)
	if cap(dst) < n {
		dst = make([]float64, n)
	}
	dst = dst[:n]
	norm := kernelWeight()
	for i := 0; i < n; i++ {
		sum := 0.0
		for k := -smoothRadius; k <= smoothRadius; k++ {
			idx := i + k
			if idx < 0 || idx >= n {
				continue
			}
			sum += f.depth[idx] * smoothWeight(k)
		}
		dst[i] = sum / norm
	}
	return dst
}

func smoothWeight(k int) float64 {
	return 1 - math.Abs(float64(k))/float64(smoothRadius+1)
}

func kernelWeight() float64 {
	total := 0.0
	for k := -smoothRadius; k <= smoothRadius; k++ {
		total += smoothWeight(k)
	}
	return total
}
