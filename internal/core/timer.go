package core

import "time"

// maxCatchUp bounds how many ticks a single Advance call may report after a stall.
const maxCatchUp = 4

// FixedStep helps run scene updates at a steady ticks-per-second rate for hosts
// that do not provide their own frame scheduler.
type FixedStep struct {
	step        time.Duration
	accumulator time.Duration
	last        time.Time
}

// NewFixedStep constructs a FixedStep controller targeting the given TPS.
func NewFixedStep(tps int) *FixedStep {
	fs := &FixedStep{}
	fs.SetTPS(tps)
	fs.accumulator = fs.step
	return fs
}

// SetTPS changes the tick rate. It is safe to call from the main loop.
func (f *FixedStep) SetTPS(tps int) {
	if tps <= 0 {
		tps = 60
	}
	f.step = time.Second / time.Duration(tps)
}

// Interval returns the duration of a single tick.
func (f *FixedStep) Interval() time.Duration { return f.step }

// ShouldStep reports whether the scene should advance by one tick.
func (f *FixedStep) ShouldStep() bool {
	return f.Advance(time.Now()) > 0
}

// Advance accounts for the time elapsed up to now and returns how many ticks
// are due. Long stalls are clamped so a frozen host does not replay seconds of
// simulation in one burst.
func (f *FixedStep) Advance(now time.Time) int {
	if f.last.IsZero() {
		f.last = now
	}
	delta := now.Sub(f.last)
	if delta < 0 {
		delta = 0
	}
	f.last = now
	f.accumulator += delta

	steps := 0
	for f.accumulator >= f.step && steps < maxCatchUp {
		f.accumulator -= f.step
		steps++
	}
	if f.accumulator >= f.step {
		f.accumulator = 0
	}
	return steps
}
