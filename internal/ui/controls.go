package ui

import (
	"image"
	"math"
	"strconv"

	"snowfall/internal/core"
)

// controlState is one HUD row: a tunable with its current value and the
// screen rectangles of its -/+ buttons.
type controlState struct {
	control core.ParameterControl
	value   string

	intValue   int
	floatValue float64
	hasValue   bool

	top       int
	minusRect image.Rectangle
	plusRect  image.Rectangle
}

func newControlStates(controls []core.ParameterControl) []controlState {
	states := make([]controlState, len(controls))
	for i, ctrl := range controls {
		states[i] = controlState{control: ctrl, value: "--"}
	}
	return states
}

func indexParameters(snapshot core.ParameterSnapshot) map[string]core.Parameter {
	out := map[string]core.Parameter{}
	for _, group := range snapshot.Groups {
		for _, param := range group.Params {
			out[param.Key] = param
		}
	}
	return out
}

// refresh parses the control's value out of the latest snapshot.
func (c *controlState) refresh(params map[string]core.Parameter) {
	c.hasValue = false
	c.value = "--"
	param, ok := params[c.control.Key]
	if !ok {
		return
	}
	switch c.control.Type {
	case core.ParamTypeInt:
		parsed, err := strconv.Atoi(param.Value)
		if err != nil {
			return
		}
		c.intValue = parsed
		c.floatValue = float64(parsed)
		c.value = strconv.Itoa(parsed)
		c.hasValue = true
	case core.ParamTypeFloat:
		parsed, err := strconv.ParseFloat(param.Value, 64)
		if err != nil {
			return
		}
		c.floatValue = parsed
		c.value = formatFloat(c.control.Step, parsed)
		c.hasValue = true
	}
}

func (c *controlState) step() float64 {
	if c.control.Type == core.ParamTypeInt {
		if s := math.Round(c.control.Step); s > 0 {
			return s
		}
		return 1
	}
	if c.control.Step > 0 {
		return c.control.Step
	}
	return 0.05
}

// target returns the clamped value one step in direction, and false when the
// value is already at the bound in that direction.
func (c *controlState) target(direction int) (float64, bool) {
	if !c.hasValue || direction == 0 {
		return 0, false
	}
	current := c.floatValue
	next := current + float64(direction)*c.step()
	if c.control.HasMin && next < c.control.Min {
		next = c.control.Min
	}
	if c.control.HasMax && next > c.control.Max {
		next = c.control.Max
	}
	if c.control.Type == core.ParamTypeInt {
		next = math.Round(next)
	}
	if math.Abs(next-current) < 1e-9 {
		return current, false
	}
	return next, true
}

// adjust pushes the next value through the matching setter and updates the
// displayed value when the scene accepts it.
func (c *controlState) adjust(direction int, ints core.IntParameterSetter, floats core.FloatParameterSetter) bool {
	next, ok := c.target(direction)
	if !ok {
		return false
	}
	switch c.control.Type {
	case core.ParamTypeInt:
		if ints == nil || !ints.SetIntParameter(c.control.Key, int(next)) {
			return false
		}
		c.intValue = int(next)
		c.floatValue = next
		c.value = strconv.Itoa(c.intValue)
	case core.ParamTypeFloat:
		if floats == nil || !floats.SetFloatParameter(c.control.Key, next) {
			return false
		}
		c.floatValue = next
		c.value = formatFloat(c.control.Step, next)
	default:
		return false
	}
	return true
}

func formatFloat(step, value float64) string {
	if step <= 0 {
		step = 0.05
	}
	precision := 1
	switch {
	case step < 0.001:
		precision = 4
	case step < 0.01:
		precision = 3
	case step < 0.1:
		precision = 2
	}
	return strconv.FormatFloat(value, 'f', precision, 64)
}

// layoutControls stacks rows from top with the buttons right-aligned in a
// panel of the given width.
func layoutControls(states []controlState, width, top int) {
	for i := range states {
		rowTop := top + i*lineHeight
		buttonY := rowTop + (lineHeight-buttonSize)/2
		plus := image.Rect(width-panelPadding-buttonSize, buttonY, width-panelPadding, buttonY+buttonSize)
		minus := image.Rect(plus.Min.X-buttonGap-buttonSize, buttonY, plus.Min.X-buttonGap, buttonY+buttonSize)
		states[i].top = rowTop
		states[i].minusRect = minus
		states[i].plusRect = plus
	}
}

func pointInRect(x, y int, rect image.Rectangle) bool {
	return image.Pt(x, y).In(rect)
}

const (
	panelWidth     = 260
	panelPadding   = 12
	lineHeight     = 30
	statusHeight   = 16
	buttonSize     = 22
	buttonGap      = 6
	headerBaseline = 18
	labelBaseline  = 20
)
