package render

import (
	"image/color"

	"snowfall/internal/core"
)

// fillVerticalGradientRGBA paints a w×h RGBA buffer row by row, sampling the
// gradient at each row centre.
func fillVerticalGradientRGBA(buf []byte, w, h int, stops []core.GradientStop) {
	if w <= 0 || h <= 0 {
		return
	}
	for y := 0; y < h; y++ {
		c := core.SampleGradient(stops, (float64(y)+0.5)/float64(h))
		row := y * w * 4
		for x := 0; x < w; x++ {
			base := row + x*4
			buf[base+0] = c.R
			buf[base+1] = c.G
			buf[base+2] = c.B
			buf[base+3] = c.A
		}
	}
}

// fillSolidRGBA converts a mask of coverage values into RGBA pixels of a single
// colour. Coverage 255 takes the colour's alpha, zero is transparent.
func fillSolidRGBA(buf []byte, coverage []uint8, c color.NRGBA) {
	for i, cov := range coverage {
		base := i * 4
		if cov == 0 {
			buf[base+0] = 0
			buf[base+1] = 0
			buf[base+2] = 0
			buf[base+3] = 0
			continue
		}
		buf[base+0] = c.R
		buf[base+1] = c.G
		buf[base+2] = c.B
		buf[base+3] = uint8(uint16(c.A) * uint16(cov) / 255)
	}
}
