package term

import (
	"snowfall/internal/render"

	"github.com/gdamore/tcell/v2"
)

// halfBlock paints the upper half of a cell in the foreground colour and the
// lower half in the background, giving two raster rows per cell.
const halfBlock = '▀'

// newCellRaster returns a raster with two rows per terminal row.
func newCellRaster(cols, rows, scale int) *render.Raster {
	return render.NewRaster(cols, rows*2, scale)
}

// flush copies the raster to screen using half-block cells.
func flush(screen tcell.Screen, r *render.Raster) {
	cols, h := r.Bounds()
	for y := 0; y < h/2; y++ {
		for x := 0; x < cols; x++ {
			top := r.At(x, 2*y)
			bottom := r.At(x, 2*y+1)
			style := tcell.StyleDefault.
				Foreground(tcell.NewRGBColor(int32(top.R), int32(top.G), int32(top.B))).
				Background(tcell.NewRGBColor(int32(bottom.R), int32(bottom.G), int32(bottom.B)))
			screen.SetContent(x, y, halfBlock, nil, style)
		}
	}
}
