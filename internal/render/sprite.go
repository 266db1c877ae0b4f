package render

import (
	"fmt"
	"image"
	"image/color"
	_ "image/png"
	"math"
	"os"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// SpriteResult is delivered once a sprite image has been loaded.
type SpriteResult struct {
	Image image.Image
	Err   error
}

// LoadSpriteAsync decodes the sprite image on its own goroutine and delivers
// the result on the returned channel. An empty path yields the built-in
// snowman silhouette.
func LoadSpriteAsync(path string, size int) <-chan SpriteResult {
	out := make(chan SpriteResult, 1)
	go func() {
		if path == "" {
			out <- SpriteResult{Image: DefaultSprite(size)}
			return
		}
		img, err := LoadSprite(path)
		out <- SpriteResult{Image: img, Err: err}
	}()
	return out
}

// LoadSprite decodes a PNG, BMP or WebP image from disk.
func LoadSprite(path string) (image.Image, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sprite %s: %w", path, err)
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode sprite %s: %w", path, err)
	}
	return img, nil
}

var snowmanColor = color.NRGBA{R: 250, G: 250, B: 255, A: 255}

// DefaultSprite renders a size×size snowman made of two stacked discs.
func DefaultSprite(size int) *image.NRGBA {
	if size <= 0 {
		size = 1
	}
	img := image.NewNRGBA(image.Rect(0, 0, size, size))
	fillSolidRGBA(img.Pix, snowmanMask(size), snowmanColor)
	return img
}

// snowmanMask returns per-pixel coverage for the built-in sprite.
func snowmanMask(size int) []uint8 {
	mask := make([]uint8, size*size)
	s := float64(size)
	discs := []struct{ cx, cy, r float64 }{
		{s / 2, s * 0.68, s * 0.3},
		{s / 2, s * 0.26, s * 0.2},
	}
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			px, py := float64(x)+0.5, float64(y)+0.5
			best := 0.0
			for _, d := range discs {
				// One pixel of soft edge.
				cov := d.r - math.Hypot(px-d.cx, py-d.cy) + 0.5
				best = math.Max(best, math.Min(cov, 1))
			}
			if best > 0 {
				mask[y*size+x] = uint8(best*255 + 0.5)
			}
		}
	}
	return mask
}
