package imaging

import (
	"testing"

	"github.com/ironsheep/pixel-tools-mcp/internal/raster"
)

var (
	red         = raster.RGBA{R: 255, A: 255}
	green       = raster.RGBA{G: 255, A: 255}
	blue        = raster.RGBA{B: 255, A: 255}
	white       = raster.RGBA{R: 255, G: 255, B: 255, A: 255}
	transparent = raster.RGBA{}
)

// createInMemoryImage creates a buffer filled with a single color
func createInMemoryImage(width, height int, c raster.RGBA) *raster.Buffer {
	return raster.Solid(width, height, c)
}

// createPatternImage creates an image with different colors in each quadrant
func createPatternImage(width, height int) *raster.Buffer {
	img := raster.New(width, height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			var c raster.RGBA
			if x < width/2 && y < height/2 {
				c = red // Red top-left
			} else if x >= width/2 && y < height/2 {
				c = green // Green top-right
			} else if x < width/2 && y >= height/2 {
				c = blue // Blue bottom-left
			} else {
				c = white // White bottom-right
			}
			_ = img.SetPixel(x, y, c)
		}
	}
	return img
}

// createGradientImage creates an image where every pixel differs, including
// in alpha
func createGradientImage(width, height int) *raster.Buffer {
	img := raster.New(width, height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			_ = img.SetPixel(x, y, raster.RGBA{
				R: uint8(x * 255 / max(width-1, 1)),
				G: uint8(y * 255 / max(height-1, 1)),
				B: uint8((x + y) * 7),
				A: uint8(55 + (x*13+y*29)%201),
			})
		}
	}
	return img
}

// pixelAt returns the pixel at (x, y), failing the test when out of range
func pixelAt(t *testing.T, img *raster.Buffer, x, y int) raster.RGBA {
	t.Helper()
	c, err := img.Pixel(x, y)
	if err != nil {
		t.Fatalf("Pixel(%d,%d): %v", x, y, err)
	}
	return c
}

func absDiffInt(a, b int) int {
	if a > b {
		return a - b
	}
	return b - a
}

// closeColor reports whether every channel differs by at most tol
func closeColor(a, b raster.RGBA, tol int) bool {
	return absDiffInt(int(a.R), int(b.R)) <= tol &&
		absDiffInt(int(a.G), int(b.G)) <= tol &&
		absDiffInt(int(a.B), int(b.B)) <= tol &&
		absDiffInt(int(a.A), int(b.A)) <= tol
}
