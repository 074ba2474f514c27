package imaging

import (
	"fmt"

	"github.com/disintegration/imaging"

	"github.com/ironsheep/pixel-tools-mcp/internal/raster"
)

// Crop extracts the sub-rectangle r from img, preserving per-pixel alpha.
//
// The rectangle must lie entirely inside the image: a negative origin or
// size, x+width > img.Width() or y+height > img.Height() fails with an error
// wrapping raster.ErrInvalidRegion. A zero-area rectangle yields an empty
// buffer.
func Crop(img *raster.Buffer, r raster.Rect) (*raster.Buffer, error) {
	w, h := img.Width(), img.Height()
	if r.X < 0 || r.Y < 0 || r.Width < 0 || r.Height < 0 ||
		r.X > w || r.Y > h || r.Width > w-r.X || r.Height > h-r.Y {
		return nil, fmt.Errorf("crop %v on %dx%d image: %w", r, w, h, raster.ErrInvalidRegion)
	}
	if r.Empty() {
		return raster.New(0, 0), nil
	}
	return raster.Wrap(imaging.Crop(img.NRGBA(), r.Image())), nil
}

// TrimBounds returns the smallest rectangle enclosing every pixel whose
// alpha is greater than maxAlpha.
//
// Minimum and maximum X and Y are tracked independently, so an isolated
// visible pixel still widens the bounds. ok is false when no pixel is
// visible.
func TrimBounds(img *raster.Buffer, maxAlpha int) (r raster.Rect, ok bool) {
	w, h := img.Width(), img.Height()
	src := img.NRGBA()

	minX, minY := w, h
	maxX, maxY := -1, -1
	for y := 0; y < h; y++ {
		i := y*src.Stride + 3
		for x := 0; x < w; x++ {
			if int(src.Pix[i]) > maxAlpha {
				if x < minX {
					minX = x
				}
				if x > maxX {
					maxX = x
				}
				if y < minY {
					minY = y
				}
				if y > maxY {
					maxY = y
				}
			}
			i += 4
		}
	}

	if maxX < 0 {
		return raster.Rect{}, false
	}
	return raster.Rect{X: minX, Y: minY, Width: maxX - minX + 1, Height: maxY - minY + 1}, true
}

// Trim crops img to the bounding box of its visible pixels, where a pixel
// is visible when its alpha is greater than maxAlpha (0-255).
//
// An image with no visible pixel trims to an empty 0x0 buffer.
func Trim(img *raster.Buffer, maxAlpha int) *raster.Buffer {
	r, ok := TrimBounds(img, maxAlpha)
	if !ok {
		Logger().Debug("trim found no visible pixels", "width", img.Width(), "height", img.Height(), "max_alpha", maxAlpha)
		return raster.New(0, 0)
	}
	return raster.Wrap(imaging.Crop(img.NRGBA(), r.Image()))
}
