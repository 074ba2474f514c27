package imaging

import (
	"image"
	"image/color"
	"math"

	"github.com/disintegration/imaging"

	"github.com/ironsheep/pixel-tools-mcp/internal/raster"
)

// Merge paints overlay on top of base.
//
// The canvas is max(base.Width, overlay.Width) by max(base.Height,
// overlay.Height) regardless of offset, and starts fully transparent. base is
// copied at (0,0); overlay is alpha-over composited at offset. Overlay pixels
// that land outside the canvas are dropped.
func Merge(base, overlay *raster.Buffer, offset raster.Offset) *raster.Buffer {
	w := max(base.Width(), overlay.Width())
	h := max(base.Height(), overlay.Height())
	if w == 0 || h == 0 {
		return raster.New(0, 0)
	}

	canvas := imaging.New(w, h, color.NRGBA{})
	if !base.Empty() {
		canvas = imaging.Paste(canvas, base.NRGBA(), image.Point{})
	}
	if !overlay.Empty() {
		canvas = imaging.Overlay(canvas, overlay.NRGBA(), offset.Point(), 1.0)
	}
	return raster.Wrap(canvas)
}

// Blend merges overlay onto base like Merge, after fading the overlay's
// edges out with Feather(overlay, featherWidth, featherHeight).
func Blend(base, overlay *raster.Buffer, offset raster.Offset, featherWidth, featherHeight int) *raster.Buffer {
	return Merge(base, Feather(overlay, featherWidth, featherHeight), offset)
}

// BlendDefault calls Blend with a feather of one tenth of the overlay's
// width and height.
func BlendDefault(base, overlay *raster.Buffer, offset raster.Offset) *raster.Buffer {
	return Blend(base, overlay, offset, overlay.Width()/10, overlay.Height()/10)
}

// Feather returns a copy of img whose alpha fades towards the edges.
//
// Within featherWidth columns of the left and right edges and featherHeight
// rows of the top and bottom edges, alpha is scaled linearly: the outermost
// pixel keeps 1/(feather+1) of its alpha, the next 2/(feather+1), and so on.
// Where two edges overlap the smaller factor wins. Negative feather sizes
// count as 0.
func Feather(img *raster.Buffer, featherWidth, featherHeight int) *raster.Buffer {
	featherWidth = max(featherWidth, 0)
	featherHeight = max(featherHeight, 0)
	w, h := img.Width(), img.Height()

	return img.MapXY(func(x, y int, c raster.RGBA) raster.RGBA {
		scale := featherFactor(x, w, featherWidth)
		scale = math.Min(scale, featherFactor(y, h, featherHeight))
		c.A = uint8(math.Round(float64(c.A) * scale))
		return c
	})
}

// featherFactor is the alpha scale of position pos along an axis of the
// given length with feather pixels faded on each side.
func featherFactor(pos, length, feather int) float64 {
	step := 1 / float64(feather+1)
	scale := 1.0
	if pos < feather {
		scale = math.Min(scale, float64(pos+1)*step)
	}
	if pos >= length-feather {
		scale = math.Min(scale, float64(length-pos)*step)
	}
	return math.Max(0, math.Min(scale, 1))
}

// Mask returns the silhouette of img in color c.
//
// Every output pixel has c's RGB; its alpha is img's alpha scaled by
// c.A/255, so fully transparent pixels stay transparent.
func Mask(img *raster.Buffer, c raster.RGBA) *raster.Buffer {
	alphaScale := float64(c.A) / 255
	return img.Map(func(p raster.RGBA) raster.RGBA {
		return raster.RGBA{
			R: c.R,
			G: c.G,
			B: c.B,
			A: uint8(math.Round(float64(p.A) * alphaScale)),
		}
	})
}

// Tint lays Mask(img, c) over img. The alpha of c sets the tint strength:
// 0 leaves img unchanged, 255 replaces every visible pixel with c.
func Tint(img *raster.Buffer, c raster.RGBA) *raster.Buffer {
	if img.Empty() {
		return raster.New(0, 0)
	}
	return raster.Wrap(imaging.Overlay(img.NRGBA(), Mask(img, c).NRGBA(), image.Point{}, 1.0))
}
