package imaging

import (
	"github.com/disintegration/imaging"

	"github.com/ironsheep/pixel-tools-mcp/internal/raster"
)

// DefaultMedian is the brightness that Color maps exactly onto the target
// color.
const DefaultMedian = 255 / 2

// MapPixels applies fn to every pixel of img and returns the result.
func MapPixels(img *raster.Buffer, fn raster.Mapper) *raster.Buffer {
	return img.Map(fn)
}

// MapPixelsXY applies a coordinate-aware fn to every pixel of img and
// returns the result.
func MapPixelsXY(img *raster.Buffer, fn raster.PositionalMapper) *raster.Buffer {
	return img.MapXY(fn)
}

// Grayscale desaturates img using ITU-R BT.601 luma weights
// (0.299*R + 0.587*G + 0.114*B). Every output pixel has R == G == B and the
// alpha of the corresponding input pixel.
func Grayscale(img *raster.Buffer) *raster.Buffer {
	if img.Empty() {
		return raster.New(0, 0)
	}
	return raster.Wrap(imaging.Grayscale(img.NRGBA()))
}

// ChangeBrightness multiplies the RGB channels of every pixel by mult,
// leaving alpha untouched.
//
// A channel pushed past 255 is clamped and its excess is added to the other
// two channels, so bright areas bleach towards white instead of shifting hue.
// See BrightnessMapper for the exact sequence.
func ChangeBrightness(img *raster.Buffer, mult float32) *raster.Buffer {
	return img.Map(BrightnessMapper(mult))
}

// BrightnessMapper returns the per-pixel brightness transform used by
// ChangeBrightness.
//
// Each pixel runs through these steps in order:
//
//  1. scale: every channel becomes int(c * mult), truncated
//  2. red overflow: excess over 255 is set aside for green and blue; red = 255
//  3. green overflow: excess is added to the current red and blue; green = 255
//  4. blue overflow: excess is added to the current red and green; blue = 255
//  5. clamp: the set-aside red excess is added and each channel is clamped
//     to [0, 255]
//
// Because green and blue are checked against values already raised by the
// earlier steps, the result depends on this order.
func BrightnessMapper(mult float32) raster.Mapper {
	return func(c raster.RGBA) raster.RGBA {
		r, g, b := scaleChannels(c, mult).
			redistributeRed().
			redistributeGreen().
			redistributeBlue().
			clamp()
		return raster.RGBA{R: r, G: g, B: b, A: c.A}
	}
}

// brightnessState is one pixel part-way through BrightnessMapper. Each step
// returns a new value.
type brightnessState struct {
	r, g, b int

	// pendingG and pendingB hold red's excess until the final clamp.
	pendingG, pendingB int
}

func scaleChannels(c raster.RGBA, mult float32) brightnessState {
	return brightnessState{
		r: int(float32(c.R) * mult),
		g: int(float32(c.G) * mult),
		b: int(float32(c.B) * mult),
	}
}

func (s brightnessState) redistributeRed() brightnessState {
	if s.r > 255 {
		excess := s.r - 255
		s.pendingG += excess
		s.pendingB += excess
		s.r = 255
	}
	return s
}

func (s brightnessState) redistributeGreen() brightnessState {
	if s.g > 255 {
		excess := s.g - 255
		s.r += excess
		s.b += excess
		s.g = 255
	}
	return s
}

func (s brightnessState) redistributeBlue() brightnessState {
	if s.b > 255 {
		excess := s.b - 255
		s.r += excess
		s.g += excess
		s.b = 255
	}
	return s
}

func (s brightnessState) clamp() (r, g, b uint8) {
	return clampChannel(s.r), clampChannel(s.g + s.pendingG), clampChannel(s.b + s.pendingB)
}

// Color recolors img in shades of target using DefaultMedian.
func Color(img *raster.Buffer, target raster.RGBA) *raster.Buffer {
	return ColorMedian(img, target, DefaultMedian)
}

// ColorMedian recolors img so every pixel becomes a lighter or darker shade
// of target depending on its brightness.
//
// A pixel whose average RGB equals median maps exactly onto target's RGB.
// Brighter pixels move towards white in proportion to how far they sit
// between median and 255; darker pixels move towards black in proportion to
// how far they sit between median and 0. A higher median darkens the result.
// The output alpha is the input alpha scaled by target.A/255. median is
// clamped to [0, 255].
func ColorMedian(img *raster.Buffer, target raster.RGBA, median int) *raster.Buffer {
	return img.Map(ColorMapper(target, median))
}

// ColorMapper returns the per-pixel transform used by ColorMedian.
func ColorMapper(target raster.RGBA, median int) raster.Mapper {
	median = min(max(median, 0), 255)
	alphaScale := float32(target.A) / 255
	above := float32(255 - median)
	below := float32(median)

	return func(c raster.RGBA) raster.RGBA {
		brightness := float32(int(c.R)+int(c.G)+int(c.B))/3 - float32(median)

		var strength float32
		switch {
		case brightness > 0 && above > 0:
			strength = brightness / above
		case brightness < 0 && below > 0:
			strength = brightness / below
		}

		return raster.RGBA{
			R: shadeChannel(target.R, strength),
			G: shadeChannel(target.G, strength),
			B: shadeChannel(target.B, strength),
			A: clampChannel(int(float32(c.A) * alphaScale)),
		}
	}
}

// shadeChannel moves channel value t towards 255 for positive strength and
// towards 0 for negative strength.
func shadeChannel(t uint8, strength float32) uint8 {
	v := float32(t)
	if strength > 0 {
		return clampChannel(int(v + (255-v)*strength))
	}
	return clampChannel(int(v + v*strength))
}

func clampChannel(v int) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
