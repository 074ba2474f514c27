package raster

import (
	"image"
	"image/color"

	"github.com/anthonynsimon/bild/parallel"
	"github.com/disintegration/imaging"
)

// Mapper transforms a single pixel independently of its position.
type Mapper func(c RGBA) RGBA

// PositionalMapper transforms a pixel given its coordinates.
type PositionalMapper func(x, y int, c RGBA) RGBA

// Compose chains mappers left to right: Compose(f, g)(c) == g(f(c)).
// Composing nothing yields the identity.
func Compose(mappers ...Mapper) Mapper {
	return func(c RGBA) RGBA {
		for _, m := range mappers {
			c = m(c)
		}
		return c
	}
}

// Map applies fn to every pixel and returns the result as a new buffer.
// Pixels are processed concurrently, so fn must not keep state between calls.
func (b *Buffer) Map(fn Mapper) *Buffer {
	if b.Empty() {
		return New(0, 0)
	}
	return Wrap(imaging.AdjustFunc(b.NRGBA(), func(c color.NRGBA) color.NRGBA {
		return color.NRGBA(fn(RGBA(c)))
	}))
}

// MapXY applies fn to every pixel with its coordinates and returns the
// result as a new buffer. Rows are processed concurrently.
func (b *Buffer) MapXY(fn PositionalMapper) *Buffer {
	w, h := b.Width(), b.Height()
	if w == 0 || h == 0 {
		return New(0, 0)
	}
	src := b.NRGBA()
	dst := image.NewNRGBA(image.Rect(0, 0, w, h))

	parallel.Line(h, func(start, end int) {
		for y := start; y < end; y++ {
			si := y * src.Stride
			di := y * dst.Stride
			for x := 0; x < w; x++ {
				s := src.Pix[si : si+4 : si+4]
				c := fn(x, y, RGBA{R: s[0], G: s[1], B: s[2], A: s[3]})
				d := dst.Pix[di : di+4 : di+4]
				d[0], d[1], d[2], d[3] = c.R, c.G, c.B, c.A
				si += 4
				di += 4
			}
		}
	})
	return Wrap(dst)
}
