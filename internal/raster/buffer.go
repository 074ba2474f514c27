package raster

import (
	"bytes"
	"fmt"
	"image"
	"image/color"

	"github.com/disintegration/imaging"
)

// RGBA is a non-premultiplied pixel with 8-bit channels.
//
// It has the same layout as color.NRGBA, so the two convert directly:
//
//	c := raster.RGBA(color.NRGBA{R: 255, A: 255})
type RGBA struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
	A uint8 `json:"a"`
}

// NRGBA returns the pixel as a color.NRGBA.
func (c RGBA) NRGBA() color.NRGBA {
	return color.NRGBA(c)
}

// RGBA implements color.Color.
func (c RGBA) RGBA() (r, g, b, a uint32) {
	return color.NRGBA(c).RGBA()
}

// RGBAFromColor converts any color.Color to a non-premultiplied RGBA pixel.
func RGBAFromColor(c color.Color) RGBA {
	return RGBA(color.NRGBAModel.Convert(c).(color.NRGBA))
}

// Rect is a rectangle in buffer coordinates.
//
// (X, Y) is the top-left pixel (inclusive); the rectangle covers Width
// columns and Height rows from there.
type Rect struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Image returns the equivalent image.Rectangle.
func (r Rect) Image() image.Rectangle {
	return image.Rect(r.X, r.Y, r.X+r.Width, r.Y+r.Height)
}

// Empty reports whether the rectangle covers no pixels.
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

func (r Rect) String() string {
	return fmt.Sprintf("(%d,%d %dx%d)", r.X, r.Y, r.Width, r.Height)
}

// Offset is a displacement used to position one image on another.
// It may be negative or point past the canvas; pixels that land outside
// are clipped.
type Offset struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Point returns the offset as an image.Point.
func (o Offset) Point() image.Point {
	return image.Pt(o.X, o.Y)
}

// Buffer is an in-memory RGBA raster image with its origin at (0,0).
//
// Buffer implements image.Image so it can be passed straight to encoders.
// The zero value is an empty 0x0 buffer.
type Buffer struct {
	img *image.NRGBA
}

var emptyNRGBA = &image.NRGBA{}

// New allocates a fully transparent buffer. Non-positive dimensions yield
// an empty 0x0 buffer.
func New(width, height int) *Buffer {
	if width <= 0 || height <= 0 {
		width, height = 0, 0
	}
	return &Buffer{img: image.NewNRGBA(image.Rect(0, 0, width, height))}
}

// Solid allocates a buffer filled with a single color.
func Solid(width, height int, c RGBA) *Buffer {
	if width <= 0 || height <= 0 {
		return New(0, 0)
	}
	return Wrap(imaging.New(width, height, c.NRGBA()))
}

// FromImage copies img into a new buffer. The result does not share memory
// with img.
func FromImage(img image.Image) *Buffer {
	if img == nil {
		return New(0, 0)
	}
	if b, ok := img.(*Buffer); ok {
		return b.Clone()
	}
	return Wrap(imaging.Clone(img))
}

// Wrap takes ownership of img and returns it as a buffer. The caller must
// not modify img afterwards. Bounds not anchored at (0,0) are re-anchored
// without copying.
func Wrap(img *image.NRGBA) *Buffer {
	if img == nil {
		return New(0, 0)
	}
	if img.Rect.Min != (image.Point{}) {
		img = &image.NRGBA{
			Pix:    img.Pix,
			Stride: img.Stride,
			Rect:   image.Rect(0, 0, img.Rect.Dx(), img.Rect.Dy()),
		}
	}
	return &Buffer{img: img}
}

// Width returns the number of columns.
func (b *Buffer) Width() int { return b.NRGBA().Rect.Dx() }

// Height returns the number of rows.
func (b *Buffer) Height() int { return b.NRGBA().Rect.Dy() }

// Empty reports whether the buffer has no pixels.
func (b *Buffer) Empty() bool { return b.NRGBA().Rect.Empty() }

// Bounds implements image.Image.
func (b *Buffer) Bounds() image.Rectangle { return b.NRGBA().Rect }

// ColorModel implements image.Image.
func (b *Buffer) ColorModel() color.Model { return color.NRGBAModel }

// At implements image.Image. Out-of-range coordinates return a transparent color.
func (b *Buffer) At(x, y int) color.Color { return b.NRGBA().At(x, y) }

// NRGBA returns the backing image. It is shared with the buffer and must be
// treated as read-only.
func (b *Buffer) NRGBA() *image.NRGBA {
	if b.img == nil {
		return emptyNRGBA
	}
	return b.img
}

// Contains reports whether (x, y) addresses a pixel of the buffer.
func (b *Buffer) Contains(x, y int) bool {
	return image.Pt(x, y).In(b.NRGBA().Rect)
}

// Pixel returns the pixel at (x, y).
func (b *Buffer) Pixel(x, y int) (RGBA, error) {
	if !b.Contains(x, y) {
		return RGBA{}, fmt.Errorf("pixel (%d,%d) in %dx%d buffer: %w", x, y, b.Width(), b.Height(), ErrOutOfBounds)
	}
	img := b.NRGBA()
	i := img.PixOffset(x, y)
	s := img.Pix[i : i+4 : i+4]
	return RGBA{R: s[0], G: s[1], B: s[2], A: s[3]}, nil
}

// SetPixel overwrites the pixel at (x, y).
func (b *Buffer) SetPixel(x, y int, c RGBA) error {
	if !b.Contains(x, y) {
		return fmt.Errorf("pixel (%d,%d) in %dx%d buffer: %w", x, y, b.Width(), b.Height(), ErrOutOfBounds)
	}
	img := b.NRGBA()
	i := img.PixOffset(x, y)
	s := img.Pix[i : i+4 : i+4]
	s[0], s[1], s[2], s[3] = c.R, c.G, c.B, c.A
	return nil
}

// Clone returns a deep copy.
func (b *Buffer) Clone() *Buffer {
	return Wrap(imaging.Clone(b.NRGBA()))
}

// Equal reports whether both buffers have the same size and identical pixels.
func (b *Buffer) Equal(other *Buffer) bool {
	if other == nil || b.Width() != other.Width() || b.Height() != other.Height() {
		return false
	}
	p, q := b.NRGBA(), other.NRGBA()
	rowLen := 4 * b.Width()
	for y := 0; y < b.Height(); y++ {
		i := y * p.Stride
		j := y * q.Stride
		if !bytes.Equal(p.Pix[i:i+rowLen], q.Pix[j:j+rowLen]) {
			return false
		}
	}
	return true
}

// Opaque reports whether every pixel has alpha 255.
func (b *Buffer) Opaque() bool {
	return b.NRGBA().Opaque()
}
