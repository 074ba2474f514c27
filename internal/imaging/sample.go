package imaging

import (
	"fmt"
	"strconv"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/ironsheep/pixel-tools-mcp/internal/raster"
)

// HSLColor represents a color in HSL (Hue, Saturation, Lightness) color space.
type HSLColor struct {
	H int `json:"h"` // Hue: 0-360 degrees (0=red, 120=green, 240=blue)
	S int `json:"s"` // Saturation: 0-100 percent (0=gray, 100=vivid)
	L int `json:"l"` // Lightness: 0-100 percent (0=black, 50=normal, 100=white)
}

// ColorResult contains a pixel value in several representations.
type ColorResult struct {
	Hex  string      `json:"hex"`  // Hex format "#RRGGBB" (no alpha)
	RGBA raster.RGBA `json:"rgba"` // RGBA components with alpha
	HSL  HSLColor    `json:"hsl"`  // HSL representation
}

// SampleColor reads the pixel at (x, y).
//
// Coordinates are 0-based with origin at top-left. Coordinates outside the
// image return an error wrapping raster.ErrOutOfBounds.
func SampleColor(img *raster.Buffer, x, y int) (*ColorResult, error) {
	c, err := img.Pixel(x, y)
	if err != nil {
		return nil, err
	}

	cf := colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
	h, s, l := cf.Hsl()

	return &ColorResult{
		Hex:  strings.ToUpper(cf.Hex()),
		RGBA: c,
		HSL:  HSLColor{H: int(h), S: int(s * 100), L: int(l * 100)},
	}, nil
}

// ParseColor parses "#RGB", "#RRGGBB" or "#RRGGBBAA". Colors without an
// alpha component are opaque.
func ParseColor(s string) (raster.RGBA, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "#") {
		s = "#" + s
	}

	switch len(s) {
	case 4, 7, 9:
	default:
		return raster.RGBA{}, fmt.Errorf("invalid color %q: want #RGB, #RRGGBB or #RRGGBBAA", s)
	}
	if strings.IndexFunc(s[1:], notHexDigit) >= 0 {
		return raster.RGBA{}, fmt.Errorf("invalid color %q: not a hex value", s)
	}

	alpha := uint8(255)
	if len(s) == 9 {
		a, err := strconv.ParseUint(s[7:], 16, 8)
		if err != nil {
			return raster.RGBA{}, fmt.Errorf("invalid alpha in color %q: %w", s, err)
		}
		alpha = uint8(a)
		s = s[:7]
	}

	cf, err := colorful.Hex(s)
	if err != nil {
		return raster.RGBA{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	r, g, b := cf.RGB255()
	return raster.RGBA{R: r, G: g, B: b, A: alpha}, nil
}

func notHexDigit(r rune) bool {
	return !('0' <= r && r <= '9' || 'a' <= r && r <= 'f' || 'A' <= r && r <= 'F')
}
