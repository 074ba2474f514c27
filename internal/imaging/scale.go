package imaging

import (
	"fmt"
	"image"
	"math"
	"strings"

	"github.com/disintegration/imaging"
	xdraw "golang.org/x/image/draw"

	"github.com/ironsheep/pixel-tools-mcp/internal/raster"
)

// Filter selects the resampling kernel used when scaling.
type Filter int

const (
	// FilterLinear is bilinear interpolation, the default for every scaling
	// operation.
	FilterLinear Filter = iota

	// FilterNearest picks the closest source pixel. Fast, but blocky when
	// enlarging and aliased when shrinking.
	FilterNearest

	// FilterCatmullRom is a sharper bicubic kernel.
	FilterCatmullRom

	// FilterLanczos is a high-quality Lanczos3 kernel, the slowest option.
	FilterLanczos
)

var filterNames = map[Filter]string{
	FilterLinear:     "linear",
	FilterNearest:    "nearest",
	FilterCatmullRom: "catmullrom",
	FilterLanczos:    "lanczos",
}

func (f Filter) String() string {
	if name, ok := filterNames[f]; ok {
		return name
	}
	return fmt.Sprintf("Filter(%d)", int(f))
}

// ParseFilter parses a filter name ("linear", "nearest", "catmullrom",
// "lanczos"). Matching ignores case; an empty name selects FilterLinear.
func ParseFilter(name string) (Filter, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return FilterLinear, nil
	}
	for f, n := range filterNames {
		if n == name {
			return f, nil
		}
	}
	return FilterLinear, fmt.Errorf("unknown filter: %s", name)
}

func (f Filter) resample() imaging.ResampleFilter {
	switch f {
	case FilterNearest:
		return imaging.NearestNeighbor
	case FilterCatmullRom:
		return imaging.CatmullRom
	case FilterLanczos:
		return imaging.Lanczos
	default:
		return imaging.Linear
	}
}

// ScaleToWidth resizes img to targetWidth columns, keeping its aspect ratio.
//
// The new height is round(height * targetWidth / width), at least 1.
// An empty image or a non-positive target yields an empty buffer.
func ScaleToWidth(img *raster.Buffer, targetWidth int) *raster.Buffer {
	return ScaleToWidthFilter(img, targetWidth, FilterLinear)
}

// ScaleToWidthFilter is ScaleToWidth with an explicit resampling filter.
func ScaleToWidthFilter(img *raster.Buffer, targetWidth int, f Filter) *raster.Buffer {
	w, h := img.Width(), img.Height()
	if targetWidth <= 0 || w == 0 || h == 0 {
		return raster.New(0, 0)
	}
	scale := float64(targetWidth) / float64(w)
	return resize(img, targetWidth, scaledSide(h, scale), f)
}

// ScaleToHeight resizes img to targetHeight rows, keeping its aspect ratio.
//
// The new width is round(width * targetHeight / height), at least 1.
// An empty image or a non-positive target yields an empty buffer.
func ScaleToHeight(img *raster.Buffer, targetHeight int) *raster.Buffer {
	return ScaleToHeightFilter(img, targetHeight, FilterLinear)
}

// ScaleToHeightFilter is ScaleToHeight with an explicit resampling filter.
func ScaleToHeightFilter(img *raster.Buffer, targetHeight int, f Filter) *raster.Buffer {
	w, h := img.Width(), img.Height()
	if targetHeight <= 0 || w == 0 || h == 0 {
		return raster.New(0, 0)
	}
	scale := float64(targetHeight) / float64(h)
	return resize(img, scaledSide(w, scale), targetHeight, f)
}

// DefaultMaxPixels is the default limit on the pixel count of a scaled
// image, about 64 megapixels or 256 MiB of NRGBA data.
const DefaultMaxPixels = 1 << 26

// ScaledPixels returns the pixel count of the image produced by scaling a
// side x other image so that side becomes target, keeping the aspect ratio.
// It is computed in floating point and never overflows.
func ScaledPixels(side, other, target int) float64 {
	if side <= 0 || other <= 0 || target <= 0 {
		return 0
	}
	o := math.Max(math.Round(float64(other)*float64(target)/float64(side)), 1)
	return float64(target) * o
}

// CheckScale fails with an error wrapping raster.ErrTooLarge when scaling
// img to targetWidth columns (or targetHeight rows when targetWidth is 0)
// would produce more than maxPixels pixels. A non-positive maxPixels
// disables the check.
func CheckScale(img *raster.Buffer, targetWidth, targetHeight, maxPixels int) error {
	if maxPixels <= 0 {
		return nil
	}
	var px float64
	if targetWidth > 0 {
		px = ScaledPixels(img.Width(), img.Height(), targetWidth)
	} else {
		px = ScaledPixels(img.Height(), img.Width(), targetHeight)
	}
	if px > float64(maxPixels) {
		return fmt.Errorf("scaled image of %.0f pixels exceeds limit of %d: %w", px, maxPixels, raster.ErrTooLarge)
	}
	return nil
}

func scaledSide(side int, scale float64) int {
	n := math.Round(float64(side) * scale)
	if n > math.MaxInt32 {
		n = math.MaxInt32
	}
	return max(int(n), 1)
}

func resize(img *raster.Buffer, width, height int, f Filter) *raster.Buffer {
	return raster.Wrap(imaging.Resize(img.NRGBA(), width, height, f.resample()))
}

// SuperscriptOptions controls Superscript.
type SuperscriptOptions struct {
	// PreserveAspect derives the height of the drawn region from the image
	// height (height/2) instead of the legacy width/2.
	PreserveAspect bool
}

// Superscript places img in a superscript position: the result keeps the
// original height but half the width, with the image scaled into a
// (width/2, width/2) region whose top edge sits at height/10.
//
// The region height is derived from the width for compatibility with
// existing callers; use SuperscriptWith and PreserveAspect for height/2.
func Superscript(img *raster.Buffer) *raster.Buffer {
	return SuperscriptWith(img, SuperscriptOptions{})
}

// SuperscriptWith is Superscript with explicit options.
func SuperscriptWith(img *raster.Buffer, opts SuperscriptOptions) *raster.Buffer {
	w, h := img.Width(), img.Height()
	newWidth := w / 2
	if newWidth == 0 || h == 0 {
		return raster.New(0, 0)
	}

	regionHeight := w / 2
	if opts.PreserveAspect {
		regionHeight = h / 2
	}

	dst := image.NewNRGBA(image.Rect(0, 0, newWidth, h))
	if regionHeight > 0 {
		top := h / 10
		region := image.Rect(0, top, newWidth, top+regionHeight)
		xdraw.BiLinear.Scale(dst, region, img.NRGBA(), img.Bounds(), xdraw.Over, nil)
	}
	return raster.Wrap(dst)
}
