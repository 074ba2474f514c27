package imaging

import (
	"math"

	"github.com/ironsheep/pixel-tools-mcp/internal/raster"
)

// DefaultCompareThreshold is the mean per-channel difference above which a
// pixel counts as different.
const DefaultCompareThreshold = 10

// Size is a width and height in pixels
type Size struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// CompareResult contains pixel comparison information
type CompareResult struct {
	SimilarityScore  float64 `json:"similarity_score"`
	PixelsDifferent  int     `json:"pixels_different"`
	TotalPixels      int     `json:"total_pixels"`
	SameSize         bool    `json:"same_size"`
	Size1            Size    `json:"size1"`
	Size2            Size    `json:"size2"`
	AverageColorDiff float64 `json:"average_color_diff"`
	MaxAlphaDiff     int     `json:"max_alpha_diff"`
}

// Compare measures how much a and b differ over their overlapping area,
// anchored at the top-left corner.
//
// A pixel's difference is the mean absolute difference of its four
// channels; it counts as different when that mean exceeds threshold.
// SimilarityScore is the share of equal pixels, rounded to three decimals.
// Two empty buffers are identical; an empty overlap between non-empty
// buffers has similarity 0.
func Compare(a, b *raster.Buffer, threshold int) *CompareResult {
	w := min(a.Width(), b.Width())
	h := min(a.Height(), b.Height())

	result := &CompareResult{
		TotalPixels: w * h,
		SameSize:    a.Width() == b.Width() && a.Height() == b.Height(),
		Size1:       Size{Width: a.Width(), Height: a.Height()},
		Size2:       Size{Width: b.Width(), Height: b.Height()},
	}
	if result.TotalPixels == 0 {
		if result.SameSize {
			result.SimilarityScore = 1
		}
		return result
	}

	pa, pb := a.NRGBA(), b.NRGBA()
	var totalColorDiff float64

	for y := 0; y < h; y++ {
		ra := pa.Pix[y*pa.Stride : y*pa.Stride+w*4]
		rb := pb.Pix[y*pb.Stride : y*pb.Stride+w*4]
		for i := 0; i < len(ra); i += 4 {
			dr := absDiff(ra[i], rb[i])
			dg := absDiff(ra[i+1], rb[i+1])
			db := absDiff(ra[i+2], rb[i+2])
			da := absDiff(ra[i+3], rb[i+3])
			diff := float64(dr+dg+db+da) / 4

			totalColorDiff += diff
			result.MaxAlphaDiff = max(result.MaxAlphaDiff, da)
			if diff > float64(threshold) {
				result.PixelsDifferent++
			}
		}
	}

	similarity := 1 - float64(result.PixelsDifferent)/float64(result.TotalPixels)
	result.SimilarityScore = math.Round(similarity*1000) / 1000
	result.AverageColorDiff = math.Round(totalColorDiff/float64(result.TotalPixels)*100) / 100
	return result
}

func absDiff(a, b uint8) int {
	if a > b {
		return int(a - b)
	}
	return int(b - a)
}
