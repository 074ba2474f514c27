package imaging

import "github.com/ironsheep/pixel-tools-mcp/internal/raster"

const (
	// DefaultHoverBrightness brightens the hovered variant.
	DefaultHoverBrightness float32 = 1.2

	// DefaultClickBrightness darkens the clicked variant.
	DefaultClickBrightness float32 = 0.8
)

// StateOptions customizes GenerateStates. The zero value produces the
// default variants.
type StateOptions struct {
	// DisabledColor, HoveredColor and ClickedColor recolor the matching
	// variant with Color instead of the default transform when non-nil.
	DisabledColor *raster.RGBA
	HoveredColor  *raster.RGBA
	ClickedColor  *raster.RGBA

	// HoverBrightness and ClickBrightness override the brightness
	// multipliers when non-nil.
	HoverBrightness *float32
	ClickBrightness *float32
}

// StateSet holds the per-state variants of one image, as shown by an image
// button while it is idle, disabled, under the pointer, or pressed.
type StateSet struct {
	Normal   *raster.Buffer
	Disabled *raster.Buffer
	Hovered  *raster.Buffer
	Clicked  *raster.Buffer
}

// GenerateStates derives interaction variants from img.
//
// By default Disabled is Grayscale(img), Hovered is ChangeBrightness(img,
// 1.2) and Clicked is ChangeBrightness(img, 0.8). Normal is a copy of img.
func GenerateStates(img *raster.Buffer, opts StateOptions) *StateSet {
	hover := DefaultHoverBrightness
	if opts.HoverBrightness != nil {
		hover = *opts.HoverBrightness
	}
	click := DefaultClickBrightness
	if opts.ClickBrightness != nil {
		click = *opts.ClickBrightness
	}

	set := &StateSet{Normal: img.Clone()}

	if opts.DisabledColor != nil {
		set.Disabled = Color(img, *opts.DisabledColor)
	} else {
		set.Disabled = Grayscale(img)
	}

	if opts.HoveredColor != nil {
		set.Hovered = Color(img, *opts.HoveredColor)
	} else {
		set.Hovered = ChangeBrightness(img, hover)
	}

	if opts.ClickedColor != nil {
		set.Clicked = Color(img, *opts.ClickedColor)
	} else {
		set.Clicked = ChangeBrightness(img, click)
	}

	return set
}
