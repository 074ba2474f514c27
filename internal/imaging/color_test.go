package imaging

import (
	"testing"

	"github.com/ironsheep/pixel-tools-mcp/internal/raster"
)

func TestGrayscale(t *testing.T) {
	img := createGradientImage(12, 9)
	result := Grayscale(img)

	if result.Width() != 12 || result.Height() != 9 {
		t.Fatalf("dimensions: got %dx%d, want 12x9", result.Width(), result.Height())
	}
	for y := 0; y < 9; y++ {
		for x := 0; x < 12; x++ {
			got := pixelAt(t, result, x, y)
			orig := pixelAt(t, img, x, y)
			if got.R != got.G || got.G != got.B {
				t.Fatalf("pixel (%d,%d) not monochrome: %v", x, y, got)
			}
			if got.A != orig.A {
				t.Fatalf("pixel (%d,%d) alpha: got %d, want %d", x, y, got.A, orig.A)
			}
		}
	}
}

func TestGrayscale_KnownValues(t *testing.T) {
	tests := []struct {
		name string
		in   raster.RGBA
		want uint8
	}{
		{"white", white, 255},
		{"black", raster.RGBA{A: 255}, 0},
		{"red", red, 76},
		{"green", green, 150},
		{"blue", blue, 29},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := pixelAt(t, Grayscale(createInMemoryImage(1, 1, tt.in)), 0, 0)
			if got.R != tt.want {
				t.Errorf("got %d, want %d", got.R, tt.want)
			}
		})
	}
}

func TestChangeBrightness_IdentityMultiplier(t *testing.T) {
	img := createGradientImage(16, 11)
	if got := ChangeBrightness(img, 1.0); !got.Equal(img) {
		t.Error("multiplier 1.0 should leave the image unchanged")
	}
}

func TestChangeBrightness_Overflow(t *testing.T) {
	tests := []struct {
		name string
		in   raster.RGBA
		mult float32
		want raster.RGBA
	}{
		{
			// (300,300,300): red's excess is held for green and blue, green's
			// and blue's excess raise the stored channels; all clamp to 255.
			"uniform overflow",
			raster.RGBA{R: 200, G: 200, B: 200, A: 255}, 1.5,
			raster.RGBA{R: 255, G: 255, B: 255, A: 255},
		},
		{
			// (300,150,75): red overflows by 45 into green and blue.
			"red overflow",
			raster.RGBA{R: 200, G: 100, B: 50, A: 255}, 1.5,
			raster.RGBA{R: 255, G: 195, B: 120, A: 255},
		},
		{
			// (150,300,75): green overflows by 45 into red and blue.
			"green overflow",
			raster.RGBA{R: 100, G: 200, B: 50, A: 128}, 1.5,
			raster.RGBA{R: 195, G: 255, B: 120, A: 128},
		},
		{
			// (180,240,300): blue overflows by 45; green is pushed to 285
			// after its own check and is clamped at the end.
			"blue overflow",
			raster.RGBA{R: 150, G: 200, B: 250, A: 255}, 1.2,
			raster.RGBA{R: 225, G: 255, B: 255, A: 255},
		},
		{
			"darken",
			raster.RGBA{R: 200, G: 100, B: 51, A: 7}, 0.5,
			raster.RGBA{R: 100, G: 50, B: 25, A: 7},
		},
		{
			"negative multiplier",
			raster.RGBA{R: 200, G: 100, B: 50, A: 255}, -1,
			raster.RGBA{A: 255},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := pixelAt(t, ChangeBrightness(createInMemoryImage(1, 1, tt.in), tt.mult), 0, 0)
			if got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestChangeBrightness_OrderDependence(t *testing.T) {
	// Green overflows into red after red was already checked, so red can
	// end up above its own scaled value; blue's overflow then feeds both.
	got := BrightnessMapper(2)(raster.RGBA{R: 100, G: 140, B: 130, A: 255})

	// scaled (200,280,260) -> green: (225,255,285) -> blue: (255,285,255)
	want := raster.RGBA{R: 255, G: 255, B: 255, A: 255}
	if got != want {
		t.Errorf("got %v, want %v", got, want)
	}

	got = BrightnessMapper(1.1)(raster.RGBA{R: 10, G: 240, B: 0, A: 255})
	// scaled (11,264,0) -> green: (20,255,9)
	want = raster.RGBA{R: 20, G: 255, B: 9, A: 255}
	if got != want {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestColor_MedianIsNeutral(t *testing.T) {
	target := raster.RGBA{R: 30, G: 144, B: 255, A: 255}

	tests := []struct {
		name   string
		pixel  raster.RGBA
		median int
	}{
		{"default median gray", raster.RGBA{R: 127, G: 127, B: 127, A: 255}, DefaultMedian},
		{"mixed channels", raster.RGBA{R: 100, G: 150, B: 131, A: 255}, DefaultMedian},
		{"custom median", raster.RGBA{R: 200, G: 200, B: 200, A: 255}, 200},
		{"median zero, black", raster.RGBA{A: 255}, 0},
		{"median 255, white", white, 255},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := pixelAt(t, ColorMedian(createInMemoryImage(1, 1, tt.pixel), target, tt.median), 0, 0)
			if got.R != target.R || got.G != target.G || got.B != target.B {
				t.Errorf("got %v, want target RGB %v", got, target)
			}
		})
	}
}

func TestColor_Extremes(t *testing.T) {
	target := raster.RGBA{R: 100, G: 50, B: 0, A: 255}

	if got := pixelAt(t, Color(createInMemoryImage(1, 1, white), target), 0, 0); got != white {
		t.Errorf("white: got %v, want white", got)
	}

	black := raster.RGBA{A: 255}
	if got := pixelAt(t, Color(createInMemoryImage(1, 1, black), target), 0, 0); got != black {
		t.Errorf("black: got %v, want black", got)
	}
}

func TestColor_StaysInTargetHue(t *testing.T) {
	target := raster.RGBA{R: 200, G: 100, B: 0, A: 255}
	result := Color(createGradientImage(10, 10), target)

	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			got := pixelAt(t, result, x, y)
			// Shades of an orange never have more blue than red or green.
			if got.B > got.G || got.G > got.R {
				t.Fatalf("pixel (%d,%d) %v left the target's tone", x, y, got)
			}
		}
	}
}

func TestColor_Alpha(t *testing.T) {
	img := createInMemoryImage(1, 1, raster.RGBA{R: 127, G: 127, B: 127, A: 200})

	if got := pixelAt(t, Color(img, raster.RGBA{R: 1, A: 255}), 0, 0); got.A != 200 {
		t.Errorf("opaque target: alpha %d, want 200", got.A)
	}
	if got := pixelAt(t, Color(img, raster.RGBA{R: 1, A: 0}), 0, 0); got.A != 0 {
		t.Errorf("transparent target: alpha %d, want 0", got.A)
	}
}

func TestMapPixels_Compose(t *testing.T) {
	img := createGradientImage(6, 6)

	chained := MapPixels(img, raster.Compose(BrightnessMapper(0.5), ColorMapper(red, DefaultMedian)))
	stepwise := ColorMedian(ChangeBrightness(img, 0.5), red, DefaultMedian)

	if !chained.Equal(stepwise) {
		t.Error("composed mappers should match applying the operations one after another")
	}
}

func TestMapPixelsXY(t *testing.T) {
	img := createInMemoryImage(4, 4, white)
	checker := MapPixelsXY(img, func(x, y int, c raster.RGBA) raster.RGBA {
		if (x+y)%2 == 1 {
			return raster.RGBA{A: 255}
		}
		return c
	})

	if got := pixelAt(t, checker, 1, 0); got.R != 0 {
		t.Errorf("(1,0): got %v, want black", got)
	}
	if got := pixelAt(t, checker, 1, 1); got != white {
		t.Errorf("(1,1): got %v, want white", got)
	}
}
