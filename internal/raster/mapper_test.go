package raster

import "testing"

func invert(c RGBA) RGBA {
	return RGBA{255 - c.R, 255 - c.G, 255 - c.B, c.A}
}

func TestMap(t *testing.T) {
	src := Solid(5, 4, RGBA{10, 20, 30, 40})
	out := src.Map(invert)

	got, _ := out.Pixel(4, 3)
	if got != (RGBA{245, 235, 225, 40}) {
		t.Errorf("got %v, want (245,235,225,40)", got)
	}
	orig, _ := src.Pixel(4, 3)
	if orig != (RGBA{10, 20, 30, 40}) {
		t.Errorf("input modified: %v", orig)
	}
}

func TestMap_Empty(t *testing.T) {
	out := New(0, 0).Map(invert)
	if !out.Empty() {
		t.Errorf("got %dx%d, want empty", out.Width(), out.Height())
	}
}

func TestMapXY(t *testing.T) {
	src := New(7, 9)
	out := src.MapXY(func(x, y int, c RGBA) RGBA {
		return RGBA{uint8(x), uint8(y), 0, 255}
	})

	for y := 0; y < 9; y++ {
		for x := 0; x < 7; x++ {
			got, _ := out.Pixel(x, y)
			if got != (RGBA{uint8(x), uint8(y), 0, 255}) {
				t.Fatalf("pixel (%d,%d): got %v", x, y, got)
			}
		}
	}
}

func TestCompose(t *testing.T) {
	double := func(c RGBA) RGBA { return RGBA{c.R * 2, c.G * 2, c.B * 2, c.A} }
	addOne := func(c RGBA) RGBA { return RGBA{c.R + 1, c.G + 1, c.B + 1, c.A} }

	got := Compose(double, addOne)(RGBA{1, 2, 3, 4})
	if got != (RGBA{3, 5, 7, 4}) {
		t.Errorf("got %v, want (3,5,7,4)", got)
	}

	identity := Compose()
	if c := (RGBA{9, 8, 7, 6}); identity(c) != c {
		t.Errorf("empty Compose is not identity")
	}

	if twice := Compose(invert, invert); twice(RGBA{1, 2, 3, 4}) != (RGBA{1, 2, 3, 4}) {
		t.Error("inverting twice should be identity")
	}
}
