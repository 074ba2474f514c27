package imaging

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/ironsheep/pixel-tools-mcp/internal/raster"
)

// writeTestImage encodes img as PNG into a file under t.TempDir() and
// returns its path.
func writeTestImage(t *testing.T, name string, img *raster.Buffer) string {
	t.Helper()
	data, err := EncodeBytes(img, "png")
	if err != nil {
		t.Fatalf("failed to encode image: %v", err)
	}
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("failed to write image: %v", err)
	}
	return path
}

func TestNewImageCache(t *testing.T) {
	cache := NewImageCache(0)
	if cache == nil {
		t.Fatal("NewImageCache returned nil")
	}
	if cache.images == nil {
		t.Fatal("NewImageCache did not initialize images map")
	}
	if cache.Len() != 0 {
		t.Errorf("new cache holds %d images", cache.Len())
	}
}

func TestImageCache_Load(t *testing.T) {
	cache := NewImageCache(0)
	imgPath := writeTestImage(t, "red.png", createInMemoryImage(100, 100, red))

	img1, err := cache.Load(imgPath)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if img1.Width() != 100 || img1.Height() != 100 {
		t.Errorf("unexpected dimensions: got %dx%d, want 100x100", img1.Width(), img1.Height())
	}

	// Second load should return cached image
	img2, err := cache.Load(imgPath)
	if err != nil {
		t.Fatalf("second Load failed: %v", err)
	}
	if img1 != img2 {
		t.Error("second Load did not return cached image")
	}
}

func TestImageCache_Load_PreservesPixels(t *testing.T) {
	src := createGradientImage(13, 7)
	img, err := NewImageCache(0).Load(writeTestImage(t, "gradient.png", src))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !img.Equal(src) {
		t.Error("loaded PNG differs from the encoded buffer")
	}
}

func TestImageCache_Load_NonExistent(t *testing.T) {
	cache := NewImageCache(0)
	if _, err := cache.Load("/nonexistent/path/to/image.png"); err == nil {
		t.Error("Load should fail for non-existent file")
	}
}

func TestImageCache_Load_InvalidImage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "invalid.png")
	if err := os.WriteFile(path, []byte("not an image"), 0o600); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}

	_, err := NewImageCache(0).Load(path)
	if !errors.Is(err, raster.ErrDecode) {
		t.Errorf("got %v, want ErrDecode", err)
	}
}

func TestImageCache_MaxEntries(t *testing.T) {
	cache := NewImageCache(2)
	paths := []string{
		writeTestImage(t, "a.png", createInMemoryImage(2, 2, red)),
		writeTestImage(t, "b.png", createInMemoryImage(2, 2, green)),
		writeTestImage(t, "c.png", createInMemoryImage(2, 2, blue)),
	}

	for _, p := range paths {
		if _, err := cache.Load(p); err != nil {
			t.Fatalf("Load(%s) failed: %v", p, err)
		}
	}

	if cache.Len() != 2 {
		t.Fatalf("Len: got %d, want 2", cache.Len())
	}
	cache.mu.RLock()
	_, oldest := cache.images[paths[0]]
	_, newest := cache.images[paths[2]]
	cache.mu.RUnlock()
	if oldest {
		t.Error("oldest image was not evicted")
	}
	if !newest {
		t.Error("newest image is missing")
	}
}

func TestImageCache_Clear(t *testing.T) {
	cache := NewImageCache(0)
	imgPath := writeTestImage(t, "green.png", createInMemoryImage(50, 50, green))

	if _, err := cache.Load(imgPath); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	cache.Clear()

	if n := cache.Len(); n != 0 {
		t.Errorf("Clear did not empty cache: %d images remain", n)
	}
}

func TestImageCache_Evict(t *testing.T) {
	cache := NewImageCache(0)
	imgPath := writeTestImage(t, "blue.png", createInMemoryImage(50, 50, blue))

	first, err := cache.Load(imgPath)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	cache.Evict(imgPath)

	cache.mu.RLock()
	_, exists := cache.images[imgPath]
	orderLen := len(cache.order)
	cache.mu.RUnlock()

	if exists || orderLen != 0 {
		t.Error("Evict did not remove image from cache")
	}

	second, err := cache.Load(imgPath)
	if err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if first == second {
		t.Error("reload after Evict returned the evicted buffer")
	}
}

func TestImageCache_Evict_NonExistent(t *testing.T) {
	cache := NewImageCache(0)
	// Should not panic
	cache.Evict("/nonexistent/path")
}

func TestImageCache_ConcurrentAccess(t *testing.T) {
	cache := NewImageCache(1)
	imgPath := writeTestImage(t, "gray.png", createInMemoryImage(50, 50, raster.RGBA{R: 128, G: 128, B: 128, A: 255}))

	var wg sync.WaitGroup
	errs := make(chan error, 100)

	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := cache.Load(imgPath); err != nil {
				errs <- err
			}
		}()
	}

	wg.Wait()
	close(errs)

	for err := range errs {
		t.Errorf("concurrent Load error: %v", err)
	}
	if cache.Len() != 1 {
		t.Errorf("Len: got %d, want 1", cache.Len())
	}
}

func TestLoadImageInfo(t *testing.T) {
	cache := NewImageCache(0)
	imgPath := writeTestImage(t, "info.png", createInMemoryImage(200, 150, raster.RGBA{R: 255, G: 128, B: 64, A: 255}))

	info, err := LoadImageInfo(cache, imgPath)
	if err != nil {
		t.Fatalf("LoadImageInfo failed: %v", err)
	}

	if info.Width != 200 {
		t.Errorf("Width: got %d, want 200", info.Width)
	}
	if info.Height != 150 {
		t.Errorf("Height: got %d, want 150", info.Height)
	}
	if info.Format != "png" {
		t.Errorf("Format: got %s, want png", info.Format)
	}
	if info.HasAlpha {
		t.Error("HasAlpha should be false for an opaque image")
	}
	if info.FileSizeBytes <= 0 {
		t.Error("FileSizeBytes should be positive")
	}
}

func TestLoadImageInfo_HasAlpha(t *testing.T) {
	info, err := LoadImageInfo(NewImageCache(0), writeTestImage(t, "alpha.png", createGradientImage(4, 4)))
	if err != nil {
		t.Fatalf("LoadImageInfo failed: %v", err)
	}
	if !info.HasAlpha {
		t.Error("HasAlpha should be true for a translucent image")
	}
}

func TestLoadImageInfo_FormatDetection(t *testing.T) {
	cache := NewImageCache(0)

	tests := []struct {
		ext    string
		format string
	}{
		{".png", "png"},
		{".jpg", "jpeg"},
		{".jpeg", "jpeg"},
		{".gif", "gif"},
		{".tiff", "tiff"},
		{".xyz", "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.ext, func(t *testing.T) {
			// A valid PNG regardless of extension
			path := writeTestImage(t, "test-format"+tt.ext, raster.New(10, 10))

			info, err := LoadImageInfo(cache, path)
			if err != nil {
				t.Fatalf("LoadImageInfo failed: %v", err)
			}

			if info.Format != tt.format {
				t.Errorf("Format for %s: got %s, want %s", tt.ext, info.Format, tt.format)
			}
		})
	}
}

func TestLoadImageInfo_NonExistent(t *testing.T) {
	cache := NewImageCache(0)
	if _, err := LoadImageInfo(cache, "/nonexistent/image.png"); err == nil {
		t.Error("LoadImageInfo should fail for non-existent file")
	}
}
