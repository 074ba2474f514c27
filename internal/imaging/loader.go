package imaging

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/disintegration/imaging"

	"github.com/ironsheep/pixel-tools-mcp/internal/raster"
)

// ImageCache provides thread-safe caching of decoded images to avoid
// redundant disk reads and decodes.
//
// Buffers are keyed by the exact path string passed to Load. A cached buffer
// is shared by every caller and must not be modified; all operations in this
// package treat their inputs as read-only.
//
// # Memory Management
//
// With a positive maxEntries the cache holds at most that many images and
// evicts the least recently loaded one first. With maxEntries <= 0 images
// stay cached until Evict or Clear.
//
// # Example Usage
//
//	cache := imaging.NewImageCache(64)
//	img, err := cache.Load("/path/to/image.png")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	gray := imaging.Grayscale(img)
type ImageCache struct {
	mu         sync.RWMutex
	images     map[string]*raster.Buffer
	order      []string
	maxEntries int
}

// NewImageCache creates an empty cache holding at most maxEntries images
// (unbounded when maxEntries <= 0).
func NewImageCache(maxEntries int) *ImageCache {
	return &ImageCache{
		images:     make(map[string]*raster.Buffer),
		maxEntries: maxEntries,
	}
}

// Load retrieves an image from the cache or reads and decodes it from disk.
//
// # Errors
//
//   - Returns error if the file does not exist or cannot be read
//   - Returns error wrapping raster.ErrDecode if the file is not a
//     supported image
func (c *ImageCache) Load(path string) (*raster.Buffer, error) {
	c.mu.RLock()
	if img, ok := c.images[path]; ok {
		c.mu.RUnlock()
		Logger().Debug("image cache hit", "path", path)
		return img, nil
	}
	c.mu.RUnlock()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}

	img, err := DecodeBytes(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image %s: %w", path, err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if cached, ok := c.images[path]; ok {
		return cached, nil
	}
	c.images[path] = img
	c.order = append(c.order, path)
	for c.maxEntries > 0 && len(c.order) > c.maxEntries {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.images, oldest)
		Logger().Debug("image cache eviction", "path", oldest)
	}

	return img, nil
}

// Len returns the number of cached images.
func (c *ImageCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.images)
}

// Clear removes all images from the cache.
func (c *ImageCache) Clear() {
	c.mu.Lock()
	c.images = make(map[string]*raster.Buffer)
	c.order = nil
	c.mu.Unlock()
}

// Evict removes a specific image from the cache by its path.
// If the path is not in the cache, this method does nothing.
func (c *ImageCache) Evict(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.images[path]; !ok {
		return
	}
	delete(c.images, path)
	for i, p := range c.order {
		if p == path {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
}

// ImageInfo contains metadata about a loaded image file.
type ImageInfo struct {
	// Width is the image width in pixels.
	Width int `json:"width"`

	// Height is the image height in pixels.
	Height int `json:"height"`

	// Format is the format derived from the file extension: "png", "jpeg",
	// "gif", "tiff", "bmp" or "unknown".
	Format string `json:"format"`

	// HasAlpha reports whether any pixel is not fully opaque.
	HasAlpha bool `json:"has_alpha"`

	// FileSizeBytes is the size of the image file on disk in bytes.
	FileSizeBytes int64 `json:"file_size_bytes"`
}

// LoadImageInfo loads an image through cache and returns its metadata.
func LoadImageInfo(cache *ImageCache, path string) (*ImageInfo, error) {
	img, err := cache.Load(path)
	if err != nil {
		return nil, err
	}

	stat, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	format := "unknown"
	if f, err := imaging.FormatFromFilename(path); err == nil {
		format = strings.ToLower(f.String())
	}

	return &ImageInfo{
		Width:         img.Width(),
		Height:        img.Height(),
		Format:        format,
		HasAlpha:      !img.Opaque(),
		FileSizeBytes: stat.Size(),
	}, nil
}
