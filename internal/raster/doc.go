// Package raster provides the pixel buffer every image operation in this module
// reads from and writes to.
//
// A Buffer is a row-major grid of non-premultiplied 8-bit RGBA pixels whose
// top-left pixel is always (0,0). Buffers are treated as values: operations
// read their inputs and allocate a new Buffer for their output, so a Buffer
// shared between goroutines is safe as long as nobody calls SetPixel on it.
//
// # Errors
//
// Failures are reported with the sentinel errors declared in errors.go,
// usually wrapped with context. Test for them with errors.Is:
//
//	if _, err := buf.Pixel(x, y); errors.Is(err, raster.ErrOutOfBounds) {
//	    // ...
//	}
//
// # Pixel Mappers
//
// Per-pixel transforms are plain function values (Mapper, PositionalMapper)
// applied uniformly across a buffer with Map and MapXY. Mappers chain with
// Compose.
package raster
