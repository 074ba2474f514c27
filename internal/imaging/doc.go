// Package imaging implements the pixel-manipulation engine behind the MCP tools.
//
// Every operation takes one or more *raster.Buffer inputs, never modifies
// them, and returns a newly allocated buffer. Operations are grouped by kind:
//
//   - Geometry: ScaleToWidth, ScaleToHeight, Crop, Trim, Superscript
//   - Compositing: Merge, Blend, Feather, Mask, Tint
//   - Color: Grayscale, ChangeBrightness, Color, ColorMedian
//   - Codec boundary: Decode, Encode, DecodeBytes, EncodeBytes
//   - Widget states: GenerateStates
//   - Inspection: SampleColor, Compare, LoadImageInfo
//
// # Coordinate System
//
// All pixel coordinates are 0-based with the origin at the top-left corner:
//   - X: horizontal position (0 = leftmost pixel)
//   - Y: vertical position (0 = topmost pixel)
//   - Rectangles are given as an origin plus width and height
//
// # Thread Safety
//
// Operations are stateless and may be called concurrently, including on a
// shared input buffer. Per-pixel loops run row-parallel internally; the
// result does not depend on scheduling. ImageCache is safe for concurrent use.
//
// # Error Handling
//
// Only Crop and the codec boundary can fail. Errors wrap the sentinels of
// package raster (ErrInvalidRegion, ErrDecode, ErrEncode, ErrOutOfBounds),
// so callers test them with errors.Is. A failing call never returns a
// usable-looking empty result.
package imaging
