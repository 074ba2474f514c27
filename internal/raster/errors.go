package raster

import "errors"

var (
	// ErrOutOfBounds reports a pixel coordinate outside the buffer.
	ErrOutOfBounds = errors.New("coordinates outside buffer bounds")

	// ErrInvalidRegion reports a rectangle that does not fit inside the buffer.
	ErrInvalidRegion = errors.New("region exceeds buffer bounds")

	// ErrDecode reports malformed base64 or unreadable image bytes.
	ErrDecode = errors.New("image decode failed")

	// ErrTooLarge reports an output image above the allowed pixel count.
	ErrTooLarge = errors.New("image too large")

	// ErrEncode reports an unsupported output format or a codec failure.
	ErrEncode = errors.New("image encode failed")
)
