package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp" // Register WebP format decoder

	"github.com/ironsheep/pixel-tools-mcp/internal/raster"
)

var mimeTypes = map[imaging.Format]string{
	imaging.JPEG: "image/jpeg",
	imaging.PNG:  "image/png",
	imaging.GIF:  "image/gif",
	imaging.TIFF: "image/tiff",
	imaging.BMP:  "image/bmp",
}

// Decode converts standard, padded base64 text holding an encoded image
// into a buffer. Supported containers are PNG, JPEG, GIF, BMP, TIFF and
// WebP. Any failure returns an error wrapping raster.ErrDecode.
func Decode(text string) (*raster.Buffer, error) {
	data, err := base64.StdEncoding.DecodeString(strings.TrimSpace(text))
	if err != nil {
		return nil, fmt.Errorf("%w: invalid base64: %w", raster.ErrDecode, err)
	}
	return DecodeBytes(data)
}

// DecodeBytes converts encoded image bytes into a buffer. Any failure
// returns an error wrapping raster.ErrDecode.
func DecodeBytes(data []byte) (buf *raster.Buffer, err error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: no image data", raster.ErrDecode)
	}

	// Some decoders panic on truncated input.
	defer func() {
		if r := recover(); r != nil {
			buf, err = nil, fmt.Errorf("%w: decoder panic: %v", raster.ErrDecode, r)
		}
	}()

	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", raster.ErrDecode, err)
	}
	return raster.FromImage(img), nil
}

// Encode encodes img in the named container format and returns the bytes
// as standard, padded base64.
//
// Format names are "png", "jpg"/"jpeg", "gif", "bmp" and "tif"/"tiff",
// matched case-insensitively with an optional leading dot. Unknown formats
// and codec failures return an error wrapping raster.ErrEncode.
func Encode(img *raster.Buffer, format string) (string, error) {
	data, err := EncodeBytes(img, format)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(data), nil
}

// EncodeBytes encodes img in the named container format. See Encode for the
// accepted names.
func EncodeBytes(img *raster.Buffer, format string) ([]byte, error) {
	f, err := imaging.FormatFromExtension(format)
	if err != nil {
		return nil, fmt.Errorf("%w: format %q: %w", raster.ErrEncode, format, err)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img.NRGBA(), f); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", raster.ErrEncode, f, err)
	}
	Logger().Debug("encoded image", "format", f.String(), "bytes", buf.Len())
	return buf.Bytes(), nil
}

// MimeType returns the MIME type for a format name accepted by Encode.
func MimeType(format string) (string, error) {
	f, err := imaging.FormatFromExtension(format)
	if err != nil {
		return "", fmt.Errorf("%w: format %q: %w", raster.ErrEncode, format, err)
	}
	return mimeTypes[f], nil
}
