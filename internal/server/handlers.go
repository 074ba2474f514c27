package server

import (
	"encoding/json"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/ironsheep/pixel-tools-mcp/internal/imaging"
	"github.com/ironsheep/pixel-tools-mcp/internal/raster"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "image_load", "image_crop").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// ImageResult is the output of every tool that produces an image.
type ImageResult struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	MimeType    string `json:"mime_type"`
	ImageBase64 string `json:"image_base64"` // empty for a 0x0 image
}

// StatesResult holds the encoded variants returned by image_states.
type StatesResult struct {
	Normal   *ImageResult `json:"normal"`
	Disabled *ImageResult `json:"disabled"`
	Hovered  *ImageResult `json:"hovered"`
	Clicked  *ImageResult `json:"clicked"`
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Tool execution errors return a JSON-RPC error response with code -32000.
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	s.logger.Debug("tool call", "tool", params.Name)
	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		s.logger.Warn("tool execution failed", "tool", params.Name, "error", err)
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
		},
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
//
// Each tool handler:
//  1. Unmarshals arguments from JSON
//  2. Applies default values for optional parameters
//  3. Loads images from the cache or decodes them from base64
//  4. Calls the appropriate imaging function
//  5. Encodes the resulting image, if any
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	// Image Information
	case "image_load":
		return s.handleImageLoad(args)
	case "image_sample_color":
		return s.handleImageSampleColor(args)

	// Geometric Operations
	case "image_scale":
		return s.handleImageScale(args)
	case "image_crop":
		return s.handleImageCrop(args)
	case "image_trim":
		return s.handleImageTrim(args)
	case "image_superscript":
		return s.handleImageSuperscript(args)

	// Compositing Operations
	case "image_merge":
		return s.handleImageMerge(args)
	case "image_blend":
		return s.handleImageBlend(args)
	case "image_mask":
		return s.handleImageMask(args)
	case "image_tint":
		return s.handleImageTint(args)
	case "image_compare":
		return s.handleImageCompare(args)

	// Color Operations
	case "image_grayscale":
		return s.handleImageGrayscale(args)
	case "image_brightness":
		return s.handleImageBrightness(args)
	case "image_color":
		return s.handleImageColor(args)
	case "image_states":
		return s.handleImageStates(args)

	// Codec
	case "image_encode":
		return s.handleImageEncode(args)

	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &MCPError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// Panics are suppressed; on marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// === Image Inputs and Outputs ===

// imageSource names an input image by file path or base64 content.
type imageSource struct {
	Path        string `json:"path"`
	ImageBase64 string `json:"image_base64"`
}

// loadImage resolves src to a buffer. Files go through the cache; base64
// content is decoded on every call.
func (s *Server) loadImage(src imageSource) (*raster.Buffer, error) {
	switch {
	case src.Path != "" && src.ImageBase64 != "":
		return nil, errors.New("give either path or image_base64, not both")
	case src.Path != "":
		return s.cache.Load(src.Path)
	case src.ImageBase64 != "":
		return imaging.Decode(src.ImageBase64)
	default:
		return nil, errors.New("missing image: set path or image_base64")
	}
}

// loadPair resolves the base and overlay images concurrently.
func (s *Server) loadPair(base, overlay imageSource) (*raster.Buffer, *raster.Buffer, error) {
	return s.loadBoth("base", base, "overlay", overlay)
}

// loadBoth resolves two named images concurrently. Errors are prefixed with
// the name of the argument that failed.
func (s *Server) loadBoth(name1 string, src1 imageSource, name2 string, src2 imageSource) (*raster.Buffer, *raster.Buffer, error) {
	var (
		g          errgroup.Group
		img1, img2 *raster.Buffer
	)
	g.Go(func() error {
		var err error
		if img1, err = s.loadImage(src1); err != nil {
			return fmt.Errorf("%s: %w", name1, err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if img2, err = s.loadImage(src2); err != nil {
			return fmt.Errorf("%s: %w", name2, err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return img1, img2, nil
}

// encodeResult encodes img in format (png when empty). A 0x0 image has no
// valid encoding and is returned with empty content.
func encodeResult(img *raster.Buffer, format string) (*ImageResult, error) {
	if format == "" {
		format = "png"
	}
	mime, err := imaging.MimeType(format)
	if err != nil {
		return nil, err
	}

	result := &ImageResult{
		Width:    img.Width(),
		Height:   img.Height(),
		MimeType: mime,
	}
	if img.Empty() {
		return result, nil
	}

	result.ImageBase64, err = imaging.Encode(img, format)
	if err != nil {
		return nil, err
	}
	return result, nil
}

func parseOptionalColor(name string, s *string) (*raster.RGBA, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	c, err := imaging.ParseColor(*s)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return &c, nil
}

// === Image Information Handlers ===

type imageLoadArgs struct {
	Path string `json:"path"`
}

func (s *Server) handleImageLoad(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Path == "" {
		return nil, errors.New("path is required")
	}
	return imaging.LoadImageInfo(s.cache, a.Path)
}

type imageSampleColorArgs struct {
	imageSource
	X int `json:"x"`
	Y int `json:"y"`
}

func (s *Server) handleImageSampleColor(args json.RawMessage) (interface{}, error) {
	var a imageSampleColorArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	img, err := s.loadImage(a.imageSource)
	if err != nil {
		return nil, err
	}
	return imaging.SampleColor(img, a.X, a.Y)
}

// === Geometric Operation Handlers ===

type imageScaleArgs struct {
	imageSource
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Filter string `json:"filter"`
	Format string `json:"format"`
}

func (s *Server) handleImageScale(args json.RawMessage) (interface{}, error) {
	var a imageScaleArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if (a.Width > 0) == (a.Height > 0) {
		return nil, errors.New("give exactly one positive width or height")
	}

	filter := s.filter
	if a.Filter != "" {
		f, err := imaging.ParseFilter(a.Filter)
		if err != nil {
			return nil, err
		}
		filter = f
	}

	img, err := s.loadImage(a.imageSource)
	if err != nil {
		return nil, err
	}
	if err := imaging.CheckScale(img, a.Width, a.Height, s.maxPixels); err != nil {
		return nil, err
	}

	var scaled *raster.Buffer
	if a.Width > 0 {
		scaled = imaging.ScaleToWidthFilter(img, a.Width, filter)
	} else {
		scaled = imaging.ScaleToHeightFilter(img, a.Height, filter)
	}
	return encodeResult(scaled, a.Format)
}

type imageCropArgs struct {
	imageSource
	X      int    `json:"x"`
	Y      int    `json:"y"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Format string `json:"format"`
}

func (s *Server) handleImageCrop(args json.RawMessage) (interface{}, error) {
	var a imageCropArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	img, err := s.loadImage(a.imageSource)
	if err != nil {
		return nil, err
	}
	cropped, err := imaging.Crop(img, raster.Rect{X: a.X, Y: a.Y, Width: a.Width, Height: a.Height})
	if err != nil {
		return nil, err
	}
	return encodeResult(cropped, a.Format)
}

type imageTrimArgs struct {
	imageSource
	MaxAlpha int    `json:"max_alpha"`
	Format   string `json:"format"`
}

func (s *Server) handleImageTrim(args json.RawMessage) (interface{}, error) {
	var a imageTrimArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	img, err := s.loadImage(a.imageSource)
	if err != nil {
		return nil, err
	}
	return encodeResult(imaging.Trim(img, a.MaxAlpha), a.Format)
}

type imageSuperscriptArgs struct {
	imageSource
	PreserveAspect *bool  `json:"preserve_aspect"`
	Format         string `json:"format"`
}

func (s *Server) handleImageSuperscript(args json.RawMessage) (interface{}, error) {
	var a imageSuperscriptArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	opts := s.superscript
	if a.PreserveAspect != nil {
		opts.PreserveAspect = *a.PreserveAspect
	}
	img, err := s.loadImage(a.imageSource)
	if err != nil {
		return nil, err
	}
	return encodeResult(imaging.SuperscriptWith(img, opts), a.Format)
}

// === Compositing Operation Handlers ===

type imagePairArgs struct {
	Base    imageSource `json:"base"`
	Overlay imageSource `json:"overlay"`
	OffsetX int         `json:"offset_x"`
	OffsetY int         `json:"offset_y"`
	Format  string      `json:"format"`
}

func (a imagePairArgs) offset() raster.Offset {
	return raster.Offset{X: a.OffsetX, Y: a.OffsetY}
}

func (s *Server) handleImageMerge(args json.RawMessage) (interface{}, error) {
	var a imagePairArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	base, overlay, err := s.loadPair(a.Base, a.Overlay)
	if err != nil {
		return nil, err
	}
	return encodeResult(imaging.Merge(base, overlay, a.offset()), a.Format)
}

type imageBlendArgs struct {
	imagePairArgs
	FeatherWidth  *int `json:"feather_width"`
	FeatherHeight *int `json:"feather_height"`
}

func (s *Server) handleImageBlend(args json.RawMessage) (interface{}, error) {
	var a imageBlendArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	base, overlay, err := s.loadPair(a.Base, a.Overlay)
	if err != nil {
		return nil, err
	}

	fw, fh := overlay.Width()/10, overlay.Height()/10
	if a.FeatherWidth != nil {
		fw = *a.FeatherWidth
	}
	if a.FeatherHeight != nil {
		fh = *a.FeatherHeight
	}
	return encodeResult(imaging.Blend(base, overlay, a.offset(), fw, fh), a.Format)
}

type imageCompareArgs struct {
	First     imageSource `json:"first"`
	Second    imageSource `json:"second"`
	Threshold *int        `json:"threshold"`
}

func (s *Server) handleImageCompare(args json.RawMessage) (interface{}, error) {
	var a imageCompareArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	first, second, err := s.loadBoth("first", a.First, "second", a.Second)
	if err != nil {
		return nil, err
	}

	threshold := imaging.DefaultCompareThreshold
	if a.Threshold != nil {
		if *a.Threshold < 0 {
			return nil, fmt.Errorf("threshold must not be negative, got %d", *a.Threshold)
		}
		threshold = *a.Threshold
	}
	return imaging.Compare(first, second, threshold), nil
}

type imageColorArgs struct {
	imageSource
	Color  string `json:"color"`
	Median *int   `json:"median"`
	Format string `json:"format"`
}

// loadWithColor resolves the image and the required color argument.
func (s *Server) loadWithColor(a imageColorArgs) (*raster.Buffer, raster.RGBA, error) {
	if a.Color == "" {
		return nil, raster.RGBA{}, errors.New("color is required")
	}
	c, err := imaging.ParseColor(a.Color)
	if err != nil {
		return nil, raster.RGBA{}, err
	}
	img, err := s.loadImage(a.imageSource)
	if err != nil {
		return nil, raster.RGBA{}, err
	}
	return img, c, nil
}

func (s *Server) handleImageMask(args json.RawMessage) (interface{}, error) {
	var a imageColorArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	img, c, err := s.loadWithColor(a)
	if err != nil {
		return nil, err
	}
	return encodeResult(imaging.Mask(img, c), a.Format)
}

func (s *Server) handleImageTint(args json.RawMessage) (interface{}, error) {
	var a imageColorArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	img, c, err := s.loadWithColor(a)
	if err != nil {
		return nil, err
	}
	return encodeResult(imaging.Tint(img, c), a.Format)
}

// === Color Operation Handlers ===

type imageFormatArgs struct {
	imageSource
	Format string `json:"format"`
}

func (s *Server) handleImageGrayscale(args json.RawMessage) (interface{}, error) {
	var a imageFormatArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	img, err := s.loadImage(a.imageSource)
	if err != nil {
		return nil, err
	}
	return encodeResult(imaging.Grayscale(img), a.Format)
}

type imageBrightnessArgs struct {
	imageSource
	Multiplier *float32 `json:"multiplier"`
	Format     string   `json:"format"`
}

func (s *Server) handleImageBrightness(args json.RawMessage) (interface{}, error) {
	var a imageBrightnessArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Multiplier == nil {
		return nil, errors.New("multiplier is required")
	}
	img, err := s.loadImage(a.imageSource)
	if err != nil {
		return nil, err
	}
	return encodeResult(imaging.ChangeBrightness(img, *a.Multiplier), a.Format)
}

func (s *Server) handleImageColor(args json.RawMessage) (interface{}, error) {
	var a imageColorArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	img, c, err := s.loadWithColor(a)
	if err != nil {
		return nil, err
	}
	median := imaging.DefaultMedian
	if a.Median != nil {
		median = *a.Median
	}
	return encodeResult(imaging.ColorMedian(img, c, median), a.Format)
}

type imageStatesArgs struct {
	imageSource
	DisabledColor   *string  `json:"disabled_color"`
	HoveredColor    *string  `json:"hovered_color"`
	ClickedColor    *string  `json:"clicked_color"`
	HoverBrightness *float32 `json:"hover_brightness"`
	ClickBrightness *float32 `json:"click_brightness"`
	Format          string   `json:"format"`
}

func (s *Server) handleImageStates(args json.RawMessage) (interface{}, error) {
	var a imageStatesArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}

	opts := imaging.StateOptions{
		HoverBrightness: a.HoverBrightness,
		ClickBrightness: a.ClickBrightness,
	}
	var err error
	if opts.DisabledColor, err = parseOptionalColor("disabled_color", a.DisabledColor); err != nil {
		return nil, err
	}
	if opts.HoveredColor, err = parseOptionalColor("hovered_color", a.HoveredColor); err != nil {
		return nil, err
	}
	if opts.ClickedColor, err = parseOptionalColor("clicked_color", a.ClickedColor); err != nil {
		return nil, err
	}

	img, err := s.loadImage(a.imageSource)
	if err != nil {
		return nil, err
	}
	set := imaging.GenerateStates(img, opts)

	var result StatesResult
	for _, v := range []struct {
		dst **ImageResult
		img *raster.Buffer
	}{
		{&result.Normal, set.Normal},
		{&result.Disabled, set.Disabled},
		{&result.Hovered, set.Hovered},
		{&result.Clicked, set.Clicked},
	} {
		if *v.dst, err = encodeResult(v.img, a.Format); err != nil {
			return nil, err
		}
	}
	return &result, nil
}

// === Codec Handlers ===

func (s *Server) handleImageEncode(args json.RawMessage) (interface{}, error) {
	var a imageFormatArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Format == "" {
		return nil, errors.New("format is required")
	}
	img, err := s.loadImage(a.imageSource)
	if err != nil {
		return nil, err
	}
	return encodeResult(img, a.Format)
}
