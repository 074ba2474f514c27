package server

import "github.com/ironsheep/pixel-tools-mcp/internal/imaging"

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// imageSourceProperties describes the two ways an image can be passed:
// a file path or base64 text. Exactly one must be set.
func imageSourceProperties() map[string]interface{} {
	return map[string]interface{}{
		"path": map[string]interface{}{
			"type":        "string",
			"description": "Absolute path to the image file",
		},
		"image_base64": map[string]interface{}{
			"type":        "string",
			"description": "Base64-encoded image (PNG, JPEG, GIF, BMP, TIFF or WebP). Use instead of path",
		},
	}
}

// imageSourceObject is the schema for a nested image argument such as
// base or overlay.
func imageSourceObject(description string) map[string]interface{} {
	return map[string]interface{}{
		"type":        "object",
		"description": description,
		"properties":  imageSourceProperties(),
	}
}

var formatProperty = map[string]interface{}{
	"type":        "string",
	"enum":        []string{"png", "jpeg", "gif", "bmp", "tiff"},
	"description": "Output format of the returned image. Default png",
	"default":     "png",
}

var colorProperty = map[string]interface{}{
	"type":        "string",
	"description": "Color as #RRGGBB or #RRGGBBAA",
}

// imageToolSchema builds the input schema of a tool taking one image plus
// extra properties. Every such tool also accepts an output format.
func imageToolSchema(extra map[string]interface{}, required ...string) map[string]interface{} {
	props := mergeProps(imageSourceProperties(), extra)
	props["format"] = formatProperty
	schema := map[string]interface{}{
		"type":       "object",
		"properties": props,
	}
	if len(required) > 0 {
		schema["required"] = required
	}
	return schema
}

// pairToolSchema builds the input schema of a tool compositing an overlay
// onto a base image.
func pairToolSchema(extra map[string]interface{}) map[string]interface{} {
	props := map[string]interface{}{
		"base":    imageSourceObject("Base image; sets the canvas together with the overlay"),
		"overlay": imageSourceObject("Image drawn over the base"),
		"offset_x": map[string]interface{}{
			"type":        "integer",
			"description": "Overlay X position on the canvas; may be negative. Default 0",
		},
		"offset_y": map[string]interface{}{
			"type":        "integer",
			"description": "Overlay Y position on the canvas; may be negative. Default 0",
		},
		"format": formatProperty,
	}
	mergeProps(props, extra)
	return map[string]interface{}{
		"type":       "object",
		"properties": props,
		"required":   []string{"base", "overlay"},
	}
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Image Information
		{
			Name:        "image_load",
			Description: "Load an image file and return its dimensions, format, whether it has transparency, and file size.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_sample_color",
			Description: "Get the exact color value at a specific pixel coordinate as hex, RGBA and HSL.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": mergeProps(imageSourceProperties(), map[string]interface{}{
					"x": map[string]interface{}{
						"type":        "integer",
						"description": "X coordinate (0-based, from left)",
					},
					"y": map[string]interface{}{
						"type":        "integer",
						"description": "Y coordinate (0-based, from top)",
					},
				}),
				"required": []string{"x", "y"},
			},
		},

		// Geometric Operations
		{
			Name:        "image_scale",
			Description: "Resize an image to a target width or height, keeping the aspect ratio. Give exactly one of width or height. Results above the server's pixel limit are rejected.",
			InputSchema: imageToolSchema(map[string]interface{}{
				"width": map[string]interface{}{
					"type":        "integer",
					"description": "Target width in pixels",
				},
				"height": map[string]interface{}{
					"type":        "integer",
					"description": "Target height in pixels",
				},
				"filter": map[string]interface{}{
					"type":        "string",
					"enum":        []string{"linear", "nearest", "catmullrom", "lanczos"},
					"description": "Resampling filter. Defaults to the server setting (linear)",
				},
			}),
		},
		{
			Name:        "image_crop",
			Description: "Extract an exact rectangular region. The region must lie inside the image.",
			InputSchema: imageToolSchema(map[string]interface{}{
				"x": map[string]interface{}{
					"type":        "integer",
					"description": "Left edge X coordinate (0-based)",
				},
				"y": map[string]interface{}{
					"type":        "integer",
					"description": "Top edge Y coordinate (0-based)",
				},
				"width": map[string]interface{}{
					"type":        "integer",
					"description": "Region width in pixels",
				},
				"height": map[string]interface{}{
					"type":        "integer",
					"description": "Region height in pixels",
				},
			}, "x", "y", "width", "height"),
		},
		{
			Name:        "image_trim",
			Description: "Crop away the transparent border. Pixels with alpha at or below max_alpha count as transparent. A fully transparent image yields an empty (0x0) result.",
			InputSchema: imageToolSchema(map[string]interface{}{
				"max_alpha": map[string]interface{}{
					"type":        "integer",
					"description": "Highest alpha treated as transparent (0-255). Default 0",
					"default":     0,
				},
			}),
		},
		{
			Name:        "image_superscript",
			Description: "Produce a half-width canvas with the image shrunk into its upper area, like a superscript glyph.",
			InputSchema: imageToolSchema(map[string]interface{}{
				"preserve_aspect": map[string]interface{}{
					"type":        "boolean",
					"description": "Use half the source height for the shrunk region instead of half the width. Defaults to the server setting",
				},
			}),
		},

		// Compositing Operations
		{
			Name:        "image_merge",
			Description: "Draw an overlay onto a base image at an offset with alpha-over compositing. The canvas is as large as the larger of the two images; the overlay is clipped.",
			InputSchema: pairToolSchema(nil),
		},
		{
			Name:        "image_blend",
			Description: "Like image_merge, but the overlay's edges fade out first. Feather sizes default to a tenth of the overlay's width and height.",
			InputSchema: pairToolSchema(map[string]interface{}{
				"feather_width": map[string]interface{}{
					"type":        "integer",
					"description": "Columns faded on the left and right edges",
				},
				"feather_height": map[string]interface{}{
					"type":        "integer",
					"description": "Rows faded on the top and bottom edges",
				},
			}),
		},
		{
			Name:        "image_compare",
			Description: "Compare two images pixel by pixel over their overlapping top-left area. Returns a similarity score from 0 to 1 and difference statistics.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"first":  imageSourceObject("First image"),
					"second": imageSourceObject("Second image"),
					"threshold": map[string]interface{}{
						"type":        "integer",
						"description": "Mean per-channel difference above which a pixel counts as different",
						"default":     imaging.DefaultCompareThreshold,
					},
				},
				"required": []string{"first", "second"},
			},
		},
		{
			Name:        "image_mask",
			Description: "Replace every pixel's color with a solid color, keeping the image's shape through its alpha.",
			InputSchema: imageToolSchema(map[string]interface{}{
				"color": colorProperty,
			}, "color"),
		},
		{
			Name:        "image_tint",
			Description: "Lay a translucent color over the visible pixels of an image. The color's alpha sets the tint strength.",
			InputSchema: imageToolSchema(map[string]interface{}{
				"color": colorProperty,
			}, "color"),
		},

		// Color Operations
		{
			Name:        "image_grayscale",
			Description: "Convert an image to grayscale using perceptual luma weights, keeping transparency.",
			InputSchema: imageToolSchema(nil),
		},
		{
			Name:        "image_brightness",
			Description: "Multiply the brightness of every pixel. Channels pushed past 255 spill into the other channels so highlights bleach towards white.",
			InputSchema: imageToolSchema(map[string]interface{}{
				"multiplier": map[string]interface{}{
					"type":        "number",
					"description": "Brightness factor, e.g. 1.2 to brighten or 0.8 to darken",
				},
			}, "multiplier"),
		},
		{
			Name:        "image_color",
			Description: "Recolor an image in shades of a target color. Pixels at the median brightness become the target color exactly; brighter pixels move towards white and darker ones towards black.",
			InputSchema: imageToolSchema(map[string]interface{}{
				"color": colorProperty,
				"median": map[string]interface{}{
					"type":        "integer",
					"description": "Brightness (0-255) that maps onto the target color. Default 127",
					"default":     127,
				},
			}, "color"),
		},
		{
			Name:        "image_states",
			Description: "Generate button state variants: normal, disabled (grayscale), hovered (brighter) and clicked (darker). A color for a state recolors that variant instead.",
			InputSchema: imageToolSchema(map[string]interface{}{
				"disabled_color": colorProperty,
				"hovered_color":  colorProperty,
				"clicked_color":  colorProperty,
				"hover_brightness": map[string]interface{}{
					"type":        "number",
					"description": "Brightness factor of the hovered variant. Default 1.2",
				},
				"click_brightness": map[string]interface{}{
					"type":        "number",
					"description": "Brightness factor of the clicked variant. Default 0.8",
				},
			}),
		},

		// Codec
		{
			Name:        "image_encode",
			Description: "Re-encode an image in another format and return it as base64.",
			InputSchema: imageToolSchema(nil, "format"),
		},
	}
}

func mergeProps(dst, src map[string]interface{}) map[string]interface{} {
	for k, v := range src {
		dst[k] = v
	}
	return dst
}

// handleToolsList returns the list of available tools
func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"tools": GetToolDefinitions(),
		},
	}
}
