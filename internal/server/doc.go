// Package server implements the MCP (Model Context Protocol) server for the
// pixel manipulation tools.
//
// This package provides a JSON-RPC 2.0 server that exposes the operations of
// the imaging package as MCP tools, so an assistant can resize, composite and
// recolor images without leaving the conversation.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
// Image Information:
//   - image_load: Load an image file and get metadata
//   - image_sample_color: Get color at pixel
//
// Geometric Operations:
//   - image_scale: Resize to a width or height, keeping the aspect ratio
//   - image_crop: Extract an exact rectangle
//   - image_trim: Crop away the transparent border
//   - image_superscript: Shrink into the top of a half-width canvas
//
// Compositing Operations:
//   - image_merge: Draw an overlay onto a base image
//   - image_blend: Merge with feathered overlay edges
//   - image_mask: Fill the image's shape with a solid color
//   - image_tint: Lay a translucent color over the image
//   - image_compare: Pixel similarity of two images
//
// Color Operations:
//   - image_grayscale: Perceptual grayscale
//   - image_brightness: Brightness multiplier with overflow spill
//   - image_color: Recolor in shades of a target color
//   - image_states: Normal, disabled, hovered and clicked variants
//
// Codec:
//   - image_encode: Re-encode in another format
//
// # Image Inputs and Outputs
//
// Every image argument is either a "path" to a file or "image_base64"
// content. Files are decoded once and cached by path; the cache size is set
// through Options.CacheSize. Tools that produce an image return its width,
// height, MIME type and base64 content, PNG unless "format" says otherwise.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: Additional error details (typically the Go error string)
//
// # Usage
//
// The server is typically started by an MCP client:
//
//	srv := server.New(server.Options{CacheSize: 64})
//	if err := srv.Run(); err != nil {
//	    log.Fatal(err)
//	}
package server
