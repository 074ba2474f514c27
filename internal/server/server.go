package server

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/ironsheep/pixel-tools-mcp/internal/imaging"
)

// maxRequestSize bounds a single JSON-RPC line. Requests carry base64
// images, so this is much larger than a typical protocol message.
const maxRequestSize = 64 * 1024 * 1024

// Options configures a Server. The zero value is usable.
type Options struct {
	// CacheSize is the maximum number of decoded images kept by path;
	// 0 means no limit.
	CacheSize int

	// Filter is the resampling filter used by image_scale when the call
	// does not name one.
	Filter imaging.Filter

	// Superscript holds the default superscript behavior.
	Superscript imaging.SuperscriptOptions

	// MaxPixels limits the pixel count of an image_scale result. 0 selects
	// imaging.DefaultMaxPixels; a negative value removes the limit.
	MaxPixels int

	// Logger receives request and tool diagnostics. Nil uses the imaging
	// package logger.
	Logger *slog.Logger

	// Version is reported in the initialize response.
	Version string
}

// Server handles MCP protocol communication
type Server struct {
	cache       *imaging.ImageCache
	filter      imaging.Filter
	superscript imaging.SuperscriptOptions
	maxPixels   int
	logger      *slog.Logger
	version     string
}

// MCPRequest represents an incoming JSON-RPC request
type MCPRequest struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      interface{}     `json:"id"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

// MCPResponse represents an outgoing JSON-RPC response
type MCPResponse struct {
	JSONRPC string      `json:"jsonrpc"`
	ID      interface{} `json:"id"`
	Result  interface{} `json:"result,omitempty"`
	Error   *MCPError   `json:"error,omitempty"`
}

// MCPError represents a JSON-RPC error
type MCPError struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// New creates a new MCP server instance
func New(opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = imaging.Logger()
	}
	version := opts.Version
	if version == "" {
		version = "dev"
	}
	maxPixels := opts.MaxPixels
	if maxPixels == 0 {
		maxPixels = imaging.DefaultMaxPixels
	}
	return &Server{
		cache:       imaging.NewImageCache(opts.CacheSize),
		filter:      opts.Filter,
		superscript: opts.Superscript,
		maxPixels:   maxPixels,
		logger:      logger,
		version:     version,
	}
}

// Run starts the MCP server, reading from stdin and writing to stdout
func (s *Server) Run() error {
	return s.Serve(os.Stdin, os.Stdout)
}

// Serve reads newline-delimited JSON-RPC requests from r and writes one
// response line per request to w until r is exhausted.
func (s *Server) Serve(r io.Reader, w io.Writer) error {
	scanner := bufio.NewScanner(r)
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, maxRequestSize)

	encoder := json.NewEncoder(w)

	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var req MCPRequest
		if err := json.Unmarshal(line, &req); err != nil {
			s.logger.Warn("failed to parse request", "error", err)
			if err := encoder.Encode(s.errorResponse(nil, -32700, "Parse error", err.Error())); err != nil {
				s.logger.Error("failed to encode response", "error", err)
			}
			continue
		}

		resp := s.handleRequest(&req)
		if resp != nil {
			if err := encoder.Encode(resp); err != nil {
				s.logger.Error("failed to encode response", "method", req.Method, "error", err)
			}
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("scanner error: %w", err)
	}

	return nil
}

// handleRequest routes requests to appropriate handlers
func (s *Server) handleRequest(req *MCPRequest) *MCPResponse {
	switch req.Method {
	case "initialize":
		return s.handleInitialize(req)
	case "notifications/initialized":
		// Client acknowledgment, no response needed
		return nil
	case "tools/list":
		return s.handleToolsList(req)
	case "tools/call":
		return s.handleToolsCall(req)
	case "ping":
		return &MCPResponse{
			JSONRPC: "2.0",
			ID:      req.ID,
			Result:  map[string]interface{}{},
		}
	default:
		return &MCPResponse{
			JSONRPC: "2.0",
			ID:      req.ID,
			Error: &MCPError{
				Code:    -32601,
				Message: fmt.Sprintf("Method not found: %s", req.Method),
			},
		}
	}
}

// handleInitialize responds to the initialize request
func (s *Server) handleInitialize(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"protocolVersion": "2024-11-05",
			"capabilities": map[string]interface{}{
				"tools": map[string]interface{}{},
			},
			"serverInfo": map[string]interface{}{
				"name":    "pixel-tools-mcp",
				"version": s.version,
			},
		},
	}
}
