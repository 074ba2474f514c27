package main

import (
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/ironsheep/pixel-tools-mcp/internal/config"
	"github.com/ironsheep/pixel-tools-mcp/internal/imaging"
	"github.com/ironsheep/pixel-tools-mcp/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Handle --version and -v flags
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("pixel-tools-mcp %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			fmt.Println("pixel-tools-mcp - MCP server for pixel-level image manipulation")
			fmt.Println()
			fmt.Println("Usage: pixel-tools-mcp [options]")
			fmt.Println()
			fmt.Println("Options:")
			fmt.Println("  --version, -v    Print version information")
			fmt.Println("  --help, -h       Print this help message")
			fmt.Println()
			fmt.Println("Environment variables:")
			fmt.Println("  PIXEL_MCP_LOG_LEVEL=debug|info|warn|error           Log verbosity (default info)")
			fmt.Println("  PIXEL_MCP_FILTER=linear|nearest|catmullrom|lanczos   Default resampling filter")
			fmt.Println("  PIXEL_MCP_SUPERSCRIPT_PRESERVE_ASPECT=true           Keep aspect ratio in image_superscript")
			fmt.Println("  PIXEL_MCP_CACHE_SIZE=64                              Max cached images, 0 for no limit")
			fmt.Println()
			fmt.Println("This server communicates via MCP protocol over stdin/stdout.")
			fmt.Println("Configure it in your MCP client (e.g., Claude Desktop).")
			return
		}
	}

	// Configure logging to stderr (stdout is for MCP protocol)
	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	cfg, err := config.FromEnv(os.Getenv)
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel}))
	imaging.SetLogger(logger)
	logger.Debug("starting pixel MCP server",
		"version", Version, "built", BuildTime, "commit", GitCommit,
		"filter", cfg.Filter.String(), "cache_size", cfg.CacheSize)

	maxPixels := cfg.MaxPixels
	if maxPixels == 0 {
		maxPixels = -1
	}

	srv := server.New(server.Options{
		CacheSize:   cfg.CacheSize,
		Filter:      cfg.Filter,
		Superscript: cfg.Superscript,
		MaxPixels:   maxPixels,
		Logger:      logger,
		Version:     Version,
	})
	if err := srv.Run(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
