// Package config reads the server's settings from environment variables.
//
// All variables are optional:
//
//	PIXEL_MCP_LOG_LEVEL                    debug, info, warn or error (default info)
//	PIXEL_MCP_FILTER                       linear, nearest, catmullrom or lanczos (default linear)
//	PIXEL_MCP_SUPERSCRIPT_PRESERVE_ASPECT  boolean (default false)
//	PIXEL_MCP_CACHE_SIZE                   max cached images, 0 for no limit (default 64)
//	PIXEL_MCP_MAX_PIXELS                   max pixels of a scaled image, 0 for no limit (default 67108864)
package config

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/ironsheep/pixel-tools-mcp/internal/imaging"
)

// Environment variable names.
const (
	EnvLogLevel       = "PIXEL_MCP_LOG_LEVEL"
	EnvFilter         = "PIXEL_MCP_FILTER"
	EnvPreserveAspect = "PIXEL_MCP_SUPERSCRIPT_PRESERVE_ASPECT"
	EnvCacheSize      = "PIXEL_MCP_CACHE_SIZE"
	EnvMaxPixels      = "PIXEL_MCP_MAX_PIXELS"
)

// DefaultCacheSize is the number of decoded images kept when
// PIXEL_MCP_CACHE_SIZE is unset.
const DefaultCacheSize = 64

// Config holds the resolved settings.
type Config struct {
	LogLevel    slog.Level
	Filter      imaging.Filter
	Superscript imaging.SuperscriptOptions
	CacheSize   int
	MaxPixels   int
}

// Default returns the settings used when no variable is set.
func Default() Config {
	return Config{
		LogLevel:  slog.LevelInfo,
		Filter:    imaging.FilterLinear,
		CacheSize: DefaultCacheSize,
		MaxPixels: imaging.DefaultMaxPixels,
	}
}

// FromEnv builds a Config from getenv, usually os.Getenv. Unset or empty
// variables keep their defaults. An invalid value returns an error naming
// the variable.
func FromEnv(getenv func(string) string) (Config, error) {
	cfg := Default()

	if v := strings.TrimSpace(getenv(EnvLogLevel)); v != "" {
		level, err := parseLevel(v)
		if err != nil {
			return Config{}, fmt.Errorf("%s: %w", EnvLogLevel, err)
		}
		cfg.LogLevel = level
	}

	if v := getenv(EnvFilter); v != "" {
		f, err := imaging.ParseFilter(v)
		if err != nil {
			return Config{}, fmt.Errorf("%s: %w", EnvFilter, err)
		}
		cfg.Filter = f
	}

	if v := strings.TrimSpace(getenv(EnvPreserveAspect)); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return Config{}, fmt.Errorf("%s: invalid boolean %q", EnvPreserveAspect, v)
		}
		cfg.Superscript.PreserveAspect = b
	}

	var err error
	if cfg.CacheSize, err = nonNegativeInt(getenv, EnvCacheSize, cfg.CacheSize); err != nil {
		return Config{}, err
	}
	if cfg.MaxPixels, err = nonNegativeInt(getenv, EnvMaxPixels, cfg.MaxPixels); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func nonNegativeInt(getenv func(string) string, key string, def int) (int, error) {
	v := strings.TrimSpace(getenv(key))
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%s: want a non-negative integer, got %q", key, v)
	}
	return n, nil
}

// parseLevel accepts slog's level names, with optional offsets such as
// "info+2", and "warning" as an alias of "warn".
func parseLevel(s string) (slog.Level, error) {
	if strings.EqualFold(s, "warning") {
		return slog.LevelWarn, nil
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return 0, err
	}
	return level, nil
}
