// Package config loads server configuration from YAML and the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/ironsheep/image-canvas-mcp/internal/canvas"
	"github.com/ironsheep/image-canvas-mcp/internal/logger"
)

// Environment variables consulted by ApplyEnv.
const (
	EnvLogLevel       = "IMAGE_CANVAS_LOG_LEVEL"
	EnvDefaultFormat  = "IMAGE_CANVAS_DEFAULT_FORMAT"
	EnvFetchTimeout   = "IMAGE_CANVAS_FETCH_TIMEOUT"
	EnvAllowOverwrite = "IMAGE_CANVAS_ALLOW_OVERWRITE"
)

// Config holds the settings of an image-canvas server.
type Config struct {
	// LogLevel is one of debug, info, warn, error or quiet.
	LogLevel string `yaml:"log_level"`

	// DefaultFormat is the encoding used for images without a source
	// descriptor when the caller names no format.
	DefaultFormat string `yaml:"default_format"`

	// JPEGQuality is the default JPEG quality, 1-100.
	JPEGQuality int `yaml:"jpeg_quality"`

	// FetchTimeout bounds URL loads. Zero means no client-side limit.
	FetchTimeout time.Duration `yaml:"fetch_timeout"`

	// MaxDimension caps the width and height of created and resized images.
	// Zero disables the cap.
	MaxDimension int `yaml:"max_dimension"`

	// AllowOverwrite is the default of image_write's overwrite argument.
	AllowOverwrite bool `yaml:"allow_overwrite"`
}

// Defaults returns a Config with default values.
func Defaults() Config {
	return Config{
		LogLevel:       "info",
		DefaultFormat:  string(canvas.FormatPNG),
		JPEGQuality:    canvas.DefaultJPEGQuality,
		FetchTimeout:   30 * time.Second,
		MaxDimension:   16384,
		AllowOverwrite: true,
	}
}

// LoadFromFile loads configuration from a YAML file over Defaults.
// Durations use Go syntax, for example "45s".
func LoadFromFile(path string) (Config, error) {
	cfg := Defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, cfg.Validate()
}

// Load reads path when it is not empty, then applies environment overrides.
func Load(path string) (Config, error) {
	cfg := Defaults()
	if path != "" {
		var err error
		if cfg, err = LoadFromFile(path); err != nil {
			return cfg, err
		}
	}
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

// ApplyEnv overrides fields from environment variables found by lookup.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvLogLevel); ok && v != "" {
		c.LogLevel = v
	}
	if v, ok := lookup(EnvDefaultFormat); ok && v != "" {
		c.DefaultFormat = v
	}
	if v, ok := lookup(EnvFetchTimeout); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvFetchTimeout, err)
		}
		c.FetchTimeout = d
	}
	if v, ok := lookup(EnvAllowOverwrite); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvAllowOverwrite, err)
		}
		c.AllowOverwrite = b
	}
	return nil
}

// Validate checks field ranges.
func (c Config) Validate() error {
	if _, err := logger.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	if c.DefaultFormat != "" {
		if _, err := canvas.ParseFormat(c.DefaultFormat); err != nil {
			return fmt.Errorf("default_format: %w", err)
		}
	}
	if c.JPEGQuality < 1 || c.JPEGQuality > 100 {
		return fmt.Errorf("jpeg_quality must be within 1-100, got %d", c.JPEGQuality)
	}
	if c.FetchTimeout < 0 {
		return fmt.Errorf("fetch_timeout must not be negative, got %s", c.FetchTimeout)
	}
	if c.MaxDimension < 0 {
		return fmt.Errorf("max_dimension must not be negative, got %d", c.MaxDimension)
	}
	return nil
}

// Level returns the parsed log level, falling back to info.
func (c Config) Level() logger.Level {
	l, _ := logger.ParseLevel(c.LogLevel)
	return l
}
