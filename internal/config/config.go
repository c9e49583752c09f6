package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/jaydendev/mdcard/internal/fileutil"
	"github.com/jaydendev/mdcard/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrFieldOutOfRange = errors.New("field out of range")
	ErrInvalidField    = errors.New("invalid field value")
)

// Field limits.
const (
	MaxThemeLength         = 64   // Theme file base name
	MaxWatermarkTextLength = 50   // Footer line on the card
	MaxPathLength          = 4096 // PATH_MAX on Linux
	MinPixelRatio          = 1.0
	MaxPixelRatio          = 4.0
	MinCardWidth           = 320
	MaxCardWidth           = 1600
	MaxTimeout             = 10 * time.Minute
)

// AppDirName is the directory under the user config dir searched for configs.
const AppDirName = "mdcard"

// Config holds all settings for text conversion and card export.
type Config struct {
	Theme     string          `yaml:"theme"`
	Watermark WatermarkConfig `yaml:"watermark"`
	Output    OutputConfig    `yaml:"output"`
	Assets    AssetsConfig    `yaml:"assets"`
	Export    ExportConfig    `yaml:"export"`
	Text      TextConfig      `yaml:"text"`
}

// WatermarkConfig defines the footer line printed on cards.
type WatermarkConfig struct {
	Enabled bool   `yaml:"enabled"`
	Text    string `yaml:"text"` // Blank = built-in text
}

// OutputConfig defines output destination options.
type OutputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // Empty = same as source
}

// AssetsConfig defines asset loading options.
type AssetsConfig struct {
	BasePath string `yaml:"basePath"` // Empty = use embedded assets
}

// ExportConfig defines PNG export settings. Zero values mean built-in defaults.
type ExportConfig struct {
	PixelRatio float64 `yaml:"pixelRatio"`
	Width      int     `yaml:"width"`   // CSS pixels
	Timeout    string  `yaml:"timeout"` // Go duration, e.g. "45s"
}

// TextConfig defines platform-text command defaults.
type TextConfig struct {
	Copy bool `yaml:"copy"` // Also copy the result to the clipboard
}

// Validate checks field lengths and numeric ranges.
// Called automatically by LoadConfig, but available for consumers
// who construct Config manually.
func (c *Config) Validate() error {
	if err := validateFieldLength("theme", c.Theme, MaxThemeLength); err != nil {
		return err
	}
	if strings.ContainsAny(c.Theme, "/\\.") {
		return fmt.Errorf("%w: theme name %q (use assets.basePath for custom themes)", ErrInvalidField, c.Theme)
	}
	if err := validateFieldLength("watermark.text", c.Watermark.Text, MaxWatermarkTextLength); err != nil {
		return err
	}
	if err := validateFieldLength("output.defaultDir", c.Output.DefaultDir, MaxPathLength); err != nil {
		return err
	}
	if err := validateFieldLength("assets.basePath", c.Assets.BasePath, MaxPathLength); err != nil {
		return err
	}

	if c.Export.PixelRatio != 0 && (c.Export.PixelRatio < MinPixelRatio || c.Export.PixelRatio > MaxPixelRatio) {
		return fmt.Errorf("%w: export.pixelRatio must be between %g and %g, got %g",
			ErrFieldOutOfRange, MinPixelRatio, MaxPixelRatio, c.Export.PixelRatio)
	}
	if c.Export.Width != 0 && (c.Export.Width < MinCardWidth || c.Export.Width > MaxCardWidth) {
		return fmt.Errorf("%w: export.width must be between %d and %d, got %d",
			ErrFieldOutOfRange, MinCardWidth, MaxCardWidth, c.Export.Width)
	}
	if _, err := c.Export.TimeoutDuration(); err != nil {
		return err
	}

	return nil
}

// TimeoutDuration parses Export.Timeout. An empty value returns 0.
func (e ExportConfig) TimeoutDuration() (time.Duration, error) {
	if e.Timeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(e.Timeout)
	if err != nil {
		return 0, fmt.Errorf("%w: export.timeout duration %q", ErrInvalidField, e.Timeout)
	}
	if d <= 0 || d > MaxTimeout {
		return 0, fmt.Errorf("%w: export.timeout must be positive and at most %s, got %s",
			ErrFieldOutOfRange, MaxTimeout, d)
	}
	return d, nil
}

// validateFieldLength checks if a field exceeds its maximum length in characters.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if n := utf8.RuneCountInString(value); n > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, n, maxLength)
	}
	return nil
}

// DefaultConfig returns the built-in configuration: default theme, watermark
// on with the built-in text, embedded assets.
func DefaultConfig() *Config {
	return &Config{
		Theme:     "",
		Watermark: WatermarkConfig{Enabled: true},
		Output:    OutputConfig{DefaultDir: ""},
		Assets:    AssetsConfig{BasePath: ""},
	}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Keys absent from the file keep their DefaultConfig values.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if fileutil.IsFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yamlutil.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// SearchPaths lists the locations resolveConfigPath tries for a config name.
// Order: current directory, then the user config dir
// ($XDG_CONFIG_HOME/mdcard on Linux). Extensions: .yaml, .yml.
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(extensions)*2) // 2 locations

	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}

	if userConfigDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(userConfigDir, AppDirName, name+ext))
		}
	}

	return paths
}

// resolveConfigPath returns the first existing file among SearchPaths.
func resolveConfigPath(name string) (string, error) {
	paths := SearchPaths(name)
	for _, p := range paths {
		if fileutil.FileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(paths, ", "))
}
