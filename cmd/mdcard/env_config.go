package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/jaydendev/mdcard/internal/config"
	"github.com/jaydendev/mdcard/internal/hints"
)

// ErrInvalidTimeout is returned for unparsable or out-of-range --timeout values.
var ErrInvalidTimeout = errors.New("invalid timeout")

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath    string        // MDCARD_CONFIG: config file name or path
	Theme         string        // MDCARD_THEME: card theme
	Timeout       time.Duration // MDCARD_TIMEOUT: PNG export timeout
	OutputDir     string        // MDCARD_OUTPUT_DIR: default output directory
	AssetPath     string        // MDCARD_ASSET_PATH: custom asset directory
	WatermarkText string        // MDCARD_WATERMARK_TEXT: watermark text
	Workers       int           // MDCARD_WORKERS: parallel workers
}

// knownEnvVars lists valid MDCARD_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"MDCARD_CONFIG":         true,
	"MDCARD_THEME":          true,
	"MDCARD_TIMEOUT":        true,
	"MDCARD_OUTPUT_DIR":     true,
	"MDCARD_ASSET_PATH":     true,
	"MDCARD_WATERMARK_TEXT": true,
	"MDCARD_WORKERS":        true,
	"MDCARD_CONTAINER":      true, // read by doctor
}

// loadEnvConfig reads configuration from environment variables.
// Malformed durations and worker counts are ignored.
func loadEnvConfig() *envConfig {
	cfg := &envConfig{
		ConfigPath:    os.Getenv("MDCARD_CONFIG"),
		Theme:         os.Getenv("MDCARD_THEME"),
		OutputDir:     os.Getenv("MDCARD_OUTPUT_DIR"),
		AssetPath:     os.Getenv("MDCARD_ASSET_PATH"),
		WatermarkText: os.Getenv("MDCARD_WATERMARK_TEXT"),
	}

	// Parse duration for timeout
	if timeout := os.Getenv("MDCARD_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil && d > 0 {
			cfg.Timeout = d
		}
	}

	// Parse int for workers
	if workers := os.Getenv("MDCARD_WORKERS"); workers != "" {
		if w, err := strconv.Atoi(workers); err == nil && w > 0 {
			cfg.Workers = w
		}
	}

	return cfg
}

// warnUnknownEnvVars logs warnings for unrecognized MDCARD_* variables.
// Helps catch typos like MDCARD_THEMES instead of MDCARD_THEME.
func warnUnknownEnvVars(w io.Writer) {
	var unknown []string
	for _, env := range os.Environ() {
		if strings.HasPrefix(env, "MDCARD_") {
			name := strings.SplitN(env, "=", 2)[0]
			if !knownEnvVars[name] {
				unknown = append(unknown, name)
			}
		}
	}
	sort.Strings(unknown)
	for _, name := range unknown {
		fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
	}
}

// applyEnvConfig applies environment variable values to config.
// Set variables override the config file: CLI flags > env vars > config file > defaults
// (CLI flags are applied later via the merge functions)
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.Theme != "" {
		cfg.Theme = env.Theme
	}
	if env.OutputDir != "" {
		cfg.Output.DefaultDir = env.OutputDir
	}
	if env.AssetPath != "" {
		cfg.Assets.BasePath = env.AssetPath
	}

	// Watermark text (auto-enable)
	if env.WatermarkText != "" {
		cfg.Watermark.Text = env.WatermarkText
		cfg.Watermark.Enabled = true
	}
}

// loadSettings resolves the effective config: file (flag name, else
// MDCARD_CONFIG), then environment overrides. Flags are merged by callers.
func loadSettings(configFlag string, env *Environment) (*config.Config, *envConfig, error) {
	envCfg := loadEnvConfig()
	warnUnknownEnvVars(env.Stderr)

	name := configFlag
	if name == "" {
		name = envCfg.ConfigPath
	}

	cfg := config.DefaultConfig()
	if name != "" {
		var err error
		cfg, err = config.LoadConfig(name)
		if err != nil {
			if errors.Is(err, config.ErrConfigNotFound) {
				return nil, nil, fmt.Errorf("loading config: %w%s", err, hints.ForConfigNotFound(config.SearchPaths(name)))
			}
			return nil, nil, fmt.Errorf("loading config: %w", err)
		}
	}

	applyEnvConfig(envCfg, cfg)
	return cfg, envCfg, nil
}

// resolveTimeout picks the export timeout.
// Priority: flag > MDCARD_TIMEOUT > config export.timeout. Zero means library default.
func resolveTimeout(flagValue string, envCfg *envConfig, cfg *config.Config) (time.Duration, error) {
	if flagValue != "" {
		d, err := time.ParseDuration(flagValue)
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrInvalidTimeout, flagValue)
		}
		if d <= 0 || d > config.MaxTimeout {
			return 0, fmt.Errorf("%w: %s (must be positive and at most %s)", ErrInvalidTimeout, d, config.MaxTimeout)
		}
		return d, nil
	}
	if envCfg != nil && envCfg.Timeout > 0 {
		return envCfg.Timeout, nil
	}
	return cfg.Export.TimeoutDuration()
}
