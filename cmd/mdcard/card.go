package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	flag "github.com/spf13/pflag"

	"github.com/jaydendev/mdcard"
	"github.com/jaydendev/mdcard/internal/config"
	"github.com/jaydendev/mdcard/internal/hints"
)

// ErrHTMLOnlyWithImageFlags rejects --html-only combined with PNG settings.
var ErrHTMLOnlyWithImageFlags = errors.New("--html-only cannot be combined with --pixel-ratio")

// runCard orchestrates batch card export.
func runCard(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseCardFlags(args)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	// Validate worker count early
	if err := validateWorkers(flags.workers); err != nil {
		return err
	}
	if flags.outputMode.htmlOnly && flags.export.pixelRatio != 0 {
		return ErrHTMLOnlyWithImageFlags
	}

	cfg, envCfg, err := loadSettings(flags.common.config, env)
	if err != nil {
		return err
	}

	// Merge CLI flags into config (CLI wins)
	mergeCardFlags(flags, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	timeout, err := resolveTimeout(flags.export.timeout, envCfg, cfg)
	if err != nil {
		return err
	}

	if err := checkTheme(cfg); err != nil {
		return err
	}

	inputPath, err := resolveInputPath(positional)
	if err != nil {
		return err
	}

	files, err := discoverFiles(inputPath, resolveOutputDir(flags.output, cfg))
	if err != nil {
		return fmt.Errorf("discovering files: %w", err)
	}
	if len(files) == 0 {
		return fmt.Errorf("no markdown files found in %s", inputPath)
	}

	watermark, err := buildWatermark(flags, cfg)
	if err != nil {
		return err
	}

	params := &cardParams{
		watermark:  watermark,
		pixelRatio: resolvePixelRatio(cfg),
		htmlOnly:   flags.outputMode.htmlOnly,
		htmlOutput: flags.outputMode.html,
		textOutput: flags.outputMode.text,
	}

	poolSize := mdcard.ResolvePoolSize(resolveWorkers(flags.workers, envCfg))
	if poolSize > len(files) {
		poolSize = len(files)
	}
	if flags.common.verbose {
		fmt.Fprintf(env.Stderr, "Pool size: %d\n", poolSize)
	}

	pool := env.NewPool(poolSize, converterOptions(cfg, timeout)...)
	defer pool.Close()

	results := convertBatch(ctx, pool, files, params)

	failedCount := printResultsWithWriter(results, flags.common.quiet, flags.common.verbose, env)
	if failedCount > 0 {
		// Surface the first error so the exit code reflects its category
		for _, r := range results {
			if r.Err != nil {
				return fmt.Errorf("%d conversion(s) failed: %w", failedCount, r.Err)
			}
		}
	}

	return nil
}

// mergeCardFlags merges CLI flags into config. CLI values override config values.
func mergeCardFlags(flags *cardFlags, cfg *config.Config) {
	if flags.assets.theme != "" {
		cfg.Theme = flags.assets.theme
	}
	if flags.assets.assetPath != "" {
		cfg.Assets.BasePath = flags.assets.assetPath
	}
	if flags.export.pixelRatio != 0 {
		cfg.Export.PixelRatio = flags.export.pixelRatio
	}
	if flags.export.width != 0 {
		cfg.Export.Width = flags.export.width
	}

	// Watermark text auto-enables
	if flags.watermark.text != "" {
		cfg.Watermark.Text = flags.watermark.text
		cfg.Watermark.Enabled = true
	}
	if flags.watermark.disabled {
		cfg.Watermark.Enabled = false
	}
}

// buildWatermark creates mdcard.Watermark from config.
// Returns nil when the watermark is disabled.
func buildWatermark(flags *cardFlags, cfg *config.Config) (*mdcard.Watermark, error) {
	if flags.watermark.disabled || !cfg.Watermark.Enabled {
		return nil, nil
	}

	w := &mdcard.Watermark{Text: cfg.Watermark.Text}
	if err := w.Validate(); err != nil {
		return nil, err
	}
	return w, nil
}

// checkTheme fails fast on an unknown theme, listing the available ones.
func checkTheme(cfg *config.Config) error {
	loader, err := mdcard.NewAssetLoader(cfg.Assets.BasePath)
	if err != nil {
		return err
	}

	name := cfg.Theme
	if name == "" {
		name = mdcard.DefaultTheme
	}

	theme, err := loader.LoadTheme(name)
	if err != nil {
		if errors.Is(err, mdcard.ErrThemeNotFound) {
			available, _ := loader.ListThemes()
			return fmt.Errorf("%w%s", err, hints.ForThemeNotFound(available))
		}
		return err
	}
	return theme.Validate()
}

// converterOptions maps the effective config onto library options.
func converterOptions(cfg *config.Config, timeout time.Duration) []mdcard.Option {
	opts := []mdcard.Option{
		mdcard.WithTheme(cfg.Theme),
		mdcard.WithPixelRatio(resolvePixelRatio(cfg)),
		mdcard.WithCardWidth(resolveCardWidth(cfg)),
	}
	if cfg.Assets.BasePath != "" {
		opts = append(opts, mdcard.WithAssetPath(cfg.Assets.BasePath))
	}
	if timeout > 0 {
		opts = append(opts, mdcard.WithTimeout(timeout))
	}
	return opts
}

// resolvePixelRatio returns the configured pixel ratio or the library default.
func resolvePixelRatio(cfg *config.Config) float64 {
	if cfg.Export.PixelRatio > 0 {
		return cfg.Export.PixelRatio
	}
	return mdcard.DefaultPixelRatio
}

// resolveCardWidth returns the configured card width or the library default.
func resolveCardWidth(cfg *config.Config) int {
	if cfg.Export.Width > 0 {
		return cfg.Export.Width
	}
	return mdcard.DefaultCardWidth
}

// resolveWorkers picks the worker count. Priority: flag > MDCARD_WORKERS > auto (0).
func resolveWorkers(flagWorkers int, envCfg *envConfig) int {
	if flagWorkers > 0 {
		return flagWorkers
	}
	if envCfg != nil && envCfg.Workers > 0 {
		return min(envCfg.Workers, mdcard.MaxPoolSize)
	}
	return 0
}

// resolveInputPath returns the single positional input.
func resolveInputPath(args []string) (string, error) {
	switch len(args) {
	case 0:
		return "", ErrNoInput
	case 1:
		return args[0], nil
	default:
		return "", fmt.Errorf("%w: card takes one file or directory, got %d", ErrUsage, len(args))
	}
}

// resolveOutputDir determines the output directory from flag or config.
func resolveOutputDir(flagOutput string, cfg *config.Config) string {
	if flagOutput != "" {
		return flagOutput
	}
	return cfg.Output.DefaultDir
}
