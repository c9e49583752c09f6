package mdcard

import (
	"errors"

	"github.com/jaydendev/mdcard/internal/assets"
	"github.com/jaydendev/mdcard/internal/pipeline"
)

// Sentinel errors for library operations.
var (
	ErrEmptyMarkdown  = errors.New("markdown content cannot be empty")
	ErrBrowserConnect = errors.New("failed to connect to browser")
	ErrPageCreate     = errors.New("failed to create browser page")
	ErrPageLoad       = errors.New("failed to load page")
	ErrImageCapture   = errors.New("failed to capture card image")
	ErrPoolClosed     = errors.New("converter pool is closed")

	// Shared with the pipeline so errors.Is works across packages.
	ErrHTMLConversion = pipeline.ErrHTMLConversion
	ErrCardRender     = pipeline.ErrCardRender

	// Option and input validation errors.
	ErrInvalidWatermark  = errors.New("invalid watermark")
	ErrInvalidPixelRatio = errors.New("invalid pixel ratio")
	ErrInvalidCardWidth  = errors.New("invalid card width")

	// Asset loading errors.
	ErrThemeNotFound    = assets.ErrThemeNotFound
	ErrInvalidTheme     = assets.ErrInvalidTheme
	ErrStyleNotFound    = assets.ErrStyleNotFound
	ErrTemplateNotFound = assets.ErrTemplateNotFound
	ErrInvalidAssetPath = errors.New("invalid asset path")
)
