package main

import (
	"errors"
	"os"

	"github.com/jaydendev/mdcard"
	"github.com/jaydendev/mdcard/internal/config"
)

// Exit codes for the mdcard CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Successful run
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, or validation
	ExitIO      = 3 // File not found, permission denied, clipboard
	ExitBrowser = 4 // Browser/Chrome errors
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Browser errors (exit 4)
	if errors.Is(err, mdcard.ErrBrowserConnect) ||
		errors.Is(err, mdcard.ErrPageCreate) ||
		errors.Is(err, mdcard.ErrPageLoad) ||
		errors.Is(err, mdcard.ErrImageCapture) {
		return ExitBrowser
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrReadMarkdown) ||
		errors.Is(err, ErrWriteImage) ||
		errors.Is(err, ErrWriteOutput) ||
		errors.Is(err, ErrOutputDirCreate) ||
		errors.Is(err, ErrNoInput) ||
		errors.Is(err, ErrTerminalInput) ||
		errors.Is(err, ErrClipboard) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, ErrUsage) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrFieldOutOfRange) ||
		errors.Is(err, config.ErrInvalidField) ||
		errors.Is(err, mdcard.ErrEmptyMarkdown) ||
		errors.Is(err, mdcard.ErrInvalidWatermark) ||
		errors.Is(err, mdcard.ErrInvalidPixelRatio) ||
		errors.Is(err, mdcard.ErrInvalidCardWidth) ||
		errors.Is(err, mdcard.ErrThemeNotFound) ||
		errors.Is(err, mdcard.ErrInvalidTheme) ||
		errors.Is(err, mdcard.ErrStyleNotFound) ||
		errors.Is(err, mdcard.ErrTemplateNotFound) ||
		errors.Is(err, mdcard.ErrInvalidAssetPath) ||
		errors.Is(err, ErrInvalidExtension) ||
		errors.Is(err, ErrInvalidWorkerCount) ||
		errors.Is(err, ErrInvalidTimeout) ||
		errors.Is(err, ErrHTMLOnlyWithImageFlags) ||
		errors.Is(err, ErrUnsupportedShell) {
		return ExitUsage
	}

	return ExitGeneral
}
