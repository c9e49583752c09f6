package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"github.com/jaydendev/mdcard"
	"github.com/jaydendev/mdcard/internal/fileutil"
)

// Sentinel errors for file discovery.
var (
	ErrInvalidExtension   = errors.New("file must have .md or .markdown extension")
	ErrInvalidWorkerCount = errors.New("invalid worker count")
)

// FileToConvert represents a single file to process.
// OutputBase is the output path without extension; artifacts derive from it.
type FileToConvert struct {
	InputPath  string
	OutputBase string
}

// PNGPath returns "<base>@<ratio>x.png".
func (f FileToConvert) PNGPath(pixelRatio float64) string {
	return f.OutputBase + "@" + strconv.FormatFloat(pixelRatio, 'f', -1, 64) + "x.png"
}

// HTMLPath returns "<base>.html".
func (f FileToConvert) HTMLPath() string {
	return f.OutputBase + ".html"
}

// TextPath returns "<base>.txt".
func (f FileToConvert) TextPath() string {
	return f.OutputBase + ".txt"
}

// discoverFiles finds all markdown files to convert.
func discoverFiles(inputPath, outputDir string) ([]FileToConvert, error) {
	info, err := os.Stat(inputPath)
	if err != nil {
		return nil, err
	}

	if !info.IsDir() {
		if err := validateMarkdownExtension(inputPath); err != nil {
			return nil, err
		}
		return []FileToConvert{{InputPath: inputPath, OutputBase: resolveOutputBase(inputPath, outputDir, "")}}, nil
	}

	var files []FileToConvert
	err = filepath.WalkDir(inputPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("scanning %s: %w", path, err)
		}
		if d.IsDir() {
			return nil
		}
		if !fileutil.IsMarkdown(path) {
			return nil
		}
		files = append(files, FileToConvert{InputPath: path, OutputBase: resolveOutputBase(path, outputDir, inputPath)})
		return nil
	})

	return files, err
}

// resolveOutputBase determines the extension-less output path for a markdown file.
// Without an output directory, artifacts land next to the source. With one,
// the layout under baseInputDir is mirrored.
func resolveOutputBase(inputPath, outputDir, baseInputDir string) string {
	base := fileutil.BaseName(inputPath)

	if outputDir == "" {
		return filepath.Join(filepath.Dir(inputPath), base)
	}

	if baseInputDir != "" {
		relPath, err := filepath.Rel(baseInputDir, inputPath)
		if err == nil {
			return filepath.Join(outputDir, filepath.Dir(relPath), base)
		}
	}

	return filepath.Join(outputDir, base)
}

// validateMarkdownExtension checks that the file has a .md or .markdown extension.
func validateMarkdownExtension(path string) error {
	if !fileutil.IsMarkdown(path) {
		return fmt.Errorf("%w: got %q", ErrInvalidExtension, filepath.Ext(path))
	}
	return nil
}

// validateWorkers checks that the worker count is within valid bounds.
func validateWorkers(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: %d (must be >= 0, 0 means auto)", ErrInvalidWorkerCount, n)
	}
	if n > mdcard.MaxPoolSize {
		return fmt.Errorf("%w: %d (maximum is %d)", ErrInvalidWorkerCount, n, mdcard.MaxPoolSize)
	}
	return nil
}
