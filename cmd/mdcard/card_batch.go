package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/jaydendev/mdcard"
	"github.com/jaydendev/mdcard/internal/fileutil"
	"github.com/jaydendev/mdcard/internal/hints"
)

// File permission constants.
const (
	dirPermissions  = 0o750 // rwxr-x---: owner full, group read+execute
	filePermissions = 0o644 // rw-r--r--: owner read+write, others read
)

// Sentinel errors for batch operations.
var (
	ErrNoInput         = errors.New("no input specified")
	ErrReadMarkdown    = errors.New("failed to read markdown file")
	ErrWriteImage      = errors.New("failed to write PNG file")
	ErrConverterInit   = errors.New("failed to initialize converter")
	ErrOutputDirCreate = errors.New("failed to create output directory")
)

// CLIConverter is the interface for the conversion service.
type CLIConverter interface {
	Convert(ctx context.Context, input mdcard.Input) (*mdcard.ConvertResult, error)
}

// Compile-time interface implementation check.
var _ CLIConverter = (*mdcard.Converter)(nil)

// Pool abstracts converter pool operations for testability.
type Pool interface {
	Acquire(ctx context.Context) (CLIConverter, error)
	Release(CLIConverter)
	Size() int
	Close() error
}

// cardParams groups parameters shared across batch/file conversion.
type cardParams struct {
	watermark  *mdcard.Watermark
	pixelRatio float64
	htmlOnly   bool
	htmlOutput bool
	textOutput bool
}

// ConversionResult holds the outcome of a single conversion.
type ConversionResult struct {
	InputPath string
	Outputs   []string // Written artifacts, PNG first when present
	Bytes     int64    // Total bytes written
	Err       error
	Duration  time.Duration
}

// convertBatch processes files concurrently using the converter pool.
func convertBatch(ctx context.Context, pool Pool, files []FileToConvert, params *cardParams) []ConversionResult {
	if len(files) == 0 {
		return nil
	}

	concurrency := pool.Size()
	if concurrency > len(files) {
		concurrency = len(files)
	}

	results := make([]ConversionResult, len(files))
	var wg sync.WaitGroup
	jobs := make(chan int, len(files))

	for w := 0; w < concurrency; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			conv, err := pool.Acquire(ctx)
			if err != nil {
				// Converter creation failed, mark remaining jobs as failed
				for idx := range jobs {
					results[idx] = ConversionResult{
						InputPath: files[idx].InputPath,
						Err:       fmt.Errorf("%w: %w", ErrConverterInit, err),
					}
				}
				return
			}
			defer pool.Release(conv)

			for idx := range jobs {
				if ctx.Err() != nil {
					results[idx] = ConversionResult{
						InputPath: files[idx].InputPath,
						Err:       ctx.Err(),
					}
					continue
				}
				results[idx] = convertFile(ctx, conv, files[idx], params)
			}
		}()
	}

	for i := range files {
		jobs <- i
	}
	close(jobs)

	wg.Wait()
	return results
}

// convertFile processes a single file and returns the result.
func convertFile(ctx context.Context, conv CLIConverter, f FileToConvert, params *cardParams) ConversionResult {
	start := time.Now()
	result := ConversionResult{InputPath: f.InputPath}
	done := func(err error) ConversionResult {
		result.Err = err
		result.Duration = time.Since(start)
		return result
	}

	content, err := os.ReadFile(f.InputPath) // #nosec G304 -- discovered path
	if err != nil {
		return done(fmt.Errorf("%w: %v", ErrReadMarkdown, err))
	}

	if err := os.MkdirAll(filepath.Dir(f.OutputBase), dirPermissions); err != nil {
		return done(fmt.Errorf("%w: %v%s", ErrOutputDirCreate, err, hints.ForOutputDirectory()))
	}

	markdown := string(content)
	convResult, err := conv.Convert(ctx, mdcard.Input{
		Markdown:  markdown,
		Title:     cardTitle(markdown, f.InputPath),
		Watermark: params.watermark,
		SkipImage: params.htmlOnly,
	})
	if err != nil {
		return done(withBrowserHints(err))
	}

	write := func(path string, data []byte, wrapErr error) error {
		// #nosec G306 -- exported cards are meant to be readable
		if err := os.WriteFile(path, data, filePermissions); err != nil {
			return fmt.Errorf("%w: %v", wrapErr, err)
		}
		result.Outputs = append(result.Outputs, path)
		result.Bytes += int64(len(data))
		return nil
	}

	if !params.htmlOnly {
		if err := write(f.PNGPath(params.pixelRatio), convResult.PNG, ErrWriteImage); err != nil {
			return done(err)
		}
	}
	if params.htmlOnly || params.htmlOutput {
		if err := write(f.HTMLPath(), convResult.HTML, ErrWriteOutput); err != nil {
			return done(err)
		}
	}
	if params.textOutput {
		if err := write(f.TextPath(), []byte(convResult.Text+"\n"), ErrWriteOutput); err != nil {
			return done(err)
		}
	}

	return done(nil)
}

// firstHeadingPattern matches the first # heading in markdown content.
var firstHeadingPattern = regexp.MustCompile(`(?m)^#[ \t]+(.+)$`)

// extractFirstHeading extracts the first # heading from markdown content.
func extractFirstHeading(markdown string) string {
	matches := firstHeadingPattern.FindStringSubmatch(markdown)
	if len(matches) >= 2 {
		return strings.TrimSpace(strings.TrimRight(matches[1], "# \t"))
	}
	return ""
}

// cardTitle names the card document: first H1 (as platform text), else the file name.
func cardTitle(markdown, path string) string {
	if h := extractFirstHeading(markdown); h != "" {
		if title := mdcard.PlatformText("#### " + h); title != "" {
			return title
		}
	}
	return fileutil.BaseName(path)
}

// ResultSummary holds the count of succeeded and failed conversions.
type ResultSummary struct {
	Succeeded int
	Failed    int
}

// countResults tallies succeeded and failed conversions.
func countResults(results []ConversionResult) ResultSummary {
	var summary ResultSummary
	for _, r := range results {
		if r.Err != nil {
			summary.Failed++
		} else {
			summary.Succeeded++
		}
	}
	return summary
}

// printResultsWithWriter outputs conversion results using the provided writers.
func printResultsWithWriter(results []ConversionResult, quiet, verbose bool, env *Environment) int {
	summary := countResults(results)

	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(env.Stderr, "FAILED %s: %v\n", r.InputPath, r.Err)
			continue
		}

		if quiet {
			continue
		}

		if verbose {
			fmt.Fprintf(env.Stdout, "%s -> %s (%s, %v)\n", r.InputPath, strings.Join(r.Outputs, ", "),
				humanize.Bytes(uint64(r.Bytes)), r.Duration.Round(time.Millisecond))
		} else {
			for _, out := range r.Outputs {
				fmt.Fprintf(env.Stdout, "Created %s\n", out)
			}
		}
	}

	if !quiet && len(results) > 1 {
		fmt.Fprintf(env.Stdout, "\n%d succeeded, %d failed\n", summary.Succeeded, summary.Failed)
	}

	return summary.Failed
}
