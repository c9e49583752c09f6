package mdcard

import (
	"context"
	"fmt"
	"math"
	"os"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"github.com/jaydendev/mdcard/internal/fileutil"
	"github.com/jaydendev/mdcard/internal/process"
)

// imageConverter abstracts card HTML to PNG export to allow different backends.
type imageConverter interface {
	ToPNG(ctx context.Context, htmlContent string, opts *imageOptions) ([]byte, error)
	Close() error
}

// imageRenderer abstracts PNG capture from an HTML file to enable testing without a browser.
type imageRenderer interface {
	RenderFromFile(ctx context.Context, filePath string, opts *imageOptions) ([]byte, error)
}

// imageOptions holds options for PNG capture.
type imageOptions struct {
	Width      int     // card width in CSS pixels
	PixelRatio float64 // device scale factor
	Selector   string  // element to capture
}

// cardSelector matches the card root in the card template.
const cardSelector = ".card"

// Viewport layout around the card, in CSS pixels.
const (
	viewportPadding = 48
	viewportHeight  = 900
)

// rodRenderer implements imageRenderer using go-rod.
// Rod automatically downloads Chromium on first run if not found.
type rodRenderer struct {
	browser  *rod.Browser
	launcher *launcher.Launcher
	timeout  time.Duration
}

// newRodRenderer creates a rodRenderer with the given timeout.
func newRodRenderer(timeout time.Duration) *rodRenderer {
	return &rodRenderer{timeout: timeout}
}

// ensureBrowser lazily connects to the browser.
func (r *rodRenderer) ensureBrowser() error {
	if r.browser != nil {
		return nil
	}

	l := launcher.New()

	// Use pre-installed browser if specified (Docker/containerized environments)
	bin := os.Getenv("ROD_BROWSER_BIN")
	if bin != "" {
		l = l.Bin(bin)
	}

	// NoSandbox required for CI and containerized environments
	if os.Getenv("CI") == "true" || os.Getenv("ROD_NO_SANDBOX") == "1" || bin != "" {
		l = l.NoSandbox(true)
	}

	u, err := l.Launch()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}
	r.launcher = l

	r.browser = rod.New().ControlURL(u)
	if err := r.browser.Connect(); err != nil {
		r.browser = nil
		r.killLauncher()
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}
	return nil
}

// killLauncher terminates Chrome and its helper processes.
func (r *rodRenderer) killLauncher() {
	if r.launcher == nil {
		return
	}
	process.KillProcessGroup(r.launcher.PID())
	r.launcher.Kill()
	r.launcher = nil
}

// Close releases browser resources.
func (r *rodRenderer) Close() error {
	var err error
	if r.browser != nil {
		err = r.browser.Close()
		r.browser = nil
	}
	r.killLauncher()
	return err
}

// RenderFromFile opens a local card HTML file in headless Chrome and captures
// the card element as PNG.
// Returns explicit errors instead of panicking when browser operations fail.
func (r *rodRenderer) RenderFromFile(ctx context.Context, filePath string, opts *imageOptions) ([]byte, error) {
	// Check context before starting
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	opts = normalizeImageOptions(opts)

	timeout, err := r.effectiveTimeout(ctx)
	if err != nil {
		return nil, err
	}

	if err := r.ensureBrowser(); err != nil {
		return nil, err
	}

	page, err := r.browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageCreate, err)
	}
	defer page.Close()

	if err := page.SetViewport(buildViewport(opts)); err != nil {
		return nil, fmt.Errorf("%w: setting viewport: %v", ErrPageCreate, err)
	}

	page = page.Timeout(timeout)

	if err := page.Navigate("file://" + filePath); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageLoad, err)
	}
	if err := page.WaitLoad(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageLoad, err)
	}

	// Check context after page load
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	el, err := page.Element(opts.Selector)
	if err != nil {
		return nil, fmt.Errorf("%w: locating %q: %v", ErrImageCapture, opts.Selector, err)
	}

	png, err := el.Screenshot(proto.PageCaptureScreenshotFormatPng, 0)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrImageCapture, err)
	}
	return png, nil
}

// effectiveTimeout returns the context deadline when set, else the renderer timeout.
func (r *rodRenderer) effectiveTimeout(ctx context.Context) (time.Duration, error) {
	if deadline, ok := ctx.Deadline(); ok {
		timeout := time.Until(deadline)
		if timeout <= 0 {
			return 0, context.DeadlineExceeded
		}
		return timeout, nil
	}
	return r.timeout, nil
}

// normalizeImageOptions fills zero values with defaults.
func normalizeImageOptions(opts *imageOptions) *imageOptions {
	out := imageOptions{
		Width:      DefaultCardWidth,
		PixelRatio: DefaultPixelRatio,
		Selector:   cardSelector,
	}
	if opts == nil {
		return &out
	}
	if opts.Width > 0 {
		out.Width = opts.Width
	}
	if opts.PixelRatio > 0 {
		out.PixelRatio = opts.PixelRatio
	}
	if opts.Selector != "" {
		out.Selector = opts.Selector
	}
	return &out
}

// buildViewport sizes the page so the card fits horizontally with padding.
// Height only bounds the initial layout; element screenshots scroll as needed.
func buildViewport(opts *imageOptions) *proto.EmulationSetDeviceMetricsOverride {
	return &proto.EmulationSetDeviceMetricsOverride{
		Width:             opts.Width + viewportPadding,
		Height:            viewportHeight,
		DeviceScaleFactor: math.Round(opts.PixelRatio*100) / 100,
		Mobile:            false,
	}
}

// rodConverter exports card HTML to PNG using headless Chrome via go-rod.
type rodConverter struct {
	renderer *rodRenderer
}

// newRodConverter creates a rodConverter with production renderer.
func newRodConverter(timeout time.Duration) *rodConverter {
	return &rodConverter{
		renderer: newRodRenderer(timeout),
	}
}

// ToPNG writes the card HTML to a temp file and captures it as PNG.
func (c *rodConverter) ToPNG(ctx context.Context, htmlContent string, opts *imageOptions) ([]byte, error) {
	tmpPath, cleanup, err := fileutil.WriteTempFile(htmlContent, "html")
	if err != nil {
		return nil, err
	}
	defer cleanup()

	return c.renderer.RenderFromFile(ctx, tmpPath, opts)
}

// Close releases browser resources.
func (c *rodConverter) Close() error {
	if c.renderer != nil {
		return c.renderer.Close()
	}
	return nil
}
