package mdcard

import (
	"context"
	"fmt"
	"strings"

	"github.com/jaydendev/mdcard/internal/assets"
	"github.com/jaydendev/mdcard/internal/pipeline"
)

// Compile-time interface implementation checks.
// These ensure implementations satisfy their interfaces at compile time,
// catching signature mismatches before runtime.
var (
	_ pipeline.MarkdownPreprocessor = (*pipeline.CommonMarkPreprocessor)(nil)
	_ pipeline.HTMLRenderer         = (*pipeline.GoldmarkRenderer)(nil)
	_ pipeline.CardRenderer         = (*pipeline.CardAssembly)(nil)
	_ imageConverter                = (*rodConverter)(nil)
	_ imageRenderer                 = (*rodRenderer)(nil)
)

// Converter orchestrates the Markdown to platform text, card HTML and PNG pipeline.
// Create with NewConverter(), use Convert() for conversion, and Close() when done.
// A Converter is not safe for concurrent Convert calls; use ConverterPool.
type Converter struct {
	cfg            converterConfig
	loader         AssetLoader
	theme          *Theme
	baseCSS        string
	themeCSS       string
	highlightCSS   string
	preprocessor   pipeline.MarkdownPreprocessor
	htmlRenderer   pipeline.HTMLRenderer
	cardRenderer   pipeline.CardRenderer
	imageConverter imageConverter
}

// NewConverter creates a Converter with default configuration.
// Use options to customize behavior (e.g., WithTheme, WithTimeout, WithAssetPath).
// The theme, stylesheet and template are loaded here; the browser is only
// started by the first conversion that needs a PNG.
func NewConverter(opts ...Option) (*Converter, error) {
	c := &Converter{
		cfg:          defaultConverterConfig(),
		preprocessor: &pipeline.CommonMarkPreprocessor{},
	}

	for _, opt := range opts {
		opt(c)
	}

	if err := c.cfg.validate(); err != nil {
		return nil, err
	}

	if err := c.resolveLoader(); err != nil {
		return nil, err
	}

	if err := c.loadTheme(); err != nil {
		return nil, err
	}

	// Create renderers (if not injected by tests)
	if c.htmlRenderer == nil {
		c.htmlRenderer = pipeline.NewGoldmarkRenderer(c.theme.CodeStyle)
	}

	if c.cardRenderer == nil {
		tmpl, err := c.loader.LoadTemplate(assets.DefaultTemplateName)
		if err != nil {
			return nil, fmt.Errorf("loading card template: %w", err)
		}
		c.cardRenderer, err = pipeline.NewCardAssembly(tmpl)
		if err != nil {
			return nil, fmt.Errorf("initializing card renderer: %w", err)
		}
	}

	if c.imageConverter == nil {
		c.imageConverter = newRodConverter(c.cfg.timeout)
	}

	return c, nil
}

// resolveLoader picks the asset loader: explicit loader, asset path, or embedded.
func (c *Converter) resolveLoader() error {
	if c.loader != nil {
		return nil
	}
	loader, err := NewAssetLoader(c.cfg.assetPath)
	if err != nil {
		return err
	}
	c.loader = loader
	return nil
}

// loadTheme loads the selected theme and precomputes the card stylesheets.
func (c *Converter) loadTheme() error {
	theme, err := c.loader.LoadTheme(c.cfg.theme)
	if err != nil {
		return fmt.Errorf("loading theme %q: %w", c.cfg.theme, err)
	}
	// Custom loaders may skip validation
	if err := theme.Validate(); err != nil {
		return err
	}
	c.theme = theme

	c.baseCSS, err = c.loader.LoadStyle(assets.DefaultStyleName)
	if err != nil {
		return fmt.Errorf("loading card style: %w", err)
	}

	c.themeCSS = buildThemeCSS(theme)

	c.highlightCSS, err = pipeline.HighlightCSS(theme.CodeStyle)
	if err != nil {
		return err
	}
	return nil
}

// Theme returns a copy of the theme the converter renders with.
func (c *Converter) Theme() Theme {
	return *c.theme
}

// Convert runs the full pipeline and returns platform text, card HTML and PNG.
// The context is used for cancellation and timeout.
// If input.SkipImage is true, PNG export is skipped and no browser is started.
// Recovers from internal panics to prevent crashes from propagating to callers.
func (c *Converter) Convert(ctx context.Context, input Input) (result *ConvertResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal error: %v", r)
		}
	}()

	if err := c.validateInput(input); err != nil {
		return nil, err
	}

	res := &ConvertResult{
		Text: pipeline.ToPlatformText(input.Markdown),
	}

	// Preprocess markdown
	mdContent := c.preprocessor.PreprocessMarkdown(ctx, input.Markdown)
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	// Render preview HTML
	body, err := c.htmlRenderer.RenderHTML(ctx, mdContent)
	if err != nil {
		return nil, fmt.Errorf("rendering preview: %w", err)
	}

	// Assemble card document
	title := strings.TrimSpace(input.Title)
	if title == "" {
		title = defaultTitle
	}
	cardHTML, err := c.cardRenderer.RenderCard(ctx, &pipeline.CardData{
		Title:        title,
		Body:         body,
		BaseCSS:      c.baseCSS,
		ThemeCSS:     c.themeCSS,
		HighlightCSS: c.highlightCSS,
		Watermark:    input.Watermark.DisplayText(),
		Width:        c.cfg.cardWidth,
	})
	if err != nil {
		return nil, fmt.Errorf("assembling card: %w", err)
	}
	res.HTML = []byte(cardHTML)

	// Skip PNG export if requested
	if input.SkipImage {
		return res, nil
	}

	pngBytes, err := c.imageConverter.ToPNG(ctx, cardHTML, &imageOptions{
		Width:      c.cfg.cardWidth,
		PixelRatio: c.cfg.pixelRatio,
		Selector:   cardSelector,
	})
	if err != nil {
		return nil, fmt.Errorf("exporting image: %w", err)
	}

	res.PNG = pngBytes
	return res, nil
}

// Close releases resources (headless Chrome browser).
func (c *Converter) Close() error {
	if c.imageConverter != nil {
		return c.imageConverter.Close()
	}
	return nil
}

// validateInput checks that required fields are present and valid.
//
// This is a TRUST BOUNDARY for direct library users who build Input manually.
// CLI users have their input validated earlier by Config.Validate() at config load time.
func (c *Converter) validateInput(input Input) error {
	if strings.TrimSpace(input.Markdown) == "" {
		return ErrEmptyMarkdown
	}
	return input.Watermark.Validate()
}
