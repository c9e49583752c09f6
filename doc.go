// Package mdcard turns Markdown into two shareable artifacts: plain text in
// the chat-platform dialect, and a themed preview card exported as PNG.
//
// # Platform Text
//
// PlatformText is a pure function. It never fails and needs no setup:
//
//	text := mdcard.PlatformText("# Notes\n- **one**\n- two")
//	// 【Notes】
//	//
//	// • one
//	// • two
//
// Headings become 【title】, list items get • or N) prefixes, quotes get ｜,
// fenced code is wrapped in —— code —— / —— end —— markers, and links and
// images are flattened to label（url）.
//
// # Cards
//
// Create a converter, convert markdown, and close when done:
//
//	conv, err := mdcard.NewConverter(mdcard.WithTheme("midnight"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer conv.Close()
//
//	result, err := conv.Convert(ctx, mdcard.Input{
//	    Markdown:  "# Hello\n\nWorld",
//	    Watermark: &mdcard.Watermark{},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile("hello@2x.png", result.PNG, 0644)
//
// The result carries the platform text (result.Text), the standalone card
// document (result.HTML) and the PNG (result.PNG). Set Input.SkipImage to
// stop after the HTML stage.
//
// # Conversion Pipeline
//
//  1. Platform text via the line-oriented transducer
//  2. Markdown to sanitized HTML via Goldmark (GFM, typographer, chroma) and bluemonday
//  3. Card assembly: theme CSS, highlight CSS and watermark in an html/template document
//  4. PNG capture of the .card element via headless Chrome (go-rod)
//
// # Themes
//
// Built-in themes are paper (default), midnight, glass and mint. Override or
// add themes with a directory containing themes/{name}.yaml:
//
//	conv, err := mdcard.NewConverter(
//	    mdcard.WithAssetPath("/path/to/assets"),
//	    mdcard.WithTheme("brand"),
//	)
//
// # Parallel Processing
//
// For batch conversion, use ConverterPool to manage multiple browser instances:
//
//	pool := mdcard.NewConverterPool(4, mdcard.WithTheme("mint"))
//	defer pool.Close()
//
//	conv, err := pool.Acquire(ctx)
//	if err != nil {
//	    return err
//	}
//	defer pool.Release(conv)
//
// Acquire returns ctx.Err() when ctx ends first and ErrPoolClosed once the
// pool is closed.
//
// # Browser Requirements
//
// PNG export requires Chrome/Chromium. go-rod downloads a managed Chromium on
// first run (~/.cache/rod/browser/). For containers and CI, set
// ROD_NO_SANDBOX=1; use ROD_BROWSER_BIN to point at a custom Chrome binary.
package mdcard
