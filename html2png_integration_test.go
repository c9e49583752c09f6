//go:build integration

package mdcard

import (
	"bytes"
	"context"
	"image/png"
	"testing"
)

func TestIntegration_ConvertPNG(t *testing.T) {
	t.Parallel()

	c := acquireConverter(t)

	ctx, cancel := context.WithTimeout(context.Background(), testTimeout)
	defer cancel()

	result, err := c.Convert(ctx, Input{
		Markdown:  "# 旅行备忘录\n\n- 护照\n\n```go\nfmt.Println(\"hi\")\n```",
		Watermark: &Watermark{},
	})
	if err != nil {
		t.Fatalf("Convert() unexpected error: %v", err)
	}

	img, err := png.Decode(bytes.NewReader(result.PNG))
	if err != nil {
		t.Fatalf("PNG does not decode: %v", err)
	}

	// Element screenshots are scaled by the device pixel ratio.
	wantWidth := int(float64(DefaultCardWidth) * DefaultPixelRatio)
	if got := img.Bounds().Dx(); got != wantWidth {
		t.Errorf("PNG width = %d, want %d", got, wantWidth)
	}
	if img.Bounds().Dy() == 0 {
		t.Error("PNG height should be positive")
	}
}

func TestIntegration_ConvertPNG_AllThemes(t *testing.T) {
	t.Parallel()

	names, err := ListThemes()
	if err != nil {
		t.Fatalf("ListThemes() unexpected error: %v", err)
	}

	for _, name := range names {
		t.Run(name, func(t *testing.T) {
			c, err := NewConverter(WithTheme(name), WithPixelRatio(1), WithTimeout(testTimeout))
			if err != nil {
				t.Fatalf("NewConverter() unexpected error: %v", err)
			}
			defer c.Close()

			result, err := c.Convert(context.Background(), Input{Markdown: "**" + name + "**"})
			if err != nil {
				t.Fatalf("Convert() unexpected error: %v", err)
			}
			if !bytes.HasPrefix(result.PNG, []byte("\x89PNG")) {
				t.Error("result is not a PNG")
			}
		})
	}
}
