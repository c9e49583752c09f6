//go:build integration

package main

// Notes:
// - These tests launch a real browser through the library pool. Run with
//   -tags integration on a host where `mdcard doctor` reports ready.
// - Pixel content is not compared; we check PNG signatures and that the
//   HTML artifact carries the card title and watermark.

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

var pngSignature = []byte("\x89PNG\r\n\x1a\n")

// newBrowserEnv returns a test environment backed by the real converter pool.
func newBrowserEnv() *testEnv {
	te := newTestEnv(newMockConverter(), "")
	te.NewPool = newPoolAdapter
	return te
}

func TestRunCard_Integration(t *testing.T) {
	dir := setupTestDir(t, map[string]string{
		"周末.md":       "# 周末计划\n\n- 爬山\n- **看书**\n\n```go\nfmt.Println(\"hi\")\n```\n",
		"nested/b.md": "## 无标题\n\n> 引用\n",
	})
	out := filepath.Join(t.TempDir(), "cards")

	te := newBrowserEnv()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	args := []string{dir, "-o", out, "--html", "--text", "--wm-text", "测试水印", "-w", "2", "--theme", "midnight"}
	if err := runCard(ctx, args, te.Environment); err != nil {
		t.Fatalf("runCard() error = %v\nstderr: %s", err, te.stderr.String())
	}

	for _, name := range []string{"周末@2x.png", filepath.Join("nested", "b@2x.png")} {
		data, err := os.ReadFile(filepath.Join(out, name))
		if err != nil {
			t.Fatalf("ReadFile(%s): %v", name, err)
		}
		if !bytes.HasPrefix(data, pngSignature) {
			t.Errorf("%s is not a PNG", name)
		}
	}

	html, err := os.ReadFile(filepath.Join(out, "周末.html"))
	if err != nil {
		t.Fatalf("ReadFile(html): %v", err)
	}
	for _, want := range []string{"<title>周末计划</title>", "测试水印"} {
		if !strings.Contains(string(html), want) {
			t.Errorf("HTML missing %q", want)
		}
	}

	text, err := os.ReadFile(filepath.Join(out, "周末.txt"))
	if err != nil {
		t.Fatalf("ReadFile(txt): %v", err)
	}
	if !strings.HasPrefix(string(text), "【周末计划】") {
		t.Errorf("text artifact = %q, want platform text", text)
	}
}

func TestRunCard_Integration_PixelRatio(t *testing.T) {
	dir := setupTestDir(t, map[string]string{"a.md": "# A\n\nbody"})

	te := newBrowserEnv()
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	if err := runCard(ctx, []string{filepath.Join(dir, "a.md"), "--pixel-ratio", "1", "-q"}, te.Environment); err != nil {
		t.Fatalf("runCard() error = %v", err)
	}
	one, err := os.Stat(filepath.Join(dir, "a@1x.png"))
	if err != nil {
		t.Fatalf("Stat(a@1x.png): %v", err)
	}

	if err := runCard(ctx, []string{filepath.Join(dir, "a.md"), "--pixel-ratio", "3", "-q"}, te.Environment); err != nil {
		t.Fatalf("runCard() error = %v", err)
	}
	three, err := os.Stat(filepath.Join(dir, "a@3x.png"))
	if err != nil {
		t.Fatalf("Stat(a@3x.png): %v", err)
	}

	if three.Size() <= one.Size() {
		t.Errorf("@3x size %d should exceed @1x size %d", three.Size(), one.Size())
	}
}
