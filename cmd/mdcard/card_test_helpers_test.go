package main

// Notes:
// - This file contains test doubles shared across card, text, and main tests.
// No coverage gaps: this is test infrastructure, not production code.

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/jaydendev/mdcard"
)

// fakePNG is returned by mockConverter in place of a real screenshot.
var fakePNG = []byte("\x89PNG\r\n\x1a\nmock")

// ---------------------------------------------------------------------------
// Mock Implementations - For unit testing
// ---------------------------------------------------------------------------

// mockConverter records inputs and returns canned artifacts.
type mockConverter struct {
	mu          sync.Mutex
	calls       []mdcard.Input
	convertFunc func(ctx context.Context, input mdcard.Input) (*mdcard.ConvertResult, error)
}

func newMockConverter() *mockConverter {
	return &mockConverter{}
}

func (m *mockConverter) Convert(ctx context.Context, input mdcard.Input) (*mdcard.ConvertResult, error) {
	m.mu.Lock()
	m.calls = append(m.calls, input)
	m.mu.Unlock()

	if m.convertFunc != nil {
		return m.convertFunc(ctx, input)
	}

	result := &mdcard.ConvertResult{
		Text: mdcard.PlatformText(input.Markdown),
		HTML: []byte("<html>" + input.Title + "</html>"),
	}
	if !input.SkipImage {
		result.PNG = fakePNG
	}
	return result, nil
}

func (m *mockConverter) getCalls() []mdcard.Input {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]mdcard.Input{}, m.calls...)
}

// testPool hands out one shared mock converter, bounded by size.
type testPool struct {
	mock       *mockConverter
	sem        chan struct{}
	size       int
	acquireErr error
	opts       []mdcard.Option

	mu     sync.Mutex
	closed bool
}

func newTestPool(mock *mockConverter, size int) *testPool {
	if size < 1 {
		size = 1
	}
	return &testPool{mock: mock, sem: make(chan struct{}, size), size: size}
}

func (p *testPool) Acquire(ctx context.Context) (CLIConverter, error) {
	if p.acquireErr != nil {
		return nil, p.acquireErr
	}
	select {
	case p.sem <- struct{}{}:
		return p.mock, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (p *testPool) Release(CLIConverter) {
	<-p.sem
}

func (p *testPool) Size() int {
	return p.size
}

func (p *testPool) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = true
	return nil
}

func (p *testPool) isClosed() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.closed
}

// ---------------------------------------------------------------------------
// Environment Helpers
// ---------------------------------------------------------------------------

// testEnv bundles an Environment with its captured output.
type testEnv struct {
	*Environment
	stdout    *bytes.Buffer
	stderr    *bytes.Buffer
	pool      *testPool
	clipboard []string
	mu        sync.Mutex
}

// newTestEnv returns an Environment wired to buffers, a test pool, and a
// recording clipboard. Stdin defaults to stdin content, never a terminal.
func newTestEnv(mock *mockConverter, stdin string) *testEnv {
	te := &testEnv{stdout: &bytes.Buffer{}, stderr: &bytes.Buffer{}}
	te.Environment = &Environment{
		Now:        func() time.Time { return time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC) },
		Stdout:     te.stdout,
		Stderr:     te.stderr,
		Stdin:      strings.NewReader(stdin),
		StdinIsTTY: func() bool { return false },
		Clipboard: func(text string) error {
			te.mu.Lock()
			defer te.mu.Unlock()
			te.clipboard = append(te.clipboard, text)
			return nil
		},
		NewPool: func(size int, opts ...mdcard.Option) Pool {
			te.pool = newTestPool(mock, size)
			te.pool.opts = opts
			return te.pool
		},
	}
	return te
}

// copied returns everything sent to the clipboard.
func (te *testEnv) copied() []string {
	te.mu.Lock()
	defer te.mu.Unlock()
	return append([]string{}, te.clipboard...)
}

// setupTestDir creates files (relative path -> content) under a temp dir.
func setupTestDir(t *testing.T, files map[string]string) string {
	t.Helper()

	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("MkdirAll: %v", err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("WriteFile: %v", err)
		}
	}
	return dir
}

// assertFileExists fails the test if path is missing.
func assertFileExists(t *testing.T, path string) {
	t.Helper()

	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected file %s: %v", path, err)
	}
}

// assertFileMissing fails the test if path exists.
func assertFileMissing(t *testing.T, path string) {
	t.Helper()

	if _, err := os.Stat(path); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected no file at %s, stat error: %v", path, err)
	}
}
