package main

// Notes:
// - Test infrastructure shared by the CLI tests: fake environment, mock
//   converter and pool, wiki fixtures. No browser is ever started.

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	wiki2pdf "github.com/alnah/go-wiki2pdf"
)

// ---------------------------------------------------------------------------
// Mock Implementations
// ---------------------------------------------------------------------------

// syncBuffer is a bytes.Buffer safe for concurrent writers.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

// mockConverter records inputs and returns a fixed result.
type mockConverter struct {
	mu     sync.Mutex
	inputs []wiki2pdf.Input
	result *wiki2pdf.ConvertResult
	err    error
}

func newMockConverter() *mockConverter {
	return &mockConverter{
		result: &wiki2pdf.ConvertResult{
			HTML:        []byte("<html><body><h1>Home</h1></body></html>"),
			PDF:         []byte("%PDF-1.4 mock"),
			Pages:       3,
			Diagnostics: []wiki2pdf.Diagnostic{{Kind: "unresolved-link", Page: "Home.md", Target: "Missing"}},
		},
	}
}

func (m *mockConverter) Convert(_ context.Context, input wiki2pdf.Input) (*wiki2pdf.ConvertResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.inputs = append(m.inputs, input)
	if m.err != nil {
		return nil, m.err
	}
	res := *m.result
	if input.HTMLOnly {
		res.PDF = nil
	}
	return &res, nil
}

func (m *mockConverter) Inputs() []wiki2pdf.Input {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]wiki2pdf.Input(nil), m.inputs...)
}

// mockPool hands out one shared mock converter.
type mockPool struct {
	conv       *mockConverter
	size       int
	acquireErr error
	opts       []wiki2pdf.Option

	mu     sync.Mutex
	closed bool
}

func (p *mockPool) Acquire() (CLIConverter, error) {
	if p.acquireErr != nil {
		return nil, p.acquireErr
	}
	return p.conv, nil
}

func (p *mockPool) Release(CLIConverter) {}
func (p *mockPool) Size() int              { return p.size }

func (p *mockPool) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = true
	return nil
}

// ---------------------------------------------------------------------------
// Fixtures
// ---------------------------------------------------------------------------

// testEnv bundles dependencies and the mocks behind them.
type testEnv struct {
	deps    *Dependencies
	stdout  *syncBuffer
	stderr  *syncBuffer
	conv    *mockConverter
	pool    *mockPool
	newPool int // NewPool calls
}

// newTestEnv builds dependencies reading the given environment.
func newTestEnv(env map[string]string) *testEnv {
	te := &testEnv{
		stdout: &syncBuffer{},
		stderr: &syncBuffer{},
		conv:   newMockConverter(),
	}
	if env == nil {
		env = map[string]string{}
	}
	if _, ok := env["NO_COLOR"]; !ok {
		env["NO_COLOR"] = "1"
	}
	te.pool = &mockPool{conv: te.conv}
	te.deps = &Dependencies{
		Stdout: te.stdout,
		Stderr: te.stderr,
		LookupEnv: func(k string) (string, bool) {
			v, ok := env[k]
			return v, ok
		},
		Environ: func() []string {
			out := make([]string, 0, len(env))
			for k, v := range env {
				out = append(out, k+"="+v)
			}
			return out
		},
		NewPool: func(size int, opts ...wiki2pdf.Option) Pool {
			te.newPool++
			te.pool.size = size
			te.pool.opts = opts
			return te.pool
		},
		Now: func() time.Time { return time.Date(2026, time.March, 7, 9, 0, 0, 0, time.UTC) },
	}
	return te
}

// writeWiki creates a wiki directory with the given files.
func writeWiki(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
			t.Fatalf("setup: %v", err)
		}
		if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
			t.Fatalf("setup: %v", err)
		}
	}
	return dir
}

func sampleWiki(t *testing.T) string {
	t.Helper()
	return writeWiki(t, map[string]string{
		"Home.md":       "# Home\n\n[[Setup]]\n",
		"Setup.md":      "# Setup\n",
		"guides/FAQ.md": "# FAQ\n",
	})
}
