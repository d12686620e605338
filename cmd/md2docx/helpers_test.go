package main

// Notes:
// - Shared fixtures for the command tests: an Environment backed by
//   buffers, a scripted converter and a few file helpers.
// No coverage gaps: this is test infrastructure, not production code.

import (
	"archive/zip"
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	md2docx "github.com/alnah/go-md2docx"
	"github.com/alnah/go-md2docx/internal/config"
)

// Type aliases for cleaner test code.
type (
	Config       = config.Config
	InputConfig  = config.InputConfig
	OutputConfig = config.OutputConfig
	PageConfig   = config.PageConfig
)

// fixedNow is the clock every test environment reports.
var fixedNow = time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)

// testEnv is an Environment whose output is captured.
type testEnv struct {
	*Environment
	stdout *bytes.Buffer
	stderr *bytes.Buffer
}

// newTestEnv returns an environment with the given MD2DOCX_* variables
// and nothing else.
func newTestEnv(vars map[string]string) *testEnv {
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	return &testEnv{
		Environment: &Environment{
			Now:    func() time.Time { return fixedNow },
			Stdout: stdout,
			Stderr: stderr,
			Getenv: func(key string) string { return vars[key] },
			Environ: func() []string {
				list := make([]string, 0, len(vars))
				for k, v := range vars {
					list = append(list, k+"="+v)
				}
				return list
			},
		},
		stdout: stdout,
		stderr: stderr,
	}
}

// writeFile creates path (and its parents) with content.
func writeFile(t *testing.T, path, content string) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("creating directory: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}

// readPart returns one file of the .docx package at path.
func readPart(t *testing.T, path, name string) string {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("%s is not a zip archive: %v", path, err)
	}
	for _, f := range zr.File {
		if f.Name != name {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("opening %s: %v", name, err)
		}
		defer rc.Close()
		part, err := io.ReadAll(rc)
		if err != nil {
			t.Fatalf("reading %s: %v", name, err)
		}
		return string(part)
	}
	t.Fatalf("%s has no part %s", path, name)
	return ""
}

// ---------------------------------------------------------------------------
// Mock Implementations - For unit testing
// ---------------------------------------------------------------------------

// mockConverter returns a fixed package and records every input. Sources
// containing failOn fail with err.
type mockConverter struct {
	mu     sync.Mutex
	inputs []md2docx.Input
	failOn string
	err    error
}

func (m *mockConverter) Convert(_ context.Context, in md2docx.Input) (*md2docx.ConvertResult, error) {
	m.mu.Lock()
	m.inputs = append(m.inputs, in)
	m.mu.Unlock()

	if m.failOn != "" && strings.Contains(in.Source, m.failOn) {
		return nil, m.err
	}
	res := &md2docx.ConvertResult{DOCX: []byte("PK mock"), Markdown: in.Source}
	if in.HTML {
		res.HTML = []byte("<html>preview</html>")
	}
	return res, nil
}

func (m *mockConverter) calls() []md2docx.Input {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]md2docx.Input(nil), m.inputs...)
}
