package main

// Notes:
// - convertBatch: we test ordering, per-file failures, format routing and
//   cancellation with a scripted converter; files are real temp files.
// - printResults: output is written to buffers, so styles render as plain
//   text and can be compared directly.
// These are acceptable gaps: we test observable behavior, not implementation details.

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	md2docx "github.com/alnah/go-md2docx"
)

// batchFixture writes n Markdown sources and returns them as jobs whose
// outputs go to a separate directory.
func batchFixture(t *testing.T, n int) []FileToConvert {
	t.Helper()

	src := t.TempDir()
	out := t.TempDir()
	files := make([]FileToConvert, n)
	for i := range n {
		in := filepath.Join(src, fmt.Sprintf("doc%d.md", i))
		writeFile(t, in, fmt.Sprintf("# Document %d", i))
		files[i] = FileToConvert{
			InputPath:  in,
			OutputPath: filepath.Join(out, "nested", fmt.Sprintf("doc%d.docx", i)),
		}
	}
	return files
}

// ---------------------------------------------------------------------------
// TestConvertBatch - Worker pool
// ---------------------------------------------------------------------------

func TestConvertBatch_PreservesOrder(t *testing.T) {
	t.Parallel()

	files := batchFixture(t, 6)
	conv := &mockConverter{}

	results := convertBatch(context.Background(), conv, 3, files, &conversionParams{title: "T", author: "A"})

	if len(results) != len(files) {
		t.Fatalf("got %d results, want %d", len(results), len(files))
	}
	for i, r := range results {
		if r.Err != nil {
			t.Errorf("result %d error: %v", i, r.Err)
		}
		if r.InputPath != files[i].InputPath {
			t.Errorf("result %d input = %s, want %s", i, r.InputPath, files[i].InputPath)
		}
		if r.Size != len("PK mock") {
			t.Errorf("result %d size = %d", i, r.Size)
		}
		data, err := os.ReadFile(files[i].OutputPath)
		if err != nil {
			t.Errorf("output %d not written: %v", i, err)
			continue
		}
		if string(data) != "PK mock" {
			t.Errorf("output %d = %q", i, data)
		}
	}

	for _, in := range conv.calls() {
		if in.Title != "T" || in.Author != "A" {
			t.Errorf("input metadata = %q/%q, want T/A", in.Title, in.Author)
		}
		if in.Format != md2docx.FormatMarkdown {
			t.Errorf("format = %v, want markdown from the .md extension", in.Format)
		}
	}
}

func TestConvertBatch_Empty(t *testing.T) {
	t.Parallel()

	if got := convertBatch(context.Background(), &mockConverter{}, 4, nil, &conversionParams{}); got != nil {
		t.Errorf("convertBatch(nil) = %v, want nil", got)
	}
}

func TestConvertBatch_PartialFailure(t *testing.T) {
	t.Parallel()

	files := batchFixture(t, 3)
	boom := errors.New("boom")
	conv := &mockConverter{failOn: "Document 1", err: boom}

	results := convertBatch(context.Background(), conv, 2, files, &conversionParams{})

	for i, r := range results {
		if i == 1 {
			if !errors.Is(r.Err, boom) {
				t.Errorf("result 1 error = %v, want boom", r.Err)
			}
			if _, err := os.Stat(files[1].OutputPath); !errors.Is(err, os.ErrNotExist) {
				t.Error("failed conversion should not leave an output file")
			}
			continue
		}
		if r.Err != nil {
			t.Errorf("result %d error: %v", i, r.Err)
		}
	}
}

func TestConvertBatch_ExplicitFormat(t *testing.T) {
	t.Parallel()

	files := batchFixture(t, 1)
	conv := &mockConverter{}

	convertBatch(context.Background(), conv, 1, files, &conversionParams{format: md2docx.FormatHTML})

	calls := conv.calls()
	if len(calls) != 1 || calls[0].Format != md2docx.FormatHTML {
		t.Errorf("explicit format should override the extension, got %+v", calls)
	}
}

func TestConvertBatch_HTMLPreview(t *testing.T) {
	t.Parallel()

	files := batchFixture(t, 1)
	results := convertBatch(context.Background(), &mockConverter{}, 1, files, &conversionParams{html: true})
	if results[0].Err != nil {
		t.Fatalf("convert error: %v", results[0].Err)
	}

	preview, err := os.ReadFile(previewOutputPath(files[0].OutputPath))
	if err != nil {
		t.Fatalf("preview not written: %v", err)
	}
	if string(preview) != "<html>preview</html>" {
		t.Errorf("preview = %q", preview)
	}
}

func TestConvertBatch_Cancelled(t *testing.T) {
	t.Parallel()

	files := batchFixture(t, 3)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	conv := &mockConverter{}
	results := convertBatch(ctx, conv, 2, files, &conversionParams{})

	for i, r := range results {
		if !errors.Is(r.Err, context.Canceled) {
			t.Errorf("result %d error = %v, want context.Canceled", i, r.Err)
		}
	}
	if n := len(conv.calls()); n != 0 {
		t.Errorf("converter called %d times after cancellation", n)
	}
}

func TestConvertFile_ReadError(t *testing.T) {
	t.Parallel()

	f := FileToConvert{
		InputPath:  filepath.Join(t.TempDir(), "missing.md"),
		OutputPath: filepath.Join(t.TempDir(), "missing.docx"),
	}
	r := convertFile(context.Background(), &mockConverter{}, f, &conversionParams{})
	if !errors.Is(r.Err, ErrReadInput) {
		t.Errorf("error = %v, want ErrReadInput", r.Err)
	}
}

// ---------------------------------------------------------------------------
// TestPrintResults - Terminal output
// ---------------------------------------------------------------------------

func TestPrintResults(t *testing.T) {
	t.Parallel()

	results := []ConversionResult{
		{InputPath: "a.md", OutputPath: "a.docx", Size: 2048, Duration: 1500 * time.Microsecond},
		{InputPath: "b.md", OutputPath: "b.docx", Err: fmt.Errorf("%w: denied", ErrWriteOutput)},
	}

	tests := []struct {
		name       string
		quiet      bool
		verbose    bool
		wantStdout []string
		wantEmpty  bool
	}{
		{
			name:       "default",
			wantStdout: []string{"Created a.docx", "1 succeeded, 1 failed (2.0 kB written)"},
		},
		{
			name:       "verbose",
			verbose:    true,
			wantStdout: []string{"a.md -> a.docx (2.0 kB, 2ms)"},
		},
		{
			name:      "quiet",
			quiet:     true,
			wantEmpty: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			env := newTestEnv(nil)
			summary := printResults(results, tt.quiet, tt.verbose, env.Environment)

			if summary != (ResultSummary{Succeeded: 1, Failed: 1, Bytes: 2048}) {
				t.Errorf("summary = %+v", summary)
			}
			if !strings.Contains(env.stderr.String(), "FAILED b.md") {
				t.Errorf("failures always go to stderr, got %q", env.stderr.String())
			}
			if !strings.Contains(env.stderr.String(), "hint:") {
				t.Errorf("write failure should carry a hint, got %q", env.stderr.String())
			}

			out := env.stdout.String()
			if tt.wantEmpty && out != "" {
				t.Errorf("stdout = %q, want empty", out)
			}
			for _, want := range tt.wantStdout {
				if !strings.Contains(out, want) {
					t.Errorf("stdout missing %q, got %q", want, out)
				}
			}
		})
	}
}

func TestPrintResults_SingleFileNoSummary(t *testing.T) {
	t.Parallel()

	env := newTestEnv(nil)
	printResults([]ConversionResult{{InputPath: "a.md", OutputPath: "a.docx"}}, false, false, env.Environment)

	if got := env.stdout.String(); got != "Created a.docx\n" {
		t.Errorf("stdout = %q, want %q", got, "Created a.docx\n")
	}
}
