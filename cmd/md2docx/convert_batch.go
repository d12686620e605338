package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dustin/go-humanize"

	md2docx "github.com/alnah/go-md2docx"
	"github.com/alnah/go-md2docx/internal/fileutil"
)

// CLIConverter converts one source document. *md2docx.Converter
// satisfies it; tests substitute a fake.
type CLIConverter interface {
	Convert(ctx context.Context, input md2docx.Input) (*md2docx.ConvertResult, error)
}

var _ CLIConverter = (*md2docx.Converter)(nil)

// ConversionResult is the outcome of converting one file.
type ConversionResult struct {
	InputPath  string
	OutputPath string
	Size       int // bytes of .docx written
	Err        error
	Duration   time.Duration
}

// convertBatch runs files through conv on up to workers goroutines. Each
// worker claims the next unconverted index, so results line up with files.
// Files still pending when ctx is cancelled fail with the context error.
func convertBatch(ctx context.Context, conv CLIConverter, workers int, files []FileToConvert, params *conversionParams) []ConversionResult {
	if len(files) == 0 {
		return nil
	}

	results := make([]ConversionResult, len(files))
	var next atomic.Int64
	var wg sync.WaitGroup
	for range min(max(workers, 1), len(files)) {
		wg.Go(func() {
			for {
				i := int(next.Add(1)) - 1
				if i >= len(files) {
					return
				}
				if err := ctx.Err(); err != nil {
					results[i] = ConversionResult{InputPath: files[i].InputPath, Err: err}
					continue
				}
				results[i] = convertFile(ctx, conv, files[i], params)
			}
		})
	}
	wg.Wait()

	return results
}

// convertFile reads one source, converts it and writes the package (and
// the preview when requested) next to its planned output path.
func convertFile(ctx context.Context, conv CLIConverter, f FileToConvert, params *conversionParams) ConversionResult {
	start := time.Now()
	result := ConversionResult{
		InputPath:  f.InputPath,
		OutputPath: f.OutputPath,
	}
	fail := func(err error) ConversionResult {
		result.Err = err
		result.Duration = time.Since(start)
		return result
	}

	content, err := os.ReadFile(f.InputPath) // #nosec G304 -- discovered path
	if err != nil {
		return fail(fmt.Errorf("%w: %v", ErrReadInput, err))
	}

	format := params.format
	if format == md2docx.FormatAuto {
		format = formatFor(f.InputPath)
	}

	if err := os.MkdirAll(filepath.Dir(f.OutputPath), dirPermissions); err != nil {
		return fail(fmt.Errorf("%w: creating output directory: %v", ErrWriteOutput, err))
	}

	convResult, err := conv.Convert(ctx, md2docx.Input{
		Source: string(content),
		Title:  params.title,
		Author: params.author,
		Format: format,
		Page:   params.page,
		HTML:   params.html,
	})
	if err != nil {
		return fail(err)
	}

	if params.html {
		previewPath := previewOutputPath(f.OutputPath)
		if err := fileutil.WriteFileAtomic(previewPath, convResult.HTML, filePermissions); err != nil {
			return fail(fmt.Errorf("%w: %v", ErrWriteOutput, err))
		}
	}

	if err := fileutil.WriteFileAtomic(f.OutputPath, convResult.DOCX, filePermissions); err != nil {
		return fail(fmt.Errorf("%w: %v", ErrWriteOutput, err))
	}

	result.Size = len(convResult.DOCX)
	result.Duration = time.Since(start)
	return result
}

// ResultSummary totals a batch.
type ResultSummary struct {
	Succeeded int
	Failed    int
	Bytes     int
}

func (s *ResultSummary) add(r ConversionResult) {
	if r.Err != nil {
		s.Failed++
		return
	}
	s.Succeeded++
	s.Bytes += r.Size
}

// printResults outputs conversion results. Failures always go to stderr;
// quiet suppresses everything else.
func printResults(results []ConversionResult, quiet, verbose bool, env *Environment) ResultSummary {
	var summary ResultSummary
	out := newStyles(env.Stdout)
	errOut := newStyles(env.Stderr)

	for _, r := range results {
		summary.add(r)
		if r.Err != nil {
			fmt.Fprintf(env.Stderr, "%s %s: %v%s\n", errOut.failure.Render("FAILED"), r.InputPath, r.Err, hintFor(r.Err))
			continue
		}

		if quiet {
			continue
		}

		if verbose {
			fmt.Fprintf(env.Stdout, "%s -> %s %s\n", r.InputPath, r.OutputPath,
				out.dim.Render(fmt.Sprintf("(%s, %v)", humanize.Bytes(uint64(r.Size)), r.Duration.Round(time.Millisecond))))
		} else {
			fmt.Fprintf(env.Stdout, "%s %s\n", out.success.Render("Created"), r.OutputPath)
		}
	}

	if !quiet && len(results) > 1 {
		fmt.Fprintf(env.Stdout, "\n%s, %s %s\n",
			out.success.Render(fmt.Sprintf("%d succeeded", summary.Succeeded)),
			failedStyle(out, summary.Failed).Render(fmt.Sprintf("%d failed", summary.Failed)),
			out.dim.Render("("+humanize.Bytes(uint64(summary.Bytes))+" written)"))
	}

	return summary
}
