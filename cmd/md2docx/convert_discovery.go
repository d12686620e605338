package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	md2docx "github.com/alnah/go-md2docx"
	"github.com/alnah/go-md2docx/internal/fileutil"
)

// Sentinel errors for file discovery.
var (
	ErrInvalidExtension   = errors.New("unsupported file extension")
	ErrInvalidWorkerCount = errors.New("invalid worker count")
	ErrOutputConflict     = errors.New("output path conflict")
)

const (
	docxExt    = ".docx"
	previewExt = ".preview.html"
)

// supportedExtensions are the source files convert accepts.
var supportedExtensions = []string{".md", ".markdown", ".html", ".htm", ".txt"}

// FileToConvert represents a single file to process.
type FileToConvert struct {
	InputPath  string
	OutputPath string
}

// discoverFiles finds all source files to convert under inputPath.
// Two sources mapping to the same output (notes.md and notes.html) are
// rejected rather than silently overwriting each other.
func discoverFiles(inputPath, outputDir string) ([]FileToConvert, error) {
	info, err := os.Stat(inputPath)
	if err != nil {
		return nil, err
	}

	if !info.IsDir() {
		if err := validateSourceExtension(inputPath); err != nil {
			return nil, err
		}
		outPath := resolveOutputPath(inputPath, outputDir, "")
		return []FileToConvert{{InputPath: inputPath, OutputPath: outPath}}, nil
	}

	if isDocxPath(outputDir) {
		return nil, fmt.Errorf("%w: --output %q names a file but %s is a directory",
			ErrOutputConflict, outputDir, inputPath)
	}

	var files []FileToConvert
	seen := make(map[string]string)
	err = filepath.WalkDir(inputPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("scanning %s: %w", path, err)
		}
		if d.IsDir() || !isSupportedSource(path) {
			return nil
		}
		outPath := resolveOutputPath(path, outputDir, inputPath)
		if prev, ok := seen[outPath]; ok {
			return fmt.Errorf("%w: %s and %s both produce %s", ErrOutputConflict, prev, path, outPath)
		}
		seen[outPath] = path
		files = append(files, FileToConvert{InputPath: path, OutputPath: outPath})
		return nil
	})

	return files, err
}

// resolveOutputPath determines the .docx output path for a source file.
// With a base input directory, the relative layout is mirrored under
// outputDir.
func resolveOutputPath(inputPath, outputDir, baseInputDir string) string {
	name := fileutil.ReplaceExt(filepath.Base(inputPath), docxExt)

	if outputDir == "" {
		return filepath.Join(filepath.Dir(inputPath), name)
	}

	if isDocxPath(outputDir) {
		return outputDir
	}

	if baseInputDir != "" {
		relPath, err := filepath.Rel(baseInputDir, inputPath)
		if err == nil {
			relDir := filepath.Dir(relPath)
			return filepath.Join(outputDir, relDir, name)
		}
	}

	return filepath.Join(outputDir, name)
}

// isSupportedSource reports whether the extension is a convertible source.
func isSupportedSource(path string) bool {
	return slices.Contains(supportedExtensions, strings.ToLower(filepath.Ext(path)))
}

// validateSourceExtension checks that the file is a convertible source.
func validateSourceExtension(path string) error {
	if !isSupportedSource(path) {
		return fmt.Errorf("%w: %q", ErrInvalidExtension, filepath.Ext(path))
	}
	return nil
}

// isDocxPath reports whether path names a .docx file.
func isDocxPath(path string) bool {
	return strings.EqualFold(filepath.Ext(path), docxExt)
}

// formatFor picks the source format from the file extension. Plain .txt
// files are detected from their content.
func formatFor(path string) md2docx.Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm":
		return md2docx.FormatHTML
	case ".md", ".markdown":
		return md2docx.FormatMarkdown
	default:
		return md2docx.FormatAuto
	}
}

// validateWorkers checks that the worker count is within valid bounds.
func validateWorkers(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: %d (must be >= 0, 0 means auto)", ErrInvalidWorkerCount, n)
	}
	if n > md2docx.MaxPoolSize {
		return fmt.Errorf("%w: %d (maximum is %d)", ErrInvalidWorkerCount, n, md2docx.MaxPoolSize)
	}
	return nil
}

// previewOutputPath returns the HTML preview path for a .docx path. The
// suffix keeps an .html source from being overwritten by its own preview.
func previewOutputPath(docxPath string) string {
	return fileutil.ReplaceExt(docxPath, previewExt)
}
