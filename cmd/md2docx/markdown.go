package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	md2docx "github.com/alnah/go-md2docx"
	"github.com/alnah/go-md2docx/internal/fileutil"
)

// runMarkdownCmd prints the normalized Markdown of a .docx package or an
// HTML/Markdown file.
func runMarkdownCmd(args []string, env *Environment) error {
	flags, positional, err := parseMarkdownFlags(args, env.Stderr)
	if err != nil {
		return err
	}
	if len(positional) == 0 {
		return ErrNoInput
	}

	path := positional[0]
	md, err := markdownFor(path)
	if err != nil {
		return err
	}
	if md != "" {
		md += "\n"
	}

	if flags.output == "" {
		_, err := fmt.Fprint(env.Stdout, md)
		return err
	}
	if err := fileutil.WriteFileAtomic(flags.output, []byte(md), filePermissions); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteOutput, err)
	}
	return nil
}

// markdownFor reads path and returns its normalized Markdown. Packages go
// through extraction first; legacy .doc files are handed to the extractor
// too so the failure carries the .doc hint.
func markdownFor(path string) (string, error) {
	ext := strings.ToLower(filepath.Ext(path))
	isPackage := ext == docxExt || ext == ".doc"
	if !isPackage && !isSupportedSource(path) {
		return "", fmt.Errorf("%w: %q", ErrInvalidExtension, filepath.Ext(path))
	}

	content, err := os.ReadFile(path) // #nosec G304 -- user-provided path
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrReadInput, err)
	}

	if !isPackage {
		return md2docx.ToNormalizedMarkdown(string(content)), nil
	}

	markup, err := md2docx.ExtractPlainMarkup(content)
	if err != nil {
		return "", &pathError{path: path, err: fmt.Errorf("reading %s: %w", path, err)}
	}
	return md2docx.ToNormalizedMarkdown(markup), nil
}
