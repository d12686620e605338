package main

// Notes:
// - exitCodeFor: we test every sentinel family, wrapped and unwrapped.
// - hintFor: we check which errors carry a hint, not the exact wording
//   (covered by the hints package).
// These are acceptable gaps: we test observable behavior, not implementation details.

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"testing"

	md2docx "github.com/alnah/go-md2docx"
	"github.com/alnah/go-md2docx/internal/config"
)

// ---------------------------------------------------------------------------
// TestExitCodeFor - Error to exit code mapping
// ---------------------------------------------------------------------------

func TestExitCodeFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "nil", err: nil, want: ExitSuccess},
		{name: "unexpected", err: errors.New("boom"), want: ExitGeneral},
		{name: "conversion failures", err: fmt.Errorf("%w: 1 of 2", ErrConversionFailed), want: ExitGeneral},
		{name: "cancelled", err: context.Canceled, want: ExitGeneral},

		{name: "missing file", err: fmt.Errorf("discovering files: %w", os.ErrNotExist), want: ExitIO},
		{name: "permission", err: os.ErrPermission, want: ExitIO},
		{name: "no input", err: ErrNoInput, want: ExitIO},
		{name: "read input", err: fmt.Errorf("%w: eof", ErrReadInput), want: ExitIO},
		{name: "write output", err: fmt.Errorf("%w: full", ErrWriteOutput), want: ExitIO},
		{name: "invalid package", err: &pathError{path: "a.docx", err: md2docx.ErrInvalidPackage}, want: ExitIO},

		{name: "invalid flags", err: fmt.Errorf("%w: --x", ErrInvalidFlags), want: ExitUsage},
		{name: "unknown command", err: ErrUnknownCommand, want: ExitUsage},
		{name: "extension", err: ErrInvalidExtension, want: ExitUsage},
		{name: "workers", err: ErrInvalidWorkerCount, want: ExitUsage},
		{name: "output conflict", err: ErrOutputConflict, want: ExitUsage},
		{name: "shell", err: ErrUnsupportedShell, want: ExitUsage},
		{name: "config not found", err: fmt.Errorf("loading config: %w", config.ErrConfigNotFound), want: ExitUsage},
		{name: "config parse", err: config.ErrConfigParse, want: ExitUsage},
		{name: "config value", err: config.ErrInvalidValue, want: ExitUsage},
		{name: "config length", err: config.ErrFieldTooLong, want: ExitUsage},
		{name: "empty config name", err: config.ErrEmptyConfigName, want: ExitUsage},
		{name: "format", err: md2docx.ErrInvalidFormat, want: ExitUsage},
		{name: "page size", err: md2docx.ErrInvalidPageSize, want: ExitUsage},
		{name: "orientation", err: md2docx.ErrInvalidOrientation, want: ExitUsage},
		{name: "margin", err: md2docx.ErrInvalidMargin, want: ExitUsage},
		{name: "theme not found", err: md2docx.ErrThemeNotFound, want: ExitUsage},
		{name: "invalid theme", err: md2docx.ErrInvalidTheme, want: ExitUsage},
		{name: "asset path", err: md2docx.ErrInvalidAssetPath, want: ExitUsage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := exitCodeFor(tt.err); got != tt.want {
				t.Errorf("exitCodeFor(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestHintFor - Actionable hints
// ---------------------------------------------------------------------------

func TestHintFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      error
		contains string
	}{
		{name: "nil", err: nil, contains: ""},
		{name: "plain error", err: errors.New("boom"), contains: ""},
		{
			name:     "config name lists search paths",
			err:      &pathError{path: "work", err: fmt.Errorf("loading config: %w", config.ErrConfigNotFound)},
			contains: "--config",
		},
		{name: "config path", err: config.ErrConfigNotFound, contains: "--config"},
		{name: "theme", err: md2docx.ErrThemeNotFound, contains: "available: "},
		{name: "legacy doc", err: &pathError{path: "old.doc", err: md2docx.ErrInvalidPackage}, contains: ".doc"},
		{name: "extension", err: ErrInvalidExtension, contains: ".markdown"},
		{name: "workers", err: ErrInvalidWorkerCount, contains: "--workers"},
		{name: "write", err: ErrWriteOutput, contains: "writable"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := hintFor(tt.err)
			if tt.contains == "" {
				if got != "" {
					t.Errorf("hintFor() = %q, want empty", got)
				}
				return
			}
			if !strings.Contains(got, tt.contains) {
				t.Errorf("hintFor() = %q, want it to contain %q", got, tt.contains)
			}
		})
	}
}

func TestPathError(t *testing.T) {
	t.Parallel()

	inner := fmt.Errorf("reading a.docx: %w", md2docx.ErrInvalidPackage)
	err := error(&pathError{path: "a.docx", err: inner})

	if err.Error() != inner.Error() {
		t.Errorf("Error() = %q, want %q", err.Error(), inner.Error())
	}
	if !errors.Is(err, md2docx.ErrInvalidPackage) {
		t.Error("pathError should unwrap to the inner error")
	}
}
