package main

import (
	"errors"
	"fmt"
	"os"

	flag "github.com/spf13/pflag"

	md2docx "github.com/alnah/go-md2docx"
	"github.com/alnah/go-md2docx/internal/config"
	"github.com/alnah/go-md2docx/internal/hints"
)

// Exit codes for md2docx CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Successful conversion
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, or validation
	ExitIO      = 3 // File not found, permission denied, unreadable input
)

// ErrInvalidFlags wraps pflag parse errors so they map to ExitUsage.
var ErrInvalidFlags = errors.New("invalid flags")

// wrapFlagError tags a flag parse error as a usage error. ErrHelp passes
// through unchanged.
func wrapFlagError(err error) error {
	if err == nil || errors.Is(err, flag.ErrHelp) {
		return err
	}
	return fmt.Errorf("%w: %v", ErrInvalidFlags, err)
}

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrNoInput) ||
		errors.Is(err, ErrReadInput) ||
		errors.Is(err, ErrWriteOutput) ||
		errors.Is(err, md2docx.ErrInvalidPackage) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, ErrInvalidFlags) ||
		errors.Is(err, ErrUnknownCommand) ||
		errors.Is(err, ErrInvalidExtension) ||
		errors.Is(err, ErrInvalidWorkerCount) ||
		errors.Is(err, ErrOutputConflict) ||
		errors.Is(err, ErrUnsupportedShell) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, md2docx.ErrInvalidFormat) ||
		errors.Is(err, md2docx.ErrInvalidPageSize) ||
		errors.Is(err, md2docx.ErrInvalidOrientation) ||
		errors.Is(err, md2docx.ErrInvalidMargin) ||
		errors.Is(err, md2docx.ErrThemeNotFound) ||
		errors.Is(err, md2docx.ErrInvalidTheme) ||
		errors.Is(err, md2docx.ErrInvalidAssetPath) {
		return ExitUsage
	}

	return ExitGeneral
}

// pathError remembers the file or config name an error is about so the
// hint can name it.
type pathError struct {
	path string
	err  error
}

func (e *pathError) Error() string { return e.err.Error() }
func (e *pathError) Unwrap() error { return e.err }

// hintFor returns an actionable hint for well-known errors, or "".
func hintFor(err error) string {
	var pe *pathError
	hasPath := errors.As(err, &pe)

	switch {
	case err == nil:
		return ""
	case errors.Is(err, config.ErrConfigNotFound):
		if hasPath {
			return hints.ForConfigNotFound(config.SearchPaths(pe.path))
		}
		return hints.ForConfigNotFound(nil)
	case errors.Is(err, md2docx.ErrThemeNotFound):
		return hints.ForThemeNotFound(md2docx.ThemeNames())
	case errors.Is(err, md2docx.ErrInvalidPackage) && hasPath:
		return hints.ForInvalidPackage(pe.path)
	case errors.Is(err, ErrInvalidExtension):
		return hints.ForUnsupportedExtension(supportedExtensions)
	case errors.Is(err, ErrInvalidWorkerCount):
		return hints.ForWorkerCount(md2docx.MaxPoolSize)
	case errors.Is(err, ErrWriteOutput):
		return hints.ForOutputDirectory()
	}
	return ""
}
