package md2docx

import "errors"

// Sentinel errors for library operations.
var (
	ErrRenderFailure  = errors.New("document rendering failed")
	ErrInvalidPackage = errors.New("not a readable .docx package")
	ErrHTMLConversion = errors.New("HTML conversion failed")

	// ErrUnsupportedInput is reserved. Parsing is total, so no input is
	// rejected today.
	ErrUnsupportedInput = errors.New("unsupported input")

	// Input validation errors.
	ErrInvalidFormat = errors.New("invalid format")

	// Page settings validation errors.
	ErrInvalidPageSize    = errors.New("invalid page size")
	ErrInvalidOrientation = errors.New("invalid orientation")
	ErrInvalidMargin      = errors.New("invalid margin")

	// Theme and asset loading errors.
	ErrThemeNotFound    = errors.New("theme not found")
	ErrInvalidTheme     = errors.New("invalid theme")
	ErrInvalidAssetPath = errors.New("invalid asset path")
)
