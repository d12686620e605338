package assets

import "errors"

// Sentinel errors for preset lookups.
var (
	ErrThemeNotFound = errors.New("theme not found")
	ErrInvalidName   = errors.New("invalid theme name")
	ErrInvalidDir    = errors.New("invalid theme directory")
	ErrRead          = errors.New("failed to read theme")
)
