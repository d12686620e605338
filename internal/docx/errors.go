package docx

import "errors"

// Sentinel errors.
var (
	ErrPackageWrite   = errors.New("writing package failed")
	ErrInvalidPackage = errors.New("not a readable word-processing package")
	ErrInvalidTheme   = errors.New("invalid theme")
)
