package md2docx

import (
	"errors"

	"github.com/alnah/go-md2docx/internal/assets"
)

// DefaultThemeName is the name of the built-in theme used when none is set.
const DefaultThemeName = assets.DefaultName

// AssetLoader resolves theme names to YAML presets. NewAssetLoader covers
// the built-in presets and a local override directory; pass another
// implementation to WithAssetLoader to serve presets from elsewhere.
type AssetLoader interface {
	// LoadTheme loads a theme's YAML source by name (without extension).
	// Returns ErrThemeNotFound if the theme doesn't exist.
	LoadTheme(name string) ([]byte, error)
}

// NewAssetLoader creates an AssetLoader for the given base path.
// If basePath is empty, returns a loader using only embedded assets.
// If basePath is set, basePath/themes/{name}.yaml (or .yml) shadows the
// built-in preset of the same name.
//
// Returns ErrInvalidAssetPath if basePath is set but not a directory.
func NewAssetLoader(basePath string) (AssetLoader, error) {
	stack, err := assets.Open(basePath)
	if err != nil {
		return nil, convertAssetError(err)
	}
	return stackLoader{stack: stack}, nil
}

// ThemeNames lists the built-in theme presets.
func ThemeNames() []string {
	return assets.Names()
}

// stackLoader exposes an internal preset stack with public errors.
type stackLoader struct {
	stack assets.Stack
}

func (l stackLoader) LoadTheme(name string) ([]byte, error) {
	data, err := l.stack.Theme(name)
	if err != nil {
		return nil, convertAssetError(err)
	}
	return data, nil
}

// convertAssetError maps internal preset errors to public errors. An
// invalid name can never match a preset, so it reads as not found.
func convertAssetError(err error) error {
	switch {
	case err == nil:
		return nil
	case isError(err, assets.ErrThemeNotFound), isError(err, assets.ErrInvalidName):
		return wrapError(ErrThemeNotFound, err)
	case isError(err, assets.ErrInvalidDir):
		return wrapError(ErrInvalidAssetPath, err)
	default:
		return err
	}
}

// isError checks if err wraps or equals target using errors.Is semantics.
func isError(err, target error) bool {
	return errors.Is(err, target)
}

// wrapError creates a new error that wraps the original with a public sentinel.
// The resulting error preserves the original message via Error() and supports
// errors.Is() matching against the public sentinel via Unwrap().
func wrapError(sentinel, original error) error {
	return &wrappedError{sentinel: sentinel, original: original}
}

type wrappedError struct {
	sentinel error
	original error
}

func (e *wrappedError) Error() string {
	return e.original.Error()
}

// Unwrap returns the public sentinel for errors.Is() matching.
// Internal errors are not exposed since they're in internal/ packages.
func (e *wrappedError) Unwrap() error {
	return e.sentinel
}
