package md2docx

import "time"

// Option configures a Converter.
type Option func(*Converter)

// converterConfig holds settings resolved by NewConverter.
type converterConfig struct {
	theme        *Theme
	themeName    string
	assetPath    string
	previewStyle string
	now          func() time.Time
	newID        func() string
}

// WithTheme sets the theme directly. It takes precedence over
// WithThemeName.
func WithTheme(t *Theme) Option {
	return func(c *Converter) {
		c.cfg.theme = t
	}
}

// WithThemeName selects a theme preset by name, or a YAML theme file when
// the value contains a path separator.
func WithThemeName(name string) Option {
	return func(c *Converter) {
		c.cfg.themeName = name
	}
}

// WithAssetPath sets a directory whose themes/ subdirectory overrides the
// built-in presets. Ignored when WithAssetLoader is also given.
func WithAssetPath(path string) Option {
	return func(c *Converter) {
		c.cfg.assetPath = path
	}
}

// WithAssetLoader sets the loader used to resolve theme names.
func WithAssetLoader(loader AssetLoader) Option {
	return func(c *Converter) {
		c.assetLoader = loader
	}
}

// WithRenderer replaces the .docx renderer. Input.Page is ignored by
// custom renderers.
func WithRenderer(r Renderer) Option {
	return func(c *Converter) {
		c.renderer = r
	}
}

// WithExtractor replaces the package reader used by PackageToMarkdown.
func WithExtractor(e Extractor) Option {
	return func(c *Converter) {
		c.extractor = e
	}
}

// WithIDGenerator sets the source of the package identifier stored in the
// document properties. Defaults to random UUIDs.
func WithIDGenerator(newID func() string) Option {
	return func(c *Converter) {
		c.cfg.newID = newID
	}
}

// WithClock sets the time source for the package creation timestamps.
func WithClock(now func() time.Time) Option {
	return func(c *Converter) {
		c.cfg.now = now
	}
}

// WithPreviewStyle sets the chroma style of the HTML preview's code
// blocks. Defaults to the theme's highlight style.
func WithPreviewStyle(name string) Option {
	return func(c *Converter) {
		c.cfg.previewStyle = name
	}
}
