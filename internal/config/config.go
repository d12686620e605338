package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-md2docx/internal/fileutil"
	"github.com/alnah/go-md2docx/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// Field length limits.
const (
	MaxTitleLength       = 200
	MaxAuthorLength      = 100
	MaxPathLength        = 4096
	MaxNameLength        = 64 // theme name, same limit as asset names
	MaxHighlightLength   = 50
	MaxFormatLength      = 10
	MaxPageSizeLength    = 10 // "letter", "a4", "legal"
	MaxOrientationLength = 10 // "portrait", "landscape"
)

// Numeric ranges.
const (
	MinMargin       = 0.25
	MaxMargin       = 3.0
	MaxWorkers      = 8
	MaxSpacingScale = 4.0
)

// appDir is the directory under the user config dir searched for configs.
const appDir = "go-md2docx"

// Config holds all configuration for the md2docx CLI.
type Config struct {
	Input    InputConfig    `yaml:"input"`
	Output   OutputConfig   `yaml:"output"`
	Document DocumentConfig `yaml:"document"`
	Theme    ThemeConfig    `yaml:"theme"`
	Assets   AssetsConfig   `yaml:"assets"`
	Convert  ConvertConfig  `yaml:"convert"`
}

// InputConfig defines input source options.
type InputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // empty = must specify
}

// OutputConfig defines output destination options.
type OutputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // empty = next to the source
}

// DocumentConfig holds document metadata written to docProps/core.xml.
type DocumentConfig struct {
	Title  string `yaml:"title"`  // empty = no title heading
	Author string `yaml:"author"` // dc:creator
}

// ThemeConfig selects and tweaks the presentation theme.
type ThemeConfig struct {
	Name         string     `yaml:"name"`         // preset name or path to a YAML file
	Highlight    string     `yaml:"highlight"`    // chroma style, "none" disables
	SpacingScale float64    `yaml:"spacingScale"` // 0 = keep the theme's
	Page         PageConfig `yaml:"page"`
}

// PageConfig overrides the theme page geometry.
type PageConfig struct {
	Size        string  `yaml:"size"`
	Orientation string  `yaml:"orientation"`
	Margin      float64 `yaml:"margin"` // inches, 0 = keep the theme's
}

// IsZero reports whether no page field is set.
func (p PageConfig) IsZero() bool {
	return p.Size == "" && p.Orientation == "" && p.Margin == 0
}

// AssetsConfig defines asset loading options.
type AssetsConfig struct {
	BasePath string `yaml:"basePath"` // empty = embedded themes only
}

// ConvertConfig defines conversion behavior.
type ConvertConfig struct {
	Format  string `yaml:"format"`  // auto, markdown, html
	HTML    bool   `yaml:"html"`    // also write an .html preview
	Workers int    `yaml:"workers"` // 0 = auto
}

// Validate checks field lengths and value ranges.
// Called automatically by LoadConfig, but available for callers
// who construct Config manually.
func (c *Config) Validate() error {
	fields := []struct {
		name  string
		value string
		max   int
	}{
		{"input.defaultDir", c.Input.DefaultDir, MaxPathLength},
		{"output.defaultDir", c.Output.DefaultDir, MaxPathLength},
		{"document.title", c.Document.Title, MaxTitleLength},
		{"document.author", c.Document.Author, MaxAuthorLength},
		{"theme.highlight", c.Theme.Highlight, MaxHighlightLength},
		{"theme.page.size", c.Theme.Page.Size, MaxPageSizeLength},
		{"theme.page.orientation", c.Theme.Page.Orientation, MaxOrientationLength},
		{"assets.basePath", c.Assets.BasePath, MaxPathLength},
		{"convert.format", c.Convert.Format, MaxFormatLength},
	}
	for _, f := range fields {
		if err := validateFieldLength(f.name, f.value, f.max); err != nil {
			return err
		}
	}

	// A theme given as a path may be long; a preset name may not.
	themeMax := MaxNameLength
	if fileutil.IsFilePath(c.Theme.Name) {
		themeMax = MaxPathLength
	}
	if err := validateFieldLength("theme.name", c.Theme.Name, themeMax); err != nil {
		return err
	}

	if c.Theme.SpacingScale < 0 || c.Theme.SpacingScale > MaxSpacingScale {
		return fmt.Errorf("%w: theme.spacingScale must be between 0 and %.0f, got %.2f",
			ErrInvalidValue, MaxSpacingScale, c.Theme.SpacingScale)
	}

	if c.Theme.Page.Orientation != "" {
		switch strings.ToLower(c.Theme.Page.Orientation) {
		case "portrait", "landscape":
		default:
			return fmt.Errorf("%w: theme.page.orientation %q (must be portrait or landscape)",
				ErrInvalidValue, c.Theme.Page.Orientation)
		}
	}
	if m := c.Theme.Page.Margin; m != 0 && (m < MinMargin || m > MaxMargin) {
		return fmt.Errorf("%w: theme.page.margin must be between %.2f and %.1f inches, got %.2f",
			ErrInvalidValue, MinMargin, MaxMargin, m)
	}

	if c.Convert.Format != "" {
		switch strings.ToLower(c.Convert.Format) {
		case "auto", "markdown", "md", "html", "htm":
		default:
			return fmt.Errorf("%w: convert.format %q (must be auto, markdown, or html)",
				ErrInvalidValue, c.Convert.Format)
		}
	}
	if c.Convert.Workers < 0 || c.Convert.Workers > MaxWorkers {
		return fmt.Errorf("%w: convert.workers must be between 0 and %d, got %d",
			ErrInvalidValue, MaxWorkers, c.Convert.Workers)
	}

	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// DefaultConfig returns a neutral configuration: embedded default theme,
// automatic format detection and worker count.
func DefaultConfig() *Config {
	return &Config{
		Convert: ConvertConfig{Format: "auto"},
	}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if fileutil.IsFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yamlutil.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// SearchPaths lists the files LoadConfig tries for a config name, in
// order: .yaml then .yml in the current directory, then in the user config
// directory.
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}
	if userConfigDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(userConfigDir, appDir, name+ext))
		}
	}
	return paths
}

// resolveConfigPath returns the first existing search path for name.
func resolveConfigPath(name string) (string, error) {
	triedPaths := SearchPaths(name)
	for _, p := range triedPaths {
		if fileutil.FileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(triedPaths, ", "))
}
