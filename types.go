package md2docx

import (
	"fmt"
	"strings"
)

// Format selects how Input.Source is parsed.
type Format int

// Source formats.
const (
	FormatAuto     Format = iota // detect from content
	FormatMarkdown               // parse as Markdown
	FormatHTML                   // normalize HTML to Markdown first
)

// String returns the lowercase format name.
func (f Format) String() string {
	switch f {
	case FormatAuto:
		return "auto"
	case FormatMarkdown:
		return "markdown"
	case FormatHTML:
		return "html"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// ParseFormat returns the Format named by s (case-insensitive).
// The empty string means FormatAuto.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return FormatAuto, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	case "html", "htm":
		return FormatHTML, nil
	default:
		return FormatAuto, fmt.Errorf("%w: %q (must be auto, markdown, or html)", ErrInvalidFormat, s)
	}
}

// Validate checks that f is a known format.
func (f Format) Validate() error {
	if f < FormatAuto || f > FormatHTML {
		return fmt.Errorf("%w: %s", ErrInvalidFormat, f)
	}
	return nil
}

// Page size constants.
const (
	PageSizeLetter = "letter"
	PageSizeA4     = "a4"
	PageSizeLegal  = "legal"
)

// Orientation constants.
const (
	OrientationPortrait  = "portrait"
	OrientationLandscape = "landscape"
)

// Margin bounds in inches.
const (
	MinMargin     = 0.25
	MaxMargin     = 3.0
	DefaultMargin = 1.0
)

// PageSettings configures page dimensions.
type PageSettings struct {
	Size        string  `yaml:"size"`        // "letter", "a4", "legal"
	Orientation string  `yaml:"orientation"` // "portrait", "landscape"
	Margin      float64 `yaml:"margin"`      // inches, applied to all sides
}

// DefaultPageSettings returns page settings with default values.
func DefaultPageSettings() *PageSettings {
	return &PageSettings{
		Size:        PageSizeLetter,
		Orientation: OrientationPortrait,
		Margin:      DefaultMargin,
	}
}

// Validate checks that page settings are valid.
// Returns nil if p is nil (nil means use the theme's page).
// Does not mutate - uses case-insensitive comparison.
func (p *PageSettings) Validate() error {
	if p == nil {
		return nil
	}

	if !isValidPageSize(p.Size) {
		return fmt.Errorf("%w: %q", ErrInvalidPageSize, p.Size)
	}

	if !isValidOrientation(p.Orientation) {
		return fmt.Errorf("%w: %q", ErrInvalidOrientation, p.Orientation)
	}

	if p.Margin < MinMargin || p.Margin > MaxMargin {
		return fmt.Errorf("%w: %.2f (must be between %.2f and %.2f)", ErrInvalidMargin, p.Margin, MinMargin, MaxMargin)
	}

	return nil
}

// isValidPageSize checks if size is a known page size (case-insensitive).
func isValidPageSize(size string) bool {
	switch strings.ToLower(size) {
	case PageSizeLetter, PageSizeA4, PageSizeLegal:
		return true
	}
	return false
}

// isValidOrientation checks if orientation is valid (case-insensitive).
// Empty means portrait.
func isValidOrientation(orientation string) bool {
	switch strings.ToLower(orientation) {
	case "", OrientationPortrait, OrientationLandscape:
		return true
	}
	return false
}

// Input contains conversion parameters.
type Input struct {
	Source string        // Markdown or HTML text; empty yields an empty document
	Title  string        // Document title, rendered first and stored in the package properties
	Author string        // Package author property (optional)
	Format Format        // Source format (zero value detects it)
	Page   *PageSettings // Page settings (optional, nil = theme's page)
	HTML   bool          // Also render an HTML preview
}

// Validate checks the optional fields of an Input.
func (in Input) Validate() error {
	if err := in.Format.Validate(); err != nil {
		return err
	}
	return in.Page.Validate()
}

// ConvertResult holds the outputs of a conversion.
type ConvertResult struct {
	DOCX     []byte // .docx package
	Markdown string // normalized Markdown the package was built from
	HTML     []byte // standalone preview page, nil unless Input.HTML
}
