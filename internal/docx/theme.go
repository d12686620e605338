package docx

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/alecthomas/chroma/v2/styles"

	"github.com/alnah/go-md2docx/internal/markdown"
)

// Spacing is paragraph spacing in twentieths of a point.
type Spacing struct {
	Before int
	After  int
}

// HeadingStyle is the presentation of one heading level.
type HeadingStyle struct {
	Size    int    // half-points
	Color   string // RRGGBB
	Spacing Spacing
}

// PageSize is a page geometry in twentieths of a point. Width and Height
// are as laid out; Landscape only sets the orientation flag Word shows.
type PageSize struct {
	Width     int
	Height    int
	Margin    int
	Landscape bool
}

// Rotated returns the page turned to landscape.
func (p PageSize) Rotated() PageSize {
	return PageSize{Width: p.Height, Height: p.Width, Margin: p.Margin, Landscape: true}
}

// Standard page sizes with one-inch margins.
var PageSizes = map[string]PageSize{
	"letter": {Width: 12240, Height: 15840, Margin: 1440},
	"a4":     {Width: 11906, Height: 16838, Margin: 1440},
	"legal":  {Width: 12240, Height: 20160, Margin: 1440},
}

// Theme is the presentation policy table. Spacing is keyed by block kind
// and, for headings, by level.
type Theme struct {
	BodyFont    string
	HeadingFont string
	CodeFont    string
	BodySize    int // half-points
	CodeSize    int // half-points
	TextColor   string
	LinkColor   string

	Headings [6]HeadingStyle
	Blocks   map[markdown.Kind]Spacing

	CodeShading        string
	TableHeaderShading string
	TableBorderColor   string
	QuoteBorderColor   string
	RuleColor          string

	// Highlight names a chroma style used to color code blocks. Empty
	// disables coloring.
	Highlight string

	Page PageSize

	// SpacingScale multiplies every spacing value. Zero means 1.
	SpacingScale float64
}

// DefaultTheme returns the built-in presentation table.
func DefaultTheme() Theme {
	return Theme{
		BodyFont:    "Calibri",
		HeadingFont: "Calibri Light",
		CodeFont:    "Consolas",
		BodySize:    22,
		CodeSize:    20,
		TextColor:   "1F2328",
		LinkColor:   "0563C1",
		Headings: [6]HeadingStyle{
			{Size: 40, Color: "1F3864", Spacing: Spacing{Before: 480, After: 240}},
			{Size: 32, Color: "2F5496", Spacing: Spacing{Before: 360, After: 160}},
			{Size: 28, Color: "2F5496", Spacing: Spacing{Before: 280, After: 120}},
			{Size: 24, Color: "2F5496", Spacing: Spacing{Before: 240, After: 120}},
			{Size: 22, Color: "2F5496", Spacing: Spacing{Before: 200, After: 80}},
			{Size: 22, Color: "404040", Spacing: Spacing{Before: 200, After: 80}},
		},
		Blocks: map[markdown.Kind]Spacing{
			markdown.KindParagraph: {Before: 0, After: 120},
			markdown.KindListItem:  {Before: 0, After: 60},
			markdown.KindCodeBlock: {Before: 0, After: 0},
			markdown.KindTable:     {Before: 40, After: 40},
			markdown.KindRule:      {Before: 120, After: 120},
			markdown.KindBlank:     {Before: 0, After: 0},
			markdown.KindQuote:     {Before: 60, After: 60},
		},
		CodeShading:        "F6F8FA",
		TableHeaderShading: "D9E2F3",
		TableBorderColor:   "A6A6A6",
		QuoteBorderColor:   "8EAADB",
		RuleColor:          "BFBFBF",
		Highlight:          "github",
		Page:               PageSizes["letter"],
		SpacingScale:       1,
	}
}

var hexColor = regexp.MustCompile(`^[0-9A-Fa-f]{6}$`)

// Validate checks fonts, sizes, colors, page geometry and the highlight
// style name.
func (t Theme) Validate() error {
	for name, font := range map[string]string{"body font": t.BodyFont, "heading font": t.HeadingFont, "code font": t.CodeFont} {
		if strings.TrimSpace(font) == "" {
			return fmt.Errorf("%w: %s is empty", ErrInvalidTheme, name)
		}
	}
	if t.BodySize <= 0 || t.CodeSize <= 0 {
		return fmt.Errorf("%w: font sizes must be positive", ErrInvalidTheme)
	}
	colors := map[string]string{
		"text color":           t.TextColor,
		"link color":           t.LinkColor,
		"code shading":         t.CodeShading,
		"table header shading": t.TableHeaderShading,
		"table border color":   t.TableBorderColor,
		"quote border color":   t.QuoteBorderColor,
		"rule color":           t.RuleColor,
	}
	for i, h := range t.Headings {
		if h.Size <= 0 {
			return fmt.Errorf("%w: heading %d size must be positive", ErrInvalidTheme, i+1)
		}
		colors[fmt.Sprintf("heading %d color", i+1)] = h.Color
	}
	for name, c := range colors {
		if !hexColor.MatchString(c) {
			return fmt.Errorf("%w: %s %q is not RRGGBB", ErrInvalidTheme, name, c)
		}
	}
	if t.Page.Width <= 0 || t.Page.Height <= 0 || t.Page.Margin < 0 || 2*t.Page.Margin >= t.Page.Width {
		return fmt.Errorf("%w: page %dx%d with margin %d", ErrInvalidTheme, t.Page.Width, t.Page.Height, t.Page.Margin)
	}
	if t.SpacingScale < 0 {
		return fmt.Errorf("%w: spacing scale %v is negative", ErrInvalidTheme, t.SpacingScale)
	}
	if t.Highlight != "" {
		if _, ok := styles.Registry[t.Highlight]; !ok {
			return fmt.Errorf("%w: unknown highlight style %q", ErrInvalidTheme, t.Highlight)
		}
	}
	return nil
}

// BlockSpacing returns the scaled spacing for a block kind.
func (t Theme) BlockSpacing(kind markdown.Kind) Spacing {
	return t.scale(t.Blocks[kind])
}

// HeadingSpacing returns the scaled spacing for a heading level, 1 to 6.
func (t Theme) HeadingSpacing(level int) Spacing {
	return t.scale(t.Headings[clampLevel(level)-1].Spacing)
}

func (t Theme) scale(s Spacing) Spacing {
	if t.SpacingScale == 0 || t.SpacingScale == 1 {
		return s
	}
	return Spacing{
		Before: int(float64(s.Before) * t.SpacingScale),
		After:  int(float64(s.After) * t.SpacingScale),
	}
}

// contentWidth is the usable text width in twentieths of a point.
func (t Theme) contentWidth() int {
	return t.Page.Width - 2*t.Page.Margin
}

func clampLevel(level int) int {
	return min(6, max(1, level))
}
