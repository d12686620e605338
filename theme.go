package md2docx

import (
	"fmt"
	"math"
	"strings"

	"github.com/alnah/go-md2docx/internal/docx"
	"github.com/alnah/go-md2docx/internal/markdown"
	"github.com/alnah/go-md2docx/internal/yamlutil"
)

// Theme is the presentation table applied to every rendered document.
// Font sizes and spacing are in points, page margins in inches, colors in
// "#RRGGBB" form. Themes are usually loaded from YAML with ParseTheme.
type Theme struct {
	Name      string       `yaml:"name"`
	Fonts     ThemeFonts   `yaml:"fonts"`
	Sizes     ThemeSizes   `yaml:"sizes"`
	Colors    ThemeColors  `yaml:"colors"`
	Headings  Headings     `yaml:"headings"`
	Spacing   BlockSpacing `yaml:"spacing"`
	Highlight string       `yaml:"highlight"` // chroma style name; "" or "none" disables
	Page      PageSettings `yaml:"page"`
}

// ThemeFonts names the font families.
type ThemeFonts struct {
	Body    string `yaml:"body"`
	Heading string `yaml:"heading"`
	Code    string `yaml:"code"`
}

// ThemeSizes holds font sizes in points.
type ThemeSizes struct {
	Body float64 `yaml:"body"`
	Code float64 `yaml:"code"`
}

// ThemeColors holds text, border and shading colors.
type ThemeColors struct {
	Text        string `yaml:"text"`
	Link        string `yaml:"link"`
	CodeShading string `yaml:"codeShading"`
	TableHeader string `yaml:"tableHeader"`
	TableBorder string `yaml:"tableBorder"`
	QuoteBorder string `yaml:"quoteBorder"`
	Rule        string `yaml:"rule"`
}

// HeadingTheme is the presentation of one heading level.
type HeadingTheme struct {
	Size   float64 `yaml:"size"`
	Color  string  `yaml:"color"`
	Before float64 `yaml:"before"`
	After  float64 `yaml:"after"`
}

// Headings holds one HeadingTheme per level.
type Headings struct {
	H1 HeadingTheme `yaml:"h1"`
	H2 HeadingTheme `yaml:"h2"`
	H3 HeadingTheme `yaml:"h3"`
	H4 HeadingTheme `yaml:"h4"`
	H5 HeadingTheme `yaml:"h5"`
	H6 HeadingTheme `yaml:"h6"`
}

// Spacing is the space before and after a paragraph, in points.
type Spacing struct {
	Before float64 `yaml:"before"`
	After  float64 `yaml:"after"`
}

// BlockSpacing holds the spacing of each block kind. Scale multiplies
// every value, headings included.
type BlockSpacing struct {
	Scale     float64 `yaml:"scale"`
	Paragraph Spacing `yaml:"paragraph"`
	ListItem  Spacing `yaml:"listItem"`
	CodeBlock Spacing `yaml:"codeBlock"`
	Table     Spacing `yaml:"table"`
	Rule      Spacing `yaml:"rule"`
	Blank     Spacing `yaml:"blank"`
	Quote     Spacing `yaml:"quote"`
}

// DefaultTheme returns the built-in "default" theme.
func DefaultTheme() *Theme {
	return &Theme{
		Name: DefaultThemeName,
		Fonts: ThemeFonts{
			Body:    "Calibri",
			Heading: "Calibri Light",
			Code:    "Consolas",
		},
		Sizes: ThemeSizes{Body: 11, Code: 10},
		Colors: ThemeColors{
			Text:        "#1F2328",
			Link:        "#0563C1",
			CodeShading: "#F6F8FA",
			TableHeader: "#D9E2F3",
			TableBorder: "#A6A6A6",
			QuoteBorder: "#8EAADB",
			Rule:        "#BFBFBF",
		},
		Headings: Headings{
			H1: HeadingTheme{Size: 20, Color: "#1F3864", Before: 24, After: 12},
			H2: HeadingTheme{Size: 16, Color: "#2F5496", Before: 18, After: 8},
			H3: HeadingTheme{Size: 14, Color: "#2F5496", Before: 14, After: 6},
			H4: HeadingTheme{Size: 12, Color: "#2F5496", Before: 12, After: 6},
			H5: HeadingTheme{Size: 11, Color: "#2F5496", Before: 10, After: 4},
			H6: HeadingTheme{Size: 11, Color: "#404040", Before: 10, After: 4},
		},
		Spacing: BlockSpacing{
			Scale:     1,
			Paragraph: Spacing{Before: 0, After: 6},
			ListItem:  Spacing{Before: 0, After: 3},
			CodeBlock: Spacing{Before: 0, After: 0},
			Table:     Spacing{Before: 2, After: 2},
			Rule:      Spacing{Before: 6, After: 6},
			Blank:     Spacing{Before: 0, After: 0},
			Quote:     Spacing{Before: 3, After: 3},
		},
		Highlight: "github",
		Page:      *DefaultPageSettings(),
	}
}

// ParseTheme decodes a YAML theme. Values missing from data keep their
// DefaultTheme value; unknown keys are rejected.
func ParseTheme(data []byte) (*Theme, error) {
	t := DefaultTheme()
	t.Name = ""
	if err := yamlutil.UnmarshalStrict(data, t); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTheme, err)
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

// MarshalTheme encodes t as YAML accepted by ParseTheme.
func MarshalTheme(t *Theme) ([]byte, error) {
	return yamlutil.Marshal(t)
}

// Validate checks fonts, sizes, colors, spacing, page and highlight style.
func (t *Theme) Validate() error {
	_, err := t.toDocx(nil)
	return err
}

// levels returns the heading themes in level order.
func (h Headings) levels() [6]HeadingTheme {
	return [6]HeadingTheme{h.H1, h.H2, h.H3, h.H4, h.H5, h.H6}
}

// toDocx converts t to renderer units. A non-nil page overrides t.Page.
func (t *Theme) toDocx(page *PageSettings) (docx.Theme, error) {
	if t == nil {
		return docx.Theme{}, fmt.Errorf("%w: nil theme", ErrInvalidTheme)
	}
	if page == nil {
		page = &t.Page
	}
	geometry, err := page.geometry()
	if err != nil {
		return docx.Theme{}, fmt.Errorf("%w: %w", ErrInvalidTheme, err)
	}

	blocks := map[string]Spacing{
		"paragraph":  t.Spacing.Paragraph,
		"list item":  t.Spacing.ListItem,
		"code block": t.Spacing.CodeBlock,
		"table":      t.Spacing.Table,
		"rule":       t.Spacing.Rule,
		"blank":      t.Spacing.Blank,
		"quote":      t.Spacing.Quote,
	}
	for i, h := range t.Headings.levels() {
		blocks[fmt.Sprintf("heading %d", i+1)] = Spacing{Before: h.Before, After: h.After}
	}
	for name, s := range blocks {
		if s.Before < 0 || s.After < 0 {
			return docx.Theme{}, fmt.Errorf("%w: %s spacing is negative", ErrInvalidTheme, name)
		}
	}

	highlight := t.Highlight
	if strings.EqualFold(highlight, "none") {
		highlight = ""
	}

	dt := docx.Theme{
		BodyFont:    t.Fonts.Body,
		HeadingFont: t.Fonts.Heading,
		CodeFont:    t.Fonts.Code,
		BodySize:    halfPoints(t.Sizes.Body),
		CodeSize:    halfPoints(t.Sizes.Code),
		TextColor:   hexColor(t.Colors.Text),
		LinkColor:   hexColor(t.Colors.Link),
		Blocks: map[markdown.Kind]docx.Spacing{
			markdown.KindParagraph: twipSpacing(t.Spacing.Paragraph),
			markdown.KindListItem:  twipSpacing(t.Spacing.ListItem),
			markdown.KindCodeBlock: twipSpacing(t.Spacing.CodeBlock),
			markdown.KindTable:     twipSpacing(t.Spacing.Table),
			markdown.KindRule:      twipSpacing(t.Spacing.Rule),
			markdown.KindBlank:     twipSpacing(t.Spacing.Blank),
			markdown.KindQuote:     twipSpacing(t.Spacing.Quote),
		},
		CodeShading:        hexColor(t.Colors.CodeShading),
		TableHeaderShading: hexColor(t.Colors.TableHeader),
		TableBorderColor:   hexColor(t.Colors.TableBorder),
		QuoteBorderColor:   hexColor(t.Colors.QuoteBorder),
		RuleColor:          hexColor(t.Colors.Rule),
		Highlight:          highlight,
		Page:               geometry,
		SpacingScale:       t.Spacing.Scale,
	}
	for i, h := range t.Headings.levels() {
		dt.Headings[i] = docx.HeadingStyle{
			Size:    halfPoints(h.Size),
			Color:   hexColor(h.Color),
			Spacing: twipSpacing(Spacing{Before: h.Before, After: h.After}),
		}
	}

	if err := dt.Validate(); err != nil {
		return docx.Theme{}, wrapError(ErrInvalidTheme, err)
	}
	return dt, nil
}

// geometry converts page settings to renderer units.
func (p *PageSettings) geometry() (docx.PageSize, error) {
	if err := p.Validate(); err != nil {
		return docx.PageSize{}, err
	}
	size := docx.PageSizes[strings.ToLower(p.Size)]
	size.Margin = int(math.Round(p.Margin * twipsPerInch))
	if strings.EqualFold(p.Orientation, OrientationLandscape) {
		size = size.Rotated()
	}
	return size, nil
}

// Unit conversions to the values WordprocessingML stores.
const (
	halfPointsPerPoint = 2
	twipsPerPoint      = 20
	twipsPerInch       = 1440
)

func halfPoints(pt float64) int {
	return int(math.Round(pt * halfPointsPerPoint))
}

func twipSpacing(s Spacing) docx.Spacing {
	return docx.Spacing{
		Before: int(math.Round(s.Before * twipsPerPoint)),
		After:  int(math.Round(s.After * twipsPerPoint)),
	}
}

// hexColor strips the leading "#" accepted in theme files.
func hexColor(c string) string {
	return strings.TrimPrefix(strings.TrimSpace(c), "#")
}
