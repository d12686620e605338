package md2docx

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/alnah/go-md2docx/internal/docx"
	"github.com/alnah/go-md2docx/internal/fileutil"
	"github.com/alnah/go-md2docx/internal/markdown"
	"github.com/alnah/go-md2docx/internal/model"
	"github.com/alnah/go-md2docx/internal/pipeline"
)

// Compile-time interface implementation checks.
// These ensure implementations satisfy their interfaces at compile time,
// catching signature mismatches before runtime.
var (
	_ pipeline.MarkdownPreprocessor = (*pipeline.LinePreprocessor)(nil)
	_ pipeline.HTMLConverter        = (*pipeline.GoldmarkConverter)(nil)
	_ Renderer                      = (*docx.Renderer)(nil)
	_ Extractor                     = docx.Extractor{}
)

// Renderer serializes a document tree into package bytes.
type Renderer interface {
	Render(doc *Document) ([]byte, error)
}

// Extractor reads a package and returns its body as HTML markup.
type Extractor interface {
	Extract(pkg []byte) (string, error)
}

// Converter orchestrates the conversion pipeline. It is safe for
// concurrent use. Create with NewConverter.
type Converter struct {
	cfg            converterConfig
	theme          *Theme
	assetLoader    AssetLoader
	preprocessor   pipeline.MarkdownPreprocessor
	htmlConverter  pipeline.HTMLConverter
	renderer       Renderer
	customRenderer bool
	extractor      Extractor
}

// NewConverter creates a Converter with the default theme.
// Use options to customize behavior (e.g., WithThemeName, WithAssetPath).
// Returns error if the theme cannot be loaded or is invalid.
func NewConverter(opts ...Option) (*Converter, error) {
	c := &Converter{
		preprocessor: &pipeline.LinePreprocessor{},
		extractor:    docx.Extractor{},
	}

	for _, opt := range opts {
		opt(c)
	}

	// Handle WithAssetPath unless a loader was given directly
	if c.assetLoader == nil {
		loader, err := NewAssetLoader(c.cfg.assetPath)
		if err != nil {
			return nil, err
		}
		c.assetLoader = loader
	}

	if err := c.resolveTheme(); err != nil {
		return nil, err
	}

	// Create renderer if not injected
	if c.renderer != nil {
		c.customRenderer = true
	} else {
		r, err := c.newRenderer(nil)
		if err != nil {
			return nil, err
		}
		c.renderer = r
	}

	if c.htmlConverter == nil {
		c.htmlConverter = pipeline.NewGoldmarkConverter(c.previewStyle())
	}

	return c, nil
}

// Theme returns a copy of the converter's theme.
func (c *Converter) Theme() *Theme {
	t := *c.theme
	return &t
}

// Convert runs the full pipeline and returns the package and the
// normalized Markdown it was built from. The context is checked between
// stages. Recovers from internal panics to prevent crashes from
// propagating to callers.
func (c *Converter) Convert(ctx context.Context, input Input) (result *ConvertResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: internal error: %v", ErrRenderFailure, r)
		}
	}()

	if err := input.Validate(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Preprocess (byte order mark, line endings)
	source := c.preprocessor.PreprocessMarkdown(ctx, input.Source)
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	md := source
	if resolveFormat(input.Format, source) == FormatHTML {
		md = pipeline.NormalizeHTML(source)
	}

	doc := model.Build(input.Title, markdown.ParseBlocks(md))
	doc.Author = input.Author
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	renderer := c.renderer
	if input.Page != nil && !c.customRenderer {
		renderer, err = c.newRenderer(input.Page)
		if err != nil {
			return nil, err
		}
	}

	pkg, err := renderer.Render(doc)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRenderFailure, err)
	}

	res := &ConvertResult{
		DOCX:     pkg,
		Markdown: md,
	}

	if !input.HTML {
		return res, nil
	}

	page, err := c.htmlConverter.ToHTML(ctx, input.Title, md)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("converting to HTML: %w", wrapError(ErrHTMLConversion, err))
	}
	res.HTML = []byte(page)
	return res, nil
}

// PackageToMarkdown extracts the body of a .docx package and normalizes it
// to Markdown. Returns ErrInvalidPackage if pkg cannot be read.
func (c *Converter) PackageToMarkdown(pkg []byte) (string, error) {
	markup, err := c.extractor.Extract(pkg)
	if err != nil {
		return "", convertExtractError(err)
	}
	return ToNormalizedMarkdown(markup), nil
}

// resolveTheme loads the theme named by the options.
// Called during NewConverter after options are applied and the asset
// loader is configured.
func (c *Converter) resolveTheme() error {
	if c.cfg.theme != nil {
		if err := c.cfg.theme.Validate(); err != nil {
			return err
		}
		c.theme = c.cfg.theme
		return nil
	}

	name := c.cfg.themeName
	if name == "" {
		name = DefaultThemeName
	}

	var data []byte
	var err error
	if fileutil.IsFilePath(name) {
		data, err = os.ReadFile(name) // #nosec G304 -- user-provided path
		if err != nil {
			return fmt.Errorf("loading theme file %q: %w", name, err)
		}
	} else {
		data, err = c.assetLoader.LoadTheme(name)
		if err != nil {
			return fmt.Errorf("loading theme %q: %w", name, err)
		}
	}

	t, err := ParseTheme(data)
	if err != nil {
		return fmt.Errorf("parsing theme %q: %w", name, err)
	}
	if t.Name == "" {
		t.Name = name
	}
	c.theme = t
	return nil
}

// newRenderer builds a .docx renderer for the converter's theme. A non-nil
// page overrides the theme's page settings.
func (c *Converter) newRenderer(page *PageSettings) (*docx.Renderer, error) {
	dt, err := c.theme.toDocx(page)
	if err != nil {
		return nil, err
	}
	r, err := docx.NewRenderer(dt, docx.WithClock(c.cfg.now), docx.WithIDGenerator(c.cfg.newID))
	if err != nil {
		return nil, wrapError(ErrInvalidTheme, err)
	}
	return r, nil
}

// previewStyle mirrors the theme in the HTML preview. WithPreviewStyle
// overrides the code highlighting; a theme without highlighting falls
// back to the default preview style.
func (c *Converter) previewStyle() pipeline.PreviewStyle {
	t := c.theme
	style := pipeline.PreviewStyle{
		Highlight:   c.cfg.previewStyle,
		BodyFont:    t.Fonts.Body,
		HeadingFont: t.Fonts.Heading,
		CodeFont:    t.Fonts.Code,
		BodySize:    t.Sizes.Body,
		TextColor:   t.Colors.Text,
		LinkColor:   t.Colors.Link,
		CodeShading: t.Colors.CodeShading,
		TableBorder: t.Colors.TableBorder,
		QuoteBorder: t.Colors.QuoteBorder,
	}
	if style.Highlight == "" && t.Highlight != "none" {
		style.Highlight = t.Highlight
	}
	return style
}

// resolveFormat applies format detection for FormatAuto.
func resolveFormat(f Format, source string) Format {
	if f != FormatAuto {
		return f
	}
	if pipeline.Detect(source) == pipeline.FormatHTML {
		return FormatHTML
	}
	return FormatMarkdown
}

// convertExtractError maps internal extraction errors to public errors.
func convertExtractError(err error) error {
	if errors.Is(err, docx.ErrInvalidPackage) {
		return wrapError(ErrInvalidPackage, err)
	}
	return err
}

// defaultConverter backs the package-level functions.
var defaultConverter = sync.OnceValues(func() (*Converter, error) {
	return NewConverter()
})

// ToDocumentPackage converts Markdown or HTML source to a .docx package
// with the default theme. The title is rendered as the first line and
// stored in the package properties; an empty title is omitted.
func ToDocumentPackage(source, title string) ([]byte, error) {
	c, err := defaultConverter()
	if err != nil {
		return nil, err
	}
	res, err := c.Convert(context.Background(), Input{Source: source, Title: title})
	if err != nil {
		return nil, err
	}
	return res.DOCX, nil
}

// ToNormalizedMarkdown converts HTML to the supported Markdown dialect.
// Input without an HTML start tag is returned unchanged.
func ToNormalizedMarkdown(source string) string {
	if pipeline.Detect(source) == pipeline.FormatHTML {
		return pipeline.NormalizeHTML(source)
	}
	return source
}

// ExtractPlainMarkup returns the body of a .docx package as HTML markup,
// ready for ToNormalizedMarkdown. Returns ErrInvalidPackage if pkg cannot
// be read.
func ExtractPlainMarkup(pkg []byte) (string, error) {
	markup, err := docx.Extract(pkg)
	if err != nil {
		return "", convertExtractError(err)
	}
	return markup, nil
}
