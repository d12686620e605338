package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	goldmarkhtml "github.com/yuin/goldmark/renderer/html"
)

// ErrHTMLConversion indicates HTML conversion failed.
var ErrHTMLConversion = errors.New("HTML conversion failed")

// HTMLConverter renders normalized Markdown as a standalone preview page.
type HTMLConverter interface {
	ToHTML(ctx context.Context, title, content string) (string, error)
}

// GoldmarkConverter renders preview pages with goldmark. Code blocks are
// highlighted with chroma classes; the matching stylesheet is built once.
type GoldmarkConverter struct {
	md     goldmark.Markdown
	style  PreviewStyle
	chroma template.CSS
}

// NewGoldmarkConverter returns a converter with GFM extensions enabled.
// An empty style.Highlight selects DefaultPreviewStyle.
func NewGoldmarkConverter(style PreviewStyle) *GoldmarkConverter {
	if style.Highlight == "" {
		style.Highlight = DefaultPreviewStyle
	}

	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			highlighting.NewHighlighting(
				highlighting.WithStyle(style.Highlight),
				highlighting.WithFormatOptions(chromahtml.WithClasses(true)),
			),
		),
		// Heading ids let "#anchor" links resolve in the preview.
		goldmark.WithParserOptions(parser.WithAutoHeadingID()),
		goldmark.WithRendererOptions(
			goldmarkhtml.WithHardWraps(),
			goldmarkhtml.WithXHTML(),
		),
	)

	return &GoldmarkConverter{
		md:     md,
		style:  style,
		chroma: chromaCSS(style.Highlight),
	}
}

// ToHTML converts Markdown to a complete preview page. goldmark has no
// context support, so rendering runs in its own goroutine and the caller
// stops waiting on cancellation.
func (c *GoldmarkConverter) ToHTML(ctx context.Context, title, content string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	type outcome struct {
		page string
		err  error
	}
	ch := make(chan outcome, 1)

	go func() {
		var body bytes.Buffer
		if err := c.md.Convert([]byte(content), &body); err != nil {
			ch <- outcome{err: fmt.Errorf("%w: %v", ErrHTMLConversion, err)}
			return
		}
		page, err := renderPreview(title, body.String(), c.style, c.chroma)
		ch <- outcome{page: page, err: err}
	}()

	select {
	case o := <-ch:
		return o.page, o.err
	case <-ctx.Done():
		return "", ctx.Err()
	}
}
