package pipeline

import (
	"bytes"
	"fmt"
	"html/template"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/styles"
)

// DefaultPreviewStyle is the chroma style used for preview code blocks.
const DefaultPreviewStyle = "github"

// PreviewStyle carries the theme values the HTML preview mirrors, so the
// page reads close to the rendered package. Empty fields are left to the
// browser defaults.
type PreviewStyle struct {
	Highlight   string // chroma style name
	BodyFont    string
	HeadingFont string
	CodeFont    string
	BodySize    float64 // points
	TextColor   string
	LinkColor   string
	CodeShading string
	TableBorder string
	QuoteBorder string
}

// previewPage is parsed by html/template, so the title, font names and
// colors are escaped for the context they land in. Values rejected by the
// CSS filter render as "ZgotmplZ" and are ignored by the browser.
var previewPage = template.Must(template.New("preview").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { max-width: 48em; margin: 2em auto;{{with .Style.BodyFont}} font-family: "{{.}}";{{end}}{{with .Style.BodySize}} font-size: {{.}}pt;{{end}}{{with .Style.TextColor}} color: {{.}};{{end}} }
{{with .Style.HeadingFont}}h1, h2, h3, h4, h5, h6 { font-family: "{{.}}"; }
{{end}}{{with .Style.LinkColor}}a { color: {{.}}; }
{{end}}pre, code { {{with .Style.CodeFont}} font-family: "{{.}}";{{end}}{{with .Style.CodeShading}} background: {{.}};{{end}} }
table { border-collapse: collapse; }
th, td { padding: 0.25em 0.5em;{{with .Style.TableBorder}} border: 1px solid {{.}};{{end}} }
blockquote { margin-left: 0; padding-left: 1em;{{with .Style.QuoteBorder}} border-left: 3px solid {{.}};{{end}} }
{{.Chroma}}
</style>
</head>
<body>
{{.Body}}
</body>
</html>`))

type previewData struct {
	Title  string
	Style  PreviewStyle
	Chroma template.CSS
	Body   template.HTML
}

// chromaCSS generates the class stylesheet for a chroma style. Unknown
// names resolve to chroma's fallback style.
func chromaCSS(name string) template.CSS {
	var buf bytes.Buffer
	formatter := chromahtml.New(chromahtml.WithClasses(true))
	if err := formatter.WriteCSS(&buf, styles.Get(name)); err != nil {
		return ""
	}
	return template.CSS(buf.String())
}

// renderPreview wraps a rendered body fragment in a complete page.
// body must come from the Markdown renderer, which drops raw HTML.
func renderPreview(title, body string, style PreviewStyle, chroma template.CSS) (string, error) {
	var buf bytes.Buffer
	err := previewPage.Execute(&buf, previewData{
		Title:  title,
		Style:  style,
		Chroma: chroma,
		Body:   template.HTML(body), //nolint:gosec // goldmark output without WithUnsafe
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrHTMLConversion, err)
	}
	return buf.String(), nil
}
