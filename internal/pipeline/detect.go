package pipeline

import "regexp"

// Format identifies the markup language of a source text.
type Format int

// Source formats.
const (
	FormatMarkdown Format = iota
	FormatHTML
)

// String returns the lowercase format name.
func (f Format) String() string {
	if f == FormatHTML {
		return "html"
	}
	return "markdown"
}

// openingTag matches anything shaped like an HTML start tag. Literal
// tokens such as "<placeholder>" in prose also match and route the text
// through the HTML normalizer.
var openingTag = regexp.MustCompile(`<[A-Za-z][^>]*>`)

// Detect classifies content as HTML when it contains at least one
// opening tag, and as Markdown otherwise.
func Detect(content string) Format {
	if openingTag.MatchString(content) {
		return FormatHTML
	}
	return FormatMarkdown
}
