package docx

import (
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// codeRun is a piece of one code line sharing one color.
type codeRun struct {
	Text   string
	Color  string // RRGGBB, empty for the default text color
	Bold   bool
	Italic bool
}

// highlighter colors code with a chroma style. A nil highlighter leaves
// code uncolored.
type highlighter struct {
	style *chroma.Style
}

func newHighlighter(styleName string) *highlighter {
	if styleName == "" {
		return nil
	}
	style, ok := styles.Registry[styleName]
	if !ok {
		return nil
	}
	return &highlighter{style: style}
}

// lines splits code into lines of colored runs. The result always has one
// entry per source line, even when the language is unknown or lexing
// fails.
func (h *highlighter) lines(language, code string) [][]codeRun {
	src := strings.Split(code, "\n")
	plain := func() [][]codeRun {
		out := make([][]codeRun, len(src))
		for i, line := range src {
			if line != "" {
				out[i] = []codeRun{{Text: line}}
			}
		}
		return out
	}

	if h == nil || language == "" {
		return plain()
	}
	lexer := lexers.Get(language)
	if lexer == nil {
		return plain()
	}
	it, err := chroma.Coalesce(lexer).Tokenise(nil, code)
	if err != nil {
		return plain()
	}

	out := make([][]codeRun, 1, len(src))
	for tok := it(); tok != chroma.EOF; tok = it() {
		entry := h.style.Get(tok.Type)
		run := codeRun{
			Bold:   entry.Bold == chroma.Yes,
			Italic: entry.Italic == chroma.Yes,
		}
		if entry.Colour.IsSet() {
			run.Color = strings.TrimPrefix(entry.Colour.String(), "#")
		}
		for i, part := range strings.Split(tok.Value, "\n") {
			if i > 0 {
				out = append(out, nil)
			}
			if part != "" {
				run.Text = part
				out[len(out)-1] = append(out[len(out)-1], run)
			}
		}
	}

	// Lexers may append a trailing newline.
	for len(out) < len(src) {
		out = append(out, nil)
	}
	return out[:len(src)]
}
