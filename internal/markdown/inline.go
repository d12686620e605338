package markdown

import "strings"

// Span is a fragment of inline text sharing one style.
// Spans never contain newlines.
type Span struct {
	Text          string
	Bold          bool
	Italic        bool
	Strikethrough bool
	Code          bool
	Link          string // target URL, empty when the span is not a link
	Image         bool   // Text holds the alt text, Link the image source
}

// delimiterRule pairs an opening/closing marker with the style it applies.
// Rules are tried in slice order, so longer markers win over their prefixes.
type delimiterRule struct {
	marker string
	apply  func(*Span)
}

var delimiterRules = []delimiterRule{
	{"***", func(s *Span) { s.Bold, s.Italic = true, true }},
	{"___", func(s *Span) { s.Bold, s.Italic = true, true }},
	{"**", func(s *Span) { s.Bold = true }},
	{"__", func(s *Span) { s.Bold = true }},
	{"~~", func(s *Span) { s.Strikethrough = true }},
	{"*", func(s *Span) { s.Italic = true }},
	{"_", func(s *Span) { s.Italic = true }},
}

// linkTextMarkers are dropped from link text.
const linkTextMarkers = "*_~`"

// escapable lists the characters a backslash turns into literals: the
// markers the scanner would otherwise consume. A backslash before any
// other character is kept as written.
const escapable = "\\`*_~[!"

// ParseInline splits a single line into styled spans.
// Text between recognized tokens becomes plain spans, including unmatched
// marker characters. Adjacent plain text is merged into one span.
func ParseInline(line string) []Span {
	s := &inlineScanner{src: line}
	return s.scan()
}

type inlineScanner struct {
	src   string
	plain strings.Builder
	spans []Span
}

func (s *inlineScanner) scan() []Span {
	for i := 0; i < len(s.src); {
		if n := s.token(i); n > 0 {
			i += n
			continue
		}
		s.plain.WriteByte(s.src[i])
		i++
	}
	s.flush()
	return s.spans
}

// token tries every inline rule at position i and returns the number of
// bytes consumed, or 0 when nothing matched.
func (s *inlineScanner) token(i int) int {
	switch s.src[i] {
	case '\\':
		if i+1 < len(s.src) && strings.IndexByte(escapable, s.src[i+1]) >= 0 {
			s.plain.WriteByte(s.src[i+1])
			return 2
		}
	case '`':
		return s.codeSpan(i)
	case '!':
		if i+1 < len(s.src) && s.src[i+1] == '[' {
			if n := s.link(i+1, true); n > 0 {
				return n + 1
			}
		}
	case '[':
		return s.link(i, false)
	case '*', '_', '~':
		return s.delimited(i)
	}
	return 0
}

// codeSpan matches a run of backticks and its identical closing run.
func (s *inlineScanner) codeSpan(i int) int {
	ticks := 0
	for i+ticks < len(s.src) && s.src[i+ticks] == '`' {
		ticks++
	}
	fence := s.src[i : i+ticks]
	start := i + ticks
	end := strings.Index(s.src[start:], fence)
	if end <= 0 {
		return 0
	}
	s.emit(Span{Text: s.src[start : start+end], Code: true})
	return ticks*2 + end
}

// delimited applies the first delimiter rule whose marker opens at i and
// closes later on the line.
func (s *inlineScanner) delimited(i int) int {
	rest := s.src[i:]
	for _, rule := range delimiterRules {
		if !strings.HasPrefix(rest, rule.marker) {
			continue
		}
		// Underscores inside words (snake_case) are not emphasis.
		if rule.marker[0] == '_' && i > 0 && isWordByte(s.src[i-1]) {
			return 0
		}
		start := len(rule.marker)
		if start >= len(rest) || isSpace(rest[start]) {
			continue
		}
		end := strings.Index(rest[start:], rule.marker)
		if end <= 0 || isSpace(rest[start+end-1]) {
			continue
		}
		span := Span{Text: rest[start : start+end]}
		rule.apply(&span)
		s.emit(span)
		return start*2 + end
	}
	return 0
}

// link matches [text](url) starting at the '[' at position i.
func (s *inlineScanner) link(i int, image bool) int {
	rest := s.src[i:]
	closeText := strings.Index(rest, "](")
	if closeText < 0 {
		return 0
	}
	closeURL := strings.IndexByte(rest[closeText+2:], ')')
	if closeURL < 0 {
		return 0
	}
	url := strings.TrimSpace(rest[closeText+2 : closeText+2+closeURL])
	if url == "" {
		return 0
	}
	text := stripMarkers(rest[1:closeText])
	if text == "" && !image {
		text = url
	}
	s.emit(Span{Text: text, Link: url, Image: image})
	return closeText + 2 + closeURL + 1
}

func (s *inlineScanner) emit(span Span) {
	s.flush()
	s.spans = append(s.spans, span)
}

func (s *inlineScanner) flush() {
	if s.plain.Len() == 0 {
		return
	}
	s.spans = append(s.spans, Span{Text: s.plain.String()})
	s.plain.Reset()
}

func stripMarkers(text string) string {
	return strings.Map(func(r rune) rune {
		if strings.ContainsRune(linkTextMarkers, r) {
			return -1
		}
		return r
	}, text)
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t'
}

func isWordByte(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z' || b >= '0' && b <= '9' || b >= 0x80
}

// PlainText concatenates the text of spans, dropping all styling.
func PlainText(spans []Span) string {
	var b strings.Builder
	for _, sp := range spans {
		b.WriteString(sp.Text)
	}
	return b.String()
}
