package markdown

import (
	"regexp"
	"slices"
	"strings"
)

// Kind identifies a block variant.
type Kind int

// Block kinds.
const (
	KindHeading Kind = iota + 1
	KindParagraph
	KindListItem
	KindCodeBlock
	KindTable
	KindRule
	KindBlank
	KindQuote
)

// String returns the lowercase name of the kind.
func (k Kind) String() string {
	switch k {
	case KindHeading:
		return "heading"
	case KindParagraph:
		return "paragraph"
	case KindListItem:
		return "list item"
	case KindCodeBlock:
		return "code block"
	case KindTable:
		return "table"
	case KindRule:
		return "rule"
	case KindBlank:
		return "blank"
	case KindQuote:
		return "quote"
	}
	return "unknown"
}

// Block is a structural unit of a parsed document.
type Block interface {
	Kind() Kind
}

// Heading is an ATX heading, Level 1 through 6.
type Heading struct {
	Level int
	Spans []Span
}

// Paragraph is a single line of prose.
type Paragraph struct {
	Spans []Span
}

// ListItem is one bullet or numbered line. Level is the nesting depth,
// 0 through MaxListLevel. Consecutive items with the same Ordered flag
// form one list; there is no list wrapper block.
type ListItem struct {
	Ordered bool
	Level   int
	Spans   []Span
}

// CodeBlock is the verbatim content of a fenced block.
type CodeBlock struct {
	Language string
	Text     string
}

// Table is a pipe table. Every row has exactly len(Header) cells.
// Cell text is raw and parsed into spans later.
type Table struct {
	Header []string
	Rows   [][]string
}

// Rule is a horizontal separator.
type Rule struct{}

// Blank is an empty source line.
type Blank struct{}

// Quote is a block quote line.
type Quote struct {
	Spans []Span
}

func (Heading) Kind() Kind   { return KindHeading }
func (Paragraph) Kind() Kind { return KindParagraph }
func (ListItem) Kind() Kind  { return KindListItem }
func (CodeBlock) Kind() Kind { return KindCodeBlock }
func (Table) Kind() Kind     { return KindTable }
func (Rule) Kind() Kind      { return KindRule }
func (Blank) Kind() Kind     { return KindBlank }
func (Quote) Kind() Kind     { return KindQuote }

// MaxListLevel is the deepest list nesting level.
const MaxListLevel = 2

// Precompiled line patterns.
var (
	headingPattern     = regexp.MustCompile(`^(#{1,6})\s+(.*?)(?:\s+#+)?$`)
	bulletPattern      = regexp.MustCompile(`^(\s*)[-*+]\s+(.*)$`)
	orderedPattern     = regexp.MustCompile(`^(\s*)(\d{1,3})\.\s+(.*)$`)
	rulePattern        = regexp.MustCompile(`^(?:-{3,}|\*{3,}|_{3,})$`)
	quotePattern       = regexp.MustCompile(`^>\s?(.*)$`)
	separatorCellChars = regexp.MustCompile(`^[\s:-]*$`)
)

// Mode is the block parser state.
type Mode int

// Parser modes.
const (
	ModeNormal Mode = iota
	ModeCodeFence
	ModeTable
	ModeBulletList
	ModeOrderedList
)

// State is the block parser state between lines. The zero value is the
// initial state. Step never mutates the State it receives.
type State struct {
	Mode Mode

	// Open code fence.
	language string
	code     []string

	// Open table. header is nil until the first non-separator row.
	header []string
	rows   [][]string
}

// ParseBlocks splits source text into blocks. Lines are separated by "\n";
// a single trailing newline does not produce a Blank block.
func ParseBlocks(src string) []Block {
	if src == "" {
		return nil
	}
	src = strings.TrimSuffix(src, "\n")

	var (
		st     State
		blocks []Block
	)
	for _, line := range strings.Split(src, "\n") {
		var emitted []Block
		st, emitted = Step(st, line)
		blocks = append(blocks, emitted...)
	}
	return append(blocks, Flush(st)...)
}

// Step consumes one line and returns the next state and the blocks the
// line completed. Rules are evaluated in priority order: fence, heading,
// table row, quote, bullet item, ordered item, rule, blank, paragraph.
func Step(st State, line string) (State, []Block) {
	trimmed := strings.TrimSpace(line)

	if st.Mode == ModeCodeFence {
		if isFence(trimmed) {
			return State{}, []Block{CodeBlock{Language: st.language, Text: strings.Join(st.code, "\n")}}
		}
		st.code = append(slices.Clip(st.code), line)
		return st, nil
	}

	if isFence(trimmed) {
		return State{Mode: ModeCodeFence, language: strings.TrimSpace(trimmed[3:])}, closeOpen(st)
	}

	if m := headingPattern.FindStringSubmatch(trimmed); m != nil {
		return State{}, append(closeOpen(st), Heading{Level: len(m[1]), Spans: ParseInline(m[2])})
	}

	if isTableRow(trimmed) {
		return tableRow(st, trimmed)
	}

	if m := quotePattern.FindStringSubmatch(trimmed); m != nil {
		return State{}, append(closeOpen(st), Quote{Spans: ParseInline(m[1])})
	}

	if m := bulletPattern.FindStringSubmatch(line); m != nil {
		return listItem(st, ModeBulletList, m[1], m[2])
	}

	if m := orderedPattern.FindStringSubmatch(line); m != nil {
		return listItem(st, ModeOrderedList, m[1], m[3])
	}

	if rulePattern.MatchString(trimmed) {
		return State{}, append(closeOpen(st), Rule{})
	}

	if trimmed == "" {
		return State{}, append(closeOpen(st), Blank{})
	}

	return State{}, append(closeOpen(st), Paragraph{Spans: ParseInline(trimmed)})
}

// Flush closes whatever is still open at end of input. An unterminated
// fence keeps the lines read so far.
func Flush(st State) []Block {
	if st.Mode == ModeCodeFence {
		return []Block{CodeBlock{Language: st.language, Text: strings.Join(st.code, "\n")}}
	}
	return closeOpen(st)
}

// closeOpen ends the current list or table. Lists carry no wrapper, so
// only a table produces a block.
func closeOpen(st State) []Block {
	if st.Mode != ModeTable || len(st.header) == 0 {
		return nil
	}
	return []Block{Table{Header: st.header, Rows: st.rows}}
}

func listItem(st State, mode Mode, indent, content string) (State, []Block) {
	var emitted []Block
	if st.Mode != mode {
		emitted = closeOpen(st)
	}
	item := ListItem{
		Ordered: mode == ModeOrderedList,
		Level:   listLevel(indent),
		Spans:   ParseInline(strings.TrimSpace(content)),
	}
	return State{Mode: mode}, append(emitted, item)
}

// listLevel maps leading whitespace to a nesting level: one level per two
// characters, capped at MaxListLevel.
func listLevel(indent string) int {
	return min(MaxListLevel, len(indent)/2)
}

func tableRow(st State, trimmed string) (State, []Block) {
	cells := splitRow(trimmed)

	if st.Mode != ModeTable {
		emitted := closeOpen(st)
		next := State{Mode: ModeTable}
		if !isSeparatorRow(cells) {
			next.header = cells
		}
		return next, emitted
	}

	// Separator rows mark the header boundary and are never data.
	if isSeparatorRow(cells) {
		return st, nil
	}
	if st.header == nil {
		st.header = cells
		return st, nil
	}
	st.rows = append(slices.Clip(st.rows), fitRow(cells, len(st.header)))
	return st, nil
}

func isFence(trimmed string) bool {
	return strings.HasPrefix(trimmed, "```")
}

func isTableRow(trimmed string) bool {
	return len(trimmed) >= 2 && trimmed[0] == '|' && trimmed[len(trimmed)-1] == '|'
}

// splitRow splits a "| a | b |" line into trimmed cells. "\|" is a
// literal pipe inside a cell.
func splitRow(trimmed string) []string {
	inner := trimmed[1 : len(trimmed)-1]
	var (
		cells []string
		cell  strings.Builder
	)
	for i := 0; i < len(inner); i++ {
		switch {
		case inner[i] == '\\' && i+1 < len(inner) && inner[i+1] == '|':
			cell.WriteByte('|')
			i++
		case inner[i] == '|':
			cells = append(cells, strings.TrimSpace(cell.String()))
			cell.Reset()
		default:
			cell.WriteByte(inner[i])
		}
	}
	return append(cells, strings.TrimSpace(cell.String()))
}

// isSeparatorRow reports whether every cell holds only dashes, colons and
// spaces, with at least one dash in the row.
func isSeparatorRow(cells []string) bool {
	dash := false
	for _, c := range cells {
		if !separatorCellChars.MatchString(c) {
			return false
		}
		if strings.Contains(c, "-") {
			dash = true
		}
	}
	return dash
}

// fitRow truncates or pads a row to n cells.
func fitRow(cells []string, n int) []string {
	if len(cells) >= n {
		return cells[:n:n]
	}
	padded := make([]string, n)
	copy(padded, cells)
	return padded
}
