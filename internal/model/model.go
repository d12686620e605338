// Package model builds the renderer-agnostic document tree from parsed
// blocks.
//
// A Document is a list of sections. Every heading opens a section; content
// before the first heading forms a leading section without a heading. The
// tree carries structure only. Fonts, spacing and colors belong to the
// renderer's theme.
package model

import "github.com/alnah/go-md2docx/internal/markdown"

// Span is the inline unit shared with the parser.
type Span = markdown.Span

// Document is the root of the tree.
type Document struct {
	Title    string
	Author   string
	Sections []Section
}

// Section groups the nodes that follow one heading.
type Section struct {
	Heading *Heading // nil for the leading section
	Nodes   []Node
}

// Heading opens a section.
type Heading struct {
	Level int
	Spans []Span
}

// Node is a block inside a section.
type Node interface {
	Kind() markdown.Kind
}

// Paragraph is one line of prose.
type Paragraph struct {
	Spans []Span
}

// ListItem is one entry of a list. Items sharing a Group number were
// contiguous in the source and form one list; the flat order is kept.
type ListItem struct {
	Ordered bool
	Level   int
	Group   int
	Spans   []Span
}

// CodeBlock is verbatim text split into lines.
type CodeBlock struct {
	Language string
	Lines    []string
}

// Cell is one table cell.
type Cell struct {
	Spans []Span
}

// Table has a header row and data rows of equal width. ColumnWidths holds
// one percentage per column and sums to 100.
type Table struct {
	Header       []Cell
	Rows         [][]Cell
	ColumnWidths []float64
}

// Rule is a horizontal separator.
type Rule struct{}

// Blank is an empty line kept for vertical spacing.
type Blank struct{}

// Quote is a block quote line.
type Quote struct {
	Spans []Span
}

func (Paragraph) Kind() markdown.Kind { return markdown.KindParagraph }
func (ListItem) Kind() markdown.Kind  { return markdown.KindListItem }
func (CodeBlock) Kind() markdown.Kind { return markdown.KindCodeBlock }
func (Table) Kind() markdown.Kind     { return markdown.KindTable }
func (Rule) Kind() markdown.Kind      { return markdown.KindRule }
func (Blank) Kind() markdown.Kind     { return markdown.KindBlank }
func (Quote) Kind() markdown.Kind     { return markdown.KindQuote }
