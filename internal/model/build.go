package model

import (
	"strings"

	"github.com/alnah/go-md2docx/internal/markdown"
)

// Build turns parsed blocks into a document tree. It never fails: every
// block maps to exactly one heading or node.
func Build(title string, blocks []markdown.Block) *Document {
	b := &builder{doc: &Document{Title: title}}
	for _, blk := range blocks {
		b.add(blk)
	}
	return b.doc
}

type builder struct {
	doc *Document

	group     int  // last list group number handed out
	inList    bool // previous node was a list item
	inOrdered bool // Ordered flag of that item
}

func (b *builder) add(blk markdown.Block) {
	switch v := blk.(type) {
	case markdown.Heading:
		b.doc.Sections = append(b.doc.Sections, Section{
			Heading: &Heading{Level: v.Level, Spans: v.Spans},
		})
		b.inList = false
	case markdown.ListItem:
		if !b.inList || b.inOrdered != v.Ordered {
			b.group++
		}
		b.inList, b.inOrdered = true, v.Ordered
		b.append(ListItem{Ordered: v.Ordered, Level: v.Level, Group: b.group, Spans: v.Spans})
	case markdown.Paragraph:
		b.node(Paragraph{Spans: v.Spans})
	case markdown.CodeBlock:
		b.node(CodeBlock{Language: v.Language, Lines: strings.Split(v.Text, "\n")})
	case markdown.Table:
		b.node(buildTable(v))
	case markdown.Rule:
		b.node(Rule{})
	case markdown.Blank:
		b.node(Blank{})
	case markdown.Quote:
		b.node(Quote{Spans: v.Spans})
	}
}

// node appends a non-list node, ending any open list group.
func (b *builder) node(n Node) {
	b.inList = false
	b.append(n)
}

func (b *builder) append(n Node) {
	if len(b.doc.Sections) == 0 {
		b.doc.Sections = append(b.doc.Sections, Section{})
	}
	last := &b.doc.Sections[len(b.doc.Sections)-1]
	last.Nodes = append(last.Nodes, n)
}

// buildTable parses cell text into spans, fits every row to the header
// width and splits the page width evenly.
func buildTable(t markdown.Table) Table {
	cols := len(t.Header)
	out := Table{
		Header:       cells(t.Header, cols),
		Rows:         make([][]Cell, 0, len(t.Rows)),
		ColumnWidths: make([]float64, cols),
	}
	for _, row := range t.Rows {
		out.Rows = append(out.Rows, cells(row, cols))
	}
	for i := range out.ColumnWidths {
		out.ColumnWidths[i] = 100 / float64(cols)
	}
	return out
}

func cells(raw []string, n int) []Cell {
	out := make([]Cell, n)
	for i := 0; i < n && i < len(raw); i++ {
		out[i] = Cell{Spans: markdown.ParseInline(raw[i])}
	}
	return out
}
