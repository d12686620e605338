package md2docx

import (
	"github.com/alnah/go-md2docx/internal/markdown"
	"github.com/alnah/go-md2docx/internal/model"
)

// Document tree types handed to a Renderer. A Document holds Sections; each
// Section holds an optional Heading and a list of Nodes. Node values are
// one of Paragraph, ListItem, CodeBlock, Table, Rule, Blank or Quote.
type (
	Document  = model.Document
	Section   = model.Section
	Heading   = model.Heading
	Node      = model.Node
	Paragraph = model.Paragraph
	ListItem  = model.ListItem
	CodeBlock = model.CodeBlock
	Table     = model.Table
	Cell      = model.Cell
	Rule      = model.Rule
	Blank     = model.Blank
	Quote     = model.Quote
	Span      = markdown.Span
	BlockKind = markdown.Kind
)
