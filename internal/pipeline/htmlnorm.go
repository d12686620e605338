package pipeline

import (
	"bytes"
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Precompiled patterns for the HTML normalizer.
var (
	// Highlighters and goldmark tag code inside pre with "language-<name>".
	languageClass = regexp.MustCompile(`^language-([\w+#-]+)$`)

	// Whitespace collapses to one space outside pre.
	whitespaceRun = regexp.MustCompile(`\s+`)
)

// allowList keeps every element the normalizer has a rule for. Other
// elements are stripped and their text is kept; script and style content
// is dropped.
var allowList = newAllowList()

func newAllowList() *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	p.AllowElements(
		"h1", "h2", "h3", "h4", "h5", "h6",
		"p", "br", "hr", "blockquote", "pre",
		"strong", "b", "em", "i", "u", "s", "strike", "del", "code",
		"a", "img",
		"ul", "ol", "li",
		"table", "thead", "tbody", "tfoot", "tr", "th", "td",
	)
	p.AllowAttrs("href").OnElements("a")
	p.AllowAttrs("src", "alt").OnElements("img")
	p.AllowAttrs("class").Matching(languageClass).OnElements("code")
	// Keeps "a</div><div>b" from collapsing into "ab".
	p.AddSpaceWhenStrippingTag(true)
	return p
}

// tagRule maps one element to Markdown. Either hook may be nil.
type tagRule struct {
	open  func(n *normalizer, tok html.Token)
	close func(n *normalizer)
}

// tagRules is consulted once per start and end tag.
var tagRules = map[atom.Atom]tagRule{
	atom.H1: heading(1),
	atom.H2: heading(2),
	atom.H3: heading(3),
	atom.H4: heading(4),
	atom.H5: heading(5),
	atom.H6: heading(6),

	atom.Strong: wrap("**"),
	atom.B:      wrap("**"),
	atom.U:      wrap("**"), // no underline in the dialect
	atom.Em:     wrap("*"),
	atom.I:      wrap("*"),
	atom.S:      wrap("~~"),
	atom.Strike: wrap("~~"),
	atom.Del:    wrap("~~"),

	atom.Code: {open: (*normalizer).openCode, close: (*normalizer).closeCode},
	atom.A:    {open: (*normalizer).openLink, close: (*normalizer).closeLink},
	atom.Img:  {open: (*normalizer).image},

	atom.Ul: {open: (*normalizer).openList, close: (*normalizer).closeList},
	atom.Ol: {open: (*normalizer).openList, close: (*normalizer).closeList},
	atom.Li: {open: (*normalizer).listItem},

	atom.Table: {open: (*normalizer).openTable, close: (*normalizer).closeTable},
	atom.Tr:    {open: (*normalizer).openRow, close: (*normalizer).closeRow},
	atom.Th:    {open: (*normalizer).openCell, close: (*normalizer).closeCell},
	atom.Td:    {open: (*normalizer).openCell, close: (*normalizer).closeCell},

	atom.P:          {open: (*normalizer).openParagraph, close: (*normalizer).closeParagraph},
	atom.Br:         {open: (*normalizer).lineBreak},
	atom.Hr:         {open: (*normalizer).rule},
	atom.Blockquote: {open: (*normalizer).openQuote, close: (*normalizer).closeQuote},
	atom.Pre:        {open: (*normalizer).openPre, close: (*normalizer).closePre},
}

// NormalizeHTML rewrites a constrained subset of HTML into the Markdown
// dialect accepted by the block parser. The transform is lossy and never
// fails: unknown tags are stripped, entities are decoded and runs of
// blank lines collapse to one.
func NormalizeHTML(content string) string {
	n := &normalizer{}
	z := html.NewTokenizer(strings.NewReader(allowList.Sanitize(content)))
	for {
		switch z.Next() {
		case html.ErrorToken:
			return n.finish()
		case html.TextToken:
			n.text(string(z.Text()))
		case html.StartTagToken, html.SelfClosingTagToken:
			tok := z.Token()
			if rule, ok := tagRules[tok.DataAtom]; ok && rule.open != nil {
				rule.open(n, tok)
			}
		case html.EndTagToken:
			name, _ := z.TagName()
			if rule, ok := tagRules[atom.Lookup(name)]; ok && rule.close != nil {
				rule.close(n)
			}
		}
	}
}

// normalizer accumulates Markdown while the tokenizer walks the markup.
// Table cells are collected in their own buffer so a row can be written
// on one line once it is complete. Text inside a table but outside any
// cell (captions, stray text) goes to loose and is written as a paragraph
// in front of the table when it closes.
type normalizer struct {
	out   bytes.Buffer
	cell  *bytes.Buffer
	row   []string
	loose bytes.Buffer

	tables     int // table nesting depth; only the outermost builds rows
	rows       int // rows written for the current table
	tableStart int // offset in out where the current table begins
	lists  int
	quotes int

	pre    bool
	fenced bool
	lang   string

	marks []int    // sink length at each open inline marker
	links []string // href of each open anchor
}

func (n *normalizer) sink() *bytes.Buffer {
	switch {
	case n.cell != nil:
		return n.cell
	case n.tables > 0:
		return &n.loose
	}
	return &n.out
}

// inTable reports whether output must stay on the current line because a
// table is being collected.
func (n *normalizer) inTable() bool {
	return n.cell != nil || n.tables > 0
}

func (n *normalizer) write(s string) {
	n.sink().WriteString(s)
}

// atLineStart reports whether the sink is empty or ends in a newline or
// space, where leading whitespace of the next text is dropped.
func (n *normalizer) atLineStart() bool {
	b := n.sink().Bytes()
	return len(b) == 0 || b[len(b)-1] == '\n' || b[len(b)-1] == ' '
}

func (n *normalizer) text(s string) {
	if n.pre && n.cell == nil {
		n.preText(s)
		return
	}
	s = strings.ReplaceAll(s, "\u00a0", " ")
	s = whitespaceRun.ReplaceAllString(s, " ")
	if n.atLineStart() {
		s = strings.TrimLeft(s, " ")
	}
	n.write(s)
}

// blockBreak ends the current block. Inside a table it degrades to a
// space so rows stay on one line and stay contiguous.
func (n *normalizer) blockBreak() {
	if n.inTable() {
		if !n.atLineStart() {
			n.sink().WriteByte(' ')
		}
		return
	}
	n.out.WriteString("\n\n")
}

func heading(level int) tagRule {
	prefix := strings.Repeat("#", level) + " "
	return tagRule{
		open: func(n *normalizer, _ html.Token) {
			n.blockBreak()
			n.write(prefix)
		},
		close: (*normalizer).blockBreak,
	}
}

// wrap emits marker around the element content. Empty elements emit
// nothing, and trailing spaces move outside the closing marker so the
// span stays recognizable.
func wrap(marker string) tagRule {
	return tagRule{
		open: func(n *normalizer, _ html.Token) {
			if n.pre {
				return
			}
			n.marks = append(n.marks, n.sink().Len())
			n.write(marker)
		},
		close: func(n *normalizer) {
			if n.pre || len(n.marks) == 0 {
				return
			}
			pos := n.marks[len(n.marks)-1]
			n.marks = n.marks[:len(n.marks)-1]

			buf := n.sink()
			trailing := buf.Len() - len(bytes.TrimRight(buf.Bytes(), " "))
			buf.Truncate(buf.Len() - trailing)
			if buf.Len() == pos+len(marker) {
				buf.Truncate(pos)
			} else {
				buf.WriteString(marker)
			}
			buf.WriteString(strings.Repeat(" ", trailing))
		},
	}
}

func (n *normalizer) openCode(tok html.Token) {
	if n.pre {
		if m := languageClass.FindStringSubmatch(attr(tok, "class")); m != nil {
			n.lang = m[1]
		}
		return
	}
	n.write("`")
}

func (n *normalizer) closeCode() {
	if !n.pre {
		n.write("`")
	}
}

func (n *normalizer) openLink(tok html.Token) {
	href := strings.TrimSpace(attr(tok, "href"))
	n.links = append(n.links, href)
	if href != "" {
		n.write("[")
	}
}

func (n *normalizer) closeLink() {
	if len(n.links) == 0 {
		return
	}
	href := n.links[len(n.links)-1]
	n.links = n.links[:len(n.links)-1]
	if href != "" {
		n.write("](" + href + ")")
	}
}

func (n *normalizer) image(tok html.Token) {
	src := strings.TrimSpace(attr(tok, "src"))
	if src == "" {
		return
	}
	n.write("![" + attr(tok, "alt") + "](" + src + ")")
}

func (n *normalizer) openList(html.Token) {
	n.lists++
	if n.lists == 1 {
		n.blockBreak()
	}
}

func (n *normalizer) closeList() {
	if n.lists == 0 {
		return
	}
	n.lists--
	if n.lists == 0 {
		n.blockBreak()
	}
}

// listItem starts a dash line indented two spaces per nesting level.
// Ordered numbering is not carried over.
func (n *normalizer) listItem(html.Token) {
	if n.inTable() {
		n.blockBreak()
		return
	}
	if b := n.out.Bytes(); len(b) > 0 && b[len(b)-1] != '\n' {
		n.out.WriteByte('\n')
	}
	n.out.WriteString(strings.Repeat("  ", max(0, n.lists-1)) + "- ")
}

func (n *normalizer) openTable(html.Token) {
	if n.tables == 0 {
		n.blockBreak()
		n.rows = 0
		n.loose.Reset()
		n.tableStart = n.out.Len()
	}
	n.tables++
}

func (n *normalizer) closeTable() {
	if n.tables == 0 {
		return
	}
	if n.tables == 1 {
		n.closeRow()
	}
	n.tables--
	if n.tables == 0 {
		n.flushLoose()
		n.blockBreak()
	}
}

// flushLoose inserts the text collected outside cells as a paragraph in
// front of the table rows.
func (n *normalizer) flushLoose() {
	text := strings.TrimSpace(n.loose.String())
	n.loose.Reset()
	if text == "" {
		return
	}
	rows := append([]byte(nil), n.out.Bytes()[n.tableStart:]...)
	n.out.Truncate(n.tableStart)
	n.out.WriteString(text + "\n\n")
	n.out.Write(rows)
}

func (n *normalizer) openRow(html.Token) {
	if n.tables == 1 {
		n.closeRow()
	}
}

// closeRow writes the collected cells as one pipe row. The first row of
// each table is followed by a synthesized separator row.
func (n *normalizer) closeRow() {
	if n.tables != 1 {
		return
	}
	n.closeCell()
	if len(n.row) == 0 {
		return
	}
	n.out.WriteString("| " + strings.Join(n.row, " | ") + " |\n")
	if n.rows == 0 {
		n.out.WriteString("|" + strings.Repeat(" --- |", len(n.row)) + "\n")
	}
	n.rows++
	n.row = nil
}

func (n *normalizer) openCell(html.Token) {
	if n.tables != 1 {
		return
	}
	n.closeCell()
	n.cell = &bytes.Buffer{}
}

func (n *normalizer) closeCell() {
	if n.tables != 1 || n.cell == nil {
		return
	}
	text := strings.TrimSpace(n.cell.String())
	n.row = append(n.row, strings.ReplaceAll(text, "|", `\|`))
	n.cell = nil
}

func (n *normalizer) openParagraph(html.Token) {
	switch {
	case n.inTable() || n.lists > 0:
		if !n.atLineStart() {
			n.write(" ")
		}
	case n.quotes > 0:
		if !bytes.HasSuffix(n.out.Bytes(), []byte("> ")) {
			n.out.WriteString("\n> ")
		}
	default:
		n.blockBreak()
	}
}

func (n *normalizer) closeParagraph() {
	if !n.inTable() && n.lists == 0 && n.quotes == 0 {
		n.blockBreak()
	}
}

func (n *normalizer) lineBreak(html.Token) {
	switch {
	case n.inTable():
		n.blockBreak()
	case n.pre:
		n.preText("\n")
	case n.quotes > 0:
		n.out.WriteString("\n> ")
	default:
		n.out.WriteByte('\n')
	}
}

func (n *normalizer) rule(html.Token) {
	n.blockBreak()
	n.write("---")
	n.blockBreak()
}

func (n *normalizer) openQuote(html.Token) {
	n.quotes++
	if n.quotes == 1 && !n.inTable() {
		n.blockBreak()
		n.out.WriteString("> ")
	}
}

func (n *normalizer) closeQuote() {
	if n.quotes == 0 {
		return
	}
	n.quotes--
	if n.quotes == 0 {
		n.blockBreak()
	}
}

func (n *normalizer) openPre(html.Token) {
	if n.inTable() {
		return
	}
	n.blockBreak()
	n.pre, n.fenced, n.lang = true, false, ""
}

func (n *normalizer) closePre() {
	if !n.pre {
		return
	}
	if !n.fenced {
		n.openFence()
	}
	if b := n.out.Bytes(); b[len(b)-1] != '\n' {
		n.out.WriteByte('\n')
	}
	n.out.WriteString("```")
	n.pre = false
	n.blockBreak()
}

// preText writes code verbatim. The fence opens lazily so the language
// class of the inner code element is known first.
func (n *normalizer) preText(s string) {
	if !n.fenced {
		if strings.TrimSpace(s) == "" {
			return
		}
		n.openFence()
		s = strings.TrimPrefix(s, "\n")
	}
	n.out.WriteString(s)
}

func (n *normalizer) openFence() {
	n.out.WriteString("```" + n.lang + "\n")
	n.fenced = true
}

func (n *normalizer) finish() string {
	n.closeRow()
	if n.tables > 0 {
		n.flushLoose()
	}
	return strings.TrimSpace(tidyMarkdown(n.out.String()))
}

func attr(tok html.Token, key string) string {
	for _, a := range tok.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}
