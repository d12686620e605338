package docx

import (
	"encoding/xml"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"

	"github.com/alnah/go-md2docx/internal/markdown"
	"github.com/alnah/go-md2docx/internal/model"
)

// firstBodyRel is the first relationship ID free for hyperlinks and
// images; rId1 to rId3 are styles, numbering and settings.
const firstBodyRel = 4

// bodyWriter serializes the document tree into word/document.xml and
// collects the relationships and media the body refers to.
type bodyWriter struct {
	theme Theme
	hl    *highlighter
	b     strings.Builder

	rels    []relationship
	media   []mediaPart
	links   map[string]string // URL to relationship ID
	anchors map[string]bool   // bookmark names already used

	bookmarks int
	drawings  int
}

func newBodyWriter(theme Theme, hl *highlighter) *bodyWriter {
	return &bodyWriter{
		theme:   theme,
		hl:      hl,
		links:   make(map[string]string),
		anchors: make(map[string]bool),
	}
}

func (w *bodyWriter) document(doc *model.Document) string {
	w.b.WriteString(xmlHeader)
	fmt.Fprintf(&w.b, `<w:document xmlns:w="%s" xmlns:r="%s" xmlns:wp="%s" xmlns:a="%s" xmlns:pic="%s"><w:body>`,
		nsW, nsR, nsWP, nsA, nsPic)

	if doc.Title != "" {
		w.paragraph(styleTitle, "", []markdown.Span{{Text: doc.Title}})
	}

	endsWithTable := false
	for _, s := range doc.Sections {
		if s.Heading != nil {
			w.heading(*s.Heading)
			endsWithTable = false
		}
		for _, n := range s.Nodes {
			w.node(n)
			_, endsWithTable = n.(model.Table)
		}
	}
	// Word expects a paragraph between a table and the section properties.
	if endsWithTable {
		w.b.WriteString(`<w:p/>`)
	}

	p := w.theme.Page
	orient := ""
	if p.Landscape {
		orient = ` w:orient="landscape"`
	}
	fmt.Fprintf(&w.b, `<w:sectPr><w:pgSz w:w="%d" w:h="%d"%s/>`+
		`<w:pgMar w:top="%d" w:right="%d" w:bottom="%d" w:left="%d" w:header="720" w:footer="720" w:gutter="0"/></w:sectPr>`,
		p.Width, p.Height, orient, p.Margin, p.Margin, p.Margin, p.Margin)
	w.b.WriteString(`</w:body></w:document>`)
	return w.b.String()
}

func (w *bodyWriter) node(n model.Node) {
	switch v := n.(type) {
	case model.Paragraph:
		w.paragraph(styleNormal, "", v.Spans)
	case model.ListItem:
		num := numBullet
		if v.Ordered {
			num = numOrdered
		}
		w.paragraph(styleList, fmt.Sprintf(`<w:numPr><w:ilvl w:val="%d"/><w:numId w:val="%d"/></w:numPr>`, v.Level, num), v.Spans)
	case model.CodeBlock:
		w.code(v)
	case model.Table:
		w.table(v)
	case model.Rule:
		w.paragraph(styleRule, "", nil)
	case model.Blank:
		w.paragraph(styleBlank, "", nil)
	case model.Quote:
		w.paragraph(styleQuote, "", v.Spans)
	}
}

func (w *bodyWriter) paragraph(style, pPr string, spans []markdown.Span) {
	w.b.WriteString(`<w:p><w:pPr><w:pStyle w:val="` + style + `"/>` + pPr + `</w:pPr>`)
	w.runs(spans)
	w.b.WriteString(`</w:p>`)
}

// heading writes a heading paragraph wrapped in a bookmark so "#name"
// links resolve inside the document.
func (w *bodyWriter) heading(h model.Heading) {
	id := w.bookmarks
	w.bookmarks++
	fmt.Fprintf(&w.b, `<w:p><w:pPr><w:pStyle w:val="%s%d"/></w:pPr><w:bookmarkStart w:id="%d" w:name="%s"/>`,
		styleHeading, clampLevel(h.Level), id, escapeText(w.anchor(markdown.PlainText(h.Spans))))
	w.runs(h.Spans)
	fmt.Fprintf(&w.b, `<w:bookmarkEnd w:id="%d"/></w:p>`, id)
}

// maxBookmarkName is the longest bookmark name Word accepts, in characters.
const maxBookmarkName = 40

// anchor returns a unique bookmark name for heading text, shaped like the
// heading IDs of the HTML preview. Repeated slugs get "-1", "-2", ...
// until the name is unused; the length cap applies to the suffixed name.
func (w *bodyWriter) anchor(text string) string {
	base := slug(text)
	for i := 0; ; i++ {
		suffix := ""
		if i > 0 {
			suffix = "-" + strconv.Itoa(i)
		}
		name := truncateName(base, maxBookmarkName-len(suffix)) + suffix
		if !w.anchors[name] {
			w.anchors[name] = true
			return name
		}
	}
}

// truncateName keeps at most limit runes of s, without a trailing dash.
func truncateName(s string, limit int) string {
	if runes := []rune(s); len(runes) > limit {
		s = strings.TrimRight(string(runes[:limit]), "-")
	}
	return s
}

// slug lowercases text, keeps letters, digits and underscores, and joins
// words with single dashes.
func slug(text string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(text) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_':
			if dash && b.Len() > 0 {
				b.WriteByte('-')
			}
			dash = false
			b.WriteRune(r)
		case unicode.IsSpace(r) || r == '-':
			dash = true
		}
	}
	if b.Len() == 0 {
		return "section"
	}
	return b.String()
}

func (w *bodyWriter) runs(spans []markdown.Span) {
	for _, sp := range spans {
		switch {
		case sp.Image:
			w.image(sp)
		case sp.Link != "":
			w.hyperlink(sp)
		default:
			w.run(sp, "")
		}
	}
}

// run writes one text run. Code spans use the code character style and
// ignore the other flags.
func (w *bodyWriter) run(sp markdown.Span, charStyle string) {
	if sp.Text == "" {
		return
	}
	var props strings.Builder
	if sp.Code {
		props.WriteString(`<w:rStyle w:val="` + styleCodeChar + `"/>`)
	} else {
		if charStyle != "" {
			props.WriteString(`<w:rStyle w:val="` + charStyle + `"/>`)
		}
		if sp.Bold {
			props.WriteString(`<w:b/>`)
		}
		if sp.Italic {
			props.WriteString(`<w:i/>`)
		}
		if sp.Strikethrough {
			props.WriteString(`<w:strike/>`)
		}
	}
	w.b.WriteString(`<w:r>`)
	if props.Len() > 0 {
		w.b.WriteString(`<w:rPr>` + props.String() + `</w:rPr>`)
	}
	w.text(sp.Text)
	w.b.WriteString(`</w:r>`)
}

// text writes run content, turning tab characters into tab elements.
func (w *bodyWriter) text(s string) {
	for i, part := range strings.Split(s, "\t") {
		if i > 0 {
			w.b.WriteString(`<w:tab/>`)
		}
		if part != "" {
			w.b.WriteString(`<w:t xml:space="preserve">` + escapeText(part) + `</w:t>`)
		}
	}
}

// hyperlink writes an internal link for "#name" targets and an external
// relationship for everything else.
func (w *bodyWriter) hyperlink(sp markdown.Span) {
	if name, ok := strings.CutPrefix(sp.Link, "#"); ok {
		w.b.WriteString(`<w:hyperlink w:anchor="` + escapeText(name) + `" w:history="1">`)
	} else {
		w.b.WriteString(`<w:hyperlink r:id="` + w.linkRel(sp.Link) + `" w:history="1">`)
	}
	inner := sp
	inner.Link = ""
	inner.Image = false
	w.run(inner, styleHyperlink)
	w.b.WriteString(`</w:hyperlink>`)
}

func (w *bodyWriter) linkRel(url string) string {
	if id, ok := w.links[url]; ok {
		return id
	}
	id := w.addRel(relHyperlink, url, true)
	w.links[url] = id
	return id
}

func (w *bodyWriter) addRel(typ, target string, external bool) string {
	id := "rId" + strconv.Itoa(len(w.rels)+firstBodyRel)
	w.rels = append(w.rels, relationship{ID: id, Type: typ, Target: target, External: external})
	return id
}

// image embeds a PNG or JPEG data URI. Other sources keep their alt text,
// linked to the source; undecodable data URIs keep the alt text only.
func (w *bodyWriter) image(sp markdown.Span) {
	maxWidth := int64(w.theme.contentWidth()) * emuPerTwip
	data, ext, cx, cy, ok := decodeImage(sp.Link, maxWidth)
	if !ok {
		alt := sp.Text
		if strings.HasPrefix(sp.Link, "data:") {
			w.run(markdown.Span{Text: alt}, "")
			return
		}
		if alt == "" {
			alt = sp.Link
		}
		w.hyperlink(markdown.Span{Text: alt, Link: sp.Link})
		return
	}

	w.drawings++
	n := w.drawings
	name := fmt.Sprintf("image%d.%s", n, ext)
	w.media = append(w.media, mediaPart{Name: name, Data: data, Width: cx, Height: cy})
	rel := w.addRel(relImage, "media/"+name, false)

	fmt.Fprintf(&w.b, `<w:r><w:drawing><wp:inline distT="0" distB="0" distL="0" distR="0">`+
		`<wp:extent cx="%d" cy="%d"/><wp:docPr id="%d" name="Picture %d" descr="%s"/>`+
		`<a:graphic><a:graphicData uri="%s"><pic:pic>`+
		`<pic:nvPicPr><pic:cNvPr id="%d" name="%s"/><pic:cNvPicPr/></pic:nvPicPr>`+
		`<pic:blipFill><a:blip r:embed="%s"/><a:stretch><a:fillRect/></a:stretch></pic:blipFill>`+
		`<pic:spPr><a:xfrm><a:off x="0" y="0"/><a:ext cx="%d" cy="%d"/></a:xfrm><a:prstGeom prst="rect"><a:avLst/></a:prstGeom></pic:spPr>`+
		`</pic:pic></a:graphicData></a:graphic></wp:inline></w:drawing></w:r>`,
		cx, cy, n, n, escapeText(sp.Text), nsPic, n, name, rel, cx, cy)
}

// code writes one paragraph per source line, colored when a highlighter
// is configured and the language is known.
func (w *bodyWriter) code(c model.CodeBlock) {
	for _, line := range w.hl.lines(c.Language, strings.Join(c.Lines, "\n")) {
		w.b.WriteString(`<w:p><w:pPr><w:pStyle w:val="` + styleCode + `"/></w:pPr>`)
		for _, r := range line {
			w.b.WriteString(`<w:r>`)
			if r.Bold || r.Italic || r.Color != "" {
				w.b.WriteString(`<w:rPr>`)
				if r.Bold {
					w.b.WriteString(`<w:b/>`)
				}
				if r.Italic {
					w.b.WriteString(`<w:i/>`)
				}
				if r.Color != "" {
					w.b.WriteString(`<w:color w:val="` + r.Color + `"/>`)
				}
				w.b.WriteString(`</w:rPr>`)
			}
			w.text(r.Text)
			w.b.WriteString(`</w:r>`)
		}
		w.b.WriteString(`</w:p>`)
	}
}

// table writes a full-width grid. Widths are percentages of the text
// column; the header row repeats on every page.
func (w *bodyWriter) table(t model.Table) {
	if len(t.Header) == 0 {
		return
	}
	border := func(side string) string {
		return fmt.Sprintf(`<w:%s w:val="single" w:sz="4" w:space="0" w:color="%s"/>`, side, w.theme.TableBorderColor)
	}
	w.b.WriteString(`<w:tbl><w:tblPr><w:tblW w:w="5000" w:type="pct"/><w:tblBorders>` +
		border("top") + border("left") + border("bottom") + border("right") + border("insideH") + border("insideV") +
		`</w:tblBorders><w:tblLayout w:type="fixed"/>` +
		`<w:tblCellMar><w:left w:w="108" w:type="dxa"/><w:right w:w="108" w:type="dxa"/></w:tblCellMar></w:tblPr>`)

	w.b.WriteString(`<w:tblGrid>`)
	for _, pct := range t.ColumnWidths {
		fmt.Fprintf(&w.b, `<w:gridCol w:w="%d"/>`, int(math.Round(float64(w.theme.contentWidth())*pct/100)))
	}
	w.b.WriteString(`</w:tblGrid>`)

	w.row(t.Header, t.ColumnWidths, true)
	for _, row := range t.Rows {
		w.row(row, t.ColumnWidths, false)
	}
	w.b.WriteString(`</w:tbl>`)
}

func (w *bodyWriter) row(cells []model.Cell, widths []float64, header bool) {
	w.b.WriteString(`<w:tr>`)
	if header {
		w.b.WriteString(`<w:trPr><w:tblHeader/></w:trPr>`)
	}
	for i, c := range cells {
		pct := 0.0
		if i < len(widths) {
			pct = widths[i]
		}
		fmt.Fprintf(&w.b, `<w:tc><w:tcPr><w:tcW w:w="%d" w:type="pct"/>`, int(math.Round(pct*50)))
		if header {
			w.b.WriteString(shading(w.theme.TableHeaderShading))
		}
		style := styleTableText
		if header {
			style = styleTableHeader
		}
		w.b.WriteString(`</w:tcPr><w:p><w:pPr><w:pStyle w:val="` + style + `"/></w:pPr>`)
		w.runs(c.Spans)
		w.b.WriteString(`</w:p></w:tc>`)
	}
	w.b.WriteString(`</w:tr>`)
}

func escapeText(s string) string {
	var b strings.Builder
	_ = xml.EscapeText(&b, []byte(s))
	return b.String()
}

func escapeAttr(s string) string {
	return escapeText(s)
}
