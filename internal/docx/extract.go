package docx

import (
	"archive/zip"
	"bytes"
	"encoding/base64"
	"encoding/xml"
	"errors"
	"fmt"
	"html"
	"io"
	"path"
	"strconv"
	"strings"
)

// maxPartSize bounds how much of a single package part is decompressed.
const maxPartSize = 64 << 20

// nsWStrict is the main namespace of Strict OOXML documents.
const nsWStrict = "http://purl.oclc.org/ooxml/wordprocessingml/main"

// Extractor turns .docx packages back into HTML.
type Extractor struct{}

// Extract implements the package-to-HTML step with the package-level
// Extract function.
func (Extractor) Extract(pkg []byte) (string, error) {
	return Extract(pkg)
}

// Extract reads the main document part of a .docx package and returns
// equivalent HTML markup: headings, paragraphs, lists, tables, code,
// quotes, rules, links and embedded PNG or JPEG images. Formatting the
// markup cannot express is dropped.
func Extract(pkg []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(pkg), int64(len(pkg)))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidPackage, err)
	}
	files := make(map[string]*zip.File, len(zr.File))
	for _, f := range zr.File {
		files[f.Name] = f
	}

	main, ok := files[partDocument]
	if !ok {
		return "", fmt.Errorf("%w: %s not found", ErrInvalidPackage, partDocument)
	}
	rels, err := readRels(files[partDocumentRels])
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrInvalidPackage, partDocumentRels, err)
	}
	lists, err := readNumbering(files[partNumbering])
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrInvalidPackage, partNumbering, err)
	}

	rc, err := main.Open()
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrInvalidPackage, partDocument, err)
	}
	defer rc.Close()

	x := &extractor{files: files, rels: rels, lists: lists}
	if err := x.parse(io.LimitReader(rc, maxPartSize)); err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrInvalidPackage, partDocument, err)
	}
	return x.out.String(), nil
}

func readPart(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(io.LimitReader(rc, maxPartSize))
}

// readRels maps relationship IDs to targets. A missing part yields an
// empty map.
func readRels(f *zip.File) (map[string]string, error) {
	rels := make(map[string]string)
	if f == nil {
		return rels, nil
	}
	data, err := readPart(f)
	if err != nil {
		return nil, err
	}
	var doc struct {
		Relationships []struct {
			ID     string `xml:"Id,attr"`
			Target string `xml:"Target,attr"`
		} `xml:"Relationship"`
	}
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	for _, r := range doc.Relationships {
		rels[r.ID] = r.Target
	}
	return rels, nil
}

// numbering records which list instances and levels are numbered rather
// than bulleted.
type numbering map[string]map[int]bool

func (n numbering) ordered(numID string, level int) bool {
	return n[numID][level]
}

func readNumbering(f *zip.File) (numbering, error) {
	lists := make(numbering)
	if f == nil {
		return lists, nil
	}
	data, err := readPart(f)
	if err != nil {
		return nil, err
	}
	var doc struct {
		Abstract []struct {
			ID     string `xml:"abstractNumId,attr"`
			Levels []struct {
				Level  int `xml:"ilvl,attr"`
				Format struct {
					Val string `xml:"val,attr"`
				} `xml:"numFmt"`
			} `xml:"lvl"`
		} `xml:"abstractNum"`
		Nums []struct {
			ID       string `xml:"numId,attr"`
			Abstract struct {
				Val string `xml:"val,attr"`
			} `xml:"abstractNumId"`
		} `xml:"num"`
	}
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}

	formats := make(map[string]map[int]bool, len(doc.Abstract))
	for _, a := range doc.Abstract {
		levels := make(map[int]bool, len(a.Levels))
		for _, l := range a.Levels {
			switch l.Format.Val {
			case "", "bullet", "none":
			default:
				levels[l.Level] = true
			}
		}
		formats[a.ID] = levels
	}
	for _, num := range doc.Nums {
		lists[num.ID] = formats[num.Abstract.Val]
	}
	return lists, nil
}

// paragraphState accumulates one w:p element.
type paragraphState struct {
	style  string
	numID  string
	level  int
	border bool // bottom paragraph border
	html   strings.Builder
	plain  strings.Builder
}

type runState struct {
	bold, italic, strike, code bool
	text                       strings.Builder
}

// extractor walks word/document.xml as a token stream, keeping a stack
// of open elements for context.
type extractor struct {
	files map[string]*zip.File
	rels  map[string]string
	lists numbering

	out   strings.Builder
	stack []xml.Name

	para      *paragraphState
	nestedP   int // paragraphs inside text boxes, merged into the outer one
	run       *runState
	links     []bool // open hyperlinks, true when an <a> was written
	imageAlt  string
	code      []string
	openLists []string

	tableDepth int
	rows       [][]string
	row        []string
	cell       *strings.Builder
}

func (x *extractor) parse(r io.Reader) error {
	dec := xml.NewDecoder(r)
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			x.stack = append(x.stack, t.Name)
			if !x.inCtx("Fallback") {
				x.handleStart(t)
			}
		case xml.EndElement:
			if !x.inCtx("Fallback") {
				x.handleEnd(t)
			}
			if len(x.stack) > 0 {
				x.stack = x.stack[:len(x.stack)-1]
			}
		case xml.CharData:
			if x.run != nil && len(x.stack) > 0 && isW(x.stack[len(x.stack)-1]) &&
				x.stack[len(x.stack)-1].Local == "t" && !x.inCtx("Fallback") {
				x.run.text.Write(t)
			}
		}
	}
	x.flushCode()
	x.closeLists(0)
	return nil
}

// inCtx reports whether an element with the given local name is open.
func (x *extractor) inCtx(local string) bool {
	for i := len(x.stack) - 1; i >= 0; i-- {
		if x.stack[i].Local == local {
			return true
		}
	}
	return false
}

func isW(n xml.Name) bool {
	return n.Space == nsW || n.Space == nsWStrict
}

func attrVal(t xml.StartElement, local string) string {
	for _, a := range t.Attr {
		if a.Name.Local == local {
			return a.Value
		}
	}
	return ""
}

// enabled reads a toggle property such as <w:b/> or <w:b w:val="0"/>.
func enabled(t xml.StartElement) bool {
	switch attrVal(t, "val") {
	case "0", "false", "off", "none":
		return false
	}
	return true
}

func (x *extractor) handleStart(t xml.StartElement) {
	switch t.Name.Space {
	case nsWP:
		if t.Name.Local == "docPr" {
			x.imageAlt = attrVal(t, "descr")
		}
		return
	case nsA:
		if t.Name.Local == "blip" && x.para != nil {
			x.image(attrVal(t, "embed"))
		}
		return
	}
	if !isW(t.Name) {
		return
	}

	switch t.Name.Local {
	case "tbl":
		x.tableDepth++
		if x.tableDepth == 1 {
			x.flushCode()
			x.closeLists(0)
			x.rows = nil
		}
	case "tr":
		if x.tableDepth == 1 {
			x.row = nil
		}
	case "tc":
		if x.tableDepth == 1 {
			x.cell = &strings.Builder{}
		}
	case "p":
		if x.para != nil {
			x.nestedP++
			return
		}
		x.para = &paragraphState{}
	case "pStyle":
		if x.para != nil && x.nestedP == 0 {
			x.para.style = attrVal(t, "val")
		}
	case "numId":
		if x.para != nil && x.nestedP == 0 {
			x.para.numID = attrVal(t, "val")
		}
	case "ilvl":
		if x.para != nil && x.nestedP == 0 {
			x.para.level, _ = strconv.Atoi(attrVal(t, "val"))
		}
	case "bottom":
		if x.para != nil && x.inCtx("pBdr") {
			x.para.border = true
		}
	case "r":
		if x.para != nil {
			x.run = &runState{}
		}
	case "b":
		if x.run != nil {
			x.run.bold = enabled(t)
		}
	case "i":
		if x.run != nil {
			x.run.italic = enabled(t)
		}
	case "strike", "dstrike":
		if x.run != nil {
			x.run.strike = enabled(t)
		}
	case "rStyle":
		if x.run != nil {
			switch attrVal(t, "val") {
			case styleCodeChar, "VerbatimChar", "HTMLCode":
				x.run.code = true
			}
		}
	case "tab":
		if x.run != nil && !x.inCtx("tabs") {
			x.run.text.WriteByte('\t')
		}
	case "br", "cr":
		if x.run != nil {
			x.run.text.WriteByte('\n')
		}
	case "hyperlink":
		x.openLink(t)
	}
}

func (x *extractor) handleEnd(t xml.EndElement) {
	if !isW(t.Name) {
		return
	}
	switch t.Name.Local {
	case "r":
		x.endRun()
	case "hyperlink":
		if n := len(x.links); n > 0 {
			if x.links[n-1] && x.para != nil {
				x.para.html.WriteString(`</a>`)
			}
			x.links = x.links[:n-1]
		}
	case "p":
		if x.nestedP > 0 {
			x.nestedP--
			return
		}
		if x.para != nil {
			x.endParagraph()
			x.para = nil
		}
	case "tc":
		if x.tableDepth == 1 && x.cell != nil {
			x.row = append(x.row, x.cell.String())
			x.cell = nil
		}
	case "tr":
		if x.tableDepth == 1 {
			x.rows = append(x.rows, x.row)
			x.row = nil
		}
	case "tbl":
		if x.tableDepth == 1 {
			x.writeTable()
		}
		if x.tableDepth > 0 {
			x.tableDepth--
		}
	}
}

func (x *extractor) openLink(t xml.StartElement) {
	href := ""
	if id := attrVal(t, "id"); id != "" {
		href = x.rels[id]
	}
	if anchor := attrVal(t, "anchor"); anchor != "" && href == "" {
		href = "#" + anchor
	}
	written := href != "" && x.para != nil
	if written {
		x.para.html.WriteString(`<a href="` + html.EscapeString(href) + `">`)
	}
	x.links = append(x.links, written)
}

// endRun writes the run's text with its formatting as nested inline tags.
func (x *extractor) endRun() {
	r := x.run
	x.run = nil
	if r == nil || x.para == nil || r.text.Len() == 0 {
		return
	}
	text := r.text.String()
	x.para.plain.WriteString(text)

	content := strings.ReplaceAll(html.EscapeString(text), "\n", "<br>")
	if r.code {
		x.para.html.WriteString(`<code>` + content + `</code>`)
		return
	}
	var open, closing string
	for _, tag := range []struct {
		on   bool
		name string
	}{{r.bold, "strong"}, {r.italic, "em"}, {r.strike, "s"}} {
		if tag.on {
			open += "<" + tag.name + ">"
			closing = "</" + tag.name + ">" + closing
		}
	}
	x.para.html.WriteString(open + content + closing)
}

// image writes an embedded picture as a data URI. Formats other than PNG
// and JPEG keep only their description.
func (x *extractor) image(relID string) {
	alt := x.imageAlt
	x.imageAlt = ""

	target, ok := x.rels[relID]
	if !ok {
		return
	}
	var mime string
	switch strings.ToLower(path.Ext(target)) {
	case ".png":
		mime = "image/png"
	case ".jpg", ".jpeg":
		mime = "image/jpeg"
	}
	f := x.files[partPath(target)]
	if mime == "" || f == nil {
		if alt != "" {
			x.para.html.WriteString(html.EscapeString(alt))
		}
		return
	}
	data, err := readPart(f)
	if err != nil {
		return
	}
	fmt.Fprintf(&x.para.html, `<img src="data:%s;base64,%s" alt="%s">`,
		mime, base64.StdEncoding.EncodeToString(data), html.EscapeString(alt))
}

// partPath resolves a relationship target against the word/ directory.
func partPath(target string) string {
	if abs, ok := strings.CutPrefix(target, "/"); ok {
		return abs
	}
	return path.Join("word", target)
}

func (x *extractor) endParagraph() {
	p := x.para
	content := strings.TrimSpace(p.html.String())

	if x.cell != nil {
		if content != "" {
			if x.cell.Len() > 0 {
				x.cell.WriteByte(' ')
			}
			x.cell.WriteString(content)
		}
		return
	}
	if x.tableDepth > 0 {
		return
	}

	if p.style == styleCode {
		x.closeLists(0)
		x.code = append(x.code, p.plain.String())
		return
	}
	x.flushCode()

	if p.numID != "" && p.numID != "0" {
		x.listItem(p, content)
		return
	}
	x.closeLists(0)

	switch level := headingLevel(p.style); {
	case level > 0:
		if content != "" {
			fmt.Fprintf(&x.out, "<h%d>%s</h%d>\n", level, content, level)
		}
	case p.style == styleRule || (content == "" && p.border):
		x.out.WriteString("<hr>\n")
	case content == "":
	case p.style == styleQuote || p.style == "IntenseQuote":
		x.out.WriteString("<blockquote><p>" + content + "</p></blockquote>\n")
	default:
		x.out.WriteString("<p>" + content + "</p>\n")
	}
}

// headingLevel maps Title and Heading1 through Heading6 to a level, and
// every other style to 0.
func headingLevel(style string) int {
	if style == styleTitle {
		return 1
	}
	n, ok := strings.CutPrefix(style, styleHeading)
	if !ok {
		return 0
	}
	level, err := strconv.Atoi(n)
	if err != nil || level < 1 || level > 6 {
		return 0
	}
	return level
}

// listItem opens or closes nested lists to reach the item's depth. A
// level switching between bullets and numbers starts a new list.
func (x *extractor) listItem(p *paragraphState, content string) {
	depth := min(max(p.level, 0), 8) + 1
	tag := "ul"
	if x.lists.ordered(p.numID, p.level) {
		tag = "ol"
	}
	x.closeLists(depth)
	if len(x.openLists) == depth && x.openLists[depth-1] != tag {
		x.closeLists(depth - 1)
	}
	for len(x.openLists) < depth {
		x.openLists = append(x.openLists, tag)
		x.out.WriteString("<" + tag + ">\n")
	}
	x.out.WriteString("<li>" + content + "</li>\n")
}

// closeLists closes open lists until at most keep remain.
func (x *extractor) closeLists(keep int) {
	for len(x.openLists) > keep {
		n := len(x.openLists) - 1
		x.out.WriteString("</" + x.openLists[n] + ">\n")
		x.openLists = x.openLists[:n]
	}
}

// flushCode writes consecutive code paragraphs as one preformatted block.
func (x *extractor) flushCode() {
	if len(x.code) == 0 {
		return
	}
	x.out.WriteString("<pre><code>" + html.EscapeString(strings.Join(x.code, "\n")) + "</code></pre>\n")
	x.code = nil
}

// writeTable emits the collected rows, the first one as header cells.
func (x *extractor) writeTable() {
	if len(x.rows) == 0 {
		return
	}
	x.out.WriteString("<table>\n")
	for i, row := range x.rows {
		cell := "td"
		if i == 0 {
			cell = "th"
		}
		x.out.WriteString("<tr>")
		for _, c := range row {
			x.out.WriteString("<" + cell + ">" + c + "</" + cell + ">")
		}
		x.out.WriteString("</tr>\n")
	}
	x.out.WriteString("</table>\n")
	x.rows = nil
}
