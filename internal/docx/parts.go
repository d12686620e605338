package docx

import (
	"fmt"
	"strings"
	"time"

	"github.com/alnah/go-md2docx/internal/markdown"
)

// Namespaces and relationship types.
const (
	nsW   = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"
	nsR   = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"
	nsWP  = "http://schemas.openxmlformats.org/drawingml/2006/wordprocessingDrawing"
	nsA   = "http://schemas.openxmlformats.org/drawingml/2006/main"
	nsPic = "http://schemas.openxmlformats.org/drawingml/2006/picture"

	relOfficeDocument = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument"
	relCoreProps      = "http://schemas.openxmlformats.org/package/2006/relationships/metadata/core-properties"
	relExtendedProps  = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/extended-properties"
	relStyles         = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/styles"
	relNumbering      = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/numbering"
	relSettings       = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/settings"
	relHyperlink      = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/hyperlink"
	relImage          = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/image"
)

// Part names.
const (
	partContentTypes = "[Content_Types].xml"
	partRootRels     = "_rels/.rels"
	partCore         = "docProps/core.xml"
	partApp          = "docProps/app.xml"
	partDocument     = "word/document.xml"
	partDocumentRels = "word/_rels/document.xml.rels"
	partStyles       = "word/styles.xml"
	partNumbering    = "word/numbering.xml"
	partSettings     = "word/settings.xml"
)

// Paragraph and character style IDs shared by the writer and the extractor.
const (
	styleNormal      = "Normal"
	styleTitle       = "Title"
	styleHeading     = "Heading" // followed by the level
	styleList        = "ListParagraph"
	styleCode        = "Code"
	styleTableText   = "TableText"
	styleTableHeader = "TableHeader"
	styleRule        = "Rule"
	styleBlank       = "Blank"
	styleQuote       = "Quote"
	styleCodeChar    = "CodeChar"
	styleHyperlink   = "Hyperlink"
)

// Numbering instances. Every ordered item shares one sequence.
const (
	numBullet  = 1
	numOrdered = 2
)

const xmlHeader = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n"

// relationship is one entry of a .rels part.
type relationship struct {
	ID       string
	Type     string
	Target   string
	External bool
}

func relsXML(rels []relationship) string {
	var b strings.Builder
	b.WriteString(xmlHeader)
	b.WriteString(`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">`)
	for _, r := range rels {
		fmt.Fprintf(&b, `<Relationship Id="%s" Type="%s" Target="%s"`, r.ID, r.Type, escapeAttr(r.Target))
		if r.External {
			b.WriteString(` TargetMode="External"`)
		}
		b.WriteString(`/>`)
	}
	b.WriteString(`</Relationships>`)
	return b.String()
}

func contentTypesXML() string {
	return xmlHeader +
		`<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">` +
		`<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>` +
		`<Default Extension="xml" ContentType="application/xml"/>` +
		`<Default Extension="png" ContentType="image/png"/>` +
		`<Default Extension="jpeg" ContentType="image/jpeg"/>` +
		`<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>` +
		`<Override PartName="/word/styles.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.styles+xml"/>` +
		`<Override PartName="/word/numbering.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.numbering+xml"/>` +
		`<Override PartName="/word/settings.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.settings+xml"/>` +
		`<Override PartName="/docProps/core.xml" ContentType="application/vnd.openxmlformats-package.core-properties+xml"/>` +
		`<Override PartName="/docProps/app.xml" ContentType="application/vnd.openxmlformats-officedocument.extended-properties+xml"/>` +
		`</Types>`
}

func rootRels() []relationship {
	return []relationship{
		{ID: "rId1", Type: relOfficeDocument, Target: partDocument},
		{ID: "rId2", Type: relCoreProps, Target: partCore},
		{ID: "rId3", Type: relExtendedProps, Target: partApp},
	}
}

// coreXML writes Dublin Core metadata. identifier is a UUID URN.
func coreXML(title, author, identifier string, created time.Time) string {
	stamp := created.UTC().Format(time.RFC3339)
	if author == "" {
		author = "go-md2docx"
	}
	return xmlHeader +
		`<cp:coreProperties xmlns:cp="http://schemas.openxmlformats.org/package/2006/metadata/core-properties"` +
		` xmlns:dc="http://purl.org/dc/elements/1.1/" xmlns:dcterms="http://purl.org/dc/terms/"` +
		` xmlns:dcmitype="http://purl.org/dc/dcmitype/" xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance">` +
		`<dc:title>` + escapeText(title) + `</dc:title>` +
		`<dc:creator>` + escapeText(author) + `</dc:creator>` +
		`<cp:lastModifiedBy>` + escapeText(author) + `</cp:lastModifiedBy>` +
		`<dc:identifier>urn:uuid:` + escapeText(identifier) + `</dc:identifier>` +
		`<dcterms:created xsi:type="dcterms:W3CDTF">` + stamp + `</dcterms:created>` +
		`<dcterms:modified xsi:type="dcterms:W3CDTF">` + stamp + `</dcterms:modified>` +
		`</cp:coreProperties>`
}

func appXML() string {
	return xmlHeader +
		`<Properties xmlns="http://schemas.openxmlformats.org/officeDocument/2006/extended-properties">` +
		`<Application>go-md2docx</Application>` +
		`</Properties>`
}

func settingsXML() string {
	return xmlHeader +
		`<w:settings xmlns:w="` + nsW + `">` +
		`<w:defaultTabStop w:val="720"/>` +
		`<w:characterSpacingControl w:val="doNotCompress"/>` +
		`<w:compat><w:compatSetting w:name="compatibilityMode" w:uri="http://schemas.microsoft.com/office/word" w:val="15"/></w:compat>` +
		`</w:settings>`
}

// numberingXML defines one bullet and one decimal list, three levels each.
func numberingXML() string {
	bullets := [3]string{"•", "◦", "▪"}
	var b strings.Builder
	b.WriteString(xmlHeader)
	b.WriteString(`<w:numbering xmlns:w="` + nsW + `">`)

	b.WriteString(`<w:abstractNum w:abstractNumId="0"><w:multiLevelType w:val="hybridMultilevel"/>`)
	for lvl := 0; lvl <= markdown.MaxListLevel; lvl++ {
		fmt.Fprintf(&b, `<w:lvl w:ilvl="%d"><w:start w:val="1"/><w:numFmt w:val="bullet"/><w:lvlText w:val="%s"/><w:lvlJc w:val="left"/>`+
			`<w:pPr><w:ind w:left="%d" w:hanging="360"/></w:pPr></w:lvl>`, lvl, bullets[lvl], 720*(lvl+1))
	}
	b.WriteString(`</w:abstractNum>`)

	b.WriteString(`<w:abstractNum w:abstractNumId="1"><w:multiLevelType w:val="hybridMultilevel"/>`)
	formats := [3]string{"decimal", "lowerLetter", "lowerRoman"}
	for lvl := 0; lvl <= markdown.MaxListLevel; lvl++ {
		fmt.Fprintf(&b, `<w:lvl w:ilvl="%d"><w:start w:val="1"/><w:numFmt w:val="%s"/><w:lvlText w:val="%%%d."/><w:lvlJc w:val="left"/>`+
			`<w:pPr><w:ind w:left="%d" w:hanging="360"/></w:pPr></w:lvl>`, lvl, formats[lvl], lvl+1, 720*(lvl+1))
	}
	b.WriteString(`</w:abstractNum>`)

	fmt.Fprintf(&b, `<w:num w:numId="%d"><w:abstractNumId w:val="0"/></w:num>`, numBullet)
	fmt.Fprintf(&b, `<w:num w:numId="%d"><w:abstractNumId w:val="1"/></w:num>`, numOrdered)
	b.WriteString(`</w:numbering>`)
	return b.String()
}

// stylesXML turns the theme into paragraph and character styles.
func stylesXML(t Theme) string {
	var b strings.Builder
	b.WriteString(xmlHeader)
	b.WriteString(`<w:styles xmlns:w="` + nsW + `">`)

	fmt.Fprintf(&b, `<w:docDefaults><w:rPrDefault><w:rPr>%s<w:color w:val="%s"/><w:sz w:val="%d"/><w:szCs w:val="%d"/></w:rPr></w:rPrDefault>`+
		`<w:pPrDefault><w:pPr><w:spacing w:after="0" w:line="264" w:lineRule="auto"/></w:pPr></w:pPrDefault></w:docDefaults>`,
		fonts(t.BodyFont), t.TextColor, t.BodySize, t.BodySize)

	para := func(id, name, pPr, rPr string) {
		fmt.Fprintf(&b, `<w:style w:type="paragraph" w:styleId="%s"><w:name w:val="%s"/>`, id, name)
		if id != styleNormal {
			b.WriteString(`<w:basedOn w:val="Normal"/><w:next w:val="Normal"/>`)
		}
		fmt.Fprintf(&b, `<w:qFormat/><w:pPr>%s</w:pPr><w:rPr>%s</w:rPr></w:style>`, pPr, rPr)
	}

	para(styleNormal, "Normal", spacing(t.BlockSpacing(markdown.KindParagraph)), "")
	para(styleTitle, "Title", spacing(Spacing{After: 300}),
		fonts(t.HeadingFont)+fmt.Sprintf(`<w:color w:val="%s"/><w:sz w:val="%d"/><w:szCs w:val="%d"/>`,
			t.Headings[0].Color, t.Headings[0].Size+16, t.Headings[0].Size+16))
	for i, h := range t.Headings {
		level := i + 1
		para(fmt.Sprintf("%s%d", styleHeading, level), fmt.Sprintf("heading %d", level),
			`<w:keepNext/>`+spacing(t.HeadingSpacing(level))+fmt.Sprintf(`<w:outlineLvl w:val="%d"/>`, i),
			fonts(t.HeadingFont)+fmt.Sprintf(`<w:b/><w:color w:val="%s"/><w:sz w:val="%d"/><w:szCs w:val="%d"/>`, h.Color, h.Size, h.Size))
	}
	para(styleList, "List Paragraph", spacing(t.BlockSpacing(markdown.KindListItem))+`<w:contextualSpacing/>`, "")
	code := t.BlockSpacing(markdown.KindCodeBlock)
	para(styleCode, "Code",
		shading(t.CodeShading)+fmt.Sprintf(`<w:spacing w:before="%d" w:after="%d" w:line="240" w:lineRule="auto"/>`, code.Before, code.After),
		fonts(t.CodeFont)+fmt.Sprintf(`<w:sz w:val="%d"/><w:szCs w:val="%d"/>`, t.CodeSize, t.CodeSize))
	para(styleTableText, "Table Text", spacing(t.BlockSpacing(markdown.KindTable)), "")
	para(styleTableHeader, "Table Header", `<w:keepNext/>`+spacing(t.BlockSpacing(markdown.KindTable)), `<w:b/>`)
	para(styleRule, "Rule",
		fmt.Sprintf(`<w:pBdr><w:bottom w:val="single" w:sz="6" w:space="1" w:color="%s"/></w:pBdr>`, t.RuleColor)+
			spacing(t.BlockSpacing(markdown.KindRule)), "")
	para(styleBlank, "Blank Line", spacing(t.BlockSpacing(markdown.KindBlank)), "")
	para(styleQuote, "Quote",
		fmt.Sprintf(`<w:pBdr><w:left w:val="single" w:sz="18" w:space="8" w:color="%s"/></w:pBdr>`, t.QuoteBorderColor)+
			spacing(t.BlockSpacing(markdown.KindQuote))+`<w:ind w:left="360"/>`, `<w:i/>`)

	fmt.Fprintf(&b, `<w:style w:type="character" w:styleId="%s"><w:name w:val="Code Char"/><w:rPr>%s<w:sz w:val="%d"/><w:szCs w:val="%d"/>%s</w:rPr></w:style>`,
		styleCodeChar, fonts(t.CodeFont), t.CodeSize, t.CodeSize, shading(t.CodeShading))
	fmt.Fprintf(&b, `<w:style w:type="character" w:styleId="%s"><w:name w:val="Hyperlink"/><w:rPr><w:color w:val="%s"/><w:u w:val="single"/></w:rPr></w:style>`,
		styleHyperlink, t.LinkColor)

	b.WriteString(`</w:styles>`)
	return b.String()
}

func fonts(name string) string {
	n := escapeAttr(name)
	return `<w:rFonts w:ascii="` + n + `" w:hAnsi="` + n + `" w:cs="` + n + `"/>`
}

func spacing(s Spacing) string {
	return fmt.Sprintf(`<w:spacing w:before="%d" w:after="%d"/>`, s.Before, s.After)
}

func shading(fill string) string {
	return `<w:shd w:val="clear" w:color="auto" w:fill="` + fill + `"/>`
}
