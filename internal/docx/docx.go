package docx

import (
	"archive/zip"
	"bytes"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/alnah/go-md2docx/internal/model"
)

// Renderer writes document trees as .docx packages. It is safe for
// concurrent use.
type Renderer struct {
	theme Theme
	hl    *highlighter
	now   func() time.Time
	newID func() string
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithClock sets the time source for the creation timestamps.
func WithClock(now func() time.Time) Option {
	return func(r *Renderer) {
		if now != nil {
			r.now = now
		}
	}
}

// WithIDGenerator sets the source of the package identifier.
func WithIDGenerator(newID func() string) Option {
	return func(r *Renderer) {
		if newID != nil {
			r.newID = newID
		}
	}
}

// NewRenderer validates the theme and returns a Renderer using it.
func NewRenderer(theme Theme, opts ...Option) (*Renderer, error) {
	if err := theme.Validate(); err != nil {
		return nil, err
	}
	r := &Renderer{
		theme: theme,
		hl:    newHighlighter(theme.Highlight),
		now:   time.Now,
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Theme returns the renderer's presentation table.
func (r *Renderer) Theme() Theme {
	return r.theme
}

// part is one file of the package.
type part struct {
	name string
	data []byte
}

// Render serializes doc into a ZIP package. Errors only come from the
// archive writer.
func (r *Renderer) Render(doc *model.Document) ([]byte, error) {
	body := newBodyWriter(r.theme, r.hl)
	documentXML := body.document(doc)

	docRels := append([]relationship{
		{ID: "rId1", Type: relStyles, Target: "styles.xml"},
		{ID: "rId2", Type: relNumbering, Target: "numbering.xml"},
		{ID: "rId3", Type: relSettings, Target: "settings.xml"},
	}, body.rels...)

	parts := []part{
		{partContentTypes, []byte(contentTypesXML())},
		{partRootRels, []byte(relsXML(rootRels()))},
		{partCore, []byte(coreXML(doc.Title, doc.Author, r.newID(), r.now()))},
		{partApp, []byte(appXML())},
		{partDocument, []byte(documentXML)},
		{partDocumentRels, []byte(relsXML(docRels))},
		{partStyles, []byte(stylesXML(r.theme))},
		{partNumbering, []byte(numberingXML())},
		{partSettings, []byte(settingsXML())},
	}
	for _, m := range body.media {
		parts = append(parts, part{"word/media/" + m.Name, m.Data})
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, p := range parts {
		f, err := zw.Create(p.name)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrPackageWrite, p.name, err)
		}
		if _, err := f.Write(p.data); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrPackageWrite, p.name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPackageWrite, err)
	}
	return buf.Bytes(), nil
}
