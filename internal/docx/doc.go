// Package docx renders a document tree as an OOXML word-processing
// package and extracts HTML markup back out of one.
//
// The package is written part by part with archive/zip: content types,
// relationships, core and app properties, the main document, styles,
// numbering definitions, settings and embedded media. All presentation
// values (fonts, sizes, spacing, colors) come from a Theme, so the
// document tree stays free of layout concerns.
//
// Extraction is the inverse, lossy direction. It reads word/document.xml
// with a streaming XML decoder and produces HTML using only the tags the
// HTML normalizer understands.
package docx
