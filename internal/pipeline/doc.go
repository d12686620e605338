// Package pipeline implements the text stages that run before the
// document model is built.
//
// This package handles format routing and source normalization:
//   - Format detection (HTML-like tags versus Markdown)
//   - HTML to Markdown normalization (allow-list pass, then a tokenizer pass)
//   - Markdown preprocessing (line endings, byte order mark)
//   - Markdown to HTML preview via Goldmark, styled after the theme
//
// Block parsing lives in internal/markdown and package rendering in
// internal/docx. Detection and normalization are total: malformed input
// is passed through or dropped, never reported as an error. Only the
// preview can fail.
package pipeline
