// Package markdown parses the Markdown dialect accepted by the converter.
//
// The dialect is line oriented and deliberately small:
//
//   - ATX headings (# to ######)
//   - paragraphs (one per source line)
//   - bullet (-, *, +) and ordered (1.) list items, three nesting levels
//   - pipe tables with an optional separator row
//   - fenced code blocks (```)
//   - horizontal rules (---, ***, ___)
//   - block quotes (>)
//   - blank lines, kept to preserve vertical spacing
//
// Inline text is split into styled spans: bold, italic, strikethrough,
// code, links and images.
//
// Parsing is total. Unbalanced markers, malformed tables and stray
// punctuation are kept as literal text rather than reported as errors.
package markdown
