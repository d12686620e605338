package pipeline

import (
	"context"
	"regexp"
	"strings"
)

var (
	lineBreaks = regexp.MustCompile(`\r\n?`)
	blankRuns  = regexp.MustCompile(`\n{3,}`)
	lineTails  = regexp.MustCompile(`[ \t]+\n`)
)

// MarkdownPreprocessor prepares Markdown source before block parsing.
type MarkdownPreprocessor interface {
	PreprocessMarkdown(ctx context.Context, content string) string
}

// LinePreprocessor drops a leading byte order mark and normalizes line
// endings. Blank lines survive untouched because the block parser turns
// them into vertical spacing.
type LinePreprocessor struct{}

// PreprocessMarkdown returns content unchanged when ctx is already done.
func (p *LinePreprocessor) PreprocessMarkdown(ctx context.Context, content string) string {
	if ctx.Err() != nil {
		return content
	}
	return NormalizeLineEndings(strings.TrimPrefix(content, "\ufeff"))
}

// NormalizeLineEndings rewrites "\r\n" and lone "\r" as "\n".
func NormalizeLineEndings(content string) string {
	if strings.IndexByte(content, '\r') < 0 {
		return content
	}
	return lineBreaks.ReplaceAllString(content, "\n")
}

// tidyMarkdown cleans generated Markdown: no trailing blanks on any line
// and at most one blank line in a row.
func tidyMarkdown(md string) string {
	md = lineTails.ReplaceAllString(md, "\n")
	return blankRuns.ReplaceAllString(md, "\n\n")
}
